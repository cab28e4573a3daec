package model

import "time"

// Like 点赞关系
// (UserID, ThoughtID) 组合唯一，由数据库保证同一用户对同一动态最多点赞一次
// 点赞是硬删除：取消点赞直接删行，避免软删除残留占用唯一索引

type Like struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:uk_user_thought;comment:点赞用户ID"`
	ThoughtID uint      `gorm:"not null;uniqueIndex:uk_user_thought;index;comment:被赞动态ID"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

func (Like) TableName() string { return "thought_like" }
