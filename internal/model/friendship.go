package model

import "time"

// Friendship 好友关系（有向边）
// 只记录发起方视角：UserID 添加了 FriendID，反向关系不自动建立
// (UserID, FriendID) 组合唯一，重复添加是幂等操作；解除关系为硬删除

type Friendship struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:uk_user_friend;index;comment:发起方用户ID"`
	FriendID  uint      `gorm:"not null;uniqueIndex:uk_user_friend;comment:被添加的好友ID"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

func (Friendship) TableName() string { return "friendship" }
