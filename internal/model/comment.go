package model

import (
	"time"

	"gorm.io/gorm"
)

// Comment 评论模型
// 评论只在其所属动态下有意义；Author 为冗余展示字段，删除权限校验使用 AuthorID

type Comment struct {
	ID        uint           `gorm:"primaryKey"`
	ThoughtID uint           `gorm:"not null;index;comment:所属动态ID"`
	Text      string         `gorm:"type:varchar(280);not null;comment:评论内容"`
	AuthorID  uint           `gorm:"not null;index;comment:评论者ID"`
	Author    string         `gorm:"type:varchar(64);not null;comment:评论者用户名(冗余展示字段)"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Comment) TableName() string { return "comment" }
