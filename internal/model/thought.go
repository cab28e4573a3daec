package model

import (
	"time"

	"gorm.io/gorm"
)

// Thought 动态模型（用户发布的短文本）
// Author 为冗余的作者用户名，仅用于展示；权限判断一律使用 AuthorID
// ForumID 可空：属于某个论坛的动态才会设置

type Thought struct {
	ID        uint           `gorm:"primaryKey"`
	Text      string         `gorm:"type:varchar(280);not null;comment:动态内容"`
	AuthorID  uint           `gorm:"not null;index;comment:作者ID"`
	Author    string         `gorm:"type:varchar(64);not null;comment:作者用户名(冗余展示字段)"`
	ForumID   *uint          `gorm:"index;comment:所属论坛ID(可空)"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Thought) TableName() string { return "thought" }
