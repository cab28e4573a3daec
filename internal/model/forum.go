package model

import (
	"time"

	"gorm.io/gorm"
)

// Forum 论坛模型
// 论坛下的动态通过 Thought.ForumID 关联，不在论坛上维护引用列表

type Forum struct {
	ID          uint           `gorm:"primaryKey"`
	Title       string         `gorm:"type:varchar(128);not null;comment:论坛标题"`
	Description string         `gorm:"type:varchar(512);comment:论坛描述"`
	CreatorID   uint           `gorm:"not null;index;comment:创建者ID"`
	CreatedAt   time.Time      `gorm:"comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Forum) TableName() string { return "forum" }
