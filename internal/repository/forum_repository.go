package repository

import (
	"thoughts-system/internal/model"

	"gorm.io/gorm"
)

// ForumRepository 论坛数据仓储
type ForumRepository struct {
	db *gorm.DB
}

// NewForumRepository 创建ForumRepository实例
func NewForumRepository(db *gorm.DB) *ForumRepository {
	return &ForumRepository{db: db}
}

// Create 创建论坛
func (r *ForumRepository) Create(forum *model.Forum) error {
	return r.db.Create(forum).Error
}

// GetByID 根据ID获取论坛
func (r *ForumRepository) GetByID(id uint) (*model.Forum, error) {
	var f model.Forum
	if err := r.db.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// List 获取全部论坛
func (r *ForumRepository) List() ([]*model.Forum, error) {
	var forums []*model.Forum
	err := r.db.Order("created_at DESC").Find(&forums).Error
	return forums, err
}
