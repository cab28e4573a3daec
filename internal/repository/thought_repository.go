package repository

import (
	"thoughts-system/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ThoughtRepository 动态数据仓储
// 同时负责动态下的评论与点赞关系
type ThoughtRepository struct {
	db *gorm.DB
}

// NewThoughtRepository 创建ThoughtRepository实例
func NewThoughtRepository(db *gorm.DB) *ThoughtRepository {
	return &ThoughtRepository{db: db}
}

// Create 创建动态
func (r *ThoughtRepository) Create(thought *model.Thought) error {
	return r.db.Create(thought).Error
}

// GetByID 根据ID获取动态
func (r *ThoughtRepository) GetByID(id uint) (*model.Thought, error) {
	var t model.Thought
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// List 获取动态列表（最新优先），username为空时返回全部
func (r *ThoughtRepository) List(username string, limit, offset int) ([]*model.Thought, error) {
	var thoughts []*model.Thought
	query := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if username != "" {
		query = query.Where("author = ?", username)
	}
	err := query.Find(&thoughts).Error
	return thoughts, err
}

// CountByAuthorID 获取用户发布的动态数量
func (r *ThoughtRepository) CountByAuthorID(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Thought{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

// ListByForumID 获取论坛下的动态列表（最新优先）
func (r *ThoughtRepository) ListByForumID(forumID uint) ([]*model.Thought, error) {
	var thoughts []*model.Thought
	err := r.db.Where("forum_id = ?", forumID).
		Order("created_at DESC").
		Find(&thoughts).Error
	return thoughts, err
}

// DeleteCascade 删除动态及其评论和点赞
// 三步在同一事务中执行，避免部分失败留下悬挂引用
// 作者/论坛归属是列引用（author_id/forum_id），删除动态本身即解除
func (r *ThoughtRepository) DeleteCascade(thoughtID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("thought_id = ?", thoughtID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("thought_id = ?", thoughtID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Thought{}, thoughtID).Error
	})
}

// ---------- 评论 ----------

// AddComment 添加评论
func (r *ThoughtRepository) AddComment(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID 根据ID获取评论
func (r *ThoughtRepository) GetCommentByID(id uint) (*model.Comment, error) {
	var cm model.Comment
	if err := r.db.First(&cm, id).Error; err != nil {
		return nil, err
	}
	return &cm, nil
}

// DeleteComment 删除评论
func (r *ThoughtRepository) DeleteComment(commentID uint) error {
	return r.db.Delete(&model.Comment{}, commentID).Error
}

// ListComments 获取动态的评论列表（时间正序）
func (r *ThoughtRepository) ListComments(thoughtID uint) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Where("thought_id = ?", thoughtID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// CountComments 获取动态的评论数量
func (r *ThoughtRepository) CountComments(thoughtID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).
		Where("thought_id = ?", thoughtID).
		Count(&count).Error
	return count, err
}

// ---------- 点赞 ----------

// ToggleLike 切换点赞状态，返回切换后是否为已点赞
// 条件插入：依赖 (user_id, thought_id) 唯一索引，冲突时不写入
// 插入影响0行说明已点赞，转为删除（取消点赞）
// 没有先读后写的竞态窗口，并发重复请求最终点赞数只能是0或1
func (r *ThoughtRepository) ToggleLike(userID, thoughtID uint) (bool, error) {
	like := &model.Like{UserID: userID, ThoughtID: thoughtID}
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "thought_id"}},
		DoNothing: true,
	}).Create(like)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		// 新增点赞
		return true, nil
	}

	// 已点赞，取消
	err := r.db.Where("user_id = ? AND thought_id = ?", userID, thoughtID).
		Delete(&model.Like{}).Error
	return false, err
}

// HasLiked 判断用户是否已点赞
func (r *ThoughtRepository) HasLiked(userID, thoughtID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("user_id = ? AND thought_id = ?", userID, thoughtID).
		Count(&count).Error
	return count > 0, err
}

// CountLikes 获取动态的点赞数量
func (r *ThoughtRepository) CountLikes(thoughtID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("thought_id = ?", thoughtID).
		Count(&count).Error
	return count, err
}

// ListLikers 获取点赞动态的用户列表
func (r *ThoughtRepository) ListLikers(thoughtID uint) ([]*model.User, error) {
	var users []*model.User
	err := r.db.Model(&model.User{}).
		Joins("JOIN thought_like ON thought_like.user_id = user.id").
		Where("thought_like.thought_id = ?", thoughtID).
		Order("thought_like.created_at ASC").
		Find(&users).Error
	return users, err
}
