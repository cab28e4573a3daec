package repository

import (
	"thoughts-system/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendshipRepository 好友关系数据仓储
// 关系是有向边：AddFriend(A, B) 只写入 A -> B 一条记录
type FriendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository 创建FriendshipRepository实例
func NewFriendshipRepository(db *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

// AddFriend 添加好友（幂等）
// 依赖 (user_id, friend_id) 唯一索引，重复添加不产生新记录
func (r *FriendshipRepository) AddFriend(userID, friendID uint) error {
	edge := &model.Friendship{UserID: userID, FriendID: friendID}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "friend_id"}},
		DoNothing: true,
	}).Create(edge).Error
}

// RemoveFriend 删除好友（不存在时为无操作）
func (r *FriendshipRepository) RemoveFriend(userID, friendID uint) error {
	return r.db.Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&model.Friendship{}).Error
}

// ListFriends 获取用户的好友列表（仅发起方视角）
func (r *FriendshipRepository) ListFriends(userID uint) ([]*model.User, error) {
	var friends []*model.User
	err := r.db.Model(&model.User{}).
		Joins("JOIN friendship ON friendship.friend_id = user.id").
		Where("friendship.user_id = ?", userID).
		Order("friendship.created_at DESC").
		Find(&friends).Error
	return friends, err
}

// IsFriend 判断 userID 是否已添加 friendID
func (r *FriendshipRepository) IsFriend(userID, friendID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Count(&count).Error
	return count > 0, err
}
