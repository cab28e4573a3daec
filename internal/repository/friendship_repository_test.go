package repository

import (
	"testing"

	"thoughts-system/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFriendIsDirected(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, repo.AddFriend(alice.ID, bob.ID))

	// 只写入发起方一侧
	aliceFriends, err := repo.ListFriends(alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceFriends, 1)
	assert.Equal(t, "bob", aliceFriends[0].Username)

	bobFriends, err := repo.ListFriends(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobFriends)

	ok, err := repo.IsFriend(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsFriend(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddFriendIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, repo.AddFriend(alice.ID, bob.ID))
	require.NoError(t, repo.AddFriend(alice.ID, bob.ID))
	require.NoError(t, repo.AddFriend(alice.ID, bob.ID))

	friends, err := repo.ListFriends(alice.ID)
	require.NoError(t, err)
	assert.Len(t, friends, 1)

	var rows int64
	require.NoError(t, db.Model(&model.Friendship{}).
		Where("user_id = ? AND friend_id = ?", alice.ID, bob.ID).
		Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestRemoveFriend(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, repo.AddFriend(alice.ID, bob.ID))
	require.NoError(t, repo.RemoveFriend(alice.ID, bob.ID))

	friends, err := repo.ListFriends(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	// 不存在时删除是无操作
	require.NoError(t, repo.RemoveFriend(alice.ID, bob.ID))

	// 解除后可以重新添加（硬删除，唯一索引不会被残留记录占用）
	require.NoError(t, repo.AddFriend(alice.ID, bob.ID))

	friends, err = repo.ListFriends(alice.ID)
	require.NoError(t, err)
	assert.Len(t, friends, 1)
}
