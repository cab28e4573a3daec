package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	user, token, err := env.userSvc.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "password123", user.PasswordHash)

	// 用户名登录
	logged, token, err := env.userSvc.Login("alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, token)

	// 邮箱登录
	logged, _, err = env.userSvc.Login("alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "alice")

	// 密码错误
	_, _, err := env.userSvc.Login("alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// 用户不存在时返回同样的错误，不泄露用户是否存在
	_, _, err = env.userSvc.Login("nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterConflict(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "alice")

	// 用户名占用
	_, _, err := env.userSvc.Register("alice", "other@example.com", "password123")
	assert.ErrorIs(t, err, ErrConflict)

	// 邮箱占用
	_, _, err = env.userSvc.Register("alice2", "alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.userSvc.Register("", "a@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = env.userSvc.Register("alice", "alice@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAddFriend(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")

	list, err := env.userSvc.AddFriend(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, list.Friends, 1)
	assert.Equal(t, "bob", list.Friends[0].Username)

	// 关系是有向的：bob的好友列表不受影响
	bobProfile, err := env.userSvc.GetProfile(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobProfile.Friends)

	// 重复添加是幂等操作
	list, err = env.userSvc.AddFriend(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Len(t, list.Friends, 1)
}

func TestAddFriendSelf(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")

	_, err := env.userSvc.AddFriend(alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAddFriendMissingTarget(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")

	_, err := env.userSvc.AddFriend(alice.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveFriend(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")

	_, err := env.userSvc.AddFriend(alice.ID, bob.ID)
	require.NoError(t, err)

	list, err := env.userSvc.RemoveFriend(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list.Friends)

	// 目标不在列表中时是无操作
	list, err = env.userSvc.RemoveFriend(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list.Friends)
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	env.registerUser(t, "bob")

	_, err := env.thoughtSvc.CreateThought(alice.ID, "one", nil)
	require.NoError(t, err)
	_, err = env.thoughtSvc.CreateThought(alice.ID, "two", nil)
	require.NoError(t, err)

	summaries, err := env.userSvc.ListUsers()
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	counts := map[string]int64{}
	for _, s := range summaries {
		counts[s.User.Username] = s.ThoughtCount
	}
	assert.Equal(t, int64(2), counts["alice"])
	assert.Equal(t, int64(0), counts["bob"])
}

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")

	_, err := env.userSvc.AddFriend(alice.ID, bob.ID)
	require.NoError(t, err)

	thought, err := env.thoughtSvc.CreateThought(alice.ID, "profile thought", nil)
	require.NoError(t, err)
	_, err = env.thoughtSvc.ToggleLike(bob.ID, thought.ID)
	require.NoError(t, err)
	_, err = env.thoughtSvc.AddComment(bob.ID, thought.ID, "hi alice")
	require.NoError(t, err)

	profile, err := env.userSvc.GetProfile(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.User.Username)
	require.Len(t, profile.Thoughts, 1)
	assert.Equal(t, int64(1), profile.Thoughts[0].LikeCount)
	assert.Equal(t, int64(1), profile.Thoughts[0].CommentCount)
	require.Len(t, profile.Friends, 1)
	assert.Equal(t, "bob", profile.Friends[0].Username)

	// 按用户名查询返回相同内容
	byName, err := env.userSvc.GetProfileByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, profile.User.ID, byName.User.ID)
	assert.Len(t, byName.Thoughts, 1)

	_, err = env.userSvc.GetProfileByUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
