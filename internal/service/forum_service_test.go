package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateForum(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")

	forum, err := env.forumSvc.CreateForum(alice.ID, "  golang  ", "all things go")
	require.NoError(t, err)
	assert.Equal(t, "golang", forum.Title)
	assert.Equal(t, alice.ID, forum.CreatorID)

	// 标题必填
	_, err = env.forumSvc.CreateForum(alice.ID, "   ", "desc")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// 创建者必须存在
	_, err = env.forumSvc.CreateForum(9999, "title", "desc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListForums(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")

	_, err := env.forumSvc.CreateForum(alice.ID, "golang", "")
	require.NoError(t, err)
	_, err = env.forumSvc.CreateForum(alice.ID, "databases", "")
	require.NoError(t, err)

	summaries, err := env.forumSvc.ListForums()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	for _, s := range summaries {
		require.NotNil(t, s.Creator)
		assert.Equal(t, "alice", s.Creator.Username)
	}
}

func TestGetForum(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")

	forum, err := env.forumSvc.CreateForum(alice.ID, "golang", "all things go")
	require.NoError(t, err)

	post, err := env.thoughtSvc.CreateThought(bob.ID, "generics are nice", &forum.ID)
	require.NoError(t, err)
	_, err = env.thoughtSvc.ToggleLike(alice.ID, post.ID)
	require.NoError(t, err)

	// 论坛外的动态不出现在详情里
	_, err = env.thoughtSvc.CreateThought(bob.ID, "off topic", nil)
	require.NoError(t, err)

	detail, err := env.forumSvc.GetForum(forum.ID)
	require.NoError(t, err)
	assert.Equal(t, "golang", detail.Forum.Title)
	require.NotNil(t, detail.Creator)
	assert.Equal(t, "alice", detail.Creator.Username)
	require.Len(t, detail.Posts, 1)
	assert.Equal(t, "generics are nice", detail.Posts[0].Thought.Text)
	assert.Equal(t, int64(1), detail.Posts[0].LikeCount)

	_, err = env.forumSvc.GetForum(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
