package repository

import (
	"testing"

	"thoughts-system/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLike(t *testing.T) {
	db := newTestDB(t)
	repo := NewThoughtRepository(db)

	author := createTestUser(t, db, "alice")
	viewer := createTestUser(t, db, "bob")
	thought := createTestThought(t, db, author, "hello world")

	// 第一次切换：点赞
	liked, err := repo.ToggleLike(viewer.ID, thought.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := repo.CountLikes(thought.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	has, err := repo.HasLiked(viewer.ID, thought.ID)
	require.NoError(t, err)
	assert.True(t, has)

	// 第二次切换：取消点赞
	liked, err = repo.ToggleLike(viewer.ID, thought.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err = repo.CountLikes(thought.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	has, err = repo.HasLiked(viewer.ID, thought.ID)
	require.NoError(t, err)
	assert.False(t, has)

	// 第三次切换：取消后可以再次点赞（取消是硬删除，唯一索引不会被残留记录占用）
	liked, err = repo.ToggleLike(viewer.ID, thought.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err = repo.CountLikes(thought.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestToggleLikeNeverDuplicates(t *testing.T) {
	db := newTestDB(t)
	repo := NewThoughtRepository(db)

	author := createTestUser(t, db, "alice")
	thought := createTestThought(t, db, author, "no double likes")

	// 同一用户多次点赞后计数只能是0或1
	for i := 0; i < 5; i++ {
		_, err := repo.ToggleLike(author.ID, thought.ID)
		require.NoError(t, err)

		count, err := repo.CountLikes(thought.ID)
		require.NoError(t, err)
		assert.LessOrEqual(t, count, int64(1))
	}

	// 直接冲突插入不产生新记录
	var rows int64
	require.NoError(t, db.Model(&model.Like{}).
		Where("user_id = ? AND thought_id = ?", author.ID, thought.ID).
		Count(&rows).Error)
	assert.LessOrEqual(t, rows, int64(1))
}

func TestListLikers(t *testing.T) {
	db := newTestDB(t)
	repo := NewThoughtRepository(db)

	author := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	thought := createTestThought(t, db, author, "popular thought")

	_, err := repo.ToggleLike(bob.ID, thought.ID)
	require.NoError(t, err)
	_, err = repo.ToggleLike(carol.ID, thought.ID)
	require.NoError(t, err)

	likers, err := repo.ListLikers(thought.ID)
	require.NoError(t, err)
	require.Len(t, likers, 2)

	names := []string{likers[0].Username, likers[1].Username}
	assert.Contains(t, names, "bob")
	assert.Contains(t, names, "carol")
}

func TestDeleteCascade(t *testing.T) {
	db := newTestDB(t)
	repo := NewThoughtRepository(db)

	author := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	target := createTestThought(t, db, author, "to be deleted")
	other := createTestThought(t, db, author, "survivor")

	// 目标动态挂上评论和点赞
	require.NoError(t, repo.AddComment(&model.Comment{
		ThoughtID: target.ID, Text: "nice", AuthorID: bob.ID, Author: bob.Username,
	}))
	_, err := repo.ToggleLike(bob.ID, target.ID)
	require.NoError(t, err)

	// 另一条动态也挂上数据，验证不受影响
	require.NoError(t, repo.AddComment(&model.Comment{
		ThoughtID: other.ID, Text: "keep me", AuthorID: bob.ID, Author: bob.Username,
	}))
	_, err = repo.ToggleLike(bob.ID, other.ID)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteCascade(target.ID))

	// 动态本体已删除
	_, err = repo.GetByID(target.ID)
	assert.True(t, IsNotFound(err))

	// 评论和点赞没有悬挂引用
	commentCount, err := repo.CountComments(target.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), commentCount)

	likeCount, err := repo.CountLikes(target.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), likeCount)

	// 其他动态不受影响
	_, err = repo.GetByID(other.ID)
	require.NoError(t, err)

	commentCount, err = repo.CountComments(other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), commentCount)

	likeCount, err = repo.CountLikes(other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likeCount)
}

func TestListByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewThoughtRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createTestThought(t, db, alice, "from alice 1")
	createTestThought(t, db, alice, "from alice 2")
	createTestThought(t, db, bob, "from bob")

	all, err := repo.List("", 20, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	aliceOnly, err := repo.List("alice", 20, 0)
	require.NoError(t, err)
	require.Len(t, aliceOnly, 2)
	for _, th := range aliceOnly {
		assert.Equal(t, "alice", th.Author)
	}

	// 分页
	page, err := repo.List("", 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestListByForumID(t *testing.T) {
	db := newTestDB(t)
	repo := NewThoughtRepository(db)

	alice := createTestUser(t, db, "alice")
	forum := &model.Forum{Title: "golang", CreatorID: alice.ID}
	require.NoError(t, db.Create(forum).Error)

	inForum := &model.Thought{
		Text: "forum post", AuthorID: alice.ID, Author: alice.Username, ForumID: &forum.ID,
	}
	require.NoError(t, db.Create(inForum).Error)
	createTestThought(t, db, alice, "outside post")

	posts, err := repo.ListByForumID(forum.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "forum post", posts[0].Text)
}

func TestComments(t *testing.T) {
	db := newTestDB(t)
	repo := NewThoughtRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	thought := createTestThought(t, db, alice, "discuss")

	first := &model.Comment{ThoughtID: thought.ID, Text: "first", AuthorID: bob.ID, Author: bob.Username}
	second := &model.Comment{ThoughtID: thought.ID, Text: "second", AuthorID: alice.ID, Author: alice.Username}
	require.NoError(t, repo.AddComment(first))
	require.NoError(t, repo.AddComment(second))

	count, err := repo.CountComments(thought.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	comments, err := repo.ListComments(thought.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	require.NoError(t, repo.DeleteComment(first.ID))

	comments, err = repo.ListComments(thought.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "second", comments[0].Text)

	_, err = repo.GetCommentByID(first.ID)
	assert.True(t, IsNotFound(err))
}
