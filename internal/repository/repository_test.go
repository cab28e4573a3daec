package repository

import (
	"testing"

	"thoughts-system/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 创建内存SQLite测试数据库并迁移全部表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.User{},
		&model.Thought{},
		&model.Comment{},
		&model.Like{},
		&model.Friendship{},
		&model.Forum{},
	)
	require.NoError(t, err)

	return db
}

// createTestUser 创建测试用户
func createTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$10$testhash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestThought 创建测试动态
func createTestThought(t *testing.T, db *gorm.DB, author *model.User, text string) *model.Thought {
	t.Helper()

	thought := &model.Thought{
		Text:     text,
		AuthorID: author.ID,
		Author:   author.Username,
	}
	require.NoError(t, db.Create(thought).Error)
	return thought
}
