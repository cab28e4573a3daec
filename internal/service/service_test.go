package service

import (
	"testing"
	"time"

	"thoughts-system/config"
	"thoughts-system/internal/model"
	"thoughts-system/internal/repository"
	"thoughts-system/pkg/jwt"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv 测试环境：内存数据库 + 全部服务
// Redis未初始化，缓存调用全部失败并回源数据库（与Redis宕机时的线上行为一致）
type testEnv struct {
	db         *gorm.DB
	userSvc    *UserService
	thoughtSvc *ThoughtService
	forumSvc   *ForumService
}

func newTestEnv(t *testing.T) *testEnv {
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

	jwtSvc := jwt.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key",
		ExpireTime: time.Hour,
		Issuer:     "thoughts-system",
	})

	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendshipRepository(db)
	thoughtRepo := repository.NewThoughtRepository(db)
	forumRepo := repository.NewForumRepository(db)

	thoughtSvc := NewThoughtService(thoughtRepo, userRepo, forumRepo)

	return &testEnv{
		db:         db,
		userSvc:    NewUserService(userRepo, friendRepo, thoughtRepo, jwtSvc),
		thoughtSvc: thoughtSvc,
		forumSvc:   NewForumService(forumRepo, userRepo, thoughtRepo, thoughtSvc),
	}
}

// registerUser 注册测试用户
func (e *testEnv) registerUser(t *testing.T, username string) *model.User {
	t.Helper()

	user, token, err := e.userSvc.Register(username, username+"@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	return user
}
