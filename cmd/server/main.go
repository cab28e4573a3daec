package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thoughts-system/config"
	"thoughts-system/internal/handler"
	"thoughts-system/internal/model"
	"thoughts-system/internal/repository"
	"thoughts-system/internal/service"
	dbPkg "thoughts-system/pkg/db"
	"thoughts-system/pkg/jwt"
	"thoughts-system/pkg/logger"
	redisPkg "thoughts-system/pkg/redis"
	"thoughts-system/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	cfg := config.LoadConfig()

	// 2. 初始化日志系统
	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	log.Info("=== Thoughts社交系统启动 ===")
	log.Info("服务器配置信息",
		zap.String("port", cfg.Server.Port),
		zap.String("database_host", cfg.Database.Host),
		zap.Int("database_port", cfg.Database.Port),
		zap.String("database_name", cfg.Database.Database),
		zap.Duration("jwt_expire_time", cfg.JWT.ExpireTime),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 初始化数据库连接
	db, err := dbPkg.InitDB(cfg.Database)
	if err != nil {
		log.Fatal("数据库连接失败", zap.Error(err))
	}
	defer func() {
		if err := dbPkg.CloseDB(); err != nil {
			log.Error("关闭数据库连接失败", zap.Error(err))
		}
	}()
	log.Info("数据库连接成功")

	// 3.1 自动迁移表结构
	if err := dbPkg.AutoMigrate(
		&model.User{},
		&model.Thought{},
		&model.Comment{},
		&model.Like{},
		&model.Friendship{},
		&model.Forum{},
	); err != nil {
		log.Fatal("自动迁移失败", zap.Error(err))
	}
	log.Info("自动迁移完成")

	// 3.2 初始化Redis（缓存层，失败不阻塞启动，计数与列表直接回源数据库）
	if err := redisPkg.InitRedis(cfg.Redis); err != nil {
		log.Warn("Redis连接失败，缓存功能不可用", zap.Error(err))
	} else {
		redisPkg.SetCacheConfig(cfg.Cache.FeedTTL, cfg.Cache.LikeCountTTL, cfg.Cache.MaxFeedThoughts)
		log.Info("Redis连接成功")
		defer func() {
			if err := redisPkg.Close(); err != nil {
				log.Error("关闭Redis连接失败", zap.Error(err))
			}
		}()
	}

	// 3.3 初始化业务服务
	jwtSvc := jwt.NewJWTService(cfg.JWT)
	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendshipRepository(db)
	thoughtRepo := repository.NewThoughtRepository(db)
	forumRepo := repository.NewForumRepository(db)

	userSvc := service.NewUserService(userRepo, friendRepo, thoughtRepo, jwtSvc)
	thoughtSvc := service.NewThoughtService(thoughtRepo, userRepo, forumRepo)
	forumSvc := service.NewForumService(forumRepo, userRepo, thoughtRepo, thoughtSvc)

	userHandler := handler.NewUserHandler(userSvc)
	thoughtHandler := handler.NewThoughtHandler(thoughtSvc)
	forumHandler := handler.NewForumHandler(forumSvc)

	// 4. 设置Gin模式
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 5. 创建Gin路由
	router := gin.New()

	// 使用中间件
	router.Use(logger.LoggerMiddleware())      // 自定义日志中间件
	router.Use(logger.ErrorLoggerMiddleware()) // 错误日志中间件

	// 6. 设置基础路由
	setupBasicRoutes(router)

	// 6.1 绑定业务路由
	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			// 公开接口（无需认证）
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.GET("", userHandler.ListUsers)

			// 需要认证的接口
			authUsers := users.Group("")
			authUsers.Use(jwtSvc.AuthMiddleware())
			{
				authUsers.GET("/me", userHandler.Me)
				authUsers.POST("/friends/:friend_id", userHandler.AddFriend)
				authUsers.DELETE("/friends/:friend_id", userHandler.RemoveFriend)
			}

			// 放在最后，避免吞掉 /me 等静态路径
			users.GET("/:username", userHandler.GetUser)
		}

		thoughts := v1.Group("/thoughts")
		{
			// 公开查询；详情带可选认证，登录用户能读到自己的点赞状态
			thoughts.GET("", thoughtHandler.ListThoughts)
			thoughts.GET("/:thought_id", jwtSvc.OptionalAuthMiddleware(), thoughtHandler.GetThought)

			// 需要认证的变更操作
			authThoughts := thoughts.Group("")
			authThoughts.Use(jwtSvc.AuthMiddleware())
			{
				authThoughts.POST("", thoughtHandler.CreateThought)
				authThoughts.DELETE("/:thought_id", thoughtHandler.DeleteThought)
				authThoughts.POST("/:thought_id/comments", thoughtHandler.AddComment)
				authThoughts.DELETE("/:thought_id/comments/:comment_id", thoughtHandler.DeleteComment)
				authThoughts.POST("/:thought_id/like", thoughtHandler.LikeThought)
			}
		}

		forums := v1.Group("/forums")
		{
			forums.GET("", forumHandler.ListForums)
			forums.GET("/:forum_id", forumHandler.GetForum)

			authForums := forums.Group("")
			authForums.Use(jwtSvc.AuthMiddleware())
			{
				authForums.POST("", forumHandler.CreateForum)
			}
		}
	}

	// 7. 创建HTTP服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 8. 启动HTTP服务器
	go func() {
		log.Info("HTTP服务器启动", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP服务器启动失败", zap.Error(err))
		}
	}()

	// 9. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务器...")

	// 设置关闭超时
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 关闭HTTP服务器
	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP服务器关闭失败", zap.Error(err))
	}

	log.Info("服务器已安全关闭")
}

// setupBasicRoutes 设置基础路由
func setupBasicRoutes(router *gin.Engine) {
	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if err := dbPkg.HealthCheck(); err != nil {
			status = "db-down"
		}
		response.Success(c, gin.H{
			"status":  status,
			"message": "Thoughts社交系统运行状态",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// 根路径
	router.GET("/", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "欢迎使用Thoughts社交系统",
			"version": "1.0.0",
		})
	})

	// 配置信息路由（系统状态监控）
	router.GET("/config", func(c *gin.Context) {
		cfg := config.LoadConfig()
		response.Success(c, gin.H{
			"server": gin.H{
				"port": cfg.Server.Port,
			},
			"database": gin.H{
				"host":     cfg.Database.Host,
				"port":     cfg.Database.Port,
				"database": cfg.Database.Database,
				"driver":   cfg.Database.Driver,
			},
			"jwt": gin.H{
				"expireTime": cfg.JWT.ExpireTime.String(),
				"issuer":     cfg.JWT.Issuer,
			},
			"log": gin.H{
				"level":    cfg.Log.Level,
				"filename": cfg.Log.Filename,
			},
		})
	})
}
