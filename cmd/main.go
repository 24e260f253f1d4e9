package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"store-rating-backend/config"
	"store-rating-backend/internal/api/admin"
	"store-rating-backend/internal/api/rating"
	"store-rating-backend/internal/api/store"
	"store-rating-backend/internal/api/user"
	"store-rating-backend/internal/common"
	"store-rating-backend/internal/middleware"
	"store-rating-backend/internal/repository/mysql"
	"store-rating-backend/internal/service"
	"store-rating-backend/internal/storage"
	"store-rating-backend/internal/util"
	"store-rating-backend/internal/validation"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 设置数据库连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	// 连接数据库
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	// 测试数据库连接，启动阶段允许短暂重试
	if err := common.WithRetry(db.Ping, 3); err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 初始化数据表
	if err := mysql.EnsureSchema(db); err != nil {
		util.Logger.Fatal("初始化数据表失败", zap.Error(err))
	}

	// 注册自定义验证器
	validation.RegisterCustomValidators()

	// 按配置选择文件存储后端
	fileStorage, err := newFileStorage()
	if err != nil {
		util.Logger.Fatal("初始化文件存储失败", zap.Error(err))
	}

	// 初始化存储库、服务和处理器
	userRepo := mysql.NewUserRepository(db)
	storeRepo := mysql.NewStoreRepository(db)
	ratingRepo := mysql.NewRatingRepository(db)

	userService := service.NewUserService(userRepo)
	storeService := service.NewStoreService(storeRepo, ratingRepo)
	ratingService := service.NewRatingService(ratingRepo)
	adminService := service.NewAdminService(userRepo)

	authHandler := user.NewAuthHandler(userService)
	profileHandler := user.NewProfileHandler(userService, fileStorage)
	userHandler := user.NewUserHandler(userService)
	storeHandler := store.NewStoreHandler(storeService)
	ratingHandler := rating.NewRatingHandler(ratingService)
	adminHandler := admin.NewAdminHandler(adminService)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	r.Use(cors.New(corsConfig))

	// 本地存储时直接暴露上传目录
	if config.AppConfig.StorageDriver == "local" {
		r.Static("/uploads", config.AppConfig.LocalStoragePath)
	}

	auth := middleware.AuthMiddleware(userService)

	// 定义 API 路由
	api := r.Group("/api")
	{
		// 认证相关路由
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 需要认证的用户路由
		api.GET("/profile", auth, profileHandler.GetProfile)
		api.PUT("/profile", auth, profileHandler.UpdateProfile)
		api.POST("/profile/avatar", auth, profileHandler.UploadAvatar)
		api.PUT("/password", auth, authHandler.ChangePassword)
		api.POST("/logout", auth, authHandler.Logout)
		api.GET("/users", auth, userHandler.ListUsers)

		// 商店路由：读公开，写需要认证
		api.GET("/stores", storeHandler.ListStores)
		api.GET("/stores/:id", storeHandler.GetStore)
		api.POST("/stores", auth, storeHandler.CreateStore)
		api.PUT("/stores/:id", auth, storeHandler.UpdateStore)
		api.DELETE("/stores/:id", auth, storeHandler.DeleteStore)

		// 评分路由
		api.GET("/stores/:id/ratings", ratingHandler.ListStoreRatings)
		api.GET("/ratings", ratingHandler.ListAllRatings)
		api.GET("/ratings/user", auth, ratingHandler.ListMyRatings)
		api.POST("/ratings", auth, ratingHandler.CreateRating)
		api.PUT("/ratings/:id", auth, ratingHandler.UpdateRating)
		api.DELETE("/ratings/:id", auth, ratingHandler.DeleteRating)

		// 管理员路由组
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(auth, middleware.AdminMiddleware())
		{
			adminRoutes.GET("/users", adminHandler.GetUsers)
			adminRoutes.POST("/users", adminHandler.CreateUser)
			adminRoutes.PUT("/users/:id/role", adminHandler.UpdateUserRole)
			adminRoutes.DELETE("/users/:id", adminHandler.DeleteUser)
		}
	}

	// 创建 http.Server 以支持优雅关闭
	srv := &http.Server{
		Addr:    ":" + config.AppConfig.ServerPort,
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动", zap.String("port", config.AppConfig.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器（5 秒超时）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}

// newFileStorage 按 STORAGE_DRIVER 构造文件存储后端
func newFileStorage() (storage.FileStorage, error) {
	if config.AppConfig.StorageDriver == "s3" {
		return storage.NewS3Storage(config.AppConfig.S3Region, config.AppConfig.S3Bucket)
	}
	return storage.NewLocalStorage(config.AppConfig.LocalStoragePath)
}
