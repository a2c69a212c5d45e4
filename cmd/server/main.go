// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"go-blog/internal/config"
	"go-blog/internal/handler"
	"go-blog/internal/middleware"
	"go-blog/internal/model"
	"go-blog/internal/repository"
	"go-blog/internal/service"
	"go-blog/pkg/cache"
	"go-blog/pkg/database"
	"go-blog/pkg/log"
	"go-blog/pkg/storage"
	"go-blog/pkg/token"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库、Redis 和对象存储
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)

	if err := database.DB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Tag{},
		&model.Article{},
		&model.Comment{},
		&model.Link{},
		&model.SideBar{},
		&model.BlogSettings{},
	); err != nil {
		log.Fatal("数据库迁移失败", err)
	}

	// 4. 初始化 Repository
	userRepo := repository.NewUserRepository(database.DB)
	categoryRepo := repository.NewCategoryRepository(database.DB)
	tagRepo := repository.NewTagRepository(database.DB)
	articleRepo := repository.NewArticleRepository(database.DB)
	commentRepo := repository.NewCommentRepository(database.DB)
	siteRepo := repository.NewSiteConfigRepository(database.DB)

	// 5. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	redisCache := cache.NewRedisCache(database.RDB)
	userService := service.NewUserService(userRepo, jwtManager)
	categoryService := service.NewCategoryService(categoryRepo)
	tagService := service.NewTagService(tagRepo)
	configService := service.NewConfigService(siteRepo, tagRepo, articleRepo, commentRepo, redisCache)
	articleService := service.NewArticleService(articleRepo, categoryRepo, tagRepo, configService)
	commentService := service.NewCommentService(commentRepo, articleRepo, userRepo, configService)
	visitService := service.NewVisitService(articleRepo, redisCache, cfg.Visit.FailOpen)
	uploadService := service.NewUploadService(cfg.MinIO)

	// 6. 初始化 Handler
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	tagHandler := handler.NewTagHandler(tagService)
	articleHandler := handler.NewArticleHandler(articleService, commentService, visitService)
	commentHandler := handler.NewCommentHandler(commentService)
	configHandler := handler.NewConfigHandler(configService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	seoHandler := handler.NewSEOHandler(articleService, configService)

	// 7. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	// 添加我们自定义的日志中间件、Gin 的 Recovery 中间件和访客标识中间件
	r.Use(middleware.RequestLogger(), gin.Recovery(), middleware.VisitorID())

	// RSS 和 sitemap 挂在根路径
	r.GET("/rss", seoHandler.RSSFeed)
	r.GET("/sitemap.xml", seoHandler.SitemapXML)

	// 8. 注册路由
	authRequired := middleware.AuthMiddleware(jwtManager, userService)
	apiV1 := r.Group("/api/v1")
	{
		// Auth 路由组
		auth := apiV1.Group("/auth")
		{
			auth.POST("/refreshToken", authHandler.RefreshToken)
		}

		users := apiV1.Group("/users")
		{
			// 无需认证的路由 (公开访问)
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)

			// 需要认证的路由 (仅限登录用户访问)
			authed := users.Group("/")
			authed.Use(authRequired)
			{
				authed.GET("/me", userHandler.GetProfile)
				authed.PUT("/me", userHandler.UpdateProfile)
				authed.POST("/avatar", uploadHandler.UploadAvatar)
			}
		}

		// 文章相关的公开路由
		articles := apiV1.Group("/articles")
		{
			articles.GET("", articleHandler.List)
			articles.GET("/archives", articleHandler.Archives)
			articles.GET("/:id", articleHandler.Detail)
		}

		// 评论路由，需要认证
		comments := apiV1.Group("/articles/:id/comments")
		comments.Use(authRequired)
		{
			comments.POST("", commentHandler.Add)
		}
		apiV1.DELETE("/comments/:id", authRequired, commentHandler.Delete)

		// 分类与标签的公开路由
		apiV1.GET("/categories/tree", categoryHandler.Tree)
		apiV1.GET("/tags", tagHandler.List)

		// 站点配置的公开路由
		apiV1.GET("/settings", configHandler.Settings)
		apiV1.GET("/sidebars", configHandler.SideBars)
		apiV1.GET("/links", configHandler.Links)

		admin := apiV1.Group("/admin")
		// 管理员路由组，需要同时通过认证和管理员授权两个中间件
		admin.Use(authRequired, middleware.AdminAuthMiddleware())
		{
			// 文章管理
			admin.POST("/articles", articleHandler.Create)
			admin.PUT("/articles/:id", articleHandler.Update)
			admin.PUT("/articles/:id/publish", articleHandler.Publish)
			admin.PUT("/articles/:id/unpublish", articleHandler.Unpublish)
			admin.PUT("/articles/:id/top", articleHandler.SetTop)
			admin.DELETE("/articles/:id", articleHandler.Delete)

			// 分类管理
			admin.GET("/categories", categoryHandler.List)
			admin.POST("/categories", categoryHandler.Create)
			admin.PUT("/categories/:id", categoryHandler.Update)
			admin.DELETE("/categories/:id", categoryHandler.Delete)

			// 标签管理
			admin.POST("/tags", tagHandler.Create)
			admin.PUT("/tags/:id", tagHandler.Update)
			admin.DELETE("/tags/:id", tagHandler.Delete)

			// 站点配置管理
			admin.GET("/settings", configHandler.ListSettings)
			admin.POST("/settings", configHandler.SaveSettings)
			admin.POST("/sidebars", configHandler.SaveSideBar)
			admin.DELETE("/sidebars/:id", configHandler.DeleteSideBar)
			admin.POST("/links", configHandler.SaveLink)
			admin.DELETE("/links/:id", configHandler.DeleteLink)

			// 背景图上传
			admin.POST("/upload/background", uploadHandler.UploadBackground)
		}
	}

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
