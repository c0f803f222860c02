package main

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"time"

	"simplelink/internal/config"
	"simplelink/internal/handler"
	"simplelink/internal/middleware"
	"simplelink/internal/model"
	"simplelink/internal/service"
	"simplelink/internal/shortcode"
	"simplelink/internal/store"
	auth "simplelink/pkg/jwt"
	"simplelink/pkg/logger"
	"simplelink/pkg/redis"

	_ "simplelink/docs"

	"github.com/gin-gonic/gin"
	redisClient "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title simplelink API
// @version 1.0
// @description 短链接服务：短码分发、重定向与点击统计
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

func main() {
	logger.InitLogger()
	defer func() {
		if err := logger.Logger.Sync(); err != nil {
			fmt.Println("日志同步失败:", err)
		}
	}()
	sugaredLogger := zap.S()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		sugaredLogger.Fatalf("配置加载失败: %v", err)
	}

	st, err := store.Open(store.Config{
		Driver:   store.Driver(cfg.Database.Driver),
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
		Path:     cfg.Database.Path,
	})
	if err != nil {
		sugaredLogger.Fatalf("数据库初始化失败: %v", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			sugaredLogger.Errorf("关闭数据库连接失败: %v", err)
		}
	}()
	sugaredLogger.Infof("✅ 数据库连接成功 (driver=%s)", st.Driver())

	adminToken, err := checkAndGenerateAdminToken(st)
	if err != nil {
		sugaredLogger.Fatalf("管理员初始化令牌检查失败: %v", err)
	}
	if adminToken != "" {
		sugaredLogger.Info("⚠️ 尚无用户，已生成管理员初始化令牌并写入 admin-setup-token.txt")
		sugaredLogger.Infof("⚠️ 管理员初始化令牌: %s", adminToken)
	}

	var rdb *redisClient.Client
	if cfg.Cache.Host != "" {
		rdb, err = redis.NewClient(&redis.Options{
			Host: cfg.Cache.Host, Port: cfg.Cache.Port, Password: cfg.Cache.Password, DB: cfg.Cache.DB,
		})
		if err != nil {
			sugaredLogger.Warnf("缓存连接失败: %v", err)
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					sugaredLogger.Errorf("关闭 Redis 连接失败: %v", err)
				}
			}()
			sugaredLogger.Info("✅ 缓存连接成功")
		}
	}

	tokenManager := auth.NewManager(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.ExpirationHours)
	sugaredLogger.Info("✅ 认证管理器初始化成功")

	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapRecovery(logger.Logger, true))
	router.Use(middleware.GinZapLogger(logger.Logger))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	linkService := service.NewLinkService(st, sugaredLogger)
	analyticsService := service.NewAnalyticsService(st, sugaredLogger)

	urlHandler := handler.NewShortLinkHandler(linkService, analyticsService, st)
	authHandler := handler.NewAuthHandler(st, rdb, tokenManager, adminToken)
	authMiddleware := middleware.AuthMiddleware(tokenManager)

	registerRoutes(router, urlHandler, authHandler, authMiddleware)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	sugaredLogger.Infof("🚀 服务启动成功, 访问 http://localhost:%d", cfg.Server.Port)
	sugaredLogger.Infof("📚 Swagger 文档地址: http://localhost:%d/swagger/index.html", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugaredLogger.Fatalf("服务启动失败: %v", err)
	}
}

func registerRoutes(
	router *gin.Engine,
	urlHandler *handler.ShortLinkHandler,
	authHandler *handler.AuthHandler,
	authMiddleware gin.HandlerFunc,
) {
	// 短码重定向放在根路径，保留字短码在校验层被禁止，不会与 /api 冲突
	router.GET("/:code", urlHandler.RedirectToOriginal)

	api := router.Group("/api")
	{
		api.GET("/health", urlHandler.HealthCheck)
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
	}

	protected := api.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.GetCurrentUser)
		protected.POST("/shorten", urlHandler.CreateShortLink)
		protected.GET("/links", urlHandler.GetAllLinks)
		protected.DELETE("/links/:id", urlHandler.DeleteLink)
		protected.GET("/links/:id/clicks", urlHandler.GetLinkClicks)
		protected.GET("/links/:id/sources", urlHandler.GetLinkSources)
	}
}

// checkAndGenerateAdminToken 在还没有任何用户时生成一次性的管理员
// 初始化令牌：写入 admin-setup-token.txt 并返回给调用方。
// 已有用户时返回空串，注册接口随之关闭。
func checkAndGenerateAdminToken(st *store.Store) (string, error) {
	var count int64
	if err := st.DB().Model(&model.User{}).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", nil
	}

	b := make([]byte, 32)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(shortcode.Charset))))
		if err != nil {
			return "", err
		}
		b[i] = shortcode.Charset[num.Int64()]
	}
	token := string(b)

	if err := os.WriteFile("admin-setup-token.txt", []byte(token+"\n"), 0o600); err != nil {
		return "", err
	}
	return token, nil
}
