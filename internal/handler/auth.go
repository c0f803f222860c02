package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"simplelink/internal/model"
	"simplelink/internal/store"
	auth "simplelink/pkg/jwt"
)

// AuthHandler 包含认证相关的处理器
//
// 注册在第一个用户创建后即关闭，第一个用户必须携带启动时生成的
// 管理员初始化令牌。核心业务只消费认证后的 user_id，不参与这里的流程。
type AuthHandler struct {
	store      *store.Store
	redis      *redis.Client
	jwtManager *auth.TokenManager
	adminToken string
}

// NewAuthHandler 创建一个新的 AuthHandler
func NewAuthHandler(st *store.Store, redisClient *redis.Client, jwtManager *auth.TokenManager, adminToken string) *AuthHandler {
	return &AuthHandler{store: st, redis: redisClient, jwtManager: jwtManager, adminToken: adminToken}
}

// LoginRequest 定义了登录请求的结构体
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// RegisterRequest 定义了注册请求的结构体
type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email" example:"admin@example.com"`
	Password   string `json:"password" binding:"required,min=6" example:"password123"`
	AdminToken string `json:"admin_token" example:"x1y2z3..."`
}

// UserResponse 对外暴露的用户信息
type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// AuthResponse 定义了认证成功后的响应
type AuthResponse struct {
	Token string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  UserResponse `json:"user"`
}

// Register godoc
// @Summary 用户注册
// @Description 创建第一个（也是唯一的）用户，需要管理员初始化令牌
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param   account  body   RegisterRequest  true  "注册信息"
// @Success 201 {object} AuthResponse "成功响应"
// @Failure 400 {object} gin.H "请求无效、注册已关闭或令牌错误"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据: " + err.Error()})
		return
	}

	var count int64
	if err := h.store.DB().Model(&model.User{}).Count(&count).Error; err != nil {
		zap.S().Errorf("查询用户数量失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "注册已关闭"})
		return
	}
	if h.adminToken == "" || req.AdminToken != h.adminToken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "管理员初始化令牌无效"})
		return
	}

	user := model.User{Email: req.Email}
	if err := user.SetPassword(req.Password); err != nil {
		zap.S().Errorf("密码加密失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "密码加密失败"})
		return
	}

	if err := h.store.DB().Create(&user).Error; err != nil {
		if store.IsKind(store.Classify(err), store.KindUniqueViolation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "该邮箱已被注册"})
			return
		}
		zap.S().Errorf("创建用户失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建用户失败"})
		return
	}

	h.cacheUser(&user)

	token, err := h.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		zap.S().Errorf("注册后生成令牌失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成令牌失败"})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: UserResponse{ID: user.ID, Email: user.Email}})
}

// Login godoc
// @Summary 用户登录
// @Description 使用邮箱和密码获取 JWT 令牌
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param   account  body   LoginRequest  true  "登录凭据"
// @Success 200 {object} AuthResponse "成功响应"
// @Failure 400 {object} gin.H "请求无效"
// @Failure 401 {object} gin.H "认证失败"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据: " + err.Error()})
		return
	}

	var user model.User
	userKey := "user:" + req.Email
	if h.redis != nil {
		val, err := h.redis.Get(c.Request.Context(), userKey).Result()
		if err == nil {
			var cached cachedUser
			if json.Unmarshal([]byte(val), &cached) == nil && cached.PasswordHash != "" {
				user = model.User{ID: cached.ID, Email: cached.Email, PasswordHash: cached.PasswordHash, CreatedAt: cached.CreatedAt}
				goto VerifyPassword
			}
		}
	}

	if err := h.store.DB().Where("email = ?", req.Email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.S().Errorf("查询用户失败: %v", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "邮箱或密码错误"})
		return
	}

	h.cacheUser(&user)

VerifyPassword:
	if !user.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "邮箱或密码错误"})
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		zap.S().Errorf("生成令牌失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成令牌失败"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: UserResponse{ID: user.ID, Email: user.Email}})
}

// GetCurrentUser godoc
// @Summary 获取当前用户信息
// @Tags Auth
// @Security ApiKeyAuth
// @Produce  json
// @Success 200 {object} UserResponse "成功响应"
// @Failure 401 {object} gin.H "未认证"
// @Failure 404 {object} gin.H "用户不存在"
// @Router /api/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	var user model.User
	if err := h.store.DB().First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "用户不存在"})
		return
	}

	c.JSON(http.StatusOK, UserResponse{ID: user.ID, Email: user.Email})
}

// cacheUser 把用户记录写入 Redis，缓存未配置时为空操作。
// 密码哈希不经 JSON 暴露，这里单独缓存一份带哈希的副本。
func (h *AuthHandler) cacheUser(user *model.User) {
	if h.redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	payload, err := json.Marshal(cachedUser{ID: user.ID, Email: user.Email, PasswordHash: user.PasswordHash, CreatedAt: user.CreatedAt})
	if err != nil {
		return
	}
	h.redis.Set(ctx, "user:"+user.Email, payload, 1*time.Hour)
}

// cachedUser 是 Redis 里用户记录的存储形态，包含 JSON 序列化会
// 丢弃的密码哈希字段。
type cachedUser struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}
