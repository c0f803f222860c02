package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"simplelink/internal/middleware"
	"simplelink/internal/service"
	"simplelink/internal/store"
)

// ShortLinkHandler 处理器
type ShortLinkHandler struct {
	links     *service.LinkService
	analytics *service.AnalyticsService
	store     *store.Store
}

// NewShortLinkHandler 创建处理器实例
func NewShortLinkHandler(links *service.LinkService, analytics *service.AnalyticsService, st *store.Store) *ShortLinkHandler {
	return &ShortLinkHandler{
		links:     links,
		analytics: analytics,
		store:     st,
	}
}

// HealthCheck godoc
// @Summary 健康检查
// @Description 检查服务与数据库的可用性
// @Tags Health
// @Produce  json
// @Success 200 {string} string "Healthy"
// @Failure 503 {string} string "Database unavailable"
// @Router /api/health [get]
func (h *ShortLinkHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	c.JSON(http.StatusOK, "Healthy")
}

// CreateShortLinkRequest 创建短链接的请求体
type CreateShortLinkRequest struct {
	URL        string  `json:"url" binding:"required" example:"https://github.com/gin-gonic/gin"`
	CustomCode string  `json:"custom_code" example:"my-link"`
	Source     *string `json:"source" example:"launch-email"`
}

// CreateShortLink godoc
// @Summary 创建短链接
// @Description 为一个长 URL 创建一个新的短链接，可指定自定义短码
// @Tags ShortLink
// @Security ApiKeyAuth
// @Accept  json
// @Produce  json
// @Param   link  body   CreateShortLinkRequest  true  "长链接 URL 与可选的自定义短码"
// @Success 201 {object} model.Link "成功响应"
// @Failure 400 {object} gin.H "请求无效"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /api/shorten [post]
func (h *ShortLinkHandler) CreateShortLink(c *gin.Context) {
	var req CreateShortLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据: " + err.Error()})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	link, err := h.links.Create(c.Request.Context(), userID, service.CreateLinkInput{
		URL:        req.URL,
		CustomCode: req.CustomCode,
		Source:     req.Source,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, link)
}

// RedirectToOriginal godoc
// @Summary 短码重定向
// @Description 根据短码 307 重定向到原始 URL，并记录一次点击
// @Tags ShortLink
// @Param   code   path   string  true  "短码"
// @Param   source query  string  false "来源标记"
// @Success 307 {string} string "重定向"
// @Failure 404 {object} gin.H "短码不存在"
// @Router /{code} [get]
func (h *ShortLinkHandler) RedirectToOriginal(c *gin.Context) {
	code := c.Param("code")

	link, err := h.links.Redirect(c.Request.Context(), code, c.Request.UserAgent(), c.Query("source"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	// 307 保留请求方法和请求体，目标内容日后变化时浏览器不会缓存旧跳转
	c.Redirect(http.StatusTemporaryRedirect, link.OriginalURL)
}

// GetAllLinks godoc
// @Summary 获取当前用户的全部链接
// @Tags ShortLink
// @Security ApiKeyAuth
// @Produce  json
// @Success 200 {array} model.Link "成功响应"
// @Router /api/links [get]
func (h *ShortLinkHandler) GetAllLinks(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	links, err := h.links.List(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

// DeleteLink godoc
// @Summary 删除链接
// @Description 删除当前用户名下的链接及其点击记录
// @Tags ShortLink
// @Security ApiKeyAuth
// @Param   id  path  int  true  "链接 ID"
// @Success 204 {string} string "已删除"
// @Failure 404 {object} gin.H "链接不存在"
// @Router /api/links/{id} [delete]
func (h *ShortLinkHandler) DeleteLink(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	linkID, ok := parseLinkID(c)
	if !ok {
		return
	}

	if err := h.links.Delete(c.Request.Context(), linkID, userID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetLinkClicks godoc
// @Summary 按日点击统计
// @Description 返回链接的按日点击数，日期升序，最多 30 天
// @Tags Analytics
// @Security ApiKeyAuth
// @Produce  json
// @Param   id  path  int  true  "链接 ID"
// @Success 200 {array} service.DailyClicks "成功响应"
// @Failure 404 {object} gin.H "链接不存在"
// @Router /api/links/{id}/clicks [get]
func (h *ShortLinkHandler) GetLinkClicks(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	linkID, ok := parseLinkID(c)
	if !ok {
		return
	}

	stats, err := h.analytics.GetDailyClicks(c.Request.Context(), linkID, userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetLinkSources godoc
// @Summary 来源标记排行
// @Description 返回链接的来源标记及出现次数，最多 10 条
// @Tags Analytics
// @Security ApiKeyAuth
// @Produce  json
// @Param   id  path  int  true  "链接 ID"
// @Success 200 {array} service.SourceCount "成功响应"
// @Failure 404 {object} gin.H "链接不存在"
// @Router /api/links/{id}/sources [get]
func (h *ShortLinkHandler) GetLinkSources(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	linkID, ok := parseLinkID(c)
	if !ok {
		return
	}

	stats, err := h.analytics.GetTopSources(c.Request.Context(), linkID, userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// parseLinkID 解析路径中的链接 ID，非法 ID 与不存在同样返回 404
func parseLinkID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "链接不存在"})
		return 0, false
	}
	return uint(id), true
}

// writeServiceError 把服务层错误翻译成 HTTP 响应。
// 后端原始错误只进日志，不回显给调用方。
func writeServiceError(c *gin.Context, err error) {
	var invalid *service.InvalidInputError
	var authErr *service.AuthError
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Reason})
	case errors.As(err, &authErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": authErr.Reason})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "链接不存在"})
	default:
		zap.S().Errorf("请求处理失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
	}
}
