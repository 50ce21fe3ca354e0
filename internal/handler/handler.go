package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ai-digest/config"
	"ai-digest/internal/model"
	"ai-digest/internal/service"
)

type Handler struct {
	limiter    *service.RateLimiter
	gemini     *service.GeminiService
	digest     *service.DigestService
	store      *service.ArticleStore
	subscriber *service.SubscriberService
	status     *service.StatusService
	scheduler  interface {
		GetNextDigestTime() time.Time
	}
}

func NewHandler(db *gorm.DB, cfg *config.Config) *Handler {
	gemini := service.NewGeminiService(cfg.Gemini)
	return &Handler{
		limiter:    service.NewRateLimiter(),
		gemini:     gemini,
		digest:     service.NewDigestService(gemini),
		store:      service.NewArticleStore(db),
		subscriber: service.NewSubscriberService(db),
		status:     service.NewStatusService(db),
	}
}

// SetScheduler 设置调度器引用
func (h *Handler) SetScheduler(scheduler interface {
	GetNextDigestTime() time.Time
}) {
	h.scheduler = scheduler
}

// Limiter 暴露限流器,调度器和HTTP入口共用一份冷却状态
func (h *Handler) Limiter() *service.RateLimiter {
	return h.limiter
}

// Digest 暴露摘要服务
func (h *Handler) Digest() *service.DigestService {
	return h.digest
}

// Store 暴露文章存储
func (h *Handler) Store() *service.ArticleStore {
	return h.store
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		// Digest
		api.GET("/digest/generate", h.GenerateDigest)

		// Articles
		api.GET("/articles", h.ListArticles)
		api.POST("/articles", h.SaveArticles)
		api.DELETE("/articles", h.ClearArticles)

		// Subscribe
		api.POST("/subscribe", h.Subscribe)
		api.DELETE("/subscribe", h.Unsubscribe)

		// Status
		api.GET("/status", h.GetStatus)
	}
}

// ===== Digest相关 =====

// GenerateDigest 生成一批摘要
// 冷却中也返回200,错误放在响应体里,前端统一处理
func (h *Handler) GenerateDigest(c *gin.Context) {
	allowed, remaining := h.limiter.CheckAndRecord(time.Now())
	if !allowed {
		c.JSON(http.StatusOK, gin.H{
			"error":   true,
			"message": fmt.Sprintf("Please wait %d seconds before generating another digest.", remaining),
		})
		return
	}

	if !h.gemini.HasAPIKey() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Server configuration error. Please check environment variables.",
		})
		return
	}

	result := h.digest.Generate(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"articles": result.Articles,
		"sources":  result.Sources,
	})
}

// ===== Article相关 =====

func (h *Handler) ListArticles(c *gin.Context) {
	articles, err := h.store.ListArticles(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while fetching articles."})
		return
	}

	if articles == nil {
		articles = []model.Article{}
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

type saveArticlesRequest struct {
	Articles []model.Article `json:"articles"`
}

func (h *Handler) SaveArticles(c *gin.Context) {
	var req saveArticlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: No articles provided."})
		return
	}

	_, err := h.store.SaveArticles(req.Articles)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoArticles):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: No articles provided."})
		case errors.Is(err, service.ErrBatchTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Too many articles. Maximum 20 allowed."})
		case errors.Is(err, service.ErrPayloadTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "Request body too large."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while saving articles."})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Articles saved successfully."})
}

func (h *Handler) ClearArticles(c *gin.Context) {
	deleted, err := h.store.ClearArticles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if deleted == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No articles to clear.", "deletedCount": 0})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      fmt.Sprintf("Successfully cleared %d articles.", deleted),
		"deletedCount": deleted,
	})
}

// ===== Subscribe相关 =====

type subscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Handler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user data provided."})
		return
	}

	if err := h.subscriber.Subscribe(req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully subscribed!"})
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user data provided."})
		return
	}

	if err := h.subscriber.Unsubscribe(req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully unsubscribed!"})
}

// ===== Status相关 =====

func (h *Handler) GetStatus(c *gin.Context) {
	status, err := h.status.GetSystemStatus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// 添加定时任务信息
	if h.scheduler != nil {
		status.NextDigestTime = h.scheduler.GetNextDigestTime()
	}

	c.JSON(http.StatusOK, status)
}
