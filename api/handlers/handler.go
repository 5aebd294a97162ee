package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BinLe1988/reply-assist/api/middleware"
	"github.com/BinLe1988/reply-assist/models"
	"github.com/BinLe1988/reply-assist/pkg/logger"
	"github.com/BinLe1988/reply-assist/pkg/onboarding"
	"github.com/BinLe1988/reply-assist/pkg/session"
	"github.com/BinLe1988/reply-assist/pkg/utils"
)

// Assistant 回复之外的辅助生成能力
type Assistant interface {
	GenerateContentSuggestions(ctx context.Context, interests []string, recentPerformance string) ([]string, error)
	GenerateSchedulingRecommendations(ctx context.Context, goals []string) (string, error)
	GeneratePersonalizedMessage(ctx context.Context, conn models.Connection, messageType, extra string) (string, error)
}

// Handler HTTP处理器，依赖在启动时注入
type Handler struct {
	sessions  *session.Manager
	tokens    *utils.TokenManager
	assistant Assistant
	log       *logger.Logger
}

func New(sessions *session.Manager, tokens *utils.TokenManager, assistant Assistant, log *logger.Logger) *Handler {
	return &Handler{
		sessions:  sessions,
		tokens:    tokens,
		assistant: assistant,
		log:       log,
	}
}

// current 取当前会话，中间件未设置时返回500
func (h *Handler) current(c *gin.Context) (*session.Session, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session not loaded"})
		return nil, false
	}
	return sess, true
}

// upstreamError 推理服务失败统一返回502
func (h *Handler) upstreamError(c *gin.Context, msg string, err error) {
	h.log.Error(msg, "error", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

// CreateSession 创建会话并签发令牌
func (h *Handler) CreateSession(c *gin.Context) {
	var req struct {
		Flow onboarding.Flow `json:"flow"`
	}
	// 请求体可选
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	sess := h.sessions.Create(c.Request.Context(), req.Flow)
	token, err := h.tokens.GenerateToken(sess.ID, string(sess.Flow))
	if err != nil {
		h.log.Error("Failed to generate token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sessionId": sess.ID,
		"token":     token,
	})
}

// GetRoute 已完成引导进入主界面，否则进入引导
func (h *Handler) GetRoute(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}
	route := "onboarding"
	if sess.Onboarding.IsCompleted() {
		route = "main"
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

// GetCatalog 平台、语气与引导选项目录
func (h *Handler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"platforms":           models.Platforms(),
		"tones":               models.Tones(),
		"communicationStyles": models.CommunicationStyles(),
		"audienceTypes":       models.AudienceTypes(),
		"goals":               models.UserGoals(),
	})
}
