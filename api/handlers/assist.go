package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BinLe1988/reply-assist/models"
)

// 定时发布的日期时间格式
const scheduleLayout = "2006-01-02 15:04"

var defaultInterests = []string{"technology", "business"}

// GetOptimalTimes 推荐发布时间
func (h *Handler) GetOptimalTimes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"optimalTimes": models.GetOptimalTimes()})
}

// SchedulePost 定时发布，内容、日期、时间均必填
func (h *Handler) SchedulePost(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	var req models.SchedulePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Content) == "" || req.Date == "" || req.Time == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all fields"})
		return
	}

	at, err := time.Parse(scheduleLayout, req.Date+" "+req.Time)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD and time HH:MM"})
		return
	}

	post, err := sess.Profile.AddPost(req.Content, at, true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// GetSchedulingRecommendations 调用模型生成发布时间建议
func (h *Handler) GetSchedulingRecommendations(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	goals := sess.Profile.User().Goals
	if len(goals) == 0 {
		goals = []string{"increase_engagement"}
	}

	recs, err := h.assistant.GenerateSchedulingRecommendations(c.Request.Context(), goals)
	if err != nil {
		h.upstreamError(c, "Failed to generate scheduling recommendations", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// GetInsights 受众统计与表现最好的帖子
func (h *Handler) GetInsights(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"audience": models.GetAudienceStats(),
		"topPosts": sess.Profile.TopPosts(3),
	})
}

// GetContentSuggestions 根据受众兴趣生成内容建议
func (h *Handler) GetContentSuggestions(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	interests := sess.Profile.User().AudiencePreferences.Interests
	if len(interests) == 0 {
		interests = defaultInterests
	}

	suggestions, err := h.assistant.GenerateContentSuggestions(c.Request.Context(), interests, "professional content with practical insights")
	if err != nil {
		h.upstreamError(c, "Failed to generate content suggestions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// GetMessageTypes 个性化消息类型
func (h *Handler) GetMessageTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messageTypes": models.GetMessageTypes()})
}

// GeneratePersonalizedMessage 为联系人生成个性化消息
func (h *Handler) GeneratePersonalizedMessage(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	var req models.PersonalizedMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, found := sess.Profile.FindConnection(req.ConnectionID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Connection not found"})
		return
	}

	message, err := h.assistant.GeneratePersonalizedMessage(c.Request.Context(), conn, req.MessageType, req.Context)
	if err != nil {
		h.upstreamError(c, "Failed to generate personalized message", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"connection": conn,
		"message":    message,
	})
}
