package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BinLe1988/reply-assist/models"
	"github.com/BinLe1988/reply-assist/pkg/reply"
)

// GenerateReply 生成平台优化回复并记录统计
func (h *Handler) GenerateReply(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	var req models.GenerateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 未传上下文时使用用户画像
	uc := sess.Profile.ReplyContext()
	if req.UserContext != nil {
		uc = *req.UserContext
	}

	start := time.Now()
	result, err := sess.Replies.GeneratePlatformOptimizedReply(c.Request.Context(), req.OriginalContent, req.Platform, req.ResponseType, uc)
	if err != nil {
		if errors.Is(err, reply.ErrEmptyContent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.upstreamError(c, "Failed to generate reply", err)
		return
	}

	elapsed := float64(time.Since(start).Milliseconds())
	sess.Analytics.TrackReplyGenerated(c.Request.Context(), string(result.Platform), elapsed)

	c.JSON(http.StatusOK, gin.H{
		"reply":        result,
		"responseTime": elapsed,
	})
}

// GetReplyHistory 回复历史，最新在前
func (h *Handler) GetReplyHistory(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": sess.Replies.History()})
}

// MarkReplyUsed 标记历史回复已使用，ID不存在时返回404
func (h *Handler) MarkReplyUsed(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	if !sess.Replies.MarkReplyAsUsed(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reply not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reply marked as used"})
}

// GetSavedReplies 已保存回复，q参数按内容或标签过滤
func (h *Handler) GetSavedReplies(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	if q := c.Query("q"); q != "" {
		c.JSON(http.StatusOK, gin.H{"saved": sess.Replies.SearchSavedReplies(q)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": sess.Replies.SavedReplies()})
}

// SaveReply 保存回复
func (h *Handler) SaveReply(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	var req models.SaveReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved := sess.Replies.SaveReply(req.Response, req.Platform, req.Tags)
	c.JSON(http.StatusCreated, gin.H{"saved": saved})
}

// UseSavedReply 已保存回复使用次数加一
func (h *Handler) UseSavedReply(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	saved, found := sess.Replies.UseSavedReply(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Saved reply not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

func (h *Handler) GetReplyStats(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Replies.GetReplyStats())
}

// GetReplyStatus 生成中标志和最近一次错误
func (h *Handler) GetReplyStatus(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Replies.Status())
}
