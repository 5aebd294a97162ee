package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BinLe1988/reply-assist/models"
	"github.com/BinLe1988/reply-assist/pkg/analytics"
)

// GetAnalytics 统计快照与汇总
func (h *Handler) GetAnalytics(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Analytics.Document())
}

// TrackReplyUsed 记录回复被使用
func (h *Handler) TrackReplyUsed(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	var req models.TrackUsedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sess.Analytics.TrackReplyUsed(c.Request.Context(), req.ReplyID, req.Platform, req.Engagement))
}

// TrackSession 记录会话时长
func (h *Handler) TrackSession(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	var req models.TrackSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Duration < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duration must not be negative"})
		return
	}

	c.JSON(http.StatusOK, sess.Analytics.TrackSession(c.Request.Context(), req.Duration))
}

func (h *Handler) ResetAnalytics(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}
	snapshot, err := sess.Analytics.Reset(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to reset analytics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset analytics"})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// ExportAnalytics 下载统计文件，format为json或xlsx
func (h *Handler) ExportAnalytics(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	file, err := sess.Analytics.Export(c.DefaultQuery("format", analytics.FormatJSON))
	if err != nil {
		if errors.Is(err, analytics.ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("Failed to export analytics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export analytics"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+file.FileName)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
