package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BinLe1988/reply-assist/models"
	"github.com/BinLe1988/reply-assist/pkg/session"
)

// GetProfile 获取用户画像
func (h *Handler) GetProfile(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":       sess.Profile.User(),
		"subscribed": sess.Profile.IsSubscribed(),
	})
}

// UpdateProfile 更新用户画像
func (h *Handler) UpdateProfile(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	var req models.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    sess.Profile.Update(req),
	})
}

// GetAccounts 已连接的社交账号
func (h *Handler) GetAccounts(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": sess.Profile.Accounts()})
}

// ConnectAccount 模拟连接社交账号
func (h *Handler) ConnectAccount(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	var req models.ConnectAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := sess.Profile.ConnectSocialAccount(c.Request.Context(), req.Platform)
	if err != nil {
		if errors.Is(err, session.ErrUnknownPlatform) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "Connection cancelled"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// GetPosts 帖子列表
func (h *Handler) GetPosts(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": sess.Profile.Posts()})
}

// CreatePost 发布帖子
func (h *Handler) CreatePost(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := sess.Profile.AddPost(req.Content, time.Time{}, false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// GetConnections 人脉列表
func (h *Handler) GetConnections(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"connections": sess.Profile.Connections()})
}
