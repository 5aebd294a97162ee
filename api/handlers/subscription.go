package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BinLe1988/reply-assist/models"
	"github.com/BinLe1988/reply-assist/pkg/session"
)

// GetSubscriptionPlans 获取订阅计划
func (h *Handler) GetSubscriptionPlans(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"plans":      models.GetSubscriptionPlans(),
		"subscribed": sess.Profile.IsSubscribed(),
		"checkout":   sess.Profile.Checkout(),
	})
}

// Subscribe 模拟订阅，已订阅时返回409
func (h *Handler) Subscribe(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	var req models.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkout, err := sess.Profile.Subscribe(req.PlanID)
	switch {
	case errors.Is(err, session.ErrUnknownPlan):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription plan"})
		return
	case errors.Is(err, session.ErrAlreadySubscribed):
		c.JSON(http.StatusConflict, gin.H{"error": "Already subscribed"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Subscription updated successfully",
		"checkout": checkout,
	})
}
