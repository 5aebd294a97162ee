package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BinLe1988/reply-assist/models"
)

// GetOnboarding 引导状态
func (h *Handler) GetOnboarding(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Onboarding.State())
}

// NextOnboardingStep 前进一步，当前步骤数据不完整时返回422
func (h *Handler) NextOnboardingStep(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}
	if !sess.Onboarding.CanAdvance() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Please complete the current step before continuing",
			"state": sess.Onboarding.State(),
		})
		return
	}
	c.JSON(http.StatusOK, sess.Onboarding.Next())
}

func (h *Handler) PreviousOnboardingStep(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Onboarding.Previous())
}

// GoToOnboardingStep 越界的步骤被忽略
func (h *Handler) GoToOnboardingStep(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	var req models.GoToStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess.Onboarding.GoToStep(req.Step))
}

// UpdateOnboardingData 更新引导数据字段
func (h *Handler) UpdateOnboardingData(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	var req models.OnboardingDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := sess.Onboarding.UpdateData(req.Field, req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *Handler) ToggleOnboardingGoal(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	var req models.ToggleGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess.Onboarding.ToggleGoal(req.GoalID))
}

// CompleteOnboarding 完成引导
func (h *Handler) CompleteOnboarding(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	state, err := sess.Onboarding.Complete(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to complete onboarding", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save onboarding"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// SkipOnboarding 跳过引导
func (h *Handler) SkipOnboarding(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	state, err := sess.Onboarding.Skip(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to skip onboarding", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save onboarding"})
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *Handler) ResetOnboarding(c *gin.Context) {
	sess, ok := h.current(c)
	if !ok {
		return
	}

	state, err := sess.Onboarding.Reset(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to reset onboarding", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset onboarding"})
		return
	}
	c.JSON(http.StatusOK, state)
}
