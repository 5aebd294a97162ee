package api

import (
	"github.com/gin-gonic/gin"

	"github.com/BinLe1988/reply-assist/api/handlers"
	"github.com/BinLe1988/reply-assist/api/middleware"
	"github.com/BinLe1988/reply-assist/pkg/logger"
	"github.com/BinLe1988/reply-assist/pkg/session"
	"github.com/BinLe1988/reply-assist/pkg/utils"
)

// SetupRouter 设置API路由
func SetupRouter(router *gin.Engine, h *handlers.Handler, tokens *utils.TokenManager, sessions *session.Manager, allowOrigins []string, log *logger.Logger) {
	router.Use(middleware.CORS(allowOrigins), middleware.RequestLogger(log))

	// 公共API
	public := router.Group("/api")
	{
		public.POST("/sessions", h.CreateSession)
	}

	// 需要会话令牌的API
	authorized := router.Group("/api")
	authorized.Use(middleware.Session(tokens, sessions))
	{
		authorized.GET("/route", h.GetRoute)
		authorized.GET("/catalog", h.GetCatalog)

		// 用户画像
		authorized.GET("/profile", h.GetProfile)
		authorized.PUT("/profile", h.UpdateProfile)
		authorized.GET("/profile/accounts", h.GetAccounts)
		authorized.POST("/profile/accounts", h.ConnectAccount)
		authorized.GET("/posts", h.GetPosts)
		authorized.POST("/posts", h.CreatePost)
		authorized.GET("/connections", h.GetConnections)

		// 引导
		onboarding := authorized.Group("/onboarding")
		onboarding.GET("", h.GetOnboarding)
		onboarding.POST("/next", h.NextOnboardingStep)
		onboarding.POST("/previous", h.PreviousOnboardingStep)
		onboarding.POST("/goto", h.GoToOnboardingStep)
		onboarding.POST("/data", h.UpdateOnboardingData)
		onboarding.POST("/goals/toggle", h.ToggleOnboardingGoal)
		onboarding.POST("/complete", h.CompleteOnboarding)
		onboarding.POST("/skip", h.SkipOnboarding)
		onboarding.POST("/reset", h.ResetOnboarding)

		// 回复
		replies := authorized.Group("/replies")
		replies.POST("/generate", h.GenerateReply)
		replies.GET("/history", h.GetReplyHistory)
		replies.POST("/history/:id/used", h.MarkReplyUsed)
		replies.GET("/saved", h.GetSavedReplies)
		replies.POST("/saved", h.SaveReply)
		replies.POST("/saved/:id/use", h.UseSavedReply)
		replies.GET("/stats", h.GetReplyStats)
		replies.GET("/status", h.GetReplyStatus)

		// 统计
		stats := authorized.Group("/analytics")
		stats.GET("", h.GetAnalytics)
		stats.POST("/used", h.TrackReplyUsed)
		stats.POST("/sessions", h.TrackSession)
		stats.POST("/reset", h.ResetAnalytics)
		stats.GET("/export", h.ExportAnalytics)

		// 订阅相关
		authorized.GET("/subscriptions", h.GetSubscriptionPlans)
		authorized.POST("/subscriptions", h.Subscribe)

		// 排期、洞察与个性化互动
		authorized.GET("/scheduling/optimal-times", h.GetOptimalTimes)
		authorized.POST("/scheduling/posts", h.SchedulePost)
		authorized.GET("/scheduling/recommendations", h.GetSchedulingRecommendations)
		authorized.GET("/insights", h.GetInsights)
		authorized.GET("/insights/suggestions", h.GetContentSuggestions)
		authorized.GET("/interactions/message-types", h.GetMessageTypes)
		authorized.POST("/interactions/messages", h.GeneratePersonalizedMessage)
	}
}
