package models

// EngagementMetrics 累计互动数据
type EngagementMetrics struct {
	TotalLikes    int `json:"totalLikes"`
	TotalComments int `json:"totalComments"`
	TotalShares   int `json:"totalShares"`
}

// UserActivity 用户活跃数据
type UserActivity struct {
	SessionsThisWeek       int     `json:"sessionsThisWeek"`
	AverageSessionDuration float64 `json:"averageSessionDuration"`
	LastActiveDate         *string `json:"lastActiveDate"`
}

// AnalyticsSnapshot 本地分析快照
type AnalyticsSnapshot struct {
	TotalRepliesGenerated int               `json:"totalRepliesGenerated"`
	TotalRepliesUsed      int               `json:"totalRepliesUsed"`
	PlatformBreakdown     map[string]int    `json:"platformBreakdown"`
	DailyUsage            map[string]int    `json:"dailyUsage"`
	AverageResponseTime   float64           `json:"averageResponseTime"`
	TopPerformingReplies  []string          `json:"topPerformingReplies"`
	EngagementMetrics     EngagementMetrics `json:"engagementMetrics"`
	UserActivity          UserActivity      `json:"userActivity"`
}

// NewAnalyticsSnapshot 全零快照
func NewAnalyticsSnapshot() AnalyticsSnapshot {
	return AnalyticsSnapshot{
		PlatformBreakdown:    map[string]int{},
		DailyUsage:           map[string]int{},
		TopPerformingReplies: []string{},
	}
}

// Clone 深拷贝
func (s AnalyticsSnapshot) Clone() AnalyticsSnapshot {
	out := s
	out.PlatformBreakdown = make(map[string]int, len(s.PlatformBreakdown))
	for k, v := range s.PlatformBreakdown {
		out.PlatformBreakdown[k] = v
	}
	out.DailyUsage = make(map[string]int, len(s.DailyUsage))
	for k, v := range s.DailyUsage {
		out.DailyUsage[k] = v
	}
	out.TopPerformingReplies = append([]string{}, s.TopPerformingReplies...)
	if s.UserActivity.LastActiveDate != nil {
		d := *s.UserActivity.LastActiveDate
		out.UserActivity.LastActiveDate = &d
	}
	return out
}

// EngagementData 回复被使用后的互动数据
type EngagementData struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

// DailyUsagePoint 每日使用量
type DailyUsagePoint struct {
	Date  string `json:"date"`
	Day   string `json:"day"`
	Usage int    `json:"usage"`
}

// PlatformUsage 平台使用占比
type PlatformUsage struct {
	Platform   string  `json:"platform"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// AnalyticsSummary 导出时附带的汇总
type AnalyticsSummary struct {
	UsageRate      float64           `json:"usageRate"`
	TopPlatform    string            `json:"topPlatform"`
	EngagementRate float64           `json:"engagementRate"`
	DailyUsage     []DailyUsagePoint `json:"dailyUsage"`
	PlatformUsage  []PlatformUsage   `json:"platformUsage"`
}

// AnalyticsExport 导出文档
type AnalyticsExport struct {
	AnalyticsSnapshot
	ExportDate string           `json:"exportDate"`
	Summary    AnalyticsSummary `json:"summary"`
}

// TrackUsedRequest 记录回复使用请求
type TrackUsedRequest struct {
	ReplyID    string         `json:"replyId"`
	Platform   string         `json:"platform"`
	Engagement EngagementData `json:"engagement"`
}

// TrackSessionRequest 记录会话请求
type TrackSessionRequest struct {
	Duration float64 `json:"duration"`
}
