package models

import "time"

// PostEngagement 帖子互动数据
type PostEngagement struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

// Post 用户帖子
type Post struct {
	ID                string         `json:"id"`
	Content           string         `json:"content"`
	Timestamp         time.Time      `json:"timestamp"`
	EngagementMetrics PostEngagement `json:"engagement_metrics"`
	Scheduled         bool           `json:"scheduled,omitempty"`
}

// Connection 人脉联系人
type Connection struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	RelationshipType   string `json:"relationship_type"`
	InteractionHistory string `json:"interaction_history"`
}

// SocialAccount 模拟连接的社交账号
type SocialAccount struct {
	Platform    string    `json:"platform"`
	Username    string    `json:"username"`
	Followers   int       `json:"followers"`
	Avatar      string    `json:"avatar"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// ConnectAccountRequest 连接社交账号请求
type ConnectAccountRequest struct {
	Platform string `json:"platform" binding:"required"`
}

// SchedulePostRequest 定时发布请求
type SchedulePostRequest struct {
	Content string `json:"content"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// CreatePostRequest 发布帖子请求
type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

// OptimalTime 推荐发布时间
type OptimalTime struct {
	Time       string `json:"time"`
	Engagement string `json:"engagement"`
	Reason     string `json:"reason"`
}

// GetOptimalTimes 静态推荐发布时间
func GetOptimalTimes() []OptimalTime {
	return []OptimalTime{
		{Time: "9:00 AM", Engagement: "87%", Reason: "Morning check-ins"},
		{Time: "2:00 PM", Engagement: "92%", Reason: "Lunch break browsing"},
		{Time: "6:00 PM", Engagement: "85%", Reason: "Evening wind-down"},
		{Time: "8:00 PM", Engagement: "78%", Reason: "Prime social time"},
	}
}

// AgeGroup 年龄段占比
type AgeGroup struct {
	Range      string `json:"range"`
	Percentage int    `json:"percentage"`
}

// LocationShare 地区占比
type LocationShare struct {
	City       string `json:"city"`
	Percentage int    `json:"percentage"`
}

// AudienceStats 受众统计（演示数据）
type AudienceStats struct {
	TotalFollowers int             `json:"totalFollowers"`
	EngagementRate float64         `json:"engagementRate"`
	TopInterests   []string        `json:"topInterests"`
	AgeGroups      []AgeGroup      `json:"ageGroups"`
	Locations      []LocationShare `json:"locations"`
}

// GetAudienceStats 演示用受众统计
func GetAudienceStats() AudienceStats {
	return AudienceStats{
		TotalFollowers: 1247,
		EngagementRate: 8.3,
		TopInterests:   []string{"Technology", "Business", "Innovation", "Leadership"},
		AgeGroups: []AgeGroup{
			{Range: "25-34", Percentage: 35},
			{Range: "35-44", Percentage: 28},
			{Range: "45-54", Percentage: 22},
			{Range: "18-24", Percentage: 15},
		},
		Locations: []LocationShare{
			{City: "San Francisco", Percentage: 18},
			{City: "New York", Percentage: 15},
			{City: "Los Angeles", Percentage: 12},
			{City: "Seattle", Percentage: 10},
			{City: "Austin", Percentage: 8},
		},
	}
}

// MessageType 个性化消息类型
type MessageType struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// GetMessageTypes 个性化消息类型目录
func GetMessageTypes() []MessageType {
	return []MessageType{
		{Value: "follow-up", Label: "Follow-up Message", Description: "Continue a previous conversation"},
		{Value: "congratulations", Label: "Congratulations", Description: "Celebrate an achievement"},
		{Value: "introduction", Label: "Introduction", Description: "Make a new connection"},
		{Value: "collaboration", Label: "Collaboration", Description: "Propose working together"},
		{Value: "thank-you", Label: "Thank You", Description: "Express gratitude"},
	}
}

// PersonalizedMessageRequest 个性化消息请求
type PersonalizedMessageRequest struct {
	ConnectionID int    `json:"connectionId" binding:"required"`
	MessageType  string `json:"messageType" binding:"required"`
	Context      string `json:"context"`
}
