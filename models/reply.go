package models

import "time"

// MaxReplyHistory 回复历史保留条数
const MaxReplyHistory = 50

// UserContext 生成回复时的用户上下文
type UserContext struct {
	CommunicationStyle string   `json:"communicationStyle"`
	AudienceType       string   `json:"audienceType"`
	Goals              []string `json:"goals"`
}

// ReplyHistoryEntry 回复历史条目
type ReplyHistoryEntry struct {
	ID              string       `json:"id"`
	OriginalContent string       `json:"originalContent"`
	Response        string       `json:"response"`
	Platform        Platform     `json:"platform"`
	ResponseType    ResponseType `json:"responseType"`
	Timestamp       time.Time    `json:"timestamp"`
	CharacterCount  int          `json:"characterCount"`
	Used            bool         `json:"used"`
}

// Suggestion 语气变体
type Suggestion struct {
	Tone           string `json:"tone"`
	Response       string `json:"response"`
	CharacterCount int    `json:"characterCount"`
}

// GeneratedReply 平台优化后的回复结果
type GeneratedReply struct {
	ID             string       `json:"id"`
	Response       string       `json:"response"`
	CharacterCount int          `json:"characterCount"`
	Platform       Platform     `json:"platform"`
	WithinLimit    bool         `json:"withinLimit"`
	Suggestions    []Suggestion `json:"suggestions"`
}

// SavedReply 用户收藏的回复
type SavedReply struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Platform  Platform  `json:"platform"`
	Tags      []string  `json:"tags"`
	Timestamp time.Time `json:"timestamp"`
	UseCount  int       `json:"useCount"`
}

// ReplyStats 回复统计
type ReplyStats struct {
	TotalGenerated    int              `json:"totalGenerated"`
	TotalUsed         int              `json:"totalUsed"`
	UsageRate         float64          `json:"usageRate"`
	PlatformBreakdown map[Platform]int `json:"platformBreakdown"`
	AverageLength     int              `json:"averageLength"`
	MedianLength      float64          `json:"medianLength"`
}

// GenerateReplyRequest 生成回复请求
type GenerateReplyRequest struct {
	OriginalContent string       `json:"originalContent"`
	Platform        Platform     `json:"platform"`
	ResponseType    ResponseType `json:"responseType"`
	UserContext     *UserContext `json:"userContext"`
}

// SaveReplyRequest 收藏回复请求
type SaveReplyRequest struct {
	Response string   `json:"response" binding:"required"`
	Platform Platform `json:"platform"`
	Tags     []string `json:"tags"`
}

// ReplyStatus 会话的生成状态
type ReplyStatus struct {
	Generating bool   `json:"generating"`
	Error      string `json:"error"`
}
