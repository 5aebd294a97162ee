package models

import "time"

// OnboardingRecord 引导完成记录，唯一跨会话持久化的实体
type OnboardingRecord struct {
	CommunicationStyle string     `json:"communication_style"`
	AudienceType       string     `json:"audience_type"`
	Goals              []string   `json:"goals"`
	ConnectedPlatforms []string   `json:"connected_platforms"`
	Completed          bool       `json:"completed"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	Skipped            bool       `json:"skipped,omitempty"`
}

// NewOnboardingRecord 空白引导记录
func NewOnboardingRecord() OnboardingRecord {
	return OnboardingRecord{
		Goals:              []string{},
		ConnectedPlatforms: []string{},
	}
}

// SkippedOnboardingRecord 跳过引导时使用的默认记录
func SkippedOnboardingRecord(at time.Time) OnboardingRecord {
	return OnboardingRecord{
		CommunicationStyle: string(StyleProfessional),
		AudienceType:       "professionals",
		Goals:              []string{"increase_engagement"},
		ConnectedPlatforms: []string{},
		Completed:          true,
		CompletedAt:        &at,
		Skipped:            true,
	}
}

// Clone 深拷贝
func (r OnboardingRecord) Clone() OnboardingRecord {
	out := r
	out.Goals = append([]string{}, r.Goals...)
	out.ConnectedPlatforms = append([]string{}, r.ConnectedPlatforms...)
	if r.CompletedAt != nil {
		at := *r.CompletedAt
		out.CompletedAt = &at
	}
	return out
}

// OnboardingStep 引导步骤
type OnboardingStep struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// OnboardingDataRequest 更新引导数据请求
type OnboardingDataRequest struct {
	Field string      `json:"field" binding:"required"`
	Value interface{} `json:"value"`
}

// GoToStepRequest 跳转步骤请求
type GoToStepRequest struct {
	Step int `json:"step"`
}

// ToggleGoalRequest 切换目标请求
type ToggleGoalRequest struct {
	GoalID string `json:"goalId" binding:"required"`
}
