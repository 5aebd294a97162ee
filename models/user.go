package models

// CommunicationStyle 沟通风格
type CommunicationStyle string

const (
	StyleProfessional CommunicationStyle = "professional"
	StyleCasual       CommunicationStyle = "casual"
	StyleEnthusiastic CommunicationStyle = "enthusiastic"
	StyleSupportive   CommunicationStyle = "supportive"
)

// AudiencePreferences 受众偏好
type AudiencePreferences struct {
	Demographics    string   `json:"demographics"`
	Interests       []string `json:"interests"`
	EngagementTimes []string `json:"engagement_times"`
}

// UserProfile 当前会话的用户画像
type UserProfile struct {
	ID                  int                 `json:"id"`
	Name                string              `json:"name"`
	Email               string              `json:"email"`
	CommunicationStyle  CommunicationStyle  `json:"communication_style"`
	Goals               []string            `json:"goals"`
	AudiencePreferences AudiencePreferences `json:"audience_preferences"`
	ConnectedPlatforms  []string            `json:"connected_platforms"`
	OnboardingCompleted bool                `json:"onboarding_completed"`
}

// ProfileUpdateRequest 更新用户画像请求
type ProfileUpdateRequest struct {
	Name               *string             `json:"name"`
	CommunicationStyle *CommunicationStyle `json:"communication_style"`
	Goals              []string            `json:"goals"`
	Interests          []string            `json:"interests"`
}

// DefaultEngagementTimes 默认互动时间
func DefaultEngagementTimes() []string {
	return []string{"9:00 AM", "2:00 PM", "6:00 PM"}
}

// NewMockProfile 会话初始化时的演示用户
func NewMockProfile() UserProfile {
	return UserProfile{
		ID:                 1,
		Name:               "John Doe",
		Email:              "john@example.com",
		CommunicationStyle: StyleProfessional,
		Goals:              []string{"increase_engagement", "build_network"},
		AudiencePreferences: AudiencePreferences{
			Demographics:    "professionals",
			Interests:       []string{"technology", "business", "innovation"},
			EngagementTimes: DefaultEngagementTimes(),
		},
		ConnectedPlatforms: []string{},
	}
}

// Clone 深拷贝
func (p UserProfile) Clone() UserProfile {
	out := p
	out.Goals = append([]string(nil), p.Goals...)
	out.ConnectedPlatforms = append([]string(nil), p.ConnectedPlatforms...)
	out.AudiencePreferences.Interests = append([]string(nil), p.AudiencePreferences.Interests...)
	out.AudiencePreferences.EngagementTimes = append([]string(nil), p.AudiencePreferences.EngagementTimes...)
	return out
}

// Option 引导流程中的可选项
type Option struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Example     string `json:"example,omitempty"`
}

// CommunicationStyles 沟通风格目录
func CommunicationStyles() []Option {
	return []Option{
		{ID: "professional", Name: "Professional", Description: "Formal, authoritative, and business-focused",
			Example: "Thank you for sharing this insightful perspective. I'd like to add that..."},
		{ID: "casual", Name: "Casual", Description: "Friendly, approachable, and conversational",
			Example: "Great point! I totally agree and wanted to share my experience with..."},
		{ID: "enthusiastic", Name: "Enthusiastic", Description: "Energetic, positive, and engaging",
			Example: "This is amazing! 🚀 I love how you've approached this topic..."},
		{ID: "supportive", Name: "Supportive", Description: "Encouraging, empathetic, and helpful",
			Example: "I really appreciate you sharing this. It takes courage to be vulnerable..."},
	}
}

// AudienceTypes 受众类型目录
func AudienceTypes() []Option {
	return []Option{
		{ID: "professionals", Name: "Business Professionals", Description: "Colleagues, industry peers, and business contacts"},
		{ID: "entrepreneurs", Name: "Entrepreneurs", Description: "Startup founders, business owners, and innovators"},
		{ID: "creatives", Name: "Creatives", Description: "Artists, designers, writers, and creative professionals"},
		{ID: "general", Name: "General Audience", Description: "Mixed audience with varied interests and backgrounds"},
	}
}

// UserGoals 用户目标目录
func UserGoals() []Option {
	return []Option{
		{ID: "increase_engagement", Name: "Increase Engagement", Description: "Get more likes, comments, and shares on your content"},
		{ID: "build_network", Name: "Build Network", Description: "Connect with new people and expand your professional network"},
		{ID: "thought_leadership", Name: "Thought Leadership", Description: "Establish yourself as an expert in your field"},
		{ID: "brand_awareness", Name: "Brand Awareness", Description: "Increase visibility for your personal or business brand"},
		{ID: "lead_generation", Name: "Lead Generation", Description: "Generate business leads and opportunities"},
		{ID: "community_building", Name: "Community Building", Description: "Build and nurture an engaged community around your content"},
	}
}
