package models

// Platform 社交平台标识
type Platform string

const (
	PlatformLinkedIn  Platform = "linkedin"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformFacebook  Platform = "facebook"
)

// DefaultPlatform 未知平台回退到LinkedIn
const DefaultPlatform = PlatformLinkedIn

// Feature 平台支持的内容特性
type Feature string

const (
	FeatureHashtags Feature = "hashtags"
	FeatureEmojis   Feature = "emojis"
	FeatureMentions Feature = "mentions"
	FeatureLinks    Feature = "links"
	FeatureThreads  Feature = "threads"
)

// PlatformConfig 平台回复规则
type PlatformConfig struct {
	Name         Platform  `json:"name"`
	MaxLength    int       `json:"maxLength"`
	Tone         string    `json:"tone"`
	Features     []Feature `json:"features"`
	PromptPrefix string    `json:"promptPrefix"`
}

// Supports 判断平台是否支持某个特性
func (p PlatformConfig) Supports(f Feature) bool {
	for _, feature := range p.Features {
		if feature == f {
			return true
		}
	}
	return false
}

var platformConfigs = map[Platform]PlatformConfig{
	PlatformLinkedIn: {
		Name:         PlatformLinkedIn,
		MaxLength:    3000,
		Tone:         "professional",
		Features:     []Feature{FeatureHashtags, FeatureMentions, FeatureLinks},
		PromptPrefix: "Create a professional LinkedIn response that",
	},
	PlatformInstagram: {
		Name:         PlatformInstagram,
		MaxLength:    2200,
		Tone:         "casual",
		Features:     []Feature{FeatureHashtags, FeatureEmojis, FeatureMentions},
		PromptPrefix: "Create an engaging Instagram response that",
	},
	PlatformTwitter: {
		Name:         PlatformTwitter,
		MaxLength:    280,
		Tone:         "concise",
		Features:     []Feature{FeatureHashtags, FeatureMentions, FeatureThreads},
		PromptPrefix: "Create a concise Twitter response that",
	},
	PlatformFacebook: {
		Name:         PlatformFacebook,
		MaxLength:    63206,
		Tone:         "friendly",
		Features:     []Feature{FeatureMentions, FeatureLinks, FeatureEmojis},
		PromptPrefix: "Create a friendly Facebook response that",
	},
}

// Platforms 返回所有平台，顺序固定
func Platforms() []PlatformConfig {
	return []PlatformConfig{
		platformConfigs[PlatformLinkedIn],
		platformConfigs[PlatformInstagram],
		platformConfigs[PlatformTwitter],
		platformConfigs[PlatformFacebook],
	}
}

// LookupPlatform 获取平台配置，未知平台返回LinkedIn配置
func LookupPlatform(name Platform) PlatformConfig {
	if cfg, ok := platformConfigs[name]; ok {
		return cfg
	}
	return platformConfigs[DefaultPlatform]
}

// IsKnownPlatform 判断是否为已配置平台
func IsKnownPlatform(name Platform) bool {
	_, ok := platformConfigs[name]
	return ok
}

// ResponseType 回复类别
type ResponseType string

const (
	ResponseReply      ResponseType = "reply"
	ResponseComment    ResponseType = "comment"
	ResponseDM         ResponseType = "dm"
	ResponseEngagement ResponseType = "engagement"
)

var responseTypes = map[ResponseType]string{
	ResponseReply:      "responds thoughtfully to the original post",
	ResponseComment:    "adds valuable insight to the conversation",
	ResponseDM:         "initiates a professional direct message conversation",
	ResponseEngagement: "encourages further discussion and engagement",
}

// DescribeResponseType 获取回复类别描述，未知类别按reply处理
func DescribeResponseType(rt ResponseType) string {
	if desc, ok := responseTypes[rt]; ok {
		return desc
	}
	return responseTypes[ResponseReply]
}

// Tone 语气变体
type Tone struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// toneCatalogue 语气目录，生成变体时只取前三个
var toneCatalogue = []Tone{
	{ID: "professional", Description: "maintains a professional and authoritative tone"},
	{ID: "casual", Description: "uses a friendly and approachable tone"},
	{ID: "enthusiastic", Description: "shows excitement and positive energy"},
	{ID: "supportive", Description: "offers encouragement and support"},
	{ID: "inquisitive", Description: "asks thoughtful questions to continue the conversation"},
}

// VariationCount 每次生成的语气变体数量
const VariationCount = 3

// Tones 返回语气目录副本
func Tones() []Tone {
	return append([]Tone(nil), toneCatalogue...)
}

// VariationTones 返回用于生成变体的语气副本
func VariationTones() []Tone {
	return append([]Tone(nil), toneCatalogue[:VariationCount]...)
}
