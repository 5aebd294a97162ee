// Package prompt 构建发送给语言模型的回复提示词
package prompt

import (
	"fmt"
	"strings"

	"github.com/BinLe1988/reply-assist/models"
)

const (
	defaultAudience = "professionals"
	defaultGoals    = "increase engagement"
)

// Compose 根据原文、平台、回复类别和用户上下文生成提示词。
// 未知平台按LinkedIn处理，未知类别按reply处理，缺省风格取平台语气。
func Compose(originalContent string, platform models.Platform, responseType models.ResponseType, uc models.UserContext) string {
	cfg := models.LookupPlatform(platform)
	if platform == "" {
		platform = models.DefaultPlatform
	}
	style := StyleFor(uc, cfg)

	audience := uc.AudienceType
	if audience == "" {
		audience = defaultAudience
	}
	goals := defaultGoals
	if len(uc.Goals) > 0 {
		goals = strings.Join(uc.Goals, ", ")
	}

	hashtags := ""
	if cfg.Supports(models.FeatureHashtags) {
		hashtags = "Include relevant hashtags if appropriate"
	}
	emojis := ""
	if cfg.Supports(models.FeatureEmojis) {
		emojis = "Use emojis sparingly and appropriately"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s.\n\n", cfg.PromptPrefix, models.DescribeResponseType(responseType))
	fmt.Fprintf(&b, "Original content: \"%s\"\n\n", originalContent)
	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "- Platform: %s\n", platform)
	fmt.Fprintf(&b, "- User communication style: %s\n", style)
	fmt.Fprintf(&b, "- Target audience: %s\n", audience)
	fmt.Fprintf(&b, "- User goals: %s\n", goals)
	fmt.Fprintf(&b, "- Character limit: %d\n\n", cfg.MaxLength)
	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Keep response under %d characters\n", cfg.MaxLength)
	fmt.Fprintf(&b, "- Match the %s tone\n", style)
	b.WriteString("- Be authentic and add value to the conversation\n")
	fmt.Fprintf(&b, "- %s\n", hashtags)
	fmt.Fprintf(&b, "- %s\n", emojis)
	b.WriteString("- Avoid generic responses - make it specific and personal")
	return b.String()
}

// StyleFor 用户风格为空时使用平台语气
func StyleFor(uc models.UserContext, cfg models.PlatformConfig) string {
	if uc.CommunicationStyle != "" {
		return uc.CommunicationStyle
	}
	return cfg.Tone
}

// AudienceFor 受众为空时默认professionals
func AudienceFor(uc models.UserContext) string {
	if uc.AudienceType != "" {
		return uc.AudienceType
	}
	return defaultAudience
}

// Variation 在基础提示词后追加语气要求
func Variation(base string, tone models.Tone) string {
	return base + "\n\nAdditional requirement: " + tone.Description
}
