package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/BinLe1988/reply-assist/models"
)

// GenerateContentSuggestions 根据受众兴趣生成内容建议，返回非空行
func (c *Client) GenerateContentSuggestions(ctx context.Context, interests []string, recentPerformance string) ([]string, error) {
	prompt := fmt.Sprintf(`Generate 3 content suggestions for a professional social media account.
Audience interests: %s.
Recent post performance indicates they engage well with: %s.
Make suggestions specific, actionable, and engaging.`, strings.Join(interests, ", "), recentPerformance)

	content, err := c.CompleteUser(ctx, prompt, SuggestionOptions)
	if err != nil {
		return nil, err
	}

	suggestions := make([]string, 0, 3)
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			suggestions = append(suggestions, line)
		}
	}
	return suggestions, nil
}

// GenerateSchedulingRecommendations 生成发布时间建议
func (c *Client) GenerateSchedulingRecommendations(ctx context.Context, goals []string) (string, error) {
	prompt := fmt.Sprintf(`Recommend optimal posting times for social media based on:
Audience engagement patterns: Most active during business hours and early evening
Goals: %s
Provide 3 specific time recommendations with rationale.`, strings.Join(goals, ", "))

	return c.CompleteUser(ctx, prompt, SchedulingOptions)
}

// PersonalizedMessagePrompt 个性化消息提示词
func PersonalizedMessagePrompt(conn models.Connection, messageType, extra string) string {
	prompt := fmt.Sprintf("Write a personalized %s message for %s.", messageType, conn.Name)
	if strings.TrimSpace(extra) != "" {
		prompt += " Context: " + extra
	}
	prompt += fmt.Sprintf(" The relationship type is %s with %s interaction history.",
		conn.RelationshipType, conn.InteractionHistory)
	return prompt
}

// GeneratePersonalizedMessage 为联系人生成个性化消息
func (c *Client) GeneratePersonalizedMessage(ctx context.Context, conn models.Connection, messageType, extra string) (string, error) {
	return c.Complete(ctx, PersonalizedMessagePrompt(conn, messageType, extra), Context{
		CommunicationStyle: string(models.StyleProfessional),
		AudienceType:       conn.RelationshipType,
	}, ReplyOptions)
}
