// Package reply 负责平台优化回复的生成、历史和收藏
package reply

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/BinLe1988/reply-assist/models"
	"github.com/BinLe1988/reply-assist/pkg/ai"
	"github.com/BinLe1988/reply-assist/pkg/logger"
	"github.com/BinLe1988/reply-assist/pkg/prompt"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyContent 原文为空时不发起生成
var ErrEmptyContent = errors.New("original content is required")

// Engine 单个会话的回复引擎
type Engine struct {
	completer ai.Completer
	log       *logger.Logger
	now       func() time.Time

	mu      sync.RWMutex
	history []models.ReplyHistoryEntry
	saved   []models.SavedReply

	// 生成状态，仅本会话可见
	generating int
	lastErr    string
}

// NewEngine 创建回复引擎
func NewEngine(completer ai.Completer, log *logger.Logger) *Engine {
	return &Engine{
		completer: completer,
		log:       log,
		now:       time.Now,
		history:   []models.ReplyHistoryEntry{},
		saved:     []models.SavedReply{},
	}
}

// GeneratePlatformOptimizedReply 生成主回复并并发生成三个语气变体。
// 变体失败只记录日志，主回复总会返回。
func (e *Engine) GeneratePlatformOptimizedReply(ctx context.Context, originalContent string, platform models.Platform, responseType models.ResponseType, uc models.UserContext) (*models.GeneratedReply, error) {
	if strings.TrimSpace(originalContent) == "" {
		return nil, ErrEmptyContent
	}
	if platform == "" {
		platform = models.DefaultPlatform
	}
	if responseType == "" {
		responseType = models.ResponseReply
	}

	e.beginGenerate()
	defer e.endGenerate()

	cfg := models.LookupPlatform(platform)
	basePrompt := prompt.Compose(originalContent, platform, responseType, uc)

	response, err := e.completer.Complete(ctx, basePrompt, ai.Context{
		CommunicationStyle: prompt.StyleFor(uc, cfg),
		AudienceType:       prompt.AudienceFor(uc),
		Platform:           platform,
	}, ai.ReplyOptions)
	if err != nil {
		e.log.Error("Error generating platform-optimized reply", "platform", platform, "error", err)
		e.setLastError(err.Error())
		return nil, err
	}

	count := utf8.RuneCountInString(response)
	entry := models.ReplyHistoryEntry{
		ID:              e.newHistoryID(),
		OriginalContent: originalContent,
		Response:        response,
		Platform:        platform,
		ResponseType:    responseType,
		Timestamp:       e.now().UTC(),
		CharacterCount:  count,
	}
	e.appendHistory(entry)

	return &models.GeneratedReply{
		ID:             entry.ID,
		Response:       response,
		CharacterCount: count,
		Platform:       platform,
		WithinLimit:    count <= cfg.MaxLength,
		Suggestions:    e.generateVariations(ctx, basePrompt, uc, platform),
	}, nil
}

// beginGenerate 开始生成时清空上次错误
func (e *Engine) beginGenerate() {
	e.mu.Lock()
	e.generating++
	e.lastErr = ""
	e.mu.Unlock()
}

func (e *Engine) endGenerate() {
	e.mu.Lock()
	e.generating--
	e.mu.Unlock()
}

func (e *Engine) setLastError(msg string) {
	e.mu.Lock()
	e.lastErr = msg
	e.mu.Unlock()
}

// Status 当前会话的生成状态和最近一次错误
func (e *Engine) Status() models.ReplyStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return models.ReplyStatus{
		Generating: e.generating > 0,
		Error:      e.lastErr,
	}
}

// generateVariations 三个调用全部结束后返回，顺序与语气目录一致
func (e *Engine) generateVariations(ctx context.Context, basePrompt string, uc models.UserContext, platform models.Platform) []models.Suggestion {
	tones := models.VariationTones()
	results := make([]*models.Suggestion, len(tones))

	var g errgroup.Group
	for i, tone := range tones {
		i, tone := i, tone
		g.Go(func() error {
			out, err := e.completer.Complete(ctx, prompt.Variation(basePrompt, tone), ai.Context{
				CommunicationStyle: tone.ID,
				AudienceType:       uc.AudienceType,
				Platform:           platform,
			}, ai.ReplyOptions)
			if err != nil {
				e.log.Warn("Error generating variation", "tone", tone.ID, "error", err)
				return nil
			}
			results[i] = &models.Suggestion{
				Tone:           tone.ID,
				Response:       out,
				CharacterCount: utf8.RuneCountInString(out),
			}
			return nil
		})
	}
	_ = g.Wait()

	suggestions := make([]models.Suggestion, 0, len(tones))
	for _, s := range results {
		if s != nil {
			suggestions = append(suggestions, *s)
		}
	}
	return suggestions
}

func (e *Engine) newHistoryID() string {
	return ulid.MustNew(ulid.Timestamp(e.now()), ulid.DefaultEntropy()).String()
}

// appendHistory 新条目在前，最多保留50条
func (e *Engine) appendHistory(entry models.ReplyHistoryEntry) {
	e.mu.Lock()
	defer e.mu.Unlock()

	keep := e.history
	if len(keep) > models.MaxReplyHistory-1 {
		keep = keep[:models.MaxReplyHistory-1]
	}
	history := make([]models.ReplyHistoryEntry, 0, len(keep)+1)
	history = append(history, entry)
	e.history = append(history, keep...)
}

// SaveReply 收藏回复，不去重
func (e *Engine) SaveReply(response string, platform models.Platform, tags []string) models.SavedReply {
	if tags == nil {
		tags = []string{}
	}
	saved := models.SavedReply{
		ID:        uuid.NewString(),
		Content:   response,
		Platform:  platform,
		Tags:      append([]string{}, tags...),
		Timestamp: e.now().UTC(),
	}

	e.mu.Lock()
	e.saved = append([]models.SavedReply{saved}, e.saved...)
	e.mu.Unlock()

	return saved
}

// MarkReplyAsUsed 标记历史回复已使用，找不到时返回false
func (e *Engine) MarkReplyAsUsed(historyID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.history {
		if e.history[i].ID == historyID {
			e.history[i].Used = true
			return true
		}
	}
	return false
}

// UseSavedReply 收藏回复使用次数加一
func (e *Engine) UseSavedReply(id string) (models.SavedReply, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.saved {
		if e.saved[i].ID == id {
			e.saved[i].UseCount++
			return cloneSaved(e.saved[i]), true
		}
	}
	return models.SavedReply{}, false
}

// History 返回历史副本，最新在前
func (e *Engine) History() []models.ReplyHistoryEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]models.ReplyHistoryEntry{}, e.history...)
}

// SavedReplies 返回收藏副本，最新在前
func (e *Engine) SavedReplies() []models.SavedReply {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]models.SavedReply, 0, len(e.saved))
	for _, s := range e.saved {
		out = append(out, cloneSaved(s))
	}
	return out
}

// SearchSavedReplies 按内容或标签搜索收藏，不区分大小写
func (e *Engine) SearchSavedReplies(query string) []models.SavedReply {
	q := strings.ToLower(query)

	e.mu.RLock()
	defer e.mu.RUnlock()

	out := []models.SavedReply{}
	for _, s := range e.saved {
		if strings.Contains(strings.ToLower(s.Content), q) || tagMatches(s.Tags, q) {
			out = append(out, cloneSaved(s))
		}
	}
	return out
}

func tagMatches(tags []string, q string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func cloneSaved(s models.SavedReply) models.SavedReply {
	s.Tags = append([]string{}, s.Tags...)
	return s
}

// GetReplyStats 基于当前历史实时计算统计
func (e *Engine) GetReplyStats() models.ReplyStats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	result := models.ReplyStats{
		TotalGenerated:    len(e.history),
		PlatformBreakdown: map[models.Platform]int{},
	}
	lengths := make(stats.Float64Data, 0, len(e.history))
	for _, entry := range e.history {
		if entry.Used {
			result.TotalUsed++
		}
		result.PlatformBreakdown[entry.Platform]++
		lengths = append(lengths, float64(entry.CharacterCount))
	}

	if result.TotalGenerated == 0 {
		return result
	}

	result.UsageRate = roundTo1(float64(result.TotalUsed) / float64(result.TotalGenerated) * 100)
	if mean, err := stats.Mean(lengths); err == nil {
		result.AverageLength = int(math.Round(mean))
	}
	if median, err := stats.Median(lengths); err == nil {
		result.MedianLength = median
	}
	return result
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
