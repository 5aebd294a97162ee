// Package analytics 维护会话级的使用统计快照
package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BinLe1988/reply-assist/models"
	"github.com/BinLe1988/reply-assist/pkg/logger"
	"github.com/BinLe1988/reply-assist/pkg/store"
)

const dateLayout = "2006-01-02"

// Tracker 统计聚合器，每次变更后整体写回存储
type Tracker struct {
	store store.Store
	key   string
	log   *logger.Logger
	now   func() time.Time

	mu       sync.Mutex
	snapshot models.AnalyticsSnapshot
}

// NewTracker 从存储加载快照，缺失或损坏时使用零值
func NewTracker(ctx context.Context, s store.Store, sessionID string, log *logger.Logger) *Tracker {
	t := &Tracker{
		store: s,
		key:   store.SessionKey(sessionID, store.AnalyticsKey),
		log:   log,
		now:   time.Now,
	}
	snapshot, _, err := store.Load(ctx, s, t.key, models.NewAnalyticsSnapshot, log)
	if err != nil {
		log.Warn("Error loading analytics data", "error", err)
	}
	t.snapshot = normalize(snapshot)
	return t
}

// normalize 旧数据中缺失的map补齐
func normalize(s models.AnalyticsSnapshot) models.AnalyticsSnapshot {
	if s.PlatformBreakdown == nil {
		s.PlatformBreakdown = map[string]int{}
	}
	if s.DailyUsage == nil {
		s.DailyUsage = map[string]int{}
	}
	if s.TopPerformingReplies == nil {
		s.TopPerformingReplies = []string{}
	}
	return s
}

func (t *Tracker) today() string {
	return t.now().UTC().Format(dateLayout)
}

// persist 调用方持有锁。写入失败时内存快照保持更新
func (t *Tracker) persist(ctx context.Context) error {
	if err := store.Save(ctx, t.store, t.key, t.snapshot); err != nil {
		t.log.Error("Error saving analytics data", "error", err)
		return err
	}
	return nil
}

// runningMean 增量均值，首个样本直接作为均值
func runningMean(prevMean float64, prevCount int, value float64) float64 {
	if prevCount <= 0 {
		return value
	}
	return (prevMean*float64(prevCount) + value) / float64(prevCount+1)
}

// TrackReplyGenerated 记录一次生成
func (t *Tracker) TrackReplyGenerated(ctx context.Context, platform string, responseTime float64) models.AnalyticsSnapshot {
	if platform == "" {
		platform = string(models.DefaultPlatform)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	s := &t.snapshot
	s.AverageResponseTime = runningMean(s.AverageResponseTime, s.TotalRepliesGenerated, responseTime)
	s.TotalRepliesGenerated++
	s.PlatformBreakdown[platform]++
	s.DailyUsage[t.today()]++

	_ = t.persist(ctx)
	return t.snapshot.Clone()
}

// TrackReplyUsed 记录回复被使用及其互动数据
func (t *Tracker) TrackReplyUsed(ctx context.Context, replyID, platform string, engagement models.EngagementData) models.AnalyticsSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := &t.snapshot
	s.TotalRepliesUsed++
	s.EngagementMetrics.TotalLikes += engagement.Likes
	s.EngagementMetrics.TotalComments += engagement.Comments
	s.EngagementMetrics.TotalShares += engagement.Shares

	t.log.Debug("Reply used", "reply", replyID, "platform", platform)
	_ = t.persist(ctx)
	return t.snapshot.Clone()
}

// TrackSession 记录一次会话时长
func (t *Tracker) TrackSession(ctx context.Context, duration float64) models.AnalyticsSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	a := &t.snapshot.UserActivity
	a.AverageSessionDuration = runningMean(a.AverageSessionDuration, a.SessionsThisWeek, duration)
	a.SessionsThisWeek++
	today := t.today()
	a.LastActiveDate = &today

	_ = t.persist(ctx)
	return t.snapshot.Clone()
}

// Reset 清零并写回，写回失败时返回错误
func (t *Tracker) Reset(ctx context.Context) (models.AnalyticsSnapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.snapshot = models.NewAnalyticsSnapshot()
	if err := t.persist(ctx); err != nil {
		return t.snapshot.Clone(), fmt.Errorf("reset analytics: %w", err)
	}
	return t.snapshot.Clone(), nil
}

// Snapshot 当前快照副本
func (t *Tracker) Snapshot() models.AnalyticsSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot.Clone()
}

// GetUsageRate 使用率百分比，保留一位小数，无生成时为0
func (t *Tracker) GetUsageRate() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return usageRate(t.snapshot)
}

func usageRate(s models.AnalyticsSnapshot) float64 {
	if s.TotalRepliesGenerated == 0 {
		return 0
	}
	return roundTo1(float64(s.TotalRepliesUsed) / float64(s.TotalRepliesGenerated) * 100)
}

// GetTopPlatform 使用最多的平台，无数据时为linkedin，并列时取字母序靠前者
func (t *Tracker) GetTopPlatform() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return topPlatform(t.snapshot)
}

func topPlatform(s models.AnalyticsSnapshot) string {
	if len(s.PlatformBreakdown) == 0 {
		return string(models.DefaultPlatform)
	}
	names := sortedKeys(s.PlatformBreakdown)
	top := names[0]
	for _, name := range names[1:] {
		if s.PlatformBreakdown[name] > s.PlatformBreakdown[top] {
			top = name
		}
	}
	return top
}

// GetDailyUsageData 最近days天的使用量，最早的在前
func (t *Tracker) GetDailyUsageData(days int) []models.DailyUsagePoint {
	t.mu.Lock()
	defer t.mu.Unlock()
	return dailyUsage(t.snapshot, t.now().UTC(), days)
}

func dailyUsage(s models.AnalyticsSnapshot, today time.Time, days int) []models.DailyUsagePoint {
	if days <= 0 {
		days = 7
	}
	data := make([]models.DailyUsagePoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		key := date.Format(dateLayout)
		data = append(data, models.DailyUsagePoint{
			Date:  key,
			Day:   date.Format("Mon"),
			Usage: s.DailyUsage[key],
		})
	}
	return data
}

// GetPlatformUsageData 各平台占比
func (t *Tracker) GetPlatformUsageData() []models.PlatformUsage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return platformUsage(t.snapshot)
}

func platformUsage(s models.AnalyticsSnapshot) []models.PlatformUsage {
	out := make([]models.PlatformUsage, 0, len(s.PlatformBreakdown))
	for _, name := range sortedKeys(s.PlatformBreakdown) {
		count := s.PlatformBreakdown[name]
		pct := 0.0
		if s.TotalRepliesGenerated > 0 {
			pct = roundTo1(float64(count) / float64(s.TotalRepliesGenerated) * 100)
		}
		out = append(out, models.PlatformUsage{
			Platform:   capitalize(name),
			Count:      count,
			Percentage: pct,
		})
	}
	return out
}

// GetEngagementRate 每条已用回复的平均互动数
func (t *Tracker) GetEngagementRate() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return engagementRate(t.snapshot)
}

func engagementRate(s models.AnalyticsSnapshot) float64 {
	if s.TotalRepliesUsed == 0 {
		return 0
	}
	m := s.EngagementMetrics
	total := m.TotalLikes + m.TotalComments + m.TotalShares
	return roundTo1(float64(total) / float64(s.TotalRepliesUsed))
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
