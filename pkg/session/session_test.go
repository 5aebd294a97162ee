package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BinLe1988/reply-assist/models"
	"github.com/BinLe1988/reply-assist/pkg/ai"
	"github.com/BinLe1988/reply-assist/pkg/logger"
	"github.com/BinLe1988/reply-assist/pkg/onboarding"
	"github.com/BinLe1988/reply-assist/pkg/store"
)

type staticCompleter string

func (s staticCompleter) Complete(context.Context, string, ai.Context, ai.Options) (string, error) {
	return string(s), nil
}

func TestNewProfileMockData(t *testing.T) {
	p := NewProfile(0)

	user := p.User()
	assert.Equal(t, "John Doe", user.Name)
	assert.Equal(t, models.StyleProfessional, user.CommunicationStyle)

	conns := p.Connections()
	require.Len(t, conns, 2)
	assert.Equal(t, "Sarah Johnson", conns[0].Name)
	assert.Equal(t, "client", conns[1].RelationshipType)

	top := p.TopPosts(1)
	require.Len(t, top, 1)
	assert.Equal(t, 42, top[0].EngagementMetrics.Likes)
}

func TestAddPostPrepends(t *testing.T) {
	p := NewProfile(0)
	post, err := p.AddPost("Shipping today", time.Time{}, false)
	require.NoError(t, err)

	posts := p.Posts()
	require.Len(t, posts, 3)
	assert.Equal(t, post.ID, posts[0].ID)
	assert.False(t, posts[0].Timestamp.IsZero())

	_, err = p.AddPost("   ", time.Time{}, false)
	assert.True(t, errors.Is(err, ErrEmptyPost))
}

func TestConnectSocialAccount(t *testing.T) {
	p := NewProfile(0)

	account, err := p.ConnectSocialAccount(context.Background(), "Twitter")
	require.NoError(t, err)
	assert.Equal(t, "twitter", account.Platform)
	assert.Equal(t, "@user_twitter", account.Username)
	assert.GreaterOrEqual(t, account.Followers, 1000)
	assert.Less(t, account.Followers, 11000)

	_, err = p.ConnectSocialAccount(context.Background(), "twitter")
	require.NoError(t, err)
	assert.Equal(t, []string{"twitter"}, p.User().ConnectedPlatforms)
	assert.Len(t, p.Accounts(), 1)

	_, err = p.ConnectSocialAccount(context.Background(), "myspace")
	assert.True(t, errors.Is(err, ErrUnknownPlatform))
}

func TestConnectSocialAccountHonoursContext(t *testing.T) {
	p := NewProfile(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ConnectSocialAccount(ctx, "linkedin")
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, p.Accounts())
}

func TestSubscribe(t *testing.T) {
	p := NewProfile(0)

	_, err := p.Subscribe("platinum")
	assert.True(t, errors.Is(err, ErrUnknownPlan))
	assert.False(t, p.IsSubscribed())

	checkout, err := p.Subscribe("pro")
	require.NoError(t, err)
	assert.Equal(t, 19.99, checkout.Amount)
	assert.Equal(t, models.CheckoutCompleted, checkout.Status)
	assert.True(t, p.IsSubscribed())

	_, err = p.Subscribe("starter")
	assert.True(t, errors.Is(err, ErrAlreadySubscribed))
	assert.Equal(t, "pro", p.Checkout().PlanID)
}

func TestApplyOnboardingMirrorsPreferences(t *testing.T) {
	p := NewProfile(0)
	p.ApplyOnboarding(models.OnboardingRecord{
		CommunicationStyle: "casual",
		AudienceType:       "creatives",
		Goals:              []string{"brand_awareness"},
		ConnectedPlatforms: []string{"instagram"},
		Completed:          true,
	})

	user := p.User()
	assert.True(t, user.OnboardingCompleted)
	assert.Equal(t, models.StyleCasual, user.CommunicationStyle)
	assert.Equal(t, "creatives", user.AudiencePreferences.Demographics)
	assert.Equal(t, []string{"9:00 AM", "2:00 PM", "6:00 PM"}, user.AudiencePreferences.EngagementTimes)

	uc := p.ReplyContext()
	assert.Equal(t, "casual", uc.CommunicationStyle)
	assert.Equal(t, []string{"brand_awareness"}, uc.Goals)
}

func TestManagerCreateAndOpen(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	m := NewManager(s, staticCompleter("ok"), 0, logger.NewNop())

	sess := m.Create(ctx, onboarding.FlowFull)
	require.NotEmpty(t, sess.ID)
	got, ok := m.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)
	assert.Same(t, sess, m.Open(ctx, sess.ID, sess.Flow))

	_, err := sess.Onboarding.Skip(ctx)
	require.NoError(t, err)
	sess.Analytics.TrackReplyGenerated(ctx, "twitter", 50)

	// 新进程中按ID恢复
	restarted := NewManager(s, staticCompleter("ok"), 0, logger.NewNop())
	_, ok = restarted.Get(sess.ID)
	assert.False(t, ok)
	restored := restarted.Open(ctx, sess.ID, onboarding.FlowFull)
	assert.True(t, restored.Onboarding.IsCompleted())
	assert.True(t, restored.Profile.User().OnboardingCompleted)
	assert.Equal(t, 1, restored.Analytics.Snapshot().TotalRepliesGenerated)
	assert.Equal(t, 1, restarted.Len())
}

func TestQuickFlowSession(t *testing.T) {
	m := NewManager(store.NewMemoryStore(), staticCompleter("ok"), 0, logger.NewNop())
	sess := m.Create(context.Background(), onboarding.FlowQuick)
	assert.Len(t, sess.Onboarding.State().Steps, 3)
}

func TestQuickFlowSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	sess := NewManager(s, staticCompleter("ok"), 0, logger.NewNop()).Create(ctx, onboarding.FlowQuick)
	assert.Equal(t, onboarding.FlowQuick, sess.Flow)

	restarted := NewManager(s, staticCompleter("ok"), 0, logger.NewNop())
	restored := restarted.Open(ctx, sess.ID, sess.Flow)
	assert.Equal(t, onboarding.FlowQuick, restored.Flow)
	st := restored.Onboarding.State()
	require.Len(t, st.Steps, 3)
	assert.Equal(t, "start", st.Steps[2].ID)
}

func TestUnknownFlowFallsBackToFull(t *testing.T) {
	m := NewManager(store.NewMemoryStore(), staticCompleter("ok"), 0, logger.NewNop())
	sess := m.Open(context.Background(), "legacy", "")
	assert.Equal(t, onboarding.FlowFull, sess.Flow)
	assert.Len(t, sess.Onboarding.State().Steps, 6)
}

func TestEvictIdleDropsAndRestores(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	m := NewManager(s, staticCompleter("ok"), 0, logger.NewNop(), WithIdleTTL(time.Minute))
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	idle := m.Create(ctx, onboarding.FlowQuick)
	_, err := idle.Onboarding.Skip(ctx)
	require.NoError(t, err)
	idle.Analytics.TrackReplyGenerated(ctx, "linkedin", 80)

	clock = clock.Add(45 * time.Second)
	active := m.Create(ctx, onboarding.FlowFull)

	clock = clock.Add(30 * time.Second)
	_, ok := m.Get(active.ID)
	require.True(t, ok)

	assert.Equal(t, 1, m.EvictIdle())
	assert.Equal(t, 1, m.Len())
	_, ok = m.Get(idle.ID)
	assert.False(t, ok)

	// 下一次请求按持久化状态恢复
	restored := m.Open(ctx, idle.ID, idle.Flow)
	assert.NotSame(t, idle, restored)
	assert.True(t, restored.Onboarding.IsCompleted())
	assert.Len(t, restored.Onboarding.State().Steps, 3)
	assert.Equal(t, 1, restored.Analytics.Snapshot().TotalRepliesGenerated)
	assert.Equal(t, 2, m.Len())
}

func TestCreateSweepsIdleSessions(t *testing.T) {
	ctx := context.Background()
	m := NewManager(store.NewMemoryStore(), staticCompleter("ok"), 0, logger.NewNop(), WithIdleTTL(time.Minute))
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	for i := 0; i < 500; i++ {
		m.Create(ctx, onboarding.FlowFull)
	}
	assert.Equal(t, 500, m.Len())

	clock = clock.Add(2 * time.Minute)
	m.Create(ctx, onboarding.FlowFull)
	assert.Equal(t, 1, m.Len())
}

func TestEvictionDisabled(t *testing.T) {
	ctx := context.Background()
	m := NewManager(store.NewMemoryStore(), staticCompleter("ok"), 0, logger.NewNop(), WithIdleTTL(0))
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }
	m.Create(ctx, onboarding.FlowFull)

	clock = clock.Add(24 * time.Hour)
	assert.Equal(t, 0, m.EvictIdle())
	assert.Equal(t, 1, m.Len())
}

func TestRunStopsWithContext(t *testing.T) {
	m := NewManager(store.NewMemoryStore(), staticCompleter("ok"), 0, logger.NewNop(), WithIdleTTL(time.Minute))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
