package reply

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BinLe1988/reply-assist/models"
	"github.com/BinLe1988/reply-assist/pkg/ai"
	"github.com/BinLe1988/reply-assist/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type completerFunc func(ctx context.Context, prompt string, c ai.Context, opts ai.Options) (string, error)

func (f completerFunc) Complete(ctx context.Context, prompt string, c ai.Context, opts ai.Options) (string, error) {
	return f(ctx, prompt, c, opts)
}

// echoCompleter 主回复返回固定文本，变体返回语气名
func echoCompleter(calls *int32) completerFunc {
	return func(_ context.Context, p string, c ai.Context, _ ai.Options) (string, error) {
		atomic.AddInt32(calls, 1)
		if strings.Contains(p, "Additional requirement:") {
			return "variation " + c.CommunicationStyle, nil
		}
		return "Primary reply", nil
	}
}

func TestGenerateReturnsPrimaryAndVariations(t *testing.T) {
	var calls int32
	e := NewEngine(echoCompleter(&calls), logger.NewNop())

	out, err := e.GeneratePlatformOptimizedReply(context.Background(), "Great news about our launch!", models.PlatformTwitter, models.ResponseReply, models.UserContext{})
	require.NoError(t, err)

	assert.Equal(t, "Primary reply", out.Response)
	assert.Equal(t, len("Primary reply"), out.CharacterCount)
	assert.Equal(t, models.PlatformTwitter, out.Platform)
	assert.True(t, out.WithinLimit)
	require.Len(t, out.Suggestions, 3)
	assert.Equal(t, "professional", out.Suggestions[0].Tone)
	assert.Equal(t, "casual", out.Suggestions[1].Tone)
	assert.Equal(t, "enthusiastic", out.Suggestions[2].Tone)
	assert.Equal(t, "variation casual", out.Suggestions[1].Response)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))

	history := e.History()
	require.Len(t, history, 1)
	assert.Equal(t, out.ID, history[0].ID)
	assert.False(t, history[0].Used)
}

func TestGeneratePassesStyleContext(t *testing.T) {
	var mu sync.Mutex
	var contexts []ai.Context
	e := NewEngine(completerFunc(func(_ context.Context, p string, c ai.Context, opts ai.Options) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if !strings.Contains(p, "Additional requirement:") {
			contexts = append(contexts, c)
			assert.Equal(t, ai.ReplyOptions, opts)
		}
		return "ok", nil
	}), logger.NewNop())

	_, err := e.GeneratePlatformOptimizedReply(context.Background(), "x", models.PlatformInstagram, "", models.UserContext{})
	require.NoError(t, err)

	require.Len(t, contexts, 1)
	assert.Equal(t, "casual", contexts[0].CommunicationStyle)
	assert.Equal(t, "professionals", contexts[0].AudienceType)
	assert.Equal(t, models.PlatformInstagram, contexts[0].Platform)
	assert.Equal(t, models.ResponseReply, e.History()[0].ResponseType)
}

func TestGenerateEmptyContentMakesNoCall(t *testing.T) {
	var calls int32
	e := NewEngine(echoCompleter(&calls), logger.NewNop())

	for _, content := range []string{"", "   \n\t"} {
		out, err := e.GeneratePlatformOptimizedReply(context.Background(), content, models.PlatformLinkedIn, models.ResponseReply, models.UserContext{})
		assert.Nil(t, out)
		assert.ErrorIs(t, err, ErrEmptyContent)
	}
	assert.Zero(t, atomic.LoadInt32(&calls))
	assert.Empty(t, e.History())
}

func TestGeneratePrimaryFailureIsReturned(t *testing.T) {
	boom := errors.New("upstream down")
	e := NewEngine(completerFunc(func(context.Context, string, ai.Context, ai.Options) (string, error) {
		return "", boom
	}), logger.NewNop())

	_, err := e.GeneratePlatformOptimizedReply(context.Background(), "x", models.PlatformLinkedIn, models.ResponseReply, models.UserContext{})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, e.History())
}

func TestStatusTracksLastErrorPerEngine(t *testing.T) {
	var failing atomic.Bool
	var engine *Engine
	var sawGenerating atomic.Bool
	shared := completerFunc(func(_ context.Context, p string, _ ai.Context, _ ai.Options) (string, error) {
		if engine != nil && engine.Status().Generating {
			sawGenerating.Store(true)
		}
		if failing.Load() && !strings.Contains(p, "Additional requirement:") {
			return "", errors.New("bad request")
		}
		return "ok", nil
	})
	engine = NewEngine(shared, logger.NewNop())
	other := NewEngine(shared, logger.NewNop())

	failing.Store(true)
	_, err := engine.GeneratePlatformOptimizedReply(context.Background(), "x", models.PlatformLinkedIn, models.ResponseReply, models.UserContext{})
	require.Error(t, err)
	assert.Equal(t, models.ReplyStatus{Error: "bad request"}, engine.Status())

	// 其他会话成功不影响本会话的错误
	failing.Store(false)
	_, err = other.GeneratePlatformOptimizedReply(context.Background(), "y", models.PlatformLinkedIn, models.ResponseReply, models.UserContext{})
	require.NoError(t, err)
	assert.Equal(t, "bad request", engine.Status().Error)
	assert.Empty(t, other.Status().Error)

	_, err = engine.GeneratePlatformOptimizedReply(context.Background(), "z", models.PlatformLinkedIn, models.ResponseReply, models.UserContext{})
	require.NoError(t, err)
	assert.Equal(t, models.ReplyStatus{}, engine.Status())
	assert.True(t, sawGenerating.Load())
}

func TestVariationsRunConcurrently(t *testing.T) {
	var inFlight int32
	allIn := make(chan struct{})
	e := NewEngine(completerFunc(func(_ context.Context, p string, c ai.Context, _ ai.Options) (string, error) {
		if !strings.Contains(p, "Additional requirement:") {
			return "primary", nil
		}
		if atomic.AddInt32(&inFlight, 1) == int32(models.VariationCount) {
			close(allIn)
		}
		// 三个变体请求必须同时在途
		select {
		case <-allIn:
			return "variation " + c.CommunicationStyle, nil
		case <-time.After(2 * time.Second):
			return "", errors.New("variations were not issued concurrently")
		}
	}), logger.NewNop())

	out, err := e.GeneratePlatformOptimizedReply(context.Background(), "x", models.PlatformLinkedIn, models.ResponseReply, models.UserContext{})
	require.NoError(t, err)
	require.Len(t, out.Suggestions, 3)
	assert.Equal(t, "variation professional", out.Suggestions[0].Response)
	assert.Equal(t, "variation enthusiastic", out.Suggestions[2].Response)
}

func TestGenerateVariationPartialFailure(t *testing.T) {
	e := NewEngine(completerFunc(func(_ context.Context, p string, c ai.Context, _ ai.Options) (string, error) {
		if c.CommunicationStyle == "casual" && strings.Contains(p, "Additional requirement:") {
			return "", errors.New("variation failed")
		}
		return "reply " + c.CommunicationStyle, nil
	}), logger.NewNop())

	out, err := e.GeneratePlatformOptimizedReply(context.Background(), "x", models.PlatformFacebook, models.ResponseComment, models.UserContext{})
	require.NoError(t, err)

	assert.Equal(t, "reply friendly", out.Response)
	require.Len(t, out.Suggestions, 2)
	assert.Equal(t, "professional", out.Suggestions[0].Tone)
	assert.Equal(t, "enthusiastic", out.Suggestions[1].Tone)
}

func TestWithinLimit(t *testing.T) {
	long := strings.Repeat("a", 281)
	e := NewEngine(completerFunc(func(context.Context, string, ai.Context, ai.Options) (string, error) {
		return long, nil
	}), logger.NewNop())

	out, err := e.GeneratePlatformOptimizedReply(context.Background(), "x", models.PlatformTwitter, models.ResponseReply, models.UserContext{})
	require.NoError(t, err)
	assert.False(t, out.WithinLimit)
	assert.Equal(t, 281, out.CharacterCount)
}

func TestHistoryIsCappedAtFifty(t *testing.T) {
	var n int32
	e := NewEngine(completerFunc(func(_ context.Context, p string, _ ai.Context, _ ai.Options) (string, error) {
		if strings.Contains(p, "Additional requirement:") {
			return "v", nil
		}
		return fmt.Sprintf("reply-%d", atomic.AddInt32(&n, 1)), nil
	}), logger.NewNop())

	for i := 0; i < 60; i++ {
		_, err := e.GeneratePlatformOptimizedReply(context.Background(), "x", models.PlatformLinkedIn, models.ResponseReply, models.UserContext{})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(e.History()), models.MaxReplyHistory)
	}

	history := e.History()
	require.Len(t, history, models.MaxReplyHistory)
	assert.Equal(t, "reply-60", history[0].Response)
	assert.Equal(t, "reply-11", history[len(history)-1].Response)
}

func TestMarkReplyAsUsed(t *testing.T) {
	var calls int32
	e := NewEngine(echoCompleter(&calls), logger.NewNop())
	out, err := e.GeneratePlatformOptimizedReply(context.Background(), "x", models.PlatformLinkedIn, models.ResponseReply, models.UserContext{})
	require.NoError(t, err)

	before := e.History()
	assert.False(t, e.MarkReplyAsUsed("does-not-exist"))
	assert.Equal(t, before, e.History())

	assert.True(t, e.MarkReplyAsUsed(out.ID))
	assert.True(t, e.History()[0].Used)
}

func TestSaveReply(t *testing.T) {
	e := NewEngine(nil, logger.NewNop())
	e.SaveReply("Older", models.PlatformLinkedIn, nil)
	before := len(e.SavedReplies())

	saved := e.SaveReply("Thanks!", models.PlatformTwitter, []string{"twitter", "reply"})

	list := e.SavedReplies()
	require.Len(t, list, before+1)
	assert.Equal(t, saved.ID, list[0].ID)
	assert.Equal(t, "Thanks!", list[0].Content)
	assert.Equal(t, []string{"twitter", "reply"}, list[0].Tags)
	assert.Equal(t, 0, list[0].UseCount)
	assert.Equal(t, []string{}, list[1].Tags)

	// 不去重
	e.SaveReply("Thanks!", models.PlatformTwitter, nil)
	assert.Len(t, e.SavedReplies(), before+2)
}

func TestSearchAndUseSavedReplies(t *testing.T) {
	e := NewEngine(nil, logger.NewNop())
	a := e.SaveReply("Congrats on the LAUNCH", models.PlatformLinkedIn, []string{"launch"})
	e.SaveReply("See you there", models.PlatformTwitter, []string{"Events"})

	assert.Len(t, e.SearchSavedReplies("launch"), 1)
	assert.Len(t, e.SearchSavedReplies("events"), 1)
	assert.Empty(t, e.SearchSavedReplies("nothing"))
	assert.Len(t, e.SearchSavedReplies(""), 2)

	used, ok := e.UseSavedReply(a.ID)
	require.True(t, ok)
	assert.Equal(t, 1, used.UseCount)
	_, ok = e.UseSavedReply("missing")
	assert.False(t, ok)
}

func TestGetReplyStats(t *testing.T) {
	e := NewEngine(nil, logger.NewNop())

	empty := e.GetReplyStats()
	assert.Equal(t, 0, empty.TotalGenerated)
	assert.Equal(t, 0.0, empty.UsageRate)
	assert.Equal(t, 0, empty.AverageLength)

	e.appendHistory(models.ReplyHistoryEntry{ID: "1", Platform: models.PlatformTwitter, CharacterCount: 10})
	e.appendHistory(models.ReplyHistoryEntry{ID: "2", Platform: models.PlatformTwitter, CharacterCount: 21})
	e.appendHistory(models.ReplyHistoryEntry{ID: "3", Platform: models.PlatformLinkedIn, CharacterCount: 30})
	e.MarkReplyAsUsed("2")

	s := e.GetReplyStats()
	assert.Equal(t, 3, s.TotalGenerated)
	assert.Equal(t, 1, s.TotalUsed)
	assert.Equal(t, 33.3, s.UsageRate)
	assert.Equal(t, map[models.Platform]int{models.PlatformTwitter: 2, models.PlatformLinkedIn: 1}, s.PlatformBreakdown)
	assert.Equal(t, 20, s.AverageLength)
	assert.Equal(t, 21.0, s.MedianLength)
}
