package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BinLe1988/reply-assist/pkg/analytics"
	"github.com/BinLe1988/reply-assist/pkg/logger"
	"github.com/BinLe1988/reply-assist/pkg/store"
)

// readOnlyStore 读取正常，写入总是失败
type readOnlyStore struct{ *store.MemoryStore }

func (readOnlyStore) Put(context.Context, string, []byte) error { return errors.New("read-only") }

func TestResetAnalytics(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	analytics.NewTracker(ctx, st, "sess-1", logger.NewNop()).TrackReplyGenerated(ctx, "twitter", 10)

	var out bytes.Buffer
	require.NoError(t, resetAnalytics(ctx, st, "sess-1", &out, logger.NewNop()))
	assert.Equal(t, "Analytics reset for session sess-1\n", out.String())
	assert.Equal(t, 0, analytics.NewTracker(ctx, st, "sess-1", logger.NewNop()).Snapshot().TotalRepliesGenerated)
}

func TestResetAnalyticsReportsWriteFailure(t *testing.T) {
	var out bytes.Buffer
	err := resetAnalytics(context.Background(), readOnlyStore{store.NewMemoryStore()}, "sess-1", &out, logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")
	assert.Empty(t, out.String())
}
