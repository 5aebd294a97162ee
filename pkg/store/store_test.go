package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/BinLe1988/reply-assist/models"
	"github.com/BinLe1988/reply-assist/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newGormStore(t *testing.T) *GormStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StateEntry{}))
	return NewGormStore(db)
}

func TestStores(t *testing.T) {
	backends := map[string]Store{
		"memory": NewMemoryStore(),
		"gorm":   newGormStore(t),
	}

	for name, s := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := s.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Put(ctx, "k", []byte(`{"a":1}`)))
			require.NoError(t, s.Put(ctx, "k", []byte(`{"a":2}`)))

			raw, ok, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.JSONEq(t, `{"a":2}`, string(raw))

			require.NoError(t, s.Delete(ctx, "k"))
			_, ok, err = s.Get(ctx, "k")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	log := logger.NewNop()

	record, found, err := Load(ctx, s, "missing", models.NewOnboardingRecord, log)
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, record.Completed)

	require.NoError(t, s.Put(ctx, "broken", []byte(`{"completed": tru`)))
	record, found, err = Load(ctx, s, "broken", models.NewOnboardingRecord, log)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, models.NewOnboardingRecord(), record)
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	key := SessionKey("abc", AnalyticsKey)
	assert.Equal(t, "abc:reply_assist_analytics", key)

	snapshot := models.NewAnalyticsSnapshot()
	snapshot.TotalRepliesGenerated = 3
	snapshot.PlatformBreakdown["twitter"] = 3
	require.NoError(t, Save(ctx, s, key, snapshot))

	loaded, found, err := Load(ctx, s, key, models.NewAnalyticsSnapshot, logger.NewNop())
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, loaded.TotalRepliesGenerated)
	assert.Equal(t, 3, loaded.PlatformBreakdown["twitter"])
}

func TestEmptyKey(t *testing.T) {
	assert.ErrorIs(t, Save(context.Background(), NewMemoryStore(), "", 1), ErrEmptyKey)
}
