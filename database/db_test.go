package database

import (
	"testing"

	"github.com/BinLe1988/reply-assist/configs"
	"github.com/BinLe1988/reply-assist/models"
	"github.com/BinLe1988/reply-assist/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeSQLite(t *testing.T) {
	log := logger.NewNop()
	db, err := Initialize(configs.Database{Driver: "sqlite", Path: "file::memory:?cache=shared"}, log)
	require.NoError(t, err)
	defer Close(db, log)

	assert.True(t, db.Migrator().HasTable(&models.StateEntry{}))
}

func TestInitializeUnsupportedDriver(t *testing.T) {
	_, err := Initialize(configs.Database{Driver: "oracle"}, logger.NewNop())
	assert.EqualError(t, err, "unsupported database driver: oracle")
}
