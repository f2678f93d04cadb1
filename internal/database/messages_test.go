package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messenger-formbot/internal/config"
	"messenger-formbot/internal/models"
)

func openTestLog(t *testing.T) *MessageLog {
	t.Helper()
	db, err := Open(&config.Config{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "log.db")})
	require.NoError(t, err)
	require.NotNil(t, db)
	t.Cleanup(func() { _ = Close(db) })
	return NewMessageLog(db)
}

func TestMessageLogRecent(t *testing.T) {
	log := openTestLog(t)
	ctx := context.Background()

	for _, content := range []string{"first", "second", "third"} {
		require.NoError(t, log.RecordMessage(ctx, models.Message{
			RecipientID: "psid-1",
			Direction:   models.DirectionOutbound,
			Kind:        "text",
			Content:     content,
			Status:      models.StatusSent,
		}))
	}

	messages, err := log.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "third", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)

	all, err := log.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOpenDrivers(t *testing.T) {
	db, err := Open(&config.Config{DBDriver: "none"})
	assert.NoError(t, err)
	assert.Nil(t, db)

	_, err = Open(&config.Config{DBDriver: "postgres"})
	assert.ErrorIs(t, err, ErrMissingDSN)

	_, err = Open(&config.Config{DBDriver: "mongo"})
	assert.Error(t, err)
}

func TestCloseReleasesPool(t *testing.T) {
	db, err := Open(&config.Config{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "log.db")})
	require.NoError(t, err)

	require.NoError(t, Close(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping())
}
