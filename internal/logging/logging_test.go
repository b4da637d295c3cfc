package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/drydock-app/drydock/internal/database"
	"github.com/drydock-app/drydock/internal/database/repository"
)

func TestEventsReachDatabase(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrationsWithDB(db))

	repo := repository.NewLogRepo(db)
	logger := New(repo, "")

	logger.Info().Msg("feed refreshed")
	logger.Error().Msg("fetch failed")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	entries, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byMsg := map[string]string{}
	for _, e := range entries {
		byMsg[e.Message] = e.Level
	}
	require.Equal(t, repository.LevelInfo, byMsg["feed refreshed"])
	require.Equal(t, repository.LevelError, byMsg["fetch failed"])
}

func TestFileSink(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger := NewFileOnly(path)
	logger.Warn().Msg("before the database is up")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "before the database is up")
}
