package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DRYDOCK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Dry Dock", cfg.App.Name)
	require.Equal(t, "http://localhost:11434", cfg.Assistant.URL)
	require.Equal(t, "gemma3", cfg.Assistant.Model)
	require.Equal(t, 60, cfg.Assistant.TimeoutSeconds)
	require.Equal(t, 30, cfg.Feeds.TimeoutSeconds)
	require.Equal(t, 10, cfg.Feeds.MaxRedirects)
	require.Equal(t, 200, cfg.Feeds.PageSize)
	require.NotEmpty(t, cfg.Feeds.UserAgent)
	require.Equal(t, 1000, cfg.Logs.FetchLimit)
	require.NotEmpty(t, cfg.Logs.FilePath)
	require.NotEmpty(t, cfg.Terminal.Shell)
	require.NotEmpty(t, cfg.Database.Path)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("DRYDOCK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("DRYDOCK_ASSISTANT_MODEL", "llama3")
	t.Setenv("DRYDOCK_DATABASE_PATH", "/tmp/dd.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "llama3", cfg.Assistant.Model)
	require.Equal(t, "/tmp/dd.db", cfg.Database.Path)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("DRYDOCK_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Assistant.Model = "mistral"
	cfg.Feeds.PageSize = 50
	cfg.Terminal.Shell = "/bin/zsh"
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	require.Equal(t, "mistral", loaded.Assistant.Model)
	require.Equal(t, 50, loaded.Feeds.PageSize)
	require.Equal(t, "/bin/zsh", loaded.Terminal.Shell)
}
