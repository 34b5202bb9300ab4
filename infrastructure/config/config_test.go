package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STOCKTAKE_CONFIG", "")
	t.Setenv("STOCKTAKE_ADDR", "")
	t.Setenv("STOCKTAKE_DB_PATH", "")
	t.Setenv("STOCKTAKE_SESSION_TTL_HOURS", "")
	t.Setenv("STOCKTAKE_NOTIFY_REFRESH_SPEC", "")

	cfg, err := Load("does-not-exist.env")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "stocktake.db", cfg.Database.Path)
	assert.Equal(t, 12, cfg.Session.TTLHours)
	assert.Equal(t, "* * * * *", cfg.Notifications.RefreshSpec)
}

func TestLoadYAMLFileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"server:\n  addr: \":9000\"\ndatabase:\n  path: /tmp/warehouse.db\n"), 0o600))

	t.Setenv("STOCKTAKE_CONFIG", path)
	t.Setenv("STOCKTAKE_ADDR", ":9100")
	t.Setenv("STOCKTAKE_DB_PATH", "")
	t.Setenv("STOCKTAKE_SESSION_TTL_HOURS", "")
	t.Setenv("STOCKTAKE_NOTIFY_REFRESH_SPEC", "")

	cfg, err := Load("does-not-exist.env")
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Server.Addr, "env beats file")
	assert.Equal(t, "/tmp/warehouse.db", cfg.Database.Path, "file beats default")
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("STOCKTAKE_CONFIG", "")
	t.Setenv("STOCKTAKE_SESSION_TTL_HOURS", "nope")

	_, err := Load("does-not-exist.env")
	assert.Error(t, err)
}

func TestValidateRejectsZeroTTL(t *testing.T) {
	cfg := &Config{
		Server:        ServerConfig{Addr: ":8080"},
		Database:      DatabaseConfig{Path: "x.db"},
		Session:       SessionConfig{TTLHours: 0},
		Notifications: NotificationsConfig{RefreshSpec: "* * * * *"},
	}
	assert.Error(t, cfg.Validate())
}
