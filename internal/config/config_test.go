package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_PORT", "MANAGER_HISTORY_CAPACITY", "MANAGER_SEED_SAMPLE_DATA",
		"MANAGER_ENFORCE_TRANSITIONS", "TECHNICIANS", "REDIS_ADDR", "REDIS_DB",
		"POSTGRES_DSN", "LOG_LEVEL", "HTTP_REQUEST_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, 50, cfg.Manager.HistoryCapacity)
	assert.True(t, cfg.Manager.SeedSampleData)
	assert.False(t, cfg.Manager.EnforceTransitions)
	assert.Equal(t, DefaultTechnicians, cfg.Manager.Technicians)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Postgres.Enabled())
	assert.Equal(t, time.Hour, cfg.Redis.SnapshotTTL())
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("MANAGER_HISTORY_CAPACITY", "5")
	t.Setenv("MANAGER_SEED_SAMPLE_DATA", "false")
	t.Setenv("MANAGER_ENFORCE_TRANSITIONS", "true")
	t.Setenv("TECHNICIANS", " Ana , ,Luis ")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_SNAPSHOT_TTL_SECONDS", "0")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/tickets")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.App.Addr())
	assert.Equal(t, time.Duration(0), cfg.App.RequestTimeout())
	assert.Equal(t, 5, cfg.Manager.HistoryCapacity)
	assert.False(t, cfg.Manager.SeedSampleData)
	assert.True(t, cfg.Manager.EnforceTransitions)
	assert.Equal(t, []string{"Ana", "Luis"}, cfg.Manager.Technicians)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, time.Duration(0), cfg.Redis.SnapshotTTL())
	assert.True(t, cfg.Postgres.Enabled())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("REDIS_DB", "one")
	_, err := Load()
	assert.ErrorContains(t, err, "REDIS_DB")

	t.Setenv("REDIS_DB", "0")
	t.Setenv("MANAGER_HISTORY_CAPACITY", "-1")
	_, err = Load()
	assert.ErrorContains(t, err, "MANAGER_HISTORY_CAPACITY")
}

func TestDefaultTechniciansNotAliased(t *testing.T) {
	t.Setenv("TECHNICIANS", "")
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Manager.Technicians[0] = "mutated"
	assert.Equal(t, "Technician 1", DefaultTechnicians[0])
}
