package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-queue/internal/config"
)

type fakeExecer struct {
	statements []string
	failOn     string
}

func (f *fakeExecer) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.failOn != "" && sql == f.failOn {
		return pgconn.CommandTag{}, errors.New("syntax error")
	}
	f.statements = append(f.statements, sql)
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestRunMigrationsAppliesSQLInOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "0002_b.sql", "SELECT 2;")
	writeFile(t, dir, "0001_a.sql", "SELECT 1;")
	writeFile(t, dir, "README.md", "not sql")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o700))

	db := &fakeExecer{}
	require.NoError(t, RunMigrations(context.Background(), db, dir, zap.NewNop()))
	assert.Equal(t, []string{"SELECT 1;", "SELECT 2;"}, db.statements)
}

func TestRunMigrationsStopsOnFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "0001_a.sql", "BROKEN")
	writeFile(t, dir, "0002_b.sql", "SELECT 2;")

	db := &fakeExecer{failOn: "BROKEN"}
	err := RunMigrations(context.Background(), db, dir, zap.NewNop())
	assert.ErrorContains(t, err, "apply migration 0001_a.sql")
	assert.Empty(t, db.statements)
}

func TestRunMigrationsMissingDir(t *testing.T) {
	err := RunMigrations(context.Background(), &fakeExecer{}, filepath.Join(t.TempDir(), "absent"), zap.NewNop())
	assert.ErrorContains(t, err, "read migrations")
}

func TestRunMigrationsShipsAuditTable(t *testing.T) {
	db := &fakeExecer{}
	require.NoError(t, RunMigrations(context.Background(), db, filepath.Join("..", "..", "migrations"), zap.NewNop()))
	require.NotEmpty(t, db.statements)
	assert.Contains(t, db.statements[0], "ticket_action_audit")
}

func TestDisabledHandles(t *testing.T) {
	ctx := context.Background()

	pg, err := NewPostgres(ctx, config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, pg.Enabled())
	assert.ErrorIs(t, pg.Ping(ctx), ErrPostgresDisabled)
	assert.NotPanics(t, pg.Close)

	rdb := NewRedis(ctx, config.RedisConfig{}, zap.NewNop())
	assert.False(t, rdb.Enabled())
	assert.ErrorIs(t, rdb.Ping(ctx), ErrRedisDisabled)
	assert.NotPanics(t, rdb.Close)

	var nilPG *Postgres
	assert.ErrorIs(t, nilPG.Ping(ctx), ErrPostgresDisabled)
}

func TestNewPostgresRejectsBadDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), config.PostgresConfig{DSN: "://not a dsn"}, zap.NewNop())
	assert.Error(t, err)
}
