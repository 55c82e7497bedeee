package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPublic = `http_port: 8080
log_level: debug
allowed_origins: ["http://localhost:3000"]
pg_driver: pgx
requests_per_second: 50
sse_heartbeat: 25
user_cache_ttl: 300
`

const validPrivate = `jwt_key: 'k'
pg:
  host: localhost
  port: 5432
  user: kanban
  password: secret
  dbname: kanban
`

func writeConfig(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0o600))
	return dir
}

func TestMustLoad(t *testing.T) {
	cfg := MustLoad(writeConfig(t, validPublic, validPrivate))

	assert.Equal(t, 8080, cfg.Public.HttpPort)
	assert.Equal(t, "pgx", cfg.PgDriver())
	assert.Equal(t, 25*time.Second, cfg.SSEHeartbeat())
	assert.Equal(t, 5*time.Minute, cfg.UserCacheTTL())
	assert.Equal(t, "k", cfg.JwtKey())
	assert.Equal(t, "kanban", cfg.Private.Pg.Dbname)
}

func TestMustLoad_DefaultDriver(t *testing.T) {
	public := "http_port: 8080\nrequests_per_second: 5\nsse_heartbeat: 1\nuser_cache_ttl: 1\n"
	cfg := MustLoad(writeConfig(t, public, validPrivate))
	assert.Equal(t, "postgres", cfg.PgDriver())
}

func TestMustLoad_RequiredFields(t *testing.T) {
	// jwt_key is intentionally missing
	private := "pg:\n  host: localhost\n  port: 5432\n  user: u\n  dbname: d\n"
	dir := writeConfig(t, validPublic, private)

	assert.Panics(t, func() { _ = MustLoad(dir) })
}

func TestMustLoad_UnknownDriver(t *testing.T) {
	public := "http_port: 8080\npg_driver: mysql\nrequests_per_second: 5\nsse_heartbeat: 1\nuser_cache_ttl: 1\n"
	dir := writeConfig(t, public, validPrivate)

	assert.Panics(t, func() { _ = MustLoad(dir) })
}

func TestMustLoad_MissingFile(t *testing.T) {
	assert.Panics(t, func() { _ = MustLoad(t.TempDir()) })
}
