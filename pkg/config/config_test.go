package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.False(t, cfg.Store.ForceRebuild)
	assert.NotEmpty(t, cfg.Snapshot.Path)
	assert.NotEmpty(t, cfg.SQLite.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "lexicon.indexed", cfg.Kafka.Topics.LexiconIndexed)
}

func TestLoadYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlDoc := `
store:
  backend: sqlite
sqlite:
  path: /tmp/wn.db
cache:
  enabled: true
  ttl: 30s
server:
  port: 9000
  rateLimit: 120
`
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o644))

	t.Setenv("LG_SERVER_PORT", "9100")
	t.Setenv("LG_STORE_FORCE_REBUILD", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "/tmp/wn.db", cfg.SQLite.Path)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 120, cfg.Server.RateLimit)
	assert.True(t, cfg.Store.ForceRebuild)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("LG_STORE_BACKEND", "cassandra")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cassandra")
}

func TestValidateRejectsNegativeRateLimit(t *testing.T) {
	t.Setenv("LG_SERVER_RATE_LIMIT", "-1")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "wn", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=wn sslmode=disable", p.DSN())
}

func TestLoadDevelopmentConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "development.yaml"))
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.NotEmpty(t, cfg.SQLite.Path, "unset paths keep their defaults")
	assert.Equal(t, 5*time.Second, cfg.SQLite.BusyTimeout)
	assert.Equal(t, 600, cfg.Server.RateLimit)
	assert.Equal(t, "lexicon.indexed", cfg.Kafka.Topics.LexiconIndexed)
	assert.Equal(t, "debug", cfg.Logging.Level)
}
