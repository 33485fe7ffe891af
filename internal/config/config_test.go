package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skilltreedocs/skilltreedocs/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skilltreedocs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Address())
	assert.Equal(t, "./pages", cfg.Content.PagesDir)
	assert.Equal(t, "./packages", cfg.Content.PackagesDir)
	assert.Equal(t, "./data/skilltreedocs.db", cfg.Database.Path)
	assert.Equal(t, 90, cfg.Sessions.RetentionDays)
	require.NotNil(t, cfg.Admin)
	assert.False(t, cfg.Admin.Enabled)
	assert.Equal(t, "skilltreedocs", cfg.Telemetry.ServiceName)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  cors_origins: ["http://localhost:3000"]
content:
  pages_dir: /srv/pages
  label_path: [switch, foreignObject, div]
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host, "unset fields keep defaults")
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "/srv/pages", cfg.Content.PagesDir)
	assert.Equal(t, "./packages", cfg.Content.PackagesDir)
	assert.Equal(t, []string{"switch", "foreignObject", "div"}, cfg.Content.LabelPath)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.HasCode(err, errors.ErrCodeConfigNotFound))

	_, err = Load(writeConfig(t, "server: [unclosed"))
	assert.True(t, errors.HasCode(err, errors.ErrCodeConfigParse))
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("ST_SERVER_PORT", "8123")
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8123, cfg.Server.Port)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("ST_TEST_DIR", "/from/env")

	assert.Equal(t, "dir: /from/env", expandEnvVars("dir: ${ST_TEST_DIR}"))
	assert.Equal(t, "dir: fallback", expandEnvVars("dir: ${ST_TEST_UNSET:-fallback}"))
	assert.Equal(t, "dir: ", expandEnvVars("dir: ${ST_TEST_UNSET}"))
	assert.Equal(t, "hash: $2a$10$abc", expandEnvVars("hash: $2a$10$abc"))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ST_SERVER_HOST", "127.0.0.1")
	t.Setenv("ST_SERVER_DEBUG", "yes")
	t.Setenv("ST_PAGES_DIR", "/p")
	t.Setenv("ST_DATABASE_PATH", "/tmp/st.db")
	t.Setenv("ST_ADMIN_ENABLED", "true")
	t.Setenv("ST_ADMIN_JWT_SECRET", "s3cret")
	t.Setenv("ST_SESSION_RETENTION_DAYS", "14")
	t.Setenv("ST_LOG_FORMAT", "json")
	t.Setenv("ST_PROMETHEUS_PORT", "not-a-number")

	cfg, err := Load(writeConfig(t, "server:\n  host: 0.0.0.0\n"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, "/p", cfg.Content.PagesDir)
	assert.Equal(t, "/tmp/st.db", cfg.Database.Path)
	assert.True(t, cfg.Admin.Enabled)
	assert.Equal(t, "s3cret", cfg.Admin.JWTSecret)
	assert.Equal(t, 14, cfg.Sessions.RetentionDays)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 9090, cfg.Telemetry.Prometheus.Port, "unparsable ints are ignored")
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.Server.Port = 8088
	require.NoError(t, Write(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Skill Tree Docs configuration")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8088, loaded.Server.Port)
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "1", "YES", " on "} {
		assert.True(t, parseBool(v), v)
	}
	for _, v := range []string{"false", "0", "no", ""} {
		assert.False(t, parseBool(v), v)
	}
}
