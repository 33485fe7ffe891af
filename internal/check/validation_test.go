package check

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skilltreedocs/skilltreedocs/internal/config"
	apperrors "github.com/skilltreedocs/skilltreedocs/pkg/errors"
)

func TestValidateConfigFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid with warnings", func(t *testing.T) {
		cfg := config.Default()
		cfg.Server.Debug = true
		path := filepath.Join(dir, "ok.yaml")
		require.NoError(t, config.Write(path, cfg))

		loaded, result := validateConfigFile(path)
		require.True(t, result.Valid)
		require.NotNil(t, loaded)
		assert.Len(t, result.Warnings, 2)
	})

	t.Run("unparsable", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [\n"), 0o644))
		_, result := validateConfigFile(path)
		assert.False(t, result.Valid)
		assert.True(t, apperrors.HasCode(result.Error, apperrors.ErrCodeConfigParse))
	})

	t.Run("admin without hash", func(t *testing.T) {
		cfg := config.Default()
		cfg.Admin = &config.AdminConfig{Enabled: true, Username: "admin", JWTSecret: "0123456789abcdef0123456789abcdef"}
		path := filepath.Join(dir, "admin.yaml")
		require.NoError(t, config.Write(path, cfg))
		_, result := validateConfigFile(path)
		assert.False(t, result.Valid)
	})
}

func TestCheckContentDirs(t *testing.T) {
	dir := t.TempDir()

	results := checkContentDirs(config.ContentConfig{PagesDir: dir, PackagesDir: dir})
	require.Len(t, results, 2)
	assert.True(t, results[0].Valid)
	assert.True(t, results[1].Valid)

	results = checkContentDirs(config.ContentConfig{
		PagesDir:    filepath.Join(dir, "pages"),
		PackagesDir: dir,
		StaticDir:   filepath.Join(dir, "static"),
	})
	require.Len(t, results, 3)
	assert.False(t, results[0].Valid)
	assert.Error(t, results[0].Error)
	assert.True(t, results[2].Valid)
	assert.Len(t, results[2].Warnings, 1)
}
