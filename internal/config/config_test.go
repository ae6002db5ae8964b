package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caravan-sql/sqlfront/internal/config"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sqlfront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dialect: postgresql\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgresql", cfg.Dialect)
	assert.Equal(t, 50, cfg.Options.RecursionLimit)
	assert.True(t, cfg.Options.Unescape)
}

func TestLoadRespectsExplicitOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sqlfront.yaml")
	body := "dialect: mysql\noptions:\n  recursion_limit: 10\n  trailing_commas: true\n  unescape: false\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Dialect)
	assert.Equal(t, 10, cfg.Options.RecursionLimit)
	assert.True(t, cfg.Options.TrailingCommas)
	assert.False(t, cfg.Options.Unescape)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load("/nonexistent/sqlfront.yaml")
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "generic", cfg.Dialect)
	assert.Equal(t, 50, cfg.Options.RecursionLimit)
	assert.True(t, cfg.Options.Unescape)
}
