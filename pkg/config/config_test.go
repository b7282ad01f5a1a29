package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o644))
}

func TestLoad_DefaultsOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", t.TempDir())

	cfg, err := Load("recovery", map[string]interface{}{"retry.max_attempts": 3})
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.GetInt("retry.max_attempts"))
	assert.Empty(t, cfg.ConfigFileUsed())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "recovery", "retry:\n  max_attempts: 5\n  timeout: 3s\nanalytics:\n  driver: log\n")
	t.Setenv("CONFIG_PATH", dir)
	t.Setenv("RECOVERY_ANALYTICS_DRIVER", "redis")

	cfg, err := Load("recovery", map[string]interface{}{"analytics.driver": "none"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "recovery.yaml"), cfg.ConfigFileUsed())
	assert.Equal(t, 5, cfg.GetInt("retry.max_attempts"))
	assert.Equal(t, "redis", cfg.GetString("analytics.driver"))

	var out struct {
		Retry struct {
			Timeout string `mapstructure:"timeout"`
		} `mapstructure:"retry"`
	}
	require.NoError(t, cfg.Unmarshal(&out))
	assert.Equal(t, "3s", out.Retry.Timeout)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "recovery", "retry: [unterminated\n")
	t.Setenv("CONFIG_PATH", dir)

	_, err := Load("recovery", nil)
	assert.Error(t, err)
}
