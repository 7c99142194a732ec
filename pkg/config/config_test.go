package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("KVS_DATA_DIR", "")
	t.Setenv("KVS_LOG_LEVEL", "")
	t.Setenv("KVS_LOG_FORMAT", "")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kvs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.DataDir)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
}

func TestLoadConfigFromYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "data_dir: /srv/kvs\nlog_level: debug\nlog_format: json\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/kvs", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Run("env only", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("KVS_DATA_DIR", "/env/data")
		t.Setenv("KVS_LOG_LEVEL", "info")

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "/env/data", cfg.DataDir)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	})

	t.Run("env wins over file", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, "data_dir: /file/data\nlog_level: error\n")
		t.Setenv("KVS_DATA_DIR", "/env/data")
		t.Setenv("KVS_LOG_FORMAT", "json")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/env/data", cfg.DataDir)
		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		clearEnv(t)
		_, err := LoadConfig(writeConfig(t, "data_dir: [unterminated\n"))
		assert.ErrorContains(t, err, "failed to parse config file")
	})

	t.Run("unknown log level", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("KVS_LOG_LEVEL", "loud")
		_, err := LoadConfig("")
		assert.ErrorContains(t, err, "invalid log_level")
	})

	t.Run("unknown log format", func(t *testing.T) {
		clearEnv(t)
		_, err := LoadConfig(writeConfig(t, "log_format: xml\n"))
		assert.ErrorContains(t, err, "invalid log_format")
	})
}
