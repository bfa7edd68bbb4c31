package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, int64(32<<20), config.Server.MaxUploadBytes)
	assert.Contains(t, config.Server.AllowedOrigins, "http://localhost:3000")
	assert.False(t, config.Stego.AllowTruncation)
	assert.Equal(t, 40_000_000, config.Stego.MaxPixels)
	assert.True(t, config.Metrics.Enabled)
	assert.Equal(t, "/metrics", config.Metrics.Path)
	assert.Equal(t, ":8080", config.Addr())
	assert.NoError(t, config.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Run("partial file keeps defaults", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.yaml")

		content := "server:\n  port: 9090\n  bind: 127.0.0.1\nstego:\n  allow_truncation: true\n"
		require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))

		config, err := LoadConfig(configPath)
		require.NoError(t, err)

		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, "127.0.0.1:9090", config.Addr())
		assert.True(t, config.Stego.AllowTruncation)
		assert.Equal(t, 40_000_000, config.Stego.MaxPixels)
		assert.Equal(t, "/metrics", config.Metrics.Path)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("server: [unclosed"), 0600))

		_, err := LoadConfig(configPath)
		assert.Error(t, err)
	})
}

func TestSaveConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	config := DefaultConfig()
	config.Server.Port = 7000
	config.Stego.AllowTruncation = true
	require.NoError(t, SaveConfig(config, configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}

func TestApplyEnv(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PORT", "3001")
		t.Setenv("STEGO_ALLOW_TRUNCATION", "true")

		config := DefaultConfig()
		require.NoError(t, config.ApplyEnv())
		assert.Equal(t, 3001, config.Server.Port)
		assert.True(t, config.Stego.AllowTruncation)
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("PORT", "eighty")
		assert.Error(t, DefaultConfig().ApplyEnv())
	})

	t.Run("bad bool", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("STEGO_ALLOW_TRUNCATION", "maybe")
		assert.Error(t, DefaultConfig().ApplyEnv())
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"upload", func(c *Config) { c.Server.MaxUploadBytes = 0 }},
		{"pixels", func(c *Config) { c.Stego.MaxPixels = -1 }},
		{"metrics path", func(c *Config) { c.Metrics.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			assert.Error(t, config.Validate())
		})
	}
}
