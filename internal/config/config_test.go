package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "https://api-adresse.data.gouv.fr", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 100*time.Millisecond, cfg.CourtesyDelay)
	assert.Equal(t, 5, cfg.ChunkSize)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := "SERVER_ADDRESS=:9090\nCHUNK_SIZE=3\nCOURTESY_DELAY=250ms\nLOG_FORMAT=json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, 3, cfg.ChunkSize)
	assert.Equal(t, 250*time.Millisecond, cfg.CourtesyDelay)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte("CHUNK_SIZE=3\n"), 0o600))
	t.Setenv("GEOCODER_CHUNK_SIZE", "8")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.ChunkSize)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{BaseURL: "https://example.test", ChunkSize: 5, HTTPTimeout: time.Second, MaxBatchSize: 10}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty base url", mutate: func(c *Config) { c.BaseURL = "" }, wantErr: true},
		{name: "zero chunk size", mutate: func(c *Config) { c.ChunkSize = 0 }, wantErr: true},
		{name: "negative delay", mutate: func(c *Config) { c.CourtesyDelay = -time.Second }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.HTTPTimeout = 0 }, wantErr: true},
		{name: "zero batch size", mutate: func(c *Config) { c.MaxBatchSize = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
