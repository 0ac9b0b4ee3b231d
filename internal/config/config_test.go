package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "localhost:8080", cfg.ServerAddress())
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bubblejar.hcl")
	src := `
game {
  seed        = 1234
  match_color = true
}

server {
  address = "0.0.0.0"
  port    = 9000
}

log {
  level = "debug"
  file  = "bubblejar.log"
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(1234), cfg.Game.Seed)
	assert.True(t, cfg.Game.MatchColor)
	assert.Equal(t, "0.0.0.0:9000", cfg.ServerAddress())
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.Equal(t, "bubblejar.log", cfg.Log.File)
}

func TestParsePartial(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte("game {\n  seed = 5\n}\n"), "partial.hcl")
	require.NoError(t, err)

	assert.Equal(t, int64(5), cfg.Game.Seed)
	assert.False(t, cfg.Game.MatchColor)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)

	cfg, err = Parse([]byte("server {\n  port = 81\n}\n"), "port.hcl")
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, 81, cfg.Server.Port)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("game {"), "broken.hcl")
	assert.ErrorContains(t, err, "failed to parse HCL file")

	_, err = Parse([]byte("game {\n  colors = 9\n}\n"), "unknown.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, "invalid port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "invalid port"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}
