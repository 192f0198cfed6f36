package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "localhost:8080", cfg.Addr())
}

func TestRegisterFlags(t *testing.T) {
	cfg := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)

	err := fs.Parse([]string{"-port", "9090", "-matrix", "blosum62", "-gap", "-8", "-read-timeout", "5s"})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "blosum62", cfg.Matrix)
	assert.Equal(t, -8, cfg.Gap)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, -10, cfg.GapOpen)
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		"BIOALIGN_HOST":            "0.0.0.0",
		"BIOALIGN_PORT":            "7000",
		"BIOALIGN_MAX_PATHS":       "25",
		"BIOALIGN_LOG_FORMAT":      "json",
		"BIOALIGN_REQUEST_TIMEOUT": "2s",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.fromLookup(lookup))

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, 25, cfg.MaxPaths)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, -2, cfg.Gap)
}

func TestFromEnvSetenv(t *testing.T) {
	t.Setenv("BIOALIGN_LOOP", "3")

	cfg := Default()
	require.NoError(t, cfg.FromEnv())
	assert.Equal(t, 3, cfg.Loop)
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad int", "BIOALIGN_PORT", "eighty"},
		{"bad duration", "BIOALIGN_IDLE_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := func(key string) (string, bool) {
				if key == tt.key {
					return tt.val, true
				}
				return "", false
			}
			err := Default().fromLookup(lookup)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"port", func(c *Config) { c.Port = 70000 }},
		{"timeout", func(c *Config) { c.ReadTimeout = 0 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"log format", func(c *Config) { c.LogFormat = "xml" }},
		{"max paths", func(c *Config) { c.MaxPaths = -1 }},
		{"max length", func(c *Config) { c.MaxSequenceLength = -1 }},
		{"matrix", func(c *Config) { c.Matrix = "blosum45" }},
		{"positive gap", func(c *Config) { c.Gap = 1 }},
		{"positive extend", func(c *Config) { c.GapExtend = 2 }},
		{"loop", func(c *Config) { c.Loop = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
