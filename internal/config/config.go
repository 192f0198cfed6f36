// Package config holds runtime settings shared by the command line tool and
// the HTTP server.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aria-lang/bioalign-go/internal/scoring"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "BIOALIGN_"

// Config represents the runtime configuration.
type Config struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration

	LogLevel  string
	LogFormat string

	MaxPaths          int
	MaxSequenceLength int

	Matrix    string
	Gap       int
	GapOpen   int
	GapExtend int
	Loop      int
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Host:              "localhost",
		Port:              8080,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		RequestTimeout:    60 * time.Second,
		LogLevel:          "info",
		LogFormat:         "text",
		MaxPaths:          10000,
		MaxSequenceLength: 5000,
		Matrix:            "dna",
		Gap:               -2,
		GapOpen:           -10,
		GapExtend:         -1,
		Loop:              0,
	}
}

// RegisterFlags binds the configuration fields to fs, using the current
// values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Host, "host", c.Host, "Host to bind to")
	fs.IntVar(&c.Port, "port", c.Port, "Port to listen on")
	fs.DurationVar(&c.ReadTimeout, "read-timeout", c.ReadTimeout, "HTTP read timeout")
	fs.DurationVar(&c.WriteTimeout, "write-timeout", c.WriteTimeout, "HTTP write timeout")
	fs.DurationVar(&c.IdleTimeout, "idle-timeout", c.IdleTimeout, "HTTP idle timeout")
	fs.DurationVar(&c.RequestTimeout, "request-timeout", c.RequestTimeout, "Per-request processing timeout")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "Log format (text, json)")
	fs.IntVar(&c.MaxPaths, "max-paths", c.MaxPaths, "Maximum number of optimal paths to enumerate (0 = unlimited)")
	fs.IntVar(&c.MaxSequenceLength, "max-length", c.MaxSequenceLength, "Maximum accepted sequence length (0 = unlimited)")
	fs.StringVar(&c.Matrix, "matrix", c.Matrix, "Default substitution matrix")
	fs.IntVar(&c.Gap, "gap", c.Gap, "Default linear gap cost")
	fs.IntVar(&c.GapOpen, "open", c.GapOpen, "Default affine gap opening cost")
	fs.IntVar(&c.GapExtend, "extend", c.GapExtend, "Default affine gap extension cost")
	fs.IntVar(&c.Loop, "loop", c.Loop, "Default minimum hairpin loop length")
}

// FromEnv overlays BIOALIGN_* environment variables onto c. Unset variables
// leave the field unchanged.
func (c *Config) FromEnv() error {
	return c.fromLookup(os.LookupEnv)
}

func (c *Config) fromLookup(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
		return nil
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return nil
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = d
		return nil
	}

	str("HOST", &c.Host)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	str("MATRIX", &c.Matrix)

	ints := []struct {
		key string
		dst *int
	}{
		{"PORT", &c.Port},
		{"MAX_PATHS", &c.MaxPaths},
		{"MAX_LENGTH", &c.MaxSequenceLength},
		{"GAP", &c.Gap},
		{"GAP_OPEN", &c.GapOpen},
		{"GAP_EXTEND", &c.GapExtend},
		{"LOOP", &c.Loop},
	}
	for _, f := range ints {
		if err := num(f.key, f.dst); err != nil {
			return err
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"READ_TIMEOUT", &c.ReadTimeout},
		{"WRITE_TIMEOUT", &c.WriteTimeout},
		{"IDLE_TIMEOUT", &c.IdleTimeout},
		{"REQUEST_TIMEOUT", &c.RequestTimeout},
	}
	for _, f := range durations {
		if err := dur(f.key, f.dst); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that every field is usable.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalid, c.Port)
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.IdleTimeout <= 0 || c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalid)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.LogFormat)
	}
	if c.MaxPaths < 0 {
		return fmt.Errorf("%w: max paths cannot be negative", ErrInvalid)
	}
	if c.MaxSequenceLength < 0 {
		return fmt.Errorf("%w: max sequence length cannot be negative", ErrInvalid)
	}
	if _, err := scoring.Lookup(c.Matrix); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Gap > 0 || c.GapOpen > 0 || c.GapExtend > 0 {
		return fmt.Errorf("%w: gap costs must be non-positive", ErrInvalid)
	}
	if c.Loop < 0 {
		return fmt.Errorf("%w: loop length cannot be negative", ErrInvalid)
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
