// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/subosito/gotenv"
)

// Provider names.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Environment variables.
const (
	EnvAPIKey         = "API_KEY"
	EnvGeminiAPIKey   = "GEMINI_API_KEY"
	EnvOpenAIAPIKey   = "OPENAI_API_KEY"
	EnvProvider       = "EMOTE_PROVIDER"
	EnvModel          = "EMOTE_MODEL"
	EnvAddr           = "EMOTE_ADDR"
	EnvAllowedOrigins = "EMOTE_ALLOWED_ORIGINS"
	EnvLogLevel       = "EMOTE_LOG_LEVEL"
	EnvTimeout        = "EMOTE_TIMEOUT"
)

// ErrMissingAPIKey means no credential was supplied. Nothing can run without one.
var ErrMissingAPIKey = errors.New("API_KEY environment variable not set")

// Config holds everything the binary needs to start.
type Config struct {
	APIKey         string
	Provider       string
	Model          string // empty means the provider default
	Addr           string
	AllowedOrigins []string
	LogLevel       slog.Level
	Timeout        time.Duration
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Provider:       ProviderGemini,
		Addr:           ":8080",
		AllowedOrigins: []string{"http://localhost:3000"},
		LogLevel:       slog.LevelInfo,
		Timeout:        30 * time.Second,
	}
}

// LoadEnvFile loads path into the process environment. Variables already set win.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("no .env file found, using OS environment", "path", path)
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// FromEnv builds a Config from lookup, starting from Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvProvider); ok && v != "" {
		cfg.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvModel); ok {
		cfg.Model = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup(EnvAllowedOrigins); ok && v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		level, err := ParseLevel(v)
		if err != nil {
			return cfg, err
		}
		cfg.LogLevel = level
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}

	cfg.APIKey = resolveAPIKey(lookup, cfg.Provider)
	return cfg, nil
}

// Load reads the optional env file and then the process environment.
func Load(envFile string) (Config, error) {
	if err := LoadEnvFile(envFile); err != nil {
		return Config{}, err
	}
	return FromEnv(os.LookupEnv)
}

// ResolveAPIKey re-reads the credential for provider, for when a flag changed it.
func (c *Config) ResolveAPIKey(lookup func(string) (string, bool)) {
	c.APIKey = resolveAPIKey(lookup, c.Provider)
}

// Validate checks that the configuration can start.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown provider %q (want %s or %s)", c.Provider, ProviderGemini, ProviderOpenAI)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// ParseLevel parses a log level name such as "debug" or "WARN".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}
	return level, nil
}

func resolveAPIKey(lookup func(string) (string, bool), provider string) string {
	if v, ok := lookup(EnvAPIKey); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	fallback := EnvGeminiAPIKey
	if provider == ProviderOpenAI {
		fallback = EnvOpenAIAPIKey
	}
	if v, ok := lookup(fallback); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
