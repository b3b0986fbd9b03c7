package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Model providers supported by the analysis service.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

const (
	defaultPort           = "8080"
	defaultMaxBodyBytes   = 10 << 20 // a 1920px JPEG as base64 stays well below this
	defaultRequestTimeout = 120 * time.Second
)

// Config holds server settings resolved from the environment.
type Config struct {
	Port        string
	LogLevel    string
	CORSOrigins []string

	Provider         string
	AnthropicAPIKey  string
	AnthropicBaseURL string
	GeminiAPIKey     string
	ModelID          string // optional override of the provider's default model

	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

// APIKey returns the credential of the selected provider.
func (c *Config) APIKey() string {
	if c.Provider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.AnthropicAPIKey
}

// Load reads configuration from the environment, after loading a .env file when one exists.
// A missing provider credential is not an error here: the analysis endpoint reports it per request.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, which has the signature of os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := &Config{
		Port:             get("PORT", defaultPort),
		LogLevel:         get("LOG_LEVEL", "info"),
		CORSOrigins:      splitList(get("CORS_ORIGINS", "")),
		Provider:         strings.ToLower(get("MODEL_PROVIDER", ProviderAnthropic)),
		AnthropicAPIKey:  get("ANTHROPIC_API_KEY", ""),
		AnthropicBaseURL: get("ANTHROPIC_BASE_URL", ""),
		GeminiAPIKey:     get("GEMINI_API_KEY", ""),
		ModelID:          get("MODEL_ID", ""),
		MaxBodyBytes:     defaultMaxBodyBytes,
		RequestTimeout:   defaultRequestTimeout,
	}

	if v := get("MAX_BODY_BYTES", ""); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid MAX_BODY_BYTES %q", v)
		}
		cfg.MaxBodyBytes = n
	}
	if v := get("REQUEST_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q", v)
		}
		cfg.RequestTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks settings that make the server unable to start.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderGemini:
	default:
		return fmt.Errorf("MODEL_PROVIDER must be %q or %q, got %q", ProviderAnthropic, ProviderGemini, c.Provider)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
