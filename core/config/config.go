package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	Port       string
	LLM        LLMConfig
	GitHub     GitHubConfig
	Redis      RedisConfig
	OTel       OTelConfig
	Generation GenerationConfig
}

type LLMConfig struct {
	Provider string // "anthropic" or "openai"
	APIKey   string
	BaseURL  string // Optional: for custom endpoints
	Model    string
}

type GitHubConfig struct {
	Token string
}

type RedisConfig struct {
	URL string
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type GenerationConfig struct {
	Timeout   time.Duration // wall-clock bound for one upstream generation call
	MaxTokens int
}

// Load loads configuration from environment variables. In development it
// also reads a local .env file if one exists.
//
// Credentials are deliberately not validated here: the server starts without
// them and the dependent endpoints degrade (generation returns 500, gist
// returns 500, trending returns an empty list).
func Load() Config {
	if getEnv("ARCHITECT_ENV", "development") == "development" {
		_ = godotenv.Load()
	}

	provider := getEnv("LLM_PROVIDER", "anthropic")
	apiKeyVar := "ANTHROPIC_API_KEY"
	if provider == "openai" {
		apiKeyVar = "OPENAI_API_KEY"
	}

	return Config{
		Env:  getEnv("ARCHITECT_ENV", "development"),
		Port: getEnv("PORT", "8080"),
		LLM: LLMConfig{
			Provider: provider,
			APIKey:   getEnv(apiKeyVar, ""),
			BaseURL:  getEnv("LLM_BASE_URL", ""),
			Model:    getEnv("LLM_MODEL", ""),
		},
		GitHub: GitHubConfig{
			Token: getEnv("GITHUB_TOKEN", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "architect"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		Generation: GenerationConfig{
			Timeout:   getEnvDuration("GENERATION_TIMEOUT_SEC", 15),
			MaxTokens: getEnvInt("GENERATION_MAX_TOKENS", 8192),
		},
	}
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c LLMConfig) Enabled() bool {
	return c.APIKey != ""
}

// KeyVar names the environment variable expected to carry the API key for
// the configured provider. Used in user-facing configuration errors.
func (c LLMConfig) KeyVar() string {
	if c.Provider == "openai" {
		return "OPENAI_API_KEY"
	}
	return "ANTHROPIC_API_KEY"
}

func (c GitHubConfig) Enabled() bool {
	return c.Token != ""
}

func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallbackSec int) time.Duration {
	return time.Duration(getEnvInt(key, fallbackSec)) * time.Second
}
