package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	AppEnv string

	DBDriver          string
	DatabaseURL       string
	DBPoolSize        int
	DBConnMaxLifetime time.Duration

	CacheBackend    string
	RedisURL        string
	CatalogCacheTTL time.Duration

	Generation GenerationConfig

	JWTSecret               string
	GenerationRatePerMinute int
	CORSAllowedOrigins      []string

	// EnvFileErr is set when no .env file could be merged; that is normal
	// outside local development.
	EnvFileErr error
	// Rejected lists settings that could not be parsed and fell back to
	// their defaults.
	Rejected []RejectedSetting
}

type RejectedSetting struct {
	Key      string
	Value    string
	Fallback string
}

// GenerationConfig is fixed per deployment; nothing in a trip request
// changes how the model is called.
type GenerationConfig struct {
	Provider      string
	OllamaURL     string
	Model         string
	Temperature   float32
	MaxTokens     int
	Timeout       time.Duration
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GeminiAPIKey  string
}

// Load reads the process environment, after merging a local .env file when
// one exists.
func Load() Config {
	envErr := godotenv.Load()

	l := &loader{}
	cfg := Config{
		Port:   getEnvWithDefault("PORT", "8001"),
		AppEnv: getEnvWithDefault("APP_ENV", "development"),

		DBDriver:          strings.ToLower(getEnvWithDefault("DB_DRIVER", "mysql")),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBPoolSize:        l.getIntWithDefault("DB_POOL_SIZE", 10),
		DBConnMaxLifetime: l.getDurationWithDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute),

		CacheBackend:    strings.ToLower(getEnvWithDefault("CACHE_BACKEND", "memory")),
		RedisURL:        getEnvWithDefault("REDIS_URL", "redis://localhost:6379/0"),
		CatalogCacheTTL: l.getDurationWithDefault("CATALOG_CACHE_TTL", time.Hour),

		Generation: GenerationConfig{
			Provider:      strings.ToLower(getEnvWithDefault("GENERATION_PROVIDER", "ollama")),
			OllamaURL:     getEnvWithDefault("OLLAMA_URL", "http://localhost:11434/api/generate"),
			Model:         getEnvWithDefault("GENERATION_MODEL", "turkey-expert"),
			Temperature:   float32(l.getFloatWithDefault("GENERATION_TEMPERATURE", 0.5)),
			MaxTokens:     l.getIntWithDefault("GENERATION_MAX_TOKENS", 16000),
			Timeout:       l.getDurationWithDefault("GENERATION_TIMEOUT", 5*time.Minute),
			OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
			OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
			GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		},

		JWTSecret:               os.Getenv("JWT_SECRET"),
		GenerationRatePerMinute: l.getIntWithDefault("GENERATION_RATE_PER_MINUTE", 30),
		CORSAllowedOrigins:      splitList(getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*")),
	}
	cfg.EnvFileErr = envErr
	cfg.Rejected = l.rejected
	return cfg
}

// loader records every value it had to replace with a default.
type loader struct {
	rejected []RejectedSetting
}

func (l *loader) reject(key, raw string, fallback any) {
	l.rejected = append(l.rejected, RejectedSetting{Key: key, Value: raw, Fallback: fmt.Sprint(fallback)})
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (l *loader) getIntWithDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		l.reject(key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func (l *loader) getFloatWithDefault(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		l.reject(key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func (l *loader) getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		l.reject(key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
