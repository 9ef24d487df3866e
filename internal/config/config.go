package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded once at startup.
type Config struct {
	Env            string
	Port           string
	AllowedOrigins []string

	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	AITimeoutSeconds int
	CorpusPath       string

	RateLimitPerSec float64
	RateLimitBurst  int
	DailyQuota      int64
}

// Load reads configuration from the environment, with .env.local as the
// local-development convenience.
func Load() Config {
	_ = godotenv.Load(".env.local")

	return Config{
		Env:            getEnv("ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnvCSV("ALLOWED_ORIGINS", nil),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", ""),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", ""),

		AITimeoutSeconds: getEnvInt("AI_TIMEOUT_SECONDS", 30),
		CorpusPath:       getEnv("CORPUS_PATH", ""),

		RateLimitPerSec: getEnvFloat("RATE_LIMIT_PER_SECOND", 1),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 3),
		DailyQuota:      int64(getEnvInt("DAILY_QUOTA", 5000)),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvCSV(key string, fallback []string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, item := range parts {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return parsed
}
