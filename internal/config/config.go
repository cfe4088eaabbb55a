package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ServiceName string
	APIPort     string
	LogLevel    string

	MALBaseURL  string
	MALClientID string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	AllowedOrigins []string

	APIRateLimitRPS   float64
	APIRateLimitBurst int
	APIMaxInFlight    int
}

func Load() Config {
	return Config{
		ServiceName: mustEnv("SERVICE_NAME", "anime-recommender"),
		APIPort:     mustEnv("API_PORT", "8080"),
		LogLevel:    mustEnv("LOG_LEVEL", "info"),

		MALBaseURL:  mustEnv("MAL_BASE_URL", "https://api.myanimelist.net/v2"),
		MALClientID: mustEnv("MAL_CLIENT_ID", ""),

		OpenAIAPIKey:  mustEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: mustEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:   mustEnv("OPENAI_MODEL", "gpt-4o-mini"),

		AllowedOrigins: mustEnvCSV("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"),

		APIRateLimitRPS:   mustEnvFloat("API_RATE_LIMIT_RPS", 2),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 5),
		APIMaxInFlight:    mustEnvInt("API_MAX_IN_FLIGHT", 64),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvCSV(key, fallback string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallback
	}

	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
