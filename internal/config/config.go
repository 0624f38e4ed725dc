package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env                string
	ServerAddr         string
	FrontendOrigin     string
	RedisURL           string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	JWTSecret          string
	TokenTTLMinutes    int
	CookieSecure       bool
	GeminiAPIKey       string
	GeminiEndpoint     string
	RateLimitAI        int
	RateLimitLogin     int
	RateLimitWindowSec int
	AdminEmail         string
	AdminPassword      string
	AdminName          string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func Load() (*Config, error) {
	loadDotEnv(".env")

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		ServerAddr:         getEnv("SERVER_ADDR", ":8080"),
		FrontendOrigin:     getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
		RedisURL:           getEnv("REDIS_URL", ""),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenTTLMinutes:    getEnvInt("TOKEN_TTL_MINUTES", 10080),
		CookieSecure:       getEnv("COOKIE_SECURE", "false") == "true",
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiEndpoint:     getEnv("GEMINI_ENDPOINT", ""),
		RateLimitAI:        getEnvInt("RATE_LIMIT_AI", 10),
		RateLimitLogin:     getEnvInt("RATE_LIMIT_LOGIN", 5),
		RateLimitWindowSec: getEnvInt("RATE_LIMIT_WINDOW_SEC", 60),
		AdminEmail:         getEnv("ADMIN_EMAIL", "info@my-ai.nl"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		AdminName:          getEnv("ADMIN_NAME", "Admin"),
	}

	return cfg, nil
}

func loadDotEnv(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		_ = os.Setenv(key, val)
	}
}
