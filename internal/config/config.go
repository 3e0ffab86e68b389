package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything read from the environment. Loaded once at startup
// and treated as immutable after that.
type Config struct {
	DatabaseURL string
	JWTSecret   string

	Port     string
	TokenTTL time.Duration

	// business calendar
	OpenHour    int
	CloseHour   int
	SlotMinutes int

	// rate limit on register/login, per client IP
	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() (*Config, error) {
	cfg := &Config{}

	var missing []string
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	cfg.Port = getEnvString("PORT", "8080")
	cfg.TokenTTL = getEnvDuration("TOKEN_TTL", 24*time.Hour)
	cfg.OpenHour = getEnvInt("OPEN_HOUR", 9)
	cfg.CloseHour = getEnvInt("CLOSE_HOUR", 17)
	cfg.SlotMinutes = getEnvInt("SLOT_MINUTES", 60)
	cfg.RateLimitRPS = getEnvFloat("RATE_LIMIT_RPS", 5)
	cfg.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", 10)

	if cfg.OpenHour < 0 || cfg.CloseHour > 23 || cfg.CloseHour < cfg.OpenHour {
		return nil, fmt.Errorf("invalid business hours: %d..%d", cfg.OpenHour, cfg.CloseHour)
	}
	if cfg.SlotMinutes <= 0 || cfg.SlotMinutes > 24*60 {
		return nil, fmt.Errorf("invalid slot granularity: %d minutes", cfg.SlotMinutes)
	}

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
