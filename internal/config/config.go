package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        int
	NatsURL     string
	DatabaseURL string
	LogLevel    string
	PlanTTL     time.Duration
}

func Load() Config {
	return Config{
		Port:        envInt("WORKER_PORT", 8600),
		NatsURL:     envStr("NATS_URL", ""),
		DatabaseURL: envStr("DATABASE_URL", ""),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		PlanTTL:     time.Duration(envInt("PLAN_TTL_HOURS", 24)) * time.Hour,
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
