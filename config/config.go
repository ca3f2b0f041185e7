package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config collects everything the process reads from the environment.
type Config struct {
	Env  string
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// Reference timezone for "today"/"yesterday" and all day windows.
	Timezone string
	Location *time.Location

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	// Bounded wait applied around extraction and transcription calls.
	ExtractTimeout time.Duration

	JWTSecret string

	AdminTgID string
	CoachTgID string

	RateLimit       int
	RateLimitWindow time.Duration
}

func Load() (*Config, error) {
	// .env is optional outside local dev
	_ = godotenv.Load()

	cfg := &Config{
		Env:  getenv("APP_ENV", "development"),
		Port: getenv("PORT", "8080"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getenv("DB_NAME", "nutritionbot"),
		DBPort:     getenv("DB_PORT", "5432"),

		Timezone: getenv("APP_TIMEZONE", "Europe/Warsaw"),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getenv("OPENAI_MODEL", "gpt-4o-mini"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		AdminTgID: os.Getenv("ADMIN_TG_ID"),
		CoachTgID: os.Getenv("TRAINER_TG_ID"),

		RateLimit:       getenvInt("RATE_LIMIT", 8),
		RateLimitWindow: getenvDuration("RATE_LIMIT_WINDOW", time.Minute),
		ExtractTimeout:  getenvDuration("EXTRACT_TIMEOUT", 20*time.Second),
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
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

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
