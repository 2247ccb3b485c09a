package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DBPath               string
	QuizDir              string
	LogLevel             string
	DefaultQuestionCount int
	CountdownSeconds     int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:quizdrill.db"),
		QuizDir:              envOr("QUIZ_DIR", "data/quizzes"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		DefaultQuestionCount: envIntOr("DEFAULT_QUESTION_COUNT", 25),
		CountdownSeconds:     envIntOr("COUNTDOWN_SECONDS", 30*60),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.QuizDir == "" {
		return fmt.Errorf("QUIZ_DIR cannot be empty")
	}
	if c.DefaultQuestionCount <= 0 {
		return fmt.Errorf("DEFAULT_QUESTION_COUNT must be positive, got %d", c.DefaultQuestionCount)
	}
	if c.CountdownSeconds <= 0 {
		return fmt.Errorf("COUNTDOWN_SECONDS must be positive, got %d", c.CountdownSeconds)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
