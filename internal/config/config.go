// Package config loads runtime configuration from the environment, with a
// .env file picked up when present.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// OpenAIAPIKey enables narration; empty means every narration call
	// returns the fallback line.
	OpenAIAPIKey     string
	NarrationModel   string
	NarrationTimeout time.Duration
	SaveDir          string
	EventDBPath      string
	DebugLogPath     string
	Debug            bool
}

// Load reads the environment. Missing variables fall back to defaults, so
// Load never fails.
func Load() Config {
	godotenv.Load()

	return Config{
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		NarrationModel:   getenv("TEXTQUEST_MODEL", "gpt-5-2025-08-07"),
		NarrationTimeout: getenvSeconds("TEXTQUEST_NARRATION_TIMEOUT", 15*time.Second),
		SaveDir:          getenv("TEXTQUEST_SAVE_DIR", "saves"),
		EventDBPath:      getenv("TEXTQUEST_EVENT_DB", "./events.db"),
		DebugLogPath:     getenv("TEXTQUEST_DEBUG_LOG", "debug.log"),
		Debug:            os.Getenv("TEXTQUEST_DEBUG") == "true",
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvSeconds(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
