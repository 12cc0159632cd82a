package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := Config{
		Port: getEnv("PORT"),
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_URL"),
			Token:   os.Getenv("BACKEND_TOKEN"),
			Timeout: durationEnv("BACKEND_TIMEOUT", 10*time.Second),
		},
		Slack: SlackConfig{
			Token:     os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID: os.Getenv("SLACK_CHANNEL_ID"),
		},
		ProjectID: os.Getenv("GCP_PROJECT"),
		Layout: LayoutConfig{
			CanvasHeight:    floatEnv("CANVAS_HEIGHT", 0),
			Margin:          floatEnv("LAYOUT_MARGIN", 20),
			MatchWidth:      floatEnv("LAYOUT_MATCH_WIDTH", 220),
			MatchHeight:     floatEnv("LAYOUT_MATCH_HEIGHT", 80),
			ColumnSpacing:   floatEnv("LAYOUT_COLUMN_SPACING", 60),
			VerticalSpacing: floatEnv("LAYOUT_VERTICAL_SPACING", 20),
		},
	}
	return cfg
}

func floatEnv(key string, fallback float64) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Warn("Ignoring invalid numeric env var", "key", key, "value", raw, "error", err)
		return fallback
	}
	return v
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Warn("Ignoring invalid duration env var", "key", key, "value", raw, "error", err)
		return fallback
	}
	return v
}
