package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

// ConfigInt reads an integer knob, falling back when unset or malformed.
func ConfigInt(key string, fallback int) int {
	raw := Config(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using default %d", key, raw, fallback)
		return fallback
	}
	return n
}

// DropLeadHours is the no-drop window before a duty starts.
func DropLeadHours() int {
	return ConfigInt("DROP_LEAD_HOURS", 2)
}

// GenerateWeeksAhead is how far the weekly cron keeps duties materialized.
func GenerateWeeksAhead() int {
	return ConfigInt("GENERATE_WEEKS_AHEAD", 2)
}
