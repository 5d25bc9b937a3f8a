// Package config loads the service's runtime configuration from the
// environment, with a .env file loaded first when present.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start serving requests.
type Config struct {
	Port string

	StaticGTFSURL  string
	TripUpdatesURL string
	WorksFeedURL   string

	Timezone string

	StaticRefreshInterval time.Duration
	UpstreamTimeout       time.Duration

	SentryDSN string
}

// Load reads the environment, loading .env and .env.local first if they
// exist (.env.local takes precedence, matching the two-file override
// pattern used elsewhere in this stack).
func Load() *Config {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	return &Config{
		Port: getEnv("PORT", "8080"),

		StaticGTFSURL:  getEnv("STATIC_GTFS_URL", "https://ssl.renfe.com/ftransit/Fichero_CER_FOMENTO/fomento_transit.zip"),
		TripUpdatesURL: getEnv("GTFS_TRIP_UPDATES_URL", "https://gtfsrt.renfe.com/trip_updates.pb"),
		WorksFeedURL:   getEnv("WORKS_FEED_URL", "https://www.renfe.com/content/dam/renfe/himdetails"),

		Timezone: getEnv("TIMEZONE", "Europe/Madrid"),

		StaticRefreshInterval: time.Duration(getEnvInt("STATIC_REFRESH_HOURS", 24)) * time.Hour,
		UpstreamTimeout:       time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second,

		SentryDSN: getEnv("SENTRY_DSN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
