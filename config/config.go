package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the process configuration, read once from the environment at
// startup and passed by reference into the services that need it.
type Config struct {
	// TMDBAPIKey authenticates every upstream TMDB call.
	TMDBAPIKey string

	// CacheDB is the path of the SQLite cache database. Empty selects the
	// in-process memory backend.
	CacheDB string

	// NoCache disables the cache layer entirely; every request computes.
	NoCache bool

	MetaTTL    time.Duration
	CatalogTTL time.Duration

	// HostName is the public base URL of this addon, used in share and
	// genre-filter links.
	HostName string

	Port    string
	LogFile string
}

const (
	defaultMetaTTL    = 24 * time.Hour
	defaultCatalogTTL = 12 * time.Hour
)

// Load reads configuration from the environment, applying defaults. TTL
// variables are expressed in seconds to match the upstream deployment
// convention.
func Load() Config {
	cfg := Config{
		TMDBAPIKey: os.Getenv("TMDB_API"),
		CacheDB:    os.Getenv("CACHE_DB"),
		NoCache:    os.Getenv("NO_CACHE") == "true",
		MetaTTL:    ttlFromEnv("META_TTL", defaultMetaTTL),
		CatalogTTL: ttlFromEnv("CATALOG_TTL", defaultCatalogTTL),
		HostName:   os.Getenv("HOST_NAME"),
		Port:       os.Getenv("PORT"),
		LogFile:    os.Getenv("LOG_FILE"),
	}
	if cfg.HostName == "" {
		cfg.HostName = "https://tmdb-addon.local"
	}
	if cfg.Port == "" {
		cfg.Port = "1337"
	}
	return cfg
}

func ttlFromEnv(name string, fallback time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}
