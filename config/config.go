package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultUserAgent mimics a desktop browser so crawled sites serve the same
// markup they would to a real visitor.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Config holds everything the crawler needs from the environment.
type Config struct {
	APIKey         string // Google Custom Search API key
	SearchEngineID string // Google Custom Search engine (cx) identifier
	Workers        int
	FetchTimeout   time.Duration
	SearchDelay    time.Duration // pause between successive search result pages
	UserAgent      string
	LogDir         string
}

// Load reads configuration from environment variables (optionally a .env
// file). Missing search credentials are a fatal error: nothing can run
// without them.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.APIKey = os.Getenv("GOOGLE_API_KEY")
	cfg.SearchEngineID = os.Getenv("GOOGLE_CSE_ID")
	if cfg.APIKey == "" || cfg.SearchEngineID == "" {
		return nil, fmt.Errorf("missing GOOGLE_API_KEY or GOOGLE_CSE_ID in environment (or .env file)")
	}

	workers := getEnv("CRAWL_WORKERS", "5")
	w, err := strconv.Atoi(workers)
	if err != nil || w < 1 {
		return nil, fmt.Errorf("invalid CRAWL_WORKERS %q", workers)
	}
	cfg.Workers = w

	timeoutSec := getEnv("FETCH_TIMEOUT_SECONDS", "10")
	ts, err := strconv.Atoi(timeoutSec)
	if err != nil || ts < 1 {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT_SECONDS %q", timeoutSec)
	}
	cfg.FetchTimeout = time.Duration(ts) * time.Second

	delayStr := getEnv("SEARCH_PAGE_DELAY", "1s")
	d, err := time.ParseDuration(delayStr)
	if err != nil || d < 0 {
		return nil, fmt.Errorf("invalid SEARCH_PAGE_DELAY %q", delayStr)
	}
	cfg.SearchDelay = d

	cfg.UserAgent = getEnv("USER_AGENT", DefaultUserAgent)
	cfg.LogDir = getEnv("LOG_DIR", "logs")

	return cfg, nil
}

// getEnv returns env var or default.
func getEnv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}
