package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var ErrMissingAPIKey = errors.New("YOUTUBE_API_KEY is not set")

const (
	DEFAULT_LISTEN_ADDR        = ":8501"
	DEFAULT_SENTIMENT_BACKEND  = "hugot"
	DEFAULT_SENTIMENT_MODEL    = "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english"
	DEFAULT_SENTIMENT_ENDPOINT = "https://spacesedan-sentiment-analyzer.hf.space/analyze_batch"
)

type Config struct {
	YouTubeAPIKey   string
	YouTubePageRate float64

	ListenAddr string
	LogLevel   string

	SentimentBackend  string
	SentimentModel    string
	SentimentModelDir string
	SentimentEndpoint string
	SentimentTimeout  time.Duration

	CacheSize int
	CacheTTL  time.Duration

	ValkeyAddr     string
	ValkeyPassword string
	ValkeyTLS      bool
}

// FromEnv reads the configuration from the process environment. Call LoadEnv
// first to pull in the env file for the current APP_ENV.
func FromEnv() (Config, error) {
	cfg := Config{
		YouTubeAPIKey:     os.Getenv("YOUTUBE_API_KEY"),
		ListenAddr:        getEnv("DASHBOARD_LISTEN_ADDR", DEFAULT_LISTEN_ADDR),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		SentimentBackend:  getEnv("SENTIMENT_BACKEND", DEFAULT_SENTIMENT_BACKEND),
		SentimentModel:    getEnv("SENTIMENT_MODEL", DEFAULT_SENTIMENT_MODEL),
		SentimentModelDir: getEnv("SENTIMENT_MODEL_DIR", "./models"),
		SentimentEndpoint: getEnv("SENTIMENT_ENDPOINT", DEFAULT_SENTIMENT_ENDPOINT),
		SentimentTimeout:  60 * time.Second,
		CacheSize:         32,
		CacheTTL:          10 * time.Minute,
		ValkeyAddr:        os.Getenv("VALKEY_INIT_ADDRESS"),
		ValkeyPassword:    os.Getenv("VALKEY_PASSWORD"),
		ValkeyTLS:         os.Getenv("VALKEY_TLS") == "true",
	}

	if cfg.YouTubeAPIKey == "" {
		return Config{}, ErrMissingAPIKey
	}

	if v := os.Getenv("YOUTUBE_PAGE_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil || rate < 0 {
			return Config{}, fmt.Errorf("parse YOUTUBE_PAGE_RATE %q: must be a non-negative number", v)
		}
		cfg.YouTubePageRate = rate
	}

	if v := os.Getenv("SENTIMENT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse SENTIMENT_TIMEOUT: %w", err)
		}
		cfg.SentimentTimeout = d
	}

	if v := os.Getenv("ANALYSIS_CACHE_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse ANALYSIS_CACHE_SIZE: %w", err)
		}
		if size <= 0 {
			return Config{}, fmt.Errorf("parse ANALYSIS_CACHE_SIZE %q: must be positive", v)
		}
		cfg.CacheSize = size
	}

	if v := os.Getenv("ANALYSIS_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse ANALYSIS_CACHE_TTL: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("parse ANALYSIS_CACHE_TTL %q: must be positive", v)
		}
		cfg.CacheTTL = d
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
