package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvRequiresAPIKey(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")

	_, err := FromEnv()
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "key")
	for _, k := range []string{
		"DASHBOARD_LISTEN_ADDR", "SENTIMENT_BACKEND", "SENTIMENT_MODEL", "YOUTUBE_PAGE_RATE",
		"SENTIMENT_TIMEOUT", "ANALYSIS_CACHE_SIZE", "ANALYSIS_CACHE_TTL", "VALKEY_INIT_ADDRESS",
	} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.YouTubeAPIKey)
	assert.Equal(t, DEFAULT_LISTEN_ADDR, cfg.ListenAddr)
	assert.Equal(t, DEFAULT_SENTIMENT_BACKEND, cfg.SentimentBackend)
	assert.Equal(t, DEFAULT_SENTIMENT_MODEL, cfg.SentimentModel)
	assert.Zero(t, cfg.YouTubePageRate)
	assert.Equal(t, 60*time.Second, cfg.SentimentTimeout)
	assert.Equal(t, 32, cfg.CacheSize)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.ValkeyAddr)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "key")
	t.Setenv("SENTIMENT_BACKEND", "vader")
	t.Setenv("YOUTUBE_PAGE_RATE", "2.5")
	t.Setenv("ANALYSIS_CACHE_SIZE", "4")
	t.Setenv("ANALYSIS_CACHE_TTL", "30s")
	t.Setenv("VALKEY_TLS", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "vader", cfg.SentimentBackend)
	assert.Equal(t, 2.5, cfg.YouTubePageRate)
	assert.Equal(t, 4, cfg.CacheSize)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.ValkeyTLS)
}

func TestFromEnvRejectsMalformedValues(t *testing.T) {
	cases := map[string]string{
		"YOUTUBE_PAGE_RATE":   "fast",
		"SENTIMENT_TIMEOUT":   "soon",
		"ANALYSIS_CACHE_SIZE": "many",
		"ANALYSIS_CACHE_TTL":  "10",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("YOUTUBE_API_KEY", "key")
			t.Setenv(key, value)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestFromEnvRejectsNonPositiveCacheSettings(t *testing.T) {
	cases := []struct{ key, value string }{
		{"ANALYSIS_CACHE_TTL", "0s"},
		{"ANALYSIS_CACHE_TTL", "-5m"},
		{"ANALYSIS_CACHE_SIZE", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv("YOUTUBE_API_KEY", "key")
			t.Setenv(tc.key, tc.value)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
