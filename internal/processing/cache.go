package processing

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/spacesedan/ytsentiment/internal/models"
)

// AnalysisCache remembers finished analyses per video id so that re-renders
// of the same submission do not call the platform or the model again.
type AnalysisCache interface {
	Get(ctx context.Context, videoID string) (*models.Analysis, bool)
	Set(ctx context.Context, videoID string, analysis *models.Analysis)
}

// RemoteStore is a shared byte store used as the second cache tier.
type RemoteStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// TieredCache keeps recent analyses in an in-process LRU and, when a remote
// store is configured, also in that store. Store failures only cost a miss.
type TieredCache struct {
	l1  *expirable.LRU[string, *models.Analysis]
	l2  RemoteStore
	ttl time.Duration
}

func NewTieredCache(size int, ttl time.Duration, l2 RemoteStore) *TieredCache {
	if size <= 0 {
		size = 1
	}
	slog.Info("[AnalysisCache] Initialized",
		slog.Int("size", size),
		slog.Duration("ttl", ttl),
		slog.Bool("remote", l2 != nil))

	return &TieredCache{
		l1:  expirable.NewLRU[string, *models.Analysis](size, nil, ttl),
		l2:  l2,
		ttl: ttl,
	}
}

func (c *TieredCache) Get(ctx context.Context, videoID string) (*models.Analysis, bool) {
	if analysis, ok := c.l1.Get(videoID); ok {
		slog.Debug("[AnalysisCache] L1 hit", slog.String("video_id", videoID))
		return analysis, true
	}

	if c.l2 == nil {
		return nil, false
	}

	data, ok, err := c.l2.Get(ctx, videoID)
	if err != nil {
		slog.Warn("[AnalysisCache] Remote lookup failed",
			slog.String("video_id", videoID),
			slog.String("error", err.Error()))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var analysis models.Analysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		slog.Warn("[AnalysisCache] Dropping corrupt remote entry",
			slog.String("video_id", videoID),
			slog.String("error", err.Error()))
		return nil, false
	}

	slog.Debug("[AnalysisCache] L2 hit", slog.String("video_id", videoID))
	c.l1.Add(videoID, &analysis)
	return &analysis, true
}

func (c *TieredCache) Set(ctx context.Context, videoID string, analysis *models.Analysis) {
	c.l1.Add(videoID, analysis)

	if c.l2 == nil {
		return
	}

	data, err := json.Marshal(analysis)
	if err != nil {
		slog.Warn("[AnalysisCache] Failed to marshal analysis",
			slog.String("video_id", videoID),
			slog.String("error", err.Error()))
		return
	}
	if err := c.l2.Set(ctx, videoID, data, c.ttl); err != nil {
		slog.Warn("[AnalysisCache] Remote store failed",
			slog.String("video_id", videoID),
			slog.String("error", err.Error()))
	}
}
