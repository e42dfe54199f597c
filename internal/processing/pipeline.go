package processing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spacesedan/ytsentiment/internal/models"
	"github.com/spacesedan/ytsentiment/internal/sentiment"
	"github.com/spacesedan/ytsentiment/internal/utils"
	"github.com/spacesedan/ytsentiment/internal/youtube"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidURL = errors.New("invalid URL format")

// VideoSource is the platform side of the pipeline.
type VideoSource interface {
	FetchVideoStats(ctx context.Context, videoID string) (models.VideoStats, error)
	FetchComments(ctx context.Context, videoID string) ([]models.Comment, error)
}

// Pipeline runs fetch, classify and aggregate for one submission. The video
// source and the classifier are built on first use and shared afterwards.
type Pipeline struct {
	source     *utils.Lazy[VideoSource]
	classifier *utils.Lazy[sentiment.Classifier]
	cache      AnalysisCache
	now        func() time.Time
}

func NewPipeline(source *utils.Lazy[VideoSource], classifier *utils.Lazy[sentiment.Classifier], cache AnalysisCache) *Pipeline {
	return &Pipeline{
		source:     source,
		classifier: classifier,
		cache:      cache,
		now:        time.Now,
	}
}

// Run analyses the video referenced by rawURL. A malformed URL yields
// ErrInvalidURL. With refresh set the cache is bypassed.
func (p *Pipeline) Run(ctx context.Context, rawURL string, refresh bool) (*models.Analysis, error) {
	videoID, ok := youtube.ExtractVideoID(rawURL)
	if !ok {
		return nil, ErrInvalidURL
	}
	return p.RunVideo(ctx, videoID, refresh)
}

func (p *Pipeline) RunVideo(ctx context.Context, videoID string, refresh bool) (*models.Analysis, error) {
	if !refresh && p.cache != nil {
		if analysis, ok := p.cache.Get(ctx, videoID); ok {
			return analysis, nil
		}
	}

	runID := uuid.NewString()
	log := slog.With(slog.String("run_id", runID), slog.String("video_id", videoID))
	start := p.now()
	log.Info("[Pipeline] Starting analysis")

	source, err := p.source.Get(ctx)
	if err != nil {
		log.Error("[Pipeline] Video source unavailable", slog.String("error", err.Error()))
		return nil, fmt.Errorf("video source: %w", err)
	}

	var (
		stats    models.VideoStats
		comments []models.Comment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = source.FetchVideoStats(gctx, videoID)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = source.FetchComments(gctx, videoID)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("[Pipeline] Fetch failed", slog.String("error", err.Error()))
		return nil, err
	}

	analysis := &models.Analysis{
		RunID:   runID,
		VideoID: videoID,
		Stats:   stats,
	}

	if len(comments) == 0 {
		log.Warn("[Pipeline] No comments found")
		analysis.Summary = EmptySummary()
	} else {
		results, err := p.classify(ctx, comments)
		if err != nil {
			log.Error("[Pipeline] Sentiment analysis failed", slog.String("error", err.Error()))
			return nil, err
		}
		analysis.Summary = Aggregate(comments, results)
	}

	if len(analysis.UnexpectedLabels) > 0 {
		log.Warn("[Pipeline] Classifier returned unexpected labels",
			slog.Any("labels", analysis.UnexpectedLabels))
	}

	analysis.GeneratedAt = p.now().UTC()
	log.Info("[Pipeline] Analysis complete",
		slog.Int("comments", len(analysis.Comments)),
		slog.Duration("elapsed", p.now().Sub(start)))

	if p.cache != nil {
		p.cache.Set(ctx, videoID, analysis)
	}
	return analysis, nil
}

func (p *Pipeline) classify(ctx context.Context, comments []models.Comment) ([]models.SentimentResult, error) {
	classifier, err := p.classifier.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sentiment model: %w", err)
	}

	texts := make([]string, len(comments))
	for i, c := range comments {
		texts[i] = c.Text
	}

	results, err := classifier.Classify(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("classify comments: %w", err)
	}
	if len(results) != len(texts) {
		return nil, fmt.Errorf("%w: %d comments, %d results", sentiment.ErrResultCountMismatch, len(texts), len(results))
	}
	return results, nil
}
