package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spacesedan/ytsentiment/internal/models"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	YOUTUBE_COMMENT_PAGE_SIZE = 100
	YOUTUBE_COMMENTS_DISABLED = "commentsDisabled"
)

type YouTubeClient struct {
	Service *youtube.Service
	limiter *rate.Limiter
}

// NewYouTubeClient builds a Data API v3 client. pageRate caps comment page
// requests per second; zero disables pacing. Extra options are appended after
// the API key, which lets tests point the client at a fake endpoint.
func NewYouTubeClient(ctx context.Context, apiKey string, pageRate float64, opts ...option.ClientOption) (*YouTubeClient, error) {
	clientOpts := []option.ClientOption{option.WithUserAgent(USER_AGENT)}
	if apiKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(apiKey))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("[YouTubeClient] failed to create service: %w", err)
	}

	limit := rate.Inf
	if pageRate > 0 {
		limit = rate.Limit(pageRate)
	}

	slog.Info("[YouTubeClient] Initialized YouTube Data API client",
		slog.Float64("page_rate", pageRate))

	return &YouTubeClient{
		Service: service,
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

// FetchVideoStats looks up the public statistics of a video. A video the
// platform does not return yields VideoStats{Found: false} and no error.
func (yc *YouTubeClient) FetchVideoStats(ctx context.Context, videoID string) (models.VideoStats, error) {
	start := time.Now()
	resp, err := yc.Service.Videos.
		List([]string{"statistics", "snippet"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		slog.Error("[YouTubeClient] Video statistics request failed",
			slog.String("video_id", videoID),
			slog.String("error", err.Error()))
		return models.VideoStats{}, fmt.Errorf("fetch video statistics: %w", err)
	}

	if len(resp.Items) == 0 {
		slog.Warn("[YouTubeClient] Video not found",
			slog.String("video_id", videoID))
		return models.VideoStats{}, nil
	}

	stats := models.VideoStats{Found: true}
	if s := resp.Items[0].Statistics; s != nil {
		stats.ViewCount = int64(s.ViewCount)
		stats.LikeCount = int64(s.LikeCount)
		stats.CommentCount = int64(s.CommentCount)
	}

	slog.Info("[YouTubeClient] Fetched video statistics",
		slog.String("video_id", videoID),
		slog.Duration("elapsed", time.Since(start)))

	return stats, nil
}

// FetchComments pages through every top-level comment thread of a video, in
// the order the API returns them. Any failed page aborts the whole fetch.
func (yc *YouTubeClient) FetchComments(ctx context.Context, videoID string) ([]models.Comment, error) {
	start := time.Now()
	call := yc.Service.CommentThreads.
		List([]string{"snippet"}).
		VideoId(videoID).
		MaxResults(YOUTUBE_COMMENT_PAGE_SIZE).
		TextFormat("plainText")

	comments := []models.Comment{}
	pageToken := ""
	pages := 0

	for {
		if err := yc.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("fetch comments: %w", err)
		}

		if pageToken != "" {
			call.PageToken(pageToken)
		}

		resp, err := call.Context(ctx).Do()
		if err != nil {
			if isCommentsDisabled(err) {
				slog.Warn("[YouTubeClient] Comments are disabled for video",
					slog.String("video_id", videoID))
				return []models.Comment{}, nil
			}
			slog.Error("[YouTubeClient] Comment page request failed",
				slog.String("video_id", videoID),
				slog.Int("page", pages+1),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("fetch comments page %d: %w", pages+1, err)
		}
		pages++

		for _, item := range resp.Items {
			if item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
				continue
			}
			comments = append(comments, toComment(item.Snippet.TopLevelComment.Snippet))
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	slog.Info("[YouTubeClient] Fetched comments",
		slog.String("video_id", videoID),
		slog.Int("comments", len(comments)),
		slog.Int("pages", pages),
		slog.Duration("elapsed", time.Since(start)))

	return comments, nil
}

func toComment(snippet *youtube.CommentSnippet) models.Comment {
	comment := models.Comment{
		Text:      snippet.TextDisplay,
		LikeCount: snippet.LikeCount,
	}

	if snippet.PublishedAt != "" {
		publishedAt, err := time.Parse(time.RFC3339, snippet.PublishedAt)
		if err != nil {
			slog.Warn("[YouTubeClient] Unparseable comment timestamp",
				slog.String("published_at", snippet.PublishedAt))
		} else {
			comment.PublishedAt = publishedAt.UTC()
		}
	}

	return comment
}

func isCommentsDisabled(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusForbidden {
		return false
	}
	for _, item := range apiErr.Errors {
		if item.Reason == YOUTUBE_COMMENTS_DISABLED {
			return true
		}
	}
	return false
}
