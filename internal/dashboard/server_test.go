package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spacesedan/ytsentiment/internal/models"
	"github.com/spacesedan/ytsentiment/internal/processing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	analysis *models.Analysis
	err      error
	refresh  []bool
	videoIDs []string
}

func (f *fakeAnalyzer) Run(ctx context.Context, rawURL string, refresh bool) (*models.Analysis, error) {
	f.refresh = append(f.refresh, refresh)
	if rawURL == "" || rawURL == "bogus" {
		return nil, processing.ErrInvalidURL
	}
	return f.analysis, f.err
}

func (f *fakeAnalyzer) RunVideo(ctx context.Context, videoID string, refresh bool) (*models.Analysis, error) {
	f.videoIDs = append(f.videoIDs, videoID)
	return f.analysis, f.err
}

func readyAnalysis() *models.Analysis {
	comments := make([]models.Comment, 12)
	results := make([]models.SentimentResult, 12)
	for i := range comments {
		comments[i] = models.Comment{
			Text:        fmt.Sprintf("comment %02d", i),
			PublishedAt: time.Date(2024, 2, 1+i%3, 8, 0, 0, 0, time.UTC),
			LikeCount:   int64(i),
		}
		label := models.LabelPositive
		if i%4 == 0 {
			label = models.LabelNegative
		}
		results[i] = models.SentimentResult{Label: label, Score: 0.5 + float64(i)/30}
	}
	return &models.Analysis{
		RunID:   "run-42",
		VideoID: "dQw4w9WgXcQ",
		Stats:   models.VideoStats{Found: true, ViewCount: 1234567, LikeCount: 8900, CommentCount: 12},
		Summary: processing.Aggregate(comments, results),
	}
}

func newTestServer(t *testing.T, analyzer Analyzer) http.Handler {
	t.Helper()
	s, err := NewServer(analyzer)
	require.NoError(t, err)
	return s.Routes()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestIndexIdle(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	rec := get(t, newTestServer(t, analyzer), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Enter a video URL")
	assert.Empty(t, analyzer.refresh, "no pipeline run without input")
}

func TestIndexInvalidURL(t *testing.T) {
	rec := get(t, newTestServer(t, &fakeAnalyzer{}), "/?url=bogus")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid URL format")
}

func TestIndexUpstreamError(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("quotaExceeded")}
	rec := get(t, newTestServer(t, analyzer), "/?url="+url.QueryEscape("https://youtu.be/dQw4w9WgXcQ"))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Analysis failed: quotaExceeded")
}

func TestIndexNoComments(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &models.Analysis{
		VideoID: "dQw4w9WgXcQ",
		Stats:   models.VideoStats{Found: true, ViewCount: 1500},
		Summary: processing.EmptySummary(),
	}}
	rec := get(t, newTestServer(t, analyzer), "/?url="+url.QueryEscape("https://youtu.be/dQw4w9WgXcQ"))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "No comments found.")
	assert.Contains(t, body, "1,500")
	assert.NotContains(t, body, "<iframe")
}

func TestIndexVideoNotFound(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &models.Analysis{
		VideoID: "dQw4w9WgXcQ",
		Summary: processing.EmptySummary(),
	}}
	rec := get(t, newTestServer(t, analyzer), "/?url="+url.QueryEscape("https://youtu.be/dQw4w9WgXcQ"))

	assert.Contains(t, rec.Body.String(), "N/A")
}

func TestIndexReady(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: readyAnalysis()}
	rec := get(t, newTestServer(t, analyzer), "/?url="+url.QueryEscape("https://youtu.be/dQw4w9WgXcQ")+"&refresh=1")

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "1,234,567")
	assert.Contains(t, body, "comment 09")
	assert.NotContains(t, body, "comment 10", "only the first rows are previewed")
	assert.Contains(t, body, "Summary Statistics by Sentiment")
	assert.Contains(t, body, `src="/charts?v=dQw4w9WgXcQ"`)
	assert.Equal(t, []bool{true}, analyzer.refresh)
}

func TestIndexUnexpectedLabelWarning(t *testing.T) {
	analysis := readyAnalysis()
	analysis.UnexpectedLabels = []string{models.LabelNeutral}
	rec := get(t, newTestServer(t, &fakeAnalyzer{analysis: analysis}), "/?url="+url.QueryEscape("https://youtu.be/dQw4w9WgXcQ"))

	assert.Contains(t, rec.Body.String(), "unexpected labels: NEUTRAL")
}

func TestCharts(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: readyAnalysis()}
	rec := get(t, newTestServer(t, analyzer), "/charts?v=dQw4w9WgXcQ")

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "Sentiment Distribution")
	assert.Contains(t, body, "Sentiment Score Distribution by Category")
	assert.Contains(t, body, "Average Sentiment Over Time")
	assert.Equal(t, []string{"dQw4w9WgXcQ"}, analyzer.videoIDs)
}

func TestChartsRejectsBadID(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: readyAnalysis()}
	rec := get(t, newTestServer(t, analyzer), "/charts?v=short")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, analyzer.videoIDs)
}

func TestAnalysisAPI(t *testing.T) {
	rec := get(t, newTestServer(t, &fakeAnalyzer{analysis: readyAnalysis()}), "/api/analysis?url="+url.QueryEscape("https://youtu.be/dQw4w9WgXcQ"))

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "run-42", got.RunID)
	assert.Len(t, got.Comments, 12)
	assert.Equal(t, 12, got.Engagement.TotalComments)
}

func TestAnalysisAPIErrors(t *testing.T) {
	rec := get(t, newTestServer(t, &fakeAnalyzer{}), "/api/analysis?url=bogus")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid URL format")

	rec = get(t, newTestServer(t, &fakeAnalyzer{err: errors.New("boom")}), "/api/analysis?url="+url.QueryEscape("https://youtu.be/dQw4w9WgXcQ"))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestServer(t, &fakeAnalyzer{}), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthzDegraded(t *testing.T) {
	s, err := NewServer(&fakeAnalyzer{})
	require.NoError(t, err)
	healthy := &atomic.Bool{}
	s.AddHealthCheck("valkey", healthy)

	rec := get(t, s.Routes(), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","checks":{"valkey":"unhealthy"}}`, rec.Body.String())

	healthy.Store(true)
	rec = get(t, s.Routes(), "/healthz")
	assert.JSONEq(t, `{"status":"ok","checks":{"valkey":"ok"}}`, rec.Body.String())
}

func TestWithLoggingKeepsStatus(t *testing.T) {
	h := WithLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := get(t, h, "/anything")

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
