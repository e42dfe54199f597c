package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/spacesedan/ytsentiment/internal/models"
	"github.com/spacesedan/ytsentiment/internal/processing"
	"github.com/spacesedan/ytsentiment/internal/youtube"
)

const PREVIEW_ROWS = 10

//go:embed templates/*.html
var templateFS embed.FS

// Analyzer produces the analysis behind every page. Implementations are
// expected to serve repeated requests for the same video from a cache.
type Analyzer interface {
	Run(ctx context.Context, rawURL string, refresh bool) (*models.Analysis, error)
	RunVideo(ctx context.Context, videoID string, refresh bool) (*models.Analysis, error)
}

type Server struct {
	analyzer Analyzer
	index    *template.Template
	checks   map[string]*atomic.Bool
}

func NewServer(analyzer Analyzer) (*Server, error) {
	index, err := template.New("index.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &Server{analyzer: analyzer, index: index, checks: map[string]*atomic.Bool{}}, nil
}

// AddHealthCheck reports the named dependency on /healthz. Optional
// dependencies that are down degrade the status but do not fail it.
func (s *Server) AddHealthCheck(name string, healthy *atomic.Bool) {
	s.checks[name] = healthy
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.health)
	mux.HandleFunc("GET /charts", s.handleCharts)
	mux.HandleFunc("GET /api/analysis", s.handleAnalysis)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	return mux
}

const (
	stateIdle    = "idle"
	stateInvalid = "invalid"
	stateError   = "error"
	stateEmpty   = "empty"
	stateReady   = "ready"
)

type indexPage struct {
	URL       string
	State     string
	Error     string
	Analysis  *models.Analysis
	Preview   []models.AnnotatedComment
	ChartsURL string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := indexPage{URL: strings.TrimSpace(r.URL.Query().Get("url"))}
	status := http.StatusOK

	switch {
	case page.URL == "":
		page.State = stateIdle
	default:
		analysis, err := s.analyzer.Run(r.Context(), page.URL, isRefresh(r))
		switch {
		case errors.Is(err, processing.ErrInvalidURL):
			page.State = stateInvalid
			page.Error = "Invalid URL format"
			status = http.StatusBadRequest
		case err != nil:
			page.State = stateError
			page.Error = err.Error()
			status = http.StatusBadGateway
		case !analysis.HasComments():
			page.State = stateEmpty
			page.Analysis = analysis
		default:
			page.State = stateReady
			page.Analysis = analysis
			page.Preview = analysis.Comments[:min(PREVIEW_ROWS, len(analysis.Comments))]
			page.ChartsURL = "/charts?v=" + url.QueryEscape(analysis.VideoID)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.index.Execute(w, page); err != nil {
		slog.Error("[Dashboard] Failed to render index",
			slog.String("error", err.Error()))
	}
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("v")
	if !youtube.IsVideoID(videoID) {
		http.Error(w, "invalid video id", http.StatusBadRequest)
		return
	}

	analysis, err := s.analyzer.RunVideo(r.Context(), videoID, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := BuildCharts(analysis).Render(w); err != nil {
		slog.Error("[Dashboard] Failed to render charts",
			slog.String("video_id", videoID),
			slog.String("error", err.Error()))
	}
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")

	analysis, err := s.analyzer.Run(r.Context(), rawURL, isRefresh(r))
	if errors.Is(err, processing.ErrInvalidURL) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	checks := make(map[string]string, len(s.checks))
	for name, healthy := range s.checks {
		if healthy.Load() {
			checks[name] = "ok"
			continue
		}
		checks[name] = "unhealthy"
		status = "degraded"
	}

	body := map[string]any{"status": status}
	if len(checks) > 0 {
		body["checks"] = checks
	}
	writeJSON(w, http.StatusOK, body)
}

func isRefresh(r *http.Request) bool {
	v := r.URL.Query().Get("refresh")
	return v == "1" || v == "true"
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("[Dashboard] Failed to write response",
			slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// WithLogging logs every request once it has been served.
func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		slog.Info("[Dashboard] Request served",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("elapsed", time.Since(start)))
	})
}
