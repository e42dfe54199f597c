package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/spacesedan/ytsentiment/internal/utils"
)

const HUGOT_BATCH_SIZE = 32

// textPipeline is the part of a hugot text classification pipeline the
// classifier calls.
type textPipeline interface {
	RunPipeline(inputs []string) (*pipelines.TextClassificationOutput, error)
}

// HugotClassifier runs a pretrained text classification model in process.
type HugotClassifier struct {
	session  *hugot.Session
	pipeline textPipeline
	mu       sync.Mutex
}

// NewHugotClassifier downloads modelName into modelDir when it is not there
// yet and loads it into an onnxruntime backed hugot session. The host needs
// the onnxruntime shared library at /usr/lib/onnxruntime.so and the binary
// must be linked against libtokenizers.
func NewHugotClassifier(ctx context.Context, modelName, modelDir string) (*HugotClassifier, error) {
	modelPath, err := ensureModel(ctx, modelName, modelDir)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	session, err := hugot.NewORTSession()
	if err != nil {
		slog.Error("[HugotClassifier] Failed to initialize Hugot session", slog.String("error", err.Error()))
		return nil, fmt.Errorf("create hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "commentSentimentPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		slog.Error("[HugotClassifier] Failed to initialize sentiment pipeline", slog.String("error", err.Error()))
		if destroyErr := session.Destroy(); destroyErr != nil {
			slog.Warn("[HugotClassifier] Failed to destroy session", slog.String("error", destroyErr.Error()))
		}
		return nil, fmt.Errorf("create sentiment pipeline: %w", err)
	}

	slog.Info("[HugotClassifier] Model loaded",
		slog.String("model", modelName),
		slog.Duration("elapsed", time.Since(start)))

	return &HugotClassifier{session: session, pipeline: pipeline}, nil
}

func ensureModel(ctx context.Context, modelName, modelDir string) (string, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create model directory: %w", err)
	}

	modelPath := filepath.Join(modelDir, strings.ReplaceAll(modelName, "/", "_"))
	if _, err := os.Stat(modelPath); err == nil {
		slog.Info("[HugotClassifier] Using existing model", slog.String("path", modelPath))
		return modelPath, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat model: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	slog.Info("[HugotClassifier] Model not found, downloading...", slog.String("model", modelName))
	downloaded, err := hugot.DownloadModel(modelName, modelDir, hugot.NewDownloadOptions())
	if err != nil {
		slog.Error("[HugotClassifier] Failed to download model", slog.String("error", err.Error()))
		return "", fmt.Errorf("download model %s: %w", modelName, err)
	}
	slog.Info("[HugotClassifier] Model downloaded successfully", slog.String("path", downloaded))

	return downloaded, nil
}

func (h *HugotClassifier) Classify(ctx context.Context, texts []string) ([]Result, error) {
	if len(texts) == 0 {
		return []Result{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inputs := make([]string, len(texts))
	for i, text := range texts {
		inputs[i] = TruncateForModel(text)
	}

	results := make([]Result, 0, len(inputs))
	for _, batch := range utils.Batches(inputs, HUGOT_BATCH_SIZE) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		h.mu.Lock()
		output, err := h.pipeline.RunPipeline(batch)
		h.mu.Unlock()
		if err != nil {
			return nil, fmt.Errorf("run sentiment pipeline: %w", err)
		}

		for _, classes := range output.ClassificationOutputs {
			results = append(results, topClass(classes))
		}
	}

	if err := checkCount(texts, results); err != nil {
		return nil, err
	}
	return results, nil
}

func topClass(classes []pipelines.ClassificationOutput) Result {
	var best Result
	for i, c := range classes {
		if i == 0 || float64(c.Score) > best.Score {
			best = Result{Label: NormalizeLabel(c.Label), Score: float64(c.Score)}
		}
	}
	return best
}

// Close releases the hugot session.
func (h *HugotClassifier) Close() error {
	if h.session == nil {
		return nil
	}
	return h.session.Destroy()
}
