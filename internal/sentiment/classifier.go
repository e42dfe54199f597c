package sentiment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrResultCountMismatch = errors.New("classifier returned a different number of results than inputs")
	ErrScoreOutOfRange     = errors.New("classifier returned a confidence outside [0, 1]")
)

const (
	BACKEND_HUGOT  = "hugot"
	BACKEND_REMOTE = "remote"
	BACKEND_VADER  = "vader"
)

// Classifier scores a batch of texts. The result at index i belongs to the
// text at index i and the two slices always have the same length.
type Classifier interface {
	Classify(ctx context.Context, texts []string) ([]Result, error)
}

type Config struct {
	Backend   string
	ModelName string
	ModelDir  string
	Endpoint  string
	Timeout   time.Duration
}

// NewClassifier builds the backend named in cfg. It may download and load a
// model, so callers keep the result for the life of the process.
func NewClassifier(ctx context.Context, cfg Config) (Classifier, error) {
	switch strings.ToLower(cfg.Backend) {
	case BACKEND_HUGOT, "":
		return NewHugotClassifier(ctx, cfg.ModelName, cfg.ModelDir)
	case BACKEND_REMOTE:
		return NewRemoteClassifier(cfg.Endpoint, cfg.Timeout), nil
	case BACKEND_VADER:
		return NewVaderClassifier(), nil
	default:
		return nil, fmt.Errorf("unknown sentiment backend %q", cfg.Backend)
	}
}

// NormalizeLabel upper-cases and trims a model label so every backend speaks
// POSITIVE/NEGATIVE.
func NormalizeLabel(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}

func checkCount(texts []string, results []Result) error {
	if len(texts) != len(results) {
		return fmt.Errorf("%w: %d inputs, %d results", ErrResultCountMismatch, len(texts), len(results))
	}
	return nil
}
