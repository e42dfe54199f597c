package processing

import (
	"math"
	"sort"

	"github.com/spacesedan/ytsentiment/internal/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const HISTOGRAM_BINS = 20

// Histogram bins the raw score of every row, with one count series per label.
// Edges has Bins+1 entries.
type Histogram struct {
	Edges  []float64
	Labels []string
	Counts map[string][]int
}

func ScoreHistogram(rows []models.AnnotatedComment, bins int) Histogram {
	h := Histogram{Counts: make(map[string][]int)}
	if len(rows) == 0 || bins <= 0 {
		return h
	}

	byLabel := make(map[string][]float64)
	all := make([]float64, 0, len(rows))
	for _, row := range rows {
		if _, ok := byLabel[row.Label]; !ok {
			h.Labels = append(h.Labels, row.Label)
		}
		byLabel[row.Label] = append(byLabel[row.Label], row.Score)
		all = append(all, row.Score)
	}
	sort.Strings(h.Labels)

	lo, hi := floats.Min(all), floats.Max(all)
	if hi == lo {
		// a single distinct value still needs a non-empty range
		lo, hi = lo-0.005, hi+0.005
	}
	h.Edges = floats.Span(make([]float64, bins+1), lo, hi)

	// the top edge is exclusive in stat.Histogram; the maximum belongs to the last bin
	dividers := append([]float64(nil), h.Edges...)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	for _, label := range h.Labels {
		scores := byLabel[label]
		sort.Float64s(scores)

		counts := stat.Histogram(nil, dividers, scores, nil)
		h.Counts[label] = make([]int, bins)
		for i, c := range counts {
			h.Counts[label][i] = int(c)
		}
	}

	return h
}
