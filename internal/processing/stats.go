package processing

import (
	"math"
	"sort"

	"github.com/spacesedan/ytsentiment/internal/models"
	"gonum.org/v1/gonum/stat"
)

// Describe summarizes scores the way a describe() table does: count, mean,
// sample standard deviation, min, quartiles and max.
func Describe(label string, scores []float64) models.LabelStats {
	out := models.LabelStats{Label: label, Count: len(scores)}
	if len(scores) == 0 {
		return out
	}

	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)

	out.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		std := stat.StdDev(sorted, nil)
		out.Std = &std
	}
	out.Min = sorted[0]
	out.Q1 = Quantile(sorted, 0.25)
	out.Median = Quantile(sorted, 0.5)
	out.Q3 = Quantile(sorted, 0.75)
	out.Max = sorted[len(sorted)-1]

	return out
}

// Quantile linearly interpolates between the closest ranks of an ascending
// slice, position (n-1)*p.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	pos := float64(len(sorted)-1) * p
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
