package dashboard

import (
	"fmt"
	"html/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spacesedan/ytsentiment/internal/models"
)

var templateFuncs = template.FuncMap{
	"metric": videoMetric,
	"comma":  humanize.Comma,
	"int":    func(n int) string { return humanize.Comma(int64(n)) },
	"avg":    func(v float64) string { return humanize.CommafWithDigits(v, 2) },
	"score":  func(v float64) string { return fmt.Sprintf("%.3f", v) },
	"std":    formatStd,
	"date":   formatDate,
}

// videoMetric shows a video statistic, or N/A when the video was not found.
func videoMetric(stats models.VideoStats, value int64) string {
	if !stats.Found {
		return "N/A"
	}
	return humanize.Comma(value)
}

func formatStd(std *float64) string {
	if std == nil {
		return "NaN"
	}
	return fmt.Sprintf("%.3f", *std)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04")
}
