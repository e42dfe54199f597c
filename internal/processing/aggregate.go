package processing

import (
	"sort"
	"time"

	"github.com/spacesedan/ytsentiment/internal/models"
)

// Aggregate joins sentiment results onto their comments by position and
// derives the summary tables. results must be aligned with comments.
func Aggregate(comments []models.Comment, results []models.SentimentResult) models.Summary {
	rows := make([]models.AnnotatedComment, 0, len(comments))
	for i, comment := range comments {
		result := results[i]
		rows = append(rows, models.AnnotatedComment{
			Comment:     comment,
			Label:       result.Label,
			Score:       result.Score,
			SignedScore: result.SignedScore(),
		})
	}

	return models.Summary{
		Comments:         rows,
		LabelCounts:      CountLabels(rows),
		ScoreStats:       DescribeScores(rows),
		Daily:            DailyMeans(rows),
		Engagement:       Engagement(comments),
		UnexpectedLabels: UnexpectedLabels(rows),
	}
}

// EmptySummary is the summary of a video without comments.
func EmptySummary() models.Summary {
	return Aggregate(nil, nil)
}

// CountLabels counts rows per label, most frequent first.
func CountLabels(rows []models.AnnotatedComment) []models.LabelCount {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.Label]++
	}

	out := make([]models.LabelCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, models.LabelCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// DescribeScores computes descriptive statistics of the raw score per label,
// ordered by label.
func DescribeScores(rows []models.AnnotatedComment) []models.LabelStats {
	byLabel := make(map[string][]float64)
	for _, row := range rows {
		byLabel[row.Label] = append(byLabel[row.Label], row.Score)
	}

	out := make([]models.LabelStats, 0, len(byLabel))
	for label, scores := range byLabel {
		out = append(out, Describe(label, scores))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// DailyMeans averages the signed score per UTC calendar day, oldest first.
// Rows without a timestamp are left out.
func DailyMeans(rows []models.AnnotatedComment) []models.DailySentiment {
	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[time.Time]*bucket)

	for _, row := range rows {
		if row.PublishedAt.IsZero() {
			continue
		}
		day := truncateToDate(row.PublishedAt)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		b.sum += row.SignedScore
		b.count++
	}

	out := make([]models.DailySentiment, 0, len(buckets))
	for day, b := range buckets {
		out = append(out, models.DailySentiment{
			Date:            day,
			MeanSignedScore: b.sum / float64(b.count),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func Engagement(comments []models.Comment) models.CommentEngagement {
	e := models.CommentEngagement{TotalComments: len(comments)}
	for _, c := range comments {
		e.TotalLikes += c.LikeCount
	}
	if e.TotalComments > 0 {
		e.AvgLikes = float64(e.TotalLikes) / float64(e.TotalComments)
	}
	return e
}

// UnexpectedLabels lists, sorted, every label other than POSITIVE/NEGATIVE.
func UnexpectedLabels(rows []models.AnnotatedComment) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range rows {
		if models.IsExpectedLabel(row.Label) || seen[row.Label] {
			continue
		}
		seen[row.Label] = true
		out = append(out, row.Label)
	}
	sort.Strings(out)
	return out
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
