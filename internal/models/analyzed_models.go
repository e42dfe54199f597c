package models

import "time"

// AnnotatedComment is one row of the analysis table.
type AnnotatedComment struct {
	Comment
	Label       string  `json:"label"`
	Score       float64 `json:"score"`
	SignedScore float64 `json:"signed_score"`
}

type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// LabelStats are the descriptive statistics of the raw score for one label.
// Std is nil when fewer than two rows carry the label.
type LabelStats struct {
	Label  string   `json:"label"`
	Count  int      `json:"count"`
	Mean   float64  `json:"mean"`
	Std    *float64 `json:"std"`
	Min    float64  `json:"min"`
	Q1     float64  `json:"q1"`
	Median float64  `json:"median"`
	Q3     float64  `json:"q3"`
	Max    float64  `json:"max"`
}

type DailySentiment struct {
	Date            time.Time `json:"date"`
	MeanSignedScore float64   `json:"mean_signed_score"`
}

type CommentEngagement struct {
	TotalComments int     `json:"total_comments"`
	TotalLikes    int64   `json:"total_likes"`
	AvgLikes      float64 `json:"avg_likes"`
}

// Summary is everything derived from the comments and their sentiment.
type Summary struct {
	Comments         []AnnotatedComment `json:"comments"`
	LabelCounts      []LabelCount       `json:"label_counts"`
	ScoreStats       []LabelStats       `json:"score_stats"`
	Daily            []DailySentiment   `json:"daily"`
	Engagement       CommentEngagement  `json:"engagement"`
	UnexpectedLabels []string           `json:"unexpected_labels,omitempty"`
}

// Analysis is the result of one submission.
type Analysis struct {
	RunID       string     `json:"run_id"`
	VideoID     string     `json:"video_id"`
	Stats       VideoStats `json:"stats"`
	GeneratedAt time.Time  `json:"generated_at"`
	Summary
}

func (a *Analysis) HasComments() bool {
	return len(a.Comments) > 0
}
