package models

const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
	LabelNeutral  = "NEUTRAL"
)

type SentimentResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SignedScore maps the result onto a single sentiment axis: +Score for
// POSITIVE, -Score for NEGATIVE and 0 for any other label.
func (r SentimentResult) SignedScore() float64 {
	switch r.Label {
	case LabelPositive:
		return r.Score
	case LabelNegative:
		return -r.Score
	default:
		return 0
	}
}

// IsExpectedLabel reports whether label is one of the two binary labels.
func IsExpectedLabel(label string) bool {
	return label == LabelPositive || label == LabelNegative
}
