package models

// Request and response shapes of the remote batch sentiment endpoint.
type (
	SentimentAnalysisBatchRequest []SentimentAnalysisRequest
	SentimentAnalysisRequest      struct {
		ContentID string `json:"content_id"`
		Text      string `json:"text"`
	}
)

type (
	SentimentAnalysisBatchResponse []SentimentAnalysisResponse
	SentimentAnalysisResponse      struct {
		ContentID      string  `json:"content_id"`
		SentimentScore float64 `json:"sentiment_score"`
		SentimentLabel string  `json:"sentiment_label"`
		Confidence     float64 `json:"confidence"`
	}
)
