package utils

import (
	"strconv"

	"github.com/spacesedan/ytsentiment/internal/models"
)

// TextsToSentimentRequests numbers texts by position so that responses can
// be matched back to their input.
func TextsToSentimentRequests(texts []string) models.SentimentAnalysisBatchRequest {
	request := make(models.SentimentAnalysisBatchRequest, 0, len(texts))
	for i, text := range texts {
		request = append(request, models.SentimentAnalysisRequest{
			ContentID: strconv.Itoa(i),
			Text:      text,
		})
	}
	return request
}
