package utils

import (
	"testing"

	"github.com/spacesedan/ytsentiment/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestTextsToSentimentRequests(t *testing.T) {
	got := TextsToSentimentRequests([]string{"first", "second"})

	assert.Equal(t, models.SentimentAnalysisBatchRequest{
		{ContentID: "0", Text: "first"},
		{ContentID: "1", Text: "second"},
	}, got)
	assert.Empty(t, TextsToSentimentRequests(nil))
}
