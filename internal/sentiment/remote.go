package sentiment

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/spacesedan/ytsentiment/internal/clients"
	"github.com/spacesedan/ytsentiment/internal/models"
	"github.com/spacesedan/ytsentiment/internal/utils"
)

const REMOTE_BATCH_SIZE = 100

// RemoteClassifier sends the whole batch to a hosted inference endpoint.
type RemoteClassifier struct {
	client *clients.HuggingFaceClient
}

func NewRemoteClassifier(endpoint string, timeout time.Duration) *RemoteClassifier {
	return &RemoteClassifier{client: clients.NewHuggingFaceClient(endpoint, timeout)}
}

func (rc *RemoteClassifier) Classify(ctx context.Context, texts []string) ([]Result, error) {
	inputs := make([]string, len(texts))
	for i, text := range texts {
		inputs[i] = TruncateForModel(text)
	}
	request := utils.TextsToSentimentRequests(inputs)

	// responses are matched back by content id, not by position
	byID := make(map[string]models.SentimentAnalysisResponse, len(texts))
	for _, batch := range utils.Batches(request, REMOTE_BATCH_SIZE) {
		response, err := rc.client.GetBatchedSentimentAnalysis(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("remote sentiment analysis: %w", err)
		}
		for id, score := range mapSentimentScoreToContentID(response) {
			byID[id] = score
		}
	}
	results := make([]Result, 0, len(texts))
	for i := range texts {
		score, ok := byID[strconv.Itoa(i)]
		if !ok {
			return nil, fmt.Errorf("%w: no result for input %d", ErrResultCountMismatch, i)
		}
		if math.IsNaN(score.Confidence) || score.Confidence < 0 || score.Confidence > 1 {
			return nil, fmt.Errorf("%w: input %d has confidence %v", ErrScoreOutOfRange, i, score.Confidence)
		}
		results = append(results, Result{
			Label: NormalizeLabel(score.SentimentLabel),
			Score: score.Confidence,
		})
	}

	return results, checkCount(texts, results)
}

func mapSentimentScoreToContentID(scores models.SentimentAnalysisBatchResponse) map[string]models.SentimentAnalysisResponse {
	scoreMap := make(map[string]models.SentimentAnalysisResponse, len(scores))

	for _, score := range scores {
		scoreMap[score.ContentID] = score
	}

	return scoreMap
}
