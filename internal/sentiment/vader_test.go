package sentiment

import (
	"context"
	"testing"

	"github.com/spacesedan/ytsentiment/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaderClassifier(t *testing.T) {
	classifier := NewVaderClassifier()

	texts := []string{
		"I love this video, it is absolutely wonderful!",
		"This is terrible, the worst thing I have ever watched.",
		"The video is ten minutes long.",
	}
	results, err := classifier.Classify(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, results, len(texts))

	assert.Equal(t, models.LabelPositive, results[0].Label)
	assert.Equal(t, models.LabelNegative, results[1].Label)
	assert.Equal(t, models.LabelNeutral, results[2].Label)

	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0)
	}
}

func TestVaderClassifierEmptyBatch(t *testing.T) {
	results, err := NewVaderClassifier().Classify(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestVaderClassifierHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewVaderClassifier().Classify(ctx, []string{"great"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConvertMarkdownToText(t *testing.T) {
	got := ConvertMarkdownToText("**Great** video, see [my channel](https://example.com/c) or https://example.com/x")
	assert.Equal(t, "Great video, see my channel or", got)
}
