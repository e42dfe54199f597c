package sentiment

import (
	"context"
	"html"
	"math"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/ytsentiment/internal/models"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
)

const VADER_THRESHOLD = 0.20

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := html.UnescapeString(tagPattern.ReplaceAllString(string(output), " "))
	plainText = strings.Join(strings.Fields(plainText), " ")

	return strings.TrimSpace(RemoveLinks(plainText))
}

// VaderClassifier is a lexicon based fallback that needs no model download.
// Comments whose compound score sits inside the threshold come back NEUTRAL.
type VaderClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderClassifier() *VaderClassifier {
	return &VaderClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderClassifier) Classify(ctx context.Context, texts []string) ([]Result, error) {
	results := make([]Result, 0, len(texts))
	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		score, label := v.AnalyzeWithVADER(text)
		results = append(results, Result{Label: label, Score: math.Abs(score)})
	}
	return results, nil
}

func (v *VaderClassifier) AnalyzeWithVADER(text string) (float64, string) {
	plainText := ConvertMarkdownToText(text)

	sentiment := v.analyzer.PolarityScores(plainText)
	score := sentiment.Compound

	var label string
	if score >= VADER_THRESHOLD {
		label = models.LabelPositive
	} else if score <= -VADER_THRESHOLD {
		label = models.LabelNegative
	} else {
		label = models.LabelNeutral
	}

	return score, label
}
