package sentiment

import "github.com/spacesedan/ytsentiment/internal/models"

type Result = models.SentimentResult
