package sentiment

// MAX_INPUT_TOKENS is the distilbert input window. Every WordPiece token
// covers at least one rune, so MAX_INPUT_TOKENS-2 runes plus [CLS] and [SEP]
// always fit.
const (
	MAX_INPUT_TOKENS = 512
	MAX_INPUT_RUNES  = MAX_INPUT_TOKENS - 2
)

// TruncateForModel cuts text to the model input window.
func TruncateForModel(text string) string {
	runes := []rune(text)
	if len(runes) > MAX_INPUT_RUNES {
		text = string(runes[:MAX_INPUT_RUNES])
	}
	return text
}
