package clients

const (
	USER_AGENT = "ytsentiment-client/1.0 (+https://github.com/spacesedan/ytsentiment)"
)
