package youtube

import (
	"regexp"
	"strings"
)

var (
	videoIDPattern   = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)
	bareVideoPattern = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
)

// ExtractVideoID returns the 11-character video id that follows a "v=" query
// parameter or a path separator in raw. The first match wins.
func ExtractVideoID(raw string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsVideoID reports whether s is exactly one video id token.
func IsVideoID(s string) bool {
	return bareVideoPattern.MatchString(s)
}

// WatchURL builds the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
