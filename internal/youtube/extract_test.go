package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
		found bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch url with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", true},
		{"v param not first", "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1", "dQw4w9WgXcQ", true},
		{"shorts", "https://youtube.com/shorts/a-B_c1D2e3F", "a-B_c1D2e3F", true},
		{"surrounding whitespace", "  https://youtu.be/dQw4w9WgXcQ\n", "dQw4w9WgXcQ", true},
		{"unrelated site", "https://example.com/foo", "", false},
		{"empty", "", "", false},
		{"short token", "https://www.youtube.com/watch?v=abc", "", false},
		{"no separator", "dQw4w9WgXcQ", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractVideoID(tc.in)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIsVideoID(t *testing.T) {
	assert.True(t, IsVideoID("dQw4w9WgXcQ"))
	assert.False(t, IsVideoID("dQw4w9WgXc"))
	assert.False(t, IsVideoID("dQw4w9WgXcQ1"))
	assert.False(t, IsVideoID("dQw4w9WgX.Q"))
}

func TestWatchURLRoundTrip(t *testing.T) {
	id, ok := ExtractVideoID(WatchURL("dQw4w9WgXcQ"))
	assert.True(t, ok)
	assert.Equal(t, "dQw4w9WgXcQ", id)
}
