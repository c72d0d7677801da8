package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAudio(t *testing.T) {
	c := Parse("fmt_audio")
	assert.Equal(t, KindAudio, c.Kind)
	assert.Empty(t, c.Quality)
	assert.Equal(t, "bestaudio/best", c.FormatSpec())
	assert.Equal(t, "MP3", c.Label())
}

func TestParseVideoTiers(t *testing.T) {
	cases := map[string]string{
		"fmt_video_best": "best",
		"fmt_video_1080": "1080",
		"fmt_video_720":  "720",
		"fmt_video_480":  "480",
		"fmt_video_360":  "360",
		"fmt_video_144":  "144",
	}
	for token, want := range cases {
		c := Parse(token)
		assert.Equal(t, KindVideo, c.Kind, "token %q", token)
		assert.Equal(t, want, c.Quality, "token %q", token)
	}
}

func TestParseDeterministic(t *testing.T) {
	first := Parse("fmt_video_720")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Parse("fmt_video_720"))
	}
}

func TestParseAmbiguousTokenPriority(t *testing.T) {
	// Multiple markers resolve to the highest-priority tier.
	c := Parse("fmt_video_720_480")
	assert.Equal(t, "720", c.Quality)

	c = Parse("fmt_video_480_360")
	assert.Equal(t, "480", c.Quality)
}

func TestParseUnknownDefaultsToBest(t *testing.T) {
	c := Parse("fmt_video_ultra")
	assert.Equal(t, KindVideo, c.Kind)
	assert.Equal(t, "best", c.Quality)
}

func TestFormatSpec(t *testing.T) {
	assert.Equal(t, "best", Parse("fmt_video_best").FormatSpec())
	assert.Equal(t, "best[height<=720]", Parse("fmt_video_720").FormatSpec())
}

func TestTokenRoundTrip(t *testing.T) {
	for _, token := range []string{"audio", "video_best", "video_720", "video_144"} {
		assert.Equal(t, token, Parse(token).Token())
	}
}
