package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyVideo(t *testing.T) {
	cases := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"http://youtube.com/watch?v=dQw4w9WgXcQ",
		"youtu.be/dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ",
		"https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ",
	}
	for _, in := range cases {
		kind, url := Classify(in)
		assert.Equal(t, KindVideo, kind, "input %q", in)
		assert.Equal(t, in, url, "input %q", in)
	}
}

func TestClassifyNone(t *testing.T) {
	cases := []string{
		"",
		"hello there",
		"https://example.com/watch?v=dQw4w9WgXcQ",
		"check this video out",
		"/start",
	}
	for _, in := range cases {
		kind, url := Classify(in)
		assert.Equal(t, KindNone, kind, "input %q", in)
		assert.Empty(t, url, "input %q", in)
	}
}

func TestClassifyPlaylistPrecedence(t *testing.T) {
	// A URL with both a video id and a playlist marker counts as playlist.
	kind, url := Classify("https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123456")
	assert.Equal(t, KindPlaylist, kind)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123456", url)
}

func TestClassifyCanonicalPlaylistURL(t *testing.T) {
	// The share button emits playlist URLs with no video id at all.
	cases := []string{
		"https://www.youtube.com/playlist?list=PLdU2XZIfSgJz1oeEPvRZ",
		"youtube.com/playlist?list=PLdU2XZIfSgJz1oeEPvRZ",
	}
	for _, in := range cases {
		kind, url := Classify(in)
		assert.Equal(t, KindPlaylist, kind, "input %q", in)
		assert.Equal(t, in, url, "input %q", in)
	}

	// A playlist marker on a foreign host stays unclassified.
	kind, url := Classify("https://example.com/playlist?list=PL123456")
	assert.Equal(t, KindNone, kind)
	assert.Empty(t, url)
}

func TestIsPlaylist(t *testing.T) {
	assert.True(t, IsPlaylist("https://www.youtube.com/playlist?list=PL123456"))
	assert.False(t, IsPlaylist("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
}

func TestFirstURL(t *testing.T) {
	body := "forwarded: watch this https://www.youtube.com/watch?v=dQw4w9WgXcQ now"
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", FirstURL(body))
	assert.Empty(t, FirstURL("no links here"))
}

func TestClassifyIgnoresTrailingText(t *testing.T) {
	kind, url := Classify("https://youtu.be/dQw4w9WgXcQ check it")
	assert.Equal(t, KindVideo, kind)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", url)
}
