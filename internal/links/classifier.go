// Package links classifies inbound message text into media link kinds.
package links

import (
	"regexp"
	"strings"
)

// Kind is the classification result for a piece of text.
type Kind int

const (
	// KindNone means the text carries no recognizable media link.
	KindNone Kind = iota
	// KindVideo is a single-video link.
	KindVideo
	// KindPlaylist is a link carrying a playlist marker.
	KindPlaylist
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindPlaylist:
		return "playlist"
	default:
		return "none"
	}
}

var (
	videoRe = regexp.MustCompile(`(https?://)?(www\.)?(youtube|youtu|youtube-nocookie)\.(com|be)/(watch\?v=|shorts/|embed/|v/|.+\?v=)?([^&=%\?]{11})`)
	hostRe  = regexp.MustCompile(`(https?://)?(www\.)?(youtube|youtu|youtube-nocookie)\.(com|be)/`)
	urlRe   = regexp.MustCompile(`https?://\S+`)
)

// Classify matches text against known link shapes. Non-matching text
// yields KindNone with an empty URL; that is a normal outcome, not an
// error. A URL carrying a playlist marker classifies as playlist even
// when it also carries a video identifier, and canonical playlist URLs
// without one (youtube.com/playlist?list=...) classify the same way.
func Classify(text string) (Kind, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return KindNone, ""
	}

	url := firstToken(text)
	if loc := hostRe.FindStringIndex(url); loc != nil && loc[0] == 0 && IsPlaylist(url) {
		return KindPlaylist, url
	}

	loc := videoRe.FindStringIndex(text)
	if loc == nil || loc[0] != 0 {
		return KindNone, ""
	}
	return KindVideo, url
}

// IsPlaylist reports whether the URL carries a playlist marker.
// Pure substring test; precedence over video identifiers is intentional.
func IsPlaylist(url string) bool {
	return strings.Contains(url, "list=")
}

// FirstURL extracts the first http(s) URL embedded in arbitrary text,
// such as a forwarded message body. Returns "" when none is present.
func FirstURL(text string) string {
	return urlRe.FindString(text)
}

func firstToken(text string) string {
	if i := strings.IndexAny(text, " \t\n"); i >= 0 {
		return text[:i]
	}
	return text
}
