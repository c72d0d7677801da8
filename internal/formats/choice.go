// Package formats maps callback tokens into extraction format parameters.
package formats

import (
	"fmt"
	"strings"
)

// MediaKind distinguishes audio-only from video delivery.
type MediaKind int

const (
	KindVideo MediaKind = iota
	KindAudio
)

func (k MediaKind) String() string {
	if k == KindAudio {
		return "audio"
	}
	return "video"
}

// Choice is a parsed format selection.
type Choice struct {
	Kind MediaKind
	// Quality is a video tier: "best", "1080", "720", "480", "360" or "144".
	// Empty for audio.
	Quality string
}

// qualityTiers is the tie-break priority when a token carries several
// quality markers. "1080" is checked first since no other marker is a
// substring of it.
var qualityTiers = []string{"1080", "720", "480", "360", "144"}

// Parse derives a Choice from a callback token. It is a pure function:
// the same token always yields the same Choice. Tokens look like
// "fmt_video_720", "fmt_video_best" or "fmt_audio"; the "fmt_" prefix
// is optional.
func Parse(token string) Choice {
	if strings.Contains(token, "audio") {
		return Choice{Kind: KindAudio}
	}
	for _, tier := range qualityTiers {
		if strings.Contains(token, tier) {
			return Choice{Kind: KindVideo, Quality: tier}
		}
	}
	return Choice{Kind: KindVideo, Quality: "best"}
}

// FormatSpec returns the extraction-service format selector for the choice.
func (c Choice) FormatSpec() string {
	if c.Kind == KindAudio {
		return "bestaudio/best"
	}
	if c.Quality == "" || c.Quality == "best" {
		return "best"
	}
	return fmt.Sprintf("best[height<=%s]", c.Quality)
}

// Label is the human-readable quality text used in replies.
func (c Choice) Label() string {
	if c.Kind == KindAudio {
		return "MP3"
	}
	if c.Quality == "" || c.Quality == "best" {
		return "Best Quality"
	}
	return c.Quality + "p"
}

// Token renders the canonical callback token for the choice.
func (c Choice) Token() string {
	if c.Kind == KindAudio {
		return "audio"
	}
	if c.Quality == "" || c.Quality == "best" {
		return "video_best"
	}
	return "video_" + c.Quality
}
