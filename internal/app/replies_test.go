package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipfetch/clipfetch/internal/extractor"
	"github.com/clipfetch/clipfetch/internal/formats"
)

func TestFormatMenuHasSixOptions(t *testing.T) {
	menu := formatMenu()

	total := 0
	for _, row := range menu.InlineKeyboard {
		total += len(row)
	}
	assert.Equal(t, 6, total)

	var labels []string
	for _, row := range menu.InlineKeyboard {
		for _, btn := range row {
			labels = append(labels, btn.Text)
		}
	}
	joined := strings.Join(labels, "|")
	for _, want := range []string{"Best Quality", "1080p", "720p", "480p", "360p", "Audio"} {
		assert.Contains(t, joined, want)
	}
}

func TestFormatMenuTokensParse(t *testing.T) {
	for _, row := range formatMenu().InlineKeyboard {
		for _, btn := range row {
			choice := formats.Parse(btn.Data)
			assert.NotEmpty(t, choice.FormatSpec(), "button %q", btn.Text)
		}
	}
}

func TestVideoCaption(t *testing.T) {
	caption := videoCaption(extractor.Metadata{
		Title:           "Never Gonna Give You Up",
		Uploader:        "Rick Astley",
		DurationSeconds: 212,
		ViewCount:       1234567,
	})
	assert.Contains(t, caption, "Never Gonna Give You Up")
	assert.Contains(t, caption, "Rick Astley")
	assert.Contains(t, caption, "3:32")
	assert.Contains(t, caption, "1,234,567")
}

func TestVideoCaptionPlaceholders(t *testing.T) {
	caption := videoCaption(extractor.Metadata{})
	assert.Contains(t, caption, "N/A")
	assert.Contains(t, caption, "Live")
}

func TestMarkdownEscapedInBodies(t *testing.T) {
	// Titles with unbalanced markers must not break Markdown parsing.
	caption := videoCaption(extractor.Metadata{
		Title:    "MV [Official] *remix",
		Uploader: "under_score",
	})
	assert.Contains(t, caption, `MV \[Official] \*remix`)
	assert.Contains(t, caption, `under\_score`)

	text := playlistText(extractor.Playlist{
		Title:   "mix_tape",
		Total:   1,
		Entries: []extractor.PlaylistEntry{{Title: "part_one", URL: "u1"}},
	})
	assert.Contains(t, text, `mix\_tape`)
	assert.Contains(t, text, `part\_one`)

	link := linkReplyText("best_of *2024", formats.Parse("video_720"))
	assert.Contains(t, link, `best\_of \*2024`)
}

func TestSearchResultsMenu(t *testing.T) {
	entries := []extractor.SearchEntry{
		{ID: "aaa", Title: "First", DurationSeconds: 61},
		{ID: "bbb", Title: "Second"},
	}
	menu := searchResultsMenu(entries)
	require.Len(t, menu.InlineKeyboard, 2)

	first := menu.InlineKeyboard[0][0]
	assert.Contains(t, first.Text, "1. First")
	assert.Contains(t, first.Text, "[1:01]")
	assert.Contains(t, first.Data, "https://www.youtube.com/watch?v=aaa")

	second := menu.InlineKeyboard[1][0]
	assert.Contains(t, second.Text, "[Live]")
}

func TestPlaylistRendering(t *testing.T) {
	pl := extractor.Playlist{
		Title: "Mix",
		Total: 25,
		Entries: []extractor.PlaylistEntry{
			{Title: "One", URL: "u1"},
			{Title: "Two", URL: "u2"},
		},
	}

	text := playlistText(pl)
	assert.Contains(t, text, "Mix")
	assert.Contains(t, text, "25 videos total")
	assert.Contains(t, text, "showing first 2")

	menu := playlistMenu(pl)
	require.Len(t, menu.InlineKeyboard, 2)
	assert.Contains(t, menu.InlineKeyboard[0][0].Data, "u1")
}

func TestLinkReply(t *testing.T) {
	text := linkReplyText("clip", formats.Parse("fmt_video_720"))
	assert.Contains(t, text, "Link Generated")
	assert.Contains(t, text, "720p")
	assert.Contains(t, text, "expire in 6 hours")

	menu := linkReplyMenu("https://cdn.example/v.mp4", "https://youtu.be/dQw4w9WgXcQ")
	require.Len(t, menu.InlineKeyboard, 2)
	assert.Equal(t, "https://cdn.example/v.mp4", menu.InlineKeyboard[0][0].URL)
	assert.Contains(t, menu.InlineKeyboard[1][0].Data, "https://youtu.be/dQw4w9WgXcQ")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 50))
	long := strings.Repeat("x", 60)
	assert.Equal(t, strings.Repeat("x", 50)+"...", truncate(long, 50))
}
