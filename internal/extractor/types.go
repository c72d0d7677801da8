// Package extractor is the client for the media extraction service.
// The service wraps the actual resolver behind a small JSON API; this
// package never exposes the service's raw errors to callers.
package extractor

// Metadata describes a single media item. All fields are best effort;
// absent values render as placeholders further up, never as failures.
type Metadata struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Uploader string `json:"uploader"`
	// DurationSeconds is zero for live streams.
	DurationSeconds int    `json:"duration"`
	ViewCount       int64  `json:"view_count"`
	Thumbnail       string `json:"thumbnail"`
}

// Stream is a resolved direct media reference. It is valid for a
// bounded time window and never persisted.
type Stream struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Ext   string `json:"ext"`
	// SizeBytes is approximate and may be zero when unknown.
	SizeBytes int64 `json:"filesize_approx"`
}

// PlaylistEntry is a member stub from a flat playlist listing.
type PlaylistEntry struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Playlist is a truncated view of a playlist. Total is the true member
// count and may exceed len(Entries).
type Playlist struct {
	Title   string          `json:"title"`
	Total   int             `json:"total"`
	Entries []PlaylistEntry `json:"entries"`
}

// SearchEntry is one ranked search result stub.
type SearchEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// DurationSeconds is zero for live streams.
	DurationSeconds int `json:"duration"`
}
