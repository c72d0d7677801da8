package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/clipfetch/clipfetch/core/logger"
)

// DefaultTimeout bounds every extraction call so a stuck request can
// never stall the event stream.
const DefaultTimeout = 30 * time.Second

// Config holds extraction service settings.
type Config struct {
	BaseURL        string `yaml:"base_url" envconfig:"EXTRACTOR_BASE_URL"`
	TimeoutSeconds int    `yaml:"timeout_seconds" envconfig:"EXTRACTOR_TIMEOUT_SECONDS"`
}

// Client talks to the extraction service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client. Timeout falls back to DefaultTimeout.
func NewClient(cfg Config) *Client {
	timeout := DefaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Resolve fetches metadata for a single media URL.
func (c *Client) Resolve(ctx context.Context, mediaURL string) (Metadata, error) {
	var meta Metadata
	q := url.Values{}
	q.Set("url", mediaURL)
	if err := c.getJSON(ctx, "/api/info", q, &meta); err != nil {
		logger.Warn(ctx, "extractor", "resolve.fail",
			slog.String("url", logger.SanitizeLimit(mediaURL, 256)),
			slog.String("error", err.Error()),
		)
		return Metadata{}, err
	}
	return meta, nil
}

// ResolveStream resolves a direct stream reference for the format spec.
func (c *Client) ResolveStream(ctx context.Context, mediaURL, formatSpec string) (Stream, error) {
	var stream Stream
	q := url.Values{}
	q.Set("url", mediaURL)
	q.Set("format", formatSpec)
	if err := c.getJSON(ctx, "/api/stream", q, &stream); err != nil {
		logger.Warn(ctx, "extractor", "stream.fail",
			slog.String("url", logger.SanitizeLimit(mediaURL, 256)),
			slog.String("format", formatSpec),
			slog.String("error", err.Error()),
		)
		return Stream{}, err
	}
	if stream.URL == "" {
		return Stream{}, ErrNoStream
	}
	return stream, nil
}

// ExpandPlaylist requests a flat playlist listing truncated to limit
// entries. The reported total is the true member count.
func (c *Client) ExpandPlaylist(ctx context.Context, playlistURL string, limit int) (Playlist, error) {
	if limit <= 0 {
		limit = 10
	}
	var pl Playlist
	q := url.Values{}
	q.Set("url", playlistURL)
	q.Set("flat", "1")
	if err := c.getJSON(ctx, "/api/playlist", q, &pl); err != nil {
		logger.Warn(ctx, "extractor", "playlist.fail",
			slog.String("url", logger.SanitizeLimit(playlistURL, 256)),
			slog.String("error", err.Error()),
		)
		return Playlist{}, err
	}
	if pl.Total == 0 {
		pl.Total = len(pl.Entries)
	}
	if len(pl.Entries) > limit {
		pl.Entries = pl.Entries[:limit]
	}
	return pl, nil
}

// Search returns up to limit ranked result stubs. Failures yield an
// empty slice so the caller renders a uniform "no results" reply.
func (c *Client) Search(ctx context.Context, query string, limit int) []SearchEntry {
	if limit <= 0 || limit > 5 {
		limit = 5
	}
	var body struct {
		Entries []SearchEntry `json:"entries"`
	}
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	if err := c.getJSON(ctx, "/api/search", q, &body); err != nil {
		logger.Warn(ctx, "extractor", "search.fail",
			slog.String("query", logger.SanitizeLimit(query, 128)),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if len(body.Entries) > limit {
		body.Entries = body.Entries[:limit]
	}
	return body.Entries
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return ErrTimeout
		}
		return ErrUnavailable
	}
	defer resp.Body.Close()

	logger.Debug(ctx, "extractor", "request.done",
		slog.String("path", path),
		slog.Int("status_code", resp.StatusCode),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)

	if resp.StatusCode != http.StatusOK {
		return ErrUnavailable
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return ErrMalformed
	}
	return nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
