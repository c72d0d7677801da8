package app

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/clipfetch/clipfetch/core/logger"
	tghelpers "github.com/clipfetch/clipfetch/core/telegram/helpers"
	"github.com/clipfetch/clipfetch/internal/links"
)

// handleText is the fallback for all non-command text: link
// classification and the entry point of the download conversation.
// Text with no recognizable link is ignored silently; that covers
// casual chatter and forwarded messages without links.
func (a *App) handleText(c tele.Context) error {
	text := c.Text()

	kind, url := links.Classify(text)
	if kind == links.KindNone {
		// Forwarded bodies may bury the link mid-text.
		if embedded := links.FirstURL(text); embedded != "" {
			kind, url = links.Classify(embedded)
		}
	}

	ctx := tghelpers.BuildContext(c)
	switch kind {
	case links.KindPlaylist:
		return a.handlePlaylist(c, url)
	case links.KindVideo:
		return a.handleVideo(c, url)
	default:
		logger.Debug(ctx, "app", "text.ignored",
			slog.String("payload", logger.SanitizeLimit(text, 128)),
		)
		return nil
	}
}

// handleVideo resolves metadata, stores the session pair and shows the
// format menu.
func (a *App) handleVideo(c tele.Context, url string) error {
	msg, err := c.Bot().Send(c.Recipient(), processingText)
	if err != nil {
		return err
	}

	ctx := tghelpers.BuildContext(c)
	meta, err := a.extractor.Resolve(ctx, url)
	if err != nil {
		_, editErr := c.Bot().Edit(msg, infoFailedText)
		return editErr
	}

	if err := a.sessions.Put(ctx, c.Sender().ID, url, meta); err != nil {
		logger.Error(ctx, "session", "put.fail",
			slog.Int64("user_id", c.Sender().ID),
			slog.String("error", err.Error()),
		)
		_, editErr := c.Bot().Edit(msg, infoFailedText)
		return editErr
	}

	logger.Info(ctx, "app", "link.accepted",
		slog.String("url", logger.SanitizeLimit(url, 256)),
		slog.String("kind", "video"),
	)

	_, err = c.Bot().Edit(msg, videoCaption(meta), &tele.SendOptions{
		ParseMode:   tele.ModeMarkdown,
		ReplyMarkup: formatMenu(),
	})
	return err
}

// handlePlaylist renders the truncated playlist view with per-entry
// selection buttons.
func (a *App) handlePlaylist(c tele.Context, url string) error {
	msg, err := c.Bot().Send(c.Recipient(), processingText)
	if err != nil {
		return err
	}

	ctx := tghelpers.BuildContext(c)
	pl, err := a.extractor.ExpandPlaylist(ctx, url, 10)
	if err != nil {
		_, editErr := c.Bot().Edit(msg, infoFailedText)
		return editErr
	}

	logger.Info(ctx, "app", "link.accepted",
		slog.String("url", logger.SanitizeLimit(url, 256)),
		slog.String("kind", "playlist"),
		slog.Int("entries", len(pl.Entries)),
		slog.Int("total", pl.Total),
	)

	_, err = c.Bot().Edit(msg, playlistText(pl), &tele.SendOptions{
		ParseMode:   tele.ModeMarkdown,
		ReplyMarkup: playlistMenu(pl),
	})
	return err
}
