package app

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/clipfetch/clipfetch/core/telegram/format"
	tghelpers "github.com/clipfetch/clipfetch/core/telegram/helpers"
	"github.com/clipfetch/clipfetch/core/telegram/keyboard"
	"github.com/clipfetch/clipfetch/internal/extractor"
	"github.com/clipfetch/clipfetch/internal/formats"
)

// Callback keys. Payloads are the original URL for cbDownload and a
// format token for cbFormat.
const (
	cbDownload = "dl"
	cbFormat   = "fmt"
	cbHelp     = "help"
	cbAbout    = "about"
)

const welcomeText = `🎬 *Media Downloader Bot* 🚀

📌 *Features:*
✅ Video/Audio Download
✅ Multiple Quality Options
✅ Direct Browser Download Links
✅ Video Search
✅ Fast Lightning Speed ⚡

*Commands:*
/start - Start bot
/help - Get help
/search <query> - Search videos

*Just send me a video link!* 🔗`

const helpText = `📖 *How to Use:*

1️⃣ *Download Video/Audio:*
   - Send any video link
   - Choose quality
   - Get instant download link

2️⃣ *Search:*
   - Use /search <query>
   - Click on results
   - Download directly

3️⃣ *Direct Browser Link:*
   - Get links that work in Chrome/Browser
   - Links expire in 6 hours
   - Direct device download

*Tips:*
⚡ Bot processes in seconds
🎵 Audio = MP3 format
🎬 Video = MP4 format
🔗 No files stored on server

*Note:* Download links expire in 6 hours!`

const aboutText = `ℹ️ *About This Bot*

🤖 *Media Downloader Bot*
⚡ Lightning fast downloads
🆓 100%% Free to use
🔒 Privacy focused (no data stored)

*Version:* %s
*Powered by:* clipfetch`

const (
	processingText   = "⏳ Processing your request..."
	generatingText   = "⏳ Generating download link... Please wait..."
	infoFailedText   = "❌ Failed to fetch video info. Try again!"
	sessionLostText  = "❌ Session expired. Please send the link again!"
	linkFailedText   = "❌ Failed to generate download link. Try another quality!"
	noResultsText    = "❌ No results found!"
	searchUsageText  = "❌ Usage: /search <query>\n\nExample: /search lofi music"
	deliveryDoneText = "✅ *Delivered!*"
)

func startMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "📺 How to Use", Unique: cbHelp},
			{Text: "ℹ️ About", Unique: cbAbout},
		},
	)
}

// formatMenu renders the six-option quality keyboard shown after
// metadata resolution, two buttons per row.
func formatMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtonsNPerRow([]keyboard.InlineBtn{
		{Text: "🎬 Video - Best Quality", Unique: cbFormat, Data: "video_best"},
		{Text: "🎬 1080p", Unique: cbFormat, Data: "video_1080"},
		{Text: "🎬 720p", Unique: cbFormat, Data: "video_720"},
		{Text: "🎬 480p", Unique: cbFormat, Data: "video_480"},
		{Text: "🎬 360p", Unique: cbFormat, Data: "video_360"},
		{Text: "🎵 Audio (MP3)", Unique: cbFormat, Data: "audio"},
	}, 2)
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// safeText prepares free-form metadata (titles, uploaders) for Markdown
// message bodies. Unbalanced markers in real titles would otherwise make
// Telegram reject the whole send.
func safeText(s string) string {
	return format.EscapeV1(orPlaceholder(s))
}

func videoCaption(meta extractor.Metadata) string {
	return fmt.Sprintf(`📺 *%s*

👤 Uploader: %s
⏱️ Duration: %s
👁️ Views: %s

Choose format and quality:`,
		safeText(meta.Title),
		safeText(meta.Uploader),
		tghelpers.FormatClock(meta.DurationSeconds),
		tghelpers.FormatCount(meta.ViewCount),
	)
}

func playlistText(pl extractor.Playlist) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📂 *%s*\n\n🎞 %d videos total, showing first %d:\n\n", safeText(pl.Title), pl.Total, len(pl.Entries))
	for i, entry := range pl.Entries {
		fmt.Fprintf(&b, "%d. %s\n", i+1, safeText(entry.Title))
	}
	b.WriteString("\nPick one to download:")
	return b.String()
}

func playlistMenu(pl extractor.Playlist) *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(pl.Entries))
	for i, entry := range pl.Entries {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   fmt.Sprintf("%d. %s", i+1, truncate(entry.Title, 50)),
			Unique: cbDownload,
			Data:   entry.URL,
		})
	}
	return keyboard.InlineButtons(buttons)
}

func searchResultsMenu(entries []extractor.SearchEntry) *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(entries))
	for i, entry := range entries {
		label := fmt.Sprintf("%d. %s [%s]", i+1, truncate(entry.Title, 50), tghelpers.FormatClock(entry.DurationSeconds))
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   label,
			Unique: cbDownload,
			Data:   watchURL(entry.ID),
		})
	}
	return keyboard.InlineButtons(buttons)
}

func watchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func linkReplyText(title string, choice formats.Choice) string {
	emoji := "🎬"
	if choice.Kind == formats.KindAudio {
		emoji = "🎵"
	}
	return fmt.Sprintf(`✅ *Link Generated!*

%s *Title:* %s
📊 *Format:* %s

🔗 *Download Link:*
Click below to download directly in your browser!

⚠️ *Note:* This link will expire in 6 hours!
Download it soon! ⏰`, emoji, safeText(title), choice.Label())
}

func linkReplyMenu(streamURL, originalURL string) *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "⬇️ Download Now", URL: streamURL}},
		[]keyboard.InlineBtn{{Text: "🔄 Choose Another Format", Unique: cbDownload, Data: originalURL}},
	)
}

// teleTransport adapts a telebot context to the delivery transport
// boundary. Inline sends are synchronous since the orchestrator needs
// the rejection to decide on fallback.
type teleTransport struct {
	c tele.Context
}

func (t teleTransport) Inline(_ context.Context, stream extractor.Stream, choice formats.Choice) error {
	title := orPlaceholder(stream.Title)
	if choice.Kind == formats.KindAudio {
		return t.c.Send(&tele.Audio{
			File:     tele.FromURL(stream.URL),
			Title:    title,
			FileName: title + ".mp3",
		})
	}
	return t.c.Send(&tele.Video{
		File:     tele.FromURL(stream.URL),
		Caption:  title,
		FileName: title + "." + orExt(stream.Ext),
	})
}

func (t teleTransport) Confirm(_ context.Context, stream extractor.Stream, choice formats.Choice) error {
	text := fmt.Sprintf("%s\n\n%s *Format:* %s", deliveryDoneText, "📊", choice.Label())
	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "🌐 Open in Browser", URL: stream.URL}},
	)
	return tghelpers.EditOrSendMD(t.c, text, markup)
}

func (t teleTransport) LinkOnly(_ context.Context, stream extractor.Stream, choice formats.Choice, originalURL string) error {
	return tghelpers.EditOrSendMD(t.c, linkReplyText(stream.Title, choice), linkReplyMenu(stream.URL, originalURL))
}

func orExt(ext string) string {
	if strings.TrimSpace(ext) == "" {
		return "mp4"
	}
	return ext
}
