package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineButtonsNPerRow(t *testing.T) {
	buttons := []InlineBtn{
		{Text: "a", Unique: "u", Data: "1"},
		{Text: "b", Unique: "u", Data: "2"},
		{Text: "c", Unique: "u", Data: "3"},
		{Text: "d", Unique: "u", Data: "4"},
		{Text: "e", Unique: "u", Data: "5"},
	}

	markup := InlineButtonsNPerRow(buttons, 2)
	require.Len(t, markup.InlineKeyboard, 3)
	assert.Len(t, markup.InlineKeyboard[0], 2)
	assert.Len(t, markup.InlineKeyboard[1], 2)
	assert.Len(t, markup.InlineKeyboard[2], 1)
	assert.Equal(t, "e", markup.InlineKeyboard[2][0].Text)

	// n <= 1 degrades to one button per row.
	markup = InlineButtonsNPerRow(buttons[:2], 1)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Len(t, markup.InlineKeyboard[0], 1)
}

func TestInlineURLButton(t *testing.T) {
	markup := InlineButtonsRows([]InlineBtn{{Text: "open", URL: "https://example.com"}})
	require.Len(t, markup.InlineKeyboard, 1)
	assert.Equal(t, "https://example.com", markup.InlineKeyboard[0][0].URL)
}
