package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBox(t *testing.T) {
	box := FormatBox("Check-in", "Streak: 3")
	lines := strings.Split(box, "\n")
	require.Len(t, lines, 5)

	border := strings.Repeat("━", 24)
	assert.Equal(t, "┏"+border+"┓", lines[0])
	assert.Equal(t, "┃ Check-in"+strings.Repeat(" ", 15)+"┃", lines[1])
	assert.Equal(t, "┃"+strings.Repeat(" ", 24)+"┃", lines[2])
	assert.Equal(t, "┃ Streak: 3"+strings.Repeat(" ", 14)+"┃", lines[3])
	assert.Equal(t, "┗"+border+"┛", lines[4])
}

func TestFormatBoxWidth(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantInner int
	}{
		{name: "short clamps to minimum", line: "hi", wantInner: 24},
		{name: "grows with content", line: strings.Repeat("x", 40), wantInner: 42},
		{name: "long clamps to maximum", line: strings.Repeat("x", 120), wantInner: 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := strings.Split(FormatBox("title", tt.line), "\n")[0]
			assert.Equal(t, tt.wantInner, strings.Count(top, "━"))
		})
	}
}

func TestFormatBoxWithoutLines(t *testing.T) {
	lines := strings.Split(FormatBox("Pong"), "\n")
	assert.Len(t, lines, 5)
}

func TestFormatBotMessage(t *testing.T) {
	assert.Empty(t, FormatBotMessage(""))

	boxed := FormatBox("Already", "boxed")
	assert.Equal(t, boxed, FormatBotMessage(boxed))

	assert.Equal(t, FormatBox("Title", "one", "two"), FormatBotMessage("Title\none\ntwo"))
	assert.Equal(t, FormatBox("Only a title", ""), FormatBotMessage("Only a title"))
}

func TestFormatItemCountLabel(t *testing.T) {
	assert.Equal(t, "1 Roast", FormatItemCountLabel("Roast", 1))
	assert.Equal(t, "3× Roasts", FormatItemCountLabel("Roast", 3))
	assert.Equal(t, "2× Golden Devs", FormatItemCountLabel("Golden Dev", 2))
	assert.Equal(t, "0× Raffle Tickets", FormatItemCountLabel("Raffle Tickets", 0))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-12,000", FormatNumber(-12000))
	assert.Equal(t, "1,200 coins", FormatCoins(1200))
}

func TestMedal(t *testing.T) {
	assert.Equal(t, "🥇", Medal(1))
	assert.Equal(t, "🥈", Medal(2))
	assert.Equal(t, "🥉", Medal(3))
	assert.Equal(t, "➤", Medal(4))
}
