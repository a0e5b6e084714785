package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/mattn/go-runewidth"
)

const (
	boxHorizontal = "━"
	boxVertical   = "┃"
	boxTopLeft    = "┏"
)

// FormatBox renders title and lines inside a heavy box-drawing frame. The
// inner width follows the widest line, clamped to the configured bounds;
// longer lines overflow the right edge rather than being cut.
func FormatBox(title string, lines ...string) string {
	widest := runewidth.StringWidth(title)
	for _, l := range lines {
		widest = max(widest, runewidth.StringWidth(l))
	}
	inner := min(config.MaxMessageBoxWidth, max(config.MinMessageBoxWidth, widest+2))
	border := strings.Repeat(boxHorizontal, inner)

	row := func(text string) string {
		return boxVertical + " " + runewidth.FillRight(text, inner-1) + boxVertical
	}

	var b strings.Builder
	b.WriteString(boxTopLeft + border + "┓\n")
	b.WriteString(row(title) + "\n")
	b.WriteString(row("") + "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	for _, l := range lines {
		b.WriteString(row(l) + "\n")
	}
	b.WriteString("┗" + border + "┛")
	return b.String()
}

// FormatBotMessage boxes content using its first line as the title. Content
// that is already boxed is returned unchanged.
func FormatBotMessage(content string) string {
	if content == "" {
		return ""
	}
	if strings.HasPrefix(strings.TrimSpace(content), boxTopLeft) {
		return content
	}
	title, rest, _ := strings.Cut(content, "\n")
	return FormatBox(title, strings.Split(rest, "\n")...)
}

// FormatItemCountLabel renders "1 Roast" or "3× Roasts".
func FormatItemCountLabel(name string, count int) string {
	if count == 1 {
		return "1 " + name
	}
	if strings.HasSuffix(name, "s") {
		return fmt.Sprintf("%d× %s", count, name)
	}
	return fmt.Sprintf("%d× %ss", count, name)
}

func FormatNumber(n int64) string {
	str := strconv.FormatInt(n, 10)
	if n < 0 {
		str = str[1:]
	}

	var result []byte
	for i := len(str) - 1; i >= 0; i-- {
		if (len(str)-i-1)%3 == 0 && i != len(str)-1 {
			result = append([]byte{','}, result...)
		}
		result = append([]byte{str[i]}, result...)
	}

	if n < 0 {
		return "-" + string(result)
	}
	return string(result)
}

// FormatCoins renders a coin amount with thousands separators.
func FormatCoins(n int) string {
	return FormatNumber(int64(n)) + " coins"
}

// Medal returns the podium marker for a 1-based place.
func Medal(place int) string {
	switch place {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return "➤"
	}
}
