package terminal

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis is appended to truncated strings.
const Ellipsis = "..."

// TruncateWithEllipsis truncates s to maxRunes runes, ending in "..." when
// anything was cut.
func TruncateWithEllipsis(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}

	ellipsisLen := len(Ellipsis)
	if maxRunes <= ellipsisLen {
		return strings.Repeat(".", max(maxRunes, 0))
	}

	runes := []rune(s)

	return string(runes[:maxRunes-ellipsisLen]) + Ellipsis
}

// PadRight pads s with spaces on the right to width runes.
func PadRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}

	return s + strings.Repeat(" ", width-n)
}
