package terminal //nolint:testpackage // testing internal implementation.

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidthFrom(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultWidth, widthFrom(""))
	assert.Equal(t, DefaultWidth, widthFrom("wide"))
	assert.Equal(t, DefaultWidth, widthFrom("-3"))
	assert.Equal(t, 100, widthFrom("100"))
	assert.Equal(t, MinWidth, widthFrom("20"))
	assert.Equal(t, MaxWidth, widthFrom("500"))
}

func TestColorize_NoColor(t *testing.T) {
	t.Parallel()

	cfg := Config{NoColor: true}

	assert.Equal(t, "text", cfg.Colorize("text", ColorGreen))
}

func TestColorize_WithColor(t *testing.T) {
	t.Parallel()

	cfg := Config{}

	out := cfg.Colorize("text", ColorGreen)
	assert.Contains(t, out, "text")
	assert.Contains(t, out, "\x1b[")

	assert.Equal(t, "text", cfg.Colorize("text", ColorNone))
}

func TestColorForRank(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ColorYellow, ColorForRank(1))
	assert.Equal(t, ColorCyan, ColorForRank(3))
	assert.Equal(t, ColorNone, ColorForRank(4))
}

func TestTruncateWithEllipsis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"fits", "short", 10, "short"},
		{"ascii", "a long title", 8, "a lon..."},
		{"hangul", "서울의 봄 감독판", 6, "서울의..."},
		{"tiny", "abcdef", 2, ".."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, TruncateWithEllipsis(tt.in, tt.max))
		})
	}
}

func TestDrawHeader(t *testing.T) {
	t.Parallel()

	out := DrawHeader("BOX OFFICE", "20240101", 40)
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], BoxHeavyTopLeft))
	assert.Contains(t, lines[1], "BOX OFFICE")
	assert.Contains(t, lines[1], "20240101")
	assert.Equal(t, 40, len([]rune(lines[1])))
}

func TestDrawProgressBar(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "███████░░░", DrawProgressBar(0.7, 10))
	assert.Equal(t, "░░░░", DrawProgressBar(-1, 4))
	assert.Equal(t, "████", DrawProgressBar(2, 4))
	assert.Empty(t, DrawProgressBar(0.5, 0))
	assert.Empty(t, DrawSeparator(0))
}
