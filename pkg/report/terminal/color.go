package terminal

import "github.com/fatih/color"

// Color names a terminal color.
type Color int

// Color constants.
const (
	ColorNone Color = iota
	ColorGreen
	ColorYellow
	ColorRed
	ColorBlue
	ColorCyan
	ColorGray
	ColorBold
)

var colorAttributes = map[Color]color.Attribute{
	ColorGreen:  color.FgGreen,
	ColorYellow: color.FgYellow,
	ColorRed:    color.FgRed,
	ColorBlue:   color.FgBlue,
	ColorCyan:   color.FgCyan,
	ColorGray:   color.FgHiBlack,
	ColorBold:   color.Bold,
}

// Colorize applies color to text. With NoColor set the text is returned
// unchanged.
func (c Config) Colorize(text string, col Color) string {
	attr, ok := colorAttributes[col]
	if c.NoColor || !ok {
		return text
	}

	painter := color.New(attr)
	painter.EnableColor()

	return painter.Sprint(text)
}

// ColorForRank highlights the podium: gold-ish first, then blue, then none.
func ColorForRank(rank int) Color {
	switch rank {
	case 1:
		return ColorYellow
	case 2, 3:
		return ColorCyan
	default:
		return ColorNone
	}
}
