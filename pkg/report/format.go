// Package report renders analysis reports as terminal text, JSON, YAML, or an
// HTML chart page.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/boxoffice/pkg/boxoffice"
	"github.com/Sumatoshi-tech/boxoffice/pkg/report/plotpage"
	"github.com/Sumatoshi-tech/boxoffice/pkg/report/terminal"
)

// ErrUnknownFormat is returned for an unrecognized output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Format is an output format.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHTML Format = "html"
)

// Formats lists every output format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatHTML}
}

// ParseFormat parses a format name, case-insensitively. "yml" is accepted.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if f == "yml" {
		return FormatYAML, nil
	}

	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Options tunes rendering.
type Options struct {
	Terminal terminal.Config
	Theme    plotpage.Theme
}

// DefaultOptions reads terminal settings from the environment and uses the
// light chart theme.
func DefaultOptions() Options {
	return Options{
		Terminal: terminal.NewConfig(),
		Theme:    plotpage.ThemeLight,
	}
}

// Render writes rep to w in the given format.
func Render(w io.Writer, rep *boxoffice.Report, format Format, opts Options) error {
	switch format {
	case FormatText:
		return renderText(w, rep, opts.Terminal)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		err := enc.Encode(rep)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}

		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		err := enc.Encode(rep)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return enc.Close()
	case FormatHTML:
		return BuildPage(rep, opts.Theme).Render(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
