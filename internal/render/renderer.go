// Package render writes analysis reports as text, JSON or YAML.
package render

import (
	"fmt"
	"io"
	"os"

	"git.lost.host/meutraa/osuacc/internal/config"
	"git.lost.host/meutraa/osuacc/internal/theme"
	"golang.org/x/term"
)

type Renderer interface {
	// Report writes a single report in full
	Report(w io.Writer, r *Report) error
	// History writes a summary line per report
	History(w io.Writer, rs []*Report) error
}

// New picks the renderer for format. Text is coloured only when out is a
// terminal.
func New(format string, out *os.File) (Renderer, error) {
	switch format {
	case config.FormatText, "":
		var th theme.Theme = &theme.PlainTheme{}
		if term.IsTerminal(int(out.Fd())) {
			th = &theme.DefaultTheme{}
		}
		return &TextRenderer{Theme: th}, nil
	case config.FormatJSON:
		return &JSONRenderer{}, nil
	case config.FormatYAML:
		return &YAMLRenderer{}, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}
