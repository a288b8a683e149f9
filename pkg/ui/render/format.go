// Package render writes scan results for the host surface: styled text for
// people, JSON lines for programs and OSC 8 hyperlinks for terminals that
// support them.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/termlinks/pkg/types"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects a renderer
type Format int

const (
	// FormatText lists every annotation with its destinations
	FormatText Format = iota
	// FormatJSON writes one JSON object per line of input
	FormatJSON
	// FormatHyperlink re-emits the input with OSC 8 hyperlinks
	FormatHyperlink
)

// String returns the flag value of the format
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatHyperlink:
		return "hyperlink"
	default:
		return "unknown"
	}
}

// ParseFormat parses a --format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "hyperlink", "osc8":
		return FormatHyperlink, nil
	default:
		return FormatText, fmt.Errorf("unknown format: %s", s)
	}
}

// UseColor reports whether styled output should be written to f
func UseColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.NewOutput(f).Profile != termenv.Ascii
}

// Line is the scan result for one line of input
type Line struct {
	Source      string
	Number      int
	Text        string
	Annotations []types.Annotation
}

// Renderer writes scan results
type Renderer interface {
	RenderLine(w io.Writer, line Line) error
}

// New returns the renderer for format. color only affects FormatText.
func New(format Format, color bool) Renderer {
	switch format {
	case FormatJSON:
		return JSONRenderer{}
	case FormatHyperlink:
		return HyperlinkRenderer{}
	default:
		return TextRenderer{Color: color}
	}
}
