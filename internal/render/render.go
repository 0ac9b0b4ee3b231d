// Package render draws boards as text for the command line.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/bubblejar/jar"
	"github.com/muesli/termenv"
)

const (
	bubbleGlyph = "●"
	emptyGlyph  = "·"
)

// Renderer draws boards using the color profile of its output.
type Renderer struct {
	profile termenv.Profile
}

// New detects the color profile of w. plain forces letter codes with no
// escape sequences.
func New(w io.Writer, plain bool) *Renderer {
	if plain {
		return &Renderer{profile: termenv.Ascii}
	}
	return &Renderer{profile: termenv.NewOutput(w).EnvColorProfile()}
}

// WithProfile returns a renderer for an explicit profile.
func WithProfile(p termenv.Profile) *Renderer {
	return &Renderer{profile: p}
}

// Plain reports whether the renderer emits no colors.
func (r *Renderer) Plain() bool {
	return r.profile == termenv.Ascii
}

// Bubble renders a single bubble: its letter code when plain, otherwise a
// colored glyph.
func (r *Renderer) Bubble(b jar.Bubble) string {
	if r.Plain() {
		return string(b.Code())
	}
	return termenv.String(bubbleGlyph).Foreground(r.profile.Color(b.Hex())).String()
}

// Board renders jars as columns, top of each jar uppermost, numbered from 1.
func (r *Renderer) Board(b jar.Board) string {
	var sb strings.Builder
	for row := range jar.Capacity {
		sb.WriteString(" ")
		for _, j := range b {
			slot := row - (jar.Capacity - len(j))
			cell := emptyGlyph
			if r.Plain() {
				cell = "."
			}
			if slot >= 0 {
				cell = r.Bubble(j[slot])
			}
			sb.WriteString("[" + cell + "]")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(" ")
	for i := range b {
		fmt.Fprintf(&sb, " %d ", i+1)
	}
	sb.WriteString("\n")
	return sb.String()
}

// Legend lists the palette with each color's code.
func (r *Renderer) Legend() string {
	parts := make([]string, 0, len(jar.Palette))
	for _, b := range jar.Palette {
		parts = append(parts, fmt.Sprintf("%s %s", r.Bubble(b), b))
	}
	return strings.Join(parts, "  ")
}
