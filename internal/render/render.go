// Package render draws a dungeon as a north-up ASCII map.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/cory-johannsen/dungeongen/internal/dungeon"
)

// Map glyphs.
const (
	GlyphWall     = '#'
	GlyphRoom     = '.'
	GlyphCorridor = ','
	GlyphDoor     = '+'
	GlyphEntrance = 'E'
)

// ColorMode selects whether ANSI colour codes are emitted.
type ColorMode int

const (
	// ColorAuto colours output only when it goes to a terminal.
	ColorAuto ColorMode = iota
	// ColorAlways always colours output.
	ColorAlways
	// ColorNever never colours output.
	ColorNever
)

// ParseColorMode maps "auto", "always" and "never" to a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("unknown color mode %q", s)
}

// Glyph returns the map character for cell (x, z). Room cells belonging to
// the entrance room are drawn as GlyphEntrance.
//
// Precondition: (x, z) must be inside d.
func Glyph(d *dungeon.Dungeon, x, z int) rune {
	switch d.Cell(x, z).Kind {
	case dungeon.KindRoom:
		if e, ok := d.Entrance(); ok && e.Contains(x, z) {
			return GlyphEntrance
		}
		return GlyphRoom
	case dungeon.KindCorridor:
		return GlyphCorridor
	case dungeon.KindDoor:
		return GlyphDoor
	default:
		return GlyphWall
	}
}

// ParseGlyph is the inverse of Glyph for cell kinds.
//
// Postcondition: Returns (kind, true) for a map glyph, or (KindWall, false).
func ParseGlyph(r rune) (dungeon.CellKind, bool) {
	switch r {
	case GlyphWall:
		return dungeon.KindWall, true
	case GlyphRoom, GlyphEntrance:
		return dungeon.KindRoom, true
	case GlyphCorridor:
		return dungeon.KindCorridor, true
	case GlyphDoor:
		return dungeon.KindDoor, true
	}
	return dungeon.KindWall, false
}

// Renderer draws dungeons, optionally with ANSI colours.
type Renderer struct {
	colored bool
	styles  map[rune]color.Style
}

// New creates a Renderer for output written to w.
//
// Postcondition: With ColorAuto, colour is enabled only when w is a terminal.
func New(mode ColorMode, w io.Writer) *Renderer {
	colored := mode == ColorAlways
	if mode == ColorAuto {
		if f, ok := w.(*os.File); ok {
			colored = term.IsTerminal(int(f.Fd()))
		}
	}
	return &Renderer{
		colored: colored,
		styles: map[rune]color.Style{
			GlyphWall:     {color.FgGray},
			GlyphRoom:     {color.FgWhite, color.OpBold},
			GlyphCorridor: {color.FgBlue},
			GlyphDoor:     {color.FgYellow, color.OpBold},
			GlyphEntrance: {color.FgGreen, color.OpBold},
		},
	}
}

// Colored reports whether the renderer emits colour codes.
func (r *Renderer) Colored() bool { return r.colored }

// Rows returns the map lines north-up: the first line is z = Depth()-1 and
// each line runs x = 0 .. Width()-1.
func (r *Renderer) Rows(d *dungeon.Dungeon) []string {
	rows := make([]string, 0, d.Depth())
	var sb strings.Builder
	for z := d.Depth() - 1; z >= 0; z-- {
		sb.Reset()
		for x := 0; x < d.Width(); x++ {
			sb.WriteString(r.glyph(Glyph(d, x, z)))
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// Render writes the map of d to w, one line per row.
func (r *Renderer) Render(w io.Writer, d *dungeon.Dungeon) error {
	bw := bufio.NewWriter(w)
	for _, row := range r.Rows(d) {
		if _, err := bw.WriteString(row); err != nil {
			return fmt.Errorf("writing map row: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing map row: %w", err)
		}
	}
	return bw.Flush()
}

// String renders d without colour.
func String(d *dungeon.Dungeon) string {
	var sb strings.Builder
	_ = New(ColorNever, nil).Render(&sb, d)
	return sb.String()
}

func (r *Renderer) glyph(g rune) string {
	if !r.colored {
		return string(g)
	}
	// Formatted directly so that ColorAlways holds even when gookit's own
	// terminal detection reports no colour support.
	return fmt.Sprintf(color.FullColorTpl, r.styles[g].String(), string(g))
}
