// Package export serializes dungeons to JSON and YAML documents and
// restores them.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dungeongen/internal/dungeon"
	"github.com/cory-johannsen/dungeongen/internal/render"
)

// Version is the document schema version written by Encode.
const Version = 1

// ErrUnknownFormat is returned for a format other than json or yaml.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is a document encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// RoomDoc is the serialized form of a dungeon.Room.
type RoomDoc struct {
	StartX int    `json:"start_x" yaml:"start_x"`
	StartZ int    `json:"start_z" yaml:"start_z"`
	Width  int    `json:"width" yaml:"width"`
	Depth  int    `json:"depth" yaml:"depth"`
	Tag    string `json:"tag" yaml:"tag"`
}

// CorridorDoc is the serialized form of a carved dungeon.Edge.
type CorridorDoc struct {
	A        int     `json:"a" yaml:"a"`
	B        int     `json:"b" yaml:"b"`
	Distance float64 `json:"distance" yaml:"distance"`
}

// Document is the canonical serialized dungeon. Grid holds the map rows
// north-up, drawn with the render glyphs.
type Document struct {
	Version   int           `json:"version" yaml:"version"`
	Seed      int64         `json:"seed" yaml:"seed"`
	Width     int           `json:"width" yaml:"width"`
	Depth     int           `json:"depth" yaml:"depth"`
	Rooms     []RoomDoc     `json:"rooms" yaml:"rooms"`
	Corridors []CorridorDoc `json:"corridors" yaml:"corridors"`
	Grid      []string      `json:"grid" yaml:"grid"`
}

// FromDungeon captures d as a Document.
func FromDungeon(d *dungeon.Dungeon) Document {
	doc := Document{
		Version:   Version,
		Seed:      d.Seed(),
		Width:     d.Width(),
		Depth:     d.Depth(),
		Rooms:     make([]RoomDoc, 0, d.RoomCount()),
		Corridors: make([]CorridorDoc, 0, len(d.Corridors())),
		Grid:      render.New(render.ColorNever, nil).Rows(d),
	}
	for _, r := range d.Rooms() {
		doc.Rooms = append(doc.Rooms, RoomDoc{StartX: r.StartX, StartZ: r.StartZ, Width: r.Width, Depth: r.Depth, Tag: r.Tag})
	}
	for _, e := range d.Corridors() {
		doc.Corridors = append(doc.Corridors, CorridorDoc{A: e.A, B: e.B, Distance: e.Distance})
	}
	return doc
}

// Dungeon rebuilds the dungeon described by doc.
//
// Postcondition: Returns a Dungeon equal to the one captured, or an error
// wrapping dungeon.ErrInvalidLayout.
func (doc Document) Dungeon() (*dungeon.Dungeon, error) {
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: unsupported document version %d", dungeon.ErrInvalidLayout, doc.Version)
	}
	if doc.Width <= 0 || doc.Depth <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", dungeon.ErrInvalidLayout, doc.Width, doc.Depth)
	}
	if len(doc.Grid) != doc.Depth {
		return nil, fmt.Errorf("%w: got %d grid rows, want %d", dungeon.ErrInvalidLayout, len(doc.Grid), doc.Depth)
	}

	cells := make([]dungeon.Cell, doc.Width*doc.Depth)
	for i, row := range doc.Grid {
		z := doc.Depth - 1 - i
		glyphs := []rune(row)
		if len(glyphs) != doc.Width {
			return nil, fmt.Errorf("%w: grid row %d has %d cells, want %d", dungeon.ErrInvalidLayout, i, len(glyphs), doc.Width)
		}
		for x, g := range glyphs {
			kind, ok := render.ParseGlyph(g)
			if !ok {
				return nil, fmt.Errorf("%w: unknown glyph %q at (%d, %d)", dungeon.ErrInvalidLayout, g, x, z)
			}
			cells[x*doc.Depth+z] = dungeon.Cell{Kind: kind, Visible: kind != dungeon.KindWall}
		}
	}

	rooms := make([]dungeon.Room, 0, len(doc.Rooms))
	for _, r := range doc.Rooms {
		rooms = append(rooms, dungeon.Room{StartX: r.StartX, StartZ: r.StartZ, Width: r.Width, Depth: r.Depth, Tag: r.Tag})
	}
	corridors := make([]dungeon.Edge, 0, len(doc.Corridors))
	for _, c := range doc.Corridors {
		corridors = append(corridors, dungeon.Edge{A: c.A, B: c.B, Distance: c.Distance})
	}
	return dungeon.Restore(doc.Width, doc.Depth, doc.Seed, rooms, corridors, cells)
}

// Encode writes d to w in format f.
func Encode(w io.Writer, d *dungeon.Dungeon, f Format) error {
	doc := FromDungeon(d)
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Decode reads one document in format f from r and rebuilds its dungeon.
func Decode(r io.Reader, f Format) (*dungeon.Dungeon, error) {
	var doc Document
	switch f {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return doc.Dungeon()
}

// MarshalJSON returns the compact JSON document of d, the form stored by
// the postgres repository.
func MarshalJSON(d *dungeon.Dungeon) ([]byte, error) {
	b, err := json.Marshal(FromDungeon(d))
	if err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}
	return b, nil
}

// UnmarshalJSON rebuilds a dungeon from a JSON document.
func UnmarshalJSON(b []byte) (*dungeon.Dungeon, error) {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}
	return doc.Dungeon()
}
