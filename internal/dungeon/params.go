package dungeon

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidParams is matched by every ConfigError.
var ErrInvalidParams = errors.New("invalid generation parameters")

// ConfigError reports every violated generation parameter rule at once.
type ConfigError struct {
	Violations []string
}

// Error joins the violations into one message.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidParams, strings.Join(e.Violations, "; "))
}

// Is makes errors.Is(err, ErrInvalidParams) hold for any ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidParams
}

// Params is the full configuration surface of one generation run.
type Params struct {
	// Width and Depth are the grid dimensions; even values are bumped to odd.
	Width int
	Depth int
	// EntranceSize is the side length of the square entrance room.
	EntranceSize int
	// MinRoomSize and MaxRoomSize bound the side lengths of random rooms.
	MinRoomSize int
	MaxRoomSize int
	// Tries is the room placement budget; a hard iteration cap.
	Tries int
	// ExtraCorridorChance is the probability of promoting each non-tree edge.
	ExtraCorridorChance float64
	// Seed drives every random draw. 0 asks the generator for a fresh seed.
	Seed int64
}

// DefaultParams mirrors the defaults of the original level designer.
func DefaultParams() Params {
	return Params{
		Width:               29,
		Depth:               29,
		EntranceSize:        2,
		MinRoomSize:         3,
		MaxRoomSize:         5,
		Tries:               800,
		ExtraCorridorChance: 0,
	}
}

// Normalized returns p with even dimensions bumped to odd.
func (p Params) Normalized() Params {
	if p.Width > 0 {
		p.Width = NormalizeDimension(p.Width)
	}
	if p.Depth > 0 {
		p.Depth = NormalizeDimension(p.Depth)
	}
	return p
}

// MaxRoomSizeLimit is the largest room side that still leaves a non-empty
// placement range for the given (normalized) dimensions.
func MaxRoomSizeLimit(width, depth int) int {
	return min(width, depth) - 3
}

// Validate checks every parameter rule against the normalized dimensions.
//
// Postcondition: Returns nil, or a *ConfigError listing all violations.
func (p Params) Validate() error {
	n := p.Normalized()
	var errs []string

	dimsOK := true
	if n.Width <= 0 || n.Depth <= 0 {
		errs = append(errs, fmt.Sprintf("dimensions must be positive, got %dx%d", p.Width, p.Depth))
		dimsOK = false
	} else if n.Width < MinDimension || n.Depth < MinDimension {
		errs = append(errs, fmt.Sprintf("dimensions must be at least %dx%d, got %dx%d", MinDimension, MinDimension, n.Width, n.Depth))
		dimsOK = false
	}

	if p.EntranceSize < 1 {
		errs = append(errs, fmt.Sprintf("entrance_size must be >= 1, got %d", p.EntranceSize))
	} else if dimsOK {
		e := EntranceRoom(n.Width, n.Depth, p.EntranceSize)
		if e.EndX() > n.Width || e.EndZ() > n.Depth {
			errs = append(errs, fmt.Sprintf("entrance_size %d does not fit a %dx%d dungeon", p.EntranceSize, n.Width, n.Depth))
		}
	}

	if p.MinRoomSize < 1 {
		errs = append(errs, fmt.Sprintf("min_room_size must be >= 1, got %d", p.MinRoomSize))
	}
	if p.MinRoomSize > p.MaxRoomSize {
		errs = append(errs, fmt.Sprintf("min_room_size %d must not exceed max_room_size %d", p.MinRoomSize, p.MaxRoomSize))
	}
	if dimsOK {
		if limit := MaxRoomSizeLimit(n.Width, n.Depth); p.MaxRoomSize > limit {
			errs = append(errs, fmt.Sprintf("max_room_size %d cannot fit a %dx%d dungeon (limit %d)", p.MaxRoomSize, n.Width, n.Depth, limit))
		}
	}

	if p.Tries < 0 {
		errs = append(errs, fmt.Sprintf("tries must be >= 0, got %d", p.Tries))
	}
	if p.ExtraCorridorChance < 0 || p.ExtraCorridorChance > 1 || math.IsNaN(p.ExtraCorridorChance) {
		errs = append(errs, fmt.Sprintf("extra_corridor_chance must be in [0, 1], got %v", p.ExtraCorridorChance))
	}

	if len(errs) > 0 {
		return &ConfigError{Violations: errs}
	}
	return nil
}
