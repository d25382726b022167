// Package rng provides the explicit, seedable randomness handle threaded
// through every stage of dungeon generation.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// Source is the randomness provider for room placement and extra-corridor
// selection.
//
// A Source is owned by a single generation run; implementations need not be
// safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float64 in [0.0, 1.0).
	Float64() float64
}

// Range returns a random int in the half-open interval [lo, hi).
//
// Precondition: hi > lo. Panics otherwise.
// Postcondition: lo <= result < hi.
func Range(src Source, lo, hi int) int {
	if hi <= lo {
		panic(fmt.Sprintf("rng: Range called with empty interval [%d, %d)", lo, hi))
	}
	return lo + src.Intn(hi-lo)
}

// NewSeed draws a fresh non-zero seed from crypto/rand.
//
// Panics with "rng: crypto/rand failure: <err>" if crypto/rand fails.
// Postcondition: result != 0.
func NewSeed() int64 {
	var buf [8]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			panic("rng: crypto/rand failure: " + err.Error())
		}
		seed := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
		if seed != 0 {
			return seed
		}
	}
}
