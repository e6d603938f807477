// Package tablegen is the build-time table generator described by the
// core's design: pure functions from a named domain string to a
// deterministic 64-bit stream, used to seed Zobrist keys without
// depending on a hand-tuned PRNG seed. Regenerating a table after a
// layout change (a new piece kind, a widened board) only requires
// re-running these functions; the output is always the same for the
// same names.
package tablegen

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Key derives a deterministic 64-bit value from a domain string, e.g.
// "zobrist.piece.Pawn.Black.sq12" or "zobrist.sidetomove". Distinct names hash to
// independent-looking values; the same name always reproduces the same
// value, which is what makes generated tables reproducible without a
// stored seed.
func Key(name string) uint64 {
	return xxhash.Sum64String(name)
}

// KeyN derives the n'th value for name, for call sites that need a
// small family of keys per named domain rather than a single one —
// zobrist.go's hand rungs use it to turn a "color+kind" name into one
// independent key per hand count, instead of folding the count into the
// name string themselves.
func KeyN(name string, n int) uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%s#%d", name, n))
}
