//go:build qugiy

package shogi

// Qugiy slider backend (spec.md §4.2, "Qugiy backend"): no per-square
// attack tables at all. Selected with `go build -tags qugiy`; the
// default build uses slider_magic.go instead.
//
// Each call gathers the relevant line's occupancy (file, rank, or
// diagonal — see sliders_common.go's lineGeometry) into a word no
// wider than the line itself, then isolates the first blocker in each
// direction with the branch-free "o^(o-2s)" subtract-and-xor trick
// (hyperbola quintessence): borrowing from a subtraction ripples
// upward through the empty squares between the slider and its nearest
// blocker and stops there, so the blocker boundary falls out of the
// arithmetic instead of an explicit per-step occupancy check. Gathering
// onto a line-local word first, rather than working on the full 128-bit
// Lo/Hi occupancy directly, is what makes the trick apply here at all:
// no line is ever wider than 9 squares, so the arithmetic always fits
// in a single machine word regardless of where the line falls across
// BitBoard's split halves.
//
// This is a different algorithm from slider_magic.go's gather-then-
// table-lookup, not the same ray walk reused at a different time;
// slider_crosscheck_test.go checks the two actually agree.

// LanceAttacks returns Lance's reachable squares from sq given occ.
// Lance only slides one way, so it takes a single line direction rather
// than the line's full attacks() union: North for Black (the low-index
// half of the file line), South for White (the high-index half).
func LanceAttacks(sq Square, c Color, occ BitBoard) BitBoard {
	if c == Black {
		return fileLine[sq].backward(occ)
	}
	return fileLine[sq].forward(occ)
}

// BishopAttacks returns Bishop's reachable squares from sq given occ:
// the union of its two diagonals.
func BishopAttacks(sq Square, occ BitBoard) BitBoard {
	return diagNELine[sq].attacks(occ).Or(diagNWLine[sq].attacks(occ))
}

// RookAttacks returns Rook's reachable squares from sq given occ: the
// union of its file and rank.
func RookAttacks(sq Square, occ BitBoard) BitBoard {
	return fileLine[sq].attacks(occ).Or(rankLine[sq].attacks(occ))
}

// ProBishopAttacks returns the Promoted Bishop's (Horse's) reachable
// squares: Bishop's slide plus the king-step mask.
func ProBishopAttacks(sq Square, occ BitBoard) BitBoard {
	return kingStepUnion(sq, BishopAttacks(sq, occ))
}

// ProRookAttacks returns the Promoted Rook's (Dragon's) reachable
// squares: Rook's slide plus the diagonal king-step mask.
func ProRookAttacks(sq Square, occ BitBoard) BitBoard {
	return kingStepUnion(sq, RookAttacks(sq, occ))
}
