package shogi

import "math/bits"

// Shared ray-casting plumbing for the Lance/Bishop/Rook slider family.
// The two backends (slider_magic.go, the default; slider_qugiy.go,
// built with -tags qugiy) implement genuinely different algorithms —
// magic gathers occupancy through a perfect hash into a precomputed
// attack table, Qugiy isolates blockers arithmetically at every call —
// so (R4) is a property the tests in slider_crosscheck_test.go actually
// check, not one true by construction. This file only holds the
// geometry both backends agree on: the direction sets and relevant-
// occupancy masks magic's table build needs, and the gather/scatter
// bit-packing both backends use (magic to index its table, Qugiy to
// compact a line's occupancy before doing arithmetic on it).

type step func(BitBoard) BitBoard

var (
	bishopSteps = [4]step{BitBoard.NorthEast, BitBoard.NorthWest, BitBoard.SouthEast, BitBoard.SouthWest}
	rookSteps   = [4]step{BitBoard.North, BitBoard.South, BitBoard.East, BitBoard.West}
)

// lanceSteps returns the single forward direction for color c.
func lanceSteps(c Color) [1]step {
	if c == Black {
		return [1]step{BitBoard.North}
	}
	return [1]step{BitBoard.South}
}

// rayAttacks walks every direction in steps from sq until it runs off
// the board or hits an occupied square (which is included: the blocker
// itself is always a reachable/attackable square, own-color filtering is
// the caller's job per spec.md §4.2). Used only to populate the magic
// backend's tables at init time — see slider_magic.go — never on a
// per-call path.
func rayAttacks(sq Square, occ BitBoard, steps []step) BitBoard {
	var attacks BitBoard
	origin := SquareBB(sq)
	for _, s := range steps {
		cur := origin
		for {
			next := s(cur)
			if next.IsEmpty() {
				break
			}
			attacks = attacks.Or(next)
			if occ.And(next).Any() {
				break
			}
			cur = next
		}
	}
	return attacks
}

// relevantMask returns the occupancy mask rayAttacks actually needs to
// distinguish: each maximal (unblocked) ray minus its last square. A
// ray's last square is where it meets the board edge, so occupancy there
// can never add information beyond "the ray stops here" — which
// rayAttacks with occ=Empty already encodes by construction. Dropping it
// shrinks the magic table without changing the attack set it produces;
// a ray that runs along the edge keeps all of its other squares. Only
// used by slider_magic.go's table build.
func relevantMask(sq Square, steps []step) BitBoard {
	var mask BitBoard
	for _, s := range steps {
		rayAttacks(sq, Empty, []step{s}).ForEach(func(t Square) {
			if s(SquareBB(t)).Any() {
				mask = mask.Set(t)
			}
		})
	}
	return mask
}

// lanceRelevantMask is relevantMask specialized for Lance's single
// forward ray.
func lanceRelevantMask(sq Square, c Color) BitBoard {
	s := lanceSteps(c)
	return relevantMask(sq, s[:])
}

// gather compacts the bits of occ present in bits (in order) into a
// small integer index, the software equivalent of a PEXT instruction.
// slider_magic.go uses this to index a precomputed table; the Qugiy
// backend (slider_qugiy.go) uses it to bring a line's occupancy into a
// single small word cheap enough to subtract from directly.
func gather(occ BitBoard, bits []Square) int {
	idx := 0
	for i, sq := range bits {
		if occ.Has(sq) {
			idx |= 1 << uint(i)
		}
	}
	return idx
}

// scatter is gather's inverse: expands index's low len(bits) bits back
// into an occupancy over the given squares.
func scatter(idx int, bits []Square) BitBoard {
	var occ BitBoard
	for i, sq := range bits {
		if idx&(1<<uint(i)) != 0 {
			occ = occ.Set(sq)
		}
	}
	return occ
}

// lineGeometry is the squares sharing a file, rank, or diagonal with a
// given square, ordered by increasing Square index (the same direction
// the board's own shifts already increase or decrease in — see
// square.go), plus that square's own position in the ordering.
type lineGeometry struct {
	squares []Square
	pos     int
}

func buildLine(sq Square, squares []Square) lineGeometry {
	g := lineGeometry{squares: squares}
	for i, s := range squares {
		if s == sq {
			g.pos = i
			break
		}
	}
	return g
}

// forward returns the attack set toward the high-index end of the line
// via the hyperbola quintessence trick: subtracting 2*s from the
// gathered occupancy borrows up through the zero bits above the slider
// until it reaches the nearest blocker, isolating exactly the forward
// ray in one xor — no data-dependent branch on where that blocker is.
func (g lineGeometry) forward(occ BitBoard) BitBoard {
	o := uint64(gather(occ, g.squares))
	s := uint64(1) << uint(g.pos)
	return scatter(int(o^(o-2*s)), g.squares)
}

// backward mirrors forward for the low-index end of the line: reverse
// the gathered word within its own width, run the same subtract-xor
// trick, then reverse the result back.
func (g lineGeometry) backward(occ BitBoard) BitBoard {
	w := uint(len(g.squares))
	o := uint64(gather(occ, g.squares))
	s := uint64(1) << uint(g.pos)
	ro := bits.Reverse64(o) >> (64 - w)
	rs := bits.Reverse64(s) >> (64 - w)
	rev := ro ^ (ro - 2*rs)
	return scatter(int(bits.Reverse64(rev)>>(64-w)), g.squares)
}

// attacks combines both directions of the line.
func (g lineGeometry) attacks(occ BitBoard) BitBoard {
	return g.forward(occ).Or(g.backward(occ))
}

// fileLine, rankLine, diagNELine, and diagNWLine hold, for every
// square, the lineGeometry of its file, its rank, its file+rank
// (NE-SW) diagonal, and its file-rank (NW-SE) diagonal, respectively.
// Built once at init from plain coordinate arithmetic, never from
// rayAttacks: this is the geometry the Qugiy backend computes its
// attacks from at call time (slider_qugiy.go).
var (
	fileLine   [NumSquares]lineGeometry
	rankLine   [NumSquares]lineGeometry
	diagNELine [NumSquares]lineGeometry
	diagNWLine [NumSquares]lineGeometry
)

func init() {
	for sq := Square(0); sq < NumSquares; sq++ {
		f, r := int(sq.File()), int(sq.Rank())
		fileLine[sq] = buildLine(sq, squaresOnFile(File(f)))
		rankLine[sq] = buildLine(sq, squaresOnRank(Rank(r)))
		diagNELine[sq] = buildLine(sq, squaresOnDiagNE(f+r))
		diagNWLine[sq] = buildLine(sq, squaresOnDiagNW(f-r))
	}
}

// squaresOnFile lists every square of file f, ascending by rank — which
// is already ascending Square index order (square.go: index = file*9+rank).
func squaresOnFile(f File) []Square {
	squares := make([]Square, 0, NumRanks)
	for r := Rank(0); r < NumRanks; r++ {
		squares = append(squares, NewSquare(f, r))
	}
	return squares
}

// squaresOnRank lists every square of rank r, ascending by file — also
// ascending Square index order, since index increases by 9 per file.
func squaresOnRank(r Rank) []Square {
	squares := make([]Square, 0, NumFiles)
	for f := File(0); f < NumFiles; f++ {
		squares = append(squares, NewSquare(f, r))
	}
	return squares
}

// squaresOnDiagNE lists the file+rank==sum diagonal (the NE-SW line),
// ascending by file. Index = file*9+(sum-file) = file*8+sum, strictly
// increasing in file, so this is already ascending Square index order.
func squaresOnDiagNE(sum int) []Square {
	var squares []Square
	for f := 0; f < NumFiles; f++ {
		r := sum - f
		if r < 0 || r >= NumRanks {
			continue
		}
		squares = append(squares, NewSquare(File(f), Rank(r)))
	}
	return squares
}

// squaresOnDiagNW lists the file-rank==diff diagonal (the NW-SE line),
// ascending by file. Index = file*9+(file-diff) = file*10-diff, strictly
// increasing in file, so this is already ascending Square index order.
func squaresOnDiagNW(diff int) []Square {
	var squares []Square
	for f := 0; f < NumFiles; f++ {
		r := f - diff
		if r < 0 || r >= NumRanks {
			continue
		}
		squares = append(squares, NewSquare(File(f), Rank(r)))
	}
	return squares
}

// kingStepUnion gives the single-step mask the promoted sliders add to
// their base slide (spec.md §4.2): Promoted Bishop adds the king-step
// mask, Promoted Rook adds the diagonal king-step mask. Using the full
// 8-direction king step for both is equivalent for Promoted Bishop
// (diagonal steps duplicate squares its own slide already reaches at
// range 1) and is the identical real-piece behavior for Promoted Rook
// (a Dragon's only king-step squares beyond its rook slide are the four
// diagonals, which is exactly what kingStepAttacks contributes once
// the orthogonal duplicates are unioned away).
func kingStepUnion(sq Square, slide BitBoard) BitBoard {
	return slide.Or(kingStepAttacks[sq])
}
