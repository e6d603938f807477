//go:build !qugiy

package shogi

// Magic-table slider backend (spec.md §4.2, "Magic backend"). For each
// (square, slider) pair, a table maps a masked occupancy to its attack
// set, built once at init from rayAttacks so the table is correct by
// construction rather than by a hand-verified multiplier.
//
// Classic magic bitboards hash a masked occupancy through a single
// 64-bit multiply-and-shift. That trick needs every mask bit to live in
// one machine word; Shogi's 81-square board is split across BitBoard's
// Lo/Hi pair, and some masks (a Rook's file ray in particular) straddle
// the boundary. Rather than hand-search multipliers we can't verify
// without a build (see DESIGN.md), each Magic stores the mask's set
// squares in a fixed order and gathers/scatters occupancy bits directly
// — a perfect hash, exactly as deterministic and table-embeddable as a
// multiplier-based one, just built with an explicit bit list instead of
// an opaque magic constant. Regenerating the tables after a layout change
// needs nothing beyond this file's init().
type Magic struct {
	Mask  BitBoard
	bits  []Square
	Table []BitBoard
}

// Attacks looks up the attack set for a given real board occupancy.
func (m *Magic) Attacks(occ BitBoard) BitBoard {
	return m.Table[gather(occ.And(m.Mask), m.bits)]
}

// gather and scatter live in sliders_common.go: they're shared with the
// Qugiy backend, which uses the same bit-packing to compact a line's
// occupancy before doing arithmetic on it instead of indexing a table.

func buildMagic(mask BitBoard, attacksFn func(BitBoard) BitBoard) Magic {
	var bits []Square
	mask.ForEach(func(sq Square) { bits = append(bits, sq) })

	table := make([]BitBoard, 1<<uint(len(bits)))
	for idx := range table {
		table[idx] = attacksFn(scatter(idx, bits))
	}
	return Magic{Mask: mask, bits: bits, Table: table}
}

var (
	lanceMagicTable  [NumColors][NumSquares]Magic
	bishopMagicTable [NumSquares]Magic
	rookMagicTable   [NumSquares]Magic
)

func init() {
	for sq := Square(0); sq < NumSquares; sq++ {
		sq := sq
		bishopMagicTable[sq] = buildMagic(relevantMask(sq, bishopSteps[:]), func(occ BitBoard) BitBoard {
			return rayAttacks(sq, occ, bishopSteps[:])
		})
		rookMagicTable[sq] = buildMagic(relevantMask(sq, rookSteps[:]), func(occ BitBoard) BitBoard {
			return rayAttacks(sq, occ, rookSteps[:])
		})
		for c := Color(0); c < NumColors; c++ {
			steps := lanceSteps(c)
			lanceMagicTable[c][sq] = buildMagic(lanceRelevantMask(sq, c), func(occ BitBoard) BitBoard {
				return rayAttacks(sq, occ, steps[:])
			})
		}
	}
}

// LanceAttacks returns Lance's reachable squares from sq given occ,
// including the first blocker in each direction.
func LanceAttacks(sq Square, c Color, occ BitBoard) BitBoard {
	return lanceMagicTable[c][sq].Attacks(occ)
}

// BishopAttacks returns Bishop's reachable squares from sq given occ.
func BishopAttacks(sq Square, occ BitBoard) BitBoard {
	return bishopMagicTable[sq].Attacks(occ)
}

// RookAttacks returns Rook's reachable squares from sq given occ.
func RookAttacks(sq Square, occ BitBoard) BitBoard {
	return rookMagicTable[sq].Attacks(occ)
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
