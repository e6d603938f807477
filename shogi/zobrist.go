package shogi

import (
	"fmt"

	"github.com/shogilib/shogi/internal/tablegen"
)

// Zobrist key families, per spec.md §4.3: one key per (piece kind, color,
// square), one key per (color, hand kind, count) "rung" so that adding or
// removing a single piece from hand is a single XOR, and one key for side
// to move.
var (
	zobristPieceSq    [NumPieceKinds][NumColors][NumSquares]uint64
	zobristHandRung    [NumColors][NumHandKinds][]uint64
	zobristSideToMove uint64
)

func init() {
	for pk := PieceKind(0); pk < NoPieceKind; pk++ {
		for c := Color(0); c < NumColors; c++ {
			for sq := Square(0); sq < NumSquares; sq++ {
				name := fmt.Sprintf("zobrist.piece.%s.%s.sq%d", pk, c, sq)
				zobristPieceSq[pk][c][sq] = tablegen.Key(name)
			}
		}
	}
	for c := Color(0); c < NumColors; c++ {
		for i, pk := range handKinds {
			rungs := make([]uint64, HandCap[i]+1)
			name := fmt.Sprintf("zobrist.hand.%s.%s", c, pk)
			for n := 1; n <= HandCap[i]; n++ {
				rungs[n] = tablegen.KeyN(name, n)
			}
			zobristHandRung[c][i] = rungs
		}
	}
	zobristSideToMove = tablegen.Key("zobrist.sidetomove")
}

// zobristPieceKey returns the key XORed in (or out) when a piece of kind
// pk and color c occupies sq.
func zobristPieceKey(pk PieceKind, c Color, sq Square) uint64 {
	return zobristPieceSq[pk][c][sq]
}

// zobristHandKey returns the key for holding exactly n of pk (the n'th
// rung). Hand hashes are the XOR of every rung from 1..count, so Add/
// Remove only ever touches the single rung being crossed.
func zobristHandKey(c Color, pk PieceKind, n int) uint64 {
	i := handIndex[pk]
	if i < 0 || n <= 0 {
		return 0
	}
	return zobristHandRung[c][i][n]
}

// zobristHandHash returns the full XOR of rungs 1..h.Count(pk), i.e. the
// hand's contribution to the position hash for one piece kind.
func zobristHandHash(c Color, pk PieceKind, h Hand) uint64 {
	var key uint64
	n := h.Count(pk)
	for i := 1; i <= n; i++ {
		key ^= zobristHandKey(c, pk, i)
	}
	return key
}

// FullZobristHash recomputes the position hash from scratch, for use by
// property tests checking (P2)/(R3): incremental hash must always agree
// with a full recomputation.
func (b *Board) FullZobristHash() uint64 {
	var hash uint64
	for sq := Square(0); sq < NumSquares; sq++ {
		p := b.mailbox[sq]
		if p == NoPiece {
			continue
		}
		hash ^= zobristPieceKey(p.Kind(), p.Color(), sq)
	}
	for c := Color(0); c < NumColors; c++ {
		for _, pk := range handKinds {
			hash ^= zobristHandHash(c, pk, b.hand[c])
		}
	}
	if b.sideToMove == White {
		hash ^= zobristSideToMove
	}
	return hash
}
