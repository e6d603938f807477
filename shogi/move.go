package shogi

import "fmt"

// Move is a tagged value: either a board move (from/to/promote) or a
// drop (piece kind/to). It never carries both, and side to move is
// never stored on it — a Move is only meaningful against the Board it
// was generated from (spec.md §4 Move).
type Move struct {
	from    Square // NoSquare for a drop
	to      Square
	drop    PieceKind // NoPieceKind for a board move
	promote bool
}

// NoMove is a sentinel with no squares and no drop kind (it is not the
// zero Move value); it is not a legal move on any board.
var NoMove = Move{from: NoSquare, to: NoSquare, drop: NoPieceKind}

// NewBoardMove builds a board move, optionally promoting on arrival.
func NewBoardMove(from, to Square, promote bool) Move {
	return Move{from: from, to: to, drop: NoPieceKind, promote: promote}
}

// NewDrop builds a drop of pk onto to.
func NewDrop(pk PieceKind, to Square) Move {
	return Move{from: NoSquare, to: to, drop: pk}
}

// IsDrop reports whether m is a drop rather than a board move.
func (m Move) IsDrop() bool { return m.drop != NoPieceKind }

// From returns the origin square of a board move, or NoSquare for a drop.
func (m Move) From() Square { return m.from }

// To returns the destination square.
func (m Move) To() Square { return m.to }

// Promote reports whether a board move promotes on arrival. Always
// false for drops.
func (m Move) Promote() bool { return m.promote }

// DropKind returns the piece kind being dropped, or NoPieceKind for a
// board move.
func (m Move) DropKind() PieceKind { return m.drop }

// String renders m in USI-adjacent textual form: board moves as
// "<from><to>[+]", drops as "<LETTER>*<to>" (spec.md §6). This is the
// core's only concession to stringification; the structural Move above
// is what generation and play actually operate on.
func (m Move) String() string {
	if m.IsDrop() {
		return fmt.Sprintf("%c*%s", baseLetter[m.drop], m.to)
	}
	s := m.from.String() + m.to.String()
	if m.promote {
		s += "+"
	}
	return s
}

// PromotionStatus classifies how many Move values a board-move batch's
// landing square expands to (spec.md §4.5): a piece that cannot promote
// yields exactly one, a piece forced to promote (Pawn/Lance on the last
// rank, Knight on the last two) yields exactly one promoted move, and
// everything else crossing the promotion zone yields both.
type PromotionStatus uint8

const (
	// Undecided is not used as a final classification; it exists so
	// callers can default-zero a PromotionStatus before classifying.
	Undecided PromotionStatus = iota
	CannotPromote
	MayPromote
	MustPromote
)

// classifyPromotion returns the PromotionStatus for a board move of
// piece kind pk, color c, landing on to, given whether the move's
// origin or destination touches the promotion zone.
func classifyPromotion(pk PieceKind, c Color, from, to Square) PromotionStatus {
	if !pk.CanPromote() {
		return CannotPromote
	}
	touchesZone := PromotionZone(c).Has(from) || PromotionZone(c).Has(to)
	if !touchesZone {
		return CannotPromote // not eligible on this move, but the single variant is unpromoted
	}
	if mustPromote(pk, c, to) {
		return MustPromote
	}
	return MayPromote
}

// PieceMoves is a compact batch of moves sharing one piece: a board-move
// batch carries {Piece, From, Targets, PromoteMask, ForcedPromote}, a
// drop batch carries {Piece, Targets} with From left at NoSquare. The
// promotion-eligible subset of Targets is PromoteMask (both variants
// emitted); the forced-promotion subset is ForcedPromote (promoted
// variant only, a subset of PromoteMask).
type PieceMoves struct {
	Piece         PieceKind
	Color         Color
	From          Square
	IsDrop        bool
	Targets       BitBoard
	PromoteMask   BitBoard
	ForcedPromote BitBoard
}

// Len returns the number of Move values this batch expands to.
func (pm PieceMoves) Len() int {
	if pm.IsDrop {
		return pm.Targets.Count()
	}
	n := pm.Targets.Count()
	n += pm.PromoteMask.AndNot(pm.ForcedPromote).Count() // these squares get a second, promoted variant
	return n
}

// ForEach expands the batch into its constituent Move values, in
// increasing square order, calling f for each. This is the allocation-
// free alternative to collecting into a slice.
func (pm PieceMoves) ForEach(f func(Move)) {
	if pm.IsDrop {
		pm.Targets.ForEach(func(to Square) { f(NewDrop(pm.Piece, to)) })
		return
	}
	pm.Targets.ForEach(func(to Square) {
		switch {
		case pm.ForcedPromote.Has(to):
			f(NewBoardMove(pm.From, to, true))
		case pm.PromoteMask.Has(to):
			f(NewBoardMove(pm.From, to, false))
			f(NewBoardMove(pm.From, to, true))
		default:
			f(NewBoardMove(pm.From, to, false))
		}
	})
}
