package shogi

import "fmt"

// Board is the authoritative game state: per-color and per-kind
// occupancy bitboards, a mailbox for O(1) piece-at queries, the side to
// move, both hands, an incrementally maintained Zobrist hash, and a
// cached checkers/pinned pair recomputed after every move (spec.md §3).
//
// Board is a plain value: copying it copies the whole position (no
// pointers, no slices), which is what lets Play/Unplay snapshot and
// restore it without touching the heap on the hot path.
type Board struct {
	colorBB [NumColors]BitBoard
	pieceBB [NumPieceKinds]BitBoard
	mailbox [NumSquares]Piece
	kingSq  [NumColors]Square

	sideToMove Color
	hand       [NumColors]Hand
	ply        int
	hash       uint64

	checkers BitBoard
	pinned   BitBoard

	// tsume marks a problem position parsed with only a defending king
	// on the board (spec.md §4.7); it relaxes invariants I1/I5.
	tsume bool
}

// StartPos returns the standard Shogi opening position, Black to move.
func StartPos() *Board {
	b, err := ParseSFEN(StartSFEN)
	if err != nil {
		panic("shogi: embedded start SFEN failed to parse: " + err.Error())
	}
	return b
}

// emptyBoard returns a Board with no pieces, Black to move, empty hands.
func emptyBoard() *Board {
	b := &Board{}
	for i := range b.mailbox {
		b.mailbox[i] = NoPiece
	}
	b.kingSq[Black] = NoSquare
	b.kingSq[White] = NoSquare
	return b
}

// PieceAt returns the piece occupying sq, or NoPiece.
func (b *Board) PieceAt(sq Square) Piece { return b.mailbox[sq] }

// ColorAt returns the color of the piece at sq, if any.
func (b *Board) ColorAt(sq Square) (Color, bool) {
	p := b.mailbox[sq]
	if p == NoPiece {
		return NoColor, false
	}
	return p.Color(), true
}

// Hand returns color c's droppable-piece inventory.
func (b *Board) Hand(c Color) Hand { return b.hand[c] }

// Checkers returns the set of enemy pieces currently giving check to the
// side to move's king.
func (b *Board) Checkers() BitBoard { return b.checkers }

// Pinned returns the side to move's pieces pinned to its own king.
func (b *Board) Pinned() BitBoard { return b.pinned }

// King returns color c's king square, or NoSquare if absent (only
// possible in Tsume mode, for the attacking side).
func (b *Board) King(c Color) Square { return b.kingSq[c] }

// SideToMove returns whose turn it is.
func (b *Board) SideToMove() Color { return b.sideToMove }

// Ply returns the move-count field round-tripped from SFEN. Its exact
// semantics (full-move vs half-move) are community-variable (spec.md §9
// Open Questions); the core preserves whatever integer it parsed.
func (b *Board) Ply() int { return b.ply }

// IsTsume reports whether this position was parsed in Tsume (problem)
// mode: only White's king is required on the board.
func (b *Board) IsTsume() bool { return b.tsume }

// Hash returns the incrementally maintained Zobrist hash.
func (b *Board) Hash() uint64 { return b.hash }

func (b *Board) occupied() BitBoard { return b.colorBB[Black].Or(b.colorBB[White]) }

// place puts p on sq, updating every index but not validating that sq
// was empty — callers clear the destination first when it matters.
func (b *Board) place(p Piece, sq Square) {
	b.mailbox[sq] = p
	bb := SquareBB(sq)
	b.colorBB[p.Color()] = b.colorBB[p.Color()].Or(bb)
	b.pieceBB[p.Kind()] = b.pieceBB[p.Kind()].Or(bb)
	b.hash ^= zobristPieceKey(p.Kind(), p.Color(), sq)
	if p.Kind() == King {
		b.kingSq[p.Color()] = sq
	}
}

// remove clears sq and returns what was there (NoPiece if already empty).
func (b *Board) remove(sq Square) Piece {
	p := b.mailbox[sq]
	if p == NoPiece {
		return NoPiece
	}
	b.mailbox[sq] = NoPiece
	b.colorBB[p.Color()] = b.colorBB[p.Color()].Clear(sq)
	b.pieceBB[p.Kind()] = b.pieceBB[p.Kind()].Clear(sq)
	b.hash ^= zobristPieceKey(p.Kind(), p.Color(), sq)
	return p
}

// Undo captures enough of a Board to restore it after Play or NullMove.
// It is a full value snapshot rather than an inverse-move computation:
// simpler to get right, and since Board carries no pointers or slices,
// copying it is a fixed-size stack copy, not a heap allocation.
type Undo struct {
	snapshot Board
}

// Play applies m, mutating b in place, and returns an Undo that restores
// the prior state. It enforces structural legality — the mover owns the
// piece, the destination isn't blocked by a friendly piece, hand counts
// are nonzero, promotion is permitted — and returns an error rather than
// panicking on violation (spec.md §9 Open Questions: a library used from
// a search loop needs to tell "caller bug" apart from "must not
// continue"). It does not re-verify full legality (pins, checks, nifu,
// uchi-fu-zume): callers are expected to only ever Play moves surfaced
// by GenerateMoves, exactly as every move-generation-driven engine does.
func (b *Board) Play(m Move) (Undo, error) {
	undo := Undo{snapshot: *b}
	if err := b.apply(m); err != nil {
		*b = undo.snapshot
		return undo, err
	}
	return undo, nil
}

// Unplay restores b to the state captured by u, undoing the
// corresponding Play or NullMove.
func (b *Board) Unplay(u Undo) { *b = u.snapshot }

func (b *Board) apply(m Move) error {
	us := b.sideToMove
	them := us.Other()

	if m.IsDrop() {
		pk := m.DropKind()
		to := m.To()
		if b.mailbox[to] != NoPiece {
			return moveErrorf(BlockedByOwnPiece, m, "drop target %s is occupied", to)
		}
		n := b.hand[us].Count(pk)
		if n == 0 {
			return moveErrorf(EmptyHand, m, "%s has no %s in hand", us, pk)
		}
		b.hash ^= zobristHandKey(us, pk, n)
		b.hand[us] = b.hand[us].Remove(pk)
		b.place(NewPiece(pk, us), to)
	} else {
		from, to := m.From(), m.To()
		p := b.mailbox[from]
		if p == NoPiece {
			return moveErrorf(EmptyFromSquare, m, "no piece at %s", from)
		}
		if p.Color() != us {
			return moveErrorf(WrongColor, m, "%s to move, but %s at %s is %s", us, p.Color(), from, p.Color())
		}
		if captured := b.mailbox[to]; captured != NoPiece {
			if captured.Color() == us {
				return moveErrorf(BlockedByOwnPiece, m, "%s is occupied by a friendly piece", to)
			}
			base := captured.Unpromote()
			b.remove(to)
			n := b.hand[us].Count(base.Kind()) + 1
			b.hand[us] = b.hand[us].Add(base.Kind())
			b.hash ^= zobristHandKey(us, base.Kind(), n)
		}
		b.remove(from)
		final := p
		if m.Promote() {
			if !p.Kind().CanPromote() {
				return moveErrorf(CannotPromoteReason, m, "%s cannot promote", p.Kind())
			}
			final = p.Promote()
		} else if mustPromote(p.Kind(), us, to) {
			return moveErrorf(MustPromoteReason, m, "%s to %s must promote", p.Kind(), to)
		}
		b.place(final, to)
	}

	b.sideToMove = them
	b.hash ^= zobristSideToMove
	b.ply++
	b.recomputeCheckersAndPinned()
	return nil
}

// NullMove flips side to move without making a move, for an external
// search to probe "what if I passed". Only legal when the side to move
// is not currently in check (spec.md §4.4).
func (b *Board) NullMove() (Undo, error) {
	if b.checkers.Any() {
		return Undo{}, moveErrorf(LeavesKingInCheck, NoMove, "null move is illegal while in check")
	}
	undo := Undo{snapshot: *b}
	b.sideToMove = b.sideToMove.Other()
	b.hash ^= zobristSideToMove
	b.recomputeCheckersAndPinned()
	return undo, nil
}

// IsLegal reports whether m is one of the side to move's legal moves.
// It generates the full legal move set to answer, so it is a testing/
// UI convenience, not a hot-path primitive — engines should drive
// GenerateMoves directly.
func (b *Board) IsLegal(m Move) bool {
	legal := false
	b.GenerateMoves(func(pm PieceMoves) bool {
		pm.ForEach(func(cand Move) {
			if cand == m {
				legal = true
			}
		})
		return legal
	})
	return legal
}

// SamePosition reports whether b and o have identical placement, hands,
// and side to move, ignoring the move-count field (spec.md's "dominates"/
// "same_position" supplement, §4 SUPPLEMENTED FEATURES in SPEC_FULL.md).
func (b *Board) SamePosition(o *Board) bool {
	return b.colorBB == o.colorBB &&
		b.pieceBB == o.pieceBB &&
		b.mailbox == o.mailbox &&
		b.sideToMove == o.sideToMove &&
		b.hand == o.hand
}

// Dominates reports whether b holds at least as many of every piece kind
// as o, across board and hand combined, for both colors — a material-
// superset check useful for comparing a position against a handicap
// start (SPEC_FULL.md §4).
func (b *Board) Dominates(o *Board) bool {
	for c := Color(0); c < NumColors; c++ {
		for pk := PieceKind(0); pk < NoPieceKind; pk++ {
			if b.countOf(pk, c) < o.countOf(pk, c) {
				return false
			}
		}
	}
	return true
}

func (b *Board) countOf(pk PieceKind, c Color) int {
	return b.pieceBB[pk].And(b.colorBB[c]).Count() + b.hand[c].Count(pk)
}

// attackersTo returns the pieces of defender's opponent that attack sq,
// given occupancy occ. It is the "symmetry of attack" trick from
// spec.md §4.6: for each piece kind, compute what a defender-colored
// piece at sq would attack, and keep the intersection with the
// opponent's actual pieces of that kind.
func (b *Board) attackersTo(sq Square, defender Color, occ BitBoard) BitBoard {
	attacker := defender.Other()
	var result BitBoard
	for pk := PieceKind(0); pk < NoPieceKind; pk++ {
		atk := pieceAttacks(pk, defender, sq, occ)
		result = result.Or(atk.And(b.pieceBB[pk]).And(b.colorBB[attacker]))
	}
	return result
}

// isAttackedBy reports whether any of attacker's pieces reach sq given occ.
func (b *Board) isAttackedBy(sq Square, attacker Color, occ BitBoard) bool {
	return b.attackersTo(sq, attacker.Other(), occ).Any()
}

// computePinned finds us's pieces pinned to its own king (spec.md §4.6):
// for each enemy slider kind, find slider pieces on an unobstructed ray
// from the king; if exactly one piece sits between slider and king, and
// it is ours, it is pinned.
func (b *Board) computePinned(us Color) BitBoard {
	return b.computePinnedWithOcc(us, b.occupied())
}

// computePinnedWithOcc is computePinned generalized to a caller-supplied
// occupancy, so uchi-fu-zume detection can ask "who would be pinned if
// this pawn were dropped" without mutating the board.
func (b *Board) computePinnedWithOcc(us Color, occ BitBoard) BitBoard {
	them := us.Other()
	ksq := b.kingSq[us]
	if ksq == NoSquare {
		return Empty
	}
	var pinned BitBoard
	for _, pk := range [...]PieceKind{Lance, Bishop, Rook, ProBishop, ProRook} {
		snipers := pieceAttacks(pk, us, ksq, Empty).And(b.pieceBB[pk]).And(b.colorBB[them])
		snipers.ForEach(func(sniperSq Square) {
			between := Between(ksq, sniperSq).And(occ)
			if between.Count() == 1 && between.And(b.colorBB[us]).Any() {
				pinned = pinned.Or(between)
			}
		})
	}
	return pinned
}

func (b *Board) recomputeCheckersAndPinned() {
	us := b.sideToMove
	if b.kingSq[us] == NoSquare {
		b.checkers = Empty
		b.pinned = Empty
		return
	}
	b.checkers = b.attackersTo(b.kingSq[us], us, b.occupied())
	b.pinned = b.computePinned(us)
}

// String renders the board as a 9x9 grid (file 8 on the left, matching
// BitBoard.String), for debugging.
func (b *Board) String() string {
	s := ""
	for rank := 0; rank < NumRanks; rank++ {
		for file := NumFiles - 1; file >= 0; file-- {
			p := b.mailbox[NewSquare(File(file), Rank(rank))]
			s += fmt.Sprintf("%3s", p.String())
		}
		s += "\n"
	}
	return s
}
