package shogi

import "log"

// MoveSink receives one PieceMoves batch at a time during generation.
// Returning true stops generation immediately (the same short-circuit
// convention Board.IsLegal uses internally): callers that only need to
// know "is there at least one legal move" never pay for the rest.
type MoveSink func(PieceMoves) bool

// DebugAssertions enables dual-path legality verification in
// GenerateMoves, the same opt-in correctness net the teacher ships as
// DebugLegalMoveVerification (movegen.go): every batch the fast,
// pin/checker-based generator emits is cross-checked move by move
// against legalSlow, a make/unmake-based re-derivation that doesn't
// trust the pin cache at all. Off by default; flip it on while
// developing pin/check logic, not in production (it pays for a Play/
// Unplay per candidate move).
var DebugAssertions = false

// GenerateMoves enumerates every legal move for the side to move,
// feeding PieceMoves batches to sink grouped by origin piece (spec.md
// §4-§5). King moves are generated first, against occupancy with the
// king itself removed — the same "vacate before testing" trick the
// teacher's check-detection uses, needed so a slider's attack through
// the king's own departure square is correctly accounted for. The
// checker count then decides what else is legal: two or more checkers
// means only king moves exist; one checker restricts every other piece
// to capturing it or interposing on its ray; zero checkers applies only
// the per-piece pin restriction.
func (b *Board) GenerateMoves(sink MoveSink) {
	if DebugAssertions {
		sink = b.verifyingSink(sink)
	}
	us := b.sideToMove
	them := us.Other()
	occ := b.occupied()
	ksq := b.kingSq[us]

	if ksq == NoSquare {
		// Tsume mode: the side to move has no king of its own to move,
		// but can still play board moves and drops normally.
		b.generateBoardAndDrops(sink, us, them, occ, Universe, Universe)
		return
	}

	occNoKing := occ.Clear(ksq)
	kingTargets := kingStepAttacks[ksq].AndNot(b.colorBB[us])
	var kingSafe BitBoard
	for t := kingTargets; t.Any(); {
		to := t.Next()
		if !b.isAttackedBy(to, them, occNoKing) {
			kingSafe = kingSafe.Set(to)
		}
	}
	if kingSafe.Any() {
		if sink(PieceMoves{Piece: King, Color: us, From: ksq, Targets: kingSafe}) {
			return
		}
	}

	switch b.checkers.Count() {
	case 0:
		b.generateBoardAndDrops(sink, us, them, occ, Universe, Universe)
	case 1:
		checkerSq := b.checkers.First()
		captureMask := b.checkers
		pushMask := Empty
		if b.checkerIsSlider(checkerSq) {
			pushMask = Between(ksq, checkerSq)
		}
		b.generateBoardAndDrops(sink, us, them, occ, captureMask.Or(pushMask), pushMask)
	default:
		// Double check: only the king move already emitted can escape.
	}
}

// checkerIsSlider reports whether the piece on sq is a Lance, Bishop,
// Rook, or one of their promoted forms — the ones whose check can be
// blocked by interposition.
func (b *Board) checkerIsSlider(sq Square) bool {
	return b.mailbox[sq].Kind().IsSlider()
}

// generateBoardAndDrops emits every non-king board move and drop,
// restricted to boardMask (board-move destinations: captures plus
// interpositions, or Universe when not in check) and dropMask (drop
// destinations: interpositions only, meaningful only when in check — a
// drop can never capture the checker itself).
func (b *Board) generateBoardAndDrops(sink MoveSink, us, them Color, occ, boardMask, dropMask BitBoard) {
	if b.generateBoardMoves(sink, us, occ, boardMask) {
		return
	}
	if b.checkers.Any() {
		b.generateDrops(sink, us, them, occ, dropMask)
	} else {
		b.generateDrops(sink, us, them, occ, occ.Not())
	}
}

// generateBoardMoves emits every non-king piece's moves and returns
// true if sink asked to stop.
func (b *Board) generateBoardMoves(sink MoveSink, us Color, occ, mask BitBoard) bool {
	for pk := PieceKind(0); pk < NoPieceKind; pk++ {
		if pk == King {
			continue
		}
		pieces := b.pieceBB[pk].And(b.colorBB[us])
		for pieces.Any() {
			from := pieces.Next()
			targets := pieceAttacks(pk, us, from, occ).AndNot(b.colorBB[us])
			if b.pinned.Has(from) {
				targets = targets.And(Line(from, b.kingSq[us]))
			}
			targets = targets.And(mask)
			if !targets.Any() {
				continue
			}
			promoteMask, forcedPromote := promotionMasks(pk, us, from, targets)
			if sink(PieceMoves{
				Piece: pk, Color: us, From: from,
				Targets: targets, PromoteMask: promoteMask, ForcedPromote: forcedPromote,
			}) {
				return true
			}
		}
	}
	return false
}

// promotionMasks computes, for a board move of piece pk/color c from
// from to each square in targets, which destinations are promotion-
// eligible and which are forced to promote (spec.md §4.5, I4).
func promotionMasks(pk PieceKind, c Color, from Square, targets BitBoard) (promoteMask, forcedPromote BitBoard) {
	if !pk.CanPromote() {
		return Empty, Empty
	}
	if PromotionZone(c).Has(from) {
		promoteMask = targets
	} else {
		promoteMask = targets.And(PromotionZone(c))
	}
	switch pk {
	case Pawn, Lance:
		forcedPromote = promoteMask.And(rankMask[lastRank(c)])
	case Knight:
		forcedPromote = promoteMask.And(lastTwoRanks(c))
	}
	return promoteMask, forcedPromote
}

// generateDrops emits every droppable hand piece's targets, restricted
// to mask, applying nifu, last-rank, and uchi-fu-zume filters. Returns
// true if sink asked to stop.
func (b *Board) generateDrops(sink MoveSink, us, them Color, occ, mask BitBoard) bool {
	empty := occ.Not()
	for _, pk := range b.hand[us].Kinds() {
		dropMask := empty.And(mask)
		switch pk {
		case Pawn:
			dropMask = dropMask.AndNot(b.nifuFiles(us)).AndNot(rankMask[lastRank(us)])
			dropMask = b.filterUchiFuZume(dropMask, us, them, occ)
		case Lance:
			dropMask = dropMask.AndNot(rankMask[lastRank(us)])
		case Knight:
			dropMask = dropMask.AndNot(lastTwoRanks(us))
		}
		if !dropMask.Any() {
			continue
		}
		if sink(PieceMoves{Piece: pk, Color: us, From: NoSquare, IsDrop: true, Targets: dropMask}) {
			return true
		}
	}
	return false
}

// nifuFiles returns every file already holding one of us's unpromoted
// Pawns, which a Pawn drop may not enter (I3, the nifu rule).
func (b *Board) nifuFiles(us Color) BitBoard {
	ourPawns := b.pieceBB[Pawn].And(b.colorBB[us])
	var files BitBoard
	for f := File(0); f < NumFiles; f++ {
		if ourPawns.And(fileMask[f]).Any() {
			files = files.Or(fileMask[f])
		}
	}
	return files
}

// filterUchiFuZume removes, from a candidate set of Pawn-drop squares,
// the single square (if any) where dropping would both check the enemy
// king and mate it (uchi-fu-zume, P6). A dropped pawn only ever attacks
// the one square directly ahead of it, so at most one square in dropMask
// can check the enemy king at all; that square is found directly rather
// than tested candidate by candidate.
func (b *Board) filterUchiFuZume(dropMask BitBoard, us, them Color, occ BitBoard) BitBoard {
	enemyKing := b.kingSq[them]
	if enemyKing == NoSquare {
		return dropMask
	}
	var behind BitBoard
	if us == Black {
		behind = SquareBB(enemyKing).South()
	} else {
		behind = SquareBB(enemyKing).North()
	}
	to := behind.First()
	if to == NoSquare || !dropMask.Has(to) {
		return dropMask
	}
	if b.isUchiFuZume(to, enemyKing, us, them, occ) {
		return dropMask.Clear(to)
	}
	return dropMask
}

// isUchiFuZume decides, constructively (no search), whether dropping a
// Pawn of color us on to — which checks them's king at enemyKing — is
// checkmate (spec.md §4.6). A drop check always comes from distance 1,
// so it can never be blocked; it is legal (not mate) iff the king has a
// flight square, or some defender can capture the dropped pawn without
// exposing its own king.
func (b *Board) isUchiFuZume(to, enemyKing Square, us, them Color, occ BitBoard) bool {
	occWithPawn := occ.Set(to)

	occForFlight := occWithPawn.Clear(enemyKing)
	flight := kingStepAttacks[enemyKing].AndNot(b.colorBB[them])
	for f := flight; f.Any(); {
		sq := f.Next()
		if sq == to {
			continue
		}
		if !b.isAttackedBy(sq, us, occForFlight) {
			return false
		}
	}

	defenders := b.attackersTo(to, us, occWithPawn)
	if defenders.Has(enemyKing) {
		occKingMoved := occWithPawn.Clear(enemyKing)
		if !b.isAttackedBy(to, us, occKingMoved) {
			return false
		}
		defenders = defenders.Clear(enemyKing)
	}
	if defenders.Any() {
		pinnedThem := b.computePinnedWithOcc(them, occWithPawn)
		for d := defenders; d.Any(); {
			ds := d.Next()
			if pinnedThem.Has(ds) && !Aligned(ds, enemyKing, to) {
				continue
			}
			return false
		}
	}

	return true
}

// verifyingSink wraps sink so every move in every batch is cross-checked
// against legalSlow before being forwarded, logging (not failing) any
// disagreement. The batch is forwarded unchanged either way: a move that
// legalSlow rejects is reported, not removed.
func (b *Board) verifyingSink(sink MoveSink) MoveSink {
	return func(pm PieceMoves) bool {
		pm.ForEach(func(m Move) {
			if !b.legalSlow(m) {
				log.Printf("shogi: DEBUG MISMATCH: GenerateMoves emitted %v but legalSlow rejected it", m)
			}
		})
		return sink(pm)
	}
}

// legalSlow re-derives a single move's legality from scratch, bypassing
// the pin/checker cache entirely: play it with raw mutation, then check
// the mover's king by brute-force attackersTo. Used only under
// DebugAssertions; GenerateMoves itself never calls this on the hot path.
func (b *Board) legalSlow(m Move) bool {
	mover := b.sideToMove
	undo, err := b.Play(m)
	if err != nil {
		return false
	}
	defer b.Unplay(undo)
	return !b.attackersTo(b.kingSq[mover], mover, b.occupied()).Any()
}

// HasLegalMoves reports whether the side to move has any legal move at
// all, stopping generation as soon as one is found.
func (b *Board) HasLegalMoves() bool {
	found := false
	b.GenerateMoves(func(pm PieceMoves) bool {
		if pm.Len() > 0 {
			found = true
		}
		return found
	})
	return found
}

// IsCheckmate reports whether the side to move is in check with no
// legal reply.
func (b *Board) IsCheckmate() bool {
	return b.checkers.Any() && !b.HasLegalMoves()
}

// GenerateChecks enumerates every legal move that gives check, direct
// or discovered (SPEC_FULL.md §5 Open Questions). Rather than
// maintaining a separate discovered-check deduction, each candidate
// legal move is played and the resulting Checkers() is inspected
// directly — this makes "does this move check" exactly as trustworthy
// as the checkers computation itself, at the cost of a play/unplay per
// candidate.
func (b *Board) GenerateChecks(sink MoveSink) {
	var checking []Move
	b.GenerateMoves(func(pm PieceMoves) bool {
		pm.ForEach(func(m Move) {
			undo, err := b.Play(m)
			if err == nil && b.checkers.Any() {
				checking = append(checking, m)
			}
			b.Unplay(undo)
		})
		return false
	})

	byPiece := make(map[pieceMovesKey]*PieceMoves)
	order := make([]pieceMovesKey, 0, len(checking))
	for _, m := range checking {
		key := pieceMovesKey{drop: m.IsDrop(), from: m.From(), kind: b.moveKind(m)}
		pm, ok := byPiece[key]
		if !ok {
			pmCopy := PieceMoves{Piece: key.kind, Color: b.sideToMove, From: m.From(), IsDrop: key.drop}
			byPiece[key] = &pmCopy
			order = append(order, key)
		}
		pm = byPiece[key]
		to := m.To()
		if m.Promote() {
			// Promoted-only until an unpromoted check to the same square
			// shows up, so ForEach emits just the variants that check.
			pm.PromoteMask = pm.PromoteMask.Set(to)
			if !pm.Targets.Has(to) {
				pm.ForcedPromote = pm.ForcedPromote.Set(to)
			}
		} else {
			pm.ForcedPromote = pm.ForcedPromote.Clear(to)
		}
		pm.Targets = pm.Targets.Set(to)
	}
	for _, key := range order {
		if sink(*byPiece[key]) {
			return
		}
	}
}

type pieceMovesKey struct {
	drop bool
	from Square
	kind PieceKind
}

func (b *Board) moveKind(m Move) PieceKind {
	if m.IsDrop() {
		return m.DropKind()
	}
	return b.mailbox[m.From()].Kind()
}
