package shogi

import "testing"

// TestCheckmate grounds spec.md's "absence of legal moves is loss" rule
// (§7 Recovery policy) in a minimal mating position: White's king is
// cornered at 9a, double-checked by a Black Rook along its rank and
// another along its file, and the one square neither rook reaches is
// covered by a Black Silver. No flight square, no capture, no block.
func TestCheckmate(t *testing.T) {
	b, err := ParseSFEN("k7R/9/2S6/9/9/9/9/9/R8 w - 1")
	if err != nil {
		t.Fatalf("ParseSFEN: %v", err)
	}
	if !b.Checkers().Any() {
		t.Fatal("expected White's king to be in check")
	}
	if !b.IsCheckmate() {
		t.Error("expected checkmate, got a legal reply")
	}
}

// TestNotCheckmateKingCanCapture mirrors TestCheckmate but gives the
// king a capture that escapes check, the same "not checkmate" shape the
// teacher's own TestNotCheckmate exercises.
func TestNotCheckmateKingCanCapture(t *testing.T) {
	b, err := ParseSFEN("k8/R8/9/9/9/9/9/9/8K w - 1")
	if err != nil {
		t.Fatalf("ParseSFEN: %v", err)
	}
	if !b.Checkers().Any() {
		t.Fatal("expected White's king to be in check")
	}
	if b.IsCheckmate() {
		t.Error("expected king to capture the checking rook, not checkmate")
	}
}

// TestNifu checks I3: dropping a Pawn on a file that already holds one
// of the mover's unpromoted Pawns never appears among the generated
// drops (spec.md §8, P6).
func TestNifu(t *testing.T) {
	b, err := ParseSFEN("4k4/9/9/9/4P4/9/9/9/4K4 b P 1")
	if err != nil {
		t.Fatalf("ParseSFEN: %v", err)
	}
	pawnFile := NewSquare(File(4), Rank(4)).File()
	b.GenerateMoves(func(pm PieceMoves) bool {
		if pm.IsDrop && pm.Piece == Pawn {
			pm.ForEach(func(m Move) {
				if m.To().File() == pawnFile {
					t.Errorf("nifu: pawn drop on file already holding a pawn: %v", m)
				}
			})
		}
		return false
	})
}

// TestUchiFuZume checks P6: a Pawn drop that would deliver checkmate is
// excluded from the legal set, while every other legal move stays
// (spec.md §4.5, §8). White's king at the edge has no flight square and
// no defender that isn't the king itself; Black has a Pawn in hand that
// would mate if dropped directly in front of the king.
func TestUchiFuZume(t *testing.T) {
	// White king cornered at file0/rank0. A Black Silver at (2,1) and
	// Gold at (2,2) cover the king's only flight squares, (1,0) and
	// (1,1); a Black Knight at (1,3) covers (0,1), the square directly
	// in front of the king where the Pawn would drop, so the king
	// cannot recapture it either. None of the three attacks the king's
	// own square, so White is not in check before the drop.
	b, err := ParseSFEN("k8/2S6/2G6/1N7/9/9/9/9/9 b P 1")
	if err != nil {
		t.Fatalf("ParseSFEN: %v", err)
	}

	dropSq := NewSquare(File(0), Rank(1)) // directly in front of the king
	mateByDrop := false
	b.GenerateMoves(func(pm PieceMoves) bool {
		if pm.IsDrop && pm.Piece == Pawn {
			pm.ForEach(func(m Move) {
				if m.To() == dropSq {
					mateByDrop = true
				}
			})
		}
		return false
	})
	if mateByDrop {
		t.Error("uchi-fu-zume: mating pawn drop was offered as a legal move")
	}
}

// TestDiscoveredCheck is the v0.3.2 regression named in spec.md §8 and
// SPEC_FULL.md §5: a Black Rook behind a Black Silver, aimed down a file
// at White's king. The Silver sits one step short of directly checking
// the king itself, so its step straight up the file both reaches a
// square that directly checks the king AND keeps blocking the rook
// behind it — that move must still be reported as a check. Every other
// Silver move vacates the file entirely, exposing the rook's own check
// from behind.
func TestDiscoveredCheck(t *testing.T) {
	b, err := ParseSFEN("4k4/9/4S4/9/9/9/9/9/4R4 b - 1")
	if err != nil {
		t.Fatalf("ParseSFEN: %v", err)
	}

	checking := map[Square]bool{}
	b.GenerateChecks(func(pm PieceMoves) bool {
		if pm.Piece == Silver {
			pm.ForEach(func(m Move) { checking[m.To()] = true })
		}
		return false
	})

	onFileSquare := NewSquare(File(4), Rank(1))  // stepping toward the king, still on the rook's file
	offFileSquare := NewSquare(File(3), Rank(3)) // off the file: exposes the rook behind

	if !checking[onFileSquare] {
		t.Error("expected the on-file step toward the king to be reported as a check")
	}
	if !checking[offFileSquare] {
		t.Error("expected an off-file Silver move to be reported as a discovered check")
	}
}

// TestHasLegalMovesAndCheckmateAgree is a sanity cross-check: IsCheckmate
// is defined purely in terms of HasLegalMoves plus Checkers.
func TestHasLegalMovesAndCheckmateAgree(t *testing.T) {
	b := StartPos()
	if !b.HasLegalMoves() {
		t.Fatal("startpos must have legal moves")
	}
	if b.IsCheckmate() {
		t.Error("startpos is not checkmate")
	}
}
