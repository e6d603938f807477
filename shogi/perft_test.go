package shogi

import "testing"

// perft counts leaf nodes at the given depth, the standard way to cross-
// check move generation completeness and legality (spec.md §8, P3/P4).
// Grounded on the teacher's own perft(p, depth) in perft_test.go,
// generalized from MakeMove/UnmakeMove to Play/Unplay.
func perft(b *Board, depth int) int64 {
	if depth == 0 {
		return 1
	}

	var moves []Move
	b.GenerateMoves(func(pm PieceMoves) bool {
		pm.ForEach(func(m Move) { moves = append(moves, m) })
		return false
	})

	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		undo, err := b.Play(m)
		if err != nil {
			continue
		}
		nodes += perft(b, depth-1)
		b.Unplay(undo)
	}
	return nodes
}

// TestPerftStartingPosition checks the literal perft values named in
// spec.md §8: 30 legal moves for Black at depth 1 from startpos.
func TestPerftStartingPosition(t *testing.T) {
	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 30},
		{2, 900},
		{3, 25470},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			b := StartPos()
			got := perft(b, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftBareKings is the spec's minimal scenario (spec.md §8): two
// bare kings with empty hands, both kept four ranks apart and away from
// every board edge so all 8 of the mover's step squares are on-board
// and unattacked; the count is exactly 8 for the side to move.
func TestPerftBareKings(t *testing.T) {
	b, err := ParseSFEN("9/9/4k4/9/9/9/4K4/9/9 b - 1")
	if err != nil {
		t.Fatalf("ParseSFEN: %v", err)
	}
	if got := perft(b, 1); got != 8 {
		t.Errorf("perft(1) = %d, want 8", got)
	}
}

// TestPerftHandicaps sanity-checks that the named handicap starting
// positions parse and produce a nonzero, finite move count (a much
// weaker check than the full-position literal values above, since no
// independent reference count is recorded for them).
func TestPerftHandicaps(t *testing.T) {
	for _, sfen := range []string{SFEN2PieceHandicap, SFEN4PieceHandicap, SFEN6PieceHandicap} {
		b, err := ParseSFEN(sfen)
		if err != nil {
			t.Fatalf("ParseSFEN(%q): %v", sfen, err)
		}
		if got := perft(b, 1); got == 0 {
			t.Errorf("perft(1) for %q = 0, want > 0", sfen)
		}
	}
}

// TestPerftLeavesNoCheckInvariant re-derives (P3) along the same nodes
// perft visits: every move GenerateMoves offers must leave the mover's
// own king safe once played.
func TestPerftLeavesNoCheckInvariant(t *testing.T) {
	b := StartPos()
	var walk func(depth int)
	walk = func(depth int) {
		if depth == 0 {
			return
		}
		var moves []Move
		b.GenerateMoves(func(pm PieceMoves) bool {
			pm.ForEach(func(m Move) { moves = append(moves, m) })
			return false
		})
		for _, m := range moves {
			mover := b.SideToMove()
			undo, err := b.Play(m)
			if err != nil {
				t.Fatalf("Play(%v): %v", m, err)
			}
			if b.attackersTo(b.King(mover), mover, b.occupied()).Any() {
				t.Errorf("move %v leaves %s king in check", m, mover)
			}
			walk(depth - 1)
			b.Unplay(undo)
		}
	}
	walk(2)
}
