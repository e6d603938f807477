package shogi

import "testing"

// TestDirectionalShiftsDontWrap checks the edge masks that keep North/
// South/East/West from bleeding a bit across to the opposite side of the
// board (the 128-bit analogue of the teacher's file-A/file-H wrap guards).
func TestDirectionalShiftsDontWrap(t *testing.T) {
	corner := SquareBB(NewSquare(File(0), Rank(0)))
	if corner.North().Any() {
		t.Error("North() off rank 0 should vanish, not wrap to rank 8")
	}
	if corner.West().Any() {
		t.Error("West() off file 0 should vanish, not wrap to file 8")
	}

	farCorner := SquareBB(NewSquare(File(8), Rank(8)))
	if farCorner.South().Any() {
		t.Error("South() off rank 8 should vanish, not wrap to rank 0")
	}
	if farCorner.East().Any() {
		t.Error("East() off file 8 should vanish, not wrap to file 0")
	}
}

// TestSetClearHasRoundTrip exercises the basic single-bit operations
// across all 81 squares, including the 17 squares living in the Hi word.
func TestSetClearHasRoundTrip(t *testing.T) {
	for sq := Square(0); sq < NumSquares; sq++ {
		bb := Empty.Set(sq)
		if !bb.Has(sq) {
			t.Fatalf("Set(%v) then Has(%v) = false", sq, sq)
		}
		if bb.Count() != 1 {
			t.Fatalf("Set(%v) produced %d bits, want 1", sq, bb.Count())
		}
		if bb.Clear(sq).Any() {
			t.Fatalf("Clear(%v) left bits set", sq)
		}
	}
}

// TestForEachVisitsEverySetBit cross-checks ForEach/Next against Count, the
// same kind of self-consistency check the teacher runs on its bitboard
// iterators.
func TestForEachVisitsEverySetBit(t *testing.T) {
	bb := fileMask[0].Or(fileMask[8]).Or(rankMask[4])
	want := bb.Count()

	got := 0
	bb.ForEach(func(Square) { got++ })
	if got != want {
		t.Errorf("ForEach visited %d squares, Count() says %d", got, want)
	}

	got = 0
	for cur := bb; cur.Any(); {
		cur.Next()
		got++
	}
	if got != want {
		t.Errorf("Next() loop visited %d squares, Count() says %d", got, want)
	}
}

// TestUniverseHasNoStrayHighBits guards the Hi-word mask: NumSquares=81
// leaves 17 live bits in Hi, and Not()/Universe must never set the 47
// unused bits above them, or Count()/Equal() would silently disagree with
// a hand-built mask.
func TestUniverseHasNoStrayHighBits(t *testing.T) {
	if got := Universe.Count(); got != NumSquares {
		t.Errorf("Universe.Count() = %d, want %d", got, NumSquares)
	}
	if got := Empty.Not().Count(); got != NumSquares {
		t.Errorf("Empty.Not().Count() = %d, want %d", got, NumSquares)
	}
}
