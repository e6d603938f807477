package shogi

import "testing"

// TestHandAddRemoveRoundTrip exercises every droppable kind through the
// packed Hand encoding, the same Add-then-Remove round trip the teacher
// runs on its own packed structures.
func TestHandAddRemoveRoundTrip(t *testing.T) {
	var h Hand
	for _, pk := range handKinds {
		h = h.Add(pk)
	}
	for _, pk := range handKinds {
		if h.Count(pk) != 1 {
			t.Errorf("Count(%s) = %d, want 1", pk, h.Count(pk))
		}
	}
	for _, pk := range handKinds {
		h = h.Remove(pk)
	}
	if !h.IsEmpty() {
		t.Errorf("hand not empty after removing every added kind: %v", h)
	}
}

// TestHandAddCapsAtHandCap checks that Add silently stops at HandCap
// instead of wrapping the packed 5-bit slot, per spec.md's per-kind caps.
func TestHandAddCapsAtHandCap(t *testing.T) {
	for i, pk := range handKinds {
		var h Hand
		for n := 0; n < HandCap[i]+5; n++ {
			h = h.Add(pk)
		}
		if got := h.Count(pk); got != HandCap[i] {
			t.Errorf("%s: Count() = %d after overfilling, want cap %d", pk, got, HandCap[i])
		}
	}
}

// TestHandAddUnpromotesCapturedPieces checks that a captured promoted
// piece always enters hand as its base kind (a captured Tokin becomes a
// droppable Pawn, spec.md §4.2).
func TestHandAddUnpromotesCapturedPieces(t *testing.T) {
	var h Hand
	h = h.Add(ProPawn)
	if h.Count(Pawn) != 1 {
		t.Errorf("adding a ProPawn should count as a Pawn, got Count(Pawn)=%d", h.Count(Pawn))
	}
	if h.Count(ProPawn) != 1 {
		t.Errorf("Count(ProPawn) should read through to the base slot, got %d", h.Count(ProPawn))
	}
}

// TestHandKingNeverEntersHand checks that King, which has no hand slot,
// is a silent no-op for Add and reads as zero from Count rather than a
// panic.
func TestHandKingNeverEntersHand(t *testing.T) {
	var h Hand
	h = h.Add(King)
	if !h.IsEmpty() {
		t.Error("adding a King should be a no-op, Hand is not empty")
	}
	if h.Count(King) != 0 {
		t.Errorf("Count(King) = %d, want 0", h.Count(King))
	}
}

// TestHandStringOmitsCountOfOne checks the SFEN hand-rendering convention:
// a lone piece renders as just its letter, a multiple renders with a
// leading count.
func TestHandStringOmitsCountOfOne(t *testing.T) {
	var h Hand
	h = h.Add(Rook)
	if got, want := h.String(Black), "R"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	h = h.Add(Pawn).Add(Pawn)
	if got, want := h.String(Black), "R2P"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
