package shogi

import "fmt"

// handBits is how many bits each hand slot gets in the packed encoding: 5
// bits covers the largest cap (18 pawns).
const handBits = 5
const handSlotMask = (1 << handBits) - 1

// Hand is a per-color inventory of captured pieces available to drop. It is
// stored as a single packed uint64, five bits per kind in handKinds order,
// so copying or comparing a Hand is a single machine word operation.
type Hand uint64

// handIndex maps a piece kind to its slot in the packed encoding, or -1 if
// the kind can't be held in hand (King, or any promoted kind — captures
// always revert to the unpromoted form before entering hand).
var handIndex [NumPieceKinds]int

func init() {
	for i := range handIndex {
		handIndex[i] = -1
	}
	for i, pk := range handKinds {
		handIndex[pk] = i
	}
}

// Count returns how many of pk are held. A promoted kind reads the count
// of its base kind; King, which has no hand slot, always reads 0.
func (h Hand) Count(pk PieceKind) int {
	i := handIndex[pk.Unpromote()]
	if i < 0 {
		return 0
	}
	return int((uint64(h) >> uint(i*handBits)) & handSlotMask)
}

// Add returns h with one more pk (automatically unpromoted and capped at
// HandCap). Adding a kind that cannot be held in hand returns h unchanged.
func (h Hand) Add(pk PieceKind) Hand {
	i := handIndex[pk.Unpromote()]
	if i < 0 {
		return h
	}
	n := h.Count(pk)
	if n >= HandCap[i] {
		return h
	}
	return h + Hand(1<<uint(i*handBits))
}

// Remove returns h with one fewer pk. Removing from an empty slot returns h
// unchanged (callers are expected to check Count first).
func (h Hand) Remove(pk PieceKind) Hand {
	i := handIndex[pk.Unpromote()]
	if i < 0 || h.Count(pk) == 0 {
		return h
	}
	return h - Hand(1<<uint(i*handBits))
}

// IsEmpty reports whether the hand holds no pieces at all.
func (h Hand) IsEmpty() bool { return h == 0 }

// Kinds returns the droppable piece kinds currently present in h, in
// handKinds order.
func (h Hand) Kinds() []PieceKind {
	var kinds []PieceKind
	for _, pk := range handKinds {
		if h.Count(pk) > 0 {
			kinds = append(kinds, pk)
		}
	}
	return kinds
}

// String renders the hand in SFEN order (Rook, Bishop, Gold, Silver,
// Knight, Lance, Pawn counts, each followed by its letter, count omitted
// when it is 1), e.g. "2P" for two pawns, "RB" for one rook and one bishop.
func (h Hand) String(c Color) string {
	s := ""
	for i := NumHandKinds - 1; i >= 0; i-- {
		pk := handKinds[i]
		n := h.Count(pk)
		if n == 0 {
			continue
		}
		if n > 1 {
			s += fmt.Sprintf("%d", n)
		}
		s += NewPiece(pk, c).String()
	}
	return s
}
