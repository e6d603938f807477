package shogi

import (
	"fmt"
	"strconv"
	"strings"
)

// StartSFEN is the SFEN string for the standard Shogi starting position.
const StartSFEN = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"

// Handicap (komaochi) starting positions: White's Rook and Bishop, and
// progressively its Lances and Knights, removed from the board, nothing
// placed in either hand (spec.md §6 supplement, via haitaka's
// SFEN_*_HANDICAP constants). Each handicap nests the previous one's
// removals.
const (
	SFEN2PieceHandicap = "lnsgkgsnl/9/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL w - 1"
	SFEN4PieceHandicap = "1nsgkgsn1/9/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL w - 1"
	SFEN6PieceHandicap = "2sgkgs2/9/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL w - 1"
)

// ParseSFEN parses an SFEN string (board/side-to-move/hand[/move-count])
// into a Board (spec.md §6). The move-count field is optional and
// defaults to 1.
func ParseSFEN(sfen string) (*Board, error) {
	fields := strings.Fields(sfen)
	if len(fields) < 3 {
		return nil, sfenErrorf(BadRankCount, "SFEN needs at least 3 fields, got %d", len(fields))
	}

	b := emptyBoard()
	if err := parseSFENPlacement(b, fields[0]); err != nil {
		return nil, err
	}
	switch fields[1] {
	case "b":
		b.sideToMove = Black
	case "w":
		b.sideToMove = White
	default:
		return nil, sfenErrorf(BadSideToMove, "invalid SFEN side to move %q", fields[1])
	}
	if err := parseSFENHand(b, fields[2]); err != nil {
		return nil, err
	}

	b.ply = 1
	if len(fields) > 3 {
		n, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, sfenErrorf(BadPly, "invalid SFEN move count %q", fields[3])
		}
		b.ply = n
	}

	b.tsume = b.kingSq[Black] == NoSquare || b.kingSq[White] == NoSquare
	if !b.tsume {
		if err := checkInventory(b); err != nil {
			return nil, err
		}
	} else if b.kingSq[White] == NoSquare {
		// Tsume requires at least the defending (White) king (spec.md §4.7).
		return nil, sfenErrorf(MissingKing, "tsume position has no White king")
	}

	b.hash = b.FullZobristHash()
	b.recomputeCheckersAndPinned()
	return b, nil
}

// inventoryCap is the full count of each piece kind that physically
// exists in a Shogi set (spec.md I5): 18 Pawns, 4 each of Lance/Knight/
// Silver/Gold, 2 each of Bishop/Rook, 2 Kings. A legal, reachable board
// sums to exactly this per kind, but a hand-authored SFEN is also
// allowed to describe a position with material removed entirely from
// play (handicap games, §6 SFEN*Handicap constants) — those are under
// the cap, never over it. checkInventory therefore only rejects totals
// that exceed what could physically exist, which is the one direction
// that can only mean the SFEN is corrupt rather than merely unusual.
var inventoryCap = map[PieceKind]int{
	Pawn: 18, Lance: 4, Knight: 4, Silver: 4, Gold: 4, Bishop: 2, Rook: 2, King: 2,
}

// checkInventory enforces I1/I5 outside Tsume mode: both kings must be
// present, and no piece kind's board+hand count may exceed the number
// that exists in a physical set, counting a promoted piece toward its
// base kind (a captured piece always reverts to base form, but a
// still-promoted on-board piece is the same physical counter).
func checkInventory(b *Board) error {
	if b.kingSq[Black] == NoSquare || b.kingSq[White] == NoSquare {
		return sfenErrorf(MissingKing, "position is missing a king")
	}
	for pk, cap := range inventoryCap {
		got := b.pieceBB[pk].Count() + b.hand[Black].Count(pk) + b.hand[White].Count(pk)
		if promo := promoted[pk]; promo != NoPieceKind {
			got += b.pieceBB[promo].Count()
		}
		if got > cap {
			return sfenErrorf(InventoryMismatch, "%s: have %d, exceeds the %d that exist", pk, got, cap)
		}
	}
	return nil
}

func parseSFENPlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != NumRanks {
		return sfenErrorf(BadRankCount, "SFEN placement needs %d ranks, got %d", NumRanks, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := Rank(i)
		file := 0
		promote := false
		for _, ch := range rankStr {
			switch {
			case ch == '+':
				promote = true
			case ch >= '1' && ch <= '9':
				if promote {
					return sfenErrorf(BadPiece, "SFEN rank %d has '+' before a digit", i+1)
				}
				file += int(ch - '0')
			default:
				if file >= NumFiles {
					return sfenErrorf(BadFileSum, "SFEN rank %d has too many squares", i+1)
				}
				pk, color, err := sfenPieceLetter(byte(ch))
				if err != nil {
					return sfenErrorf(BadPiece, "rank %d: %v", i+1, err)
				}
				if promote {
					pk = pk.Promote()
					promote = false
				}
				b.place(NewPiece(pk, color), NewSquare(File(file), rank))
				file++
			}
		}
		if file != NumFiles {
			return sfenErrorf(BadFileSum, "SFEN rank %d covers %d files, want %d", i+1, file, NumFiles)
		}
	}
	return nil
}

func parseSFENHand(b *Board, hand string) error {
	if hand == "-" {
		return nil
	}
	count := 0
	for _, ch := range hand {
		if ch >= '0' && ch <= '9' {
			count = count*10 + int(ch-'0')
			continue
		}
		pk, color, err := sfenPieceLetter(byte(ch))
		if err != nil {
			return sfenErrorf(BadHand, "%v", err)
		}
		n := count
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			b.hand[color] = b.hand[color].Add(pk)
		}
		count = 0
	}
	return nil
}

// sfenPieceLetter decodes one SFEN piece letter: uppercase is Black,
// lowercase is White. The '+' promotion prefix, if any, is the caller's
// job (it precedes the letter, and only applies to board placement).
func sfenPieceLetter(ch byte) (PieceKind, Color, error) {
	color := Black
	up := ch
	if ch >= 'a' && ch <= 'z' {
		color = White
		up = ch - ('a' - 'A')
	}
	switch up {
	case 'P':
		return Pawn, color, nil
	case 'L':
		return Lance, color, nil
	case 'N':
		return Knight, color, nil
	case 'S':
		return Silver, color, nil
	case 'G':
		return Gold, color, nil
	case 'B':
		return Bishop, color, nil
	case 'R':
		return Rook, color, nil
	case 'K':
		return King, color, nil
	default:
		return NoPieceKind, NoColor, fmt.Errorf("invalid SFEN piece letter %q", string(ch))
	}
}

// ToSFEN serializes b back into SFEN form (R1: round-trips ParseSFEN).
func (b *Board) ToSFEN() string {
	var sb strings.Builder
	for rank := Rank(0); rank < NumRanks; rank++ {
		empty := 0
		for file := File(0); file < NumFiles; file++ {
			p := b.mailbox[NewSquare(file, rank)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank < NumRanks-1 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.sideToMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}

	sb.WriteByte(' ')
	hand := b.hand[Black].String(Black) + b.hand[White].String(White)
	if hand == "" {
		sb.WriteByte('-')
	} else {
		sb.WriteString(hand)
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.ply))
	return sb.String()
}
