package shogi

import "fmt"

// SfenErrorKind classifies why an SFEN string failed to parse (spec.md
// §7). Callers that only care about "parse failed" can ignore it and
// use SfenError as a plain error; callers building a UI around the
// parser can switch on Kind for a precise diagnostic.
type SfenErrorKind uint8

const (
	BadRankCount SfenErrorKind = iota
	BadFileSum
	BadPiece
	BadSideToMove
	BadHand
	BadPly
	InventoryMismatch
	MissingKing
)

func (k SfenErrorKind) String() string {
	switch k {
	case BadRankCount:
		return "BadRankCount"
	case BadFileSum:
		return "BadFileSum"
	case BadPiece:
		return "BadPiece"
	case BadSideToMove:
		return "BadSideToMove"
	case BadHand:
		return "BadHand"
	case BadPly:
		return "BadPly"
	case InventoryMismatch:
		return "InventoryMismatch"
	case MissingKing:
		return "MissingKing"
	default:
		return "SfenError"
	}
}

// SfenError is returned by ParseSFEN. It carries a machine-checkable
// Kind alongside a human-readable message, mirroring the teacher's
// plain fmt.Errorf style (fen.go) but adding the Kind field spec.md §7
// names explicitly.
type SfenError struct {
	Kind SfenErrorKind
	msg  string
}

func (e *SfenError) Error() string { return "shogi: " + e.msg }

func sfenErrorf(kind SfenErrorKind, format string, args ...any) *SfenError {
	return &SfenError{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// MoveErrorReason classifies why Play rejected a move (spec.md §7).
type MoveErrorReason uint8

const (
	NotOnBoard MoveErrorReason = iota
	EmptyFromSquare
	WrongColor
	BlockedByOwnPiece
	LeavesKingInCheck
	Nifu
	UchiFuZume
	LastRankDrop
	CannotPromoteReason
	MustPromoteReason
	EmptyHand
)

func (r MoveErrorReason) String() string {
	switch r {
	case NotOnBoard:
		return "NotOnBoard"
	case EmptyFromSquare:
		return "EmptyFromSquare"
	case WrongColor:
		return "WrongColor"
	case BlockedByOwnPiece:
		return "BlockedByOwnPiece"
	case LeavesKingInCheck:
		return "LeavesKingInCheck"
	case Nifu:
		return "Nifu"
	case UchiFuZume:
		return "UchiFuZume"
	case LastRankDrop:
		return "LastRankDrop"
	case CannotPromoteReason:
		return "CannotPromote"
	case MustPromoteReason:
		return "MustPromote"
	case EmptyHand:
		return "EmptyHand"
	default:
		return "MoveError"
	}
}

// MoveError is returned by Play when m is not structurally acceptable
// against the current board (spec.md §7, §9 Open Questions: Play
// returns an error rather than panicking, see position.go's Play doc).
type MoveError struct {
	Reason MoveErrorReason
	Move   Move
	msg    string
}

func (e *MoveError) Error() string { return "shogi: " + e.msg }

func moveErrorf(reason MoveErrorReason, m Move, format string, args ...any) *MoveError {
	return &MoveError{Reason: reason, Move: m, msg: fmt.Sprintf(format, args...)}
}
