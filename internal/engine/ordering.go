package engine

import (
	"sort"

	"github.com/notnil/chess"
)

// OrderMoves arranges moves for alpha-beta efficiency: captures first,
// best victim-versus-attacker trade leading, then checking moves, then
// the rest in their original order. A move that both captures and checks
// sorts with the captures. The input slice is not modified.
func OrderMoves(pos *chess.Position, moves []*chess.Move) []*chess.Move {
	captures := make([]*chess.Move, 0, len(moves))
	checks := make([]*chess.Move, 0, 8)
	quiet := make([]*chess.Move, 0, len(moves))

	for _, move := range moves {
		switch {
		case IsCapture(move):
			captures = append(captures, move)
		case move.HasTag(chess.Check):
			checks = append(checks, move)
		default:
			quiet = append(quiet, move)
		}
	}

	sort.SliceStable(captures, func(i, j int) bool {
		return CaptureScore(pos, captures[i]) > CaptureScore(pos, captures[j])
	})

	ordered := make([]*chess.Move, 0, len(moves))
	ordered = append(ordered, captures...)
	ordered = append(ordered, checks...)
	ordered = append(ordered, quiet...)
	return ordered
}

// CaptureScore ranks a capture most-valuable-victim first, breaking ties
// toward the least valuable attacker: ten times the victim's value minus
// the attacker's. Non-captures score zero.
func CaptureScore(pos *chess.Position, move *chess.Move) int {
	if !IsCapture(move) {
		return 0
	}
	victim := capturedType(pos, move)
	attacker := pos.Board().Piece(move.S1()).Type()
	return pieceValues[victim]*10 - pieceValues[attacker]
}

// capturedType returns the piece type a capture removes. En passant
// removes a pawn from a square other than the destination.
func capturedType(pos *chess.Position, move *chess.Move) chess.PieceType {
	if move.HasTag(chess.EnPassant) {
		return chess.Pawn
	}
	return pos.Board().Piece(move.S2()).Type()
}

// IsCapture reports whether the move removes an enemy piece, counting
// en-passant captures.
func IsCapture(move *chess.Move) bool {
	return move.HasTag(chess.Capture) || move.HasTag(chess.EnPassant)
}
