package engine

import (
	"fmt"

	"github.com/notnil/chess"
)

// blunderThreshold is the mover-perspective score drop, in centipawns,
// at which a move is called out for losing material.
const blunderThreshold = -300

// MoveAnalysis describes a single move. Scores are centipawns from the
// mover's perspective, so a negative ScoreChange means the move hurt the
// side that played it.
type MoveAnalysis struct {
	Notation    string
	ScoreBefore int
	ScoreAfter  int
	ScoreChange int
	Comments    []string
}

// Analyze evaluates the position before and after the move and annotates
// what the move does. The move must be legal in the position.
func Analyze(pos *chess.Position, move *chess.Move) MoveAnalysis {
	mover := pos.Turn()
	after := pos.Update(move)

	a := MoveAnalysis{
		Notation:    chess.AlgebraicNotation{}.Encode(pos, move),
		ScoreBefore: EvaluateFor(pos, mover),
		ScoreAfter:  EvaluateFor(after, mover),
	}
	a.ScoreChange = a.ScoreAfter - a.ScoreBefore

	if IsCapture(move) {
		a.Comments = append(a.Comments, fmt.Sprintf("captures %s", pieceName(capturedType(pos, move))))
	}
	if after.Status() == chess.Checkmate {
		a.Comments = append(a.Comments, "delivers checkmate")
	} else if move.HasTag(chess.Check) {
		a.Comments = append(a.Comments, "delivers check")
	}
	if move.HasTag(chess.KingSideCastle) {
		a.Comments = append(a.Comments, "castles kingside")
	}
	if move.HasTag(chess.QueenSideCastle) {
		a.Comments = append(a.Comments, "castles queenside")
	}
	if promo := move.Promo(); promo != chess.NoPieceType {
		a.Comments = append(a.Comments, fmt.Sprintf("promotes to %s", pieceName(promo)))
	}
	if a.ScoreChange <= blunderThreshold {
		a.Comments = append(a.Comments, "loses significant material")
	}
	return a
}

// pieceName spells a piece type in lowercase English.
func pieceName(pt chess.PieceType) string {
	switch pt {
	case chess.King:
		return "king"
	case chess.Queen:
		return "queen"
	case chess.Rook:
		return "rook"
	case chess.Bishop:
		return "bishop"
	case chess.Knight:
		return "knight"
	case chess.Pawn:
		return "pawn"
	}
	return "piece"
}
