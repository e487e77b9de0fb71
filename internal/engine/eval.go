// Package engine implements the chess move search and evaluation core.
package engine

import (
	"strings"

	"github.com/notnil/chess"
)

// Piece values in centipawns
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 20000
)

// MateScore is the evaluation magnitude of a checkmated position.
const MateScore = 20000

// pieceValues indexed by chess.PieceType (King=1 .. Pawn=6).
var pieceValues = [7]int{0, KingValue, QueenValue, RookValue, BishopValue, KnightValue, PawnValue}

// Evaluation weights
const (
	mobilityWeight       = 2  // Per legal-move count difference
	checkPenalty         = 50 // Side to move is in check
	kingsideCastleBonus  = 20 // Retained kingside castling rights
	queensideCastleBonus = 15 // Retained queenside castling rights
	doubledPawnPenalty   = 20 // Per extra pawn sharing a file
	isolatedPawnPenalty  = 15 // Per pawn with no friendly pawn on adjacent files

	// Endgame threshold: queens off the board, or at most this many
	// knights, bishops and rooks remaining in total.
	endgameMinorRookLimit = 6
)

// Piece-Square Tables (PST) for positional evaluation
// Values are from White's perspective; mirrored for Black

// Pawn PST - encourages central control and advancement
var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

// Knight PST - encourages central positioning
var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

// Bishop PST - encourages central diagonals
var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

// Rook PST - encourages 7th rank and open files
var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

// Queen PST - slight central preference
var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// King PST (middlegame) - encourages castling
var kingMidgamePST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

// King PST (endgame) - king should be active
var kingEndgamePST = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

// Non-king PSTs indexed by chess.PieceType; the king picks its table by
// game phase.
var psts = [7][64]int{
	chess.Queen:  queenPST,
	chess.Rook:   rookPST,
	chess.Bishop: bishopPST,
	chess.Knight: knightPST,
	chess.Pawn:   pawnPST,
}

// Breakdown itemizes the evaluation factors, all in centipawns from
// White's perspective. Total is the sum of the five factors, or the bare
// terminal score with all factors zero.
type Breakdown struct {
	Material      int
	Positional    int
	Mobility      int
	KingSafety    int
	PawnStructure int
	Total         int
}

// Evaluate returns the static evaluation of the position in centipawns
// from White's perspective. Checkmate against the side to move scores
// -MateScore for White and +MateScore for Black; stalemate and dead
// draws score 0.
func Evaluate(pos *chess.Position) int {
	return EvaluateBreakdown(pos).Total
}

// EvaluateFor returns the evaluation from the given side's perspective.
func EvaluateFor(pos *chess.Position, c chess.Color) int {
	score := Evaluate(pos)
	if c == chess.Black {
		score = -score
	}
	return score
}

// EvaluateBreakdown returns the evaluation split into its factors.
func EvaluateBreakdown(pos *chess.Position) Breakdown {
	switch pos.Status() {
	case chess.Checkmate:
		if pos.Turn() == chess.White {
			return Breakdown{Total: -MateScore}
		}
		return Breakdown{Total: MateScore}
	case chess.Stalemate:
		return Breakdown{}
	}

	board := pos.Board()
	if insufficientMaterial(board) {
		return Breakdown{}
	}

	var b Breakdown
	b.Material, b.Positional = evaluateMaterialAndPosition(board, isEndgame(board))

	// Mobility and check detection both need the answer to "what could
	// the other side do here"; one side-swapped position serves both.
	shadow := flipTurn(pos)
	b.Mobility = evaluateMobility(pos, shadow)
	b.KingSafety = evaluateKingSafety(pos, shadow)

	b.PawnStructure = evaluatePawnStructure(board)
	b.Total = b.Material + b.Positional + b.Mobility + b.KingSafety + b.PawnStructure
	return b
}

// evaluateMaterialAndPosition sums piece values and piece-square bonuses
// for both sides. White pieces index the tables directly; Black pieces
// use the vertical mirror.
func evaluateMaterialAndPosition(board *chess.Board, endgame bool) (material, positional int) {
	for sq := 0; sq < 64; sq++ {
		piece := board.Piece(chess.Square(sq))
		if piece == chess.NoPiece {
			continue
		}

		sign := 1
		pstSq := sq
		if piece.Color() == chess.Black {
			sign = -1
			pstSq = sq ^ 56 // Mirror for black
		}

		pt := piece.Type()
		material += sign * pieceValues[pt]

		if pt == chess.King {
			if endgame {
				positional += sign * kingEndgamePST[pstSq]
			} else {
				positional += sign * kingMidgamePST[pstSq]
			}
		} else {
			positional += sign * psts[pt][pstSq]
		}
	}
	return material, positional
}

// evaluateMobility scores the legal-move count difference between the
// sides. The side-swapped shadow position supplies the count for the
// side not on move.
func evaluateMobility(pos, shadow *chess.Position) int {
	moverMoves := len(pos.ValidMoves())
	otherMoves := 0
	if shadow != nil {
		otherMoves = len(shadow.ValidMoves())
	}

	white, black := moverMoves, otherMoves
	if pos.Turn() == chess.Black {
		white, black = otherMoves, moverMoves
	}
	return (white - black) * mobilityWeight
}

// evaluateKingSafety penalizes the checked side and rewards retained
// castling rights.
func evaluateKingSafety(pos, shadow *chess.Position) int {
	score := 0

	if inCheck(pos, shadow) {
		if pos.Turn() == chess.White {
			score -= checkPenalty
		} else {
			score += checkPenalty
		}
	}

	rights := pos.CastleRights()
	if rights.CanCastle(chess.White, chess.KingSide) {
		score += kingsideCastleBonus
	}
	if rights.CanCastle(chess.White, chess.QueenSide) {
		score += queensideCastleBonus
	}
	if rights.CanCastle(chess.Black, chess.KingSide) {
		score -= kingsideCastleBonus
	}
	if rights.CanCastle(chess.Black, chess.QueenSide) {
		score -= queensideCastleBonus
	}

	return score
}

// evaluatePawnStructure penalizes doubled and isolated pawns for both
// sides.
func evaluatePawnStructure(board *chess.Board) int {
	var whiteFiles, blackFiles [8]int
	for sq := 0; sq < 64; sq++ {
		piece := board.Piece(chess.Square(sq))
		if piece.Type() != chess.Pawn {
			continue
		}
		if piece.Color() == chess.White {
			whiteFiles[sq%8]++
		} else {
			blackFiles[sq%8]++
		}
	}
	return pawnPenalties(whiteFiles) - pawnPenalties(blackFiles)
}

// pawnPenalties totals the doubled and isolated pawn penalties for one
// side's per-file pawn counts. The result is never positive.
func pawnPenalties(files [8]int) int {
	score := 0
	for f := 0; f < 8; f++ {
		if files[f] == 0 {
			continue
		}
		if files[f] > 1 {
			score -= doubledPawnPenalty * (files[f] - 1)
		}

		isolated := true
		if f > 0 && files[f-1] > 0 {
			isolated = false
		}
		if f < 7 && files[f+1] > 0 {
			isolated = false
		}
		if isolated {
			score -= isolatedPawnPenalty * files[f]
		}
	}
	return score
}

// isEndgame reports whether the king should use its endgame table.
func isEndgame(board *chess.Board) bool {
	queens, minorsAndRooks := 0, 0
	for sq := 0; sq < 64; sq++ {
		switch board.Piece(chess.Square(sq)).Type() {
		case chess.Queen:
			queens++
		case chess.Rook, chess.Bishop, chess.Knight:
			minorsAndRooks++
		}
	}
	return queens == 0 || minorsAndRooks <= endgameMinorRookLimit
}

// insufficientMaterial reports dead draws the evaluator scores as zero:
// bare kings, a lone minor piece, or bishops confined to one square color.
func insufficientMaterial(board *chess.Board) bool {
	knights, lightBishops, darkBishops := 0, 0, 0
	for sq := 0; sq < 64; sq++ {
		switch board.Piece(chess.Square(sq)).Type() {
		case chess.NoPieceType, chess.King:
		case chess.Knight:
			knights++
		case chess.Bishop:
			if (sq/8+sq%8)%2 == 0 {
				darkBishops++
			} else {
				lightBishops++
			}
		default:
			// A pawn, rook or queen can still force mate.
			return false
		}
	}

	if knights+lightBishops+darkBishops <= 1 {
		return true
	}
	return knights == 0 && (lightBishops == 0 || darkBishops == 0)
}

// inCheck reports whether the side to move is in check: some reply of the
// side-swapped position reaches the mover's king square.
func inCheck(pos, shadow *chess.Position) bool {
	if shadow == nil {
		return false
	}
	king := kingSquare(pos.Board(), pos.Turn())
	for _, move := range shadow.ValidMoves() {
		if move.S2() == king {
			return true
		}
	}
	return false
}

// kingSquare locates the king of the given color.
func kingSquare(board *chess.Board, c chess.Color) chess.Square {
	for sq := 0; sq < 64; sq++ {
		piece := board.Piece(chess.Square(sq))
		if piece.Type() == chess.King && piece.Color() == c {
			return chess.Square(sq)
		}
	}
	return chess.NoSquare
}

// flipTurn rebuilds the position with the side to move swapped and the
// en-passant square cleared. Asking the resulting position for its legal
// moves answers what the other side could do from here.
func flipTurn(pos *chess.Position) *chess.Position {
	fields := strings.Fields(pos.String())
	if len(fields) != 6 {
		return nil
	}

	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	fields[3] = "-"

	flipped := &chess.Position{}
	if err := flipped.UnmarshalText([]byte(strings.Join(fields, " "))); err != nil {
		return nil
	}
	return flipped
}
