package game

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
	corechess "github.com/park285/liquid-pressure-chess/internal/chess"
	"github.com/park285/liquid-pressure-chess/internal/chess/openingbook"
)

const kingZoneRadius = 2

var centerSquares = map[nchess.Square]struct{}{
	nchess.D4: {},
	nchess.E4: {},
	nchess.D5: {},
	nchess.E5: {},
}

// Board is the rules collaborator: it owns the position and answers legality
// and termination questions.
type Board struct {
	game *nchess.Game
}

func NewBoard() *Board {
	return &Board{game: nchess.NewGame()}
}

func (b *Board) Position() *nchess.Position {
	return b.game.Position()
}

func (b *Board) Turn() nchess.Color {
	return b.game.Position().Turn()
}

func (b *Board) FEN() string {
	return b.game.FEN()
}

// MoveNumber is the full-move number of the side to move, starting at 1.
func (b *Board) MoveNumber() int {
	return len(b.game.Moves())/2 + 1
}

func (b *Board) Ply() int {
	return len(b.game.Moves())
}

func (b *Board) Moves() []string {
	moves := b.game.Moves()
	out := make([]string, 0, len(moves))
	for _, mv := range moves {
		out = append(out, strings.ToLower(mv.String()))
	}
	return out
}

func (b *Board) SANMoves() []string {
	positions := b.game.Positions()
	moves := b.game.Moves()
	notation := nchess.AlgebraicNotation{}
	out := make([]string, len(moves))
	for i, mv := range moves {
		if i < len(positions) {
			out[i] = notation.Encode(positions[i], mv)
		}
	}
	return out
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool {
	moves := b.game.Moves()
	if len(moves) == 0 {
		return false
	}
	return moves[len(moves)-1].HasTag(nchess.Check)
}

func (b *Board) IsLegal(uci string) bool {
	_, ok := b.lookup(uci)
	return ok
}

type legalInfo struct {
	from    nchess.Square
	to      nchess.Square
	capture bool
}

func (b *Board) lookup(uci string) (legalInfo, bool) {
	text := strings.ToLower(strings.TrimSpace(uci))
	if text == "" {
		return legalInfo{}, false
	}
	for _, mv := range b.game.ValidMoves() {
		if strings.ToLower(mv.String()) != text {
			continue
		}
		return legalInfo{
			from:    mv.S1(),
			to:      mv.S2(),
			capture: mv.HasTag(nchess.Capture) || mv.HasTag(nchess.EnPassant),
		}, true
	}
	return legalInfo{}, false
}

// Apply plays a legal UCI move and returns its SAN.
func (b *Board) Apply(uci string) (string, error) {
	text := strings.ToLower(strings.TrimSpace(uci))
	if b.game.Outcome() != nchess.NoOutcome {
		return "", ErrGameOver
	}
	if !b.IsLegal(text) {
		return "", fmt.Errorf("%w: %s", ErrIllegalMove, text)
	}
	before := b.game.Position()
	if err := b.game.PushNotationMove(text, nchess.UCINotation{}, nil); err != nil {
		return "", fmt.Errorf("apply move %s: %w", text, err)
	}
	moves := b.game.Moves()
	if len(moves) == 0 {
		return "", fmt.Errorf("apply move %s: move history empty", text)
	}
	return nchess.AlgebraicNotation{}.Encode(before, moves[len(moves)-1]), nil
}

func (b *Board) Features() corechess.Features {
	f := corechess.Features{InCheck: b.InCheck()}
	for _, mv := range b.game.ValidMoves() {
		f.LegalMoves++
		if mv.HasTag(nchess.Capture) || mv.HasTag(nchess.EnPassant) {
			f.CaptureAvailable = true
		}
	}
	board := b.game.Position().Board()
	for file := nchess.FileA; file <= nchess.FileH; file++ {
		for rank := nchess.Rank1; rank <= nchess.Rank8; rank++ {
			if board.Piece(nchess.NewSquare(file, rank)) != nchess.NoPiece {
				f.PieceCount++
			}
		}
	}
	return f
}

// Annotate attaches piece, capture and target information to engine
// suggestions. Suggestions that are not legal here are dropped and the
// remaining ones are re-ranked in order.
func (b *Board) Annotate(candidates []corechess.Candidate) []corechess.Candidate {
	board := b.game.Position().Board()
	enemyKing, hasKing := b.kingSquare(b.Turn().Other())

	out := make([]corechess.Candidate, 0, len(candidates))
	for _, c := range candidates {
		info, ok := b.lookup(c.Move)
		if !ok {
			continue
		}
		c.Move = strings.ToLower(strings.TrimSpace(c.Move))
		c.Rank = len(out)
		c.Piece = pieceKind(board.Piece(info.from).Type())
		c.Capture = info.capture
		_, central := centerSquares[info.to]
		c.Important = central || (hasKing && squareDistance(info.to, enemyKing) <= kingZoneRadius)
		out = append(out, c)
	}
	return out
}

func (b *Board) kingSquare(color nchess.Color) (nchess.Square, bool) {
	board := b.game.Position().Board()
	for file := nchess.FileA; file <= nchess.FileH; file++ {
		for rank := nchess.Rank1; rank <= nchess.Rank8; rank++ {
			sq := nchess.NewSquare(file, rank)
			piece := board.Piece(sq)
			if piece.Type() == nchess.King && piece.Color() == color {
				return sq, true
			}
		}
	}
	return nchess.NoSquare, false
}

// Outcome reports the game result, claiming fifty-move and threefold
// repetition draws as soon as they become available.
func (b *Board) Outcome() (nchess.Outcome, nchess.Method) {
	if outcome := b.game.Outcome(); outcome != nchess.NoOutcome {
		return outcome, b.game.Method()
	}
	for _, method := range b.game.EligibleDraws() {
		if method != nchess.FiftyMoveRule && method != nchess.ThreefoldRepetition {
			continue
		}
		if err := b.game.Draw(method); err == nil {
			return b.game.Outcome(), b.game.Method()
		}
	}
	return nchess.NoOutcome, nchess.NoMethod
}

func (b *Board) Opening() openingbook.Label {
	return openingbook.Classify(b.game)
}

func pieceKind(pt nchess.PieceType) corechess.PieceKind {
	switch pt {
	case nchess.Pawn:
		return corechess.Pawn
	case nchess.Knight:
		return corechess.Knight
	case nchess.Bishop:
		return corechess.Bishop
	case nchess.Rook:
		return corechess.Rook
	case nchess.Queen:
		return corechess.Queen
	case nchess.King:
		return corechess.King
	default:
		return corechess.NoPiece
	}
}

// squareDistance is the king-move (Chebyshev) distance between two squares.
func squareDistance(a, b nchess.Square) int {
	df := int(a.File()) - int(b.File())
	dr := int(a.Rank()) - int(b.Rank())
	return max(abs(df), abs(dr))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
