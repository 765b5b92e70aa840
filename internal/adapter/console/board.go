package console

import (
	"strings"

	nchess "github.com/corentings/chess/v2"
)

var (
	boardRanks = []nchess.Rank{nchess.Rank8, nchess.Rank7, nchess.Rank6, nchess.Rank5, nchess.Rank4, nchess.Rank3, nchess.Rank2, nchess.Rank1}
	boardFiles = []nchess.File{nchess.FileA, nchess.FileB, nchess.FileC, nchess.FileD, nchess.FileE, nchess.FileF, nchess.FileG, nchess.FileH}
)

var pieceGlyphs = map[nchess.Piece]string{
	nchess.WhiteKing:   "♔",
	nchess.WhiteQueen:  "♕",
	nchess.WhiteRook:   "♖",
	nchess.WhiteBishop: "♗",
	nchess.WhiteKnight: "♘",
	nchess.WhitePawn:   "♙",
	nchess.BlackKing:   "♚",
	nchess.BlackQueen:  "♛",
	nchess.BlackRook:   "♜",
	nchess.BlackBishop: "♝",
	nchess.BlackKnight: "♞",
	nchess.BlackPawn:   "♟",
}

const emptySquare = "."

// RenderBoard draws the position as eight lines of Unicode glyphs with the
// viewing side's pieces at the bottom.
func RenderBoard(pos *nchess.Position, view nchess.Color) string {
	if pos == nil {
		return ""
	}
	board := pos.Board()
	var sb strings.Builder
	ranks, files := boardRanks, boardFiles
	if view == nchess.Black {
		ranks, files = reversed(boardRanks), reversed(boardFiles)
	}
	row := make([]string, 0, len(files))
	for _, rank := range ranks {
		row = row[:0]
		for _, file := range files {
			row = append(row, glyph(board.Piece(nchess.NewSquare(file, rank))))
		}
		sb.WriteString(strings.Join(row, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func glyph(p nchess.Piece) string {
	if g, ok := pieceGlyphs[p]; ok {
		return g
	}
	return emptySquare
}

func reversed[T any](in []T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
