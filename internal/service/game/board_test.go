package game

import (
	"testing"

	nchess "github.com/corentings/chess/v2"
	corechess "github.com/park285/liquid-pressure-chess/internal/chess"
	"github.com/stretchr/testify/require"
)

func playMoves(t *testing.T, b *Board, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		_, err := b.Apply(mv)
		require.NoError(t, err, "apply %s", mv)
	}
}

func TestNewBoardFeatures(t *testing.T) {
	b := NewBoard()
	require.Equal(t, nchess.White, b.Turn())
	require.Equal(t, 1, b.MoveNumber())
	require.Zero(t, b.Ply())
	require.False(t, b.InCheck())

	f := b.Features()
	require.Equal(t, corechess.Features{PieceCount: 32, LegalMoves: 20}, f)
}

func TestBoardApplyReturnsSAN(t *testing.T) {
	b := NewBoard()
	san, err := b.Apply("e2e4")
	require.NoError(t, err)
	require.Equal(t, "e4", san)

	san, err = b.Apply("E7E5")
	require.NoError(t, err)
	require.Equal(t, "e5", san)

	san, err = b.Apply("g1f3")
	require.NoError(t, err)
	require.Equal(t, "Nf3", san)

	require.Equal(t, []string{"e2e4", "e7e5", "g1f3"}, b.Moves())
	require.Equal(t, []string{"e4", "e5", "Nf3"}, b.SANMoves())
	require.Equal(t, 2, b.MoveNumber())
	require.Equal(t, nchess.Black, b.Turn())
}

func TestBoardApplyIllegal(t *testing.T) {
	b := NewBoard()
	_, err := b.Apply("e2e5")
	require.ErrorIs(t, err, ErrIllegalMove)
	require.Zero(t, b.Ply())
	require.False(t, b.IsLegal(""))
	require.True(t, b.IsLegal(" e2e4 "))
}

func TestBoardCheckmateOutcome(t *testing.T) {
	b := NewBoard()
	playMoves(t, b, "f2f3", "e7e5", "g2g4")

	require.False(t, b.Features().CaptureAvailable)

	san, err := b.Apply("d8h4")
	require.NoError(t, err)
	require.Equal(t, "Qh4#", san)
	require.True(t, b.InCheck())

	outcome, method := b.Outcome()
	require.Equal(t, nchess.BlackWon, outcome)
	require.Equal(t, nchess.Checkmate, method)
	require.Zero(t, b.Features().LegalMoves)

	_, err = b.Apply("e1f2")
	require.ErrorIs(t, err, ErrGameOver)
}

func TestBoardClaimsRepetition(t *testing.T) {
	b := NewBoard()
	playMoves(t, b, "g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8")

	outcome, method := b.Outcome()
	require.Equal(t, nchess.Draw, outcome)
	require.Equal(t, nchess.ThreefoldRepetition, method)
}

func TestBoardAnnotate(t *testing.T) {
	b := NewBoard()
	playMoves(t, b, "e2e4", "d7d5")

	got := b.Annotate([]corechess.Candidate{
		{Move: "E4D5", EvalCP: 40},
		{Move: "a1a8"},
		{Move: "g1f3", EvalCP: 20},
		{Move: "d1h5", EvalCP: -10},
	})
	require.Len(t, got, 3)

	require.Equal(t, "e4d5", got[0].Move)
	require.Equal(t, 0, got[0].Rank)
	require.Equal(t, corechess.Pawn, got[0].Piece)
	require.True(t, got[0].Capture)
	require.True(t, got[0].Important)

	require.Equal(t, "g1f3", got[1].Move)
	require.Equal(t, 1, got[1].Rank)
	require.Equal(t, corechess.Knight, got[1].Piece)
	require.False(t, got[1].Capture)
	require.False(t, got[1].Important)

	require.Equal(t, "d1h5", got[2].Move)
	require.Equal(t, 2, got[2].Rank)
	require.Equal(t, corechess.Queen, got[2].Piece)

	require.True(t, b.Features().CaptureAvailable)
}

func TestBoardAnnotateNearKing(t *testing.T) {
	b := NewBoard()
	playMoves(t, b, "e2e4", "e7e5", "f1c4", "b8c6")

	got := b.Annotate([]corechess.Candidate{{Move: "c4f7"}, {Move: "d1h5"}})
	require.Len(t, got, 2)
	// f7 is next to the king on e8.
	require.True(t, got[0].Important)
	require.True(t, got[0].Capture)
	require.Equal(t, corechess.Bishop, got[0].Piece)
	// h5 is three files from e8.
	require.False(t, got[1].Important)
}

func TestSquareDistance(t *testing.T) {
	require.Equal(t, 2, squareDistance(nchess.E1, nchess.E3))
	require.Equal(t, 7, squareDistance(nchess.A1, nchess.H8))
	require.Equal(t, 1, squareDistance(nchess.F7, nchess.E8))
}

func TestBoardOpening(t *testing.T) {
	b := NewBoard()
	require.True(t, b.Opening().IsZero())

	playMoves(t, b, "e2e4", "e7e5", "g1f3", "b8c6", "f1b5")
	label := b.Opening()
	require.False(t, label.IsZero())
	require.NotEmpty(t, label.Code)
}
