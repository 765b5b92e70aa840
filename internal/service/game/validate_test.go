package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOpponentMove(t *testing.T) {
	b := NewBoard()
	cases := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "e2e4", want: "e2e4"},
		{in: "  G1F3 ", want: "g1f3"},
		{in: "quit", wantErr: ErrQuit},
		{in: " QUIT ", wantErr: ErrQuit},
		{in: "", wantErr: ErrMalformedMove},
		{in: "e4", wantErr: ErrMalformedMove},
		{in: "e2-e4", wantErr: ErrMalformedMove},
		{in: "i2i4", wantErr: ErrMalformedMove},
		{in: "e2i1", wantErr: ErrMalformedMove},
		{in: "e2e9", wantErr: ErrMalformedMove},
		{in: "e7e8k", wantErr: ErrMalformedMove},
		{in: "e2e5", wantErr: ErrIllegalMove},
		{in: "e7e5", wantErr: ErrIllegalMove},
	}
	for _, tc := range cases {
		got, err := ParseOpponentMove(b, tc.in)
		if tc.wantErr != nil {
			require.ErrorIs(t, err, tc.wantErr, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		require.Equal(t, tc.want, got)
	}
	require.Zero(t, b.Ply())
}

func TestParseOpponentMovePromotion(t *testing.T) {
	b := NewBoard()
	playMoves(t, b, "a2a4", "b7b5", "a4b5", "a7a6", "b5a6", "c8b7", "a6a7", "b7c6")

	got, err := ParseOpponentMove(b, "a7b8q")
	require.NoError(t, err)
	require.Equal(t, "a7b8q", got)

	_, err = ParseOpponentMove(b, "a7b8")
	require.ErrorIs(t, err, ErrIllegalMove)
}
