package chess

import (
	"context"
	"testing"
	"time"

	"github.com/park285/liquid-pressure-chess/internal/chess/uci/ucitest"
	"github.com/stretchr/testify/require"
)

func TestHelperProcess(t *testing.T) {
	if !ucitest.IsHelper() {
		t.Skip("helper process only")
	}
	ucitest.Main()
}

func newFakeEngine(t *testing.T, script ucitest.Script) *Engine {
	t.Helper()
	path, args, env := ucitest.Command(script)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	e, err := NewEngine(ctx, EngineConfig{BinaryPath: path, Args: args, Env: env, SkillLevel: 20}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestEngineTopMovesFollowsMirroredMoves(t *testing.T) {
	e := newFakeEngine(t, ucitest.Script{
		{"e2e4", "d2d4", "g1f3", "c2c4", "b1c3", "f2f4"},
		{"e7e5", "c7c5", "E7E6"},
	})
	ctx := context.Background()

	cands, err := e.TopMoves(ctx, 3)
	require.NoError(t, err)
	require.Len(t, cands, 3)
	for i, c := range cands {
		require.Equal(t, i, c.Rank)
	}
	require.Equal(t, "e2e4", cands[0].Move)

	e.Push("E2E4", " ")
	require.Equal(t, []string{"e2e4"}, e.Moves())

	cands, err = e.TopMoves(ctx, 6)
	require.NoError(t, err)
	require.Len(t, cands, 3)
	require.Equal(t, "e7e5", cands[0].Move)
	require.Equal(t, "e7e6", cands[2].Move)
}

func TestEngineTopMovesEmpty(t *testing.T) {
	e := newFakeEngine(t, nil)
	cands, err := e.TopMoves(context.Background(), 4)
	require.NoError(t, err)
	require.Empty(t, cands)

	_, err = e.TopMoves(context.Background(), 0)
	require.Error(t, err)
}

func TestEngineSetSkillLevel(t *testing.T) {
	e := newFakeEngine(t, nil)
	require.NoError(t, e.SetSkillLevel(context.Background(), 16))
	require.Error(t, e.SetSkillLevel(context.Background(), MaxSkillLevel+1))
}
