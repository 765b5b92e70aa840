package uci

import (
	"bufio"
	"context"
	"io"
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

func startFake(t *testing.T, script ucitest.Script) *Session {
	t.Helper()
	path, args, env := ucitest.Command(script)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	s, err := NewSession(ctx, Config{
		BinaryPath: path,
		Args:       args,
		Env:        env,
		Options:    Options{Threads: 1, SkillLevel: 20, HashMB: 16, MultiPV: 4},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestParseInfo(t *testing.T) {
	k, cand, ok := parseInfo("info depth 18 seldepth 24 multipv 2 score cp -35 nodes 123 pv g1f3 d7d5 d2d4")
	require.True(t, ok)
	require.Equal(t, 2, k)
	require.Equal(t, "g1f3", cand.Move)
	require.Equal(t, -35, cand.EvalCP)
	require.Equal(t, []string{"g1f3", "d7d5", "d2d4"}, cand.Principal)

	_, cand, ok = parseInfo("info depth 5 score mate -2 pv e1e2")
	require.True(t, ok)
	require.Equal(t, -30000, cand.EvalCP)

	_, _, ok = parseInfo("info string NNUE evaluation enabled")
	require.False(t, ok)
	_, _, ok = parseInfo("info depth 3 pv")
	require.False(t, ok)
}

func TestCollapseCandidatesOrdersByRank(t *testing.T) {
	got := collapseCandidates(map[int]Candidate{
		3: {Move: "c2c4"},
		1: {Move: "e2e4"},
		2: {Move: "d2d4"},
	})
	require.Len(t, got, 3)
	require.Equal(t, "e2e4", got[0].Move)
	require.Equal(t, "d2d4", got[1].Move)
	require.Equal(t, "c2c4", got[2].Move)
	require.Nil(t, collapseCandidates(nil))
}

func TestBuildPositionCommand(t *testing.T) {
	require.Equal(t, "position startpos\n", buildPositionCommand("startpos", nil))
	require.Equal(t, "position startpos moves e2e4 e7e5\n", buildPositionCommand("", []string{"e2e4", "e7e5"}))
	require.Equal(t, "position fen 8/8/8/8/8/8/8/K1k5 w - - 0 1\n", buildPositionCommand("8/8/8/8/8/8/8/K1k5 w - - 0 1", nil))
}

func TestComputeSearchTimeout(t *testing.T) {
	require.Equal(t, 6*time.Second, computeSearchTimeout(Limits{Depth: 1}))
	require.Equal(t, 9*time.Second, computeSearchTimeout(Limits{Depth: 15}))
	require.Equal(t, 30*time.Second, computeSearchTimeout(Limits{Depth: 99}))
}

func TestGoTokens(t *testing.T) {
	tokens, err := GoTokens(Limits{Depth: 12})
	require.NoError(t, err)
	require.Equal(t, []string{"go", "depth", "12"}, tokens)

	tokens, err = GoTokens(Limits{Depth: 8, MoveTimeMillis: 300})
	require.NoError(t, err)
	require.Equal(t, []string{"go", "depth", "8", "movetime", "300"}, tokens)

	_, err = GoTokens(Limits{})
	require.Error(t, err)
}

func TestReadLineKeepsLineAfterTimeout(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	s := &Session{stdout: bufio.NewReader(pr)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.readLine(ctx)
	require.ErrorIs(t, err, context.Canceled)

	go func() {
		_, _ = io.WriteString(pw, "readyok\n")
		_, _ = io.WriteString(pw, "bestmove e2e4\n")
	}()

	line, err := s.readLine(context.Background())
	require.NoError(t, err)
	require.Equal(t, "readyok", line)

	line, err = s.readLine(context.Background())
	require.NoError(t, err)
	require.Equal(t, "bestmove e2e4", line)
}

func TestValidateOptions(t *testing.T) {
	require.NoError(t, validateOptions(Options{SkillLevel: 20, HashMB: 16, MultiPV: 1}))
	require.Error(t, validateOptions(Options{SkillLevel: 21, HashMB: 16, MultiPV: 1}))
	require.Error(t, validateOptions(Options{SkillLevel: 5, HashMB: 0, MultiPV: 1}))
	require.Error(t, validateOptions(Options{SkillLevel: 5, HashMB: 16}))
}

func TestSessionSearchAgainstFakeEngine(t *testing.T) {
	s := startFake(t, ucitest.Script{{"e2e4", "d2d4", "g1f3", "c2c4"}, {"e7e5", "c7c5"}})
	ctx := context.Background()

	resp, err := s.Search(ctx, SearchRequest{FEN: "startpos", MultiPV: 3, Limits: Limits{Depth: 4}})
	require.NoError(t, err)
	require.Equal(t, "e2e4", resp.BestMove)
	require.Len(t, resp.Candidates, 3)
	require.Equal(t, []string{"e2e4", "d2d4", "g1f3"}, []string{resp.Candidates[0].Move, resp.Candidates[1].Move, resp.Candidates[2].Move})
	require.Equal(t, 50, resp.Candidates[0].EvalCP)

	resp, err = s.Search(ctx, SearchRequest{FEN: "startpos", Moves: []string{"e2e4"}, MultiPV: 4, Limits: Limits{Depth: 4}})
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 2)
	require.Equal(t, "e7e5", resp.Candidates[0].Move)
}

func TestSessionSearchNoMoves(t *testing.T) {
	s := startFake(t, nil)
	resp, err := s.Search(context.Background(), SearchRequest{FEN: "startpos", Limits: Limits{Depth: 2}})
	require.NoError(t, err)
	require.Empty(t, resp.Candidates)
	require.Empty(t, resp.BestMove)
}

func TestSessionSearchRequiresLimits(t *testing.T) {
	s := startFake(t, ucitest.Script{{"e2e4"}})
	_, err := s.Search(context.Background(), SearchRequest{FEN: "startpos", MultiPV: 2})
	require.Error(t, err)

	resp, err := s.Search(context.Background(), SearchRequest{FEN: "startpos", MultiPV: 2, Limits: Limits{Depth: 3}})
	require.NoError(t, err)
	require.Equal(t, "e2e4", resp.BestMove)
}

func TestSessionSetSkillLevel(t *testing.T) {
	s := startFake(t, nil)
	ctx := context.Background()

	require.Equal(t, 20, s.SkillLevel())
	require.NoError(t, s.SetSkillLevel(ctx, 17))
	require.Equal(t, 17, s.SkillLevel())
	require.Error(t, s.SetSkillLevel(ctx, 25))
	require.Equal(t, 17, s.SkillLevel())
	require.NoError(t, s.NewGame(ctx))
}

func TestNewSessionRequiresBinary(t *testing.T) {
	_, err := NewSession(context.Background(), Config{Options: Options{HashMB: 16, MultiPV: 1}})
	require.Error(t, err)
}
