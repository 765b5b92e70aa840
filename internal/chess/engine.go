package chess

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/park285/liquid-pressure-chess/internal/chess/uci"
	"go.uber.org/zap"
)

const (
	defaultSearchDepth = 15
	defaultHashMB      = 16
)

type EngineConfig struct {
	BinaryPath string
	Args       []string
	Env        []string
	Threads    int
	HashMB     int
	SkillLevel int
	Limits     SearchLimits
}

// Engine is the move-generation collaborator. It keeps its own copy of the
// game's move list, mirrored from outside after every accepted move.
type Engine struct {
	session *uci.Session
	limits  SearchLimits
	logger  *zap.Logger

	mu    sync.Mutex
	moves []string
}

func NewEngine(ctx context.Context, cfg EngineConfig, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.HashMB <= 0 {
		cfg.HashMB = defaultHashMB
	}
	if cfg.Limits.Depth <= 0 && cfg.Limits.MoveTimeMillis <= 0 {
		cfg.Limits.Depth = defaultSearchDepth
	}
	if _, err := BuildGoCommand(cfg.Limits); err != nil {
		return nil, err
	}

	session, err := uci.NewSession(ctx, uci.Config{
		BinaryPath: cfg.BinaryPath,
		Args:       cfg.Args,
		Env:        cfg.Env,
		Options: uci.Options{
			Threads:    cfg.Threads,
			SkillLevel: cfg.SkillLevel,
			HashMB:     cfg.HashMB,
			MultiPV:    normalCandidates,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("start uci session: %w", err)
	}
	if err := session.NewGame(ctx); err != nil {
		_ = session.Close()
		return nil, err
	}

	return &Engine{
		session: session,
		limits:  cfg.Limits,
		logger:  logger,
	}, nil
}

func (e *Engine) SetSkillLevel(ctx context.Context, level int) error {
	if level < MinSkillLevel || level > MaxSkillLevel {
		return fmt.Errorf("skill level %d out of range %d-%d", level, MinSkillLevel, MaxSkillLevel)
	}
	return e.session.SetSkillLevel(ctx, level)
}

// TopMoves asks the engine for up to n ranked moves in the mirrored position.
func (e *Engine) TopMoves(ctx context.Context, n int) ([]Candidate, error) {
	if n <= 0 {
		return nil, fmt.Errorf("candidate count must be > 0: %d", n)
	}
	resp, err := e.session.Search(ctx, uci.SearchRequest{
		FEN:     "startpos",
		Moves:   e.Moves(),
		MultiPV: n,
		Limits:  e.limits.uci(),
	})
	if err != nil {
		return nil, err
	}

	candidates := convertCandidates(resp.Candidates)
	if len(candidates) == 0 && resp.BestMove != "" {
		candidates = []Candidate{{Move: strings.ToLower(resp.BestMove), Principal: []string{resp.BestMove}}}
	}
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates, nil
}

// Push mirrors moves applied to the rules board into the engine position.
func (e *Engine) Push(moves ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, mv := range moves {
		if mv = strings.ToLower(strings.TrimSpace(mv)); mv != "" {
			e.moves = append(e.moves, mv)
		}
	}
}

func (e *Engine) Moves() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.moves...)
}

func (e *Engine) Close() error {
	if e == nil || e.session == nil {
		return nil
	}
	return e.session.Close()
}

func convertCandidates(in []uci.Candidate) []Candidate {
	out := make([]Candidate, 0, len(in))
	for i, c := range in {
		out = append(out, Candidate{
			Move:      strings.ToLower(c.Move),
			Rank:      i,
			EvalCP:    c.EvalCP,
			Principal: append([]string(nil), c.Principal...),
		})
	}
	return out
}
