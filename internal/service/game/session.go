package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	nchess "github.com/corentings/chess/v2"
	"github.com/google/uuid"
	corechess "github.com/park285/liquid-pressure-chess/internal/chess"
	"github.com/park285/liquid-pressure-chess/internal/chess/openingbook"
	"github.com/park285/liquid-pressure-chess/internal/domain"
	"go.uber.org/zap"
)

// CandidateSource is the move-generation collaborator.
type CandidateSource interface {
	SetSkillLevel(ctx context.Context, level int) error
	TopMoves(ctx context.Context, n int) ([]corechess.Candidate, error)
	Push(moves ...string)
}

// OpponentInput supplies opponent moves. ReadMove blocks until it has a move
// that is legal on b, or returns ErrQuit.
type OpponentInput interface {
	ReadMove(ctx context.Context, b *Board) (string, error)
}

// Observer receives progress events; the console renders them.
type Observer interface {
	TurnStarted(Snapshot)
	Thinking(d time.Duration)
	Moved(MoveReport)
}

type Snapshot struct {
	Ply               int
	MoveNumber        int
	ToMove            corechess.Side
	SelfColor         nchess.Color
	Position          *nchess.Position
	SelfRemaining     time.Duration
	OpponentRemaining time.Duration
	Pressure          float64
	Phase             corechess.Phase
	Opening           openingbook.Label
}

type MoveReport struct {
	Side         corechess.Side
	UCI          string
	SAN          string
	Elapsed      time.Duration
	Thinking     time.Duration
	Skill        int
	Candidates   int
	TimePressure float64
	Tension      float64
	Pressure     float64
	Phase        corechess.Phase
}

type Config struct {
	SelfColor  nchess.Color
	GameLength time.Duration
	Now        func() time.Time
	Delay      corechess.DelayFunc
	Rand       *rand.Rand
	Logger     *zap.Logger
	GameID     string
}

// Session holds all mutable state of one game.
type Session struct {
	id        string
	selfColor nchess.Color
	board     *Board
	clock     *corechess.Clock
	pressure  *corechess.PressureState
	engine    CandidateSource
	opponent  OpponentInput
	observer  Observer
	delay     corechess.DelayFunc
	rand      *rand.Rand
	now       func() time.Time
	logger    *zap.Logger

	state       State
	termination Termination
	startedAt   time.Time
	endedAt     time.Time
}

func NewSession(cfg Config, engine CandidateSource, opponent OpponentInput, observer Observer) (*Session, error) {
	if engine == nil {
		return nil, fmt.Errorf("candidate source is required")
	}
	if opponent == nil {
		return nil, fmt.Errorf("opponent input is required")
	}
	if cfg.SelfColor != nchess.White && cfg.SelfColor != nchess.Black {
		return nil, fmt.Errorf("self color must be white or black")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Delay == nil {
		cfg.Delay = corechess.Sleep
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if strings.TrimSpace(cfg.GameID) == "" {
		cfg.GameID = uuid.NewString()
	}
	if observer == nil {
		observer = nopObserver{}
	}

	s := &Session{
		id:        cfg.GameID,
		selfColor: cfg.SelfColor,
		board:     NewBoard(),
		clock:     corechess.NewClock(cfg.GameLength, cfg.Now),
		pressure:  corechess.NewPressureState(),
		engine:    engine,
		opponent:  opponent,
		observer:  observer,
		delay:     cfg.Delay,
		rand:      cfg.Rand,
		now:       cfg.Now,
		logger:    cfg.Logger.With(zap.String("game_id", cfg.GameID)),
		state:     AwaitingWhiteMove,
		startedAt: cfg.Now(),
	}
	return s, nil
}

func (s *Session) ID() string                         { return s.id }
func (s *Session) State() State                       { return s.state }
func (s *Session) Board() *Board                      { return s.board }
func (s *Session) Clock() *corechess.Clock            { return s.clock }
func (s *Session) Pressure() *corechess.PressureState { return s.pressure }
func (s *Session) Termination() Termination           { return s.termination }

func (s *Session) sideToMove() corechess.Side {
	if s.board.Turn() == s.selfColor {
		return corechess.Self
	}
	return corechess.Opponent
}

// Run plays plies until the game terminates. Engine failures are returned as
// errors; every other ending is reported through the result.
func (s *Session) Run(ctx context.Context) (Result, error) {
	s.logger.Info("game started",
		zap.String("self_color", colorName(s.selfColor)),
		zap.Duration("game_length", s.clock.Total()),
	)
	for s.state != Terminated {
		if err := s.Step(ctx); err != nil {
			return s.Result(), err
		}
	}
	return s.Result(), nil
}

// Step plays exactly one ply and then evaluates the terminal conditions.
func (s *Session) Step(ctx context.Context) error {
	if s.state == Terminated {
		return ErrGameOver
	}
	s.observer.TurnStarted(s.snapshot())

	var err error
	if s.sideToMove() == corechess.Self {
		err = s.playSelf(ctx)
	} else {
		err = s.playOpponent(ctx)
	}

	switch {
	case err == nil:
	case errors.Is(err, ErrQuit):
		s.terminate(Termination{Reason: ReasonQuit})
		return nil
	case errors.Is(err, corechess.ErrNoCandidates):
		s.terminate(Termination{Reason: ReasonNoMoves})
		return nil
	case ctx.Err() != nil:
		s.terminate(Termination{Reason: ReasonCancelled})
		return nil
	default:
		return err
	}

	s.checkTermination()
	return nil
}

func (s *Session) playSelf(ctx context.Context) error {
	remaining := s.clock.Remaining(corechess.Self)
	timePressure := s.clock.TimePressure(remaining, s.board.MoveNumber())
	features := s.board.Features()
	tension := corechess.Tension(features)

	skill := corechess.SkillLevel(timePressure, s.rand)
	if err := s.engine.SetSkillLevel(ctx, skill); err != nil {
		return fmt.Errorf("set skill level: %w", err)
	}

	count := corechess.CandidateCount(timePressure, tension)
	suggestions, err := s.engine.TopMoves(ctx, count)
	if err != nil {
		return fmt.Errorf("query candidates: %w", err)
	}
	candidates := s.board.Annotate(suggestions)
	if len(candidates) < len(suggestions) {
		s.logger.Warn("engine suggested moves not legal on board",
			zap.Int("suggested", len(suggestions)),
			zap.Int("legal", len(candidates)),
			zap.String("fen", s.board.FEN()),
		)
	}

	chosen, err := corechess.SelectMove(corechess.SelectInput{
		Candidates:   candidates,
		Phase:        s.pressure.Phase(),
		TimePressure: timePressure,
		Tension:      tension,
		Remaining:    remaining,
		InCheck:      features.InCheck,
	}, s.rand)
	if err != nil {
		return err
	}

	thinking := corechess.ThinkingTime(s.pressure.Pressure(), timePressure, remaining, s.rand)
	s.observer.Thinking(thinking)
	if err := s.delay(ctx, thinking); err != nil {
		return err
	}

	elapsed := s.clock.Tick(corechess.Self)
	san, err := s.board.Apply(chosen.Move)
	if err != nil {
		return fmt.Errorf("apply self move: %w", err)
	}
	s.engine.Push(chosen.Move)
	s.pressure.RecordMove(true, s.board.Features(), thinking)

	report := MoveReport{
		Side:         corechess.Self,
		UCI:          chosen.Move,
		SAN:          san,
		Elapsed:      elapsed,
		Thinking:     thinking,
		Skill:        skill,
		Candidates:   len(candidates),
		TimePressure: timePressure,
		Tension:      tension,
		Pressure:     s.pressure.Pressure(),
		Phase:        s.pressure.Phase(),
	}
	s.logMove(report)
	s.observer.Moved(report)
	return nil
}

func (s *Session) playOpponent(ctx context.Context) error {
	move, err := s.opponent.ReadMove(ctx, s.board)
	if err != nil {
		return err
	}
	move, err = ParseOpponentMove(s.board, move)
	if err != nil {
		return fmt.Errorf("opponent input: %w", err)
	}

	elapsed := s.clock.Tick(corechess.Opponent)
	san, err := s.board.Apply(move)
	if err != nil {
		return fmt.Errorf("apply opponent move: %w", err)
	}
	s.engine.Push(move)
	s.pressure.RecordMove(false, s.board.Features(), 0)

	report := MoveReport{
		Side:     corechess.Opponent,
		UCI:      move,
		SAN:      san,
		Elapsed:  elapsed,
		Pressure: s.pressure.Pressure(),
		Phase:    s.pressure.Phase(),
	}
	s.logMove(report)
	s.observer.Moved(report)
	return nil
}

// checkTermination applies the terminal conditions in priority order: a
// flag fall beats whatever the board says.
func (s *Session) checkTermination() {
	switch {
	case s.clock.Expired(corechess.Self):
		s.terminate(Termination{Reason: ReasonSelfTimeout, Decisive: true, Winner: corechess.Opponent})
		return
	case s.clock.Expired(corechess.Opponent):
		s.terminate(Termination{Reason: ReasonOpponentTimeout, Decisive: true, Winner: corechess.Self})
		return
	}

	outcome, method := s.board.Outcome()
	if outcome != nchess.NoOutcome {
		s.terminate(terminationFromBoard(outcome, method, s.selfColor))
		return
	}

	if s.board.Turn() == nchess.White {
		s.state = AwaitingWhiteMove
	} else {
		s.state = AwaitingBlackMove
	}
}

func (s *Session) terminate(t Termination) {
	s.state = Terminated
	s.termination = t
	s.endedAt = s.now()
	s.logger.Info("game terminated",
		zap.String("reason", t.Reason.String()),
		zap.Bool("decisive", t.Decisive),
		zap.String("winner", winnerLabel(t)),
		zap.Int("plies", s.board.Ply()),
		zap.Float64("pressure", s.pressure.Pressure()),
		zap.Duration("self_remaining", s.clock.Remaining(corechess.Self)),
		zap.Duration("opponent_remaining", s.clock.Remaining(corechess.Opponent)),
	)
}

func winnerLabel(t Termination) string {
	if !t.Decisive {
		return ""
	}
	return t.Winner.String()
}

func (s *Session) logMove(r MoveReport) {
	s.logger.Debug("ply",
		zap.Int("ply", s.board.Ply()),
		zap.String("side", r.Side.String()),
		zap.String("uci", r.UCI),
		zap.String("san", r.SAN),
		zap.Duration("elapsed", r.Elapsed),
		zap.Duration("thinking", r.Thinking),
		zap.Int("skill", r.Skill),
		zap.Int("candidates", r.Candidates),
		zap.Float64("time_pressure", r.TimePressure),
		zap.Float64("tension", r.Tension),
		zap.Float64("pressure", r.Pressure),
		zap.String("phase", r.Phase.String()),
	)
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		Ply:               s.board.Ply(),
		MoveNumber:        s.board.MoveNumber(),
		ToMove:            s.sideToMove(),
		SelfColor:         s.selfColor,
		Position:          s.board.Position(),
		SelfRemaining:     s.clock.Remaining(corechess.Self),
		OpponentRemaining: s.clock.Remaining(corechess.Opponent),
		Pressure:          s.pressure.Pressure(),
		Phase:             s.pressure.Phase(),
		Opening:           s.board.Opening(),
	}
}

// Snapshot returns the current state as the console shows it.
func (s *Session) Snapshot() Snapshot {
	return s.snapshot()
}

func (s *Session) Result() Result {
	ended := s.endedAt
	if ended.IsZero() {
		ended = s.now()
	}
	record := &domain.GameRecord{
		ID:            s.id,
		SelfColor:     colorName(s.selfColor),
		MovesUCI:      s.board.Moves(),
		MovesSAN:      s.board.SANMoves(),
		Result:        resultNotation(s.termination, s.selfColor),
		Termination:   s.termination.Reason.String(),
		Opening:       s.board.Opening().String(),
		StartedAt:     s.startedAt,
		EndedAt:       ended,
		Duration:      ended.Sub(s.startedAt),
		SelfLeft:      s.clock.Remaining(corechess.Self),
		OpponentLeft:  s.clock.Remaining(corechess.Opponent),
		FinalPressure: s.pressure.Pressure(),
	}
	return Result{
		Termination:   s.termination,
		Record:        record,
		FinalPressure: s.pressure.Pressure(),
		FinalPhase:    s.pressure.Phase(),
	}
}

func colorName(c nchess.Color) string {
	switch c {
	case nchess.White:
		return "white"
	case nchess.Black:
		return "black"
	default:
		return "none"
	}
}

type nopObserver struct{}

func (nopObserver) TurnStarted(Snapshot)   {}
func (nopObserver) Thinking(time.Duration) {}
func (nopObserver) Moved(MoveReport)       {}
