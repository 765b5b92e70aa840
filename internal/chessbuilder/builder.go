package chessbuilder

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	corechess "github.com/park285/liquid-pressure-chess/internal/chess"
	"github.com/park285/liquid-pressure-chess/internal/config"
	"github.com/park285/liquid-pressure-chess/internal/msgcat"
	"go.uber.org/zap"
)

type Deps struct {
	Engine   *corechess.Engine
	Messages *msgcat.Catalog
	Rand     *rand.Rand
	Seed     int64
}

// New starts the engine process and loads the message catalog. The caller owns
// Close.
func New(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	messages, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	binary, err := cfg.ResolveStockfish()
	if err != nil {
		return nil, err
	}

	// ctx bounds the engine process lifetime, not just startup.
	engine, err := corechess.NewEngine(ctx, corechess.EngineConfig{
		BinaryPath: binary,
		Threads:    cfg.EngineThreads,
		HashMB:     cfg.EngineHashMB,
		SkillLevel: cfg.EngineSkill,
		Limits: corechess.SearchLimits{
			Depth:          cfg.EngineDepth,
			MoveTimeMillis: cfg.EngineMoveTimeMS,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("init engine: %w", err)
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("engine ready",
		zap.String("binary", binary),
		zap.Int("depth", cfg.EngineDepth),
		zap.Int("threads", cfg.EngineThreads),
		zap.Int64("seed", seed),
	)

	return &Deps{
		Engine:   engine,
		Messages: messages,
		Rand:     rand.New(rand.NewSource(seed)),
		Seed:     seed,
	}, nil
}

func (d *Deps) Close() error {
	if d == nil || d.Engine == nil {
		return nil
	}
	return d.Engine.Close()
}
