package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/park285/liquid-pressure-chess/internal/adapter/console"
	"github.com/park285/liquid-pressure-chess/internal/chessbuilder"
	appcfg "github.com/park285/liquid-pressure-chess/internal/config"
	"github.com/park285/liquid-pressure-chess/internal/obslog"
	"github.com/park285/liquid-pressure-chess/internal/service/game"
	"go.uber.org/zap"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.Init(cfg.Log); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer obslog.Sync()
	logger := obslog.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("game aborted", zap.Error(err))
		obslog.Sync()
		stop()
		log.Fatalf("liquid-pressure: %v", err)
	}
}

func run(ctx context.Context, cfg *appcfg.AppConfig, logger *zap.Logger) error {
	deps, err := chessbuilder.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := deps.Close(); cerr != nil {
			logger.Warn("engine close failed", zap.Error(cerr))
		}
	}()

	formatter := console.NewFormatter(deps.Messages)
	presenter := console.NewPresenter(os.Stdout, formatter)
	prompter := console.NewPrompter(os.Stdin, os.Stdout, formatter)

	presenter.Banner(cfg.GameDuration)
	selfColor, err := prompter.AskColor(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	presenter.Intro(selfColor)

	session, err := game.NewSession(game.Config{
		SelfColor:  selfColor,
		GameLength: cfg.GameDuration,
		Rand:       deps.Rand,
		Logger:     logger,
	}, deps.Engine, prompter, presenter)
	if err != nil {
		return err
	}

	result, err := session.Run(ctx)
	if err != nil {
		presenter.EngineError(err)
		return err
	}
	presenter.GameOver(result)
	return nil
}
