package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultStockfish    = "stockfish"
	defaultGameDuration = 10 * time.Minute
	defaultDepth        = 15
	defaultThreads      = 1
	defaultHashMB       = 16
	defaultSkill        = 20
	defaultLogFile      = "logs/liquid-pressure.log"
)

type LogConfig struct {
	Level   string
	Format  string
	Console bool
	File    bool
	Path    string
	Caller  bool
}

type AppConfig struct {
	StockfishPath string
	GameDuration  time.Duration

	EngineDepth      int
	EngineMoveTimeMS int
	EngineThreads    int
	EngineHashMB     int
	EngineSkill      int

	RandomSeed  int64
	MessagesDir string

	Log LogConfig
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		StockfishPath: defaultStockfish,
		GameDuration:  defaultGameDuration,
		EngineDepth:   defaultDepth,
		EngineThreads: defaultThreads,
		EngineHashMB:  defaultHashMB,
		EngineSkill:   defaultSkill,
		Log: LogConfig{
			Level:  "info",
			Format: "legacy",
			Path:   defaultLogFile,
		},
	}

	if v := strings.TrimSpace(os.Getenv("STOCKFISH_PATH")); v != "" {
		cfg.StockfishPath = v
	}
	if v := strings.TrimSpace(os.Getenv("GAME_DURATION")); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("GAME_DURATION: %w", err)
		}
		cfg.GameDuration = d
	}
	if v := strings.TrimSpace(os.Getenv("ENGINE_DEPTH")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.EngineDepth = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("ENGINE_MOVETIME_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.EngineMoveTimeMS = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("ENGINE_THREADS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.EngineThreads = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("ENGINE_HASH_MB")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.EngineHashMB = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("ENGINE_SKILL")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("ENGINE_SKILL: %w", err)
		}
		cfg.EngineSkill = n
	}
	if v := strings.TrimSpace(os.Getenv("RANDOM_SEED")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.RandomSeed = n
		}
	}
	cfg.MessagesDir = strings.TrimSpace(os.Getenv("MESSAGES_DIR"))

	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT"))); v == "legacy" || v == "json" || v == "console" {
		cfg.Log.Format = v
	}
	cfg.Log.Console = boolEnv("LOG_TO_CONSOLE", false)
	cfg.Log.File = boolEnv("LOG_TO_FILE", false)
	cfg.Log.Caller = boolEnv("LOG_CALLER", false)
	if v := strings.TrimSpace(os.Getenv("LOG_FILE")); v != "" {
		cfg.Log.Path = filepath.Clean(v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	if c.GameDuration <= 0 {
		return errors.New("GAME_DURATION must be positive")
	}
	if c.EngineSkill < 0 || c.EngineSkill > 20 {
		return fmt.Errorf("ENGINE_SKILL must be within 0..20, got %d", c.EngineSkill)
	}
	return nil
}

// ResolveStockfish returns an executable path for the configured engine,
// searching PATH when the value is a bare name.
func (c *AppConfig) ResolveStockfish() (string, error) {
	path := strings.TrimSpace(c.StockfishPath)
	if path == "" {
		path = defaultStockfish
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return "", fmt.Errorf("stockfish binary %q not found: %w", path, err)
	}
	return resolved, nil
}

// parseDuration accepts Go durations ("90s", "5m") or a bare number of seconds.
func parseDuration(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}

func boolEnv(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
