package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/bubblejar/cmd/bubblejar/shared"
	"github.com/lox/bubblejar/internal/config"
	"github.com/lox/bubblejar/jar"
)

// Globals are flags shared by every command
type Globals struct {
	Config     string `kong:"default='bubblejar.hcl',type='path',help='HCL config file (missing file uses defaults)'"`
	Debug      bool   `kong:"help='Enable debug logging'"`
	LogFile    string `kong:"help='Write logs to this file'"`
	Seed       *int64 `kong:"help='Deterministic RNG seed (overrides config)'"`
	MatchColor bool   `kong:"help='Only allow moves onto an empty jar or a matching top color'"`
}

// load reads the config file and applies flag overrides
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Seed != nil {
		cfg.Game.Seed = *g.Seed
	}
	if g.MatchColor {
		cfg.Game.MatchColor = true
	}
	if g.Debug {
		cfg.Log.Level = "debug"
	}
	if g.LogFile != "" {
		cfg.Log.File = g.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", g.Config, err)
	}
	return cfg, nil
}

// logger builds the root logger. fallbackFile is used when no log file is
// configured; an empty fallback logs to stderr.
func (g *Globals) logger(cfg *config.Config, fallbackFile string) (*log.Logger, func(), error) {
	path := cfg.Log.File
	if path == "" {
		path = fallbackFile
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	if path != "" {
		f, c, err := shared.OpenLogFile(path)
		if err != nil {
			return nil, nil, err
		}
		w, closeFn = f, c
	}
	return shared.SetupLogger(w, cfg.LogLevel()), closeFn, nil
}

func rules(cfg *config.Config) jar.Rules {
	return jar.Rules{MatchColor: cfg.Game.MatchColor}
}
