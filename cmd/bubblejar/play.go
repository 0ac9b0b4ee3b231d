package main

import (
	"github.com/lox/bubblejar/cmd/bubblejar/shared"
	"github.com/lox/bubblejar/internal/session"
	"github.com/lox/bubblejar/internal/tui"
)

// PlayCmd runs the interactive terminal game
type PlayCmd struct{}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	// The TUI owns the screen, so logs always go to a file.
	logger, closeLog, err := g.logger(cfg, "bubblejar.log")
	if err != nil {
		return err
	}
	defer closeLog()

	s := session.New(session.Options{
		Rules:  rules(cfg),
		Seed:   cfg.Game.Seed,
		Logger: logger,
	})
	logger.Info("Starting interactive game", "session", s.ID(), "seed", s.Seed())

	ctx := shared.SetupSignalHandler(logger)
	return tui.Run(ctx, s, logger)
}
