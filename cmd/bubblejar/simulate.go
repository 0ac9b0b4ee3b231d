package main

import (
	"fmt"
	"time"

	"github.com/lox/bubblejar/cmd/bubblejar/shared"
	"github.com/lox/bubblejar/internal/simulator"
)

// SimulateCmd plays random legal moves on many deals
type SimulateCmd struct {
	Games    int    `kong:"default='1000',help='Number of games to play'"`
	MaxMoves int    `kong:"default='1000',help='Give up on a game after this many moves'"`
	Workers  int    `kong:"default='0',help='Parallel workers (0 = GOMAXPROCS)'"`
	Report   string `kong:"type='path',help='Write a JSON report with every game to this file'"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	logger, closeLog, err := g.logger(cfg, "")
	if err != nil {
		return err
	}
	defer closeLog()

	sim := simulator.New(simulator.Config{
		Games:    c.Games,
		MaxMoves: c.MaxMoves,
		Workers:  c.Workers,
		Seed:     cfg.Game.Seed,
		Rules:    rules(cfg),
		Logger:   logger,
	})

	ctx := shared.SetupSignalHandler(logger)
	start := time.Now()
	report, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if c.Report != "" {
		if err := report.WriteFile(c.Report); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Report)
	}

	fmt.Print(report.Stats.Summary())
	fmt.Printf("Duration:     %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
