package main

import (
	"github.com/lox/bubblejar/cmd/bubblejar/shared"
	"github.com/lox/bubblejar/internal/server"
)

// ServeCmd runs the WebSocket server
type ServeCmd struct {
	Addr string `kong:"help='Listen address (overrides config server.address and server.port)'"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	logger, closeLog, err := g.logger(cfg, "")
	if err != nil {
		return err
	}
	defer closeLog()

	addr := c.Addr
	if addr == "" {
		addr = cfg.ServerAddress()
	}

	srv := server.NewServer(addr, logger,
		server.WithRules(rules(cfg)),
		server.WithSeed(cfg.Game.Seed),
	)

	logger.Info("Starting bubblejar server",
		"address", addr,
		"match_color", cfg.Game.MatchColor,
		"seed", cfg.Game.Seed)

	ctx := shared.SetupSignalHandler(logger)
	return srv.Start(ctx)
}
