package main

import (
	"fmt"
	"os"

	"github.com/lox/bubblejar/internal/randutil"
	"github.com/lox/bubblejar/internal/render"
	"github.com/lox/bubblejar/jar"
)

// DealCmd prints one dealt board
type DealCmd struct {
	Plain bool `kong:"help='Use color letters instead of colored bubbles'"`
	Text  bool `kong:"help='Print the compact one-line form (e.g. RGBY|...|-|-)'"`
}

func (c *DealCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	seed := randutil.Resolve(cfg.Game.Seed)
	board := jar.NewBoard(randutil.New(seed))

	if c.Text {
		fmt.Println(board.String())
		return nil
	}

	r := render.New(os.Stdout, c.Plain)
	fmt.Printf("Seed: %d\n\n", seed)
	fmt.Print(r.Board(board))
	fmt.Println()
	fmt.Println(r.Legend())
	return nil
}
