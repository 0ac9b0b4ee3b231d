package jar

import (
	rand "math/rand/v2"
)

// NewBoard deals a new game: PerColor bubbles of every palette color are
// shuffled and dealt in contiguous runs into the first NumColors jars. The
// remaining jars start empty. A nil rng uses the global source.
func NewBoard(rng *rand.Rand) Board {
	bubbles := make([]Bubble, 0, NumColors*PerColor)
	for _, color := range Palette {
		for range PerColor {
			bubbles = append(bubbles, color)
		}
	}

	swap := func(i, j int) { bubbles[i], bubbles[j] = bubbles[j], bubbles[i] }
	if rng != nil {
		rng.Shuffle(len(bubbles), swap)
	} else {
		rand.Shuffle(len(bubbles), swap)
	}

	board := make(Board, JarCount)
	for i := range board {
		board[i] = make(Jar, 0, Capacity)
	}
	for i := range NumColors {
		start := i * PerColor
		board[i] = append(board[i], bubbles[start:start+PerColor]...)
	}
	return board
}
