package simulator

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/lox/bubblejar/internal/randutil"
	"github.com/lox/bubblejar/jar"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for a simulation run
type Config struct {
	Games    int
	MaxMoves int
	Workers  int
	Seed     int64
	Rules    jar.Rules
	Logger   *log.Logger
}

// GameResult is the outcome of one simulated game
type GameResult struct {
	Seed   int64  `json:"seed"`
	Won    bool   `json:"won"`
	Moves  int    `json:"moves"`
	Stuck  bool   `json:"stuck"`  // no legal move was left
	Solved int    `json:"solved"` // jars full of one color at the end
	Deal   string `json:"deal"`
	Final  string `json:"final"`
}

// Simulator plays random legal moves on freshly dealt boards and checks
// the board invariants after every move.
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Games <= 0 {
		config.Games = 1
	}
	if config.MaxMoves <= 0 {
		config.MaxMoves = 1000
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config, logger: config.Logger.WithPrefix("sim")}
}

// Run plays every game and aggregates the results. Results do not depend
// on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	seed := randutil.Resolve(s.config.Seed)
	s.logger.Info("Starting simulation",
		"games", s.config.Games,
		"workers", s.config.Workers,
		"seed", seed,
		"match_color", s.config.Rules.MatchColor)

	results := make([]GameResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range s.config.Games {
		gameSeed := randutil.Derive(seed, i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.playGame(gameSeed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, gameSeed, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Stats:   Statistics{Seed: seed},
		Results: results,
	}
	for _, r := range results {
		report.Stats.Add(r)
	}
	s.logger.Info("Simulation complete", "games", report.Stats.Games, "wins", report.Stats.Wins)
	return report, nil
}

// playGame deals one board and plays random legal moves until the board is
// won, no move is legal, or MaxMoves is reached.
func (s *Simulator) playGame(seed int64) (GameResult, error) {
	rng := randutil.New(seed)
	board := jar.NewBoard(rng)
	result := GameResult{Seed: seed, Deal: board.String()}

	if err := checkInvariants(board); err != nil {
		return result, fmt.Errorf("deal: %w", err)
	}

	for result.Moves < s.config.MaxMoves {
		from, to, ok := s.pickMove(board, rng)
		if !ok {
			result.Stuck = true
			break
		}

		before := len(board[from]) + len(board[to])
		if !s.config.Rules.MoveBubble(&board[from], &board[to]) {
			return result, fmt.Errorf("legal move %d->%d refused", from, to)
		}
		result.Moves++

		if after := len(board[from]) + len(board[to]); after != before {
			return result, fmt.Errorf("move %d->%d changed bubble count %d->%d", from, to, before, after)
		}
		if err := checkInvariants(board); err != nil {
			return result, fmt.Errorf("after move %d: %w", result.Moves, err)
		}

		if jar.CheckWin(board) {
			result.Won = true
			break
		}
	}

	for _, j := range board {
		if j.IsSolved() {
			result.Solved++
		}
	}
	result.Final = board.String()
	s.logger.Debug("Game finished", "seed", seed, "won", result.Won, "moves", result.Moves)
	return result, nil
}

// pickMove chooses uniformly among the legal moves between distinct jars.
func (s *Simulator) pickMove(board jar.Board, rng *rand.Rand) (int, int, bool) {
	var moves [jar.JarCount * jar.JarCount][2]int
	n := 0
	for i := range board {
		for j := range board {
			if i != j && s.config.Rules.CanMove(board[i], board[j]) {
				moves[n] = [2]int{i, j}
				n++
			}
		}
	}
	if n == 0 {
		return 0, 0, false
	}
	m := moves[rng.IntN(n)]
	return m[0], m[1], true
}

func checkInvariants(board jar.Board) error {
	if len(board) != jar.JarCount {
		return fmt.Errorf("board has %d jars, want %d", len(board), jar.JarCount)
	}
	for i, j := range board {
		if len(j) > jar.Capacity {
			return fmt.Errorf("jar %d holds %d bubbles, capacity %d", i, len(j), jar.Capacity)
		}
	}
	for color, n := range board.ColorCounts() {
		if n != jar.PerColor {
			return fmt.Errorf("%d %s bubbles on board, want %d", n, jar.Bubble(color), jar.PerColor)
		}
	}
	return nil
}
