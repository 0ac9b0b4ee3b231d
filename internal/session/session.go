// Package session holds the state a player interacts with around a board:
// the pending selection, the move counter and the won flag. Frontends feed
// jar selections into Select and render Snapshot.
//
// A Session is not safe for concurrent use; each frontend owns one.
package session

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/bubblejar/internal/randutil"
	"github.com/lox/bubblejar/internal/sessionid"
	"github.com/lox/bubblejar/jar"
)

// ErrInvalidJar is returned when a selection does not name a jar on the board.
var ErrInvalidJar = errors.New("invalid jar")

const noSelection = -1

// Options configures a new session.
type Options struct {
	Rules  jar.Rules
	Seed   int64        // 0 picks a seed from the clock
	Clock  quartz.Clock // nil uses the real clock
	Logger *log.Logger  // nil discards
	IDs    *sessionid.Generator
}

// Session tracks one player's game.
type Session struct {
	id     string
	seed   int64
	rules  jar.Rules
	rng    *rand.Rand
	clock  quartz.Clock
	logger *log.Logger

	board    jar.Board
	game     int
	selected int
	moves    int
	won      bool
	started  time.Time
	finished time.Time
}

// New creates a session and deals its first game.
func New(opts Options) *Session {
	clock := opts.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ids := opts.IDs
	if ids == nil {
		ids = sessionid.NewGenerator(clock, nil)
	}
	seed := randutil.Resolve(opts.Seed)

	s := &Session{
		id:     ids.New(),
		seed:   seed,
		rules:  opts.Rules,
		rng:    randutil.New(seed),
		clock:  clock,
		logger: logger.WithPrefix("session"),
	}
	s.logger = s.logger.With("session", s.id)
	s.logger.Debug("Created session", "seed", seed, "match_color", s.rules.MatchColor)

	s.NewGame()
	return s
}

// NewGame replaces the board with a fresh deal and resets the selection,
// move counter and won flag.
func (s *Session) NewGame() {
	s.board = jar.NewBoard(s.rng)
	s.game++
	s.selected = noSelection
	s.moves = 0
	s.won = false
	s.started = s.clock.Now()
	s.finished = time.Time{}

	s.logger.Info("Dealt new game", "game", s.game, "board", s.board.String())
}

// Select applies a jar selection. While nothing is selected a non-empty jar
// becomes the pending source. While a source is pending, selecting it again
// cancels and selecting another jar attempts the move; the selection is
// cleared either way.
func (s *Session) Select(i int) (Result, error) {
	if i < 0 || i >= len(s.board) {
		return Result{}, fmt.Errorf("%w: %d (have %d jars)", ErrInvalidJar, i, len(s.board))
	}

	if s.won {
		return Result{Outcome: Ignored, From: noSelection, To: i}, nil
	}

	if s.selected == noSelection {
		if s.board[i].IsEmpty() {
			return Result{Outcome: Ignored, From: noSelection, To: i, Reject: jar.RejectEmptySource}, nil
		}
		s.selected = i
		s.logger.Debug("Selected jar", "jar", i)
		return Result{Outcome: Selected, From: i, To: noSelection}, nil
	}

	from := s.selected
	s.selected = noSelection

	if from == i {
		s.logger.Debug("Cleared selection", "jar", i)
		return Result{Outcome: Deselected, From: from, To: i}, nil
	}

	if reason := s.rules.Check(s.board[from], s.board[i]); reason != jar.RejectNone {
		s.logger.Debug("Rejected move", "from", from, "to", i, "reason", reason)
		return Result{Outcome: Rejected, From: from, To: i, Reject: reason}, nil
	}

	s.rules.MoveBubble(&s.board[from], &s.board[i])
	s.moves++
	s.logger.Debug("Moved bubble", "from", from, "to", i, "moves", s.moves)

	if jar.CheckWin(s.board) {
		s.won = true
		s.finished = s.clock.Now()
		s.logger.Info("Game won", "game", s.game, "moves", s.moves, "elapsed", s.Elapsed())
		return Result{Outcome: Won, From: from, To: i}, nil
	}

	return Result{Outcome: Moved, From: from, To: i}, nil
}

// ClearSelection drops any pending source jar.
func (s *Session) ClearSelection() {
	s.selected = noSelection
}

// State returns the current state machine state.
func (s *Session) State() State {
	switch {
	case s.won:
		return StateWon
	case s.selected != noSelection:
		return StatePending
	default:
		return StateIdle
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Seed returns the resolved seed the session deals from.
func (s *Session) Seed() int64 { return s.seed }

// Rules returns the move policy in effect.
func (s *Session) Rules() jar.Rules { return s.rules }

// Game returns the 1-based number of the current game.
func (s *Session) Game() int { return s.game }

// Moves returns the number of successful moves in the current game.
func (s *Session) Moves() int { return s.moves }

// Won reports whether the current game has been won.
func (s *Session) Won() bool { return s.won }

// Selected returns the pending source jar, if any.
func (s *Session) Selected() (int, bool) {
	return s.selected, s.selected != noSelection
}

// Board returns a copy of the current board.
func (s *Session) Board() jar.Board {
	return s.board.Clone()
}

// Jar returns a copy of the i-th jar.
func (s *Session) Jar(i int) (jar.Jar, error) {
	if i < 0 || i >= len(s.board) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidJar, i)
	}
	return append(jar.Jar(nil), s.board[i]...), nil
}

// CanMove reports whether moving from jar i to jar j would be accepted.
// Frontends use it to highlight drop targets.
func (s *Session) CanMove(i, j int) bool {
	if i < 0 || j < 0 || i >= len(s.board) || j >= len(s.board) || i == j {
		return false
	}
	return s.rules.CanMove(s.board[i], s.board[j])
}

// Elapsed returns the time spent on the current game. It stops advancing
// once the game is won.
func (s *Session) Elapsed() time.Duration {
	if s.won {
		return s.finished.Sub(s.started)
	}
	return s.clock.Now().Sub(s.started)
}
