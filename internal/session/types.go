package session

import (
	"time"

	"github.com/lox/bubblejar/jar"
)

// State is the selection state of a session.
type State int

const (
	StateIdle State = iota
	StatePending
	StateWon
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

// Outcome describes what a selection did.
type Outcome int

const (
	Ignored Outcome = iota
	Selected
	Deselected
	Moved
	Rejected
	Won
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Selected:
		return "selected"
	case Deselected:
		return "deselected"
	case Moved:
		return "moved"
	case Rejected:
		return "rejected"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result is returned by Select. From and To are -1 when not applicable.
type Result struct {
	Outcome Outcome
	From    int
	To      int
	Reject  jar.Reject // set for Rejected, and for Ignored on an empty jar
}

// Changed reports whether the board changed.
func (r Result) Changed() bool {
	return r.Outcome == Moved || r.Outcome == Won
}

// Snapshot is an immutable view of a session for rendering and the wire.
type Snapshot struct {
	ID         string    `json:"id"`
	Game       int       `json:"game"`
	Jars       jar.Board `json:"jars"`
	Selected   *int      `json:"selected,omitempty"`
	Moves      int       `json:"moves"`
	Won        bool      `json:"won"`
	MatchColor bool      `json:"matchColor"`
	ElapsedMS  int64     `json:"elapsedMs"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:         s.id,
		Game:       s.game,
		Jars:       s.board.Clone(),
		Moves:      s.moves,
		Won:        s.won,
		MatchColor: s.rules.MatchColor,
		ElapsedMS:  s.Elapsed().Milliseconds(),
	}
	if i, ok := s.Selected(); ok {
		snap.Selected = &i
	}
	return snap
}

// Elapsed returns the snapshot's elapsed time as a duration.
func (s Snapshot) Elapsed() time.Duration {
	return time.Duration(s.ElapsedMS) * time.Millisecond
}
