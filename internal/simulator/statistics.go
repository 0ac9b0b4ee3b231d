package simulator

import (
	"fmt"
	"math"
	"strings"
)

// Statistics aggregates simulated games
type Statistics struct {
	Seed        int64 `json:"seed"`
	Games       int   `json:"games"`
	Wins        int   `json:"wins"`
	Stuck       int   `json:"stuck"`
	TotalMoves  int   `json:"totalMoves"`
	WinMoves    int   `json:"winMoves"`
	MinWinMoves int   `json:"minWinMoves"`
	MaxWinMoves int   `json:"maxWinMoves"`
	SolvedJars  int   `json:"solvedJars"`
}

// Add records one game
func (s *Statistics) Add(r GameResult) {
	s.Games++
	s.TotalMoves += r.Moves
	s.SolvedJars += r.Solved
	if r.Stuck {
		s.Stuck++
	}
	if !r.Won {
		return
	}
	s.Wins++
	s.WinMoves += r.Moves
	if s.Wins == 1 || r.Moves < s.MinWinMoves {
		s.MinWinMoves = r.Moves
	}
	if r.Moves > s.MaxWinMoves {
		s.MaxWinMoves = r.Moves
	}
}

// WinRate returns the fraction of games won
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// AvgMoves returns the mean number of moves per game
func (s *Statistics) AvgMoves() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalMoves) / float64(s.Games)
}

// AvgWinMoves returns the mean number of moves in won games
func (s *Statistics) AvgWinMoves() float64 {
	if s.Wins == 0 {
		return math.NaN()
	}
	return float64(s.WinMoves) / float64(s.Wins)
}

// AvgSolvedJars returns the mean number of finished jars at game end
func (s *Statistics) AvgSolvedJars() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SolvedJars) / float64(s.Games)
}

// Summary returns a human-readable report
func (s *Statistics) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Games:        %d (seed %d)\n", s.Games, s.Seed)
	fmt.Fprintf(&b, "Wins:         %d (%.1f%%)\n", s.Wins, s.WinRate()*100)
	fmt.Fprintf(&b, "Stuck:        %d\n", s.Stuck)
	fmt.Fprintf(&b, "Avg moves:    %.1f\n", s.AvgMoves())
	fmt.Fprintf(&b, "Solved jars:  %.2f per game\n", s.AvgSolvedJars())
	if s.Wins > 0 {
		fmt.Fprintf(&b, "Moves to win: avg %.1f, min %d, max %d\n", s.AvgWinMoves(), s.MinWinMoves, s.MaxWinMoves)
	}
	return b.String()
}
