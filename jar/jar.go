package jar

import (
	"fmt"
	"strings"
)

// Fixed puzzle configuration. NumColors*PerColor bubbles must fit into
// NumColors jars of Capacity each, leaving JarCount-NumColors empty jars.
const (
	NumColors = 6
	PerColor  = 4
	JarCount  = 8
	Capacity  = 4
)

// Jar is an ordered stack of bubbles. Index 0 is the top.
type Jar []Bubble

// Board is the ordered collection of jars for one game.
type Board []Jar

// Len returns the number of bubbles in the jar.
func (j Jar) Len() int { return len(j) }

// IsEmpty reports whether the jar holds no bubbles.
func (j Jar) IsEmpty() bool { return len(j) == 0 }

// IsFull reports whether the jar has no room left.
func (j Jar) IsFull() bool { return len(j) >= Capacity }

// Top returns the top bubble. ok is false for an empty jar.
func (j Jar) Top() (b Bubble, ok bool) {
	if len(j) == 0 {
		return 0, false
	}
	return j[0], true
}

// IsSolved reports whether the jar is full and monochrome.
func (j Jar) IsSolved() bool {
	if len(j) != Capacity {
		return false
	}
	for _, b := range j[1:] {
		if b != j[0] {
			return false
		}
	}
	return true
}

// String renders the jar top-first using color codes, "-" when empty.
func (j Jar) String() string {
	if len(j) == 0 {
		return "-"
	}
	buf := make([]byte, len(j))
	for i, b := range j {
		buf[i] = b.Code()
	}
	return string(buf)
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	if b == nil {
		return nil
	}
	out := make(Board, len(b))
	for i, j := range b {
		out[i] = append(make(Jar, 0, Capacity), j...)
	}
	return out
}

// Count returns the number of bubbles on the board.
func (b Board) Count() int {
	n := 0
	for _, j := range b {
		n += len(j)
	}
	return n
}

// ColorCounts returns how many bubbles of each palette color are on the board.
func (b Board) ColorCounts() [NumColors]int {
	var counts [NumColors]int
	for _, j := range b {
		for _, bubble := range j {
			if bubble.Valid() {
				counts[bubble]++
			}
		}
	}
	return counts
}

// String renders the board in the compact text form, e.g. "RRR|-|BBBB".
func (b Board) String() string {
	parts := make([]string, len(b))
	for i, j := range b {
		parts[i] = j.String()
	}
	return strings.Join(parts, "|")
}

// ParseBoard parses the compact text form produced by Board.String.
// Whitespace around jars is ignored.
func ParseBoard(s string) (Board, error) {
	parts := strings.Split(s, "|")
	board := make(Board, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "-" || part == "" {
			board[i] = make(Jar, 0, Capacity)
			continue
		}
		if len(part) > Capacity {
			return nil, fmt.Errorf("jar %d: %d bubbles exceeds capacity %d", i, len(part), Capacity)
		}
		j := make(Jar, 0, Capacity)
		for k := 0; k < len(part); k++ {
			bubble, err := ParseBubble(part[k])
			if err != nil {
				return nil, fmt.Errorf("jar %d: %w", i, err)
			}
			j = append(j, bubble)
		}
		board[i] = j
	}
	return board, nil
}
