package jar

import "fmt"

// Bubble is a single colored token. Bubbles compare equal by color.
type Bubble uint8

// Palette colors
const (
	Red Bubble = iota
	Blue
	Green
	Yellow
	Magenta
	Cyan
)

// Palette lists every bubble color in deal order.
var Palette = [NumColors]Bubble{Red, Blue, Green, Yellow, Magenta, Cyan}

var bubbleInfo = [NumColors]struct {
	name string
	code byte
	hex  string
}{
	Red:     {"red", 'R', "#FF4D4D"},
	Blue:    {"blue", 'B', "#4D7CFF"},
	Green:   {"green", 'G', "#3DDC84"},
	Yellow:  {"yellow", 'Y', "#FFD84D"},
	Magenta: {"magenta", 'M', "#E04DFF"},
	Cyan:    {"cyan", 'C', "#4DE8FF"},
}

// Valid reports whether b is one of the palette colors.
func (b Bubble) Valid() bool {
	return int(b) < NumColors
}

// String returns the color name (e.g. "red").
func (b Bubble) String() string {
	if !b.Valid() {
		return fmt.Sprintf("bubble(%d)", uint8(b))
	}
	return bubbleInfo[b].name
}

// Code returns the single-letter code used by the text board format.
func (b Bubble) Code() byte {
	if !b.Valid() {
		return '?'
	}
	return bubbleInfo[b].code
}

// Hex returns the display color as a #RRGGBB string.
func (b Bubble) Hex() string {
	if !b.Valid() {
		return "#808080"
	}
	return bubbleInfo[b].hex
}

// ParseBubble parses a single-letter color code, case-insensitively.
func ParseBubble(c byte) (Bubble, error) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	for _, b := range Palette {
		if bubbleInfo[b].code == c {
			return b, nil
		}
	}
	return 0, fmt.Errorf("invalid bubble color: %c", c)
}

// MarshalText encodes the bubble as its color name.
func (b Bubble) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid bubble: %d", uint8(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText decodes a color name or single-letter code.
func (b *Bubble) UnmarshalText(text []byte) error {
	if len(text) == 1 {
		parsed, err := ParseBubble(text[0])
		if err != nil {
			return err
		}
		*b = parsed
		return nil
	}
	for _, candidate := range Palette {
		if candidate.String() == string(text) {
			*b = candidate
			return nil
		}
	}
	return fmt.Errorf("invalid bubble color: %q", text)
}
