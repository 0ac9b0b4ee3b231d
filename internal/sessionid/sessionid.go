// Package sessionid generates sortable identifiers for game sessions.
//
// An ID is a UUIDv7 (48-bit millisecond timestamp, version and variant bits,
// random tail) encoded as 26 characters of Crockford base32, so IDs issued
// later sort after earlier ones.
package sessionid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Crockford base32
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID.
const Length = 26

// RandSource allows deterministic IDs in tests.
type RandSource interface {
	IntN(n int) int
}

// Generator issues session IDs.
type Generator struct {
	clock quartz.Clock
	rand  RandSource
}

// NewGenerator creates a generator. A nil clock uses the real clock and a
// nil rand uses crypto/rand.
func NewGenerator(clock quartz.Clock, rand RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rand: rand}
}

// New creates an ID with the real clock and crypto/rand.
func New() string {
	return NewGenerator(nil, nil).New()
}

// New creates the next ID.
func (g *Generator) New() string {
	var id [16]byte

	ms := g.clock.Now().UnixMilli()
	for i := range 6 {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if g.rand != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.rand.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return encode(id)
}

// encode writes the 128 bits as 26 five-bit groups, the last group padded
// with two zero bits.
func encode(data [16]byte) string {
	out := make([]byte, Length)
	for i := range Length {
		bit := i * 5
		byteIdx, shift := bit/8, bit%8

		v := uint16(data[byteIdx]) << 8
		if byteIdx+1 < len(data) {
			v |= uint16(data[byteIdx+1])
		}
		out[i] = alphabet[(v>>(11-shift))&0x1f]
	}
	return string(out)
}

// Validate checks that id looks like an ID produced by this package.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("session ID must be exactly %d characters, got %d", Length, len(id))
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
