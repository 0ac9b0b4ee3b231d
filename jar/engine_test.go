package jar

import (
	"testing"

	"github.com/lox/bubblejar/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, s string) Board {
	t.Helper()
	b, err := ParseBoard(s)
	require.NoError(t, err)
	return b
}

func TestCanMove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src, dst string
		want     bool
	}{
		{"empty source", "-", "-", false},
		{"empty source full destination", "-", "RRRR", false},
		{"full destination", "R", "BBBB", false},
		{"full mixed destination", "RRRR", "RGBY", false},
		{"empty destination", "R", "-", true},
		{"different colors allowed", "R", "BBB", true},
		{"same color", "RB", "R", true},
		{"full source into empty", "RRRR", "-", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.src+"|"+tc.dst)
			assert.Equal(t, tc.want, CanMove(b[0], b[1]))
		})
	}
}

func TestMoveBubbleTakesFromTop(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, "RBG|Y")
	require.True(t, MoveBubble(&b[0], &b[1]))

	assert.Equal(t, "BG|RY", b.String())
}

func TestMoveBubbleFailureLeavesJarsUnchanged(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"-|RGB", "-|-", "R|BBBB", "RGBY|CMCM"} {
		b := mustBoard(t, s)
		src := append(Jar(nil), b[0]...)
		dst := append(Jar(nil), b[1]...)

		assert.False(t, MoveBubble(&b[0], &b[1]), s)
		assert.Equal(t, src, append(Jar(nil), b[0]...), s)
		assert.Equal(t, dst, append(Jar(nil), b[1]...), s)
	}
}

func TestMoveBubbleConservesBubbles(t *testing.T) {
	t.Parallel()

	rng := randutil.New(99)
	b := NewBoard(rng)
	for range 2000 {
		i, j := rng.IntN(JarCount), rng.IntN(JarCount)
		if i == j {
			continue
		}
		before := len(b[i]) + len(b[j])
		MoveBubble(&b[i], &b[j])
		require.Equal(t, before, len(b[i])+len(b[j]))
		require.LessOrEqual(t, len(b[j]), Capacity)
	}

	for _, n := range b.ColorCounts() {
		assert.Equal(t, PerColor, n)
	}
}

func TestMoveBubbleOntoSelf(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, "RBG")
	assert.True(t, MoveBubble(&b[0], &b[0]))
	assert.Equal(t, "RBG", b.String())
}

func TestCheckWin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		board string
		want  bool
	}{
		{"all empty", "-|-|-|-|-|-|-|-", true},
		{"one solved jar", "RRRR|-|-|-|-|-|-|-", true},
		{"all solved", "RRRR|BBBB|GGGG|YYYY|MMMM|CCCC|-|-", true},
		{"partial jar", "RRR|-|-|-|-|-|-|-", false},
		{"full mixed jar", "RRRB|-|-|-|-|-|-|-", false},
		{"solved plus partial", "RRRR|BB|BB|-|-|-|-|-", false},
		{"empty board", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var b Board
			if tc.board != "" {
				b = mustBoard(t, tc.board)
			}
			assert.Equal(t, tc.want, CheckWin(b))
		})
	}
}

func TestMoveScenarios(t *testing.T) {
	t.Parallel()

	t.Run("move into empty jar", func(t *testing.T) {
		b := mustBoard(t, "RRR|-")

		assert.True(t, CanMove(b[0], b[1]))
		assert.True(t, MoveBubble(&b[0], &b[1]))
		assert.Equal(t, Jar{Red, Red}, b[0])
		assert.Equal(t, Jar{Red}, b[1])
		assert.False(t, CheckWin(b))
	})

	t.Run("destination full", func(t *testing.T) {
		b := mustBoard(t, "R|BBBB")

		assert.False(t, CanMove(b[0], b[1]))
		assert.False(t, MoveBubble(&b[0], &b[1]))
		assert.Equal(t, "R|BBBB", b.String())
	})

	t.Run("source empty", func(t *testing.T) {
		b := mustBoard(t, "-|G|RRRR|-")

		for i := 1; i < len(b); i++ {
			assert.False(t, CanMove(b[0], b[i]))
		}
		assert.False(t, MoveBubble(&b[0], &b[1]))
		assert.Equal(t, "-|G|RRRR|-", b.String())
	})
}

func TestRulesMatchColor(t *testing.T) {
	t.Parallel()

	strict := Rules{MatchColor: true}

	tests := []struct {
		name     string
		src, dst string
		want     Reject
	}{
		{"empty source", "-", "R", RejectEmptySource},
		{"full destination", "R", "RRRR", RejectFullDestination},
		{"mismatched top", "RB", "BR", RejectColorMismatch},
		{"matching top", "RB", "RG", RejectNone},
		{"empty destination", "GR", "-", RejectNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.src+"|"+tc.dst)
			assert.Equal(t, tc.want, strict.Check(b[0], b[1]))

			moved := strict.MoveBubble(&b[0], &b[1])
			assert.Equal(t, tc.want == RejectNone, moved)
		})
	}

	// The default rule ignores colors.
	b := mustBoard(t, "RB|BR")
	assert.Equal(t, RejectNone, Rules{}.Check(b[0], b[1]))
	assert.NotEqual(t, RejectNone.String(), RejectColorMismatch.String())
}
