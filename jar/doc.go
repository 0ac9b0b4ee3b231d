// Package jar implements the game-state model for the bubble jar puzzle.
//
// A Board holds eight jars of up to four bubbles each. Twenty-four bubbles
// in six colors are dealt into the first six jars and the last two start
// empty. The player sorts them one bubble at a time; the game is won when
// every jar is empty or holds four bubbles of a single color.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	b := jar.NewBoard(rng)
//	if jar.MoveBubble(&b[0], &b[6]) && jar.CheckWin(b) {
//	    // solved
//	}
//
// # Rules
//
// The package-level CanMove and MoveBubble only check capacity: any
// non-empty jar may give its top bubble to any jar with room, whatever the
// colors. The stricter ball-sort rule (destination empty or same color on
// top) is available as an opt-in policy:
//
//	rules := jar.Rules{MatchColor: true}
//	rules.MoveBubble(&b[0], &b[6])
//
// Index 0 of a Jar is its top. Bubbles are only ever removed from or
// inserted at the top.
package jar
