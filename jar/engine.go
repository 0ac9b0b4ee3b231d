package jar

// Reject explains why a move was refused.
type Reject uint8

const (
	RejectNone Reject = iota
	RejectEmptySource
	RejectFullDestination
	RejectColorMismatch
)

// String returns a short human-readable reason.
func (r Reject) String() string {
	switch r {
	case RejectNone:
		return "ok"
	case RejectEmptySource:
		return "source jar is empty"
	case RejectFullDestination:
		return "destination jar is full"
	case RejectColorMismatch:
		return "top colors do not match"
	default:
		return "unknown"
	}
}

// Rules selects the move policy. The zero value only checks capacity.
type Rules struct {
	// MatchColor additionally requires the destination to be empty or to
	// have the same color on top as the source.
	MatchColor bool
}

// Check returns the reason a move from src to dst would be refused, or
// RejectNone if it is legal.
func (r Rules) Check(src, dst Jar) Reject {
	if len(src) == 0 {
		return RejectEmptySource
	}
	if len(dst) >= Capacity {
		return RejectFullDestination
	}
	if r.MatchColor && len(dst) > 0 && dst[0] != src[0] {
		return RejectColorMismatch
	}
	return RejectNone
}

// CanMove reports whether src can give its top bubble to dst.
func (r Rules) CanMove(src, dst Jar) bool {
	return r.Check(src, dst) == RejectNone
}

// MoveBubble moves the top bubble of src onto the top of dst if the move
// is legal. Both jars are left untouched when it is not.
func (r Rules) MoveBubble(src, dst *Jar) bool {
	if !r.CanMove(*src, *dst) {
		return false
	}
	bubble := (*src)[0]
	// Removing first keeps a self-move a no-op.
	*src = append((*src)[:0], (*src)[1:]...)
	*dst = append(*dst, 0)
	copy((*dst)[1:], (*dst)[:len(*dst)-1])
	(*dst)[0] = bubble
	return true
}

// CanMove reports whether src is non-empty and dst has room. Colors are
// not compared.
func CanMove(src, dst Jar) bool {
	return Rules{}.CanMove(src, dst)
}

// MoveBubble moves the top bubble of src onto the top of dst under the
// capacity-only rule. It returns false, without modifying either jar, when
// CanMove is false.
func MoveBubble(src, dst *Jar) bool {
	return Rules{}.MoveBubble(src, dst)
}

// CheckWin reports whether every jar is empty or full of a single color.
func CheckWin(b Board) bool {
	for _, j := range b {
		if len(j) != 0 && !j.IsSolved() {
			return false
		}
	}
	return true
}
