// SPDX-License-Identifier: GPL-2.0-only

package lzma

// numStates is the size of LZMA's state machine: 12 states tracking the
// kind of the last few symbols decoded (literal, match, rep, short rep),
// used to pick which probability context literal and is-match decisions
// read from.
const numStates = 12

// updateStateLiteral advances state after a literal symbol.
func updateStateLiteral(state int) int {
	switch {
	case state < 4:
		return 0
	case state < 10:
		return state - 3
	default:
		return state - 6
	}
}

// updateStateMatch advances state after a simple (non-rep) match.
func updateStateMatch(state int) int {
	if state < 7 {
		return 7
	}
	return 10
}

// updateStateRep advances state after a rep-match.
func updateStateRep(state int) int {
	if state < 7 {
		return 8
	}
	return 11
}

// updateStateShortRep advances state after a short rep (single-byte,
// distance rep0, implicit length 1).
func updateStateShortRep(state int) int {
	if state < 7 {
		return 9
	}
	return 11
}

// repRing is the 4-entry MRU ring of previously used match distances
// (1-based, actual copy distances — not the distance-coder's internal
// zero-based encoding). rep0 is always the most recently used.
type repRing [4]uint32

// useRep moves rep[n] to the front, shifting the intervening entries
// down, for a rep-match that reused rep1/rep2/rep3.
func (r *repRing) useRep(n int) {
	d := r[n]
	copy(r[1:n+1], r[0:n])
	r[0] = d
}

func (r *repRing) useNewDistance(dist uint32) {
	r[3] = r[2]
	r[2] = r[1]
	r[1] = r[0]
	r[0] = dist
}
