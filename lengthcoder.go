// SPDX-License-Identifier: GPL-2.0-only

package lzma

// minMatchLength is LZMA's shortest representable match length; the
// length coder always transmits length-minMatchLength.
const minMatchLength = 2

// maxPosStates bounds the pos_state contexts the length coder's low/mid
// trees are indexed by. pb is capped at maxPB=4, so pos_state never
// exceeds 15; the tables are sized for the worst case once, at
// construction, regardless of the stream's actual pb.
const maxPosStates = 1 << maxPB

// lengthCoder implements LZMA's length coding: two choice bits (choice,
// then choice2) select among three ranges (2-9 via a 3-bit low tree, 10-17 via a 3-bit mid
// tree, 18-273 via an 8-bit high tree), with low/mid further keyed by
// pos_state.
type lengthCoder struct {
	choice  prob
	choice2 prob
	low     [maxPosStates][8]prob
	mid     [maxPosStates][8]prob
	high    [256]prob
}

func (lc *lengthCoder) reset() {
	lc.choice = probInit
	lc.choice2 = probInit
	for i := range lc.low {
		resetProbs(lc.low[i][:])
		resetProbs(lc.mid[i][:])
	}
	resetProbs(lc.high[:])
}

// decode returns n such that the actual match length is n+minMatchLength.
// Keeping n around (rather than adding the 2 immediately) is what
// lenToPosState below consumes directly, matching the reference decoder.
func decodeLength(d *Decoder, c *cursor, lc *lengthCoder, posState int) (uint32, bool) {
	bit, ok := d.decodeBit(&lc.choice, c)
	if !ok {
		return 0, false
	}
	if bit == 0 {
		v, ok := decodeBitTree(d, c, lc.low[posState][:], 3)
		if !ok {
			return 0, false
		}
		return v, true
	}
	bit2, ok := d.decodeBit(&lc.choice2, c)
	if !ok {
		return 0, false
	}
	if bit2 == 0 {
		v, ok := decodeBitTree(d, c, lc.mid[posState][:], 3)
		if !ok {
			return 0, false
		}
		return 8 + v, true
	}
	v, ok := decodeBitTree(d, c, lc.high[:], 8)
	if !ok {
		return 0, false
	}
	return 16 + v, true
}

// lenToPosState maps a length-coder offset n (length-minMatchLength) to
// one of the 4 contexts the distance slot tree is keyed by.
func lenToPosState(n uint32) int {
	if n > 3 {
		return 3
	}
	return int(n)
}
