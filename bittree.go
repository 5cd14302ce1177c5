// SPDX-License-Identifier: GPL-2.0-only

package lzma

// decodeBitTree decodes a numBits-wide symbol MSB-first through a
// forward bit tree of 1<<numBits probabilities (index 0 unused, as is
// conventional for this addressing scheme). On suspension (ok=false) the
// partially accumulated symbol is simply discarded: the caller aborts
// and rolls back the whole decode attempt, so there is nothing here to
// preserve across calls.
func decodeBitTree(d *Decoder, c *cursor, probs []prob, numBits int) (uint32, bool) {
	symbol := uint32(1)
	for i := 0; i < numBits; i++ {
		bit, ok := d.decodeBit(&probs[symbol], c)
		if !ok {
			return 0, false
		}
		symbol = (symbol << 1) | bit
	}
	return symbol - (1 << uint(numBits)), true
}

// decodeBitTreeReverse decodes a numBits-wide symbol LSB-first. probs is
// addressed through probsOffset+symbol, where symbol walks the same
// forward-tree indices as decodeBitTree; this packed addressing is what
// lets the distance "special" table share one flat array across several
// distance slots without overlapping.
func decodeBitTreeReverse(d *Decoder, c *cursor, probs []prob, probsOffset int, numBits int) (uint32, bool) {
	symbol := uint32(1)
	result := uint32(0)
	for i := 0; i < numBits; i++ {
		bit, ok := d.decodeBit(&probs[probsOffset+int(symbol)], c)
		if !ok {
			return 0, false
		}
		symbol = (symbol << 1) | bit
		result |= bit << uint(i)
	}
	return result, true
}

// decodeDirectBits decodes numBits unmodeled bits MSB-first.
func decodeDirectBits(d *Decoder, c *cursor, numBits int) (uint32, bool) {
	result := uint32(0)
	for i := 0; i < numBits; i++ {
		bit, ok := d.rd.decodeDirectBit(c)
		if !ok {
			return 0, false
		}
		result = (result << 1) | bit
	}
	return result, true
}
