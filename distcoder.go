// SPDX-License-Identifier: GPL-2.0-only

package lzma

const (
	numLenToPosStates = 4
	distSlotBits      = 6
	startPosModelIdx  = 4
	endPosModelIdx    = 14
	numAlignBits      = 4
	// numSpecialProbs rounds the special-distance table up to 128; only
	// indices up to numFullDistances-endPosModelIdx-1 (113) are ever
	// addressed.
	numFullDistances = 1 << (endPosModelIdx >> 1) // 128
	numSpecialProbs  = numFullDistances
)

// eosDist is the raw (pre +1) distance-coder output the encoder emits
// for the LZMA1 end-of-stream marker: all slot/direct/align bits set.
const eosDist uint32 = 0xFFFFFFFF

// distCoder implements LZMA's distance decoding: a 6-bit forward slot
// tree selected by lenToPosState, then either a packed reverse bit tree
// (slots 4..13), or numDirect-4 unmodeled bits plus a shared 4-bit
// reverse "align" tree (slots >= 14).
type distCoder struct {
	slot    [numLenToPosStates][1 << distSlotBits]prob
	special [numSpecialProbs]prob
	align   [1 << numAlignBits]prob
}

func (dc *distCoder) reset() {
	for i := range dc.slot {
		resetProbs(dc.slot[i][:])
	}
	resetProbs(dc.special[:])
	resetProbs(dc.align[:])
}

// decode returns the raw (pre +1) distance value for a match whose
// length-coder offset is n (see lenToPosState). eosDist signals the
// LZMA1 end-of-stream marker rather than an actual match.
func (dc *distCoder) decode(d *Decoder, c *cursor, n uint32) (uint32, bool) {
	posState := lenToPosState(n)
	slot, ok := decodeBitTree(d, c, dc.slot[posState][:], distSlotBits)
	if !ok {
		return 0, false
	}
	if slot < startPosModelIdx {
		return slot, true
	}
	numDirect := (slot >> 1) - 1
	dist := (2 | (slot & 1)) << numDirect
	if slot < endPosModelIdx {
		off := int(dist) - int(slot) - 1
		v, ok := decodeBitTreeReverse(d, c, dc.special[:], off, int(numDirect))
		if !ok {
			return 0, false
		}
		return dist + v, true
	}
	hi, ok := decodeDirectBits(d, c, int(numDirect-numAlignBits))
	if !ok {
		return 0, false
	}
	dist += hi << numAlignBits
	lo, ok := decodeBitTreeReverse(d, c, dc.align[:], 0, numAlignBits)
	if !ok {
		return 0, false
	}
	return dist + lo, true
}
