// SPDX-License-Identifier: GPL-2.0-only

package lzma

// cursor is a resumable read position over the input slice handed to the
// current Process call. It carries no buffering of its own: when it runs
// out of bytes, callers simply stop and report how far cursor.pos reached.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) next() (byte, bool) {
	if c.pos >= len(c.buf) {
		return 0, false
	}
	b := c.buf[c.pos]
	c.pos++
	return b, true
}

// topValue is the renormalization threshold: range must never be allowed
// to drop below it across a completed bit decode.
const topValue = 1 << 24

// rangeDecoder holds the full resumable state of the arithmetic decoder
// in two u32 words. headerPos tracks progress through the 5-byte stream
// header, which itself may arrive split across Process calls.
type rangeDecoder struct {
	rng       uint32
	code      uint32
	headerPos int // 0..5; 5 means the header has been fully consumed
}

// reset returns the range decoder to its pre-header state. Used by
// Stream.Reset and at the start of every LZMA2 compressed chunk,
// whatever its reset mode.
func (r *rangeDecoder) reset() {
	*r = rangeDecoder{}
}

// init consumes the 5-byte range-coder header (a sentinel 0x00 byte
// followed by a 4-byte big-endian initial code). It is resumable: if the
// cursor runs dry partway through the 5 bytes, headerPos preserves
// progress for the next call. Returns done=true once the header is fully
// consumed and rng/code are ready for decodeBit.
func (r *rangeDecoder) init(c *cursor) (done bool, err error) {
	if r.headerPos == 5 {
		return true, nil
	}
	for r.headerPos < 5 {
		b, ok := c.next()
		if !ok {
			return false, nil
		}
		if r.headerPos == 0 {
			if b != 0 {
				return false, ErrInvalidHeader
			}
		} else {
			r.code = (r.code << 8) | uint32(b)
		}
		r.headerPos++
	}
	r.rng = 0xFFFFFFFF
	return true, nil
}

// normalize restores the invariant rng >= topValue by shifting in bytes
// from c. It is naturally resumable: rng/code only change once a byte has
// actually been read, so running out of input mid-loop leaves valid,
// resumable state behind with no extra bookkeeping.
func (r *rangeDecoder) normalize(c *cursor) bool {
	for r.rng < topValue {
		b, ok := c.next()
		if !ok {
			return false
		}
		r.rng <<= 8
		r.code = (r.code << 8) | uint32(b)
	}
	return true
}

// isFinishedOK reports whether the range decoder ended in the state a
// correctly terminated stream leaves it in.
func (r *rangeDecoder) isFinishedOK() bool {
	return r.code == 0
}

// decodeDirectBit decodes one unmodeled bit: no probability, no
// adaptation. Used for the high-order distance bits beyond slot 13.
func (r *rangeDecoder) decodeDirectBit(c *cursor) (bit uint32, ok bool) {
	if !r.normalize(c) {
		return 0, false
	}
	r.rng >>= 1
	if r.code >= r.rng {
		r.code -= r.rng
		return 1, true
	}
	return 0, true
}
