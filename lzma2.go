// SPDX-License-Identifier: GPL-2.0-only

package lzma

// lzma2ResetMode is the four-level hierarchy a compressed chunk's
// control byte selects from: none < state < state+props < state+props+dict.
type lzma2ResetMode int

const (
	lzma2ResetNone lzma2ResetMode = iota
	lzma2ResetState
	lzma2ResetStateProps
	lzma2ResetStatePropsDict
)

const (
	lzma2CtrlEnd             = 0x00
	lzma2CtrlUncompressedRst = 0x01
	lzma2CtrlUncompressedNop = 0x02
	lzma2CtrlCompressedMin   = 0x80
)

type lzma2Phase int

const (
	lzma2PhaseControl lzma2Phase = iota
	lzma2PhaseUncompressedSize
	lzma2PhaseUncompressedCopy
	lzma2PhaseCompressedSizes
	lzma2PhaseCompressedProps
	lzma2PhasePayload
	lzma2PhaseDone
)

// lzma2Driver drives the LZMA2 chunk state machine: a one-byte control
// word selects an uncompressed chunk, a compressed chunk (with one of
// four reset modes), or the end marker. Chunks share one Decoder and one
// Dictionary across the whole stream; only the reset mode says how much
// of that shared state a chunk may rely on.
type lzma2Driver struct {
	phase lzma2Phase
	sizes byteField

	control        byte
	resetMode      lzma2ResetMode
	unpackedSize   uint32 // chunk's declared uncompressed size
	packedSize     uint32 // chunk's declared compressed size (compressed chunks only)
	chunkStartDict uint64 // dict.Total() at the start of this chunk
	payloadStart   int64  // absolute input position where range-coded bytes begin

	seenFirstChunk bool
	propsSet       bool
}

func (d *lzma2Driver) reset() {
	*d = lzma2Driver{}
}

// processLZMA2 drives the LZMA2 driver as far as it can with the bytes
// currently available in c. done=true means the 0x00 end-of-stream
// control byte was consumed.
func (s *Stream) processLZMA2(c *cursor, sink Sink) (done bool, err error) {
	drv := &s.lzma2
	for {
		switch drv.phase {
		case lzma2PhaseControl:
			b, ok := c.next()
			if !ok {
				return false, nil
			}
			drv.control = b

			if b == lzma2CtrlEnd {
				drv.phase = lzma2PhaseDone
				return true, nil
			}

			if b < lzma2CtrlCompressedMin {
				if b != lzma2CtrlUncompressedRst && b != lzma2CtrlUncompressedNop {
					return false, ErrInvalidHeader
				}
				if !drv.seenFirstChunk && b != lzma2CtrlUncompressedRst {
					return false, ErrInvalidProperties
				}
				drv.sizes.start(2)
				drv.phase = lzma2PhaseUncompressedSize
				continue
			}

			drv.resetMode = lzma2ResetMode((b >> 5) & 0x3)
			if !drv.seenFirstChunk && drv.resetMode != lzma2ResetStatePropsDict {
				return false, ErrInvalidProperties
			}
			if drv.resetMode < lzma2ResetStateProps && !drv.propsSet {
				return false, ErrInvalidProperties
			}
			drv.unpackedSize = uint32(b&0x1F) << 16
			drv.sizes.start(4)
			drv.phase = lzma2PhaseCompressedSizes

		case lzma2PhaseUncompressedSize:
			if !drv.sizes.fill(c) {
				return false, nil
			}
			drv.unpackedSize = drv.sizes.u16be(0) + 1
			if drv.control == lzma2CtrlUncompressedRst {
				s.dict.Reset()
			}
			drv.chunkStartDict = s.dict.Total()
			drv.phase = lzma2PhaseUncompressedCopy

		case lzma2PhaseUncompressedCopy:
			for {
				if s.dec.drainPending(sink) {
					return false, nil
				}
				if s.dict.Total()-drv.chunkStartDict >= uint64(drv.unpackedSize) {
					break
				}
				b, ok := c.next()
				if !ok {
					return false, nil
				}
				s.dec.pushRaw(b)
			}
			drv.seenFirstChunk = true
			drv.phase = lzma2PhaseControl

		case lzma2PhaseCompressedSizes:
			if !drv.sizes.fill(c) {
				return false, nil
			}
			drv.unpackedSize |= drv.sizes.u16be(0)
			drv.unpackedSize++
			drv.packedSize = drv.sizes.u16be(2) + 1
			if drv.resetMode >= lzma2ResetStateProps {
				drv.sizes.start(1)
				drv.phase = lzma2PhaseCompressedProps
			} else {
				s.beginLZMA2Payload(c)
			}

		case lzma2PhaseCompressedProps:
			if !drv.sizes.fill(c) {
				return false, nil
			}
			props, perr := parseProperties(drv.sizes.byte(0))
			if perr != nil {
				return false, perr
			}
			s.props = props
			drv.propsSet = true
			s.beginLZMA2Payload(c)

		case lzma2PhasePayload:
			ok, ierr := s.dec.rd.init(c)
			if ierr != nil {
				return false, ierr
			}
			if !ok {
				return false, nil
			}
			limit := drv.chunkStartDict + uint64(drv.unpackedSize)
			chunkDone, viaMarker, rerr := runPayload(s.dec, c, sink, true, limit)
			if rerr != nil {
				return false, rerr
			}
			if !chunkDone {
				return false, nil
			}
			if viaMarker {
				// LZMA2 chunks end by declared size only; a marker
				// inside one is corruption.
				return false, ErrCorruptedStream
			}
			// Restore the normalization invariant eagerly so the bytes
			// the encoder's final flush wrote are consumed before the
			// declared packed size is checked against what was read.
			if !s.dec.rd.normalize(c) {
				return false, nil
			}
			if s.inputPos(c)-drv.payloadStart != int64(drv.packedSize) {
				return false, ErrCorruptedStream
			}
			drv.seenFirstChunk = true
			drv.phase = lzma2PhaseControl

		case lzma2PhaseDone:
			return true, nil
		}
	}
}

// beginLZMA2Payload applies the chunk's reset mode and hands control to
// the payload phase. The range coder restarts on every compressed chunk;
// the reset mode only decides how much of the model state survives.
func (s *Stream) beginLZMA2Payload(c *cursor) {
	drv := &s.lzma2
	switch drv.resetMode {
	case lzma2ResetStatePropsDict:
		s.dict.Reset()
		s.dec.Reset(s.props)
	case lzma2ResetStateProps, lzma2ResetState:
		s.dec.Reset(s.props)
	case lzma2ResetNone:
		// Keep existing probabilities, state, and rep ring.
	}
	drv.chunkStartDict = s.dict.Total()
	drv.payloadStart = s.inputPos(c)
	s.dec.rd.reset()
	drv.phase = lzma2PhasePayload
}
