// SPDX-License-Identifier: GPL-2.0-only

package lzma

const lzma1HeaderSize = 13

// lzma1Phase is the resumable position of the LZMA1 frame driver. Every
// suspension point (partial header, partial range-coder init, payload
// exhaustion) is one of these values plus the byteField's own progress.
type lzma1Phase int

const (
	lzma1PhaseHeader lzma1Phase = iota
	lzma1PhaseRangeInit
	lzma1PhasePayload
	lzma1PhaseDone
)

// lzma1Driver drives a single raw LZMA1 stream: a 13-byte header
// (properties, dictionary size, unpacked size) followed directly by the
// range-coded payload, terminated by a declared byte count, the
// end-of-stream marker, or both.
type lzma1Driver struct {
	phase         lzma1Phase
	hdr           byteField
	unpackedSize  uint64
	unpackedKnown bool
}

func (d *lzma1Driver) reset() {
	*d = lzma1Driver{}
}

// processLZMA1 drives the LZMA1 driver as far as it can go with the bytes
// currently available in c, delivering decoded output to sink. done=true
// means the stream reached a terminal state (declared size satisfied,
// or the end-of-stream marker was decoded, or both).
func (s *Stream) processLZMA1(c *cursor, sink Sink) (done bool, err error) {
	drv := &s.lzma1
	for {
		switch drv.phase {
		case lzma1PhaseHeader:
			if drv.hdr.need == 0 {
				drv.hdr.start(lzma1HeaderSize)
			}
			if !drv.hdr.fill(c) {
				return false, nil
			}
			props, perr := parseProperties(drv.hdr.byte(0))
			if perr != nil {
				return false, perr
			}
			dictSize := drv.hdr.u32le(1)
			if err := s.checkDictionarySize(dictSize); err != nil {
				return false, err
			}
			rawSize := drv.hdr.u64le(5)
			if rawSize == ^uint64(0) {
				drv.unpackedKnown = false
			} else {
				drv.unpackedKnown = true
				drv.unpackedSize = rawSize
			}
			if s.cfg.UnpackedSizeOverride != UnpackedSizeUnknown {
				drv.unpackedKnown = true
				drv.unpackedSize = uint64(s.cfg.UnpackedSizeOverride)
			}
			s.dict.Reset()
			s.dec.Reset(props)
			s.props = props
			drv.phase = lzma1PhaseRangeInit

		case lzma1PhaseRangeInit:
			ok, rerr := s.dec.rd.init(c)
			if rerr != nil {
				return false, rerr
			}
			if !ok {
				return false, nil
			}
			drv.phase = lzma1PhasePayload

		case lzma1PhasePayload:
			ok, viaMarker, rerr := runPayload(s.dec, c, sink, drv.unpackedKnown, drv.unpackedSize)
			if rerr != nil {
				return false, rerr
			}
			if !ok {
				return false, nil
			}
			if viaMarker {
				// A marker flushes the range coder completely, so a
				// correctly terminated stream leaves code == 0. A stream
				// terminated by its declared size alone carries no such
				// guarantee and is not checked.
				if !s.dec.rd.isFinishedOK() {
					return false, ErrCorruptedStream
				}
				if drv.unpackedKnown && s.dict.Total() != drv.unpackedSize {
					return false, ErrCorruptedStream
				}
			}
			drv.phase = lzma1PhaseDone
			return true, nil

		case lzma1PhaseDone:
			return true, nil
		}
	}
}
