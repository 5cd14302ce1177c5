// SPDX-License-Identifier: GPL-2.0-only

package lzma

import "github.com/go-lzma/core/checksum"

var xzStreamMagic = [6]byte{0xFD, '7', 'z', 'X', 'Z', 0x00}
var xzFooterMagic = [2]byte{'Y', 'Z'}

const xzFilterIDLZMA2 = 0x21

type xzPhase int

const (
	xzPhaseStreamHeader xzPhase = iota
	xzPhaseBlockOrIndex
	xzPhaseBlockHeaderBody
	xzPhaseBlockData
	xzPhaseBlockPadding
	xzPhaseBlockCheck
	xzPhaseIndexNumRecords
	xzPhaseIndexRecordVLIs
	xzPhaseIndexPadding
	xzPhaseIndexCRC
	xzPhaseFooter
	xzPhaseDone
)

// xzDriver drives a subset of the XZ container format: a stream header
// declaring the check type, one or more blocks each wrapping a single
// LZMA2-filtered payload, and an index+footer whose sizes are validated
// but whose contents otherwise are not. Check verdicts are surfaced to
// the caller, never verified inside the decoder.
type xzDriver struct {
	phase xzPhase
	hdr   byteField

	checkKind checksum.Kind

	blockDataStart int64
	blocksSeen     uint64
	padRemaining   int
	indexBytes     int64 // bytes of the index consumed so far, for 4-byte padding
	numRecords     uint64
	recordVLIsLeft uint64
	vli            vliField
}

func (d *xzDriver) reset() {
	*d = xzDriver{}
}

// lzma2DictSizeFromCode converts an XZ LZMA2 filter properties byte
// (0..40) into the dictionary size it declares, per the XZ format
// specification.
func lzma2DictSizeFromCode(code byte) (uint32, error) {
	if code > 40 {
		return 0, ErrInvalidProperties
	}
	if code == 40 {
		return 0xFFFFFFFF, nil
	}
	return (2 | uint32(code&1)) << (uint(code)/2 + 11), nil
}

func (s *Stream) processXZ(c *cursor, sink Sink) (done bool, err error) {
	drv := &s.xz
	for {
		switch drv.phase {
		case xzPhaseStreamHeader:
			if drv.hdr.need == 0 {
				drv.hdr.start(12)
			}
			if !drv.hdr.fill(c) {
				return false, nil
			}
			for i := 0; i < 6; i++ {
				if drv.hdr.byte(i) != xzStreamMagic[i] {
					return false, ErrInvalidHeader
				}
			}
			if drv.hdr.byte(6) != 0x00 {
				return false, ErrInvalidHeader
			}
			checkKind := checksum.Kind(drv.hdr.byte(7) & 0x0F)
			if drv.hdr.byte(7)&0xF0 != 0 || !checkKind.Valid() {
				return false, ErrInvalidHeader
			}
			drv.checkKind = checkKind
			// bytes 8..11 are the CRC32 of the flags field: consumed,
			// never recomputed here (see package checksum).
			drv.hdr.start(0)
			drv.phase = xzPhaseBlockOrIndex

		case xzPhaseBlockOrIndex:
			b, ok := c.next()
			if !ok {
				return false, nil
			}
			if b == 0x00 {
				// Index indicator.
				drv.indexBytes = 1
				drv.vli.reset()
				drv.phase = xzPhaseIndexNumRecords
				continue
			}
			bodyLen := (int(b)+1)*4 - 1
			if bodyLen > len(drv.hdr.buf) {
				return false, ErrUnsupportedFilter
			}
			drv.hdr.start(bodyLen)
			drv.phase = xzPhaseBlockHeaderBody

		case xzPhaseBlockHeaderBody:
			if !drv.hdr.fill(c) {
				return false, nil
			}
			if err := s.parseBlockHeaderBody(drv.hdr.buf[:drv.hdr.need]); err != nil {
				return false, err
			}
			s.lzma2.reset()
			drv.blockDataStart = s.inputPos(c)
			drv.phase = xzPhaseBlockData

		case xzPhaseBlockData:
			blockDone, berr := s.processLZMA2(c, sink)
			if berr != nil {
				return false, berr
			}
			if !blockDone {
				return false, nil
			}
			consumed := s.inputPos(c) - drv.blockDataStart
			drv.padRemaining = int((4 - consumed%4) % 4)
			drv.phase = xzPhaseBlockPadding

		case xzPhaseBlockPadding:
			for drv.padRemaining > 0 {
				b, ok := c.next()
				if !ok {
					return false, nil
				}
				if b != 0 {
					return false, ErrCorruptedStream
				}
				drv.padRemaining--
			}
			drv.hdr.start(drv.checkKind.Size())
			drv.phase = xzPhaseBlockCheck

		case xzPhaseBlockCheck:
			if !drv.hdr.fill(c) {
				return false, nil
			}
			n := drv.checkKind.Size()
			copy(s.checkBuf[:], drv.hdr.buf[:n])
			s.lastCheck = checksum.Verdict{Kind: drv.checkKind, Bytes: s.checkBuf[:n]}
			drv.blocksSeen++
			drv.hdr.start(0)
			drv.phase = xzPhaseBlockOrIndex

		case xzPhaseIndexNumRecords:
			ok, verr := drv.vli.read(c)
			if verr != nil {
				return false, verr
			}
			if !ok {
				return false, nil
			}
			drv.numRecords = drv.vli.value
			if drv.numRecords != drv.blocksSeen {
				return false, ErrCorruptedStream
			}
			drv.indexBytes += int64(drv.vli.shift / 7)
			drv.recordVLIsLeft = drv.numRecords * 2
			drv.vli.reset()
			drv.phase = xzPhaseIndexRecordVLIs

		case xzPhaseIndexRecordVLIs:
			if drv.recordVLIsLeft == 0 {
				drv.padRemaining = int((4 - drv.indexBytes%4) % 4)
				drv.phase = xzPhaseIndexPadding
				continue
			}
			ok, verr := drv.vli.read(c)
			if verr != nil {
				return false, verr
			}
			if !ok {
				return false, nil
			}
			// Record contents (unpadded size, uncompressed size) are
			// only structurally validated; the values themselves are
			// the caller's verifier's business.
			drv.indexBytes += int64(drv.vli.shift / 7)
			drv.vli.reset()
			drv.recordVLIsLeft--

		case xzPhaseIndexPadding:
			for drv.padRemaining > 0 {
				b, ok := c.next()
				if !ok {
					return false, nil
				}
				if b != 0 {
					return false, ErrCorruptedStream
				}
				drv.padRemaining--
			}
			drv.hdr.start(4)
			drv.phase = xzPhaseIndexCRC

		case xzPhaseIndexCRC:
			if !drv.hdr.fill(c) {
				return false, nil
			}
			drv.hdr.start(12)
			drv.phase = xzPhaseFooter

		case xzPhaseFooter:
			if !drv.hdr.fill(c) {
				return false, nil
			}
			// Footer layout: CRC32, backward size, stream flags, magic.
			// The flags must repeat the header's.
			if drv.hdr.byte(8) != 0x00 || drv.hdr.byte(9) != byte(drv.checkKind) {
				return false, ErrCorruptedStream
			}
			if drv.hdr.byte(10) != xzFooterMagic[0] || drv.hdr.byte(11) != xzFooterMagic[1] {
				return false, ErrInvalidHeader
			}
			drv.phase = xzPhaseDone
			return true, nil

		case xzPhaseDone:
			return true, nil
		}
	}
}

// parseBlockHeaderBody parses everything after the block-header size
// byte: block flags, optional compressed/uncompressed size fields, the
// single LZMA2 filter record this subset supports, padding, and the
// header's own CRC32 (consumed, not recomputed).
func (s *Stream) parseBlockHeaderBody(body []byte) error {
	if len(body) < 5 {
		return ErrInvalidHeader
	}
	i := 0
	flags := body[i]
	i++
	if flags&0x3C != 0 {
		return ErrInvalidHeader
	}
	if flags&0x03 != 0 {
		return ErrUnsupportedFilter
	}
	if flags&0x40 != 0 {
		if _, err := decodeVLIBytes(body, &i); err != nil {
			return err
		}
	}
	if flags&0x80 != 0 {
		if _, err := decodeVLIBytes(body, &i); err != nil {
			return err
		}
	}
	filterID, err := decodeVLIBytes(body, &i)
	if err != nil {
		return err
	}
	if filterID != xzFilterIDLZMA2 {
		return ErrUnsupportedFilter
	}
	propsSize, err := decodeVLIBytes(body, &i)
	if err != nil {
		return err
	}
	if propsSize != 1 || i+1 > len(body) {
		return ErrUnsupportedFilter
	}
	dictSize, err := lzma2DictSizeFromCode(body[i])
	i++
	if err != nil {
		return err
	}
	if err := s.checkDictionarySize(dictSize); err != nil {
		return err
	}
	for ; i < len(body)-4; i++ {
		if body[i] != 0 {
			return ErrCorruptedStream
		}
	}
	return nil
}
