// SPDX-License-Identifier: GPL-2.0-only

package lzmatest

import "encoding/binary"

// SizeUnknown is the unpacked-size field value marking "no declared
// size" in an LZMA1 header.
const SizeUnknown = ^uint64(0)

// PropsByte encodes an (lc, lp, pb) triple into the single-byte header
// form.
func PropsByte(lc, lp, pb int) byte {
	return byte((pb*5+lp)*9 + lc)
}

// LZMA1Header builds the 13-byte raw LZMA header.
func LZMA1Header(lc, lp, pb int, dictSize uint32, unpackedSize uint64) []byte {
	hdr := make([]byte, 13)
	hdr[0] = PropsByte(lc, lp, pb)
	binary.LittleEndian.PutUint32(hdr[1:5], dictSize)
	binary.LittleEndian.PutUint64(hdr[5:13], unpackedSize)
	return hdr
}

// LZMA1Stream concatenates a header and an encoded payload into a full
// raw LZMA stream.
func LZMA1Stream(lc, lp, pb int, dictSize uint32, unpackedSize uint64, payload []byte) []byte {
	return append(LZMA1Header(lc, lp, pb, dictSize, unpackedSize), payload...)
}

// LZMA2 chunk reset modes, as encoded in bits 5-6 of a compressed
// chunk's control byte.
const (
	ResetNone = iota
	ResetState
	ResetStateProps
	ResetStatePropsDict
)

// LZMA2Compressed wraps one encoded chunk payload in a compressed-chunk
// header. unpacked is the number of dictionary bytes the chunk decodes
// to; propsByte is appended only for reset modes that carry properties.
func LZMA2Compressed(reset int, propsByte byte, unpacked int, payload []byte) []byte {
	u := unpacked - 1
	p := len(payload) - 1
	out := []byte{
		byte(0x80 | reset<<5 | u>>16),
		byte(u >> 8), byte(u),
		byte(p >> 8), byte(p),
	}
	if reset >= ResetStateProps {
		out = append(out, propsByte)
	}
	return append(out, payload...)
}

// LZMA2Uncompressed wraps raw bytes in an uncompressed chunk. withReset
// selects the dictionary-resetting control byte (required for a
// stream's first chunk).
func LZMA2Uncompressed(withReset bool, data []byte) []byte {
	ctrl := byte(0x02)
	if withReset {
		ctrl = 0x01
	}
	u := len(data) - 1
	out := []byte{ctrl, byte(u >> 8), byte(u)}
	return append(out, data...)
}

// LZMA2End is the end-of-stream control byte.
var LZMA2End = []byte{0x00}
