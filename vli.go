// SPDX-License-Identifier: GPL-2.0-only

package lzma

// vliField resumably decodes an XZ-style variable length integer:
// little-endian base-128 groups, continuation signaled by the top bit of
// each byte. Used for the handful of XZ Index/block-header fields this
// core's subset needs to skip past rather than interpret.
type vliField struct {
	value uint64
	shift uint
}

func (v *vliField) reset() { *v = vliField{} }

// read consumes bytes from c until the VLI terminates or 64 bits would
// be exceeded. ok=false means the cursor ran dry; resume by calling read
// again on the next Process call — shift/value already hold whatever
// groups were decoded so far.
func (v *vliField) read(c *cursor) (ok bool, err error) {
	for {
		b, got := c.next()
		if !got {
			return false, nil
		}
		if v.shift >= 63 {
			return false, ErrInvalidHeader
		}
		v.value |= uint64(b&0x7f) << v.shift
		v.shift += 7
		if b&0x80 == 0 {
			return true, nil
		}
	}
}

// decodeVLIBytes decodes a VLI from an already-fully-buffered slice,
// for the block header body this core always reads in one shot via
// byteField before parsing it.
func decodeVLIBytes(buf []byte, i *int) (uint64, error) {
	var value uint64
	var shift uint
	for {
		if *i >= len(buf) {
			return 0, ErrInvalidHeader
		}
		b := buf[*i]
		*i++
		if shift >= 63 {
			return 0, ErrInvalidHeader
		}
		value |= uint64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			return value, nil
		}
	}
}
