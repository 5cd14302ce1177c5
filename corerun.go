// SPDX-License-Identifier: GPL-2.0-only

package lzma

// runPayload drives symbol decoding from c into dec until a terminal
// condition is reached or the call must suspend. When limitKnown is
// true, limit is the total dictionary byte count (Dictionary.Total) at
// which the stream is considered fully decoded, matching a declared
// LZMA1/LZMA2 unpacked size.
//
// done=true with viaMarker=true means the end-of-stream marker was
// decoded (and all pending output delivered); viaMarker=false means the
// declared limit was reached. On done=false with a nil error the call
// ran out of input or the sink applied backpressure; resume by calling
// again.
//
// It is shared by all three frame drivers: once each has located the
// payload bytes for the current chunk/block, the symbol-decode loop
// itself does not care which container they came from.
func runPayload(dec *Decoder, c *cursor, sink Sink, limitKnown bool, limit uint64) (done, viaMarker bool, err error) {
	for {
		if dec.drainPending(sink) {
			return false, false, nil
		}
		if dec.eosSeen {
			return true, true, nil
		}
		if limitKnown && dec.dict.Total() >= limit {
			return true, false, nil
		}
		ok, end, err := dec.decodeOne(c)
		if err != nil {
			return false, false, err
		}
		if !ok {
			return false, false, nil
		}
		if end {
			// Latch the marker so a sink stall between here and the
			// drain above cannot lose it across a suspension.
			dec.eosSeen = true
			continue
		}
		if limitKnown && dec.dict.Total() > limit {
			return false, false, ErrOutputTooLong
		}
	}
}
