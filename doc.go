// SPDX-License-Identifier: GPL-2.0-only

/*
Package lzma implements an allocation-free, incrementally resumable LZMA
decoder suitable for bare-metal and embedded execution. It accepts raw
LZMA1 streams, LZMA2 chunk streams, or a subset of the XZ container, and
decodes them into caller-supplied byte sinks.

The decoder never allocates after construction, keeps no global mutable
state, and does not assume a threading runtime. A Stream is constructed
once with a fixed dictionary capacity; Reset returns it to its initial
state without releasing or reallocating that capacity.

# Incremental decoding

Feed input and drain output via Process. Process returns as soon as input
is exhausted or the sink signals backpressure; internal state (range
decoder position, partial symbol, residual match-copy length) survives
across calls, so bytes can arrive in arbitrarily small pieces:

	st, err := lzma.NewStream(lzma.FrameLZMA1, 1<<20, lzma.DefaultConfig())
	for len(input) > 0 {
		n, status, err := st.Process(input, sink)
		input = input[n:]
		if status == lzma.StatusDone {
			break
		}
	}

# Framing

NewStream picks the container at construction time (FrameLZMA1, FrameLZMA2,
or FrameXZ) since callers always know which framing they are feeding before
the first byte arrives.
*/
package lzma
