// SPDX-License-Identifier: GPL-2.0-only

package lzma

import (
	"fmt"

	"github.com/go-lzma/core/checksum"
)

// FrameKind selects the container framing a Stream expects. It is fixed
// at construction: callers always know which of the three framings they
// are feeding before the first byte arrives.
type FrameKind int

const (
	// FrameLZMA1 is a raw LZMA stream: 13-byte header (properties,
	// dictionary size, unpacked size) followed by range-coded payload.
	FrameLZMA1 FrameKind = iota
	// FrameLZMA2 is a bare LZMA2 chunk sequence terminated by a 0x00
	// control byte.
	FrameLZMA2
	// FrameXZ is an XZ container holding LZMA2-filtered blocks.
	FrameXZ
)

func (k FrameKind) String() string {
	switch k {
	case FrameLZMA1:
		return "lzma1"
	case FrameLZMA2:
		return "lzma2"
	case FrameXZ:
		return "xz"
	default:
		return "unknown"
	}
}

// minDictCap is the smallest dictionary a Stream will operate with.
// Declared dictionary sizes below it are legal in headers (encoders
// round them up the same way), so capacities are clamped rather than
// rejected.
const minDictCap = 1 << 12

// Stream is an incremental LZMA/LZMA2/XZ decompressor. It is
// constructed once with a fixed dictionary capacity; after NewStream
// returns, no code path allocates. Feed compressed bytes with Process;
// Reset returns the Stream to its initial state in place for reuse.
//
// A Stream must not be shared between goroutines. Multi-stream
// parallelism is achieved by instantiating disjoint Streams.
type Stream struct {
	kind FrameKind
	cfg  Config

	dict *Dictionary
	dec  *Decoder

	lzma1 lzma1Driver
	lzma2 lzma2Driver
	xz    xzDriver

	// props is the most recently parsed property triple, shared between
	// the LZMA2 driver's props-carrying chunks and those that inherit.
	props Properties

	// absConsumed is the total input consumed by completed Process
	// calls; absConsumed + cursor.pos is the absolute input position
	// mid-call, which the LZMA2 packed-size and XZ padding bookkeeping
	// are measured against.
	absConsumed int64

	lastCheck checksum.Verdict
	checkBuf  [32]byte

	done bool
	err  error
}

// NewStream constructs a Stream for the given framing with a dictionary
// of dictCap bytes. This call performs the Stream's only allocations;
// every later operation, including Reset, reuses them. Headers
// declaring a dictionary larger than dictCap (or cfg.MemLimit) are
// rejected at run time with ErrDictionaryTooLarge rather than
// truncated.
func NewStream(kind FrameKind, dictCap int, cfg Config) (*Stream, error) {
	switch kind {
	case FrameLZMA1, FrameLZMA2, FrameXZ:
	default:
		return nil, fmt.Errorf("lzma: unknown frame kind %d", int(kind))
	}
	if dictCap < minDictCap {
		dictCap = minDictCap
	}
	dict := NewDictionary(dictCap)
	s := &Stream{
		kind: kind,
		cfg:  cfg,
		dict: dict,
		dec:  NewDecoder(dict),
	}
	return s, nil
}

// Reset returns the Stream to its initial state without releasing or
// reallocating the dictionary's backing storage. It is the only
// recovery from a decode error and the supported reuse primitive.
func (s *Stream) Reset() {
	s.dict.Reset()
	s.dec.Reset(Properties{})
	s.dec.rd.reset()
	s.lzma1.reset()
	s.lzma2.reset()
	s.xz.reset()
	s.props = Properties{}
	s.absConsumed = 0
	s.lastCheck = checksum.Verdict{}
	s.done = false
	s.err = nil
}

// IsDone reports whether the stream has reached its terminal state.
func (s *Stream) IsDone() bool { return s.done }

// Check returns the most recent block's raw check record for XZ
// streams: the declared kind and the check bytes exactly as they
// appeared on the wire. The Stream consumes these bytes but never
// verifies them; pass the record to package checksum (or a verifier of
// your own) for a verdict. The zero Verdict is returned before any
// block has completed and for non-XZ framings.
func (s *Stream) Check() checksum.Verdict { return s.lastCheck }

// Process consumes as much of input as it can, delivering decoded
// output to sink. It returns the number of input bytes consumed and the
// stream status.
//
// Process suspends, returning StatusIncomplete, when input runs out
// mid-symbol or when sink applies backpressure; all internal state is
// preserved so a later call resumes from the same bit position. Calling
// Process with empty input declares that no more input is coming: if
// the stream is not in a terminal state, that is StatusIncomplete when
// cfg.AllowIncomplete is set and ErrUnexpectedEOF otherwise.
//
// Errors are terminal: every subsequent Process call returns the same
// error until Reset.
func (s *Stream) Process(input []byte, sink Sink) (consumed int, status Status, err error) {
	if s.err != nil {
		return 0, StatusIncomplete, s.err
	}
	if s.done {
		return 0, StatusDone, nil
	}

	c := cursor{buf: input}
	var done bool
	switch s.kind {
	case FrameLZMA1:
		done, err = s.processLZMA1(&c, sink)
	case FrameLZMA2:
		done, err = s.processLZMA2(&c, sink)
	case FrameXZ:
		done, err = s.processXZ(&c, sink)
	}
	s.absConsumed += int64(c.pos)

	if err != nil {
		s.err = err
		return c.pos, StatusIncomplete, err
	}
	if done {
		// Terminal, but the sink may still owe us delivery of decoded
		// bytes that backpressure left behind.
		if s.dec.drainPending(sink) {
			return c.pos, StatusIncomplete, nil
		}
		s.done = true
		return c.pos, StatusDone, nil
	}
	if len(input) == 0 && !s.dec.hasPending() && !s.cfg.AllowIncomplete {
		s.err = ErrUnexpectedEOF
		return c.pos, StatusIncomplete, s.err
	}
	return c.pos, StatusIncomplete, nil
}

// inputPos is the absolute position in the compressed stream of the
// next unread byte, valid mid-Process.
func (s *Stream) inputPos(c *cursor) int64 {
	return s.absConsumed + int64(c.pos)
}

func (s *Stream) checkDictionarySize(declared uint32) error {
	if uint64(declared) > uint64(s.dict.Cap()) {
		return ErrDictionaryTooLarge
	}
	if s.cfg.MemLimit > 0 && uint64(declared) > uint64(s.cfg.MemLimit) {
		return ErrDictionaryTooLarge
	}
	return nil
}
