// SPDX-License-Identifier: GPL-2.0-only

package lzma

import "errors"

// Sentinel errors for the decoder. Every one is terminal for the current
// Stream; Reset is the only recovery.
var (
	// ErrInvalidHeader is returned when the first range-coder payload byte
	// is non-zero, or LZMA1/LZMA2/XZ framing bytes are out of spec.
	ErrInvalidHeader = errors.New("lzma: invalid header")
	// ErrInvalidProperties is returned when lc+lp > 4, pb > 4, or LZMA2
	// declares a state-only reset before properties have ever been set.
	ErrInvalidProperties = errors.New("lzma: invalid properties")
	// ErrUnsupportedFilter is returned when an XZ block declares a filter
	// id other than LZMA2, or declares more than one filter.
	ErrUnsupportedFilter = errors.New("lzma: unsupported filter")
	// ErrDictionaryTooLarge is returned when a declared dictionary size
	// exceeds the Stream's capacity or configured MemLimit.
	ErrDictionaryTooLarge = errors.New("lzma: dictionary too large")
	// ErrCorruptedStream is returned for out-of-range back-references, rep
	// slots referenced before being set, a range decoder that finished
	// with code != 0, an LZMA2 chunk size mismatch, or non-zero XZ padding.
	ErrCorruptedStream = errors.New("lzma: corrupted stream")
	// ErrUnexpectedEOF is returned when input ends mid-symbol and
	// Config.AllowIncomplete is false.
	ErrUnexpectedEOF = errors.New("lzma: unexpected end of input")
	// ErrOutputTooLong is returned when more bytes are produced than the
	// declared unpacked size.
	ErrOutputTooLong = errors.New("lzma: output exceeds declared size")
)
