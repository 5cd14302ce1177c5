// SPDX-License-Identifier: GPL-2.0-only

package lzma

// UnpackedSizeUnknown marks Config.UnpackedSizeOverride as "no expected
// size": an LZMA1 stream then uses the unpacked size its header
// declares, or runs until the end-of-stream marker when the header
// declares none. LZMA2 and XZ streams ignore the override.
const UnpackedSizeUnknown int64 = -1

// Config configures a Stream's behavior at construction time.
type Config struct {
	// AllowIncomplete controls what Process returns when it is called
	// with empty input (the caller's declaration that no more input is
	// coming) while the stream is not in a terminal state. true ->
	// StatusIncomplete; false -> ErrUnexpectedEOF. A call that merely
	// runs out of the bytes it was given returns StatusIncomplete
	// either way.
	AllowIncomplete bool

	// MemLimit caps the dictionary size a header is allowed to declare,
	// in addition to the Stream's own dictCap. A header declaring a
	// larger dictionary is rejected with ErrDictionaryTooLarge. Zero
	// means "no additional limit beyond dictCap".
	MemLimit int

	// UnpackedSizeOverride supplies the expected decompressed length for
	// a raw LZMA1 stream that has no in-band size (or to override it).
	// UnpackedSizeUnknown means "accept the in-band size, or run until
	// the end-of-stream marker if the header declares none".
	UnpackedSizeOverride int64
}

// DefaultConfig returns a Config with incomplete processing allowed, no
// additional memory limit, and the in-band unpacked size honored.
func DefaultConfig() Config {
	return Config{
		AllowIncomplete:      true,
		MemLimit:             0,
		UnpackedSizeOverride: UnpackedSizeUnknown,
	}
}
