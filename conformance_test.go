// SPDX-License-Identifier: GPL-2.0-only

// Conformance tests decode streams produced by the reference Go LZMA
// implementation (github.com/ulikunitz/xz), whose encoders exercise
// real match finding, rep distances, and container framing that the
// hand-built fixtures elsewhere cannot.

package lzma

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	refxz "github.com/ulikunitz/xz"
	reflzma "github.com/ulikunitz/xz/lzma"

	"github.com/go-lzma/core/checksum"
)

// corpus builds a deterministic, compressible test body: repeated
// phrases with pseudo-random interruptions so the encoder emits a mix
// of literals, matches, and reps.
func corpus(n int) []byte {
	rng := rand.New(rand.NewSource(0x1ee7))
	var buf bytes.Buffer
	phrases := []string{
		"the range decoder must stay normalized, ",
		"back-references resolve against the ring, ",
		"0123456789abcdef",
	}
	for buf.Len() < n {
		buf.WriteString(phrases[rng.Intn(len(phrases))])
		if rng.Intn(4) == 0 {
			buf.WriteByte(byte(rng.Intn(256)))
		}
	}
	return buf.Bytes()[:n]
}

func encodeLZMA1(t *testing.T, data []byte, props reflzma.Properties, dictCap int) []byte {
	t.Helper()
	var buf bytes.Buffer
	cfg := reflzma.WriterConfig{Properties: &props, DictCap: dictCap}
	w, err := cfg.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestConformance_LZMA1RoundTrip(t *testing.T) {
	data := corpus(4096)
	for _, props := range []reflzma.Properties{
		{LC: 3, LP: 0, PB: 2},
		{LC: 0, LP: 2, PB: 0},
		{LC: 1, LP: 3, PB: 4},
		{LC: 4, LP: 0, PB: 1},
	} {
		stream := encodeLZMA1(t, data, props, 1<<16)
		out := decodeChunked(t, FrameLZMA1, 1<<16, DefaultConfig(), stream, len(stream))
		require.Equal(t, data, out, "props %+v", props)
	}
}

func TestConformance_LZMA1ChunkIndependence(t *testing.T) {
	data := corpus(2048)
	stream := encodeLZMA1(t, data, reflzma.Properties{LC: 3, LP: 0, PB: 2}, 1<<16)

	whole := decodeChunked(t, FrameLZMA1, 1<<16, DefaultConfig(), stream, len(stream))
	require.Equal(t, data, whole)
	for _, chunk := range []int{1, 2, 3, 13, 64, 1000} {
		out := decodeChunked(t, FrameLZMA1, 1<<16, DefaultConfig(), stream, chunk)
		require.Equal(t, whole, out, "chunk size %d", chunk)
	}
}

func TestConformance_LZMA2RoundTrip(t *testing.T) {
	data := corpus(8192)
	var buf bytes.Buffer
	cfg := reflzma.Writer2Config{DictCap: 1 << 16}
	w, err := cfg.NewWriter2(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	stream := buf.Bytes()

	for _, chunk := range []int{len(stream), 17} {
		out := decodeChunked(t, FrameLZMA2, 1<<16, DefaultConfig(), stream, chunk)
		require.Equal(t, data, out, "chunk size %d", chunk)
	}
}

func TestConformance_XZRoundTrip(t *testing.T) {
	data := corpus(8192)
	var buf bytes.Buffer
	w, err := refxz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	frame := buf.Bytes()

	s, err := NewStream(FrameXZ, 1<<26, DefaultConfig())
	require.NoError(t, err)
	out, sink := acceptAll()
	pos, avail := 0, 0
	for {
		if avail < len(frame) {
			avail += 997
			if avail > len(frame) {
				avail = len(frame)
			}
		}
		n, status, err := s.Process(frame[pos:avail], sink)
		require.NoError(t, err)
		pos += n
		if status == StatusDone {
			break
		}
		require.False(t, n == 0 && avail == len(frame), "stalled")
	}
	require.Equal(t, data, out.Bytes())

	// The reference writer defaults to CRC64; the surfaced verdict must
	// verify against the decoded output.
	verdict := s.Check()
	require.Equal(t, checksum.CRC64, verdict.Kind)
	ok, err := checksum.Verify(verdict, out.Bytes())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestConformance_XZBackpressuredSink(t *testing.T) {
	data := corpus(1024)
	var buf bytes.Buffer
	w, err := refxz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	frame := buf.Bytes()

	s, err := NewStream(FrameXZ, 1<<26, DefaultConfig())
	require.NoError(t, err)
	var out []byte
	sink := func(p []byte) int {
		if len(p) == 0 {
			return 0
		}
		out = append(out, p[0])
		return 1
	}
	rest := frame
	for i := 0; ; i++ {
		require.Less(t, i, 100*len(frame)+100*len(data), "no forward progress")
		n, status, err := s.Process(rest, sink)
		require.NoError(t, err)
		rest = rest[n:]
		if status == StatusDone {
			break
		}
	}
	require.Equal(t, data, out)
}
