// SPDX-License-Identifier: GPL-2.0-only

package checksum

import (
	"crypto/sha256"
	"encoding/binary"
	"hash/crc32"
	"hash/crc64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindSizes(t *testing.T) {
	assert.Equal(t, 0, None.Size())
	assert.Equal(t, 4, CRC32.Size())
	assert.Equal(t, 8, CRC64.Size())
	assert.Equal(t, 32, SHA256.Size())
	assert.Equal(t, -1, Kind(0x03).Size())
	assert.False(t, Kind(0x03).Valid())
	assert.True(t, CRC64.Valid())
}

func TestVerify(t *testing.T) {
	data := []byte("integrity is someone else's job, verdicts are ours")

	crc := binary.LittleEndian.AppendUint32(nil, crc32.ChecksumIEEE(data))
	ok, err := Verify(Verdict{Kind: CRC32, Bytes: crc}, data)
	require.NoError(t, err)
	assert.True(t, ok)

	c64 := binary.LittleEndian.AppendUint64(nil, crc64.Checksum(data, crc64.MakeTable(crc64.ECMA)))
	ok, err = Verify(Verdict{Kind: CRC64, Bytes: c64}, data)
	require.NoError(t, err)
	assert.True(t, ok)

	sum := sha256.Sum256(data)
	ok, err = Verify(Verdict{Kind: SHA256, Bytes: sum[:]}, data)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify(Verdict{Kind: None}, data)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_Mismatch(t *testing.T) {
	data := []byte("original")
	crc := binary.LittleEndian.AppendUint32(nil, crc32.ChecksumIEEE(data))
	ok, err := Verify(Verdict{Kind: CRC32, Bytes: crc}, []byte("tampered"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_BadVerdicts(t *testing.T) {
	_, err := Verify(Verdict{Kind: CRC32, Bytes: []byte{1, 2}}, nil)
	assert.Error(t, err)
	_, err = Verify(Verdict{Kind: Kind(0x03)}, nil)
	assert.Error(t, err)
}
