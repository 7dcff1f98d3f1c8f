package bitbuf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pignacio/d2-itemsorter-go/bitbuf"
)

func TestFromBytes_BitOrderIsLSBFirst(t *testing.T) {
	b := bitbuf.FromBytes([]byte{0b0000_0101})
	require.True(t, b.Bit(0))
	require.False(t, b.Bit(1))
	require.True(t, b.Bit(2))
	for i := uint64(3); i < 8; i++ {
		require.False(t, b.Bit(i))
	}
	require.Equal(t, uint64(8), b.Len())
}

func TestSetBit_RoundTrips(t *testing.T) {
	b := bitbuf.New(16)
	b.SetBit(0, true)
	b.SetBit(15, true)
	b.SetBit(7, true)
	require.True(t, b.Bit(0))
	require.True(t, b.Bit(7))
	require.True(t, b.Bit(15))
	require.False(t, b.Bit(1))
}

func TestSlice(t *testing.T) {
	b := bitbuf.FromBytes([]byte{0xff, 0x00})
	s := b.Slice(4, 12)
	require.Equal(t, uint64(8), s.Len())
	for i := uint64(0); i < 4; i++ {
		require.True(t, s.Bit(i))
	}
	for i := uint64(4); i < 8; i++ {
		require.False(t, s.Bit(i))
	}
}

func TestAppend(t *testing.T) {
	a := bitbuf.FromBytes([]byte{0x0f})
	b := bitbuf.FromBytes([]byte{0xf0})
	joined := bitbuf.Append(a, b)
	require.Equal(t, uint64(16), joined.Len())
	require.True(t, bitbuf.Equal(joined, bitbuf.FromBytes([]byte{0x0f, 0xf0})))
}

func TestEqual(t *testing.T) {
	a := bitbuf.FromBytes([]byte{0xab, 0xcd})
	b := bitbuf.FromBytes([]byte{0xab, 0xcd})
	c := bitbuf.FromBytes([]byte{0xab, 0xce})
	require.True(t, bitbuf.Equal(a, b))
	require.False(t, bitbuf.Equal(a, c))
}

func TestFirstMismatch(t *testing.T) {
	a := bitbuf.FromBytes([]byte{0xff, 0xff})
	b := bitbuf.FromBytes([]byte{0xff, 0xfe})
	idx, found := bitbuf.FirstMismatch(a, b)
	require.True(t, found)
	require.Equal(t, uint64(8), idx)

	idx, found = bitbuf.FirstMismatch(a, a)
	require.False(t, found)
	require.Equal(t, uint64(0), idx)
}

func TestSearch(t *testing.T) {
	// 0x4A 0x4D is the "JM" item magic, preceded by one prefix byte
	// (0b101), so the first match begins at bit 8.
	b := bitbuf.FromBytes([]byte{0b0000_0101, 0x4A, 0x4D})
	needle := bitbuf.FromBytes([]byte{0x4A, 0x4D})
	offset, found := bitbuf.Search(b, 0, needle, 0)
	require.True(t, found)
	require.Equal(t, uint64(8), offset)
}

func TestCountConsecutiveSetBits(t *testing.T) {
	b := bitbuf.FromBytes([]byte{0xff, 0x01})
	require.Equal(t, uint64(9), bitbuf.CountConsecutiveSetBits(b, 0))
	require.Equal(t, uint64(0), bitbuf.CountConsecutiveSetBits(b, 9))
}
