package checksum_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pignacio/d2-itemsorter-go/checksum"
)

func TestCompute_EmptyIsZero(t *testing.T) {
	require.Equal(t, uint32(0), checksum.Compute(nil))
}

func TestCompute_MatchesHandRotatedFold(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	var want uint32
	var carry uint32
	for _, b := range data {
		want = (want << 1) | (want >> 31)
		sum := uint64(want) + uint64(b) + uint64(carry)
		want = uint32(sum)
		carry = uint32(sum >> 32)
	}
	require.Equal(t, want, checksum.Compute(data))
}

func TestRecompute_IsFixedPointWhenReappliedToOwnOutput(t *testing.T) {
	data := make([]byte, 20)
	for i := range data {
		data[i] = byte(i + 1)
	}
	once := checksum.Recompute(data)
	twice := checksum.Recompute(once)
	require.Equal(t, once, twice, "recomputing over an already-patched blob must be a fixed point")
}

func TestRecompute_ZeroesFieldBeforeComputing(t *testing.T) {
	data := make([]byte, 20)
	data[12], data[13], data[14], data[15] = 0xFF, 0xFF, 0xFF, 0xFF
	withGarbage := checksum.Recompute(data)

	clean := make([]byte, 20)
	withoutGarbage := checksum.Recompute(clean)

	require.Equal(t, withoutGarbage[12:16], withGarbage[12:16])
}

func TestRecompute_ShortInputUntouched(t *testing.T) {
	data := []byte{1, 2, 3}
	require.Equal(t, data, checksum.Recompute(data))
}
