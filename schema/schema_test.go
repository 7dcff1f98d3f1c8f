package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pignacio/d2-itemsorter-go/bitio"
	"github.com/pignacio/d2-itemsorter-go/schema"
)

func TestBits_RoundTripsAndRendersPattern(t *testing.T) {
	w := bitio.NewWriter(nil, nil, nil)
	require.NoError(t, bitio.WriteInt[uint32](w, 0b1011, 4))
	r := bitio.NewReader(w.Buffer(), nil, nil, nil)

	b, err := schema.ReadBits(r, 4)
	require.NoError(t, err)
	require.Equal(t, "1011", b.String())

	w2 := bitio.NewWriter(nil, nil, nil)
	require.NoError(t, b.Write(w2))
	require.Equal(t, w.Buffer().Bytes(), w2.Buffer().Bytes())
}

func TestBytes_RoundTripsThroughUnalignedContext(t *testing.T) {
	w := bitio.NewWriter(nil, nil, nil)
	require.NoError(t, bitio.WriteInt[uint8](w, 0x5, 3)) // misalign the stream
	require.NoError(t, bitio.WriteInt[uint8](w, 0xAB, 8))
	require.NoError(t, bitio.WriteInt[uint8](w, 0xCD, 8))

	r := bitio.NewReader(w.Buffer(), nil, nil, nil)
	_, err := bitio.ReadInt[uint8](r, 3)
	require.NoError(t, err)

	b, err := schema.ReadBytesN(r, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0xAB, 0xCD}, b.Data())
}

func TestBytes_StringTruncatesLongBlobs(t *testing.T) {
	w := bitio.NewWriter(nil, nil, nil)
	for i := 0; i < 4; i++ {
		require.NoError(t, bitio.WriteInt[uint8](w, byte(i), 8))
	}
	r := bitio.NewReader(w.Buffer(), nil, nil, nil)
	short, err := schema.ReadBytesN(r, 4)
	require.NoError(t, err)
	require.Equal(t, "00010203", short.String())

	w2 := bitio.NewWriter(nil, nil, nil)
	for i := 0; i < 16; i++ {
		require.NoError(t, bitio.WriteInt[uint8](w2, byte(i), 8))
	}
	r2 := bitio.NewReader(w2.Buffer(), nil, nil, nil)
	long, err := schema.ReadBytesN(r2, 16)
	require.NoError(t, err)
	require.Contains(t, long.String(), "hidden")
}

func TestOption_AbsentConsumesOneBit(t *testing.T) {
	w := bitio.NewWriter(nil, nil, nil)
	require.NoError(t, schema.WriteOption(w, schema.None[uint32](), func(w *bitio.Writer, v uint32) error {
		return bitio.WriteInt[uint32](w, v, 11)
	}))
	require.Equal(t, uint64(1), w.Index())

	r := bitio.NewReader(w.Buffer(), nil, nil, nil)
	opt, err := schema.ReadOption(r, func(r *bitio.Reader) (uint32, error) {
		return bitio.ReadInt[uint32](r, 11)
	})
	require.NoError(t, err)
	require.False(t, opt.Present())
	require.Equal(t, uint64(1), r.Index())
}

func TestOption_PresentRoundTrips(t *testing.T) {
	w := bitio.NewWriter(nil, nil, nil)
	require.NoError(t, schema.WriteOption(w, schema.Some[uint32](777), func(w *bitio.Writer, v uint32) error {
		return bitio.WriteInt[uint32](w, v, 11)
	}))

	r := bitio.NewReader(w.Buffer(), nil, nil, nil)
	opt, err := schema.ReadOption(r, func(r *bitio.Reader) (uint32, error) {
		return bitio.ReadInt[uint32](r, 11)
	})
	require.NoError(t, err)
	v, ok := opt.Get()
	require.True(t, ok)
	require.Equal(t, uint32(777), v)
}
