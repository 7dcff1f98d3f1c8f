package d2s_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pignacio/d2-itemsorter-go/bitbuf"
	"github.com/pignacio/d2-itemsorter-go/bitio"
	"github.com/pignacio/d2-itemsorter-go/catalog"
	"github.com/pignacio/d2-itemsorter-go/d2s"
	"github.com/pignacio/d2-itemsorter-go/schema"
)

func TestCorpse_NotDeadOmitsBody(t *testing.T) {
	itemDB := catalog.NewItemDB()
	propDB := catalog.NewPropertyDB(nil)

	c := d2s.Corpse{IsDead: 0}
	w := bitio.NewWriter(nil, itemDB, propDB)
	require.NoError(t, c.Write(w))

	r := bitio.NewReader(w.Buffer(), nil, itemDB, propDB)
	parsed, err := d2s.ReadCorpse(r)
	require.NoError(t, err)
	require.Equal(t, c, parsed)
	require.Equal(t, r.Len(), r.Index())
}

func TestCorpse_DeadRoundTripsBody(t *testing.T) {
	itemDB := catalog.NewItemDB()
	propDB := catalog.NewPropertyDB(nil)

	// OpaqueBytes is a fixed 4-byte blob; build one via a throwaway reader
	// so the test exercises the same schema.Bytes constructor ReadCorpse
	// uses, rather than poking at Bytes's unexported fields.
	opaqueR := bitio.NewReader(bitbuf.FromBytes([]byte{0xDE, 0xAD, 0xBE, 0xEF}), nil, itemDB, propDB)
	ob, err := schema.ReadBytesN(opaqueR, 4)
	require.NoError(t, err)

	c := d2s.Corpse{
		IsDead:      1,
		OpaqueBytes: ob,
		X:           100,
		Y:           200,
		Items: d2s.ItemList{Items: []d2s.Item{
			{HasMagic: true, Flags: d2s.ItemFlags{Simple: true}, ItemType: "wand"},
		}},
	}

	w := bitio.NewWriter(nil, itemDB, propDB)
	require.NoError(t, c.Write(w))

	r := bitio.NewReader(w.Buffer(), nil, itemDB, propDB)
	parsed, err := d2s.ReadCorpse(r)
	require.NoError(t, err)
	require.Equal(t, c, parsed)
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, parsed.OpaqueBytes.Data())
	require.Equal(t, r.Len(), r.Index())
}
