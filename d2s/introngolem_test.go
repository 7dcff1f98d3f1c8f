package d2s_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pignacio/d2-itemsorter-go/bitio"
	"github.com/pignacio/d2-itemsorter-go/catalog"
	"github.com/pignacio/d2-itemsorter-go/d2s"
)

func TestIronGolem_NoFlagOmitsItem(t *testing.T) {
	itemDB := catalog.NewItemDB()
	propDB := catalog.NewPropertyDB(nil)

	g := d2s.IronGolem{Flag: 0}
	w := bitio.NewWriter(nil, itemDB, propDB)
	require.NoError(t, g.Write(w))

	r := bitio.NewReader(w.Buffer(), nil, itemDB, propDB)
	parsed, err := d2s.ReadIronGolem(r)
	require.NoError(t, err)
	require.Equal(t, g, parsed)
	require.Equal(t, r.Len(), r.Index())
}

func TestIronGolem_FlaggedCarriesItem(t *testing.T) {
	itemDB := catalog.NewItemDB()
	propDB := catalog.NewPropertyDB(nil)

	g := d2s.IronGolem{
		Flag: 1,
		Item: d2s.Item{HasMagic: true, Flags: d2s.ItemFlags{Simple: true}, ItemType: "orb "},
	}
	w := bitio.NewWriter(nil, itemDB, propDB)
	require.NoError(t, g.Write(w))

	r := bitio.NewReader(w.Buffer(), nil, itemDB, propDB)
	parsed, err := d2s.ReadIronGolem(r)
	require.NoError(t, err)
	require.Equal(t, g, parsed)
	require.Equal(t, r.Len(), r.Index())
}
