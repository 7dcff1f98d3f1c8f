package d2s_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pignacio/d2-itemsorter-go/bitio"
	"github.com/pignacio/d2-itemsorter-go/catalog"
	"github.com/pignacio/d2-itemsorter-go/d2s"
)

func TestMercenaryItems_AbsentRoundTrips(t *testing.T) {
	itemDB := catalog.NewItemDB()
	propDB := catalog.NewPropertyDB(nil)

	m := d2s.MercenaryItems{}
	w := bitio.NewWriter(nil, itemDB, propDB)
	require.NoError(t, m.Write(w))

	r := bitio.NewReader(w.Buffer(), nil, itemDB, propDB)
	parsed, err := d2s.ReadMercenaryItems(r)
	require.NoError(t, err)
	require.Equal(t, m, parsed)
	require.Equal(t, r.Len(), r.Index())
}

func TestMercenaryItems_PresentDetectedByMagicPeek(t *testing.T) {
	itemDB := catalog.NewItemDB()
	propDB := catalog.NewPropertyDB(nil)

	m := d2s.MercenaryItems{
		HasItems: true,
		Items: d2s.ItemList{Items: []d2s.Item{
			{HasMagic: true, Flags: d2s.ItemFlags{Simple: true}, ItemType: "helm"},
		}},
	}
	w := bitio.NewWriter(nil, itemDB, propDB)
	require.NoError(t, m.Write(w))

	r := bitio.NewReader(w.Buffer(), nil, itemDB, propDB)
	parsed, err := d2s.ReadMercenaryItems(r)
	require.NoError(t, err)
	require.Equal(t, m, parsed)
	require.Equal(t, r.Len(), r.Index())
}
