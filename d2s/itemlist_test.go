package d2s_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pignacio/d2-itemsorter-go/bitio"
	"github.com/pignacio/d2-itemsorter-go/catalog"
	"github.com/pignacio/d2-itemsorter-go/d2s"
)

func TestItemList_RoundTrips(t *testing.T) {
	itemDB := catalog.NewItemDB()
	propDB := catalog.NewPropertyDB(nil)

	list := d2s.ItemList{Items: []d2s.Item{
		{HasMagic: true, Flags: d2s.ItemFlags{Simple: true}, ItemType: "ring"},
		{HasMagic: true, Flags: d2s.ItemFlags{Simple: true}, ItemType: "amu "},
	}}

	w := bitio.NewWriter(nil, itemDB, propDB)
	require.NoError(t, list.Write(w))

	r := bitio.NewReader(w.Buffer(), nil, itemDB, propDB)
	parsed, err := d2s.ReadItemList(r)
	require.NoError(t, err)
	require.Equal(t, list, parsed)
	require.Equal(t, r.Len(), r.Index())
}

func TestItemList_EmptyRoundTrips(t *testing.T) {
	itemDB := catalog.NewItemDB()
	propDB := catalog.NewPropertyDB(nil)

	list := d2s.ItemList{}
	w := bitio.NewWriter(nil, itemDB, propDB)
	require.NoError(t, list.Write(w))

	r := bitio.NewReader(w.Buffer(), nil, itemDB, propDB)
	parsed, err := d2s.ReadItemList(r)
	require.NoError(t, err)
	require.Empty(t, parsed.Items)
}
