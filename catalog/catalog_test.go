package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pignacio/d2-itemsorter-go/catalog"
)

func TestItemDB_LookupUnknownReturnsDefault(t *testing.T) {
	db := catalog.NewItemDB()
	info := db.Lookup("zzzz")
	require.Equal(t, "?????????", info.ID)
	require.False(t, info.HasDefense)
	require.False(t, info.HasDurability)
	require.False(t, info.HasQuantity)
}

func TestItemDB_LookupKnownMergesCategories(t *testing.T) {
	armors := []catalog.ItemRow{{ID: "cap ", Name: "Cap", HasDefense: true, HasDurability: true}}
	weapons := []catalog.ItemRow{{ID: "hax ", Name: "Hand Axe", HasDurability: true}}
	db := catalog.NewItemDB(armors, weapons)

	cap := db.Lookup("cap ")
	require.Equal(t, "Cap", cap.Name)
	require.True(t, cap.HasDefense)

	axe := db.Lookup("hax ")
	require.Equal(t, "Hand Axe", axe.Name)
	require.False(t, axe.HasDefense)
}

func TestItemDB_NilIsSafe(t *testing.T) {
	var db *catalog.ItemDB
	info := db.Lookup("cap ")
	require.Equal(t, "?????????", info.ID)
}

func TestPropertyDB_LookupUnknown(t *testing.T) {
	db := catalog.NewPropertyDB(nil)
	_, ok := db.Lookup(9001)
	require.False(t, ok)
}

func TestPropertyDB_LookupKnown(t *testing.T) {
	db := catalog.NewPropertyDB([]catalog.PropertyDef{
		{
			ID:       0,
			Template: "+%d to Strength",
			Values:   [4]catalog.ValueDef{{Width: 10, Offset: 32}},
		},
	})
	def, ok := db.Lookup(0)
	require.True(t, ok)
	require.Equal(t, "+%d to Strength", def.Template)
	require.True(t, def.Values[0].Present())
	require.False(t, def.Values[1].Present())
}
