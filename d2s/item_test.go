package d2s_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pignacio/d2-itemsorter-go/bitbuf"
	"github.com/pignacio/d2-itemsorter-go/bitio"
	"github.com/pignacio/d2-itemsorter-go/catalog"
	"github.com/pignacio/d2-itemsorter-go/codecerr"
	"github.com/pignacio/d2-itemsorter-go/d2s"
	"github.com/pignacio/d2-itemsorter-go/schema"
)

func TestParseItem_RoundTripsSimpleItem(t *testing.T) {
	itemDB := catalog.NewItemDB()
	propDB := catalog.NewPropertyDB(nil)

	item := d2s.Item{
		HasMagic: true,
		Flags:    d2s.ItemFlags{Identified: true, Simple: true, Ethereal: true},
		X:        3,
		Y:        7,
		Location: 1,
		ItemType: "cap ",
	}

	w := bitio.NewWriter(nil, itemDB, propDB)
	require.NoError(t, item.Write(w))

	r := bitio.NewReader(w.Buffer(), nil, itemDB, propDB)
	parsed, err := d2s.ParseItem(r, true, 0)
	require.NoError(t, err)
	require.Equal(t, item, parsed)
	require.Equal(t, r.Len(), r.Index())
}

// TestParseItem_SocketedCubeRoundTrips covers spec §8's scenario S3: a
// socketed item containing two sub-items, neither of which has sockets of
// its own.
func TestParseItem_SocketedCubeRoundTrips(t *testing.T) {
	itemDB := catalog.NewItemDB()
	propDB := catalog.NewPropertyDB(nil)

	gem := d2s.Item{
		HasMagic: true,
		Flags:    d2s.ItemFlags{Simple: true},
		ItemType: "gem ",
	}

	cube := d2s.Item{
		HasMagic:    true,
		Flags:       d2s.ItemFlags{Socketed: true},
		X:           1,
		Y:           1,
		Location:    0,
		ItemType:    "box ",
		HasExtended: true,
		Extended: d2s.ExtendedInfo{
			GemCount:    2,
			GUID:        123456,
			DropLevel:   42,
			Quality:     d2s.Quality{Kind: d2s.QualityNormal, RawTag: 2},
			SocketCount: schema.Some[uint8](2),
		},
		Properties:    d2s.PropertyList{TerminatorRunLen: 9},
		SocketedItems: []d2s.Item{gem, gem},
	}

	w := bitio.NewWriter(nil, itemDB, propDB)
	require.NoError(t, cube.Write(w))

	r := bitio.NewReader(w.Buffer(), nil, itemDB, propDB)
	parsed, err := d2s.ParseItem(r, true, 0)
	require.NoError(t, err)
	require.Equal(t, cube, parsed)
	require.Len(t, parsed.SocketedItems, 2)
	for _, sub := range parsed.SocketedItems {
		require.False(t, sub.Flags.Socketed)
	}
}

func TestParseItem_RecursionLimitRejectsExcessiveDepth(t *testing.T) {
	itemDB := catalog.NewItemDB()
	propDB := catalog.NewPropertyDB(nil)
	r := bitio.NewReader(bitbuf.Buffer{}, nil, itemDB, propDB)

	_, err := d2s.ParseItem(r, true, 17)
	require.Error(t, err)
	require.True(t, codecerr.Is(err, codecerr.RecursionLimit))
}
