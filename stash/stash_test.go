package stash_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pignacio/d2-itemsorter-go/bitbuf"
	"github.com/pignacio/d2-itemsorter-go/bitio"
	"github.com/pignacio/d2-itemsorter-go/catalog"
	"github.com/pignacio/d2-itemsorter-go/stash"
)

// buildStashBytes assembles a minimal, well-formed stash blob with
// pageCount empty pages (each with zero items and no tail bytes before
// the next page's magic / end-of-stream).
func buildStashBytes(pageCount int) []byte {
	var out []byte
	out = append(out, []byte("SSS\x00\x00\x00")...) // 6-byte stash magic, opaque content
	out = append(out, 0, 0, 0, 0)                    // 32 opaque bits
	out = append(out, byte(pageCount), 0, 0, 0)       // page count, little-endian
	for i := 0; i < pageCount; i++ {
		out = append(out, []byte("PAGE\x00")...) // 5-byte page magic
		out = append(out, 0, 0)                  // item count = 0
	}
	return out
}

func TestStash_RoundTripsEmptyPages(t *testing.T) {
	itemDB := catalog.NewItemDB()
	propDB := catalog.NewPropertyDB(nil)

	raw := buildStashBytes(2)
	r := bitio.NewReader(bitbuf.FromBytes(raw), nil, itemDB, propDB)

	parsed, err := stash.Read(r)
	require.NoError(t, err)
	require.Equal(t, uint32(2), parsed.PageCount)
	require.Len(t, parsed.Pages, 2)
	for _, page := range parsed.Pages {
		require.Equal(t, uint16(0), page.Count)
		require.Empty(t, page.Items)
	}

	w := bitio.NewWriter(nil, itemDB, propDB)
	require.NoError(t, parsed.Write(w))
	require.Equal(t, raw, w.Buffer().Bytes())
}

func TestStash_ZeroPages(t *testing.T) {
	itemDB := catalog.NewItemDB()
	propDB := catalog.NewPropertyDB(nil)

	raw := buildStashBytes(0)
	r := bitio.NewReader(bitbuf.FromBytes(raw), nil, itemDB, propDB)

	parsed, err := stash.Read(r)
	require.NoError(t, err)
	require.Empty(t, parsed.Pages)

	w := bitio.NewWriter(nil, itemDB, propDB)
	require.NoError(t, parsed.Write(w))
	require.Equal(t, raw, w.Buffer().Bytes())
}
