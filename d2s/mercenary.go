package d2s

import (
	"github.com/pignacio/d2-itemsorter-go/bitbuf"
	"github.com/pignacio/d2-itemsorter-go/bitio"
	"github.com/pignacio/d2-itemsorter-go/codecerr"
)

// MercenaryItems is the hired-mercenary's inventory block (spec §3): a
// fixed magic followed by an optional ItemList, whose presence is
// detected by peeking the next two bytes for the item-list magic.
type MercenaryItems struct {
	Items      ItemList
	HasItems   bool
}

// ReadMercenaryItems parses a MercenaryItems block.
func ReadMercenaryItems(r *bitio.Reader) (MercenaryItems, error) {
	if err := readMagic(r, MercenaryMagic); err != nil {
		return MercenaryItems{}, codecerr.Annotate(err, codecerr.Field("magic"))
	}

	hasItems, err := peekMatchesItemMagic(r)
	if err != nil {
		return MercenaryItems{}, codecerr.Annotate(err, codecerr.Field("items"))
	}
	if !hasItems {
		return MercenaryItems{}, nil
	}

	items, err := ReadItemList(r)
	if err != nil {
		return MercenaryItems{}, codecerr.Annotate(err, codecerr.Field("items"))
	}
	return MercenaryItems{Items: items, HasItems: true}, nil
}

// Write serializes m.
func (m MercenaryItems) Write(w *bitio.Writer) error {
	if err := w.WriteBits(MercenaryMagic); err != nil {
		return codecerr.Annotate(err, codecerr.Field("magic"))
	}
	if !m.HasItems {
		return nil
	}
	return codecerr.Annotate(m.Items.Write(w), codecerr.Field("items"))
}

// peekMatchesItemMagic reports whether the next two bytes equal
// ItemMagic, without consuming them (spec §3 MercenaryItems: "present iff
// next two bytes are 0x4A 0x4D, detected by peek").
func peekMatchesItemMagic(r *bitio.Reader) (bool, error) {
	if r.Remaining() < ItemMagic.Len() {
		return false, nil
	}
	return bitio.Peek(r, func(r *bitio.Reader) (bool, error) {
		got, err := r.ReadBits(ItemMagic.Len())
		if err != nil {
			return false, err
		}
		return bitbuf.Equal(got, ItemMagic), nil
	})
}
