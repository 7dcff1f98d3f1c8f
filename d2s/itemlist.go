package d2s

import (
	"github.com/pignacio/d2-itemsorter-go/bitio"
	"github.com/pignacio/d2-itemsorter-go/codecerr"
)

// ItemList is a magic-framed, count-prefixed sequence of standalone items
// (spec §3).
type ItemList struct {
	Items []Item
}

// ReadItemList parses an ItemList.
func ReadItemList(r *bitio.Reader) (ItemList, error) {
	if err := readMagic(r, ItemMagic); err != nil {
		return ItemList{}, codecerr.Annotate(err, codecerr.Field("magic"))
	}
	count, err := bitio.ReadInt[uint16](r, 16)
	if err != nil {
		return ItemList{}, codecerr.Annotate(err, codecerr.Field("count"))
	}
	var items []Item
	for i := 0; i < int(count); i++ {
		item, err := ParseItem(r, true, 0)
		if err != nil {
			return ItemList{}, codecerr.Annotate(err, codecerr.Elem("items", i))
		}
		items = append(items, item)
	}
	return ItemList{Items: items}, nil
}

// Write serializes list.
func (list ItemList) Write(w *bitio.Writer) error {
	if err := w.WriteBits(ItemMagic); err != nil {
		return codecerr.Annotate(err, codecerr.Field("magic"))
	}
	if err := bitio.WriteInt[uint16](w, uint16(len(list.Items)), 16); err != nil {
		return codecerr.Annotate(err, codecerr.Field("count"))
	}
	for i, item := range list.Items {
		if err := item.Write(w); err != nil {
			return codecerr.Annotate(err, codecerr.Elem("items", i))
		}
	}
	return nil
}
