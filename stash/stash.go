// Package stash implements the shared-stash save format (spec §3's
// "Stash"/"Page"): a magic-framed sequence of pages, each holding items
// followed by an opaque tail bounded by the next page's magic or
// end-of-stream. Grounded on original_source/src/item/pager.rs's
// forward-scan-for-magic technique, which bitbuf.Search generalizes.
package stash

import (
	"github.com/pignacio/d2-itemsorter-go/bitio"
	"github.com/pignacio/d2-itemsorter-go/bitbuf"
	"github.com/pignacio/d2-itemsorter-go/codecerr"
	"github.com/pignacio/d2-itemsorter-go/d2s"
	"github.com/pignacio/d2-itemsorter-go/schema"
)

// pageMagicLen and stashMagicLen are the implementation-opaque magic
// lengths spec §6 specifies: the core preserves their bytes verbatim
// without semantically decoding them.
const (
	stashMagicLen = 6
	pageMagicLen  = 5
)

// Stash is a full shared-stash file.
type Stash struct {
	Magic     schema.Bytes // 6 bytes, preserved verbatim
	Opaque    schema.Bits  // 32 opaque bits
	PageCount uint32
	Pages     []Page
}

// Page is one page of a Stash: a magic, an item count, that many items,
// and an opaque tail extending to the next page magic or end-of-stream.
type Page struct {
	Magic schema.Bytes // 5 bytes, preserved verbatim
	Count uint16
	Items []Item
	Tail  bitbuf.Buffer
}

// Item is an alias so callers of this package don't need to separately
// import d2s for the item type a Page holds.
type Item = d2s.Item

// Read parses a full Stash.
func Read(r *bitio.Reader) (Stash, error) {
	var s Stash

	magic, err := schema.ReadBytesN(r, stashMagicLen)
	if err != nil {
		return Stash{}, codecerr.Annotate(err, codecerr.Field("magic"))
	}
	s.Magic = magic

	opaque, err := schema.ReadBits(r, 32)
	if err != nil {
		return Stash{}, codecerr.Annotate(err, codecerr.Field("opaque"))
	}
	s.Opaque = opaque

	count, err := bitio.ReadInt[uint32](r, 32)
	if err != nil {
		return Stash{}, codecerr.Annotate(err, codecerr.Field("page_count"))
	}
	s.PageCount = count

	pages := make([]Page, 0, count)
	for i := 0; i < int(count); i++ {
		page, err := readPage(r)
		if err != nil {
			return Stash{}, codecerr.Annotate(err, codecerr.Elem("pages", i))
		}
		pages = append(pages, page)
	}
	s.Pages = pages

	return s, nil
}

// Write serializes s back to its on-wire form.
func (s Stash) Write(w *bitio.Writer) error {
	if err := s.Magic.Write(w); err != nil {
		return codecerr.Annotate(err, codecerr.Field("magic"))
	}
	if err := s.Opaque.Write(w); err != nil {
		return codecerr.Annotate(err, codecerr.Field("opaque"))
	}
	if err := bitio.WriteInt[uint32](w, s.PageCount, 32); err != nil {
		return codecerr.Annotate(err, codecerr.Field("page_count"))
	}
	for i, page := range s.Pages {
		if err := page.write(w); err != nil {
			return codecerr.Annotate(err, codecerr.Elem("pages", i))
		}
	}
	return nil
}

func readPage(r *bitio.Reader) (Page, error) {
	var p Page

	magic, err := schema.ReadBytesN(r, pageMagicLen)
	if err != nil {
		return Page{}, codecerr.Annotate(err, codecerr.Field("magic"))
	}
	p.Magic = magic

	count, err := bitio.ReadInt[uint16](r, 16)
	if err != nil {
		return Page{}, codecerr.Annotate(err, codecerr.Field("count"))
	}
	p.Count = count

	items := make([]Item, 0, count)
	for i := 0; i < int(count); i++ {
		item, err := d2s.ParseItem(r, true, 0)
		if err != nil {
			return Page{}, codecerr.Annotate(err, codecerr.Elem("items", i))
		}
		items = append(items, item)
	}
	p.Items = items

	pageMagicBuf := bitbuf.FromBytes(pageMagicPlaceholder(magic))
	p.Tail = r.ReadUntil(pageMagicBuf)

	return p, nil
}

// pageMagicPlaceholder returns magic's bytes for use as a Search needle:
// every page in a Stash is expected to repeat the same 5-byte magic (spec
// §6's "StashHeader"/"PageHeader ... not semantically decoded" policy
// means the bytes are whatever the current page's magic was, not a fixed
// constant known ahead of time).
func pageMagicPlaceholder(magic schema.Bytes) []byte {
	return magic.Data()
}

func (p Page) write(w *bitio.Writer) error {
	if err := p.Magic.Write(w); err != nil {
		return codecerr.Annotate(err, codecerr.Field("magic"))
	}
	if err := bitio.WriteInt[uint16](w, p.Count, 16); err != nil {
		return codecerr.Annotate(err, codecerr.Field("count"))
	}
	for i, item := range p.Items {
		if err := item.Write(w); err != nil {
			return codecerr.Annotate(err, codecerr.Elem("items", i))
		}
	}
	return w.WriteBits(p.Tail)
}
