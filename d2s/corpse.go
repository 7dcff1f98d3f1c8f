package d2s

import (
	"github.com/pignacio/d2-itemsorter-go/bitio"
	"github.com/pignacio/d2-itemsorter-go/codecerr"
	"github.com/pignacio/d2-itemsorter-go/schema"
)

// Corpse is the player's death-state block (spec §3): a dead flag and,
// when set, position and dropped items.
type Corpse struct {
	IsDead uint16 // 16 bits; spec treats it as a value, not just a flag

	// OpaqueBytes/X/Y/Items are present iff IsDead != 0.
	OpaqueBytes schema.Bytes
	X           uint32
	Y           uint32
	Items       ItemList
}

// ReadCorpse parses a Corpse.
func ReadCorpse(r *bitio.Reader) (Corpse, error) {
	var c Corpse
	if err := readMagic(r, ItemMagic); err != nil {
		return Corpse{}, codecerr.Annotate(err, codecerr.Field("magic"))
	}
	isDead, err := bitio.ReadInt[uint16](r, 16)
	if err != nil {
		return Corpse{}, codecerr.Annotate(err, codecerr.Field("is_dead"))
	}
	c.IsDead = isDead
	if isDead == 0 {
		return c, nil
	}

	opaque, err := schema.ReadBytesN(r, 4)
	if err != nil {
		return Corpse{}, codecerr.Annotate(err, codecerr.Field("opaque"))
	}
	c.OpaqueBytes = opaque

	x, err := bitio.ReadInt[uint32](r, 32)
	if err != nil {
		return Corpse{}, codecerr.Annotate(err, codecerr.Field("x"))
	}
	c.X = x

	y, err := bitio.ReadInt[uint32](r, 32)
	if err != nil {
		return Corpse{}, codecerr.Annotate(err, codecerr.Field("y"))
	}
	c.Y = y

	items, err := ReadItemList(r)
	if err != nil {
		return Corpse{}, codecerr.Annotate(err, codecerr.Field("items"))
	}
	c.Items = items

	return c, nil
}

// Write serializes c.
func (c Corpse) Write(w *bitio.Writer) error {
	if err := w.WriteBits(ItemMagic); err != nil {
		return codecerr.Annotate(err, codecerr.Field("magic"))
	}
	if err := bitio.WriteInt[uint16](w, c.IsDead, 16); err != nil {
		return codecerr.Annotate(err, codecerr.Field("is_dead"))
	}
	if c.IsDead == 0 {
		return nil
	}
	if err := c.OpaqueBytes.Write(w); err != nil {
		return codecerr.Annotate(err, codecerr.Field("opaque"))
	}
	if err := bitio.WriteInt[uint32](w, c.X, 32); err != nil {
		return codecerr.Annotate(err, codecerr.Field("x"))
	}
	if err := bitio.WriteInt[uint32](w, c.Y, 32); err != nil {
		return codecerr.Annotate(err, codecerr.Field("y"))
	}
	return codecerr.Annotate(c.Items.Write(w), codecerr.Field("items"))
}
