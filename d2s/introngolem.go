package d2s

import (
	"github.com/pignacio/d2-itemsorter-go/bitio"
	"github.com/pignacio/d2-itemsorter-go/codecerr"
)

// IronGolem is the necromancer iron-golem block (spec §3): a fixed magic,
// a flag byte, and an optional Item present when the flag is nonzero.
type IronGolem struct {
	Flag uint8
	Item Item
}

// ReadIronGolem parses an IronGolem block.
func ReadIronGolem(r *bitio.Reader) (IronGolem, error) {
	if err := readMagic(r, IronGolemMagic); err != nil {
		return IronGolem{}, codecerr.Annotate(err, codecerr.Field("magic"))
	}
	flag, err := bitio.ReadInt[uint8](r, 8)
	if err != nil {
		return IronGolem{}, codecerr.Annotate(err, codecerr.Field("flag"))
	}
	g := IronGolem{Flag: flag}
	if flag == 0 {
		return g, nil
	}
	item, err := ParseItem(r, true, 0)
	if err != nil {
		return IronGolem{}, codecerr.Annotate(err, codecerr.Field("item"))
	}
	g.Item = item
	return g, nil
}

// Write serializes g.
func (g IronGolem) Write(w *bitio.Writer) error {
	if err := w.WriteBits(IronGolemMagic); err != nil {
		return codecerr.Annotate(err, codecerr.Field("magic"))
	}
	if err := bitio.WriteInt[uint8](w, g.Flag, 8); err != nil {
		return codecerr.Annotate(err, codecerr.Field("flag"))
	}
	if g.Flag == 0 {
		return nil
	}
	return codecerr.Annotate(g.Item.Write(w), codecerr.Field("item"))
}
