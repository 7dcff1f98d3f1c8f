package d2s

import (
	"github.com/pignacio/d2-itemsorter-go/bitio"
	"github.com/pignacio/d2-itemsorter-go/codecerr"
	"github.com/pignacio/d2-itemsorter-go/huffman"
)

// ItemFlags holds the fixed flag-bit groups read between the magic and
// the position fields (spec §3 Item): most are preserved opaquely since
// only a handful (identified, socketed, simple, ethereal, inscribed,
// has_runeword) are interpreted by the parser.
type ItemFlags struct {
	PreIdentifiedBits uint8  // 4 bits, opaque
	Identified        bool   // 1 bit
	PreSocketedBits   uint8  // 6 bits, opaque
	Socketed          bool   // 1 bit
	PreSimpleBits     uint16 // 9 bits, opaque
	Simple            bool   // 1 bit
	Ethereal          bool   // 1 bit
	MidFlag           bool   // 1 bit, opaque
	Inscribed         bool   // 1 bit
	PostInscribedFlag bool   // 1 bit, opaque
	HasRuneword       bool   // 1 bit
	TailBits          uint16 // 15 bits, opaque
}

// Item is a single inventory/stash/cube item: standalone or nested inside
// a socketed parent (spec §3, §4.5).
type Item struct {
	// HasMagic records whether this item's wire form carries the JM
	// framing. False only for in-socket sub-items at version >= 97 (spec
	// §4.5 "Inline vs standalone items").
	HasMagic bool

	Flags ItemFlags

	X        uint8 // 4 bits
	Y        uint8 // 4 bits
	Location uint8 // 3 bits
	ItemType string // 4 Huffman chars

	// ExtendedInfo and its PropertyLists are present iff !Flags.Simple.
	HasExtended   bool
	Extended      ExtendedInfo
	Properties    PropertyList
	RunewordProps PropertyList

	// ExtraZeroByte records whether a spurious zero byte followed the
	// alignment padding (spec §4.5 "Padding policy" / §9 Open Question:
	// observed on some item types, preserved exactly rather than
	// normalized away).
	ExtraZeroByte bool

	SocketedItems []Item
}

// ParseItem reads one Item. standalone selects whether the JM magic is
// expected up front; depth is the current socket-recursion depth, checked
// against the defense-in-depth cap (spec §5).
func ParseItem(r *bitio.Reader, standalone bool, depth int) (Item, error) {
	if depth > maxSocketRecursionDepth {
		return Item{}, codecerr.New(codecerr.RecursionLimit, r.Index(), "socket recursion depth %d exceeds limit %d", depth, maxSocketRecursionDepth)
	}

	guard := r.QueueContextReset()
	defer guard.Release()

	var item Item
	item.HasMagic = standalone
	if standalone {
		if err := readMagic(r, ItemMagic); err != nil {
			return Item{}, codecerr.Annotate(err, codecerr.Field("magic"))
		}
	}

	flags, err := readItemFlags(r)
	if err != nil {
		return Item{}, codecerr.Annotate(err, codecerr.Field("flags"))
	}
	item.Flags = flags
	r.Context().SetHasSockets(flags.Socketed)
	r.Context().SetHasRuneword(flags.HasRuneword)

	x, err := bitio.ReadInt[uint8](r, 4)
	if err != nil {
		return Item{}, codecerr.Annotate(err, codecerr.Field("x"))
	}
	item.X = x

	y, err := bitio.ReadInt[uint8](r, 4)
	if err != nil {
		return Item{}, codecerr.Annotate(err, codecerr.Field("y"))
	}
	item.Y = y

	loc, err := bitio.ReadInt[uint8](r, 3)
	if err != nil {
		return Item{}, codecerr.Annotate(err, codecerr.Field("location"))
	}
	item.Location = loc

	itemType, err := huffman.DecodeString(readerBitSource{r}, 4)
	if err != nil {
		return Item{}, codecerr.Annotate(err, codecerr.Field("item_type"))
	}
	item.ItemType = itemType

	info := r.ItemDB().Lookup(itemType)
	r.Context().SetItemInfo(info)

	if !flags.Simple {
		item.HasExtended = true
		extended, err := ReadExtendedInfo(r, flags.HasRuneword)
		if err != nil {
			return Item{}, codecerr.Annotate(err, codecerr.Field("extended"))
		}
		item.Extended = extended

		props, err := ReadPropertyList(r)
		if err != nil {
			return Item{}, codecerr.Annotate(err, codecerr.Field("properties"))
		}
		item.Properties = props

		if flags.HasRuneword {
			runeProps, err := ReadPropertyList(r)
			if err != nil {
				return Item{}, codecerr.Annotate(err, codecerr.Field("runeword_properties"))
			}
			item.RunewordProps = runeProps
		}
	}

	if err := r.ReadPadding(); err != nil {
		return Item{}, codecerr.Annotate(err, codecerr.Field("padding"))
	}

	extraZero, err := peekIsZeroByte(r)
	if err != nil {
		return Item{}, codecerr.Annotate(err, codecerr.Field("extra_zero_byte"))
	}
	if extraZero {
		if _, err := bitio.ReadInt[uint8](r, 8); err != nil {
			return Item{}, codecerr.Annotate(err, codecerr.Field("extra_zero_byte"))
		}
		item.ExtraZeroByte = true
	}

	if flags.Socketed {
		gemCount := 0
		if item.HasExtended {
			gemCount = int(item.Extended.GemCount)
		}
		subStandalone := !(versionAtLeast97(r))
		for i := 0; i < gemCount; i++ {
			sub, err := ParseItem(r, subStandalone, depth+1)
			if err != nil {
				return Item{}, codecerr.Annotate(err, codecerr.Elem("socketed_items", i))
			}
			item.SocketedItems = append(item.SocketedItems, sub)
		}
	}

	return item, nil
}

// Write serializes item, reproducing ParseItem's field order and framing
// decisions exactly.
func (item Item) Write(w *bitio.Writer) error {
	guard := w.QueueContextReset()
	defer guard.Release()

	if item.HasMagic {
		if err := w.WriteBits(ItemMagic); err != nil {
			return codecerr.Annotate(err, codecerr.Field("magic"))
		}
	}

	if err := writeItemFlags(w, item.Flags); err != nil {
		return codecerr.Annotate(err, codecerr.Field("flags"))
	}
	w.Context().SetHasSockets(item.Flags.Socketed)
	w.Context().SetHasRuneword(item.Flags.HasRuneword)

	if err := bitio.WriteInt[uint8](w, item.X, 4); err != nil {
		return codecerr.Annotate(err, codecerr.Field("x"))
	}
	if err := bitio.WriteInt[uint8](w, item.Y, 4); err != nil {
		return codecerr.Annotate(err, codecerr.Field("y"))
	}
	if err := bitio.WriteInt[uint8](w, item.Location, 3); err != nil {
		return codecerr.Annotate(err, codecerr.Field("location"))
	}

	if err := huffman.EncodeString(writerBitSink{w}, item.ItemType, 4); err != nil {
		return codecerr.Annotate(err, codecerr.Field("item_type"))
	}

	info := w.ItemDB().Lookup(item.ItemType)
	w.Context().SetItemInfo(info)

	if item.HasExtended {
		if err := item.Extended.Write(w, item.Flags.HasRuneword); err != nil {
			return codecerr.Annotate(err, codecerr.Field("extended"))
		}
		if err := item.Properties.Write(w); err != nil {
			return codecerr.Annotate(err, codecerr.Field("properties"))
		}
		if item.Flags.HasRuneword {
			if err := item.RunewordProps.Write(w); err != nil {
				return codecerr.Annotate(err, codecerr.Field("runeword_properties"))
			}
		}
	}

	if err := w.WritePadding(); err != nil {
		return codecerr.Annotate(err, codecerr.Field("padding"))
	}

	if item.ExtraZeroByte {
		if err := bitio.WriteInt[uint8](w, 0, 8); err != nil {
			return codecerr.Annotate(err, codecerr.Field("extra_zero_byte"))
		}
	}

	if item.Flags.Socketed {
		for i, sub := range item.SocketedItems {
			if err := sub.Write(w); err != nil {
				return codecerr.Annotate(err, codecerr.Elem("socketed_items", i))
			}
		}
	}

	return nil
}

func readItemFlags(r *bitio.Reader) (ItemFlags, error) {
	var f ItemFlags
	var err error

	if f.PreIdentifiedBits, err = bitio.ReadInt[uint8](r, 4); err != nil {
		return ItemFlags{}, err
	}
	identified, err := bitio.ReadInt[uint8](r, 1)
	if err != nil {
		return ItemFlags{}, err
	}
	f.Identified = identified != 0

	if f.PreSocketedBits, err = bitio.ReadInt[uint8](r, 6); err != nil {
		return ItemFlags{}, err
	}
	socketed, err := bitio.ReadInt[uint8](r, 1)
	if err != nil {
		return ItemFlags{}, err
	}
	f.Socketed = socketed != 0

	if f.PreSimpleBits, err = bitio.ReadInt[uint16](r, 9); err != nil {
		return ItemFlags{}, err
	}
	simple, err := bitio.ReadInt[uint8](r, 1)
	if err != nil {
		return ItemFlags{}, err
	}
	f.Simple = simple != 0

	ethereal, err := bitio.ReadInt[uint8](r, 1)
	if err != nil {
		return ItemFlags{}, err
	}
	f.Ethereal = ethereal != 0

	midFlag, err := bitio.ReadInt[uint8](r, 1)
	if err != nil {
		return ItemFlags{}, err
	}
	f.MidFlag = midFlag != 0

	inscribed, err := bitio.ReadInt[uint8](r, 1)
	if err != nil {
		return ItemFlags{}, err
	}
	f.Inscribed = inscribed != 0

	postInscribed, err := bitio.ReadInt[uint8](r, 1)
	if err != nil {
		return ItemFlags{}, err
	}
	f.PostInscribedFlag = postInscribed != 0

	hasRuneword, err := bitio.ReadInt[uint8](r, 1)
	if err != nil {
		return ItemFlags{}, err
	}
	f.HasRuneword = hasRuneword != 0

	if f.TailBits, err = bitio.ReadInt[uint16](r, 15); err != nil {
		return ItemFlags{}, err
	}

	return f, nil
}

func writeItemFlags(w *bitio.Writer, f ItemFlags) error {
	if err := bitio.WriteInt[uint8](w, f.PreIdentifiedBits, 4); err != nil {
		return err
	}
	if err := bitio.WriteInt[uint8](w, boolBit(f.Identified), 1); err != nil {
		return err
	}
	if err := bitio.WriteInt[uint8](w, f.PreSocketedBits, 6); err != nil {
		return err
	}
	if err := bitio.WriteInt[uint8](w, boolBit(f.Socketed), 1); err != nil {
		return err
	}
	if err := bitio.WriteInt[uint16](w, f.PreSimpleBits, 9); err != nil {
		return err
	}
	if err := bitio.WriteInt[uint8](w, boolBit(f.Simple), 1); err != nil {
		return err
	}
	if err := bitio.WriteInt[uint8](w, boolBit(f.Ethereal), 1); err != nil {
		return err
	}
	if err := bitio.WriteInt[uint8](w, boolBit(f.MidFlag), 1); err != nil {
		return err
	}
	if err := bitio.WriteInt[uint8](w, boolBit(f.Inscribed), 1); err != nil {
		return err
	}
	if err := bitio.WriteInt[uint8](w, boolBit(f.PostInscribedFlag), 1); err != nil {
		return err
	}
	if err := bitio.WriteInt[uint8](w, boolBit(f.HasRuneword), 1); err != nil {
		return err
	}
	return bitio.WriteInt[uint16](w, f.TailBits, 15)
}

func boolBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// peekIsZeroByte reports whether the next byte (if one fully remains) is
// zero, without consuming it. Grounded on spec §4.5: "if the next byte is
// literally zero it is consumed as extra padding".
func peekIsZeroByte(r *bitio.Reader) (bool, error) {
	if r.Remaining() < 8 {
		return false, nil
	}
	return bitio.Peek(r, func(r *bitio.Reader) (bool, error) {
		v, err := bitio.ReadInt[uint8](r, 8)
		if err != nil {
			return false, err
		}
		return v == 0, nil
	})
}

// versionAtLeast97 reports whether the parse context's format version is
// >= 97 (spec §4.5/§6: in-socket sub-items omit JM framing at this
// threshold). A missing version is treated as "below threshold", matching
// a top-level parse that hasn't established a version yet (items never
// appear before the Player header that sets it).
func versionAtLeast97(r *bitio.Reader) bool {
	v, ok := r.Context().Version()
	return ok && v >= versionThreshold97
}

// readerBitSource/writerBitSink adapt bitio.Reader/Writer to huffman's
// minimal bitSource/bitSink interfaces (huffman doesn't import bitio; see
// huffman.go).
type readerBitSource struct{ r *bitio.Reader }

func (s readerBitSource) ReadBit() (bool, uint64, error) { return s.r.ReadBit() }

type writerBitSink struct{ w *bitio.Writer }

func (s writerBitSink) WriteBit(v bool) error { return s.w.WriteBit(v) }
