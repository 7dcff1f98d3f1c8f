package d2s

import (
	"github.com/pignacio/d2-itemsorter-go/bitio"
	"github.com/pignacio/d2-itemsorter-go/codecerr"
	"github.com/pignacio/d2-itemsorter-go/parsectx"
	"github.com/pignacio/d2-itemsorter-go/schema"
)

// ExtendedInfo is the non-simple-item block spec §3 defines: identity and
// drop metadata, the quality-specific payload, and the item-info-gated
// optional fields (runeword, defense, durability, quantity, set mods,
// sockets).
type ExtendedInfo struct {
	GemCount     uint8 // 3 bits
	GUID         uint32
	DropLevel    uint8 // 7 bits
	Quality      Quality
	GfxID        schema.Option[uint8]  // optional 3 bits
	ClassInfo    schema.Option[uint16] // optional 11 bits
	RunewordID   schema.Option[uint16] // 16 bits, present iff has_runeword
	Defense      schema.Option[uint16] // 11 bits, present iff item_info.has_defense
	MaxDurability schema.Option[uint16] // 9 bits, present iff item_info.has_durability
	CurDurability schema.Option[uint16] // 9 bits, present iff MaxDurability > 0
	Quantity     schema.Option[uint16] // 9 bits, present iff item_info.has_quantity
	SetModMask   schema.Option[uint8]  // 5 bits, present iff quality is Set
	SocketCount  schema.Option[uint8]  // 4 bits, present iff has_sockets
}

// ReadExtendedInfo parses an ExtendedInfo block, consulting and updating
// r's context exactly where spec §4.5's state diagram says (quality_id is
// set here; has_sockets/item_info are read from the context, set earlier
// by the enclosing Item parse, and has_runeword arrives as the hasRuneword
// argument).
func ReadExtendedInfo(r *bitio.Reader, hasRuneword bool) (ExtendedInfo, error) {
	var info ExtendedInfo

	gemCount, err := bitio.ReadInt[uint8](r, 3)
	if err != nil {
		return ExtendedInfo{}, codecerr.Annotate(err, codecerr.Field("gem_count"))
	}
	info.GemCount = gemCount

	guid, err := bitio.ReadInt[uint32](r, 32)
	if err != nil {
		return ExtendedInfo{}, codecerr.Annotate(err, codecerr.Field("guid"))
	}
	info.GUID = guid

	dropLevel, err := bitio.ReadInt[uint8](r, 7)
	if err != nil {
		return ExtendedInfo{}, codecerr.Annotate(err, codecerr.Field("drop_level"))
	}
	info.DropLevel = dropLevel

	tag, err := bitio.ReadInt[uint8](r, 4)
	if err != nil {
		return ExtendedInfo{}, codecerr.Annotate(err, codecerr.Field("quality_tag"))
	}
	kind := tagToKind(tag)
	r.Context().SetQualityID(parsectx.QualityTag(tag))

	gfx, err := schema.ReadOption(r, func(r *bitio.Reader) (uint8, error) { return bitio.ReadInt[uint8](r, 3) })
	if err != nil {
		return ExtendedInfo{}, codecerr.Annotate(err, codecerr.Field("gfx"))
	}
	info.GfxID = gfx

	classInfo, err := schema.ReadOption(r, func(r *bitio.Reader) (uint16, error) { return bitio.ReadInt[uint16](r, 11) })
	if err != nil {
		return ExtendedInfo{}, codecerr.Annotate(err, codecerr.Field("class_info"))
	}
	info.ClassInfo = classInfo

	quality, err := readQualityPayload(r, kind, tag)
	if err != nil {
		return ExtendedInfo{}, codecerr.Annotate(err, codecerr.Field("quality"))
	}
	info.Quality = quality

	if hasRuneword {
		id, err := bitio.ReadInt[uint16](r, 16)
		if err != nil {
			return ExtendedInfo{}, codecerr.Annotate(err, codecerr.Field("runeword"))
		}
		info.RunewordID = schema.Some(id)
	}

	itemInfo, err := r.Context().RequireItemInfo(r.Index())
	if err != nil {
		return ExtendedInfo{}, codecerr.Annotate(err, codecerr.Field("item_info"))
	}

	if itemInfo.HasDefense {
		v, err := bitio.ReadInt[uint16](r, 11)
		if err != nil {
			return ExtendedInfo{}, codecerr.Annotate(err, codecerr.Field("defense"))
		}
		info.Defense = schema.Some(v)
	}

	if itemInfo.HasDurability {
		maxD, err := bitio.ReadInt[uint16](r, 9)
		if err != nil {
			return ExtendedInfo{}, codecerr.Annotate(err, codecerr.Field("max_durability"))
		}
		info.MaxDurability = schema.Some(maxD)
		if maxD > 0 {
			curD, err := bitio.ReadInt[uint16](r, 9)
			if err != nil {
				return ExtendedInfo{}, codecerr.Annotate(err, codecerr.Field("cur_durability"))
			}
			info.CurDurability = schema.Some(curD)
		}
	}

	if itemInfo.HasQuantity {
		v, err := bitio.ReadInt[uint16](r, 9)
		if err != nil {
			return ExtendedInfo{}, codecerr.Annotate(err, codecerr.Field("quantity"))
		}
		info.Quantity = schema.Some(v)
	}

	if kind == QualitySet {
		v, err := bitio.ReadInt[uint8](r, 5)
		if err != nil {
			return ExtendedInfo{}, codecerr.Annotate(err, codecerr.Field("set_mod_mask"))
		}
		info.SetModMask = schema.Some(v)
	}

	if r.Context().HasSockets() {
		v, err := bitio.ReadInt[uint8](r, 4)
		if err != nil {
			return ExtendedInfo{}, codecerr.Annotate(err, codecerr.Field("socket_count"))
		}
		info.SocketCount = schema.Some(v)
	}

	return info, nil
}

// Write serializes info back to its on-wire form, mirroring
// ReadExtendedInfo's field order exactly.
func (info ExtendedInfo) Write(w *bitio.Writer, hasRuneword bool) error {
	if err := bitio.WriteInt[uint8](w, info.GemCount, 3); err != nil {
		return codecerr.Annotate(err, codecerr.Field("gem_count"))
	}
	if err := bitio.WriteInt[uint32](w, info.GUID, 32); err != nil {
		return codecerr.Annotate(err, codecerr.Field("guid"))
	}
	if err := bitio.WriteInt[uint8](w, info.DropLevel, 7); err != nil {
		return codecerr.Annotate(err, codecerr.Field("drop_level"))
	}

	tag := info.Quality.RawTag
	if info.Quality.Kind != QualityOther {
		t, err := kindToTag(info.Quality.Kind)
		if err != nil {
			return codecerr.Annotate(err, codecerr.Field("quality_tag"))
		}
		tag = t
	}
	if err := bitio.WriteInt[uint8](w, tag, 4); err != nil {
		return codecerr.Annotate(err, codecerr.Field("quality_tag"))
	}

	if err := schema.WriteOption(w, info.GfxID, func(w *bitio.Writer, v uint8) error {
		return bitio.WriteInt[uint8](w, v, 3)
	}); err != nil {
		return codecerr.Annotate(err, codecerr.Field("gfx"))
	}

	if err := schema.WriteOption(w, info.ClassInfo, func(w *bitio.Writer, v uint16) error {
		return bitio.WriteInt[uint16](w, v, 11)
	}); err != nil {
		return codecerr.Annotate(err, codecerr.Field("class_info"))
	}

	if err := writeQualityPayload(w, info.Quality); err != nil {
		return codecerr.Annotate(err, codecerr.Field("quality"))
	}

	if hasRuneword {
		id, _ := info.RunewordID.Get()
		if err := bitio.WriteInt[uint16](w, id, 16); err != nil {
			return codecerr.Annotate(err, codecerr.Field("runeword"))
		}
	}

	if v, ok := info.Defense.Get(); ok {
		if err := bitio.WriteInt[uint16](w, v, 11); err != nil {
			return codecerr.Annotate(err, codecerr.Field("defense"))
		}
	}

	if maxD, ok := info.MaxDurability.Get(); ok {
		if err := bitio.WriteInt[uint16](w, maxD, 9); err != nil {
			return codecerr.Annotate(err, codecerr.Field("max_durability"))
		}
		if maxD > 0 {
			curD, _ := info.CurDurability.Get()
			if err := bitio.WriteInt[uint16](w, curD, 9); err != nil {
				return codecerr.Annotate(err, codecerr.Field("cur_durability"))
			}
		}
	}

	if v, ok := info.Quantity.Get(); ok {
		if err := bitio.WriteInt[uint16](w, v, 9); err != nil {
			return codecerr.Annotate(err, codecerr.Field("quantity"))
		}
	}

	if v, ok := info.SetModMask.Get(); ok {
		if err := bitio.WriteInt[uint8](w, v, 5); err != nil {
			return codecerr.Annotate(err, codecerr.Field("set_mod_mask"))
		}
	}

	if v, ok := info.SocketCount.Get(); ok {
		if err := bitio.WriteInt[uint8](w, v, 4); err != nil {
			return codecerr.Annotate(err, codecerr.Field("socket_count"))
		}
	}

	return nil
}

func readQualityPayload(r *bitio.Reader, kind QualityKind, rawTag uint8) (Quality, error) {
	q := Quality{Kind: kind, RawTag: rawTag}
	switch kind {
	case QualityLow:
		v, err := bitio.ReadInt[uint8](r, 4)
		if err != nil {
			return Quality{}, err
		}
		q.Low = v
	case QualityNormal, QualityOther:
		// No payload.
	case QualityHighSuperior:
		v, err := bitio.ReadInt[uint8](r, 3)
		if err != nil {
			return Quality{}, err
		}
		q.HighSuperior = v
	case QualityMagic:
		prefix, err := bitio.ReadInt[uint16](r, 11)
		if err != nil {
			return Quality{}, err
		}
		suffix, err := bitio.ReadInt[uint16](r, 11)
		if err != nil {
			return Quality{}, err
		}
		q.MagicPrefix = prefix
		q.MagicSuffix = suffix
	case QualitySet:
		v, err := bitio.ReadInt[uint16](r, 12)
		if err != nil {
			return Quality{}, err
		}
		q.SetID = v
	case QualityRare, QualityCrafted:
		names, err := readRareOrCraftedNames(r)
		if err != nil {
			return Quality{}, err
		}
		q.RareOrCrafted = names
	case QualityUnique:
		v, err := bitio.ReadInt[uint16](r, 12)
		if err != nil {
			return Quality{}, err
		}
		q.UniqueID = v
	}
	return q, nil
}

func writeQualityPayload(w *bitio.Writer, q Quality) error {
	switch q.Kind {
	case QualityLow:
		return bitio.WriteInt[uint8](w, q.Low, 4)
	case QualityNormal, QualityOther:
		return nil
	case QualityHighSuperior:
		return bitio.WriteInt[uint8](w, q.HighSuperior, 3)
	case QualityMagic:
		if err := bitio.WriteInt[uint16](w, q.MagicPrefix, 11); err != nil {
			return err
		}
		return bitio.WriteInt[uint16](w, q.MagicSuffix, 11)
	case QualitySet:
		return bitio.WriteInt[uint16](w, q.SetID, 12)
	case QualityRare, QualityCrafted:
		return writeRareOrCraftedNames(w, q.RareOrCrafted)
	case QualityUnique:
		return bitio.WriteInt[uint16](w, q.UniqueID, 12)
	default:
		return codecerr.New(codecerr.InvalidAction, w.Index(), "unrecognized QualityKind %d", q.Kind)
	}
}

func readRareOrCraftedNames(r *bitio.Reader) (RareOrCraftedNames, error) {
	var names RareOrCraftedNames
	first, err := bitio.ReadInt[uint8](r, 8)
	if err != nil {
		return RareOrCraftedNames{}, err
	}
	last, err := bitio.ReadInt[uint8](r, 8)
	if err != nil {
		return RareOrCraftedNames{}, err
	}
	names.FirstName = first
	names.LastName = last
	for i := 0; i < 6; i++ {
		opt, err := schema.ReadOption(r, func(r *bitio.Reader) (uint16, error) { return bitio.ReadInt[uint16](r, 11) })
		if err != nil {
			return RareOrCraftedNames{}, codecerr.Annotate(err, codecerr.Elem("affixes", i))
		}
		v, ok := opt.Get()
		names.Affixes[i] = OptionalAffix{Present: ok, Value: v}
	}
	return names, nil
}

func writeRareOrCraftedNames(w *bitio.Writer, names RareOrCraftedNames) error {
	if err := bitio.WriteInt[uint8](w, names.FirstName, 8); err != nil {
		return err
	}
	if err := bitio.WriteInt[uint8](w, names.LastName, 8); err != nil {
		return err
	}
	for i, affix := range names.Affixes {
		opt := schema.None[uint16]()
		if affix.Present {
			opt = schema.Some(affix.Value)
		}
		if err := schema.WriteOption(w, opt, func(w *bitio.Writer, v uint16) error {
			return bitio.WriteInt[uint16](w, v, 11)
		}); err != nil {
			return codecerr.Annotate(err, codecerr.Elem("affixes", i))
		}
	}
	return nil
}
