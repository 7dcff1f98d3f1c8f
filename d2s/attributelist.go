package d2s

import (
	"github.com/pignacio/d2-itemsorter-go/bitio"
	"github.com/pignacio/d2-itemsorter-go/codecerr"
)

// AttributeKind names the sixteen recognized stat ids (spec §6 "Attribute
// id table").
type AttributeKind uint8

const (
	AttributeStrength AttributeKind = iota
	AttributeEnergy
	AttributeDexterity
	AttributeVitality
	AttributeUnusedStats
	AttributeUnusedSkills
	AttributeCurrentHP
	AttributeMaxHP
	AttributeCurrentMP
	AttributeMaxMP
	AttributeCurrentStamina
	AttributeMaxStamina
	AttributeLevel
	AttributeExperience
	AttributeGold
	AttributeStashedGold
)

// attributeWidths gives each AttributeKind's stored bit width, by index
// (spec §6: "{10,10,10,10,10,8,21,21,21,21,21,21,7,32,25,25}").
var attributeWidths = [16]int{10, 10, 10, 10, 10, 8, 21, 21, 21, 21, 21, 21, 7, 32, 25, 25}

// Attribute is one (id, value) record of an AttributeList.
type Attribute struct {
	ID    AttributeKind
	Value uint32
}

// AttributeList is the 2-byte-headed, sentinel-terminated sequence of
// (9-bit id, value) records spec §3 and §4.7 define.
type AttributeList struct {
	Attributes []Attribute
}

// ReadAttributeList parses an AttributeList starting at the reader's
// current position.
func ReadAttributeList(r *bitio.Reader) (AttributeList, error) {
	if err := readMagic(r, AttributesMagic); err != nil {
		return AttributeList{}, codecerr.Annotate(err, codecerr.Field("header"))
	}
	var attrs []Attribute
	for i := 0; ; i++ {
		id, err := bitio.ReadInt[uint16](r, 9)
		if err != nil {
			return AttributeList{}, codecerr.Annotate(err, codecerr.Elem("attributes", i))
		}
		if id == propertyTerminatorID {
			break
		}
		if id >= 16 {
			return AttributeList{}, codecerr.Annotate(
				codecerr.New(codecerr.InvalidAttributeId, r.Index(), "attribute id %d is out of range [0,16)", id),
				codecerr.Elem("attributes", i),
			)
		}
		width := attributeWidths[id]
		value, err := bitio.ReadInt[uint32](r, width)
		if err != nil {
			return AttributeList{}, codecerr.Annotate(err, codecerr.Elem("attributes", i))
		}
		attrs = append(attrs, Attribute{ID: AttributeKind(id), Value: value})
	}
	if err := r.ReadPadding(); err != nil {
		return AttributeList{}, codecerr.Annotate(err, codecerr.Field("padding"))
	}
	return AttributeList{Attributes: attrs}, nil
}

// Write serializes al, reproducing the header, every (id, value) record in
// order, the terminator, and byte-alignment padding.
func (al AttributeList) Write(w *bitio.Writer) error {
	if err := w.WriteBits(AttributesMagic); err != nil {
		return codecerr.Annotate(err, codecerr.Field("header"))
	}
	for i, attr := range al.Attributes {
		if err := bitio.WriteInt[uint16](w, uint16(attr.ID), 9); err != nil {
			return codecerr.Annotate(err, codecerr.Elem("attributes", i))
		}
		width := attributeWidths[attr.ID]
		if err := bitio.WriteInt[uint32](w, attr.Value, width); err != nil {
			return codecerr.Annotate(err, codecerr.Elem("attributes", i))
		}
	}
	if err := bitio.WriteInt[uint16](w, propertyTerminatorID, 9); err != nil {
		return codecerr.Annotate(err, codecerr.Field("terminator"))
	}
	return w.WritePadding()
}
