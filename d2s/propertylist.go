package d2s

import (
	"github.com/pignacio/d2-itemsorter-go/bitbuf"
	"github.com/pignacio/d2-itemsorter-go/bitio"
	"github.com/pignacio/d2-itemsorter-go/codecerr"
)

// PropertyValue is one decoded value slot of a property record: the
// logical (offset-applied) signed value plus enough to reconstruct the
// exact stored bits on write.
type PropertyValue struct {
	Width   int
	Offset  int
	Logical int32
}

// Property is one (id, values) record of a PropertyList.
type Property struct {
	ID     uint16
	Values []PropertyValue
}

// PropertyList is the sentinel-terminated sequence of property records
// spec §3/§4.6 define. When parsing hits an id with no PropertyDef, the
// id is kept in UnknownID and everything after it up to (not including)
// the terminator region is preserved as an opaque Tail instead of being
// decoded further.
type PropertyList struct {
	Properties []Property
	// HasTail is true iff parsing stopped on an unrecognized id rather
	// than the terminator.
	HasTail bool
	// UnknownID is the id that had no PropertyDef, valid iff HasTail.
	UnknownID uint16
	// Tail holds the opaque bits following UnknownID up to the terminator
	// region, valid iff HasTail.
	Tail bitbuf.Buffer
	// TerminatorRunLen is the total length (always >= 9) of the
	// consecutive set-bits that closed this list, capturing any
	// "terminator extension" (spec §3) so write reproduces it exactly.
	TerminatorRunLen uint64
}

// ReadPropertyList parses a PropertyList, consulting r's PropertyDB for
// each id's value shape.
func ReadPropertyList(r *bitio.Reader) (PropertyList, error) {
	var list PropertyList
	for i := 0; ; i++ {
		id, err := bitio.ReadInt[uint16](r, 9)
		if err != nil {
			return PropertyList{}, codecerr.Annotate(err, codecerr.Elem("properties", i))
		}
		if id == propertyTerminatorID {
			list.TerminatorRunLen = 9 + r.ConsumeExtraSetBits()
			return list, nil
		}
		def, ok := r.PropertyDB().Lookup(id)
		if !ok {
			tail, runLen, err := r.ReadPropertyTail()
			if err != nil {
				return PropertyList{}, codecerr.Annotate(err, codecerr.Elem("properties", i))
			}
			list.HasTail = true
			list.UnknownID = id
			list.Tail = tail
			list.TerminatorRunLen = runLen
			return list, nil
		}
		prop := Property{ID: id}
		for _, vd := range def.Values {
			if !vd.Present() {
				continue
			}
			stored, err := bitio.ReadInt[uint32](r, vd.Width)
			if err != nil {
				return PropertyList{}, codecerr.Annotate(err, codecerr.Elem("properties", i))
			}
			prop.Values = append(prop.Values, PropertyValue{
				Width:   vd.Width,
				Offset:  vd.Offset,
				Logical: int32(stored) - int32(vd.Offset),
			})
		}
		list.Properties = append(list.Properties, prop)
	}
}

// Write serializes list: each known property's (id, values-with-offsets),
// then the unknown id and opaque tail (if any), then the terminator run
// (spec §4.6).
func (list PropertyList) Write(w *bitio.Writer) error {
	for i, prop := range list.Properties {
		if err := bitio.WriteInt[uint16](w, prop.ID, 9); err != nil {
			return codecerr.Annotate(err, codecerr.Elem("properties", i))
		}
		for _, v := range prop.Values {
			stored := uint32(v.Logical + int32(v.Offset))
			if err := bitio.WriteInt[uint32](w, stored, v.Width); err != nil {
				return codecerr.Annotate(err, codecerr.Elem("properties", i))
			}
		}
	}
	if list.HasTail {
		if err := bitio.WriteInt[uint16](w, list.UnknownID, 9); err != nil {
			return codecerr.Annotate(err, codecerr.Field("unknown_id"))
		}
		if err := w.WriteBits(list.Tail); err != nil {
			return codecerr.Annotate(err, codecerr.Field("tail"))
		}
	}
	runLen := list.TerminatorRunLen
	if runLen < 9 {
		runLen = 9
	}
	return w.WritePropertyTerminator(runLen)
}
