package catalog

// ValueDef describes one of a property's up to four stored values: its
// bit width (0 means this slot is absent for this property) and the
// offset subtracted from the decoded unsigned value to yield the logical
// signed value (spec §3's PropertyDef).
type ValueDef struct {
	Width  int
	Offset int
}

// Present reports whether this value slot is used at all.
func (v ValueDef) Present() bool {
	return v.Width > 0
}

// PropertyDef is the immutable per-property-id record: a numeric id (9
// bits, spec §3), a human-readable template string (not interpreted by
// the codec beyond storage), and up to four ValueDefs.
type PropertyDef struct {
	ID       uint16
	Template string
	Values   [4]ValueDef
}

// PropertyDB is the static registry of property definitions (spec §4.4:
// "a large table; implementers may generate it from an embedded
// resource"). Lookup may report "unknown", in which case d2s's
// PropertyList parser preserves the remainder of the list as an opaque
// tail (spec §4.6).
type PropertyDB struct {
	byID map[uint16]PropertyDef
}

// NewPropertyDB builds a PropertyDB from a caller-supplied slice of
// definitions, as produced from original_source/src/item/properties.rs's
// per-id value-width/offset table. Later entries win on a colliding ID.
func NewPropertyDB(defs []PropertyDef) *PropertyDB {
	db := &PropertyDB{byID: make(map[uint16]PropertyDef, len(defs))}
	for _, def := range defs {
		db.byID[def.ID] = def
	}
	return db
}

// Lookup returns the PropertyDef for id and true, or a zero PropertyDef
// and false if id isn't registered.
func (db *PropertyDB) Lookup(id uint16) (PropertyDef, bool) {
	if db == nil {
		return PropertyDef{}, false
	}
	def, ok := db.byID[id]
	return def, ok
}
