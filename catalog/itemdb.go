// Package catalog holds the two read-only lookup tables the codec needs
// while parsing items: the item-type database (what a 4-character item
// code means) and the property-definition database (how a 9-bit property
// id's values are shaped). Both are built once from caller-supplied rows
// and are safe for concurrent read-only use afterward (spec §5).
//
// The on-disk (CSV-style) layout of these tables is explicitly out of
// scope (spec §1); this package only models the semantic fields a row
// contributes, grounded on original_source/src/item/info.rs and
// src/item/properties.rs.
package catalog

// ItemInfo is the immutable per-item-code record spec §3 requires:
// display metadata plus the three capability flags that drive ExtendedInfo
// parsing (whether a defense/durability/quantity field is present).
type ItemInfo struct {
	ID            string
	Name          string
	Width         int
	HasWidth      bool
	Height        int
	HasHeight     bool
	HasDefense    bool
	HasDurability bool
	HasQuantity   bool
}

// unknownItemInfo is returned by Lookup for any code the database doesn't
// recognize (spec §3: "default... all flags false").
var unknownItemInfo = ItemInfo{
	ID:   "?????????",
	Name: "Unknown item",
}

// ItemRow is one caller-supplied row of item-type data, partitioned by the
// capability category it came from (armor, belt, boot, gem, glove, helm,
// item, rune, shield, soul, stack, stack-weapon, weapon — spec §4.4). The
// category itself isn't retained after construction; only the row's
// fields matter to the merged lookup.
type ItemRow struct {
	ID            string
	Name          string
	Width         int
	HasWidth      bool
	Height        int
	HasHeight     bool
	HasDefense    bool
	HasDurability bool
	HasQuantity   bool
}

// ItemDB is the immutable, merged item-type lookup table.
type ItemDB struct {
	byID map[string]ItemInfo
}

// NewItemDB merges every row from every supplied category slice into a
// single lookup table keyed by item code. Later rows win on a colliding
// ID, consistent with "the constructor merges all rows into one map keyed
// by id" (spec §4.4); callers are expected not to supply colliding ids
// across categories in practice.
func NewItemDB(categories ...[]ItemRow) *ItemDB {
	db := &ItemDB{byID: make(map[string]ItemInfo)}
	for _, rows := range categories {
		for _, row := range rows {
			db.byID[row.ID] = ItemInfo{
				ID:            row.ID,
				Name:          row.Name,
				Width:         row.Width,
				HasWidth:      row.HasWidth,
				Height:        row.Height,
				HasHeight:     row.HasHeight,
				HasDefense:    row.HasDefense,
				HasDurability: row.HasDurability,
				HasQuantity:   row.HasQuantity,
			}
		}
	}
	return db
}

// Lookup returns the ItemInfo for code, or unknownItemInfo (all flags
// false) if code isn't recognized. Lookup never fails.
func (db *ItemDB) Lookup(code string) ItemInfo {
	if db == nil {
		return unknownItemInfo
	}
	if info, ok := db.byID[code]; ok {
		return info
	}
	return unknownItemInfo
}
