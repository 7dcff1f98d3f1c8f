// Package d2s implements the character-save entities spec §3 and §4.5-4.7
// define: AttributeList, Item, ExtendedInfo, PropertyList, ItemList,
// Corpse, MercenaryItems, IronGolem, Player, and the Quality tagged union.
// Grounded throughout on original_source/src/item/*.rs and src/player.rs,
// restructured per spec §9's Design Notes (tagged sum types over an
// interface hierarchy for Quality; a closed parsectx.Context instead of a
// dynamic map).
package d2s

import "github.com/pignacio/d2-itemsorter-go/bitbuf"

// Magic byte sequences framing the entities that carry them (spec §6).
var (
	ItemMagic        = bitbuf.FromBytes([]byte{0x4A, 0x4D}) // "JM"
	MercenaryMagic   = bitbuf.FromBytes([]byte{0x6A, 0x66}) // "jf"
	IronGolemMagic   = bitbuf.FromBytes([]byte{0x6B, 0x66}) // "kf"
	AttributesMagic  = bitbuf.FromBytes([]byte{0x67, 0x66}) // "gf"
)

// versionThreshold90 is the format-version cutoff at or above which a
// Player's new_name field (rather than old_name) is canonical (spec §3,
// §6 "Versioning").
const versionThreshold90 = 90

// versionThreshold97 is the format-version cutoff at or above which
// in-socket sub-items omit the ItemMagic framing (spec §4.5 "Inline vs
// standalone items").
const versionThreshold97 = 97

// maxSocketRecursionDepth is the defense-in-depth cap on socketed-item
// recursion (spec §5). Not found as an explicit named constant in
// original_source, but consistent with its recursive socketed_items shape
// (see DESIGN.md).
const maxSocketRecursionDepth = 16

// propertyTerminatorID is the 9-bit sentinel id ending an AttributeList or
// PropertyList (spec §3: "all-ones").
const propertyTerminatorID = 0x1FF
