package d2s

import "github.com/pignacio/d2-itemsorter-go/codecerr"

// QualityKind discriminates Quality's tagged-union arms (spec §3
// ExtendedInfo table, spec §6 "Quality tags").
type QualityKind uint8

const (
	QualityLow QualityKind = iota + 1
	QualityNormal
	QualityHighSuperior
	QualityMagic
	QualitySet
	QualityRare
	QualityUnique
	QualityCrafted
	// QualityOther covers a quality byte outside 1-8. Grounded on
	// original_source/src/quality.rs and spec §6's note that "any other
	// observed value is treated as Normal with that tag preserved
	// verbatim" — the raw byte is kept so write reproduces it exactly.
	QualityOther
)

// RareOrCraftedNames holds the two 8-bit name ids and up to six optional
// 11-bit affix ids carried by Rare and Crafted items (spec §3 table).
type RareOrCraftedNames struct {
	FirstName uint8
	LastName  uint8
	Affixes   [6]OptionalAffix
}

// OptionalAffix is one of RareOrCraftedNames's six Option<11-bit> slots.
type OptionalAffix struct {
	Present bool
	Value   uint16
}

// Quality is the tagged sum type spec §9's Design Notes prescribes in
// place of the source's owning-pointer-to-interface: exactly one payload
// field is meaningful, selected by Kind.
type Quality struct {
	Kind QualityKind

	// RawTag preserves the original 4-bit value as observed, including for
	// QualityOther where it falls outside 1-8.
	RawTag uint8

	Low             uint8 // QualityLow: 4 bits
	HighSuperior    uint8 // QualityHighSuperior: 3 bits
	MagicPrefix     uint16
	MagicSuffix     uint16 // QualityMagic: 11-bit prefix, 11-bit suffix
	SetID           uint16 // QualitySet: 12-bit id
	RareOrCrafted   RareOrCraftedNames
	UniqueID        uint16 // QualityUnique: 12-bit id
}

// tagToKind maps the observed 4-bit quality tag to its QualityKind,
// returning QualityOther for any value outside 1-8 (spec §6).
func tagToKind(tag uint8) QualityKind {
	switch tag {
	case 1:
		return QualityLow
	case 2:
		return QualityNormal
	case 3:
		return QualityHighSuperior
	case 4:
		return QualityMagic
	case 5:
		return QualitySet
	case 6:
		return QualityRare
	case 7:
		return QualityUnique
	case 8:
		return QualityCrafted
	default:
		return QualityOther
	}
}

// kindToTag is tagToKind's inverse for the eight recognized kinds;
// QualityOther instead writes back RawTag verbatim.
func kindToTag(k QualityKind) (uint8, error) {
	switch k {
	case QualityLow:
		return 1, nil
	case QualityNormal:
		return 2, nil
	case QualityHighSuperior:
		return 3, nil
	case QualityMagic:
		return 4, nil
	case QualitySet:
		return 5, nil
	case QualityRare:
		return 6, nil
	case QualityUnique:
		return 7, nil
	case QualityCrafted:
		return 8, nil
	default:
		return 0, codecerr.New(codecerr.InvalidAction, 0, "kindToTag called on QualityKind %d with no fixed tag", k)
	}
}
