package d2s

import (
	"github.com/pignacio/d2-itemsorter-go/bitio"
	"github.com/pignacio/d2-itemsorter-go/codecerr"
	"github.com/pignacio/d2-itemsorter-go/schema"
)

// Fixed blob sizes (spec §3): sizes are exact and load-bearing even though
// their internal layout is out of scope (spec §9 "multi-byte 'unknown'
// blobs").
const (
	skillDataSize       = 80
	appearanceSize      = 41
	mercHeaderSize      = 42
	menuAppearanceSize  = 48
	unknownBlobSize     = 52
	questBlockSize      = 298
	waypointBlockSize   = 80
	npcBlockSize        = 52
	skillBlockSize      = 32
	legacyNameSize      = 16
)

// Player is a full character save (spec §3).
type Player struct {
	Magic          schema.Bytes // 4 bytes, expected {0x55,0xAA,0x55,0xAA} per the well-known format
	Version        uint32
	DeclaredSize   uint32
	Checksum       uint32
	ActiveWeapon   uint32
	OldName        schema.Bytes // 16 bytes
	Status         uint8
	Progression    uint8
	Class          uint8
	Level          uint8
	CreatedAt      uint32
	LastPlayedAt   uint32
	SkillData      schema.Bytes // 80 B
	Appearance     schema.Bytes // 41 B
	MercHeader     schema.Bytes // 42 B
	MenuAppearance schema.Bytes // 48 B
	NewName        schema.Bytes // 16 bytes
	UnknownBlob    schema.Bytes // 52 B
	QuestBlock     schema.Bytes // 298 B
	WaypointBlock  schema.Bytes // 80 B
	NPCBlock       schema.Bytes // 52 B
	Attributes     AttributeList
	SkillBlock     schema.Bytes // 32 B
	Items          ItemList
	Corpse         Corpse
	Mercenary      MercenaryItems
	IronGolem      IronGolem
}

// DisplayName returns OldName or NewName depending on Version, per spec
// §3/§6's version-90 threshold.
func (p Player) DisplayName() []byte {
	if p.Version >= versionThreshold90 {
		return p.NewName.Data()
	}
	return p.OldName.Data()
}

// ReadPlayer parses a full character save. The checksum field is read
// as-is (not verified); callers that need to validate it should recompute
// via the checksum package and compare.
func ReadPlayer(r *bitio.Reader) (Player, error) {
	var p Player

	magic, err := schema.ReadBytesN(r, 4)
	if err != nil {
		return Player{}, codecerr.Annotate(err, codecerr.Field("magic"))
	}
	p.Magic = magic

	version, err := bitio.ReadInt[uint32](r, 32)
	if err != nil {
		return Player{}, codecerr.Annotate(err, codecerr.Field("version"))
	}
	p.Version = version
	r.Context().SetVersion(version)

	if p.DeclaredSize, err = readU32(r, "declared_size"); err != nil {
		return Player{}, err
	}
	if p.Checksum, err = readU32(r, "checksum"); err != nil {
		return Player{}, err
	}
	if p.ActiveWeapon, err = readU32(r, "active_weapon"); err != nil {
		return Player{}, err
	}

	if p.OldName, err = readBlob(r, legacyNameSize, "old_name"); err != nil {
		return Player{}, err
	}

	status, err := bitio.ReadInt[uint8](r, 8)
	if err != nil {
		return Player{}, codecerr.Annotate(err, codecerr.Field("status"))
	}
	p.Status = status

	progression, err := bitio.ReadInt[uint8](r, 8)
	if err != nil {
		return Player{}, codecerr.Annotate(err, codecerr.Field("progression"))
	}
	p.Progression = progression

	class, err := bitio.ReadInt[uint8](r, 8)
	if err != nil {
		return Player{}, codecerr.Annotate(err, codecerr.Field("class"))
	}
	p.Class = class

	level, err := bitio.ReadInt[uint8](r, 8)
	if err != nil {
		return Player{}, codecerr.Annotate(err, codecerr.Field("level"))
	}
	p.Level = level

	if p.CreatedAt, err = readU32(r, "created_at"); err != nil {
		return Player{}, err
	}
	if p.LastPlayedAt, err = readU32(r, "last_played_at"); err != nil {
		return Player{}, err
	}

	if p.SkillData, err = readBlob(r, skillDataSize, "skill_data"); err != nil {
		return Player{}, err
	}
	if p.Appearance, err = readBlob(r, appearanceSize, "appearance"); err != nil {
		return Player{}, err
	}
	if p.MercHeader, err = readBlob(r, mercHeaderSize, "merc_header"); err != nil {
		return Player{}, err
	}
	if p.MenuAppearance, err = readBlob(r, menuAppearanceSize, "menu_appearance"); err != nil {
		return Player{}, err
	}
	if p.NewName, err = readBlob(r, legacyNameSize, "new_name"); err != nil {
		return Player{}, err
	}
	if p.UnknownBlob, err = readBlob(r, unknownBlobSize, "unknown_blob"); err != nil {
		return Player{}, err
	}
	if p.QuestBlock, err = readBlob(r, questBlockSize, "quest_block"); err != nil {
		return Player{}, err
	}
	if p.WaypointBlock, err = readBlob(r, waypointBlockSize, "waypoint_block"); err != nil {
		return Player{}, err
	}
	if p.NPCBlock, err = readBlob(r, npcBlockSize, "npc_block"); err != nil {
		return Player{}, err
	}

	attrs, err := ReadAttributeList(r)
	if err != nil {
		return Player{}, codecerr.Annotate(err, codecerr.Field("attributes"))
	}
	p.Attributes = attrs

	if p.SkillBlock, err = readBlob(r, skillBlockSize, "skill_block"); err != nil {
		return Player{}, err
	}

	items, err := ReadItemList(r)
	if err != nil {
		return Player{}, codecerr.Annotate(err, codecerr.Field("items"))
	}
	p.Items = items

	corpse, err := ReadCorpse(r)
	if err != nil {
		return Player{}, codecerr.Annotate(err, codecerr.Field("corpse"))
	}
	p.Corpse = corpse

	merc, err := ReadMercenaryItems(r)
	if err != nil {
		return Player{}, codecerr.Annotate(err, codecerr.Field("mercenary"))
	}
	p.Mercenary = merc

	golem, err := ReadIronGolem(r)
	if err != nil {
		return Player{}, codecerr.Annotate(err, codecerr.Field("iron_golem"))
	}
	p.IronGolem = golem

	return p, nil
}

// Write serializes p back to its on-wire form. The checksum field is
// written verbatim from p.Checksum; callers that want a freshly computed
// checksum should use checksum.Recompute on the resulting bytes and patch
// it in (spec §4.8), since the checksum depends on the fully serialized
// byte sequence with the field zeroed.
func (p Player) Write(w *bitio.Writer) error {
	if err := p.Magic.Write(w); err != nil {
		return codecerr.Annotate(err, codecerr.Field("magic"))
	}
	if err := bitio.WriteInt[uint32](w, p.Version, 32); err != nil {
		return codecerr.Annotate(err, codecerr.Field("version"))
	}
	w.Context().SetVersion(p.Version)

	if err := writeU32(w, p.DeclaredSize, "declared_size"); err != nil {
		return err
	}
	if err := writeU32(w, p.Checksum, "checksum"); err != nil {
		return err
	}
	if err := writeU32(w, p.ActiveWeapon, "active_weapon"); err != nil {
		return err
	}

	if err := writeBlob(w, p.OldName, "old_name"); err != nil {
		return err
	}

	if err := bitio.WriteInt[uint8](w, p.Status, 8); err != nil {
		return codecerr.Annotate(err, codecerr.Field("status"))
	}
	if err := bitio.WriteInt[uint8](w, p.Progression, 8); err != nil {
		return codecerr.Annotate(err, codecerr.Field("progression"))
	}
	if err := bitio.WriteInt[uint8](w, p.Class, 8); err != nil {
		return codecerr.Annotate(err, codecerr.Field("class"))
	}
	if err := bitio.WriteInt[uint8](w, p.Level, 8); err != nil {
		return codecerr.Annotate(err, codecerr.Field("level"))
	}

	if err := writeU32(w, p.CreatedAt, "created_at"); err != nil {
		return err
	}
	if err := writeU32(w, p.LastPlayedAt, "last_played_at"); err != nil {
		return err
	}

	if err := writeBlob(w, p.SkillData, "skill_data"); err != nil {
		return err
	}
	if err := writeBlob(w, p.Appearance, "appearance"); err != nil {
		return err
	}
	if err := writeBlob(w, p.MercHeader, "merc_header"); err != nil {
		return err
	}
	if err := writeBlob(w, p.MenuAppearance, "menu_appearance"); err != nil {
		return err
	}
	if err := writeBlob(w, p.NewName, "new_name"); err != nil {
		return err
	}
	if err := writeBlob(w, p.UnknownBlob, "unknown_blob"); err != nil {
		return err
	}
	if err := writeBlob(w, p.QuestBlock, "quest_block"); err != nil {
		return err
	}
	if err := writeBlob(w, p.WaypointBlock, "waypoint_block"); err != nil {
		return err
	}
	if err := writeBlob(w, p.NPCBlock, "npc_block"); err != nil {
		return err
	}

	if err := p.Attributes.Write(w); err != nil {
		return codecerr.Annotate(err, codecerr.Field("attributes"))
	}

	if err := writeBlob(w, p.SkillBlock, "skill_block"); err != nil {
		return err
	}

	if err := p.Items.Write(w); err != nil {
		return codecerr.Annotate(err, codecerr.Field("items"))
	}
	if err := p.Corpse.Write(w); err != nil {
		return codecerr.Annotate(err, codecerr.Field("corpse"))
	}
	if err := p.Mercenary.Write(w); err != nil {
		return codecerr.Annotate(err, codecerr.Field("mercenary"))
	}
	return codecerr.Annotate(p.IronGolem.Write(w), codecerr.Field("iron_golem"))
}

func readU32(r *bitio.Reader, field string) (uint32, error) {
	v, err := bitio.ReadInt[uint32](r, 32)
	if err != nil {
		return 0, codecerr.Annotate(err, codecerr.Field(field))
	}
	return v, nil
}

func writeU32(w *bitio.Writer, v uint32, field string) error {
	return codecerr.Annotate(bitio.WriteInt[uint32](w, v, 32), codecerr.Field(field))
}

func readBlob(r *bitio.Reader, n int, field string) (schema.Bytes, error) {
	b, err := schema.ReadBytesN(r, n)
	if err != nil {
		return schema.Bytes{}, codecerr.Annotate(err, codecerr.Field(field))
	}
	return b, nil
}

func writeBlob(w *bitio.Writer, b schema.Bytes, field string) error {
	return codecerr.Annotate(b.Write(w), codecerr.Field(field))
}
