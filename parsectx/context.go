// Package parsectx implements the codec's dynamic parsing context: the
// small set of keyed values (format version, item-quality tag, item
// descriptor metadata, socket/runeword flags) that flow through a parse
// and must be scoped to the entity that set them.
//
// Design Notes (spec §9) prefers a closed struct-of-options over a
// JSON-like dynamic map for a statically-typed host language; this
// package follows that recommendation. The scoped-restore discipline is
// grounded on peggyvm/execution.go's Execution.CS stack of CHOICE/FAIL
// Frames (peggyvm/stack.go): a Frame snapshots what must be restored on
// backtrack, and restoring it is exactly this package's Guard.Release.
package parsectx

import (
	"github.com/pignacio/d2-itemsorter-go/catalog"
	"github.com/pignacio/d2-itemsorter-go/codecerr"
)

// ItemInfo is an alias for catalog.ItemInfo: the context stores exactly
// the record catalog.ItemDB.Lookup returns, so item parsing never needs
// to reshape it.
type ItemInfo = catalog.ItemInfo

// QualityTag is the 4-bit item quality discriminator (spec §3's
// ExtendedInfo.quality_id). It's kept as a raw numeric id here (rather
// than d2s's richer tagged-union Quality) so this package never needs to
// import the d2s package that depends on it.
type QualityTag uint8

// Context is the dynamic parsing context threaded through a Reader/Writer.
// The zero value is an empty context (no keys set).
type Context struct {
	version      uint32
	hasVersion   bool
	hasSockets   bool
	hasRuneword  bool
	itemInfo     ItemInfo
	hasItemInfo  bool
	qualityID    QualityTag
	hasQualityID bool
}

// New returns an empty Context.
func New() *Context {
	return &Context{}
}

// Version returns the format version and whether it has been set.
func (c *Context) Version() (uint32, bool) {
	return c.version, c.hasVersion
}

// SetVersion records the format version, returning the prior value (0 if
// unset).
func (c *Context) SetVersion(v uint32) uint32 {
	prev := c.version
	c.version = v
	c.hasVersion = true
	return prev
}

// RequireVersion returns the format version or a MissingVersion error at
// the given bit index if it hasn't been set.
func (c *Context) RequireVersion(bitIndex uint64) (uint32, error) {
	v, ok := c.Version()
	if !ok {
		return 0, codecerr.New(codecerr.MissingVersion, bitIndex, "version not set in parse context")
	}
	return v, nil
}

// HasSockets returns whether the current item has sockets.
func (c *Context) HasSockets() bool {
	return c.hasSockets
}

// SetHasSockets records whether the current item has sockets.
func (c *Context) SetHasSockets(v bool) {
	c.hasSockets = v
}

// HasRuneword returns whether the current item carries a runeword.
func (c *Context) HasRuneword() bool {
	return c.hasRuneword
}

// SetHasRuneword records whether the current item carries a runeword.
func (c *Context) SetHasRuneword(v bool) {
	c.hasRuneword = v
}

// ItemInfo returns the current item's type metadata and whether it has
// been set.
func (c *Context) ItemInfo() (ItemInfo, bool) {
	return c.itemInfo, c.hasItemInfo
}

// SetItemInfo records the current item's type metadata.
func (c *Context) SetItemInfo(info ItemInfo) {
	c.itemInfo = info
	c.hasItemInfo = true
}

// RequireItemInfo returns the current item's type metadata or a
// MissingContext error at the given bit index if it hasn't been set.
func (c *Context) RequireItemInfo(bitIndex uint64) (ItemInfo, error) {
	info, ok := c.ItemInfo()
	if !ok {
		return ItemInfo{}, codecerr.New(codecerr.MissingContext, bitIndex, "item_info not set in parse context")
	}
	return info, nil
}

// QualityID returns the current item's quality tag and whether it has
// been set.
func (c *Context) QualityID() (QualityTag, bool) {
	return c.qualityID, c.hasQualityID
}

// SetQualityID records the current item's quality tag.
func (c *Context) SetQualityID(q QualityTag) {
	c.qualityID = q
	c.hasQualityID = true
}

// RequireQualityID returns the current item's quality tag or a
// MissingContext error at the given bit index if it hasn't been set.
func (c *Context) RequireQualityID(bitIndex uint64) (QualityTag, error) {
	q, ok := c.QualityID()
	if !ok {
		return 0, codecerr.New(codecerr.MissingContext, bitIndex, "quality_id not set in parse context")
	}
	return q, nil
}

// Clone returns a deep copy of c. Because every field of Context is a
// value type, a plain struct copy already satisfies "deep" here.
func (c *Context) Clone() *Context {
	cp := *c
	return &cp
}

// Guard is a scoped-reset handle: it snapshots a Context on acquisition
// and restores that snapshot when Release is called, localizing any
// writes the caller made to has_sockets, has_runeword, quality_id, and
// item_info so they don't leak to sibling parses. Guards nest correctly
// because each Guard captures its own independent snapshot.
type Guard struct {
	ctx    *Context
	saved  Context
	active bool
}

// QueueContextReset snapshots c and returns a Guard. The caller must call
// Release (typically via defer) on every path out of the scope, including
// error returns, so the snapshot is always restored.
func (c *Context) QueueContextReset() *Guard {
	return &Guard{ctx: c, saved: *c, active: true}
}

// Release restores the Context to the state it was in when the Guard was
// created. Calling Release more than once is a no-op after the first
// call.
func (g *Guard) Release() {
	if !g.active {
		return
	}
	*g.ctx = g.saved
	g.active = false
}
