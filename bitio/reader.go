// Package bitio implements the typed bit-stream operations (spec §4.1)
// that every schema primitive and save-file entity is built from: a
// Reader and a Writer, each carrying a *parsectx.Context and references to
// the immutable ItemDB/PropertyDB lookup tables.
//
// Grounded on peggyvm/execution.go's Execution (DP-indexed cursor over a
// []byte, generalized here to a bit-indexed cursor over a bitbuf.Buffer)
// and on original_source/src/bitsy/reader.rs + src/bitsy/writer.rs for the
// exact search/read_until/peek/read_property_tail contracts.
package bitio

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/pignacio/d2-itemsorter-go/bitbuf"
	"github.com/pignacio/d2-itemsorter-go/catalog"
	"github.com/pignacio/d2-itemsorter-go/codecerr"
	"github.com/pignacio/d2-itemsorter-go/parsectx"
)

// Reader walks a bitbuf.Buffer bit by bit, carrying the dynamic parse
// context and the two lookup tables every item-aware parse needs.
type Reader struct {
	buf    bitbuf.Buffer
	pos    uint64
	ctx    *parsectx.Context
	itemDB *catalog.ItemDB
	propDB *catalog.PropertyDB
}

// NewReader builds a Reader over buf. ctx may be nil, in which case an
// empty *parsectx.Context is created.
func NewReader(buf bitbuf.Buffer, ctx *parsectx.Context, itemDB *catalog.ItemDB, propDB *catalog.PropertyDB) *Reader {
	if ctx == nil {
		ctx = parsectx.New()
	}
	return &Reader{buf: buf, ctx: ctx, itemDB: itemDB, propDB: propDB}
}

// Index returns the current bit cursor position.
func (r *Reader) Index() uint64 { return r.pos }

// Len returns the buffer's total length in bits.
func (r *Reader) Len() uint64 { return r.buf.Len() }

// Remaining returns how many unread bits remain.
func (r *Reader) Remaining() uint64 { return r.buf.Len() - r.pos }

// Context returns the reader's dynamic parse context.
func (r *Reader) Context() *parsectx.Context { return r.ctx }

// ItemDB returns the reader's item-type lookup table.
func (r *Reader) ItemDB() *catalog.ItemDB { return r.itemDB }

// PropertyDB returns the reader's property-definition lookup table.
func (r *Reader) PropertyDB() *catalog.PropertyDB { return r.propDB }

// QueueContextReset snapshots the reader's context; the returned Guard's
// Release restores it.
func (r *Reader) QueueContextReset() *parsectx.Guard {
	return r.ctx.QueueContextReset()
}

// ReadBit reads a single bit, returning its value and the index it was
// read from. Satisfies huffman's bitSource interface.
func (r *Reader) ReadBit() (bool, uint64, error) {
	if r.pos >= r.buf.Len() {
		return false, r.pos, codecerr.New(codecerr.EndOfData, r.pos, "end of data reading 1 bit")
	}
	idx := r.pos
	v := r.buf.Bit(r.pos)
	r.pos++
	return v, idx, nil
}

func maxOf[T constraints.Unsigned]() uint64 {
	var zero T
	return uint64(^zero)
}

// ReadInt reads n bits (n <= 32) as an unsigned little-endian-bit-order
// integer and converts it to T. Fails with InvalidBitWidth if n > 32,
// EndOfData if fewer than n bits remain, ValueOverflow if the decoded
// value doesn't fit T.
func ReadInt[T constraints.Unsigned](r *Reader, n int) (T, error) {
	var zero T
	if n < 0 || n > 32 {
		return zero, codecerr.New(codecerr.InvalidBitWidth, r.pos, "int width %d is out of range [0,32]", n)
	}
	if r.Remaining() < uint64(n) {
		return zero, codecerr.New(codecerr.EndOfData, r.pos, "need %d bits, only %d remain", n, r.Remaining())
	}
	start := r.pos
	var v uint64
	for i := 0; i < n; i++ {
		if r.buf.Bit(r.pos) {
			v |= uint64(1) << uint(i)
		}
		r.pos++
	}
	if v > maxOf[T]() {
		return zero, codecerr.New(codecerr.ValueOverflow, start, "decoded value %d overflows destination type", v)
	}
	return T(v), nil
}

// ReadBits returns an owned copy of the next n bits.
func (r *Reader) ReadBits(n uint64) (bitbuf.Buffer, error) {
	if r.Remaining() < n {
		return bitbuf.Buffer{}, codecerr.New(codecerr.EndOfData, r.pos, "need %d bits, only %d remain", n, r.Remaining())
	}
	out := r.buf.Slice(r.pos, r.pos+n)
	r.pos += n
	return out, nil
}

// ReadPadding consumes (8 - index mod 8) mod 8 bits. All consumed bits
// must be zero, else BadPadding. If fewer bits remain than the alignment
// would normally consume, end-of-data is tolerated: consumption is capped
// at the buffer's length rather than failing.
func (r *Reader) ReadPadding() error {
	pad := (8 - (r.pos % 8)) % 8
	if pad == 0 {
		return nil
	}
	if avail := r.Remaining(); avail < pad {
		pad = avail
	}
	for i := uint64(0); i < pad; i++ {
		if r.buf.Bit(r.pos) {
			return codecerr.New(codecerr.BadPadding, r.pos, "non-zero padding bit")
		}
		r.pos++
	}
	return nil
}

// ReadTail returns and consumes all remaining bits. Never fails.
func (r *Reader) ReadTail() bitbuf.Buffer {
	out := r.buf.Slice(r.pos, r.buf.Len())
	r.pos = r.buf.Len()
	return out
}

// ReadUntil advances to the first bit-aligned occurrence of needle at or
// after the current index, returning the bits skipped. If needle never
// occurs, the rest of the buffer is consumed and returned (the cursor
// lands at end-of-buffer). Never fails.
func (r *Reader) ReadUntil(needle bitbuf.Buffer) bitbuf.Buffer {
	offset, found := bitbuf.Search(r.buf, r.pos, needle, 0)
	if !found {
		return r.ReadTail()
	}
	skipped := r.buf.Slice(r.pos, r.pos+offset)
	r.pos += offset
	return skipped
}

// ReadPropertyTail locates the first occurrence of nine consecutive
// set-bits (the property-list terminator, spec §3), extends that match
// forward across any further immediately-consecutive set-bits, returns
// the bits before the (extended) match, the total length of the matched
// run (always >= 9), and positions the cursor after it.
func (r *Reader) ReadPropertyTail() (bitbuf.Buffer, uint64, error) {
	needle := bitbuf.Ones(9)
	offset, found := bitbuf.Search(r.buf, r.pos, needle, 0)
	if !found {
		return bitbuf.Buffer{}, 0, codecerr.New(codecerr.EndOfData, r.pos, "property-list terminator not found")
	}
	termStart := r.pos + offset
	before := r.buf.Slice(r.pos, termStart)
	run := bitbuf.CountConsecutiveSetBits(r.buf, termStart)
	r.pos = termStart + run
	return before, run, nil
}

// ConsumeExtraSetBits consumes and counts any consecutive set-bits
// starting at the current cursor position, without requiring a needle
// search. Used to extend a terminator match already found by an exact
// 9-bit read (spec §3's "advances past any further consecutive
// set-bits").
func (r *Reader) ConsumeExtraSetBits() uint64 {
	run := bitbuf.CountConsecutiveSetBits(r.buf, r.pos)
	r.pos += run
	return run
}

// Peek snapshots the reader's cursor and context, runs f, then restores
// both regardless of whether f succeeded — so a failed speculative parse
// never leaves side effects behind.
func Peek[T any](r *Reader, f func(*Reader) (T, error)) (T, error) {
	savedPos := r.pos
	savedCtx := r.ctx.Clone()
	v, err := f(r)
	r.pos = savedPos
	*r.ctx = *savedCtx
	return v, err
}

// Search locates the first bit-aligned occurrence of needle at or after
// index+offset, returning an offset relative to the current index.
func (r *Reader) Search(needle bitbuf.Buffer, offset uint64) (uint64, bool) {
	return bitbuf.Search(r.buf, r.pos, needle, offset)
}

// ReportNextBytes renders the next n bytes (from the current bit
// position, rounded down to the containing byte) as a hex dump, for
// diagnostics. Grounded on peggyvm/util.go's hexDump.
func (r *Reader) ReportNextBytes(n int) string {
	startByte := r.pos / 8
	var b strings.Builder
	count := 0
	for i := uint64(0); i < uint64(n) && startByte+i < (r.buf.Len()+7)/8; i++ {
		byteIdx := startByte + i
		var v byte
		for bit := 0; bit < 8 && byteIdx*8+uint64(bit) < r.buf.Len(); bit++ {
			if r.buf.Bit(byteIdx*8 + uint64(bit)) {
				v |= 1 << uint(bit)
			}
		}
		if count > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02x", v)
		count++
	}
	return b.String()
}
