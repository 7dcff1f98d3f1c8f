package bitio

import (
	"golang.org/x/exp/constraints"

	"github.com/pignacio/d2-itemsorter-go/bitbuf"
	"github.com/pignacio/d2-itemsorter-go/catalog"
	"github.com/pignacio/d2-itemsorter-go/codecerr"
	"github.com/pignacio/d2-itemsorter-go/parsectx"
)

// Writer accumulates bits into a growable slice, carrying the same
// dynamic context and lookup tables as Reader so write-side schema
// primitives (which often need to consult item_info or quality_id to
// decide field widths) have everything they need.
type Writer struct {
	bits   []bool
	ctx    *parsectx.Context
	itemDB *catalog.ItemDB
	propDB *catalog.PropertyDB
}

// NewWriter builds an empty Writer. ctx may be nil, in which case an empty
// *parsectx.Context is created.
func NewWriter(ctx *parsectx.Context, itemDB *catalog.ItemDB, propDB *catalog.PropertyDB) *Writer {
	if ctx == nil {
		ctx = parsectx.New()
	}
	return &Writer{ctx: ctx, itemDB: itemDB, propDB: propDB}
}

// Index returns the number of bits written so far.
func (w *Writer) Index() uint64 { return uint64(len(w.bits)) }

// Context returns the writer's dynamic parse context.
func (w *Writer) Context() *parsectx.Context { return w.ctx }

// ItemDB returns the writer's item-type lookup table.
func (w *Writer) ItemDB() *catalog.ItemDB { return w.itemDB }

// PropertyDB returns the writer's property-definition lookup table.
func (w *Writer) PropertyDB() *catalog.PropertyDB { return w.propDB }

// QueueContextReset snapshots the writer's context; the returned Guard's
// Release restores it.
func (w *Writer) QueueContextReset() *parsectx.Guard {
	return w.ctx.QueueContextReset()
}

// WriteBit appends a single bit. Satisfies huffman's bitSink interface.
func (w *Writer) WriteBit(v bool) error {
	w.bits = append(w.bits, v)
	return nil
}

// WriteInt writes x's low n bits (n <= 32) in little-endian-bit order.
// Fails with InvalidBitWidth if n is out of [0,32], ValueOverflow if x
// doesn't fit in n bits.
func WriteInt[T constraints.Unsigned](w *Writer, x T, n int) error {
	if n < 0 || n > 32 {
		return codecerr.New(codecerr.InvalidBitWidth, w.Index(), "int width %d is out of range [0,32]", n)
	}
	v := uint64(x)
	if n < 64 && v >= (uint64(1)<<uint(n)) {
		return codecerr.New(codecerr.ValueOverflow, w.Index(), "value %d does not fit in %d bits", v, n)
	}
	for i := 0; i < n; i++ {
		w.bits = append(w.bits, (v>>uint(i))&1 == 1)
	}
	return nil
}

// WriteBits appends the bits of b verbatim.
func (w *Writer) WriteBits(b bitbuf.Buffer) error {
	for i := uint64(0); i < b.Len(); i++ {
		w.bits = append(w.bits, b.Bit(i))
	}
	return nil
}

// WritePadding appends zero bits until the writer is byte-aligned.
func (w *Writer) WritePadding() error {
	pad := (8 - (w.Index() % 8)) % 8
	for i := uint64(0); i < pad; i++ {
		w.bits = append(w.bits, false)
	}
	return nil
}

// WritePropertyTerminator appends runLen consecutive set-bits (runLen
// must be >= 9), reproducing whatever "terminator extension" the matching
// ReadPropertyTail call observed (spec §3).
func (w *Writer) WritePropertyTerminator(runLen uint64) error {
	if runLen < 9 {
		return codecerr.New(codecerr.InvalidAction, w.Index(), "property terminator run length %d is below the minimum of 9", runLen)
	}
	return w.WriteBits(bitbuf.Ones(runLen))
}

// Buffer returns an owned snapshot of everything written so far.
func (w *Writer) Buffer() bitbuf.Buffer {
	return bitbuf.FromBits(w.bits)
}

// Bytes returns the written bits packed into bytes, padding the final
// byte with zero bits if the writer isn't currently byte-aligned. Callers
// that must preserve alignment should call WritePadding first and check
// the error.
func (w *Writer) Bytes() []byte {
	return w.Buffer().Bytes()
}
