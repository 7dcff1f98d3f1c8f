// Package schema implements the codec's generic wrapper types — Bits,
// Bytes, and Option[X] — layered on top of bitio's Reader/Writer. Grounded
// on byteset/matcher.go's debug-rendering conventions (short, fixed-width
// diagnostic strings for opaque byte runs) generalized here to bit runs.
package schema

import (
	"fmt"
	"strings"

	"github.com/pignacio/d2-itemsorter-go/bitbuf"
	"github.com/pignacio/d2-itemsorter-go/bitio"
)

// Bits is an opaque run of bits preserved verbatim: read and written
// without interpretation, used for unknown-field tails and fixed flag
// groups the codec doesn't decode further.
type Bits struct {
	buf bitbuf.Buffer
}

// ReadBits reads n bits from r into a Bits value.
func ReadBits(r *bitio.Reader, n uint64) (Bits, error) {
	buf, err := r.ReadBits(n)
	if err != nil {
		return Bits{}, err
	}
	return Bits{buf: buf}, nil
}

// Write emits b's bits unchanged.
func (b Bits) Write(w *bitio.Writer) error {
	return w.WriteBits(b.buf)
}

// Len returns the number of bits b holds.
func (b Bits) Len() uint64 { return b.buf.Len() }

// Buffer returns b's underlying bit buffer.
func (b Bits) Buffer() bitbuf.Buffer { return b.buf }

// String renders b's bit pattern, most-significant-looking bit first for
// readability (bit 0 printed last), e.g. "1011".
func (b Bits) String() string {
	var sb strings.Builder
	for i := b.buf.Len(); i > 0; i-- {
		if b.buf.Bit(i - 1) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// bytesHeadTailThreshold is the blob length (in bytes) at or above which
// Bytes.String truncates to a head+tail preview instead of printing every
// byte.
const bytesHeadTailThreshold = 12

// bytesPreviewLen is how many leading/trailing bytes a truncated Bytes
// preview shows.
const bytesPreviewLen = 4

// Bytes is a fixed-length run of bytes, each read with read_int(8) so
// unaligned contexts still decode the same 8-bit value a byte-aligned
// reader would see.
type Bytes struct {
	data []byte
}

// ReadBytesN reads n bytes bytewise from r.
func ReadBytesN(r *bitio.Reader, n int) (Bytes, error) {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		v, err := bitio.ReadInt[uint8](r, 8)
		if err != nil {
			return Bytes{}, err
		}
		out[i] = v
	}
	return Bytes{data: out}, nil
}

// Write emits each byte with write_int(8), preserving the same
// unaligned-context behavior ReadBytesN relies on.
func (b Bytes) Write(w *bitio.Writer) error {
	for _, v := range b.data {
		if err := bitio.WriteInt[uint8](w, v, 8); err != nil {
			return err
		}
	}
	return nil
}

// Data returns b's bytes.
func (b Bytes) Data() []byte { return b.data }

// Len returns the number of bytes b holds.
func (b Bytes) Len() int { return len(b.data) }

// String renders b as hex, truncating to a head+tail preview with a
// hidden-count marker once the blob reaches bytesHeadTailThreshold bytes.
func (b Bytes) String() string {
	if len(b.data) < bytesHeadTailThreshold {
		return fmt.Sprintf("%x", b.data)
	}
	head := b.data[:bytesPreviewLen]
	tail := b.data[len(b.data)-bytesPreviewLen:]
	hidden := len(b.data) - 2*bytesPreviewLen
	return fmt.Sprintf("%x..(%d bytes hidden)..%x", head, hidden, tail)
}
