package d2s

import (
	"github.com/pignacio/d2-itemsorter-go/bitbuf"
	"github.com/pignacio/d2-itemsorter-go/bitio"
	"github.com/pignacio/d2-itemsorter-go/codecerr"
)

// readMagic reads len(magic) bits and fails with InvalidMagic if they
// don't match magic exactly.
func readMagic(r *bitio.Reader, magic bitbuf.Buffer) error {
	start := r.Index()
	got, err := r.ReadBits(magic.Len())
	if err != nil {
		return err
	}
	if !bitbuf.Equal(got, magic) {
		return codecerr.New(codecerr.InvalidMagic, start, "expected magic %x, got %x", magic.Bytes(), got.Bytes())
	}
	return nil
}
