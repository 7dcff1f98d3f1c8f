package bitdiff_test

import (
	"strings"
	"testing"

	"github.com/renstrom/dedent"
	"github.com/stretchr/testify/require"

	"github.com/pignacio/d2-itemsorter-go/bitbuf"
	"github.com/pignacio/d2-itemsorter-go/bitdiff"
)

func TestEqual_IdenticalBuffers(t *testing.T) {
	a := bitbuf.FromBytes([]byte{0x01, 0x02})
	b := bitbuf.FromBytes([]byte{0x01, 0x02})
	require.True(t, bitdiff.Equal(a, b))
	require.Empty(t, bitdiff.Diff(a, b))
}

func TestDiff_ReportsFirstMismatchAndWindow(t *testing.T) {
	a := bitbuf.FromBytes([]byte{0x01, 0x02, 0x03})
	b := bitbuf.FromBytes([]byte{0x01, 0xFF, 0x03})
	require.False(t, bitdiff.Equal(a, b))
	report := bitdiff.Diff(a, b)
	require.Contains(t, report, "bit 8")
}

// TestDiff_HeaderLineIsExact authors its expected text as an indented
// multi-line template and un-indents it before comparing, the same
// dedent.Dedent(...)[1:] idiom peggyvm_test.go uses for its fixture
// strings. Only the deterministic header line is checked; the hex-diff
// body below it depends on diffmatchpatch's own rendering.
func TestDiff_HeaderLineIsExact(t *testing.T) {
	a := bitbuf.FromBytes([]byte{0x01, 0x02, 0x03})
	b := bitbuf.FromBytes([]byte{0x01, 0xFF, 0x03})
	report := bitdiff.Diff(a, b)

	expected := dedent.Dedent(`
		bit buffers differ at bit 8 (lengths 24 vs 24)
	`)[1:]
	require.True(t, strings.HasPrefix(report, expected))
}

func TestDiff_ReportsLengthMismatch(t *testing.T) {
	a := bitbuf.FromBytes([]byte{0x01})
	b := bitbuf.FromBytes([]byte{0x01, 0x02})
	report := bitdiff.Diff(a, b)
	require.Contains(t, report, "lengths 8 vs 16")
}
