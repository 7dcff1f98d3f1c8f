// Package bitdiff implements the codec's bit-slice equality check and
// windowed diagnostic, generalizing peggyvm_test.go's diff() helper (a
// diffmatchpatch-based text-diff renderer for mismatched disassembly
// output) from whole-string diffing to a bounded hex window around the
// first mismatching bit.
package bitdiff

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/pignacio/d2-itemsorter-go/bitbuf"
)

var reNL = regexp.MustCompile(`(?m)^`)

// windowBytes is how many bytes of context on either side of a mismatch
// get included in the hex diagnostic.
const windowBytes = 8

// Equal reports whether a and b hold identical bits.
func Equal(a, b bitbuf.Buffer) bool {
	return bitbuf.Equal(a, b)
}

// Diff renders a human-readable report of where and how a and b differ,
// or "" if they're equal. The report names the first mismatching bit
// index and shows a hex window of both buffers around it, diffed with
// diffmatchpatch the way peggyvm_test.go diffs mismatched disassembly
// text.
func Diff(a, b bitbuf.Buffer) string {
	idx, mismatched := bitbuf.FirstMismatch(a, b)
	if !mismatched {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "bit buffers differ at bit %d (lengths %d vs %d)\n", idx, a.Len(), b.Len())
	sb.WriteString(hexDiff(a, b, idx))
	return sb.String()
}

// hexDiff renders a hex dump of both buffers around the byte containing
// bit idx (up to windowBytes bytes before it, that byte, and up to
// windowBytes-1 bytes after it), diffed textually.
func hexDiff(a, b bitbuf.Buffer, idx uint64) string {
	byteIdx := idx / 8
	left := hexWindow(a, byteIdx)
	right := hexWindow(b, byteIdx)
	return textDiff(left, right)
}

func hexWindow(b bitbuf.Buffer, centerByte uint64) string {
	totalBytes := (b.Len() + 7) / 8
	start := uint64(0)
	if centerByte > windowBytes {
		start = centerByte - windowBytes
	}
	end := centerByte + windowBytes
	if end > totalBytes {
		end = totalBytes
	}

	bytes := b.Bytes()
	var parts []string
	for i := start; i < end; i++ {
		if i < uint64(len(bytes)) {
			parts = append(parts, fmt.Sprintf("%02x", bytes[i]))
		}
	}
	return strings.Join(parts, " ")
}

// textDiff renders l and r's character-level diff as indented text, mirroring
// peggyvm_test.go's diff().
func textDiff(l, r string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(l, r, false)
	pretty := dmp.DiffPrettyText(diffs)
	return reNL.ReplaceAllLiteralString(pretty, "\t")
}
