package bitbuf

// Search locates the first bit-aligned occurrence of needle at or after
// index start+offset, returning the offset (relative to start) at which it
// begins, or false if no occurrence exists before the buffer ends.
//
// This is bit-aligned, not byte-aligned: needle may begin at any bit
// position, matching spec semantics for BitReader.search. Grounded on
// peggyvm/execution.go's matchLit, generalized from byte-granular to
// bit-granular scanning.
func Search(b Buffer, start uint64, needle Buffer, offset uint64) (uint64, bool) {
	if needle.Len() == 0 {
		return offset, true
	}
	pos := start + offset
	for pos+needle.Len() <= b.Len() {
		if matchesAt(b, pos, needle) {
			return pos - start, true
		}
		pos++
	}
	return 0, false
}

func matchesAt(b Buffer, pos uint64, needle Buffer) bool {
	for i := uint64(0); i < needle.Len(); i++ {
		if b.Bit(pos+i) != needle.Bit(i) {
			return false
		}
	}
	return true
}

// CountConsecutiveSetBits returns the number of consecutive 1-bits in b
// starting at index start, stopping at the buffer's end.
func CountConsecutiveSetBits(b Buffer, start uint64) uint64 {
	n := uint64(0)
	for start+n < b.Len() && b.Bit(start+n) {
		n++
	}
	return n
}
