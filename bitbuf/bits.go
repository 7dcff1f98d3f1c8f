package bitbuf

// Ones returns a Buffer of n set bits, used by callers that need to
// search for a run of 1-bits (e.g. the property-list terminator, spec
// §3's "nine consecutive 1 bits").
func Ones(n uint64) Buffer {
	b := New(n)
	for i := uint64(0); i < n; i++ {
		b.SetBit(i, true)
	}
	return b
}

// FromBits packs bits (in order, bit 0 first) into a Buffer.
func FromBits(bits []bool) Buffer {
	b := New(uint64(len(bits)))
	for i, v := range bits {
		b.SetBit(uint64(i), v)
	}
	return b
}
