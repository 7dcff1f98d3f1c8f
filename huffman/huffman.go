// Package huffman implements the save format's fixed 38-symbol prefix
// code (NUL, space, the ten digits, and the 26 lowercase letters), used to
// encode 4-character item type codes (spec §3's HuffmanString<4>).
//
// The canonical code table is reproduced verbatim from
// original_source/src/bitsy/huffman.rs, the authoritative source for the
// "well-known table" spec.md references without fully listing (spec §6).
// spec.md states the table has 42 entries; the original_source table —
// and HuffmanChars<4>'s only call site, item.item_type — has exactly 38
// (NUL + space + 10 digits + 26 lowercase letters, no uppercase). This
// package follows the original rather than the distilled count; see
// DESIGN.md's Open Question entry.
package huffman

import (
	"github.com/pignacio/d2-itemsorter-go/codecerr"
)

// maxCodeLen is the longest canonical code in the table (9 bits, shared by
// '\0' and 'j'). Decoding fails if no match is found within this many
// bits (spec §4.3).
const maxCodeLen = 9

// code is a symbol's canonical bit string, written MSB-first exactly as
// listed in original_source/src/bitsy/huffman.rs's table literal (e.g.
// "01" for space). Decoding matches against codes read in the opposite
// order a canonical string is written: see decodeTable's construction
// below and DESIGN.md's derivation of the prepend-vs-append equivalence.
type code string

var canonical = map[rune]code{
	0:    "111101000",
	' ':  "01",
	'0':  "11011111",
	'1':  "0011111",
	'2':  "001100",
	'3':  "1011011",
	'4':  "01011111",
	'5':  "01101000",
	'6':  "1111011",
	'7':  "11110",
	'8':  "001000",
	'9':  "01110",
	'a':  "01111",
	'b':  "1010",
	'c':  "00010",
	'd':  "100011",
	'e':  "000011",
	'f':  "110010",
	'g':  "01011",
	'h':  "11000",
	'i':  "0111111",
	'j':  "011101000",
	'k':  "010010",
	'l':  "10111",
	'm':  "10110",
	'n':  "101100",
	'o':  "1111111",
	'p':  "10011",
	'q':  "10011011",
	'r':  "00111",
	's':  "0100",
	't':  "00110",
	'u':  "10000",
	'v':  "0111011",
	'w':  "00000",
	'x':  "11100",
	'y':  "0101000",
	'z':  "00011011",
}

// decodeTable maps a growing bitstring (built by prepending each newly
// read bit, per spec §4.3) to the rune it spells.
var decodeTable map[code]rune

func init() {
	decodeTable = make(map[code]rune, len(canonical))
	for r, c := range canonical {
		decodeTable[c] = r
	}
}

// bitSource abstracts the one bit-at-a-time reader huffman needs, so this
// package doesn't depend on bitio; bitio.Reader and bitio.Writer satisfy
// these interfaces through small adapters in d2s.
type bitSource interface {
	// ReadBit returns the next bit and the bit index it was read from.
	ReadBit() (bool, uint64, error)
}

// bitSink is the symmetric one-bit-at-a-time write interface.
type bitSink interface {
	WriteBit(bool) error
}

// DecodeChar reads bits one at a time from r, matching the growing
// bitstring against the canonical table, and returns the matched rune.
// Fails with InvalidHuffman if maxCodeLen bits pass without a match.
func DecodeChar(r bitSource) (rune, error) {
	var key code
	var startIdx uint64
	for i := 0; i < maxCodeLen; i++ {
		bit, idx, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if i == 0 {
			startIdx = idx
		}
		if bit {
			key = "1" + key
		} else {
			key = "0" + key
		}
		if ch, ok := decodeTable[key]; ok {
			return ch, nil
		}
	}
	return 0, codecerr.New(codecerr.InvalidHuffman, startIdx, "no huffman code matched within %d bits", maxCodeLen)
}

// EncodeChar writes ch's canonical code to w, emitting bits in the
// reverse of the table's listed order — the mechanical inverse of
// DecodeChar's prepend-while-matching loop (see DESIGN.md).
func EncodeChar(w bitSink, ch rune) error {
	c, ok := canonical[ch]
	if !ok {
		return codecerr.New(codecerr.InvalidHuffman, 0, "no huffman code defined for rune %q", ch)
	}
	for i := len(c) - 1; i >= 0; i-- {
		if err := w.WriteBit(c[i] == '1'); err != nil {
			return err
		}
	}
	return nil
}

// DecodeString reads n HuffmanChars from r and returns them as a string.
func DecodeString(r bitSource, n int) (string, error) {
	runes := make([]rune, n)
	for i := 0; i < n; i++ {
		ch, err := DecodeChar(r)
		if err != nil {
			return "", codecerr.Annotate(err, codecerr.Elem("", i))
		}
		runes[i] = ch
	}
	return string(runes), nil
}

// EncodeString writes s's runes to w as HuffmanChars. Fails if s doesn't
// have exactly n runes or contains a rune without a canonical code.
func EncodeString(w bitSink, s string, n int) error {
	runes := []rune(s)
	if len(runes) != n {
		return codecerr.New(codecerr.InvalidAction, 0, "huffman string length %d != expected %d", len(runes), n)
	}
	for i, ch := range runes {
		if err := EncodeChar(w, ch); err != nil {
			return codecerr.Annotate(err, codecerr.Elem("", i))
		}
	}
	return nil
}
