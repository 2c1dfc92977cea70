// Package ascii detects pure-ASCII haystacks.
//
// Every pinyin and romaji source character lies outside ASCII, so a haystack
// without a single non-ASCII unit can only match through plain character
// comparison and the engine skips all dictionary lookups for it.
package ascii

import "encoding/binary"

// Bytes reports whether every byte of data is below 0x80.
//
// Uses SWAR: eight bytes are loaded as one uint64 and the high bit of every
// lane is tested at once. Inputs shorter than a word are checked byte by byte.
func Bytes(data []byte) bool {
	const hi8 = uint64(0x8080808080808080)

	i := 0
	for ; i+8 <= len(data); i += 8 {
		if binary.LittleEndian.Uint64(data[i:])&hi8 != 0 {
			return false
		}
	}
	for ; i < len(data); i++ {
		if data[i] >= 0x80 {
			return false
		}
	}
	return true
}

// Runes reports whether every rune of rs is below 0x80.
func Runes(rs []rune) bool {
	// OR-reduce so the loop has no branch per element.
	var acc rune
	for _, r := range rs {
		acc |= r
	}
	return acc < 0x80
}
