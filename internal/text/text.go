// Package text decodes haystacks into the rune sequence searched by the
// engine, remembering the native code-unit offset of every rune.
//
// The engine works on rune indices only. The UTF-8 and UTF-16 entry points
// decode into a Text and map rune indices back to byte or uint16 offsets
// through Offset, so both encodings share one matching implementation.
package text

import (
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// Text is a decoded haystack.
//
// A Text is reusable: the Decode methods overwrite previous contents and keep
// the allocated buffers. It is not safe for concurrent use.
type Text struct {
	runes []rune

	// offsets[i] is the native offset of runes[i]; offsets[len(runes)] is the
	// native length of the haystack.
	offsets []int

	// raw holds the original bytes of UTF-8 input, nil for UTF-16 input.
	raw []byte
}

// FromUTF8 decodes b. Invalid bytes decode to utf8.RuneError of width 1.
func FromUTF8(b []byte) *Text {
	t := &Text{}
	t.DecodeUTF8(b)
	return t
}

// FromString decodes s.
func FromString(s string) *Text {
	t := &Text{}
	t.DecodeString(s)
	return t
}

// FromUTF16 decodes u. Unpaired surrogates decode to utf8.RuneError of width 1.
func FromUTF16(u []uint16) *Text {
	t := &Text{}
	t.DecodeUTF16(u)
	return t
}

func (t *Text) reset(capacity int) {
	t.runes = t.runes[:0]
	if cap(t.offsets) < capacity+1 {
		t.offsets = make([]int, 0, capacity+1)
	}
	t.offsets = t.offsets[:0]
	t.raw = nil
}

// DecodeUTF8 replaces the contents of t with the decoding of b.
func (t *Text) DecodeUTF8(b []byte) {
	t.reset(len(b))
	for i := 0; i < len(b); {
		r, size := rune(b[i]), 1
		if r >= utf8.RuneSelf {
			r, size = utf8.DecodeRune(b[i:])
		}
		t.runes = append(t.runes, r)
		t.offsets = append(t.offsets, i)
		i += size
	}
	t.offsets = append(t.offsets, len(b))
	t.raw = b
}

// DecodeString replaces the contents of t with the decoding of s.
func (t *Text) DecodeString(s string) {
	t.reset(len(s))
	for i, r := range s {
		t.runes = append(t.runes, r)
		t.offsets = append(t.offsets, i)
	}
	t.offsets = append(t.offsets, len(s))
}

// DecodeUTF16 replaces the contents of t with the decoding of u.
func (t *Text) DecodeUTF16(u []uint16) {
	t.reset(len(u))
	for i := 0; i < len(u); {
		r, size := rune(u[i]), 1
		if utf16.IsSurrogate(r) {
			r = utf8.RuneError
			if i+1 < len(u) {
				if dec := utf16.DecodeRune(rune(u[i]), rune(u[i+1])); dec != utf8.RuneError {
					r, size = dec, 2
				}
			}
		}
		t.runes = append(t.runes, r)
		t.offsets = append(t.offsets, i)
		i += size
	}
	t.offsets = append(t.offsets, len(u))
}

// Len returns the number of runes.
func (t *Text) Len() int {
	return len(t.runes)
}

// At returns the rune at index i.
func (t *Text) At(i int) rune {
	return t.runes[i]
}

// Runes returns the decoded runes. The slice aliases t's buffer.
func (t *Text) Runes() []rune {
	return t.runes
}

// Offset returns the native offset of rune i. Offset(Len()) is the native
// length of the haystack.
func (t *Text) Offset(i int) int {
	return t.offsets[i]
}

// NativeLen returns the haystack length in native code units.
func (t *Text) NativeLen() int {
	return t.offsets[len(t.offsets)-1]
}

// Index returns the index of the rune covering native offset off.
// Offsets past the end map to Len().
func (t *Text) Index(off int) int {
	if off >= t.NativeLen() {
		return len(t.runes)
	}
	// Largest i with offsets[i] <= off.
	return sort.SearchInts(t.offsets, off+1) - 1
}

// Bytes returns the original UTF-8 bytes, or nil when t was not decoded from
// a byte slice.
func (t *Text) Bytes() []byte {
	return t.raw
}

// Reset empties t, keeping its buffers but dropping any reference to the
// decoded haystack. t must be decoded again before use.
func (t *Text) Reset() {
	t.runes = t.runes[:0]
	t.offsets = t.offsets[:0]
	t.raw = nil
}
