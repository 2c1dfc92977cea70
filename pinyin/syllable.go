package pinyin

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Combining marks used in tone-marked pinyin.
const (
	markMacron    = '\u0304' // tone 1
	markAcute     = '\u0301' // tone 2
	markCaron     = '\u030c' // tone 3
	markGrave     = '\u0300' // tone 4
	markDiaeresis = '\u0308' // ü
)

// NeutralTone is the tone number of unmarked syllables.
const NeutralTone = 5

// Syllable is one pinyin reading.
type Syllable struct {
	plain   string
	unicode string
	tone    uint8
}

// ParseSyllable parses a tone-marked reading such as "pīn" or "lǘ".
func ParseSyllable(s string) Syllable {
	syl := Syllable{
		unicode: norm.NFC.String(strings.ToLower(s)),
		tone:    NeutralTone,
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(syl.unicode) {
		switch r {
		case markMacron:
			syl.tone = 1
		case markAcute:
			syl.tone = 2
		case markCaron:
			syl.tone = 3
		case markGrave:
			syl.tone = 4
		case markDiaeresis:
			// ü decomposes to u + U+0308.
			if cur := b.String(); strings.HasSuffix(cur, "u") {
				b.Reset()
				b.WriteString(cur[:len(cur)-1])
				b.WriteByte('v')
			}
		default:
			if r < unicode.MaxASCII && unicode.IsLetter(r) {
				b.WriteRune(r)
			}
			// Remaining marks (ê's circumflex) and non-ASCII letters are dropped.
		}
	}
	syl.plain = b.String()
	return syl
}

// Plain returns the ASCII spelling, ü written as v.
func (s Syllable) Plain() string {
	return s.plain
}

// Unicode returns the tone-marked spelling in NFC.
func (s Syllable) Unicode() string {
	return s.unicode
}

// Tone returns the tone number, 1-4 or NeutralTone.
func (s Syllable) Tone() int {
	return int(s.tone)
}

// Spelling returns the spelling of s under a single notation, or "" when the
// notation cannot spell it (a diletter scheme without a key for the final).
func (s Syllable) Spelling(n Notation) string {
	if s.plain == "" {
		return ""
	}
	digit := string(rune('0' + s.tone))
	switch n {
	case Ascii:
		return s.plain
	case AsciiFirstLetter:
		return s.plain[:1]
	case AsciiWithTone:
		return s.plain + digit
	case AsciiFirstLetterWithTone:
		return s.plain[:1] + digit
	case Unicode:
		return s.unicode
	case UnicodeFirstLetter:
		for _, r := range s.unicode {
			return string(r)
		}
		return ""
	case DiletterAbc, DiletterJiajia, DiletterMicrosoft, DiletterXiaohe, DiletterZrm:
		return schemes[n].spell(s.plain)
	}
	return ""
}
