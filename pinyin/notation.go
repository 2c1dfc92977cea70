package pinyin

import (
	"fmt"
	"strings"
)

// Notation is a set of pinyin spelling conventions. Members combine freely
// with bitwise OR.
type Notation uint32

const (
	// Ascii spells syllables in plain letters, ü written as v: "pin", "lv".
	Ascii Notation = 1 << iota

	// AsciiFirstLetter keeps only the first letter of the Ascii spelling: "p".
	AsciiFirstLetter

	// AsciiWithTone appends the tone number (5 for the neutral tone): "pin1".
	AsciiWithTone

	// AsciiFirstLetterWithTone is the first letter plus the tone number: "p1".
	AsciiFirstLetterWithTone

	// Unicode keeps the tone marks: "pīn".
	Unicode

	// UnicodeFirstLetter is the first character of the Unicode spelling: "p", "ā".
	UnicodeFirstLetter

	// DiletterAbc is the Zhineng ABC double-spelling scheme.
	DiletterAbc

	// DiletterJiajia is the Pinyin Jiajia double-spelling scheme.
	DiletterJiajia

	// DiletterMicrosoft is the Microsoft double-spelling scheme.
	DiletterMicrosoft

	// DiletterXiaohe is the Xiaohe double-spelling scheme.
	DiletterXiaohe

	// DiletterZrm is the Ziranma double-spelling scheme.
	DiletterZrm
)

const (
	// None disables every notation.
	None Notation = 0

	// Common is the default selection: full spelling and initials.
	Common = Ascii | AsciiFirstLetter

	// All enables every notation.
	All = DiletterZrm<<1 - 1
)

// priority lists the notations in the order their spellings are offered:
// most specific first, initials last.
var priority = [...]Notation{
	Unicode,
	AsciiWithTone,
	Ascii,
	DiletterAbc,
	DiletterJiajia,
	DiletterMicrosoft,
	DiletterXiaohe,
	DiletterZrm,
	UnicodeFirstLetter,
	AsciiFirstLetterWithTone,
	AsciiFirstLetter,
}

var notationNames = map[Notation]string{
	Ascii:                    "Ascii",
	AsciiFirstLetter:         "AsciiFirstLetter",
	AsciiWithTone:            "AsciiWithTone",
	AsciiFirstLetterWithTone: "AsciiFirstLetterWithTone",
	Unicode:                  "Unicode",
	UnicodeFirstLetter:       "UnicodeFirstLetter",
	DiletterAbc:              "DiletterAbc",
	DiletterJiajia:           "DiletterJiajia",
	DiletterMicrosoft:        "DiletterMicrosoft",
	DiletterXiaohe:           "DiletterXiaohe",
	DiletterZrm:              "DiletterZrm",
}

// Has reports whether every member of other is in n.
func (n Notation) Has(other Notation) bool {
	return n&other == other
}

// Valid reports whether n only contains known members.
func (n Notation) Valid() bool {
	return n&^All == 0
}

// Members returns the single-bit members of n in spelling priority order.
func (n Notation) Members() []Notation {
	members := make([]Notation, 0, len(priority))
	for _, m := range priority {
		if n&m != 0 {
			members = append(members, m)
		}
	}
	return members
}

// String returns the members joined with "|", e.g. "Ascii|AsciiFirstLetter".
func (n Notation) String() string {
	if n == None {
		return "None"
	}
	var parts []string
	for bit := Ascii; bit <= DiletterZrm; bit <<= 1 {
		if n&bit != 0 {
			parts = append(parts, notationNames[bit])
		}
	}
	if rest := n &^ All; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseNotation parses a list of member names separated by "|" or ",".
// Names are case-insensitive; "Common", "All" and "None" are accepted.
func ParseNotation(s string) (Notation, error) {
	var n Notation
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == ',' || r == ' '
	})
	for _, f := range fields {
		switch strings.ToLower(f) {
		case "common":
			n |= Common
			continue
		case "all":
			n |= All
			continue
		case "none":
			continue
		}
		found := false
		for bit, name := range notationNames {
			if strings.EqualFold(name, f) {
				n |= bit
				found = true
				break
			}
		}
		if !found {
			return None, fmt.Errorf("pinyin: unknown notation %q", f)
		}
	}
	return n, nil
}
