// Package pinyin provides the pinyin syllable tables and the pinyin notation
// expander.
//
// Readings come from the go-pinyin dictionary, which maps every Han code
// point to its tone-marked readings (heteronyms included). Each reading is
// parsed once into a Syllable and cached process-wide; the tables are never
// mutated after an entry is cached, so lookups are safe for concurrent use.
//
// Basic usage:
//
//	for _, s := range pinyin.Lookup('拼') {
//	    fmt.Println(s.Spelling(pinyin.Ascii)) // "pin"
//	}
//
//	x := pinyin.NewExpander(pinyin.Common)
//	fmt.Println(x.Expand('音')) // [yin y]
package pinyin

import (
	"strings"
	"sync"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// entries caches parsed readings: rune -> []Syllable.
var entries sync.Map

// Lookup returns the readings of r, or nil when r has none. The returned
// slice is shared and must not be modified.
func Lookup(r rune) []Syllable {
	if r < 0x2E80 {
		// Below the CJK radicals block the dictionary has no entries.
		return nil
	}
	if v, ok := entries.Load(r); ok {
		return v.([]Syllable)
	}
	raw, ok := gopinyin.PinyinDict[int(r)]
	if !ok {
		return nil
	}
	syllables := parseReadings(raw)
	v, _ := entries.LoadOrStore(r, syllables)
	return v.([]Syllable)
}

// Has reports whether r has at least one reading.
func Has(r rune) bool {
	return len(Lookup(r)) > 0
}

func parseReadings(raw string) []Syllable {
	parts := strings.Split(raw, ",")
	syllables := make([]Syllable, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		s := ParseSyllable(p)
		if s.plain == "" {
			continue
		}
		if _, dup := seen[s.unicode]; dup {
			continue
		}
		seen[s.unicode] = struct{}{}
		syllables = append(syllables, s)
	}
	return syllables
}

// firstIndex maps, per single notation, the first rune of a spelling to every
// Han rune having a spelling that starts with it.
type firstIndex struct {
	byNotation map[Notation]map[rune][]rune
}

var (
	indexOnce sync.Once
	index     *firstIndex
)

func buildIndex() {
	idx := &firstIndex{byNotation: make(map[Notation]map[rune][]rune, len(priority))}
	for _, n := range priority {
		idx.byNotation[n] = make(map[rune][]rune)
	}
	for code := range gopinyin.PinyinDict {
		r := rune(code)
		for _, n := range priority {
			bucket := idx.byNotation[n]
			for _, s := range Lookup(r) {
				sp := s.Spelling(n)
				if sp == "" {
					continue
				}
				first := []rune(sp)[0]
				if runes := bucket[first]; len(runes) > 0 && runes[len(runes)-1] == r {
					continue
				}
				bucket[first] = append(bucket[first], r)
			}
		}
	}
	index = idx
}

// RunesStartingWith returns the Han runes having a spelling under one of the
// notations in n whose first character is first. The table is built on first
// use and shared; results are freshly allocated.
func RunesStartingWith(n Notation, first rune) []rune {
	indexOnce.Do(buildIndex)
	var out []rune
	for _, m := range n.Members() {
		out = append(out, index.byNotation[m][first]...)
	}
	return out
}
