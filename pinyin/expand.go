package pinyin

import (
	"sort"
	"sync"
	"unicode/utf8"
)

// Expander produces the candidate spellings of Han runes under a fixed set of
// notations. Results are cached per rune; an Expander is safe for concurrent
// use.
type Expander struct {
	notations Notation
	members   []Notation
	cache     sync.Map // rune -> []string
}

// NewExpander returns an Expander for the notations in n.
func NewExpander(n Notation) *Expander {
	return &Expander{
		notations: n,
		members:   n.Members(),
	}
}

// Notations returns the notation set of x.
func (x *Expander) Notations() Notation {
	return x.notations
}

// Expand returns the distinct spellings of r, longest first. Spellings of
// equal length keep notation priority order (Unicode, tone numbers, Ascii,
// diletter schemes, then initials). Runes without readings yield nil. The
// returned slice is shared and must not be modified.
func (x *Expander) Expand(r rune) []string {
	if v, ok := x.cache.Load(r); ok {
		return v.([]string)
	}
	syllables := Lookup(r)
	if len(syllables) == 0 {
		return nil
	}
	spellings := expand(syllables, x.members)
	v, _ := x.cache.LoadOrStore(r, spellings)
	return v.([]string)
}

// Expand returns the spellings of r under n without caching.
func Expand(r rune, n Notation) []string {
	return expand(Lookup(r), n.Members())
}

func expand(syllables []Syllable, members []Notation) []string {
	if len(syllables) == 0 {
		return nil
	}
	out := make([]string, 0, len(syllables)*len(members))
	seen := make(map[string]struct{}, cap(out))
	for _, n := range members {
		for _, s := range syllables {
			sp := s.Spelling(n)
			if sp == "" {
				continue
			}
			if _, dup := seen[sp]; dup {
				continue
			}
			seen[sp] = struct{}{}
			out = append(out, sp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i]) > utf8.RuneCountInString(out[j])
	})
	return out
}

// expanders holds one shared Expander per notation set.
var expanders sync.Map // Notation -> *Expander

// ExpanderFor returns the process-wide Expander for n, so that matchers
// compiled with the same notations share one spelling cache.
func ExpanderFor(n Notation) *Expander {
	if v, ok := expanders.Load(n); ok {
		return v.(*Expander)
	}
	v, _ := expanders.LoadOrStore(n, NewExpander(n))
	return v.(*Expander)
}
