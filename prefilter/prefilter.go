// Package prefilter provides fast candidate filtering for transliteration
// search using the set of runes that can begin a match.
//
// A prefilter is used to quickly reject haystack positions that cannot
// possibly start a match. The engine computes the start-rune set at analysis
// time (plain case variants of the first pattern rune, Han runes with a
// compatible pinyin spelling, kana and words with a compatible romaji
// spelling) and only runs the full backtracking search at the positions the
// prefilter reports.
//
// The package selects the prefilter strategy from the rune set:
//   - No runes → nil (no prefilter)
//   - Any runes → RuneSet (bitmap for ASCII, map for the rest)
//   - Up to MaxAutomatonRunes runes → UTF-8 haystacks also go through an
//     Aho-Corasick automaton over the UTF-8 encodings of the runes, skipping
//     the per-rune loop entirely
//
// Example usage:
//
//	pf := prefilter.NewBuilder([]rune{'p', 'P', '拼'}).Build()
//	t := text.FromString("输入拼音")
//	pos := pf.Find(t, 0)
//	// pos == 2 (rune index of '拼')
package prefilter

import (
	"unicode/utf8"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/ibmatch/internal/text"
)

// Prefilter is used to quickly find candidate match positions before running
// the full search.
type Prefilter interface {
	// Find returns the rune index of the first candidate position at or after
	// start, or -1 if no candidate is found.
	//
	// A candidate is a position holding one of the start runes. This does NOT
	// guarantee a match; the caller must verify it with the full search.
	Find(t *text.Text, start int) int

	// Contains reports whether r is one of the start runes.
	Contains(r rune) bool

	// Len returns the number of distinct start runes.
	Len() int

	// HeapBytes returns the number of bytes of heap memory used by this
	// prefilter, for profiling.
	HeapBytes() int
}

// Builder constructs the prefilter for a start-rune set.
//
// Example:
//
//	builder := prefilter.NewBuilder(starts)
//	pf := builder.Build()
//	if pf != nil {
//	    pos := pf.Find(t, 0)
//	}
type Builder struct {
	runes        []rune
	automaton    bool
	maxAutomaton int
}

// MaxAutomatonRunes is the default limit on the start runes compiled into an
// automaton. Han start sets of a single letter run into the thousands, and
// an automaton over them takes milliseconds to build, while a RuneSet
// answers each position with one map lookup.
const MaxAutomatonRunes = 64

// NewBuilder creates a new prefilter builder for the given start runes.
// Duplicates are allowed.
func NewBuilder(runes []rune) *Builder {
	return &Builder{runes: runes, automaton: true, maxAutomaton: MaxAutomatonRunes}
}

// WithAutomaton enables or disables the Aho-Corasick automaton for UTF-8
// haystacks. It is enabled by default.
func (b *Builder) WithAutomaton(enabled bool) *Builder {
	b.automaton = enabled
	return b
}

// WithMaxAutomatonRunes sets the largest rune set that still gets an
// automaton. Larger sets build a RuneSet only.
func (b *Builder) WithMaxAutomatonRunes(n int) *Builder {
	b.maxAutomaton = n
	return b
}

// Build constructs the prefilter. Returns nil if the rune set is empty.
//
// The automaton is skipped when the set contains utf8.RuneError: invalid
// UTF-8 bytes decode to that rune without its encoding being present in the
// haystack, so a byte search would miss them.
func (b *Builder) Build() Prefilter {
	set := NewRuneSet(b.runes)
	if set.Len() == 0 {
		return nil
	}
	if !b.automaton || set.Len() > b.maxAutomaton || set.Contains(utf8.RuneError) {
		return set
	}

	builder := ahocorasick.NewBuilder()
	var buf [utf8.UTFMax]byte
	set.each(func(r rune) {
		n := utf8.EncodeRune(buf[:], r)
		builder.AddPattern(append([]byte(nil), buf[:n]...))
	})
	auto, err := builder.Build()
	if err != nil {
		return set
	}
	return &automatonPrefilter{set: set, auto: auto}
}

// RuneSet is a prefilter over an explicit set of runes.
type RuneSet struct {
	ascii [2]uint64
	other map[rune]struct{}
	n     int
}

// NewRuneSet returns the set of runes in rs.
func NewRuneSet(rs []rune) *RuneSet {
	s := &RuneSet{other: make(map[rune]struct{})}
	for _, r := range rs {
		if s.Contains(r) || r < 0 {
			continue
		}
		if r < utf8.RuneSelf {
			s.ascii[r>>6] |= 1 << (uint(r) & 63)
		} else {
			s.other[r] = struct{}{}
		}
		s.n++
	}
	return s
}

// Contains reports whether r is in the set.
func (s *RuneSet) Contains(r rune) bool {
	if r < 0 {
		return false
	}
	if r < utf8.RuneSelf {
		return s.ascii[r>>6]&(1<<(uint(r)&63)) != 0
	}
	_, ok := s.other[r]
	return ok
}

// Find implements Prefilter.
func (s *RuneSet) Find(t *text.Text, start int) int {
	rs := t.Runes()
	for i := start; i < len(rs); i++ {
		if s.Contains(rs[i]) {
			return i
		}
	}
	return -1
}

// Len implements Prefilter.
func (s *RuneSet) Len() int {
	return s.n
}

// HeapBytes implements Prefilter. The map cost is an estimate.
func (s *RuneSet) HeapBytes() int {
	return len(s.other) * 16
}

func (s *RuneSet) each(fn func(r rune)) {
	for r := rune(0); r < utf8.RuneSelf; r++ {
		if s.Contains(r) {
			fn(r)
		}
	}
	for r := range s.other {
		fn(r)
	}
}

// automatonPrefilter searches the raw UTF-8 bytes with Aho-Corasick and maps
// the byte offset back to a rune index. Texts without raw bytes fall back to
// the rune set.
type automatonPrefilter struct {
	set  *RuneSet
	auto *ahocorasick.Automaton
}

func (p *automatonPrefilter) Find(t *text.Text, start int) int {
	b := t.Bytes()
	if b == nil {
		return p.set.Find(t, start)
	}
	if start >= t.Len() {
		return -1
	}
	m := p.auto.Find(b, t.Offset(start))
	if m == nil {
		return -1
	}
	// Patterns are whole rune encodings, so a match always starts on a rune
	// boundary.
	return t.Index(m.Start)
}

func (p *automatonPrefilter) Contains(r rune) bool {
	return p.set.Contains(r)
}

func (p *automatonPrefilter) Len() int {
	return p.set.Len()
}

func (p *automatonPrefilter) HeapBytes() int {
	return p.set.HeapBytes() + p.set.Len()*utf8.UTFMax
}
