package meta

import (
	"unicode"
	"unicode/utf8"

	"github.com/coregx/ibmatch/romaji"
)

// Languages a match path can be committed to. With MixLang, or with a single
// transliteration enabled, paths stay at langNone.
const (
	langNone = iota
	langPinyin
	langRomaji
	numLangs
)

// Memo values. A found completion is encoded as end<<1 | partial.
const (
	memoUnknown = -2
	memoNone    = -1
)

// backtracker runs the memoized depth-first search of one Engine over one
// haystack.
//
// solve(k, i, lang) is the earliest-ending completion of pattern[k:] starting
// at haystack index i on a path committed to lang. It does not depend on the
// start of the match, so the memo is shared across every start position of a
// search. Each step consumes at least one pattern rune, which bounds the
// recursion depth by len(pattern), and at most maxStep haystack runes, so a
// search started at s only touches columns s..s+len(pattern)*maxStep: the
// ring of window columns never evicts a column still in use.
type backtracker struct {
	e     *Engine
	state *SearchState
	runes []rune
	n     int
	m     int

	// ascii disables every transliteration lookup.
	ascii bool

	memoHits uint64
}

func (b *backtracker) init(e *Engine, state *SearchState, runes []rune, ascii bool) {
	b.e = e
	b.state = state
	b.runes = runes
	b.n = len(runes)
	b.m = len(e.pattern)
	b.ascii = ascii
	b.memoHits = 0
}

// slot returns the ring slot of column i, claiming and clearing it if it
// holds another column.
func (b *backtracker) slot(i int) int {
	s := i % b.e.window
	if b.state.cols[s] != i {
		b.state.cols[s] = i
		row := b.state.memo[s*b.m*numLangs : (s+1)*b.m*numLangs]
		for j := range row {
			row[j] = memoUnknown
		}
		if b.state.romajiDone != nil {
			b.state.romajiDone[s] = false
			b.state.romaji[s] = nil
		}
	}
	return s
}

func (b *backtracker) solve(k, i, lang int) int {
	if k == b.m {
		if b.e.config.EndsWith && i != b.n {
			return memoNone
		}
		return i << 1
	}
	if i >= b.n {
		return memoNone
	}

	slot := b.slot(i)
	idx := (slot*b.m+k)*numLangs + lang
	if v := b.state.memo[idx]; v != memoUnknown {
		b.memoHits++
		return v
	}

	cfg := &b.e.config
	best := memoNone
	consider := func(v int) {
		if v != memoNone && (best == memoNone || v>>1 < best>>1) {
			best = v
		}
	}

	r := b.runes[i]

	// (a) plain rune equality.
	if runeEqual(b.e.pattern[k], r, cfg.CaseInsensitive) {
		consider(b.solve(k+1, i+1, lang))
	}

	if !b.ascii {
		// (b) pinyin spellings of a Han rune.
		if b.e.pinyin != nil && (cfg.MixLang || lang != langRomaji) {
			next := langPinyin
			if cfg.MixLang {
				next = langNone
			}
			for _, sp := range b.e.pinyin.Expand(r) {
				switch c, partial := b.matchSpelling(sp, k, cfg.PinyinCaseInsensitive); {
				case c == 0:
				case partial:
					consider(b.partial(i + 1))
				default:
					consider(b.solve(k+c, i+1, next))
				}
			}
		}

		// (c) romaji spellings of the kana or word starting at i.
		if b.e.romaji != nil && (cfg.MixLang || lang != langPinyin) {
			next := langRomaji
			if cfg.MixLang {
				next = langNone
			}
			for _, cand := range b.romajiCandidates(slot, i) {
				switch c, partial := b.matchSpelling(cand.Spelling, k, cfg.RomajiCaseInsensitive); {
				case c == 0:
				case partial:
					consider(b.partial(i + cand.Len))
				default:
					consider(b.solve(k+c, i+cand.Len, next))
				}
			}
		}
	}

	b.state.memo[idx] = best
	return best
}

// partial returns the encoding of a partial completion ending at end.
func (b *backtracker) partial(end int) int {
	if b.e.config.EndsWith && end != b.n {
		return memoNone
	}
	return end<<1 | 1
}

// matchSpelling compares sp with pattern[k:]. It returns the number of
// pattern runes consumed, 0 on mismatch. partial is true if the pattern ended
// strictly inside sp, which only counts when IsPatternPartial is set.
func (b *backtracker) matchSpelling(sp string, k int, fold bool) (consumed int, partial bool) {
	j := k
	for _, r := range sp {
		if j == b.m {
			if !b.e.config.IsPatternPartial {
				return 0, false
			}
			return j - k, true
		}
		if !runeEqual(b.e.pattern[j], r, fold) {
			return 0, false
		}
		j++
	}
	return j - k, false
}

func (b *backtracker) romajiCandidates(slot, i int) []romaji.Candidate {
	if !b.state.romajiDone[slot] {
		b.state.romaji[slot] = b.e.romaji.Expand(b.runes, i)
		b.state.romajiDone[slot] = true
	}
	return b.state.romaji[slot]
}

// runeEqual reports whether a and b are equal, under simple case folding if
// fold is set.
func runeEqual(a, b rune, fold bool) bool {
	if a == b {
		return true
	}
	if !fold {
		return false
	}
	if a < utf8.RuneSelf && b < utf8.RuneSelf {
		la := a | 0x20
		return la == b|0x20 && 'a' <= la && la <= 'z'
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}
