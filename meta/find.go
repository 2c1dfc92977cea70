// Package meta implements the transliteration match engine.
//
// find.go contains the search entry points.

package meta

import (
	"sync/atomic"

	"github.com/coregx/ibmatch/internal/ascii"
	"github.com/coregx/ibmatch/internal/text"
)

// Find returns the leftmost match in t, and among matches starting there
// the earliest-ending one. Ties between equally long matches go to the
// highest-priority path: plain equality first, then pinyin spellings in
// expander order, then romaji spellings in expander order.
//
// Start and End of the result are rune indices into t.
//
// Example:
//
//	m, ok := engine.Find(text.FromString("输入拼音"))
func (e *Engine) Find(t *text.Text) (Match, bool) {
	return e.search(t, false)
}

// IsMatch returns true if t contains a match.
func (e *Engine) IsMatch(t *text.Text) bool {
	_, ok := e.search(t, false)
	return ok
}

// Test is like Find but only accepts a match starting at rune index 0,
// whatever the StartsWith setting.
func (e *Engine) Test(t *text.Text) (Match, bool) {
	return e.search(t, true)
}

func (e *Engine) search(t *text.Text, anchored bool) (Match, bool) {
	atomic.AddUint64(&e.stats.Searches, 1)

	rs := t.Runes()
	last := len(rs) - 1 // the pattern is never empty, so no match starts at len(rs)
	if anchored || e.config.StartsWith {
		last = min(last, 0)
	}
	if last < 0 {
		return Match{}, false
	}

	fast := e.asciiFastPath(t)
	if fast {
		atomic.AddUint64(&e.stats.ASCIIFastPaths, 1)
	}

	state := e.getSearchState()
	defer e.putSearchState(state)

	var b backtracker
	b.init(e, state, rs, fast)

	tracker := state.tracker
	var tried, candidates uint64
	defer func() {
		atomic.AddUint64(&e.stats.StartsTried, tried)
		atomic.AddUint64(&e.stats.PrefilterCandidates, candidates)
		atomic.AddUint64(&e.stats.MemoHits, b.memoHits)
		if tracker != nil {
			ts := tracker.Stats()
			atomic.AddUint64(&e.stats.PrefilterSkipped, ts.Covered-ts.Candidates)
		}
	}()

	for i := 0; i <= last; i++ {
		if tracker != nil && tracker.IsActive() {
			next := tracker.Find(t, i)
			if next < 0 || next > last {
				return Match{}, false
			}
			candidates++
			if !tracker.IsActive() {
				atomic.AddUint64(&e.stats.PrefilterAbandoned, 1)
			}
			i = next
		}

		tried++
		if v := b.solve(0, i, langNone); v != memoNone {
			atomic.AddUint64(&e.stats.Matches, 1)
			return NewMatch(i, v>>1, v&1 == 1), true
		}
	}
	return Match{}, false
}

// asciiFastPath reports whether t can be searched with plain comparisons
// only: the haystack is ASCII and no transliteration applies to ASCII runes.
func (e *Engine) asciiFastPath(t *text.Text) bool {
	if e.pinyin == nil && e.romaji == nil {
		return false
	}
	if e.romajiASCII {
		return false
	}
	if b := t.Bytes(); b != nil {
		return ascii.Bytes(b)
	}
	return ascii.Runes(t.Runes())
}
