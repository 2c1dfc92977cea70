// Package meta implements the transliteration match engine.
//
// engine.go contains the Engine struct definition and core API methods.

package meta

import (
	"sync/atomic"

	"github.com/coregx/ibmatch/pinyin"
	"github.com/coregx/ibmatch/prefilter"
	"github.com/coregx/ibmatch/romaji"
)

// Engine is a compiled pattern.
//
// Thread safety: the Engine uses a sync.Pool internally to provide
// thread-safe concurrent access. Multiple goroutines can safely call search
// methods (Find, IsMatch, Test) on the same Engine instance concurrently.
// The pattern, configuration, expander and prefilter are immutable after
// compilation; the pinyin and romaji tables are process-wide and read-only.
//
// Example:
//
//	engine, err := meta.Compile([]rune("pysousuo"), config)
//	if err != nil {
//	    return err
//	}
//
//	// Search (safe to call from multiple goroutines)
//	m, ok := engine.Find(text.FromString("拼音搜索Everything"))
//	if ok {
//	    println(m.Start(), m.End()) // rune indices 0, 4
//	}
type Engine struct {
	// Statistics (useful for debugging and tuning)
	// IMPORTANT: stats MUST be first field for proper 8-byte alignment on 32-bit platforms.
	// This ensures atomic operations on uint64 fields work correctly.
	stats Stats

	pattern []rune
	config  Config

	pinyin *pinyin.Expander   // nil when pinyin is disabled or has no notations
	romaji *romaji.Dictionary // nil when romaji is disabled

	// romajiASCII is true if the dictionary has keys starting with an ASCII
	// rune, so an ASCII haystack still needs romaji lookups.
	romajiASCII bool

	// maxStep is the most haystack runes a single step can consume.
	maxStep int

	// window is the number of haystack columns a search started at one
	// position can touch: len(pattern)*maxStep + 1.
	window int

	// prefilter is built by Analyze; nil otherwise or if no rune can start
	// a match.
	prefilter prefilter.Prefilter

	// statePool provides thread-safe pooling of per-search mutable state.
	statePool *searchStatePool
}

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// Searches counts Find, IsMatch and Test calls
	Searches uint64

	// Matches counts searches that found a match
	Matches uint64

	// ASCIIFastPaths counts searches that skipped every transliteration
	// lookup because the haystack is ASCII
	ASCIIFastPaths uint64

	// StartsTried counts start positions searched
	StartsTried uint64

	// PrefilterCandidates counts start positions reported by the prefilter
	PrefilterCandidates uint64

	// PrefilterAbandoned counts times the prefilter was abandoned because
	// candidates were too dense
	PrefilterAbandoned uint64

	// PrefilterSkipped counts haystack positions the prefilter ruled out
	PrefilterSkipped uint64

	// MemoHits counts states answered from the memo
	MemoHits uint64
}

// Pattern returns a copy of the compiled pattern.
func (e *Engine) Pattern() []rune {
	return append([]rune(nil), e.pattern...)
}

// Config returns the configuration frozen at compile time. RomajiDictionary
// is resolved to the dictionary actually used.
func (e *Engine) Config() Config {
	return e.config
}

// IsAnalyzed returns true if the engine has a start-rune prefilter.
func (e *Engine) IsAnalyzed() bool {
	return e.prefilter != nil
}

// StartRunes returns the number of distinct runes that can start a match,
// or 0 if the engine was not analyzed.
func (e *Engine) StartRunes() int {
	if e.prefilter == nil {
		return 0
	}
	return e.prefilter.Len()
}

// HeapBytes returns an estimate of the heap memory owned by the engine,
// excluding the shared pinyin and romaji tables.
func (e *Engine) HeapBytes() int {
	n := len(e.pattern) * 4
	if e.prefilter != nil {
		n += e.prefilter.HeapBytes()
	}
	return n
}

// Stats returns a snapshot of the execution statistics.
func (e *Engine) Stats() Stats {
	return Stats{
		Searches:            atomic.LoadUint64(&e.stats.Searches),
		Matches:             atomic.LoadUint64(&e.stats.Matches),
		ASCIIFastPaths:      atomic.LoadUint64(&e.stats.ASCIIFastPaths),
		StartsTried:         atomic.LoadUint64(&e.stats.StartsTried),
		PrefilterCandidates: atomic.LoadUint64(&e.stats.PrefilterCandidates),
		PrefilterAbandoned:  atomic.LoadUint64(&e.stats.PrefilterAbandoned),
		PrefilterSkipped:    atomic.LoadUint64(&e.stats.PrefilterSkipped),
		MemoHits:            atomic.LoadUint64(&e.stats.MemoHits),
	}
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.Searches, 0)
	atomic.StoreUint64(&e.stats.Matches, 0)
	atomic.StoreUint64(&e.stats.ASCIIFastPaths, 0)
	atomic.StoreUint64(&e.stats.StartsTried, 0)
	atomic.StoreUint64(&e.stats.PrefilterCandidates, 0)
	atomic.StoreUint64(&e.stats.PrefilterAbandoned, 0)
	atomic.StoreUint64(&e.stats.PrefilterSkipped, 0)
	atomic.StoreUint64(&e.stats.MemoHits, 0)
}
