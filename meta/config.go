// Package meta implements the transliteration match engine behind the
// ibmatch package.
//
// The engine matches a short pattern against a haystack through three
// channels tried in priority order at every haystack position:
//   - Plain: rune equality, optionally case-folded
//   - Pinyin: the spellings of a Han rune under the enabled notations
//   - Romaji: the spellings of the kana or word starting at the position
//
// Search is a depth-first backtracking walk over (pattern index, haystack
// index, committed language) states. Completions are memoized per state, so a
// whole search is polynomial in the haystack and pattern lengths even for
// inputs where notation fan-out would make plain backtracking exponential.
//
// Compilation freezes the pattern and a copy of the configuration into an
// Engine. An Engine is safe for concurrent use; per-search scratch memory
// comes from a sync.Pool.
package meta

import (
	"github.com/coregx/ibmatch/pinyin"
	"github.com/coregx/ibmatch/romaji"
)

// Config controls matching semantics.
//
// All switches are independent. A notation-specific case flag is ignored
// unless the corresponding Enable flag is set.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnablePinyin = true
//	config.IsPatternPartial = true
//	engine, err := meta.Compile([]rune("pysousuo"), config)
type Config struct {
	// Analyze precomputes the set of runes that can start a match and
	// builds a prefilter over it. It never changes results, only latency.
	// The set depends only on the first pattern rune and the language
	// settings and is cached per process, so repeated compiles sharing a
	// first rune pay for it once.
	// Default: false
	Analyze bool

	// IsPatternPartial lets the last step of a match cover only a proper
	// prefix of a pinyin or romaji spelling ("konosuba" in "この素晴らしい").
	// Default: false
	IsPatternPartial bool

	// StartsWith only accepts matches starting at the first haystack rune.
	// Default: false
	StartsWith bool

	// EndsWith only accepts matches ending at the end of the haystack.
	// Default: false
	EndsWith bool

	// CaseInsensitive folds case in plain rune comparisons.
	// Default: true
	CaseInsensitive bool

	// MixLang allows a single match to use both pinyin and romaji spellings.
	// When false, a match path commits to the first language it uses.
	// Default: false
	MixLang bool

	// EnablePinyin enables pinyin spellings of Han runes.
	// Default: false
	EnablePinyin bool

	// PinyinNotations selects the pinyin notations tried.
	// Default: pinyin.Common
	PinyinNotations pinyin.Notation

	// PinyinCaseInsensitive folds case when comparing the pattern with
	// pinyin spellings, which are lowercase.
	// Default: true
	PinyinCaseInsensitive bool

	// EnableRomaji enables romaji spellings of kana and Japanese words.
	// Default: false
	EnableRomaji bool

	// RomajiCaseInsensitive folds case when comparing the pattern with
	// romaji spellings, which are lowercase.
	// Default: true
	RomajiCaseInsensitive bool

	// RomajiDictionary is the dictionary used for romaji spellings.
	// Default: nil (romaji.Default())
	RomajiDictionary *romaji.Dictionary
}

// DefaultConfig returns the default configuration: plain matching only,
// case-insensitive, with the Common pinyin notations preselected.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnableRomaji = true
func DefaultConfig() Config {
	return Config{
		CaseInsensitive:       true,
		PinyinNotations:       pinyin.Common,
		PinyinCaseInsensitive: true,
		RomajiCaseInsensitive: true,
	}
}

// Validate checks if the configuration is valid.
//
// Every combination of switches is legal, including all transliteration
// disabled (plain matching only) and an empty notation set. Only notation
// bits outside pinyin.All are rejected.
func (c Config) Validate() error {
	if !c.PinyinNotations.Valid() {
		return &ConfigError{
			Field:   "PinyinNotations",
			Message: "unknown notation bits " + (c.PinyinNotations &^ pinyin.All).String(),
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "ibmatch: invalid config: " + e.Field + ": " + e.Message
}
