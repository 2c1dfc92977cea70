// Package meta implements the transliteration match engine.
//
// compile.go contains pattern compilation and analysis.

package meta

import (
	"errors"
	"strconv"
	"unicode"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru"

	"github.com/coregx/ibmatch/pinyin"
	"github.com/coregx/ibmatch/prefilter"
	"github.com/coregx/ibmatch/romaji"
)

// ErrEmptyPattern is returned when compiling an empty pattern. An empty
// pattern is rejected rather than matching everywhere.
var ErrEmptyPattern = errors.New("empty pattern")

// Compile compiles a pattern into an executable Engine.
//
// The pattern and config are copied; later changes to either do not affect
// the Engine.
//
// Returns an error if:
//   - The pattern is empty (wraps ErrEmptyPattern)
//   - The configuration is invalid (wraps *ConfigError)
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnablePinyin = true
//	engine, err := meta.Compile([]rune("pinyin"), config)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern []rune, config Config) (*Engine, error) {
	if len(pattern) == 0 {
		return nil, &CompileError{Err: ErrEmptyPattern}
	}
	if err := config.Validate(); err != nil {
		return nil, &CompileError{Pattern: string(pattern), Err: err}
	}

	e := &Engine{
		pattern: append([]rune(nil), pattern...),
		config:  config,
	}

	if config.EnablePinyin && config.PinyinNotations != pinyin.None {
		e.pinyin = pinyin.ExpanderFor(config.PinyinNotations)
	}
	if config.EnableRomaji {
		e.romaji = config.RomajiDictionary
		if e.romaji == nil {
			e.romaji = romaji.Default()
		}
		e.config.RomajiDictionary = e.romaji
		e.romajiASCII = dictionaryHasASCIIKeys(e.romaji)
	}

	// Every step consumes at least one pattern rune and at most maxStep
	// haystack runes.
	e.maxStep = 1
	if e.romaji != nil && e.romaji.MaxKeyLen() > 1 {
		e.maxStep = e.romaji.MaxKeyLen()
	}
	e.window = len(e.pattern)*e.maxStep + 1

	if config.Analyze {
		e.analyze()
	}
	e.statePool = newSearchStatePool(e)
	return e, nil
}

// startKey holds everything startRunes reads.
type startKey struct {
	first      rune
	fold       bool
	notations  pinyin.Notation // None without pinyin
	pinyinFold bool
	dict       *romaji.Dictionary // nil without romaji
	romajiFold bool
}

// maxStartCache bounds the number of cached prefilters.
const maxStartCache = 256

// startCache maps a startKey to its prefilter, least recently used first
// out. Prefilters are immutable, so engines with the same key share one.
var startCache = mustLRU(maxStartCache)

func mustLRU(size int) *lru.Cache {
	c, err := lru.New(size)
	if err != nil {
		panic(err)
	}
	return c
}

func (e *Engine) startKey() startKey {
	k := startKey{first: e.pattern[0], fold: e.config.CaseInsensitive}
	if e.pinyin != nil {
		k.notations = e.pinyin.Notations()
		k.pinyinFold = e.config.PinyinCaseInsensitive
	}
	if e.romaji != nil {
		k.dict = e.romaji
		k.romajiFold = e.config.RomajiCaseInsensitive
	}
	return k
}

// analyze collects every rune that can begin a match into a prefilter.
func (e *Engine) analyze() {
	key := e.startKey()
	if v, ok := startCache.Get(key); ok {
		e.prefilter, _ = v.(prefilter.Prefilter)
		return
	}
	e.prefilter = prefilter.NewBuilder(e.startRunes()).Build()
	startCache.Add(key, e.prefilter)
}

// startRunes returns the runes a match can start with, possibly with
// duplicates. A match starts with either a plain step, a pinyin spelling or
// a romaji spelling, so its first haystack rune is one of:
//   - a rune equal to the first pattern rune (case-folded if enabled)
//   - a Han rune with a spelling starting with the first pattern rune
//   - the first rune of a dictionary key with such a spelling, or one of
//     its katakana and half-width variants
func (e *Engine) startRunes() []rune {
	p0 := e.pattern[0]

	starts := []rune{p0}
	if e.config.CaseInsensitive {
		starts = appendOrbit(starts[:0], p0)
	}

	if e.pinyin != nil {
		firsts := []rune{p0}
		if e.config.PinyinCaseInsensitive {
			firsts = appendOrbit(firsts[:0], p0)
		}
		for _, f := range firsts {
			starts = append(starts, pinyin.RunesStartingWith(e.pinyin.Notations(), f)...)
		}
	}

	if e.romaji != nil {
		keyFirsts := make(map[rune]struct{})
		fold := e.config.RomajiCaseInsensitive
		e.romaji.Walk(func(key string, spellings []string) bool {
			for _, s := range spellings {
				r, _ := utf8.DecodeRuneInString(s)
				if runeEqual(p0, r, fold) {
					k, _ := utf8.DecodeRuneInString(key)
					keyFirsts[k] = struct{}{}
					break
				}
			}
			return true
		})
		for k := range keyFirsts {
			starts = append(starts, k)
		}
		// Haystack runes are folded before lookup; add the unfolded forms.
		for _, block := range [][2]rune{{0x30A1, 0x30F6}, {0xFF61, 0xFF9F}} {
			for r := block[0]; r <= block[1]; r++ {
				if _, ok := keyFirsts[romaji.Fold(r)]; ok {
					starts = append(starts, r)
				}
			}
		}
	}
	return starts
}

// dictionaryHasASCIIKeys reports whether some key of d starts with an ASCII
// rune, which disables the ASCII fast path.
func dictionaryHasASCIIKeys(d *romaji.Dictionary) bool {
	for r := rune(0); r < utf8.RuneSelf; r++ {
		if d.Starts(r) {
			return true
		}
	}
	return false
}

// appendOrbit appends r and every rune it case-folds to.
func appendOrbit(dst []rune, r rune) []rune {
	dst = append(dst, r)
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		dst = append(dst, f)
	}
	return dst
}

// CompileError represents a pattern compilation error.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Pattern == "" {
		return "ibmatch: " + e.Err.Error()
	}
	return "ibmatch: compile " + strconv.Quote(e.Pattern) + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
