// Package ibmatch finds a typed Latin pattern inside text written in Chinese
// or Japanese, matching the pattern against the pinyin and romaji spellings
// of the text.
//
// A pattern is matched rune by rune: each step either compares a pattern rune
// with a haystack rune, consumes the pinyin spelling of one Han character, or
// consumes the romaji spelling of a kana or dictionary word. Spellings come in
// several notations (full pinyin, first letters, tone numbers, double-spelling
// schemes) which can be combined freely.
//
// Basic usage:
//
//	m, err := ibmatch.NewPinyin("pysousuoeve", pinyin.Common)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Release()
//
//	if match, ok := m.FindString("拼音搜索Everything"); ok {
//	    fmt.Println(match.Text("拼音搜索Everything")) // 拼音搜索Eve
//	}
//
// Advanced usage:
//
//	config := ibmatch.RomajiConfig()
//	config.IsPatternPartial = true
//	config.Analyze = true
//	m, err := ibmatch.Compile("konosuba", config)
//
// Offsets are native to the haystack encoding: byte offsets for the UTF-8
// methods, uint16 code-unit offsets for the UTF-16 methods.
//
// A Matcher is safe for concurrent use by multiple goroutines until it is
// released.
package ibmatch

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"unicode/utf16"

	"github.com/coregx/ibmatch/internal/text"
	"github.com/coregx/ibmatch/meta"
	"github.com/coregx/ibmatch/pinyin"
)

// Config configures pattern compilation. See meta.Config for the fields.
type Config = meta.Config

// ErrReleased is wrapped by the panic value of any query on a released, nil
// or never compiled Matcher.
var ErrReleased = errors.New("matcher released")

// ErrEmptyPattern is wrapped by the error returned when compiling an empty
// pattern.
var ErrEmptyPattern = meta.ErrEmptyPattern

// Matcher is a compiled pattern.
//
// The caller owns a Matcher and must Release it exactly once when done.
// Querying a released Matcher, or releasing it twice, panics.
//
// Example:
//
//	m := ibmatch.MustCompile("pin", ibmatch.PinyinConfig(pinyin.Common))
//	defer m.Release()
//	println(m.IsMatchString("拼音")) // true
type Matcher struct {
	engine  atomic.Pointer[meta.Engine]
	pattern string
}

// textPool holds decoded haystacks. Texts are reset before they go back so
// no haystack outlives the call that searched it.
var textPool = sync.Pool{
	New: func() any { return new(text.Text) },
}

func getText() *text.Text { return textPool.Get().(*text.Text) }

func putText(t *text.Text) {
	t.Reset()
	textPool.Put(t)
}

// Compile compiles pattern with config.
//
// Returns an error wrapping ErrEmptyPattern for an empty pattern, or a
// *meta.ConfigError for an invalid config.
//
// Example:
//
//	config := ibmatch.DefaultConfig()
//	config.EnablePinyin = true
//	m, err := ibmatch.Compile("pinyin", config)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string, config Config) (*Matcher, error) {
	return compile([]rune(pattern), config)
}

// CompileUTF16 compiles a pattern given in UTF-16. Unpaired surrogates become
// U+FFFD.
func CompileUTF16(pattern []uint16, config Config) (*Matcher, error) {
	return compile(utf16.Decode(pattern), config)
}

func compile(pattern []rune, config Config) (*Matcher, error) {
	engine, err := meta.Compile(pattern, config)
	if err != nil {
		return nil, err
	}
	m := &Matcher{pattern: string(pattern)}
	m.engine.Store(engine)
	return m, nil
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
//
// Example:
//
//	var kana = ibmatch.MustCompile("konosuba", ibmatch.RomajiConfig())
func MustCompile(pattern string, config Config) *Matcher {
	m, err := Compile(pattern, config)
	if err != nil {
		panic("ibmatch: Compile(" + strconv.Quote(pattern) + "): " + err.Error())
	}
	return m
}

// DefaultConfig returns the default configuration: case-insensitive plain,
// pinyin and romaji comparisons, Common pinyin notations, and no
// transliteration enabled.
func DefaultConfig() Config {
	return meta.DefaultConfig()
}

// PinyinConfig returns the default configuration with pinyin enabled under
// notations.
func PinyinConfig(notations pinyin.Notation) Config {
	c := meta.DefaultConfig()
	c.EnablePinyin = true
	c.PinyinNotations = notations
	return c
}

// RomajiConfig returns the default configuration with romaji enabled.
func RomajiConfig() Config {
	c := meta.DefaultConfig()
	c.EnableRomaji = true
	return c
}

// MultilingualConfig returns the default configuration with pinyin and romaji
// enabled and allowed to mix within one match.
func MultilingualConfig(notations pinyin.Notation) Config {
	c := PinyinConfig(notations)
	c.EnableRomaji = true
	c.MixLang = true
	return c
}

// NewPinyin compiles pattern with PinyinConfig(notations).
func NewPinyin(pattern string, notations pinyin.Notation) (*Matcher, error) {
	return Compile(pattern, PinyinConfig(notations))
}

// NewRomaji compiles pattern with RomajiConfig().
func NewRomaji(pattern string) (*Matcher, error) {
	return Compile(pattern, RomajiConfig())
}

// NewMultilingual compiles pattern with MultilingualConfig(notations).
func NewMultilingual(pattern string, notations pinyin.Notation) (*Matcher, error) {
	return Compile(pattern, MultilingualConfig(notations))
}

func (m *Matcher) load(op string) *meta.Engine {
	if m != nil {
		if e := m.engine.Load(); e != nil {
			return e
		}
	}
	panic(fmt.Errorf("ibmatch: %s: %w", op, ErrReleased))
}

// Release drops the compiled pattern. The Matcher must not be used
// afterwards; releasing it again panics.
func (m *Matcher) Release() {
	if m == nil || m.engine.Swap(nil) == nil {
		panic(fmt.Errorf("ibmatch: Release: %w", ErrReleased))
	}
}

// IsMatch reports whether b contains a match.
func (m *Matcher) IsMatch(b []byte) bool {
	e := m.load("IsMatch")
	t := getText()
	defer putText(t)
	t.DecodeUTF8(b)
	return e.IsMatch(t)
}

// IsMatchString reports whether s contains a match.
func (m *Matcher) IsMatchString(s string) bool {
	e := m.load("IsMatchString")
	t := getText()
	defer putText(t)
	t.DecodeString(s)
	return e.IsMatch(t)
}

// IsMatchUTF16 reports whether u contains a match.
func (m *Matcher) IsMatchUTF16(u []uint16) bool {
	e := m.load("IsMatchUTF16")
	t := getText()
	defer putText(t)
	t.DecodeUTF16(u)
	return e.IsMatch(t)
}

// Find returns the leftmost match in b, in byte offsets. Among matches with
// the same start the shortest wins.
//
// Example:
//
//	m := ibmatch.MustCompile("pin", ibmatch.PinyinConfig(pinyin.Common))
//	match, _ := m.Find([]byte("输入拼音"))
//	println(match.Start(), match.End()) // 6 9
func (m *Matcher) Find(b []byte) (Match, bool) {
	e := m.load("Find")
	t := getText()
	defer putText(t)
	t.DecodeUTF8(b)
	return find(e, t, false)
}

// FindString is like Find for a string haystack.
func (m *Matcher) FindString(s string) (Match, bool) {
	e := m.load("FindString")
	t := getText()
	defer putText(t)
	t.DecodeString(s)
	return find(e, t, false)
}

// FindUTF16 is like Find for a UTF-16 haystack. Offsets are code-unit
// indices into u.
func (m *Matcher) FindUTF16(u []uint16) (Match, bool) {
	e := m.load("FindUTF16")
	t := getText()
	defer putText(t)
	t.DecodeUTF16(u)
	return find(e, t, false)
}

// Test returns a match starting at offset 0 of b, if any.
func (m *Matcher) Test(b []byte) (Match, bool) {
	e := m.load("Test")
	t := getText()
	defer putText(t)
	t.DecodeUTF8(b)
	return find(e, t, true)
}

// TestString is like Test for a string haystack.
func (m *Matcher) TestString(s string) (Match, bool) {
	e := m.load("TestString")
	t := getText()
	defer putText(t)
	t.DecodeString(s)
	return find(e, t, true)
}

// TestUTF16 is like Test for a UTF-16 haystack.
func (m *Matcher) TestUTF16(u []uint16) (Match, bool) {
	e := m.load("TestUTF16")
	t := getText()
	defer putText(t)
	t.DecodeUTF16(u)
	return find(e, t, true)
}

// find runs e over t and converts the rune span to native offsets.
func find(e *meta.Engine, t *text.Text, anchored bool) (Match, bool) {
	var rm meta.Match
	var ok bool
	if anchored {
		rm, ok = e.Test(t)
	} else {
		rm, ok = e.Find(t)
	}
	if !ok {
		return Match{}, false
	}
	return Match{
		start:   t.Offset(rm.Start()),
		end:     t.Offset(rm.End()),
		partial: rm.IsPatternPartial(),
	}, true
}

// Config returns the configuration the Matcher was compiled with.
func (m *Matcher) Config() Config {
	return m.load("Config").Config()
}

// Stats returns the search counters of the Matcher.
func (m *Matcher) Stats() meta.Stats {
	return m.load("Stats").Stats()
}

// ResetStats zeroes the search counters.
func (m *Matcher) ResetStats() {
	m.load("ResetStats").ResetStats()
}

// String returns a description such as ibmatch.Matcher("pin"). It is the
// one method that stays usable after Release.
func (m *Matcher) String() string {
	if m == nil {
		return "ibmatch.Matcher(nil)"
	}
	return "ibmatch.Matcher(" + strconv.Quote(m.pattern) + ")"
}
