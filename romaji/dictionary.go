// Package romaji provides the romaji syllable tables and the romaji notation
// expander.
//
// A Dictionary holds every kana (single kana, digraphs, sokuon forms) and a
// set of words written with kanji, each mapped to all of its romanizations.
// Keys live in a radix tree, so the expander can report, for a haystack
// position, every key that starts there with a single walk down the tree.
// Katakana and half-width katakana are folded to hiragana on both sides.
//
// A Dictionary is immutable once built and safe for concurrent use.
//
// Basic usage:
//
//	d := romaji.Default()
//	for _, c := range d.Expand([]rune("素晴らしい世界"), 0) {
//	    fmt.Println(c.Spelling, c.Len) // "subarashii" 5, then "subarasii" 5
//	}
package romaji

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/armon/go-radix"
)

// maxVariants caps the romanizations kept per word.
const maxVariants = 16

// Candidate is one way to spell the haystack runes at a position.
type Candidate struct {
	// Spelling is the lowercase romaji spelling.
	Spelling string

	// Len is the number of haystack runes the spelling covers.
	Len int
}

// Dictionary maps kana and words to their romanizations.
type Dictionary struct {
	tree *radix.Tree // folded key -> []string

	// firsts holds the first rune of every key for quick rejection.
	firsts map[rune]struct{}

	// maxKeyLen is the longest key, in runes.
	maxKeyLen int
}

// ErrNotKana is returned when a word reading contains characters that are
// neither kana nor ASCII letters.
var ErrNotKana = errors.New("romaji: reading is not kana")

// NewDictionary builds a dictionary from the kana table plus words, a map
// from a word to its readings. Readings are written in kana (romanized with
// every kana variant) or directly in lowercase romaji.
func NewDictionary(words map[string][]string) (*Dictionary, error) {
	d := &Dictionary{
		tree:   radix.New(),
		firsts: make(map[rune]struct{}),
	}
	for k, v := range kanaTable() {
		d.insert(k, v)
	}

	keys := make([]string, 0, len(words))
	for w := range words {
		keys = append(keys, w)
	}
	sort.Strings(keys)
	for _, w := range keys {
		var spellings []string
		for _, reading := range words[w] {
			variants, err := Romanize(reading)
			if err != nil {
				return nil, fmt.Errorf("word %q: %w", w, err)
			}
			spellings = append(spellings, variants...)
		}
		if w == "" || len(spellings) == 0 {
			continue
		}
		d.insert(w, spellings)
	}
	return d, nil
}

func (d *Dictionary) insert(key string, spellings []string) {
	key = FoldString(key)
	if old, ok := d.tree.Get(key); ok {
		spellings = append(append([]string(nil), old.([]string)...), spellings...)
	}
	d.tree.Insert(key, dedupe(spellings))

	first, _ := utf8.DecodeRuneInString(key)
	d.firsts[first] = struct{}{}
	if n := utf8.RuneCountInString(key); n > d.maxKeyLen {
		d.maxKeyLen = n
	}
}

// dedupe removes duplicates and orders spellings longest first, keeping the
// table order among spellings of equal length.
func dedupe(spellings []string) []string {
	out := make([]string, 0, len(spellings))
	seen := make(map[string]struct{}, len(spellings))
	for _, s := range spellings {
		s = strings.ToLower(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}

// dictionaryFile is the TOML layout of a word dictionary:
//
//	[words]
//	"世界" = ["せかい"]
type dictionaryFile struct {
	Words map[string][]string `toml:"words"`
}

// ParseWords reads the word map of a TOML word dictionary.
func ParseWords(r io.Reader) (map[string][]string, error) {
	var f dictionaryFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("romaji: parse dictionary: %w", err)
	}
	if f.Words == nil {
		f.Words = make(map[string][]string)
	}
	return f.Words, nil
}

// ParseDictionary reads a TOML word dictionary and builds a Dictionary with
// the kana table and those words.
func ParseDictionary(r io.Reader) (*Dictionary, error) {
	words, err := ParseWords(r)
	if err != nil {
		return nil, err
	}
	return NewDictionary(words)
}

// DefaultWords returns a fresh copy of the embedded word list, for callers
// that extend it before building their own Dictionary.
func DefaultWords() map[string][]string {
	words, err := ParseWords(strings.NewReader(defaultWords))
	if err != nil {
		panic(err)
	}
	return words
}

//go:embed data/words.toml
var defaultWords string

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
)

// Default returns the process-wide dictionary built from the embedded word
// list. It is built on first use.
func Default() *Dictionary {
	defaultOnce.Do(func() {
		d, err := ParseDictionary(strings.NewReader(defaultWords))
		if err != nil {
			// The embedded data is part of the package.
			panic(err)
		}
		defaultDict = d
	})
	return defaultDict
}

// Len returns the number of keys.
func (d *Dictionary) Len() int {
	return d.tree.Len()
}

// MaxKeyLen returns the length of the longest key in runes.
func (d *Dictionary) MaxKeyLen() int {
	return d.maxKeyLen
}

// Lookup returns the spellings of an exact key, or nil.
func (d *Dictionary) Lookup(key string) []string {
	v, ok := d.tree.Get(FoldString(key))
	if !ok {
		return nil
	}
	return v.([]string)
}

// Starts reports whether some key begins with r.
func (d *Dictionary) Starts(r rune) bool {
	_, ok := d.firsts[fold(r)]
	return ok
}

// Expand returns the candidates for the haystack runes starting at index i:
// every key that is a prefix of rs[i:], longest key first, and for each key
// its spellings longest first.
func (d *Dictionary) Expand(rs []rune, i int) []Candidate {
	if i >= len(rs) || !d.Starts(rs[i]) {
		return nil
	}
	end := i + d.maxKeyLen
	if end > len(rs) {
		end = len(rs)
	}
	var b strings.Builder
	for _, r := range rs[i:end] {
		b.WriteRune(fold(r))
	}

	var found []Candidate
	d.tree.WalkPath(b.String(), func(key string, v interface{}) bool {
		n := utf8.RuneCountInString(key)
		for _, s := range v.([]string) {
			found = append(found, Candidate{Spelling: s, Len: n})
		}
		return false
	})
	// WalkPath visits shorter keys first.
	sort.SliceStable(found, func(a, b int) bool {
		return found[a].Len > found[b].Len
	})
	return found
}

// Walk calls fn for every key and its spellings in key order until fn
// returns false.
func (d *Dictionary) Walk(fn func(key string, spellings []string) bool) {
	d.tree.Walk(func(key string, v interface{}) bool {
		return !fn(key, v.([]string))
	})
}

// Romanize converts a kana reading into its romanizations, Hepburn first.
// ASCII readings are returned as is, lowercased.
func Romanize(reading string) ([]string, error) {
	reading = FoldString(reading)
	if isASCII(reading) {
		return []string{strings.ToLower(reading)}, nil
	}

	table := kanaTable()
	variants := []string{""}
	for rest := reading; rest != ""; {
		var key string
		var spellings []string
		// Longest kana key first: sokuon + digraph is three runes.
		for n := 3; n >= 1; n-- {
			k := prefixRunes(rest, n)
			if s, ok := table[k]; ok {
				key, spellings = k, s
				break
			}
		}
		if key == "" {
			r, _ := utf8.DecodeRuneInString(rest)
			return nil, fmt.Errorf("%w: %q in %q", ErrNotKana, r, reading)
		}
		rest = rest[len(key):]

		next := make([]string, 0, len(variants)*len(spellings))
		for _, v := range variants {
			for _, s := range spellings {
				if len(next) == maxVariants {
					break
				}
				next = append(next, v+s)
			}
		}
		variants = next
	}
	return variants, nil
}

var (
	kanaOnce  sync.Once
	kanaCache map[string][]string
)

func kanaTable() map[string][]string {
	kanaOnce.Do(func() {
		kanaCache = kanaEntries()
	})
	return kanaCache
}

// prefixRunes returns the first n runes of s, or "" when s is shorter.
func prefixRunes(s string, n int) string {
	i := 0
	for ; n > 0; n-- {
		if i >= len(s) {
			return ""
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
