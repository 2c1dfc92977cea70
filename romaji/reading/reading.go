// Package reading derives romaji dictionary words from Japanese text with a
// morphological analyzer.
//
// The embedded romaji word list only knows a few hundred words. A Reader
// segments text with kagome and the IPA dictionary, so any kanji word in the
// text can be matched by the romanization of its reading:
//
//	r, err := reading.New()
//	if err != nil {
//	    return err
//	}
//	words := romaji.DefaultWords()
//	for _, name := range names {
//	    r.Collect(words, name)
//	}
//	dict, err := romaji.NewDictionary(words)
//
// Loading the IPA dictionary takes a noticeable fraction of a second, so a
// Reader should be created once and reused.
package reading

import (
	"fmt"
	"slices"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/coregx/ibmatch/romaji"
)

// Reader reports the kana readings of the words in a text.
type Reader struct {
	tok *tokenizer.Tokenizer
}

// New loads the IPA dictionary and returns a Reader over it.
func New() (*Reader, error) {
	tok, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("reading: load dictionary: %w", err)
	}
	return &Reader{tok: tok}, nil
}

// Word is a token written with kanji and its katakana reading.
type Word struct {
	Surface string
	Reading string
}

// Words returns the words of s that contain a Han rune, in text order.
// Tokens without a reading the romaji tables can spell are skipped.
func (r *Reader) Words(s string) []Word {
	var out []Word
	for _, t := range r.tok.Tokenize(s) {
		if !hasHan(t.Surface) {
			continue
		}
		kana, ok := t.Reading()
		if !ok || kana == "" || kana == "*" {
			continue
		}
		if _, err := romaji.Romanize(kana); err != nil {
			continue
		}
		out = append(out, Word{Surface: t.Surface, Reading: kana})
	}
	return out
}

// Collect adds the words of s to words, the map taken by
// romaji.NewDictionary. Readings already present are not repeated.
func (r *Reader) Collect(words map[string][]string, s string) {
	for _, w := range r.Words(s) {
		if !slices.Contains(words[w.Surface], w.Reading) {
			words[w.Surface] = append(words[w.Surface], w.Reading)
		}
	}
}

func hasHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
