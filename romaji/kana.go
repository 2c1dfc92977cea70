package romaji

import (
	"strings"

	"golang.org/x/text/width"
)

// kana maps hiragana (single kana and digraphs) to their romanizations,
// Hepburn first, then Kunrei/Nihon-shiki and typing variants.
var kana = map[string][]string{
	"あ": {"a"}, "い": {"i"}, "う": {"u"}, "え": {"e"}, "お": {"o"},
	"か": {"ka"}, "き": {"ki"}, "く": {"ku"}, "け": {"ke"}, "こ": {"ko"},
	"が": {"ga"}, "ぎ": {"gi"}, "ぐ": {"gu"}, "げ": {"ge"}, "ご": {"go"},
	"さ": {"sa"}, "し": {"shi", "si"}, "す": {"su"}, "せ": {"se"}, "そ": {"so"},
	"ざ": {"za"}, "じ": {"ji", "zi"}, "ず": {"zu"}, "ぜ": {"ze"}, "ぞ": {"zo"},
	"た": {"ta"}, "ち": {"chi", "ti"}, "つ": {"tsu", "tu"}, "て": {"te"}, "と": {"to"},
	"だ": {"da"}, "ぢ": {"ji", "di"}, "づ": {"zu", "du"}, "で": {"de"}, "ど": {"do"},
	"な": {"na"}, "に": {"ni"}, "ぬ": {"nu"}, "ね": {"ne"}, "の": {"no"},
	"は": {"ha", "wa"}, "ひ": {"hi"}, "ふ": {"fu", "hu"}, "へ": {"he", "e"}, "ほ": {"ho"},
	"ば": {"ba"}, "び": {"bi"}, "ぶ": {"bu"}, "べ": {"be"}, "ぼ": {"bo"},
	"ぱ": {"pa"}, "ぴ": {"pi"}, "ぷ": {"pu"}, "ぺ": {"pe"}, "ぽ": {"po"},
	"ま": {"ma"}, "み": {"mi"}, "む": {"mu"}, "め": {"me"}, "も": {"mo"},
	"や": {"ya"}, "ゆ": {"yu"}, "よ": {"yo"},
	"ら": {"ra"}, "り": {"ri"}, "る": {"ru"}, "れ": {"re"}, "ろ": {"ro"},
	"わ": {"wa"}, "ゐ": {"wi", "i"}, "ゑ": {"we", "e"}, "を": {"wo", "o"},
	"ん": {"n", "nn"},
	"ゔ": {"vu"},

	"ぁ": {"a", "xa"}, "ぃ": {"i", "xi"}, "ぅ": {"u", "xu"}, "ぇ": {"e", "xe"}, "ぉ": {"o", "xo"},
	"ゃ": {"ya", "xya"}, "ゅ": {"yu", "xyu"}, "ょ": {"yo", "xyo"}, "ゎ": {"wa", "xwa"},
	"ゕ": {"ka", "xka"}, "ゖ": {"ke", "xke"},

	"きゃ": {"kya"}, "きゅ": {"kyu"}, "きょ": {"kyo"},
	"ぎゃ": {"gya"}, "ぎゅ": {"gyu"}, "ぎょ": {"gyo"},
	"しゃ": {"sha", "sya"}, "しゅ": {"shu", "syu"}, "しょ": {"sho", "syo"}, "しぇ": {"she"},
	"じゃ": {"ja", "zya", "jya"}, "じゅ": {"ju", "zyu", "jyu"}, "じょ": {"jo", "zyo", "jyo"}, "じぇ": {"je"},
	"ちゃ": {"cha", "tya"}, "ちゅ": {"chu", "tyu"}, "ちょ": {"cho", "tyo"}, "ちぇ": {"che"},
	"ぢゃ": {"ja", "dya"}, "ぢゅ": {"ju", "dyu"}, "ぢょ": {"jo", "dyo"},
	"にゃ": {"nya"}, "にゅ": {"nyu"}, "にょ": {"nyo"},
	"ひゃ": {"hya"}, "ひゅ": {"hyu"}, "ひょ": {"hyo"},
	"びゃ": {"bya"}, "びゅ": {"byu"}, "びょ": {"byo"},
	"ぴゃ": {"pya"}, "ぴゅ": {"pyu"}, "ぴょ": {"pyo"},
	"みゃ": {"mya"}, "みゅ": {"myu"}, "みょ": {"myo"},
	"りゃ": {"rya"}, "りゅ": {"ryu"}, "りょ": {"ryo"},
	"ふぁ": {"fa"}, "ふぃ": {"fi"}, "ふぇ": {"fe"}, "ふぉ": {"fo"},
	"てぃ": {"ti"}, "でぃ": {"di"}, "とぅ": {"tu"}, "どぅ": {"du"},
	"うぃ": {"wi"}, "うぇ": {"we"}, "うぉ": {"wo"},
	"ゔぁ": {"va"}, "ゔぃ": {"vi"}, "ゔぇ": {"ve"}, "ゔぉ": {"vo"},
	"つぁ": {"tsa"}, "つぃ": {"tsi"}, "つぇ": {"tse"}, "つぉ": {"tso"},

	"ー": {"-"},
}

const (
	sokuon    = "っ"
	smallKana = "ぁぃぅぇぉゃゅょゎゕゖ"
)

// kanaEntries returns the kana table extended with sokuon forms: っ before a
// kana whose romanization starts with a consonant doubles that consonant
// (っか -> kka, っち -> cchi, tchi). A lone っ romanizes as "xtsu", "ltu".
func kanaEntries() map[string][]string {
	out := make(map[string][]string, len(kana)*2)
	for k, v := range kana {
		out[k] = v
		if k == "ー" || k == "ん" || strings.ContainsAny(k[:3], smallKana) {
			continue
		}
		var doubled []string
		for _, r := range v {
			if r == "" || strings.ContainsRune("aiueon-", rune(r[0])) || strings.HasPrefix(r, "x") {
				continue
			}
			if strings.HasPrefix(r, "ch") {
				doubled = append(doubled, "c"+r, "t"+r)
				continue
			}
			doubled = append(doubled, r[:1]+r)
		}
		if len(doubled) > 0 {
			out[sokuon+k] = doubled
		}
	}
	out[sokuon] = []string{"xtsu", "ltu"}
	return out
}

// fold maps a rune to the form used for dictionary keys: katakana and
// half-width katakana become hiragana. Other runes are returned unchanged.
func fold(r rune) rune {
	if r >= 0xFF61 && r <= 0xFF9F {
		// Half-width forms; the voiced sound marks stay separate runes.
		if w := width.LookupRune(r).Wide(); w != 0 {
			r = w
		}
	}
	// Katakana ァ..ヶ sit 0x60 above their hiragana counterparts.
	if r >= 0x30A1 && r <= 0x30F6 {
		return r - 0x60
	}
	return r
}

// Fold maps katakana and half-width katakana to hiragana, the form used for
// dictionary keys. Other runes are returned unchanged.
func Fold(r rune) rune {
	return fold(r)
}

// FoldString applies the dictionary key folding to every rune of s.
func FoldString(s string) string {
	return strings.Map(fold, s)
}
