package pinyin

import "strings"

// zeroInitial selects how a scheme types syllables without an initial.
type zeroInitial uint8

const (
	// zeroO types "o" followed by the key of the final: an -> oj.
	zeroO zeroInitial = iota

	// zeroLength doubles one-letter finals, keeps two-letter finals and types
	// the first letter plus the key of longer finals: a -> aa, ai -> ai, ang -> ah.
	zeroLength

	// zeroFirst types the first letter plus the key of the final: an -> af.
	zeroFirst
)

// scheme is a double-spelling (shuangpin) keyboard layout. Every syllable is
// typed with exactly two keys: one for the initial, one for the final.
type scheme struct {
	zh, ch, sh string
	finals     map[string]string
	zero       zeroInitial
}

// spell returns the two-letter code of an Ascii spelling, or "" when the
// syllable has no code in this scheme.
func (sc *scheme) spell(plain string) string {
	initial, final := splitInitial(plain)
	if initial == "" {
		return sc.spellZero(final)
	}
	key, ok := sc.finals[final]
	if !ok {
		return ""
	}
	switch initial {
	case "zh":
		initial = sc.zh
	case "ch":
		initial = sc.ch
	case "sh":
		initial = sc.sh
	}
	return initial + key
}

func (sc *scheme) spellZero(final string) string {
	if final == "" {
		return ""
	}
	switch sc.zero {
	case zeroLength:
		switch len(final) {
		case 1:
			return final + final
		case 2:
			return final
		}
	case zeroO:
		if key, ok := sc.finals[final]; ok {
			return "o" + key
		}
		return ""
	}
	if key, ok := sc.finals[final]; ok {
		return final[:1] + key
	}
	return ""
}

// splitInitial splits an Ascii spelling into initial and final. Syllables
// starting with a vowel have an empty initial.
func splitInitial(plain string) (initial, final string) {
	for _, two := range [...]string{"zh", "ch", "sh"} {
		if strings.HasPrefix(plain, two) {
			return two, plain[2:]
		}
	}
	if plain == "" {
		return "", ""
	}
	if strings.IndexByte("bpmfdtnlgkhjqxrzcsyw", plain[0]) >= 0 {
		return plain[:1], plain[1:]
	}
	return "", plain
}

// finals shared by every scheme: single vowels are typed on their own key.
func withVowels(m map[string]string) map[string]string {
	for _, v := range [...]string{"a", "o", "e", "i", "u", "v"} {
		if _, ok := m[v]; !ok {
			m[v] = v
		}
	}
	return m
}

var schemes = map[Notation]*scheme{
	DiletterAbc: {
		zh: "a", ch: "e", sh: "v",
		zero: zeroO,
		finals: withVowels(map[string]string{
			"ei": "q", "ian": "w", "iu": "r", "er": "r", "uang": "t", "iang": "t",
			"ing": "y", "uo": "o", "uan": "p", "van": "p", "ong": "s", "iong": "s",
			"ua": "d", "ia": "d", "en": "f", "eng": "g", "ang": "h", "an": "j",
			"ao": "k", "ai": "l", "iao": "z", "ie": "x", "in": "c", "uai": "c",
			"ou": "b", "un": "n", "ui": "m", "ue": "m", "ve": "m",
		}),
	},
	DiletterJiajia: {
		zh: "v", ch: "u", sh: "i",
		zero: zeroFirst,
		finals: withVowels(map[string]string{
			"er": "q", "ing": "q", "ei": "w", "en": "r", "eng": "t", "iong": "y",
			"ong": "y", "uo": "o", "ou": "p", "ai": "s", "ao": "d", "an": "f",
			"ang": "g", "iang": "h", "uang": "h", "ian": "j", "iao": "k", "in": "l",
			"un": "z", "uai": "x", "ue": "x", "ve": "x", "uan": "c", "van": "c",
			"ui": "v", "ia": "b", "ua": "b", "iu": "n", "ie": "m",
		}),
	},
	DiletterMicrosoft: {
		zh: "v", ch: "i", sh: "u",
		zero: zeroO,
		finals: withVowels(map[string]string{
			"iu": "q", "ia": "w", "ua": "w", "uan": "r", "van": "r", "er": "r",
			"ue": "t", "ve": "t", "uai": "y", "v": "y", "uo": "o", "un": "p",
			"ong": "s", "iong": "s", "iang": "d", "uang": "d", "en": "f", "eng": "g",
			"ang": "h", "an": "j", "ao": "k", "ai": "l", "ing": ";", "ei": "z",
			"ie": "x", "iao": "c", "ui": "v", "ou": "b", "in": "n", "ian": "m",
		}),
	},
	DiletterXiaohe: {
		zh: "v", ch: "i", sh: "u",
		zero: zeroLength,
		finals: withVowels(map[string]string{
			"iu": "q", "ei": "w", "uan": "r", "van": "r", "er": "r", "ue": "t",
			"ve": "t", "un": "y", "uo": "o", "ie": "p", "ong": "s", "iong": "s",
			"ai": "d", "en": "f", "eng": "g", "ang": "h", "an": "j", "uai": "k",
			"ing": "k", "uang": "l", "iang": "l", "ou": "z", "ia": "x", "ua": "x",
			"ao": "c", "ui": "v", "in": "b", "iao": "n", "ian": "m",
		}),
	},
	DiletterZrm: {
		zh: "v", ch: "i", sh: "u",
		zero: zeroLength,
		finals: withVowels(map[string]string{
			"iu": "q", "ia": "w", "ua": "w", "uan": "r", "van": "r", "er": "r",
			"ue": "t", "ve": "t", "ing": "y", "uai": "y", "uo": "o", "un": "p",
			"ong": "s", "iong": "s", "uang": "d", "iang": "d", "en": "f", "eng": "g",
			"ang": "h", "an": "j", "ao": "k", "ai": "l", "ei": "z", "ie": "x",
			"iao": "c", "ui": "v", "ou": "b", "in": "n", "ian": "m",
		}),
	},
}
