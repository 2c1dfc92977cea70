package meta

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/ibmatch/internal/text"
	"github.com/coregx/ibmatch/pinyin"
	"github.com/coregx/ibmatch/prefilter"
	"github.com/coregx/ibmatch/romaji"
)

func pinyinConfig(n pinyin.Notation) Config {
	c := DefaultConfig()
	c.EnablePinyin = true
	c.PinyinNotations = n
	return c
}

func romajiConfig() Config {
	c := DefaultConfig()
	c.EnableRomaji = true
	return c
}

func multilingualConfig() Config {
	c := pinyinConfig(pinyin.Common)
	c.EnableRomaji = true
	c.MixLang = true
	return c
}

func with(c Config, fn func(*Config)) Config {
	fn(&c)
	return c
}

func mustCompile(t testing.TB, pattern string, config Config) *Engine {
	t.Helper()
	e, err := Compile([]rune(pattern), config)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return e
}

type findCase struct {
	name     string
	pattern  string
	haystack string
	config   Config
	found    bool
	start    int
	end      int
	partial  bool
}

var findCases = []findCase{
	// Plain matching.
	{"plain", "ab", "xabab", DefaultConfig(), true, 1, 3, false},
	{"plain fold", "AB", "xab", DefaultConfig(), true, 1, 3, false},
	{"plain case sensitive", "AB", "xab", with(DefaultConfig(), func(c *Config) { c.CaseInsensitive = false }), false, 0, 0, false},
	{"plain fold non-ascii", "ÄÖ", "xäö", DefaultConfig(), true, 1, 3, false},
	{"plain han", "拼", "输入拼音", DefaultConfig(), true, 2, 3, false},
	{"plain no transliteration", "pin", "拼音", DefaultConfig(), false, 0, 0, false},
	{"empty haystack", "a", "", pinyinConfig(pinyin.Common), false, 0, 0, false},

	// Pinyin.
	{"pinyin ascii", "pin", "拼音", pinyinConfig(pinyin.Ascii), true, 0, 1, false},
	{"pinyin first letters", "py", "拼音", pinyinConfig(pinyin.Common), true, 0, 2, false},
	{"first letter needs notation", "p", "拼", pinyinConfig(pinyin.Ascii), false, 0, 0, false},
	{"first letter enabled", "p", "拼", pinyinConfig(pinyin.Ascii | pinyin.AsciiFirstLetter), true, 0, 1, false},
	{"pinyin plus plain suffix", "pysousuoeve", "拼音搜索Everything", pinyinConfig(pinyin.Common), true, 0, 7, false},
	{"pinyin mid haystack", "yin", "拼音", pinyinConfig(pinyin.Common), true, 1, 2, false},
	{"pinyin and plain han", "拼y", "拼音", pinyinConfig(pinyin.Common), true, 0, 2, false},
	{"pinyin upper case folded", "PIN", "拼音", pinyinConfig(pinyin.Common), true, 0, 1, false},
	{"pinyin upper case strict", "PIN", "拼音", with(pinyinConfig(pinyin.Common), func(c *Config) { c.PinyinCaseInsensitive = false }), false, 0, 0, false},
	{"pinyin fold independent of plain", "PIN", "拼音", with(pinyinConfig(pinyin.Common), func(c *Config) { c.CaseInsensitive = false }), true, 0, 1, false},
	{"pinyin tone", "pin1yin1", "拼音", pinyinConfig(pinyin.AsciiWithTone), true, 0, 2, false},
	{"pinyin unicode", "pīnyīn", "拼音", pinyinConfig(pinyin.Unicode), true, 0, 2, false},
	{"pinyin xiaohe", "pbyb", "拼音", pinyinConfig(pinyin.DiletterXiaohe), true, 0, 2, false},
	{"pinyin no notations", "pin", "拼音", pinyinConfig(pinyin.None), false, 0, 0, false},
	{"pinyin heteronym", "zg", "中国", pinyinConfig(pinyin.Common), true, 0, 2, false},

	// Partial matches.
	{"partial disabled", "pi", "拼", pinyinConfig(pinyin.Common), false, 0, 0, false},
	{"partial enabled", "pi", "拼", with(pinyinConfig(pinyin.Common), func(c *Config) { c.IsPatternPartial = true }), true, 0, 1, true},
	{"partial ends before full", "pi", "拼i", with(pinyinConfig(pinyin.Common), func(c *Config) { c.IsPatternPartial = true }), true, 0, 1, true},
	{"partial romaji", "konosuba", "この素晴らしい世界に祝福を", with(romajiConfig(), func(c *Config) { c.IsPatternPartial = true }), true, 0, 7, true},
	{"partial romaji disabled", "konosuba", "この素晴らしい世界に祝福を", romajiConfig(), false, 0, 0, false},

	// Anchors.
	{"starts with", "pin", "拼音输入法", with(pinyinConfig(pinyin.Common), func(c *Config) { c.StartsWith = true }), true, 0, 1, false},
	{"starts with rejects later", "pin", "输入拼音", with(pinyinConfig(pinyin.Common), func(c *Config) { c.StartsWith = true }), false, 0, 0, false},
	{"later without starts with", "pin", "输入拼音", pinyinConfig(pinyin.Common), true, 2, 3, false},
	{"ends with", "yin", "拼音", with(pinyinConfig(pinyin.Common), func(c *Config) { c.EndsWith = true }), true, 1, 2, false},
	{"ends with rejects", "yin", "拼音输入", with(pinyinConfig(pinyin.Common), func(c *Config) { c.EndsWith = true }), false, 0, 0, false},
	{"ends with picks later end", "ab", "abab", with(DefaultConfig(), func(c *Config) { c.EndsWith = true }), true, 2, 4, false},
	{"ends with partial", "konosuba", "この素晴らしい", with(romajiConfig(), func(c *Config) { c.IsPatternPartial = true; c.EndsWith = true }), true, 0, 7, true},
	{"ends with partial rejects", "konosuba", "この素晴らしい世界", with(romajiConfig(), func(c *Config) { c.IsPatternPartial = true; c.EndsWith = true }), false, 0, 0, false},

	// Romaji.
	{"romaji kana", "kyouto", "きょうと", romajiConfig(), true, 0, 4, false},
	{"romaji katakana", "kyouto", "キョウト", romajiConfig(), true, 0, 4, false},
	{"romaji half-width", "kyouto", "ｷｮｳﾄ", romajiConfig(), true, 0, 4, false},
	{"romaji sokuon", "gakkou", "がっこう", romajiConfig(), true, 0, 4, false},
	{"romaji word", "gakkou", "学校へ", romajiConfig(), true, 0, 2, false},
	{"romaji kunrei", "syukuhuku", "祝福を", romajiConfig(), true, 0, 2, false},
	{"romaji plus plain", "sekaiabc", "世界ABC", romajiConfig(), true, 0, 5, false},
	{"romaji upper case strict", "SEKAI", "世界", with(romajiConfig(), func(c *Config) { c.RomajiCaseInsensitive = false }), false, 0, 0, false},

	// Mixed languages.
	{"mixed", "hatsuneodxyy", "初音殴打喜羊羊", multilingualConfig(), true, 0, 7, false},
	{"mixed disabled", "hatsuneodxyy", "初音殴打喜羊羊", with(multilingualConfig(), func(c *Config) { c.MixLang = false }), false, 0, 0, false},
	{"both languages without mixing", "sekai", "世界", with(multilingualConfig(), func(c *Config) { c.MixLang = false }), true, 0, 2, false},
	{"pinyin path without mixing", "sj", "世界", with(multilingualConfig(), func(c *Config) { c.MixLang = false }), true, 0, 2, false},
}

func TestFind(t *testing.T) {
	for _, tc := range findCases {
		for _, analyze := range []bool{false, true} {
			name := tc.name
			if analyze {
				name += "/analyze"
			}
			t.Run(name, func(t *testing.T) {
				config := tc.config
				config.Analyze = analyze
				e := mustCompile(t, tc.pattern, config)
				h := text.FromUTF8([]byte(tc.haystack))

				m, ok := e.Find(h)
				if ok != tc.found {
					t.Fatalf("Find(%q) found = %v (%v), want %v", tc.haystack, ok, m, tc.found)
				}
				if got := e.IsMatch(h); got != ok {
					t.Errorf("IsMatch = %v, Find found = %v", got, ok)
				}
				if !ok {
					return
				}
				if m.Start() != tc.start || m.End() != tc.end || m.IsPatternPartial() != tc.partial {
					t.Errorf("Find(%q) = %v, want [%d, %d) partial=%v", tc.haystack, m, tc.start, tc.end, tc.partial)
				}
				if m.Start() > m.End() {
					t.Errorf("start %d > end %d", m.Start(), m.End())
				}
			})
		}
	}
}

func TestTest(t *testing.T) {
	e := mustCompile(t, "yin", pinyinConfig(pinyin.Common))

	if m, ok := e.Test(text.FromString("拼音")); ok {
		t.Errorf("Test(拼音) = %v, want no match", m)
	}
	if _, ok := e.Find(text.FromString("拼音")); !ok {
		t.Error("Find(拼音) found nothing")
	}
	m, ok := e.Test(text.FromString("音乐"))
	if !ok || m.Start() != 0 || m.End() != 1 {
		t.Errorf("Test(音乐) = %v, %v, want [0, 1)", m, ok)
	}

	// Test composes with EndsWith.
	e = mustCompile(t, "yin", with(pinyinConfig(pinyin.Common), func(c *Config) { c.EndsWith = true }))
	if _, ok := e.Test(text.FromString("音乐")); ok {
		t.Error("Test with EndsWith matched 音乐")
	}
	if _, ok := e.Test(text.FromString("音")); !ok {
		t.Error("Test with EndsWith did not match 音")
	}
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile(nil, DefaultConfig())
	if !errors.Is(err, ErrEmptyPattern) {
		t.Fatalf("Compile(nil) error = %v, want ErrEmptyPattern", err)
	}
	var compErr *CompileError
	if !errors.As(err, &compErr) {
		t.Fatalf("error %T is not *CompileError", err)
	}
	if _, err := Compile([]rune{}, DefaultConfig()); !errors.Is(err, ErrEmptyPattern) {
		t.Errorf("Compile([]) error = %v, want ErrEmptyPattern", err)
	}

	config := DefaultConfig()
	config.PinyinNotations = 1 << 20
	_, err = Compile([]rune("pin"), config)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Compile with bad notations error = %v, want *ConfigError", err)
	}
	if !strings.Contains(err.Error(), `"pin"`) {
		t.Errorf("Error() = %q, want the pattern quoted", err.Error())
	}
}

func TestCompileCopiesInput(t *testing.T) {
	pattern := []rune("pin")
	config := pinyinConfig(pinyin.Common)
	e, err := Compile(pattern, config)
	if err != nil {
		t.Fatal(err)
	}
	pattern[0] = 'x'
	config.EnablePinyin = false

	if _, ok := e.Find(text.FromString("拼")); !ok {
		t.Error("engine changed after mutating its inputs")
	}
	if got := string(e.Pattern()); got != "pin" {
		t.Errorf("Pattern() = %q, want pin", got)
	}
	if !e.Config().EnablePinyin {
		t.Error("Config().EnablePinyin = false")
	}
}

func TestCustomDictionary(t *testing.T) {
	d, err := romaji.ParseDictionary(strings.NewReader(`
[words]
"猫又" = ["ねこまた"]
"東京都庁" = ["x"]
`))
	if err != nil {
		t.Fatal(err)
	}
	config := romajiConfig()
	config.RomajiDictionary = d

	e := mustCompile(t, "nekomata", config)
	if m, ok := e.Find(text.FromString("化け猫又")); !ok || m.Start() != 2 || m.End() != 4 {
		t.Errorf("Find = %v, %v, want [2, 4)", m, ok)
	}
	if e.Config().RomajiDictionary != d {
		t.Error("Config().RomajiDictionary is not the custom dictionary")
	}

	// A key longer than its spelling still fits the memo window.
	e = mustCompile(t, "xx", config)
	if m, ok := e.Find(text.FromString("東京都庁東京都庁")); !ok || m.End() != 8 {
		t.Errorf("Find = %v, %v, want [0, 8)", m, ok)
	}
	if _, ok := mustCompile(t, "sekai", config).Find(text.FromString("世界")); ok {
		t.Error("custom dictionary matched a default word")
	}
}

func TestDefaultDictionaryResolved(t *testing.T) {
	e := mustCompile(t, "a", romajiConfig())
	if e.Config().RomajiDictionary != romaji.Default() {
		t.Error("Config().RomajiDictionary is not romaji.Default()")
	}
}

func TestUTF16Equivalence(t *testing.T) {
	e := mustCompile(t, "hatsuneodxyy", multilingualConfig())
	u := text.FromUTF16([]uint16{'x', 0xD83D, 0xDE00, 0x521D, 0x97F3, 0x6BB4, 0x6253, 0x559C, 0x7F8A, 0x7F8A})
	m, ok := e.Find(u)
	if !ok || m.Start() != 2 || m.End() != 9 {
		t.Fatalf("Find = %v, %v, want rune span [2, 9)", m, ok)
	}
	if u.Offset(m.Start()) != 3 || u.Offset(m.End()) != 10 {
		t.Errorf("native span = [%d, %d), want [3, 10)", u.Offset(m.Start()), u.Offset(m.End()))
	}
}

func TestStats(t *testing.T) {
	e := mustCompile(t, "pin", with(pinyinConfig(pinyin.Common), func(c *Config) { c.Analyze = true }))
	e.Find(text.FromString("abc"))
	e.Find(text.FromString("输入拼音"))

	s := e.Stats()
	if s.Searches != 2 {
		t.Errorf("Searches = %d, want 2", s.Searches)
	}
	if s.Matches != 1 {
		t.Errorf("Matches = %d, want 1", s.Matches)
	}
	if s.ASCIIFastPaths != 1 {
		t.Errorf("ASCIIFastPaths = %d, want 1", s.ASCIIFastPaths)
	}
	if s.PrefilterCandidates != 1 {
		t.Errorf("PrefilterCandidates = %d, want 1", s.PrefilterCandidates)
	}

	e.ResetStats()
	if s := e.Stats(); s != (Stats{}) {
		t.Errorf("Stats after reset = %+v", s)
	}
}

func TestAnalyze(t *testing.T) {
	e := mustCompile(t, "pin", pinyinConfig(pinyin.Common))
	if e.IsAnalyzed() || e.StartRunes() != 0 {
		t.Error("engine analyzed without Analyze")
	}

	e = mustCompile(t, "pin", with(pinyinConfig(pinyin.Common), func(c *Config) { c.Analyze = true }))
	if !e.IsAnalyzed() {
		t.Fatal("engine not analyzed")
	}
	if e.StartRunes() < 10 {
		t.Errorf("StartRunes() = %d, want many Han runes", e.StartRunes())
	}
	if e.HeapBytes() <= 0 {
		t.Errorf("HeapBytes() = %d", e.HeapBytes())
	}

	e = mustCompile(t, "ka", with(romajiConfig(), func(c *Config) { c.Analyze = true }))
	for _, r := range []rune{'か', 'カ', 'ｶ', 'k', 'K', '会'} {
		if !e.prefilter.Contains(r) {
			t.Errorf("start runes of %q miss %q", "ka", r)
		}
	}
	if e.prefilter.Contains('さ') {
		t.Error("start runes of \"ka\" contain さ")
	}
}

func TestAnalyzeLargeStartSet(t *testing.T) {
	e := mustCompile(t, "yin", with(pinyinConfig(pinyin.Common), func(c *Config) { c.Analyze = true }))
	if e.StartRunes() <= prefilter.MaxAutomatonRunes {
		t.Fatalf("StartRunes() = %d, want more than %d", e.StartRunes(), prefilter.MaxAutomatonRunes)
	}
	if _, ok := e.prefilter.(*prefilter.RuneSet); !ok {
		t.Errorf("prefilter = %T, want *prefilter.RuneSet", e.prefilter)
	}
}

func TestAnalyzeCache(t *testing.T) {
	analyzed := func(c *Config) { c.Analyze = true }
	a := mustCompile(t, "pin", with(pinyinConfig(pinyin.Common), analyzed))
	b := mustCompile(t, "pa", with(pinyinConfig(pinyin.Common), analyzed))
	if a.prefilter != b.prefilter {
		t.Error("patterns with the same first rune and settings built separate prefilters")
	}

	c := mustCompile(t, "pin", with(pinyinConfig(pinyin.Ascii), analyzed))
	if a.prefilter == c.prefilter {
		t.Error("different notations share a prefilter")
	}
	d := mustCompile(t, "pin", with(multilingualConfig(), analyzed))
	if a.prefilter == d.prefilter {
		t.Error("enabling romaji shares the pinyin-only prefilter")
	}
	if !d.prefilter.Contains('ぱ') {
		t.Error("romaji start runes missing from the cached prefilter")
	}
}

func TestStatsPrefilterSkipped(t *testing.T) {
	e := mustCompile(t, "pin", with(pinyinConfig(pinyin.Common), func(c *Config) { c.Analyze = true }))
	if _, ok := e.Find(text.FromString("输入拼音")); !ok {
		t.Fatal("no match")
	}
	s := e.Stats()
	if s.PrefilterCandidates != 1 || s.PrefilterSkipped != 2 || s.StartsTried != 1 {
		t.Errorf("Stats = %+v, want 1 candidate after 2 skipped positions", s)
	}
}

func TestPrefilterAbandoned(t *testing.T) {
	e := mustCompile(t, "ab", with(DefaultConfig(), func(c *Config) { c.Analyze = true }))
	h := text.FromUTF8([]byte(strings.Repeat("a", 500) + "ab"))

	m, ok := e.Find(h)
	if !ok || m.Start() != 500 || m.End() != 502 {
		t.Fatalf("Find = %v, %v, want [500, 502)", m, ok)
	}
	if s := e.Stats(); s.PrefilterAbandoned != 1 {
		t.Errorf("PrefilterAbandoned = %d, want 1", s.PrefilterAbandoned)
	}
}

func TestAnalyzeDoesNotChangeResults(t *testing.T) {
	patterns := []string{"p", "pin", "py", "zg", "yin", "ka", "sekai", "konosuba", "KO", "a", "ｶ", "カ", "音", "-", "noi"}
	haystacks := []string{
		"拼音搜索Everything",
		"この素晴らしい世界に祝福を",
		"初音殴打喜羊羊",
		"カタカナ世界、ｶﾀｶﾅ中国",
		"plain ascii haystack",
		"ラーメン noise 音乐",
		"\xe6invalid\xff拼",
		"",
	}
	configs := map[string]Config{
		"plain":        DefaultConfig(),
		"pinyin":       pinyinConfig(pinyin.All),
		"romaji":       with(romajiConfig(), func(c *Config) { c.IsPatternPartial = true }),
		"multilingual": with(multilingualConfig(), func(c *Config) { c.IsPatternPartial = true }),
		"strict":       with(multilingualConfig(), func(c *Config) { c.MixLang = false; c.CaseInsensitive = false }),
		"anchored":     with(multilingualConfig(), func(c *Config) { c.StartsWith = true; c.EndsWith = true }),
	}

	for name, config := range configs {
		for _, p := range patterns {
			plain := mustCompile(t, p, config)
			config.Analyze = true
			analyzed := mustCompile(t, p, config)
			config.Analyze = false

			for _, h := range haystacks {
				for _, ht := range []*text.Text{text.FromUTF8([]byte(h)), text.FromString(h)} {
					m1, ok1 := plain.Find(ht)
					m2, ok2 := analyzed.Find(ht)
					if ok1 != ok2 || m1 != m2 {
						t.Errorf("%s: %q in %q: %v,%v without Analyze vs %v,%v with", name, p, h, m1, ok1, m2, ok2)
					}
				}
			}
		}
	}
}

// TestPathologicalFanOut checks that notation fan-out does not blow up the
// search: every 中 has many spellings and the match fails only at the end.
func TestPathologicalFanOut(t *testing.T) {
	config := with(multilingualConfig(), func(c *Config) {
		c.PinyinNotations = pinyin.All
		c.IsPatternPartial = true
	})
	pattern := strings.Repeat("zhong", 8) + "q"
	e := mustCompile(t, pattern, config)

	h := text.FromString(strings.Repeat("中", 4000))
	if m, ok := e.Find(h); ok {
		t.Fatalf("Find = %v, want no match", m)
	}
	if s := e.Stats(); s.MemoHits == 0 {
		t.Error("memo never hit")
	}
}

func BenchmarkFind(b *testing.B) {
	haystack := strings.Repeat("这是一段很长的中文文本，没有要找的内容。", 50) + "拼音搜索Everything"
	for _, analyze := range []bool{false, true} {
		name := "plain"
		if analyze {
			name = "analyze"
		}
		b.Run(name, func(b *testing.B) {
			e := mustCompile(b, "pysousuoeve", with(pinyinConfig(pinyin.Common), func(c *Config) { c.Analyze = analyze }))
			h := text.FromString(haystack)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				e.Find(h)
			}
		})
	}
}

func BenchmarkCompileAnalyze(b *testing.B) {
	config := with(multilingualConfig(), func(c *Config) { c.Analyze = true })
	for _, p := range []string{"pin", "yin", "s"} {
		b.Run(p+"/cold", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				startCache.Purge()
				mustCompile(b, p, config)
			}
		})
		b.Run(p+"/cached", func(b *testing.B) {
			mustCompile(b, p, config)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				mustCompile(b, p, config)
			}
		})
	}
}
