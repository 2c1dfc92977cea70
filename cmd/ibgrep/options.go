package main

import (
	"os"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/coregx/ibmatch"
	"github.com/coregx/ibmatch/pinyin"
	"github.com/coregx/ibmatch/romaji"
)

// options is the merged command line, environment and config file settings.
// Keys are the flag names; environment variables use the IBGREP_ prefix with
// dashes replaced by underscores, e.g. IBGREP_MIX_LANG=true.
type options struct {
	Pinyin        bool   `mapstructure:"pinyin"`
	Notations     string `mapstructure:"notations"`
	Romaji        bool   `mapstructure:"romaji"`
	Dictionary    string `mapstructure:"dictionary"`
	Readings      bool   `mapstructure:"readings"`
	MixLang       bool   `mapstructure:"mix-lang"`
	Partial       bool   `mapstructure:"partial"`
	StartsWith    bool   `mapstructure:"starts-with"`
	EndsWith      bool   `mapstructure:"ends-with"`
	CaseSensitive bool   `mapstructure:"case-sensitive"`
	Analyze       bool   `mapstructure:"analyze"`

	Names      bool   `mapstructure:"names"`
	LineNumber bool   `mapstructure:"line-number"`
	Format     string `mapstructure:"format"`
	Color      string `mapstructure:"color"`
	Jobs       int    `mapstructure:"jobs"`

	Verbose int  `mapstructure:"verbose"`
	LogJSON bool `mapstructure:"log-json"`
}

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"

	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

func registerFlags(fs *pflag.FlagSet) {
	fs.Bool("pinyin", true, "match pinyin spellings of Han characters")
	fs.String("notations", "Common", `pinyin notations, e.g. "Ascii|AsciiFirstLetter|DiletterXiaohe"`)
	fs.Bool("romaji", false, "match romaji spellings of kana and Japanese words")
	fs.String("dictionary", "", "TOML romaji word dictionary replacing the built-in one")
	fs.Bool("readings", false, "learn the readings of kanji words in the input before searching (loads the IPA dictionary)")
	fs.Bool("mix-lang", false, "allow pinyin and romaji within one match")
	fs.BoolP("partial", "p", false, "let the pattern end inside a spelling")
	fs.Bool("starts-with", false, "only match at the start of a line or name")
	fs.Bool("ends-with", false, "only match at the end of a line or name")
	fs.BoolP("case-sensitive", "s", false, "compare letters case-sensitively")
	fs.Bool("analyze", true, "build a start-character prefilter for the pattern")

	fs.Bool("names", false, "match file names under the given directories instead of file contents")
	fs.BoolP("line-number", "n", false, "prefix each line with its line number")
	fs.StringP("format", "f", formatText, "output format: text, json or yaml")
	fs.String("color", colorAuto, "highlight matches: auto, always or never")
	fs.IntP("jobs", "j", runtime.GOMAXPROCS(0), "number of files searched in parallel")

	fs.String("config", "", "TOML config file")
	fs.CountP("verbose", "v", "log progress and search statistics to stderr (repeat for more)")
	fs.Bool("log-json", false, "log as JSON")
}

// loadOptions merges config file, environment and flags, in increasing
// precedence.
func loadOptions(fs *pflag.FlagSet) (*options, error) {
	v := viper.New()
	v.SetEnvPrefix("IBGREP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WithHint(
				errors.Wrapf(err, "read config %s", path),
				"the config file uses TOML keys named like the long flags, e.g. mix-lang = true")
		}
	}

	var opts options
	if err := v.Unmarshal(&opts); err != nil {
		return nil, errors.Wrap(err, "decode options")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

func (o *options) validate() error {
	switch o.Format {
	case formatText, formatJSON, formatYAML:
	default:
		return errors.WithHint(errors.Newf("unknown format %q", o.Format), "use text, json or yaml")
	}
	switch o.Color {
	case colorAuto, colorAlways, colorNever:
	default:
		return errors.WithHint(errors.Newf("unknown color mode %q", o.Color), "use auto, always or never")
	}
	if o.Readings && !o.Romaji {
		return errors.WithHint(errors.New("--readings without romaji"), "add --romaji")
	}
	if o.Jobs < 1 {
		o.Jobs = 1
	}
	return nil
}

// matcherConfig translates the options into a compile configuration.
// learned holds word readings found in the input and extends the romaji
// dictionary; it may be nil.
func (o *options) matcherConfig(learned map[string][]string) (ibmatch.Config, error) {
	c := ibmatch.DefaultConfig()
	c.Analyze = o.Analyze
	c.IsPatternPartial = o.Partial
	c.StartsWith = o.StartsWith
	c.EndsWith = o.EndsWith
	c.MixLang = o.MixLang
	c.CaseInsensitive = !o.CaseSensitive
	c.PinyinCaseInsensitive = !o.CaseSensitive
	c.RomajiCaseInsensitive = !o.CaseSensitive

	c.EnablePinyin = o.Pinyin
	notations, err := pinyin.ParseNotation(o.Notations)
	if err != nil {
		return c, errors.WithHint(errors.Wrap(err, "parse notations"),
			"combine Ascii, AsciiFirstLetter, AsciiWithTone, AsciiFirstLetterWithTone, Unicode, "+
				"UnicodeFirstLetter, DiletterAbc, DiletterJiajia, DiletterMicrosoft, DiletterXiaohe, "+
				"DiletterZrm, Common or All with |")
	}
	c.PinyinNotations = notations

	c.EnableRomaji = o.Romaji
	if !o.Romaji || (o.Dictionary == "" && len(learned) == 0) {
		return c, nil
	}

	words := romaji.DefaultWords()
	if o.Dictionary != "" {
		f, err := os.Open(o.Dictionary)
		if err != nil {
			return c, errors.Wrap(err, "open romaji dictionary")
		}
		defer f.Close()
		words, err = romaji.ParseWords(f)
		if err != nil {
			return c, errors.Wrapf(err, "parse romaji dictionary %s", o.Dictionary)
		}
	}
	for w, readings := range learned {
		words[w] = append(words[w], readings...)
	}
	d, err := romaji.NewDictionary(words)
	if err != nil {
		return c, errors.Wrap(err, "build romaji dictionary")
	}
	c.RomajiDictionary = d
	return c, nil
}
