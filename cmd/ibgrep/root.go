package main

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/coregx/ibmatch"
)

// errNoMatch makes the command exit with status 1 without a message.
var errNoMatch = errors.New("no match")

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ibgrep [flags] PATTERN [PATH...]",
		Short: "Search Chinese and Japanese text by pinyin and romaji",
		Long: `ibgrep prints the lines of the given files that contain PATTERN, where
Han characters also match their pinyin and kana or Japanese words also match
their romaji. Without PATH, standard input is searched. With --names, the file
names under each PATH (default ".") are matched instead.

Examples:
  ibgrep pysousuo notes.txt            # matches 拼音搜索
  ibgrep -n --notations All zfcs *.md  # any pinyin notation
  ibgrep --romaji -p konosuba list.txt # matches この素晴らしい
  ibgrep --names --romaji --mix-lang hatsuneodxyy ~/Music

With --romaji --readings, the kanji words of the input are segmented with
the IPA dictionary first, so words missing from the built-in list match too:
  ibgrep --romaji --readings benkyou notes.txt  # matches 勉強

Settings can also come from IBGREP_* environment variables (IBGREP_ROMAJI=true)
or a TOML file given with --config.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), opts, args[0], args[1:], stdin, stdout, stderr)
		},
	}
	registerFlags(cmd.Flags())
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd
}

func run(ctx context.Context, opts *options, pattern string, paths []string, stdin io.Reader, stdout, stderr io.Writer) error {
	log := newLogger(stderr, opts.Verbose, opts.LogJSON)
	defer func() { _ = log.Sync() }()

	if len(paths) == 0 {
		paths = []string{"-"}
		if opts.Names {
			paths = []string{"."}
		}
	}

	var learned map[string][]string
	if opts.Readings {
		var err error
		learned, stdin, err = learnReadings(ctx, opts.Names, paths, stdin)
		if err != nil {
			return err
		}
		log.Infow("learned readings", "words", len(learned))
	}

	config, err := opts.matcherConfig(learned)
	if err != nil {
		return err
	}
	m, err := ibmatch.Compile(pattern, config)
	if err != nil {
		if errors.Is(err, ibmatch.ErrEmptyPattern) {
			err = errors.WithHint(err, "pass a non-empty PATTERN")
		}
		return errors.Wrap(err, "compile pattern")
	}
	defer m.Release()
	log.Infow("compiled pattern",
		"pattern", pattern,
		"pinyin", config.EnablePinyin,
		"notations", config.PinyinNotations.String(),
		"romaji", config.EnableRomaji,
		"mixLang", config.MixLang,
		"analyze", config.Analyze,
	)

	var groups [][]result
	if opts.Names {
		groups, err = searchNames(ctx, m, paths, opts.Jobs, log)
	} else {
		groups, err = searchFiles(ctx, m, paths, stdin, opts.Jobs, log)
	}
	if err != nil {
		return err
	}

	color := opts.Color == colorAlways || (opts.Color == colorAuto && writesToTerminal(stdout))
	if color {
		pterm.EnableColor()
	}
	p := newPrinter(stdout, opts, color, len(paths) > 1)

	matches := 0
	for _, g := range groups {
		if err := p.print(g); err != nil {
			return err
		}
		matches += len(g)
	}
	if err := p.flush(); err != nil {
		return err
	}

	s := m.Stats()
	log.Debugw("search stats",
		"matches", matches,
		"searches", s.Searches,
		"asciiFastPaths", s.ASCIIFastPaths,
		"startsTried", s.StartsTried,
		"prefilterCandidates", s.PrefilterCandidates,
		"prefilterAbandoned", s.PrefilterAbandoned,
		"prefilterSkipped", s.PrefilterSkipped,
		"memoHits", s.MemoHits,
	)
	if matches == 0 {
		return errNoMatch
	}
	return nil
}

func writesToTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f.Fd())
}
