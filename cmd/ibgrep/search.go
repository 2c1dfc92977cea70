package main

import (
	"bufio"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/coregx/ibmatch"
)

// result is one matching line or file name. Start and End are byte offsets
// into Text.
type result struct {
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Text    string `json:"text" yaml:"text"`
	Start   int    `json:"start" yaml:"start"`
	End     int    `json:"end" yaml:"end"`
	Partial bool   `json:"partial,omitempty" yaml:"partial,omitempty"`
}

func newResult(path string, line int, text string, m ibmatch.Match) result {
	return result{
		Path:    path,
		Line:    line,
		Text:    text,
		Start:   m.Start(),
		End:     m.End(),
		Partial: m.IsPatternPartial(),
	}
}

// maxLine bounds the length of a single input line.
const maxLine = 16 << 20

// searchReader returns the matching lines of r. Line numbers start at 1.
func searchReader(ctx context.Context, m *ibmatch.Matcher, path string, r io.Reader) ([]result, error) {
	var results []result
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)
	for line := 1; sc.Scan(); line++ {
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return results, err
			}
		}
		b := sc.Bytes()
		if match, ok := m.Find(b); ok {
			results = append(results, newResult(path, line, string(b), match))
		}
	}
	if err := sc.Err(); err != nil {
		return results, errors.Wrapf(err, "read %s", path)
	}
	return results, nil
}

// searchFiles searches the lines of every path with up to jobs files in
// flight. "-" reads standard input. Results keep the order of paths.
func searchFiles(ctx context.Context, m *ibmatch.Matcher, paths []string, stdin io.Reader, jobs int, log *zap.SugaredLogger) ([][]result, error) {
	perFile := make([][]result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			var r io.Reader = stdin
			if path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return errors.Wrap(err, "open input")
				}
				defer f.Close()
				r = f
			}
			res, err := searchReader(ctx, m, path, r)
			if err != nil {
				return err
			}
			log.Debugw("searched file", "path", path, "matches", len(res))
			perFile[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return perFile, nil
}

// searchNames walks every root and matches the base name of each entry.
// The roots are walked in parallel; results keep the order of roots and the
// lexical walk order within a root.
func searchNames(ctx context.Context, m *ibmatch.Matcher, roots []string, jobs int, log *zap.SugaredLogger) ([][]result, error) {
	perRoot := make([][]result, len(roots))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, root := range roots {
		g.Go(func() error {
			var res []result
			err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					log.Warnw("skipping unreadable entry", "path", path, "error", err)
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if path == root {
					return nil
				}
				name := d.Name()
				if match, ok := m.FindString(name); ok {
					res = append(res, newResult(path, 0, name, match))
				}
				return nil
			})
			if err != nil {
				return errors.Wrapf(err, "walk %s", root)
			}
			log.Debugw("walked directory", "root", root, "matches", len(res))
			perRoot[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return perRoot, nil
}
