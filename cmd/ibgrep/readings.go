package main

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/coregx/ibmatch/romaji/reading"
)

// learnReadings reads every input once and collects the readings of its
// kanji words. Standard input is buffered and returned so the search can
// read it again.
func learnReadings(ctx context.Context, names bool, paths []string, stdin io.Reader) (map[string][]string, io.Reader, error) {
	r, err := reading.New()
	if err != nil {
		return nil, stdin, errors.Wrap(err, "load readings")
	}
	words := make(map[string][]string)

	if names {
		for _, root := range paths {
			err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				r.Collect(words, d.Name())
				return nil
			})
			if err != nil {
				return nil, stdin, errors.Wrapf(err, "walk %s", root)
			}
		}
		return words, stdin, nil
	}

	var buffered []byte
	for _, path := range paths {
		if path == "-" {
			if buffered == nil {
				if buffered, err = io.ReadAll(stdin); err != nil {
					return nil, stdin, errors.Wrap(err, "read standard input")
				}
			}
			err = collectLines(ctx, r, words, path, bytes.NewReader(buffered))
		} else {
			err = collectFile(ctx, r, words, path)
		}
		if err != nil {
			return nil, stdin, err
		}
	}
	if buffered != nil {
		stdin = bytes.NewReader(buffered)
	}
	return words, stdin, nil
}

func collectFile(ctx context.Context, r *reading.Reader, words map[string][]string, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open input")
	}
	defer f.Close()
	return collectLines(ctx, r, words, path, f)
}

func collectLines(ctx context.Context, r *reading.Reader, words map[string][]string, path string, in io.Reader) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)
	for line := 1; sc.Scan(); line++ {
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		r.Collect(words, sc.Text())
	}
	return errors.Wrapf(sc.Err(), "read %s", path)
}
