package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// printer renders results in one output format.
type printer interface {
	print(results []result) error
	flush() error
}

func newPrinter(w io.Writer, opts *options, color bool, multi bool) printer {
	switch opts.Format {
	case formatJSON:
		return &jsonPrinter{enc: json.NewEncoder(w)}
	case formatYAML:
		return &yamlPrinter{w: w}
	default:
		p := &textPrinter{w: w, lineNumbers: opts.LineNumber, paths: multi}
		if color {
			p.match = pterm.NewStyle(pterm.FgLightRed, pterm.Bold)
			p.path = pterm.NewStyle(pterm.FgMagenta)
			p.line = pterm.NewStyle(pterm.FgGreen)
		}
		return p
	}
}

// textPrinter writes grep-style lines. Styles are nil without color.
type textPrinter struct {
	w           io.Writer
	lineNumbers bool
	paths       bool

	match, path, line *pterm.Style
}

func paint(s *pterm.Style, text string) string {
	if s == nil {
		return text
	}
	return s.Sprint(text)
}

func (p *textPrinter) print(results []result) error {
	for _, r := range results {
		var prefix string
		if r.Line == 0 {
			// File name results print their path with the name highlighted.
			prefix = paint(p.path, r.Path[:len(r.Path)-len(r.Text)])
		} else {
			if p.paths {
				prefix += paint(p.path, r.Path) + ":"
			}
			if p.lineNumbers {
				prefix += paint(p.line, strconv.Itoa(r.Line)) + ":"
			}
		}
		start := max(0, min(r.Start, len(r.Text)))
		end := max(start, min(r.End, len(r.Text)))
		_, err := fmt.Fprintf(p.w, "%s%s%s%s\n", prefix, r.Text[:start], paint(p.match, r.Text[start:end]), r.Text[end:])
		if err != nil {
			return errors.Wrap(err, "write output")
		}
	}
	return nil
}

func (p *textPrinter) flush() error { return nil }

// jsonPrinter writes one JSON object per result.
type jsonPrinter struct {
	enc *json.Encoder
}

func (p *jsonPrinter) print(results []result) error {
	for _, r := range results {
		if err := p.enc.Encode(r); err != nil {
			return errors.Wrap(err, "encode json")
		}
	}
	return nil
}

func (p *jsonPrinter) flush() error { return nil }

// yamlPrinter collects every result and writes a single YAML sequence.
type yamlPrinter struct {
	w       io.Writer
	results []result
}

func (p *yamlPrinter) print(results []result) error {
	p.results = append(p.results, results...)
	return nil
}

func (p *yamlPrinter) flush() error {
	if len(p.results) == 0 {
		return nil
	}
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(p.results); err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	return errors.Wrap(enc.Close(), "encode yaml")
}
