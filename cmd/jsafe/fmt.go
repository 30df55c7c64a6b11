// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func format(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if count(cfg.Write, cfg.Diff, cfg.List) > 1 {
		return fmt.Errorf("%w: specify at most one of -w, -d, -l", cli.ErrUsage)
	}
	for _, path := range inputs(args) {
		if cfg.Write && path == "-" {
			return fmt.Errorf("%w: cannot use -w with standard input", cli.ErrUsage)
		}
		data, err := readInput(cc, path)
		if err != nil {
			return err
		}
		v, err := cfg.decode(path, data, false)
		if err != nil {
			return err
		}
		if !cfg.Write && !cfg.Diff && !cfg.List {
			if err := cfg.writeValue(cc.Out, v, cfg.strict()); err != nil {
				return err
			}
			continue
		}

		f := cfg.formatter()
		f.Escape = cfg.strict()
		out := f.FormatToString(v) + "\n"
		if out == string(data) {
			continue
		}
		switch {
		case cfg.List:
			fmt.Fprintln(cc.Out, path)
		case cfg.Diff:
			if err := writeDiff(cc.Out, path, string(data), out, cfg.colorize(cc.Out)); err != nil {
				return err
			}
		case cfg.Write:
			fi, err := os.Stat(path)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(out), fi.Mode().Perm()); err != nil {
				return fmt.Errorf("error writing %q: %w", path, err)
			}
			theLog.Debug("formatted", "path", path)
		}
	}
	return nil
}

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 3

// writeDiff writes a line-oriented diff from before to after to w.
func writeDiff(w io.Writer, name, before, after string, useColor bool) error {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	del, ins := fmt.Sprint, fmt.Sprint
	if useColor {
		red, green := color.New(color.FgRed), color.New(color.FgGreen)
		red.EnableColor()
		green.EnableColor()
		del, ins = red.Sprint, green.Sprint
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s (formatted)\n", name, name)
	for i, d := range diffs {
		text := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, line := range text {
				sb.WriteString(del("-" + line))
				sb.WriteByte('\n')
			}
		case diffmatchpatch.DiffInsert:
			for _, line := range text {
				sb.WriteString(ins("+" + line))
				sb.WriteByte('\n')
			}
		case diffmatchpatch.DiffEqual:
			head, tail := text, []string(nil)
			if i == 0 {
				head = nil
				tail = text[max(0, len(text)-diffContext):]
			} else if i == len(diffs)-1 {
				head = text[:min(len(text), diffContext)]
			} else if len(text) > 2*diffContext {
				head, tail = text[:diffContext], text[len(text)-diffContext:]
			}
			for _, line := range head {
				sb.WriteString(" " + line + "\n")
			}
			if tail != nil {
				sb.WriteString("@@\n")
				for _, line := range tail {
					sb.WriteString(" " + line + "\n")
				}
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func count(vs ...bool) int {
	var n int
	for _, v := range vs {
		if v {
			n++
		}
	}
	return n
}
