// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Cattimus/jsafe"
	"github.com/fatih/color"
)

// writeValue writes the indented form of v to w, followed by a newline.
// If escape is true, text values are escaped for output; this is required
// for values whose strings were decoded.
func (cfg *MainConfig) writeValue(w io.Writer, v *jsafe.Value, escape bool) error {
	f := cfg.formatter()
	f.Escape = escape
	text := f.FormatToString(v)
	if cfg.colorize(w) {
		text = newPalette().paint(text)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

type palette struct {
	key, str, num, lit func(a ...any) string
}

func newPalette() palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintFunc()
	}
	return palette{
		key: mk(color.FgBlue, color.Bold),
		str: mk(color.FgGreen),
		num: mk(color.FgCyan),
		lit: mk(color.FgMagenta),
	}
}

// paint adds color to formatted JSON text.
func (p palette) paint(text string) string {
	var sb strings.Builder
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '"':
			j := endOfString(text, i)
			tok := text[i:j]
			if next := strings.TrimLeft(text[j:], " \t\n"); strings.HasPrefix(next, ":") {
				sb.WriteString(p.key(tok))
			} else {
				sb.WriteString(p.str(tok))
			}
			i = j
		case c == '-' || (c >= '0' && c <= '9'):
			j := i + 1
			for j < len(text) && strings.IndexByte("0123456789+-.eE", text[j]) >= 0 {
				j++
			}
			sb.WriteString(p.num(text[i:j]))
			i = j
		case c >= 'a' && c <= 'z':
			j := i + 1
			for j < len(text) && text[j] >= 'a' && text[j] <= 'z' {
				j++
			}
			sb.WriteString(p.lit(text[i:j]))
			i = j
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

// endOfString returns the offset just past the quoted string that begins at
// offset i of text, or len(text) if the string is unterminated.
func endOfString(text string, i int) int {
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		}
	}
	return len(text)
}
