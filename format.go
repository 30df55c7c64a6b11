// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsafe

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// String renders v as compact JSON text, with no insignificant whitespace.
// Text values and object keys are written between quotation marks exactly as
// stored, without further escaping. Parse(v.String()) reconstructs v when its
// text was produced by Parse or is already escaped; text holding a bare
// quotation mark or ending in an odd run of backslashes does not survive the
// trip, and its indented form is not reliable either. Use JSON to produce
// escaped standard JSON instead.
//
// An Invalid value renders as INVALID, which is not valid JSON.
func (v *Value) String() string { return string(v.appendCompact(nil)) }

func (v *Value) appendCompact(dst []byte) []byte {
	switch v.Kind() {
	case Null:
		return append(dst, "null"...)
	case Number:
		return appendNumber(dst, v.num)
	case Text:
		dst = append(dst, '"')
		dst = append(dst, v.text...)
		return append(dst, '"')
	case Bool:
		return strconv.AppendBool(dst, v.ok)
	case Object:
		dst = append(dst, '{')
		for i, m := range v.mems {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = append(dst, '"')
			dst = append(dst, m.key...)
			dst = append(dst, '"', ':')
			dst = m.val.appendCompact(dst)
		}
		return append(dst, '}')
	case Array:
		dst = append(dst, '[')
		for i, e := range v.elts {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = e.appendCompact(dst)
		}
		return append(dst, ']')
	default:
		return append(dst, "INVALID"...)
	}
}

// appendNumber appends the shortest text that round-trips f, using exponent
// notation for very small or very large magnitudes. NaN and infinities have
// no JSON representation and are written as null.
func appendNumber(dst []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(dst, "null"...)
	}
	fc := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fc = 'e'
	}
	dst = strconv.AppendFloat(dst, f, fc, -1, 64)
	if fc == 'e' {
		// Trim a leading zero from a two-digit negative exponent: e-07 to e-7.
		if n := len(dst); n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst
}

// MaxWidth is the largest number of indentation units per level a Formatter
// uses.
const MaxWidth = 32

// A Formatter renders values as indented JSON text. A zero Formatter indents
// each level by one space.
type Formatter struct {
	// Width is the number of indentation units per level. If Width < 1, one
	// unit is used; if Width > MaxWidth, MaxWidth units are used.
	Width int

	// If true, the indentation unit is a tab; otherwise it is a space.
	UseTabs bool

	// If true, text values and object keys are escaped as by Value.JSON.
	// Otherwise they are written as stored, as by Value.String.
	Escape bool
}

// Format writes the indented form of v to w.
//
// Each opening brace or bracket ends its line and increases the indentation
// level of the lines that follow; each closing brace or bracket begins a new
// line at the level of its opener. A comma ends its line. An empty object or
// array is written as {} or [] on one line. A value other than an object or
// array is written in its compact form.
func (f Formatter) Format(w io.Writer, v *Value) error {
	bw := bufio.NewWriter(w)
	f.format(bw, f.compact(v))
	return bw.Flush()
}

// FormatToString returns the indented form of v as a string.
func (f Formatter) FormatToString(v *Value) string {
	var sb strings.Builder
	f.format(&sb, f.compact(v))
	return sb.String()
}

func (f Formatter) compact(v *Value) []byte {
	if f.Escape {
		return v.AppendJSON(nil)
	}
	return v.appendCompact(nil)
}

// Format returns the indented form of v, using width spaces (if useSpaces is
// true) or width tabs per level of indentation. The width is limited to the
// range 1 to MaxWidth.
func Format(v *Value, width int, useSpaces bool) string {
	return Formatter{Width: width, UseTabs: !useSpaces}.FormatToString(v)
}

type byteWriter interface {
	io.ByteWriter
	io.StringWriter
	Write([]byte) (int, error)
}

// format rescans the compact text src and writes its indented form to w.
func (f Formatter) format(w byteWriter, src []byte) {
	if len(src) == 0 || (src[0] != '{' && src[0] != '[') {
		w.Write(src)
		return
	}
	unit := " "
	if f.UseTabs {
		unit = "\t"
	}
	unit = strings.Repeat(unit, min(max(f.Width, 1), MaxWidth))

	newline := func(depth int) {
		w.WriteByte('\n')
		for range depth {
			w.WriteString(unit)
		}
	}

	var q quoteState
	var depth int
	for i := 0; i < len(src); i++ {
		c := src[i]
		if !q.next(c) {
			w.WriteByte(c)
			continue
		}
		switch c {
		case '{', '[':
			if i+1 < len(src) && src[i+1] == closerOf(c) {
				w.WriteByte(c)
				w.WriteByte(src[i+1])
				i++
				continue
			}
			w.WriteByte(c)
			depth++
			newline(depth)
		case '}', ']':
			depth--
			newline(depth)
			w.WriteByte(c)
		case ',':
			w.WriteByte(c)
			newline(depth)
		default:
			w.WriteByte(c)
		}
	}
}

func closerOf(c byte) byte {
	if c == '{' {
		return '}'
	}
	return ']'
}
