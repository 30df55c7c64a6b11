// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsafe

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultMaxDepth is the nesting limit for objects and arrays used by a
// Parser or Decoder that does not set one.
const DefaultMaxDepth = 512

// A Parser carries the settings for lax parsing. A zero value is ready for
// use with default settings.
type Parser struct {
	// MaxDepth is the maximum nesting depth of objects and arrays. Input
	// nested more deeply than this is rejected. If MaxDepth <= 0,
	// DefaultMaxDepth is used.
	MaxDepth int
}

func (p Parser) maxDepth() int {
	if p.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return p.MaxDepth
}

// Parse parses text as a single JSON value with default settings.
// See Parser.Parse.
func Parse(text string) *Value { return Parser{}.Parse(text) }

// Parse parses text as a single JSON value.
//
// Parsing is all-or-nothing: if any part of the input is malformed, Parse
// returns an Invalid value, and never a partial tree. The reason for the
// failure is reported as a diagnostic to the logger (see SetLogger). Use
// Decode for strict parsing with positional errors.
//
// Parse is lax in a few ways. Whitespace outside of quoted strings is
// ignored wherever it occurs, including inside numbers and literals, and the
// contents of quoted strings are kept verbatim, without decoding escape
// sequences.
func (p Parser) Parse(text string) *Value {
	text = trimSpace(text)
	if text == "" {
		return fail("empty input", text)
	}
	if c := text[0]; c == '{' || c == '[' {
		text = stripSpace(text)
	}
	return p.parseValue(text, 0)
}

// parseValue parses s, which has no insignificant whitespace, as a value
// nested at the given depth.
func (p Parser) parseValue(s string, depth int) *Value {
	if s == "" {
		return fail("missing value", s)
	}
	switch c := s[0]; {
	case c == '{':
		return p.parseObject(s, depth)
	case c == '[':
		return p.parseArray(s, depth)
	case c == '"':
		text, ok := unquoteRaw(s)
		if !ok {
			return fail("unterminated string", s)
		}
		return NewText(text)
	case c == 't' || c == 'f':
		switch s {
		case "true":
			return NewBool(true)
		case "false":
			return NewBool(false)
		}
		return fail("malformed Boolean constant", s)
	case c == 'n':
		if s == "null" {
			return NewNull()
		}
		return fail("malformed null constant", s)
	case c == '-' || isDigit(c):
		return parseNumber(s)
	default:
		return fail(fmt.Sprintf("unexpected %q", c), s)
	}
}

func (p Parser) parseObject(s string, depth int) *Value {
	if depth >= p.maxDepth() {
		return fail("nesting too deep", s)
	} else if len(s) < 2 || s[len(s)-1] != '}' {
		return fail("object is missing its closing brace", s)
	}
	body := s[1 : len(s)-1]
	parts, err := splitTop(body)
	if err != nil {
		return fail(err.Error(), s)
	}
	obj := Obj()
	obj.PreAlloc(len(parts))
	for _, part := range parts {
		key, val, ok := cutColon(part)
		if !ok {
			return fail("object member is missing a colon", part)
		}
		name, ok := unquoteRaw(key)
		if !ok {
			return fail("object key must be a quoted string", key)
		}
		mv := p.parseValue(val, depth+1)
		if !mv.IsValid() {
			return mv
		}
		obj.put(name, mv)
	}
	return obj
}

func (p Parser) parseArray(s string, depth int) *Value {
	if depth >= p.maxDepth() {
		return fail("nesting too deep", s)
	} else if len(s) < 2 || s[len(s)-1] != ']' {
		return fail("array is missing its closing bracket", s)
	}
	parts, err := splitTop(s[1 : len(s)-1])
	if err != nil {
		return fail(err.Error(), s)
	}
	arr := Arr()
	arr.PreAlloc(len(parts))
	for _, part := range parts {
		ev := p.parseValue(part, depth+1)
		if !ev.IsValid() {
			return ev
		}
		arr.elts = append(arr.elts, ev)
	}
	return arr
}

// parseNumber parses s as a number. The syntax accepted is that of
// strconv.ParseFloat, restricted to decimal digits, signs, a decimal point,
// and exponent markers.
func parseNumber(s string) *Value {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case isDigit(c), c == '-', c == '+', c == '.', c == 'e', c == 'E':
		default:
			return fail("malformed number", s)
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return fail("malformed number", s)
	}
	return NewNumber(f) // out of range values are ±Inf or 0
}

// fail reports a parse failure to the logger and returns an Invalid value.
func fail(msg, near string) *Value {
	const maxNear = 64
	if len(near) > maxNear {
		near = near[:maxNear] + "..."
	}
	logger().Warn("invalid JSON input", "reason", msg, "near", near)
	return NewInvalid()
}

// A quoteState tracks whether a left-to-right scan of JSON text is inside a
// quoted string. A double quote opens or closes a string unless it is
// escaped by a backslash inside the string; a backslash that is itself
// escaped does not escape the character after it.
type quoteState struct {
	in  bool // inside a quoted string
	esc bool // the previous byte was an unescaped backslash inside a string
}

// next advances the state over c, and reports whether c is structural, that
// is, outside a quoted string and not a quotation mark.
func (q *quoteState) next(c byte) bool {
	if q.in {
		switch {
		case q.esc:
			q.esc = false
		case c == '\\':
			q.esc = true
		case c == '"':
			q.in = false
		}
		return false
	}
	if c == '"' {
		q.in = true
		return false
	}
	return true
}

func isSpaceByte(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool     { return '0' <= c && c <= '9' }

func trimSpace(s string) string {
	i, j := 0, len(s)
	for i < j && isSpaceByte(s[i]) {
		i++
	}
	for j > i && isSpaceByte(s[j-1]) {
		j--
	}
	return s[i:j]
}

// stripSpace removes all whitespace outside quoted strings from s, in one
// pass.
func stripSpace(s string) string {
	var q quoteState
	var sb strings.Builder
	last := 0 // start of the pending run of kept bytes
	for i := 0; i < len(s); i++ {
		c := s[i]
		if q.next(c) && isSpaceByte(c) {
			if sb.Cap() == 0 {
				sb.Grow(len(s))
			}
			sb.WriteString(s[last:i])
			last = i + 1
		}
	}
	if last == 0 {
		return s // nothing was removed
	}
	sb.WriteString(s[last:])
	return sb.String()
}

// splitTop splits the body of an object or array at each comma that is
// outside quoted strings and not nested in another object or array. It
// reports an error if the body has unbalanced brackets or an unterminated
// string. An empty body has no parts.
func splitTop(body string) ([]string, error) {
	if body == "" {
		return nil, nil
	}
	var q quoteState
	var parts []string
	depth, last := 0, 0
	for i := 0; i < len(body); i++ {
		c := body[i]
		if !q.next(c) {
			continue
		}
		switch c {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth < 0 {
				return nil, errors.New("unbalanced brackets")
			}
		case ',':
			if depth == 0 {
				parts = append(parts, body[last:i])
				last = i + 1
			}
		}
	}
	if q.in {
		return nil, errors.New("unterminated string")
	} else if depth != 0 {
		return nil, errors.New("unbalanced brackets")
	}
	return append(parts, body[last:]), nil
}

// cutColon splits an object member at its first colon outside a quoted
// string.
func cutColon(s string) (key, val string, ok bool) {
	var q quoteState
	for i := 0; i < len(s); i++ {
		if q.next(s[i]) && s[i] == ':' {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

// unquoteRaw reports whether s is exactly one complete quoted string, and if
// so returns its contents without the quotation marks. Escape sequences are
// not decoded.
func unquoteRaw(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' {
		return "", false
	}
	var q quoteState
	q.next(s[0])
	for i := 1; i < len(s); i++ {
		q.next(s[i])
		if !q.in {
			return s[1:i], i == len(s)-1
		}
	}
	return "", false
}
