// Package path implements a minimal JSONPath expression parser for locating
// a single value in a document.
package path

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

/*
Grammar:

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." WORD
  step = "[" INDEX "]"
  step = "[" "'" QTEXT "'" "]"

  WORD = RE `\w+`
 QTEXT = RE `([^'\\]|\\.)*`
 INDEX = RE `-?\d+`

Other JSONPath operators (.., *, slices, filters, scripts) select more than
one value and are rejected.
*/

// An Expr is a parsed path expression: a sequence of object keys (string)
// and array offsets (int), suitable as an argument to cursor.Down.
type Expr []any

// Parse parses s as a path expression.
func Parse(s string) (Expr, error) {
	t, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var out Expr
	for t != "" {
		step, rest, err := parseStep(t)
		if err != nil {
			return nil, fmt.Errorf("at offset %d: %w", len(s)-len(t), err)
		}
		out = append(out, step)
		t = rest
	}
	return out, nil
}

// MustParse is as Parse, but panics if s is not a valid expression.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("path.MustParse %q: %v", s, err))
	}
	return e
}

// String renders e in canonical form: keys that are words use dot notation,
// other keys are quoted in brackets.
func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		switch t := s.(type) {
		case string:
			if wordRE.MatchString(t) && len(wordRE.FindString(t)) == len(t) {
				buf.WriteString(".")
				buf.WriteString(t)
			} else {
				buf.WriteString("['")
				buf.WriteString(quoteRep.Replace(t))
				buf.WriteString("']")
			}
		case int:
			fmt.Fprintf(&buf, "[%d]", t)
		default:
			fmt.Fprintf(&buf, "[?%T]", s)
		}
	}
	return buf.String()
}

func parseStep(s string) (_ any, rest string, _ error) {
	if strings.HasPrefix(s, "..") {
		return nil, s, errors.New("recursive descent is not supported")
	}
	if t, ok := strings.CutPrefix(s, "."); ok {
		if strings.HasPrefix(t, "*") {
			return nil, s, errors.New("wildcards are not supported")
		}
		m := wordRE.FindString(t)
		if m == "" {
			return nil, s, errors.New("invalid .name")
		}
		return m, t[len(m):], nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		var step any
		if m := indexRE.FindString(t); m != "" {
			z, err := strconv.Atoi(m)
			if err != nil {
				return nil, s, fmt.Errorf("invalid index: %w", err)
			}
			step, t = z, t[len(m):]
		} else if m := quoteRE.FindStringSubmatch(t); m != nil {
			step, t = unquoteRep.Replace(m[1]), t[len(m[0]):]
		} else {
			return nil, s, fmt.Errorf("unsupported selector %q", trunc(t))
		}
		u, ok := strings.CutPrefix(t, "]")
		if !ok {
			return nil, t, errors.New("missing close bracket")
		}
		return step, u, nil
	}
	return nil, s, errors.New("invalid path step")
}

func trunc(s string) string {
	if i := strings.IndexByte(s, ']'); i >= 0 {
		return s[:i]
	}
	return s
}

var (
	wordRE  = regexp.MustCompile(`^\w+`)
	indexRE = regexp.MustCompile(`^-?\d+`)
	quoteRE = regexp.MustCompile(`^'((?:[^'\\]|\\.)*)'`)

	quoteRep   = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	unquoteRep = strings.NewReplacer(`\\`, `\`, `\'`, `'`)
)
