// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsafe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/Cattimus/jsafe/internal/scan"
	"github.com/tailscale/hujson"
)

var (
	// ErrExtraInput is reported by DecodeString when non-whitespace input
	// follows the first value.
	ErrExtraInput = errors.New("extra input after value")

	// ErrTooDeep is reported when input nests objects and arrays more deeply
	// than the configured limit.
	ErrTooDeep = errors.New("nesting too deep")
)

// A Decoder is a strict JSON parser that reads a sequence of values from an
// input stream. Unlike Parse, a Decoder accepts only standard JSON, decodes
// escape sequences in strings, and reports errors with their locations.
type Decoder struct {
	r        io.Reader
	s        *scan.Scanner
	jwcc     bool
	maxDepth int
}

// NewDecoder constructs a Decoder that consumes input from r.
func NewDecoder(r io.Reader) *Decoder { return &Decoder{r: r} }

// AllowJWCC configures d to accept (true) or reject (false) JSON with
// comments and trailing commas. When enabled, the input is read in full and
// standardized before decoding, and must contain exactly one value. This
// setting must be chosen before the first call to Decode.
func (d *Decoder) AllowJWCC(ok bool) { d.jwcc = ok }

// SetMaxDepth sets the maximum nesting depth of objects and arrays.
// If n <= 0, DefaultMaxDepth is used.
func (d *Decoder) SetMaxDepth(n int) { d.maxDepth = n }

func (d *Decoder) init() error {
	if d.s != nil {
		return nil
	}
	r := d.r
	if d.jwcc {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		if len(bytes.TrimSpace(data)) != 0 {
			data, err = hujson.Standardize(data)
			if err != nil {
				return fmt.Errorf("standardize input: %w", err)
			}
		}
		r = bytes.NewReader(data)
	}
	d.s = scan.New(r)
	return nil
}

// Decode decodes the next value from the input. If no further value is
// available, Decode returns io.EOF. In case of a syntax error, the returned
// error has type [*SyntaxError].
func (d *Decoder) Decode() (_ *Value, err error) {
	if err := d.init(); err != nil {
		return nil, err
	}
	defer d.recoverSyntaxError(&err)

	if err := d.s.Next(); err == io.EOF {
		return nil, err
	} else if err != nil {
		d.syntaxError(err, "%v", err)
	}
	return d.parseElement(0), nil
}

// DecodeString decodes s as a single JSON value with default settings. It is
// an error if s contains anything other than whitespace after the value.
func DecodeString(s string) (*Value, error) {
	d := NewDecoder(strings.NewReader(s))
	v, err := d.Decode()
	if err == io.EOF {
		return nil, &SyntaxError{Location: LineCol{Line: 1}, Message: "no input", err: io.ErrUnexpectedEOF}
	} else if err != nil {
		return nil, err
	}
	if err := d.s.Next(); err == nil {
		return nil, &SyntaxError{
			Location: d.s.Location().First,
			Message:  ErrExtraInput.Error(),
			err:      ErrExtraInput,
		}
	} else if err != io.EOF {
		return nil, d.errorAt(err)
	}
	return v, nil
}

func (d *Decoder) depthOK(depth int) bool {
	if d.maxDepth <= 0 {
		return depth < DefaultMaxDepth
	}
	return depth < d.maxDepth
}

// parseElement consumes a single value of any type.
// Precondition: token != Invalid.
func (d *Decoder) parseElement(depth int) *Value {
	switch tok := d.s.Token(); tok {
	case scan.LBrace:
		if !d.depthOK(depth) {
			d.syntaxError(ErrTooDeep, "%v", ErrTooDeep)
		}
		return d.parseMembers(depth)
	case scan.LSquare:
		if !d.depthOK(depth) {
			d.syntaxError(ErrTooDeep, "%v", ErrTooDeep)
		}
		return d.parseElements(depth)
	case scan.Integer, scan.Number:
		f, err := d.s.Float64()
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			d.syntaxError(err, "invalid number: %v", err)
		}
		return NewNumber(f)
	case scan.String:
		s, err := d.s.Unquote()
		if err != nil {
			d.syntaxError(err, "invalid string: %v", err)
		}
		return NewText(s)
	case scan.True, scan.False:
		return NewBool(tok == scan.True)
	case scan.Null:
		return NewNull()
	case scan.RBrace, scan.RSquare, scan.Comma, scan.Colon:
		d.syntaxError(nil, "unexpected %v", tok)
	default:
		d.syntaxError(nil, "unknown token %v", tok)
	}
	panic("unreachable")
}

// parseMembers consumes zero or more key:value object members.
// Precondition: token == LBrace.
// Postcondition: token == RBrace.
func (d *Decoder) parseMembers(depth int) *Value {
	obj := Obj()
	if d.advance(scan.RBrace, scan.String) == scan.RBrace {
		return obj
	}
	for {
		key, err := d.s.Unquote()
		if err != nil {
			d.syntaxError(err, "invalid key: %v", err)
		}
		d.advance(scan.Colon)
		d.advance()
		obj.put(key, d.parseElement(depth+1))

		if d.advance(scan.RBrace, scan.Comma) == scan.RBrace {
			return obj
		}
		d.advance(scan.String)
	}
}

// parseElements consumes zero or more comma-separated array values.
// Precondition: token == LSquare.
// Postcondition: token == RSquare.
func (d *Decoder) parseElements(depth int) *Value {
	arr := Arr()
	if d.advance() == scan.RSquare {
		return arr
	}
	arr.elts = append(arr.elts, d.parseElement(depth+1))
	for {
		if d.advance(scan.RSquare, scan.Comma) == scan.RSquare {
			return arr
		}
		d.advance()
		arr.elts = append(arr.elts, d.parseElement(depth+1))
	}
}

func (d *Decoder) advance(tokens ...scan.Token) scan.Token {
	if err := d.s.Next(); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		d.syntaxError(err, "%v", tokLabel(tokens, "error: "+err.Error()))
	}
	tok := d.s.Token()
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		d.syntaxError(nil, "%v", tokLabel(tokens, tok))
	}
	return tok
}

func (d *Decoder) syntaxError(err error, msg string, args ...any) {
	panic(&SyntaxError{
		Location: d.s.Location().First,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}

func (d *Decoder) errorAt(err error) *SyntaxError {
	return &SyntaxError{Location: d.s.Location().First, Message: err.Error(), err: err}
}

func (d *Decoder) recoverSyntaxError(errp *error) {
	if serr := recover(); serr != nil {
		if err, ok := serr.(*SyntaxError); ok {
			*errp = err
			return
		}
		panic(serr)
	}
}

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []scan.Token, got any) string {
	var exp string
	switch len(tokens) {
	case 0:
		exp = "more input"
	case 1:
		exp = tokens[0].String()
	default:
		last := len(tokens) - 1
		ss := make([]string, last)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}

// SyntaxError is the concrete type of errors reported by a Decoder.
type SyntaxError struct {
	Location LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
