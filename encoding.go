// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsafe

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Cattimus/jsafe/internal/escape"
	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return escape.Quote(src) }

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Invalid escapes are replaced by the Unicode replacement rune. Unquote
// reports an error for an incomplete escape sequence.
func Unquote(src string) (string, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return "", errors.New("missing quotations")
	}
	return escape.Unquote(mem.S(src[1 : len(src)-1]))
}

// JSON renders v as compact standard JSON. Unlike String, text values and
// object keys are escaped as needed. An Invalid value renders as null.
func (v *Value) JSON() string { return string(v.AppendJSON(nil)) }

// AppendJSON appends the JSON encoding of v to dst and returns the extended
// slice. See JSON.
func (v *Value) AppendJSON(dst []byte) []byte {
	switch v.Kind() {
	case Number:
		return appendNumber(dst, v.num)
	case Text:
		return escape.AppendQuote(dst, mem.S(v.text))
	case Bool:
		return strconv.AppendBool(dst, v.ok)
	case Object:
		dst = append(dst, '{')
		for i, m := range v.mems {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = escape.AppendQuote(dst, mem.S(m.key))
			dst = append(dst, ':')
			dst = m.val.AppendJSON(dst)
		}
		return append(dst, '}')
	case Array:
		dst = append(dst, '[')
		for i, e := range v.elts {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = e.AppendJSON(dst)
		}
		return append(dst, ']')
	default:
		return append(dst, "null"...)
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (v *Value) MarshalJSON() ([]byte, error) { return v.AppendJSON(nil), nil }

// UnmarshalJSON implements the json.Unmarshaler interface. The input is
// decoded strictly, as by DecodeString.
func (v *Value) UnmarshalJSON(data []byte) error {
	nv, err := DecodeString(string(data))
	if err != nil {
		return err
	}
	*v = *nv
	return nil
}
