// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsafe_test

import (
	"math"
	"strings"
	"testing"

	"github.com/Cattimus/jsafe"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string // compact form
	}{
		{`null`, `null`},
		{`  true `, `true`},
		{`false`, `false`},
		{`0`, `0`},
		{`-15.25`, `-15.25`},
		{`1e3`, `1000`},
		{`2.5E-3`, `0.0025`},
		{`""`, `""`},
		{`"hello, world"`, `"hello, world"`},
		{`{}`, `{}`},
		{`[]`, `[]`},
		{`{ "a" : 1 , "b" : [ 2 , 3 ] }`, `{"a":1,"b":[2,3]}`},
		{"[\n\t1,\r\n\t2\n]", `[1,2]`},
		{`[[[]],{}]`, `[[[]],{}]`},
		{`{"x":{"y":{"z":null}}}`, `{"x":{"y":{"z":null}}}`},

		// Whitespace inside quoted strings is preserved.
		{`[" a b "]`, `[" a b "]`},

		// Structural characters inside strings are not structural.
		{`{"a,b":"[}{]","c:d":":"}`, `{"a,b":"[}{]","c:d":":"}`},

		// Escape sequences are kept verbatim.
		{`{"q":"say \"hi\""}`, `{"q":"say \"hi\""}`},
		{`["back\\", "slash"]`, `["back\\","slash"]`},
		{`"é\n"`, `"é\n"`},

		// Duplicate keys keep the position of the first and the value of the last.
		{`{"a":1,"b":2,"a":3}`, `{"a":3,"b":2}`},

		// Member order follows the input.
		{`{"z":0,"m":1,"a":2}`, `{"z":0,"m":1,"a":2}`},
	}
	for _, tc := range tests {
		v := jsafe.Parse(tc.input)
		if !v.IsValid() {
			t.Errorf("Parse %q: got invalid, want %s", tc.input, tc.want)
			continue
		}
		if got := v.String(); got != tc.want {
			t.Errorf("Parse %q: got %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	buf := captureLog(t)
	tests := []string{
		``,
		`   `,
		`{"a": }`,
		`[1,2`,
		`nul`,
		`nulll`,
		`tru`,
		`falsy`,
		`"abc`,
		`"abc"x`,
		`{"a":1]`,
		`[1,2}`,
		`[1,]`,
		`[,1]`,
		`{"a":1,}`,
		`{a:1}`,
		`{"a" 1}`,
		`{"a":"b`,
		`[[1]`,
		`[1]]`,
		`{"a":[1,2}]}`,
		`1.2.3`,
		`-`,
		`0x15`,
		`+1`,
		`@`,
		`[1,2,tru]`,
		`{"ok":true,"bad":{"x":nul}}`,
	}
	for _, input := range tests {
		buf.Reset()
		v := jsafe.Parse(input)
		if v.IsValid() {
			t.Errorf("Parse %q: got %s, want invalid", input, v)
		}
		if v.Kind() != jsafe.Invalid || v.Len() != 0 {
			t.Errorf("Parse %q: partial result %v", input, v)
		}
		if !strings.Contains(buf.String(), "invalid JSON input") {
			t.Errorf("Parse %q: missing diagnostic; log:\n%s", input, buf.String())
		}
	}
}

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0", 0},
		{"-0.5", -0.5},
		{"123456789", 123456789},
		{"6.02e23", 6.02e23},
		{"1E+2", 100},
		{"1e400", math.Inf(1)},
		{"-1e400", math.Inf(-1)},
		{"1e-400", 0},
	}
	for _, tc := range tests {
		f, ok := jsafe.Parse(tc.input).Number()
		if !ok {
			t.Errorf("Parse %q: not a number", tc.input)
		} else if f != tc.want {
			t.Errorf("Parse %q: got %v, want %v", tc.input, f, tc.want)
		}
	}
}

func TestParseDepth(t *testing.T) {
	captureLog(t)
	nest := func(n int) string {
		return strings.Repeat("[", n) + strings.Repeat("]", n)
	}

	p := jsafe.Parser{MaxDepth: 4}
	if v := p.Parse(nest(4)); !v.IsValid() {
		t.Errorf("Parse depth 4: got invalid, want valid")
	}
	if v := p.Parse(nest(5)); v.IsValid() {
		t.Errorf("Parse depth 5: got %v, want invalid", v)
	}
	if v := p.Parse(`{"a":{"b":{"c":{"d":{}}}}}`); v.IsValid() {
		t.Errorf("Parse object depth 5: got %v, want invalid", v)
	}

	if v := jsafe.Parse(nest(jsafe.DefaultMaxDepth)); !v.IsValid() {
		t.Error("Parse at default depth: got invalid, want valid")
	}
	if v := jsafe.Parse(nest(10000)); v.IsValid() {
		t.Error("Parse very deep input: got valid, want invalid")
	}
}

func TestParseReadback(t *testing.T) {
	v := jsafe.Parse(`{"name":"widget","tags":["a","b"],"size":{"w":3,"h":4.5},"ok":false}`)
	if s, ok := v.Get("name").Text(); !ok || s != "widget" {
		t.Errorf("name: got %v", v.Get("name"))
	}
	if n := v.Get("tags").Len(); n != 2 {
		t.Errorf("len(tags): got %d, want 2", n)
	}
	if f, ok := v.Get("size").Get("h").Number(); !ok || f != 4.5 {
		t.Errorf("size.h: got %v", v.Get("size").Get("h"))
	}
	if b, ok := v.Get("ok").Bool(); !ok || b {
		t.Errorf("ok: got %v", v.Get("ok"))
	}
}

func TestRoundTrip(t *testing.T) {
	tree := jsafe.Obj()
	tree.At("list").AtIndex(2).Set(jsafe.NewText(`quote \" inside`))
	tree.At("nested").At("deep").At("er").Set(jsafe.NewNumber(-0.125))
	tree.At("flag").Set(jsafe.NewBool(true))
	tree.At("empty").Set(jsafe.Arr())
	tree.At("tiny").Set(jsafe.NewNumber(1e-9))
	tree.At("huge").Set(jsafe.NewNumber(3e22))

	once := jsafe.Parse(tree.String())
	if !jsafe.Equal(once, tree) {
		t.Errorf("Round trip:\n got %s\nwant %s", once, tree)
	}
	twice := jsafe.Parse(once.String())
	if !jsafe.Equal(twice, once) {
		t.Errorf("Idempotence:\n got %s\nwant %s", twice, once)
	}
	if once.String() != twice.String() {
		t.Errorf("Compact forms differ:\n%s\n%s", once, twice)
	}
}
