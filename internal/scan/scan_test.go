// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package scan_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/Cattimus/jsafe/internal/scan"
	"github.com/google/go-cmp/cmp"
)

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []scan.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Constants
		{"true false null", []scan.Token{scan.True, scan.False, scan.Null}},

		// Punctuation
		{"{ [ ] } , :", []scan.Token{
			scan.LBrace, scan.LSquare, scan.RSquare, scan.RBrace, scan.Comma, scan.Colon,
		}},

		// Strings
		{`"" "a b c" "a\nb\tc"`, []scan.Token{scan.String, scan.String, scan.String}},
		{`"\"\\\/\b\f\n\r\t"`, []scan.Token{scan.String}},
		{`"\u0000\u01fc\uAA9c"`, []scan.Token{scan.String}},

		// Numbers
		{`0 -1 5139 2.3 5e+9 3.6E+4 -0.001E-100`, []scan.Token{
			scan.Integer, scan.Integer, scan.Integer,
			scan.Number, scan.Number, scan.Number, scan.Number,
		}},

		// Mixed types
		{`{true,"false":-15 null[]}`, []scan.Token{
			scan.LBrace, scan.True, scan.Comma, scan.String, scan.Colon,
			scan.Integer, scan.Null, scan.LSquare, scan.RSquare, scan.RBrace,
		}},
		{`{"a": true, "b":[null, 1, 0.5]}`, []scan.Token{
			scan.LBrace,
			scan.String, scan.Colon, scan.True, scan.Comma,
			scan.String, scan.Colon,
			scan.LSquare,
			scan.Null, scan.Comma, scan.Integer, scan.Comma, scan.Number,
			scan.RSquare,
			scan.RBrace,
		}},
		{`"a",1,true
       false["b"]
       `, []scan.Token{
			scan.String, scan.Comma, scan.Integer, scan.Comma, scan.True,
			scan.False, scan.LSquare, scan.String, scan.RSquare,
		}},
	}

	for _, test := range tests {
		var got []scan.Token
		s := scan.New(strings.NewReader(test.input))
		for s.Next() == nil {
			got = append(got, s.Token())
		}
		if err := s.Err(); err != io.EOF {
			t.Errorf("Next failed: %v", err)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScannerErrors(t *testing.T) {
	tests := []struct {
		input string
		ntok  int // number of tokens before the error
		want  string
	}{
		{`@`, 0, "unexpected"},
		{`[tru]`, 1, "unknown constant"},
		{`nullx`, 0, "unknown constant"},
		{`"abc`, 0, "EOF"},
		{"\"a\nb\"", 0, "unescaped control"},
		{`"\x"`, 0, "invalid"},
		{`"\u12g4"`, 0, "invalid Unicode escape"},
		{`01`, 0, "leading zeroes"},
		{`-00.5`, 0, "leading zeroes"},
		{`1.`, 0, "no digits after decimal point"},
		{`1.e5`, 0, "no digits after decimal point"},
		{`2e+`, 0, "missing exponent digits"},
		{`-x`, 0, "digit"},
	}
	for _, test := range tests {
		s := scan.New(strings.NewReader(test.input))
		var ntok int
		for s.Next() == nil {
			ntok++
		}
		err := s.Err()
		if err == io.EOF {
			t.Errorf("Input %#q: got EOF, want error containing %q", test.input, test.want)
			continue
		}
		var perr *scan.PosError
		if !errors.As(err, &perr) {
			t.Errorf("Input %#q: got %T, want *PosError", test.input, err)
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("Input %#q: got error %v, want %q", test.input, err, test.want)
		}
		if ntok != test.ntok {
			t.Errorf("Input %#q: got %d tokens before error, want %d", test.input, ntok, test.ntok)
		}
	}
}

func TestScannerDecode(t *testing.T) {
	mustScan := func(t *testing.T, input string, want scan.Token) *scan.Scanner {
		t.Helper()
		s := scan.New(strings.NewReader(input))
		if err := s.Next(); err != nil {
			t.Fatalf("Next failed: %v", err)
		} else if s.Token() != want {
			t.Fatalf("Next token: got %v, want %v", s.Token(), want)
		}
		return s
	}

	t.Run("Integer", func(t *testing.T) {
		s := mustScan(t, `-15`, scan.Integer)
		if f, err := s.Float64(); err != nil || f != -15 {
			t.Errorf("Float64: got %v, %v; want -15, nil", f, err)
		}
	})
	t.Run("Number", func(t *testing.T) {
		s := mustScan(t, `3.25e-5`, scan.Number)
		if f, err := s.Float64(); err != nil || f != 3.25e-5 {
			t.Errorf("Float64: got %v, %v; want 3.25e-5, nil", f, err)
		}
		if _, err := s.Unquote(); err == nil {
			t.Error("Unquote of a number: got nil, want error")
		}
	})
	t.Run("Constants", func(t *testing.T) {
		mustScan(t, `true`, scan.True)
		mustScan(t, `false`, scan.False)
		s := mustScan(t, `null`, scan.Null)
		if _, err := s.Float64(); err == nil {
			t.Error("Float64 of null: got nil, want error")
		}
	})
	t.Run("String", func(t *testing.T) {
		const wantText = `"a\tb\u0020c\n"` // as written
		const wantDec = "a\tb c\n"         // with escapes undone
		s := mustScan(t, `"a\tb\u0020c\n"`, scan.String)
		if got := string(s.Text()); got != wantText {
			t.Errorf("Text: got %#q, want %#q", got, wantText)
		}
		if got, err := s.Unquote(); err != nil {
			t.Errorf("Unquote failed: %v", err)
		} else if got != wantDec {
			t.Errorf("Unquote: got %#q, want %#q", got, wantDec)
		}
	})
}

func TestScannerLoc(t *testing.T) {
	type tokPos struct {
		Tok scan.Token
		Pos string
	}
	tests := []struct {
		input string
		want  []tokPos
	}{
		{"", nil},
		{"{ }", []tokPos{{scan.LBrace, "1:0-1"}, {scan.RBrace, "1:2-3"}}},
		{`"foo" 12`, []tokPos{{scan.String, "1:0-5"}, {scan.Integer, "1:6-8"}}},
		{"\ntrue\n false\n", []tokPos{{scan.True, "2:0-4"}, {scan.False, "3:1-6"}}},
		{"[1,\n  2.5\n]", []tokPos{
			{scan.LSquare, "1:0-1"}, {scan.Integer, "1:1-2"}, {scan.Comma, "1:2-3"},
			{scan.Number, "2:2-5"}, {scan.RSquare, "3:0-1"},
		}},
	}
	for _, tc := range tests {
		var got []tokPos
		s := scan.New(strings.NewReader(tc.input))
		for s.Next() == nil {
			got = append(got, tokPos{s.Token(), s.Location().String()})
		}
		if err := s.Err(); err != io.EOF {
			t.Errorf("Next failed: %v", err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestLocationString(t *testing.T) {
	tests := []struct {
		loc  scan.Location
		want string
	}{
		{scan.Location{First: scan.LineCol{Line: 1}, Last: scan.LineCol{Line: 1, Column: 5}}, "1:0-5"},
		{scan.Location{First: scan.LineCol{Line: 1}, Last: scan.LineCol{Line: 2, Column: 2}}, "1:0-2:2"},
	}
	for _, tc := range tests {
		if got := tc.loc.String(); got != tc.want {
			t.Errorf("Location %+v: got %q, want %q", tc.loc, got, tc.want)
		}
	}
}
