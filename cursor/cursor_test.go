// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"testing"

	"github.com/Cattimus/jsafe"
	"github.com/Cattimus/jsafe/cursor"
	"github.com/google/go-cmp/cmp"
)

const testJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2
    }
  ],
  "y": {
    "hello": "there"
  },
  "o": [
    "hi",
    "yourself"
  ],
  "xyz": {
    "p": true,
    "d": true,
    "q": false
  }
}`

func mustParse(t *testing.T, s string) *jsafe.Value {
	t.Helper()
	v, err := jsafe.DecodeString(s)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return v
}

func TestCursor(t *testing.T) {
	v := mustParse(t, testJSON)

	tests := []struct {
		name     string
		path     []any
		want     string // compact form of the value reached
		wantPath []any
		fail     bool
	}{
		{"NilInput", nil, v.String(), nil, false},
		{"NilElements", []any{nil, "y", nil}, `{"hello":"there"}`, []any{"y"}, false},
		{"NoMatch", []any{"nonesuch"}, v.String(), nil, true},
		{"WrongType", []any{11}, v.String(), nil, true},
		{"BadElement", []any{3.5}, v.String(), nil, true},

		{"ArrayPos", []any{"list", 1}, `{"x":2}`, []any{"list", 1}, false},
		{"ArrayNeg", []any{"list", -1}, `{"x":2}`, []any{"list", 1}, false},
		{"ArrayNeg2", []any{"o", -2}, `"hi"`, []any{"o", 0}, false},
		{"ArrayRange", []any{"o", 25}, `["hi","yourself"]`, []any{"o"}, true},
		{"ObjPath", []any{"xyz", "d"}, `true`, []any{"xyz", "d"}, false},
		{"Deep", []any{"list", 0, "x"}, `1`, []any{"list", 0, "x"}, false},
		{"ScalarKey", []any{"xyz", "d", "e"}, `true`, []any{"xyz", "d"}, true},
		{"ObjectIndex", []any{"y", 0}, `{"hello":"there"}`, []any{"y"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cursor.New(v).Down(tc.path...)
			if err := c.Err(); err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
				}
			} else if tc.fail {
				t.Fatalf("Down %+v: got success, want error", tc.path)
			}
			if got := c.Value().String(); got != tc.want {
				t.Errorf("Down %+v: got %s, want %s", tc.path, got, tc.want)
			}
			if diff := cmp.Diff(c.Path(), tc.wantPath); diff != "" {
				t.Errorf("Down %+v: wrong path (-got, +want):\n%s", tc.path, diff)
			}
		})
	}
}

func TestFind(t *testing.T) {
	v := mustParse(t, testJSON)
	got, err := cursor.Find(v, "y", "hello")
	if err != nil {
		t.Fatalf("Find: unexpected error: %v", err)
	}
	if s, ok := got.Text(); !ok || s != "there" {
		t.Errorf("Find: got %v, want there", got)
	}
	if got, err := cursor.Find(v, "y", "goodbye"); err == nil {
		t.Errorf("Find: got %v, want error", got)
	}
}

func TestMovement(t *testing.T) {
	v := mustParse(t, testJSON)
	c := cursor.New(v)
	if !c.AtOrigin() || c.Origin() != v {
		t.Fatal("New cursor is not at its origin")
	}

	c.Down("list", 0)
	if c.AtOrigin() {
		t.Error("Cursor is at origin after Down")
	}
	c.Up()
	if diff := cmp.Diff(c.Path(), []any{"list"}); diff != "" {
		t.Errorf("After Up (-got, +want):\n%s", diff)
	}
	c.Down(1, "x")
	if got := c.Value().String(); got != "2" {
		t.Errorf("After Down: got %s, want 2", got)
	}

	// Down from the current position accumulates.
	c.Up().Up().Up().Up()
	if !c.AtOrigin() {
		t.Errorf("After Up to origin: path is %v", c.Path())
	}

	c.Down("nonesuch")
	if c.Err() == nil {
		t.Error("Down to a missing key: got nil, want error")
	}
	c.Reset()
	if c.Err() != nil || !c.AtOrigin() {
		t.Errorf("After Reset: err=%v path=%v", c.Err(), c.Path())
	}
}

func TestPathResolution(t *testing.T) {
	v := mustParse(t, `{"a":{"b":[10,20,30]}}`)
	c := cursor.New(v).Down("a", "b", 2)
	if got := c.Value().String(); got != "30" {
		t.Fatalf("Value: got %s, want 30", got)
	}

	// Replacing part of the tree does not leave the cursor dangling.
	v.At("a").Set(jsafe.NewText("gone"))
	if got := c.Value(); got.IsValid() {
		t.Errorf("Value after replacement: got %v, want invalid", got)
	}

	// Slot restores the path for writing.
	c.Slot().Set(jsafe.NewBool(true))
	if got, want := v.String(), `{"a":{"b":[null,null,true]}}`; got != want {
		t.Errorf("After Slot: got %s, want %s", got, want)
	}
}

func TestCreate(t *testing.T) {
	v := jsafe.Obj()
	c := cursor.New(v)
	c.Create("a").Set(jsafe.NewInt(1))
	c.Up()
	c.Create("b")
	c.Create("c").Set(jsafe.NewText("x"))

	if got, want := v.String(), `{"a":1,"b":{"c":"x"}}`; got != want {
		t.Errorf("After Create: got %s, want %s", got, want)
	}
	if diff := cmp.Diff(c.Path(), []any{"b", "c"}); diff != "" {
		t.Errorf("Path (-got, +want):\n%s", diff)
	}
}
