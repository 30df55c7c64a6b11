// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsafe_test

import (
	"encoding/json"
	"testing"

	"github.com/Cattimus/jsafe"
	"github.com/google/go-cmp/cmp"
)

func TestInterface(t *testing.T) {
	v := jsafe.Parse(`{"a":[1,"two",true,null],"b":{"c":-0.5}}`)
	got := v.Interface()
	want := map[string]any{
		"a": []any{1.0, "two", true, nil},
		"b": map[string]any{"c": -0.5},
	}
	if diff := cmp.Diff(got, any(want)); diff != "" {
		t.Errorf("Interface (-got, +want):\n%s", diff)
	}

	// The result agrees with encoding/json.
	var std any
	if err := json.Unmarshal([]byte(v.JSON()), &std); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(got, std); diff != "" {
		t.Errorf("Interface vs. encoding/json (-got, +want):\n%s", diff)
	}

	if x := jsafe.NewInvalid().Interface(); x != nil {
		t.Errorf("Interface of invalid: got %v, want nil", x)
	}
}

func TestFromInterface(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{nil, `null`},
		{true, `true`},
		{"s", `"s"`},
		{2.5, `2.5`},
		{float32(0.5), `0.5`},
		{int(-3), `-3`},
		{int8(-8), `-8`},
		{int16(300), `300`},
		{int32(7), `7`},
		{int64(1 << 40), `1099511627776`},
		{uint(4), `4`},
		{uint8(255), `255`},
		{uint16(65535), `65535`},
		{uint32(5), `5`},
		{uint64(6), `6`},
		{json.Number("12.25"), `12.25`},
		{[]any{1, "x", nil}, `[1,"x",null]`},
		{map[string]any{"z": 1, "a": []any{}, "m": map[string]any{}}, `{"a":[],"m":{},"z":1}`},
		{jsafe.Parse(`{"k":[true]}`), `{"k":[true]}`},
	}
	for _, tc := range tests {
		v, err := jsafe.FromInterface(tc.input)
		if err != nil {
			t.Errorf("FromInterface(%v): unexpected error: %v", tc.input, err)
			continue
		}
		if got := v.String(); got != tc.want {
			t.Errorf("FromInterface(%v): got %s, want %s", tc.input, got, tc.want)
		}
	}

	for _, bad := range []any{
		struct{}{},
		[]int{1},
		map[string]int{"a": 1},
		[]any{1, make(chan int)},
		map[string]any{"ok": 1, "bad": func() {}},
		json.Number("1x"),
	} {
		if v, err := jsafe.FromInterface(bad); err == nil {
			t.Errorf("FromInterface(%T): got %v, want error", bad, v)
		}
	}
}

func TestFromInterfaceCopies(t *testing.T) {
	orig := jsafe.Parse(`{"a":1}`)
	v, err := jsafe.FromInterface(orig)
	if err != nil {
		t.Fatalf("FromInterface: %v", err)
	}
	v.At("b").Set(jsafe.NewInt(2))
	if got := orig.String(); got != `{"a":1}` {
		t.Errorf("Original modified: %s", got)
	}
}
