// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsafe

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Interface converts v into plain Go values of the kinds produced by
// encoding/json: nil, bool, float64, string, []any, and map[string]any.
// An Invalid value converts to nil.
func (v *Value) Interface() any {
	switch v.Kind() {
	case Number:
		return v.num
	case Text:
		return v.text
	case Bool:
		return v.ok
	case Object:
		m := make(map[string]any, len(v.mems))
		for _, kv := range v.mems {
			m[kv.key] = kv.val.Interface()
		}
		return m
	case Array:
		a := make([]any, len(v.elts))
		for i, e := range v.elts {
			a[i] = e.Interface()
		}
		return a
	default:
		return nil
	}
}

// FromInterface converts a plain Go value into a Value. It accepts the kinds
// produced by Interface, as well as other integer and floating-point types,
// json.Number, and *Value (which is copied). Map keys are added in sorted
// order.
func FromInterface(x any) (*Value, error) {
	switch t := x.(type) {
	case nil:
		return NewNull(), nil
	case *Value:
		return t.Copy(), nil
	case bool:
		return NewBool(t), nil
	case string:
		return NewText(t), nil
	case float64:
		return NewNumber(t), nil
	case float32:
		return NewNumber(float64(t)), nil
	case int:
		return NewInt(int64(t)), nil
	case int8:
		return NewInt(int64(t)), nil
	case int16:
		return NewInt(int64(t)), nil
	case int32:
		return NewInt(int64(t)), nil
	case int64:
		return NewInt(t), nil
	case uint:
		return NewNumber(float64(t)), nil
	case uint8:
		return NewInt(int64(t)), nil
	case uint16:
		return NewInt(int64(t)), nil
	case uint32:
		return NewNumber(float64(t)), nil
	case uint64:
		return NewNumber(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", t, err)
		}
		return NewNumber(f), nil
	case []any:
		arr := Arr()
		arr.PreAlloc(len(t))
		for i, e := range t {
			ev, err := FromInterface(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			arr.elts = append(arr.elts, ev)
		}
		return arr, nil
	case map[string]any:
		obj := Obj()
		obj.PreAlloc(len(t))
		for _, key := range slices.Sorted(maps.Keys(t)) {
			mv, err := FromInterface(t[key])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			obj.put(key, mv)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", x)
	}
}
