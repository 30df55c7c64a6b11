// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsafe

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

// Kind is the type of a JSON value.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid Kind = iota // failed parse or wrong-type read
	Null                // constant: null
	Number              // floating-point number
	Text                // string
	Bool                // constant: true or false
	Object              // collection of key-value members
	Array               // sequence of values
)

var kindStr = [...]string{
	Invalid: "invalid",
	Null:    "null",
	Number:  "number",
	Text:    "text",
	Bool:    "bool",
	Object:  "object",
	Array:   "array",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[k]
}

var (
	// ErrNotArray is reported by Append when the receiver is not an array.
	ErrNotArray = errors.New("value is not an array")

	// ErrNotObject is reported by Add when the receiver is not an object.
	ErrNotObject = errors.New("value is not an object")

	// ErrCycle is reported when a value would be installed inside itself.
	ErrCycle = errors.New("value would contain itself")

	// ErrAttached is reported by Append and Add when the value to be
	// installed already belongs to the receiver's tree.
	ErrAttached = errors.New("value is already in the tree")
)

// maxPreAlloc bounds the capacity PreAlloc reserves in one call.
const maxPreAlloc = 1 << 16

// A Value is a node in a JSON document tree. The zero value is Invalid.
//
// A Value exclusively owns its children: a child belongs to exactly one
// parent, and the tree never contains a cycle. Operations that install a
// value into a tree (Set, Append, Add) take ownership of it.
//
// A Value is not safe for concurrent mutation.
type Value struct {
	kind Kind
	num  float64
	text string
	ok   bool

	// Object members, in insertion order, and an index from key to offset.
	mems []member
	keys map[string]int

	elts []*Value // Array elements
}

type member struct {
	key string
	val *Value
}

// Obj returns a new empty object.
func Obj() *Value { return &Value{kind: Object, keys: make(map[string]int)} }

// Arr returns a new empty array.
func Arr() *Value { return &Value{kind: Array} }

// NewNull returns a new null value.
func NewNull() *Value { return &Value{kind: Null} }

// NewNumber returns a new number value.
func NewNumber(f float64) *Value { return &Value{kind: Number, num: f} }

// NewInt returns a new number value with the value of z.
func NewInt(z int64) *Value { return NewNumber(float64(z)) }

// NewText returns a new text value. The contents of s are stored as given,
// and String writes them back unescaped.
func NewText(s string) *Value { return &Value{kind: Text, text: s} }

// NewBool returns a new Boolean value.
func NewBool(b bool) *Value { return &Value{kind: Bool, ok: b} }

// NewInvalid returns a new invalid value.
func NewInvalid() *Value { return new(Value) }

// Kind reports the kind of v. A nil *Value is Invalid.
func (v *Value) Kind() Kind {
	if v == nil {
		return Invalid
	}
	return v.kind
}

// IsValid reports whether v is not Invalid.
func (v *Value) IsValid() bool { return v.Kind() != Invalid }

func (v *Value) IsNull() bool   { return v.Kind() == Null }
func (v *Value) IsNumber() bool { return v.Kind() == Number }
func (v *Value) IsText() bool   { return v.Kind() == Text }
func (v *Value) IsBool() bool   { return v.Kind() == Bool }
func (v *Value) IsObject() bool { return v.Kind() == Object }
func (v *Value) IsArray() bool  { return v.Kind() == Array }

// Number reports the value of a number, and whether v is a number.
func (v *Value) Number() (float64, bool) {
	if v.Kind() != Number {
		return 0, false
	}
	return v.num, true
}

// Int64 reports the value of a number truncated toward zero, and whether v
// is a number whose value fits in an int64.
func (v *Value) Int64() (int64, bool) {
	f, ok := v.Number()
	if !ok || math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// Text reports the contents of a text value, and whether v is text.
func (v *Value) Text() (string, bool) {
	if v.Kind() != Text {
		return "", false
	}
	return v.text, true
}

// Bool reports the value of a Boolean, and whether v is a Boolean.
func (v *Value) Bool() (bool, bool) {
	if v.Kind() != Bool {
		return false, false
	}
	return v.ok, true
}

// Len reports the number of members of an object or elements of an array.
// It returns 0 for all other kinds.
func (v *Value) Len() int {
	switch v.Kind() {
	case Object:
		return len(v.mems)
	case Array:
		return len(v.elts)
	default:
		return 0
	}
}

// Has reports whether v is an object with a member named key.
func (v *Value) Has(key string) bool {
	if v.Kind() != Object {
		return false
	}
	_, ok := v.keys[key]
	return ok
}

// Get returns the value of the member of v named key. If v is not an object,
// or has no such member, Get returns a new Invalid value. Get does not modify
// the tree.
func (v *Value) Get(key string) *Value {
	if v.Kind() == Object {
		if i, ok := v.keys[key]; ok {
			return v.mems[i].val
		}
	}
	return NewInvalid()
}

// Index returns the element of v at offset i. If v is not an array, or i is
// out of range, Index returns a new Invalid value. Index does not modify the
// tree.
func (v *Value) Index(i int) *Value {
	if v.Kind() == Array && i >= 0 && i < len(v.elts) {
		return v.elts[i]
	}
	return NewInvalid()
}

// At returns the value of the member of v named key, for writing. The result
// is never nil and always belongs to the tree:
//
//   - If v is an object with a member named key, that member's value is
//     returned.
//   - If v is an object without such a member, a Null member is added.
//   - Otherwise, the prior content of v is discarded and v becomes an empty
//     object before the member is added.
//
// This allows a chain such as
//
//	root.At("a").At("b").At("c").Set(jsafe.NewInt(1))
//
// to construct every intermediate object on demand. Note that it also
// silently replaces any scalar found along the way.
func (v *Value) At(key string) *Value {
	if v.kind != Object {
		v.coerce(Object, key)
	}
	if i, ok := v.keys[key]; ok {
		return v.mems[i].val
	}
	nv := NewNull()
	v.insert(key, nv)
	return nv
}

// AtIndex returns the element of v at offset i, for writing. The result is
// never nil:
//
//   - If v is an array with at least i+1 elements, element i is returned.
//   - If v is a shorter array, it is extended with Null elements through
//     offset i, and the new element i is returned.
//   - Otherwise, the prior content of v is discarded and v becomes an empty
//     array before it is extended.
//
// A negative i leaves v unmodified; AtIndex logs a diagnostic and returns a
// detached Null value.
func (v *Value) AtIndex(i int) *Value {
	if i < 0 {
		logger().Warn("negative index for write; value not attached", "index", i)
		return NewNull()
	}
	if v.kind != Array {
		v.coerce(Array, i)
	}
	for len(v.elts) <= i {
		v.elts = append(v.elts, NewNull())
	}
	return v.elts[i]
}

// coerce replaces the content of v with an empty container of kind k.
func (v *Value) coerce(k Kind, at any) {
	switch v.kind {
	case Invalid, Null:
		// Nothing worth reporting is lost.
	default:
		logger().Warn("value overwritten by indexed write",
			"from", v.kind, "to", k, "at", at)
	}
	*v = Value{kind: k}
	if k == Object {
		v.keys = make(map[string]int)
	}
}

// Set replaces the content of v with the content of x, and returns v.
// Set takes ownership of x: afterward, x is Invalid. If x is nil, or v is x or
// one of its descendants, Set does nothing.
func (v *Value) Set(x *Value) *Value {
	if x == nil || contains(x, v) {
		return v
	}
	*v = *x
	*x = Value{}
	return v
}

// Append adds x to the end of an array. If v is not an array, Append logs a
// diagnostic, leaves v unchanged, and reports an error wrapping ErrNotArray.
// On success, v takes ownership of x.
//
// Append reports ErrAttached if x is already part of v, and ErrCycle if v is
// part of x. Both checks visit the subtrees, so appending many values to a
// large array this way costs time proportional to the size of the array on
// each call; use AtIndex(v.Len()).Set(x) when x is known to be detached.
// Append cannot detect that x belongs to a different tree; x must not.
func (v *Value) Append(x *Value) error {
	if v.Kind() != Array {
		logger().Warn("append to a value that is not an array; nothing done", "kind", v.Kind())
		return fmt.Errorf("append to %v: %w", v.Kind(), ErrNotArray)
	} else if contains(x, v) {
		return fmt.Errorf("append: %w", ErrCycle)
	} else if contains(v, x) {
		return fmt.Errorf("append: %w", ErrAttached)
	}
	v.elts = append(v.elts, orNull(x))
	return nil
}

// Add sets the member of an object named key to x, replacing any existing
// member with that name in place. If v is not an object, Add logs a
// diagnostic, leaves v unchanged, and reports an error wrapping ErrNotObject.
// On success, v takes ownership of x.
//
// As with Append, Add reports ErrAttached if x is already part of v, and
// ErrCycle if v is part of x.
func (v *Value) Add(key string, x *Value) error {
	if v.Kind() != Object {
		logger().Warn("add to a value that is not an object; nothing done", "kind", v.Kind(), "key", key)
		return fmt.Errorf("add %q to %v: %w", key, v.Kind(), ErrNotObject)
	} else if contains(x, v) {
		return fmt.Errorf("add %q: %w", key, ErrCycle)
	} else if contains(v, x) {
		return fmt.Errorf("add %q: %w", key, ErrAttached)
	}
	v.put(key, orNull(x))
	return nil
}

// put sets the member named key to x, in place if key is already present.
func (v *Value) put(key string, x *Value) {
	if i, ok := v.keys[key]; ok {
		v.mems[i].val = x
	} else {
		v.insert(key, x)
	}
}

func (v *Value) insert(key string, x *Value) {
	v.keys[key] = len(v.mems)
	v.mems = append(v.mems, member{key: key, val: x})
}

// contains reports whether needle is root or one of its descendants.
func contains(root, needle *Value) bool {
	if root == nil {
		return false
	} else if root == needle {
		return true
	}
	for _, m := range root.mems {
		if contains(m.val, needle) {
			return true
		}
	}
	for _, e := range root.elts {
		if contains(e, needle) {
			return true
		}
	}
	return false
}

func orNull(x *Value) *Value {
	if x == nil {
		return NewNull()
	}
	return x
}

// PreAlloc reserves space for n additional children of an object or array.
// It has no effect on other kinds. The reservation is only a hint: a large n
// is capped, and adding more children than were reserved is always allowed.
func (v *Value) PreAlloc(n int) {
	if n <= 0 {
		return
	}
	n = min(n, maxPreAlloc)
	switch v.Kind() {
	case Object:
		if cap(v.mems)-len(v.mems) < n {
			mems := make([]member, len(v.mems), len(v.mems)+n)
			copy(mems, v.mems)
			v.mems = mems
		}
	case Array:
		if cap(v.elts)-len(v.elts) < n {
			elts := make([]*Value, len(v.elts), len(v.elts)+n)
			copy(elts, v.elts)
			v.elts = elts
		}
	}
}

// Keys returns the member names of an object in order, or nil.
func (v *Value) Keys() []string {
	if v.Kind() != Object {
		return nil
	}
	keys := make([]string, len(v.mems))
	for i, m := range v.mems {
		keys[i] = m.key
	}
	return keys
}

// Members iterates over the members of an object in order. It yields nothing
// for other kinds.
func (v *Value) Members() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		if v.Kind() != Object {
			return
		}
		for _, m := range v.mems {
			if !yield(m.key, m.val) {
				return
			}
		}
	}
}

// Elements iterates over the elements of an array in order. It yields
// nothing for other kinds.
func (v *Value) Elements() iter.Seq2[int, *Value] {
	return func(yield func(int, *Value) bool) {
		if v.Kind() != Array {
			return
		}
		for i, e := range v.elts {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Copy returns a deep copy of v.
func (v *Value) Copy() *Value {
	if v == nil {
		return NewInvalid()
	}
	out := &Value{kind: v.kind, num: v.num, text: v.text, ok: v.ok}
	switch v.kind {
	case Object:
		out.keys = make(map[string]int, len(v.mems))
		out.mems = make([]member, len(v.mems))
		for i, m := range v.mems {
			out.mems[i] = member{key: m.key, val: m.val.Copy()}
			out.keys[m.key] = i
		}
	case Array:
		out.elts = make([]*Value, len(v.elts))
		for i, e := range v.elts {
			out.elts[i] = e.Copy()
		}
	}
	return out
}

// Equal reports whether a and b are structurally equal. Arrays are compared
// in order, object members without regard to order, and numbers by value.
// Invalid values are equal only to each other.
func Equal(a, b *Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case Number:
		return a.num == b.num
	case Text:
		return a.text == b.text
	case Bool:
		return a.ok == b.ok
	case Object:
		if len(a.mems) != len(b.mems) {
			return false
		}
		for _, m := range a.mems {
			i, ok := b.keys[m.key]
			if !ok || !Equal(m.val, b.mems[i].val) {
				return false
			}
		}
		return true
	case Array:
		if len(a.elts) != len(b.elts) {
			return false
		}
		for i := range a.elts {
			if !Equal(a.elts[i], b.elts[i]) {
				return false
			}
		}
		return true
	default:
		return true // Invalid, Null
	}
}
