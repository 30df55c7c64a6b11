// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the structure of a JSON value.
//
// A Cursor records its position as a path of object keys and array offsets
// from its origin, not as a reference to a node. The path is resolved against
// the origin each time the cursor is used, so a cursor remains safe to use
// however the tree is restructured after the cursor was positioned.
package cursor

import (
	"fmt"
	"slices"

	"github.com/Cattimus/jsafe"
)

// Find traverses a sequential path into the structure of v, where path
// elements are as documented for the Cursor.Down method. This is a
// convenience wrapper for creating a cursor, applying path, and retrieving
// its value.
func Find(v *jsafe.Value, path ...any) (*jsafe.Value, error) {
	c := New(v).Down(path...)
	if err := c.Err(); err != nil {
		return nil, err
	}
	return c.Value(), nil
}

// A Cursor is a position in the structure of a *jsafe.Value.
type Cursor struct {
	org  *jsafe.Value
	path []any // string (object key) or int (array offset, >= 0)
	err  error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin *jsafe.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() *jsafe.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.path) == 0 }

// Value resolves the path of c against its origin and returns the value
// found there. If the path no longer resolves, because some value along it
// was removed or replaced by a value of another kind, Value returns a new
// Invalid value. Value does not modify the tree.
func (c *Cursor) Value() *jsafe.Value {
	cur := c.org
	for _, elt := range c.path {
		switch t := elt.(type) {
		case string:
			cur = cur.Get(t)
		case int:
			cur = cur.Index(t)
		}
		if !cur.IsValid() {
			break
		}
	}
	return cur
}

// Slot resolves the path of c against its origin for writing, and returns
// the value found there. Unlike Value, Slot recreates any part of the path
// that no longer resolves, with the semantics of jsafe.Value.At and AtIndex.
func (c *Cursor) Slot() *jsafe.Value {
	cur := c.org
	for _, elt := range c.path {
		switch t := elt.(type) {
		case string:
			cur = cur.At(t)
		case int:
			cur = cur.AtIndex(t)
		}
	}
	return cur
}

// Path returns a copy of the sequence of object keys (string) and array
// offsets (int) from the origin to the current location of c.
func (c *Cursor) Path() []any { return slices.Clone(c.path) }

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.path); n > 0 {
		c.path = c.path[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.path = c.path[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are either strings (denoting object
// keys), integers (denoting offsets into arrays), or nil (ignored). Down does
// not modify the tree. If the path cannot be completely consumed, traversal
// stops at the last value reached and an error is recorded. Use Err to
// recover the error.
//
// Negative array offsets count backward from the end (-1 is last, -2 second
// last). The cursor records the equivalent non-negative offset.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			if !cur.IsObject() {
				return c.setErrorf("cannot traverse %v with %q", cur.Kind(), t)
			} else if !cur.Has(t) {
				return c.setErrorf("key %q not found", t)
			}
			cur = cur.Get(t)

		case int:
			if !cur.IsArray() {
				return c.setErrorf("cannot traverse %v with %d", cur.Kind(), t)
			}
			i, ok := fixArrayBound(cur.Len(), t)
			if !ok {
				return c.setErrorf("array index %d out of bounds (n=%d)", t, cur.Len())
			}
			elt, cur = i, cur.Index(i)

		case nil:
			continue

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
		c.path = append(c.path, elt)
	}
	return c
}

// Create moves c to the member of the current value named key, with the
// semantics of jsafe.Value.At: a missing member is added as null, and a
// current value that is not an object is replaced by an empty object. It
// returns the value of the member.
func (c *Cursor) Create(key string) *jsafe.Value {
	c.err = nil
	v := c.Slot().At(key)
	c.path = append(c.path, key)
	return v
}

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
