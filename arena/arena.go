// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package arena implements a registry of JSON documents addressed by opaque
// handles, for callers that cannot safely hold references into a document
// tree, such as code on the far side of a foreign function interface.
//
// Each value handle names a record that owns a document root and a cursor
// positioned somewhere within that root. Navigation moves the cursor, and
// reads and writes apply at the cursor. Output strings are registered in a
// separate table and addressed by string handles. No operation ever exposes
// the address of a document node.
//
// Every operation first checks its handle. An operation on the zero handle,
// or on a handle that was freed, does nothing and returns the zero value of
// its result type, except where noted.
//
// An Arena is safe for concurrent use by multiple goroutines, provided that
// no two goroutines operate on the same value handle concurrently.
package arena

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Cattimus/jsafe"
	"github.com/Cattimus/jsafe/cursor"
	"github.com/Cattimus/jsafe/path"
)

// A Handle is an opaque reference to a document record in an Arena. The zero
// Handle is never issued, and a Handle is never reused within an Arena.
type Handle uint64

// A StringHandle is an opaque reference to a string registered in an Arena.
// The zero StringHandle is never issued.
type StringHandle uint64

// Options are optional settings for an Arena. A nil *Options is ready for use
// and provides default values as described.
type Options struct {
	// Logger receives diagnostics about operations on stale handles.
	// If nil, the default logger is used.
	Logger *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.Default().With("component", "jsafe/arena")
	}
	return o.Logger
}

// An Arena owns a collection of document records and exported strings.
type Arena struct {
	log  *slog.Logger
	next atomic.Uint64 // last handle issued, shared by both registries

	vmu  sync.Mutex
	vals map[Handle]*record

	smu  sync.Mutex
	strs map[StringHandle]string
}

// A record is a document root with a cursor positioned within it.
type record struct {
	root *jsafe.Value
	cur  *cursor.Cursor
}

// New constructs a new empty Arena.
func New(opts *Options) *Arena {
	return &Arena{
		log:  opts.logger(),
		vals: make(map[Handle]*record),
		strs: make(map[StringHandle]string),
	}
}

func (a *Arena) newRecord(v *jsafe.Value) Handle {
	h := Handle(a.next.Add(1))
	rec := &record{root: v, cur: cursor.New(v)}
	a.vmu.Lock()
	defer a.vmu.Unlock()
	a.vals[h] = rec
	return h
}

func (a *Arena) lookup(op string, h Handle) (*record, bool) {
	a.vmu.Lock()
	rec, ok := a.vals[h]
	a.vmu.Unlock()
	if !ok {
		a.log.Debug("invalid value handle", "op", op, "handle", h)
	}
	return rec, ok
}

// take removes the record for h from the registry and returns its root.
func (a *Arena) take(op string, h Handle) (*jsafe.Value, bool) {
	a.vmu.Lock()
	rec, ok := a.vals[h]
	delete(a.vals, h)
	a.vmu.Unlock()
	if !ok {
		a.log.Debug("invalid value handle", "op", op, "handle", h)
		return nil, false
	}
	return rec.root, true
}

// value reports the value under the cursor of h, or Invalid.
func (a *Arena) value(op string, h Handle) *jsafe.Value {
	if rec, ok := a.lookup(op, h); ok {
		return rec.cur.Value()
	}
	return jsafe.NewInvalid()
}

func (a *Arena) addString(s string) StringHandle {
	sh := StringHandle(a.next.Add(1))
	a.smu.Lock()
	defer a.smu.Unlock()
	a.strs[sh] = s
	return sh
}

// NewRoot creates a record whose root is an empty object.
func (a *Arena) NewRoot() Handle { return a.newRecord(jsafe.Obj()) }

// NewObj creates a record holding an empty object. It differs from NewRoot
// only in intent: the result is typically passed to SetProperty or Add.
func (a *Arena) NewObj() Handle { return a.newRecord(jsafe.Obj()) }

// NewArr creates a record holding an empty array.
func (a *Arena) NewArr() Handle { return a.newRecord(jsafe.Arr()) }

// NewText creates a record holding a text value.
func (a *Arena) NewText(s string) Handle { return a.newRecord(jsafe.NewText(s)) }

// NewNull creates a record holding null.
func (a *Arena) NewNull() Handle { return a.newRecord(jsafe.NewNull()) }

// NewBool creates a record holding a Boolean value.
func (a *Arena) NewBool(b bool) Handle { return a.newRecord(jsafe.NewBool(b)) }

// NewNum creates a record holding a number.
func (a *Arena) NewNum(f float64) Handle { return a.newRecord(jsafe.NewNumber(f)) }

// Parse parses text with jsafe.Parse and creates a record holding the result.
// A record is created even if text is malformed; its value is then Invalid.
func (a *Arena) Parse(text string) Handle { return a.newRecord(jsafe.Parse(text)) }

// GetProperty moves the cursor of h to the member of its current value named
// key. If there is no such member, one is added with a null value; if the
// current value is not an object, it is replaced by an empty object first.
func (a *Arena) GetProperty(h Handle, key string) {
	if rec, ok := a.lookup("GetProperty", h); ok {
		rec.cur.Create(key)
	}
}

// GetIndex moves the cursor of h to element i of its current value. It does
// nothing unless the current value is an array with more than i elements.
func (a *Arena) GetIndex(h Handle, i int) {
	rec, ok := a.lookup("GetIndex", h)
	if !ok {
		return
	}
	if v := rec.cur.Value(); !v.IsArray() || i < 0 || i >= v.Len() {
		a.log.Debug("index not available", "handle", h, "index", i, "kind", v.Kind(), "len", v.Len())
		return
	}
	rec.cur.Down(i)
}

// Up moves the cursor of h to the parent of its current value. It does
// nothing if the cursor is at the root.
func (a *Arena) Up(h Handle) {
	if rec, ok := a.lookup("Up", h); ok {
		rec.cur.Up()
	}
}

// Reset moves the cursor of h to the root.
func (a *Arena) Reset(h Handle) {
	if rec, ok := a.lookup("Reset", h); ok {
		rec.cur.Reset()
	}
}

// Path returns the location of the cursor of h as a path expression, for
// example $.a[0]['b c']. It returns "" for an invalid handle.
func (a *Arena) Path(h Handle) string {
	if rec, ok := a.lookup("Path", h); ok {
		return path.Expr(rec.cur.Path()).String()
	}
	return ""
}

// source resolves the value to be installed by a write into h. A zero v
// denotes null. Otherwise v must name a live record other than h, which is
// removed from the registry, and its root is returned.
func (a *Arena) source(op string, h, v Handle) (*jsafe.Value, bool) {
	if v == 0 {
		return jsafe.NewNull(), true
	} else if v == h {
		a.log.Debug("value handle cannot be written into itself", "op", op, "handle", h)
		return nil, false
	}
	return a.take(op, v)
}

// SetProperty sets the member of the current value of h named key to the
// root of record v, and moves the cursor of h to that member. If the current
// value is not an object, it is replaced by an empty object first. Record v
// is consumed: its handle is no longer valid afterward. If v is zero, the
// member is set to null.
//
// If v is not valid, or v == h, SetProperty does nothing.
func (a *Arena) SetProperty(h Handle, key string, v Handle) {
	rec, ok := a.lookup("SetProperty", h)
	if !ok {
		return
	}
	src, ok := a.source("SetProperty", h, v)
	if !ok {
		return
	}
	rec.cur.Create(key).Set(src)
}

// Add appends the root of record v to the current value of h, which must be
// an array. The cursor does not move. Record v is consumed: its handle is no
// longer valid afterward. If v is zero, null is appended.
//
// If the current value is not an array, v is not valid, or v == h, Add does
// nothing and v is not consumed.
func (a *Arena) Add(h Handle, v Handle) {
	rec, ok := a.lookup("Add", h)
	if !ok {
		return
	}
	cur := rec.cur.Value()
	if !cur.IsArray() {
		a.log.Debug("add to a value that is not an array", "handle", h, "kind", cur.Kind())
		return
	}
	src, ok := a.source("Add", h, v)
	if !ok {
		return
	}
	// src was just taken from the registry, so it is detached.
	cur.AtIndex(cur.Len()).Set(src)
}

// PreAlloc reserves space for n more children of the current value of h.
func (a *Arena) PreAlloc(h Handle, n int) { a.value("PreAlloc", h).PreAlloc(n) }

// ToString registers the compact text of the current value of h, and returns
// its handle. For an invalid handle, the registered text is "Null".
func (a *Arena) ToString(h Handle) StringHandle {
	rec, ok := a.lookup("ToString", h)
	if !ok {
		return a.addString("Null")
	}
	return a.addString(rec.cur.Value().String())
}

// ToPretty registers the indented text of the current value of h, and returns
// its handle. See jsafe.Format for the meaning of width and spaces; width is
// limited to the range 1 to jsafe.MaxWidth. For an invalid handle, the
// registered text is empty.
func (a *Arena) ToPretty(h Handle, width int, spaces bool) StringHandle {
	rec, ok := a.lookup("ToPretty", h)
	if !ok {
		return a.addString("")
	}
	return a.addString(jsafe.Format(rec.cur.Value(), width, spaces))
}

// GetText registers the contents of the current value of h, which must be
// text, and returns its handle. It returns zero if h is invalid or its current
// value is not text.
func (a *Arena) GetText(h Handle) StringHandle {
	if s, ok := a.value("GetText", h).Text(); ok {
		return a.addString(s)
	}
	return 0
}

// String returns the string registered as sh, and reports whether sh is
// valid.
func (a *Arena) String(sh StringHandle) (string, bool) {
	a.smu.Lock()
	defer a.smu.Unlock()
	s, ok := a.strs[sh]
	return s, ok
}

// Len reports the number of children of the current value of h.
func (a *Arena) Len(h Handle) int { return a.value("Len", h).Len() }

// HasKey reports whether the current value of h is an object with a member
// named key.
func (a *Arena) HasKey(h Handle, key string) bool { return a.value("HasKey", h).Has(key) }

// GetNum returns the current value of h if it is a number, otherwise 0.
func (a *Arena) GetNum(h Handle) float64 {
	f, _ := a.value("GetNum", h).Number()
	return f
}

// GetBool returns the current value of h if it is a Boolean, otherwise false.
func (a *Arena) GetBool(h Handle) bool {
	b, _ := a.value("GetBool", h).Bool()
	return b
}

func (a *Arena) IsNull(h Handle) bool  { return a.value("IsNull", h).IsNull() }
func (a *Arena) IsValid(h Handle) bool { return a.value("IsValid", h).IsValid() }
func (a *Arena) IsText(h Handle) bool  { return a.value("IsText", h).IsText() }
func (a *Arena) IsNum(h Handle) bool   { return a.value("IsNum", h).IsNumber() }
func (a *Arena) IsObj(h Handle) bool   { return a.value("IsObj", h).IsObject() }
func (a *Arena) IsArr(h Handle) bool   { return a.value("IsArr", h).IsArray() }

// FreeValue removes the record for h and releases its document.
// It does nothing if h is not valid.
func (a *Arena) FreeValue(h Handle) {
	a.vmu.Lock()
	defer a.vmu.Unlock()
	delete(a.vals, h)
}

// FreeString removes the string registered as sh.
// It does nothing if sh is not valid.
func (a *Arena) FreeString(sh StringHandle) {
	a.smu.Lock()
	defer a.smu.Unlock()
	delete(a.strs, sh)
}

// Cleanup removes all records and strings from a. Handles issued before the
// call are invalid afterward. Handles are not reused after Cleanup.
func (a *Arena) Cleanup() {
	a.vmu.Lock()
	clear(a.vals)
	a.vmu.Unlock()

	a.smu.Lock()
	clear(a.strs)
	a.smu.Unlock()
}

// Values reports the number of live records in a.
func (a *Arena) Values() int {
	a.vmu.Lock()
	defer a.vmu.Unlock()
	return len(a.vals)
}

// Strings reports the number of live strings in a.
func (a *Arena) Strings() int {
	a.smu.Lock()
	defer a.smu.Unlock()
	return len(a.strs)
}
