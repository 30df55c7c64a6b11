// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/Cattimus/jsafe/arena"
)

// cstrs holds the C copies of strings handed out by jsafe_string_data, which
// remain valid until their string handle is freed.
var cstrs = struct {
	sync.Mutex
	m map[arena.StringHandle]*C.char
}{m: make(map[arena.StringHandle]*C.char)}

func handle(h C.uint64_t) arena.Handle        { return arena.Handle(h) }
func shandle(h C.uint64_t) arena.StringHandle { return arena.StringHandle(h) }
func vh(h arena.Handle) C.uint64_t            { return C.uint64_t(h) }
func sh(h arena.StringHandle) C.uint64_t      { return C.uint64_t(h) }

func cbool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

// gostr converts s to a Go string; a NULL pointer is the empty string.
func gostr(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

//export jsafe_new_root
func jsafe_new_root() C.uint64_t { return vh(lib.NewRoot()) }

//export jsafe_new_obj
func jsafe_new_obj() C.uint64_t { return vh(lib.NewObj()) }

//export jsafe_new_arr
func jsafe_new_arr() C.uint64_t { return vh(lib.NewArr()) }

//export jsafe_new_text
func jsafe_new_text(text *C.char) C.uint64_t { return vh(lib.NewText(gostr(text))) }

//export jsafe_new_null
func jsafe_new_null() C.uint64_t { return vh(lib.NewNull()) }

//export jsafe_new_bool
func jsafe_new_bool(b C.int) C.uint64_t { return vh(lib.NewBool(b != 0)) }

//export jsafe_new_num
func jsafe_new_num(f C.double) C.uint64_t { return vh(lib.NewNum(float64(f))) }

//export jsafe_from_str
func jsafe_from_str(text *C.char) C.uint64_t { return vh(lib.Parse(gostr(text))) }

//export jsafe_get_property
func jsafe_get_property(h C.uint64_t, key *C.char) {
	if key != nil {
		lib.GetProperty(handle(h), C.GoString(key))
	}
}

//export jsafe_get_index
func jsafe_get_index(h C.uint64_t, i C.size_t) {
	if uint64(i) <= uint64(^uint(0)>>1) {
		lib.GetIndex(handle(h), int(i))
	}
}

//export jsafe_up
func jsafe_up(h C.uint64_t) { lib.Up(handle(h)) }

//export jsafe_reset
func jsafe_reset(h C.uint64_t) { lib.Reset(handle(h)) }

//export jsafe_set_property
func jsafe_set_property(h C.uint64_t, key *C.char, v C.uint64_t) {
	if key != nil {
		lib.SetProperty(handle(h), C.GoString(key), handle(v))
	}
}

//export jsafe_add
func jsafe_add(h, v C.uint64_t) { lib.Add(handle(h), handle(v)) }

//export jsafe_prealloc
func jsafe_prealloc(h C.uint64_t, n C.size_t) {
	if uint64(n) <= uint64(^uint(0)>>1) {
		lib.PreAlloc(handle(h), int(n))
	}
}

//export jsafe_get_len
func jsafe_get_len(h C.uint64_t) C.size_t { return C.size_t(lib.Len(handle(h))) }

//export jsafe_has_key
func jsafe_has_key(h C.uint64_t, key *C.char) C.int {
	if key == nil {
		return 0
	}
	return cbool(lib.HasKey(handle(h), C.GoString(key)))
}

//export jsafe_get_text
func jsafe_get_text(h C.uint64_t) C.uint64_t { return sh(lib.GetText(handle(h))) }

//export jsafe_get_num
func jsafe_get_num(h C.uint64_t) C.double { return C.double(lib.GetNum(handle(h))) }

//export jsafe_get_bool
func jsafe_get_bool(h C.uint64_t) C.int { return cbool(lib.GetBool(handle(h))) }

//export jsafe_is_null
func jsafe_is_null(h C.uint64_t) C.int { return cbool(lib.IsNull(handle(h))) }

//export jsafe_is_valid
func jsafe_is_valid(h C.uint64_t) C.int { return cbool(lib.IsValid(handle(h))) }

//export jsafe_is_text
func jsafe_is_text(h C.uint64_t) C.int { return cbool(lib.IsText(handle(h))) }

//export jsafe_is_num
func jsafe_is_num(h C.uint64_t) C.int { return cbool(lib.IsNum(handle(h))) }

//export jsafe_is_obj
func jsafe_is_obj(h C.uint64_t) C.int { return cbool(lib.IsObj(handle(h))) }

//export jsafe_is_arr
func jsafe_is_arr(h C.uint64_t) C.int { return cbool(lib.IsArr(handle(h))) }

//export jsafe_to_string
func jsafe_to_string(h C.uint64_t) C.uint64_t { return sh(lib.ToString(handle(h))) }

//export jsafe_to_pretty
func jsafe_to_pretty(h C.uint64_t, width C.int, spaces C.int) C.uint64_t {
	return sh(lib.ToPretty(handle(h), int(width), spaces != 0))
}

// jsafe_string_data returns a NUL-terminated copy of the string registered
// as s, or NULL if s is invalid. The pointer remains valid until s is freed.
//
//export jsafe_string_data
func jsafe_string_data(s C.uint64_t) *C.char {
	k := shandle(s)
	cstrs.Lock()
	defer cstrs.Unlock()
	if p, ok := cstrs.m[k]; ok {
		return p
	}
	text, ok := lib.String(k)
	if !ok {
		return nil
	}
	p := C.CString(text)
	cstrs.m[k] = p
	return p
}

//export jsafe_free_value
func jsafe_free_value(h C.uint64_t) { lib.FreeValue(handle(h)) }

//export jsafe_free_string
func jsafe_free_string(s C.uint64_t) {
	k := shandle(s)
	lib.FreeString(k)
	cstrs.Lock()
	defer cstrs.Unlock()
	if p, ok := cstrs.m[k]; ok {
		C.free(unsafe.Pointer(p))
		delete(cstrs.m, k)
	}
}

//export jsafe_cleanup
func jsafe_cleanup() {
	lib.Cleanup()
	cstrs.Lock()
	defer cstrs.Unlock()
	for k, p := range cstrs.m {
		C.free(unsafe.Pointer(p))
		delete(cstrs.m, k)
	}
}
