// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jsafe implements an in-memory JSON document model with a lax
// parser, a strict decoder, and compact and indented formatters.
//
// # Values
//
// A *Value is a node in a document tree. Its Kind is one of Null, Number,
// Text, Bool, Object, or Array, or Invalid for the result of a failed parse
// or a read that found nothing. Object members keep the order in which they
// were first added.
//
// Reads never modify a tree and never fail loudly. Get and Index return an
// Invalid value when the member or element is not there, and the typed
// accessors report whether the value had the expected kind:
//
//	if n, ok := v.Get("size").Get("w").Number(); ok {
//	   log.Printf("width is %v", n)
//	}
//
// Writes go through At and AtIndex, which create what is missing. A missing
// member is added as null, a short array is padded with nulls, and a value of
// the wrong kind is replaced by an empty container of the right kind:
//
//	root := jsafe.Obj()
//	root.At("a").At("b").Set(jsafe.NewInt(5))  // {"a":{"b":5}}
//	root.At("list").AtIndex(2).Set(jsafe.NewText("x"))
//
// Replacing a value that held content logs a diagnostic (see SetLogger).
//
// # Parsing
//
// Parse is all-or-nothing: malformed input yields an Invalid value and a
// diagnostic, never a partial tree. It keeps string contents exactly as
// written, escapes included, so that Parse(v.String()) reproduces v for any
// v whose text came from Parse. Text set by NewText is written back as given,
// so a bare quotation mark in it must be escaped by the caller, or the value
// rendered with JSON instead.
//
//	v := jsafe.Parse(`{"a": 1, "b": [2, 3]}`)
//	if !v.IsValid() {
//	   log.Fatal("bad input")
//	}
//
// A Decoder is the strict alternative. It accepts only standard JSON, or JSON
// with comments and trailing commas when AllowJWCC is set, decodes escape
// sequences, and reports errors of type *SyntaxError with their locations.
//
// # Formatting
//
// String renders a value compactly, and JSON renders it as standard escaped
// JSON. Format and Formatter produce indented text, one member or element per
// line:
//
//	fmt.Println(jsafe.Format(v, 2, true))
//
// yields
//
//	{
//	  "a":1,
//	  "b":[
//	    2,
//	    3
//	  ]
//	}
package jsafe
