// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program libjsafe builds a C shared library exposing a JSON document arena
// through handle-based functions.
//
// Build with:
//
//	go build -buildmode=c-shared -o libjsafe.so ./cmd/libjsafe
//
// All functions share a single arena, created when the library is loaded.
// Value and string handles are uint64_t, and 0 is the null handle. Every
// value handle and every string handle must be released with
// jsafe_free_value or jsafe_free_string, or by jsafe_cleanup.
//
// Diagnostics are written to stderr. Set JSAFE_LOG=debug to include reports
// of operations on invalid handles, or JSAFE_LOG=off to discard them.
package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/Cattimus/jsafe"
	"github.com/Cattimus/jsafe/arena"
)

var lib *arena.Arena

func init() {
	log := newLogger(os.Getenv("JSAFE_LOG"))
	jsafe.SetLogger(log.With("component", "jsafe"))
	lib = arena.New(&arena.Options{Logger: log.With("component", "libjsafe")})
}

func newLogger(level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	switch strings.ToLower(level) {
	case "off", "none":
		return slog.New(slog.DiscardHandler)
	case "debug":
		opts.Level = slog.LevelDebug
	case "info":
		opts.Level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func main() {}
