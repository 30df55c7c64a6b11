// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsafe

import (
	"log/slog"
	"sync/atomic"
)

var pkgLogger atomic.Pointer[slog.Logger]

// SetLogger sets the logger used to report diagnostics, such as malformed
// input to Parse or an Append to a value that is not an array. If l == nil,
// diagnostics go to slog.Default(). SetLogger returns the previous logger,
// which may be nil.
func SetLogger(l *slog.Logger) *slog.Logger { return pkgLogger.Swap(l) }

func logger() *slog.Logger {
	if l := pkgLogger.Load(); l != nil {
		return l
	}
	return slog.Default().With("component", "jsafe")
}
