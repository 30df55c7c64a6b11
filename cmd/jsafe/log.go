// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"log/slog"
	"os"

	"github.com/Cattimus/jsafe"
)

var logLevel = new(slog.LevelVar)

var theLog = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: logLevel,
	ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	},
}))

func init() {
	logLevel.Set(slog.LevelWarn)
	jsafe.SetLogger(theLog)
}
