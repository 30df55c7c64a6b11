// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program jsafe formats, queries, and edits JSON documents.
//
// Usage:
//
//	jsafe [-config file] [-color] [-v] command [opts] [args]
//
// Commands:
//
//	fmt    format documents
//	get    print the value at a path, such as $.items[0].name
//	query  evaluate an expression over a document
//	patch  apply an RFC 6902 JSON patch to documents
//	merge  apply an RFC 7396 merge patch to documents
//
// Each command reads the named files, or standard input if none are given
// or a file is named "-".
//
// Defaults for some options are read from a YAML file, named by -config or
// .jsafe.yaml in the current directory if present:
//
//	indent: 2       # indentation width
//	tabs: false     # indent with tabs
//	strict: false   # decode input strictly
//	color: true     # colorize output (default: when writing to a terminal)
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
