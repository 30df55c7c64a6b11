// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsafe

import "github.com/Cattimus/jsafe/internal/scan"

// A LineCol describes the line number and column offset of a location in
// source text. Lines are 1-based, columns are 0-based byte offsets.
type LineCol = scan.LineCol
