// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package render expands card templates against resolved deck values
// and assembles the results into SVG sheets. The template language is
// ${name} substitution only; everything visual lives in the template
// text itself. Sheets position opaque rendered items on a layout grid
// and stay in SVG — rasterization is someone else's job.
package render

import (
	"strconv"

	"github.com/bureau-foundation/cardpress/lib/asset"
	"github.com/bureau-foundation/cardpress/lib/carddata"
	"github.com/bureau-foundation/cardpress/lib/deck"
)

// Env builds the template environment from a resolved tree's root-level
// terminal fields. Strings pass through verbatim, numerics and booleans
// format to their canonical text, and assets contribute their data URI
// (inline <image href> is what the URI exists for). Nested subtrees,
// arrays, and reserved metadata fields are not template-addressable and
// are skipped.
func Env(tree *deck.Tree) map[string]string {
	env := make(map[string]string)
	for _, name := range tree.Fields() {
		if len(name) > 0 && name[0] == '_' {
			continue
		}
		value, _ := tree.Field(name)
		switch typed := value.(type) {
		case string:
			env[name] = typed
		case bool:
			env[name] = strconv.FormatBool(typed)
		case int64:
			env[name] = strconv.FormatInt(typed, 10)
		case uint64:
			env[name] = strconv.FormatUint(typed, 10)
		case float64:
			env[name] = strconv.FormatFloat(typed, 'g', -1, 64)
		case *asset.Asset:
			env[name] = typed.DataURI
		}
	}
	return env
}

// MergeRow overlays one card's CSV values on the deck environment. Row
// values win on conflict. Neither input is modified.
func MergeRow(env map[string]string, row carddata.Row) map[string]string {
	merged := make(map[string]string, len(env)+len(row))
	for name, value := range env {
		merged[name] = value
	}
	for name, value := range row {
		merged[name] = value
	}
	return merged
}
