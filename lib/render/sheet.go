// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/cardpress/lib/layout"
)

// Sheet assembles one SVG page from up to Capacity rendered items,
// positioned on the grid. Cells beyond the supplied items render the
// fixed filler rectangle. With reversed set, placements mirror for a
// back sheet.
func Sheet(grid *layout.Grid, items []string, reversed bool) (string, error) {
	if len(items) > grid.Capacity() {
		return "", fmt.Errorf("%d items exceed sheet capacity %d", len(items), grid.Capacity())
	}
	return page(grid, items, reversed, true), nil
}

// Pages paginates items into discrete per-page SVGs. The final partial
// page is filled with the placeholder rectangle.
func Pages(grid *layout.Grid, items []string) ([]string, error) {
	ranges := layout.Chunk(len(items), grid.Capacity())
	pages := make([]string, 0, len(ranges))
	for _, r := range ranges {
		pages = append(pages, page(grid, items[r.Start:r.End], false, true))
	}
	return pages, nil
}

// Document concatenates all pages into one multi-page output. Partial
// pages omit missing items instead of rendering filler. With
// interleave set, each front page is followed by the mirrored back
// page built from the corresponding backs chunk; backs must then match
// fronts in length.
func Document(grid *layout.Grid, fronts, backs []string, interleave bool) (string, error) {
	if interleave && len(backs) != len(fronts) {
		return "", fmt.Errorf("interleaved backs: %d backs for %d fronts", len(backs), len(fronts))
	}

	var pages []string
	for _, r := range layout.Chunk(len(fronts), grid.Capacity()) {
		pages = append(pages, page(grid, fronts[r.Start:r.End], false, false))
		if interleave {
			pages = append(pages, page(grid, backs[r.Start:r.End], true, false))
		}
	}
	return strings.Join(pages, "\n"), nil
}

// page builds one SVG sheet. Each item is positioned by wrapping it in
// a translated group; items are opaque strings as far as assembly is
// concerned.
func page(grid *layout.Grid, items []string, reversed, fill bool) string {
	spec := grid.Spec()

	var b strings.Builder
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%g\" height=\"%g\" viewBox=\"0 0 %g %g\">\n",
		spec.SheetWidth, spec.SheetHeight, spec.SheetWidth, spec.SheetHeight)
	for index := 0; index < grid.Capacity(); index++ {
		cell := grid.Cell(index, reversed)
		if index < len(items) {
			fmt.Fprintf(&b, "  <g transform=\"translate(%g %g)\">%s</g>\n", cell.X, cell.Y, items[index])
			continue
		}
		if fill {
			fmt.Fprintf(&b, "  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"#999999\" stroke-dasharray=\"4 4\"/>\n",
				cell.X, cell.Y, spec.ItemWidth, spec.ItemHeight)
		}
	}
	b.WriteString("</svg>")
	return b.String()
}
