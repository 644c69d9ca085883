// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package layout computes non-overlapping grid placements for
// fixed-size items on a fixed-size sheet and paginates item sequences.
// Two strategies are supported: tight packing (the item block centered
// in the printable area with no inter-item gaps) and even spacing
// (equal gaps between and around items along each axis). Reversed
// placement mirrors columns so double-sided sheets align when flipped
// about the vertical axis.
package layout

import (
	"fmt"
	"math"
)

// Strategy selects how grid cells are distributed on the sheet.
type Strategy int

const (
	// Tight packs items with zero inter-item gap, centered as a block
	// within the printable area.
	Tight Strategy = iota

	// EvenSpacing inserts equal gaps between and around every item
	// along each axis.
	EvenSpacing
)

// String returns the config-file spelling of the strategy.
func (s Strategy) String() string {
	switch s {
	case Tight:
		return "tight"
	case EvenSpacing:
		return "evenSpacing"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy parses a config-file strategy name.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "tight":
		return Tight, nil
	case "evenSpacing":
		return EvenSpacing, nil
	default:
		return 0, fmt.Errorf("unknown layout strategy %q (want \"tight\" or \"evenSpacing\")", name)
	}
}

// Spec describes one sheet and the items to place on it. All lengths
// share one unit (typically points).
type Spec struct {
	SheetWidth, SheetHeight float64
	ItemWidth, ItemHeight   float64

	// Margin is the print margin on all four sheet edges. The
	// printable area is the sheet inset by Margin.
	Margin float64

	Strategy Strategy
}

// OverflowError reports a spec whose item footprint does not fit the
// printable area even once.
type OverflowError struct {
	Spec Spec
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("item %gx%g does not fit on sheet %gx%g with margin %g",
		e.Spec.ItemWidth, e.Spec.ItemHeight, e.Spec.SheetWidth, e.Spec.SheetHeight, e.Spec.Margin)
}

// Cell is the sheet-relative top-left offset of one grid position.
type Cell struct {
	X, Y float64
}

// Grid is a precomputed placement grid. Construct with NewGrid; a Grid
// is immutable and safe for concurrent use.
type Grid struct {
	spec    Spec
	columns int
	rows    int

	// originX/originY position the first cell; strideX/strideY advance
	// between cells. Both strategies reduce to this form.
	originX, originY float64
	strideX, strideY float64
}

// NewGrid validates spec and precomputes the placement grid. Returns
// an *OverflowError when not even one item fits the printable area, and
// an error for non-positive item dimensions.
func NewGrid(spec Spec) (*Grid, error) {
	if spec.ItemWidth <= 0 || spec.ItemHeight <= 0 {
		return nil, fmt.Errorf("item dimensions %gx%g must be positive", spec.ItemWidth, spec.ItemHeight)
	}

	printableWidth := spec.SheetWidth - 2*spec.Margin
	printableHeight := spec.SheetHeight - 2*spec.Margin
	columns := int(math.Floor(printableWidth / spec.ItemWidth))
	rows := int(math.Floor(printableHeight / spec.ItemHeight))
	if columns <= 0 || rows <= 0 {
		return nil, &OverflowError{Spec: spec}
	}

	grid := &Grid{spec: spec, columns: columns, rows: rows}
	switch spec.Strategy {
	case Tight:
		usedWidth := float64(columns) * spec.ItemWidth
		usedHeight := float64(rows) * spec.ItemHeight
		grid.originX = spec.Margin + (printableWidth-usedWidth)/2
		grid.originY = spec.Margin + (printableHeight-usedHeight)/2
		grid.strideX = spec.ItemWidth
		grid.strideY = spec.ItemHeight
	case EvenSpacing:
		hGap := (printableWidth - float64(columns)*spec.ItemWidth) / float64(columns+1)
		vGap := (printableHeight - float64(rows)*spec.ItemHeight) / float64(rows+1)
		grid.originX = spec.Margin + hGap
		grid.originY = spec.Margin + vGap
		grid.strideX = spec.ItemWidth + hGap
		grid.strideY = spec.ItemHeight + vGap
	default:
		return nil, fmt.Errorf("unknown layout strategy %v", spec.Strategy)
	}
	return grid, nil
}

// Spec returns the spec the grid was built from.
func (g *Grid) Spec() Spec {
	return g.spec
}

// Columns returns the horizontal capacity.
func (g *Grid) Columns() int {
	return g.columns
}

// Rows returns the vertical capacity.
func (g *Grid) Rows() int {
	return g.rows
}

// Capacity returns the number of items per sheet.
func (g *Grid) Capacity() int {
	return g.columns * g.rows
}

// Cell returns the placement of the index-th item in row-major order.
// With reversed set, columns are mirrored (column j places at column
// columns-1-j) while rows are unchanged, producing back-sheet layouts
// that align with front sheets when flipped about the vertical axis.
// Index must be in [0, Capacity).
func (g *Grid) Cell(index int, reversed bool) Cell {
	row := index / g.columns
	column := index % g.columns
	if reversed {
		column = g.columns - 1 - column
	}
	return Cell{
		X: g.originX + float64(column)*g.strideX,
		Y: g.originY + float64(row)*g.strideY,
	}
}

// Cells returns all placements in row-major order.
func (g *Grid) Cells(reversed bool) []Cell {
	cells := make([]Cell, g.Capacity())
	for i := range cells {
		cells[i] = g.Cell(i, reversed)
	}
	return cells
}

// Range is one page's half-open item index range.
type Range struct {
	Start, End int
}

// Len returns the number of items in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Chunk groups n items into consecutive pages of at most capacity
// items. The final range may be partial. Chunk(0, c) returns nil.
func Chunk(n, capacity int) []Range {
	if n <= 0 || capacity <= 0 {
		return nil
	}
	ranges := make([]Range, 0, (n+capacity-1)/capacity)
	for start := 0; start < n; start += capacity {
		end := start + capacity
		if end > n {
			end = n
		}
		ranges = append(ranges, Range{Start: start, End: end})
	}
	return ranges
}
