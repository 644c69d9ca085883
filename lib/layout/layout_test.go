// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"errors"
	"math"
	"testing"
)

// letterSpec is US Letter in points with poker-card items, the worked
// example the engine was sized against: 3 columns by 3 rows.
var letterSpec = Spec{
	SheetWidth:  612,
	SheetHeight: 792,
	ItemWidth:   180,
	ItemHeight:  252,
	Strategy:    Tight,
}

func TestCapacity(t *testing.T) {
	t.Parallel()

	grid, err := NewGrid(letterSpec)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if grid.Columns() != 3 {
		t.Errorf("Columns = %d, want 3", grid.Columns())
	}
	if grid.Rows() != 3 {
		t.Errorf("Rows = %d, want 3", grid.Rows())
	}
	if grid.Capacity() != 9 {
		t.Errorf("Capacity = %d, want 9", grid.Capacity())
	}
}

func TestCellsInBoundsAndDisjoint(t *testing.T) {
	t.Parallel()

	for _, strategy := range []Strategy{Tight, EvenSpacing} {
		spec := letterSpec
		spec.Strategy = strategy
		spec.Margin = 18

		grid, err := NewGrid(spec)
		if err != nil {
			t.Fatalf("NewGrid(%v): %v", strategy, err)
		}
		cells := grid.Cells(false)

		for i, cell := range cells {
			if cell.X < spec.Margin || cell.Y < spec.Margin {
				t.Errorf("%v cell %d at (%g,%g) crosses the margin", strategy, i, cell.X, cell.Y)
			}
			if cell.X+spec.ItemWidth > spec.SheetWidth-spec.Margin ||
				cell.Y+spec.ItemHeight > spec.SheetHeight-spec.Margin {
				t.Errorf("%v cell %d at (%g,%g) exceeds the printable area", strategy, i, cell.X, cell.Y)
			}
			for j, other := range cells[:i] {
				overlapX := cell.X < other.X+spec.ItemWidth && other.X < cell.X+spec.ItemWidth
				overlapY := cell.Y < other.Y+spec.ItemHeight && other.Y < cell.Y+spec.ItemHeight
				if overlapX && overlapY {
					t.Errorf("%v cells %d and %d overlap", strategy, i, j)
				}
			}
		}
	}
}

func TestTightCentering(t *testing.T) {
	t.Parallel()

	grid, err := NewGrid(letterSpec)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	// 612 - 3*180 = 72 leftover, 36 each side; 792 - 3*252 = 36, 18 each.
	first := grid.Cell(0, false)
	if first.X != 36 || first.Y != 18 {
		t.Errorf("Cell(0) = (%g,%g), want (36,18)", first.X, first.Y)
	}

	// Zero inter-item gap: adjacent columns abut exactly.
	second := grid.Cell(1, false)
	if second.X != first.X+letterSpec.ItemWidth {
		t.Errorf("Cell(1).X = %g, want %g", second.X, first.X+letterSpec.ItemWidth)
	}
}

func TestEvenSpacingGaps(t *testing.T) {
	t.Parallel()

	spec := letterSpec
	spec.Strategy = EvenSpacing
	grid, err := NewGrid(spec)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	// hSpc = (612 - 3*180) / 4 = 18; vSpc = (792 - 3*252) / 4 = 9.
	first := grid.Cell(0, false)
	if first.X != 18 || first.Y != 9 {
		t.Errorf("Cell(0) = (%g,%g), want (18,9)", first.X, first.Y)
	}
	second := grid.Cell(1, false)
	if gap := second.X - (first.X + spec.ItemWidth); math.Abs(gap-18) > 1e-9 {
		t.Errorf("inter-item gap = %g, want 18", gap)
	}

	// The gap after the last column equals the gap before the first.
	last := grid.Cell(2, false)
	trailing := spec.SheetWidth - (last.X + spec.ItemWidth)
	if math.Abs(trailing-18) > 1e-9 {
		t.Errorf("trailing gap = %g, want 18", trailing)
	}
}

func TestMirroring(t *testing.T) {
	t.Parallel()

	for _, strategy := range []Strategy{Tight, EvenSpacing} {
		spec := letterSpec
		spec.Strategy = strategy
		grid, err := NewGrid(spec)
		if err != nil {
			t.Fatalf("NewGrid(%v): %v", strategy, err)
		}

		columns := grid.Columns()
		for index := 0; index < grid.Capacity(); index++ {
			row := index / columns
			column := index % columns
			mirrored := grid.Cell(index, true)
			counterpart := grid.Cell(row*columns+(columns-1-column), false)
			if mirrored.X != counterpart.X {
				t.Errorf("%v reversed cell (%d,%d).X = %g, want %g", strategy, row, column, mirrored.X, counterpart.X)
			}
			if mirrored.Y != grid.Cell(index, false).Y {
				t.Errorf("%v reversed cell (%d,%d).Y changed", strategy, row, column)
			}
		}
	}
}

func TestOverflow(t *testing.T) {
	t.Parallel()

	spec := letterSpec
	spec.ItemWidth = 700

	_, err := NewGrid(spec)
	var overflow *OverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("NewGrid error = %v, want *OverflowError", err)
	}

	// A margin can also squeeze the item out.
	spec = letterSpec
	spec.Margin = 250
	if _, err := NewGrid(spec); !errors.As(err, &overflow) {
		t.Fatalf("NewGrid error = %v, want *OverflowError", err)
	}
}

func TestNewGridRejectsNonPositiveItems(t *testing.T) {
	t.Parallel()

	spec := letterSpec
	spec.ItemWidth = 0
	if _, err := NewGrid(spec); err == nil {
		t.Error("NewGrid accepted a zero item width")
	}
}

func TestChunk(t *testing.T) {
	t.Parallel()

	ranges := Chunk(10, 9)
	if len(ranges) != 2 {
		t.Fatalf("Chunk(10, 9) = %d ranges, want 2", len(ranges))
	}
	if ranges[0] != (Range{Start: 0, End: 9}) {
		t.Errorf("ranges[0] = %+v, want {0 9}", ranges[0])
	}
	if ranges[1] != (Range{Start: 9, End: 10}) {
		t.Errorf("ranges[1] = %+v, want {9 10}", ranges[1])
	}
	if ranges[1].Len() != 1 {
		t.Errorf("ranges[1].Len = %d, want 1", ranges[1].Len())
	}

	if Chunk(0, 9) != nil {
		t.Error("Chunk(0, 9) is not nil")
	}
	if got := Chunk(9, 9); len(got) != 1 {
		t.Errorf("Chunk(9, 9) = %d ranges, want 1", len(got))
	}
}

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	for _, want := range []Strategy{Tight, EvenSpacing} {
		got, err := ParseStrategy(want.String())
		if err != nil {
			t.Fatalf("ParseStrategy(%q): %v", want.String(), err)
		}
		if got != want {
			t.Errorf("ParseStrategy(%q) = %v, want %v", want.String(), got, want)
		}
	}
	if _, err := ParseStrategy("diagonal"); err == nil {
		t.Error("ParseStrategy accepted an unknown name")
	}
}
