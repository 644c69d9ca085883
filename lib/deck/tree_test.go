// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"context"
	"errors"
	"testing"
)

func TestGet(t *testing.T) {
	t.Parallel()

	layering := New()
	layering.PushPrimary(yamlSource(t, "deck", `
title: Example
viewport:
  width (number): 100
  inner:
    depth (uint): 3
`))
	tree, err := layering.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	t.Run("root", func(t *testing.T) {
		t.Parallel()
		value, err := tree.Get("/")
		if err != nil {
			t.Fatalf("Get(/): %v", err)
		}
		if value != tree {
			t.Error("Get(/) is not the tree itself")
		}
	})

	t.Run("leaf", func(t *testing.T) {
		t.Parallel()
		value, err := tree.Get("/title")
		if err != nil {
			t.Fatalf("Get(/title): %v", err)
		}
		if value != "Example" {
			t.Errorf("Get(/title) = %v, want Example", value)
		}
	})

	t.Run("deep leaf", func(t *testing.T) {
		t.Parallel()
		value, err := tree.Get("/viewport/inner/depth")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if value != uint64(3) {
			t.Errorf("Get = %v, want 3", value)
		}
	})

	t.Run("missing segment", func(t *testing.T) {
		t.Parallel()
		_, err := tree.Get("/viewport/absent")
		var lookup *LookupError
		if !errors.As(err, &lookup) {
			t.Fatalf("error = %v, want *LookupError", err)
		}
		if lookup.Segment != "absent" {
			t.Errorf("Segment = %q, want absent", lookup.Segment)
		}
	})

	t.Run("descending through a leaf", func(t *testing.T) {
		t.Parallel()
		_, err := tree.Get("/title/deeper")
		var lookup *LookupError
		if !errors.As(err, &lookup) {
			t.Fatalf("error = %v, want *LookupError", err)
		}
	})
}

func TestFieldsOrder(t *testing.T) {
	t.Parallel()

	layering := New()
	layering.PushPrimary(yamlSource(t, "high", "zeta: 1\nalpha: 2\n"))
	layering.AddFallback(yamlSource(t, "low", "alpha: 3\nmiddle: 4\n"))

	tree, err := layering.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	// Union order is first-seen across sources in priority order; the
	// defaults' fields follow the user fields.
	fields := tree.Fields()
	want := []string{"zeta", "alpha", "middle"}
	for i, name := range want {
		if fields[i] != name {
			t.Fatalf("Fields() = %v, want prefix %v", fields, want)
		}
	}
}
