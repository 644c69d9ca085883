// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"strings"
	"testing"

	"github.com/bureau-foundation/cardpress/lib/layout"
	"github.com/bureau-foundation/cardpress/lib/testutil"
)

func TestOpenDeckDirectory(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteDeck(t, "title: Alpha\n", nil)
	loaded, err := openDeck(dir, "")
	if err != nil {
		t.Fatalf("openDeck: %v", err)
	}
	defer loaded.Close()

	tree, err := loaded.resolve(context.Background(), false)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	value, err := tree.Get("/title")
	if err != nil {
		t.Fatalf("Get(/title): %v", err)
	}
	if value != "Alpha" {
		t.Errorf("/title = %v, want Alpha", value)
	}
}

func TestOpenDeckOverride(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteDeck(t, "title: Alpha\n", nil)
	overrideDir := t.TempDir()
	overridePath := testutil.WriteFile(t, overrideDir, "override.yaml", []byte("title: Beta\n"))

	loaded, err := openDeck(dir, overridePath)
	if err != nil {
		t.Fatalf("openDeck: %v", err)
	}
	defer loaded.Close()

	tree, err := loaded.resolve(context.Background(), true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	value, err := tree.Get("/title")
	if err != nil {
		t.Fatalf("Get(/title): %v", err)
	}
	if value != "Beta" {
		t.Errorf("/title = %v, want Beta (override should win)", value)
	}
}

func TestOpenDeckMissingConfig(t *testing.T) {
	t.Parallel()

	if _, err := openDeck(t.TempDir(), ""); err == nil {
		t.Error("openDeck accepted a directory without a deck config")
	}
}

func TestGridFromDefaults(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteDeck(t, "title: Alpha\n", nil)
	loaded, err := openDeck(dir, "")
	if err != nil {
		t.Fatalf("openDeck: %v", err)
	}
	defer loaded.Close()

	tree, err := loaded.resolve(context.Background(), false)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	grid, err := gridFromTree(tree)
	if err != nil {
		t.Fatalf("gridFromTree: %v", err)
	}
	// Letter sheet, poker-size viewport: 3x3.
	if grid.Columns() != 3 || grid.Rows() != 3 {
		t.Errorf("grid = %dx%d, want 3x3", grid.Columns(), grid.Rows())
	}
	if grid.Spec().Strategy != layout.Tight {
		t.Errorf("strategy = %v, want tight", grid.Spec().Strategy)
	}
}

func TestGridFromTreeRejectsBadSpacing(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteDeck(t, "sheet:\n  spacing: diagonal\n", nil)
	loaded, err := openDeck(dir, "")
	if err != nil {
		t.Fatalf("openDeck: %v", err)
	}
	defer loaded.Close()

	tree, err := loaded.resolve(context.Background(), false)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, err := gridFromTree(tree); err == nil {
		t.Error("gridFromTree accepted an unknown spacing strategy")
	}
}

func TestRenderCards(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteDeck(t,
		"template (path): card.svg\ncards (path): cards.csv\nset: Promo\n",
		map[string][]byte{
			"card.svg":  []byte(`<text>${title} / ${set}</text>`),
			"cards.csv": []byte("title\nAce\nKing\n"),
		})

	cards, _, err := renderCards(context.Background(), dir, "", "", false)
	if err != nil {
		t.Fatalf("renderCards: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	if !strings.Contains(cards[0], "Ace / Promo") {
		t.Errorf("card 0 = %q, want Ace / Promo substituted", cards[0])
	}
	if !strings.Contains(cards[1], "King / Promo") {
		t.Errorf("card 1 = %q, want King / Promo substituted", cards[1])
	}
}

func TestRenderCardsUnresolvedReference(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteDeck(t,
		"template (path): card.svg\ncards (path): cards.csv\n",
		map[string][]byte{
			"card.svg":  []byte(`<text>${missing}</text>`),
			"cards.csv": []byte("title\nAce\n"),
		})

	if _, _, err := renderCards(context.Background(), dir, "", "", false); err == nil {
		t.Error("renderCards accepted a template with an unresolved reference")
	}
}
