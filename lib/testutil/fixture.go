// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content at path under dir, creating intermediate
// directories as needed, and returns the absolute path.
func WriteFile(t *testing.T, dir, path string, content []byte) string {
	t.Helper()
	full := filepath.Join(dir, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("creating fixture directory for %s: %v", path, err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return full
}

// WriteDeck builds a deck directory fixture: a deck.yaml with the given
// config plus any extra files (asset paths relative to the deck root).
// Returns the deck directory.
func WriteDeck(t *testing.T, config string, extra map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	WriteFile(t, dir, "deck.yaml", []byte(config))
	for path, content := range extra {
		WriteFile(t, dir, path, content)
	}
	return dir
}
