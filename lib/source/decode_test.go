// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeYAML(t *testing.T) {
	t.Parallel()

	t.Run("order and types preserved", func(t *testing.T) {
		t.Parallel()

		mapping, err := DecodeYAML([]byte(`
title: Example
copies (uint): 3
scale (number): 1.5
draft: true
viewport:
  width: 180
  height: 252
tags[]: first
tags[]: second
`))
		if err != nil {
			t.Fatalf("DecodeYAML: %v", err)
		}

		pairs := mapping.Pairs()
		wantKeys := []string{"title", "copies (uint)", "scale (number)", "draft", "viewport", "tags[]", "tags[]"}
		if len(pairs) != len(wantKeys) {
			t.Fatalf("got %d pairs, want %d", len(pairs), len(wantKeys))
		}
		for i, want := range wantKeys {
			if pairs[i].Key != want {
				t.Errorf("pairs[%d].Key = %q, want %q", i, pairs[i].Key, want)
			}
		}

		if pairs[0].Value != "Example" {
			t.Errorf("title = %v, want Example", pairs[0].Value)
		}
		if pairs[1].Value != int64(3) {
			t.Errorf("copies = %v (%T), want int64(3)", pairs[1].Value, pairs[1].Value)
		}
		if pairs[2].Value != 1.5 {
			t.Errorf("scale = %v, want 1.5", pairs[2].Value)
		}
		if pairs[3].Value != true {
			t.Errorf("draft = %v, want true", pairs[3].Value)
		}

		nested, ok := pairs[4].Value.(*Mapping)
		if !ok {
			t.Fatalf("viewport is %T, want *Mapping", pairs[4].Value)
		}
		if nested.Len() != 2 {
			t.Errorf("viewport has %d entries, want 2", nested.Len())
		}
	})

	t.Run("sequence value", func(t *testing.T) {
		t.Parallel()

		mapping, err := DecodeYAML([]byte("colors: [red, green, blue]\n"))
		if err != nil {
			t.Fatalf("DecodeYAML: %v", err)
		}
		value, ok := mapping.Pairs()[0].Value.([]any)
		if !ok {
			t.Fatalf("colors is %T, want []any", mapping.Pairs()[0].Value)
		}
		if len(value) != 3 || value[0] != "red" || value[2] != "blue" {
			t.Errorf("colors = %v, want [red green blue]", value)
		}
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		mapping, err := DecodeYAML(nil)
		if err != nil {
			t.Fatalf("DecodeYAML: %v", err)
		}
		if mapping.Len() != 0 {
			t.Errorf("empty document yields %d pairs", mapping.Len())
		}
	})

	t.Run("non-mapping root rejected", func(t *testing.T) {
		t.Parallel()

		if _, err := DecodeYAML([]byte("- a\n- b\n")); err == nil {
			t.Fatal("DecodeYAML accepted a sequence root")
		}
	})
}

func TestDecodeJSONC(t *testing.T) {
	t.Parallel()

	t.Run("comments and duplicates", func(t *testing.T) {
		t.Parallel()

		mapping, err := DecodeJSONC([]byte(`{
	// deck metadata
	"title": "Example",
	"copies (uint)": 3,
	"tags[]": "first",
	"tags[]": "second",
	"viewport": {"width": 180, "height": 252.5},
}`))
		if err != nil {
			t.Fatalf("DecodeJSONC: %v", err)
		}

		pairs := mapping.Pairs()
		if len(pairs) != 5 {
			t.Fatalf("got %d pairs, want 5", len(pairs))
		}
		if pairs[2].Key != "tags[]" || pairs[3].Key != "tags[]" {
			t.Errorf("duplicate keys not preserved: %q, %q", pairs[2].Key, pairs[3].Key)
		}
		if pairs[1].Value != int64(3) {
			t.Errorf("copies = %v (%T), want int64(3)", pairs[1].Value, pairs[1].Value)
		}

		nested, ok := pairs[4].Value.(*Mapping)
		if !ok {
			t.Fatalf("viewport is %T, want *Mapping", pairs[4].Value)
		}
		if nested.Pairs()[1].Value != 252.5 {
			t.Errorf("height = %v, want 252.5", nested.Pairs()[1].Value)
		}
	})

	t.Run("array value", func(t *testing.T) {
		t.Parallel()

		mapping, err := DecodeJSONC([]byte(`{"colors": ["red", "green"]}`))
		if err != nil {
			t.Fatalf("DecodeJSONC: %v", err)
		}
		value, ok := mapping.Pairs()[0].Value.([]any)
		if !ok || len(value) != 2 {
			t.Fatalf("colors = %v (%T), want two-element []any", mapping.Pairs()[0].Value, mapping.Pairs()[0].Value)
		}
	})

	t.Run("non-object root rejected", func(t *testing.T) {
		t.Parallel()

		if _, err := DecodeJSONC([]byte(`[1, 2]`)); err == nil {
			t.Fatal("DecodeJSONC accepted an array root")
		}
	})
}

func TestDecodeFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "deck.yaml")
	if err := os.WriteFile(yamlPath, []byte("title: Example\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	mapping, err := DecodeFile(yamlPath)
	if err != nil {
		t.Fatalf("DecodeFile(yaml): %v", err)
	}
	if mapping.Pairs()[0].Value != "Example" {
		t.Errorf("title = %v, want Example", mapping.Pairs()[0].Value)
	}

	jsoncPath := filepath.Join(dir, "deck.jsonc")
	if err := os.WriteFile(jsoncPath, []byte("{\"title\": \"Other\"} // trailing\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	mapping, err = DecodeFile(jsoncPath)
	if err != nil {
		t.Fatalf("DecodeFile(jsonc): %v", err)
	}
	if mapping.Pairs()[0].Value != "Other" {
		t.Errorf("title = %v, want Other", mapping.Pairs()[0].Value)
	}

	if _, err := DecodeFile(filepath.Join(dir, "deck.toml")); err == nil {
		t.Error("DecodeFile accepted an unsupported extension")
	}
}

func TestDirContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "art.txt"), []byte("bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	context := Dir(dir)
	data, err := context.ReadFile("art.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "bytes" {
		t.Errorf("ReadFile = %q, want %q", data, "bytes")
	}
	if _, err := context.ReadFile("missing.txt"); err == nil {
		t.Error("ReadFile succeeded for a missing file")
	}
}
