// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package asset

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()

	a := New("art/hero.png", []byte("not really a png"))
	if a.MIME != "image/png" {
		t.Errorf("MIME = %q, want image/png", a.MIME)
	}
	if !strings.HasPrefix(a.DataURI, "data:image/png;base64,") {
		t.Errorf("DataURI = %q, want data:image/png;base64, prefix", a.DataURI)
	}
	if len(a.DigestString()) != 64 {
		t.Errorf("DigestString length = %d, want 64 hex chars", len(a.DigestString()))
	}

	// Same bytes, same digest; different bytes, different digest.
	same := New("other.png", []byte("not really a png"))
	if same.Digest != a.Digest {
		t.Error("identical bytes produced different digests")
	}
	other := New("other.png", []byte("different"))
	if other.Digest == a.Digest {
		t.Error("different bytes produced the same digest")
	}
}

func TestMIMEByExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"a.png", "image/png"},
		{"a.jpg", "image/jpeg"},
		{"a.svg", "image/svg+xml"},
		{"fonts/title.ttf", "font/ttf"},
		{"fonts/title.otf", "font/otf"},
		{"cards.csv", "text/csv"},
		{"noextension", ""},
		{"weird.zzz9", ""},
	}
	for _, test := range tests {
		if got := MIMEByExtension(test.path); got != test.want {
			t.Errorf("MIMEByExtension(%q) = %q, want %q", test.path, got, test.want)
		}
	}
}

func TestMIMEOmittedInDataURI(t *testing.T) {
	t.Parallel()

	a := New("noextension", []byte("x"))
	if !strings.HasPrefix(a.DataURI, "data:;base64,") {
		t.Errorf("DataURI = %q, want data:;base64, prefix for unknown type", a.DataURI)
	}
}

func TestPlaceholder(t *testing.T) {
	t.Parallel()

	data := Placeholder()
	if len(data) == 0 {
		t.Fatal("Placeholder returned no bytes")
	}

	width, height, err := DecodeDims(data)
	if err != nil {
		t.Fatalf("DecodeDims(placeholder): %v", err)
	}
	if width != 64 || height != 89 {
		t.Errorf("placeholder dims = %dx%d, want 64x89", width, height)
	}

	pw, ph := PlaceholderDims()
	if pw != width || ph != height {
		t.Errorf("PlaceholderDims = %dx%d, want %dx%d", pw, ph, width, height)
	}

	// Callers own their copy: mutating it must not leak into the
	// embedded buffer.
	data[0] = 0
	if fresh := Placeholder(); fresh[0] == 0 {
		t.Error("Placeholder returns a shared buffer")
	}
}

func TestDecodeDimsRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, _, err := DecodeDims([]byte("definitely not an image")); err == nil {
		t.Error("DecodeDims accepted garbage")
	}
}
