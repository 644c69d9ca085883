// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fieldkey

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Key
	}{
		{
			name: "bare identifier",
			raw:  "title",
			want: Key{Name: "title"},
		},
		{
			name: "single property",
			raw:  "template (path)",
			want: Key{Name: "template", Props: []string{"path"}, Caps: Caps{Path: true}},
		},
		{
			name: "combined properties",
			raw:  "image (img,path)",
			want: Key{Name: "image", Props: []string{"img", "path"}, Caps: Caps{Image: true, Path: true}},
		},
		{
			name: "array marker",
			raw:  "body[]",
			want: Key{Name: "body", Array: true},
		},
		{
			name: "properties then array",
			raw:  "tags (uint)[]",
			want: Key{Name: "tags", Props: []string{"uint"}, Array: true, Caps: Caps{Uint: true}},
		},
		{
			name: "array then properties",
			raw:  "tags[] (uint)",
			want: Key{Name: "tags", Props: []string{"uint"}, Array: true, Caps: Caps{Uint: true}},
		},
		{
			name: "no space before group",
			raw:  "copies(uint)",
			want: Key{Name: "copies", Props: []string{"uint"}, Caps: Caps{Uint: true}},
		},
		{
			name: "spaces inside group",
			raw:  "art ( img , path )",
			want: Key{Name: "art", Props: []string{"img", "path"}, Caps: Caps{Image: true, Path: true}},
		},
		{
			name: "unrecognized property preserved",
			raw:  "flavor (mystery)",
			want: Key{Name: "flavor", Props: []string{"mystery"}},
		},
		{
			name: "number property",
			raw:  "scale (number)",
			want: Key{Name: "scale", Props: []string{"number"}, Caps: Caps{Number: true}},
		},
		{
			name: "font and path",
			raw:  "title (font,path)",
			want: Key{Name: "title", Props: []string{"font", "path"}, Caps: Caps{Font: true, Path: true}},
		},
		{
			name: "surrounding whitespace",
			raw:  "  name  ",
			want: Key{Name: "name"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(test.raw)
			if err != nil {
				t.Fatalf("Parse(%q): %v", test.raw, err)
			}
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", test.raw, got, test.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"empty key", ""},
		{"no identifier", "(path)"},
		{"leading punctuation", "!name"},
		{"trailing garbage", "name @@"},
		{"unterminated group", "name (path"},
		{"empty group", "name ()"},
		{"empty property", "name (path,)"},
		{"double group", "name (path) (img)"},
		{"double array marker", "name[][]"},
		{"uint and number", "count (uint,number)"},
		{"uint with path", "count (uint,path)"},
		{"number with font", "size (number,font)"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(test.raw)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", test.raw)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("Parse(%q) error is %T, want *ParseError", test.raw, err)
			}
			if parseErr.Key != test.raw {
				t.Errorf("ParseError.Key = %q, want %q", parseErr.Key, test.raw)
			}
		})
	}
}

func TestCapsAsset(t *testing.T) {
	t.Parallel()

	if (Caps{}).Asset() {
		t.Error("empty Caps reports Asset")
	}
	for _, caps := range []Caps{{Path: true}, {Image: true}, {Font: true}} {
		if !caps.Asset() {
			t.Errorf("Caps %+v does not report Asset", caps)
		}
	}
	if (Caps{Uint: true}).Asset() {
		t.Error("uint Caps reports Asset")
	}
}
