// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fieldkey parses the declarative key grammar used by deck
// configuration sources. A raw mapping key carries a field name, an
// optional parenthesized property group, and an optional array marker:
//
//	template (path)
//	image (img,path)
//	copies (uint)
//	body[]
//	tags (uint)[]
//
// The property group and the array marker may appear in either order.
// Properties outside the recognized set are preserved verbatim but have
// no resolution behavior. The recognized set is fixed at parse time into
// a capability struct so that downstream dispatch never consults the
// raw property strings.
package fieldkey

import (
	"fmt"
	"regexp"
	"strings"
)

// Recognized property names.
const (
	PropPath   = "path"
	PropImage  = "img"
	PropFont   = "font"
	PropUint   = "uint"
	PropNumber = "number"
)

// Caps records which recognized properties a key declares. Decided once
// at parse time; the leaf resolver dispatches on this struct exhaustively
// rather than re-inspecting property strings.
type Caps struct {
	// Path marks the value as a file path to read through the source's
	// resolution context.
	Path bool

	// Image marks the value as an image asset: pixel dimensions are
	// decoded from the bytes, and a missing file silently substitutes
	// the built-in placeholder.
	Image bool

	// Font marks the value as a font asset: the bytes are parsed into
	// a shaping handle.
	Font bool

	// Uint marks the value as a non-negative integer.
	Uint bool

	// Number marks the value as a floating-point number.
	Number bool
}

// Asset reports whether any of the file-backed capabilities are set.
func (c Caps) Asset() bool {
	return c.Path || c.Image || c.Font
}

// Key is a parsed field key.
type Key struct {
	// Name is the field name: the key's leading identifier run.
	Name string

	// Props holds every declared property in declaration order,
	// including unrecognized ones.
	Props []string

	// Array is true when the key carries the [] marker. Each occurrence
	// of an array-marked key appends one element to the field.
	Array bool

	// Caps is the recognized-property capability set.
	Caps Caps
}

// ParseError reports a raw key that does not conform to the grammar.
type ParseError struct {
	// Key is the raw key text as it appeared in the source.
	Key string

	// Reason describes what made the key unparseable.
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid field key %q: %s", e.Key, e.Reason)
}

var (
	identPattern = regexp.MustCompile(`^[0-9A-Za-z_]+`)
	propsPattern = regexp.MustCompile(`^\(([^)]*)\)`)
)

// Parse parses a raw mapping key into a Key. The key must begin with an
// identifier run ([0-9A-Za-z_]+); it may be followed by one parenthesized
// comma-separated property group and one [] marker, in either order,
// with optional spaces between tokens. Anything else is a parse error.
func Parse(raw string) (Key, error) {
	rest := strings.TrimSpace(raw)

	name := identPattern.FindString(rest)
	if name == "" {
		return Key{}, &ParseError{Key: raw, Reason: "key must begin with an identifier"}
	}
	rest = rest[len(name):]

	key := Key{Name: name}
	sawProps := false

	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			break
		}
		switch {
		case strings.HasPrefix(rest, "("):
			if sawProps {
				return Key{}, &ParseError{Key: raw, Reason: "more than one property group"}
			}
			match := propsPattern.FindStringSubmatch(rest)
			if match == nil {
				return Key{}, &ParseError{Key: raw, Reason: "unterminated property group"}
			}
			props, err := splitProps(match[1])
			if err != nil {
				return Key{}, &ParseError{Key: raw, Reason: err.Error()}
			}
			key.Props = props
			sawProps = true
			rest = rest[len(match[0]):]
		case strings.HasPrefix(rest, "[]"):
			if key.Array {
				return Key{}, &ParseError{Key: raw, Reason: "more than one [] marker"}
			}
			key.Array = true
			rest = rest[2:]
		default:
			return Key{}, &ParseError{Key: raw, Reason: fmt.Sprintf("unexpected trailing %q", rest)}
		}
	}

	caps, err := capsFor(key.Props)
	if err != nil {
		return Key{}, &ParseError{Key: raw, Reason: err.Error()}
	}
	key.Caps = caps
	return key, nil
}

// splitProps splits the interior of a property group on commas and
// trims each entry. Empty entries (including an empty group) are
// rejected: "name ()" is a typo, not a declaration.
func splitProps(interior string) ([]string, error) {
	parts := strings.Split(interior, ",")
	props := make([]string, 0, len(parts))
	for _, part := range parts {
		prop := strings.TrimSpace(part)
		if prop == "" {
			return nil, fmt.Errorf("empty property in group")
		}
		props = append(props, prop)
	}
	return props, nil
}

// capsFor folds the property list into a capability set, enforcing that
// uint and number combine with nothing else in the recognized set.
func capsFor(props []string) (Caps, error) {
	var caps Caps
	for _, prop := range props {
		switch prop {
		case PropPath:
			caps.Path = true
		case PropImage:
			caps.Image = true
		case PropFont:
			caps.Font = true
		case PropUint:
			caps.Uint = true
		case PropNumber:
			caps.Number = true
		}
	}
	if caps.Uint && caps.Number {
		return Caps{}, fmt.Errorf("uint and number are mutually exclusive")
	}
	if (caps.Uint || caps.Number) && caps.Asset() {
		return Caps{}, fmt.Errorf("numeric properties cannot combine with path, img, or font")
	}
	return caps, nil
}
