// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package typeface wraps parsed font data in a shaping and measurement
// handle. A Face measures kerned text advances, word-wraps to a width,
// and extracts glyph outlines — everything the SVG renderer needs to
// place and draw text without rasterizing.
//
// Faces are safe for concurrent use: the sfnt working buffer is guarded
// by a mutex, so concurrent resolution can fan out font-dependent work.
package typeface

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Face is a parsed font with measurement and outline capabilities.
type Face struct {
	font       *sfnt.Font
	name       string
	unitsPerEm int

	mu  sync.Mutex
	buf sfnt.Buffer
}

// Parse parses TTF or OTF bytes into a Face.
func Parse(data []byte) (*Face, error) {
	parsed, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	face := &Face{
		font:       parsed,
		unitsPerEm: int(parsed.UnitsPerEm()),
	}
	// The family name is display metadata; a font without a usable
	// name table still measures and draws.
	if name, err := parsed.Name(&face.buf, sfnt.NameIDFamily); err == nil {
		face.name = name
	}
	return face, nil
}

// Name returns the font family name, or "" if the font does not
// declare one.
func (f *Face) Name() string {
	return f.name
}

// UnitsPerEm returns the font's design grid resolution.
func (f *Face) UnitsPerEm() int {
	return f.unitsPerEm
}

// ppem converts a point size to the fixed-point pixels-per-em the sfnt
// API works in.
func ppem(size float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(size * 64))
}

// Advance returns the horizontal advance of text rendered at size,
// including kerning between adjacent glyphs. Runes the font has no
// glyph for measure as the font's notdef glyph.
func (f *Face) Advance(text string, size float64) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	scale := ppem(size)
	var total fixed.Int26_6
	previous := sfnt.GlyphIndex(0)
	first := true

	for _, r := range text {
		index, err := f.font.GlyphIndex(&f.buf, r)
		if err != nil {
			return 0, fmt.Errorf("glyph index for %q: %w", r, err)
		}
		advance, err := f.font.GlyphAdvance(&f.buf, index, scale, font.HintingNone)
		if err != nil {
			return 0, fmt.Errorf("glyph advance for %q: %w", r, err)
		}
		total += advance
		if !first {
			// Fonts without kerning data report an error here; that
			// just means a zero adjustment.
			if kern, err := f.font.Kern(&f.buf, previous, index, scale, font.HintingNone); err == nil {
				total += kern
			}
		}
		previous = index
		first = false
	}
	return float64(total) / 64, nil
}

// Wrap breaks text into lines no wider than maxWidth at size, splitting
// on whitespace. A single word wider than maxWidth stands alone on its
// own line rather than being broken mid-word.
func (f *Face) Wrap(text string, size, maxWidth float64) ([]string, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		width, err := f.Advance(candidate, size)
		if err != nil {
			return nil, err
		}
		if width <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current), nil
}

// Op identifies one outline segment operation.
type Op uint8

// Outline segment operations. MoveTo starts a contour; LineTo, QuadTo,
// and CubeTo extend it with one, two, and three control points.
const (
	MoveTo Op = iota
	LineTo
	QuadTo
	CubeTo
)

// Point is one outline coordinate, in pixels at the requested size,
// y-down (the sfnt convention).
type Point struct {
	X, Y float64
}

// Segment is one outline operation with its control points. Args[0] is
// always meaningful; Args[1] additionally for QuadTo; all three for
// CubeTo.
type Segment struct {
	Op   Op
	Args [3]Point
}

// GlyphPath extracts the outline of r's glyph at size. The empty slice
// (no error) means the glyph has no contours, e.g. a space.
func (f *Face) GlyphPath(r rune, size float64) ([]Segment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	index, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return nil, fmt.Errorf("glyph index for %q: %w", r, err)
	}
	loaded, err := f.font.LoadGlyph(&f.buf, index, ppem(size), nil)
	if err != nil {
		return nil, fmt.Errorf("loading glyph for %q: %w", r, err)
	}

	segments := make([]Segment, len(loaded))
	for i, segment := range loaded {
		converted := Segment{}
		switch segment.Op {
		case sfnt.SegmentOpMoveTo:
			converted.Op = MoveTo
		case sfnt.SegmentOpLineTo:
			converted.Op = LineTo
		case sfnt.SegmentOpQuadTo:
			converted.Op = QuadTo
		case sfnt.SegmentOpCubeTo:
			converted.Op = CubeTo
		default:
			return nil, fmt.Errorf("unknown segment op %d in glyph for %q", segment.Op, r)
		}
		for j, arg := range segment.Args {
			converted.Args[j] = Point{
				X: float64(arg.X) / 64,
				Y: float64(arg.Y) / 64,
			}
		}
		segments[i] = converted
	}
	return segments, nil
}
