// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package deck resolves layered deck configuration sources into one
// merged tree of typed values. Sources are raw ordered mappings whose
// keys carry a small declarative grammar (see lib/fieldkey); resolution
// merges them under strict consistency rules and materializes rich leaf
// values — file bytes, images with dimensions, shaped fonts — either
// through a blocking entry point or a concurrent one with per-path
// completion signals. Both entry points run the identical merge and
// leaf logic and produce identical trees.
package deck

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/bureau-foundation/cardpress/lib/source"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// parseDefaults parses the embedded defaults once per process. The
// defaults carry no file-backed fields, so their context never reads.
var parseDefaults = sync.OnceValue(func() *source.Mapping {
	mapping, err := source.DecodeYAML(defaultsYAML)
	if err != nil {
		// The defaults are compiled into the binary; failing to parse
		// them is a build defect, not a runtime condition.
		panic(fmt.Sprintf("deck: embedded defaults unparsable: %v", err))
	}
	return mapping
})

func defaultSource() source.Source {
	return source.Source{
		Name:    "built-in defaults",
		Mapping: parseDefaults(),
		Context: source.ReaderFunc("built-in defaults", func(name string) ([]byte, error) {
			return nil, fmt.Errorf("built-in defaults carry no files (asked for %q)", name)
		}),
	}
}

// Layering is the ordered set of sources for one resolution request.
// Priority order for a terminal field: the override source, then
// primary sources most-recently-pushed first, then fallback sources
// first-added first, then the built-in defaults.
//
// A Layering is built once per request and is not safe for concurrent
// mutation; resolution reads it without modifying it.
type Layering struct {
	override []source.Source
	primary  []source.Source
	fallback []source.Source
}

// New returns an empty layering. Resolving it yields the built-in
// defaults alone.
func New() *Layering {
	return &Layering{}
}

// SetOverride installs the highest-priority source, replacing any
// previous override.
func (l *Layering) SetOverride(s source.Source) {
	l.override = []source.Source{s}
}

// PushPrimary adds a primary source. Later pushes take priority over
// earlier ones.
func (l *Layering) PushPrimary(s source.Source) {
	l.primary = append(l.primary, s)
}

// AddFallback adds a fallback source. Earlier additions take priority
// over later ones.
func (l *Layering) AddFallback(s source.Source) {
	l.fallback = append(l.fallback, s)
}

// layers returns the sources in priority order, defaults last.
func (l *Layering) layers() []layer {
	layers := make([]layer, 0, len(l.override)+len(l.primary)+len(l.fallback)+1)
	for _, s := range l.override {
		layers = append(layers, layerFor(s))
	}
	for i := len(l.primary) - 1; i >= 0; i-- {
		layers = append(layers, layerFor(l.primary[i]))
	}
	for _, s := range l.fallback {
		layers = append(layers, layerFor(s))
	}
	return append(layers, layerFor(defaultSource()))
}

// layer is one mapping participating in the merge at the current
// nesting level, tagged with the context and source name it descended
// from.
type layer struct {
	mapping *source.Mapping
	context source.Context
	name    string
}

func layerFor(s source.Source) layer {
	mapping := s.Mapping
	if mapping == nil {
		mapping = source.NewMapping()
	}
	return layer{mapping: mapping, context: s.Context, name: s.Name}
}
