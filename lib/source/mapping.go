// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package source

// Pair is one raw key/value entry of a mapping. The key is the raw,
// unparsed text including any property group or array marker.
type Pair struct {
	Key   string
	Value any
}

// Mapping is an insertion-ordered list of raw key/value pairs. Values
// are string, bool, int64, float64, nil, *Mapping (nested), []any, or a
// pre-resolved asset supplied by a programmatic source. Duplicate keys
// are preserved at this layer; the resolver decides between array
// accumulation and a duplicate-field error.
type Mapping struct {
	pairs []Pair
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{}
}

// Add appends a raw key/value pair, preserving insertion order.
func (m *Mapping) Add(key string, value any) {
	m.pairs = append(m.pairs, Pair{Key: key, Value: value})
}

// Pairs returns the entries in insertion order. The returned slice is
// the mapping's own backing store; callers must not modify it.
func (m *Mapping) Pairs() []Pair {
	return m.pairs
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.pairs)
}
