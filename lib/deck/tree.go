// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"strings"
)

// Tree is a resolved configuration node: an insertion-ordered mapping
// from field name to either a leaf value or a nested *Tree. Trees are
// built incrementally during resolution and read-only afterwards.
type Tree struct {
	names []string
	nodes map[string]*node
}

// node is one field slot. Slots are created sequentially before any
// concurrent fan-out; a resolution task then writes only its own
// slot's value, so no two goroutines touch shared memory.
type node struct {
	value any
}

func newTree() *Tree {
	return &Tree{nodes: make(map[string]*node)}
}

// entry creates (or returns) the slot for name, preserving first-seen
// field order.
func (t *Tree) entry(name string) *node {
	if existing, ok := t.nodes[name]; ok {
		return existing
	}
	slot := &node{}
	t.nodes[name] = slot
	t.names = append(t.names, name)
	return slot
}

// Fields returns the field names in resolution order.
func (t *Tree) Fields() []string {
	return t.names
}

// Field returns the value stored under name: a leaf value or a nested
// *Tree.
func (t *Tree) Field(name string) (any, bool) {
	slot, ok := t.nodes[name]
	if !ok {
		return nil, false
	}
	return slot.value, true
}

// Get looks up a slash-delimited absolute path such as "/fonts/title".
// It returns a *LookupError when any segment is absent or when the
// path descends through a leaf.
func (t *Tree) Get(path string) (any, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return t, nil
	}

	var current any = t
	for _, segment := range strings.Split(trimmed, "/") {
		subtree, ok := current.(*Tree)
		if !ok {
			return nil, &LookupError{Path: path, Segment: segment}
		}
		value, ok := subtree.Field(segment)
		if !ok {
			return nil, &LookupError{Path: path, Segment: segment}
		}
		current = value
	}
	return current, nil
}
