// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package source models the raw inputs to deck resolution: an
// insertion-ordered mapping of unparsed key/value pairs, paired with a
// resolution context that turns relative path values into bytes. A
// context is either a base directory on disk or a custom byte reader
// (used for bundled containers); everything downstream depends only on
// the single ReadFile capability, never on which variant it is.
package source

import (
	"fmt"
	"os"
	"path/filepath"
)

// Context resolves a relative path named in a source to its bytes.
type Context interface {
	// ReadFile returns the bytes for name. It fails if the entry does
	// not exist or cannot be read.
	ReadFile(name string) ([]byte, error)

	// String describes the context for error messages.
	String() string
}

// Dir returns a Context that resolves names under a base directory.
func Dir(path string) Context {
	return dirContext(path)
}

type dirContext string

func (d dirContext) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(string(d), name))
}

func (d dirContext) String() string {
	return fmt.Sprintf("directory %s", string(d))
}

// ReaderFunc returns a Context backed by a custom read function. The
// description appears in error messages (e.g. "bundle deck.zip").
func ReaderFunc(description string, fn func(name string) ([]byte, error)) Context {
	return &readerContext{description: description, fn: fn}
}

type readerContext struct {
	description string
	fn          func(string) ([]byte, error)
}

func (r *readerContext) ReadFile(name string) ([]byte, error) {
	return r.fn(name)
}

func (r *readerContext) String() string {
	return r.description
}

// Source is one raw mapping contributing candidate values to a merge,
// tagged with the context its relative paths resolve against. Sources
// are immutable once constructed.
type Source struct {
	// Name identifies the source in error messages (a file path, a
	// bundle entry, "override", ...).
	Name string

	// Mapping is the raw key/value data.
	Mapping *Mapping

	// Context resolves path-valued fields of this source.
	Context Context
}
