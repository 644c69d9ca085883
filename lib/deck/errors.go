// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"errors"
	"fmt"
)

// ErrUnresolved is returned to Await callers whose path never resolved,
// typically because an error aborted the resolution pass. It guarantees
// no waiter blocks forever.
var ErrUnresolved = errors.New("resolution ended before the field resolved")

// NestingError reports a field name that is a nested mapping in one
// source and a scalar or array in another.
type NestingError struct {
	// Path is the slash path of the conflicting field.
	Path string
}

func (e *NestingError) Error() string {
	return fmt.Sprintf("inconsistent nesting at %s: field is a mapping in one source and a value in another", e.Path)
}

// DuplicateFieldError reports a non-array field name defined twice
// within the same source. Array-marked fields are exempt; their
// repeats accumulate.
type DuplicateFieldError struct {
	// Path is the slash path of the duplicated field.
	Path string

	// Source names the offending source.
	Source string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field %s in source %s", e.Path, e.Source)
}

// AssetLoadError reports a path-valued field whose bytes could not be
// read. Fields declared img substitute the built-in placeholder
// instead of surfacing this error.
type AssetLoadError struct {
	// Path is the slash path of the field.
	Path string

	// File is the asset path as written in the source.
	File string

	// Err is the underlying read error.
	Err error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("loading asset %q for %s: %v", e.File, e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// AssetDecodeError reports asset bytes that were read but could not be
// decoded as their declared type (image dimensions or font data).
type AssetDecodeError struct {
	// Path is the slash path of the field.
	Path string

	// File is the asset path as written in the source.
	File string

	// Err is the underlying decode error.
	Err error
}

func (e *AssetDecodeError) Error() string {
	return fmt.Sprintf("decoding asset %q for %s: %v", e.File, e.Path, e.Err)
}

func (e *AssetDecodeError) Unwrap() error {
	return e.Err
}

// NumericParseError reports a uint- or number-declared field whose raw
// value is not parsable.
type NumericParseError struct {
	// Path is the slash path of the field.
	Path string

	// Value is the offending raw value.
	Value any

	// Err is the underlying parse error, if any.
	Err error
}

func (e *NumericParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("numeric value %v for %s: %v", e.Value, e.Path, e.Err)
	}
	return fmt.Sprintf("numeric value %v (%T) for %s is not parsable", e.Value, e.Value, e.Path)
}

func (e *NumericParseError) Unwrap() error {
	return e.Err
}

// LookupError reports a Get address that misses the resolved tree.
type LookupError struct {
	// Path is the full address that was looked up.
	Path string

	// Segment is the path segment that failed to match.
	Segment string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("field not found: no %q along %s", e.Segment, e.Path)
}
