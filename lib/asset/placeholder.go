// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package asset

import (
	_ "embed"
	"fmt"
	"sync"
)

// placeholderPNG is the built-in stand-in for image fields whose file
// could not be read: a 64×89 gray rectangle (2.5:3.5 card ratio).
//
//go:embed placeholder.png
var placeholderPNG []byte

// Placeholder returns a copy of the built-in placeholder image bytes.
// Each caller gets its own buffer because resolved assets own their
// bytes exclusively.
func Placeholder() []byte {
	return append([]byte(nil), placeholderPNG...)
}

var placeholderDims = sync.OnceValues(func() (int, int) {
	width, height, err := DecodeDims(placeholderPNG)
	if err != nil {
		// The placeholder is compiled into the binary; failing to
		// decode it is a build defect, not a runtime condition.
		panic(fmt.Sprintf("asset: embedded placeholder image undecodable: %v", err))
	}
	return width, height
})

// PlaceholderDims returns the pixel dimensions of the built-in
// placeholder image.
func PlaceholderDims() (width, height int) {
	return placeholderDims()
}
