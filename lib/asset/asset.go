// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package asset represents file-backed resolved leaf values: the raw
// bytes plus derived data downstream consumers need — a MIME type, a
// data URI for inline SVG embedding, image dimensions, an optional font
// shaping handle, and a BLAKE3 content digest for display and change
// detection.
package asset

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"image"
	"mime"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"

	// Dimension decoding supports the stdlib formats plus the extended
	// set from golang.org/x/image.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/bureau-foundation/cardpress/lib/typeface"
)

// Asset is a resolved file-backed leaf value. It owns its byte buffer
// exclusively; no other field or source aliases it.
type Asset struct {
	// Path is the path the asset was resolved from, as written in the
	// source (relative to the source's resolution context).
	Path string

	// Bytes is the raw file content.
	Bytes []byte

	// MIME is the media type derived from the path's extension, or ""
	// when the extension is unknown.
	MIME string

	// DataURI is the data:<mime>;base64,<bytes> form of the content,
	// suitable for inline <image href> use in SVG.
	DataURI string

	// Width and Height are the pixel dimensions, set only for fields
	// declared with the img property.
	Width, Height int

	// Face is the font shaping handle, set only for fields declared
	// with the font property.
	Face *typeface.Face

	// Digest is the BLAKE3 digest of Bytes.
	Digest [32]byte
}

// mimeByExtension covers types the stdlib table may not know about,
// font formats foremost.
var mimeByExtension = map[string]string{
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".csv":   "text/csv",
}

// New builds an Asset from a resolved path and its bytes, deriving the
// MIME type, data URI, and content digest. Image dimensions and font
// faces are left to the caller; they depend on the field's declared
// properties, not on the bytes alone.
func New(path string, data []byte) *Asset {
	mimeType := MIMEByExtension(path)
	return &Asset{
		Path:    path,
		Bytes:   data,
		MIME:    mimeType,
		DataURI: "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
		Digest:  blake3.Sum256(data),
	}
}

// MIMEByExtension derives a media type from the path's extension.
// Returns "" when the extension is unknown; the data URI then omits
// the type and consumers fall back to the RFC 2397 default.
func MIMEByExtension(path string) string {
	extension := strings.ToLower(filepath.Ext(path))
	if mimeType, ok := mimeByExtension[extension]; ok {
		return mimeType
	}
	mimeType := mime.TypeByExtension(extension)
	// Strip parameters like "; charset=utf-8": a data URI wants the
	// bare type.
	if index := strings.IndexByte(mimeType, ';'); index >= 0 {
		mimeType = mimeType[:index]
	}
	return mimeType
}

// DigestString returns the hex form of the content digest.
func (a *Asset) DigestString() string {
	return hex.EncodeToString(a.Digest[:])
}

// DecodeDims decodes the pixel dimensions of an encoded image. PNG,
// JPEG, GIF, WEBP, BMP, and TIFF are recognized.
func DecodeDims(data []byte) (width, height int, err error) {
	config, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return config.Width, config.Height, nil
}
