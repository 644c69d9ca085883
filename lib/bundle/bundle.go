// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bundle reads deck bundles: ZIP containers holding a card
// deck's data, template, and config under conventional entry names,
// with asset paths resolving inside the container. A bundle is a
// self-contained alternative to a deck directory.
package bundle

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zip"

	"github.com/bureau-foundation/cardpress/lib/fieldkey"
	"github.com/bureau-foundation/cardpress/lib/source"
)

// Conventional entry names. Cards, Template, and Config are assumed to
// exist; Fonts is optional.
const (
	CardsEntry    = "cards.csv"
	TemplateEntry = "template.svg"
	ConfigEntry   = "deck.yaml"
	FontsEntry    = "fonts.json"
)

// Bundle is an open deck bundle.
type Bundle struct {
	name   string
	reader *zip.Reader
	closer io.Closer
}

// Open opens the bundle at path.
func Open(path string) (*Bundle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bundle: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("opening bundle %s: %w", path, err)
	}
	reader, err := zip.NewReader(file, info.Size())
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("reading bundle %s: %w", path, err)
	}
	return &Bundle{name: path, reader: reader, closer: file}, nil
}

// OpenReader opens a bundle from an in-memory or otherwise-backed
// ReaderAt. The name appears in error messages only.
func OpenReader(r io.ReaderAt, size int64, name string) (*Bundle, error) {
	reader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("reading bundle %s: %w", name, err)
	}
	return &Bundle{name: name, reader: reader}, nil
}

// Close releases the underlying file, if any.
func (b *Bundle) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// ReadFile returns the bytes of the named entry. It fails if the entry
// is absent.
func (b *Bundle) ReadFile(name string) ([]byte, error) {
	for _, file := range b.reader.File {
		if file.Name != name {
			continue
		}
		reader, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("opening entry %q in bundle %s: %w", name, b.name, err)
		}
		defer reader.Close()
		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("reading entry %q in bundle %s: %w", name, b.name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("bundle %s has no entry %q", b.name, name)
}

// Cards returns the card data entry.
func (b *Bundle) Cards() ([]byte, error) {
	return b.ReadFile(CardsEntry)
}

// Template returns the card template entry.
func (b *Bundle) Template() ([]byte, error) {
	return b.ReadFile(TemplateEntry)
}

// Context returns a resolution context that reads entries from this
// bundle, so relative asset paths in bundled sources resolve inside
// the container.
func (b *Bundle) Context() source.Context {
	return source.ReaderFunc(fmt.Sprintf("bundle %s", b.name), b.ReadFile)
}

// ConfigSource decodes the bundled deck config into a resolution
// source. When a fonts entry is present, its name→path pairs merge
// into the config's fonts mapping as "<name> (font,path)" keys; names
// the config already declares win.
func (b *Bundle) ConfigSource() (source.Source, error) {
	data, err := b.ReadFile(ConfigEntry)
	if err != nil {
		return source.Source{}, err
	}
	config, err := source.DecodeYAML(data)
	if err != nil {
		return source.Source{}, fmt.Errorf("bundle %s: %s: %w", b.name, ConfigEntry, err)
	}

	if fontsData, err := b.ReadFile(FontsEntry); err == nil {
		if err := mergeFonts(config, fontsData); err != nil {
			return source.Source{}, fmt.Errorf("bundle %s: %s: %w", b.name, FontsEntry, err)
		}
	}

	return source.Source{Name: b.name, Mapping: config, Context: b.Context()}, nil
}

// mergeFonts folds the auxiliary fonts JSON into the config's fonts
// mapping, creating the mapping if the config lacks one.
func mergeFonts(config *source.Mapping, fontsData []byte) error {
	entries, err := source.DecodeJSONC(fontsData)
	if err != nil {
		return err
	}
	if entries.Len() == 0 {
		return nil
	}

	fonts, err := fontsMapping(config)
	if err != nil {
		return err
	}

	declared := make(map[string]bool, fonts.Len())
	for _, pair := range fonts.Pairs() {
		key, err := fieldkey.Parse(pair.Key)
		if err != nil {
			// Leave malformed keys for the resolver to report with
			// a proper field path.
			continue
		}
		declared[key.Name] = true
	}

	for _, pair := range entries.Pairs() {
		path, ok := pair.Value.(string)
		if !ok {
			return fmt.Errorf("font %q: path is %T, want string", pair.Key, pair.Value)
		}
		key, err := fieldkey.Parse(pair.Key)
		if err != nil {
			return fmt.Errorf("font entry: %w", err)
		}
		if key.Array || len(key.Props) > 0 {
			return fmt.Errorf("font %q: entry names must be bare identifiers", pair.Key)
		}
		if declared[key.Name] {
			continue
		}
		fonts.Add(key.Name+" (font,path)", path)
		declared[key.Name] = true
	}
	return nil
}

// fontsMapping finds the config's fonts mapping, adding an empty one
// when absent.
func fontsMapping(config *source.Mapping) (*source.Mapping, error) {
	for _, pair := range config.Pairs() {
		key, err := fieldkey.Parse(pair.Key)
		if err != nil || key.Name != "fonts" {
			continue
		}
		fonts, ok := pair.Value.(*source.Mapping)
		if !ok {
			return nil, fmt.Errorf("config field %q is not a mapping", pair.Key)
		}
		return fonts, nil
	}
	fonts := source.NewMapping()
	config.Add("fonts", fonts)
	return fonts, nil
}
