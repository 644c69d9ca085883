// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands implements the cardpress CLI commands: render,
// resolve, layout, and version. Commands load a deck (a directory or a
// .zip bundle), run it through deck resolution, and hand the merged
// tree to template expansion and page layout. All error reporting
// happens by returning the error to main; the resolution core itself
// never logs.
package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/cardpress/lib/asset"
	"github.com/bureau-foundation/cardpress/lib/bundle"
	"github.com/bureau-foundation/cardpress/lib/deck"
	"github.com/bureau-foundation/cardpress/lib/layout"
	"github.com/bureau-foundation/cardpress/lib/source"
)

// configNames are the deck config filenames probed in a deck
// directory, in preference order.
var configNames = []string{"deck.yaml", "deck.yml", "deck.json", "deck.jsonc"}

// loadedDeck is a deck opened from a directory or bundle, ready to
// resolve.
type loadedDeck struct {
	layering *deck.Layering
	bundle   *bundle.Bundle // nil for directory decks
	dir      string         // deck directory; "" for bundles
}

// openDeck loads the deck at path — a directory holding a deck config,
// or a .zip bundle — and layers an optional override config on top.
func openDeck(path, overridePath string) (*loadedDeck, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening deck: %w", err)
	}

	loaded := &loadedDeck{layering: deck.New()}
	switch {
	case !info.IsDir() && filepath.Ext(path) == ".zip":
		opened, err := bundle.Open(path)
		if err != nil {
			return nil, err
		}
		config, err := opened.ConfigSource()
		if err != nil {
			opened.Close()
			return nil, err
		}
		loaded.bundle = opened
		loaded.layering.PushPrimary(config)
	case info.IsDir():
		configPath, err := findConfig(path)
		if err != nil {
			return nil, err
		}
		mapping, err := source.DecodeFile(configPath)
		if err != nil {
			return nil, err
		}
		loaded.dir = path
		loaded.layering.PushPrimary(source.Source{
			Name:    configPath,
			Mapping: mapping,
			Context: source.Dir(path),
		})
	default:
		return nil, fmt.Errorf("deck %s is neither a directory nor a .zip bundle", path)
	}

	if overridePath != "" {
		mapping, err := source.DecodeFile(overridePath)
		if err != nil {
			loaded.Close()
			return nil, err
		}
		loaded.layering.SetOverride(source.Source{
			Name:    overridePath,
			Mapping: mapping,
			Context: source.Dir(filepath.Dir(overridePath)),
		})
	}
	return loaded, nil
}

func findConfig(dir string) (string, error) {
	for _, name := range configNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("deck directory %s has no deck config (want one of %v)", dir, configNames)
}

// Close releases the underlying bundle, if any.
func (d *loadedDeck) Close() error {
	if d.bundle == nil {
		return nil
	}
	return d.bundle.Close()
}

// resolve runs the deck through the chosen entry point.
func (d *loadedDeck) resolve(ctx context.Context, serial bool) (*deck.Tree, error) {
	if serial {
		return d.layering.Resolve(ctx)
	}
	return d.layering.ResolveConcurrent(ctx).Wait()
}

// template returns the card template text: the resolved /template
// asset when the config declares one, else the bundle's conventional
// template entry.
func (d *loadedDeck) template(tree *deck.Tree) (string, error) {
	if value, err := tree.Get("/template"); err == nil {
		resolved, ok := value.(*asset.Asset)
		if !ok {
			return "", fmt.Errorf("/template is %T, want an asset (declare it \"template (path)\")", value)
		}
		return string(resolved.Bytes), nil
	}
	if d.bundle != nil {
		data, err := d.bundle.Template()
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("deck declares no template field and is not a bundle")
}

// cards returns the card data bytes: the resolved /cards asset when
// the config declares one, else the bundle's conventional cards entry.
func (d *loadedDeck) cards(tree *deck.Tree) ([]byte, error) {
	if value, err := tree.Get("/cards"); err == nil {
		resolved, ok := value.(*asset.Asset)
		if !ok {
			return nil, fmt.Errorf("/cards is %T, want an asset (declare it \"cards (path)\")", value)
		}
		return resolved.Bytes, nil
	}
	if d.bundle != nil {
		return d.bundle.Cards()
	}
	return nil, fmt.Errorf("deck declares no cards field and is not a bundle")
}

// gridFromTree builds the layout grid from the resolved sheet and
// viewport values (all present via the built-in defaults).
func gridFromTree(tree *deck.Tree) (*layout.Grid, error) {
	spec := layout.Spec{}
	for path, target := range map[string]*float64{
		"/sheet/width":     &spec.SheetWidth,
		"/sheet/height":    &spec.SheetHeight,
		"/sheet/margin":    &spec.Margin,
		"/viewport/width":  &spec.ItemWidth,
		"/viewport/height": &spec.ItemHeight,
	} {
		value, err := numberAt(tree, path)
		if err != nil {
			return nil, err
		}
		*target = value
	}

	name, err := tree.Get("/sheet/spacing")
	if err != nil {
		return nil, err
	}
	text, ok := name.(string)
	if !ok {
		return nil, fmt.Errorf("/sheet/spacing is %T, want a strategy name", name)
	}
	spec.Strategy, err = layout.ParseStrategy(text)
	if err != nil {
		return nil, err
	}
	return layout.NewGrid(spec)
}

// numberAt reads a numeric leaf regardless of which numeric form the
// deck declared it with.
func numberAt(tree *deck.Tree, path string) (float64, error) {
	value, err := tree.Get(path)
	if err != nil {
		return 0, err
	}
	switch typed := value.(type) {
	case float64:
		return typed, nil
	case uint64:
		return float64(typed), nil
	case int64:
		return float64(typed), nil
	default:
		return 0, fmt.Errorf("%s is %T, want a number (declare it with (number) or (uint))", path, value)
	}
}
