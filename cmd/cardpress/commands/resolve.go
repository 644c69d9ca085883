// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/cardpress/cmd/cardpress/cli"
	"github.com/bureau-foundation/cardpress/lib/asset"
	"github.com/bureau-foundation/cardpress/lib/deck"
)

// resolveCommand builds the resolve subcommand: resolve a deck and
// print the merged tree (or one path within it) as JSON. Assets are
// summarized rather than dumped: path, MIME type, byte length, image
// dimensions, and content digest.
func resolveCommand() *cli.Command {
	var (
		getPath  string
		override string
		serial   bool
	)

	return &cli.Command{
		Name:    "resolve",
		Summary: "resolve a deck and print the merged tree as JSON",
		Usage:   "cardpress resolve <deck> [flags]",
		Examples: []cli.Example{
			{
				Description: "inspect one value by path",
				Command:     "cardpress resolve ./mydeck --get /fonts/title",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("resolve", pflag.ContinueOnError)
			flags.StringVar(&getPath, "get", "", "print only the value at this slash-delimited path")
			flags.StringVar(&override, "override", "", "config file layered above all deck sources")
			flags.BoolVar(&serial, "serial", false, "resolve sources one at a time instead of concurrently")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("resolve takes exactly one deck path, got %d args", len(args))
			}
			loaded, err := openDeck(args[0], override)
			if err != nil {
				return err
			}
			defer loaded.Close()

			tree, err := loaded.resolve(context.Background(), serial)
			if err != nil {
				return err
			}

			value := any(tree)
			if getPath != "" {
				value, err = tree.Get(getPath)
				if err != nil {
					return err
				}
			}

			var buf bytes.Buffer
			if err := writeJSON(&buf, value); err != nil {
				return err
			}
			var indented bytes.Buffer
			if err := json.Indent(&indented, buf.Bytes(), "", "  "); err != nil {
				return fmt.Errorf("formatting output: %w", err)
			}
			indented.WriteByte('\n')
			_, err = os.Stdout.Write(indented.Bytes())
			return err
		},
	}
}

// assetSummary is the JSON shape assets print as. Raw bytes never
// appear in resolve output.
type assetSummary struct {
	Path   string `json:"path"`
	MIME   string `json:"mime,omitempty"`
	Bytes  int    `json:"bytes"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Font   string `json:"font,omitempty"`
	Digest string `json:"digest"`
}

// writeJSON serializes a resolved value, preserving tree field order
// (encoding/json would sort map keys, losing resolution order).
func writeJSON(buf *bytes.Buffer, value any) error {
	switch typed := value.(type) {
	case *deck.Tree:
		buf.WriteByte('{')
		for i, name := range typed.Fields() {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(name)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			field, _ := typed.Field(name)
			if err := writeJSON(buf, field); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, element := range typed {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, element); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case *asset.Asset:
		summary := assetSummary{
			Path:   typed.Path,
			MIME:   typed.MIME,
			Bytes:  len(typed.Bytes),
			Width:  typed.Width,
			Height: typed.Height,
			Digest: typed.DigestString(),
		}
		if typed.Face != nil {
			summary.Font = typed.Face.Name()
		}
		encoded, err := json.Marshal(summary)
		if err != nil {
			return err
		}
		buf.Write(encoded)
		return nil
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return fmt.Errorf("encoding %T: %w", typed, err)
		}
		buf.Write(encoded)
		return nil
	}
}
