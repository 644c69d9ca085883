// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/cardpress/cmd/cardpress/cli"
	"github.com/bureau-foundation/cardpress/lib/carddata"
	"github.com/bureau-foundation/cardpress/lib/deck"
	"github.com/bureau-foundation/cardpress/lib/layout"
	"github.com/bureau-foundation/cardpress/lib/render"
)

// renderCommand builds the render subcommand: resolve a deck, expand
// the card template once per data row, and place the cards on print
// sheets.
func renderCommand() *cli.Command {
	var (
		outDir    string
		backsPath string
		override  string
		cardsOnly bool
		concat    bool
		reversed  bool
		serial    bool
		logLevel  string
	)

	return &cli.Command{
		Name:    "render",
		Summary: "render a deck into print-ready SVG sheets",
		Description: "Render resolves the deck, expands the card template for every\n" +
			"row of card data, and lays the cards out on sheet pages. Output\n" +
			"files are written to the directory given by --out.",
		Usage: "cardpress render <deck> [flags]",
		Examples: []cli.Example{
			{
				Description: "render a deck directory to ./out",
				Command:     "cardpress render ./mydeck --out out",
			},
			{
				Description: "render fronts and backs into one document",
				Command:     "cardpress render deck.zip --backs backs/deck.yaml --concat --out out",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("render", pflag.ContinueOnError)
			flags.StringVar(&outDir, "out", "out", "output directory for rendered SVG files")
			flags.StringVar(&backsPath, "backs", "", "deck whose cards are the back sides")
			flags.StringVar(&override, "override", "", "config file layered above all deck sources")
			flags.BoolVar(&cardsOnly, "cards", false, "write one SVG per card instead of sheet pages")
			flags.BoolVar(&concat, "concat", false, "write all pages into a single document file")
			flags.BoolVar(&reversed, "reversed", false, "mirror columns for a back-side print run")
			flags.BoolVar(&serial, "serial", false, "resolve sources one at a time instead of concurrently")
			flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("render takes exactly one deck path, got %d args", len(args))
			}
			logger, err := cli.NewLogger(logLevel)
			if err != nil {
				return err
			}
			return runRender(args[0], renderOptions{
				outDir:    outDir,
				backsPath: backsPath,
				override:  override,
				cardsOnly: cardsOnly,
				concat:    concat,
				reversed:  reversed,
				serial:    serial,
			}, logger)
		},
	}
}

type renderOptions struct {
	outDir    string
	backsPath string
	override  string
	cardsOnly bool
	concat    bool
	reversed  bool
	serial    bool
}

func runRender(deckPath string, options renderOptions, logger *slog.Logger) error {
	ctx := context.Background()

	fronts, tree, err := renderCards(ctx, deckPath, options.override, "", options.serial)
	if err != nil {
		return err
	}
	logger.Info("deck resolved", "deck", deckPath, "cards", len(fronts))

	if err := os.MkdirAll(options.outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if options.cardsOnly {
		for i, card := range fronts {
			name := filepath.Join(options.outDir, fmt.Sprintf("card-%03d.svg", i+1))
			if err := os.WriteFile(name, []byte(card), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", name, err)
			}
			logger.Debug("card written", "file", name)
		}
		logger.Info("cards written", "count", len(fronts), "dir", options.outDir)
		return nil
	}

	grid, err := gridFromTree(tree)
	if err != nil {
		return err
	}
	logger.Debug("grid computed",
		"columns", grid.Columns(), "rows", grid.Rows(), "capacity", grid.Capacity())

	var backs []string
	if options.backsPath != "" {
		backs, _, err = renderCards(ctx, options.backsPath, "", deckPath, options.serial)
		if err != nil {
			return err
		}
	}

	if options.concat {
		document, err := render.Document(grid, fronts, backs, options.backsPath != "")
		if err != nil {
			return err
		}
		name := filepath.Join(options.outDir, "document.svg")
		if err := os.WriteFile(name, []byte(document), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		logger.Info("document written", "file", name)
		return nil
	}

	pages, err := renderPages(grid, fronts, options.reversed)
	if err != nil {
		return err
	}
	for i, page := range pages {
		name := filepath.Join(options.outDir, fmt.Sprintf("sheet-%02d.svg", i+1))
		if err := os.WriteFile(name, []byte(page), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		logger.Debug("sheet written", "file", name)
	}
	if len(backs) > 0 {
		backPages, err := renderPages(grid, backs, true)
		if err != nil {
			return err
		}
		for i, page := range backPages {
			name := filepath.Join(options.outDir, fmt.Sprintf("sheet-%02d-back.svg", i+1))
			if err := os.WriteFile(name, []byte(page), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", name, err)
			}
		}
		logger.Info("back sheets written", "count", len(backPages), "dir", options.outDir)
	}
	logger.Info("sheets written", "count", len(pages), "dir", options.outDir)
	return nil
}

// renderCards resolves the deck at deckPath and expands the template
// once per data row. fallbackPath, when non-empty, names a second deck
// whose template and cards fill in when deckPath declares none (used
// so a backs deck can share the front deck's card data).
func renderCards(ctx context.Context, deckPath, overridePath, fallbackPath string, serial bool) ([]string, *deck.Tree, error) {
	loaded, err := openDeck(deckPath, overridePath)
	if err != nil {
		return nil, nil, err
	}
	defer loaded.Close()

	tree, err := loaded.resolve(ctx, serial)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving %s: %w", deckPath, err)
	}

	template, templateErr := loaded.template(tree)
	data, dataErr := loaded.cards(tree)
	if (templateErr != nil || dataErr != nil) && fallbackPath != "" {
		fallback, err := openDeck(fallbackPath, "")
		if err != nil {
			return nil, nil, err
		}
		defer fallback.Close()
		fallbackTree, err := fallback.resolve(ctx, serial)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving %s: %w", fallbackPath, err)
		}
		if templateErr != nil {
			template, templateErr = fallback.template(fallbackTree)
		}
		if dataErr != nil {
			data, dataErr = fallback.cards(fallbackTree)
		}
	}
	if templateErr != nil {
		return nil, nil, templateErr
	}
	if dataErr != nil {
		return nil, nil, dataErr
	}

	table, err := carddata.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing card data for %s: %w", deckPath, err)
	}

	env := render.Env(tree)
	cards := make([]string, 0, len(table.Rows))
	for i, row := range table.Rows {
		card, err := render.Card(template, render.MergeRow(env, row))
		if err != nil {
			return nil, nil, fmt.Errorf("card %d: %w", i+1, err)
		}
		cards = append(cards, card)
	}
	return cards, tree, nil
}

// renderPages splits cards into sheet-sized chunks and renders each
// chunk as one page, with short pages padded by cut-guide fillers.
func renderPages(grid *layout.Grid, cards []string, reversed bool) ([]string, error) {
	if !reversed {
		return render.Pages(grid, cards)
	}
	chunks := layout.Chunk(len(cards), grid.Capacity())
	pages := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		page, err := render.Sheet(grid, cards[chunk.Start:chunk.End], true)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}
