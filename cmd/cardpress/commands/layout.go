// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/cardpress/cmd/cardpress/cli"
)

// layoutCommand builds the layout subcommand: resolve a deck's sheet
// and viewport values and print the computed grid without rendering
// any cards. Useful for checking capacity and cut positions before a
// print run.
func layoutCommand() *cli.Command {
	var (
		override string
		reversed bool
		serial   bool
	)

	return &cli.Command{
		Name:    "layout",
		Summary: "print the sheet grid a deck would render onto",
		Usage:   "cardpress layout <deck> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("layout", pflag.ContinueOnError)
			flags.StringVar(&override, "override", "", "config file layered above all deck sources")
			flags.BoolVar(&reversed, "reversed", false, "mirror columns as on a back sheet")
			flags.BoolVar(&serial, "serial", false, "resolve sources one at a time instead of concurrently")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("layout takes exactly one deck path, got %d args", len(args))
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
			grid, err := gridFromTree(tree)
			if err != nil {
				return err
			}

			spec := grid.Spec()
			header := lipgloss.NewStyle().Bold(true)
			label := lipgloss.NewStyle().Faint(true)

			fmt.Fprintln(os.Stdout, header.Render(fmt.Sprintf(
				"%d cards per sheet (%d columns x %d rows, %s)",
				grid.Capacity(), grid.Columns(), grid.Rows(), spec.Strategy)))
			fmt.Fprintf(os.Stdout, "%s %gx%g  %s %g  %s %gx%g\n",
				label.Render("sheet"), spec.SheetWidth, spec.SheetHeight,
				label.Render("margin"), spec.Margin,
				label.Render("card"), spec.ItemWidth, spec.ItemHeight)

			cellStyle := lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				Padding(0, 1).
				Align(lipgloss.Center)

			for row := 0; row < grid.Rows(); row++ {
				cells := make([]string, grid.Columns())
				for column := 0; column < grid.Columns(); column++ {
					cell := grid.Cell(row*grid.Columns()+column, reversed)
					cells[column] = cellStyle.Render(fmt.Sprintf("%g, %g", cell.X, cell.Y))
				}
				fmt.Fprintln(os.Stdout, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			}
			if reversed {
				fmt.Fprintln(os.Stdout, label.Render("columns mirrored for back-side printing"))
			}
			return nil
		},
	}
}
