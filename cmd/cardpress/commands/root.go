// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/bureau-foundation/cardpress/cmd/cardpress/cli"
)

// Root returns the cardpress command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "cardpress",
		Summary: "render card decks into print-ready sheets",
		Description: "cardpress resolves layered deck configurations, expands a card\n" +
			"template once per data row, and lays the rendered cards out on\n" +
			"print sheets with aligned front and back sides.",
		Subcommands: []*cli.Command{
			renderCommand(),
			resolveCommand(),
			layoutCommand(),
			versionCommand(),
		},
	}
}
