// Package main provides the prettybom CLI for processing CAD part list exports.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "prettybom",
		Usage: "Turn CAD part list exports into ordered, classified bills of materials",
		Description: `Imports a flat part list exported from a CAD system, resolves the part tree
from the position numbers, classifies parts as production, purchased, fastener or junk,
computes the quantities to order and exports the part list in tree order.

Workflow:
  1. Describe the CAD export in a YAML processing profile (columns, keywords, sets)
  2. Run 'prettybom process --input parts.csv --profile profile.yaml'
  3. Or run 'prettybom serve' and use the HTTP API`,
		Commands: []*cli.Command{
			processCommand(),
			serveCommand(),
			generateCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}
