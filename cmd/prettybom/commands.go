package main

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/vsinha/prettybom/pkg/application/services"
	"github.com/vsinha/prettybom/pkg/application/services/processing"
	"github.com/vsinha/prettybom/pkg/interfaces/cli/commands"
	"github.com/vsinha/prettybom/pkg/interfaces/cli/output"
)

// Exit codes
const (
	exitFailure          = 1
	exitValidationFailed = 2
	exitConfiguration    = 3
)

func exitCode(err error) int {
	var validationErr *processing.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return exitValidationFailed
	case services.IsConfigurationError(err):
		return exitConfiguration
	default:
		return exitFailure
	}
}

func processCommand() *cli.Command {
	return &cli.Command{
		Name:  "process",
		Usage: "Process a part list CSV and export it in tree order",
		Description: `Imports the part list, validates it, resolves the part tree, classifies
the parts, computes the quantities to order and exports the result.

Example:
  prettybom process --input layout.csv --profile layout.yaml --format xlsx --output exports/`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Part list CSV file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "profile",
				Aliases:  []string{"p"},
				Usage:    "YAML processing profile",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "header-position",
				Usage: "Row holding the column names: top or bottom (overrides the profile)",
			},
			&cli.StringFlag{
				Name:  "encoding",
				Usage: "File encoding: cp1250 or utf-8 (overrides the profile)",
			},
			&cli.StringFlag{
				Name:  "main-assembly-name",
				Usage: "Main assembly name (overrides the profile)",
			},
			&cli.StringFlag{
				Name:  "sets",
				Usage: "Number of main assembly sets (overrides the profile)",
			},
			&cli.StringSliceFlag{
				Name:    "columns",
				Aliases: []string{"c"},
				Usage:   "Columns to export, in order (default: the profile's export columns)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, csv, xlsx",
				Value:   output.FormatText,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory; the export is written to stdout when empty",
			},
			&cli.StringFlag{
				Name:  "file-name",
				Usage: "Export file name without extension (default: the imported file name)",
			},
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "Print the parts and quantities per part type",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable verbose output",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
				Value: "warn",
			},
		},
		Action: func(c *cli.Context) error {
			cmd := commands.NewProcessCommand(commands.Config{
				InputFile:        c.String("input"),
				ProfileFile:      c.String("profile"),
				HeaderPosition:   c.String("header-position"),
				Encoding:         c.String("encoding"),
				MainAssemblyName: c.String("main-assembly-name"),
				MainAssemblySets: c.String("sets"),
				Columns:          c.StringSlice("columns"),
				Format:           c.String("format"),
				OutputDir:        c.String("output"),
				FileName:         c.String("file-name"),
				Summary:          c.Bool("summary"),
				Verbose:          c.Bool("verbose"),
				LogLevel:         c.String("log-level"),
			})
			return cmd.Execute(c.Context)
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the part list HTTP API",
		Description: `Settings are read from PRETTYBOM_ADDR, PRETTYBOM_LOG_LEVEL, PRETTYBOM_LOG_FORMAT
and PRETTYBOM_MAX_UPLOAD_BYTES, optionally loaded from .env files.

Example:
  prettybom serve --addr :8080`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "Environment files to load (default: .env when present)",
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (overrides PRETTYBOM_ADDR)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (overrides PRETTYBOM_LOG_LEVEL)",
			},
		},
		Action: func(c *cli.Context) error {
			cmd := commands.NewServeCommand(commands.ServeConfig{
				EnvFiles: c.StringSlice("env-file"),
				Addr:     c.String("addr"),
				LogLevel: c.String("log-level"),
			})
			return cmd.Execute(c.Context)
		},
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate a synthetic part list with a matching processing profile",
		Description: `Writes part_list.csv and profile.yaml into the output directory.

Example:
  prettybom generate --parts 1000 --max-depth 6 --output ./large_part_list --seed 12345`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "parts",
				Usage: "Number of parts to generate",
				Value: 100,
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "Maximum depth of the part tree",
				Value: 5,
			},
			&cli.StringFlag{
				Name:  "delimiter",
				Usage: "Position delimiter",
				Value: "-",
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Part number prefix of production parts",
				Value: "M-2022",
			},
			&cli.BoolFlag{
				Name:  "shuffle",
				Usage: "Write the rows in random order",
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Output directory for the generated files",
				Required: true,
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "Random seed for reproducible generation",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable verbose output",
			},
		},
		Action: func(c *cli.Context) error {
			cmd := commands.NewGenerateCommand(commands.GenerateConfig{
				Parts:     c.Int("parts"),
				MaxDepth:  c.Int("max-depth"),
				Delimiter: c.String("delimiter"),
				Prefix:    c.String("prefix"),
				Shuffle:   c.Bool("shuffle"),
				OutputDir: c.String("output"),
				Seed:      c.Int64("seed"),
				Verbose:   c.Bool("verbose"),
			})
			return cmd.Execute(c.Context)
		},
	}
}
