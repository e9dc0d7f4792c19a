package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/prettybom/pkg/application/services"
	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/infrastructure/config"
	"github.com/vsinha/prettybom/pkg/infrastructure/events"
	"github.com/vsinha/prettybom/pkg/infrastructure/logging"
	"github.com/vsinha/prettybom/pkg/infrastructure/metrics"
	"github.com/vsinha/prettybom/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/prettybom/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/prettybom/pkg/interfaces/cli/output"
)

// Config holds configuration for the process command
type Config struct {
	InputFile   string
	ProfileFile string
	// Overrides of the profile; empty values keep the profile's settings
	HeaderPosition   string
	Encoding         string
	MainAssemblyName string
	MainAssemblySets string
	// Columns to export; the profile's export columns when empty
	Columns   []string
	Format    string
	OutputDir string
	FileName  string
	Summary   bool
	Verbose   bool
	LogLevel  string
	// Stdout receives the export and the progress messages. Defaults to os.Stdout.
	Stdout io.Writer
}

// ProcessCommand imports a part list, processes it and exports the result
type ProcessCommand struct {
	config Config
	out    io.Writer
}

// NewProcessCommand creates a new process command with the given configuration
func NewProcessCommand(config Config) *ProcessCommand {
	out := config.Stdout
	if out == nil {
		out = os.Stdout
	}
	if config.Format == "" {
		config.Format = output.FormatText
	}
	return &ProcessCommand{
		config: config,
		out:    out,
	}
}

// Execute runs the process command
func (c *ProcessCommand) Execute(ctx context.Context) error {
	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	profile, err := c.loadProfile()
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.Config{Level: c.logLevel(), Format: "console"})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if c.config.Verbose {
		c.printHeader()
		fmt.Fprintln(c.out, "📂 Loading part list...")
	}

	importer, err := csv.NewImporter(profile.Import)
	if err != nil {
		return fmt.Errorf("invalid import options: %w", err)
	}
	imported, err := importer.ReadFile(c.config.InputFile)
	if err != nil {
		return fmt.Errorf("error loading part list: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintf(c.out, "✅ Part list loaded: %d parts, %d columns\n", len(imported.Rows), len(imported.Columns))
		if imported.SlicedRows > 0 {
			fmt.Fprintf(c.out, "⚠️  Sliced %d rows with more cells than the header\n", imported.SlicedRows)
		}
	}

	service := services.NewBOMService(
		memory.NewBOMManager(),
		events.NewInMemoryEventStore(logger),
		metrics.NewRecorder(),
		logger,
		nil,
	)

	name := profile.MainAssemblyName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(c.config.InputFile), filepath.Ext(c.config.InputFile))
	}
	bom, err := service.CreateBOM(ctx, name)
	if err != nil {
		return err
	}
	if _, err := service.Import(ctx, bom.ID, imported); err != nil {
		return fmt.Errorf("error importing part list: %w", err)
	}
	if err := service.ApplyProfile(ctx, bom.ID, profile); err != nil {
		return fmt.Errorf("error applying profile: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintln(c.out, "🔄 Processing part list...")
	}

	startTime := time.Now()
	result, err := service.Process(ctx, bom.ID)
	if err != nil {
		return fmt.Errorf("error processing part list: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintf(c.out, "✅ Processed %d parts in %v (position delimiter %q)\n\n",
			result.Parts, time.Since(startTime), result.Delimiter)
	}

	err = service.View(ctx, bom.ID, func(bom *entities.BOM) error {
		if c.config.Summary {
			if err := output.WriteSummary(c.out, output.Summarize(bom)); err != nil {
				return err
			}
			fmt.Fprintln(c.out)
		}

		columns := c.config.Columns
		if len(columns) == 0 {
			columns = profile.ExportColumns(bom)
		}
		return output.Generate(bom, output.Config{
			Format:    c.config.Format,
			Columns:   columns,
			OutputDir: c.config.OutputDir,
			FileName:  c.config.FileName,
			Verbose:   c.config.Verbose,
			Writer:    c.out,
		})
	})
	if err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintln(c.out, "🏁 Part list processing complete!")
	}
	logger.Debug("process command finished", zap.String("bom", bom.ID), zap.String("run_id", result.RunID))
	return nil
}

// validateInputs validates the command configuration
func (c *ProcessCommand) validateInputs() error {
	if c.config.InputFile == "" {
		return fmt.Errorf("must specify a part list CSV file")
	}
	if c.config.ProfileFile == "" {
		return fmt.Errorf("must specify a processing profile")
	}
	if _, err := os.Stat(c.config.InputFile); os.IsNotExist(err) {
		return fmt.Errorf("part list file not found: %s", c.config.InputFile)
	}
	switch c.config.Format {
	case output.FormatText, output.FormatJSON, output.FormatCSV, output.FormatXLSX:
	default:
		return fmt.Errorf("unsupported output format: %s", c.config.Format)
	}
	if c.config.Format == output.FormatXLSX && c.config.OutputDir == "" {
		return fmt.Errorf("the %s format requires an output directory", output.FormatXLSX)
	}
	return nil
}

// loadProfile reads the profile and applies the command line overrides
func (c *ProcessCommand) loadProfile() (*config.Profile, error) {
	profile, err := config.LoadProfile(c.config.ProfileFile)
	if err != nil {
		return nil, err
	}

	if c.config.HeaderPosition != "" {
		profile.Import.HeaderPosition = csv.HeaderPosition(c.config.HeaderPosition)
	}
	if c.config.Encoding != "" {
		profile.Import.Encoding = csv.Encoding(c.config.Encoding)
	}
	if c.config.MainAssemblyName != "" {
		profile.MainAssemblyName = c.config.MainAssemblyName
	}
	if c.config.MainAssemblySets != "" {
		profile.MainAssemblySets = config.SetsValue(c.config.MainAssemblySets)
	}

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", c.config.ProfileFile, err)
	}
	return profile, nil
}

func (c *ProcessCommand) logLevel() string {
	if c.config.LogLevel != "" {
		return c.config.LogLevel
	}
	return "warn"
}

// printHeader prints the command header information
func (c *ProcessCommand) printHeader() {
	fmt.Fprintf(c.out, "🚀 PrettyBom\n")
	fmt.Fprintf(c.out, "Part list: %s\n", c.config.InputFile)
	fmt.Fprintf(c.out, "Profile: %s\n", c.config.ProfileFile)
	fmt.Fprintf(c.out, "Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Fprintf(c.out, "Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Fprintln(c.out)
}
