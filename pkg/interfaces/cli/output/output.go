package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vsinha/prettybom/pkg/domain/entities"
)

// Supported export formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// DefaultFileName is used when the BOM was not imported from a file
const DefaultFileName = "PrettyBom - Bill of materials"

// Config holds configuration for output generation
type Config struct {
	Format string
	// Columns to export, in order. Imported columns followed by the derived ones when empty.
	Columns   []string
	OutputDir string
	// FileName without extension; derived from the first imported file when empty
	FileName string
	Verbose  bool
	// Writer receives the export when OutputDir is empty, and the verbose messages. Defaults to stdout.
	Writer io.Writer
}

// Table is the tree-ordered projection of a BOM onto the exported columns
type Table struct {
	Columns []string
	Headers []string
	Rows    [][]string
}

// Project resolves every column of every part, keeping the part order
func Project(parts []*entities.Part, columns []string) *Table {
	table := &Table{
		Columns: columns,
		Headers: make([]string, len(columns)),
		Rows:    make([][]string, 0, len(parts)),
	}
	for i, column := range columns {
		table.Headers[i] = HumanizeHeader(column)
	}
	for _, part := range parts {
		row := make([]string, len(columns))
		for i, column := range columns {
			row[i] = part.Value(column)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

var lower = cases.Lower(language.Und)

// HumanizeHeader turns a column name into a header: underscores become spaces,
// the first letter is upper-cased and the rest lower-cased
func HumanizeHeader(column string) string {
	header := strings.ReplaceAll(column, "_", " ")
	first, size := utf8.DecodeRuneInString(header)
	if first == utf8.RuneError {
		return header
	}
	return strings.ToUpper(string(first)) + lower.String(header[size:])
}

// DefaultColumns returns the imported columns followed by the derived ones
func DefaultColumns(bom *entities.BOM) []string {
	columns := append([]string(nil), bom.ImportedColumns...)
	return append(columns, entities.CustomColumns...)
}

// FileName returns the export file name for a BOM and format
func FileName(bom *entities.BOM, format string) string {
	name := DefaultFileName
	if imported, ok := bom.FirstImportedFile(); ok {
		name = strings.TrimSuffix(imported, filepath.Ext(imported))
	}
	return name + "." + Extension(format)
}

// Extension returns the file extension of a format
func Extension(format string) string {
	if format == FormatText {
		return "txt"
	}
	return format
}

// ContentType returns the MIME type of a format
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Write renders the table in the given format
func Write(w io.Writer, table *Table, format string) error {
	switch format {
	case FormatText:
		return writeText(w, table)
	case FormatJSON:
		return writeJSON(w, table)
	case FormatCSV:
		return writeCSV(w, table)
	case FormatXLSX:
		return writeXLSX(w, table)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// Generate exports the BOM's parts in tree order to stdout, or to a file when OutputDir is set
func Generate(bom *entities.BOM, config Config) error {
	columns := config.Columns
	if len(columns) == 0 {
		columns = DefaultColumns(bom)
	}
	table := Project(bom.Parts(), columns)

	out := config.Writer
	if out == nil {
		out = os.Stdout
	}

	if config.OutputDir == "" {
		if config.Format == FormatXLSX {
			return fmt.Errorf("output directory required for %s format", FormatXLSX)
		}
		return Write(out, table, config.Format)
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	name := FileName(bom, config.Format)
	if config.FileName != "" {
		name = config.FileName + "." + Extension(config.Format)
	}
	filename := filepath.Join(config.OutputDir, name)

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	if err := Write(file, table, config.Format); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	if config.Verbose {
		fmt.Fprintf(out, "💾 Exported %d parts to: %s\n", len(table.Rows), filename)
	}
	return nil
}

func writeText(w io.Writer, table *Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(table.Headers, "\t"))

	separators := make([]string, len(table.Headers))
	for i, header := range table.Headers {
		separators[i] = strings.Repeat("-", utf8.RuneCountInString(header))
	}
	fmt.Fprintln(tw, strings.Join(separators, "\t"))

	for _, row := range table.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, table *Table) error {
	records := make([]map[string]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		record := make(map[string]string, len(table.Columns))
		for i, column := range table.Columns {
			record[column] = row[i]
		}
		records = append(records, record)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, table *Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Headers); err != nil {
		return err
	}
	if err := writer.WriteAll(table.Rows); err != nil {
		return err
	}
	return writer.Error()
}
