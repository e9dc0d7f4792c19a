package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/vsinha/prettybom/pkg/domain/entities"
)

// ErrEmptyPartList is returned for files without a header row
var ErrEmptyPartList = errors.New("part list CSV has no header row")

// HeaderPosition tells where CAD exports put the column names
type HeaderPosition string

const (
	HeaderTop    HeaderPosition = "top"
	HeaderBottom HeaderPosition = "bottom"
)

// Encoding is the character encoding of an imported file
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingCP1250 Encoding = "cp1250"
)

// Options configures the importer. Zero values mean a top header, cp1250 and comma separation.
type Options struct {
	HeaderPosition HeaderPosition `yaml:"header_position" json:"header_position"`
	Encoding       Encoding       `yaml:"encoding" json:"encoding"`
	Comma          rune           `yaml:"-" json:"-"`
}

// Validate rejects unknown header positions and encodings
func (o Options) Validate() error {
	switch o.HeaderPosition {
	case "", HeaderTop, HeaderBottom:
	default:
		return fmt.Errorf("unknown header position %q, expected %q or %q", o.HeaderPosition, HeaderTop, HeaderBottom)
	}
	switch o.Encoding {
	case "", EncodingUTF8, EncodingCP1250:
	default:
		return fmt.Errorf("unknown encoding %q, expected %q or %q", o.Encoding, EncodingUTF8, EncodingCP1250)
	}
	return nil
}

// ImportResult holds the raw rows read from one file
type ImportResult struct {
	Columns []string
	Rows    []map[string]string
	// SlicedRows counts rows skipped because they had more cells than the header
	SlicedRows int
	Source     entities.ImportSource
}

// ImportTo adds every row as a part and records columns and source on the BOM
func (r *ImportResult) ImportTo(bom *entities.BOM) {
	for _, row := range r.Rows {
		bom.CreatePart(row)
	}
	bom.ImportedColumns = append([]string(nil), r.Columns...)
	bom.ImportSources = append(bom.ImportSources, r.Source)
}

// Importer reads CAD part list exports
type Importer struct {
	options Options
}

// NewImporter creates an importer with validated options
func NewImporter(options Options) (*Importer, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if options.HeaderPosition == "" {
		options.HeaderPosition = HeaderTop
	}
	if options.Encoding == "" {
		options.Encoding = EncodingCP1250
	}
	if options.Comma == 0 {
		options.Comma = ','
	}
	return &Importer{options: options}, nil
}

// ReadFile imports a part list from a CSV file
func (i *Importer) ReadFile(filename string) (*ImportResult, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open part list file %s: %w", filename, err)
	}
	defer file.Close()

	return i.Read(file, filepath.Base(filename))
}

// Read imports a part list. name is recorded as the import source.
func (i *Importer) Read(r io.Reader, name string) (*ImportResult, error) {
	if i.options.Encoding == EncodingCP1250 {
		r = charmap.Windows1250.NewDecoder().Reader(r)
	}

	reader := csv.NewReader(r)
	reader.Comma = i.options.Comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read part list CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyPartList
	}

	// the first record fixes the width, as the CAD exports write it first
	width := len(records[0])

	var header []string
	var data [][]string
	if i.options.HeaderPosition == HeaderBottom {
		header, data = records[len(records)-1], records[:len(records)-1]
	} else {
		header, data = records[0], records[1:]
	}

	result := &ImportResult{
		Source: entities.ImportSource{Type: "file", Name: name},
	}

	if len(header) > width {
		return nil, fmt.Errorf("part list CSV header has %d columns, rows have %d", len(header), width)
	}
	result.Columns = make([]string, width)
	for col := range result.Columns {
		if col < len(header) {
			result.Columns[col] = cleanCell(header[col])
		}
	}
	if i.options.Encoding == EncodingUTF8 && width > 0 {
		result.Columns[0] = strings.TrimPrefix(result.Columns[0], "\ufeff")
	}
	disambiguate(result.Columns)

	for _, record := range data {
		if len(record) > width {
			result.SlicedRows++
			continue
		}
		row := make(map[string]string, width)
		for col, column := range result.Columns {
			value := ""
			if col < len(record) {
				value = cleanCell(record[col])
			}
			row[column] = value
		}
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}

func cleanCell(value string) string {
	value = strings.ReplaceAll(value, "\r", "")
	value = strings.ReplaceAll(value, "\n", "")
	return strings.TrimSpace(value)
}

// disambiguate renames repeated column names to "Name_2", "Name_3" and so on so no
// cell is overwritten by a later one with the same header
func disambiguate(columns []string) {
	taken := make(map[string]bool, len(columns))
	for _, column := range columns {
		taken[column] = true
	}

	seen := make(map[string]int, len(columns))
	for col, column := range columns {
		if column == "" {
			continue
		}
		seen[column]++
		if seen[column] == 1 {
			continue
		}
		for n := seen[column]; ; n++ {
			candidate := fmt.Sprintf("%s_%d", column, n)
			if !taken[candidate] {
				columns[col] = candidate
				taken[candidate] = true
				seen[column] = n
				break
			}
		}
	}
}
