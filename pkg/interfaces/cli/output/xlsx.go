package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/prettybom/pkg/domain/entities"
)

// SheetName is the worksheet the part list is written to
const SheetName = "Bill of materials"

var numericColumns = map[string]bool{
	entities.ColumnSets:    true,
	entities.ColumnToOrder: true,
}

func writeXLSX(w io.Writer, table *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &table.Headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for r, row := range table.Rows {
		cells := make([]any, len(row))
		for c, value := range row {
			cells[c] = value
			if numericColumns[table.Columns[c]] {
				if n, err := strconv.ParseInt(value, 10, 64); err == nil {
					cells[c] = n
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}

	if len(table.Headers) > 0 {
		last, err := excelize.CoordinatesToCellName(len(table.Headers), len(table.Rows)+1)
		if err != nil {
			return err
		}
		if err := f.AutoFilter(SheetName, "A1:"+last, nil); err != nil {
			return fmt.Errorf("failed to add filter: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
