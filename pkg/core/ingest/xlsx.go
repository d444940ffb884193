package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"finlens/pkg/core/ratio"
)

// ParseXLSX reads the first sheet of an Excel workbook into a LineItemTable.
// The first row is treated as a header; every data row must carry at least
// the three recognized columns. Extra columns are ignored.
func ParseXLSX(reader io.Reader) (ratio.LineItemTable, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, structureErrorf("workbook has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return tableFromRows(rows)
}

// tableFromRows converts header+data rows into a LineItemTable, applying
// the shared column-count and coercion rules. Used by every ingest format.
func tableFromRows(rows [][]string) (ratio.LineItemTable, error) {
	if len(rows) == 0 {
		return nil, structureErrorf("sheet is empty")
	}
	if len(rows[0]) < RequiredColumns {
		return nil, structureErrorf("expected %d columns (label | prior | current), found %d",
			RequiredColumns, len(rows[0]))
	}

	table := make(ratio.LineItemTable, 0, len(rows)-1)
	for _, row := range rows[1:] {
		// excelize trims trailing empty cells; pad so sparse rows coerce to 0.
		for len(row) < RequiredColumns {
			row = append(row, "")
		}
		table = append(table, ratio.LineItem{
			Label:   row[0],
			Prior:   CoerceNumber(row[1]),
			Current: CoerceNumber(row[2]),
		})
	}
	return table, nil
}
