package ingest

import (
	"encoding/csv"
	"fmt"
	"strings"

	"finlens/pkg/core/ratio"
)

// ParseCSV parses CSV bytes into a LineItemTable under the same contract as
// ParseXLSX: header row first, three recognized columns.
func ParseCSV(data []byte) (ratio.LineItemTable, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1 // ragged rows are padded, not rejected

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return tableFromRows(rows)
}
