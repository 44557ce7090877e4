package internal

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// JSONExport is a minimal JSON form of a monthly export, for data that did not come out of a spreadsheet.
// Example:
//
//	{
//	  "rows": [
//	    {"label": "Zeitraum", "value": "01.01.2023 bis 31.01.2023"},
//	    {"label": "Food"},
//	    {"label": "Groceries", "value": "12,50", "currency": "EUR"}
//	  ]
//	}
//
// The first row carries the date range, like the first line of a csv export.
type JSONExport struct {
	Rows []JSONExportRow `json:"rows"`
}

type JSONExportRow struct {
	Label    string `json:"label"`
	Value    string `json:"value,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// ReadJSON reads an export in the JSONExport format. Line numbers are 1-based row positions.
func ReadJSON(path string, _ ReadOptions) ([]RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	var export JSONExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, errors.Wrap(err, "parsing JSON")
	}

	var records []RawRecord
	for i, row := range export.Rows {
		if rec, ok := newRecord([]string{row.Label, row.Value, row.Currency}, i+1); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}
