package internal

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first sheet of an Excel export. Columns A to C hold label, value and currency.
func ReadXLSX(path string, _ ReadOptions) ([]RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("no sheets found in file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "reading sheet")
	}

	var records []RawRecord
	for i, row := range rows {
		if rec, ok := newRecord(row, i+1); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}
