package internal

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadCSV reads a header-less delimited export.
func ReadCSV(path string, opts ReadOptions) ([]RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	return ParseCSV(f, opts)
}

// ParseCSV reads records from r. Input in a non-UTF-8 encoding is decoded first,
// and a leading byte order mark is dropped.
func ParseCSV(r io.Reader, opts ReadOptions) ([]RawRecord, error) {
	decoded, err := decode(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	reader.Comma = opts.Delimiter
	if reader.Comma == 0 {
		reader.Comma = ';'
	}
	reader.FieldsPerRecord = -1 // rows have one to three fields
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	var records []RawRecord
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading csv")
		}

		line, _ := reader.FieldPos(0)
		if rec, ok := newRecord(cells, line); ok {
			records = append(records, rec)
		}
	}

	return records, nil
}

func decode(r io.Reader, encoding string) (io.Reader, error) {
	name := strings.TrimSpace(encoding)
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown encoding %q", encoding)
	}
	// a byte order mark overrides the configured encoding
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}
