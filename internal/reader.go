package internal

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ReadOptions controls how an export file is turned into records
type ReadOptions struct {
	Delimiter rune
	Encoding  string
}

// Reader reads an export file into records, in file order, with fully blank rows removed
type Reader interface {
	Read(path string, opts ReadOptions) ([]RawRecord, error)
}

// ReaderFunc is a function that implements Reader
type ReaderFunc func(path string, opts ReadOptions) ([]RawRecord, error)

func (f ReaderFunc) Read(path string, opts ReadOptions) ([]RawRecord, error) {
	return f(path, opts)
}

// readers is the registry of available readers, keyed by lower-case file extension
var readers = map[string]Reader{}

// RegisterReader registers a reader for files with the given extension (including the dot)
func RegisterReader(ext string, r Reader) {
	readers[strings.ToLower(ext)] = r
}

// GetReader returns the reader for the given file
func GetReader(path string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	r, ok := readers[ext]
	if !ok {
		return nil, fmt.Errorf("no reader for %q files (available: %v)", ext, AvailableReaders())
	}
	return r, nil
}

// AvailableReaders returns the registered file extensions
func AvailableReaders() []string {
	var exts []string
	for ext := range readers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// newRecord builds a record from a row's cells, ignoring any column after the third.
// It returns false if every cell is blank.
func newRecord(cells []string, line int) (RawRecord, bool) {
	rec := RawRecord{Line: line}
	if len(cells) > 0 {
		rec.Label = cells[0]
	}
	if len(cells) > 1 {
		rec.Value = cells[1]
	}
	if len(cells) > 2 {
		rec.Currency = cells[2]
	}

	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return rec, true
		}
	}
	return rec, false
}

func init() {
	RegisterReader(".csv", ReaderFunc(ReadCSV))
	RegisterReader(".xlsx", ReaderFunc(ReadXLSX))
	RegisterReader(".json", ReaderFunc(ReadJSON))
}
