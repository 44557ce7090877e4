package internal

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Source provides the export records for a month.
// Records returns ErrMissingFile if there is no export for the month.
type Source interface {
	Records(month MonthKey) (path string, records []RawRecord, err error)
}

// DirSource looks up monthly exports in a directory.
type DirSource struct {
	Dir      string
	Patterns []string // file name patterns, {month} is replaced with YYYY-MM
	Options  ReadOptions
}

// NewDirSource creates a DirSource from the config's file patterns and csv settings.
func NewDirSource(dir string, cfg *Config) *DirSource {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	return &DirSource{
		Dir:      dir,
		Patterns: cfg.FilePatterns,
		Options: ReadOptions{
			Delimiter: cfg.Delim(),
			Encoding:  cfg.Encoding,
		},
	}
}

// FileName renders a pattern for a month.
func FileName(pattern string, month MonthKey) string {
	return strings.ReplaceAll(pattern, "{month}", month.String())
}

// Lookup returns the path of the first existing export for the month.
func (s *DirSource) Lookup(month MonthKey) (string, bool) {
	patterns := s.Patterns
	if len(patterns) == 0 {
		patterns = DefaultFilePatterns
	}
	for _, pattern := range patterns {
		path := filepath.Join(s.Dir, FileName(pattern, month))
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func (s *DirSource) Records(month MonthKey) (string, []RawRecord, error) {
	path, ok := s.Lookup(month)
	if !ok {
		return "", nil, ErrMissingFile
	}

	reader, err := GetReader(path)
	if err != nil {
		return path, nil, err
	}

	records, err := reader.Read(path, s.Options)
	if err != nil {
		return path, nil, errors.Wrapf(err, "reading %s", path)
	}
	return path, records, nil
}
