package internal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySource serves records from memory, keyed by month
type memorySource struct {
	files map[MonthKey][]RawRecord
	fail  map[MonthKey]error
	calls []MonthKey
}

func (s *memorySource) Records(month MonthKey) (string, []RawRecord, error) {
	s.calls = append(s.calls, month)
	if err, ok := s.fail[month]; ok {
		return "mem:" + month.String(), nil, err
	}
	recs, ok := s.files[month]
	if !ok {
		return "", nil, ErrMissingFile
	}
	return "mem:" + month.String(), recs, nil
}

func TestCombiner_MissingMonthsZeroFilled(t *testing.T) {
	source := &memorySource{files: map[MonthKey][]RawRecord{
		NewMonthKey(2023, time.January): records("01.01.2023 bis 31.01.2023",
			[3]string{"Food", "", ""},
			[3]string{"Groceries", "100", "EUR"},
		),
		NewMonthKey(2023, time.February): records("01.02.2023 bis 28.02.2023",
			[3]string{"Food", "", ""},
			[3]string{"Groceries", "80", "EUR"},
			[3]string{"Rent", "", ""},
			[3]string{"Apartment", "900", "EUR"},
		),
	}}

	table, report := NewCombiner(source).Combine(2023)

	assert.Len(t, table.Header(), 13)
	assert.Equal(t, []CategoryPath{"Food - Groceries", "Rent - Apartment"}, table.Categories())

	for _, row := range table.Rows() {
		for i := 2; i < 12; i++ {
			assert.True(t, row.Amounts[i].IsZero(), "%s month %d should be zero", row.Category, i+1)
		}
	}
	assert.True(t, table.Amount("Food - Groceries", NewMonthKey(2023, time.January)).Equal(dec("100")))
	assert.True(t, table.Amount("Rent - Apartment", NewMonthKey(2023, time.January)).IsZero())
	assert.True(t, table.Amount("Rent - Apartment", NewMonthKey(2023, time.February)).Equal(dec("900")))

	assert.Equal(t, 2, report.Count(StatusParsed))
	assert.Equal(t, 10, report.Count(StatusMissing))
	assert.Equal(t, "EUR", table.Currency)

	// months are visited strictly in order
	require.Len(t, source.calls, 12)
	for i, m := range source.calls {
		assert.Equal(t, time.Month(i+1), m.Month)
	}
}

func TestCombiner_MergeUnion(t *testing.T) {
	source := &memorySource{files: map[MonthKey][]RawRecord{
		NewMonthKey(2023, time.May): records("01.05.2023 bis 31.05.2023",
			[3]string{"X", "5", ""},
		),
		NewMonthKey(2023, time.June): records("01.06.2023 bis 30.06.2023",
			[3]string{"Y", "6", ""},
		),
	}}

	table, _ := NewCombiner(source).Combine(2023)

	may := NewMonthKey(2023, time.May)
	june := NewMonthKey(2023, time.June)
	assert.True(t, table.Amount("X", may).Equal(dec("5")))
	assert.True(t, table.Amount("X", june).IsZero())
	assert.True(t, table.Amount("Y", may).IsZero())
	assert.True(t, table.Amount("Y", june).Equal(dec("6")))
}

func TestCombiner_RejectedFilesZeroFilled(t *testing.T) {
	source := &memorySource{
		files: map[MonthKey][]RawRecord{
			NewMonthKey(2023, time.March): records("01.03.2023 bis 31.03.2023",
				[3]string{"Rent", "900", "EUR"},
			),
			// declares March but is filed as April
			NewMonthKey(2023, time.April): records("01.03.2023 bis 31.03.2023",
				[3]string{"Rent", "900", "EUR"},
				[3]string{"Bonus", "50", "EUR"},
			),
			NewMonthKey(2023, time.May): records("kaputt",
				[3]string{"Rent", "900", "EUR"},
			),
		},
		fail: map[MonthKey]error{
			NewMonthKey(2023, time.June): errors.New("permission denied"),
		},
	}

	table, report := NewCombiner(source).Combine(2023)

	assert.Equal(t, []CategoryPath{"Rent"}, table.Categories(), "rejected files must not contribute categories")
	assert.True(t, table.Amount("Rent", NewMonthKey(2023, time.April)).IsZero())
	assert.True(t, table.Amount("Rent", NewMonthKey(2023, time.May)).IsZero())

	assert.Equal(t, StatusParsed, report.Months[2].Status)
	assert.Equal(t, StatusRejected, report.Months[3].Status)
	assert.ErrorIs(t, report.Months[3].Err, ErrIncompleteMonth)
	assert.Equal(t, StatusRejected, report.Months[4].Status)
	assert.ErrorIs(t, report.Months[4].Err, ErrDateRange)
	assert.Equal(t, StatusRejected, report.Months[5].Status)
	assert.Equal(t, 8, report.Count(StatusMissing))
}

func TestCombiner_EmptyFileReportedAsEmpty(t *testing.T) {
	source := &memorySource{files: map[MonthKey][]RawRecord{
		NewMonthKey(2023, time.July): records("01.07.2023 bis 31.07.2023"),
	}}

	table, report := NewCombiner(source).Combine(2023)

	assert.Equal(t, 0, table.Len())
	assert.Equal(t, StatusEmpty, report.Months[6].Status)
	assert.Len(t, table.Header(), 13)
}

func TestCombiner_ReportsDroppedRows(t *testing.T) {
	source := &memorySource{files: map[MonthKey][]RawRecord{
		NewMonthKey(2023, time.January): records("01.01.2023 bis 31.01.2023",
			[3]string{"Food", "", ""},
			[3]string{"Groceries", "n/a", "EUR"},
			[3]string{"Dining", "20", "EUR"},
		),
	}}

	table, report := NewCombiner(source).Combine(2023)

	assert.Equal(t, []CategoryPath{"Food - Dining"}, table.Categories())
	require.Len(t, report.Months[0].Dropped, 1)
	assert.Equal(t, 3, report.Months[0].Dropped[0].Line)
	assert.Equal(t, 1, report.Months[0].Categories)
}

func TestCombiner_GroupsAndExcludes(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
currency: CHF
groups:
  - name: Eating
    patterns:
      - "^Food - (Groceries|Dining)$"
exclude:
  - "^Transfers"
  - pattern: "Internal$"
`), 0644))
	cfg, err := LoadConfig(cfgPath)
	require.NoError(t, err)

	source := &memorySource{files: map[MonthKey][]RawRecord{
		NewMonthKey(2023, time.January): records("01.01.2023 bis 31.01.2023",
			[3]string{"Food", "", ""},
			[3]string{"Groceries", "10,50", ""},
			[3]string{"Dining", "4,50", ""},
			[3]string{"Snacks", "2", ""},
			[3]string{"Transfers", "", ""},
			[3]string{"Savings", "500", ""},
			[3]string{"Account Internal", "5", ""},
		),
	}}

	table, report := NewCombiner(source, WithConfig(cfg)).Combine(2023)

	assert.Equal(t, []CategoryPath{"Eating", "Food - Snacks"}, table.Categories())
	assert.True(t, table.Amount("Eating", NewMonthKey(2023, time.January)).Equal(dec("15")))
	assert.Equal(t, "CHF", table.Currency)
	assert.Equal(t, 3, report.Months[0].Categories)
}

func TestCombiner_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, "Kategorien-2023-01.csv", "Zeitraum;01.01.2023 bis 31.01.2023;\nFood;;\nGroceries;12,50;EUR\nDining;7,00;EUR\nTravel;;\nFlights;200,00;EUR\n")
	writeExport(t, dir, "Kategorien-2023-03.csv", "Zeitraum;01.03.2023 bis 31.03.2023;\nCash;40;EUR\nFood;;\nGroceries;9;EUR\n")

	render := func() []byte {
		table, _ := NewCombiner(NewDirSource(dir, nil)).Combine(2023)
		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, table, WriteOptions{}))
		return buf.Bytes()
	}

	first := render()
	second := render()
	assert.Equal(t, first, second)
	assert.Equal(t, "Category;2023-01;2023-02;2023-03;2023-04;2023-05;2023-06;2023-07;2023-08;2023-09;2023-10;2023-11;2023-12\n"+
		"Cash;0;0;40;0;0;0;0;0;0;0;0;0\n"+
		"Food - Dining;7;0;0;0;0;0;0;0;0;0;0;0\n"+
		"Food - Groceries;12.5;0;9;0;0;0;0;0;0;0;0;0\n"+
		"Travel - Flights;200;0;0;0;0;0;0;0;0;0;0;0\n", string(first))
}

func writeExport(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}
