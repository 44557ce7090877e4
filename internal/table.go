package internal

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CombinedTable is the category x month matrix for one year.
// Every category has an amount for each of the twelve months, zero where nothing was merged.
type CombinedTable struct {
	Year     int
	Months   [12]MonthKey
	Currency string

	rows map[CategoryPath]*[12]decimal.Decimal
}

// CombinedRow is one category with its twelve monthly amounts.
type CombinedRow struct {
	Category CategoryPath
	Amounts  [12]decimal.Decimal
}

func NewCombinedTable(year int) *CombinedTable {
	return &CombinedTable{
		Year:   year,
		Months: MonthsOf(year),
		rows:   make(map[CategoryPath]*[12]decimal.Decimal),
	}
}

// Set stores the amount of a category for a month, adding the category if it is new.
func (t *CombinedTable) Set(category CategoryPath, month MonthKey, amount decimal.Decimal) {
	t.row(category)[month.Index()] = amount
}

// Add adds to the amount of a category for a month, adding the category if it is new.
func (t *CombinedTable) Add(category CategoryPath, month MonthKey, amount decimal.Decimal) {
	r := t.row(category)
	r[month.Index()] = r[month.Index()].Add(amount)
}

func (t *CombinedTable) row(category CategoryPath) *[12]decimal.Decimal {
	r, ok := t.rows[category]
	if !ok {
		r = new([12]decimal.Decimal)
		t.rows[category] = r
	}
	return r
}

// Amount returns the amount of a category for a month, zero if either is unknown.
func (t *CombinedTable) Amount(category CategoryPath, month MonthKey) decimal.Decimal {
	r, ok := t.rows[category]
	if !ok || month.Year != t.Year || !month.Valid() {
		return decimal.Zero
	}
	return r[month.Index()]
}

// Has reports whether the category has a row.
func (t *CombinedTable) Has(category CategoryPath) bool {
	_, ok := t.rows[category]
	return ok
}

// Len returns the number of categories.
func (t *CombinedTable) Len() int {
	return len(t.rows)
}

// Categories returns all categories in byte-wise order.
func (t *CombinedTable) Categories() []CategoryPath {
	categories := make([]CategoryPath, 0, len(t.rows))
	for c := range t.rows {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i] < categories[j]
	})
	return categories
}

// Rows returns every category with its amounts, sorted by category.
func (t *CombinedTable) Rows() []CombinedRow {
	categories := t.Categories()
	rows := make([]CombinedRow, len(categories))
	for i, c := range categories {
		rows[i] = CombinedRow{Category: c, Amounts: *t.rows[c]}
	}
	return rows
}

// MonthTotals returns the sum over all categories for each month.
func (t *CombinedTable) MonthTotals() [12]decimal.Decimal {
	var totals [12]decimal.Decimal
	for _, r := range t.rows {
		for i, amount := range r {
			totals[i] = totals[i].Add(amount)
		}
	}
	return totals
}

// Total returns the sum of a row's amounts.
func (r CombinedRow) Total() decimal.Decimal {
	return decimal.Sum(decimal.Zero, r.Amounts[:]...)
}
