package internal

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
)

// PrintTable outputs the combined table with a totals column and footer
func PrintTable(w io.Writer, t *CombinedTable, cur Currency) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)

	header := table.Row{CategoryHeader}
	for _, m := range t.Months {
		header = append(header, m.String())
	}
	header = append(header, "Total")
	tw.AppendHeader(header)

	var grandTotal decimal.Decimal
	for _, r := range t.Rows() {
		row := table.Row{string(r.Category)}
		for _, amount := range r.Amounts {
			row = append(row, formatCell(cur, amount))
		}
		total := r.Total()
		grandTotal = grandTotal.Add(total)
		row = append(row, cur.Number(total))
		tw.AppendRow(row)
	}

	tw.AppendSeparator()

	footer := table.Row{text.Bold.Sprint("Total")}
	for _, total := range t.MonthTotals() {
		footer = append(footer, text.Bold.Sprint(cur.Number(total)))
	}
	footer = append(footer, text.Bold.Sprint(cur.Format(grandTotal)))
	tw.AppendFooter(footer)

	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault

	// Right-align every amount column
	var configs []table.ColumnConfig
	for i := 2; i <= len(header); i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)

	tw.Render()
}

func formatCell(cur Currency, amount decimal.Decimal) string {
	if amount.IsZero() {
		return text.FgHiBlack.Sprint("-")
	}
	return cur.Number(amount)
}

// PrintReport outputs what happened to each month of a run
func PrintReport(w io.Writer, r *RunReport) {
	fmt.Fprintf(w, "Year %d: %d parsed, %d empty, %d missing, %d rejected\n\n",
		r.Year, r.Count(StatusParsed), r.Count(StatusEmpty), r.Count(StatusMissing), r.Count(StatusRejected))

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Month", "Status", "Categories", "Dropped rows", "File", "Note"})

	for _, m := range r.Months {
		tw.AppendRow(table.Row{
			m.Month.String(),
			statusText(m.Status),
			m.Categories,
			len(m.Dropped),
			m.Path,
			note(m),
		})
	}

	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Render()
}

func statusText(s MonthStatus) string {
	switch s {
	case StatusParsed:
		return text.FgGreen.Sprint(strings.ToUpper(string(s)))
	case StatusRejected:
		return text.FgRed.Sprint(strings.ToUpper(string(s)))
	default:
		return text.FgHiBlack.Sprint(strings.ToUpper(string(s)))
	}
}

func note(m MonthResult) string {
	if m.Err != nil {
		return m.Err.Error()
	}
	if len(m.Dropped) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.Dropped))
	for _, d := range m.Dropped {
		lines = append(lines, fmt.Sprintf("line %d", d.Line))
	}
	return "dropped " + strings.Join(lines, ", ")
}
