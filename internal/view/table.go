// Package view renders timesheets and payroll as terminal tables for
// the CLI report commands.
package view

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"shopclock/internal/domain"
	"shopclock/internal/timesheet"
)

// RenderTimesheets prints one row per segment, grouped by employee and
// date, with a trailing grand total.
func RenderTimesheets(w io.Writer, shifts map[string][]domain.Shift) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Employee", "Date", "Start", "End", "Hours", "Note"})

	users := make([]string, 0, len(shifts))
	for u := range shifts {
		users = append(users, u)
	}
	sort.Strings(users)

	var totalHours float64
	for _, u := range users {
		for _, s := range shifts[u] {
			totalHours += s.Hours
			for _, seg := range s.Segments {
				t.AppendRow(table.Row{
					s.Employee,
					s.Date,
					seg.Start,
					seg.End,
					fmt.Sprintf("%.2f", timesheet.SegmentHours(seg)),
					segmentNote(seg),
				})
			}
		}
	}
	t.AppendFooter(table.Row{"", "", "", "Total", fmt.Sprintf("%.2f", totalHours), ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 2, AutoMerge: true},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// RenderPayroll prints the wage-multiplied totals with a footer sum.
func RenderPayroll(w io.Writer, entries []domain.PayrollEntry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Employee", "Hourly Wage", "Hours", "Amount"})
	for _, e := range entries {
		t.AppendRow(table.Row{
			e.Name,
			centsToDollars(e.WageCents),
			fmt.Sprintf("%.2f", e.Hours),
			centsToDollars(timesheet.PayrollAmount(e.WageCents, e.Hours)),
		})
	}
	t.AppendFooter(table.Row{"", "", "Total", centsToDollars(timesheet.PayrollTotalCents(entries))})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// RenderSummary prints the month's revenue/payroll/purchases/net lines.
func RenderSummary(w io.Writer, s domain.FinancialSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Month", s.Month})
	t.AppendRow(table.Row{"Revenue", centsToDollars(s.RevenueCents)})
	t.AppendRow(table.Row{"Payroll", centsToDollars(s.PayrollCents)})
	t.AppendRow(table.Row{"Purchases", centsToDollars(s.PurchasesCents)})
	t.AppendFooter(table.Row{"Net", centsToDollars(s.NetCents)})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func segmentNote(seg domain.Segment) string {
	switch {
	case seg.EndVirtual && seg.End != timesheet.DayEndLabel:
		return "still clocked in"
	case seg.StartVirtual || seg.EndVirtual:
		return "crosses midnight"
	default:
		return ""
	}
}

func centsToDollars(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
