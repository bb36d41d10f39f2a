package timesheet

import (
	"math"
	"sort"

	"shopclock/internal/domain"
)

// TotalHours sums the hours of every shift whose date falls inside
// [from, to] inclusive. Whether an open shift's accruing hours are
// present is decided earlier, by Options.IncludeOpenShift at Build time.
func TotalHours(shifts []domain.Shift, from, to domain.Date) float64 {
	var total float64
	for _, s := range shifts {
		if s.Date >= from && s.Date <= to {
			total += s.Hours
		}
	}
	return total
}

// PayrollAmount is wage times hours, rounded to whole cents. Money stays
// in integer cents; only hours are fractional.
func PayrollAmount(wageCents int64, hours float64) int64 {
	return int64(math.Round(float64(wageCents) * hours))
}

// BuildPayroll maps per-employee shift sets to payroll entries over a
// date range. Employees with no hours in the window are left out of the
// listing. Entries come back sorted by name.
func BuildPayroll(shiftsByUser map[string][]domain.Shift, wages map[string]int64, from, to domain.Date) []domain.PayrollEntry {
	names := make([]string, 0, len(shiftsByUser))
	for name := range shiftsByUser {
		names = append(names, name)
	}
	sort.Strings(names)

	var entries []domain.PayrollEntry
	for _, name := range names {
		hours := TotalHours(shiftsByUser[name], from, to)
		if hours <= 0 {
			continue
		}
		entries = append(entries, domain.PayrollEntry{
			Name:      name,
			WageCents: wages[name],
			Hours:     hours,
		})
	}
	return entries
}

// PayrollTotalCents sums the rounded amount of each entry.
func PayrollTotalCents(entries []domain.PayrollEntry) int64 {
	var total int64
	for _, e := range entries {
		total += PayrollAmount(e.WageCents, e.Hours)
	}
	return total
}
