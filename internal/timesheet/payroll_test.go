package timesheet

import (
	"testing"

	"shopclock/internal/domain"
)

func TestPayrollAmount(t *testing.T) {
	if got := PayrollAmount(2500, 6.5); got != 16250 {
		t.Fatalf("expected 16250 cents, got %d", got)
	}
	if got := PayrollAmount(1001, 0.5); got != 501 {
		t.Fatalf("expected half cents to round, got %d", got)
	}
	if got := PayrollAmount(2500, 0); got != 0 {
		t.Fatalf("expected 0 for zero hours, got %d", got)
	}
}

func TestTotalHours(t *testing.T) {
	shifts := []domain.Shift{
		{Date: "2025-03-09", Hours: 4.0},
		{Date: "2025-03-10", Hours: 3.0},
		{Date: "2025-03-15", Hours: 5.0},
		{Date: "2025-03-16", Hours: 2.0},
	}
	if got := TotalHours(shifts, "2025-03-10", "2025-03-15"); !approx(got, 8.0) {
		t.Fatalf("expected inclusive range total of 8.0, got %v", got)
	}
	if got := TotalHours(shifts, "2025-04-01", "2025-04-30"); got != 0 {
		t.Fatalf("expected 0 outside the range, got %v", got)
	}
}

func TestBuildPayroll(t *testing.T) {
	shifts := map[string][]domain.Shift{
		"bob":   {{Date: "2025-03-10", Hours: 6.5}},
		"alice": {{Date: "2025-03-10", Hours: 3.0}, {Date: "2025-03-11", Hours: 5.0}},
		"carol": {{Date: "2025-03-10", Segments: nil, Hours: 0}},
	}
	wages := map[string]int64{"alice": 2000, "bob": 2500, "carol": 3000}

	entries := BuildPayroll(shifts, wages, "2025-03-01", "2025-03-31")
	if len(entries) != 2 {
		t.Fatalf("expected zero-hour employees to be excluded, got %+v", entries)
	}
	if entries[0].Name != "alice" || entries[1].Name != "bob" {
		t.Fatalf("expected entries sorted by name, got %+v", entries)
	}
	if !approx(entries[0].Hours, 8.0) {
		t.Fatalf("expected alice at 8.0 hours, got %v", entries[0].Hours)
	}
	if entries[1].WageCents != 2500 {
		t.Fatalf("expected bob's wage attached, got %+v", entries[1])
	}
	if got := PayrollTotalCents(entries); got != 2000*8+16250 {
		t.Fatalf("unexpected payroll total: %d", got)
	}
}
