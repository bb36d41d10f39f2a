package export

import (
	"testing"

	"shopclock/internal/domain"
)

func TestPayrollWorkbook(t *testing.T) {
	entries := []domain.PayrollEntry{
		{Name: "alice", WageCents: 2500, Hours: 6.5},
		{Name: "bob", WageCents: 1800, Hours: 8},
	}
	f, err := PayrollWorkbook(entries, nil)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}
	defer f.Close()

	checks := []struct {
		cell string
		want string
	}{
		{"A1", "Employee"},
		{"A2", "alice"},
		{"B2", "25"},
		{"C2", "6.5"},
		{"D2", "162.5"},
		{"A3", "bob"},
		{"D3", "144"},
		{"C4", "Total"},
		{"D4", "306.5"},
	}
	for _, c := range checks {
		got, err := f.GetCellValue("Payroll", c.cell)
		if err != nil {
			t.Fatalf("read %s: %v", c.cell, err)
		}
		if got != c.want {
			t.Fatalf("cell %s = %q, want %q", c.cell, got, c.want)
		}
	}

	if idx, _ := f.GetSheetIndex("Summary"); idx != -1 {
		t.Fatalf("expected no summary sheet, got index %d", idx)
	}
}

func TestPayrollWorkbookWithSummary(t *testing.T) {
	summary := &domain.FinancialSummary{
		Month:          "2025-03",
		RevenueCents:   500000,
		PayrollCents:   230000,
		PurchasesCents: 40000,
		NetCents:       230000,
	}
	f, err := PayrollWorkbook(nil, summary)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Summary", "B1")
	if err != nil {
		t.Fatalf("read B1: %v", err)
	}
	if got != "2025-03" {
		t.Fatalf("month = %q", got)
	}
	got, err = f.GetCellValue("Summary", "B5")
	if err != nil {
		t.Fatalf("read B5: %v", err)
	}
	if got != "2300" {
		t.Fatalf("net = %q", got)
	}
}
