package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shopclock/internal/domain"
	"shopclock/internal/ports"
	"shopclock/internal/timesheet"
)

// SummaryUseCase produces the month's financial roll-up:
// net = revenue - payroll - purchases.
type SummaryUseCase struct {
	Log       *slog.Logger
	Ledger    ports.LedgerStore
	Timesheet *TimesheetUseCase
}

// Month computes the summary for a calendar month in the configured
// location. Open shifts are excluded: committed payroll only.
func (uc *SummaryUseCase) Month(ctx context.Context, year int, month time.Month) (domain.FinancialSummary, error) {
	loc := uc.Timesheet.Location
	if loc == nil {
		loc = time.Local
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, 0).Add(-time.Second)
	monthKey := fmt.Sprintf("%04d-%02d", year, int(month))

	entries, err := uc.Timesheet.Payroll(ctx, from, to, false)
	if err != nil {
		return domain.FinancialSummary{}, fmt.Errorf("computing payroll: %w", err)
	}
	payrollCents := timesheet.PayrollTotalCents(entries)

	revenueCents, err := uc.Ledger.RevenueCents(ctx, from, to)
	if err != nil {
		return domain.FinancialSummary{}, fmt.Errorf("fetching revenue: %w", err)
	}

	items, err := uc.Ledger.Purchases(ctx, monthKey)
	if err != nil {
		return domain.FinancialSummary{}, fmt.Errorf("fetching purchases: %w", err)
	}
	var purchasesCents int64
	for _, it := range items {
		purchasesCents += it.AmountCents
	}

	s := domain.FinancialSummary{
		Month:          monthKey,
		RevenueCents:   revenueCents,
		PayrollCents:   payrollCents,
		PurchasesCents: purchasesCents,
		NetCents:       revenueCents - payrollCents - purchasesCents,
	}
	uc.Log.Info("financial summary computed",
		slog.String("month", s.Month),
		slog.Int64("net_cents", s.NetCents),
	)
	return s, nil
}
