// Package export writes payroll reports as xlsx workbooks for the
// bookkeeper.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"shopclock/internal/domain"
	"shopclock/internal/timesheet"
)

// PayrollWorkbook builds a two-sheet workbook: per-employee payroll
// lines and the month's financial summary. The caller saves or streams
// the returned file.
func PayrollWorkbook(entries []domain.PayrollEntry, summary *domain.FinancialSummary) (*excelize.File, error) {
	f := excelize.NewFile()
	const payrollSheet = "Payroll"
	if err := f.SetSheetName("Sheet1", payrollSheet); err != nil {
		return nil, err
	}

	headers := []string{"Employee", "Hourly Wage", "Hours", "Amount"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(payrollSheet, cell, h); err != nil {
			return nil, err
		}
	}
	for row, e := range entries {
		values := []any{
			e.Name,
			float64(e.WageCents) / 100,
			e.Hours,
			float64(timesheet.PayrollAmount(e.WageCents, e.Hours)) / 100,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(payrollSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	totalRow := len(entries) + 2
	if err := f.SetCellValue(payrollSheet, fmt.Sprintf("C%d", totalRow), "Total"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(payrollSheet, fmt.Sprintf("D%d", totalRow), float64(timesheet.PayrollTotalCents(entries))/100); err != nil {
		return nil, err
	}

	if summary != nil {
		const summarySheet = "Summary"
		if _, err := f.NewSheet(summarySheet); err != nil {
			return nil, err
		}
		rows := [][]any{
			{"Month", summary.Month},
			{"Revenue", float64(summary.RevenueCents) / 100},
			{"Payroll", float64(summary.PayrollCents) / 100},
			{"Purchases", float64(summary.PurchasesCents) / 100},
			{"Net", float64(summary.NetCents) / 100},
		}
		for r, pair := range rows {
			for c, v := range pair {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(summarySheet, cell, v); err != nil {
					return nil, err
				}
			}
		}
	}
	return f, nil
}
