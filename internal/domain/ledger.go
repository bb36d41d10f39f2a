package domain

// PurchaseItem is one shop expense recorded against a month.
type PurchaseItem struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
}

// FinancialSummary is the month roll-up reported to the books:
// net = revenue - payroll - purchases, all in whole cents.
type FinancialSummary struct {
	Month          string `json:"month"` // YYYY-MM
	RevenueCents   int64  `json:"revenue_cents"`
	PayrollCents   int64  `json:"payroll_cents"`
	PurchasesCents int64  `json:"purchases_cents"`
	NetCents       int64  `json:"net_cents"`
}
