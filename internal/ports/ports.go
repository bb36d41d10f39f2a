package ports

import (
	"context"
	"errors"
	"time"

	"shopclock/internal/domain"
)

// Punch conflicts surface as sentinels so the transport layer can map
// them to a 409 instead of a 500.
var (
	ErrAlreadyClockedIn = errors.New("already clocked in")
	ErrNotClockedIn     = errors.New("not clocked in")
)

// AttendanceStore owns the raw punch log and the per-user clocked-in
// state. Implementations must keep the two consistent: RecordPunch is
// conditional on the current state and writes both atomically.
type AttendanceStore interface {
	// ListClockEvents returns all punches with timestamps in [from, to],
	// ascending.
	ListClockEvents(ctx context.Context, from, to time.Time) ([]domain.ClockEvent, error)
	// RecordPunch appends one punch for user at the given instant.
	// Clocking in requires the user to be clocked out and vice versa.
	RecordPunch(ctx context.Context, user string, kind domain.ClockKind, at time.Time) error
	// ClockedIn reports the user's current state, false when unknown.
	ClockedIn(ctx context.Context, user string) (bool, error)
	// ReplaceDay atomically deletes the user's punches inside
	// [dayStart, dayEnd] and writes an in/out pair per interval.
	ReplaceDay(ctx context.Context, user string, dayStart, dayEnd time.Time, intervals []domain.Interval) error
}

// WageStore looks up and maintains per-user hourly wages in cents.
type WageStore interface {
	Wages(ctx context.Context, users []string) (map[string]int64, error)
	SetWage(ctx context.Context, user string, cents int64) error
}

// LedgerStore holds the non-attendance side of the monthly books:
// purchases recorded against a month and revenue from taken payments.
type LedgerStore interface {
	Purchases(ctx context.Context, month string) ([]domain.PurchaseItem, error)
	// ReplacePurchases overwrites the month's purchase list wholesale;
	// the caller sends the full corrected state.
	ReplacePurchases(ctx context.Context, month string, items []domain.PurchaseItem) error
	RecordPayment(ctx context.Context, amountCents int64, paidAt time.Time) error
	RevenueCents(ctx context.Context, from, to time.Time) (int64, error)
}
