package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shopclock/internal/domain"
	"shopclock/internal/ports"
	"shopclock/internal/timesheet"
)

// TimesheetUseCase fetches raw punches and wages and runs the
// segmentation engine over them. Everything stateful lives behind the
// ports; the computation itself is recomputed on every call.
type TimesheetUseCase struct {
	Log        *slog.Logger
	Attendance ports.AttendanceStore
	Wages      ports.WageStore
	Location   *time.Location
}

// Timesheets returns per-employee shifts for punches in [from, to].
// includeOpen closes a currently open shift virtually at now so hours
// accrue in real time; the synthesized boundary is marked virtual and
// never persisted.
func (uc *TimesheetUseCase) Timesheets(ctx context.Context, from, to time.Time, includeOpen bool) (map[string][]domain.Shift, error) {
	if uc.Attendance == nil {
		return nil, errors.New("usecase not initialized: missing attendance store")
	}
	events, err := uc.Attendance.ListClockEvents(ctx, from, to)
	if err != nil {
		return nil, err
	}
	uc.Log.Debug("fetched clock events", slog.Int("count", len(events)))

	shifts, diags := timesheet.Build(events, timesheet.Options{
		IncludeOpenShift: includeOpen,
		Location:         uc.Location,
	})
	for _, d := range diags {
		uc.Log.Warn("malformed punch sequence",
			slog.String("user", d.User),
			slog.Int64("timestamp", d.Timestamp),
			slog.String("reason", d.Reason),
		)
	}
	return shifts, nil
}

// Payroll computes the wage-multiplied totals for the range. Employees
// with zero hours in the window are excluded.
func (uc *TimesheetUseCase) Payroll(ctx context.Context, from, to time.Time, includeOpen bool) ([]domain.PayrollEntry, error) {
	shifts, err := uc.Timesheets(ctx, from, to, includeOpen)
	if err != nil {
		return nil, err
	}
	users := make([]string, 0, len(shifts))
	for u := range shifts {
		users = append(users, u)
	}
	wages, err := uc.Wages.Wages(ctx, users)
	if err != nil {
		return nil, err
	}
	loc := uc.Location
	if loc == nil {
		loc = time.Local
	}
	return timesheet.BuildPayroll(shifts, wages, domain.DateOf(from.In(loc)), domain.DateOf(to.In(loc))), nil
}
