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

// Correction is a manual rewrite of one employee's punches for one
// calendar day. Segments carry edited time labels; StartOfDay/EndOfDay
// are the Unix bounds of the day window being replaced.
type Correction struct {
	UserName   string           `json:"user_name"`
	StartOfDay int64            `json:"start_of_day"`
	EndOfDay   int64            `json:"end_of_day"`
	Segments   []domain.Segment `json:"segments"`
}

// CorrectionUseCase applies user-initiated timesheet edits: strict
// label validation, the inverse transform back to Unix intervals, then
// a full replace of the day's punches in the store. The whole operation
// is idempotent, so a failed write-back can simply be retried.
type CorrectionUseCase struct {
	Log        *slog.Logger
	Attendance ports.AttendanceStore
	Location   *time.Location
}

func (uc *CorrectionUseCase) Apply(ctx context.Context, c Correction) error {
	if c.UserName == "" {
		return fmt.Errorf("correction: user_name is required")
	}
	if c.EndOfDay < c.StartOfDay {
		return fmt.Errorf("correction: end_of_day before start_of_day")
	}
	real := make([]domain.Segment, 0, len(c.Segments))
	for _, seg := range c.Segments {
		if seg.Virtual() {
			continue
		}
		real = append(real, seg)
	}
	if err := timesheet.ValidateSegments(real); err != nil {
		return fmt.Errorf("correction: %w", err)
	}

	loc := uc.Location
	if loc == nil {
		loc = time.Local
	}
	dayStart := time.Unix(c.StartOfDay, 0).In(loc)
	intervals := timesheet.IntervalsForDay(real, dayStart)

	dayEnd := time.Unix(c.EndOfDay, 0).In(loc)
	if err := uc.Attendance.ReplaceDay(ctx, c.UserName, dayStart, dayEnd, intervals); err != nil {
		return fmt.Errorf("replacing day punches: %w", err)
	}
	uc.Log.Info("timesheet corrected",
		slog.String("user", c.UserName),
		slog.String("date", string(domain.DateOf(dayStart))),
		slog.Int("intervals", len(intervals)),
	)
	return nil
}
