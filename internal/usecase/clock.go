package usecase

import (
	"context"
	"log/slog"
	"time"

	"shopclock/internal/domain"
	"shopclock/internal/ports"
)

// ClockUseCase records punches and answers status queries. Double
// punches in the same direction are rejected by the store's conditional
// write and surface as ports.ErrAlreadyClockedIn / ErrNotClockedIn.
type ClockUseCase struct {
	Log        *slog.Logger
	Attendance ports.AttendanceStore
}

func (uc *ClockUseCase) Punch(ctx context.Context, user string, kind domain.ClockKind) (time.Time, error) {
	now := time.Now()
	if err := uc.Attendance.RecordPunch(ctx, user, kind, now); err != nil {
		return time.Time{}, err
	}
	uc.Log.Info("punch recorded",
		slog.String("user", user),
		slog.String("kind", string(kind)),
		slog.Time("at", now),
	)
	return now, nil
}

func (uc *ClockUseCase) Status(ctx context.Context, user string) (bool, error) {
	return uc.Attendance.ClockedIn(ctx, user)
}
