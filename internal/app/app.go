package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	bunt "shopclock/internal/adapter/buntdb"
	msql "shopclock/internal/adapter/mysql"
	"shopclock/internal/config"
	"shopclock/internal/migrate"
	"shopclock/internal/ports"
	"shopclock/internal/usecase"
)

// App wires a store adapter into the use cases.
type App struct {
	log *slog.Logger
	loc *time.Location

	Clock      *usecase.ClockUseCase
	Timesheet  *usecase.TimesheetUseCase
	Correction *usecase.CorrectionUseCase
	Summary    *usecase.SummaryUseCase
	Ledger     ports.LedgerStore
	Wages      ports.WageStore

	closer io.Closer
}

func New(log *slog.Logger, cfg config.Config) (*App, error) {
	loc := time.Local
	if cfg.Timezone != "" && cfg.Timezone != "Local" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
		}
		loc = l
	}

	var (
		attendance ports.AttendanceStore
		wages      ports.WageStore
		ledger     ports.LedgerStore
		closer     io.Closer
	)
	switch cfg.Store {
	case "mysql":
		// Run migrations before opening the store for use.
		if err := migrate.Run(context.Background(), cfg.MySQL.DSN, log); err != nil {
			return nil, err
		}
		store, err := msql.NewStore(context.Background(), cfg.MySQL.DSN, log)
		if err != nil {
			return nil, err
		}
		attendance, wages, ledger, closer = store, store, store, store
	case "local":
		store, err := bunt.Open(cfg.Local.Path, log)
		if err != nil {
			return nil, err
		}
		attendance, wages, ledger, closer = store, store, store, store
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}

	ts := &usecase.TimesheetUseCase{Log: log, Attendance: attendance, Wages: wages, Location: loc}
	a := &App{
		log:        log,
		loc:        loc,
		Clock:      &usecase.ClockUseCase{Log: log, Attendance: attendance},
		Timesheet:  ts,
		Correction: &usecase.CorrectionUseCase{Log: log, Attendance: attendance, Location: loc},
		Summary:    &usecase.SummaryUseCase{Log: log, Ledger: ledger, Timesheet: ts},
		Ledger:     ledger,
		Wages:      wages,
		closer:     closer,
	}
	return a, nil
}

// Location is the configured local calendar-day location.
func (a *App) Location() *time.Location { return a.loc }

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
