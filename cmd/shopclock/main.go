package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"shopclock/internal/app"
	"shopclock/internal/config"
	"shopclock/internal/domain"
	"shopclock/internal/export"
	"shopclock/internal/view"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cliApp := &cli.App{
		Name:  "shopclock",
		Usage: "repair-shop time clock, timesheets and payroll",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to config.toml"},
			&cli.BoolFlag{Name: "v", Usage: "enable verbose logging"},
		},
		Commands: []*cli.Command{
			serveCommand,
			reportCommand,
			payrollCommand,
			summaryCommand,
			clockCommand,
			statusCommand,
			wageCommand,
		},
	}
	return cliApp.Run(os.Args)
}

func setup(c *cli.Context) (*app.App, config.Config, error) {
	level := slog.LevelInfo
	if c.Bool("v") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, cfg, fmt.Errorf("loading config: %w", err)
	}
	application, err := app.New(logger, cfg)
	if err != nil {
		return nil, cfg, fmt.Errorf("initializing app: %w", err)
	}
	return application, cfg, nil
}

var rangeFlags = []cli.Flag{
	&cli.StringFlag{Name: "from", Usage: "range start, RFC3339 or YYYY-MM-DD (default: 24h ago)"},
	&cli.StringFlag{Name: "to", Usage: "range end, RFC3339 or YYYY-MM-DD inclusive (default: now)"},
	&cli.BoolFlag{Name: "open", Usage: "count a currently open shift up to now"},
}

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "start the attendance and payroll HTTP API",
	Action: func(c *cli.Context) error {
		application, cfg, err := setup(c)
		if err != nil {
			return err
		}
		defer application.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := application.HTTPServer(cfg.HTTPAddr)
		errCh := make(chan error, 1)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

var reportCommand = &cli.Command{
	Name:  "report",
	Usage: "print per-day timesheets for a date range",
	Flags: append([]cli.Flag{
		&cli.StringFlag{Name: "user", Usage: "limit to one employee"},
	}, rangeFlags...),
	Action: func(c *cli.Context) error {
		application, _, err := setup(c)
		if err != nil {
			return err
		}
		defer application.Close()

		from, to, err := app.ParseDateRange(c.String("from"), c.String("to"), application.Location())
		if err != nil {
			return err
		}
		shifts, err := application.Timesheet.Timesheets(c.Context, from, to, c.Bool("open"))
		if err != nil {
			return err
		}
		if user := c.String("user"); user != "" {
			only := map[string][]domain.Shift{}
			if s, found := shifts[user]; found {
				only[user] = s
			}
			shifts = only
		}
		view.RenderTimesheets(os.Stdout, shifts)
		return nil
	},
}

var payrollCommand = &cli.Command{
	Name:  "payroll",
	Usage: "print payroll totals for a date range",
	Flags: append([]cli.Flag{
		&cli.StringFlag{Name: "xlsx", Usage: "also write the report to this xlsx file"},
	}, rangeFlags...),
	Action: func(c *cli.Context) error {
		application, _, err := setup(c)
		if err != nil {
			return err
		}
		defer application.Close()

		from, to, err := app.ParseDateRange(c.String("from"), c.String("to"), application.Location())
		if err != nil {
			return err
		}
		entries, err := application.Timesheet.Payroll(c.Context, from, to, c.Bool("open"))
		if err != nil {
			return err
		}
		view.RenderPayroll(os.Stdout, entries)

		if path := c.String("xlsx"); path != "" {
			f, err := export.PayrollWorkbook(entries, nil)
			if err != nil {
				return err
			}
			if err := f.SaveAs(path); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
		}
		return nil
	},
}

var summaryCommand = &cli.Command{
	Name:  "summary",
	Usage: "print the month's revenue/payroll/purchases summary",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "month", Usage: "YYYY-MM (default: current month)"},
		&cli.StringFlag{Name: "xlsx", Usage: "also write payroll and summary to this xlsx file"},
	},
	Action: func(c *cli.Context) error {
		application, _, err := setup(c)
		if err != nil {
			return err
		}
		defer application.Close()

		monthStr := c.String("month")
		if monthStr == "" {
			monthStr = time.Now().In(application.Location()).Format("2006-01")
		}
		t, err := time.Parse("2006-01", monthStr)
		if err != nil {
			return fmt.Errorf("invalid month %q, expected YYYY-MM", monthStr)
		}
		s, err := application.Summary.Month(c.Context, t.Year(), t.Month())
		if err != nil {
			return err
		}
		view.RenderSummary(os.Stdout, s)

		if path := c.String("xlsx"); path != "" {
			from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, application.Location())
			to := from.AddDate(0, 1, 0).Add(-time.Second)
			entries, err := application.Timesheet.Payroll(c.Context, from, to, false)
			if err != nil {
				return err
			}
			f, err := export.PayrollWorkbook(entries, &s)
			if err != nil {
				return err
			}
			if err := f.SaveAs(path); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
		}
		return nil
	},
}

var clockCommand = &cli.Command{
	Name:      "clock",
	Usage:     "record a punch for an employee",
	ArgsUsage: "NAME",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "out", Usage: "clock out instead of in"},
	},
	Action: func(c *cli.Context) error {
		user := c.Args().First()
		if user == "" {
			return errors.New("employee name is required")
		}
		application, _, err := setup(c)
		if err != nil {
			return err
		}
		defer application.Close()

		kind := domain.ClockIn
		if c.Bool("out") {
			kind = domain.ClockOut
		}
		at, err := application.Clock.Punch(c.Context, user, kind)
		if err != nil {
			return err
		}
		fmt.Printf("%s clocked %s at %s\n", user, kind, at.In(application.Location()).Format(time.Kitchen))
		return nil
	},
}

var statusCommand = &cli.Command{
	Name:      "status",
	Usage:     "show whether an employee is clocked in",
	ArgsUsage: "NAME",
	Action: func(c *cli.Context) error {
		user := c.Args().First()
		if user == "" {
			return errors.New("employee name is required")
		}
		application, _, err := setup(c)
		if err != nil {
			return err
		}
		defer application.Close()

		clockedIn, err := application.Clock.Status(c.Context, user)
		if err != nil {
			return err
		}
		if clockedIn {
			fmt.Printf("%s is clocked in\n", user)
		} else {
			fmt.Printf("%s is clocked out\n", user)
		}
		return nil
	},
}

var wageCommand = &cli.Command{
	Name:      "wage",
	Usage:     "set an employee's hourly wage in cents",
	ArgsUsage: "NAME CENTS",
	Action: func(c *cli.Context) error {
		user := c.Args().Get(0)
		centsStr := c.Args().Get(1)
		if user == "" || centsStr == "" {
			return errors.New("usage: wage NAME CENTS")
		}
		var cents int64
		if _, err := fmt.Sscanf(centsStr, "%d", &cents); err != nil || cents < 0 {
			return fmt.Errorf("invalid cents %q", centsStr)
		}
		application, _, err := setup(c)
		if err != nil {
			return err
		}
		defer application.Close()

		if err := application.Wages.SetWage(c.Context, user, cents); err != nil {
			return err
		}
		fmt.Printf("wage for %s set to $%d.%02d/hr\n", user, cents/100, cents%100)
		return nil
	},
}
