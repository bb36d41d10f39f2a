package mysql

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"shopclock/internal/domain"
	"shopclock/internal/ports"
)

// Store implements the attendance, wage and ledger ports on MySQL.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// NewStore opens a MySQL connection using the provided DSN.
// Example DSN: user:pass@tcp(host:3306)/dbname?parseTime=true&multiStatements=true
func NewStore(ctx context.Context, dsn string, log *slog.Logger) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("mysql: DSN is required")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	// Conservative pool defaults; can be adjusted via env later.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, log: log}, nil
}

func (s *Store) ListClockEvents(ctx context.Context, from, to time.Time) ([]domain.ClockEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_name, ts, kind FROM clock_events WHERE ts BETWEEN ? AND ? ORDER BY ts ASC, id ASC`,
		from.Unix(), to.Unix(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.ClockEvent
	for rows.Next() {
		var e domain.ClockEvent
		var kind string
		if err := rows.Scan(&e.User, &e.Timestamp, &kind); err != nil {
			return nil, err
		}
		e.Kind = domain.ClockKind(kind)
		events = append(events, e)
	}
	return events, rows.Err()
}

// RecordPunch writes the punch and flips the user's clocked-in state in
// one transaction. The state row is locked first so two terminals cannot
// double-clock the same user.
func (s *Store) RecordPunch(ctx context.Context, user string, kind domain.ClockKind, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var clockedIn bool
	err = tx.QueryRowContext(ctx,
		`SELECT clocked_in FROM clock_state WHERE user_name = ? FOR UPDATE`, user,
	).Scan(&clockedIn)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if kind == domain.ClockIn && clockedIn {
		return ports.ErrAlreadyClockedIn
	}
	if kind == domain.ClockOut && !clockedIn {
		return ports.ErrNotClockedIn
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO clock_events (user_name, ts, kind) VALUES (?, ?, ?)`,
		user, at.Unix(), string(kind),
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO clock_state (user_name, clocked_in, last_updated) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE clocked_in=VALUES(clocked_in), last_updated=VALUES(last_updated)`,
		user, kind == domain.ClockIn, at.Unix(),
	); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.log.Debug("punch stored", slog.String("user", user), slog.String("kind", string(kind)))
	return nil
}

func (s *Store) ClockedIn(ctx context.Context, user string) (bool, error) {
	var clockedIn bool
	err := s.db.QueryRowContext(ctx,
		`SELECT clocked_in FROM clock_state WHERE user_name = ?`, user,
	).Scan(&clockedIn)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return clockedIn, err
}

// ReplaceDay rewrites one user's punches inside the day window: delete
// everything there, then insert an in/out pair per corrected interval.
func (s *Store) ReplaceDay(ctx context.Context, user string, dayStart, dayEnd time.Time, intervals []domain.Interval) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM clock_events WHERE user_name = ? AND ts BETWEEN ? AND ?`,
		user, dayStart.Unix(), dayEnd.Unix(),
	); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO clock_events (user_name, ts, kind) VALUES (?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, iv := range intervals {
		if _, err := stmt.ExecContext(ctx, user, iv.Start, string(domain.ClockIn)); err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, user, iv.End, string(domain.ClockOut)); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.log.Info("day punches replaced",
		slog.String("user", user),
		slog.Time("day", dayStart),
		slog.Int("intervals", len(intervals)),
	)
	return nil
}

func (s *Store) Wages(ctx context.Context, users []string) (map[string]int64, error) {
	wages := make(map[string]int64, len(users))
	for _, u := range users {
		var cents int64
		err := s.db.QueryRowContext(ctx,
			`SELECT wage_cents FROM user_wages WHERE user_name = ?`, u,
		).Scan(&cents)
		if errors.Is(err, sql.ErrNoRows) {
			wages[u] = 0
			continue
		}
		if err != nil {
			return nil, err
		}
		wages[u] = cents
	}
	return wages, nil
}

func (s *Store) SetWage(ctx context.Context, user string, cents int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_wages (user_name, wage_cents) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE wage_cents=VALUES(wage_cents)`,
		user, cents,
	)
	return err
}

func (s *Store) Purchases(ctx context.Context, month string) ([]domain.PurchaseItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, amount_cents FROM purchases WHERE month_year = ? ORDER BY position ASC`,
		month,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.PurchaseItem
	for rows.Next() {
		var it domain.PurchaseItem
		if err := rows.Scan(&it.Name, &it.AmountCents); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *Store) ReplacePurchases(ctx context.Context, month string, items []domain.PurchaseItem) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM purchases WHERE month_year = ?`, month); err != nil {
		return err
	}
	for i, it := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO purchases (month_year, position, name, amount_cents) VALUES (?, ?, ?, ?)`,
			month, i, it.Name, it.AmountCents,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) RecordPayment(ctx context.Context, amountCents int64, paidAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (paid_at, amount_cents) VALUES (?, ?)`,
		paidAt.Unix(), amountCents,
	)
	return err
}

func (s *Store) RevenueCents(ctx context.Context, from, to time.Time) (int64, error) {
	var total sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT SUM(amount_cents) FROM payments WHERE paid_at BETWEEN ? AND ?`,
		from.Unix(), to.Unix(),
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}

// Close closes the underlying DB. Not wired via interface to keep ports minimal.
func (s *Store) Close() error { return s.db.Close() }
