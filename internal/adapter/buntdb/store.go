// Package buntdb provides an embedded single-shop store so the service
// can run without a MySQL server. Punches are kept under ordered keys,
// everything else as JSON values.
package buntdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/buntdb"

	"shopclock/internal/domain"
	"shopclock/internal/ports"
)

type Store struct {
	db  *buntdb.DB
	log *slog.Logger
}

// Open opens (or creates) the database at path. ":memory:" gives an
// ephemeral store, which the tests use.
func Open(path string, log *slog.Logger) (*Store, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Punch keys are zero-padded so lexicographic key order is timestamp
// order, which AscendRange relies on.
func eventKey(ts int64, user string, kind domain.ClockKind) string {
	return fmt.Sprintf("event:%020d:%s:%s", ts, user, kind)
}

type storedEvent struct {
	User      string           `json:"user"`
	Timestamp int64            `json:"timestamp"`
	Kind      domain.ClockKind `json:"kind"`
}

func (s *Store) ListClockEvents(ctx context.Context, from, to time.Time) ([]domain.ClockEvent, error) {
	var events []domain.ClockEvent
	err := s.db.View(func(tx *buntdb.Tx) error {
		min := fmt.Sprintf("event:%020d", from.Unix())
		max := fmt.Sprintf("event:%020d", to.Unix()+1)
		var iterErr error
		if err := tx.AscendRange("", min, max, func(key, value string) bool {
			var e storedEvent
			if err := json.Unmarshal([]byte(value), &e); err != nil {
				iterErr = err
				return false
			}
			events = append(events, domain.ClockEvent{User: e.User, Timestamp: e.Timestamp, Kind: e.Kind})
			return true
		}); err != nil {
			return err
		}
		return iterErr
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) RecordPunch(ctx context.Context, user string, kind domain.ClockKind, at time.Time) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		clockedIn := false
		v, err := tx.Get("state:" + user)
		if err != nil && !errors.Is(err, buntdb.ErrNotFound) {
			return err
		}
		if err == nil {
			clockedIn = v == "true"
		}
		if kind == domain.ClockIn && clockedIn {
			return ports.ErrAlreadyClockedIn
		}
		if kind == domain.ClockOut && !clockedIn {
			return ports.ErrNotClockedIn
		}

		bs, err := json.Marshal(storedEvent{User: user, Timestamp: at.Unix(), Kind: kind})
		if err != nil {
			return err
		}
		if _, _, err := tx.Set(eventKey(at.Unix(), user, kind), string(bs), nil); err != nil {
			return err
		}
		_, _, err = tx.Set("state:"+user, strconv.FormatBool(kind == domain.ClockIn), nil)
		return err
	})
}

func (s *Store) ClockedIn(ctx context.Context, user string) (bool, error) {
	var clockedIn bool
	err := s.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get("state:" + user)
		if errors.Is(err, buntdb.ErrNotFound) {
			return nil
		} else if err != nil {
			return err
		}
		clockedIn = v == "true"
		return nil
	})
	return clockedIn, err
}

func (s *Store) ReplaceDay(ctx context.Context, user string, dayStart, dayEnd time.Time, intervals []domain.Interval) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		min := fmt.Sprintf("event:%020d", dayStart.Unix())
		max := fmt.Sprintf("event:%020d", dayEnd.Unix()+1)
		var stale []string
		if err := tx.AscendRange("", min, max, func(key, value string) bool {
			if strings.Contains(key, ":"+user+":") {
				stale = append(stale, key)
			}
			return true
		}); err != nil {
			return err
		}
		for _, key := range stale {
			if _, err := tx.Delete(key); err != nil {
				return err
			}
		}
		for _, iv := range intervals {
			in, err := json.Marshal(storedEvent{User: user, Timestamp: iv.Start, Kind: domain.ClockIn})
			if err != nil {
				return err
			}
			if _, _, err := tx.Set(eventKey(iv.Start, user, domain.ClockIn), string(in), nil); err != nil {
				return err
			}
			out, err := json.Marshal(storedEvent{User: user, Timestamp: iv.End, Kind: domain.ClockOut})
			if err != nil {
				return err
			}
			if _, _, err := tx.Set(eventKey(iv.End, user, domain.ClockOut), string(out), nil); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) Wages(ctx context.Context, users []string) (map[string]int64, error) {
	wages := make(map[string]int64, len(users))
	err := s.db.View(func(tx *buntdb.Tx) error {
		for _, u := range users {
			v, err := tx.Get("wage:" + u)
			if errors.Is(err, buntdb.ErrNotFound) {
				wages[u] = 0
				continue
			} else if err != nil {
				return err
			}
			cents, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return err
			}
			wages[u] = cents
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wages, nil
}

func (s *Store) SetWage(ctx context.Context, user string, cents int64) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set("wage:"+user, strconv.FormatInt(cents, 10), nil)
		return err
	})
}

func (s *Store) Purchases(ctx context.Context, month string) ([]domain.PurchaseItem, error) {
	var items []domain.PurchaseItem
	err := s.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get("purchases:" + month)
		if errors.Is(err, buntdb.ErrNotFound) {
			return nil
		} else if err != nil {
			return err
		}
		return json.Unmarshal([]byte(v), &items)
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ReplacePurchases(ctx context.Context, month string, items []domain.PurchaseItem) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		bs, err := json.Marshal(items)
		if err != nil {
			return err
		}
		_, _, err = tx.Set("purchases:"+month, string(bs), nil)
		return err
	})
}

func (s *Store) RecordPayment(ctx context.Context, amountCents int64, paidAt time.Time) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		key := fmt.Sprintf("payment:%020d", paidAt.UnixNano())
		_, _, err := tx.Set(key, strconv.FormatInt(amountCents, 10), nil)
		return err
	})
}

func (s *Store) RevenueCents(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := s.db.View(func(tx *buntdb.Tx) error {
		min := fmt.Sprintf("payment:%020d", from.UnixNano())
		max := fmt.Sprintf("payment:%020d", to.UnixNano()+1)
		var iterErr error
		if err := tx.AscendRange("", min, max, func(key, value string) bool {
			cents, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				iterErr = err
				return false
			}
			total += cents
			return true
		}); err != nil {
			return err
		}
		return iterErr
	})
	return total, err
}
