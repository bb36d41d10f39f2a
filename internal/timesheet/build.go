package timesheet

import (
	"errors"
	"sort"
	"time"

	"shopclock/internal/domain"
)

// maxDaySplits bounds how many midnights one raw interval may cross.
// A punch left open for longer than a month is a corrupted timestamp,
// not an employee at work.
const maxDaySplits = 32

// ErrSplitOverflow reports an interval that crossed more than
// maxDaySplits day boundaries; the interval is dropped.
var ErrSplitOverflow = errors.New("interval spans too many day boundaries")

// Options controls a Build run. The engine itself is pure: everything it
// needs arrives here.
type Options struct {
	// IncludeOpenShift closes a trailing unmatched clock-in virtually at
	// Now. When false the open punch is dropped from the output.
	IncludeOpenShift bool
	// Now anchors the virtual close of an open shift. Zero means
	// time.Now().
	Now time.Time
	// Location defines the local calendar days punches are bucketed
	// into. Nil means time.Local.
	Location *time.Location
}

// Build turns a raw punch stream into per-day Shift records for every
// employee present in it. Shifts come back ordered by date with segments
// in chronological order; intervals that cross local midnight are split
// into day-bucketed segments with virtual boundaries. The run is
// deterministic: the same events and options always produce the same
// output.
//
// Malformed streams (orphan clock-outs, doubled clock-ins, out-of-order
// timestamps) never abort the run; each problem is skipped and reported
// in the returned diagnostics so the host can log it.
func Build(events []domain.ClockEvent, opts Options) (map[string][]domain.Shift, []domain.Diagnostic) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.In(loc)

	byUser := make(map[string][]domain.ClockEvent)
	for _, e := range events {
		byUser[e.User] = append(byUser[e.User], e)
	}
	users := make([]string, 0, len(byUser))
	for u := range byUser {
		users = append(users, u)
	}
	sort.Strings(users)

	out := make(map[string][]domain.Shift)
	var diags []domain.Diagnostic
	for _, u := range users {
		evs := byUser[u]
		for i := 1; i < len(evs); i++ {
			if evs[i].Timestamp < evs[i-1].Timestamp {
				diags = append(diags, domain.Diagnostic{User: u, Timestamp: evs[i].Timestamp, Reason: "events out of timestamp order"})
				sort.SliceStable(evs, func(a, b int) bool { return evs[a].Timestamp < evs[b].Timestamp })
				break
			}
		}
		shifts, ds := segmentUser(u, evs, now, loc, opts.IncludeOpenShift)
		diags = append(diags, ds...)
		if len(shifts) > 0 {
			out[u] = shifts
		}
	}
	return out, diags
}

type rawInterval struct {
	start, end time.Time
	openEnd    bool
}

func segmentUser(user string, evs []domain.ClockEvent, now time.Time, loc *time.Location, includeOpen bool) ([]domain.Shift, []domain.Diagnostic) {
	var (
		open      *time.Time
		intervals []rawInterval
		diags     []domain.Diagnostic
	)
	for _, e := range evs {
		t := e.Time(loc)
		switch e.Kind {
		case domain.ClockIn:
			if open != nil {
				diags = append(diags, domain.Diagnostic{User: user, Timestamp: open.Unix(), Reason: "clock-in while already clocked in, dropping earlier punch"})
			}
			open = &t
		case domain.ClockOut:
			if open == nil {
				diags = append(diags, domain.Diagnostic{User: user, Timestamp: e.Timestamp, Reason: "clock-out without matching clock-in"})
				continue
			}
			intervals = append(intervals, rawInterval{start: *open, end: t})
			open = nil
		default:
			diags = append(diags, domain.Diagnostic{User: user, Timestamp: e.Timestamp, Reason: "unknown punch kind"})
		}
	}
	if open != nil && includeOpen && !now.Before(*open) {
		intervals = append(intervals, rawInterval{start: *open, end: now, openEnd: true})
	}

	var shifts []domain.Shift
	index := make(map[domain.Date]int)
	for _, iv := range intervals {
		parts, err := splitInterval(iv, loc)
		if err != nil {
			diags = append(diags, domain.Diagnostic{User: user, Timestamp: iv.start.Unix(), Reason: err.Error()})
			continue
		}
		for _, p := range parts {
			i, ok := index[p.date]
			if !ok {
				i = len(shifts)
				index[p.date] = i
				shifts = append(shifts, domain.Shift{Date: p.date, Employee: user})
			}
			shifts[i].Segments = append(shifts[i].Segments, p.seg)
		}
	}
	for i := range shifts {
		shifts[i].Hours = ShiftTotal(shifts[i].Segments)
	}
	sort.Slice(shifts, func(a, b int) bool { return shifts[a].Date < shifts[b].Date })
	return shifts, diags
}

type segmentPart struct {
	date domain.Date
	seg  domain.Segment
}

// splitInterval cuts one raw interval at every local midnight it crosses,
// attributing each piece to the calendar day it starts on. The synthetic
// boundary edges are marked virtual; real punch edges are not.
func splitInterval(iv rawInterval, loc *time.Location) ([]segmentPart, error) {
	var parts []segmentPart
	cur := iv.start
	fromMidnight := false
	splits := 0
	for domain.DateOf(cur) != domain.DateOf(iv.end) {
		splits++
		if splits > maxDaySplits {
			return nil, ErrSplitOverflow
		}
		seg := domain.Segment{Start: FormatTimeLabel(cur), End: DayEndLabel, EndVirtual: true, StartVirtual: fromMidnight}
		if fromMidnight {
			seg.Start = DayStartLabel
		}
		parts = append(parts, segmentPart{date: domain.DateOf(cur), seg: seg})
		y, m, d := cur.Date()
		cur = time.Date(y, m, d+1, 0, 0, 0, 0, loc)
		fromMidnight = true
	}
	// A closing punch exactly at midnight belongs wholly to the prior day.
	if !cur.Equal(iv.end) || len(parts) == 0 {
		seg := domain.Segment{Start: FormatTimeLabel(cur), End: FormatTimeLabel(iv.end), StartVirtual: fromMidnight, EndVirtual: iv.openEnd}
		if fromMidnight {
			seg.Start = DayStartLabel
		}
		parts = append(parts, segmentPart{date: domain.DateOf(cur), seg: seg})
	}
	return parts, nil
}
