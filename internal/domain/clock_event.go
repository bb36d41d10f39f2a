package domain

import "time"

// ClockKind distinguishes the two punch directions on the time clock.
type ClockKind string

const (
	ClockIn  ClockKind = "in"
	ClockOut ClockKind = "out"
)

// ClockEvent is a single immutable punch recorded by an employee.
// Timestamp is Unix seconds; events for a user are meant to alternate
// in/out in ascending order, but the segmentation engine tolerates
// streams that do not.
type ClockEvent struct {
	User      string
	Timestamp int64
	Kind      ClockKind
}

// Time returns the punch instant in the given location.
func (e ClockEvent) Time(loc *time.Location) time.Time {
	return time.Unix(e.Timestamp, 0).In(loc)
}

// Interval is a raw [Start, End) worked period in Unix seconds, the
// write-back shape for manual timesheet corrections.
type Interval struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Diagnostic records a non-fatal data-quality problem found while
// segmenting a punch stream. The batch continues past it.
type Diagnostic struct {
	User      string
	Timestamp int64
	Reason    string
}
