package domain

import "time"

// Date is a local calendar day in YYYY-MM-DD form. The string form sorts
// chronologically, which the payroll range filter relies on.
type Date string

// DateOf returns the calendar date t falls on, in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format("2006-01-02"))
}

// Segment is one contiguous same-day interval of worked time, bounded by
// 12-hour clock labels like "9:30am". A virtual endpoint was synthesized
// by the engine (midnight split point, or "now" for an open shift) and
// does not correspond to a real punch.
type Segment struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	StartVirtual bool   `json:"start_virtual,omitempty"`
	EndVirtual   bool   `json:"end_virtual,omitempty"`
}

// Virtual reports whether either endpoint was synthesized. Virtual
// segments are display-only and must never be written back as punches.
func (s Segment) Virtual() bool {
	return s.StartVirtual || s.EndVirtual
}

// Shift is the set of segments attributed to one employee on one
// calendar date. Hours is derived from the segments and must be
// recomputed whenever they change.
type Shift struct {
	Date     Date      `json:"date"`
	Employee string    `json:"employee"`
	Segments []Segment `json:"segments"`
	Hours    float64   `json:"hours"`
}

// PayrollEntry is one employee's totals over a requested date range.
type PayrollEntry struct {
	Name      string  `json:"name"`
	WageCents int64   `json:"wage_cents"`
	Hours     float64 `json:"hours"`
}
