package timesheet

import (
	"testing"
	"time"

	"shopclock/internal/domain"
)

func TestIntervalsForDay(t *testing.T) {
	dayStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	segments := []domain.Segment{
		{Start: "9:30am", End: "12:00pm"},
		{Start: "1:00pm", End: "5:00pm"},
	}
	got := IntervalsForDay(segments, dayStart)
	if len(got) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(got))
	}
	base := dayStart.Unix()
	want := []domain.Interval{
		{Start: base + 9*3600 + 1800, End: base + 12*3600},
		{Start: base + 13*3600, End: base + 17*3600},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("interval %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestIntervalsForDayFiltersVirtual(t *testing.T) {
	dayStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	segments := []domain.Segment{
		{Start: DayStartLabel, End: "2:00am", StartVirtual: true},
		{Start: "9:00am", End: "5:00pm"},
		{Start: "10:00pm", End: DayEndLabel, EndVirtual: true},
	}
	got := IntervalsForDay(segments, dayStart)
	if len(got) != 1 {
		t.Fatalf("expected virtual segments to be filtered, got %+v", got)
	}
	if got[0].Start != dayStart.Unix()+9*3600 {
		t.Fatalf("unexpected surviving interval: %+v", got[0])
	}
}

// Labels converted to intervals and segmented again come back exactly.
func TestRoundTrip(t *testing.T) {
	dayStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	original := []domain.Segment{
		{Start: "9:30am", End: "12:15pm"},
		{Start: "1:05pm", End: "5:45pm"},
	}
	intervals := IntervalsForDay(original, dayStart)

	var events []domain.ClockEvent
	for _, iv := range intervals {
		events = append(events,
			domain.ClockEvent{User: "alice", Timestamp: iv.Start, Kind: domain.ClockIn},
			domain.ClockEvent{User: "alice", Timestamp: iv.End, Kind: domain.ClockOut},
		)
	}
	shifts, diags := Build(events, utcOpts())
	if len(diags) != 0 {
		t.Fatalf("expected clean round trip, got diagnostics %v", diags)
	}
	got := shifts["alice"]
	if len(got) != 1 {
		t.Fatalf("expected 1 shift, got %d", len(got))
	}
	for i, seg := range got[0].Segments {
		if seg != original[i] {
			t.Fatalf("segment %d = %+v, want %+v", i, seg, original[i])
		}
	}
}

func TestValidateSegments(t *testing.T) {
	good := []domain.Segment{{Start: "9:00am", End: "5:00pm"}}
	if err := ValidateSegments(good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := []domain.Segment{{Start: "late-ish", End: "5:00pm"}}
	if err := ValidateSegments(bad); err == nil {
		t.Fatalf("expected an error for an unparsable start label")
	}
	inverted := []domain.Segment{{Start: "5:00pm", End: "9:00am"}}
	if err := ValidateSegments(inverted); err == nil {
		t.Fatalf("expected an error for end before start")
	}
}
