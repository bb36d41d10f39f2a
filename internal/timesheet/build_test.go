package timesheet

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"shopclock/internal/domain"
)

func ts(year int, month time.Month, day, hour, min int) int64 {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC).Unix()
}

func utcOpts() Options {
	return Options{Location: time.UTC, Now: time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)}
}

func TestBuildSimpleDay(t *testing.T) {
	events := []domain.ClockEvent{
		{User: "alice", Timestamp: ts(2025, 3, 10, 9, 0), Kind: domain.ClockIn},
		{User: "alice", Timestamp: ts(2025, 3, 10, 17, 0), Kind: domain.ClockOut},
	}
	shifts, diags := Build(events, utcOpts())
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	got := shifts["alice"]
	if len(got) != 1 {
		t.Fatalf("expected 1 shift, got %d", len(got))
	}
	s := got[0]
	if s.Date != "2025-03-10" || s.Employee != "alice" {
		t.Fatalf("unexpected shift identity: %+v", s)
	}
	want := domain.Segment{Start: "9:00am", End: "5:00pm"}
	if len(s.Segments) != 1 || s.Segments[0] != want {
		t.Fatalf("unexpected segments: %+v", s.Segments)
	}
	if !approx(s.Hours, 8.0) {
		t.Fatalf("expected 8 hours, got %v", s.Hours)
	}
}

func TestBuildMultipleSegmentsSameDay(t *testing.T) {
	events := []domain.ClockEvent{
		{User: "alice", Timestamp: ts(2025, 3, 10, 9, 0), Kind: domain.ClockIn},
		{User: "alice", Timestamp: ts(2025, 3, 10, 12, 0), Kind: domain.ClockOut},
		{User: "alice", Timestamp: ts(2025, 3, 10, 13, 0), Kind: domain.ClockIn},
		{User: "alice", Timestamp: ts(2025, 3, 10, 17, 30), Kind: domain.ClockOut},
	}
	shifts, _ := Build(events, utcOpts())
	got := shifts["alice"]
	if len(got) != 1 {
		t.Fatalf("expected 1 shift, got %d", len(got))
	}
	if len(got[0].Segments) != 2 {
		t.Fatalf("expected 2 segments, got %+v", got[0].Segments)
	}
	if got[0].Segments[0].Start != "9:00am" || got[0].Segments[1].Start != "1:00pm" {
		t.Fatalf("segments out of order: %+v", got[0].Segments)
	}
	if !approx(got[0].Hours, 7.5) {
		t.Fatalf("expected 7.5 hours, got %v", got[0].Hours)
	}
}

func TestBuildMidnightSplit(t *testing.T) {
	events := []domain.ClockEvent{
		{User: "bob", Timestamp: ts(2025, 3, 10, 22, 0), Kind: domain.ClockIn},
		{User: "bob", Timestamp: ts(2025, 3, 11, 2, 0), Kind: domain.ClockOut},
	}
	shifts, diags := Build(events, utcOpts())
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	got := shifts["bob"]
	if len(got) != 2 {
		t.Fatalf("expected 2 shifts, got %d: %+v", len(got), got)
	}
	first, second := got[0], got[1]
	if first.Date != "2025-03-10" || second.Date != "2025-03-11" {
		t.Fatalf("unexpected dates: %s, %s", first.Date, second.Date)
	}
	wantFirst := domain.Segment{Start: "10:00pm", End: DayEndLabel, EndVirtual: true}
	if len(first.Segments) != 1 || first.Segments[0] != wantFirst {
		t.Fatalf("unexpected first-half segment: %+v", first.Segments)
	}
	wantSecond := domain.Segment{Start: DayStartLabel, End: "2:00am", StartVirtual: true}
	if len(second.Segments) != 1 || second.Segments[0] != wantSecond {
		t.Fatalf("unexpected second-half segment: %+v", second.Segments)
	}
	if !approx(first.Hours+second.Hours, 4.0) {
		t.Fatalf("expected halves to sum to 4.0, got %v", first.Hours+second.Hours)
	}
}

func TestBuildSpanningMultipleDays(t *testing.T) {
	events := []domain.ClockEvent{
		{User: "bob", Timestamp: ts(2025, 3, 10, 22, 0), Kind: domain.ClockIn},
		{User: "bob", Timestamp: ts(2025, 3, 12, 1, 0), Kind: domain.ClockOut},
	}
	shifts, _ := Build(events, utcOpts())
	got := shifts["bob"]
	if len(got) != 3 {
		t.Fatalf("expected 3 shifts, got %d", len(got))
	}
	middle := got[1]
	want := domain.Segment{Start: DayStartLabel, End: DayEndLabel, StartVirtual: true, EndVirtual: true}
	if len(middle.Segments) != 1 || middle.Segments[0] != want {
		t.Fatalf("unexpected middle-day segment: %+v", middle.Segments)
	}
	if !approx(middle.Hours, 24.0) {
		t.Fatalf("expected a full middle day, got %v", middle.Hours)
	}
	total := got[0].Hours + got[1].Hours + got[2].Hours
	if !approx(total, 27.0) {
		t.Fatalf("expected 27 hours total, got %v", total)
	}
}

func TestBuildClockOutAtMidnightStaysOnPriorDay(t *testing.T) {
	events := []domain.ClockEvent{
		{User: "bob", Timestamp: ts(2025, 3, 10, 22, 0), Kind: domain.ClockIn},
		{User: "bob", Timestamp: ts(2025, 3, 11, 0, 0), Kind: domain.ClockOut},
	}
	shifts, _ := Build(events, utcOpts())
	got := shifts["bob"]
	if len(got) != 1 {
		t.Fatalf("expected 1 shift, got %d: %+v", len(got), got)
	}
	if got[0].Date != "2025-03-10" {
		t.Fatalf("expected shift on 2025-03-10, got %s", got[0].Date)
	}
	if !approx(got[0].Hours, 2.0) {
		t.Fatalf("expected 2 hours, got %v", got[0].Hours)
	}
}

func TestBuildSplitOverflow(t *testing.T) {
	events := []domain.ClockEvent{
		{User: "bob", Timestamp: ts(2025, 3, 10, 9, 0), Kind: domain.ClockIn},
		{User: "bob", Timestamp: ts(2025, 5, 10, 9, 0), Kind: domain.ClockOut},
	}
	shifts, diags := Build(events, utcOpts())
	if len(shifts) != 0 {
		t.Fatalf("expected the interval to be dropped, got %+v", shifts)
	}
	if len(diags) != 1 || !strings.Contains(diags[0].Reason, "day boundaries") {
		t.Fatalf("expected a split overflow diagnostic, got %+v", diags)
	}
}

func TestBuildOpenShift(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	events := []domain.ClockEvent{
		{User: "alice", Timestamp: ts(2025, 3, 10, 9, 0), Kind: domain.ClockIn},
	}

	shifts, diags := Build(events, Options{IncludeOpenShift: true, Now: now, Location: time.UTC})
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	got := shifts["alice"]
	if len(got) != 1 {
		t.Fatalf("expected 1 shift, got %d", len(got))
	}
	seg := got[0].Segments[0]
	if seg.End != "3:30pm" || !seg.EndVirtual {
		t.Fatalf("expected virtual close at 3:30pm, got %+v", seg)
	}
	if !approx(got[0].Hours, 6.5) {
		t.Fatalf("expected 6.5 accrued hours, got %v", got[0].Hours)
	}

	// Without the opt-in, the trailing open punch is dropped entirely.
	shifts, diags = Build(events, Options{IncludeOpenShift: false, Now: now, Location: time.UTC})
	if len(shifts) != 0 {
		t.Fatalf("expected no shifts without the opt-in, got %+v", shifts)
	}
	if len(diags) != 0 {
		t.Fatalf("an open punch is not malformed, got %v", diags)
	}
}

func TestBuildDuplicateClockIn(t *testing.T) {
	events := []domain.ClockEvent{
		{User: "alice", Timestamp: ts(2025, 3, 10, 8, 0), Kind: domain.ClockIn},
		{User: "alice", Timestamp: ts(2025, 3, 10, 9, 0), Kind: domain.ClockIn},
		{User: "alice", Timestamp: ts(2025, 3, 10, 17, 0), Kind: domain.ClockOut},
	}
	shifts, diags := Build(events, utcOpts())
	got := shifts["alice"]
	if len(got) != 1 || len(got[0].Segments) != 1 {
		t.Fatalf("expected exactly one shift with one segment, got %+v", got)
	}
	if got[0].Segments[0].Start != "9:00am" {
		t.Fatalf("expected the newer punch to win, got %+v", got[0].Segments[0])
	}
	if len(diags) != 1 || diags[0].User != "alice" || diags[0].Timestamp != ts(2025, 3, 10, 8, 0) {
		t.Fatalf("expected a diagnostic for the dropped punch, got %+v", diags)
	}
}

func TestBuildOrphanClockOut(t *testing.T) {
	events := []domain.ClockEvent{
		{User: "alice", Timestamp: ts(2025, 3, 10, 7, 0), Kind: domain.ClockOut},
		{User: "alice", Timestamp: ts(2025, 3, 10, 9, 0), Kind: domain.ClockIn},
		{User: "alice", Timestamp: ts(2025, 3, 10, 17, 0), Kind: domain.ClockOut},
	}
	shifts, diags := Build(events, utcOpts())
	if len(shifts["alice"]) != 1 {
		t.Fatalf("expected the valid pair to survive, got %+v", shifts)
	}
	if len(diags) != 1 || diags[0].Timestamp != ts(2025, 3, 10, 7, 0) {
		t.Fatalf("expected a diagnostic for the stray clock-out, got %+v", diags)
	}
}

func TestBuildOutOfOrderEvents(t *testing.T) {
	events := []domain.ClockEvent{
		{User: "alice", Timestamp: ts(2025, 3, 10, 17, 0), Kind: domain.ClockOut},
		{User: "alice", Timestamp: ts(2025, 3, 10, 9, 0), Kind: domain.ClockIn},
	}
	shifts, diags := Build(events, utcOpts())
	if len(shifts["alice"]) != 1 {
		t.Fatalf("expected the pair to be recovered after sorting, got %+v", shifts)
	}
	if len(diags) != 1 {
		t.Fatalf("expected an out-of-order diagnostic, got %+v", diags)
	}
	if !approx(shifts["alice"][0].Hours, 8.0) {
		t.Fatalf("expected 8 hours, got %v", shifts["alice"][0].Hours)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	events := []domain.ClockEvent{
		{User: "alice", Timestamp: ts(2025, 3, 10, 9, 0), Kind: domain.ClockIn},
		{User: "alice", Timestamp: ts(2025, 3, 10, 17, 0), Kind: domain.ClockOut},
		{User: "bob", Timestamp: ts(2025, 3, 10, 22, 0), Kind: domain.ClockIn},
		{User: "bob", Timestamp: ts(2025, 3, 11, 2, 0), Kind: domain.ClockOut},
		{User: "carol", Timestamp: ts(2025, 3, 11, 8, 0), Kind: domain.ClockIn},
	}
	opts := Options{IncludeOpenShift: true, Now: time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC), Location: time.UTC}
	first, firstDiags := Build(events, opts)
	second, secondDiags := Build(events, opts)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output across runs:\n%+v\n%+v", first, second)
	}
	if !reflect.DeepEqual(firstDiags, secondDiags) {
		t.Fatalf("expected identical diagnostics across runs")
	}
}

func TestBuildSeparatesUsers(t *testing.T) {
	events := []domain.ClockEvent{
		{User: "alice", Timestamp: ts(2025, 3, 10, 9, 0), Kind: domain.ClockIn},
		{User: "bob", Timestamp: ts(2025, 3, 10, 10, 0), Kind: domain.ClockIn},
		{User: "alice", Timestamp: ts(2025, 3, 10, 12, 0), Kind: domain.ClockOut},
		{User: "bob", Timestamp: ts(2025, 3, 10, 14, 0), Kind: domain.ClockOut},
	}
	shifts, _ := Build(events, utcOpts())
	if len(shifts) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(shifts))
	}
	if !approx(shifts["alice"][0].Hours, 3.0) || !approx(shifts["bob"][0].Hours, 4.0) {
		t.Fatalf("hours attributed to the wrong employee: %+v", shifts)
	}
}
