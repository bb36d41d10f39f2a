package timesheet

import (
	"fmt"
	"time"

	"shopclock/internal/domain"
)

// IntervalsForDay converts an edited segment set for one employee/day
// back into absolute Unix intervals anchored to dayStart (the day's
// local midnight), the shape the attendance store persists. Virtual
// segments are display-only and are filtered out before conversion.
// The result depends only on the inputs, so a retried write-back
// produces the same intervals.
func IntervalsForDay(segments []domain.Segment, dayStart time.Time) []domain.Interval {
	base := dayStart.Unix()
	var out []domain.Interval
	for _, seg := range segments {
		if seg.Virtual() {
			continue
		}
		out = append(out, domain.Interval{
			Start: base + labelSeconds(LabelHours(seg.Start)),
			End:   base + labelSeconds(LabelHours(seg.End)),
		})
	}
	return out
}

// ValidateSegments is the strict parse-or-reject boundary for segments
// arriving from outside (manual corrections). The engine itself stays
// lenient; external input does not get to lean on that.
func ValidateSegments(segments []domain.Segment) error {
	for i, seg := range segments {
		start, ok := ParseTimeLabel(seg.Start)
		if !ok {
			return fmt.Errorf("segment %d: unparsable start label %q", i, seg.Start)
		}
		end, ok := ParseTimeLabel(seg.End)
		if !ok {
			return fmt.Errorf("segment %d: unparsable end label %q", i, seg.End)
		}
		if end < start {
			return fmt.Errorf("segment %d: end %q before start %q", i, seg.End, seg.Start)
		}
	}
	return nil
}
