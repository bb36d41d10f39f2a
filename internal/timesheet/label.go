package timesheet

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"shopclock/internal/domain"
)

// Labels the engine synthesizes at a local midnight boundary. The day-end
// label displays as one minute to midnight; duration math treats it as a
// continuous close at 24:00 so split shifts sum to the true duration.
const (
	DayStartLabel = "12:00am"
	DayEndLabel   = "11:59pm"
)

var labelPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s?(am|pm)?$`)

// ParseTimeLabel converts a 12-hour clock label ("9:30am", "12:00 PM")
// into hours since local midnight. Labels without a meridiem are read as
// written ("13:30" is 13.5). Returns false when the label does not match.
func ParseTimeLabel(label string) (float64, bool) {
	m := labelPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(label)))
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if mm > 59 {
		return 0, false
	}
	switch m[3] {
	case "am":
		if h < 1 || h > 12 {
			return 0, false
		}
		if h == 12 {
			h = 0
		}
	case "pm":
		if h < 1 || h > 12 {
			return 0, false
		}
		if h < 12 {
			h += 12
		}
	default:
		if h > 23 {
			return 0, false
		}
	}
	return float64(h) + float64(mm)/60, true
}

// LabelHours is the lenient form of ParseTimeLabel: malformed labels
// degrade to 0.0 instead of failing, so a bad label contributes zero
// duration rather than aborting a computation. Callers that want to
// reject bad input outright use ParseTimeLabel directly.
func LabelHours(label string) float64 {
	v, _ := ParseTimeLabel(label)
	return v
}

// FormatTimeLabel renders t's local wall-clock time as a segment label.
func FormatTimeLabel(t time.Time) string {
	return t.Format("3:04pm")
}

// SegmentHours is the flat end-minus-start duration of one segment in
// hours. It never resolves a midnight wrap itself; intervals that cross
// midnight are split into per-day segments before this is called. A
// virtual day-end boundary counts as 24:00 exactly.
func SegmentHours(seg domain.Segment) float64 {
	start := LabelHours(seg.Start)
	end := LabelHours(seg.End)
	if seg.EndVirtual && seg.End == DayEndLabel {
		end = 24
	}
	return end - start
}

// ShiftTotal sums segment durations, virtual segments included. An open
// shift's virtual "now" endpoint counts toward displayed hours; whether
// it reaches payroll is the caller's opt-in at segmentation time.
func ShiftTotal(segments []domain.Segment) float64 {
	var total float64
	for _, seg := range segments {
		total += SegmentHours(seg)
	}
	return total
}

func labelSeconds(hours float64) int64 {
	return int64(math.Round(hours * 3600))
}
