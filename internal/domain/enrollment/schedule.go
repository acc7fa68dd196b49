package enrollment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Schedule parsing errors
var (
	ErrInvalidDays      = errors.New("invalid day code")
	ErrInvalidTimeRange = errors.New("invalid time range")
)

// Day is a weekday code as used in course schedules ("M", "T", "W", "Th", "F").
type Day string

const (
	DayMonday    Day = "M"
	DayTuesday   Day = "T"
	DayWednesday Day = "W"
	DayThursday  Day = "Th"
	DayFriday    Day = "F"
)

// WeekDays lists the day codes in calendar order.
var WeekDays = []Day{DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday}

// dayNames maps day codes to full weekday names for display.
var dayNames = map[Day]string{
	DayMonday:    "Monday",
	DayTuesday:   "Tuesday",
	DayWednesday: "Wednesday",
	DayThursday:  "Thursday",
	DayFriday:    "Friday",
}

// Name returns the full weekday name ("Th" -> "Thursday").
// Unknown codes are returned unchanged.
func (d Day) Name() string {
	if name, ok := dayNames[d]; ok {
		return name
	}
	return string(d)
}

// ParseDays parses a concatenated day string such as "MWF" or "TTh" into day
// codes. "Th" is consumed as a unit before the single-letter codes, so "TTh"
// is Tuesday+Thursday rather than Tuesday twice. An empty string parses to nil
// (no fixed schedule). Unknown characters are an error.
func ParseDays(s string) ([]Day, error) {
	if s == "" {
		return nil, nil
	}

	var days []Day
	seen := make(map[Day]bool)
	for i := 0; i < len(s); {
		var day Day
		switch {
		case strings.HasPrefix(s[i:], string(DayThursday)):
			day = DayThursday
			i += 2
		case s[i] == 'M', s[i] == 'T', s[i] == 'W', s[i] == 'F':
			day = Day(s[i])
			i++
		default:
			return nil, fmt.Errorf("%w: %q in %q", ErrInvalidDays, s[i], s)
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	return days, nil
}

// daySet is the lenient variant used by conflict evaluation: unknown
// characters are skipped instead of failing, so pre-validation data loaded
// from disk can still be compared.
func daySet(s string) map[Day]bool {
	set := make(map[Day]bool)
	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], string(DayThursday)):
			set[DayThursday] = true
			i += 2
		case s[i] == 'M', s[i] == 'T', s[i] == 'W', s[i] == 'F':
			set[Day(s[i])] = true
			i++
		default:
			i++
		}
	}
	return set
}

// daysOverlap reports whether two day strings share at least one weekday.
func daysOverlap(a, b string) bool {
	setA := daySet(a)
	for day := range daySet(b) {
		if setA[day] {
			return true
		}
	}
	return false
}

// TimeRange is a start/end pair in minutes since midnight.
type TimeRange struct {
	start int
	end   int
}

// Start returns the start of the range in minutes since midnight.
func (t TimeRange) Start() int {
	return t.start
}

// End returns the end of the range in minutes since midnight.
func (t TimeRange) End() int {
	return t.end
}

// Overlaps reports whether two ranges intersect. Ranges are half-open:
// one course ending at 10:15 and another starting at 10:15 do not overlap.
func (t TimeRange) Overlaps(other TimeRange) bool {
	return t.start < other.end && other.start < t.end
}

// ParseTimeRange parses a "HH:MM-HH:MM" range such as "9:00-10:15".
func ParseTimeRange(s string) (TimeRange, error) {
	startStr, endStr, ok := strings.Cut(s, "-")
	if !ok {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidTimeRange, s)
	}

	start, err := parseClock(strings.TrimSpace(startStr))
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimeRange, s, err)
	}
	end, err := parseClock(strings.TrimSpace(endStr))
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimeRange, s, err)
	}

	return TimeRange{start: start, end: end}, nil
}

// parseClock converts "H:MM" or "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	hourStr, minuteStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("missing ':' in %q", s)
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("bad hour in %q", s)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("bad minute in %q", s)
	}
	return hour*60 + minute, nil
}

// timesOverlap is the fail-open overlap check used by conflict evaluation:
// a malformed range is treated as non-conflicting rather than surfaced as an
// error, so bad legacy data cannot block a drop or a catalog view. Schedule
// data is validated strictly when it is set on a course.
func timesOverlap(a, b string) bool {
	rangeA, err := ParseTimeRange(a)
	if err != nil {
		return false
	}
	rangeB, err := ParseTimeRange(b)
	if err != nil {
		return false
	}
	return rangeA.Overlaps(rangeB)
}
