package schedule

import (
	"fmt"
	"time"
)

// HourWindow restricts slot generation to whole hours within
// [StartHour, EndHour) on each day of the range.
type HourWindow struct {
	StartHour int
	EndHour   int
}

// InvalidRangeError reports an unusable date range or hour window. It maps
// to a client input error, never a retry.
type InvalidRangeError struct {
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return "invalid range: " + e.Reason
}

// Slot is one generated candidate interval, start strictly before end.
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
}

// wholeDayEnd keeps the stored whole-day slots ending at 23:59:59.999, the
// boundary participants already have persisted against.
const wholeDayEnd = 24*time.Hour - time.Millisecond

// GenerateSlots expands the inclusive calendar-day range [startDate, endDate]
// into an ordered sequence of candidate slots.
//
// With a window, each day yields one slot per whole hour h in
// [StartHour, EndHour): [day h:00, day h+1:00). Without one, each day yields
// a single whole-day slot. Output is ascending by start time, day-major;
// callers rely on that order when rendering.
//
// Time-of-day on the inputs is ignored; the dates' location is preserved.
func GenerateSlots(startDate, endDate time.Time, window *HourWindow) ([]Slot, error) {
	start := truncateToDay(startDate)
	end := truncateToDay(endDate)

	if end.Before(start) {
		return nil, &InvalidRangeError{Reason: "end date is before start date"}
	}

	if window != nil {
		if window.StartHour < 0 || window.StartHour > 23 {
			return nil, &InvalidRangeError{Reason: fmt.Sprintf("start hour %d is outside 0-23", window.StartHour)}
		}
		if window.EndHour < 0 || window.EndHour > 23 {
			return nil, &InvalidRangeError{Reason: fmt.Sprintf("end hour %d is outside 0-23", window.EndHour)}
		}
		if window.EndHour <= window.StartHour {
			return nil, &InvalidRangeError{Reason: fmt.Sprintf("end hour %d is not after start hour %d", window.EndHour, window.StartHour)}
		}
	}

	days := daysBetween(start, end) + 1

	var slots []Slot
	if window != nil {
		slots = make([]Slot, 0, days*(window.EndHour-window.StartHour))
	} else {
		slots = make([]Slot, 0, days)
	}

	for i := 0; i < days; i++ {
		day := addDays(start, i)
		if window == nil {
			slots = append(slots, Slot{
				StartTime: day,
				EndTime:   day.Add(wholeDayEnd),
			})
			continue
		}
		for h := window.StartHour; h < window.EndHour; h++ {
			slots = append(slots, Slot{
				StartTime: day.Add(time.Duration(h) * time.Hour),
				EndTime:   day.Add(time.Duration(h+1) * time.Hour),
			})
		}
	}

	return slots, nil
}

// ParseHourMarker reads an "HH:MM" marker ("09:00") into its hour component.
// Only whole hours are accepted; minutes must be zero.
func ParseHourMarker(marker string) (int, error) {
	t, err := time.Parse("15:04", marker)
	if err != nil {
		return 0, &InvalidRangeError{Reason: fmt.Sprintf("malformed hour marker %q", marker)}
	}
	if t.Minute() != 0 {
		return 0, &InvalidRangeError{Reason: fmt.Sprintf("hour marker %q is not a whole hour", marker)}
	}
	return t.Hour(), nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func addDays(day time.Time, n int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, day.Location())
}

func daysBetween(start, end time.Time) int {
	// Both are midnight-truncated; counting by calendar arithmetic keeps the
	// result correct across DST transitions where a day is not 24h long.
	days := 0
	for day := start; day.Before(end); day = addDays(day, 1) {
		days++
	}
	return days
}
