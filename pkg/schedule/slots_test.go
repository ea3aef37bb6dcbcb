package schedule

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateSlots_WholeDays(t *testing.T) {
	slots, err := GenerateSlots(date(2024, time.January, 1), date(2024, time.January, 3), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}

	for i, slot := range slots {
		wantStart := date(2024, time.January, 1+i)
		if !slot.StartTime.Equal(wantStart) {
			t.Errorf("slot %d: start = %s, want %s", i, slot.StartTime, wantStart)
		}
		wantEnd := wantStart.Add(24*time.Hour - time.Millisecond)
		if !slot.EndTime.Equal(wantEnd) {
			t.Errorf("slot %d: end = %s, want %s", i, slot.EndTime, wantEnd)
		}
	}
}

func TestGenerateSlots_HourWindow(t *testing.T) {
	// The canonical example: two days, 09:00-11:00 -> four one-hour slots.
	slots, err := GenerateSlots(date(2024, time.January, 1), date(2024, time.January, 2), &HourWindow{StartHour: 9, EndHour: 11})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}

	want := []struct {
		day  int
		hour int
	}{
		{1, 9}, {1, 10}, {2, 9}, {2, 10},
	}
	for i, w := range want {
		wantStart := time.Date(2024, time.January, w.day, w.hour, 0, 0, 0, time.UTC)
		if !slots[i].StartTime.Equal(wantStart) {
			t.Errorf("slot %d: start = %s, want %s", i, slots[i].StartTime, wantStart)
		}
		if !slots[i].EndTime.Equal(wantStart.Add(time.Hour)) {
			t.Errorf("slot %d: end = %s, want %s", i, slots[i].EndTime, wantStart.Add(time.Hour))
		}
	}
}

func TestGenerateSlots_CountAndShape(t *testing.T) {
	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		window    *HourWindow
		wantCount int
	}{
		{"single day no window", date(2024, time.March, 10), date(2024, time.March, 10), nil, 1},
		{"week no window", date(2024, time.March, 4), date(2024, time.March, 10), nil, 7},
		{"single day business hours", date(2024, time.March, 10), date(2024, time.March, 10), &HourWindow{9, 17}, 8},
		{"crosses month boundary", date(2024, time.January, 31), date(2024, time.February, 1), &HourWindow{10, 12}, 4},
		{"leap day", date(2024, time.February, 28), date(2024, time.March, 1), nil, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := GenerateSlots(tt.start, tt.end, tt.window)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(slots) != tt.wantCount {
				t.Fatalf("expected %d slots, got %d", tt.wantCount, len(slots))
			}

			for i, slot := range slots {
				if !slot.StartTime.Before(slot.EndTime) {
					t.Errorf("slot %d: start %s not before end %s", i, slot.StartTime, slot.EndTime)
				}
				if i > 0 && slots[i-1].StartTime.After(slot.StartTime) {
					t.Errorf("slot %d out of order: %s after %s", i, slots[i-1].StartTime, slot.StartTime)
				}
				if i > 0 && slot.StartTime.Before(slots[i-1].EndTime) && tt.window != nil {
					t.Errorf("slot %d overlaps previous: starts %s before previous end %s", i, slot.StartTime, slots[i-1].EndTime)
				}
			}
		})
	}
}

func TestGenerateSlots_IgnoresTimeOfDay(t *testing.T) {
	noon := time.Date(2024, time.May, 1, 12, 30, 45, 0, time.UTC)
	evening := time.Date(2024, time.May, 2, 23, 59, 0, 0, time.UTC)

	slots, err := GenerateSlots(noon, evening, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if !slots[0].StartTime.Equal(date(2024, time.May, 1)) {
		t.Errorf("first slot start = %s, want midnight May 1", slots[0].StartTime)
	}
}

func TestGenerateSlots_PreservesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, loc)

	slots, err := GenerateSlots(start, start, &HourWindow{8, 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, slot := range slots {
		if slot.StartTime.Location() != loc {
			t.Errorf("slot %d lost its location: %v", i, slot.StartTime.Location())
		}
	}
}

func TestGenerateSlots_InvalidRanges(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		window *HourWindow
	}{
		{"end before start", date(2024, time.January, 2), date(2024, time.January, 1), nil},
		{"end hour equals start hour", date(2024, time.January, 1), date(2024, time.January, 1), &HourWindow{9, 9}},
		{"end hour before start hour", date(2024, time.January, 1), date(2024, time.January, 2), &HourWindow{17, 9}},
		{"negative start hour", date(2024, time.January, 1), date(2024, time.January, 1), &HourWindow{-1, 5}},
		{"end hour past 23", date(2024, time.January, 1), date(2024, time.January, 1), &HourWindow{9, 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := GenerateSlots(tt.start, tt.end, tt.window)
			if err == nil {
				t.Fatalf("expected error, got %d slots", len(slots))
			}
			var rangeErr *InvalidRangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("expected *InvalidRangeError, got %T: %v", err, err)
			}
		})
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	window := &HourWindow{StartHour: 9, EndHour: 12}
	first, err := GenerateSlots(date(2024, time.April, 1), date(2024, time.April, 3), window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := GenerateSlots(date(2024, time.April, 1), date(2024, time.April, 3), window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].StartTime.Equal(second[i].StartTime) || !first[i].EndTime.Equal(second[i].EndTime) {
			t.Errorf("slot %d differs between runs", i)
		}
	}
}

func TestParseHourMarker(t *testing.T) {
	tests := []struct {
		marker   string
		wantHour int
		wantErr  bool
	}{
		{"09:00", 9, false},
		{"00:00", 0, false},
		{"23:00", 23, false},
		{"09:30", 0, true},
		{"24:00", 0, true},
		{"9am", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			hour, err := ParseHourMarker(tt.marker)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.marker)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if hour != tt.wantHour {
				t.Errorf("ParseHourMarker(%q) = %d, want %d", tt.marker, hour, tt.wantHour)
			}
		})
	}
}
