// Package schedule implements the open/closed determination logic for a
// venue's weekly window. All functions are pure; callers supply the clock.
package schedule

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"venue-status-backend/internal/model"
)

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// HourOfDay returns the fractional hour of the local day for t
// (e.g. 22:30 -> 22.5).
func HourOfDay(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

// IsOpen reports whether the venue is open at the given instant.
//
// The same-day override takes absolute precedence over the window. The
// current weekday must be listed, including for windows that cross midnight:
// a Friday 22:00-00:00 window is already closed at Saturday 00:01 unless
// Saturday is listed too. The window is half-open: [start, end).
//
// start >= end means the window wraps past midnight. start == end therefore
// evaluates as always-true and denotes a venue open all day on its listed
// days, never a zero-width window.
func IsOpen(s model.Schedule, now time.Time) bool {
	if s.ClosedToday {
		return false
	}

	currentDay := int(now.Weekday())
	if !containsDay(s.DayList(), currentDay) {
		return false
	}

	currentHour := HourOfDay(now)
	if s.StartHour < s.EndHour {
		return s.StartHour <= currentHour && currentHour < s.EndHour
	}
	return currentHour >= s.StartHour || currentHour < s.EndHour
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

// FormatHour renders a fractional hour as zero-padded HH:MM
// (e.g. 22.5 -> "22:30").
func FormatHour(value float64) string {
	hours := int(math.Floor(value))
	minutes := int(math.Round((value - math.Floor(value)) * 60))
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// Info builds the human-readable display string for a schedule,
// e.g. "Open 22:00 - 01:00 | Sun, Mon, Tue".
func Info(s model.Schedule) string {
	names := make([]string, 0, 7)
	for _, d := range s.DayList() {
		if d >= 0 && d < len(dayNames) {
			names = append(names, dayNames[d])
		} else {
			names = append(names, strconv.Itoa(d))
		}
	}
	return fmt.Sprintf("Open %s - %s | %s",
		FormatHour(s.StartHour), FormatHour(s.EndHour), strings.Join(names, ", "))
}
