package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"venue-status-backend/internal/model"
)

// newSchedule builds a schedule for tests. days are stored verbatim.
func newSchedule(start, end float64, days []int, closedToday bool) model.Schedule {
	s := model.Schedule{StartHour: start, EndHour: end, ClosedToday: closedToday}
	s.SetDayList(days)
	return s
}

// Fixed week in August 2026: the 23rd is a Sunday.
func onDay(weekday time.Weekday, hour, min int) time.Time {
	return time.Date(2026, time.August, 23+int(weekday), hour, min, 0, 0, time.UTC)
}

func TestIsOpen_NonWrappingWindow(t *testing.T) {
	s := newSchedule(9, 17, []int{1, 2, 3, 4, 5}, false)

	assert.True(t, IsOpen(s, onDay(time.Monday, 9, 0)), "opens exactly at start")
	assert.True(t, IsOpen(s, onDay(time.Monday, 12, 30)))
	assert.False(t, IsOpen(s, onDay(time.Monday, 17, 0)), "end is exclusive")
	assert.False(t, IsOpen(s, onDay(time.Monday, 8, 59)))
	assert.False(t, IsOpen(s, onDay(time.Sunday, 12, 0)), "day not listed")
}

func TestIsOpen_WrappingWindow(t *testing.T) {
	// Open 22:00 - 01:00, Sun-Thu.
	s := newSchedule(22, 1, []int{0, 1, 2, 3, 4}, false)

	assert.True(t, IsOpen(s, onDay(time.Tuesday, 23, 30)), "Tuesday 23:30 inside the window")
	assert.False(t, IsOpen(s, onDay(time.Tuesday, 2, 0)), "Tuesday 02:00 is past the spillover")
	assert.True(t, IsOpen(s, onDay(time.Wednesday, 0, 30)), "Wednesday 00:30 inside the wrap")
	assert.True(t, IsOpen(s, onDay(time.Monday, 22, 0)), "opens exactly at start")
	assert.False(t, IsOpen(s, onDay(time.Monday, 1, 0)), "close hour is exclusive")
}

func TestIsOpen_DayCheckGatesWrapBranch(t *testing.T) {
	// Friday-only window crossing midnight: 22:00 - 00:00.
	s := newSchedule(22, 0, []int{5}, false)

	assert.True(t, IsOpen(s, onDay(time.Friday, 23, 59)))
	// The hour condition alone would pass at Saturday 00:01, but Saturday is
	// not a listed day.
	assert.False(t, IsOpen(s, onDay(time.Saturday, 0, 1)))
}

func TestIsOpen_StartEqualsEndMeansAllDay(t *testing.T) {
	s := newSchedule(10, 10, []int{2}, false)

	assert.True(t, IsOpen(s, onDay(time.Tuesday, 0, 0)))
	assert.True(t, IsOpen(s, onDay(time.Tuesday, 10, 0)))
	assert.True(t, IsOpen(s, onDay(time.Tuesday, 23, 59)))
	assert.False(t, IsOpen(s, onDay(time.Wednesday, 10, 0)), "still gated by day membership")
}

func TestIsOpen_ClosedTodayOverridesEverything(t *testing.T) {
	alwaysOpen := newSchedule(0, 0, []int{0, 1, 2, 3, 4, 5, 6}, true)
	assert.False(t, IsOpen(alwaysOpen, onDay(time.Monday, 12, 0)))

	inWindow := newSchedule(9, 17, []int{1}, true)
	assert.False(t, IsOpen(inWindow, onDay(time.Monday, 12, 0)))
}

func TestIsOpen_FractionalHours(t *testing.T) {
	// Open 22:30 - 01:15.
	s := newSchedule(22.5, 1.25, []int{1}, false)

	assert.False(t, IsOpen(s, onDay(time.Monday, 22, 29)))
	assert.True(t, IsOpen(s, onDay(time.Monday, 22, 30)))
	assert.True(t, IsOpen(s, onDay(time.Monday, 1, 14)))
	assert.False(t, IsOpen(s, onDay(time.Monday, 1, 15)))
}

func TestHourOfDay(t *testing.T) {
	assert.InDelta(t, 22.5, HourOfDay(onDay(time.Monday, 22, 30)), 1e-9)
	assert.InDelta(t, 0.0, HourOfDay(onDay(time.Monday, 0, 0)), 1e-9)
}

func TestFormatHour(t *testing.T) {
	assert.Equal(t, "22:30", FormatHour(22.5))
	assert.Equal(t, "01:00", FormatHour(1))
	assert.Equal(t, "09:15", FormatHour(9.25))
	assert.Equal(t, "00:00", FormatHour(0))
}

func TestInfo(t *testing.T) {
	s := newSchedule(22, 1, []int{0, 1, 2, 3, 4}, false)
	assert.Equal(t, "Open 22:00 - 01:00 | Sun, Mon, Tue, Wed, Thu", Info(s))
}
