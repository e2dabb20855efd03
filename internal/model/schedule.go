package model

import (
	"strconv"
	"strings"
	"time"
)

// Schedule is the weekly recurring open window of a venue plus today's
// override. Hours are fractional hours of local day (22.5 = 22:30). Days are
// weekday numbers 0=Sunday..6=Saturday, stored as a comma-separated string
// in submission order.
type Schedule struct {
	VenueID      int64   `gorm:"primaryKey"`
	StartHour    float64 `gorm:"not null"`
	EndHour      float64 `gorm:"not null"`
	Days         string  `gorm:"not null"`
	ClosedToday  bool    `gorm:"not null"`
	ClosedReason string
	UpdatedAt    time.Time `gorm:"not null"`
}

// DayList parses the stored comma-separated days into weekday numbers.
// Malformed entries are skipped.
func (s Schedule) DayList() []int {
	if s.Days == "" {
		return nil
	}
	parts := strings.Split(s.Days, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	return days
}

// SetDayList stores the given weekday numbers verbatim as CSV.
func (s *Schedule) SetDayList(days []int) {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	s.Days = strings.Join(parts, ",")
}
