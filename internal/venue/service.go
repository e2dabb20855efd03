// Package venue orchestrates reads and authenticated updates of venue
// schedules, deriving display fields from the stored window on every read.
package venue

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"venue-status-backend/internal/model"
	"venue-status-backend/internal/schedule"
	"venue-status-backend/internal/store"
)

var (
	// ErrNotFound is returned when an update references an unknown venue id.
	ErrNotFound = errors.New("venue not found")
	// ErrValidation wraps all malformed-update failures.
	ErrValidation = errors.New("invalid schedule")
)

// Hours is the mutable part of a venue's schedule as exposed on the wire.
type Hours struct {
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
	Days         []int   `json:"days"`
	ClosedToday  bool    `json:"closedToday"`
	ClosedReason string  `json:"closedReason"`
}

// View is a venue joined with its schedule and the derived display string.
// It is recomputed on every read and never persisted.
type View struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Info  string `json:"info"`
	Hours Hours  `json:"hours"`
}

// Service orchestrates read-all and update-one operations against the store.
type Service struct {
	store  store.Store
	logger *zap.Logger
}

// NewService creates a schedule service over the given store.
func NewService(s store.Store, logger *zap.Logger) *Service {
	return &Service{store: s, logger: logger}
}

// ListAll returns the view of every venue.
func (s *Service) ListAll(ctx context.Context) ([]View, error) {
	venues, err := s.store.ListVenues(ctx)
	if err != nil {
		s.logger.Error("failed to list venues", zap.Error(err))
		return nil, err
	}

	views := make([]View, len(venues))
	for i, v := range venues {
		views[i] = toView(v)
	}
	return views, nil
}

// Update validates the submitted hours and atomically replaces the venue's
// schedule, returning the re-derived view. The five schedule fields are
// always overwritten together.
func (s *Service) Update(ctx context.Context, id int64, hours Hours) (View, error) {
	if err := validate(hours); err != nil {
		return View{}, err
	}

	sched := model.Schedule{
		StartHour:    hours.Start,
		EndHour:      hours.End,
		ClosedToday:  hours.ClosedToday,
		ClosedReason: hours.ClosedReason,
	}
	sched.SetDayList(hours.Days)
	// The reason is meaningful only while the override is on.
	if !sched.ClosedToday {
		sched.ClosedReason = ""
	}

	if err := s.store.ReplaceSchedule(ctx, id, sched); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return View{}, ErrNotFound
		}
		s.logger.Error("failed to replace schedule",
			zap.Int64("venue_id", id), zap.Error(err))
		return View{}, err
	}

	updated, err := s.store.GetVenue(ctx, id)
	if err != nil {
		s.logger.Error("failed to reload venue after update",
			zap.Int64("venue_id", id), zap.Error(err))
		return View{}, err
	}
	return toView(updated), nil
}

// validate enforces the schedule invariants: finite hours, a non-empty day
// list with every entry in [0,6]. Day order and duplicates are kept verbatim.
func validate(hours Hours) error {
	if math.IsNaN(hours.Start) || math.IsInf(hours.Start, 0) ||
		math.IsNaN(hours.End) || math.IsInf(hours.End, 0) {
		return fmt.Errorf("%w: start and end must be finite hours", ErrValidation)
	}
	if len(hours.Days) == 0 {
		return fmt.Errorf("%w: days must be a non-empty list", ErrValidation)
	}
	for _, d := range hours.Days {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: day %d out of range [0,6]", ErrValidation, d)
		}
	}
	return nil
}

func toView(v model.Venue) View {
	days := v.Schedule.DayList()
	if days == nil {
		days = []int{}
	}
	return View{
		ID:   v.ID,
		Name: v.Name,
		Info: schedule.Info(v.Schedule),
		Hours: Hours{
			Start:        v.Schedule.StartHour,
			End:          v.Schedule.EndHour,
			Days:         days,
			ClosedToday:  v.Schedule.ClosedToday,
			ClosedReason: v.Schedule.ClosedReason,
		},
	}
}
