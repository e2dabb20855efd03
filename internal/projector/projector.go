// Package projector partitions venues into open and closed sets for
// presentation and keeps the partition fresh on a fixed cadence, since the
// open set depends on wall-clock time even when no schedule changes.
package projector

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"venue-status-backend/config"
	"venue-status-backend/internal/model"
	"venue-status-backend/internal/schedule"
	"venue-status-backend/internal/store"
)

// Snapshot is the materialized open/closed partition at a point in time.
// A venue closed by override appears in Closed and only there; a venue
// closed merely by its window appears in neither set.
type Snapshot struct {
	Open        []string  `json:"open"`
	Closed      []string  `json:"closed"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Project computes the partition for the given instant.
func Project(venues []model.Venue, now time.Time) Snapshot {
	snap := Snapshot{
		Open:        make([]string, 0, len(venues)),
		Closed:      make([]string, 0),
		GeneratedAt: now,
	}
	for _, v := range venues {
		switch {
		case v.Schedule.ClosedToday:
			snap.Closed = append(snap.Closed, v.Name)
		case schedule.IsOpen(v.Schedule, now):
			snap.Open = append(snap.Open, v.Name)
		}
	}
	return snap
}

// Notifier receives the ids of venues whose status flipped to open.
type Notifier interface {
	Dispatch(venueID int64)
}

// Service re-projects venue status on a fixed interval and dispatches a
// notification job whenever a venue transitions from closed to open.
type Service struct {
	cfg      *config.ProjectorConfig
	store    store.Store
	notifier Notifier
	logger   *zap.Logger

	mu       sync.RWMutex
	latest   Snapshot
	wasOpen  map[int64]bool
	baseline bool
}

// NewService creates a projector service. notifier may be nil when push
// notifications are not configured.
func NewService(cfg *config.ProjectorConfig, s store.Store, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{
		cfg:      cfg,
		store:    s,
		notifier: notifier,
		logger:   logger,
		wasOpen:  make(map[int64]bool),
	}
}

// Latest returns the most recent snapshot.
func (s *Service) Latest() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Run re-projects immediately and then on every tick until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		s.logger.Info("projector is disabled, not starting")
		return
	}
	s.logger.Info("starting projector service",
		zap.Duration("interval", s.cfg.Interval))

	s.ProjectOnce(ctx)

	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("projector service shutting down")
			return
		case <-timer.C:
			s.ProjectOnce(ctx)
			timer.Reset(s.cfg.Interval)
		}
	}
}

// ProjectOnce performs a single re-projection cycle. The first cycle only
// establishes the baseline; transitions are reported from the second on.
func (s *Service) ProjectOnce(ctx context.Context) {
	venues, err := s.store.ListVenues(ctx)
	if err != nil {
		s.logger.Error("projection cycle failed to list venues", zap.Error(err))
		return
	}

	now := time.Now()
	snap := Project(venues, now)

	var opened []int64
	nowOpen := make(map[int64]bool, len(venues))
	for _, v := range venues {
		open := !v.Schedule.ClosedToday && schedule.IsOpen(v.Schedule, now)
		nowOpen[v.ID] = open
		if open && s.baseline && !s.wasOpen[v.ID] {
			opened = append(opened, v.ID)
		}
	}

	s.mu.Lock()
	s.latest = snap
	s.wasOpen = nowOpen
	s.baseline = true
	s.mu.Unlock()

	if s.notifier != nil {
		for _, id := range opened {
			s.notifier.Dispatch(id)
		}
	}

	s.logger.Debug("projection cycle finished",
		zap.Int("open", len(snap.Open)),
		zap.Int("closed", len(snap.Closed)),
		zap.Int("newly_open", len(opened)))
}
