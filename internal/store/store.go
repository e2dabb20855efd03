package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"venue-status-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	// DB exposes the underlying handle for components that need raw access
	// (subscription handlers, notification worker).
	DB() *gorm.DB

	ListVenues(ctx context.Context) ([]model.Venue, error)
	GetVenue(ctx context.Context, id int64) (model.Venue, error)
	// ReplaceSchedule overwrites all schedule fields of the venue in a single
	// transaction. Returns gorm.ErrRecordNotFound for an unknown venue id.
	ReplaceSchedule(ctx context.Context, venueID int64, sched model.Schedule) error
	CountVenues(ctx context.Context) (int64, error)
	SeedVenues(ctx context.Context, venues []model.Venue) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// ListVenues returns every venue with its schedule, ordered by id.
func (s *gormStore) ListVenues(ctx context.Context) ([]model.Venue, error) {
	var venues []model.Venue
	if err := s.db.WithContext(ctx).Preload("Schedule").Order("id").Find(&venues).Error; err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return venues, nil
}

// GetVenue returns a single venue with its schedule.
func (s *gormStore) GetVenue(ctx context.Context, id int64) (model.Venue, error) {
	var venue model.Venue
	if err := s.db.WithContext(ctx).Preload("Schedule").First(&venue, id).Error; err != nil {
		return model.Venue{}, err
	}
	return venue, nil
}

// ReplaceSchedule verifies the venue exists and then overwrites its schedule
// row. The write covers all fields at once; there are no partial updates.
func (s *gormStore) ReplaceSchedule(ctx context.Context, venueID int64, sched model.Schedule) error {
	sched.VenueID = venueID
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var venue model.Venue
		if err := tx.Select("id").First(&venue, venueID).Error; err != nil {
			return err
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "venue_id"}},
			UpdateAll: true,
		}).Create(&sched).Error; err != nil {
			return fmt.Errorf("failed to replace schedule for venue %d: %w", venueID, err)
		}
		return nil
	})
}

// CountVenues returns the number of provisioned venues.
func (s *gormStore) CountVenues(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Venue{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count venues: %w", err)
	}
	return count, nil
}

// SeedVenues inserts the initial venue fixtures with their schedules.
func (s *gormStore) SeedVenues(ctx context.Context, venues []model.Venue) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range venues {
			if err := tx.Create(&venues[i]).Error; err != nil {
				return fmt.Errorf("failed to seed venue %q: %w", venues[i].Name, err)
			}
		}
		return nil
	})
}
