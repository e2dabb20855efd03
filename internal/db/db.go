package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"venue-status-backend/config"
	"venue-status-backend/internal/model"
	"venue-status-backend/internal/store"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}

	if err := db.AutoMigrate(
		&model.Venue{},
		&model.Schedule{},
		&model.PushSubscription{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	return db, nil
}

type seedRow struct {
	name  string
	start float64
	end   float64
	days  []int
}

// Venues are permanent fixtures; the default window mirrors the usual
// late-night hours (10PM - 1AM).
var seedRows = []seedRow{
	{"Benjamin Franklin", 22, 1, []int{0, 1, 2, 3, 4}},
	{"Berkeley", 22, 1, []int{0, 1, 2, 3, 4, 5}},
	{"Branford", 22, 1, []int{0, 1, 2, 3, 4}},
	{"Davenport", 22, 1, []int{0, 1, 2, 3, 4}},
	{"Grace Hopper", 22, 0, []int{0, 1, 2, 3, 4}},
	{"Jonathan Edwards", 22, 1, []int{0, 1, 2, 3, 4}},
	{"Morse", 22, 1, []int{0, 1, 2, 3, 4}},
	{"Pauli Murray", 22, 1, []int{0, 1, 2, 3, 4, 5}},
	{"Pierson", 22, 1, []int{0, 1, 2, 3, 4}},
	{"Saybrook", 22, 1, []int{0, 1, 2, 3, 4}},
	{"Silliman", 22, 0, []int{0, 1, 2, 3, 4}},
	{"Trumbull", 22, 1, []int{0, 1, 2, 3, 4}},
}

// SeedIfEmpty provisions the fixed venue list the first time the server
// starts against an empty database. It is count-triggered, not an upsert:
// once any venue exists the seed never runs again.
func SeedIfEmpty(ctx context.Context, s store.Store) (bool, error) {
	count, err := s.CountVenues(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	venues := make([]model.Venue, len(seedRows))
	for i, row := range seedRows {
		venues[i] = model.Venue{Name: row.name}
		venues[i].Schedule.StartHour = row.start
		venues[i].Schedule.EndHour = row.end
		venues[i].Schedule.SetDayList(row.days)
	}
	if err := s.SeedVenues(ctx, venues); err != nil {
		return false, err
	}
	return true, nil
}
