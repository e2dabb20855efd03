package model

import "time"

// Venue is a named establishment with an operating schedule. Venues are
// seeded once at first startup; name and id never change afterwards.
type Venue struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:128;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	// Associations
	Schedule Schedule `gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE"`
}
