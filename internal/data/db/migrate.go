package db

import (
	"gorm.io/gorm"

	types "github.com/wanderplan/wanderplan-backend/internal/domain"
)

// AutoMigrate creates/updates the engine's tables. Dev convenience;
// production schema changes go through the migration tooling owned by
// the platform team.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&types.Destination{},
		&types.Activity{},
		&types.ActivityTag{},

		&types.Trip{},
		&types.TripLeg{},
		&types.ItineraryEntry{},

		&types.TravelerEvent{},
		&types.TrainingRecord{},
	)
}
