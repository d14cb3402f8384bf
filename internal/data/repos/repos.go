package repos

import (
	"gorm.io/gorm"

	"github.com/wanderplan/wanderplan-backend/internal/platform/logger"
)

// Repos bundles every repository for wiring.
type Repos struct {
	Activity       ActivityRepo
	Trip           TripRepo
	Itinerary      ItineraryRepo
	TrainingRecord TrainingRecordRepo
	TravelerEvent  TravelerEventRepo
}

func New(db *gorm.DB, baseLog *logger.Logger) *Repos {
	return &Repos{
		Activity:       NewActivityRepo(db, baseLog),
		Trip:           NewTripRepo(db, baseLog),
		Itinerary:      NewItineraryRepo(db, baseLog),
		TrainingRecord: NewTrainingRecordRepo(db, baseLog),
		TravelerEvent:  NewTravelerEventRepo(db, baseLog),
	}
}
