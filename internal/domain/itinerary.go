package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SlotKindAnchor = "anchor"
	SlotKindFlex   = "flex"
	SlotKindMeal   = "meal"
)

const (
	ItinerarySourceSeeded = "seeded"
	ItinerarySourceEmpty  = "empty"
)

// ItineraryEntry is the durable form of a placed slot. Created only by
// the generation transaction; the enrichment worker may later adjust
// Position and attach NarrativeHint. Voting and pivot flows own all
// other post-creation mutation.
type ItineraryEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TripID     uuid.UUID `gorm:"type:uuid;not null;index" json:"trip_id"`
	TripLegID  uuid.UUID `gorm:"type:uuid;not null;index" json:"trip_leg_id"`
	ActivityID uuid.UUID `gorm:"type:uuid;not null;index" json:"activity_id"`
	Activity   *Activity `gorm:"foreignKey:ActivityID;references:ID" json:"activity,omitempty"`

	// 1-indexed day within the leg.
	DayNumber int `gorm:"column:day_number;not null;index" json:"day_number"`
	// 0-indexed ordinal within the day.
	Position int    `gorm:"column:position;not null" json:"position"`
	SlotKind string `gorm:"column:slot_kind;not null" json:"slot_kind"`

	StartTime       time.Time `gorm:"column:start_time;not null" json:"start_time"`
	EndTime         time.Time `gorm:"column:end_time;not null" json:"end_time"`
	DurationMinutes int       `gorm:"column:duration_minutes;not null" json:"duration_minutes"`

	NarrativeHint *string `gorm:"column:narrative_hint" json:"narrative_hint,omitempty"`
	Source        string  `gorm:"column:source;not null;default:'seeded'" json:"source"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ItineraryEntry) TableName() string { return "itinerary_entry" }
