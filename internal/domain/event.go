package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Traveler interaction event types read by the implicit-preference
// snapshot. The generation write appends EventItineraryGenerated as an
// implicit positive signal.
const (
	EventItineraryGenerated = "itinerary_generated"
	EventSlotUpvoted        = "slot_upvoted"
	EventSlotDownvoted      = "slot_downvoted"
	EventSlotSaved          = "slot_saved"
	EventSlotSkipped        = "slot_skipped"
	EventActivityViewed     = "activity_viewed"
	EventSearchPerformed    = "search_performed"
)

type TravelerEvent struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TravelerID uuid.UUID `gorm:"type:uuid;not null;index" json:"traveler_id"`

	TripID     *uuid.UUID `gorm:"type:uuid;column:trip_id;index" json:"trip_id,omitempty"`
	ActivityID *uuid.UUID `gorm:"type:uuid;column:activity_id;index" json:"activity_id,omitempty"`

	Type string         `gorm:"column:type;not null;index" json:"type"`
	Data datatypes.JSON `gorm:"type:jsonb;column:data" json:"data"`

	OccurredAt time.Time      `gorm:"column:occurred_at;not null;index" json:"occurred_at"`
	CreatedAt  time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (TravelerEvent) TableName() string { return "traveler_event" }
