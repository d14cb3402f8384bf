package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Trip struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TravelerID uuid.UUID `gorm:"type:uuid;not null;index" json:"traveler_id"`
	Title      string    `gorm:"column:title" json:"title"`
	StartDate  time.Time `gorm:"column:start_date;not null" json:"start_date"`
	EndDate    time.Time `gorm:"column:end_date;not null" json:"end_date"`
	Status     string    `gorm:"column:status;not null;default:'planning'" json:"status"`

	Legs []TripLeg `gorm:"foreignKey:TripID;references:ID" json:"legs,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Trip) TableName() string { return "trip" }

// TripLeg is one contiguous single-destination segment of a trip.
// Position orders legs within the trip, 1-indexed.
type TripLeg struct {
	ID            uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TripID        uuid.UUID    `gorm:"type:uuid;not null;index" json:"trip_id"`
	Trip          *Trip        `gorm:"constraint:OnDelete:CASCADE;foreignKey:TripID;references:ID" json:"trip,omitempty"`
	DestinationID uuid.UUID    `gorm:"type:uuid;not null;index" json:"destination_id"`
	Destination   *Destination `gorm:"foreignKey:DestinationID;references:ID" json:"destination,omitempty"`

	Position  int       `gorm:"column:position;not null" json:"position"`
	StartDate time.Time `gorm:"column:start_date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date;not null" json:"end_date"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (TripLeg) TableName() string { return "trip_leg" }
