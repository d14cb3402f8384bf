package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity categories form a fixed enumeration; scoring, selection caps
// and time-of-day placement all key off these values.
const (
	CategoryDining        = "dining"
	CategoryDrinks        = "drinks"
	CategoryCulture       = "culture"
	CategoryOutdoors      = "outdoors"
	CategoryActive        = "active"
	CategoryEntertainment = "entertainment"
	CategoryShopping      = "shopping"
	CategoryExperience    = "experience"
	CategoryNightlife     = "nightlife"
	CategoryGroupActivity = "group_activity"
	CategoryWellness      = "wellness"
)

var ActivityCategories = []string{
	CategoryDining,
	CategoryDrinks,
	CategoryCulture,
	CategoryOutdoors,
	CategoryActive,
	CategoryEntertainment,
	CategoryShopping,
	CategoryExperience,
	CategoryNightlife,
	CategoryGroupActivity,
	CategoryWellness,
}

type Destination struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string         `gorm:"not null;index" json:"name"`
	Country   string         `gorm:"column:country" json:"country"`
	Timezone  string         `gorm:"column:timezone" json:"timezone"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Destination) TableName() string { return "destination" }

// Activity is one catalog row for a destination. Catalog rows are owned
// by the destination seeding pipeline; the engine only reads them.
type Activity struct {
	ID            uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DestinationID uuid.UUID    `gorm:"type:uuid;not null;index" json:"destination_id"`
	Destination   *Destination `gorm:"constraint:OnDelete:CASCADE;foreignKey:DestinationID;references:ID" json:"destination,omitempty"`

	Name         string  `gorm:"not null" json:"name"`
	Category     string  `gorm:"not null;index" json:"category"`
	Latitude     float64 `gorm:"column:latitude" json:"latitude"`
	Longitude    float64 `gorm:"column:longitude" json:"longitude"`
	Neighborhood string  `gorm:"column:neighborhood" json:"neighborhood,omitempty"`
	Description  string  `gorm:"column:description" json:"description,omitempty"`
	// 1 (cheap) .. 4 (splurge)
	PriceTier int `gorm:"column:price_tier" json:"price_tier"`
	// 0..1 catalog authority; nil when the source had no signal.
	AuthorityScore *float64 `gorm:"column:authority_score" json:"authority_score,omitempty"`

	Tags []ActivityTag `gorm:"foreignKey:ActivityID;references:ID" json:"tags,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Activity) TableName() string { return "activity" }

type ActivityTag struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ActivityID uuid.UUID `gorm:"type:uuid;not null;index" json:"activity_id"`
	Tag        string    `gorm:"not null;index" json:"tag"`
	Weight     float64   `gorm:"not null;default:1" json:"weight"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ActivityTag) TableName() string { return "activity_tag" }
