package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TrainingRecord captures one day of one generation run for offline
// model evaluation: the full candidate pool, the ranked subset, and the
// finally placed subset, plus denormalized persona and climate context.
// Immutable once written; no soft delete.
type TrainingRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TripID     uuid.UUID `gorm:"type:uuid;not null;index" json:"trip_id"`
	TripLegID  uuid.UUID `gorm:"type:uuid;not null;index" json:"trip_leg_id"`
	TravelerID uuid.UUID `gorm:"type:uuid;not null;index" json:"traveler_id"`

	DayNumber int `gorm:"column:day_number;not null" json:"day_number"`

	// uuid arrays serialized as JSONB.
	CandidateIDs datatypes.JSON `gorm:"type:jsonb;column:candidate_ids;not null" json:"candidate_ids"`
	RankedIDs    datatypes.JSON `gorm:"type:jsonb;column:ranked_ids;not null" json:"ranked_ids"`
	SelectedIDs  datatypes.JSON `gorm:"type:jsonb;column:selected_ids;not null" json:"selected_ids"`

	ModelName    string `gorm:"column:model_name;not null" json:"model_name"`
	ModelVersion string `gorm:"column:model_version;not null" json:"model_version"`
	LatencyMS    int64  `gorm:"column:latency_ms;not null" json:"latency_ms"`

	// Persona dimensions + climate descriptor captured just before the write.
	Context datatypes.JSON `gorm:"type:jsonb;column:context" json:"context"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (TrainingRecord) TableName() string { return "training_record" }
