package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/wanderplan/wanderplan-backend/internal/domain"
	"github.com/wanderplan/wanderplan-backend/internal/platform/logger"
)

// TrainingRecordRepo is create/read only. Training records are never
// updated or deleted by the engine.
type TrainingRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.TrainingRecord) ([]*types.TrainingRecord, error)

	ListByLeg(ctx context.Context, tx *gorm.DB, legID uuid.UUID) ([]*types.TrainingRecord, error)
	ListByTraveler(ctx context.Context, tx *gorm.DB, travelerID uuid.UUID, limit int) ([]*types.TrainingRecord, error)
}

type trainingRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrainingRecordRepo(db *gorm.DB, baseLog *logger.Logger) TrainingRecordRepo {
	return &trainingRecordRepo{db: db, log: baseLog.With("repo", "TrainingRecordRepo")}
}

func (r *trainingRecordRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.TrainingRecord) ([]*types.TrainingRecord, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.TrainingRecord{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *trainingRecordRepo) ListByLeg(ctx context.Context, tx *gorm.DB, legID uuid.UUID) ([]*types.TrainingRecord, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.TrainingRecord
	if legID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("trip_leg_id = ?", legID).
		Order("day_number ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *trainingRecordRepo) ListByTraveler(ctx context.Context, tx *gorm.DB, travelerID uuid.UUID, limit int) ([]*types.TrainingRecord, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.TrainingRecord
	if travelerID == uuid.Nil {
		return out, nil
	}
	q := t.WithContext(ctx).
		Where("traveler_id = ?", travelerID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
