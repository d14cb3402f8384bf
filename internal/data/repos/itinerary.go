package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/wanderplan/wanderplan-backend/internal/domain"
	"github.com/wanderplan/wanderplan-backend/internal/platform/logger"
)

type ItineraryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ItineraryEntry) ([]*types.ItineraryEntry, error)

	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ItineraryEntry, error)
	// ListByLeg returns entries ordered by day, position, start time.
	ListByLeg(ctx context.Context, tx *gorm.DB, legID uuid.UUID) ([]*types.ItineraryEntry, error)
	ListByTrip(ctx context.Context, tx *gorm.DB, tripID uuid.UUID) ([]*types.ItineraryEntry, error)

	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type itineraryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItineraryRepo(db *gorm.DB, baseLog *logger.Logger) ItineraryRepo {
	return &itineraryRepo{db: db, log: baseLog.With("repo", "ItineraryRepo")}
}

func (r *itineraryRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ItineraryEntry) ([]*types.ItineraryEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.ItineraryEntry{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *itineraryRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ItineraryEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.ItineraryEntry
	if err := t.WithContext(ctx).Where("id = ?", id).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *itineraryRepo) ListByLeg(ctx context.Context, tx *gorm.DB, legID uuid.UUID) ([]*types.ItineraryEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ItineraryEntry
	if legID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("trip_leg_id = ?", legID).
		Order("day_number ASC, position ASC, start_time ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *itineraryRepo) ListByTrip(ctx context.Context, tx *gorm.DB, tripID uuid.UUID) ([]*types.ItineraryEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ItineraryEntry
	if tripID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("day_number ASC, position ASC, start_time ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *itineraryRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Model(&types.ItineraryEntry{}).
		Where("id = ?", id).
		Updates(updates).Error
}
