package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/wanderplan/wanderplan-backend/internal/domain"
	"github.com/wanderplan/wanderplan-backend/internal/platform/logger"
)

type TravelerEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.TravelerEvent) ([]*types.TravelerEvent, error)

	// ListRecentByTraveler returns the newest events first.
	ListRecentByTraveler(ctx context.Context, tx *gorm.DB, travelerID uuid.UUID, limit int) ([]*types.TravelerEvent, error)
	ListByTrip(ctx context.Context, tx *gorm.DB, tripID uuid.UUID) ([]*types.TravelerEvent, error)
}

type travelerEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTravelerEventRepo(db *gorm.DB, baseLog *logger.Logger) TravelerEventRepo {
	return &travelerEventRepo{db: db, log: baseLog.With("repo", "TravelerEventRepo")}
}

func (r *travelerEventRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.TravelerEvent) ([]*types.TravelerEvent, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.TravelerEvent{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *travelerEventRepo) ListRecentByTraveler(ctx context.Context, tx *gorm.DB, travelerID uuid.UUID, limit int) ([]*types.TravelerEvent, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.TravelerEvent
	if travelerID == uuid.Nil {
		return out, nil
	}
	q := t.WithContext(ctx).
		Where("traveler_id = ?", travelerID).
		Order("occurred_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *travelerEventRepo) ListByTrip(ctx context.Context, tx *gorm.DB, tripID uuid.UUID) ([]*types.TravelerEvent, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.TravelerEvent
	if tripID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("occurred_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
