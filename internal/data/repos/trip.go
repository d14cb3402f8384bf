package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/wanderplan/wanderplan-backend/internal/domain"
	"github.com/wanderplan/wanderplan-backend/internal/platform/logger"
)

type TripRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Trip) ([]*types.Trip, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Trip, error)

	CreateLegs(ctx context.Context, tx *gorm.DB, rows []*types.TripLeg) ([]*types.TripLeg, error)
	GetLegByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TripLeg, error)
	// ListLegsByTrip returns legs in position order.
	ListLegsByTrip(ctx context.Context, tx *gorm.DB, tripID uuid.UUID) ([]*types.TripLeg, error)
}

type tripRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTripRepo(db *gorm.DB, baseLog *logger.Logger) TripRepo {
	return &tripRepo{db: db, log: baseLog.With("repo", "TripRepo")}
}

func (r *tripRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Trip) ([]*types.Trip, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Trip{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *tripRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Trip, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Trip
	if err := t.WithContext(ctx).Where("id = ?", id).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *tripRepo) CreateLegs(ctx context.Context, tx *gorm.DB, rows []*types.TripLeg) ([]*types.TripLeg, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.TripLeg{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *tripRepo) GetLegByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TripLeg, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.TripLeg
	if err := t.WithContext(ctx).
		Preload("Destination").
		Where("id = ?", id).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *tripRepo) ListLegsByTrip(ctx context.Context, tx *gorm.DB, tripID uuid.UUID) ([]*types.TripLeg, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.TripLeg
	if tripID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Preload("Destination").
		Where("trip_id = ?", tripID).
		Order("position ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
