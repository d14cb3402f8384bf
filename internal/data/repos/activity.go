package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/wanderplan/wanderplan-backend/internal/domain"
	"github.com/wanderplan/wanderplan-backend/internal/platform/logger"
)

type ActivityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Activity) ([]*types.Activity, error)

	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Activity, error)

	// ListByDestination returns the candidate catalog for a destination
	// with tags preloaded.
	ListByDestination(ctx context.Context, tx *gorm.DB, destinationID uuid.UUID) ([]*types.Activity, error)
	CountByDestination(ctx context.Context, tx *gorm.DB, destinationID uuid.UUID) (int64, error)
}

type activityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityRepo(db *gorm.DB, baseLog *logger.Logger) ActivityRepo {
	return &activityRepo{db: db, log: baseLog.With("repo", "ActivityRepo")}
}

func (r *activityRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Activity) ([]*types.Activity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Activity{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *activityRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Activity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Activity
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *activityRepo) ListByDestination(ctx context.Context, tx *gorm.DB, destinationID uuid.UUID) ([]*types.Activity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Activity
	if destinationID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Preload("Tags").
		Where("destination_id = ?", destinationID).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *activityRepo) CountByDestination(ctx context.Context, tx *gorm.DB, destinationID uuid.UUID) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if destinationID == uuid.Nil {
		return 0, nil
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&types.Activity{}).
		Where("destination_id = ?", destinationID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
