package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/wanderplan/wanderplan-backend/internal/data/repos/testutil"
	types "github.com/wanderplan/wanderplan-backend/internal/domain"
)

func TestTravelerEventRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewTravelerEventRepo(db, testutil.Logger(t))

	travelerID := uuid.New()
	tripID := uuid.New()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	mk := func(evType string, offset time.Duration, withTrip bool) *types.TravelerEvent {
		ev := &types.TravelerEvent{
			ID:         uuid.New(),
			TravelerID: travelerID,
			Type:       evType,
			Data:       datatypes.JSON([]byte(`{"category":"dining"}`)),
			OccurredAt: base.Add(offset),
		}
		if withTrip {
			ev.TripID = &tripID
		}
		return ev
	}

	events := []*types.TravelerEvent{
		mk(types.EventSlotUpvoted, 0, true),
		mk(types.EventActivityViewed, time.Hour, false),
		mk(types.EventSlotSaved, 2*time.Hour, true),
	}
	if _, err := repo.Create(ctx, tx, events); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.ListRecentByTraveler(ctx, tx, travelerID, 2)
	if err != nil || len(rows) != 2 {
		t.Fatalf("ListRecentByTraveler: err=%v len=%d", err, len(rows))
	}
	if rows[0].Type != types.EventSlotSaved {
		t.Fatalf("expected newest first, got %s", rows[0].Type)
	}

	if rows, err := repo.ListByTrip(ctx, tx, tripID); err != nil || len(rows) != 2 {
		t.Fatalf("ListByTrip: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.ListRecentByTraveler(ctx, tx, uuid.New(), 10); err != nil || len(rows) != 0 {
		t.Fatalf("unknown traveler: err=%v len=%d", err, len(rows))
	}
}
