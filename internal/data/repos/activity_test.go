package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/wanderplan/wanderplan-backend/internal/data/repos/testutil"
	types "github.com/wanderplan/wanderplan-backend/internal/domain"
)

func TestActivityRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewActivityRepo(db, testutil.Logger(t))

	dest := testutil.SeedDestination(t, ctx, tx, "Porto")
	other := testutil.SeedDestination(t, ctx, tx, "Braga")

	a1 := testutil.SeedActivity(t, ctx, tx, dest.ID, "wine cellar tour", types.CategoryDrinks, "wine", "local")
	testutil.SeedActivity(t, ctx, tx, dest.ID, "river cruise", types.CategoryExperience)
	testutil.SeedActivity(t, ctx, tx, other.ID, "cathedral", types.CategoryCulture)

	if n, err := repo.CountByDestination(ctx, tx, dest.ID); err != nil || n != 2 {
		t.Fatalf("CountByDestination: n=%d err=%v", n, err)
	}
	if n, err := repo.CountByDestination(ctx, tx, uuid.New()); err != nil || n != 0 {
		t.Fatalf("CountByDestination unknown: n=%d err=%v", n, err)
	}

	rows, err := repo.ListByDestination(ctx, tx, dest.ID)
	if err != nil || len(rows) != 2 {
		t.Fatalf("ListByDestination: err=%v len=%d", err, len(rows))
	}
	for _, row := range rows {
		if row.ID == a1.ID && len(row.Tags) != 2 {
			t.Fatalf("expected tags preloaded, got %d", len(row.Tags))
		}
	}

	if got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{a1.ID}); err != nil || len(got) != 1 || got[0].ID != a1.ID {
		t.Fatalf("GetByIDs: err=%v got=%v", err, got)
	}
	if got, err := repo.GetByIDs(ctx, tx, nil); err != nil || len(got) != 0 {
		t.Fatalf("GetByIDs empty: err=%v got=%v", err, got)
	}

	created, err := repo.Create(ctx, tx, []*types.Activity{{
		ID:            uuid.New(),
		DestinationID: dest.ID,
		Name:          "street food walk",
		Category:      types.CategoryDining,
	}})
	if err != nil || len(created) != 1 {
		t.Fatalf("Create: err=%v len=%d", err, len(created))
	}
	if n, _ := repo.CountByDestination(ctx, tx, dest.ID); n != 3 {
		t.Fatalf("expected 3 after create, got %d", n)
	}
}
