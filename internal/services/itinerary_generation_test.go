package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wanderplan/wanderplan-backend/internal/data/repos"
	"github.com/wanderplan/wanderplan-backend/internal/data/repos/testutil"
	types "github.com/wanderplan/wanderplan-backend/internal/domain"
	"github.com/wanderplan/wanderplan-backend/internal/itinerary"
	apperrors "github.com/wanderplan/wanderplan-backend/internal/pkg/errors"
)

func newTestGenerator(t *testing.T, tx *gorm.DB) (*GenerationService, *repos.Repos) {
	t.Helper()
	logg := testutil.Logger(t)
	r := repos.New(tx, logg)

	climate, err := itinerary.LoadClimateTable()
	if err != nil {
		t.Fatalf("load climate table: %v", err)
	}
	loader := itinerary.NewContextLoader(r.TravelerEvent, nil, climate, logg)

	return NewGenerationService(tx, r, loader, nil, logg), r
}

func seedCatalog(t *testing.T, ctx context.Context, tx *gorm.DB, destID uuid.UUID) []*types.Activity {
	t.Helper()
	specs := []struct {
		name     string
		category string
		tags     []string
	}{
		{"old town walk", types.CategoryCulture, []string{"history"}},
		{"modern art museum", types.CategoryCulture, []string{"art", "museum"}},
		{"cathedral visit", types.CategoryCulture, []string{"history", "architecture"}},
		{"royal palace", types.CategoryCulture, []string{"history"}},
		{"tapas crawl", types.CategoryDining, []string{"food", "local"}},
		{"seafood lunch", types.CategoryDining, []string{"food", "seafood"}},
		{"market breakfast", types.CategoryDining, []string{"food", "market"}},
		{"harbour kayak", types.CategoryActive, []string{"water", "adventure"}},
		{"coastal hike", types.CategoryOutdoors, []string{"nature", "views"}},
		{"botanical garden", types.CategoryOutdoors, []string{"nature"}},
		{"jazz cellar", types.CategoryNightlife, []string{"music", "late"}},
		{"rooftop bar", types.CategoryDrinks, []string{"views", "cocktails"}},
	}
	out := make([]*types.Activity, 0, len(specs))
	for _, s := range specs {
		out = append(out, testutil.SeedActivity(t, ctx, tx, destID, s.name, s.category, s.tags...))
	}
	return out
}

func decodeIDs(t *testing.T, raw []byte) map[uuid.UUID]bool {
	t.Helper()
	var ids []uuid.UUID
	if err := json.Unmarshal(raw, &ids); err != nil {
		t.Fatalf("decode id list: %v", err)
	}
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func TestGenerateForLeg_EmptyCatalog(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	gen, r := newTestGenerator(t, tx)

	travelerID := uuid.New()
	start := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	dest := testutil.SeedDestination(t, ctx, tx, "Unseededville")
	trip := testutil.SeedTrip(t, ctx, tx, travelerID, start, 3)
	leg := testutil.SeedLeg(t, ctx, tx, trip.ID, dest.ID, 1, start, 3)
	leg.Destination = dest

	result, err := gen.GenerateForLeg(ctx, leg, travelerID, itinerary.PersonaSeed{Pace: itinerary.PaceModerate, WakeTime: itinerary.WakeMid})
	if err != nil {
		t.Fatalf("GenerateForLeg: %v", err)
	}
	if result.SlotsCreated != 0 || result.Source != types.ItinerarySourceEmpty {
		t.Fatalf("expected {0, empty}, got %+v", result)
	}

	entries, err := r.Itinerary.ListByLeg(ctx, tx, leg.ID)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected zero entries, err=%v len=%d", err, len(entries))
	}
	records, err := r.TrainingRecord.ListByLeg(ctx, tx, leg.ID)
	if err != nil || len(records) != 0 {
		t.Fatalf("expected zero training records, err=%v len=%d", err, len(records))
	}
}

func TestGenerateForLeg_SeededCatalogInvariants(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	gen, r := newTestGenerator(t, tx)

	travelerID := uuid.New()
	start := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	days := 3
	dest := testutil.SeedDestination(t, ctx, tx, "Lisbon")
	catalog := seedCatalog(t, ctx, tx, dest.ID)
	trip := testutil.SeedTrip(t, ctx, tx, travelerID, start, days)
	leg := testutil.SeedLeg(t, ctx, tx, trip.ID, dest.ID, 1, start, days)
	leg.Destination = dest

	seed := itinerary.PersonaSeed{
		Pace:        itinerary.PaceModerate,
		WakeTime:    itinerary.WakeEarly,
		Preferences: []string{"food", "history"},
	}

	result, err := gen.GenerateForLeg(ctx, leg, travelerID, seed)
	if err != nil {
		t.Fatalf("GenerateForLeg: %v", err)
	}
	if result.Source != types.ItinerarySourceSeeded || result.SlotsCreated == 0 {
		t.Fatalf("expected seeded result, got %+v", result)
	}

	entries, err := r.Itinerary.ListByLeg(ctx, tx, leg.ID)
	if err != nil {
		t.Fatalf("ListByLeg: %v", err)
	}
	if len(entries) != result.SlotsCreated {
		t.Fatalf("result/entry mismatch: %d vs %d", result.SlotsCreated, len(entries))
	}

	// Per-day count never exceeds the effective slots-per-day.
	slotsPerDay := itinerary.SlotsPerDay(seed.Pace, nil, days)
	perDay := map[int]int{}
	perCategory := map[string]int{}
	byID := map[uuid.UUID]*types.Activity{}
	for _, a := range catalog {
		byID[a.ID] = a
	}
	for _, e := range entries {
		perDay[e.DayNumber]++
		a, ok := byID[e.ActivityID]
		if !ok {
			t.Fatalf("entry references unknown activity %s", e.ActivityID)
		}
		perCategory[a.Category]++

		derived := int(e.StartTime.Sub(start).Hours()/24) + 1
		if derived != e.DayNumber {
			t.Fatalf("day round-trip mismatch: %d vs %d", derived, e.DayNumber)
		}
	}
	for day, n := range perDay {
		if n > slotsPerDay {
			t.Fatalf("day %d has %d slots, limit %d", day, n, slotsPerDay)
		}
	}
	target := slotsPerDay * days
	for category, n := range perCategory {
		if maxPer := itinerary.CategoryCap(target); n > maxPer {
			t.Fatalf("category %s has %d slots, cap %d", category, n, maxPer)
		}
	}

	// One training record per touched day, with selected ⊆ ranked ⊆ candidates.
	records, err := r.TrainingRecord.ListByLeg(ctx, tx, leg.ID)
	if err != nil {
		t.Fatalf("training ListByLeg: %v", err)
	}
	if len(records) != len(perDay) {
		t.Fatalf("expected %d training records, got %d", len(perDay), len(records))
	}
	entriesByDay := map[int]map[uuid.UUID]bool{}
	for _, e := range entries {
		if entriesByDay[e.DayNumber] == nil {
			entriesByDay[e.DayNumber] = map[uuid.UUID]bool{}
		}
		entriesByDay[e.DayNumber][e.ActivityID] = true
	}
	for _, rec := range records {
		candidates := decodeIDs(t, rec.CandidateIDs)
		ranked := decodeIDs(t, rec.RankedIDs)
		selected := decodeIDs(t, rec.SelectedIDs)

		if len(candidates) != len(catalog) {
			t.Fatalf("day %d: candidate pool %d, want %d", rec.DayNumber, len(candidates), len(catalog))
		}
		for id := range ranked {
			if !candidates[id] {
				t.Fatalf("day %d: ranked id %s not in candidates", rec.DayNumber, id)
			}
		}
		for id := range selected {
			if !ranked[id] {
				t.Fatalf("day %d: selected id %s not in ranked", rec.DayNumber, id)
			}
		}
		for id := range entriesByDay[rec.DayNumber] {
			if !selected[id] || !ranked[id] {
				t.Fatalf("day %d: placed id %s missing from training lists", rec.DayNumber, id)
			}
		}
		if rec.ModelName == "" || rec.ModelVersion == "" {
			t.Fatalf("day %d: missing model identity", rec.DayNumber)
		}
	}

	// The atomic write appends one implicit positive feedback event.
	events, err := r.TravelerEvent.ListByTrip(ctx, tx, trip.ID)
	if err != nil {
		t.Fatalf("ListByTrip: %v", err)
	}
	generated := 0
	for _, ev := range events {
		if ev.Type == types.EventItineraryGenerated {
			generated++
		}
	}
	if generated != 1 {
		t.Fatalf("expected 1 %s event, got %d", types.EventItineraryGenerated, generated)
	}
}

func TestGenerateForTrip_UnknownTrip(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	gen, _ := newTestGenerator(t, tx)

	_, err := gen.GenerateForTrip(ctx, uuid.New(), uuid.New(), itinerary.PersonaSeed{Pace: itinerary.PaceModerate})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerateForTrip_LegFailureIsolation(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	gen, _ := newTestGenerator(t, tx)

	travelerID := uuid.New()
	start := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	dest := testutil.SeedDestination(t, ctx, tx, "Lisbon")
	seedCatalog(t, ctx, tx, dest.ID)
	trip := testutil.SeedTrip(t, ctx, tx, travelerID, start, 6)

	// Leg 1 carries an inverted date range and must fail in isolation.
	broken := testutil.SeedLeg(t, ctx, tx, trip.ID, dest.ID, 1, start, 3)
	broken.EndDate = broken.StartDate.AddDate(0, 0, -2)
	if err := tx.WithContext(ctx).Save(broken).Error; err != nil {
		t.Fatalf("update broken leg: %v", err)
	}
	testutil.SeedLeg(t, ctx, tx, trip.ID, dest.ID, 2, start.AddDate(0, 0, 3), 3)

	seed := itinerary.PersonaSeed{Pace: itinerary.PaceModerate, WakeTime: itinerary.WakeMid}
	result, err := gen.GenerateForTrip(ctx, trip.ID, travelerID, seed)
	if err != nil {
		t.Fatalf("GenerateForTrip: %v", err)
	}
	if len(result.LegResults) != 2 {
		t.Fatalf("expected 2 leg results, got %d", len(result.LegResults))
	}
	if result.LegResults[0].Source != types.ItinerarySourceEmpty || result.LegResults[0].SlotsCreated != 0 {
		t.Fatalf("expected empty result for broken leg, got %+v", result.LegResults[0])
	}
	if result.LegResults[1].Source != types.ItinerarySourceSeeded || result.LegResults[1].SlotsCreated == 0 {
		t.Fatalf("expected seeded result for healthy leg, got %+v", result.LegResults[1])
	}
	if result.TotalSlotsCreated != result.LegResults[1].SlotsCreated {
		t.Fatalf("total should reflect healthy leg only: %+v", result)
	}
}
