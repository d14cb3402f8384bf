package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/wanderplan/wanderplan-backend/internal/data/repos"
	types "github.com/wanderplan/wanderplan-backend/internal/domain"
	"github.com/wanderplan/wanderplan-backend/internal/itinerary"
	apperrors "github.com/wanderplan/wanderplan-backend/internal/pkg/errors"
	"github.com/wanderplan/wanderplan-backend/internal/platform/envutil"
	"github.com/wanderplan/wanderplan-backend/internal/platform/logger"
)

// LegResult is the per-leg generation outcome returned to callers.
// Source "empty" covers unseeded destinations and degenerate candidate
// pools; it is not an error surface.
type LegResult struct {
	LegID        uuid.UUID `json:"leg_id"`
	SlotsCreated int       `json:"slots_created"`
	Source       string    `json:"source"`
}

type TripResult struct {
	TotalSlotsCreated int         `json:"total_slots_created"`
	LegResults        []LegResult `json:"leg_results"`
}

type GenerationService struct {
	db  *gorm.DB
	log *logger.Logger

	activityRepo  repos.ActivityRepo
	tripRepo      repos.TripRepo
	itineraryRepo repos.ItineraryRepo
	trainingRepo  repos.TrainingRecordRepo
	eventRepo     repos.TravelerEventRepo

	loader   *itinerary.ContextLoader
	scorer   *itinerary.Scorer
	selector itinerary.Selector
	placer   *itinerary.Placer

	enricher *EnrichmentService

	modelName    string
	modelVersion string
}

func NewGenerationService(
	db *gorm.DB,
	r *repos.Repos,
	loader *itinerary.ContextLoader,
	enricher *EnrichmentService,
	baseLog *logger.Logger,
) *GenerationService {
	return &GenerationService{
		db:            db,
		log:           baseLog.With("service", "GenerationService"),
		activityRepo:  r.Activity,
		tripRepo:      r.Trip,
		itineraryRepo: r.Itinerary,
		trainingRepo:  r.TrainingRecord,
		eventRepo:     r.TravelerEvent,
		loader:        loader,
		scorer:        itinerary.NewScorer(),
		selector:      itinerary.NewGreedySelector(),
		placer:        itinerary.NewPlacer(),
		enricher:      enricher,
		modelName:     envutil.String("GENERATION_MODEL_NAME", "wanderplan-greedy"),
		modelVersion:  envutil.String("GENERATION_MODEL_VERSION", "v1"),
	}
}

// GenerateForTrip runs every leg of the trip strictly in position
// order. A leg failure is logged and recorded as an empty result so it
// never aborts its siblings.
func (s *GenerationService) GenerateForTrip(ctx context.Context, tripID, travelerID uuid.UUID, seed itinerary.PersonaSeed) (TripResult, error) {
	var result TripResult

	trip, err := s.tripRepo.GetByID(ctx, nil, tripID)
	if err != nil {
		return result, fmt.Errorf("load trip: %w", err)
	}
	if trip == nil {
		return result, fmt.Errorf("trip %s: %w", tripID, apperrors.ErrNotFound)
	}

	legs, err := s.tripRepo.ListLegsByTrip(ctx, nil, tripID)
	if err != nil {
		return result, fmt.Errorf("list trip legs: %w", err)
	}

	for _, leg := range legs {
		legResult, err := s.GenerateForLeg(ctx, leg, travelerID, seed)
		if err != nil {
			s.log.Error("leg generation failed, recording empty result",
				"trip_id", tripID, "leg_id", leg.ID, "error", err)
			legResult = LegResult{LegID: leg.ID, SlotsCreated: 0, Source: types.ItinerarySourceEmpty}
		}
		result.LegResults = append(result.LegResults, legResult)
		result.TotalSlotsCreated += legResult.SlotsCreated
	}
	return result, nil
}

// GenerateForLeg scores, selects, and places the destination's catalog
// for one leg, then persists the itinerary, an implicit positive
// feedback event, and one training record per touched day in a single
// transaction. Enrichment is handed off after commit without waiting.
func (s *GenerationService) GenerateForLeg(ctx context.Context, leg *types.TripLeg, travelerID uuid.UUID, seed itinerary.PersonaSeed) (LegResult, error) {
	started := time.Now()
	result := LegResult{LegID: leg.ID, Source: types.ItinerarySourceEmpty}

	days := tripLengthDays(leg.StartDate, leg.EndDate)
	if days <= 0 {
		return result, fmt.Errorf("leg %s has a non-positive date range: %w", leg.ID, apperrors.ErrInvalidArgument)
	}

	// Unseeded destinations are an expected state, not an error.
	total, err := s.activityRepo.CountByDestination(ctx, nil, leg.DestinationID)
	if err != nil {
		return result, fmt.Errorf("count catalog: %w", err)
	}
	if total == 0 {
		return result, nil
	}

	candidates, err := s.activityRepo.ListByDestination(ctx, nil, leg.DestinationID)
	if err != nil {
		return result, fmt.Errorf("load catalog: %w", err)
	}

	destinationName := ""
	if leg.Destination != nil {
		destinationName = leg.Destination.Name
	}

	pc, err := s.loader.Load(ctx, travelerID, seed, destinationName, int(leg.StartDate.Month()))
	if err != nil {
		return result, fmt.Errorf("load persona context: %w", err)
	}

	slotsPerDay := itinerary.SlotsPerDay(seed.Pace, pc.Template, days)
	target := slotsPerDay * days

	ranked := s.scorer.Score(candidates, pc)
	selected := s.selector.Select(ranked, target)
	if len(selected) == 0 {
		return result, nil
	}

	placed := s.placer.Place(selected, days, seed, pc.Template, leg.StartDate)
	if len(placed) == 0 {
		return result, nil
	}

	entries := buildEntries(leg, placed)
	records := s.buildTrainingRecords(leg, travelerID, candidates, selected, placed, pc, time.Since(started))
	event := buildGenerationEvent(leg, travelerID, len(entries))

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.itineraryRepo.Create(ctx, tx, entries); err != nil {
			return fmt.Errorf("create itinerary entries: %w", err)
		}
		if _, err := s.eventRepo.Create(ctx, tx, []*types.TravelerEvent{event}); err != nil {
			return fmt.Errorf("create feedback event: %w", err)
		}
		if _, err := s.trainingRepo.Create(ctx, tx, records); err != nil {
			return fmt.Errorf("create training records: %w", err)
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	result.SlotsCreated = len(entries)
	result.Source = types.ItinerarySourceSeeded

	if s.enricher != nil {
		s.enricher.EnrichAsync(leg.TripID, leg.ID, summarizeEntries(entries, placed), seed, destinationName)
	}

	s.log.Info("leg generated",
		"trip_id", leg.TripID, "leg_id", leg.ID,
		"days", days, "slots_per_day", slotsPerDay,
		"candidates", len(candidates), "selected", len(selected), "slots", len(entries),
		"latency_ms", time.Since(started).Milliseconds())

	return result, nil
}

func tripLengthDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	return int(e.Sub(s).Hours()/24) + 1
}

func buildEntries(leg *types.TripLeg, placed []itinerary.PlacedSlot) []*types.ItineraryEntry {
	out := make([]*types.ItineraryEntry, 0, len(placed))
	for _, slot := range placed {
		out = append(out, &types.ItineraryEntry{
			ID:              uuid.New(),
			TripID:          leg.TripID,
			TripLegID:       leg.ID,
			ActivityID:      slot.ActivityID(),
			DayNumber:       slot.Day,
			Position:        slot.Position,
			SlotKind:        slot.Kind,
			StartTime:       slot.Start,
			EndTime:         slot.End,
			DurationMinutes: slot.DurationMinutes,
			Source:          types.ItinerarySourceSeeded,
		})
	}
	return out
}

func (s *GenerationService) buildTrainingRecords(
	leg *types.TripLeg,
	travelerID uuid.UUID,
	candidates []*types.Activity,
	selected []itinerary.ScoredCandidate,
	placed []itinerary.PlacedSlot,
	pc itinerary.PersonaContext,
	latency time.Duration,
) []*types.TrainingRecord {
	candidateIDs := make([]uuid.UUID, 0, len(candidates))
	for _, a := range candidates {
		candidateIDs = append(candidateIDs, a.ID)
	}
	rankedIDs := make([]uuid.UUID, 0, len(selected))
	for _, sc := range selected {
		rankedIDs = append(rankedIDs, sc.Activity.ID)
	}

	selectedByDay := map[int][]uuid.UUID{}
	for _, slot := range placed {
		selectedByDay[slot.Day] = append(selectedByDay[slot.Day], slot.ActivityID())
	}

	contextPayload := mustJSON(map[string]any{
		"pace":      pc.Seed.Pace,
		"wake_time": pc.Seed.WakeTime,
		"template":  pc.Seed.Template,
		"snapshot":  pc.Snapshot,
		"climate":   pc.Climate,
	})

	records := make([]*types.TrainingRecord, 0, len(selectedByDay))
	for day := 1; day <= tripLengthDays(leg.StartDate, leg.EndDate); day++ {
		dayIDs, ok := selectedByDay[day]
		if !ok {
			continue
		}
		records = append(records, &types.TrainingRecord{
			ID:           uuid.New(),
			TripID:       leg.TripID,
			TripLegID:    leg.ID,
			TravelerID:   travelerID,
			DayNumber:    day,
			CandidateIDs: mustJSON(candidateIDs),
			RankedIDs:    mustJSON(rankedIDs),
			SelectedIDs:  mustJSON(dayIDs),
			ModelName:    s.modelName,
			ModelVersion: s.modelVersion,
			LatencyMS:    latency.Milliseconds(),
			Context:      contextPayload,
		})
	}
	return records
}

func buildGenerationEvent(leg *types.TripLeg, travelerID uuid.UUID, slots int) *types.TravelerEvent {
	tripID := leg.TripID
	return &types.TravelerEvent{
		ID:         uuid.New(),
		TravelerID: travelerID,
		TripID:     &tripID,
		Type:       types.EventItineraryGenerated,
		Data: mustJSON(map[string]any{
			"leg_id":         leg.ID,
			"destination_id": leg.DestinationID,
			"slots_created":  slots,
		}),
		OccurredAt: time.Now(),
	}
}

func summarizeEntries(entries []*types.ItineraryEntry, placed []itinerary.PlacedSlot) []SlotSummary {
	out := make([]SlotSummary, 0, len(entries))
	for i, e := range entries {
		a := placed[i].Candidate.Activity
		out = append(out, SlotSummary{
			ID:        e.ID,
			Name:      a.Name,
			Category:  a.Category,
			Day:       e.DayNumber,
			Position:  e.Position,
			Latitude:  a.Latitude,
			Longitude: a.Longitude,
		})
	}
	return out
}

func mustJSON(v any) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON([]byte(`{}`))
	}
	return datatypes.JSON(raw)
}
