package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/wanderplan/wanderplan-backend/internal/data/repos"
	"github.com/wanderplan/wanderplan-backend/internal/itinerary"
	"github.com/wanderplan/wanderplan-backend/internal/platform/envutil"
	"github.com/wanderplan/wanderplan-backend/internal/platform/logger"
	"github.com/wanderplan/wanderplan-backend/internal/platform/openai"
)

// SlotSummary is the compact per-slot payload sent to the model.
type SlotSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Day       int       `json:"day"`
	Position  int       `json:"position"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}

const maxHintLength = 100

// EnrichmentService runs the post-commit narrative pass. It is fire and
// forget: the triggering request path never waits on it, and every
// failure is absorbed at this boundary. The committed itinerary stays
// authoritative regardless of the outcome here.
type EnrichmentService struct {
	itineraryRepo repos.ItineraryRepo
	ai            openai.Client
	log           *logger.Logger

	sem     *semaphore.Weighted
	timeout time.Duration
}

func NewEnrichmentService(itineraryRepo repos.ItineraryRepo, ai openai.Client, baseLog *logger.Logger) *EnrichmentService {
	maxConcurrent := int64(envutil.Int("ENRICHMENT_MAX_CONCURRENT", 4))
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &EnrichmentService{
		itineraryRepo: itineraryRepo,
		ai:            ai,
		log:           baseLog.With("service", "EnrichmentService"),
		sem:           semaphore.NewWeighted(maxConcurrent),
		timeout:       envutil.Duration("ENRICHMENT_TIMEOUT", 60*time.Second),
	}
}

// EnrichAsync schedules one enrichment run on a detached goroutine.
// Deliberately not chained onto the caller's context: the caller's
// request finishing or failing must not cancel the pass.
func (s *EnrichmentService) EnrichAsync(tripID, legID uuid.UUID, slots []SlotSummary, seed itinerary.PersonaSeed, destinationName string) {
	if len(slots) == 0 {
		return
	}
	go func() {
		ctx := context.Background()
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return
		}
		defer s.sem.Release(1)

		if err := s.Enrich(ctx, tripID, legID, slots, seed, destinationName); err != nil {
			s.log.Warn("enrichment pass dropped",
				"trip_id", tripID, "leg_id", legID, "error", err)
		}
	}()
}

// Enrich performs one model call and applies the validated reorder and
// hint updates as independent best-effort writes. One attempt only.
func (s *EnrichmentService) Enrich(ctx context.Context, tripID, legID uuid.UUID, slots []SlotSummary, seed itinerary.PersonaSeed, destinationName string) error {
	if s.ai == nil {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.ai.GenerateJSON(callCtx,
		enrichmentSystemPrompt,
		buildEnrichmentPrompt(slots, seed, destinationName),
		"itinerary_enrichment",
		enrichmentSchema,
	)
	if err != nil {
		return fmt.Errorf("model call: %w", err)
	}

	reorder, hints := parseEnrichment(raw, slots)

	for id, position := range reorder {
		if err := s.itineraryRepo.UpdateFields(ctx, nil, id, map[string]interface{}{
			"position": position,
		}); err != nil {
			s.log.Warn("reorder update failed", "entry_id", id, "error", err)
		}
	}
	for id, hint := range hints {
		if err := s.itineraryRepo.UpdateFields(ctx, nil, id, map[string]interface{}{
			"narrative_hint": hint,
		}); err != nil {
			s.log.Warn("hint update failed", "entry_id", id, "error", err)
		}
	}

	s.log.Info("enrichment applied",
		"trip_id", tripID, "leg_id", legID,
		"reordered", len(reorder), "hints", len(hints))
	return nil
}

const enrichmentSystemPrompt = "You are a travel-itinerary editor. " +
	"Given a day-by-day list of stops, optionally reorder stops within their day to reduce backtracking between coordinates, " +
	"and write one short evocative hint per stop. Hints must be at most 100 characters. " +
	"Only reference the stop ids you were given."

var enrichmentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"reorder": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":           map[string]any{"type": "string"},
					"new_position": map[string]any{"type": "integer"},
				},
				"required":             []string{"id", "new_position"},
				"additionalProperties": false,
			},
		},
		"hints": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":   map[string]any{"type": "string"},
					"text": map[string]any{"type": "string"},
				},
				"required":             []string{"id", "text"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []string{"reorder", "hints"},
	"additionalProperties": false,
}

func buildEnrichmentPrompt(slots []SlotSummary, seed itinerary.PersonaSeed, destinationName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Destination: %s\n", destinationName)
	fmt.Fprintf(&b, "Traveler pace: %s. Preferences: %s.\n", seed.Pace, strings.Join(seed.Preferences, ", "))
	if seed.FreeText != "" {
		fmt.Fprintf(&b, "Traveler notes: %s\n", seed.FreeText)
	}
	b.WriteString("Stops:\n")
	for _, slot := range slots {
		fmt.Fprintf(&b, "- id=%s day=%d position=%d name=%q category=%s lat=%.5f lng=%.5f\n",
			slot.ID, slot.Day, slot.Position, slot.Name, slot.Category, slot.Latitude, slot.Longitude)
	}
	return b.String()
}

// parseEnrichment validates the model output against the known slot
// ids. Unknown ids, negative positions, empty or over-length hints are
// dropped silently; a structurally hostile payload yields empty maps.
func parseEnrichment(raw map[string]any, slots []SlotSummary) (map[uuid.UUID]int, map[uuid.UUID]string) {
	known := make(map[uuid.UUID]bool, len(slots))
	for _, slot := range slots {
		known[slot.ID] = true
	}

	reorder := map[uuid.UUID]int{}
	if items, ok := raw["reorder"].([]any); ok {
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			id, err := uuid.Parse(stringField(obj, "id"))
			if err != nil || !known[id] {
				continue
			}
			pos, ok := intField(obj, "new_position")
			if !ok || pos < 0 || pos >= len(slots) {
				continue
			}
			reorder[id] = pos
		}
	}

	hints := map[uuid.UUID]string{}
	if items, ok := raw["hints"].([]any); ok {
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			id, err := uuid.Parse(stringField(obj, "id"))
			if err != nil || !known[id] {
				continue
			}
			text := strings.TrimSpace(stringField(obj, "text"))
			if text == "" || len(text) > maxHintLength {
				continue
			}
			hints[id] = text
		}
	}

	return reorder, hints
}

func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}

func intField(obj map[string]any, key string) (int, bool) {
	switch v := obj[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}
