package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	goredis "github.com/wanderplan/wanderplan-backend/internal/clients/redis"
	"github.com/wanderplan/wanderplan-backend/internal/data/repos"
	types "github.com/wanderplan/wanderplan-backend/internal/domain"
	"github.com/wanderplan/wanderplan-backend/internal/platform/logger"
)

const (
	PacePacked   = "packed"
	PaceModerate = "moderate"
	PaceRelaxed  = "relaxed"

	WakeEarly = "early"
	WakeMid   = "mid"
	WakeLate  = "late"
)

// PersonaSeed is the traveler-supplied preference bundle. Read-only to
// the engine.
type PersonaSeed struct {
	Pace        string   `json:"pace"`
	WakeTime    string   `json:"wake_time"`
	Preferences []string `json:"preferences"`
	FreeText    string   `json:"free_text,omitempty"`
	Template    string   `json:"template,omitempty"`
}

// Implicit preference dimensions, each a 0-1 fraction of recent events
// matching the dimension's pattern.
const (
	DimAdventure         = "adventure"
	DimBudgetSensitivity = "budget_sensitivity"
	DimFoodFocus         = "food_focus"
	DimCultureInterest   = "culture_interest"
	DimNaturePreference  = "nature_preference"
	DimNightlifeAffinity = "nightlife_affinity"
)

// snapshotEventWindow bounds how much history feeds the snapshot.
const snapshotEventWindow = 200

var dimensionCategories = map[string][]string{
	DimAdventure:         {types.CategoryActive, types.CategoryOutdoors, types.CategoryExperience},
	DimFoodFocus:         {types.CategoryDining, types.CategoryDrinks},
	DimCultureInterest:   {types.CategoryCulture, types.CategoryEntertainment},
	DimNaturePreference:  {types.CategoryOutdoors, types.CategoryWellness},
	DimNightlifeAffinity: {types.CategoryNightlife, types.CategoryDrinks},
}

var positiveEventTypes = map[string]bool{
	types.EventSlotUpvoted:    true,
	types.EventSlotSaved:      true,
	types.EventActivityViewed: true,
}

// SnapshotFromEvents derives the implicit preference snapshot from the
// traveler's recent interaction log. Empty history yields an empty map,
// which every consumer treats as "no signal".
func SnapshotFromEvents(events []*types.TravelerEvent) map[string]float64 {
	if len(events) > snapshotEventWindow {
		events = events[:snapshotEventWindow]
	}

	type eventFacts struct {
		category  string
		priceTier int
	}

	var positive []eventFacts
	for _, ev := range events {
		if ev == nil || !positiveEventTypes[ev.Type] {
			continue
		}
		facts := eventFacts{}
		if len(ev.Data) > 0 {
			var data map[string]any
			if err := json.Unmarshal(ev.Data, &data); err == nil {
				if c, ok := data["category"].(string); ok {
					facts.category = strings.ToLower(strings.TrimSpace(c))
				}
				if p, ok := data["price_tier"].(float64); ok {
					facts.priceTier = int(p)
				}
			}
		}
		positive = append(positive, facts)
	}
	if len(positive) == 0 {
		return map[string]float64{}
	}

	snapshot := make(map[string]float64, len(dimensionCategories)+1)
	total := float64(len(positive))

	for dim, cats := range dimensionCategories {
		matched := 0
		for _, facts := range positive {
			for _, cat := range cats {
				if facts.category == cat {
					matched++
					break
				}
			}
		}
		snapshot[dim] = float64(matched) / total
	}

	cheap := 0
	for _, facts := range positive {
		if facts.priceTier > 0 && facts.priceTier <= 2 {
			cheap++
		}
	}
	snapshot[DimBudgetSensitivity] = float64(cheap) / total

	return snapshot
}

// snapshotTerms folds strong implicit dimensions into pseudo preference
// terms for tag-overlap scoring.
var snapshotTerms = map[string]string{
	DimAdventure:         "adventure",
	DimFoodFocus:         "food",
	DimCultureInterest:   "culture",
	DimNaturePreference:  "nature",
	DimNightlifeAffinity: "nightlife",
}

// PersonaContext is everything scoring needs for one generation run.
type PersonaContext struct {
	Seed     PersonaSeed
	Template *Template
	Snapshot map[string]float64
	Climate  ClimateDescriptor
}

// ContextLoader assembles a PersonaContext. Pure read; the optional
// cache shortcuts the interaction-history scan.
type ContextLoader struct {
	events  repos.TravelerEventRepo
	cache   *goredis.Cache
	climate *ClimateTable
	log     *logger.Logger
}

func NewContextLoader(events repos.TravelerEventRepo, cache *goredis.Cache, climate *ClimateTable, baseLog *logger.Logger) *ContextLoader {
	return &ContextLoader{
		events:  events,
		cache:   cache,
		climate: climate,
		log:     baseLog.With("component", "ContextLoader"),
	}
}

func (l *ContextLoader) Load(ctx context.Context, travelerID uuid.UUID, seed PersonaSeed, destinationName string, month int) (PersonaContext, error) {
	pc := PersonaContext{
		Seed:     seed,
		Template: LookupTemplate(seed.Template),
		Snapshot: map[string]float64{},
		Climate:  l.climate.Lookup(destinationName, month),
	}

	cacheKey := fmt.Sprintf("persona:snapshot:%s", travelerID)
	if l.cache.GetJSON(ctx, cacheKey, &pc.Snapshot) {
		return pc, nil
	}

	events, err := l.events.ListRecentByTraveler(ctx, nil, travelerID, snapshotEventWindow)
	if err != nil {
		return pc, fmt.Errorf("load traveler events: %w", err)
	}
	pc.Snapshot = SnapshotFromEvents(events)
	l.cache.SetJSON(ctx, cacheKey, pc.Snapshot)

	return pc, nil
}
