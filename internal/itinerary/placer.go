package itinerary

import (
	"time"

	"github.com/google/uuid"

	types "github.com/wanderplan/wanderplan-backend/internal/domain"
)

// Time-of-day buckets used for placement.
const (
	BucketMorning   = "morning"
	BucketMeal      = "meal"
	BucketAfternoon = "afternoon"
	BucketEvening   = "evening"
)

// PlacedSlot binds a scored candidate to a concrete day and time
// window. Ephemeral until the orchestrator persists it.
type PlacedSlot struct {
	Candidate ScoredCandidate

	// 1-indexed day within the leg.
	Day int
	// 0-indexed ordinal within the day.
	Position int
	Kind     string

	Start           time.Time
	End             time.Time
	DurationMinutes int
}

func (s PlacedSlot) ActivityID() uuid.UUID { return s.Candidate.Activity.ID }

var paceBaseSlots = map[string]int{
	PacePacked:   6,
	PaceModerate: 4,
	PaceRelaxed:  3,
}

var wakeBaseHour = map[string]int{
	WakeEarly: 8,
	WakeMid:   9,
	WakeLate:  10,
}

// longTripThreshold is the trip length (days) past which slots-per-day
// drops by one, unless the traveler asked for a packed pace.
const longTripThreshold = 7

// SlotsPerDay computes the effective slots-per-day from pace, template
// and trip length. Clamped to [2, 7].
func SlotsPerDay(pace string, tpl *Template, tripDays int) int {
	base, ok := paceBaseSlots[pace]
	if !ok {
		base = paceBaseSlots[PaceModerate]
	}
	if tpl != nil {
		base += tpl.PaceModifier
	}
	if base < 2 {
		base = 2
	}
	if base > 7 {
		base = 7
	}
	if tripDays > longTripThreshold && pace != PacePacked && base > 2 {
		base--
	}
	return base
}

// slotSpec assigns ordinal position i of a day its preferred bucket,
// slot kind, and hour offset from the wake-time base hour.
type slotSpec struct {
	Bucket     string
	Kind       string
	HourOffset int
}

// Day shapes keyed by slots-per-day. Each named shape is an ordered
// walk through the day; position N of every day uses shape[N].
var dayShapes = map[int][]slotSpec{
	2: { // easy day
		{BucketMorning, types.SlotKindAnchor, 1},
		{BucketAfternoon, types.SlotKindAnchor, 5},
	},
	3: { // classic day
		{BucketMorning, types.SlotKindAnchor, 1},
		{BucketMeal, types.SlotKindMeal, 4},
		{BucketAfternoon, types.SlotKindFlex, 6},
	},
	4: { // full day
		{BucketMorning, types.SlotKindAnchor, 1},
		{BucketMeal, types.SlotKindMeal, 4},
		{BucketAfternoon, types.SlotKindAnchor, 6},
		{BucketEvening, types.SlotKindFlex, 9},
	},
	5: { // long day
		{BucketMorning, types.SlotKindAnchor, 0},
		{BucketMorning, types.SlotKindFlex, 2},
		{BucketMeal, types.SlotKindMeal, 4},
		{BucketAfternoon, types.SlotKindAnchor, 6},
		{BucketEvening, types.SlotKindFlex, 9},
	},
	6: { // packed day
		{BucketMorning, types.SlotKindAnchor, 0},
		{BucketMorning, types.SlotKindFlex, 2},
		{BucketMeal, types.SlotKindMeal, 4},
		{BucketAfternoon, types.SlotKindAnchor, 6},
		{BucketAfternoon, types.SlotKindFlex, 8},
		{BucketEvening, types.SlotKindFlex, 10},
	},
	7: { // maximal day
		{BucketMorning, types.SlotKindAnchor, 0},
		{BucketMorning, types.SlotKindFlex, 2},
		{BucketMeal, types.SlotKindMeal, 4},
		{BucketAfternoon, types.SlotKindAnchor, 6},
		{BucketAfternoon, types.SlotKindFlex, 8},
		{BucketEvening, types.SlotKindFlex, 10},
		{BucketEvening, types.SlotKindFlex, 12},
	},
}

// bucketFallback is the fixed per-bucket fallback order: when the
// preferred pool is exhausted the placer tries these in sequence.
var bucketFallback = map[string][]string{
	BucketMorning:   {BucketAfternoon, BucketMeal, BucketEvening},
	BucketMeal:      {BucketMorning, BucketAfternoon, BucketEvening},
	BucketAfternoon: {BucketMorning, BucketEvening, BucketMeal},
	BucketEvening:   {BucketAfternoon, BucketMeal, BucketMorning},
}

var categoryBucket = map[string]string{
	types.CategoryDining:        BucketMeal,
	types.CategoryDrinks:        BucketEvening,
	types.CategoryCulture:       BucketMorning,
	types.CategoryShopping:      BucketMorning,
	types.CategoryWellness:      BucketMorning,
	types.CategoryOutdoors:      BucketAfternoon,
	types.CategoryActive:        BucketAfternoon,
	types.CategoryExperience:    BucketAfternoon,
	types.CategoryGroupActivity: BucketAfternoon,
	types.CategoryEntertainment: BucketEvening,
	types.CategoryNightlife:     BucketEvening,
}

var categoryDuration = map[string]int{
	types.CategoryDining:        75,
	types.CategoryDrinks:        60,
	types.CategoryCulture:       90,
	types.CategoryOutdoors:      120,
	types.CategoryActive:        150,
	types.CategoryEntertainment: 120,
	types.CategoryShopping:      75,
	types.CategoryExperience:    105,
	types.CategoryNightlife:     120,
	types.CategoryGroupActivity: 90,
	types.CategoryWellness:      90,
}

const defaultDurationMinutes = 90

func durationFor(category string) int {
	if d, ok := categoryDuration[category]; ok {
		return d
	}
	return defaultDurationMinutes
}

func bucketFor(category string) string {
	if b, ok := categoryBucket[category]; ok {
		return b
	}
	return BucketAfternoon
}

// Placer assigns selected candidates to concrete day/time slots.
type Placer struct{}

func NewPlacer() *Placer { return &Placer{} }

// Place walks each day of the leg through the day shape for the
// effective slots-per-day, filling positions from per-bucket candidate
// pools with fixed fallback order. Exhausted pools leave silent gaps.
func (p *Placer) Place(selected []ScoredCandidate, totalDays int, seed PersonaSeed, tpl *Template, legStart time.Time) []PlacedSlot {
	if len(selected) == 0 || totalDays <= 0 {
		return nil
	}

	slotsPerDay := SlotsPerDay(seed.Pace, tpl, totalDays)
	shape := dayShapes[slotsPerDay]

	baseHour, ok := wakeBaseHour[seed.WakeTime]
	if !ok {
		baseHour = wakeBaseHour[WakeMid]
	}

	// Pool per bucket, in selection (score) order.
	pools := map[string][]ScoredCandidate{}
	for _, sc := range selected {
		b := bucketFor(sc.Activity.Category)
		pools[b] = append(pools[b], sc)
	}
	used := map[uuid.UUID]bool{}

	takeFrom := func(bucket string) (ScoredCandidate, bool) {
		for _, sc := range pools[bucket] {
			if !used[sc.Activity.ID] {
				used[sc.Activity.ID] = true
				return sc, true
			}
		}
		return ScoredCandidate{}, false
	}

	dayStart := time.Date(legStart.Year(), legStart.Month(), legStart.Day(), 0, 0, 0, 0, legStart.Location())

	var out []PlacedSlot
	for day := 1; day <= totalDays; day++ {
		position := 0
		for _, spec := range shape {
			sc, found := takeFrom(spec.Bucket)
			if !found {
				for _, fb := range bucketFallback[spec.Bucket] {
					if sc, found = takeFrom(fb); found {
						break
					}
				}
			}
			if !found {
				// Pool exhausted in every bucket; itinerary gaps are fine.
				continue
			}

			duration := durationFor(sc.Activity.Category)
			start := dayStart.AddDate(0, 0, day-1).Add(time.Duration(baseHour+spec.HourOffset) * time.Hour)
			out = append(out, PlacedSlot{
				Candidate:       sc,
				Day:             day,
				Position:        position,
				Kind:            spec.Kind,
				Start:           start,
				End:             start.Add(time.Duration(duration) * time.Minute),
				DurationMinutes: duration,
			})
			position++
		}
	}
	return out
}
