package itinerary

import (
	"testing"
	"time"

	types "github.com/wanderplan/wanderplan-backend/internal/domain"
)

func TestSlotsPerDay(t *testing.T) {
	cases := []struct {
		name     string
		pace     string
		template string
		tripDays int
		want     int
	}{
		{"packed short trip keeps base", PacePacked, "", 3, 6},
		{"packed long trip skips reduction", PacePacked, "", 10, 6},
		{"relaxed long trip reduced", PaceRelaxed, "", 10, 2},
		{"moderate long trip reduced", PaceModerate, "", 8, 3},
		{"moderate short trip", PaceModerate, "", 5, 4},
		{"template modifier applies", PaceModerate, "outdoor_adventure", 3, 5},
		{"template modifier clamped low", PaceRelaxed, "wellness_reset", 3, 2},
		{"unknown pace falls back to moderate", "frantic", "", 3, 4},
	}
	for _, tc := range cases {
		if got := SlotsPerDay(tc.pace, LookupTemplate(tc.template), tc.tripDays); got != tc.want {
			t.Fatalf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func selectedPool(counts map[string]int) []ScoredCandidate {
	var out []ScoredCandidate
	score := 100.0
	for category, n := range counts {
		for i := 0; i < n; i++ {
			out = append(out, ScoredCandidate{Activity: activityWithTags(category), Score: score})
			score--
		}
	}
	return out
}

func TestPlace_DayNumberRoundTrip(t *testing.T) {
	legStart := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	selected := selectedPool(map[string]int{
		types.CategoryCulture:  4,
		types.CategoryDining:   4,
		types.CategoryOutdoors: 4,
	})

	slots := NewPlacer().Place(selected, 3, PersonaSeed{Pace: PaceModerate, WakeTime: WakeEarly}, nil, legStart)
	if len(slots) == 0 {
		t.Fatal("expected placements")
	}
	for _, slot := range slots {
		derived := int(slot.Start.Sub(legStart).Hours()/24) + 1
		if derived != slot.Day {
			t.Fatalf("day round-trip mismatch: start=%s derived=%d want=%d", slot.Start, derived, slot.Day)
		}
	}
}

func TestPlace_RespectsSlotsPerDay(t *testing.T) {
	legStart := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	selected := selectedPool(map[string]int{
		types.CategoryCulture:   6,
		types.CategoryDining:    6,
		types.CategoryOutdoors:  6,
		types.CategoryNightlife: 6,
	})
	seed := PersonaSeed{Pace: PacePacked, WakeTime: WakeMid}

	slots := NewPlacer().Place(selected, 3, seed, nil, legStart)
	perDay := map[int]int{}
	for _, slot := range slots {
		perDay[slot.Day]++
	}
	limit := SlotsPerDay(seed.Pace, nil, 3)
	for day, n := range perDay {
		if n > limit {
			t.Fatalf("day %d has %d slots, limit %d", day, n, limit)
		}
	}
}

func TestPlace_GapsWhenPoolExhausted(t *testing.T) {
	legStart := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	// Two candidates for a three-day moderate trip: later days get gaps.
	selected := selectedPool(map[string]int{types.CategoryCulture: 2})

	slots := NewPlacer().Place(selected, 3, PersonaSeed{Pace: PaceModerate, WakeTime: WakeMid}, nil, legStart)
	if len(slots) != 2 {
		t.Fatalf("expected exactly 2 placements, got %d", len(slots))
	}
	for _, slot := range slots {
		if slot.Day != 1 {
			t.Fatalf("expected both placements on day 1, got day %d", slot.Day)
		}
	}
}

func TestPlace_BucketFallback(t *testing.T) {
	legStart := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	// Only evening-bucket candidates; morning and meal positions must
	// fall back rather than stay empty.
	selected := selectedPool(map[string]int{types.CategoryNightlife: 4})

	slots := NewPlacer().Place(selected, 1, PersonaSeed{Pace: PaceModerate, WakeTime: WakeMid}, nil, legStart)
	if len(slots) != 4 {
		t.Fatalf("expected all 4 candidates placed via fallback, got %d", len(slots))
	}
}

func TestPlace_NoDuplicateCandidates(t *testing.T) {
	legStart := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	selected := selectedPool(map[string]int{
		types.CategoryCulture: 3,
		types.CategoryDining:  3,
	})

	slots := NewPlacer().Place(selected, 2, PersonaSeed{Pace: PaceModerate, WakeTime: WakeLate}, nil, legStart)
	seen := map[string]bool{}
	for _, slot := range slots {
		id := slot.ActivityID().String()
		if seen[id] {
			t.Fatalf("activity %s placed twice", id)
		}
		seen[id] = true
	}
}

func TestPlace_WakeTimeShiftsStart(t *testing.T) {
	legStart := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	selected := selectedPool(map[string]int{types.CategoryCulture: 1})

	early := NewPlacer().Place(selected, 1, PersonaSeed{Pace: PaceRelaxed, WakeTime: WakeEarly}, nil, legStart)
	late := NewPlacer().Place(selected, 1, PersonaSeed{Pace: PaceRelaxed, WakeTime: WakeLate}, nil, legStart)
	if len(early) == 0 || len(late) == 0 {
		t.Fatal("expected placements")
	}
	if diff := late[0].Start.Sub(early[0].Start); diff != 2*time.Hour {
		t.Fatalf("expected late wake to shift start by 2h, got %s", diff)
	}
}

func TestPlace_DurationsAndEndTimes(t *testing.T) {
	legStart := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	selected := selectedPool(map[string]int{types.CategoryActive: 1})

	slots := NewPlacer().Place(selected, 1, PersonaSeed{Pace: PaceRelaxed, WakeTime: WakeMid}, nil, legStart)
	if len(slots) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(slots))
	}
	slot := slots[0]
	if slot.DurationMinutes != 150 {
		t.Fatalf("expected active duration 150, got %d", slot.DurationMinutes)
	}
	if got := slot.End.Sub(slot.Start); got != 150*time.Minute {
		t.Fatalf("end-start mismatch: %s", got)
	}
}
