package itinerary

import "testing"

func TestClimateLookup(t *testing.T) {
	table, err := LoadClimateTable()
	if err != nil {
		t.Fatalf("LoadClimateTable: %v", err)
	}

	tokyoJune := table.Lookup("Tokyo", 6)
	if tokyoJune.Season != "summer" {
		t.Fatalf("tokyo june: expected summer, got %q", tokyoJune.Season)
	}
	if !tokyoJune.Rainy {
		t.Fatal("tokyo june: expected rainy")
	}

	tokyoApril := table.Lookup("tokyo", 4)
	if tokyoApril.Season != "spring" || tokyoApril.Rainy {
		t.Fatalf("tokyo april: got %+v", tokyoApril)
	}
}

func TestClimateLookup_SouthernHemisphereFlips(t *testing.T) {
	table, err := LoadClimateTable()
	if err != nil {
		t.Fatalf("LoadClimateTable: %v", err)
	}

	sydneyJanuary := table.Lookup("sydney", 1)
	if sydneyJanuary.Season != "summer" {
		t.Fatalf("sydney january: expected summer, got %q", sydneyJanuary.Season)
	}
	sydneyJuly := table.Lookup("sydney", 7)
	if sydneyJuly.Season != "winter" {
		t.Fatalf("sydney july: expected winter, got %q", sydneyJuly.Season)
	}
}

func TestClimateLookup_UnknownDestinationNeutral(t *testing.T) {
	table, err := LoadClimateTable()
	if err != nil {
		t.Fatalf("LoadClimateTable: %v", err)
	}

	got := table.Lookup("nowhereville", 7)
	if got.Season != "temperate" || got.Rainy {
		t.Fatalf("unknown destination: got %+v", got)
	}
}
