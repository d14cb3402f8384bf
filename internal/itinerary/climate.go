package itinerary

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed climate.yaml
var climateYAML []byte

// ClimateDescriptor is the destination climate/season context captured
// into training records and fed to scoring-adjacent consumers.
type ClimateDescriptor struct {
	Season      string `json:"season" yaml:"season"`
	TypicalHigh int    `json:"typical_high_c" yaml:"high"`
	TypicalLow  int    `json:"typical_low_c" yaml:"low"`
	Rainy       bool   `json:"rainy" yaml:"rainy"`
}

type climateEntry struct {
	Name        string       `yaml:"name"`
	Hemisphere  string       `yaml:"hemisphere"`
	RainyMonths []int        `yaml:"rainy_months"`
	Seasons     map[string]struct {
		High int `yaml:"high"`
		Low  int `yaml:"low"`
	} `yaml:"seasons"`
}

type climateFile struct {
	Destinations []climateEntry `yaml:"destinations"`
}

// ClimateTable is a static read-only lookup keyed by destination name
// and month. Unknown destinations resolve to a neutral temperate
// descriptor.
type ClimateTable struct {
	byName map[string]climateEntry
}

func LoadClimateTable() (*ClimateTable, error) {
	var file climateFile
	if err := yaml.Unmarshal(climateYAML, &file); err != nil {
		return nil, fmt.Errorf("parse climate table: %w", err)
	}
	byName := make(map[string]climateEntry, len(file.Destinations))
	for _, entry := range file.Destinations {
		byName[strings.ToLower(strings.TrimSpace(entry.Name))] = entry
	}
	return &ClimateTable{byName: byName}, nil
}

func seasonForMonth(month int, hemisphere string) string {
	if month < 1 || month > 12 {
		month = 1
	}
	northern := map[int]string{
		1: "winter", 2: "winter", 3: "spring", 4: "spring", 5: "spring",
		6: "summer", 7: "summer", 8: "summer",
		9: "autumn", 10: "autumn", 11: "autumn", 12: "winter",
	}
	season := northern[month]
	if strings.EqualFold(hemisphere, "south") {
		flip := map[string]string{
			"winter": "summer",
			"spring": "autumn",
			"summer": "winter",
			"autumn": "spring",
		}
		season = flip[season]
	}
	return season
}

func (t *ClimateTable) Lookup(destinationName string, month int) ClimateDescriptor {
	neutral := ClimateDescriptor{Season: "temperate", TypicalHigh: 20, TypicalLow: 10}
	if t == nil {
		return neutral
	}
	entry, ok := t.byName[strings.ToLower(strings.TrimSpace(destinationName))]
	if !ok {
		return neutral
	}

	season := seasonForMonth(month, entry.Hemisphere)
	d := ClimateDescriptor{Season: season, TypicalHigh: neutral.TypicalHigh, TypicalLow: neutral.TypicalLow}
	if temps, ok := entry.Seasons[season]; ok {
		d.TypicalHigh = temps.High
		d.TypicalLow = temps.Low
	}
	for _, m := range entry.RainyMonths {
		if m == month {
			d.Rainy = true
			break
		}
	}
	return d
}
