package itinerary

import (
	"strings"

	types "github.com/wanderplan/wanderplan-backend/internal/domain"
)

// Template is a named preset biasing category weights and pace.
type Template struct {
	Name            string
	CategoryWeights map[string]float64
	// Added to the pace's base slots-per-day before clamping.
	PaceModifier int
}

// defaultCategoryWeight applies to every category when no template is
// set, and to categories a template does not mention.
const defaultCategoryWeight = 0.3

var templates = map[string]*Template{
	"foodie_weekend": {
		Name:         "foodie_weekend",
		PaceModifier: 0,
		CategoryWeights: map[string]float64{
			types.CategoryDining:     1.0,
			types.CategoryDrinks:     0.8,
			types.CategoryExperience: 0.6,
			types.CategoryShopping:   0.4,
		},
	},
	"culture_trip": {
		Name:         "culture_trip",
		PaceModifier: 0,
		CategoryWeights: map[string]float64{
			types.CategoryCulture:       1.0,
			types.CategoryEntertainment: 0.6,
			types.CategoryExperience:    0.6,
			types.CategoryDining:        0.5,
		},
	},
	"outdoor_adventure": {
		Name:         "outdoor_adventure",
		PaceModifier: 1,
		CategoryWeights: map[string]float64{
			types.CategoryOutdoors:   1.0,
			types.CategoryActive:     0.9,
			types.CategoryExperience: 0.6,
			types.CategoryWellness:   0.4,
		},
	},
	"nightlife_weekend": {
		Name:         "nightlife_weekend",
		PaceModifier: -1,
		CategoryWeights: map[string]float64{
			types.CategoryNightlife:     1.0,
			types.CategoryDrinks:        0.9,
			types.CategoryEntertainment: 0.7,
			types.CategoryDining:        0.5,
		},
	},
	"family_break": {
		Name:         "family_break",
		PaceModifier: -1,
		CategoryWeights: map[string]float64{
			types.CategoryGroupActivity: 1.0,
			types.CategoryEntertainment: 0.8,
			types.CategoryOutdoors:      0.6,
			types.CategoryDining:        0.5,
		},
	},
	"wellness_reset": {
		Name:         "wellness_reset",
		PaceModifier: -1,
		CategoryWeights: map[string]float64{
			types.CategoryWellness: 1.0,
			types.CategoryOutdoors: 0.6,
			types.CategoryDining:   0.5,
		},
	},
}

// LookupTemplate resolves a template name; unknown or empty names return
// nil, which scoring treats as "no template".
func LookupTemplate(name string) *Template {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil
	}
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return templates[key]
}

func (t *Template) weightFor(category string) float64 {
	if t == nil {
		return defaultCategoryWeight
	}
	if w, ok := t.CategoryWeights[category]; ok {
		return w
	}
	return defaultCategoryWeight
}
