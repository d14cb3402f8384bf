package itinerary

import (
	"math/rand"
	"sort"
	"strings"

	types "github.com/wanderplan/wanderplan-backend/internal/domain"
)

// Scoring weights. The components sum to just under 1.0; jitter is the
// tie-breaker and keeps repeated runs from producing identical plans.
const (
	weightCategory  = 0.40
	weightTags      = 0.30
	weightAuthority = 0.15
	weightJitter    = 0.05

	neutralAuthority = 0.5
	// Snapshot dimensions above this fold into the preference terms.
	snapshotTermThreshold = 0.5
)

// ScoredCandidate pairs a catalog activity with its desirability score
// for one run. Ephemeral.
type ScoredCandidate struct {
	Activity *types.Activity
	Score    float64
}

type Scorer struct {
	jitter func() float64
}

func NewScorer() *Scorer {
	return &Scorer{jitter: rand.Float64}
}

// Score ranks candidates descending. Jitter is drawn independently per
// call, so repeated calls over the same inputs may reorder near-ties.
func (s *Scorer) Score(candidates []*types.Activity, pc PersonaContext) []ScoredCandidate {
	terms := preferenceTerms(pc.Seed, pc.Snapshot)

	out := make([]ScoredCandidate, 0, len(candidates))
	for _, a := range candidates {
		if a == nil {
			continue
		}
		score := baseScore(a, pc.Template, terms) + s.jitter()*weightJitter
		out = append(out, ScoredCandidate{Activity: a, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// baseScore is the deterministic portion: category weight, tag overlap
// and authority. Missing optional inputs degrade to neutral values.
func baseScore(a *types.Activity, tpl *Template, terms []string) float64 {
	score := weightCategory * clamp01(tpl.weightFor(a.Category))
	score += weightTags * tagOverlap(a.Tags, terms)

	authority := neutralAuthority
	if a.AuthorityScore != nil {
		authority = clamp01(*a.AuthorityScore)
	}
	score += weightAuthority * authority

	return score
}

// tagOverlap returns the 0-1 match fraction between an activity's tags
// and the preference terms: exact matches count fully, substring
// matches half, normalized by the number of distinct terms. With no
// terms at all the contribution is neutral.
func tagOverlap(tags []types.ActivityTag, terms []string) float64 {
	if len(terms) == 0 {
		return 0.5
	}

	var sum float64
	for _, term := range terms {
		best := 0.0
		for _, tag := range tags {
			name := strings.ToLower(strings.TrimSpace(tag.Tag))
			if name == "" {
				continue
			}
			if name == term {
				best = 1.0
				break
			}
			if strings.Contains(name, term) || strings.Contains(term, name) {
				if best < 0.5 {
					best = 0.5
				}
			}
		}
		sum += best
	}
	return sum / float64(len(terms))
}

func preferenceTerms(seed PersonaSeed, snapshot map[string]float64) []string {
	seen := map[string]bool{}
	var terms []string

	add := func(raw string) {
		term := strings.ToLower(strings.TrimSpace(raw))
		if term == "" || seen[term] {
			return
		}
		seen[term] = true
		terms = append(terms, term)
	}

	for _, p := range seed.Preferences {
		add(p)
	}
	for dim, term := range snapshotTerms {
		if snapshot[dim] > snapshotTermThreshold {
			add(term)
		}
	}
	return terms
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
