package itinerary

// Selector picks the itinerary subset from score-ranked candidates. It
// is an interface so a constraint-solver implementation can replace the
// greedy pass without touching the scorer or placer.
type Selector interface {
	Select(ranked []ScoredCandidate, targetCount int) []ScoredCandidate
}

type greedySelector struct{}

func NewGreedySelector() Selector {
	return greedySelector{}
}

// CategoryCap is the per-category selection ceiling for a target count:
// no category may supply more than roughly one third of the itinerary.
func CategoryCap(targetCount int) int {
	if targetCount <= 0 {
		return 0
	}
	return (targetCount + 2) / 3
}

// Select walks the ranked list once, accepting candidates until the
// target is met, skipping any whose category already hit the cap. A
// smaller-than-requested result means the catalog was too small or too
// skewed; that is expected, not an error.
func (greedySelector) Select(ranked []ScoredCandidate, targetCount int) []ScoredCandidate {
	if targetCount <= 0 || len(ranked) == 0 {
		return nil
	}

	categoryCap := CategoryCap(targetCount)
	perCategory := map[string]int{}
	out := make([]ScoredCandidate, 0, targetCount)

	for _, sc := range ranked {
		if len(out) >= targetCount {
			break
		}
		if sc.Activity == nil {
			continue
		}
		if perCategory[sc.Activity.Category] >= categoryCap {
			continue
		}
		perCategory[sc.Activity.Category]++
		out = append(out, sc)
	}
	return out
}
