package stats

import (
	"sort"

	"github.com/verte-zerg/ladder/internal/model"
)

// SelectWeakWords returns up to top words with the lowest accuracy. Words never
// answered wrong are skipped. A top of zero or less selects nothing.
func SelectWeakWords(aggs []model.WordAggregate, top int) []model.WordAggregate {
	if top <= 0 {
		return nil
	}
	candidates := make([]model.WordAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Incorrect > 0 {
			candidates = append(candidates, agg)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai := Accuracy(candidates[i].Correct, candidates[i].Incorrect)
		aj := Accuracy(candidates[j].Correct, candidates[j].Incorrect)
		if ai != aj {
			return ai < aj
		}
		if candidates[i].Incorrect != candidates[j].Incorrect {
			return candidates[i].Incorrect > candidates[j].Incorrect
		}
		if candidates[i].Category != candidates[j].Category {
			return candidates[i].Category < candidates[j].Category
		}
		return candidates[i].Question < candidates[j].Question
	})
	if top < len(candidates) {
		candidates = candidates[:top]
	}
	return candidates
}
