package stats

import (
	"sort"

	"github.com/verte-zerg/tuinote/internal/model"
)

// SelectWeakNotes selects the lowest-accuracy notes from aggregates. Ties go
// to the slower note.
func SelectWeakNotes(aggs []model.NoteAggregate, top int) map[string]struct{} {
	weakSet := map[string]struct{}{}
	if len(aggs) == 0 {
		return weakSet
	}
	candidates := make([]model.NoteAggregate, len(aggs))
	copy(candidates, aggs)
	sort.Slice(candidates, func(i, j int) bool {
		ai := accuracy(candidates[i])
		aj := accuracy(candidates[j])
		if ai != aj {
			return ai < aj
		}
		li, lj := avgLatency(candidates[i]), avgLatency(candidates[j])
		if li != lj {
			return li > lj
		}
		return candidates[i].Note < candidates[j].Note
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	for i := 0; i < top; i++ {
		if candidates[i].Note != "" {
			weakSet[candidates[i].Note] = struct{}{}
		}
	}
	return weakSet
}

func accuracy(agg model.NoteAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}

func avgLatency(agg model.NoteAggregate) float64 {
	if agg.LatencyCount == 0 {
		return 0
	}
	return float64(agg.LatencySumMs) / float64(agg.LatencyCount)
}
