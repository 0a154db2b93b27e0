package stats

import (
	"sort"

	"github.com/verte-zerg/tuinote/internal/model"
)

// TopNotesByFrequency returns the top N notes by number of questions asked.
func TopNotesByFrequency(aggs []model.NoteAggregate, n int) []string {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	type item struct {
		note  string
		total int
	}
	items := make([]item, 0, len(aggs))
	for _, agg := range aggs {
		items = append(items, item{
			note:  agg.Note,
			total: agg.Correct + agg.Incorrect,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].total == items[j].total {
			return items[i].note < items[j].note
		}
		return items[i].total > items[j].total
	})
	n = min(n, len(items))
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].note)
	}
	return out
}
