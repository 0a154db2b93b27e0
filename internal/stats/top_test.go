package stats

import (
	"testing"

	"github.com/verte-zerg/tuinote/internal/model"
)

func TestTopNotesByFrequency(t *testing.T) {
	aggs := []model.NoteAggregate{
		{Note: "D", Correct: 3, Incorrect: 1},
		{Note: "C", Correct: 2, Incorrect: 2},
		{Note: "E", Correct: 1, Incorrect: 0},
	}
	top := TopNotesByFrequency(aggs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(top))
	}
	if top[0] != "C" || top[1] != "D" {
		t.Fatalf("unexpected order: %v", top)
	}
}
