package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuinote/internal/model"
	"github.com/verte-zerg/tuinote/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tuinote.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		stats := model.SessionStats{
			StartedAt:  start,
			EndedAt:    end,
			Clef:       "treble",
			Key:        "C",
			Questions:  10,
			Correct:    9,
			Incorrect:  1,
			DurationMs: end.Sub(start).Milliseconds(),
		}
		noteStats := []model.NoteStats{
			{Note: "C", Correct: 5, Incorrect: 0},
			{Note: "F#", Correct: 4, Incorrect: 1},
		}
		id, err := st.InsertSession(ctx, stats, noteStats)
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}

	cfg := model.StatsConfig{
		Clef:        "treble",
		Last:        2,
		CurveWindow: 1,
		Notes:       "C,F#",
	}
	report, err := BuildReport(ctx, st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Sessions[0].SessionID != ids[1] || report.Sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", report.Sessions)
	}
	if len(report.WindowSessionIDs) != 1 || report.WindowSessionIDs[0] != ids[2] {
		t.Fatalf("expected only the last session in the window, got %v", report.WindowSessionIDs)
	}
	if len(report.NoteAggsAll) != 2 {
		t.Fatalf("expected note aggregates for all sessions")
	}
	if report.Totals.Games != 2 || report.Totals.Correct != 18 {
		t.Fatalf("unexpected totals %+v", report.Totals)
	}
}
