package stats

import (
	"context"

	"github.com/verte-zerg/tuinote/internal/model"
	"github.com/verte-zerg/tuinote/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions         []model.SessionAggregate
	Totals           Totals
	WindowSessionIDs []int64
	NoteAggsAll      []model.NoteAggregate
	NoteAggsWindow   []model.NoteAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}

	allIDs := sessionIDs(sessions)
	windowIDs := lastSessionIDs(sessions, cfg.CurveWindow)
	noteAggsAll, err := st.ListNoteAggregatesForSessions(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	noteAggsWindow, err := st.ListNoteAggregatesForSessions(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Sessions:         sessions,
		Totals:           ComputeTotals(sessions),
		WindowSessionIDs: windowIDs,
		NoteAggsAll:      noteAggsAll,
		NoteAggsWindow:   noteAggsWindow,
	}, nil
}

func sessionIDs(sessions []model.SessionAggregate) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}

func lastSessionIDs(sessions []model.SessionAggregate, window int) []int64 {
	if window <= 0 || len(sessions) <= window {
		return sessionIDs(sessions)
	}
	return sessionIDs(sessions[len(sessions)-window:])
}
