package stats

import "github.com/verte-zerg/tuinote/internal/model"

// Totals summarizes every session in a report.
type Totals struct {
	Games         int
	Answered      int
	Correct       int
	AvgAccuracy   float64
	AvgTimeMs     float64
	BestAvgTimeMs float64
	AvgPerMinute  float64
}

// ComputeTotals aggregates session metrics. Accuracy and speed are averaged
// per session; BestAvgTimeMs ignores sessions with no answers.
func ComputeTotals(sessions []model.SessionAggregate) Totals {
	var t Totals
	if len(sessions) == 0 {
		return t
	}
	var accSum, timeSum, rateSum float64
	timed := 0
	for _, s := range sessions {
		t.Games++
		t.Answered += s.Correct + s.Incorrect
		t.Correct += s.Correct
		perMinute, avgMs, acc := SessionMetrics(s.Correct, s.Incorrect, s.DurationMs)
		accSum += acc
		rateSum += perMinute
		if avgMs > 0 {
			timed++
			timeSum += avgMs
			if t.BestAvgTimeMs == 0 || avgMs < t.BestAvgTimeMs {
				t.BestAvgTimeMs = avgMs
			}
		}
	}
	n := float64(t.Games)
	t.AvgAccuracy = accSum / n
	t.AvgPerMinute = rateSum / n
	if timed > 0 {
		t.AvgTimeMs = timeSum / float64(timed)
	}
	return t
}
