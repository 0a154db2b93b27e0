// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/tuinote/internal/model"
)

const sparkChars = " .:-=+*#%@"

// SessionMetrics computes answers per minute, average response time in
// milliseconds, and accuracy (0..1) for a session.
func SessionMetrics(correct, incorrect int, durationMs int64) (perMinute, avgMs, accuracy float64) {
	answered := correct + incorrect
	if answered > 0 {
		accuracy = float64(correct) / float64(answered)
	}
	if durationMs <= 0 || answered == 0 {
		return 0, 0, accuracy
	}
	minutes := float64(durationMs) / 60000.0
	perMinute = float64(answered) / minutes
	avgMs = float64(durationMs) / float64(answered)
	return perMinute, avgMs, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := minMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func minMax(values []float64) (float64, float64) {
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	return minVal, maxVal
}

// RenderSummary prints lifetime totals for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	t := ComputeTotals(sessions)
	lines := []string{
		"Summary",
		fmt.Sprintf("Games played: %d", t.Games),
		fmt.Sprintf("Answers: %d correct of %d", t.Correct, t.Answered),
		fmt.Sprintf("Avg Accuracy: %.2f%%", t.AvgAccuracy*100),
		fmt.Sprintf("Avg Time: %.0f ms", t.AvgTimeMs),
		fmt.Sprintf("Best Avg Time: %.0f ms", t.BestAvgTimeMs),
		fmt.Sprintf("Avg Answers/min: %.2f", t.AvgPerMinute),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints learning curves for accuracy and response time.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window int) error {
	return RenderCurvesWithSize(w, sessions, window, 0, false)
}

// RenderCurvesWithSize prints learning curves sized to a given total width.
func RenderCurvesWithSize(w io.Writer, sessions []model.SessionAggregate, window, totalWidth int, useColor bool) error {
	if len(sessions) == 0 {
		return nil
	}
	accs := make([]float64, len(sessions))
	times := make([]float64, len(sessions))
	for i, s := range sessions {
		_, avgMs, acc := SessionMetrics(s.Correct, s.Incorrect, s.DurationMs)
		accs[i] = acc * 100
		times[i] = avgMs
	}
	return RenderSeries(w, "Learning Curves", []Series{
		{Name: "Accuracy", Unit: "%", Values: MovingAverage(accs, window)},
		{Name: "Avg Time", Unit: "ms", Values: MovingAverage(times, window)},
	}, PlotWidthFor(totalWidth), useColor)
}

type noteRow struct {
	note      string
	acc       float64
	latency   float64
	correct   int
	incorrect int
}

func noteRows(aggs []model.NoteAggregate, label func(string) string) []noteRow {
	rows := make([]noteRow, 0, len(aggs))
	for _, agg := range aggs {
		name := agg.Note
		if label != nil {
			name = label(agg.Note)
		}
		lat := 0.0
		if agg.LatencyCount > 0 {
			lat = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
		}
		rows = append(rows, noteRow{
			note:      name,
			acc:       accuracy(agg),
			latency:   lat,
			correct:   agg.Correct,
			incorrect: agg.Incorrect,
		})
	}
	// Sort by lowest accuracy.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].acc == rows[j].acc {
			return rows[i].note < rows[j].note
		}
		return rows[i].acc < rows[j].acc
	})
	return rows
}

// NoteTableRows formats per-note aggregates as table cells, weakest first.
// label maps a stored note to its display name; nil keeps it as is.
func NoteTableRows(aggs []model.NoteAggregate, label func(string) string) [][]string {
	rows := noteRows(aggs, label)
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.note,
			fmt.Sprintf("%.2f%%", r.acc*100),
			fmt.Sprintf("%.0f", r.latency),
			fmt.Sprintf("%d", r.correct),
			fmt.Sprintf("%d", r.incorrect),
		})
	}
	return out
}

// NoteTableHeaders are the column titles for NoteTableRows.
var NoteTableHeaders = []string{"Note", "Accuracy", "Avg Time (ms)", "Correct", "Incorrect"}

// RenderNoteTable prints per-note aggregates.
func RenderNoteTable(w io.Writer, aggs []model.NoteAggregate, label func(string) string) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No note stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Per-Note (Windowed)"); err != nil {
		return err
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(NoteTableHeaders, NoteTableRows(aggs, label), rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderNoteCurves prints per-note learning curves.
func RenderNoteCurves(w io.Writer, sessions []model.SessionAggregate, perSession map[int64]map[string]model.NoteAggregate, notes []string, window, totalWidth int, useColor bool) error {
	if len(notes) == 0 || len(sessions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Per-Note Curves"); err != nil {
		return err
	}
	for _, note := range notes {
		accSeries := make([]float64, len(sessions))
		latSeries := make([]float64, len(sessions))
		for i, s := range sessions {
			agg, ok := perSession[s.SessionID][note]
			if !ok {
				continue
			}
			accSeries[i] = accuracy(agg) * 100
			if agg.LatencyCount > 0 {
				latSeries[i] = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
			}
		}
		if err := RenderSeries(w, "Note "+note, []Series{
			{Name: "Accuracy", Unit: "%", Values: MovingAverage(accSeries, window)},
			{Name: "Avg Time", Unit: "ms", Values: MovingAverage(latSeries, window)},
		}, PlotWidthFor(totalWidth), useColor); err != nil {
			return err
		}
	}
	return nil
}
