// Package model defines shared data structures.
package model

import "time"

// Config defines quiz settings.
type Config struct {
	Clef           string
	Key            string
	LedgerAbove    int
	LedgerBelow    int
	Accidentals    bool
	AccidentalProb float64
	Questions      int
	Sound          bool
	Timbre         string
	Duration       time.Duration
	Volume         float64
	Names          string
	FocusWeak      bool
	WeakTop        int
	WeakFactor     float64
	WeakWindow     int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Clef        string
	Key         string
	Since       *time.Time
	Last        int
	CurveWindow int
	Notes       string
}

// SessionStats captures a completed quiz session.
type SessionStats struct {
	StartedAt      time.Time
	EndedAt        time.Time
	Clef           string
	Key            string
	LedgerAbove    int
	LedgerBelow    int
	Accidentals    bool
	AccidentalProb float64
	Questions      int
	Correct        int
	Incorrect      int
	DurationMs     int64
}

// NoteStats stores per-note stats for a session. Note is the pitch class of
// the expected answer, e.g. "F#".
type NoteStats struct {
	Note         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// NoteAggregate aggregates note stats across sessions.
type NoteAggregate struct {
	Note         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	Questions  int
	Correct    int
	Incorrect  int
	DurationMs int64
}
