package synth

import (
	"fmt"
	"strings"
	"time"
)

// Timbre selects the oscillator stack and envelope of a note.
type Timbre uint8

// Supported timbres.
const (
	Sine Timbre = iota
	Piano
)

// Harmonic is one partial of a timbre: a multiple of the fundamental and its
// relative weight.
type Harmonic struct {
	Multiple float64
	Weight   float64
}

var (
	sineHarmonics  = []Harmonic{{Multiple: 1, Weight: 1}}
	pianoHarmonics = []Harmonic{
		{Multiple: 1, Weight: 1},
		{Multiple: 2, Weight: 0.5},
		{Multiple: 3, Weight: 0.25},
		{Multiple: 4, Weight: 0.125},
	}
)

var (
	sineEnvelope = Envelope{
		Attack:       10 * time.Millisecond,
		Decay:        100 * time.Millisecond,
		Sustain:      0.7,
		Release:      300 * time.Millisecond,
		DecayCurve:   Linear,
		ReleaseCurve: Linear,
	}
	pianoEnvelope = Envelope{
		Attack:       5 * time.Millisecond,
		Decay:        200 * time.Millisecond,
		Sustain:      0.3,
		Release:      800 * time.Millisecond,
		DecayCurve:   Exponential,
		ReleaseCurve: Exponential,
		Floor:        0.001,
	}
)

// ParseTimbre parses a timbre name.
func ParseTimbre(s string) (Timbre, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sine":
		return Sine, nil
	case "piano", "pianolike", "piano-like":
		return Piano, nil
	default:
		return 0, fmt.Errorf("unknown timbre %q (use sine or piano)", s)
	}
}

func (t Timbre) String() string {
	if t == Piano {
		return "piano"
	}
	return "sine"
}

// Harmonics returns a copy of the timbre's partials.
func (t Timbre) Harmonics() []Harmonic {
	src := sineHarmonics
	if t == Piano {
		src = pianoHarmonics
	}
	out := make([]Harmonic, len(src))
	copy(out, src)
	return out
}

// Envelope returns the gain envelope of the timbre.
func (t Timbre) Envelope() Envelope {
	if t == Piano {
		return pianoEnvelope
	}
	return sineEnvelope
}
