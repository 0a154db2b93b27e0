package synth

import (
	"math"
	"time"
)

// Curve is the shape of the ramp leading into a breakpoint.
type Curve uint8

// Ramp shapes.
const (
	// Step holds the previous gain until the breakpoint, then jumps.
	Step Curve = iota
	Linear
	// Exponential falls back to Linear when either end is not positive.
	Exponential
)

// Phase is the state of a note at a point in time.
type Phase uint8

// Note phases, in the order a note passes through them.
const (
	Idle Phase = iota
	Attacking
	Decaying
	Sustaining
	Releasing
)

func (p Phase) String() string {
	switch p {
	case Attacking:
		return "attacking"
	case Decaying:
		return "decaying"
	case Sustaining:
		return "sustaining"
	case Releasing:
		return "releasing"
	default:
		return "idle"
	}
}

// Breakpoint is a gain target reached at a time offset from note start.
type Breakpoint struct {
	At    time.Duration
	Gain  float64
	Curve Curve
}

// Envelope describes an attack-decay-sustain-release gain shape.
type Envelope struct {
	Attack       time.Duration
	Decay        time.Duration
	Sustain      float64
	Release      time.Duration
	DecayCurve   Curve
	ReleaseCurve Curve
	// Floor is the gain reached at the end of the release.
	Floor float64
}

// Schedule is an envelope laid out for one note of a fixed duration.
type Schedule struct {
	points       []Breakpoint
	duration     time.Duration
	attackEnd    time.Duration
	decayEnd     time.Duration
	releaseStart time.Duration
}

// Schedule lays the envelope out over d. Segments that do not fit are
// shortened in order: the release starts no earlier than the decay ends and
// the attack and decay never run past d.
func (e Envelope) Schedule(d time.Duration) Schedule {
	if d < 0 {
		d = 0
	}
	attackEnd := min(e.Attack, d)
	decayEnd := min(e.Attack+e.Decay, d)
	releaseStart := max(d-e.Release, decayEnd)
	return Schedule{
		points: []Breakpoint{
			{At: 0, Gain: 0, Curve: Step},
			{At: attackEnd, Gain: 1, Curve: Linear},
			{At: decayEnd, Gain: e.Sustain, Curve: e.DecayCurve},
			{At: releaseStart, Gain: e.Sustain, Curve: Step},
			{At: d, Gain: e.Floor, Curve: e.ReleaseCurve},
		},
		duration:     d,
		attackEnd:    attackEnd,
		decayEnd:     decayEnd,
		releaseStart: releaseStart,
	}
}

// Duration returns the scheduled stop time.
func (s Schedule) Duration() time.Duration {
	return s.duration
}

// Breakpoints returns a copy of the gain automation.
func (s Schedule) Breakpoints() []Breakpoint {
	out := make([]Breakpoint, len(s.points))
	copy(out, s.points)
	return out
}

// GainAt returns the envelope gain at t.
func (s Schedule) GainAt(t time.Duration) float64 {
	if len(s.points) == 0 || t <= 0 {
		return 0
	}
	last := s.points[len(s.points)-1]
	if t >= s.duration {
		return last.Gain
	}
	for i := 1; i < len(s.points); i++ {
		next := s.points[i]
		if t < next.At {
			return ramp(s.points[i-1], next, t)
		}
	}
	return last.Gain
}

func ramp(prev, next Breakpoint, t time.Duration) float64 {
	span := next.At - prev.At
	if span <= 0 {
		return next.Gain
	}
	frac := float64(t-prev.At) / float64(span)
	switch next.Curve {
	case Step:
		return prev.Gain
	case Exponential:
		if prev.Gain > 0 && next.Gain > 0 {
			return prev.Gain * math.Pow(next.Gain/prev.Gain, frac)
		}
	}
	return prev.Gain + (next.Gain-prev.Gain)*frac
}

// PhaseAt returns the phase the note is in at t.
func (s Schedule) PhaseAt(t time.Duration) Phase {
	switch {
	case t < 0 || t >= s.duration:
		return Idle
	case t < s.attackEnd:
		return Attacking
	case t < s.decayEnd:
		return Decaying
	case t < s.releaseStart:
		return Sustaining
	default:
		return Releasing
	}
}
