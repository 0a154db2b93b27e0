package synth

import (
	"math"
	"testing"
	"time"
)

const ms = time.Millisecond

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSineScheduleBreakpoints(t *testing.T) {
	s := Sine.Envelope().Schedule(1000 * ms)
	want := []Breakpoint{
		{At: 0, Gain: 0, Curve: Step},
		{At: 10 * ms, Gain: 1, Curve: Linear},
		{At: 110 * ms, Gain: 0.7, Curve: Linear},
		{At: 700 * ms, Gain: 0.7, Curve: Step},
		{At: 1000 * ms, Gain: 0, Curve: Linear},
	}
	got := s.Breakpoints()
	if len(got) != len(want) {
		t.Fatalf("expected %d breakpoints, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].At != want[i].At || !near(got[i].Gain, want[i].Gain) || got[i].Curve != want[i].Curve {
			t.Fatalf("breakpoint %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSineGainAt(t *testing.T) {
	s := Sine.Envelope().Schedule(1000 * ms)
	tests := []struct {
		at   time.Duration
		want float64
	}{
		{0, 0},
		{5 * ms, 0.5},
		{10 * ms, 1},
		{60 * ms, 0.85},
		{110 * ms, 0.7},
		{500 * ms, 0.7},
		{850 * ms, 0.35},
		{1000 * ms, 0},
		{2000 * ms, 0},
	}
	for _, tt := range tests {
		if got := s.GainAt(tt.at); !near(got, tt.want) {
			t.Fatalf("GainAt(%s) = %.6f, want %.6f", tt.at, got, tt.want)
		}
	}
}

func TestPianoGainAt(t *testing.T) {
	s := Piano.Envelope().Schedule(2000 * ms)
	if got := s.GainAt(5 * ms); !near(got, 1) {
		t.Fatalf("expected peak after attack, got %f", got)
	}
	if got, want := s.GainAt(105*ms), math.Sqrt(0.3); !near(got, want) {
		t.Fatalf("expected exponential midpoint %f, got %f", want, got)
	}
	if got := s.GainAt(1000 * ms); !near(got, 0.3) {
		t.Fatalf("expected sustain 0.3, got %f", got)
	}
	if got, want := s.GainAt(1600*ms), 0.3*math.Sqrt(0.001/0.3); !near(got, want) {
		t.Fatalf("expected release midpoint %f, got %f", want, got)
	}
	if got := s.GainAt(2000 * ms); !near(got, 0.001) {
		t.Fatalf("expected release floor, got %f", got)
	}
}

func TestPhaseAt(t *testing.T) {
	s := Sine.Envelope().Schedule(1000 * ms)
	tests := []struct {
		at   time.Duration
		want Phase
	}{
		{-1 * ms, Idle},
		{0, Attacking},
		{9 * ms, Attacking},
		{10 * ms, Decaying},
		{110 * ms, Sustaining},
		{699 * ms, Sustaining},
		{700 * ms, Releasing},
		{999 * ms, Releasing},
		{1000 * ms, Idle},
	}
	for _, tt := range tests {
		if got := s.PhaseAt(tt.at); got != tt.want {
			t.Fatalf("PhaseAt(%s) = %s, want %s", tt.at, got, tt.want)
		}
	}
}

func TestShortScheduleClamps(t *testing.T) {
	for _, timbre := range []Timbre{Sine, Piano} {
		for _, d := range []time.Duration{0, 3 * ms, 50 * ms, 400 * ms} {
			s := timbre.Envelope().Schedule(d)
			prev := time.Duration(0)
			for _, bp := range s.Breakpoints() {
				if bp.At < prev || bp.At > d {
					t.Fatalf("%s %s: breakpoint %s out of order", timbre, d, bp.At)
				}
				prev = bp.At
			}
			for at := time.Duration(0); at <= d; at += ms {
				g := s.GainAt(at)
				if g < 0 || g > 1 || math.IsNaN(g) {
					t.Fatalf("%s %s: gain %f at %s", timbre, d, g, at)
				}
			}
		}
	}
}

func TestZeroDurationIsSilent(t *testing.T) {
	s := Sine.Envelope().Schedule(0)
	if s.Duration() != 0 || s.GainAt(0) != 0 || s.PhaseAt(0) != Idle {
		t.Fatalf("zero-length note should be idle and silent")
	}
}

func TestParseTimbre(t *testing.T) {
	for in, want := range map[string]Timbre{"sine": Sine, "Piano": Piano, "piano-like": Piano} {
		got, err := ParseTimbre(in)
		if err != nil || got != want {
			t.Fatalf("ParseTimbre(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseTimbre("organ"); err == nil {
		t.Fatalf("expected error")
	}
	h := Piano.Harmonics()
	if len(h) != 4 || h[3].Weight != 0.125 || h[3].Multiple != 4 {
		t.Fatalf("unexpected piano harmonics %+v", h)
	}
}
