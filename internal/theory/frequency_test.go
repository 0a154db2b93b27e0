package theory

import (
	"errors"
	"math"
	"testing"
)

func TestFrequencyA4(t *testing.T) {
	freq, err := Frequency(Pitch{Letter: A, Accidental: Natural, Octave: 4})
	if err != nil {
		t.Fatalf("frequency failed: %v", err)
	}
	if freq != 440.0 {
		t.Fatalf("expected exactly 440, got %v", freq)
	}
}

func TestFrequencyTable(t *testing.T) {
	tests := []struct {
		pitch Pitch
		want  float64
	}{
		{Pitch{Letter: C, Octave: 4}, 261.63},
		{Pitch{Letter: C, Accidental: Sharp, Octave: 4}, 277.18},
		{Pitch{Letter: D, Accidental: Flat, Octave: 4}, 277.18},
		{Pitch{Letter: C, Octave: 0}, 16.35},
		{Pitch{Letter: B, Octave: 8}, 7902.13},
		{Pitch{Letter: A, Octave: 5}, 880.0},
	}
	for _, tt := range tests {
		got, err := Frequency(tt.pitch)
		if err != nil {
			t.Fatalf("Frequency(%s) failed: %v", tt.pitch, err)
		}
		if math.Abs(got-tt.want) > 0.01 {
			t.Fatalf("Frequency(%s) = %.4f, want %.2f", tt.pitch, got, tt.want)
		}
	}
}

func TestFrequencyUnknownFallsBack(t *testing.T) {
	p := Pitch{Letter: C, Octave: 9}
	if _, err := Frequency(p); err == nil {
		t.Fatalf("expected lookup error for octave 9")
	}
	freq, err := FrequencyOrDefault(p)
	var lookupErr *FrequencyLookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected FrequencyLookupError, got %v", err)
	}
	if lookupErr.Key != "C9" {
		t.Fatalf("unexpected key %q", lookupErr.Key)
	}
	if freq != DefaultFrequency {
		t.Fatalf("expected fallback %v, got %v", DefaultFrequency, freq)
	}
}

func TestFrequencyIgnoresUnsetVsNatural(t *testing.T) {
	a, _ := Frequency(Pitch{Letter: G, Octave: 3})
	b, _ := Frequency(Pitch{Letter: G, Accidental: Natural, Octave: 3})
	if a != b {
		t.Fatalf("unset and natural should sound the same: %v vs %v", a, b)
	}
}
