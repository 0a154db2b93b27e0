package quiz

import (
	"testing"

	"github.com/verte-zerg/tuinote/internal/staff"
	"github.com/verte-zerg/tuinote/internal/theory"
)

func mustPitch(t *testing.T, s string) theory.Pitch {
	t.Helper()
	p, err := theory.ParsePitch(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return p
}

func question(t *testing.T, base, key string) Question {
	t.Helper()
	ks, ok := theory.LookupKeySignature(key)
	if !ok {
		t.Fatalf("unknown key %s", key)
	}
	p := mustPitch(t, base)
	return Question{ID: "q", Base: p, Clef: staff.Treble, KeySignature: ks, Display: theory.ApplyKeySignature(p, ks)}
}

func TestValidateOctaveInvariant(t *testing.T) {
	q := question(t, "F5", "G")
	for octave := theory.MinOctave; octave <= theory.MaxOctave; octave++ {
		c := theory.Pitch{Letter: theory.F, Accidental: theory.Sharp, Octave: octave}
		if !Validate(q, c) {
			t.Fatalf("F#%d should match %s in G major", octave, q.Base)
		}
		wrong := theory.Pitch{Letter: theory.F, Accidental: theory.Natural, Octave: octave}
		if Validate(q, wrong) {
			t.Fatalf("F natural %d should not match F in G major", octave)
		}
	}
}

func TestValidateEnharmonic(t *testing.T) {
	q := question(t, "C#4", "C")
	for _, in := range []string{"C#4", "Db2", "Db7"} {
		if !Validate(q, mustPitch(t, in)) {
			t.Fatalf("%s should match C#", in)
		}
	}
	if Validate(q, mustPitch(t, "D4")) {
		t.Fatalf("D should not match C#")
	}
}

func TestValidateCandidateIgnoresKeySignature(t *testing.T) {
	q := question(t, "B4", "F")
	if q.Spelling() != "Bb" {
		t.Fatalf("expected Bb, got %s", q.Spelling())
	}
	if Validate(q, mustPitch(t, "B4")) {
		t.Fatalf("bare B must not be resolved through the question's key")
	}
	if !Validate(q, mustPitch(t, "A#4")) {
		t.Fatalf("A# should match Bb")
	}
}

func TestValidateNaturalCancelsKey(t *testing.T) {
	q := question(t, "Fn5", "D")
	if q.Spelling() != "F" {
		t.Fatalf("expected natural F, got %s", q.Spelling())
	}
	if !q.ShowsAccidental() {
		t.Fatalf("natural should be drawn explicitly")
	}
	if !Validate(q, mustPitch(t, "F3")) || !Validate(q, mustPitch(t, "E#3")) {
		t.Fatalf("F and E# should match natural F")
	}
}

func TestQuestionSounding(t *testing.T) {
	q := question(t, "E4", "Eb")
	if got := q.Sounding().String(); got != "Eb4" {
		t.Fatalf("expected Eb4, got %s", got)
	}
	if q.Position() != 0 {
		t.Fatalf("E4 sits on the bottom treble line, got %d", q.Position())
	}
}
