package theory

import "testing"

func TestKeySignaturesDisjoint(t *testing.T) {
	keys := KeySignatures()
	if len(keys) != 15 {
		t.Fatalf("expected 15 key signatures, got %d", len(keys))
	}
	for _, k := range keys {
		seen := map[Letter]bool{}
		for _, l := range k.Sharps {
			seen[l] = true
		}
		for _, l := range k.Flats {
			if seen[l] {
				t.Fatalf("%s lists %s as both sharp and flat", k.ID, l)
			}
			seen[l] = true
		}
		if len(seen) > 7 {
			t.Fatalf("%s has %d letters", k.ID, len(seen))
		}
		if len(k.Sharps) > 0 && len(k.Flats) > 0 {
			t.Fatalf("%s mixes sharps and flats", k.ID)
		}
	}
}

func TestLookupKeySignature(t *testing.T) {
	k, ok := LookupKeySignature("bb")
	if !ok || k.ID != "Bb" {
		t.Fatalf("expected Bb, got %+v ok=%v", k, ok)
	}
	if _, ok := LookupKeySignature("H"); ok {
		t.Fatalf("expected unknown key")
	}
	if KeySignatureOrDefault("nope").ID != "C" {
		t.Fatalf("expected default to C")
	}
	d, _ := LookupKeySignature("D")
	if got := d.Accidentals(); len(got) != 2 || got[0] != "F#" || got[1] != "C#" {
		t.Fatalf("unexpected D major accidentals %v", got)
	}
}

func TestLookupKeySignatureReturnsCopy(t *testing.T) {
	g, _ := LookupKeySignature("G")
	g.Sharps[0] = B
	again, _ := LookupKeySignature("G")
	if again.Sharps[0] != F {
		t.Fatalf("key table mutated through lookup result")
	}
}

func TestApplyKeySignatureGMajor(t *testing.T) {
	g, _ := LookupKeySignature("G")
	got := ApplyKeySignature(Pitch{Letter: F, Octave: 5}, g)
	if got.String() != "F#5" || got.Accidental != Sharp {
		t.Fatalf("expected F#5, got %s", got)
	}
	untouched := ApplyKeySignature(Pitch{Letter: C, Octave: 5}, g)
	if untouched.Accidental != Unset {
		t.Fatalf("expected C to stay unset, got %s", untouched.Accidental)
	}
}

func TestApplyKeySignatureKeepsExplicit(t *testing.T) {
	for _, k := range KeySignatures() {
		for _, l := range Letters() {
			for _, acc := range []Accidental{Sharp, Flat, Natural} {
				p := Pitch{Letter: l, Accidental: acc, Octave: 4}
				if got := ApplyKeySignature(p, k); got != p {
					t.Fatalf("%s altered explicit %s to %s", k.ID, p, got)
				}
			}
		}
	}
}

func TestEffectiveSpelling(t *testing.T) {
	eb, _ := LookupKeySignature("Eb")
	tests := []struct {
		p    Pitch
		k    *KeySignature
		want string
	}{
		{Pitch{Letter: A, Octave: 4}, &eb, "Ab"},
		{Pitch{Letter: A, Octave: 4}, nil, "A"},
		{Pitch{Letter: A, Accidental: Natural, Octave: 4}, &eb, "A"},
		{Pitch{Letter: C, Accidental: Sharp, Octave: 4}, &eb, "C#"},
		{Pitch{Letter: C, Octave: 4}, &eb, "C"},
	}
	for _, tt := range tests {
		if got := EffectiveSpelling(tt.p, tt.k); got != tt.want {
			t.Fatalf("EffectiveSpelling(%s) = %q, want %q", tt.p, got, tt.want)
		}
	}
}
