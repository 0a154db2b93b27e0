// Package theory implements pitches, key signatures and enharmonic spelling.
package theory

import (
	"fmt"
	"strconv"
	"strings"
)

// Letter is a diatonic note name.
type Letter uint8

// Letters in scale order starting at C.
const (
	C Letter = iota
	D
	E
	F
	G
	A
	B
)

// LettersPerOctave is the number of diatonic steps in an octave.
const LettersPerOctave = 7

// Octave bounds for synthesizable pitches.
const (
	MinOctave = 0
	MaxOctave = 8
)

var letterNames = [...]string{"C", "D", "E", "F", "G", "A", "B"}

// semitone offset of each natural letter above C.
var letterSemitones = [...]int{0, 2, 4, 5, 7, 9, 11}

// Letters returns the seven letters in scale order.
func Letters() []Letter {
	return []Letter{C, D, E, F, G, A, B}
}

// Valid reports whether l is one of C..B.
func (l Letter) Valid() bool {
	return l <= B
}

func (l Letter) String() string {
	if !l.Valid() {
		return "?"
	}
	return letterNames[l]
}

// ParseLetter parses a single letter name, case-insensitive.
func ParseLetter(s string) (Letter, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range letterNames {
		if s == name {
			return Letter(i), nil
		}
	}
	return 0, fmt.Errorf("unknown note letter %q", s)
}

// Accidental modifies a letter's pitch class. Unset means the accidental has
// not been resolved against a key signature yet; Natural explicitly cancels one.
type Accidental uint8

// Accidentals.
const (
	Unset Accidental = iota
	Natural
	Sharp
	Flat
)

// Symbol returns the ASCII spelling symbol: "#", "b" or "".
func (a Accidental) Symbol() string {
	switch a {
	case Sharp:
		return "#"
	case Flat:
		return "b"
	default:
		return ""
	}
}

// Glyph returns the notation glyph drawn on a staff.
func (a Accidental) Glyph() string {
	switch a {
	case Sharp:
		return "♯"
	case Flat:
		return "♭"
	case Natural:
		return "♮"
	default:
		return ""
	}
}

// Semitones returns the pitch offset the accidental applies.
func (a Accidental) Semitones() int {
	switch a {
	case Sharp:
		return 1
	case Flat:
		return -1
	default:
		return 0
	}
}

// Explicit reports whether the accidental was set rather than left unresolved.
func (a Accidental) Explicit() bool {
	return a != Unset
}

func (a Accidental) String() string {
	switch a {
	case Natural:
		return "natural"
	case Sharp:
		return "sharp"
	case Flat:
		return "flat"
	default:
		return "unset"
	}
}

// Pitch is a letter, an optional accidental and an octave number.
type Pitch struct {
	Letter     Letter
	Accidental Accidental
	Octave     int
}

// Valid reports whether the pitch has a known letter and an octave in 0..8.
func (p Pitch) Valid() bool {
	return p.Letter.Valid() && p.Octave >= MinOctave && p.Octave <= MaxOctave
}

// Spelling returns the letter and accidental symbol without the octave, e.g. "F#".
func (p Pitch) Spelling() string {
	return p.Letter.String() + p.Accidental.Symbol()
}

// String returns the spelling with octave, e.g. "F#5".
func (p Pitch) String() string {
	return p.Spelling() + strconv.Itoa(p.Octave)
}

// WithAccidental returns a copy of p with a different accidental.
func (p Pitch) WithAccidental(a Accidental) Pitch {
	p.Accidental = a
	return p
}

// WithOctave returns a copy of p with a different octave.
func (p Pitch) WithOctave(octave int) Pitch {
	p.Octave = octave
	return p
}

// Semitone returns the chromatic distance from C0.
func (p Pitch) Semitone() int {
	return p.Octave*12 + letterSemitones[p.Letter%LettersPerOctave] + p.Accidental.Semitones()
}

// MIDI returns the MIDI note number (C4 = 60).
func (p Pitch) MIDI() int {
	return p.Semitone() + 12
}

// DiatonicIndex counts letter steps from C0, ignoring accidentals.
func (p Pitch) DiatonicIndex() int {
	return p.Octave*LettersPerOctave + int(p.Letter)
}

// PitchFromDiatonicIndex inverts DiatonicIndex; the accidental is left unset.
func PitchFromDiatonicIndex(idx int) Pitch {
	octave := floorDiv(idx, LettersPerOctave)
	return Pitch{
		Letter: Letter(idx - octave*LettersPerOctave),
		Octave: octave,
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ParseSpelling parses a letter with an optional accidental, e.g. "Db" or "f#".
// A missing accidental yields Unset; "n" selects Natural.
func ParseSpelling(s string) (Letter, Accidental, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, Unset, fmt.Errorf("empty note spelling")
	}
	letter, err := ParseLetter(s[:1])
	if err != nil {
		return 0, Unset, err
	}
	acc, err := parseAccidental(s[1:])
	if err != nil {
		return 0, Unset, fmt.Errorf("invalid spelling %q: %w", s, err)
	}
	return letter, acc, nil
}

// ParsePitch parses a spelling followed by an octave digit, e.g. "C#4".
func ParsePitch(s string) (Pitch, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Pitch{}, fmt.Errorf("invalid pitch %q", s)
	}
	octaveStart := strings.IndexAny(s, "0123456789")
	if octaveStart < 1 {
		return Pitch{}, fmt.Errorf("invalid pitch %q: missing octave", s)
	}
	letter, acc, err := ParseSpelling(s[:octaveStart])
	if err != nil {
		return Pitch{}, err
	}
	octave, err := strconv.Atoi(s[octaveStart:])
	if err != nil {
		return Pitch{}, fmt.Errorf("invalid pitch %q: %w", s, err)
	}
	p := Pitch{Letter: letter, Accidental: acc, Octave: octave}
	if !p.Valid() {
		return Pitch{}, fmt.Errorf("invalid pitch %q: octave must be between %d and %d", s, MinOctave, MaxOctave)
	}
	return p, nil
}

func parseAccidental(s string) (Accidental, error) {
	switch s {
	case "":
		return Unset, nil
	case "#", "♯", "s":
		return Sharp, nil
	case "b", "♭":
		return Flat, nil
	case "n", "♮":
		return Natural, nil
	default:
		return Unset, fmt.Errorf("unknown accidental %q", s)
	}
}
