// Package staff maps pitches to staff positions for each clef.
//
// Positions count diatonic steps from the bottom staff line: 0 is the bottom
// line, 8 the top line, even positions are lines and odd positions spaces.
package staff

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/tuinote/internal/theory"
)

// Staff edges and limits.
const (
	BottomLine     = 0
	TopLine        = 8
	MaxLedgerLines = 5
)

// Clef fixes which pitch sits on which staff position.
type Clef uint8

// Supported clefs.
const (
	Treble Clef = iota
	Bass
	Alto
	Tenor
)

type clefInfo struct {
	name      string
	title     string
	reference theory.Pitch
	position  int
	minOctave int
	maxOctave int
}

var clefs = [...]clefInfo{
	Treble: {name: "treble", title: "Treble Clef", reference: theory.Pitch{Letter: theory.G, Octave: 4}, position: 2, minOctave: 4, maxOctave: 6},
	Bass:   {name: "bass", title: "Bass Clef", reference: theory.Pitch{Letter: theory.F, Octave: 3}, position: 6, minOctave: 2, maxOctave: 4},
	Alto:   {name: "alto", title: "Alto Clef", reference: theory.Pitch{Letter: theory.C, Octave: 4}, position: 4, minOctave: 3, maxOctave: 5},
	Tenor:  {name: "tenor", title: "Tenor Clef", reference: theory.Pitch{Letter: theory.C, Octave: 4}, position: 6, minOctave: 3, maxOctave: 5},
}

// Clefs returns every supported clef.
func Clefs() []Clef {
	return []Clef{Treble, Bass, Alto, Tenor}
}

// ParseClef parses a clef name.
func ParseClef(s string) (Clef, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, info := range clefs {
		if info.name == s {
			return Clef(i), nil
		}
	}
	return 0, fmt.Errorf("unknown clef %q", s)
}

func (c Clef) info() clefInfo {
	if int(c) >= len(clefs) {
		return clefs[Treble]
	}
	return clefs[c]
}

func (c Clef) String() string {
	return c.info().name
}

// Title returns the display name, e.g. "Treble Clef".
func (c Clef) Title() string {
	return c.info().title
}

// Reference returns the clef's anchor pitch and the position it occupies.
func (c Clef) Reference() (theory.Pitch, int) {
	info := c.info()
	return info.reference, info.position
}

// OctaveRange returns the octaves a clef typically covers.
func (c Clef) OctaveRange() (min, max int) {
	info := c.info()
	return info.minOctave, info.maxOctave
}

// Position returns the staff position of p under clef c. Accidentals do not
// move a note on the staff.
func Position(p theory.Pitch, c Clef) int {
	ref, refPos := c.Reference()
	return refPos + p.DiatonicIndex() - ref.DiatonicIndex()
}

// PitchAt returns the natural pitch drawn at pos under clef c, with the
// accidental unset.
func PitchAt(pos int, c Clef) (theory.Pitch, error) {
	ref, refPos := c.Reference()
	p := theory.PitchFromDiatonicIndex(ref.DiatonicIndex() + pos - refPos)
	if !p.Valid() {
		return theory.Pitch{}, fmt.Errorf("position %d on %s clef is outside octaves %d..%d", pos, c, theory.MinOctave, theory.MaxOctave)
	}
	return p, nil
}

// IsLine reports whether pos falls on a line rather than a space.
func IsLine(pos int) bool {
	return pos%2 == 0
}

// NeedsLedgerLines reports whether pos lies outside the five-line staff.
func NeedsLedgerLines(pos int) bool {
	return pos < BottomLine || pos > TopLine
}

// LedgerLinePositions returns the ledger lines needed to reach pos, ordered
// outward from the staff. Only even positions carry a line.
func LedgerLinePositions(pos int) []int {
	var lines []int
	switch {
	case pos < BottomLine:
		for p := BottomLine - 2; p >= pos; p -= 2 {
			lines = append(lines, p)
		}
	case pos > TopLine:
		for p := TopLine + 2; p <= pos; p += 2 {
			lines = append(lines, p)
		}
	}
	return lines
}
