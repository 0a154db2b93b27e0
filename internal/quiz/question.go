// Package quiz holds generated questions and checks answers against them.
package quiz

import (
	"github.com/verte-zerg/tuinote/internal/staff"
	"github.com/verte-zerg/tuinote/internal/theory"
)

// Question is one generated prompt. Base carries the ground truth; Display
// is Base resolved through the key signature and is what gets drawn.
type Question struct {
	ID           string
	Base         theory.Pitch
	Clef         staff.Clef
	KeySignature theory.KeySignature
	Display      theory.Pitch
}

// Position returns where the note sits on the staff.
func (q Question) Position() int {
	return staff.Position(q.Base, q.Clef)
}

// ShowsAccidental reports whether the note is drawn with its own accidental
// sign rather than relying on the key signature.
func (q Question) ShowsAccidental() bool {
	return q.Base.Accidental.Explicit()
}

// Spelling returns the spelling the question expects, e.g. "F#".
func (q Question) Spelling() string {
	return theory.EffectiveSpelling(q.Base, &q.KeySignature)
}

// Sounding returns the pitch to synthesize for the question.
func (q Question) Sounding() theory.Pitch {
	return theory.ApplyKeySignature(q.Base, q.KeySignature)
}

// Validate reports whether candidate names the same pitch class as q. The
// candidate is taken as typed, without key signature resolution, and octaves
// are never compared.
func Validate(q Question, candidate theory.Pitch) bool {
	return theory.Enharmonic(q.Spelling(), theory.EffectiveSpelling(candidate, nil))
}
