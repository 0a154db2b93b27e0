// Package generator builds quiz questions.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/tuinote/internal/quiz"
	"github.com/verte-zerg/tuinote/internal/staff"
	"github.com/verte-zerg/tuinote/internal/theory"
)

// Random selects a clef or key signature uniformly for every question.
const Random = "random"

// Settings controls question sampling.
type Settings struct {
	Clef                  string
	KeySignature          string
	Range                 staff.Range
	Accidentals           bool
	AccidentalProbability float64
}

// GenerationError reports settings no question can be drawn from.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generate question: %s: %v", e.Reason, e.Err)
	}
	return "generate question: " + e.Reason
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Generator produces randomized questions.
type Generator struct {
	rnd   *rand.Rand
	newID func() string
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src), newID: uuid.NewString}
}

// Question draws one question uniformly over the legal staff positions.
func (g *Generator) Question(s Settings) (quiz.Question, error) {
	return g.question(s, nil)
}

// WeightedQuestion draws a question biased toward positions whose spelled
// note is in weak. Weak notes are keyed by pitch class, e.g. "F#".
func (g *Generator) WeightedQuestion(s Settings, weak map[string]struct{}, factor float64) (quiz.Question, error) {
	if len(weak) == 0 || factor <= 0 {
		return g.question(s, nil)
	}
	return g.question(s, func(p theory.Pitch, ks theory.KeySignature) float64 {
		class, ok := theory.PitchClass(theory.EffectiveSpelling(p, &ks))
		if !ok {
			return 1
		}
		if _, isWeak := weak[class]; isWeak {
			return 1 + factor
		}
		return 1
	})
}

type weightFunc func(p theory.Pitch, ks theory.KeySignature) float64

func (g *Generator) question(s Settings, weight weightFunc) (quiz.Question, error) {
	clef, err := g.pickClef(s.Clef)
	if err != nil {
		return quiz.Question{}, err
	}
	ks := g.pickKey(s.KeySignature)
	if err := s.Range.Validate(); err != nil {
		return quiz.Question{}, &GenerationError{Reason: "invalid staff range", Err: err}
	}
	positions := s.Range.Positions()
	if len(positions) == 0 {
		return quiz.Question{}, &GenerationError{Reason: "empty staff range"}
	}

	var pos int
	if weight == nil {
		pos = positions[g.rnd.Intn(len(positions))]
	} else {
		pos, err = g.pickWeighted(positions, clef, ks, weight)
		if err != nil {
			return quiz.Question{}, err
		}
	}

	base, err := staff.PitchAt(pos, clef)
	if err != nil {
		return quiz.Question{}, &GenerationError{Reason: "position outside pitch range", Err: err}
	}
	if s.Accidentals {
		base = injectAccidental(g.rnd, base, ks, s.AccidentalProbability)
	}
	return quiz.Question{
		ID:           g.newID(),
		Base:         base,
		Clef:         clef,
		KeySignature: ks,
		Display:      theory.ApplyKeySignature(base, ks),
	}, nil
}

func (g *Generator) pickClef(name string) (staff.Clef, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return staff.Treble, nil
	case Random:
		clefs := staff.Clefs()
		return clefs[g.rnd.Intn(len(clefs))], nil
	}
	clef, err := staff.ParseClef(name)
	if err != nil {
		return 0, &GenerationError{Reason: "clef", Err: err}
	}
	return clef, nil
}

// pickKey falls back to C major for unknown ids.
func (g *Generator) pickKey(id string) theory.KeySignature {
	if strings.EqualFold(strings.TrimSpace(id), Random) {
		keys := theory.KeySignatures()
		return keys[g.rnd.Intn(len(keys))]
	}
	return theory.KeySignatureOrDefault(id)
}

func (g *Generator) pickWeighted(positions []int, clef staff.Clef, ks theory.KeySignature, weight weightFunc) (int, error) {
	weights := make([]float64, len(positions))
	total := 0.0
	for i, pos := range positions {
		p, err := staff.PitchAt(pos, clef)
		if err != nil {
			return 0, &GenerationError{Reason: "position outside pitch range", Err: err}
		}
		w := weight(p, ks)
		weights[i] = w
		total += w
	}

	r := g.rnd.Float64() * total
	acc := 0.0
	idx := len(positions) - 1
	for j, w := range weights {
		acc += w
		if r <= acc {
			idx = j
			break
		}
	}
	return positions[idx], nil
}
