package generator

import (
	"math/rand"

	"github.com/verte-zerg/tuinote/internal/theory"
)

// forbiddenAccidentals lists spellings the quiz never asks for: there is no
// black key between E-F and B-C.
var forbiddenAccidentals = map[theory.Letter]map[theory.Accidental]bool{
	theory.E: {theory.Sharp: true},
	theory.B: {theory.Sharp: true},
	theory.F: {theory.Flat: true},
	theory.C: {theory.Flat: true},
}

// candidatesByImplied maps the accidental a key implies on a letter to the
// accidentals that may be injected there. A letter the key already alters can
// only be cancelled.
var candidatesByImplied = map[theory.Accidental][]theory.Accidental{
	theory.Unset: {theory.Sharp, theory.Flat},
	theory.Sharp: {theory.Natural},
	theory.Flat:  {theory.Natural},
}

// accidentalCandidates returns the accidentals that may be injected on a
// letter in ks.
func accidentalCandidates(letter theory.Letter, ks theory.KeySignature) []theory.Accidental {
	allowed := candidatesByImplied[ks.Implied(letter)]
	out := make([]theory.Accidental, 0, len(allowed))
	for _, acc := range allowed {
		if forbiddenAccidentals[letter][acc] {
			continue
		}
		out = append(out, acc)
	}
	return out
}

// injectAccidental overrides the accidental of p with probability prob.
func injectAccidental(rnd *rand.Rand, p theory.Pitch, ks theory.KeySignature, prob float64) theory.Pitch {
	if prob <= 0 {
		return p
	}
	if rnd.Float64() > prob {
		return p
	}
	candidates := accidentalCandidates(p.Letter, ks)
	if len(candidates) == 0 {
		return p
	}
	return p.WithAccidental(candidates[rnd.Intn(len(candidates))])
}
