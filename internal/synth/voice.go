package synth

import (
	"math"

	"github.com/gopxl/beep/v2"
)

type partial struct {
	step   float64
	weight float64
	phase  float64
}

// voice is one note: a stack of sine partials under an envelope. It drains
// after exactly its scheduled number of samples.
type voice struct {
	sr       beep.SampleRate
	partials []partial
	schedule Schedule
	pos      int
	total    int
}

func newVoice(sr beep.SampleRate, freq float64, schedule Schedule, harmonics []Harmonic) *voice {
	// Weights are scaled by their sum so the stack peaks at 1. Relative
	// levels are unchanged; a piano note is 1/1.875 as loud as unscaled.
	sum := 0.0
	for _, h := range harmonics {
		sum += h.Weight
	}
	if sum <= 0 {
		sum = 1
	}
	partials := make([]partial, 0, len(harmonics))
	for _, h := range harmonics {
		partials = append(partials, partial{
			step:   freq * h.Multiple / float64(sr),
			weight: h.Weight / sum,
		})
	}
	return &voice{
		sr:       sr,
		partials: partials,
		schedule: schedule,
		total:    sr.N(schedule.Duration()),
	}
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	if v.pos >= v.total {
		return 0, false
	}
	for i := range samples {
		if v.pos >= v.total {
			return i, true
		}
		gain := v.schedule.GainAt(v.sr.D(v.pos))
		x := 0.0
		for k := range v.partials {
			p := &v.partials[k]
			x += p.weight * math.Sin(2*math.Pi*p.phase)
			p.phase += p.step
			if p.phase >= 1 {
				p.phase -= math.Floor(p.phase)
			}
		}
		x *= gain
		samples[i][0] = x
		samples[i][1] = x
		v.pos++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }
