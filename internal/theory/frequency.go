package theory

import (
	"fmt"
	"math"
	"strconv"
)

// Reference tuning: equal temperament anchored at A4.
const (
	ReferenceFrequency = 440.0
	DefaultFrequency   = ReferenceFrequency
)

var referencePitch = Pitch{Letter: A, Octave: 4}

// FrequencyLookupError reports a pitch spelling with no entry in the frequency table.
type FrequencyLookupError struct {
	Key string
}

func (e *FrequencyLookupError) Error() string {
	return fmt.Sprintf("no frequency for pitch %q", e.Key)
}

// frequencies is keyed by "<letter><#|b|><octave>" for octaves 0..8.
var frequencies = buildFrequencyTable()

func buildFrequencyTable() map[string]float64 {
	table := make(map[string]float64, LettersPerOctave*3*(MaxOctave-MinOctave+1))
	for octave := MinOctave; octave <= MaxOctave; octave++ {
		for _, letter := range Letters() {
			for _, acc := range []Accidental{Natural, Sharp, Flat} {
				p := Pitch{Letter: letter, Accidental: acc, Octave: octave}
				table[frequencyKey(p)] = equalTempered(p)
			}
		}
	}
	return table
}

func equalTempered(p Pitch) float64 {
	distance := p.Semitone() - referencePitch.Semitone()
	if distance == 0 {
		return ReferenceFrequency
	}
	return ReferenceFrequency * math.Pow(2, float64(distance)/12)
}

func frequencyKey(p Pitch) string {
	return p.Letter.String() + p.Accidental.Symbol() + strconv.Itoa(p.Octave)
}

// Frequency returns the equal-tempered frequency of p in Hz.
func Frequency(p Pitch) (float64, error) {
	key := frequencyKey(p)
	freq, ok := frequencies[key]
	if !ok {
		return 0, &FrequencyLookupError{Key: key}
	}
	return freq, nil
}

// FrequencyOrDefault returns the frequency of p, or DefaultFrequency together
// with the lookup error when p is not in the table.
func FrequencyOrDefault(p Pitch) (float64, error) {
	freq, err := Frequency(p)
	if err != nil {
		return DefaultFrequency, err
	}
	return freq, nil
}
