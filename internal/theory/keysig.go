package theory

import "strings"

// KeySignature is a set of letters implicitly sharpened or flattened.
// A signature is either sharp-based or flat-based; C major has neither.
type KeySignature struct {
	ID     string
	Name   string
	Sharps []Letter
	Flats  []Letter
}

// DefaultKeySignatureID identifies the key without accidentals.
const DefaultKeySignatureID = "C"

var (
	sharpOrder = []Letter{F, C, G, D, A, E, B}
	flatOrder  = []Letter{B, E, A, D, G, C, F}
)

// keySignatures is ordered around the circle of fifths, sharps first.
var keySignatures = []KeySignature{
	sharpKey("C", 0),
	sharpKey("G", 1),
	sharpKey("D", 2),
	sharpKey("A", 3),
	sharpKey("E", 4),
	sharpKey("B", 5),
	sharpKey("F#", 6),
	sharpKey("C#", 7),
	flatKey("F", 1),
	flatKey("Bb", 2),
	flatKey("Eb", 3),
	flatKey("Ab", 4),
	flatKey("Db", 5),
	flatKey("Gb", 6),
	flatKey("Cb", 7),
}

func sharpKey(id string, n int) KeySignature {
	return KeySignature{ID: id, Name: id + " Major", Sharps: sharpOrder[:n:n], Flats: nil}
}

func flatKey(id string, n int) KeySignature {
	return KeySignature{ID: id, Name: id + " Major", Flats: flatOrder[:n:n]}
}

// KeySignatures returns every supported key signature in circle-of-fifths order.
func KeySignatures() []KeySignature {
	out := make([]KeySignature, len(keySignatures))
	for i, k := range keySignatures {
		out[i] = k.clone()
	}
	return out
}

// LookupKeySignature finds a key signature by id, case-insensitive on the letter.
func LookupKeySignature(id string) (KeySignature, bool) {
	id = strings.TrimSpace(id)
	for _, k := range keySignatures {
		if strings.EqualFold(k.ID, id) && (len(id) < 2 || k.ID[1:] == id[1:]) {
			return k.clone(), true
		}
	}
	return KeySignature{}, false
}

// KeySignatureOrDefault returns the key with the given id, or C major when unknown.
func KeySignatureOrDefault(id string) KeySignature {
	if k, ok := LookupKeySignature(id); ok {
		return k
	}
	k, _ := LookupKeySignature(DefaultKeySignatureID)
	return k
}

func (k KeySignature) clone() KeySignature {
	out := k
	out.Sharps = append([]Letter(nil), k.Sharps...)
	out.Flats = append([]Letter(nil), k.Flats...)
	return out
}

// Implied returns the accidental the signature applies to letter, or Unset.
func (k KeySignature) Implied(letter Letter) Accidental {
	for _, l := range k.Sharps {
		if l == letter {
			return Sharp
		}
	}
	for _, l := range k.Flats {
		if l == letter {
			return Flat
		}
	}
	return Unset
}

// Affects reports whether the signature alters letter.
func (k KeySignature) Affects(letter Letter) bool {
	return k.Implied(letter) != Unset
}

// Type returns "sharp", "flat" or "natural".
func (k KeySignature) Type() string {
	switch {
	case len(k.Sharps) > 0:
		return "sharp"
	case len(k.Flats) > 0:
		return "flat"
	default:
		return "natural"
	}
}

// Accidentals returns the signature's spelled accidentals in notation order, e.g. ["F#", "C#"].
func (k KeySignature) Accidentals() []string {
	out := make([]string, 0, len(k.Sharps)+len(k.Flats))
	for _, l := range k.Sharps {
		out = append(out, l.String()+Sharp.Symbol())
	}
	for _, l := range k.Flats {
		out = append(out, l.String()+Flat.Symbol())
	}
	return out
}

// ApplyKeySignature resolves an unset accidental through the key signature.
// Explicit accidentals, including Natural, are returned unchanged.
func ApplyKeySignature(p Pitch, k KeySignature) Pitch {
	if p.Accidental.Explicit() {
		return p
	}
	p.Accidental = k.Implied(p.Letter)
	return p
}

// EffectiveSpelling returns the spelling p sounds as. An unset accidental is
// resolved through k when k is non-nil; otherwise it reads as natural.
func EffectiveSpelling(p Pitch, k *KeySignature) string {
	switch p.Accidental {
	case Sharp, Flat:
		return p.Spelling()
	case Natural:
		return p.Letter.String()
	}
	if k != nil {
		return p.Letter.String() + k.Implied(p.Letter).Symbol()
	}
	return p.Letter.String()
}
