package theory

import (
	"fmt"
	"strings"
)

// NameStyle selects how letters are displayed.
type NameStyle uint8

// Name styles.
const (
	NamesLetter NameStyle = iota
	NamesLatin
	NamesKorean
)

var (
	latinNames  = [...]string{"Do", "Re", "Mi", "Fa", "Sol", "La", "Si"}
	koreanNames = [...]string{"도", "레", "미", "파", "솔", "라", "시"}
)

// solfegeAliases maps lower-cased fixed-do syllables to letters.
var solfegeAliases = map[string]Letter{
	"do": C, "ut": C,
	"re": D,
	"mi": E,
	"fa": F,
	"sol": G, "so": G,
	"la": A,
	"si": B, "ti": B,
	"도": C, "레": D, "미": E, "파": F, "솔": G, "라": A, "시": B,
}

// ParseNameStyle parses "letter", "latin" or "korean".
func ParseNameStyle(s string) (NameStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "letter", "letters", "en":
		return NamesLetter, nil
	case "latin", "solfege":
		return NamesLatin, nil
	case "korean", "ko":
		return NamesKorean, nil
	default:
		return NamesLetter, fmt.Errorf("unknown note name style %q", s)
	}
}

func (s NameStyle) String() string {
	switch s {
	case NamesLatin:
		return "latin"
	case NamesKorean:
		return "korean"
	default:
		return "letter"
	}
}

// Name returns the letter's display name in the given style.
func (l Letter) Name(style NameStyle) string {
	if !l.Valid() {
		return "?"
	}
	switch style {
	case NamesLatin:
		return latinNames[l]
	case NamesKorean:
		return koreanNames[l]
	default:
		return letterNames[l]
	}
}

// DisplayName renders a spelling such as "F#" in the given style with glyphs, e.g. "Fa♯".
func DisplayName(letter Letter, acc Accidental, style NameStyle) string {
	return letter.Name(style) + acc.Glyph()
}

// ParseAnswer parses user input naming a note. It accepts letter spellings
// ("F#", "db", "C4") and fixed-do syllables ("sol#", "Ti", "솔b"). A missing
// octave yields octave 4; octave never matters for answers.
func ParseAnswer(input string) (Pitch, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Pitch{}, fmt.Errorf("empty answer")
	}
	if p, err := ParsePitch(s); err == nil {
		return p, nil
	}
	if letter, acc, err := ParseSpelling(s); err == nil {
		return Pitch{Letter: letter, Accidental: acc, Octave: 4}, nil
	}
	lower := strings.ToLower(s)
	for _, suffix := range []string{"", "#", "♯", "b", "♭", "n", "♮"} {
		if !strings.HasSuffix(lower, suffix) {
			continue
		}
		syllable := strings.TrimSuffix(lower, suffix)
		letter, ok := solfegeAliases[syllable]
		if !ok {
			continue
		}
		acc, err := parseAccidental(suffix)
		if err != nil {
			continue
		}
		return Pitch{Letter: letter, Accidental: acc, Octave: 4}, nil
	}
	return Pitch{}, fmt.Errorf("unrecognized note %q", input)
}
