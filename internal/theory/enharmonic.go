package theory

// enharmonicGroups lists, for each chromatic pitch class, every spelling
// accepted as the same answer.
var enharmonicGroups = []struct {
	key       string
	spellings []string
}{
	{"C", []string{"C", "B#", "Dbb"}},
	{"C#", []string{"C#", "Db", "B##"}},
	{"D", []string{"D", "C##", "Ebb"}},
	{"D#", []string{"D#", "Eb", "Fbb"}},
	{"E", []string{"E", "D##", "Fb"}},
	{"F", []string{"F", "E#", "Gbb"}},
	{"F#", []string{"F#", "Gb", "E##"}},
	{"G", []string{"G", "F##", "Abb"}},
	{"G#", []string{"G#", "Ab"}},
	{"A", []string{"A", "G##", "Bbb"}},
	{"A#", []string{"A#", "Bb", "Cbb"}},
	{"B", []string{"B", "A##", "Cb"}},
}

var enharmonicIndex = buildEnharmonicIndex()

func buildEnharmonicIndex() map[string]int {
	index := map[string]int{}
	for i, group := range enharmonicGroups {
		for _, s := range group.spellings {
			index[s] = i
		}
	}
	return index
}

// EnharmonicEquivalents returns every spelling of the same pitch class as
// spelling, or nil when the spelling is unknown.
func EnharmonicEquivalents(spelling string) []string {
	i, ok := enharmonicIndex[spelling]
	if !ok {
		return nil
	}
	out := make([]string, len(enharmonicGroups[i].spellings))
	copy(out, enharmonicGroups[i].spellings)
	return out
}

// Enharmonic reports whether two spellings denote the same pitch class.
func Enharmonic(a, b string) bool {
	ia, ok := enharmonicIndex[a]
	if !ok {
		return false
	}
	ib, ok := enharmonicIndex[b]
	return ok && ia == ib
}

// PitchClass returns the canonical sharp-based name of a spelling's pitch class.
func PitchClass(spelling string) (string, bool) {
	i, ok := enharmonicIndex[spelling]
	if !ok {
		return "", false
	}
	return enharmonicGroups[i].key, true
}
