package theory

import "github.com/jsphweid/midicoach/model"

var (
	majorIntervals = [7]int{0, 2, 4, 5, 7, 9, 11}
	minorIntervals = [7]int{0, 2, 3, 5, 7, 8, 10}

	majorQualities = [7]model.ChordQuality{
		model.Major, model.Minor, model.Minor, model.Major, model.Major, model.Minor, model.Diminished,
	}
	minorQualities = [7]model.ChordQuality{
		model.Minor, model.Diminished, model.Major, model.Minor, model.Minor, model.Major, model.Major,
	}
)

type Function string

const (
	Tonic       Function = "Tonic"
	Subdominant Function = "Subdominant"
	Dominant    Function = "Dominant"
	Subtonic    Function = "Subtonic"
)

var (
	majorFunctions = [7]Function{Tonic, Subdominant, Tonic, Subdominant, Dominant, Tonic, Dominant}
	minorFunctions = [7]Function{Tonic, Subdominant, Tonic, Subdominant, Dominant, Subdominant, Subtonic}
)

type Strength string

const (
	Strong   Strength = "Strong"
	Moderate Strength = "Moderate"
	Weak     Strength = "Weak"
)

type movement struct{ from, to int }

var (
	strongMovements   = map[movement]bool{{4, 0}: true, {3, 0}: true, {1, 4}: true, {5, 3}: true}
	moderateMovements = map[movement]bool{{0, 3}: true, {0, 5}: true, {3, 4}: true, {5, 4}: true}
)

func intervals(mode model.Mode) [7]int {
	if mode == model.ModeMinor {
		return minorIntervals
	}
	return majorIntervals
}

func pc(n int) int {
	return ((n % 12) + 12) % 12
}

// ScaleNotes returns the seven pitch classes of the scale on root.
func ScaleNotes(root int, mode model.Mode) [7]int {
	var out [7]int
	for i, iv := range intervals(mode) {
		out[i] = pc(root + iv)
	}
	return out
}

// ChordQualityAtDegree returns the diatonic triad quality on degree 0..6.
// Degrees outside the scale are Other.
func ChordQualityAtDegree(degree int, mode model.Mode) model.ChordQuality {
	if degree < 0 || degree > 6 {
		return model.Other
	}
	if mode == model.ModeMinor {
		return minorQualities[degree]
	}
	return majorQualities[degree]
}

func HarmonicFunction(degree int, mode model.Mode) Function {
	if degree < 0 || degree > 6 {
		return ""
	}
	if mode == model.ModeMinor {
		return minorFunctions[degree]
	}
	return majorFunctions[degree]
}

// ProgressionStrength rates the move between two scale degrees. Pairs not
// listed as strong or moderate are weak.
func ProgressionStrength(from, to int) Strength {
	m := movement{from, to}
	switch {
	case strongMovements[m]:
		return Strong
	case moderateMovements[m]:
		return Moderate
	}
	return Weak
}

// DegreeOfPitchClass finds pitchClass in the scale on root.
func DegreeOfPitchClass(pitchClass, root int, mode model.Mode) (int, bool) {
	for i, n := range ScaleNotes(root, mode) {
		if n == pc(pitchClass) {
			return i, true
		}
	}
	return 0, false
}

// ChordName names the diatonic triad on degree, e.g. "E minor".
func ChordName(root, degree int, mode model.Mode) string {
	if degree < 0 || degree > 6 {
		return ""
	}
	return model.PitchClassName(ScaleNotes(root, mode)[degree]) + " " + string(ChordQualityAtDegree(degree, mode))
}

// TriadIntervals lists the semitones above the root for a chord quality.
func TriadIntervals(q model.ChordQuality) [3]int {
	switch q {
	case model.Minor:
		return [3]int{0, 3, 7}
	case model.Diminished:
		return [3]int{0, 3, 6}
	case model.Augmented:
		return [3]int{0, 4, 8}
	}
	return [3]int{0, 4, 7}
}

// ScaleStep moves pitch by steps scale degrees within the key. Pitches
// outside the scale are first lowered to the nearest scale tone. The result
// is dropped by octaves until it fits the MIDI range.
func ScaleStep(pitch uint8, steps int, key model.KeySignature) uint8 {
	ivs := intervals(key.Mode)
	rel := pc(int(pitch) - key.Root)

	degree := 0
	for i, iv := range ivs {
		if iv <= rel {
			degree = i
		}
	}
	base := int(pitch) - (rel - ivs[degree])

	target := degree + steps
	octaves := target / 7
	idx := target % 7
	if idx < 0 {
		idx += 7
		octaves--
	}
	out := base + ivs[idx] - ivs[degree] + 12*octaves
	for out > 127 {
		out -= 12
	}
	for out < 0 {
		out += 12
	}
	return uint8(out)
}
