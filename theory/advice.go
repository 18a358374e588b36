package theory

import (
	"fmt"
	"strings"

	"github.com/jsphweid/midicoach/model"
)

var commonMovements = [7][]int{
	{3, 4, 5},
	{4, 0},
	{5, 3},
	{0, 1, 4},
	{0, 5},
	{3, 4, 0},
	{0, 4},
}

type ChordSuggestion struct {
	Chord    string   `json:"chord"`
	Function Function `json:"function"`
	Strength Strength `json:"strength"`
}

// SuggestNextChords lists the usual continuations from degree, at most five.
func SuggestNextChords(root int, mode model.Mode, degree int) []ChordSuggestion {
	if degree < 0 || degree > 6 {
		return nil
	}
	var out []ChordSuggestion
	for _, next := range commonMovements[degree] {
		out = append(out, ChordSuggestion{
			Chord:    ChordName(root, next, mode),
			Function: HarmonicFunction(next, mode),
			Strength: ProgressionStrength(degree, next),
		})
	}
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

type MelodyIdea struct {
	Type        string
	Description string
}

func names(pcs ...int) string {
	parts := make([]string, len(pcs))
	for i, p := range pcs {
		parts[i] = model.PitchClassName(p)
	}
	return strings.Join(parts, " - ")
}

// MelodyIdeas are scale-based starting points for a melody in the key.
func MelodyIdeas(root int, mode model.Mode) []MelodyIdea {
	s := ScaleNotes(root, mode)
	key := model.PitchClassName(root)
	ideas := []MelodyIdea{
		{"Scale run", fmt.Sprintf("Use ascending or descending %s %s scale: %s", key, mode, names(s[:]...))},
		{"Arpeggio", "Use chord tones: " + names(s[0], s[2], s[4])},
		{"Pentatonic", "Use pentatonic notes: " + names(s[0], s[1], s[2], s[4], s[5])},
	}
	if mode == model.ModeMajor {
		ideas = append(ideas, MelodyIdea{
			"Leading tone",
			fmt.Sprintf("Use the leading tone %s to resolve to %s", model.PitchClassName(s[6]), key),
		})
	}
	return ideas
}

func SecondaryDominants(root int, mode model.Mode) string {
	s := ScaleNotes(root, mode)
	return strings.Join([]string{
		fmt.Sprintf("V/vi: Dominant of %s (adds tension)", model.PitchClassName(s[5])),
		fmt.Sprintf("V/V: Dominant of %s (classic preparation)", model.PitchClassName(s[4])),
		fmt.Sprintf("V/ii: Dominant of %s (smooth voice leading)", model.PitchClassName(s[1])),
	}, "; ")
}

// ModalInterchange lists chords borrowed from the parallel minor.
func ModalInterchange(root int) string {
	s := ScaleNotes(root, model.ModeMinor)
	key := model.PitchClassName(root)
	return strings.Join([]string{
		fmt.Sprintf("iv chord: %s minor (borrowed from %s minor)", model.PitchClassName(s[3]), key),
		fmt.Sprintf("♭VII chord: %s major (borrowed from %s minor)", model.PitchClassName(s[6]), key),
		fmt.Sprintf("♭VI chord: %s major (borrowed from %s minor)", model.PitchClassName(s[5]), key),
	}, "; ")
}

// UnusedDiatonicChords names diatonic triads whose root does not appear in
// chords, in degree order.
func UnusedDiatonicChords(key model.KeySignature, chords []model.ChordSymbol) []string {
	used := make(map[int]bool, len(chords))
	for _, c := range chords {
		used[c.Root] = true
	}
	var out []string
	for d, n := range ScaleNotes(key.Root, key.Mode) {
		if !used[n] {
			out = append(out, ChordName(key.Root, d, key.Mode))
		}
	}
	return out
}

type ProgressionReport struct {
	Quality            string   `json:"quality"`
	FunctionalStrength string   `json:"functional_strength"`
	Suggestions        []string `json:"suggestions"`
}

// ProgressionQuality rates the share of strong or moderate movements between
// consecutive chords. Movements involving non-diatonic roots count as weak.
func ProgressionQuality(chords []model.ChordSymbol, key model.KeySignature) ProgressionReport {
	if len(chords) == 0 {
		return ProgressionReport{Quality: "Unknown"}
	}

	var good, total int
	hasTonic, hasResolution := false, false
	for i, c := range chords {
		d, ok := DegreeOfPitchClass(c.Root, key.Root, key.Mode)
		if ok && d == 0 {
			hasTonic = true
		}
		if i == 0 {
			continue
		}
		total++
		prev, prevOK := DegreeOfPitchClass(chords[i-1].Root, key.Root, key.Mode)
		if !ok || !prevOK {
			continue
		}
		if ProgressionStrength(prev, d) != Weak {
			good++
		}
		if prev == 4 && d == 0 {
			hasResolution = true
		}
	}

	r := ProgressionReport{FunctionalStrength: fmt.Sprintf("%d/%d", good, total)}
	switch {
	case total == 0:
		r.Quality = "Single chord"
	case float64(good)/float64(total) > 0.7:
		r.Quality = "Strong"
	case float64(good)/float64(total) > 0.4:
		r.Quality = "Moderate"
	default:
		r.Quality = "Needs improvement"
	}

	if len(chords) < 4 {
		r.Suggestions = append(r.Suggestions, "Consider extending the progression to 4 or more chords for better flow")
	}
	if !hasTonic {
		r.Suggestions = append(r.Suggestions,
			fmt.Sprintf("Consider starting or ending with the tonic chord (%s)", model.PitchClassName(key.Root)))
	}
	if !hasResolution {
		r.Suggestions = append(r.Suggestions, "Consider adding a dominant to tonic resolution for stronger harmonic movement")
	}
	return r
}
