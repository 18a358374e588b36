package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/midicoach/model"
)

// Window groups notes whose onsets fall within a small tolerance of the
// first onset of the group.
type Window struct {
	Onset   int64
	Pitches model.Notes
}

// CreateChordKey renders pitches in ascending order, e.g. "60-64-67". The
// input slice is left untouched.
func CreateChordKey(notes model.Notes) string {
	sorted := append(model.Notes(nil), notes...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	var res string
	for i, note := range sorted {
		res += fmt.Sprintf("%v", note)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}

func (w Window) Key() string {
	return CreateChordKey(w.Pitches)
}

// Lowest is the lowest sounding pitch of the window.
func (w Window) Lowest() uint8 {
	low := uint8(127)
	for _, p := range w.Pitches {
		if p < low {
			low = p
		}
	}
	return low
}

// PitchClasses returns the distinct pitch classes of the window, ascending.
func (w Window) PitchClasses() []int {
	var seen [12]bool
	for _, p := range w.Pitches {
		seen[p%12] = true
	}
	var out []int
	for pc, ok := range seen {
		if ok {
			out = append(out, pc)
		}
	}
	return out
}

// OnsetWindows groups notes by onset. notes must be ordered by start tick.
func OnsetWindows(notes []model.NoteEvent, tolerance int64) []Window {
	var windows []Window
	for _, n := range notes {
		if last := len(windows) - 1; last >= 0 && n.StartTick-windows[last].Onset <= tolerance {
			windows[last].Pitches = append(windows[last].Pitches, n.Pitch)
			continue
		}
		windows = append(windows, Window{Onset: n.StartTick, Pitches: model.Notes{n.Pitch}})
	}
	return windows
}

var templates = []struct {
	intervals [3]int
	quality   model.ChordQuality
}{
	{[3]int{0, 4, 7}, model.Major},
	{[3]int{0, 3, 7}, model.Minor},
	{[3]int{0, 3, 6}, model.Diminished},
	{[3]int{0, 4, 8}, model.Augmented},
}

func match(pcs []int, root int) (model.ChordQuality, bool) {
	if len(pcs) != 3 {
		return model.Other, false
	}
	rel := make([]int, 0, 3)
	for _, pc := range pcs {
		rel = append(rel, (pc-root+12)%12)
	}
	sort.Ints(rel)
	for _, t := range templates {
		if rel[0] == t.intervals[0] && rel[1] == t.intervals[1] && rel[2] == t.intervals[2] {
			return t.quality, true
		}
	}
	return model.Other, false
}

// Classify names the window's triad. Windows with fewer than three distinct
// pitch classes are not chords. The lowest sounding pitch is tried as the
// root first, then the remaining pitch classes so inversions keep their
// root. Sets matching no template are Other, rooted at the lowest pitch.
func Classify(w Window) (model.ChordSymbol, bool) {
	pcs := w.PitchClasses()
	if len(pcs) < 3 {
		return model.ChordSymbol{}, false
	}

	bass := int(w.Lowest() % 12)
	c := model.ChordSymbol{Root: bass, Quality: model.Other, OnsetTick: w.Onset}
	if q, ok := match(pcs, bass); ok {
		c.Quality = q
		return c, true
	}
	for _, root := range pcs {
		if root == bass {
			continue
		}
		if q, ok := match(pcs, root); ok {
			c.Root, c.Quality = root, q
			return c, true
		}
	}
	return c, true
}

// GetChords classifies every onset window of notes.
func GetChords(notes []model.NoteEvent, tolerance int64) []model.ChordSymbol {
	var chords []model.ChordSymbol
	for _, w := range OnsetWindows(notes, tolerance) {
		if c, ok := Classify(w); ok {
			chords = append(chords, c)
		}
	}
	return chords
}

// ProgressionType is a coarse label from the major and minor chord counts.
func ProgressionType(chords []model.ChordSymbol) string {
	if len(chords) == 0 {
		return "Unknown"
	}
	var major, minor int
	for _, c := range chords {
		switch c.Quality {
		case model.Major:
			major++
		case model.Minor:
			minor++
		}
	}
	switch {
	case major > 0 && minor > 0:
		return "Mixed"
	case major > 0:
		return "Predominantly Major"
	case minor > 0:
		return "Predominantly Minor"
	}
	return "Varied"
}
