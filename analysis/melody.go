package analysis

import (
	"github.com/jsphweid/midicoach/constants"
	"github.com/jsphweid/midicoach/model"
)

// Elements groups notes sharing a start tick. A lone note becomes a Note
// element; two or more become a Chord whose velocity and duration are those
// of its top note. notes must be ordered by start tick.
func Elements(notes []model.NoteEvent) []model.MusicalElement {
	var out []model.MusicalElement
	for i := 0; i < len(notes); {
		j := i
		top := notes[i]
		for j < len(notes) && notes[j].StartTick == notes[i].StartTick {
			if notes[j].Pitch >= top.Pitch {
				top = notes[j]
			}
			j++
		}
		if j-i == 1 {
			out = append(out, model.NewNote(top.Pitch, top.Velocity, top.StartTick, top.DurationTicks))
		} else {
			pitches := make(model.Notes, 0, j-i)
			for _, n := range notes[i:j] {
				pitches = append(pitches, n.Pitch)
			}
			out = append(out, model.NewChord(pitches, top.Velocity, top.StartTick, top.DurationTicks))
		}
		i = j
	}
	return out
}

// MelodyLine takes the highest pitch at each onset.
func MelodyLine(elements []model.MusicalElement) []model.MelodyNote {
	line := make([]model.MelodyNote, 0, len(elements))
	for _, e := range elements {
		pitch := e.Pitches[0]
		if e.Kind == model.ChordElement {
			pitch = e.Highest()
		}
		line = append(line, model.MelodyNote{
			Pitch:         pitch,
			Velocity:      e.Velocity,
			StartTick:     e.StartTick,
			DurationTicks: e.DurationTicks,
		})
	}
	return line
}

func contour(mean float64) string {
	switch {
	case mean > -1 && mean < 1:
		return "Static"
	case mean > 2:
		return "Ascending"
	case mean < -2:
		return "Descending"
	}
	return "Undulating"
}

func Melody(line []model.MelodyNote) model.MelodicAnalysis {
	if len(line) < 2 {
		return model.MelodicAnalysis{Contour: "Insufficient data", Intervals: []int{}, Line: line}
	}

	intervals := make([]int, 0, len(line)-1)
	low, high := line[0].Pitch, line[0].Pitch
	var sum int
	for i, n := range line {
		if n.Pitch < low {
			low = n.Pitch
		}
		if n.Pitch > high {
			high = n.Pitch
		}
		if i > 0 {
			iv := int(n.Pitch) - int(line[i-1].Pitch)
			intervals = append(intervals, iv)
			sum += iv
		}
	}
	mean := float64(sum) / float64(len(intervals))

	reported := intervals
	if len(reported) > constants.MaxReportedIntervals {
		reported = reported[:constants.MaxReportedIntervals]
	}
	return model.MelodicAnalysis{
		Contour:         contour(mean),
		Intervals:       reported,
		Range:           int(high) - int(low),
		AverageInterval: round2(mean),
		Line:            line,
	}
}
