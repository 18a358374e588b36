package analysis

import (
	"math"
	"sort"

	"github.com/jsphweid/midicoach/chord"
	"github.com/jsphweid/midicoach/constants"
	"github.com/jsphweid/midicoach/model"
	"github.com/jsphweid/midicoach/util"
)

// Pitched drops percussion channel notes. Key, note, chord and melody
// analyses only look at pitched notes.
func Pitched(notes []model.NoteEvent) []model.NoteEvent {
	out := make([]model.NoteEvent, 0, len(notes))
	for _, n := range notes {
		if n.Channel != constants.DrumChannel {
			out = append(out, n)
		}
	}
	return out
}

func stability(changes int) string {
	if changes <= 1 {
		return "Stable"
	}
	return "Variable"
}

// Tempo averages the tempo map. An empty map is 120 BPM.
func Tempo(tempoMap []model.TempoChange) model.TempoInfo {
	if len(tempoMap) == 0 {
		return defaultTempo()
	}
	var total float64
	for _, tc := range tempoMap {
		total += float64(tc.MicrosecondsPerBeat)
	}
	mean := total / float64(len(tempoMap))
	bpm := float64(constants.DefaultBPM)
	if mean > 0 {
		bpm = 60000000 / mean
	}
	changes := len(tempoMap) - 1
	return model.TempoInfo{AverageBPM: round2(bpm), TempoChanges: changes, Stability: stability(changes)}
}

func NoteStats(notes []model.NoteEvent) model.NoteStatistics {
	stats := defaultNotes()
	if len(notes) == 0 {
		return stats
	}

	var (
		counts   [12]int
		velocity float64
	)
	stats.TotalNotes = len(notes)
	stats.LowestPitch, stats.HighestPitch = notes[0].Pitch, notes[0].Pitch
	for _, n := range notes {
		counts[n.Pitch%12]++
		velocity += float64(n.Velocity)
		if n.Pitch < stats.LowestPitch {
			stats.LowestPitch = n.Pitch
		}
		if n.Pitch > stats.HighestPitch {
			stats.HighestPitch = n.Pitch
		}
	}
	stats.AverageVelocity = round2(velocity / float64(len(notes)))

	pcs := make([]int, 0, 12)
	for pc, c := range counts {
		if c > 0 {
			pcs = append(pcs, pc)
		}
	}
	sort.SliceStable(pcs, func(i, j int) bool {
		return counts[pcs[i]] > counts[pcs[j]]
	})
	pcs = pcs[:util.Min(len(pcs), constants.MostCommonNoteCount)]
	stats.MostCommonPitchClasses = pcs
	for _, pc := range pcs {
		stats.MostCommonNotes = append(stats.MostCommonNotes, model.PitchClassName(pc))
	}
	return stats
}

// Chords detects triads over onset windows 1/32 beat wide and reports the
// first ten.
func Chords(notes []model.NoteEvent, ticksPerBeat int64) model.ChordProgression {
	all := chord.GetChords(notes, ticksPerBeat/constants.OnsetToleranceDivisor)
	reported := all
	if len(reported) > constants.MaxReportedChords {
		reported = reported[:constants.MaxReportedChords]
	}
	return model.ChordProgression{
		Chords:          append([]model.ChordSymbol{}, reported...),
		TotalChords:     len(all),
		ProgressionType: chord.ProgressionType(all),
	}
}

// Rhythm counts distinct note durations on a 1/24 beat grid.
func Rhythm(notes []model.NoteEvent, ticksPerBeat int64, ts model.TimeSignature) model.RhythmProfile {
	p := model.RhythmProfile{TimeSignature: ts, Complexity: "Unknown"}
	if len(notes) == 0 {
		return p
	}

	grid := ticksPerBeat / constants.DurationGridPerBeat
	if grid < 1 {
		grid = 1
	}
	distinct := make(map[int64]bool)
	for _, n := range notes {
		q := (n.DurationTicks + grid/2) / grid
		if q < 1 {
			q = 1
		}
		distinct[q] = true
	}

	p.UniqueDurations = len(distinct)
	switch {
	case p.UniqueDurations <= 3:
		p.Complexity = "Simple"
	case p.UniqueDurations <= 6:
		p.Complexity = "Moderate"
	default:
		p.Complexity = "Complex"
	}
	return p
}

// MeasureCount rounds a partial final measure up.
func MeasureCount(lastTick, ticksPerBeat int64, ts model.TimeSignature) int {
	perMeasure := float64(ticksPerBeat) * ts.BeatsPerMeasure()
	if perMeasure <= 0 || lastTick <= 0 {
		return 0
	}
	return int(math.Ceil(float64(lastTick) / perMeasure))
}

func Structure(lastTick, ticksPerBeat int64, ts model.TimeSignature) model.StructureAnalysis {
	m := MeasureCount(lastTick, ticksPerBeat, ts)
	s := model.StructureAnalysis{TotalMeasures: m, Sections: []model.Section{}, EstimatedForm: "AB"}
	if m > 24 {
		s.EstimatedForm = "AABA"
	}

	switch {
	case m == 0:
	case m <= 16:
		s.Sections = append(s.Sections, model.Section{Name: "Short Form", StartMeasure: 1, EndMeasure: m})
	case m <= 32:
		mid := (m + 1) / 2
		s.Sections = append(s.Sections,
			model.Section{Name: "Verse", StartMeasure: 1, EndMeasure: mid},
			model.Section{Name: "Chorus", StartMeasure: mid + 1, EndMeasure: m},
		)
	default:
		chorusEnd := m
		if chorusEnd > 40 {
			chorusEnd = 40
		}
		s.Sections = append(s.Sections,
			model.Section{Name: "Intro", StartMeasure: 1, EndMeasure: 8},
			model.Section{Name: "Verse", StartMeasure: 9, EndMeasure: 24},
			model.Section{Name: "Chorus", StartMeasure: 25, EndMeasure: chorusEnd},
		)
		if m > 40 {
			s.Sections = append(s.Sections, model.Section{Name: "Additional Sections", StartMeasure: 41, EndMeasure: m})
		}
	}
	return s
}
