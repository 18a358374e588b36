package synth

import (
	"math"

	"github.com/jsphweid/midicoach/model"
)

// Factor resolves a duration policy to a whole tiling factor, at least 1.
func Factor(score *model.Score, policy model.DurationPolicy) int {
	switch policy.Kind {
	case model.DurationExtend:
		if policy.Factor > 1 {
			return policy.Factor
		}
	case model.DurationExtendToSecond:
		seconds := score.Seconds(score.LastTick())
		if seconds > 0 && policy.Seconds > seconds {
			return int(math.Ceil(policy.Seconds / seconds))
		}
	}
	return 1
}

// Extend tiles score n times in place. Every track, tempo change and time
// signature repeats at multiples of the score length, so tracks shorter than
// the score are padded to it and the tiles stay aligned.
func Extend(score *model.Score, n int) {
	scoreLen := score.LastTick()
	if n <= 1 || scoreLen == 0 {
		return
	}

	for i := range score.Tracks {
		t := &score.Tracks[i]
		notes := make([]model.NoteEvent, 0, len(t.Notes)*n)
		programs := make([]model.ProgramChange, 0, len(t.Programs)*n)
		for k := 0; k < n; k++ {
			offset := int64(k) * scoreLen
			for _, note := range t.Notes {
				note.StartTick += offset
				notes = append(notes, note)
			}
			for _, p := range t.Programs {
				p.Tick += offset
				programs = append(programs, p)
			}
		}
		t.Notes = notes
		if len(programs) > 0 {
			t.Programs = programs
		}
		t.EndTick = scoreLen * int64(n)
	}

	var tempos []model.TempoChange
	var sigs []model.TimeSignature
	for k := 0; k < n; k++ {
		offset := int64(k) * scoreLen
		for _, tc := range score.TempoMap {
			tc.Tick += offset
			tempos = append(tempos, tc)
		}
		for _, ts := range score.TimeSignatures {
			ts.Tick += offset
			sigs = append(sigs, ts)
		}
	}
	score.TempoMap = model.NormalizeTempoMap(tempos)
	score.TimeSignatures = model.NormalizeTimeSignatures(sigs)
}
