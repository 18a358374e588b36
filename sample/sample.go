package sample

import (
	"github.com/jsphweid/midicoach/model"
	"github.com/jsphweid/midicoach/util"
)

const DefaultMaxNotes = 10

// Excerpt cuts a short preview out of score starting at ticksOffset. Each
// track keeps at most maxNotes notes that start at or after the offset,
// shifted so the excerpt starts at tick 0. The tempo and meter in effect at
// the offset carry over.
func Excerpt(score *model.Score, ticksOffset int64, maxNotes int) *model.Score {
	if maxNotes <= 0 {
		maxNotes = DefaultMaxNotes
	}
	res := &model.Score{
		Format:         score.Format,
		TicksPerBeat:   score.TicksPerBeat,
		TempoMap:       shiftTempo(score.TempoMap, ticksOffset),
		TimeSignatures: shiftMeter(score.TimeSignatures, ticksOffset),
	}

	for _, track := range score.Tracks {
		newTrack := model.Track{Name: track.Name}
		sorted := track
		sorted.Notes = append([]model.NoteEvent(nil), track.Notes...)
		sorted.SortNotes()
		for _, n := range sorted.Notes {
			if n.StartTick < ticksOffset {
				continue
			}
			n.StartTick -= ticksOffset
			newTrack.Notes = append(newTrack.Notes, n)
			if len(newTrack.Notes) >= maxNotes {
				break
			}
		}
		for _, p := range track.Programs {
			p.Tick = util.Max(p.Tick-ticksOffset, 0)
			newTrack.Programs = append(newTrack.Programs, p)
		}
		newTrack.EndTick = newTrack.LastTick()
		res.Tracks = append(res.Tracks, newTrack)
	}
	res.TempoMap = model.NormalizeTempoMap(res.TempoMap)
	res.TimeSignatures = model.NormalizeTimeSignatures(res.TimeSignatures)
	return res
}

func shiftTempo(in []model.TempoChange, offset int64) []model.TempoChange {
	var out []model.TempoChange
	for _, tc := range in {
		tc.Tick = util.Max(tc.Tick-offset, 0)
		out = append(out, tc)
	}
	return out
}

func shiftMeter(in []model.TimeSignature, offset int64) []model.TimeSignature {
	var out []model.TimeSignature
	for _, ts := range in {
		ts.Tick = util.Max(ts.Tick-offset, 0)
		out = append(out, ts)
	}
	return out
}
