package sample

import (
	"testing"

	"github.com/jsphweid/midicoach/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func longScore() *model.Score {
	var notes []model.NoteEvent
	for i := int64(0); i < 20; i++ {
		notes = append(notes, model.NoteEvent{Pitch: uint8(60 + i%12), Velocity: 80, StartTick: i * 240, DurationTicks: 240})
	}
	return &model.Score{
		Format:       1,
		TicksPerBeat: 480,
		Tracks: []model.Track{{
			Name:     "piano",
			Notes:    notes,
			Programs: []model.ProgramChange{{Tick: 0, Program: 4}},
			EndTick:  4800,
		}},
		TempoMap: []model.TempoChange{
			{Tick: 0, MicrosecondsPerBeat: 500000},
			{Tick: 960, MicrosecondsPerBeat: 400000},
			{Tick: 2400, MicrosecondsPerBeat: 600000},
		},
		TimeSignatures: []model.TimeSignature{{Tick: 0, Numerator: 3, Denominator: 4}},
	}
}

func TestExcerpt(t *testing.T) {
	src := longScore()
	ex := Excerpt(src, 1200, 4)

	require.Len(t, ex.Tracks, 1)
	track := ex.Tracks[0]
	assert.Equal(t, "piano", track.Name)
	require.Len(t, track.Notes, 4)
	assert.Equal(t, int64(0), track.Notes[0].StartTick)
	assert.Equal(t, uint8(65), track.Notes[0].Pitch)
	assert.Equal(t, int64(720), track.Notes[3].StartTick)
	assert.Equal(t, int64(960), track.EndTick)
	assert.Equal(t, []model.ProgramChange{{Tick: 0, Program: 4}}, track.Programs)

	assert.Equal(t, []model.TempoChange{
		{Tick: 0, MicrosecondsPerBeat: 400000},
		{Tick: 1200, MicrosecondsPerBeat: 600000},
	}, ex.TempoMap)
	assert.Equal(t, []model.TimeSignature{{Tick: 0, Numerator: 3, Denominator: 4}}, ex.TimeSignatures)

	assert.Len(t, src.Tracks[0].Notes, 20)
	assert.Equal(t, int64(960), src.TempoMap[1].Tick)
}

func TestExcerptDefaultsToTenNotes(t *testing.T) {
	ex := Excerpt(longScore(), 0, 0)
	assert.Len(t, ex.Tracks[0].Notes, DefaultMaxNotes)
}

func TestExcerptPastEnd(t *testing.T) {
	ex := Excerpt(longScore(), 100000, 5)
	assert.Empty(t, ex.Tracks[0].Notes)
	assert.Equal(t, int64(0), ex.Tracks[0].EndTick)
}
