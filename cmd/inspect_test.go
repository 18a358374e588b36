package cmd

import (
	"bytes"
	"testing"

	"github.com/jsphweid/midicoach/model"
	"github.com/stretchr/testify/assert"
)

func TestInspect(t *testing.T) {
	score := &model.Score{
		Format:       1,
		TicksPerBeat: 480,
		Tracks: []model.Track{{
			Name: "piano",
			Notes: []model.NoteEvent{
				{Pitch: 60, Velocity: 80, StartTick: 0, DurationTicks: 480},
				{Pitch: 64, Velocity: 80, StartTick: 0, DurationTicks: 480},
				{Pitch: 67, Velocity: 80, StartTick: 0, DurationTicks: 480},
				{Pitch: 72, Velocity: 80, StartTick: 480, DurationTicks: 480},
			},
			EndTick: 960,
		}},
		TempoMap:       []model.TempoChange{{Tick: 0, MicrosecondsPerBeat: 500000}},
		TimeSignatures: []model.TimeSignature{{Tick: 0, Numerator: 4, Denominator: 4}},
	}

	var buf bytes.Buffer
	inspect(&buf, score)
	out := buf.String()

	assert := assert.New(t)
	assert.Contains(out, "ticks per beat: 480")
	assert.Contains(out, `track 0 "piano": notes=4 programs=0 end=960`)
	assert.Contains(out, "tempo @0: 120.00 bpm")
	assert.Contains(out, "meter @0: 4/4")
	assert.Contains(out, "elements: notes=1 chords=1")
	assert.Contains(out, "key: 60-64-67 count: 1")
}
