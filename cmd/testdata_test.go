package cmd

import (
	"testing"

	"github.com/jsphweid/midicoach/midi"
	"github.com/jsphweid/midicoach/model"
	"github.com/stretchr/testify/require"
)

// cMajorBytes is four beats of a C major triad in 4/4 at 120 BPM.
func cMajorBytes(t *testing.T) []byte {
	var notes []model.NoteEvent
	for i := int64(0); i < 4; i++ {
		for _, p := range []uint8{60, 64, 67} {
			notes = append(notes, model.NoteEvent{Pitch: p, Velocity: 80, StartTick: i * 480, DurationTicks: 480})
		}
	}
	data, err := midi.Encode(&model.Score{
		Format:         1,
		TicksPerBeat:   480,
		Tracks:         []model.Track{{Name: "piano", Notes: notes, EndTick: 1920}},
		TempoMap:       []model.TempoChange{{Tick: 0, MicrosecondsPerBeat: 500000}},
		TimeSignatures: []model.TimeSignature{{Tick: 0, Numerator: 4, Denominator: 4}},
	})
	require.NoError(t, err)
	return data
}
