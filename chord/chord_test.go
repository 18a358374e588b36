package chord

import (
	"fmt"
	"testing"

	"github.com/jsphweid/midicoach/model"
	"github.com/stretchr/testify/assert"
)

func window(pitches ...uint8) Window {
	return Window{Pitches: pitches}
}

func TestCreateChordKeyDoesNotReorderInput(t *testing.T) {
	notes := model.Notes{67, 60, 64}
	assert.Equal(t, "60-64-67", CreateChordKey(notes))
	assert.Equal(t, model.Notes{67, 60, 64}, notes)
}

func TestClassifiesTemplates(t *testing.T) {
	cases := []struct {
		pitches model.Notes
		root    int
		quality model.ChordQuality
	}{
		{model.Notes{60, 64, 67}, 0, model.Major},
		{model.Notes{57, 60, 64}, 9, model.Minor},
		{model.Notes{59, 62, 65}, 11, model.Diminished},
		{model.Notes{60, 64, 68}, 0, model.Augmented},
		{model.Notes{60, 62, 67}, 0, model.Other},
		{model.Notes{60, 64, 67, 70}, 0, model.Other},
	}

	for _, c := range cases {
		name := fmt.Sprintf("classify %v", c.pitches)
		t.Run(name, func(t *testing.T) {
			got, ok := Classify(window(c.pitches...))
			assert := assert.New(t)
			assert.True(ok)
			assert.Equal(c.root, got.Root)
			assert.Equal(c.quality, got.Quality)
		})
	}
}

func TestSameTriadInAnyOrderIsMajorOnC(t *testing.T) {
	for _, pitches := range []model.Notes{{60, 64, 67}, {64, 67, 60}, {67, 60, 64}} {
		got, ok := Classify(window(pitches...))
		assert.True(t, ok)
		assert.Equal(t, model.ChordSymbol{Root: 0, Quality: model.Major}, got)
	}
}

func TestInversionsKeepTheirRoot(t *testing.T) {
	first, _ := Classify(window(64, 67, 72))
	second, _ := Classify(window(55, 60, 64))
	assert.Equal(t, model.ChordSymbol{Root: 0, Quality: model.Major}, first)
	assert.Equal(t, model.ChordSymbol{Root: 0, Quality: model.Major}, second)
}

func TestFewerThanThreePitchClassesIsNotAChord(t *testing.T) {
	_, ok := Classify(window(60, 72, 67))
	assert.False(t, ok)
}

func TestOnsetWindows(t *testing.T) {
	notes := []model.NoteEvent{
		{Pitch: 60, StartTick: 0},
		{Pitch: 64, StartTick: 10},
		{Pitch: 67, StartTick: 15},
		{Pitch: 62, StartTick: 16},
		{Pitch: 65, StartTick: 480},
	}
	windows := OnsetWindows(notes, 15)

	assert := assert.New(t)
	assert.Len(windows, 3)
	assert.Equal(Window{Onset: 0, Pitches: model.Notes{60, 64, 67}}, windows[0])
	assert.Equal(Window{Onset: 16, Pitches: model.Notes{62}}, windows[1])
	assert.Equal(int64(480), windows[2].Onset)
}

func TestGetChordsKeepsOnsets(t *testing.T) {
	var notes []model.NoteEvent
	for i := int64(0); i < 4; i++ {
		for _, p := range []uint8{60, 64, 67} {
			notes = append(notes, model.NoteEvent{Pitch: p, StartTick: i * 480, DurationTicks: 480})
		}
	}
	chords := GetChords(notes, 15)
	assert.Len(t, chords, 4)
	assert.Equal(t, int64(1440), chords[3].OnsetTick)
	assert.Equal(t, "Predominantly Major", ProgressionType(chords))
}

func TestProgressionType(t *testing.T) {
	maj := model.ChordSymbol{Quality: model.Major}
	minor := model.ChordSymbol{Quality: model.Minor}
	dim := model.ChordSymbol{Quality: model.Diminished}

	assert := assert.New(t)
	assert.Equal("Unknown", ProgressionType(nil))
	assert.Equal("Mixed", ProgressionType([]model.ChordSymbol{maj, minor}))
	assert.Equal("Predominantly Minor", ProgressionType([]model.ChordSymbol{minor, dim}))
	assert.Equal("Varied", ProgressionType([]model.ChordSymbol{dim}))
}
