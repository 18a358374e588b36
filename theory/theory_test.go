package theory

import (
	"testing"

	"github.com/jsphweid/midicoach/model"
	"github.com/stretchr/testify/assert"
)

var cMajor = model.KeySignature{Root: 0, Mode: model.ModeMajor}

func TestScaleNotes(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([7]int{0, 2, 4, 5, 7, 9, 11}, ScaleNotes(0, model.ModeMajor))
	assert.Equal([7]int{9, 11, 0, 2, 4, 5, 7}, ScaleNotes(9, model.ModeMinor))
	assert.Equal([7]int{7, 9, 11, 0, 2, 4, 6}, ScaleNotes(7, model.ModeMajor))
}

func TestChordQualityAtDegree(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(model.Diminished, ChordQualityAtDegree(6, model.ModeMajor))
	assert.Equal(model.Diminished, ChordQualityAtDegree(1, model.ModeMinor))
	assert.Equal(model.Major, ChordQualityAtDegree(2, model.ModeMinor))
	assert.Equal(model.Other, ChordQualityAtDegree(7, model.ModeMajor))
}

func TestHarmonicFunction(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(Dominant, HarmonicFunction(4, model.ModeMajor))
	assert.Equal(Subtonic, HarmonicFunction(6, model.ModeMinor))
	assert.Equal(Subdominant, HarmonicFunction(5, model.ModeMinor))
}

func TestProgressionStrength(t *testing.T) {
	tests := []struct {
		from, to int
		want     Strength
	}{
		{4, 0, Strong},
		{1, 4, Strong},
		{0, 3, Moderate},
		{5, 4, Moderate},
		{0, 4, Weak},
		{6, 2, Weak},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressionStrength(tt.from, tt.to), "%d -> %d", tt.from, tt.to)
	}
}

func TestGenreProgressionDefaultsAndCopies(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]Numeral{"I", "vi", "IV", "V"}, GenreProgression("polka"))

	p := GenreProgression(model.GenrePop)
	p[0] = "V"
	assert.Equal(Numeral("I"), GenreProgression(model.GenrePop)[0])
}

func TestNumeralChord(t *testing.T) {
	assert := assert.New(t)
	c := Numeral("vi").Chord(cMajor)
	assert.Equal(9, c.Root)
	assert.Equal(model.Minor, c.Quality)

	aMinor := model.KeySignature{Root: 9, Mode: model.ModeMinor}
	c = Numeral("I").Chord(aMinor)
	assert.Equal(9, c.Root)
	assert.Equal(model.Minor, c.Quality)
}

func TestGenreRhythmTemplate(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]Hit{{0, Kick}, {1, Snare}, {2, Kick}, {3, Snare}}, GenreRhythmTemplate(""))
	assert.Len(GenreRhythmTemplate(model.GenreRock), 8)
	assert.Equal(uint8(36), Kick.Note())
	assert.Equal(uint8(42), HiHat.Note())
}

func TestGenreTips(t *testing.T) {
	assert := assert.New(t)
	assert.Len(GenreTips(model.GenreJazz), 2)
	assert.Empty(GenreTips("polka"))
	assert.Equal("Jazz", Title(model.GenreJazz))
}

func TestSuggestNextChords(t *testing.T) {
	got := SuggestNextChords(0, model.ModeMajor, 4)
	assert.Equal(t, []ChordSuggestion{
		{"C major", Tonic, Strong},
		{"A minor", Tonic, Weak},
	}, got)
	assert.Nil(t, SuggestNextChords(0, model.ModeMajor, 9))
}

func TestMelodyIdeas(t *testing.T) {
	assert := assert.New(t)
	ideas := MelodyIdeas(0, model.ModeMajor)
	assert.Len(ideas, 4)
	assert.Equal("Use chord tones: C - E - G", ideas[1].Description)
	assert.Equal("Use the leading tone B to resolve to C", ideas[3].Description)
	assert.Len(MelodyIdeas(9, model.ModeMinor), 3)
}

func TestScaleStep(t *testing.T) {
	tests := []struct {
		name  string
		pitch uint8
		steps int
		key   model.KeySignature
		want  uint8
	}{
		{"third above C", 60, 2, cMajor, 64},
		{"fifth above C", 60, 4, cMajor, 67},
		{"third above B wraps octave", 71, 2, cMajor, 74},
		{"fifth above A", 69, 4, cMajor, 76},
		{"chromatic note snaps down", 61, 2, cMajor, 64},
		{"minor third", 69, 2, model.KeySignature{Root: 9, Mode: model.ModeMinor}, 72},
		{"top of range", 127, 4, cMajor, 122},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScaleStep(tt.pitch, tt.steps, tt.key))
		})
	}
}

func TestProgressionQuality(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("Unknown", ProgressionQuality(nil, cMajor).Quality)

	single := ProgressionQuality([]model.ChordSymbol{{Root: 0, Quality: model.Major}}, cMajor)
	assert.Equal("Single chord", single.Quality)
	assert.Equal("0/0", single.FunctionalStrength)

	// ii V I: two strong moves
	strong := ProgressionQuality([]model.ChordSymbol{
		{Root: 2, Quality: model.Minor}, {Root: 7, Quality: model.Major}, {Root: 0, Quality: model.Major},
	}, cMajor)
	assert.Equal("Strong", strong.Quality)
	assert.Equal("2/2", strong.FunctionalStrength)
	assert.Equal([]string{"Consider extending the progression to 4 or more chords for better flow"}, strong.Suggestions)

	weak := ProgressionQuality([]model.ChordSymbol{
		{Root: 4}, {Root: 2}, {Root: 4}, {Root: 2},
	}, cMajor)
	assert.Equal("Needs improvement", weak.Quality)
	assert.Len(weak.Suggestions, 2)
}

func TestUnusedDiatonicChords(t *testing.T) {
	got := UnusedDiatonicChords(cMajor, []model.ChordSymbol{{Root: 0}, {Root: 5}, {Root: 7}})
	assert.Equal(t, []string{"D minor", "E minor", "A minor", "B diminished"}, got)
}
