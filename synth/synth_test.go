package synth

import (
	"testing"

	"github.com/jsphweid/midicoach/analysis"
	"github.com/jsphweid/midicoach/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioA() *model.Score {
	var notes []model.NoteEvent
	for i := int64(0); i < 4; i++ {
		for _, p := range []uint8{60, 64, 67} {
			notes = append(notes, model.NoteEvent{Pitch: p, Velocity: 80, StartTick: i * 480, DurationTicks: 480})
		}
	}
	return &model.Score{
		Format:         1,
		TicksPerBeat:   480,
		Tracks:         []model.Track{{Name: "piano", Notes: notes, EndTick: 1920}},
		TempoMap:       []model.TempoChange{{Tick: 0, MicrosecondsPerBeat: 500000}},
		TimeSignatures: []model.TimeSignature{{Tick: 0, Numerator: 4, Denominator: 4}},
	}
}

func analyzed(t *testing.T, s *model.Score) *model.AnalysisResult {
	a, err := analysis.Extract(s)
	require.NoError(t, err)
	return a
}

func TestScenarioCLeadHarmonizesMelody(t *testing.T) {
	s := scenarioA()
	a := analyzed(t, s)
	prefs := model.UserPreferences{
		Goals:       []model.Goal{model.GoalMelody},
		Instruments: []model.Instrument{model.InstrumentLead},
	}

	out, err := Synthesize(s, a, prefs)
	require.NoError(t, err)

	assert := assert.New(t)
	require.Len(t, out.Tracks, 2)
	lead := out.Tracks[1]
	assert.Len(lead.Notes, len(a.Melody.Line))
	assert.Equal(uint8(0x50), lead.Programs[0].Program)
	assert.Equal(uint8(1), lead.Notes[0].Channel)

	// G harmonized with a third, then a fifth, alternating
	assert.Equal(uint8(71), lead.Notes[0].Pitch)
	assert.Equal(uint8(74), lead.Notes[1].Pitch)
	assert.Equal(uint8(71), lead.Notes[2].Pitch)

	// input untouched
	assert.Len(s.Tracks, 1)
	assert.Equal(s.Tracks[0], out.Tracks[0])
}

func TestSeededHarmonyIsReproducible(t *testing.T) {
	s := scenarioA()
	a := analyzed(t, s)
	seed := int64(42)
	prefs := model.UserPreferences{
		Goals:       []model.Goal{model.GoalMelody},
		Instruments: []model.Instrument{model.InstrumentLead},
		HarmonySeed: &seed,
	}

	first, err := Synthesize(s, a, prefs)
	require.NoError(t, err)
	second, err := Synthesize(s, a, prefs)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExtendDoublesFinalTick(t *testing.T) {
	s := scenarioA()
	s.Tracks = append(s.Tracks, model.Track{
		Notes:   []model.NoteEvent{{Pitch: 40, Velocity: 70, StartTick: 240, DurationTicks: 240, TrackID: 1}},
		EndTick: 960,
	})
	a := analyzed(t, s)

	out, err := Synthesize(s, a, model.UserPreferences{Duration: model.Extend(2)})
	require.NoError(t, err)

	assert := assert.New(t)
	require.Len(t, out.Tracks, 2)
	for i, tr := range out.Tracks {
		assert.Equal(2*s.LastTick(), tr.LastTick())
		assert.Len(tr.Notes, 2*len(s.Tracks[i].Notes))
	}
	second := out.Tracks[1].Notes
	assert.Equal(int64(240), second[0].StartTick)
	assert.Equal(int64(2160), second[1].StartTick)
	assert.Equal(second[0].DurationTicks, second[1].DurationTicks)
	assert.Equal([]model.TempoChange{{Tick: 0, MicrosecondsPerBeat: 500000}, {Tick: 1920, MicrosecondsPerBeat: 500000}}, out.TempoMap)
}

func onsets(notes []model.NoteEvent) []int64 {
	var out []int64
	for _, n := range notes {
		out = append(out, n.StartTick)
	}
	return out
}

func TestExtendKeepsUnequalTracksAligned(t *testing.T) {
	s := &model.Score{
		Format:       1,
		TicksPerBeat: 480,
		Tracks: []model.Track{
			{Name: "melody", Notes: []model.NoteEvent{
				{Pitch: 60, Velocity: 80, StartTick: 0, DurationTicks: 480},
				{Pitch: 64, Velocity: 80, StartTick: 480, DurationTicks: 480},
				{Pitch: 67, Velocity: 80, StartTick: 960, DurationTicks: 480},
			}, EndTick: 1440},
			{Name: "bass", Notes: []model.NoteEvent{
				{Pitch: 36, Velocity: 80, StartTick: 0, DurationTicks: 1920, TrackID: 1},
			}, EndTick: 1920},
		},
		TempoMap:       []model.TempoChange{{Tick: 0, MicrosecondsPerBeat: 500000}},
		TimeSignatures: []model.TimeSignature{{Tick: 0, Numerator: 4, Denominator: 4}},
	}
	a := analyzed(t, s)
	require.Len(t, a.Melody.Line, 3)

	out, err := Synthesize(s, a, model.UserPreferences{
		Goals:       []model.Goal{model.GoalMelody},
		Instruments: []model.Instrument{model.InstrumentLead},
		Duration:    model.Extend(2),
	})
	require.NoError(t, err)
	require.Len(t, out.Tracks, 3)

	assert := assert.New(t)
	want := []int64{0, 480, 960, 1920, 2400, 2880}
	assert.Equal(want, onsets(out.Tracks[0].Notes))
	assert.Equal(want, onsets(out.Tracks[2].Notes))
	assert.Equal([]int64{0, 1920}, onsets(out.Tracks[1].Notes))
	assert.Equal(int64(3840), out.Tracks[0].EndTick)
	assert.Equal(int64(3840), out.Tracks[1].EndTick)
	assert.Equal([]model.TempoChange{{Tick: 0, MicrosecondsPerBeat: 500000}, {Tick: 1920, MicrosecondsPerBeat: 500000}}, out.TempoMap)
}

func TestExtendToSecondsRoundsFactorUp(t *testing.T) {
	s := scenarioA()
	assert.Equal(t, 3, Factor(s, model.ExtendToSeconds(5)))
	assert.Equal(t, 1, Factor(s, model.ExtendToSeconds(1)))
	assert.Equal(t, 1, Factor(s, model.Keep()))
	assert.Equal(t, 1, Factor(s, model.Extend(0)))
}

func TestBassWalk(t *testing.T) {
	s := scenarioA()
	s.Tracks[0].EndTick = 480 * 16 // four measures
	a := analyzed(t, s)
	prefs := model.UserPreferences{
		Goals:       []model.Goal{model.GoalHarmony},
		Instruments: []model.Instrument{model.InstrumentBass},
		TargetGenre: model.GenrePop,
	}

	tracks, err := Generate(s, a, prefs)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, model.RoleBass, tracks[0].Role)

	var pitches []uint8
	for _, n := range tracks[0].Notes {
		pitches = append(pitches, n.Pitch)
		assert.Equal(t, int64(1920), n.DurationTicks)
	}
	// pop I V vi IV in C: C2, G2 up a step, A2, F2 up a fourth
	assert.Equal(t, []uint8{36, 45, 45, 47}, pitches)
}

func TestDrumsTileTemplatePerMeasure(t *testing.T) {
	s := scenarioA()
	s.Tracks[0].EndTick = 480 * 8
	a := analyzed(t, s)
	prefs := model.UserPreferences{
		Goals:       []model.Goal{model.GoalRhythm},
		Instruments: []model.Instrument{model.InstrumentDrums},
		TargetGenre: model.GenreRock,
	}

	tracks, err := Generate(s, a, prefs)
	require.NoError(t, err)
	drums := tracks[0]

	assert := assert.New(t)
	assert.Len(drums.Notes, 16)
	assert.Empty(drums.Programs)
	for _, n := range drums.Notes {
		assert.Equal(uint8(9), n.Channel)
		assert.Equal(int64(120), n.DurationTicks)
	}
	assert.Equal(uint8(36), drums.Notes[0].Pitch)
	assert.Equal(int64(1920), drums.Notes[8].StartTick)
}

func TestDrumsDropHitsPastShortMeasures(t *testing.T) {
	s := scenarioA()
	s.TimeSignatures = []model.TimeSignature{{Tick: 0, Numerator: 3, Denominator: 4}}
	s.Tracks[0].EndTick = 1440
	a := analyzed(t, s)
	tracks, err := Generate(s, a, model.UserPreferences{
		Goals:       []model.Goal{model.GoalRhythm},
		Instruments: []model.Instrument{model.InstrumentDrums},
	})
	require.NoError(t, err)
	// 2 measures of 3/4 with kick, snare, kick
	assert.Len(t, tracks[0].Notes, 6)
}

func TestChordsAndStrings(t *testing.T) {
	s := scenarioA()
	a := analyzed(t, s)
	tracks, err := Generate(s, a, model.UserPreferences{
		Goals:       []model.Goal{model.GoalArrangement},
		Instruments: []model.Instrument{model.InstrumentChords, model.InstrumentStrings},
	})
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	assert := assert.New(t)
	// one measure: a single I chord
	var chordPitches, stringPitches []uint8
	for _, n := range tracks[0].Notes {
		chordPitches = append(chordPitches, n.Pitch)
	}
	for _, n := range tracks[1].Notes {
		stringPitches = append(stringPitches, n.Pitch)
	}
	assert.Equal([]uint8{48, 52, 55}, chordPitches)
	assert.Equal([]uint8{60, 64, 67}, stringPitches)
	assert.Equal(uint8(1), tracks[0].Notes[0].Channel)
	assert.Equal(uint8(2), tracks[1].Notes[0].Channel)
}

func TestIntroForShortStructure(t *testing.T) {
	s := scenarioA()
	a := analyzed(t, s)
	tracks, err := Generate(s, a, model.UserPreferences{Goals: []model.Goal{model.GoalStructure}})
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, model.RoleIntro, tracks[0].Role)
	assert.Len(t, tracks[0].Notes, 3)
	assert.Equal(t, uint8(72), tracks[0].Notes[2].Pitch)
}

func TestInstrumentWithoutGoalIsSkipped(t *testing.T) {
	s := scenarioA()
	a := analyzed(t, s)
	tracks, err := Generate(s, a, model.UserPreferences{Instruments: []model.Instrument{model.InstrumentBass}})
	require.NoError(t, err)
	assert.Empty(t, tracks)
}

func TestSynthesisErrors(t *testing.T) {
	s := scenarioA()
	a := analyzed(t, s)

	_, err := Synthesize(&model.Score{TicksPerBeat: 480}, a, model.UserPreferences{})
	assert.ErrorIs(t, err, ErrEmptyScore)

	_, err = Synthesize(s, a, model.UserPreferences{Instruments: []model.Instrument{"banjo"}})
	assert.ErrorIs(t, err, ErrUnsupportedInstrument)

	noMelody := *a
	noMelody.Melody = model.MelodicAnalysis{Contour: "Unknown"}
	_, err = Synthesize(s, &noMelody, model.UserPreferences{
		Goals:       []model.Goal{model.GoalMelody},
		Instruments: []model.Instrument{model.InstrumentPad},
	})
	assert.ErrorIs(t, err, ErrNoMelodyFound)
}

func TestGenreStylingTouchesGeneratedTracksOnly(t *testing.T) {
	notes := []model.NoteEvent{
		{Pitch: 60, Velocity: 100, StartTick: 0, DurationTicks: 240},
		{Pitch: 62, Velocity: 120, StartTick: 480, DurationTicks: 480},
		{Pitch: 64, Velocity: 100, StartTick: 720, DurationTicks: 240},
	}

	jazz := append([]model.NoteEvent(nil), notes...)
	applyGenreStyle(jazz, model.GenreJazz, 480)
	assert.Equal(t, int64(322), jazz[0].DurationTicks)
	assert.Equal(t, int64(480), jazz[1].DurationTicks)

	rock := append([]model.NoteEvent(nil), notes...)
	applyGenreStyle(rock, model.GenreRock, 480)
	assert.Equal(t, uint8(120), rock[0].Velocity)
	assert.Equal(t, uint8(127), rock[1].Velocity)
	assert.Equal(t, uint8(100), rock[2].Velocity)

	s := scenarioA()
	a := analyzed(t, s)
	out, err := Synthesize(s, a, model.UserPreferences{
		Goals:       []model.Goal{model.GoalGenre, model.GoalHarmony},
		TargetGenre: model.GenreRock,
		Instruments: []model.Instrument{model.InstrumentBass},
	})
	require.NoError(t, err)
	assert.Equal(t, uint8(80), out.Tracks[0].Notes[0].Velocity)
	assert.Equal(t, uint8(110), out.Tracks[1].Notes[0].Velocity)
}

func TestAlternatingSelector(t *testing.T) {
	sel := Alternating()
	assert.Equal(t, []int{Third, Fifth, Third, Fifth}, []int{sel.Next(), sel.Next(), sel.Next(), sel.Next()})
}
