package synth

import (
	"github.com/jsphweid/midicoach/analysis"
	"github.com/jsphweid/midicoach/constants"
	"github.com/jsphweid/midicoach/logger"
	"github.com/jsphweid/midicoach/model"
	"github.com/pkg/errors"
)

type part struct {
	name    string
	role    model.InstrumentRole
	program int
	build   func(p *plan, channel uint8) []model.NoteEvent
}

var parts = map[model.Instrument]part{
	model.InstrumentBass:  {"Bass", model.RoleBass, programFingeredBass, bass},
	model.InstrumentDrums: {"Drums", model.RoleDrums, -1, func(p *plan, _ uint8) []model.NoteEvent { return drums(p) }},
	model.InstrumentChords: {"Chords", model.RoleChords, programPiano, func(p *plan, ch uint8) []model.NoteEvent {
		return triads(p, chordOctaveBase, 70, ch)
	}},
	model.InstrumentStrings: {"Strings", model.RoleStrings, programStrings, func(p *plan, ch uint8) []model.NoteEvent {
		return triads(p, chordOctaveBase+12, 55, ch)
	}},
	model.InstrumentLead: {"Lead Harmony", model.RoleLead, programSquareLead, lead},
	model.InstrumentPad:  {"Pad", model.RolePad, programNewAgePad, pad},
}

var introPart = part{"Intro", model.RoleIntro, programPiano, intro}

// Synthesize returns a copy of score, tiled per the duration policy, with
// the generated accompaniment appended. score is not modified.
func Synthesize(score *model.Score, a *model.AnalysisResult, prefs model.UserPreferences) (*model.Score, error) {
	out, generated, err := build(score, a, prefs)
	if err != nil {
		return nil, err
	}
	for _, g := range generated {
		out.Tracks = append(out.Tracks, g.Track)
	}
	return out, nil
}

// Generate returns only the generated tracks, tagged with their role.
func Generate(score *model.Score, a *model.AnalysisResult, prefs model.UserPreferences) ([]model.GeneratedTrack, error) {
	_, generated, err := build(score, a, prefs)
	return generated, err
}

func build(score *model.Score, a *model.AnalysisResult, prefs model.UserPreferences) (*model.Score, []model.GeneratedTrack, error) {
	if score == nil || score.NoteCount() == 0 {
		return nil, nil, ErrEmptyScore
	}
	if a == nil {
		a = &model.AnalysisResult{}
	}
	for _, in := range prefs.Instruments {
		if !in.Known() {
			return nil, nil, errors.Wrapf(ErrUnsupportedInstrument, "%q", in)
		}
	}

	wanted := requested(prefs)
	for _, in := range wanted {
		if (in == model.InstrumentLead || in == model.InstrumentPad) && len(a.Melody.Line) == 0 {
			return nil, nil, errors.Wrapf(ErrNoMelodyFound, "%s requested", in)
		}
	}

	out := score.Clone()
	tileLength := score.LastTick()
	factor := Factor(score, prefs.Duration)
	Extend(out, factor)

	p := newPlan(out, a, prefs, tileLength, factor)
	channels := newChannelPool(out.UsedChannels())

	var generated []model.GeneratedTrack
	emit := func(pt part) {
		channel := uint8(constants.DrumChannel)
		if pt.program >= 0 {
			channel = channels.next()
		}
		notes := pt.build(p, channel)
		if prefs.HasGoal(model.GoalGenre) && prefs.TargetGenre != "" {
			applyGenreStyle(notes, prefs.TargetGenre, p.ticksPerBeat)
		}

		trackID := len(out.Tracks) + len(generated)
		t := model.Track{Name: pt.name, Notes: notes}
		for i := range t.Notes {
			t.Notes[i].TrackID = trackID
		}
		if pt.program >= 0 {
			t.Programs = []model.ProgramChange{{Tick: 0, Channel: channel, Program: uint8(pt.program)}}
		}
		t.SortNotes()
		t.EndTick = t.LastTick()

		logger.Debug("Generated track", logger.Fields{
			"role":    string(pt.role),
			"notes":   len(t.Notes),
			"channel": int(channel),
		})
		generated = append(generated, model.GeneratedTrack{Track: t, Role: pt.role})
	}

	for _, in := range wanted {
		emit(parts[in])
	}
	if prefs.HasGoal(model.GoalStructure) && a.Structure.TotalMeasures < 16 {
		emit(introPart)
	}
	return out, generated, nil
}

// requested lists the known instruments whose goal is selected, in request
// order without repeats.
func requested(prefs model.UserPreferences) []model.Instrument {
	seen := make(map[model.Instrument]bool)
	var out []model.Instrument
	for _, in := range prefs.Instruments {
		if seen[in] {
			continue
		}
		seen[in] = true
		if !prefs.HasGoal(in.Goal()) {
			logger.Debug("Skipping instrument without its goal", logger.Fields{
				"instrument": string(in),
				"goal":       string(in.Goal()),
			})
			continue
		}
		out = append(out, in)
	}
	return out
}

func newPlan(out *model.Score, a *model.AnalysisResult, prefs model.UserPreferences, tileLength int64, tiles int) *plan {
	tpb := int64(out.TicksPerBeat)
	if tpb == 0 {
		tpb = constants.DefaultTicksPerBeat
	}
	ts := out.TimeSignature()
	beats := ts.BeatsPerMeasure()
	if beats <= 0 {
		beats = constants.DefaultBeatsPerMeasure
	}

	measures := analysis.MeasureCount(out.LastTick(), tpb, ts)
	if measures == 0 {
		measures = a.Structure.TotalMeasures * tiles
	}

	key := a.Key
	if key.Mode == "" {
		key.Mode = model.ModeMajor
	}

	var selector HarmonySelector = Alternating()
	if prefs.HarmonySeed != nil {
		selector = Seeded(*prefs.HarmonySeed)
	}

	return &plan{
		key:          key,
		genre:        prefs.TargetGenre,
		ticksPerBeat: tpb,
		measures:     measures,
		beatsPerBar:  beats,
		melody:       a.Melody.Line,
		tileLength:   tileLength,
		tiles:        tiles,
		selector:     selector,
	}
}

type channelPool struct {
	used map[uint8]bool
}

func newChannelPool(used map[uint8]bool) *channelPool {
	u := make(map[uint8]bool, len(used)+1)
	for ch := range used {
		u[ch] = true
	}
	u[constants.DrumChannel] = true
	return &channelPool{used: u}
}

// next hands out the lowest free melodic channel. When all are taken it
// shares channel 15.
func (c *channelPool) next() uint8 {
	for ch := uint8(0); ch < 16; ch++ {
		if !c.used[ch] {
			c.used[ch] = true
			return ch
		}
	}
	return 15
}
