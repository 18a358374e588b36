package synth

import (
	"math"

	"github.com/jsphweid/midicoach/constants"
	"github.com/jsphweid/midicoach/model"
	"github.com/jsphweid/midicoach/theory"
)

// General MIDI programs of the generated parts.
const (
	programPiano         = 0
	programFingeredBass  = 33
	programStrings       = 48
	programSquareLead    = 80
	programNewAgePad     = 88
	beatsPerChord        = 4
	bassOctaveBase       = 36
	chordOctaveBase      = 48
	percussionHitDivisor = 4
)

// plan holds what every generator needs for one synthesis call.
type plan struct {
	key          model.KeySignature
	genre        model.Genre
	ticksPerBeat int64
	measures     int
	beatsPerBar  float64
	melody       []model.MelodyNote
	tileLength   int64
	tiles        int
	selector     HarmonySelector

	harmony []model.NoteEvent
}

func (p *plan) chordCount() int {
	beats := float64(p.measures) * p.beatsPerBar
	n := int(math.Ceil(beats / beatsPerChord))
	if n < 1 {
		n = 1
	}
	return n
}

// progression repeats the genre template until it covers the piece.
func (p *plan) progression() []theory.Numeral {
	template := theory.GenreProgression(p.genre)
	out := make([]theory.Numeral, p.chordCount())
	for i := range out {
		out[i] = template[i%len(template)]
	}
	return out
}

func (p *plan) chordTicks() int64 {
	return beatsPerChord * p.ticksPerBeat
}

func note(pitch, velocity uint8, start, duration int64, channel uint8) model.NoteEvent {
	if duration < 1 {
		duration = 1
	}
	return model.NoteEvent{Pitch: pitch, Velocity: velocity, StartTick: start, DurationTicks: duration, Channel: channel}
}

func bass(p *plan, channel uint8) []model.NoteEvent {
	var out []model.NoteEvent
	for i, numeral := range p.progression() {
		root := uint8(bassOctaveBase + numeral.Chord(p.key).Root)
		switch {
		case i%4 == 3:
			root = theory.ScaleStep(root, 3, p.key)
		case i%2 == 1:
			root = theory.ScaleStep(root, 1, p.key)
		}
		out = append(out, note(root, 90, int64(i)*p.chordTicks(), p.chordTicks(), channel))
	}
	return out
}

func velocityFor(v theory.DrumVoice) uint8 {
	switch v {
	case theory.Kick:
		return 100
	case theory.Snare, theory.Clap:
		return 95
	}
	return 75
}

func drums(p *plan) []model.NoteEvent {
	var out []model.NoteEvent
	template := theory.GenreRhythmTemplate(p.genre)
	barTicks := int64(math.Round(p.beatsPerBar * float64(p.ticksPerBeat)))
	for m := 0; m < p.measures; m++ {
		for _, hit := range template {
			if hit.Beat >= p.beatsPerBar {
				continue
			}
			start := int64(m)*barTicks + int64(math.Round(hit.Beat*float64(p.ticksPerBeat)))
			out = append(out, note(hit.Voice.Note(), velocityFor(hit.Voice), start,
				p.ticksPerBeat/percussionHitDivisor, constants.DrumChannel))
		}
	}
	return out
}

func triads(p *plan, base int, velocity, channel uint8) []model.NoteEvent {
	var out []model.NoteEvent
	for i, numeral := range p.progression() {
		c := numeral.Chord(p.key)
		for _, iv := range theory.TriadIntervals(c.Quality) {
			out = append(out, note(uint8(base+c.Root+iv), velocity, int64(i)*p.chordTicks(), p.chordTicks(), channel))
		}
	}
	return out
}

// harmonize adds a third or fifth above each melody note, once per call,
// and repeats the result for every tile.
func harmonize(p *plan) []model.NoteEvent {
	if p.harmony != nil {
		return p.harmony
	}
	var once []model.NoteEvent
	for _, m := range p.melody {
		v := m.Velocity
		if v > 10 {
			v -= 10
		}
		once = append(once, note(theory.ScaleStep(m.Pitch, p.selector.Next(), p.key), v, m.StartTick, m.DurationTicks, 0))
	}
	for k := 0; k < p.tiles; k++ {
		for _, n := range once {
			n.StartTick += int64(k) * p.tileLength
			p.harmony = append(p.harmony, n)
		}
	}
	return p.harmony
}

func lead(p *plan, channel uint8) []model.NoteEvent {
	src := harmonize(p)
	out := make([]model.NoteEvent, len(src))
	for i, n := range src {
		n.Channel = channel
		out[i] = n
	}
	return out
}

func pad(p *plan, channel uint8) []model.NoteEvent {
	src := harmonize(p)
	out := make([]model.NoteEvent, len(src))
	for i, n := range src {
		if n.Pitch >= 12 {
			n.Pitch -= 12
		}
		n.Velocity = 50
		n.Channel = channel
		out[i] = n
	}
	return out
}

// intro arpeggiates the tonic over three octaves on the first three beats.
func intro(p *plan, channel uint8) []model.NoteEvent {
	var out []model.NoteEvent
	for i, base := range []int{48, 60, 72} {
		out = append(out, note(uint8(base+p.key.Root), 80, int64(i)*p.ticksPerBeat, p.ticksPerBeat, channel))
	}
	return out
}

// applyGenreStyle changes generated notes only. Jazz swings eighth notes to
// two thirds of a beat; rock accents notes on the beat.
func applyGenreStyle(notes []model.NoteEvent, genre model.Genre, ticksPerBeat int64) {
	switch genre {
	case model.GenreJazz:
		eighth := ticksPerBeat / 2
		swung := int64(math.Round(float64(ticksPerBeat) * 0.67))
		for i := range notes {
			if notes[i].DurationTicks == eighth {
				notes[i].DurationTicks = swung
			}
		}
	case model.GenreRock:
		for i := range notes {
			if notes[i].StartTick%ticksPerBeat == 0 {
				v := int(notes[i].Velocity) + 20
				if v > 127 {
					v = 127
				}
				notes[i].Velocity = uint8(v)
			}
		}
	}
}
