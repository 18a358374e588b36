package theory

import (
	"strings"

	"github.com/jsphweid/midicoach/model"
)

// Numeral is a Roman-numeral scale degree. Case follows the major-key
// quality; in a minor key the chord takes the minor-scale quality.
type Numeral string

var numeralDegrees = map[Numeral]int{
	"I": 0, "ii": 1, "iii": 2, "IV": 3, "V": 4, "vi": 5, "vii°": 6,
}

func (n Numeral) Degree() int {
	return numeralDegrees[n]
}

// Chord resolves the numeral in the given key.
func (n Numeral) Chord(key model.KeySignature) model.ChordSymbol {
	d := n.Degree()
	return model.ChordSymbol{
		Root:    ScaleNotes(key.Root, key.Mode)[d],
		Quality: ChordQualityAtDegree(d, key.Mode),
	}
}

var defaultProgression = []Numeral{"I", "vi", "IV", "V"}

var genreProgressions = map[model.Genre][]Numeral{
	model.GenrePop:        {"I", "V", "vi", "IV"},
	model.GenreRock:       {"I", "IV", "V", "I"},
	model.GenreJazz:       {"ii", "V", "I", "vi"},
	model.GenreFolk:       {"I", "IV", "I", "V"},
	model.GenreElectronic: {"vi", "IV", "I", "V"},
	model.GenreBlues:      {"I", "I", "I", "I", "IV", "IV", "I", "I", "V", "IV", "I", "V"},
}

// GenreProgression returns a copy of the genre's progression template, or
// I-vi-IV-V for unknown genres.
func GenreProgression(genre model.Genre) []Numeral {
	p, ok := genreProgressions[genre]
	if !ok {
		p = defaultProgression
	}
	return append([]Numeral(nil), p...)
}

type DrumVoice string

const (
	Kick    DrumVoice = "kick"
	Snare   DrumVoice = "snare"
	HiHat   DrumVoice = "hihat"
	OpenHat DrumVoice = "openhat"
	Ride    DrumVoice = "ride"
	Clap    DrumVoice = "clap"
)

var drumNotes = map[DrumVoice]uint8{
	Kick: 36, Snare: 38, Clap: 39, HiHat: 42, OpenHat: 46, Ride: 51,
}

// Note is the General MIDI percussion key of the voice.
func (v DrumVoice) Note() uint8 {
	if n, ok := drumNotes[v]; ok {
		return n
	}
	return drumNotes[Snare]
}

// Hit is one drum strike, Beat counted in quarter notes from the bar start.
type Hit struct {
	Beat  float64
	Voice DrumVoice
}

var basicBeat = []Hit{{0, Kick}, {1, Snare}, {2, Kick}, {3, Snare}}

var genreBeats = map[model.Genre][]Hit{
	model.GenreRock: {
		{0, Kick}, {0.5, HiHat}, {1, Snare}, {1.5, HiHat},
		{2, Kick}, {2.5, HiHat}, {3, Snare}, {3.5, HiHat},
	},
	model.GenreJazz: {
		{0, Kick}, {0.67, HiHat}, {1.33, Snare}, {2, Kick}, {2.67, HiHat}, {3.33, Snare},
	},
	model.GenrePop: {{0, Kick}, {1, Snare}, {2, Kick}, {2.5, Kick}, {3, Snare}},
	model.GenreElectronic: {
		{0, Kick}, {0.5, OpenHat}, {1, Kick}, {1, Clap}, {1.5, OpenHat},
		{2, Kick}, {2.5, OpenHat}, {3, Kick}, {3, Clap}, {3.5, OpenHat},
	},
	model.GenreBlues: {
		{0, Kick}, {0, Ride}, {0.67, Ride}, {1, Snare}, {1, Ride}, {1.67, Ride},
		{2, Kick}, {2, Ride}, {2.67, Ride}, {3, Snare}, {3, Ride}, {3.67, Ride},
	},
}

// GenreRhythmTemplate returns one bar of hits for the genre. Unknown genres
// get kick and snare alternating on the four beats.
func GenreRhythmTemplate(genre model.Genre) []Hit {
	p, ok := genreBeats[genre]
	if !ok {
		p = basicBeat
	}
	return append([]Hit(nil), p...)
}

type Tip struct {
	Title       string
	Description string
}

var genreTips = map[model.Genre][]Tip{
	model.GenrePop: {
		{"Pop Hook Development", "Focus on memorable melodic hooks and simple chord progressions like vi-IV-I-V."},
		{"Verse-Chorus Contrast", "Create clear distinction between verse (lower energy) and chorus (higher energy)."},
	},
	model.GenreRock: {
		{"Power Chord Usage", "Use power chords (root and fifth) for driving rhythm sections."},
		{"Guitar-Driven Arrangement", "Layer multiple guitar parts: rhythm, lead, and bass lines."},
	},
	model.GenreJazz: {
		{"Extended Chords", "Use 7th, 9th, 11th chords for sophisticated harmony."},
		{"Swing Rhythm", "Apply swing feel to eighth notes for authentic jazz groove."},
	},
	model.GenreElectronic: {
		{"Build-ups and Drops", "Create tension with build-ups leading to energetic drops."},
		{"Synth Layering", "Layer synthesizers for rich, full electronic textures."},
	},
	model.GenreFolk: {
		{"Acoustic Simplicity", "Keep the harmony close to I, IV and V and let the lyric carry the song."},
		{"Strophic Form", "Repeat a single verse melody across stanzas and vary the accompaniment instead."},
	},
	model.GenreBlues: {
		{"Twelve-Bar Form", "Build the harmony on the I-IV-V twelve-bar pattern."},
		{"Blue Notes", "Bend the third and seventh of the scale toward the flat side for expressive color."},
	},
}

// GenreTips returns the fixed tips for genre; unknown genres have none.
func GenreTips(genre model.Genre) []Tip {
	return append([]Tip(nil), genreTips[genre]...)
}

// Title is the display form of a genre name, e.g. "Jazz".
func Title(genre model.Genre) string {
	s := string(genre)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
