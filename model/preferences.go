package model

import "strings"

type Goal string

const (
	GoalHarmony     Goal = "harmony"
	GoalMelody      Goal = "melody"
	GoalRhythm      Goal = "rhythm"
	GoalStructure   Goal = "structure"
	GoalArrangement Goal = "arrangement"
	GoalGenre       Goal = "genre"
)

// Goals lists every recognized goal in priority order.
var Goals = []Goal{GoalHarmony, GoalMelody, GoalRhythm, GoalStructure, GoalArrangement, GoalGenre}

func ParseGoal(s string) (Goal, bool) {
	g := Goal(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Goals {
		if g == known {
			return g, true
		}
	}
	return "", false
}

// Genre is free-form; unknown genres fall back to defaults in the theory tables.
type Genre string

const (
	GenrePop        Genre = "pop"
	GenreRock       Genre = "rock"
	GenreJazz       Genre = "jazz"
	GenreFolk       Genre = "folk"
	GenreElectronic Genre = "electronic"
	GenreBlues      Genre = "blues"
)

func ParseGenre(s string) Genre {
	return Genre(strings.ToLower(strings.TrimSpace(s)))
}

type Instrument string

const (
	InstrumentBass    Instrument = "bass"
	InstrumentDrums   Instrument = "drums"
	InstrumentChords  Instrument = "chords"
	InstrumentStrings Instrument = "strings"
	InstrumentLead    Instrument = "lead"
	InstrumentPad     Instrument = "pad"
)

var Instruments = []Instrument{InstrumentBass, InstrumentDrums, InstrumentChords, InstrumentStrings, InstrumentLead, InstrumentPad}

func ParseInstrument(s string) (Instrument, bool) {
	in := Instrument(strings.ToLower(strings.TrimSpace(s)))
	return in, in.Known()
}

func (i Instrument) Known() bool {
	for _, known := range Instruments {
		if i == known {
			return true
		}
	}
	return false
}

// Goal is the goal that has to be selected for the instrument to be generated.
func (i Instrument) Goal() Goal {
	switch i {
	case InstrumentBass:
		return GoalHarmony
	case InstrumentDrums:
		return GoalRhythm
	case InstrumentChords, InstrumentStrings:
		return GoalArrangement
	case InstrumentLead, InstrumentPad:
		return GoalMelody
	}
	return ""
}

type DurationKind string

const (
	DurationKeep           DurationKind = "keep"
	DurationExtend         DurationKind = "extend"
	DurationExtendToSecond DurationKind = "extend_to_seconds"
)

type DurationPolicy struct {
	Kind    DurationKind `json:"kind"`
	Factor  int          `json:"factor,omitempty"`
	Seconds float64      `json:"seconds,omitempty"`
}

func Keep() DurationPolicy { return DurationPolicy{Kind: DurationKeep} }

func Extend(factor int) DurationPolicy {
	return DurationPolicy{Kind: DurationExtend, Factor: factor}
}

func ExtendToSeconds(seconds float64) DurationPolicy {
	return DurationPolicy{Kind: DurationExtendToSecond, Seconds: seconds}
}

type UserPreferences struct {
	Goals       []Goal         `json:"goals"`
	TargetGenre Genre          `json:"target_genre,omitempty"`
	Instruments []Instrument   `json:"instruments,omitempty"`
	Duration    DurationPolicy `json:"duration_policy"`
	Notes       string         `json:"additional_notes,omitempty"`
	// HarmonySeed selects seeded random harmonization; nil alternates.
	HarmonySeed *int64 `json:"harmony_seed,omitempty"`
}

func (p UserPreferences) HasGoal(g Goal) bool {
	for _, have := range p.Goals {
		if have == g {
			return true
		}
	}
	return false
}

func (p UserPreferences) HasInstrument(i Instrument) bool {
	for _, have := range p.Instruments {
		if have == i {
			return true
		}
	}
	return false
}
