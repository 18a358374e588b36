package model

type Notes = []uint8

var NoteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchClassName names a pitch class using sharps.
func PitchClassName(pc int) string {
	return NoteNames[((pc%12)+12)%12]
}

type ChordQuality string

const (
	Major      ChordQuality = "major"
	Minor      ChordQuality = "minor"
	Diminished ChordQuality = "diminished"
	Augmented  ChordQuality = "augmented"
	Other      ChordQuality = "other"
)

type ChordSymbol struct {
	Root      int          `json:"root"`
	Quality   ChordQuality `json:"quality"`
	OnsetTick int64        `json:"onset_tick"`
}

// Name is e.g. "A minor".
func (c ChordSymbol) Name() string {
	return PitchClassName(c.Root) + " " + string(c.Quality)
}

type ElementKind int

const (
	NoteElement ElementKind = iota
	ChordElement
)

// MusicalElement is either a single note or a group of notes sharing an
// onset. Kind says which; Pitches has one entry for a note.
type MusicalElement struct {
	Kind          ElementKind
	Pitches       Notes
	Velocity      uint8
	StartTick     int64
	DurationTicks int64
}

func NewNote(pitch, velocity uint8, start, duration int64) MusicalElement {
	return MusicalElement{Kind: NoteElement, Pitches: Notes{pitch}, Velocity: velocity, StartTick: start, DurationTicks: duration}
}

func NewChord(pitches Notes, velocity uint8, start, duration int64) MusicalElement {
	return MusicalElement{Kind: ChordElement, Pitches: pitches, Velocity: velocity, StartTick: start, DurationTicks: duration}
}

// Highest is the top sounding pitch of the element.
func (e MusicalElement) Highest() uint8 {
	var top uint8
	for _, p := range e.Pitches {
		if p > top {
			top = p
		}
	}
	return top
}
