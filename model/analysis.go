package model

type Mode string

const (
	ModeMajor Mode = "major"
	ModeMinor Mode = "minor"
)

type KeySignature struct {
	Root       int     `json:"root"`
	Mode       Mode    `json:"mode"`
	Confidence float64 `json:"confidence"`
}

func (k KeySignature) Name() string {
	return PitchClassName(k.Root) + " " + string(k.Mode)
}

type BasicInfo struct {
	Format        uint16  `json:"format"`
	Tracks        int     `json:"tracks"`
	TicksPerBeat  uint16  `json:"ticks_per_beat"`
	TotalTicks    int64   `json:"total_ticks"`
	LengthSeconds float64 `json:"length_seconds"`
	TotalNotes    int     `json:"total_notes"`
}

type TempoInfo struct {
	AverageBPM   float64 `json:"average_bpm"`
	TempoChanges int     `json:"tempo_changes"`
	Stability    string  `json:"tempo_stability"`
}

type NoteStatistics struct {
	TotalNotes             int      `json:"total_notes"`
	LowestPitch            uint8    `json:"lowest_pitch"`
	HighestPitch           uint8    `json:"highest_pitch"`
	MostCommonPitchClasses []int    `json:"most_common_pitch_classes"`
	MostCommonNotes        []string `json:"most_common_notes"`
	AverageVelocity        float64  `json:"average_velocity"`
}

type ChordProgression struct {
	Chords          []ChordSymbol `json:"chords"`
	TotalChords     int           `json:"total_chords"`
	ProgressionType string        `json:"progression_type"`
}

type RhythmProfile struct {
	TimeSignature   TimeSignature `json:"time_signature"`
	Complexity      string        `json:"rhythmic_complexity"`
	UniqueDurations int           `json:"unique_durations"`
}

type Section struct {
	Name         string `json:"name"`
	StartMeasure int    `json:"start_measure"`
	EndMeasure   int    `json:"end_measure"`
}

type StructureAnalysis struct {
	TotalMeasures int       `json:"total_measures"`
	Sections      []Section `json:"sections"`
	EstimatedForm string    `json:"estimated_form"`
}

// MelodyNote is one onset of the melody line.
type MelodyNote struct {
	Pitch         uint8 `json:"pitch"`
	Velocity      uint8 `json:"velocity"`
	StartTick     int64 `json:"start_tick"`
	DurationTicks int64 `json:"duration_ticks"`
}

type MelodicAnalysis struct {
	Contour         string       `json:"contour"`
	Intervals       []int        `json:"intervals"`
	Range           int          `json:"range"`
	AverageInterval float64      `json:"average_interval"`
	Line            []MelodyNote `json:"line,omitempty"`
}

// AnalysisResult is built once per Score and never mutated afterwards.
type AnalysisResult struct {
	Success   bool              `json:"success"`
	Method    string            `json:"method"`
	Basic     BasicInfo         `json:"basic_info"`
	Key       KeySignature      `json:"key_signature"`
	Tempo     TempoInfo         `json:"tempo_info"`
	Notes     NoteStatistics    `json:"notes_analysis"`
	Chords    ChordProgression  `json:"chord_progression"`
	Rhythm    RhythmProfile     `json:"rhythm_patterns"`
	Structure StructureAnalysis `json:"structure_analysis"`
	Melody    MelodicAnalysis   `json:"melodic_analysis"`
}
