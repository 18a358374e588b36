package constants

// Onset windows are ticksPerBeat / OnsetToleranceDivisor wide (1/32 beat).
const OnsetToleranceDivisor = 32

// Note durations are quantized to 1/DurationGridPerBeat of a beat before
// counting distinct values.
const DurationGridPerBeat = 24

const (
	MaxReportedChords    = 10
	MaxReportedIntervals = 10
	MostCommonNoteCount  = 5
)

const (
	DefaultBPM                 = 120
	DefaultMicrosecondsPerBeat = 500000
	DefaultTicksPerBeat        = 480
	DefaultBeatsPerMeasure     = 4
)

const MaxUploadBytes = 16 * 1024 * 1024

// General MIDI percussion channel (channel 10).
const DrumChannel = 9
