package model

import (
	"sort"
)

// NoteEvent is a single sounding note with absolute timing in ticks.
type NoteEvent struct {
	Pitch         uint8 `json:"pitch"`
	Velocity      uint8 `json:"velocity"`
	StartTick     int64 `json:"start_tick"`
	DurationTicks int64 `json:"duration_ticks"`
	Channel       uint8 `json:"channel"`
	TrackID       int   `json:"track_id"`
}

func (n NoteEvent) EndTick() int64 {
	return n.StartTick + n.DurationTicks
}

type ProgramChange struct {
	Tick    int64 `json:"tick"`
	Channel uint8 `json:"channel"`
	Program uint8 `json:"program"`
}

// TempoChange is one entry of a Score's tempo map.
type TempoChange struct {
	Tick                int64  `json:"tick"`
	MicrosecondsPerBeat uint32 `json:"microseconds_per_beat"`
}

func (t TempoChange) BPM() float64 {
	if t.MicrosecondsPerBeat == 0 {
		return 0
	}
	return 60000000 / float64(t.MicrosecondsPerBeat)
}

type TimeSignature struct {
	Tick        int64 `json:"tick"`
	Numerator   uint8 `json:"numerator"`
	Denominator uint8 `json:"denominator"`
}

// BeatsPerMeasure is the measure length counted in quarter-note beats.
func (ts TimeSignature) BeatsPerMeasure() float64 {
	if ts.Denominator == 0 {
		return float64(ts.Numerator)
	}
	return float64(ts.Numerator) * 4 / float64(ts.Denominator)
}

// Track holds the notes and instrument events of one track chunk.
type Track struct {
	Name     string          `json:"name,omitempty"`
	Notes    []NoteEvent     `json:"notes"`
	Programs []ProgramChange `json:"programs,omitempty"`
	// EndTick is the absolute tick of the end-of-track event.
	EndTick int64 `json:"end_tick"`
}

// LastTick is the later of EndTick and the end of the last sounding note.
func (t Track) LastTick() int64 {
	last := t.EndTick
	for _, n := range t.Notes {
		if n.EndTick() > last {
			last = n.EndTick()
		}
	}
	return last
}

// SortNotes orders notes by start tick, then pitch, then channel.
func (t *Track) SortNotes() {
	sort.SliceStable(t.Notes, func(i, j int) bool {
		a, b := t.Notes[i], t.Notes[j]
		if a.StartTick != b.StartTick {
			return a.StartTick < b.StartTick
		}
		if a.Pitch != b.Pitch {
			return a.Pitch < b.Pitch
		}
		return a.Channel < b.Channel
	})
}

// Score owns its tracks. TempoMap and TimeSignatures are tick ordered with at
// most one entry per tick.
type Score struct {
	Format         uint16          `json:"format"`
	TicksPerBeat   uint16          `json:"ticks_per_beat"`
	Tracks         []Track         `json:"tracks"`
	TempoMap       []TempoChange   `json:"tempo_map"`
	TimeSignatures []TimeSignature `json:"time_signatures"`
}

func (s *Score) NoteCount() int {
	var total int
	for _, t := range s.Tracks {
		total += len(t.Notes)
	}
	return total
}

// AllNotes returns every note of every track ordered by start tick.
func (s *Score) AllNotes() []NoteEvent {
	notes := make([]NoteEvent, 0, s.NoteCount())
	for _, t := range s.Tracks {
		notes = append(notes, t.Notes...)
	}
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].StartTick != notes[j].StartTick {
			return notes[i].StartTick < notes[j].StartTick
		}
		return notes[i].Pitch < notes[j].Pitch
	})
	return notes
}

func (s *Score) LastTick() int64 {
	var last int64
	for _, t := range s.Tracks {
		if lt := t.LastTick(); lt > last {
			last = lt
		}
	}
	return last
}

// TimeSignature returns the first time signature, or 4/4.
func (s *Score) TimeSignature() TimeSignature {
	if len(s.TimeSignatures) > 0 {
		return s.TimeSignatures[0]
	}
	return TimeSignature{Numerator: 4, Denominator: 4}
}

// Seconds integrates the tempo map up to tick. Ticks before the first tempo
// event run at 120 BPM.
func (s *Score) Seconds(tick int64) float64 {
	if s.TicksPerBeat == 0 {
		return 0
	}
	tpb := float64(s.TicksPerBeat)
	var (
		seconds  float64
		lastTick int64
		uspb     = float64(500000)
	)
	for _, tc := range s.TempoMap {
		if tc.Tick >= tick {
			break
		}
		seconds += float64(tc.Tick-lastTick) / tpb * uspb / 1e6
		lastTick = tc.Tick
		uspb = float64(tc.MicrosecondsPerBeat)
	}
	seconds += float64(tick-lastTick) / tpb * uspb / 1e6
	return seconds
}

// Clone returns a deep copy so callers can extend it without touching s.
func (s *Score) Clone() *Score {
	c := &Score{
		Format:         s.Format,
		TicksPerBeat:   s.TicksPerBeat,
		Tracks:         make([]Track, len(s.Tracks)),
		TempoMap:       append([]TempoChange(nil), s.TempoMap...),
		TimeSignatures: append([]TimeSignature(nil), s.TimeSignatures...),
	}
	for i, t := range s.Tracks {
		c.Tracks[i] = Track{
			Name:     t.Name,
			Notes:    append([]NoteEvent(nil), t.Notes...),
			Programs: append([]ProgramChange(nil), t.Programs...),
			EndTick:  t.EndTick,
		}
	}
	return c
}

// UsedChannels reports which MIDI channels carry notes or program changes.
func (s *Score) UsedChannels() map[uint8]bool {
	used := make(map[uint8]bool)
	for _, t := range s.Tracks {
		for _, n := range t.Notes {
			used[n.Channel] = true
		}
		for _, p := range t.Programs {
			used[p.Channel] = true
		}
	}
	return used
}

// NormalizeTempoMap orders entries by tick; a later entry at the same tick
// replaces an earlier one.
func NormalizeTempoMap(in []TempoChange) []TempoChange {
	sort.SliceStable(in, func(i, j int) bool { return in[i].Tick < in[j].Tick })
	var out []TempoChange
	for _, tc := range in {
		if n := len(out); n > 0 && out[n-1].Tick == tc.Tick {
			out[n-1] = tc
			continue
		}
		out = append(out, tc)
	}
	return out
}

func NormalizeTimeSignatures(in []TimeSignature) []TimeSignature {
	sort.SliceStable(in, func(i, j int) bool { return in[i].Tick < in[j].Tick })
	var out []TimeSignature
	for _, ts := range in {
		if n := len(out); n > 0 && out[n-1].Tick == ts.Tick {
			out[n-1] = ts
			continue
		}
		out = append(out, ts)
	}
	return out
}
