package midi

import (
	"bytes"
	"sort"

	"github.com/jsphweid/midicoach/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// event ordering at a shared tick
const (
	rankName = iota - 1
	rankNoteOff
	rankOther
	rankNoteOn
)

type timedEvent struct {
	tick int64
	rank int
	seq  int
	msg  []byte
}

// Encode writes score as a format 1 file. Tempo and time signature events go
// to the first track. Within a tick, note-offs precede note-ons.
func Encode(score *model.Score) ([]byte, error) {
	if score == nil {
		return nil, errors.Wrap(ErrEncode, "nil score")
	}
	tpb := score.TicksPerBeat
	if tpb == 0 || tpb&0x8000 != 0 {
		return nil, errors.Wrapf(ErrEncode, "invalid ticks per beat %d", tpb)
	}
	if len(score.Tracks) == 0 {
		return emptyContainer(tpb), nil
	}
	if len(score.Tracks) > 0xFFFF {
		return nil, errors.Wrapf(ErrEncode, "%d tracks", len(score.Tracks))
	}

	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(tpb)
	for i, t := range score.Tracks {
		tr, err := encodeTrack(score, i, t)
		if err != nil {
			return nil, err
		}
		if err := s.Add(tr); err != nil {
			return nil, errors.Wrapf(ErrEncode, "adding track %d: %v", i, err)
		}
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(ErrEncode, err.Error())
	}
	return buf.Bytes(), nil
}

func encodeTrack(score *model.Score, idx int, t model.Track) (smf.Track, error) {
	var events []timedEvent
	add := func(tick int64, rank int, msg []byte) {
		events = append(events, timedEvent{tick: tick, rank: rank, seq: len(events), msg: msg})
	}

	if t.Name != "" {
		add(0, rankName, smf.MetaTrackSequenceName(t.Name))
	}
	if idx == 0 {
		for _, tc := range score.TempoMap {
			add(tc.Tick, rankOther, tempoMeta(tc.MicrosecondsPerBeat))
		}
		for _, ts := range score.TimeSignatures {
			add(ts.Tick, rankOther, smf.MetaMeter(ts.Numerator, ts.Denominator))
		}
	}
	for _, p := range t.Programs {
		add(p.Tick, rankOther, midi.ProgramChange(p.Channel&0x0F, p.Program&0x7F))
	}
	for _, n := range t.Notes {
		if n.StartTick < 0 || n.DurationTicks < 1 {
			return nil, errors.Wrapf(ErrEncode, "track %d: note %d at %d lasts %d ticks",
				idx, n.Pitch, n.StartTick, n.DurationTicks)
		}
		ch, key := n.Channel&0x0F, n.Pitch&0x7F
		add(n.StartTick, rankNoteOn, midi.NoteOn(ch, key, clampVelocity(n.Velocity)))
		add(n.EndTick(), rankNoteOff, midi.NoteOff(ch, key))
	}

	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.tick != b.tick {
			return a.tick < b.tick
		}
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		return a.seq < b.seq
	})

	var (
		tr   smf.Track
		last int64
	)
	for _, ev := range events {
		if ev.tick < 0 {
			return nil, errors.Wrapf(ErrEncode, "track %d: negative tick %d", idx, ev.tick)
		}
		tr.Add(uint32(ev.tick-last), ev.msg)
		last = ev.tick
	}
	end := t.EndTick
	if end < last {
		end = last
	}
	tr.Close(uint32(end - last))
	return tr, nil
}

// tempoMeta keeps the exact microseconds per beat instead of going through
// a BPM float.
func tempoMeta(uspb uint32) []byte {
	return []byte{0xFF, 0x51, 0x03, byte(uspb >> 16), byte(uspb >> 8), byte(uspb)}
}

// A note-on with velocity 0 would read back as a note-off.
func clampVelocity(v uint8) uint8 {
	switch {
	case v == 0:
		return 1
	case v > 127:
		return 127
	}
	return v
}
