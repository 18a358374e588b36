package midi

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/jsphweid/midicoach/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ReadMidiFile reads and decodes the MIDI file at path.
func ReadMidiFile(path string) (*model.Score, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading midi file")
	}
	return Decode(dat)
}

// WriteMidiFile encodes score and writes it to path.
func WriteMidiFile(path string, score *model.Score) error {
	dat, err := Encode(score)
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(path, dat, 0644), "Error writing midi file")
}

// Decode parses a format 0 or format 1 standard MIDI file. Note-ons are paired
// FIFO with the next note-off of the same channel and pitch; notes left open
// are closed at the end of their track.
func Decode(data []byte) (*model.Score, error) {
	h, err := readHeader(data)
	if err != nil {
		return nil, err
	}
	if err := checkTrackChunks(data, h); err != nil {
		return nil, err
	}

	score := &model.Score{Format: h.format, TicksPerBeat: h.ticksPerBeat}
	if h.numTracks == 0 {
		return score, nil
	}

	s, err := readSMF(data)
	if err != nil {
		return nil, err
	}

	var (
		tempos []model.TempoChange
		sigs   []model.TimeSignature
	)
	for i, events := range s.Tracks {
		t, tr, ts := decodeTrack(i, events)
		score.Tracks = append(score.Tracks, t)
		tempos = append(tempos, tr...)
		sigs = append(sigs, ts...)
	}
	score.TempoMap = model.NormalizeTempoMap(tempos)
	score.TimeSignatures = model.NormalizeTimeSignatures(sigs)
	return score, nil
}

func readSMF(data []byte) (s *smf.SMF, e error) {
	// gomidi panics on some malformed event streams
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = errors.Wrap(ErrTruncatedTrack, fmt.Sprint(r))
		}
	}()

	res, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(ErrTruncatedTrack, err.Error())
	}
	return res, nil
}

type noteKey struct {
	channel uint8
	pitch   uint8
}

type openNote struct {
	start    int64
	velocity uint8
}

func decodeTrack(id int, events smf.Track) (model.Track, []model.TempoChange, []model.TimeSignature) {
	var (
		t      model.Track
		tempos []model.TempoChange
		sigs   []model.TimeSignature
		abs    int64
		open   = make(map[noteKey][]openNote)
	)

	for _, event := range events {
		abs += int64(event.Delta)
		msg := midi.Message(event.Message)

		var channel, key, velocity, program, num, denom uint8
		var bpm float64
		var name string
		switch {
		case msg.GetNoteStart(&channel, &key, &velocity):
			k := noteKey{channel, key}
			open[k] = append(open[k], openNote{start: abs, velocity: velocity})
		case msg.GetNoteEnd(&channel, &key):
			k := noteKey{channel, key}
			queue := open[k]
			if len(queue) == 0 {
				continue
			}
			open[k] = queue[1:]
			t.Notes = append(t.Notes, closeNote(id, k, queue[0], abs))
		case msg.GetProgramChange(&channel, &program):
			t.Programs = append(t.Programs, model.ProgramChange{Tick: abs, Channel: channel, Program: program})
		case event.Message.GetMetaTempo(&bpm):
			if bpm > 0 {
				tempos = append(tempos, model.TempoChange{
					Tick:                abs,
					MicrosecondsPerBeat: uint32(math.Round(60000000 / bpm)),
				})
			}
		case event.Message.GetMetaMeter(&num, &denom):
			sigs = append(sigs, model.TimeSignature{Tick: abs, Numerator: num, Denominator: denom})
		case event.Message.GetMetaTrackName(&name):
			if t.Name == "" {
				t.Name = name
			}
		}
	}
	t.EndTick = abs

	keys := make([]noteKey, 0, len(open))
	for k := range open {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].channel != keys[j].channel {
			return keys[i].channel < keys[j].channel
		}
		return keys[i].pitch < keys[j].pitch
	})
	for _, k := range keys {
		for _, n := range open[k] {
			t.Notes = append(t.Notes, closeNote(id, k, n, abs))
		}
	}

	t.SortNotes()
	return t, tempos, sigs
}

func closeNote(trackID int, k noteKey, n openNote, end int64) model.NoteEvent {
	duration := end - n.start
	if duration < 1 {
		duration = 1
	}
	return model.NoteEvent{
		Pitch:         k.pitch,
		Velocity:      n.velocity,
		StartTick:     n.start,
		DurationTicks: duration,
		Channel:       k.channel,
		TrackID:       trackID,
	}
}
