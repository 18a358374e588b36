package analysis

import (
	"fmt"
	"math"

	"github.com/jsphweid/midicoach/logger"
	"github.com/jsphweid/midicoach/model"
	"golang.org/x/sync/errgroup"
)

const (
	MethodAdvanced = "advanced"
	MethodBasic    = "basic"
)

// Extract derives an AnalysisResult from score. Sub-analyses that fail
// fall back to their defaults; only a score without notes is an error.
func Extract(score *model.Score) (*model.AnalysisResult, error) {
	if score == nil || score.NoteCount() == 0 {
		return nil, ErrEmptyOrUnreadable
	}

	res, err := extractAdvanced(score)
	if err != nil {
		logger.Warn("Advanced analysis unavailable, using basic", logger.Fields{"reason": err.Error()})
		return extractBasic(score), nil
	}
	return res, nil
}

func extractAdvanced(score *model.Score) (*model.AnalysisResult, error) {
	if score.TicksPerBeat == 0 {
		return nil, ReasonNoTimeBase
	}
	for i := 1; i < len(score.TempoMap); i++ {
		if score.TempoMap[i].Tick <= score.TempoMap[i-1].Tick {
			return nil, ReasonUnorderedTempoMap
		}
	}

	notes := score.AllNotes()
	pitched := Pitched(notes)
	tpb := int64(score.TicksPerBeat)
	res := &model.AnalysisResult{
		Success: true,
		Method:  MethodAdvanced,
		Basic:   basicInfo(score),
	}

	var g errgroup.Group
	g.Go(func() error {
		res.Key = safely("key", defaultKey(), func() model.KeySignature { return DetectKey(pitched) })
		return nil
	})
	g.Go(func() error {
		res.Tempo = safely("tempo", defaultTempo(), func() model.TempoInfo { return Tempo(score.TempoMap) })
		return nil
	})
	g.Go(func() error {
		res.Notes = safely("notes", defaultNotes(), func() model.NoteStatistics { return NoteStats(pitched) })
		return nil
	})
	g.Go(func() error {
		res.Chords = safely("chords", defaultChords(), func() model.ChordProgression { return Chords(pitched, tpb) })
		return nil
	})
	g.Go(func() error {
		res.Rhythm = safely("rhythm", defaultRhythm(), func() model.RhythmProfile {
			return Rhythm(notes, tpb, score.TimeSignature())
		})
		return nil
	})
	g.Go(func() error {
		res.Structure = safely("structure", defaultStructure(), func() model.StructureAnalysis {
			return Structure(score.LastTick(), tpb, score.TimeSignature())
		})
		return nil
	})
	g.Go(func() error {
		res.Melody = safely("melody", defaultMelody(), func() model.MelodicAnalysis {
			return Melody(MelodyLine(Elements(pitched)))
		})
		return nil
	})
	_ = g.Wait()

	return res, nil
}

// extractBasic never fails. It keeps the counts that need no time base and
// leaves the musical analyses at their defaults.
func extractBasic(score *model.Score) *model.AnalysisResult {
	notes := Pitched(score.AllNotes())
	tempo := defaultTempo()
	if n := len(score.TempoMap); n > 0 {
		last := score.TempoMap[n-1]
		tempo = model.TempoInfo{AverageBPM: round2(last.BPM()), TempoChanges: n - 1, Stability: stability(n - 1)}
	}
	return &model.AnalysisResult{
		Success: true,
		Method:  MethodBasic,
		Basic:   basicInfo(score),
		Key:     defaultKey(),
		Tempo:   tempo,
		Notes:   NoteStats(notes),
		Chords:  defaultChords(),
		Rhythm: model.RhythmProfile{
			TimeSignature: score.TimeSignature(),
			Complexity:    "Simple",
		},
		Structure: defaultStructure(),
		Melody:    defaultMelody(),
	}
}

func basicInfo(score *model.Score) model.BasicInfo {
	last := score.LastTick()
	return model.BasicInfo{
		Format:        score.Format,
		Tracks:        len(score.Tracks),
		TicksPerBeat:  score.TicksPerBeat,
		TotalTicks:    last,
		LengthSeconds: round2(score.Seconds(last)),
		TotalNotes:    score.NoteCount(),
	}
}

func safely[T any](name string, fallback T, fn func() T) (out T) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Sub-analysis failed, using default", logger.Fields{
				"analysis": name,
				"panic":    fmt.Sprint(r),
			})
			out = fallback
		}
	}()
	return fn()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func defaultKey() model.KeySignature {
	return model.KeySignature{Root: 0, Mode: model.ModeMajor, Confidence: 0}
}

func defaultTempo() model.TempoInfo {
	return model.TempoInfo{AverageBPM: 120, TempoChanges: 0, Stability: "Stable"}
}

func defaultNotes() model.NoteStatistics {
	return model.NoteStatistics{MostCommonPitchClasses: []int{}, MostCommonNotes: []string{}}
}

func defaultChords() model.ChordProgression {
	return model.ChordProgression{Chords: []model.ChordSymbol{}, ProgressionType: "Unknown"}
}

func defaultRhythm() model.RhythmProfile {
	return model.RhythmProfile{
		TimeSignature: model.TimeSignature{Numerator: 4, Denominator: 4},
		Complexity:    "Unknown",
	}
}

func defaultStructure() model.StructureAnalysis {
	return model.StructureAnalysis{Sections: []model.Section{}, EstimatedForm: "Unknown"}
}

func defaultMelody() model.MelodicAnalysis {
	return model.MelodicAnalysis{Contour: "Unknown", Intervals: []int{}}
}
