package cmd

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/jsphweid/midicoach/config"
	"github.com/jsphweid/midicoach/db"
	"github.com/jsphweid/midicoach/engine"
	"github.com/jsphweid/midicoach/logger"
	"github.com/jsphweid/midicoach/model"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewEngine builds an engine with the DynamoDB analysis cache when it is
// enabled. A cache that cannot be set up is skipped.
func NewEngine(c *config.Config) *engine.Engine {
	if !c.CacheEnabled {
		return engine.New()
	}
	cache, err := db.NewDynamoCache(c)
	if err != nil {
		logger.Warn("Analysis cache disabled", logger.Fields{"error": err.Error()})
		return engine.New()
	}
	return engine.New(engine.WithCache(cache))
}

type prefFlags struct {
	goals         []string
	genre         string
	instruments   []string
	extend        int
	extendSeconds float64
	seed          int64
	notes         string
}

func (f *prefFlags) register(cmd *cobra.Command, withSynthesis bool) {
	cmd.Flags().StringSliceVar(&f.goals, "goal", nil, "goals: harmony, melody, rhythm, structure, arrangement, genre")
	cmd.Flags().StringVar(&f.genre, "genre", "", "target genre, e.g. pop, rock, jazz")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
	if !withSynthesis {
		return
	}
	cmd.Flags().StringSliceVar(&f.instruments, "instrument", nil, "instruments: bass, drums, chords, strings, lead, pad")
	cmd.Flags().IntVar(&f.extend, "extend", 0, "tile the piece this many times")
	cmd.Flags().Float64Var(&f.extendSeconds, "extend-seconds", 0, "tile the piece until it lasts at least this many seconds")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "seed for random harmonization")
}

func (f *prefFlags) preferences(cmd *cobra.Command) (model.UserPreferences, error) {
	prefs := model.UserPreferences{
		TargetGenre: model.ParseGenre(f.genre),
		Notes:       f.notes,
		Duration:    model.Keep(),
		HarmonySeed: cfg.HarmonySeed,
	}
	for _, s := range f.goals {
		g, ok := model.ParseGoal(s)
		if !ok {
			return prefs, errors.Errorf("unknown goal %q", s)
		}
		prefs.Goals = append(prefs.Goals, g)
	}
	for _, s := range f.instruments {
		in, ok := model.ParseInstrument(s)
		if !ok {
			return prefs, errors.Errorf("unknown instrument %q", s)
		}
		prefs.Instruments = append(prefs.Instruments, in)
	}
	switch {
	case f.extend > 0 && f.extendSeconds > 0:
		return prefs, errors.New("--extend and --extend-seconds are mutually exclusive")
	case f.extend > 0:
		prefs.Duration = model.Extend(f.extend)
	case f.extendSeconds > 0:
		prefs.Duration = model.ExtendToSeconds(f.extendSeconds)
	}
	if cmd.Flags().Changed("seed") {
		seed := f.seed
		prefs.HarmonySeed = &seed
	}
	return prefs, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func defaultOutPath(out string) string {
	if out != "" {
		return out
	}
	return uuid.New().String() + ".mid"
}
