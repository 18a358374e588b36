package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/midicoach/analysis"
	"github.com/jsphweid/midicoach/chord"
	"github.com/jsphweid/midicoach/midi"
	"github.com/jsphweid/midicoach/model"
	"github.com/jsphweid/midicoach/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Prints the decoded contents of a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		inspect(cmd.OutOrStdout(), score)
		return nil
	},
}

func inspect(w io.Writer, score *model.Score) {
	fmt.Fprintf(w, "format: %v\n", score.Format)
	fmt.Fprintf(w, "ticks per beat: %v\n", score.TicksPerBeat)
	for i, t := range score.Tracks {
		fmt.Fprintf(w, "track %d %q: notes=%d programs=%d end=%d\n", i, t.Name, len(t.Notes), len(t.Programs), t.EndTick)
	}
	for _, tc := range score.TempoMap {
		fmt.Fprintf(w, "tempo @%d: %.2f bpm\n", tc.Tick, tc.BPM())
	}
	for _, ts := range score.TimeSignatures {
		fmt.Fprintf(w, "meter @%d: %d/%d\n", ts.Tick, ts.Numerator, ts.Denominator)
	}

	// Onset groups by sounding pitch set.
	counts := make(map[string]int)
	var notes, chords int
	for _, e := range analysis.Elements(score.AllNotes()) {
		if e.Kind == model.ChordElement {
			chords++
			counts[chord.CreateChordKey(e.Pitches)]++
		} else {
			notes++
		}
	}
	fmt.Fprintf(w, "elements: notes=%d chords=%d\n", notes, chords)
	for _, key := range util.GetKeys(counts) {
		fmt.Fprintf(w, "key: %v count: %v\n", key, counts[key])
	}
}
