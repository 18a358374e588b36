package cmd

import (
	"fmt"

	"github.com/jsphweid/midicoach/midi"
	"github.com/jsphweid/midicoach/sample"
	"github.com/spf13/cobra"
)

var (
	excerptFrom     int64
	excerptMaxNotes int
	excerptOut      string
)

func init() {
	excerptCmd.Flags().Int64Var(&excerptFrom, "from", 0, "tick to start the excerpt at")
	excerptCmd.Flags().IntVar(&excerptMaxNotes, "max-notes", sample.DefaultMaxNotes, "notes kept per track")
	excerptCmd.Flags().StringVarP(&excerptOut, "out", "o", "", "output path (default <uuid>.mid)")
	rootCmd.AddCommand(excerptCmd)
}

var excerptCmd = &cobra.Command{
	Use:   "excerpt <file.mid>",
	Short: "Writes a short preview of a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		path := defaultOutPath(excerptOut)
		if err := midi.WriteMidiFile(path, sample.Excerpt(score, excerptFrom, excerptMaxNotes)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}
