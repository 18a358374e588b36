package cmd

import (
	"github.com/jsphweid/midicoach/file"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.mid>",
	Short: "Prints the analysis of a MIDI file as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := file.ReadAll(args[0], cfg.MaxUploadBytes)
		if err != nil {
			return err
		}
		a, err := NewEngine(cfg).Analyze(cmd.Context(), data)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), a)
	},
}
