package cmd

import (
	"github.com/jsphweid/midicoach/file"
	"github.com/spf13/cobra"
)

var recommendFlags prefFlags

func init() {
	recommendFlags.register(recommendCmd, false)
	rootCmd.AddCommand(recommendCmd)
}

var recommendCmd = &cobra.Command{
	Use:   "recommend <file.mid>",
	Short: "Prints suggestions for developing a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, err := recommendFlags.preferences(cmd)
		if err != nil {
			return err
		}
		data, err := file.ReadAll(args[0], cfg.MaxUploadBytes)
		if err != nil {
			return err
		}
		e := NewEngine(cfg)
		a, err := e.Analyze(cmd.Context(), data)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), e.Recommend(a, prefs))
	},
}
