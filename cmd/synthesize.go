package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/midicoach/file"
	"github.com/jsphweid/midicoach/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	synthFlags prefFlags
	synthOut   string
)

func init() {
	synthFlags.register(synthesizeCmd, true)
	synthesizeCmd.Flags().StringVarP(&synthOut, "out", "o", "", "output path (default <uuid>.mid)")
	rootCmd.AddCommand(synthesizeCmd)
}

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize <file.mid>",
	Short: "Writes a copy of a MIDI file with generated accompaniment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, err := synthFlags.preferences(cmd)
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
		out, err := e.Synthesize(cmd.Context(), data, a, prefs)
		if err != nil {
			return err
		}

		path := defaultOutPath(synthOut)
		if err := os.WriteFile(path, out, 0644); err != nil {
			return errors.Wrap(err, "Error writing midi file")
		}
		logger.Info("Synthesized", logger.Fields{"input": args[0], "output": path, "bytes": len(out)})
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}
