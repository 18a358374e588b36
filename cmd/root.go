package cmd

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/jsphweid/midicoach/config"
	"github.com/jsphweid/midicoach/logger"
	"github.com/spf13/cobra"
)

var cfg = config.Load()

var rootCmd = &cobra.Command{
	Use:   "midicoach",
	Short: "Analyzes MIDI files and writes accompaniment for them",
	Long: `midicoach reads a standard MIDI file, extracts key, tempo, chords, rhythm,
structure and melody, suggests how to develop the piece, and can add
bass, drums, chords, strings, lead and pad tracks to it.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// a missing .env is fine
		_ = godotenv.Load()
		cfg = config.Load()
		initSentry(cfg)
	},
}

func initSentry(c *config.Config) {
	if c.SentryDSN == "" {
		return
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         c.SentryDSN,
		Environment: c.Environment,
		Debug:       !c.IsProduction(),
	})
	if err != nil {
		logger.Warn("Sentry initialization failed", logger.Fields{"error": err.Error()})
	}
}

func Execute() {
	err := rootCmd.Execute()
	sentry.Flush(2 * time.Second)
	cobra.CheckErr(err)
}
