package cmd

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/midicoach/engine"
	"github.com/jsphweid/midicoach/file"
	"github.com/jsphweid/midicoach/logger"
	"github.com/jsphweid/midicoach/model"
	"github.com/jsphweid/midicoach/util"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var scanMax int

func init() {
	scanCmd.Flags().IntVar(&scanMax, "max", 0, "stop after this many files (0 = all)")
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Analyzes every MIDI file under a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.MediaPath
		if len(args) == 1 {
			dir = args[0]
		}
		paths, err := util.GatherAllMidiPaths(dir, scanMax)
		if err != nil {
			return err
		}
		results := scan(cmd.Context(), NewEngine(cfg), file.CreateFileNumMap(paths), cfg.ScanWorkers)
		printScan(cmd.OutOrStdout(), results)
		return nil
	},
}

type scanResult struct {
	path     string
	analysis *model.AnalysisResult
	err      error
}

// scan analyzes each numbered file on a bounded pool of workers. A file that
// fails to analyze is reported, not fatal.
func scan(ctx context.Context, e *engine.Engine, files file.FileNumToMidiPath, workers int) []scanResult {
	results := make([]scanResult, len(files))
	var done int64
	progress := debounce.New(500 * time.Millisecond)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(util.Max(workers, 1))
	for _, num := range util.GetKeys(files) {
		num, path := num, files[num]
		g.Go(func() error {
			res := scanResult{path: path}
			data, err := file.ReadAll(path, cfg.MaxUploadBytes)
			if err == nil {
				res.analysis, err = e.Analyze(gctx, data)
			}
			res.err = err
			results[num] = res

			n := atomic.AddInt64(&done, 1)
			progress(func() {
				logger.Info("Scan progress", logger.Fields{"done": n, "total": len(files)})
			})
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func printScan(w io.Writer, results []scanResult) {
	var noteCounts []int
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", r.path, r.err)
			continue
		}
		a := r.analysis
		noteCounts = append(noteCounts, a.Basic.TotalNotes)
		fmt.Fprintf(w, "%s\t%s\t%.1f bpm\t%d measures\t%s\t%s\n",
			r.path, a.Key.Name(), a.Tempo.AverageBPM, a.Structure.TotalMeasures, a.Chords.ProgressionType, a.Method)
	}
	fmt.Fprintf(w, "%d files, %d analyzed, %d notes\n", len(results), len(noteCounts), util.Sum(noteCounts))
}
