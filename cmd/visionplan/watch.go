package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/visionplan/internal/planner"
	"github.com/ShayCichocki/visionplan/internal/view"
	"github.com/ShayCichocki/visionplan/internal/watch"
)

var (
	watchHorizon     string
	watchOutlineFile string
	watchOut         string
	watchFormat      string
	watchDebounce    string
)

var watchCmd = &cobra.Command{
	Use:   "watch <vision-file>",
	Short: "Regenerate the plan whenever the vision file changes",
	Long: `Create a plan from a vision file, then recreate it every time the file
is saved. Stop with Ctrl+C.

The plan name is taken from defaults.plan_name.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchHorizon, "horizon", "", "Time horizon (default: defaults.horizon)")
	watchCmd.Flags().StringVar(&watchOutlineFile, "outline-file", "", "Use this outline instead of asking Claude")
	watchCmd.Flags().StringVar(&watchOut, "out", "", "Output directory (default: output.dir)")
	watchCmd.Flags().StringVar(&watchFormat, "format", "", "Output format: json or yaml (default: output.format)")
	watchCmd.Flags().StringVar(&watchDebounce, "debounce", "", "Quiet period before regenerating (default: 300ms)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	visionFile := args[0]
	out := cmd.OutOrStdout()

	debounce, err := parseDebounce(watchDebounce)
	if err != nil {
		return err
	}

	sink, err := newFileStore(cfg, watchOut, watchFormat)
	if err != nil {
		return err
	}
	source, tracker, err := newOutlineSource(cfg, watchOutlineFile)
	if err != nil {
		return err
	}
	defer logUsage(tracker)

	horizon := resolveHorizon(watchHorizon, cfg.Defaults.Horizon)
	p := planner.New(source, planner.WithLogger(logger.WithPhase("watch")), planner.WithSink(sink))
	printer := view.NewPrinter(out, noColor)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	regenerate := func() {
		data, err := os.ReadFile(visionFile)
		if err != nil {
			logger.Warn("read vision file", "path", visionFile, "error", err)
			return
		}
		req := planner.Request{
			Name:    cfg.Defaults.PlanName,
			Vision:  strings.TrimSpace(string(data)),
			Horizon: horizon,
		}
		plan, path, err := p.Create(ctx, req)
		if errors.Is(err, planner.ErrEmptyVision) {
			fmt.Fprintln(out, "Vision file is empty, waiting for changes...")
			return
		}
		if err != nil {
			logger.Error("regenerate plan", "error", err)
			return
		}
		printer.Summary(plan, path)
	}

	w, err := watch.New(visionFile, debounce, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	regenerate()
	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", w.Path())

	err = w.Run(ctx, regenerate)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// parseDebounce reads the --debounce flag; empty selects the watcher default.
func parseDebounce(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid debounce %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid debounce %q: must not be negative", s)
	}
	return d, nil
}
