package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/visionplan/internal/store"
	"github.com/ShayCichocki/visionplan/internal/tui"
	"github.com/ShayCichocki/visionplan/internal/view"
)

var showInteractive bool

var showCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Display a saved plan",
	Long: `Display a saved plan.

path may be a plan file or a directory containing plan.json or plan.yaml.
Defaults to output.dir.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVarP(&showInteractive, "interactive", "i", false, "Browse the plan in the interactive viewer")
}

func runShow(cmd *cobra.Command, args []string) error {
	path := cfg.Output.Dir
	if len(args) == 1 {
		path = args[0]
	}

	printer := view.NewPrinter(cmd.OutOrStdout(), noColor)

	plan, err := store.Load(path)
	if errors.Is(err, store.ErrPlanNotFound) {
		printer.NotFound(path)
		return nil
	}
	if err != nil {
		return err
	}

	if showInteractive {
		return tui.Run(plan)
	}
	printer.Plan(plan)
	return nil
}
