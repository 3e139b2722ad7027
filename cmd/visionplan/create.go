package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/visionplan/internal/config"
	"github.com/ShayCichocki/visionplan/internal/planner"
	"github.com/ShayCichocki/visionplan/internal/store"
	"github.com/ShayCichocki/visionplan/internal/tui"
	"github.com/ShayCichocki/visionplan/internal/view"
	"github.com/ShayCichocki/visionplan/pkg/models"
)

var (
	createName        string
	createVision      string
	createVisionFile  string
	createHorizon     string
	createOutlineFile string
	createOut         string
	createFormat      string
	createView        bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a plan from a product vision",
	Long: `Create a plan from a product vision.

Without --vision or --vision-file, prompts for a plan name and reads the
vision from the terminal until an empty line.

The outline comes from Claude unless --outline-file is given. If no outline
can be obtained, a minimal bootstrap plan is created instead.

The plan is saved to <output.dir>/plan.json (or plan.yaml with --format yaml).`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "Plan name (default: defaults.plan_name)")
	createCmd.Flags().StringVar(&createVision, "vision", "", "Vision text")
	createCmd.Flags().StringVar(&createVisionFile, "vision-file", "", "Read the vision from a file ('-' for stdin)")
	createCmd.Flags().StringVar(&createHorizon, "horizon", "", "Time horizon: month, quarter, half_year, year (default: defaults.horizon)")
	createCmd.Flags().StringVar(&createOutlineFile, "outline-file", "", "Use this outline instead of asking Claude")
	createCmd.Flags().StringVar(&createOut, "out", "", "Output directory (default: output.dir)")
	createCmd.Flags().StringVar(&createFormat, "format", "", "Output format: json or yaml (default: output.format)")
	createCmd.Flags().BoolVar(&createView, "view", false, "Open the interactive viewer after creating the plan")
}

func runCreate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	input, err := collectInput(cmd.InOrStdin(), out, cfg.Defaults.PlanName)
	if err != nil {
		return err
	}
	if strings.TrimSpace(input.Vision) == "" {
		fmt.Fprintln(out, "No vision provided. Exiting.")
		return nil
	}

	input.Horizon = resolveHorizon(createHorizon, cfg.Defaults.Horizon)
	if !input.Horizon.Valid() {
		logger.Warn("unknown time horizon, using default sprint count", "horizon", string(input.Horizon))
	}

	sink, err := newFileStore(cfg, createOut, createFormat)
	if err != nil {
		return err
	}

	source, tracker, err := newOutlineSource(cfg, createOutlineFile)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\nCreating plan...")
	p := planner.New(source, planner.WithLogger(logger), planner.WithSink(sink))
	plan, path, err := p.Create(cmd.Context(), input)
	logUsage(tracker)
	if err != nil {
		return err
	}

	printer := view.NewPrinter(out, noColor)
	printer.Summary(plan, path)
	fmt.Fprintf(out, "\nView the full plan with:\n   visionplan show %s\n", path)

	if createView {
		return tui.Run(plan)
	}
	return nil
}

// collectInput gathers the plan name and vision from flags, falling back to
// interactive prompts on in/out for whatever the flags leave open.
func collectInput(in io.Reader, out io.Writer, defaultName string) (planner.Request, error) {
	req := planner.Request{Name: createName}

	switch {
	case createVision != "":
		req.Vision = createVision
	case createVisionFile == "-":
		data, err := io.ReadAll(in)
		if err != nil {
			return req, fmt.Errorf("read vision from stdin: %w", err)
		}
		req.Vision = string(data)
	case createVisionFile != "":
		data, err := os.ReadFile(createVisionFile)
		if err != nil {
			return req, fmt.Errorf("read vision file: %w", err)
		}
		req.Vision = string(data)
	default:
		reader := bufio.NewReader(in)
		if req.Name == "" {
			name, err := promptName(reader, out, defaultName)
			if err != nil {
				return req, err
			}
			req.Name = name
		}
		vision, err := readVision(reader, out)
		if err != nil {
			return req, err
		}
		req.Vision = vision
	}

	if strings.TrimSpace(req.Name) == "" {
		req.Name = defaultName
	}
	req.Vision = strings.TrimSpace(req.Vision)
	return req, nil
}

// promptName asks for a plan name; an empty answer selects defaultName.
func promptName(r *bufio.Reader, out io.Writer, defaultName string) (string, error) {
	fmt.Fprintf(out, "Plan name (press Enter for %q): ", defaultName)
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read plan name: %w", err)
	}
	if name := strings.TrimSpace(line); name != "" {
		return name, nil
	}
	return defaultName, nil
}

// readVision reads lines until the first blank line or end of input and
// returns them joined and trimmed.
func readVision(r *bufio.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "\nEnter your project vision (finish by pressing Enter on an empty line):")

	var lines []string
	for {
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read vision: %w", err)
		}
		text := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(text) == "" {
			break
		}
		lines = append(lines, text)
		if err != nil {
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// resolveHorizon prefers the flag value over the configured default.
func resolveHorizon(flag, configured string) models.TimeHorizon {
	if flag != "" {
		return models.ParseTimeHorizon(flag)
	}
	return models.ParseTimeHorizon(configured)
}

// newFileStore builds the plan sink from config and flag overrides.
func newFileStore(cfg *config.Config, dir, format string) (*store.FileStore, error) {
	if dir == "" {
		dir = cfg.Output.Dir
	}
	if format == "" {
		format = cfg.Output.Format
	}
	f, err := store.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return store.NewFileStore(dir, f), nil
}
