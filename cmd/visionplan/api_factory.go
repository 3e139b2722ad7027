package main

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ShayCichocki/visionplan/internal/api"
	"github.com/ShayCichocki/visionplan/internal/config"
	"github.com/ShayCichocki/visionplan/internal/planner"
)

// unavailableSource reports why no outline client could be built. The
// planner treats its error like any other outline failure.
type unavailableSource struct {
	err error
}

func (u unavailableSource) Outline(context.Context, string) (string, error) {
	return "", u.err
}

// newOutlineSource returns the outline source for this run: the file given
// with --outline-file, or Claude configured from cfg.
func newOutlineSource(cfg *config.Config, outlineFile string) (planner.OutlineSource, *api.TokenTracker, error) {
	if outlineFile != "" {
		data, err := os.ReadFile(outlineFile)
		if err != nil {
			return nil, nil, fmt.Errorf("read outline file: %w", err)
		}
		return planner.StaticSource(data), nil, nil
	}

	clientCfg := api.ClientConfig{
		Model:         anthropic.Model(cfg.Anthropic.Model),
		UseAWSBedrock: cfg.Anthropic.UseBedrock,
		AWSRegion:     cfg.Anthropic.AWSRegion,
		AWSProfile:    cfg.Anthropic.AWSProfile,
	}
	if !cfg.Anthropic.UseBedrock {
		key, err := config.GetAPIKey(cfg)
		if err != nil {
			return unavailableSource{err: err}, nil, nil
		}
		if err := config.ValidateAPIKey(key); err != nil {
			logger.Warn("API key looks malformed", "source", string(config.GetAPIKeySource(cfg)), "error", err)
		}
		clientCfg.APIKey = key
	}

	client, err := api.NewClient(clientCfg)
	if err != nil {
		return unavailableSource{err: fmt.Errorf("create API client: %w", err)}, nil, nil
	}

	oc := api.NewOutlineClient(client,
		api.WithMaxTokens(cfg.Anthropic.MaxTokens),
		api.WithTemperature(cfg.Anthropic.Temperature),
		api.WithTimeout(cfg.Timeouts.Outline),
	)
	return oc, oc.Tracker(), nil
}

// logUsage reports token usage and estimated cost of the run.
func logUsage(tracker *api.TokenTracker) {
	if tracker == nil || tracker.Calls() == 0 {
		return
	}
	input, output := tracker.Total()
	logger.Info("token usage",
		"calls", tracker.Calls(),
		"input_tokens", input,
		"output_tokens", output,
		"cost_usd", fmt.Sprintf("%.4f", tracker.Cost()))
}
