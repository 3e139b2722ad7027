// Package api provides Anthropic API access for outline generation.
package api

import (
	"context"
	"errors"
	"os"
	"regexp"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/aws/aws-sdk-go-v2/config"
)

// DefaultModel is used when ClientConfig.Model is empty.
const DefaultModel = anthropic.ModelClaudeSonnet4_20250514

// ErrMissingAPIKey is returned by NewClient when no API key is available for
// the direct API.
var ErrMissingAPIKey = errors.New("ANTHROPIC_API_KEY environment variable is not set")

// datedModel matches dated Anthropic model IDs, which have a Bedrock
// cross-region inference profile of the form us.anthropic.{model}-v1:0.
var datedModel = regexp.MustCompile(`^claude-[a-z0-9-]+-\d{8}$`)

// Client wraps the Anthropic SDK client with token tracking.
type Client struct {
	inner   anthropic.Client
	model   anthropic.Model
	tracker *TokenTracker
}

// ClientConfig contains configuration for creating a new Client.
type ClientConfig struct {
	// Model is the Claude model to use. Defaults to DefaultModel.
	Model anthropic.Model
	// APIKey is the Anthropic API key. If empty, uses ANTHROPIC_API_KEY env var.
	APIKey string
	// BaseURL overrides the API endpoint, e.g. for a proxy.
	BaseURL string
	// UseAWSBedrock sends requests through AWS Bedrock instead of the direct API.
	UseAWSBedrock bool
	// AWSRegion is the AWS region for Bedrock (e.g., "us-west-2").
	AWSRegion string
	// AWSProfile is the optional shared config profile for Bedrock.
	AWSProfile string
}

// NewClient creates a new Anthropic API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	opts, err := requestOptions(cfg)
	if err != nil {
		return nil, err
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	if cfg.UseAWSBedrock {
		model = translateModelForBedrock(model)
	}

	return &Client{
		inner:   anthropic.NewClient(opts...),
		model:   model,
		tracker: NewTokenTracker(model),
	}, nil
}

// requestOptions selects credentials for the direct API or Bedrock.
func requestOptions(cfg ClientConfig) ([]option.RequestOption, error) {
	var opts []option.RequestOption

	if cfg.UseAWSBedrock {
		var loadOpts []func(*config.LoadOptions) error
		if cfg.AWSRegion != "" {
			loadOpts = append(loadOpts, config.WithRegion(cfg.AWSRegion))
		}
		if cfg.AWSProfile != "" {
			loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.AWSProfile))
		}
		opts = append(opts, bedrock.WithLoadDefaultConfig(context.Background(), loadOpts...))
	} else {
		key := cfg.APIKey
		if key == "" {
			key = os.Getenv("ANTHROPIC_API_KEY")
		}
		if key == "" {
			return nil, ErrMissingAPIKey
		}
		opts = append(opts, option.WithAPIKey(key))
	}

	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return opts, nil
}

// translateModelForBedrock maps a dated model ID to its Bedrock inference
// profile. Anything else, including IDs that already are profiles, is
// returned unchanged.
func translateModelForBedrock(model anthropic.Model) anthropic.Model {
	if !datedModel.MatchString(string(model)) {
		return model
	}
	return anthropic.Model("us.anthropic." + string(model) + "-v1:0")
}

// messages returns the SDK's message service.
func (c *Client) messages() *anthropic.MessageService {
	return &c.inner.Messages
}

// Model returns the model requests are sent to.
func (c *Client) Model() anthropic.Model {
	return c.model
}

// Tracker returns the token tracker for this client.
func (c *Client) Tracker() *TokenTracker {
	return c.tracker
}
