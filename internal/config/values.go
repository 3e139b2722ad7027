package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownKey is returned for configuration keys that do not exist.
var ErrUnknownKey = errors.New("unknown configuration key")

var keys = []string{
	"anthropic.api_key",
	"anthropic.model",
	"anthropic.max_tokens",
	"anthropic.temperature",
	"anthropic.use_bedrock",
	"anthropic.aws_region",
	"anthropic.aws_profile",
	"defaults.plan_name",
	"defaults.horizon",
	"output.dir",
	"output.format",
	"timeouts.outline",
	"log.level",
	"log.file",
}

// Keys returns every configuration key in display order.
func Keys() []string {
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Get returns the display value of a dot-notation key. The API key is masked.
func (c *Config) Get(key string) (string, error) {
	key = strings.ToLower(key)
	if key == "anthropic.api_key" {
		return MaskAPIKey(c.Anthropic.APIKey), nil
	}

	raw, err := c.rawValue(key)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(raw), nil
}

// rawValue returns the stored value of key in the form written to YAML.
func (c *Config) rawValue(key string) (any, error) {
	switch key {
	case "anthropic.api_key":
		return c.Anthropic.APIKey, nil
	case "anthropic.model":
		return c.Anthropic.Model, nil
	case "anthropic.max_tokens":
		return c.Anthropic.MaxTokens, nil
	case "anthropic.temperature":
		return c.Anthropic.Temperature, nil
	case "anthropic.use_bedrock":
		return c.Anthropic.UseBedrock, nil
	case "anthropic.aws_region":
		return c.Anthropic.AWSRegion, nil
	case "anthropic.aws_profile":
		return c.Anthropic.AWSProfile, nil
	case "defaults.plan_name":
		return c.Defaults.PlanName, nil
	case "defaults.horizon":
		return c.Defaults.Horizon, nil
	case "output.dir":
		return c.Output.Dir, nil
	case "output.format":
		return c.Output.Format, nil
	case "timeouts.outline":
		return c.Timeouts.Outline.String(), nil
	case "log.level":
		return c.Log.Level, nil
	case "log.file":
		return c.Log.File, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set parses value and assigns it to the dot-notation key.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		c.Anthropic.APIKey = value
	case "anthropic.model":
		c.Anthropic.Model = value
	case "anthropic.max_tokens":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid value for anthropic.max_tokens: %q", value)
		}
		c.Anthropic.MaxTokens = n
	case "anthropic.temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 || f > 1 {
			return fmt.Errorf("invalid value for anthropic.temperature: %q", value)
		}
		c.Anthropic.Temperature = f
	case "anthropic.use_bedrock":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for anthropic.use_bedrock: %w", err)
		}
		c.Anthropic.UseBedrock = b
	case "anthropic.aws_region":
		c.Anthropic.AWSRegion = value
	case "anthropic.aws_profile":
		c.Anthropic.AWSProfile = value
	case "defaults.plan_name":
		c.Defaults.PlanName = value
	case "defaults.horizon":
		c.Defaults.Horizon = value
	case "output.dir":
		c.Output.Dir = value
	case "output.format":
		format := strings.ToLower(value)
		if format != "json" && format != "yaml" {
			return fmt.Errorf("invalid value for output.format: %q (want json or yaml)", value)
		}
		c.Output.Format = format
	case "timeouts.outline":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for timeouts.outline: %w", err)
		}
		c.Timeouts.Outline = d
	case "log.level":
		c.Log.Level = value
	case "log.file":
		c.Log.File = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}
