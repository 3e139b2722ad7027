package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolateEnv clears every variable that could leak host configuration into a test.
func isolateEnv(t *testing.T) {
	t.Helper()
	clearKeyEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range Keys() {
		t.Setenv(envName(key), "")
	}
}

func envName(key string) string {
	out := []byte(envPrefix + "_")
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c == '.':
			c = '_'
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Anthropic.Model != "claude-sonnet-4-20250514" {
		t.Errorf("expected default model, got %q", cfg.Anthropic.Model)
	}
	if cfg.Anthropic.MaxTokens != 4096 {
		t.Errorf("expected max tokens 4096, got %d", cfg.Anthropic.MaxTokens)
	}
	if cfg.Anthropic.Temperature != 0.4 {
		t.Errorf("expected temperature 0.4, got %v", cfg.Anthropic.Temperature)
	}
	if cfg.Defaults.PlanName != "My Project Plan" {
		t.Errorf("expected default plan name, got %q", cfg.Defaults.PlanName)
	}
	if cfg.Defaults.Horizon != "quarter" {
		t.Errorf("expected default horizon 'quarter', got %q", cfg.Defaults.Horizon)
	}
	if cfg.Output.Dir != "data" || cfg.Output.Format != "json" {
		t.Errorf("unexpected output defaults: %+v", cfg.Output)
	}
	if cfg.Timeouts.Outline != 2*time.Minute {
		t.Errorf("expected outline timeout 2m, got %v", cfg.Timeouts.Outline)
	}
	if cfg.Log.Level != "info" || cfg.Log.File != "" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoadFromPath(t *testing.T) {
	isolateEnv(t)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, configPath, `
anthropic:
  api_key: test-key
  model: claude-3-5-haiku-20241022
  max_tokens: 2048
  use_bedrock: true
  aws_region: us-west-2
defaults:
  plan_name: Roadmap
  horizon: year
output:
  dir: plans
  format: yaml
timeouts:
  outline: 45s
log:
  level: debug
`)

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Anthropic.APIKey != "test-key" {
		t.Errorf("expected api_key 'test-key', got %q", cfg.Anthropic.APIKey)
	}
	if cfg.Anthropic.Model != "claude-3-5-haiku-20241022" {
		t.Errorf("unexpected model %q", cfg.Anthropic.Model)
	}
	if cfg.Anthropic.MaxTokens != 2048 {
		t.Errorf("expected max_tokens 2048, got %d", cfg.Anthropic.MaxTokens)
	}
	if cfg.Anthropic.Temperature != 0.4 {
		t.Errorf("expected default temperature to survive, got %v", cfg.Anthropic.Temperature)
	}
	if !cfg.Anthropic.UseBedrock || cfg.Anthropic.AWSRegion != "us-west-2" {
		t.Errorf("unexpected bedrock settings: %+v", cfg.Anthropic)
	}
	if cfg.Defaults.PlanName != "Roadmap" || cfg.Defaults.Horizon != "year" {
		t.Errorf("unexpected defaults: %+v", cfg.Defaults)
	}
	if cfg.Output.Dir != "plans" || cfg.Output.Format != "yaml" {
		t.Errorf("unexpected output: %+v", cfg.Output)
	}
	if cfg.Timeouts.Outline != 45*time.Second {
		t.Errorf("expected outline timeout 45s, got %v", cfg.Timeouts.Outline)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.Log.Level)
	}
}

func TestLoadFromPath_Missing(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_Precedence(t *testing.T) {
	isolateEnv(t)
	xdg := os.Getenv("XDG_CONFIG_HOME")

	writeFile(t, filepath.Join(xdg, "visionplan", "config.yaml"), `
defaults:
  plan_name: From User
  horizon: month
output:
  dir: user-dir
`)

	project := t.TempDir()
	writeFile(t, filepath.Join(project, projectConfigName), `
defaults:
  horizon: half_year
`)
	nested := filepath.Join(project, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(nested)

	t.Setenv("VISIONPLAN_OUTPUT_DIR", "env-dir")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Defaults.PlanName != "From User" {
		t.Errorf("user config not applied: plan name %q", cfg.Defaults.PlanName)
	}
	if cfg.Defaults.Horizon != "half_year" {
		t.Errorf("project config should override user config: horizon %q", cfg.Defaults.Horizon)
	}
	if cfg.Output.Dir != "env-dir" {
		t.Errorf("environment should override files: output dir %q", cfg.Output.Dir)
	}
	if cfg.Anthropic.APIKey != "sk-ant-from-env" {
		t.Errorf("ANTHROPIC_API_KEY not bound: %q", cfg.Anthropic.APIKey)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("defaults should fill the rest: format %q", cfg.Output.Format)
	}
}

func TestLoad_NoFiles(t *testing.T) {
	isolateEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load without files = %+v, want defaults", cfg)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	isolateEnv(t)

	cfg := Default()
	cfg.Anthropic.APIKey = "${MY_KEY}"
	cfg.Defaults.Horizon = "year"
	cfg.Timeouts.Outline = 90 * time.Second

	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path := GetUserConfigPath()
	t.Setenv("MY_KEY", "sk-ant-expanded-key-value")
	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if loaded.Anthropic.APIKey != "sk-ant-expanded-key-value" {
		t.Errorf("api key reference not expanded: %q", loaded.Anthropic.APIKey)
	}
	if loaded.Defaults.Horizon != "year" {
		t.Errorf("horizon = %q, want year", loaded.Defaults.Horizon)
	}
	if loaded.Timeouts.Outline != 90*time.Second {
		t.Errorf("outline timeout = %v, want 90s", loaded.Timeouts.Outline)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "expanded-value")

	if result := expandEnv("${TEST_VAR}"); result != "expanded-value" {
		t.Errorf("expected 'expanded-value', got %q", result)
	}
	if result := expandEnv("prefix-${TEST_VAR}-suffix"); result != "prefix-expanded-value-suffix" {
		t.Errorf("expected 'prefix-expanded-value-suffix', got %q", result)
	}
}

func TestGetUserConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	if dir := getUserConfigDir(); dir != "/custom/config/visionplan" {
		t.Errorf("expected %q, got %q", "/custom/config/visionplan", dir)
	}
}

func TestGetAndSet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		want    string
		wantErr bool
	}{
		{"anthropic.model", "claude-x", "claude-x", false},
		{"anthropic.max_tokens", "1024", "1024", false},
		{"anthropic.max_tokens", "zero", "", true},
		{"anthropic.max_tokens", "-5", "", true},
		{"anthropic.temperature", "0.7", "0.7", false},
		{"anthropic.temperature", "2", "", true},
		{"anthropic.use_bedrock", "true", "true", false},
		{"anthropic.use_bedrock", "maybe", "", true},
		{"defaults.horizon", "month", "month", false},
		{"output.format", "YAML", "yaml", false},
		{"output.format", "xml", "", true},
		{"timeouts.outline", "30s", "30s", false},
		{"timeouts.outline", "soon", "", true},
		{"Log.Level", "debug", "debug", false},
		{"anthropic.api_key", "sk-ant-REDACTED", "sk-ant-...wxyz", false},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := Default()
			err := cfg.Set(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestUnknownKey(t *testing.T) {
	cfg := Default()

	if _, err := cfg.Get("nope.key"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Get unknown key error = %v, want ErrUnknownKey", err)
	}
	if err := cfg.Set("nope.key", "x"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Set unknown key error = %v, want ErrUnknownKey", err)
	}
}

func TestKeysAreReadable(t *testing.T) {
	cfg := Default()
	for _, key := range Keys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) failed: %v", key, err)
		}
	}
}
