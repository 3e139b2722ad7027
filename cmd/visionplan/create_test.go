package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ShayCichocki/visionplan/internal/config"
	"github.com/ShayCichocki/visionplan/internal/store"
	"github.com/ShayCichocki/visionplan/pkg/models"
)

// resetCreateFlags clears the package-level flag values touched by a test.
func resetCreateFlags(t *testing.T) {
	t.Helper()
	createName, createVision, createVisionFile = "", "", ""
	t.Cleanup(func() {
		createName, createVision, createVisionFile = "", "", ""
	})
}

func TestReadVision(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"stops at blank line", "Build a SaaS\nfor teams\n\nignored\n", "Build a SaaS\nfor teams"},
		{"end of input", "Only line", "Only line"},
		{"whitespace line ends input", "first\n   \nsecond\n", "first"},
		{"crlf", "one\r\ntwo\r\n\r\n", "one\ntwo"},
		{"empty", "\n", ""},
		{"nothing", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := readVision(bufio.NewReader(strings.NewReader(tt.input)), &out)
			if err != nil {
				t.Fatalf("readVision failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("readVision() = %q, want %q", got, tt.want)
			}
			if !strings.Contains(out.String(), "empty line") {
				t.Errorf("prompt not printed: %q", out.String())
			}
		})
	}
}

func TestPromptName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Roadmap\n", "Roadmap"},
		{"  Spaced  \n", "Spaced"},
		{"\n", "Default Plan"},
		{"", "Default Plan"},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got, err := promptName(bufio.NewReader(strings.NewReader(tt.input)), &out, "Default Plan")
		if err != nil {
			t.Fatalf("promptName(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("promptName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCollectInput_Interactive(t *testing.T) {
	resetCreateFlags(t)

	var out bytes.Buffer
	in := strings.NewReader("Launch\nBuild a SaaS\nwith billing\n\n")
	req, err := collectInput(in, &out, "My Project Plan")
	if err != nil {
		t.Fatalf("collectInput failed: %v", err)
	}
	if req.Name != "Launch" {
		t.Errorf("Name = %q, want Launch", req.Name)
	}
	if req.Vision != "Build a SaaS\nwith billing" {
		t.Errorf("Vision = %q", req.Vision)
	}
	if !strings.Contains(out.String(), "Plan name") {
		t.Errorf("name prompt missing: %q", out.String())
	}
}

func TestCollectInput_NameFlagSkipsPrompt(t *testing.T) {
	resetCreateFlags(t)
	createName = "From Flag"

	var out bytes.Buffer
	req, err := collectInput(strings.NewReader("vision text\n\n"), &out, "Default")
	if err != nil {
		t.Fatalf("collectInput failed: %v", err)
	}
	if req.Name != "From Flag" || req.Vision != "vision text" {
		t.Errorf("got %+v", req)
	}
	if strings.Contains(out.String(), "Plan name") {
		t.Error("name prompt shown despite --name")
	}
}

func TestCollectInput_VisionSources(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "vision.md")
	if err := os.WriteFile(file, []byte("\nFrom a file\n\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		vision     string
		visionFile string
		stdin      string
		want       string
	}{
		{"flag", "  From a flag ", "", "", "From a flag"},
		{"file", "", file, "", "From a file"},
		{"stdin", "", "-", "line one\n\nline two\n", "line one\n\nline two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetCreateFlags(t)
			createVision = tt.vision
			createVisionFile = tt.visionFile

			req, err := collectInput(strings.NewReader(tt.stdin), &bytes.Buffer{}, "Default")
			if err != nil {
				t.Fatalf("collectInput failed: %v", err)
			}
			if req.Vision != tt.want {
				t.Errorf("Vision = %q, want %q", req.Vision, tt.want)
			}
			if req.Name != "Default" {
				t.Errorf("Name = %q, want default", req.Name)
			}
		})
	}
}

func TestCollectInput_MissingFile(t *testing.T) {
	resetCreateFlags(t)
	createVisionFile = filepath.Join(t.TempDir(), "missing.md")

	if _, err := collectInput(strings.NewReader(""), &bytes.Buffer{}, "Default"); err == nil {
		t.Error("expected error for missing vision file")
	}
}

func TestResolveHorizon(t *testing.T) {
	tests := []struct {
		flag       string
		configured string
		want       models.TimeHorizon
	}{
		{"", "quarter", models.HorizonQuarter},
		{"year", "quarter", models.HorizonYear},
		{"Half-Year", "month", models.HorizonHalfYear},
		{"decade", "month", models.TimeHorizon("decade")},
	}

	for _, tt := range tests {
		if got := resolveHorizon(tt.flag, tt.configured); got != tt.want {
			t.Errorf("resolveHorizon(%q, %q) = %q, want %q", tt.flag, tt.configured, got, tt.want)
		}
	}
}

func TestNewFileStore(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = "plans"
	cfg.Output.Format = "yaml"

	s, err := newFileStore(cfg, "", "")
	if err != nil {
		t.Fatalf("newFileStore failed: %v", err)
	}
	if s.Path() != filepath.Join("plans", "plan.yaml") {
		t.Errorf("Path() = %q", s.Path())
	}

	s, err = newFileStore(cfg, "out", "json")
	if err != nil {
		t.Fatalf("newFileStore with overrides failed: %v", err)
	}
	if s.Path() != filepath.Join("out", "plan.json") || s.Format != store.FormatJSON {
		t.Errorf("overrides not applied: %q %v", s.Path(), s.Format)
	}

	if _, err := newFileStore(cfg, "", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestNewOutlineSource_OutlineFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outline.txt")
	if err := os.WriteFile(path, []byte("EPIC: Auth\nSTORY: Login"), 0644); err != nil {
		t.Fatal(err)
	}

	source, tracker, err := newOutlineSource(config.Default(), path)
	if err != nil {
		t.Fatalf("newOutlineSource failed: %v", err)
	}
	if tracker != nil {
		t.Error("static source should not have a tracker")
	}
	text, err := source.Outline(t.Context(), "ignored")
	if err != nil || text != "EPIC: Auth\nSTORY: Login" {
		t.Errorf("Outline() = %q, %v", text, err)
	}

	if _, _, err := newOutlineSource(config.Default(), path+".missing"); err == nil {
		t.Error("expected error for missing outline file")
	}
}

func TestNewOutlineSource_NoAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("VISIONPLAN_ANTHROPIC_API_KEY", "")

	source, _, err := newOutlineSource(config.Default(), "")
	if err != nil {
		t.Fatalf("newOutlineSource failed: %v", err)
	}
	if _, err := source.Outline(t.Context(), "vision"); err == nil {
		t.Error("expected outline error without an API key")
	}
}

func TestParseDebounce(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"500ms", 500 * time.Millisecond, false},
		{"2s", 2 * time.Second, false},
		{"soon", 0, true},
		{"-1s", 0, true},
	}

	for _, tt := range tests {
		got, err := parseDebounce(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDebounce(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDebounce(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
