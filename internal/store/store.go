// Package store persists plans as JSON or YAML files.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/ShayCichocki/visionplan/pkg/models"
)

// ErrPlanNotFound is returned when no plan file exists at the given location.
var ErrPlanNotFound = errors.New("plan not found")

// Format is a plan file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// planBaseName is the file name, without extension, plans are saved under.
const planBaseName = "plan"

// ParseFormat maps a format name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported plan format %q (want json or yaml)", s)
	}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// FileStore writes plans to Dir/plan.<ext>.
type FileStore struct {
	Dir    string
	Format Format
}

// NewFileStore creates a FileStore. An empty format means JSON.
func NewFileStore(dir string, format Format) *FileStore {
	if format == "" {
		format = FormatJSON
	}
	return &FileStore{Dir: dir, Format: format}
}

// Path returns the file the store saves to.
func (s *FileStore) Path() string {
	return filepath.Join(s.Dir, planBaseName+s.Format.Ext())
}

// Save encodes plan and writes it, creating the directory if needed.
// It returns the path written.
func (s *FileStore) Save(plan *models.Plan) (string, error) {
	data, err := Encode(plan, s.Format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("create plan directory: %w", err)
	}

	path := s.Path()
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write plan %s: %w", path, err)
	}
	return path, nil
}

// Encode serializes plan in the given format. JSON is indented by two spaces.
func Encode(plan *models.Plan, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(plan)
		if err != nil {
			return nil, fmt.Errorf("encode plan as yaml: %w", err)
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode plan as json: %w", err)
		}
		return append(data, '\n'), nil
	}
}

// Decode parses data in the given format and validates the result.
func Decode(data []byte, format Format) (*models.Plan, error) {
	var plan models.Plan
	var err error
	if format == FormatYAML {
		err = yaml.Unmarshal(data, &plan)
	} else {
		err = json.Unmarshal(data, &plan)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s plan: %w", format, err)
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Load reads a plan from path. A directory is searched for plan.json and
// then plan.yaml. The format of a file is taken from its extension.
func Load(path string) (*models.Plan, error) {
	file, err := resolve(path)
	if err != nil {
		return nil, err
	}

	format, err := ParseFormat(filepath.Ext(file))
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read plan %s: %w", file, err)
	}

	plan, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", file, err)
	}
	return plan, nil
}

func resolve(path string) (string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w at %s", ErrPlanNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}

	for _, f := range []Format{FormatJSON, FormatYAML} {
		candidate := filepath.Join(path, planBaseName+f.Ext())
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrPlanNotFound, path)
}
