package models

import (
	"errors"
	"fmt"
	"time"

	"go.yaml.in/yaml/v3"
)

// DateLayout is the serialized form of a Date.
const DateLayout = "2006-01-02"

// ErrInvalidPlan is returned by Plan.Validate when the ownership or
// reference invariants of a plan do not hold.
var ErrInvalidPlan = errors.New("invalid plan")

// Date is a calendar day without a time-of-day component.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in t's location, expressed in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON overrides the promoted time.Time encoding.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON overrides the promoted time.Time decoding.
func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("parse date: expected JSON string, got %s", data)
	}
	return d.UnmarshalText(data[1 : len(data)-1])
}

// MarshalYAML implements yaml.Marshaler.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Sprint is a fixed-length time box referencing tasks by ID.
type Sprint struct {
	// ID is the sprint identifier (SPRINT-n).
	ID string `json:"id" yaml:"id"`
	// Name is the display name.
	Name string `json:"name" yaml:"name"`
	// StartDate is the first day of the sprint.
	StartDate Date `json:"start_date" yaml:"start_date"`
	// EndDate is the last day of the sprint, inclusive.
	EndDate Date `json:"end_date" yaml:"end_date"`
	// Goal summarizes what the sprint should achieve.
	Goal string `json:"goal" yaml:"goal"`
	// TaskIDs reference tasks owned by the plan's stories.
	TaskIDs []string `json:"task_ids" yaml:"task_ids"`
}

// Plan is the root of a generated project plan.
type Plan struct {
	// ID is the unique identifier for this plan.
	ID string `json:"id" yaml:"id"`
	// Name is the human-readable plan name.
	Name string `json:"name" yaml:"name"`
	// VisionText is the product vision the plan was generated from.
	VisionText string `json:"vision_text" yaml:"vision_text"`
	// TimeHorizon selects how many sprints were scheduled.
	TimeHorizon TimeHorizon `json:"time_horizon" yaml:"time_horizon"`
	// CreatedAt is when the plan was assembled.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	// Epics are the top-level work items, in outline order.
	Epics []Epic `json:"epics" yaml:"epics"`
	// Sprints are the scheduled time boxes, in calendar order.
	Sprints []Sprint `json:"sprints" yaml:"sprints"`
}

// Tasks returns every task of the plan in epic, story, task order.
func (p *Plan) Tasks() []Task {
	var tasks []Task
	for _, e := range p.Epics {
		for _, s := range e.Stories {
			tasks = append(tasks, s.Tasks...)
		}
	}
	return tasks
}

// StoryCount returns the number of stories across all epics.
func (p *Plan) StoryCount() int {
	n := 0
	for _, e := range p.Epics {
		n += len(e.Stories)
	}
	return n
}

// Validate checks the ownership and reference invariants of the plan:
// back-references match their owners, IDs are unique per entity kind,
// and every sprint task ID points at an existing task.
func (p *Plan) Validate() error {
	epicIDs := make(map[string]bool)
	storyIDs := make(map[string]bool)
	taskIDs := make(map[string]bool)

	for _, e := range p.Epics {
		if epicIDs[e.ID] {
			return fmt.Errorf("%w: duplicate epic ID %s", ErrInvalidPlan, e.ID)
		}
		epicIDs[e.ID] = true

		for _, s := range e.Stories {
			if storyIDs[s.ID] {
				return fmt.Errorf("%w: duplicate story ID %s", ErrInvalidPlan, s.ID)
			}
			storyIDs[s.ID] = true
			if s.EpicID != e.ID {
				return fmt.Errorf("%w: story %s references epic %q but belongs to %s", ErrInvalidPlan, s.ID, s.EpicID, e.ID)
			}

			for _, t := range s.Tasks {
				if taskIDs[t.ID] {
					return fmt.Errorf("%w: duplicate task ID %s", ErrInvalidPlan, t.ID)
				}
				taskIDs[t.ID] = true
				if t.StoryID != s.ID {
					return fmt.Errorf("%w: task %s references story %q but belongs to %s", ErrInvalidPlan, t.ID, t.StoryID, s.ID)
				}
			}
		}
	}

	for _, sp := range p.Sprints {
		for _, id := range sp.TaskIDs {
			if !taskIDs[id] {
				return fmt.Errorf("%w: sprint %s references unknown task %s", ErrInvalidPlan, sp.ID, id)
			}
		}
	}

	return nil
}
