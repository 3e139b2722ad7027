package models

// Status represents the lifecycle state of an epic, story or task.
type Status string

const (
	// StatusPlanned indicates the work item has not started.
	StatusPlanned Status = "planned"
	// StatusInProgress indicates the work item is being worked on.
	StatusInProgress Status = "in_progress"
	// StatusDone indicates the work item is complete.
	StatusDone Status = "done"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// Priority ranks epics and stories against each other.
type Priority string

const (
	// PriorityHigh marks work to schedule first.
	PriorityHigh Priority = "high"
	// PriorityMedium is the default for stories.
	PriorityMedium Priority = "medium"
	// PriorityLow marks work that can slip.
	PriorityLow Priority = "low"
)

// Valid returns true if the priority is a known value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Estimate is a t-shirt size for a task.
type Estimate string

const (
	// EstimateSmall is a task that fits in a few hours.
	EstimateSmall Estimate = "S"
	// EstimateMedium is a task that takes a day or two.
	EstimateMedium Estimate = "M"
	// EstimateLarge is a task that takes most of a sprint.
	EstimateLarge Estimate = "L"
)

// Valid returns true if the estimate is a known value.
func (e Estimate) Valid() bool {
	switch e {
	case EstimateSmall, EstimateMedium, EstimateLarge:
		return true
	default:
		return false
	}
}

// Task represents a unit of work generated for a story.
type Task struct {
	// ID is the plan-unique identifier (TASK-n).
	ID string `json:"id" yaml:"id"`
	// StoryID is the ID of the story that owns this task.
	StoryID string `json:"story_id" yaml:"story_id"`
	// Title is the short description of the task.
	Title string `json:"title" yaml:"title"`
	// Description provides detailed information about the task.
	Description string `json:"description" yaml:"description"`
	// Estimate is the size of the task.
	Estimate Estimate `json:"estimate" yaml:"estimate"`
	// Status is the current state of the task.
	Status Status `json:"status" yaml:"status"`
	// Labels classify the kind of work (setup, implementation, testing).
	Labels []string `json:"labels" yaml:"labels"`
}

// HasLabel reports whether the task carries the given label.
func (t Task) HasLabel(label string) bool {
	for _, l := range t.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Story represents a user story inside an epic.
type Story struct {
	// ID is the plan-unique identifier (STORY-n).
	ID string `json:"id" yaml:"id"`
	// EpicID is the ID of the epic that owns this story.
	EpicID string `json:"epic_id" yaml:"epic_id"`
	// Title is the short description of the story.
	Title string `json:"title" yaml:"title"`
	// Description is the one or two sentence story body.
	Description string `json:"description" yaml:"description"`
	// AcceptanceCriteria lists the conditions for the story to be done.
	AcceptanceCriteria []string `json:"acceptance_criteria" yaml:"acceptance_criteria"`
	// Priority ranks the story within its epic.
	Priority Priority `json:"priority" yaml:"priority"`
	// Status is the current state of the story.
	Status Status `json:"status" yaml:"status"`
	// Tasks are the generated tasks, in execution order.
	Tasks []Task `json:"tasks" yaml:"tasks"`
}

// Epic represents a large body of work made of stories.
type Epic struct {
	// ID is the plan-unique identifier (EPIC-n).
	ID string `json:"id" yaml:"id"`
	// Title is the short description of the epic.
	Title string `json:"title" yaml:"title"`
	// Description is the one-line epic summary.
	Description string `json:"description" yaml:"description"`
	// Priority ranks the epic within the plan.
	Priority Priority `json:"priority" yaml:"priority"`
	// Status is the current state of the epic.
	Status Status `json:"status" yaml:"status"`
	// Stories are the stories of this epic, in outline order.
	Stories []Story `json:"stories" yaml:"stories"`
}

// TaskCount returns the number of tasks across all stories of the epic.
func (e Epic) TaskCount() int {
	n := 0
	for _, s := range e.Stories {
		n += len(s.Tasks)
	}
	return n
}
