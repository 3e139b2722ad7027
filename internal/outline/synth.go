package outline

import (
	"fmt"

	"github.com/ShayCichocki/visionplan/pkg/models"
)

const (
	epicPrefix  = "EPIC"
	storyPrefix = "STORY"
	taskPrefix  = "TASK"
)

// Fallback entity titles, used when an outline yields no epics.
const (
	FallbackEpicTitle  = "Initial Project Planning"
	FallbackStoryTitle = "Create initial project plan"
	FallbackTaskTitle  = "Draft initial project structure"
)

// Task labels attached to generated tasks.
const (
	LabelSetup          = "setup"
	LabelImplementation = "implementation"
	LabelTesting        = "testing"
	LabelFallback       = "fallback"
)

// idCounter hands out sequential IDs per entity prefix, starting at 1.
// It is owned by a single Parse call.
type idCounter struct {
	counts map[string]int
}

func (c *idCounter) next(prefix string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[prefix]++
	return fmt.Sprintf("%s-%d", prefix, c.counts[prefix])
}

// taskTemplate describes one of the tasks generated for every story.
type taskTemplate struct {
	titleFormat string
	description string
	estimate    models.Estimate
	label       string
}

var storyTaskTemplates = []taskTemplate{
	{
		titleFormat: "Setup for: %s",
		description: "Create scaffolding, directories, configs, and basic wiring needed for this story.",
		estimate:    models.EstimateSmall,
		label:       LabelSetup,
	},
	{
		titleFormat: "Implement: %s",
		description: "Implement the main logic to satisfy this story.",
		estimate:    models.EstimateMedium,
		label:       LabelImplementation,
	},
	{
		titleFormat: "Validate: %s",
		description: "Test and verify that all acceptance criteria are met.",
		estimate:    models.EstimateSmall,
		label:       LabelTesting,
	},
}

// synthesizeTasks attaches the setup/implement/validate tasks to every
// story and returns them flattened in creation order.
func (p *parser) synthesizeTasks() []models.Task {
	var all []models.Task
	for ei := range p.epics {
		stories := p.epics[ei].Stories
		for si := range stories {
			story := &stories[si]
			tasks := make([]models.Task, 0, len(storyTaskTemplates))
			for _, tmpl := range storyTaskTemplates {
				tasks = append(tasks, models.Task{
					ID:          p.ids.next(taskPrefix),
					StoryID:     story.ID,
					Title:       fmt.Sprintf(tmpl.titleFormat, story.Title),
					Description: tmpl.description,
					Estimate:    tmpl.estimate,
					Status:      models.StatusPlanned,
					Labels:      []string{tmpl.label},
				})
			}
			story.Tasks = tasks
			all = append(all, tasks...)
		}
	}
	return all
}

// fallback builds the single epic/story/task triple returned when nothing
// in the outline was recognized. IDs always start from 1.
func fallback() ([]models.Epic, []models.Task) {
	var ids idCounter

	epicID := ids.next(epicPrefix)
	storyID := ids.next(storyPrefix)

	task := models.Task{
		ID:          ids.next(taskPrefix),
		StoryID:     storyID,
		Title:       FallbackTaskTitle,
		Description: "Manually define epics, stories, and tasks based on the vision.",
		Estimate:    models.EstimateMedium,
		Status:      models.StatusPlanned,
		Labels:      []string{LabelFallback},
	}

	story := models.Story{
		ID:                 storyID,
		EpicID:             epicID,
		Title:              FallbackStoryTitle,
		Description:        "As a user, I want an initial project plan from my vision.",
		AcceptanceCriteria: []string{"Plan has at least one epic, story, and task."},
		Priority:           models.PriorityMedium,
		Status:             models.StatusPlanned,
		Tasks:              []models.Task{task},
	}

	epic := models.Epic{
		ID:          epicID,
		Title:       FallbackEpicTitle,
		Description: "Fallback epic generated when outline parsing fails.",
		Priority:    models.PriorityMedium,
		Status:      models.StatusPlanned,
		Stories:     []models.Story{story},
	}

	return []models.Epic{epic}, []models.Task{task}
}
