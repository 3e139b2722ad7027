package sprint

import (
	"fmt"
	"strings"
)

const (
	// maxHeadlineRunes bounds the vision excerpt quoted in the first goal.
	maxHeadlineRunes = 77
	// maxGoalEpics is how many epic titles a goal names before "and others".
	maxGoalEpics = 3

	// GenericGoal is the goal of a sprint without tasks.
	GenericGoal = "Buffer sprint: stabilization and backlog grooming."
)

// goalFor renders the goal of the sprint at index.
func goalFor(index, taskCount int, epics []string, vision string) string {
	if taskCount == 0 {
		return GenericGoal
	}

	scope := epicPhrase(epics)
	switch index {
	case 0:
		return fmt.Sprintf("Kick off \"%s\": deliver foundations for %s.", headline(vision), scope)
	case 1:
		return fmt.Sprintf("Core implementation of %s.", scope)
	case 2:
		return fmt.Sprintf("Refinement and validation of %s.", scope)
	default:
		return fmt.Sprintf("Ongoing improvements across %s.", scope)
	}
}

// epicPhrase lists up to maxGoalEpics titles, noting when more exist.
func epicPhrase(epics []string) string {
	if len(epics) == 0 {
		return "the backlog"
	}
	if len(epics) <= maxGoalEpics {
		return strings.Join(epics, ", ")
	}
	return strings.Join(epics[:maxGoalEpics], ", ") + ", and others"
}

// headline returns the first line of the vision, shortened to
// maxHeadlineRunes plus an ellipsis when longer.
func headline(vision string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(vision), "\n")
	first = strings.TrimSpace(first)
	if first == "" {
		return "the project"
	}

	runes := []rune(first)
	if len(runes) > maxHeadlineRunes {
		return string(runes[:maxHeadlineRunes]) + "..."
	}
	return first
}
