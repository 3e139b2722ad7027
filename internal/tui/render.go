package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/visionplan/pkg/models"
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	epicStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	storyStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	goalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// renderOverview summarizes the plan and quotes its vision.
func renderOverview(plan *models.Plan) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Plan") + "\n")
	fmt.Fprintf(&b, "  ID:       %s\n", plan.ID)
	fmt.Fprintf(&b, "  Name:     %s\n", plan.Name)
	fmt.Fprintf(&b, "  Horizon:  %s\n", plan.TimeHorizon)
	fmt.Fprintf(&b, "  Created:  %s\n", plan.CreatedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "  Totals:   %d epics, %d stories, %d tasks, %d sprints\n",
		len(plan.Epics), plan.StoryCount(), len(plan.Tasks()), len(plan.Sprints))

	b.WriteString("\n" + sectionStyle.Render("Vision") + "\n")
	vision := strings.TrimSpace(plan.VisionText)
	if vision == "" {
		vision = mutedStyle.Render("(none)")
	}
	for _, line := range strings.Split(vision, "\n") {
		b.WriteString("  " + line + "\n")
	}

	return b.String()
}

// renderEpics lists every epic with its stories, criteria and tasks.
func renderEpics(plan *models.Plan) string {
	if len(plan.Epics) == 0 {
		return mutedStyle.Render("No epics.")
	}

	var b strings.Builder
	for i, epic := range plan.Epics {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s\n", epicStyle.Render(epic.Title), idStyle.Render("["+epic.ID+", "+string(epic.Priority)+"]"))
		if epic.Description != "" {
			b.WriteString("  " + mutedStyle.Render(epic.Description) + "\n")
		}

		for _, story := range epic.Stories {
			fmt.Fprintf(&b, "  %s %s\n", storyStyle.Render("• "+story.Title), idStyle.Render(story.ID))
			if story.Description != "" {
				b.WriteString("    " + story.Description + "\n")
			}
			for _, c := range story.AcceptanceCriteria {
				b.WriteString("    ✓ " + c + "\n")
			}
			for _, task := range story.Tasks {
				fmt.Fprintf(&b, "    - [%s] %s %s\n", task.Estimate, task.Title, idStyle.Render(task.ID))
			}
		}
	}
	return b.String()
}

// renderSprints lists the schedule with goals and task titles.
func renderSprints(plan *models.Plan) string {
	if len(plan.Sprints) == 0 {
		return mutedStyle.Render("No sprints.")
	}

	titles := make(map[string]string)
	for _, t := range plan.Tasks() {
		titles[t.ID] = t.Title
	}

	var b strings.Builder
	for i, s := range plan.Sprints {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s\n", sectionStyle.Render(s.Name), mutedStyle.Render(s.StartDate.String()+" → "+s.EndDate.String()))
		b.WriteString("  " + goalStyle.Render(s.Goal) + "\n")
		if len(s.TaskIDs) == 0 {
			b.WriteString("  " + mutedStyle.Render("(no tasks)") + "\n")
			continue
		}
		for _, id := range s.TaskIDs {
			fmt.Fprintf(&b, "  %s %s\n", idStyle.Render(id), titles[id])
		}
	}
	return b.String()
}
