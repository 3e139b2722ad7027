// Package view renders plans as human-readable console listings.
package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ShayCichocki/visionplan/pkg/models"
)

// Printer writes plan listings to an io.Writer.
type Printer struct {
	out io.Writer

	heading *color.Color
	title   *color.Color
	label   *color.Color
	ok      *color.Color
	warn    *color.Color
}

// NewPrinter creates a Printer. With noColor set, output is plain text.
func NewPrinter(out io.Writer, noColor bool) *Printer {
	p := &Printer{
		out:     out,
		heading: color.New(color.FgCyan, color.Bold),
		title:   color.New(color.Bold),
		label:   color.New(color.Faint),
		ok:      color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.heading, p.title, p.label, p.ok, p.warn} {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return p
}

// Plan prints the full listing: plan info, every epic with its stories and
// tasks, then the sprint schedule.
func (p *Printer) Plan(plan *models.Plan) {
	p.heading.Fprintln(p.out, "\n=== PLAN INFO ===")
	p.field("", "Plan ID:  ", plan.ID)
	p.field("", "Name:     ", plan.Name)
	p.field("", "Horizon:  ", string(plan.TimeHorizon))
	p.field("", "Created:  ", plan.CreatedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintln(p.out)

	fmt.Fprintf(p.out, "Total epics:  %d\n", len(plan.Epics))
	for i, epic := range plan.Epics {
		p.epic(i+1, epic)
	}

	p.Sprints(plan.Sprints)
}

func (p *Printer) epic(n int, epic models.Epic) {
	p.title.Fprintf(p.out, "\n--- Epic %d: %s ---\n", n, epic.Title)
	p.field("", "ID:          ", epic.ID)
	p.field("", "Description: ", epic.Description)
	p.field("", "Priority:    ", string(epic.Priority))
	fmt.Fprintln(p.out)

	fmt.Fprintf(p.out, "  Stories in this epic: %d\n", len(epic.Stories))
	for i, story := range epic.Stories {
		p.story(i+1, story)
	}
}

func (p *Printer) story(n int, story models.Story) {
	fmt.Fprintf(p.out, "  [%d] Story: ", n)
	p.title.Fprintln(p.out, story.Title)
	p.field("      ", "ID:          ", story.ID)
	p.field("      ", "Description: ", story.Description)
	p.field("      ", "Priority:    ", string(story.Priority))

	if len(story.AcceptanceCriteria) > 0 {
		p.label.Fprintln(p.out, "      Acceptance criteria:")
		for _, c := range story.AcceptanceCriteria {
			fmt.Fprintf(p.out, "        - %s\n", c)
		}
	}

	fmt.Fprintf(p.out, "      Tasks (%d):\n", len(story.Tasks))
	for i, task := range story.Tasks {
		fmt.Fprintf(p.out, "        (%d) %s\n", i+1, task.Title)
		p.field("             ", "ID:       ", task.ID)
		p.field("             ", "Estimate: ", string(task.Estimate))
		p.field("             ", "Status:   ", string(task.Status))
		if len(task.Labels) > 0 {
			p.field("             ", "Labels:   ", strings.Join(task.Labels, ", "))
		}
	}
}

// Sprints prints the sprint schedule.
func (p *Printer) Sprints(sprints []models.Sprint) {
	p.heading.Fprintln(p.out, "\n=== SPRINTS ===")
	fmt.Fprintf(p.out, "Total sprints: %d\n", len(sprints))
	for i, s := range sprints {
		fmt.Fprintf(p.out, "  Sprint %d: %s (%s → %s)\n", i+1, s.Name, s.StartDate, s.EndDate)
		p.field("      ", "Goal:      ", s.Goal)
		p.field("      ", "Task IDs:  ", strings.Join(s.TaskIDs, ", "))
	}
}

// Summary prints the one-screen result of creating a plan.
func (p *Printer) Summary(plan *models.Plan, path string) {
	p.ok.Fprint(p.out, "✓ ")
	fmt.Fprintf(p.out, "Created plan %q (%s)\n", plan.Name, plan.ID)
	fmt.Fprintf(p.out, "  %d epics, %d stories, %d tasks across %d sprints\n",
		len(plan.Epics), plan.StoryCount(), len(plan.Tasks()), len(plan.Sprints))
	if path != "" {
		fmt.Fprintf(p.out, "  Saved to %s\n", path)
	}
}

// NotFound prints the hint shown when no plan exists yet.
func (p *Printer) NotFound(path string) {
	p.warn.Fprint(p.out, "✗ ")
	fmt.Fprintf(p.out, "No plan found at %s. Run `visionplan create` first to create one.\n", path)
}

func (p *Printer) field(indent, name, value string) {
	fmt.Fprint(p.out, indent)
	p.label.Fprint(p.out, name)
	fmt.Fprintln(p.out, value)
}
