// Package outline turns LLM-generated outline text into epics, stories and tasks.
//
// Two dialects are understood, line by line:
//
//	Epics:                          EPIC: Auth
//	1. Auth                           STORY: Login
//	   - Sign-in and sessions         STORY: Logout
//	   Stories:                     EPIC: Billing
//	   - Story: Login                 STORY: Invoice
//	     Description: ...
//	     Acceptance criteria:
//	       - user can log in
//
// Anything else is ignored. Parsing never fails: when no epic is recognized
// a single fallback epic, story and task are returned instead.
package outline

import (
	"strings"

	"github.com/ShayCichocki/visionplan/pkg/models"
)

// PlaceholderEpicTitle is the title of the epic opened implicitly when a
// tagged story appears before any epic header. Legacy stories without an
// epic are dropped.
const PlaceholderEpicTitle = "General"

// parser holds the state of a single Parse call.
type parser struct {
	ids idCounter

	epics []models.Epic
	epic  *models.Epic
	story *models.Story

	criteria        []string
	collecting      bool
	afterEpicHeader bool
}

// Parse converts outline text into epics (owning their stories and tasks)
// and the flat list of generated tasks in creation order.
func Parse(text string) ([]models.Epic, []models.Task) {
	p := &parser{}

	for _, raw := range strings.Split(text, "\n") {
		p.consume(strings.TrimSpace(raw))
	}
	p.closeEpic()

	if len(p.epics) == 0 {
		return fallback()
	}

	tasks := p.synthesizeTasks()
	return p.epics, tasks
}

// consume applies a single trimmed line to the parser state.
func (p *parser) consume(line string) {
	kind, payload := classify(line, p.state())

	switch kind {
	case kindNumberedEpic, kindTaggedEpic:
		p.openEpic(payload)
		return
	case kindEpicDescription:
		p.epic.Description = payload
	case kindLegacyStory, kindTaggedStory:
		p.openStory(payload)
	case kindStoryDescription:
		p.story.Description = payload
	case kindCriteriaHeader:
		p.collecting = true
		p.criteria = nil
	case kindCriterion:
		if payload != "" {
			p.criteria = append(p.criteria, payload)
		}
	case kindIgnored:
		if line == "" {
			return
		}
	}

	// Criteria only accumulate over an unbroken run of dash lines.
	if kind != kindCriteriaHeader && kind != kindCriterion {
		p.collecting = false
	}
	p.afterEpicHeader = false
}

func (p *parser) state() lineState {
	return lineState{
		epicOpen:        p.epic != nil,
		storyOpen:       p.story != nil,
		afterEpicHeader: p.afterEpicHeader,
		collecting:      p.collecting,
	}
}

func (p *parser) openEpic(title string) {
	p.closeEpic()
	p.epic = &models.Epic{
		ID:       p.ids.next(epicPrefix),
		Title:    title,
		Priority: models.PriorityHigh,
		Status:   models.StatusPlanned,
	}
	p.afterEpicHeader = true
}

func (p *parser) openStory(title string) {
	p.closeStory()
	if p.epic == nil {
		p.openEpic(PlaceholderEpicTitle)
	}
	p.story = &models.Story{
		ID:       p.ids.next(storyPrefix),
		EpicID:   p.epic.ID,
		Title:    title,
		Priority: models.PriorityMedium,
		Status:   models.StatusPlanned,
	}
}

// closeStory flushes pending criteria into the open story and hands the
// story to its epic.
func (p *parser) closeStory() {
	p.collecting = false
	if p.story == nil {
		p.criteria = nil
		return
	}
	p.story.AcceptanceCriteria = p.criteria
	p.criteria = nil
	p.epic.Stories = append(p.epic.Stories, *p.story)
	p.story = nil
}

func (p *parser) closeEpic() {
	p.closeStory()
	if p.epic == nil {
		return
	}
	p.epics = append(p.epics, *p.epic)
	p.epic = nil
}
