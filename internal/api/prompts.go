package api

import (
	"fmt"
	"strings"
)

// OutlineSystemPrompt frames the model as the planner.
const OutlineSystemPrompt = "You are a senior product manager. " +
	"Given a product vision, you design a clear project structure with epics " +
	"and user stories in a consistent outline format."

const outlineFormat = `Return an outline in EXACTLY this style:

Epics:
1. <Epic title>
   - <One-line epic description>
   Stories:
   - Story: <Story title>
     Description: <one or two sentences>
     Acceptance criteria:
       - <criterion 1>
       - <criterion 2>
       - <criterion 3>

2. <Next epic title>
   - <One-line epic description>
   Stories:
   - Story: <Story title>
     Description: <one or two sentences>
     Acceptance criteria:
       - <criterion 1>
       - <criterion 2>

Rules:
- Include 3-7 epics.
- Each epic must have at least 1 story.
- Each story must have at least 2 acceptance criteria.
- Use exactly these headings: 'Epics:', 'Stories:', 'Story:', 'Description:', 'Acceptance criteria:'.
- Use '-' bullet points for acceptance criteria.
- Do NOT use JSON.
- Do NOT add explanations before or after the outline.`

// BuildOutlinePrompt returns the user prompt asking for an outline of vision.
func BuildOutlinePrompt(vision string) string {
	return fmt.Sprintf("VISION:\n\"\"\"%s\"\"\"\n\n%s\n", strings.TrimSpace(vision), outlineFormat)
}
