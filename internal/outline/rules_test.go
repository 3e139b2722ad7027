package outline

import "testing"

func TestClassify(t *testing.T) {
	none := lineState{}
	inEpic := lineState{epicOpen: true}
	afterHeader := lineState{epicOpen: true, afterEpicHeader: true}
	inStory := lineState{epicOpen: true, storyOpen: true}
	collecting := lineState{epicOpen: true, storyOpen: true, collecting: true}

	tests := []struct {
		name        string
		line        string
		state       lineState
		wantKind    lineKind
		wantPayload string
	}{
		{"numbered epic", "1. Payments", none, kindNumberedEpic, "Payments"},
		{"multi-digit numbered epic", "12.   Search and discovery", none, kindNumberedEpic, "Search and discovery"},
		{"numbered epic wins over collecting", "3. Next", collecting, kindNumberedEpic, "Next"},
		{"number without space is not an epic", "1.Payments", none, kindIgnored, ""},
		{"version number is not an epic", "1.2 release", none, kindIgnored, ""},
		{"epic description after header", "- Handles all payments", afterHeader, kindEpicDescription, "Handles all payments"},
		{"dash line without header flag", "- Handles all payments", inEpic, kindIgnored, ""},
		{"epic description beats story header", "- Story: Checkout", afterHeader, kindEpicDescription, "Story: Checkout"},
		{"legacy story", "- Story: Checkout", inEpic, kindLegacyStory, "Checkout"},
		{"legacy story without epic", "- Story: Checkout", none, kindIgnored, ""},
		{"legacy story while collecting", "- Story: Refund", collecting, kindLegacyStory, "Refund"},
		{"tagged epic", "EPIC: Billing", none, kindTaggedEpic, "Billing"},
		{"tagged epic needs exact tag", "Epic: Billing", none, kindIgnored, ""},
		{"plural heading is not a tagged epic", "EPICS:", none, kindIgnored, ""},
		{"tagged story", "STORY:   Invoice  ", none, kindTaggedStory, "Invoice"},
		{"story description", "Description: Pay by card.", inStory, kindStoryDescription, "Pay by card."},
		{"description without story", "Description: Pay by card.", inEpic, kindIgnored, ""},
		{"criteria header", "Acceptance criteria:", inStory, kindCriteriaHeader, ""},
		{"criteria header without story", "Acceptance criteria:", inEpic, kindIgnored, ""},
		{"criterion", "- Card is charged once", collecting, kindCriterion, "Card is charged once"},
		{"criterion with double dash", "-- Receipt is emailed", collecting, kindCriterion, "Receipt is emailed"},
		{"dash line outside criteria block", "- Card is charged once", inStory, kindIgnored, ""},
		{"blank line", "", collecting, kindIgnored, ""},
		{"section heading", "Stories:", inEpic, kindIgnored, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, payload := classify(tt.line, tt.state)
			if kind != tt.wantKind {
				t.Errorf("classify(%q) kind = %s, want %s", tt.line, kind, tt.wantKind)
			}
			if payload != tt.wantPayload {
				t.Errorf("classify(%q) payload = %q, want %q", tt.line, payload, tt.wantPayload)
			}
		})
	}
}

func TestIDCounter(t *testing.T) {
	var c idCounter

	got := []string{
		c.next(epicPrefix),
		c.next(storyPrefix),
		c.next(epicPrefix),
		c.next(taskPrefix),
		c.next(storyPrefix),
	}
	want := []string{"EPIC-1", "STORY-1", "EPIC-2", "TASK-1", "STORY-2"}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("next #%d = %q, want %q", i, got[i], want[i])
		}
	}
}
