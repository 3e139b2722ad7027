package outline

import (
	"regexp"
	"strings"
)

// lineKind identifies what a single outline line means to the parser.
type lineKind int

const (
	kindIgnored lineKind = iota
	kindNumberedEpic
	kindEpicDescription
	kindLegacyStory
	kindTaggedEpic
	kindTaggedStory
	kindStoryDescription
	kindCriteriaHeader
	kindCriterion
)

func (k lineKind) String() string {
	switch k {
	case kindNumberedEpic:
		return "numbered-epic"
	case kindEpicDescription:
		return "epic-description"
	case kindLegacyStory:
		return "legacy-story"
	case kindTaggedEpic:
		return "tagged-epic"
	case kindTaggedStory:
		return "tagged-story"
	case kindStoryDescription:
		return "story-description"
	case kindCriteriaHeader:
		return "criteria-header"
	case kindCriterion:
		return "criterion"
	default:
		return "ignored"
	}
}

const (
	legacyStoryPrefix   = "- Story:"
	taggedEpicPrefix    = "EPIC:"
	taggedStoryPrefix   = "STORY:"
	descriptionPrefix   = "Description:"
	criteriaHeaderLabel = "Acceptance criteria:"
)

var numberedEpicPattern = regexp.MustCompile(`^\d+\.\s+`)

// lineState is the part of the parser state the classifiers may look at.
type lineState struct {
	epicOpen        bool
	storyOpen       bool
	afterEpicHeader bool
	collecting      bool
}

// lineRule maps a trimmed line to its payload when it matches.
type lineRule struct {
	kind  lineKind
	match func(line string, st lineState) (string, bool)
}

// rules are tried in order; the first match wins. Legacy numbered headers
// come first, then the tagged dialect, then the story body lines.
var rules = []lineRule{
	{kindNumberedEpic, matchNumberedEpic},
	{kindEpicDescription, matchEpicDescription},
	{kindLegacyStory, requireEpic(matchPrefix(legacyStoryPrefix))},
	{kindTaggedEpic, matchPrefix(taggedEpicPrefix)},
	{kindTaggedStory, matchPrefix(taggedStoryPrefix)},
	{kindStoryDescription, requireStory(matchPrefix(descriptionPrefix))},
	{kindCriteriaHeader, requireStory(matchPrefix(criteriaHeaderLabel))},
	{kindCriterion, matchCriterion},
}

// classify returns the kind and payload of a trimmed line.
func classify(line string, st lineState) (lineKind, string) {
	for _, r := range rules {
		if payload, ok := r.match(line, st); ok {
			return r.kind, payload
		}
	}
	return kindIgnored, ""
}

func matchNumberedEpic(line string, _ lineState) (string, bool) {
	if !numberedEpicPattern.MatchString(line) {
		return "", false
	}
	_, title, _ := strings.Cut(line, ".")
	return strings.TrimSpace(title), true
}

// matchEpicDescription accepts the first dash line right after an epic
// header, including one that reads like a story header.
func matchEpicDescription(line string, st lineState) (string, bool) {
	if !st.epicOpen || !st.afterEpicHeader || !strings.HasPrefix(line, "- ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimLeft(line, "- ")), true
}

func matchCriterion(line string, st lineState) (string, bool) {
	if !st.collecting || !st.storyOpen || !strings.HasPrefix(line, "-") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimLeft(line, "-")), true
}

func matchPrefix(prefix string) func(string, lineState) (string, bool) {
	return func(line string, _ lineState) (string, bool) {
		if !strings.HasPrefix(line, prefix) {
			return "", false
		}
		return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
	}
}

// requireEpic matches only while an epic is open.
func requireEpic(match func(string, lineState) (string, bool)) func(string, lineState) (string, bool) {
	return func(line string, st lineState) (string, bool) {
		if !st.epicOpen {
			return "", false
		}
		return match(line, st)
	}
}

func requireStory(match func(string, lineState) (string, bool)) func(string, lineState) (string, bool) {
	return func(line string, st lineState) (string, bool) {
		if !st.storyOpen {
			return "", false
		}
		return match(line, st)
	}
}
