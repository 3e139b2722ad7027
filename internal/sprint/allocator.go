// Package sprint schedules generated tasks into fixed-length sprints.
package sprint

import (
	"fmt"
	"time"

	"github.com/ShayCichocki/visionplan/pkg/models"
)

const (
	// LengthDays is the length of every sprint, inclusive of both ends.
	LengthDays = 14
	// TasksPerSprint is the bucket size after which allocation moves on
	// to the next sprint. The last sprint takes whatever is left.
	TasksPerSprint = 5
	// DefaultSprintCount is used for unrecognized horizons.
	DefaultSprintCount = 4
)

// Clock supplies the current time. Sprint 0 starts on Clock.Now's date.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now returns f().
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// SprintCount returns how many sprints a horizon spans.
func SprintCount(h models.TimeHorizon) int {
	switch h {
	case models.HorizonMonth:
		return 2
	case models.HorizonQuarter:
		return 6
	case models.HorizonHalfYear:
		return 12
	case models.HorizonYear:
		return 24
	default:
		return DefaultSprintCount
	}
}

// Allocator builds sprint schedules.
type Allocator struct {
	clock Clock
}

// NewAllocator creates an Allocator. A nil clock means SystemClock.
func NewAllocator(clock Clock) *Allocator {
	if clock == nil {
		clock = SystemClock
	}
	return &Allocator{clock: clock}
}

// Allocate lays out SprintCount(horizon) contiguous sprints starting today
// and fills them with task IDs in order, TasksPerSprint at a time.
// Every sprint gets a goal derived from the epics its tasks belong to.
func (a *Allocator) Allocate(epics []models.Epic, tasks []models.Task, horizon models.TimeHorizon, vision string) []models.Sprint {
	count := SprintCount(horizon)
	today := models.NewDate(a.clock.Now())

	sprints := make([]models.Sprint, count)
	for i := range sprints {
		start := today.AddDays(i * LengthDays)
		sprints[i] = models.Sprint{
			ID:        fmt.Sprintf("SPRINT-%d", i+1),
			Name:      fmt.Sprintf("Sprint %d", i+1),
			StartDate: start,
			EndDate:   start.AddDays(LengthDays - 1),
			TaskIDs:   []string{},
		}
	}

	active := 0
	for _, t := range tasks {
		sprints[active].TaskIDs = append(sprints[active].TaskIDs, t.ID)
		if len(sprints[active].TaskIDs) >= TasksPerSprint && active < count-1 {
			active++
		}
	}

	epicOfTask := epicTitleIndex(epics, tasks)
	for i := range sprints {
		ids := sprints[i].TaskIDs
		sprints[i].Goal = goalFor(i, len(ids), epicsOf(ids, epicOfTask), vision)
	}

	return sprints
}

// epicTitleIndex maps task IDs to the title of the epic owning their story.
func epicTitleIndex(epics []models.Epic, tasks []models.Task) map[string]string {
	storyEpic := make(map[string]string)
	for _, e := range epics {
		for _, s := range e.Stories {
			storyEpic[s.ID] = e.Title
		}
	}

	idx := make(map[string]string, len(tasks))
	for _, t := range tasks {
		if title, ok := storyEpic[t.StoryID]; ok {
			idx[t.ID] = title
		}
	}
	return idx
}

// epicsOf returns the epic titles reachable from taskIDs, in first-seen
// order and without duplicates.
func epicsOf(taskIDs []string, epicOfTask map[string]string) []string {
	var titles []string
	seen := make(map[string]bool)
	for _, id := range taskIDs {
		title, ok := epicOfTask[id]
		if !ok || seen[title] {
			continue
		}
		seen[title] = true
		titles = append(titles, title)
	}
	return titles
}
