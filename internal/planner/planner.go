// Package planner turns a product vision into a complete plan: it obtains an
// outline, parses it into epics and tasks, schedules sprints and assembles
// the result.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ShayCichocki/visionplan/internal/logging"
	"github.com/ShayCichocki/visionplan/internal/outline"
	"github.com/ShayCichocki/visionplan/internal/sprint"
	"github.com/ShayCichocki/visionplan/pkg/models"
)

// FallbackOutline is used in place of an outline that could not be obtained.
const FallbackOutline = "Epics:\n1. Initial Project Planning"

// DefaultPlanName names plans created without a name.
const DefaultPlanName = "My Project Plan"

// ErrEmptyVision is returned when there is no vision to plan from.
var ErrEmptyVision = errors.New("vision text is empty")

// OutlineSource produces outline text for a vision.
type OutlineSource interface {
	Outline(ctx context.Context, vision string) (string, error)
}

// PlanSink persists a finished plan and reports where it went.
type PlanSink interface {
	Save(plan *models.Plan) (string, error)
}

// StaticSource is an OutlineSource that always returns the same text.
type StaticSource string

// Outline returns s.
func (s StaticSource) Outline(context.Context, string) (string, error) {
	return string(s), nil
}

// Request describes the plan to create.
type Request struct {
	Name    string
	Vision  string
	Horizon models.TimeHorizon
}

// Planner builds plans from visions.
type Planner struct {
	source OutlineSource
	sink   PlanSink
	clock  sprint.Clock
	newID  func() string
	logger *logging.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithClock sets the clock used for CreatedAt and sprint dates.
func WithClock(c sprint.Clock) Option {
	return func(p *Planner) { p.clock = c }
}

// WithIDGenerator sets the function producing plan IDs.
func WithIDGenerator(fn func() string) Option {
	return func(p *Planner) { p.newID = fn }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(p *Planner) { p.logger = l }
}

// WithSink makes Create persist every plan it builds.
func WithSink(s PlanSink) Option {
	return func(p *Planner) { p.sink = s }
}

// New creates a Planner reading outlines from source.
func New(source OutlineSource, opts ...Option) *Planner {
	p := &Planner{
		source: source,
		clock:  sprint.SystemClock,
		newID:  uuid.NewString,
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Create obtains an outline for req.Vision and builds a plan from it.
// A failing outline source does not fail Create: the failure is logged and
// FallbackOutline is used instead. When a sink is configured the plan is
// saved and the returned path is non-empty.
func (p *Planner) Create(ctx context.Context, req Request) (*models.Plan, string, error) {
	if strings.TrimSpace(req.Vision) == "" {
		return nil, "", ErrEmptyVision
	}

	log := p.logger.WithPhase("outline")
	text, err := p.source.Outline(ctx, req.Vision)
	if err != nil {
		log.Warn("outline unavailable, using fallback", "error", err)
		text = FallbackOutline
	} else {
		log.Info("outline received", "bytes", len(text))
	}

	plan := p.Build(req, text)

	if p.sink == nil {
		return plan, "", nil
	}

	path, err := p.sink.Save(plan)
	if err != nil {
		return plan, "", fmt.Errorf("save plan: %w", err)
	}
	p.logger.WithPlan(plan.ID).WithPhase("save").Info("plan saved", "path", path)
	return plan, path, nil
}

// Build assembles a plan from already obtained outline text.
func (p *Planner) Build(req Request, outlineText string) *models.Plan {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = DefaultPlanName
	}

	plan := &models.Plan{
		ID:          p.newID(),
		Name:        name,
		VisionText:  req.Vision,
		TimeHorizon: req.Horizon,
		CreatedAt:   p.clock.Now().UTC(),
	}
	log := p.logger.WithPlan(plan.ID)

	epics, tasks := outline.Parse(outlineText)
	plan.Epics = epics
	if len(tasks) == 1 && tasks[0].HasLabel(outline.LabelFallback) {
		log.WithPhase("parse").Warn("outline contained no epics, using fallback plan")
	}
	log.WithPhase("parse").Info("outline parsed",
		"epics", len(epics), "stories", plan.StoryCount(), "tasks", len(tasks))

	plan.Sprints = sprint.NewAllocator(p.clock).Allocate(epics, tasks, req.Horizon, req.Vision)
	log.WithPhase("allocate").Info("sprints allocated",
		"horizon", string(req.Horizon), "sprints", len(plan.Sprints))

	return plan
}
