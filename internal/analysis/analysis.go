// Package analysis runs the resume versus job description checks as a sequence of steps.
package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/predictor"
)

// Step represents a single analysis step.
type Step interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(deps Deps) error
	Apply(ctx context.Context, deps Deps, in Input, res *Result) error
}

// TitlePredictor classifies resume text into a job title.
type TitlePredictor interface {
	Classify(ctx context.Context, text string) (*predictor.Prediction, error)
}

// Deps aggregates dependencies shared across all steps.
type Deps struct {
	Logger    *zap.Logger
	Predictor TitlePredictor
	Advisor   ai.Advisor
}

// Input is the pair of documents being compared.
type Input struct {
	ResumeText     string
	JobDescription string
}

// Result collects the output of every step that ran.
type Result struct {
	Skills    *matching.SkillMatch    `json:"skills,omitempty" yaml:"skills,omitempty"`
	Sections  *matching.SectionReport `json:"sections,omitempty" yaml:"sections,omitempty"`
	Title     *predictor.Prediction   `json:"title,omitempty" yaml:"title,omitempty"`
	TitleNote string                  `json:"title_note,omitempty" yaml:"title_note,omitempty"`
	Feedback  []string                `json:"feedback,omitempty" yaml:"feedback,omitempty"`
	Advice    *ai.Advice              `json:"advice,omitempty" yaml:"advice,omitempty"`
	Statuses  []Status                `json:"steps" yaml:"steps"`
}

// PredictedTitle returns the predicted label or an empty string.
func (r *Result) PredictedTitle() string {
	if r == nil || r.Title == nil {
		return ""
	}
	return r.Title.Label
}

// Status represents runtime information about a step.
type Status struct {
	Name    string            `json:"name" yaml:"name"`
	Enabled bool              `json:"enabled" yaml:"enabled"`
	Reason  string            `json:"reason,omitempty" yaml:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty" yaml:"details,omitempty"`
}

func (s Status) String() string {
	if s.Enabled {
		return s.Name + ": enabled"
	}
	if s.Reason != "" {
		return s.Name + ": disabled (" + s.Reason + ")"
	}
	return s.Name + ": disabled"
}

// statusProvider is implemented by steps that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// DisableByName marks a step with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Step, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates the enabled steps and executes them sequentially.
func Run(ctx context.Context, deps Deps, steps []Step, in Input) (*Result, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(deps); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	res := &Result{}
	for _, step := range steps {
		if !step.IsEnabled() {
			deps.Logger.Info("analysis step disabled", zap.String("name", step.Name()))
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := step.Apply(ctx, deps, in, res); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
		deps.Logger.Debug("analysis step", zap.String("name", step.Name()))
	}

	res.Statuses = Describe(steps)
	return res, nil
}

// Describe returns status entries for the provided steps.
func Describe(steps []Step) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		st := Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		}
		if r, ok := step.(interface{ Reason() string }); ok {
			st.Reason = r.Reason()
		}
		statuses = append(statuses, st)
	}
	return statuses
}
