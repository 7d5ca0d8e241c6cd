package analysis

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/feedback"
	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/predictor"
)

const (
	StepSkills   = "skills"
	StepSections = "sections"
	StepTitle    = "title"
	StepFeedback = "feedback"
	StepAIAdvice = "ai_advice"

	// NoteModelNotTrained is recorded when no job title model has been trained yet.
	NoteModelNotTrained = "model not trained yet"
)

// DefaultSteps returns every step in execution order. The AI step starts disabled unless aiEnabled.
func DefaultSteps(aiEnabled bool) []Step {
	advice := NewAIAdvice()
	if !aiEnabled {
		advice.Disable("ai is disabled in configuration")
	}

	return []Step{
		NewSkills(),
		NewSections(),
		NewTitle(),
		NewFeedback(),
		advice,
	}
}

// toggle carries the enabled state shared by all steps.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func (t *toggle) Reason() string { return t.reason }

type skillsStep struct {
	toggle
}

// NewSkills creates the keyword overlap step.
func NewSkills() Step { return &skillsStep{} }

func (s *skillsStep) Name() string { return StepSkills }

func (s *skillsStep) Validate(Deps) error { return nil }

func (s *skillsStep) Apply(_ context.Context, deps Deps, in Input, res *Result) error {
	match := matching.MatchSkills(in.ResumeText, in.JobDescription)
	res.Skills = &match

	deps.Logger.Info("skills matched",
		zap.Float64("score", match.Score),
		zap.Int("matched", len(match.Matched)),
		zap.Int("jd_keywords", len(match.JDKeywords)),
	)
	return nil
}

type sectionsStep struct {
	toggle
}

// NewSections creates the resume structure step.
func NewSections() Step { return &sectionsStep{} }

func (s *sectionsStep) Name() string { return StepSections }

func (s *sectionsStep) Validate(Deps) error { return nil }

func (s *sectionsStep) Apply(_ context.Context, deps Deps, in Input, res *Result) error {
	report := matching.CheckSections(in.ResumeText)
	res.Sections = &report

	deps.Logger.Info("sections checked",
		zap.Int("score", report.Score),
		zap.Strings("missing", report.Missing),
	)
	return nil
}

type titleStep struct {
	toggle
	note string
}

// NewTitle creates the job title prediction step.
func NewTitle() Step { return &titleStep{} }

func (s *titleStep) Name() string { return StepTitle }

func (s *titleStep) Validate(deps Deps) error {
	if deps.Predictor == nil {
		return errors.New("job title predictor is not configured")
	}
	return nil
}

func (s *titleStep) Apply(ctx context.Context, deps Deps, in Input, res *Result) error {
	prediction, err := deps.Predictor.Classify(ctx, in.ResumeText)
	if errors.Is(err, predictor.ErrModelNotTrained) {
		deps.Logger.Warn("job title model is not trained yet, skipping prediction", zap.Error(err))
		s.note = NoteModelNotTrained
		res.TitleNote = NoteModelNotTrained
		return nil
	}
	if err != nil {
		return err
	}

	res.Title = prediction
	deps.Logger.Info("job title predicted",
		zap.String("title", prediction.Label),
		zap.Float64("confidence", prediction.Confidence),
		zap.Bool("uncertain", prediction.Uncertain),
	)
	return nil
}

func (s *titleStep) Status() Status {
	st := Status{Name: s.Name(), Enabled: s.IsEnabled(), Reason: s.reason}
	if s.note != "" {
		st.Details = map[string]string{"note": s.note}
	}
	return st
}

type feedbackStep struct {
	toggle
}

// NewFeedback creates the rule-based feedback step. It reads the results of the earlier steps.
func NewFeedback() Step { return &feedbackStep{} }

func (s *feedbackStep) Name() string { return StepFeedback }

func (s *feedbackStep) Validate(Deps) error { return nil }

func (s *feedbackStep) Apply(_ context.Context, _ Deps, _ Input, res *Result) error {
	in := feedback.Input{PredictedTitle: res.PredictedTitle()}
	if res.Skills != nil {
		in.MatchScore = res.Skills.Score
		in.MatchedSkills = res.Skills.Matched
	}
	if res.Sections != nil {
		in.MissingSections = res.Sections.Missing
	}

	res.Feedback = feedback.Compose(in)
	return nil
}

type aiAdviceStep struct {
	toggle
	failure string
	model   string
}

// NewAIAdvice creates the step that asks the configured advisor for tailored advice.
// Advisor failures are logged and do not fail the analysis.
func NewAIAdvice() Step { return &aiAdviceStep{} }

func (s *aiAdviceStep) Name() string { return StepAIAdvice }

func (s *aiAdviceStep) Validate(deps Deps) error {
	if deps.Advisor == nil {
		return errors.New("ai advisor is not configured")
	}
	return nil
}

func (s *aiAdviceStep) Apply(ctx context.Context, deps Deps, in Input, res *Result) error {
	req := ai.Request{
		ResumeText:     in.ResumeText,
		JobDescription: in.JobDescription,
		PredictedTitle: res.PredictedTitle(),
	}
	if res.Skills != nil {
		req.MatchScore = res.Skills.Score
		req.MatchedSkills = res.Skills.Matched
		req.MissingSkills = res.Skills.Missing
	}
	if res.Sections != nil {
		req.MissingSections = res.Sections.Missing
	}

	if m, ok := deps.Advisor.(interface{ Model() string }); ok {
		s.model = m.Model()
	}

	advice, err := deps.Advisor.Advise(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		deps.Logger.Warn("AI advice failed, continuing without it", zap.Error(err))
		s.failure = err.Error()
		return nil
	}

	res.Advice = advice
	deps.Logger.Info("AI advice received", zap.Int("suggestions", len(advice.Suggestions)))
	return nil
}

func (s *aiAdviceStep) Status() Status {
	st := Status{Name: s.Name(), Enabled: s.IsEnabled(), Reason: s.reason}
	details := map[string]string{}
	if s.model != "" {
		details["model"] = s.model
	}
	if s.failure != "" {
		details["error"] = s.failure
	}
	if s.IsEnabled() {
		details["advised"] = strconv.FormatBool(s.failure == "")
	}
	if len(details) > 0 {
		st.Details = details
	}
	return st
}
