// Package ai describes optional AI-generated resume advice.
package ai

import "context"

// Request carries the results of the local analysis to the advisor.
type Request struct {
	ResumeText      string
	JobDescription  string
	PredictedTitle  string
	MatchScore      float64
	MatchedSkills   []string
	MissingSkills   []string
	MissingSections []string
}

// Advice is the advisor's answer.
type Advice struct {
	Summary     string   `json:"summary" yaml:"summary"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
	Raw         string   `json:"-" yaml:"-"`
}

// Advisor produces tailored advice for a resume and job description pair.
type Advisor interface {
	Advise(ctx context.Context, req Request) (*Advice, error)
}
