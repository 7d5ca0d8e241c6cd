// Package feedback turns analysis scores into short human-readable advice.
package feedback

import (
	"fmt"
	"strings"
)

const (
	StrongMatchScore  = 80.0
	PartialMatchScore = 50.0
	MinMatchedSkills  = 5
)

// Input carries the figures the feedback is based on.
type Input struct {
	MatchScore      float64
	MatchedSkills   []string
	MissingSections []string
	PredictedTitle  string
}

// Compose returns one line per aspect: overall match, skills, structure and the suggested role.
func Compose(in Input) []string {
	lines := make([]string, 0, 4)

	switch {
	case in.MatchScore >= StrongMatchScore:
		lines = append(lines, "Your skills are a strong match for the job description.")
	case in.MatchScore >= PartialMatchScore:
		lines = append(lines, "Some important skills are missing. Consider learning them.")
	default:
		lines = append(lines, "Your resume does not match the job well. Try upskilling.")
	}

	if len(in.MatchedSkills) < MinMatchedSkills {
		lines = append(lines, "Add more relevant technical skills to stand out.")
	} else {
		lines = append(lines, "Skill section looks fairly strong.")
	}

	if len(in.MissingSections) > 0 {
		lines = append(lines, fmt.Sprintf("Missing resume sections: %s. Add them for better impact.", strings.Join(in.MissingSections, ", ")))
	} else {
		lines = append(lines, "All essential sections are present in your resume.")
	}

	if title := strings.TrimSpace(in.PredictedTitle); title != "" {
		lines = append(lines, fmt.Sprintf("Based on your profile, you seem suitable for the role: %s.", title))
	}

	return lines
}
