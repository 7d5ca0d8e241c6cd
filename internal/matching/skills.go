// Package matching compares a resume with a job description and checks resume structure.
package matching

import (
	"math"
	"sort"

	"github.com/spigell/resume-matcher/internal/textproc"
)

// SkillMatch is the keyword overlap between a resume and a job description.
type SkillMatch struct {
	ResumeKeywords []string `json:"resume_keywords" yaml:"resume_keywords"`
	JDKeywords     []string `json:"jd_keywords" yaml:"jd_keywords"`
	Matched        []string `json:"matched" yaml:"matched"`
	Missing        []string `json:"missing" yaml:"missing"`
	Score          float64  `json:"score" yaml:"score"`
}

// ExtractKeywords returns the unique non-stop-word tokens of text, sorted.
func ExtractKeywords(text string) []string {
	seen := make(map[string]struct{})
	keywords := make([]string, 0)
	for _, term := range textproc.Terms(text, textproc.English()) {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		keywords = append(keywords, term)
	}
	sort.Strings(keywords)
	return keywords
}

// MatchSkills scores how many job description keywords the resume covers, as a percentage
// rounded to two decimals. A job description without keywords scores 0.
func MatchSkills(resume, jd string) SkillMatch {
	resumeKeywords := ExtractKeywords(resume)
	jdKeywords := ExtractKeywords(jd)

	inResume := make(map[string]struct{}, len(resumeKeywords))
	for _, k := range resumeKeywords {
		inResume[k] = struct{}{}
	}

	matched := make([]string, 0)
	missing := make([]string, 0)
	for _, k := range jdKeywords {
		if _, ok := inResume[k]; ok {
			matched = append(matched, k)
		} else {
			missing = append(missing, k)
		}
	}

	var score float64
	if len(jdKeywords) > 0 {
		score = round2(float64(len(matched)) / float64(len(jdKeywords)) * 100)
	}

	return SkillMatch{
		ResumeKeywords: resumeKeywords,
		JDKeywords:     jdKeywords,
		Matched:        matched,
		Missing:        missing,
		Score:          score,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
