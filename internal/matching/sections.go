package matching

import (
	"regexp"
	"strings"

	"github.com/spigell/resume-matcher/internal/textproc"
)

// Section is a resume part recognized by any of its keywords.
type Section struct {
	Name     string
	Keywords []string
}

// Sections is the checked taxonomy in report order.
var Sections = []Section{
	{Name: "Education", Keywords: []string{"education", "academic", "qualification"}},
	{Name: "Experience", Keywords: []string{"experience", "work history", "employment"}},
	{Name: "Skills", Keywords: []string{"skills", "technologies", "tools"}},
	{Name: "Projects", Keywords: []string{"projects", "personal projects", "portfolio"}},
	{Name: "Certifications", Keywords: []string{"certifications", "courses", "training"}},
	{Name: "Contact", Keywords: []string{"email", "phone", "contact", "linkedin"}},
}

var sectionPatterns = compileSections(Sections)

func compileSections(sections []Section) [][]*regexp.Regexp {
	patterns := make([][]*regexp.Regexp, len(sections))
	for i, s := range sections {
		for _, kw := range s.Keywords {
			patterns[i] = append(patterns[i], regexp.MustCompile(`\b`+regexp.QuoteMeta(strings.ToLower(kw))+`\b`))
		}
	}
	return patterns
}

// SectionReport lists which sections a resume contains.
type SectionReport struct {
	Present []string `json:"present" yaml:"present"`
	Missing []string `json:"missing" yaml:"missing"`
	Score   int      `json:"score" yaml:"score"`
}

// CheckSections looks for each section keyword as a whole word, ignoring case.
// Score is the truncated percentage of sections present.
func CheckSections(resume string) SectionReport {
	text := textproc.Fold(resume)

	report := SectionReport{Present: make([]string, 0), Missing: make([]string, 0)}
	for i, s := range Sections {
		found := false
		for _, re := range sectionPatterns[i] {
			if re.MatchString(text) {
				found = true
				break
			}
		}
		if found {
			report.Present = append(report.Present, s.Name)
		} else {
			report.Missing = append(report.Missing, s.Name)
		}
	}

	report.Score = len(report.Present) * 100 / len(Sections)
	return report
}
