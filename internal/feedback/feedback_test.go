package feedback

import (
	"strings"
	"testing"
)

func TestCompose(t *testing.T) {
	t.Parallel()

	five := []string{"aws", "docker", "go", "kubernetes", "terraform"}

	tests := []struct {
		name  string
		in    Input
		lines []string
	}{
		{
			name: "strong match",
			in:   Input{MatchScore: 80, MatchedSkills: five, PredictedTitle: "DevOps Engineer"},
			lines: []string{
				"strong match",
				"fairly strong",
				"All essential sections are present",
				"suitable for the role: DevOps Engineer.",
			},
		},
		{
			name: "partial match",
			in:   Input{MatchScore: 50, MatchedSkills: five[:4], MissingSections: []string{"Projects", "Contact"}, PredictedTitle: "Web Developer"},
			lines: []string{
				"Some important skills are missing",
				"Add more relevant technical skills",
				"Missing resume sections: Projects, Contact.",
				"Web Developer",
			},
		},
		{
			name: "weak match",
			in:   Input{MatchScore: 49.99},
			lines: []string{
				"does not match the job well",
				"Add more relevant technical skills",
				"All essential sections are present",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Compose(tt.in)
			if len(got) != len(tt.lines) {
				t.Fatalf("expected %d lines, got %d: %v", len(tt.lines), len(got), got)
			}
			for i, want := range tt.lines {
				if !strings.Contains(got[i], want) {
					t.Fatalf("line %d: expected %q in %q", i, want, got[i])
				}
			}
		})
	}
}
