package matching

import (
	"reflect"
	"testing"
)

func TestCheckSections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		resume  string
		present []string
		missing []string
		score   int
	}{
		{
			name:    "complete resume",
			resume:  "EDUCATION\nBSc\nWork History\nAcme\nTechnologies: Go\nPortfolio: example.org\nCourses: CKA\nEmail: me@example.org",
			present: []string{"Education", "Experience", "Skills", "Projects", "Certifications", "Contact"},
			missing: []string{},
			score:   100,
		},
		{
			name:    "whole words only",
			resume:  "Experienced engineer. Skillset: Go. Phone: 555",
			present: []string{"Contact"},
			missing: []string{"Education", "Experience", "Skills", "Projects", "Certifications"},
			score:   16,
		},
		{
			name:    "empty",
			resume:  "",
			present: []string{},
			missing: []string{"Education", "Experience", "Skills", "Projects", "Certifications", "Contact"},
			score:   0,
		},
		{
			name:    "truncated percentage",
			resume:  "Skills and experience. Projects on LinkedIn.",
			present: []string{"Experience", "Skills", "Projects", "Contact"},
			missing: []string{"Education", "Certifications"},
			score:   66,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CheckSections(tt.resume)
			if !reflect.DeepEqual(got.Present, tt.present) {
				t.Fatalf("present: expected %v, got %v", tt.present, got.Present)
			}
			if !reflect.DeepEqual(got.Missing, tt.missing) {
				t.Fatalf("missing: expected %v, got %v", tt.missing, got.Missing)
			}
			if got.Score != tt.score {
				t.Fatalf("score: expected %d, got %d", tt.score, got.Score)
			}
		})
	}
}
