package matching

import (
	"reflect"
	"testing"
)

func TestExtractKeywords(t *testing.T) {
	t.Parallel()

	got := ExtractKeywords("The Go developer, and a GO enthusiast: Kubernetes & Docker (5 years) x")
	want := []string{"developer", "docker", "enthusiast", "go", "kubernetes", "years"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if got := ExtractKeywords("   "); len(got) != 0 {
		t.Fatalf("expected no keywords, got %v", got)
	}
}

func TestMatchSkills(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		resume  string
		jd      string
		matched []string
		missing []string
		score   float64
	}{
		{
			name:    "partial overlap",
			resume:  "Python developer with Docker and SQL",
			jd:      "Looking for Python, Docker and Kubernetes",
			matched: []string{"docker", "python"},
			missing: []string{"kubernetes", "looking"},
			score:   50,
		},
		{
			name:    "rounds to two decimals",
			resume:  "python",
			jd:      "python java rust",
			matched: []string{"python"},
			missing: []string{"java", "rust"},
			score:   33.33,
		},
		{
			name:    "empty job description",
			resume:  "python",
			jd:      "the and of",
			matched: []string{},
			missing: []string{},
			score:   0,
		},
		{
			name:    "full coverage",
			resume:  "Go, Terraform, AWS and more",
			jd:      "go aws terraform",
			matched: []string{"aws", "go", "terraform"},
			missing: []string{},
			score:   100,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MatchSkills(tt.resume, tt.jd)
			if !reflect.DeepEqual(got.Matched, tt.matched) {
				t.Fatalf("matched: expected %v, got %v", tt.matched, got.Matched)
			}
			if !reflect.DeepEqual(got.Missing, tt.missing) {
				t.Fatalf("missing: expected %v, got %v", tt.missing, got.Missing)
			}
			if got.Score != tt.score {
				t.Fatalf("score: expected %v, got %v", tt.score, got.Score)
			}
		})
	}
}
