package classifier

import (
	"errors"
	"testing"

	"github.com/spigell/resume-matcher/internal/textproc"
)

func TestVectorizerWeights(t *testing.T) {
	t.Parallel()

	docs := []string{
		"golang golang golang docker",
		"golang python",
		"golang java",
		"rust",
	}

	v := NewVectorizer(VectorizerConfig{})
	if err := v.Fit(docs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	golang := v.vocabulary["golang"]
	docker := v.vocabulary["docker"]
	if v.idf[golang] >= v.idf[docker] {
		t.Fatalf("expected common term to weigh less: golang=%f docker=%f", v.idf[golang], v.idf[docker])
	}

	once, err := v.Transform("golang docker")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	thrice, err := v.Transform("golang golang golang docker")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if denseOf(thrice)[golang] <= denseOf(once)[golang] {
		t.Fatalf("expected repeated term to weigh more: once=%f thrice=%f", denseOf(once)[golang], denseOf(thrice)[golang])
	}

	if norm := normOf(thrice); norm < 0.999999 || norm > 1.000001 {
		t.Fatalf("expected unit norm, got %f", norm)
	}
}

func TestVectorizerStopWordsAndLimit(t *testing.T) {
	t.Parallel()

	v := NewVectorizer(VectorizerConfig{MaxFeatures: 2})
	if err := v.Fit([]string{"the go go go and kafka kafka redis", "the go and kafka"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	terms := v.terms
	if len(terms) != 2 || terms[0] != "go" || terms[1] != "kafka" {
		t.Fatalf("expected [go kafka], got %q", terms)
	}
	if _, ok := v.vocabulary["the"]; ok {
		t.Fatalf("stop word must not enter the vocabulary")
	}
}

func TestVectorizerFrozenVocabulary(t *testing.T) {
	t.Parallel()

	v := NewVectorizer(VectorizerConfig{StopWords: textproc.English()})
	if err := v.Fit([]string{"golang docker", "python pandas"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := append([]string(nil), v.terms...)

	vec, err := v.Transform("haskell erlang elixir")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !vec.IsZero() || vec.Dim != len(before) {
		t.Fatalf("expected zero vector of dim %d, got %+v", len(before), vec)
	}

	empty, err := v.Transform("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !empty.IsZero() {
		t.Fatalf("expected empty document to be all zeros")
	}

	if after := v.terms; len(after) != len(before) {
		t.Fatalf("vocabulary changed after transform: %q -> %q", before, after)
	}
}

func TestVectorizerTransformBeforeFit(t *testing.T) {
	t.Parallel()

	_, err := NewVectorizer(VectorizerConfig{}).Transform("golang")
	if !errors.Is(err, ErrNotFitted) {
		t.Fatalf("expected ErrNotFitted, got %v", err)
	}
}
