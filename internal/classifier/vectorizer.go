package classifier

import (
	"fmt"
	"math"
	"sort"

	"github.com/spigell/resume-matcher/internal/textproc"
)

// DefaultMaxFeatures caps the vocabulary size.
const DefaultMaxFeatures = 3000

// VectorizerConfig configures feature extraction.
type VectorizerConfig struct {
	MaxFeatures int
	StopWords   textproc.StopWords
}

// Vectorizer turns documents into L2-normalized TF-IDF vectors over a vocabulary frozen by Fit.
type Vectorizer struct {
	maxFeatures int
	stopWords   textproc.StopWords

	vocabulary map[string]int
	terms      []string
	idf        []float64
}

// NewVectorizer creates an unfitted vectorizer. Zero values in cfg fall back to defaults.
func NewVectorizer(cfg VectorizerConfig) *Vectorizer {
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = DefaultMaxFeatures
	}
	if cfg.StopWords == nil {
		cfg.StopWords = textproc.English()
	}

	return &Vectorizer{
		maxFeatures: cfg.MaxFeatures,
		stopWords:   cfg.StopWords,
	}
}

// Fit builds the vocabulary and IDF weights from the corpus, replacing any previous state.
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return fmt.Errorf("fit vectorizer: %w: empty corpus", ErrInsufficientData)
	}

	totals := make(map[string]int)
	docCounts := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, term := range textproc.Terms(doc, v.stopWords) {
			totals[term]++
			if !seen[term] {
				seen[term] = true
				docCounts[term]++
			}
		}
	}

	terms := make([]string, 0, len(totals))
	for term := range totals {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if totals[terms[i]] != totals[terms[j]] {
			return totals[terms[i]] > totals[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.maxFeatures {
		terms = terms[:v.maxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v.terms = terms
	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(docCounts[term]))) + 1
	}

	return nil
}

// Transform projects one document onto the frozen vocabulary. Unknown terms are ignored.
func (v *Vectorizer) Transform(doc string) (Vector, error) {
	if v.vocabulary == nil {
		return Vector{}, fmt.Errorf("transform: %w", ErrNotFitted)
	}

	counts := make(map[int]int)
	for _, term := range textproc.Terms(doc, v.stopWords) {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	vec := Vector{
		Dim:     len(v.terms),
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)

	var norm float64
	for _, idx := range vec.Indices {
		weight := float64(counts[idx]) * v.idf[idx]
		vec.Values = append(vec.Values, weight)
		norm += weight * weight
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}

	return vec, nil
}

// TransformAll projects every document.
func (v *Vectorizer) TransformAll(docs []string) ([]Vector, error) {
	vectors := make([]Vector, len(docs))
	for i, doc := range docs {
		vec, err := v.Transform(doc)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// FitTransform fits the vocabulary on docs and returns their vectors.
func (v *Vectorizer) FitTransform(docs []string) ([]Vector, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	return v.TransformAll(docs)
}

// Dim returns the vocabulary size.
func (v *Vectorizer) Dim() int {
	return len(v.terms)
}
