package classifier

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spigell/resume-matcher/internal/textproc"
)

// PipelineConfig configures both stages of the pipeline.
type PipelineConfig struct {
	Vectorizer VectorizerConfig
	Model      LogisticRegressionConfig
}

// Prediction is the outcome of classifying one document.
type Prediction struct {
	Label         string             `json:"label" yaml:"label"`
	Confidence    float64            `json:"confidence" yaml:"confidence"`
	Probabilities map[string]float64 `json:"probabilities" yaml:"probabilities"`
}

// Pipeline chains the TF-IDF vectorizer and the logistic regression. It is immutable once built.
type Pipeline struct {
	vectorizer *Vectorizer
	model      *LogisticRegression
}

// FitPipeline fits the vectorizer and the classifier on the whole dataset.
func FitPipeline(d Dataset, cfg PipelineConfig) (*Pipeline, FitStats, error) {
	vectorizer := NewVectorizer(cfg.Vectorizer)
	vectors, err := vectorizer.FitTransform(d.Texts())
	if err != nil {
		return nil, FitStats{}, err
	}

	model, stats, err := FitLogisticRegression(vectors, d.Labels(), cfg.Model)
	if err != nil {
		return nil, stats, err
	}

	return &Pipeline{vectorizer: vectorizer, model: model}, stats, nil
}

// Predict returns the single most probable label for text.
func (p *Pipeline) Predict(text string) (string, error) {
	vec, err := p.Vectorize(text)
	if err != nil {
		return "", err
	}
	return p.model.Predict(vec), nil
}

// PredictAll predicts every text in order.
func (p *Pipeline) PredictAll(texts []string) ([]string, error) {
	labels := make([]string, len(texts))
	for i, text := range texts {
		label, err := p.Predict(text)
		if err != nil {
			return nil, err
		}
		labels[i] = label
	}
	return labels, nil
}

// Classify returns the predicted label together with the full class distribution.
func (p *Pipeline) Classify(text string) (Prediction, error) {
	vec, err := p.Vectorize(text)
	if err != nil {
		return Prediction{}, err
	}

	probs := p.model.Probabilities(vec)
	best := argmax(probs)

	prediction := Prediction{
		Label:         p.model.Classes[best],
		Confidence:    probs[best],
		Probabilities: make(map[string]float64, len(probs)),
	}
	for i, class := range p.model.Classes {
		prediction.Probabilities[class] = probs[i]
	}
	return prediction, nil
}

// TermWeight is one known term of a document and its pull toward a label.
type TermWeight struct {
	Term         string  `json:"term" yaml:"term"`
	Weight       float64 `json:"weight" yaml:"weight"`
	Contribution float64 `json:"contribution" yaml:"contribution"`
}

// Explain lists the vocabulary terms found in text, strongest contribution to label's score first.
// Weight is the term's TF-IDF value and Contribution is Weight times the label coefficient.
// limit <= 0 returns every term.
func (p *Pipeline) Explain(text, label string, limit int) ([]TermWeight, error) {
	vec, err := p.Vectorize(text)
	if err != nil {
		return nil, err
	}

	class := -1
	for i, c := range p.model.Classes {
		if c == label {
			class = i
			break
		}
	}
	if class < 0 {
		return nil, fmt.Errorf("unknown label %q", label)
	}
	if vec.IsZero() {
		return []TermWeight{}, nil
	}

	terms := make([]TermWeight, 0, len(vec.Indices))
	for i, idx := range vec.Indices {
		terms = append(terms, TermWeight{
			Term:         p.vectorizer.terms[idx],
			Weight:       vec.Values[i],
			Contribution: vec.Values[i] * p.model.Weights[class][idx],
		})
	}
	sort.SliceStable(terms, func(i, j int) bool {
		if terms[i].Contribution != terms[j].Contribution {
			return terms[i].Contribution > terms[j].Contribution
		}
		return terms[i].Term < terms[j].Term
	})
	if limit > 0 && len(terms) > limit {
		terms = terms[:limit]
	}
	return terms, nil
}

// Vectorize projects text onto the frozen vocabulary.
func (p *Pipeline) Vectorize(text string) (Vector, error) {
	if p == nil || p.vectorizer == nil || p.model == nil {
		return Vector{}, ErrNotFitted
	}
	return p.vectorizer.Transform(text)
}

// Classes returns the label set observed at training time.
func (p *Pipeline) Classes() []string {
	return append([]string(nil), p.model.Classes...)
}

// PriorClass returns the label predicted for a document without any known term.
func (p *Pipeline) PriorClass() string {
	return p.model.PriorClass()
}

// Vectorizer exposes the fitted vectorizer.
func (p *Pipeline) Vectorizer() *Vectorizer {
	return p.vectorizer
}

type vectorizerState struct {
	MaxFeatures int       `json:"max_features"`
	StopWords   []string  `json:"stop_words"`
	Terms       []string  `json:"terms"`
	IDF         []float64 `json:"idf"`
}

type pipelineState struct {
	Vectorizer vectorizerState     `json:"vectorizer"`
	Classifier *LogisticRegression `json:"classifier"`
}

// MarshalJSON implements json.Marshaler.
func (p *Pipeline) MarshalJSON() ([]byte, error) {
	if p == nil || p.vectorizer == nil || p.model == nil {
		return nil, ErrNotFitted
	}

	stop := p.vectorizer.stopWords.Words()
	sort.Strings(stop)

	return json.Marshal(pipelineState{
		Vectorizer: vectorizerState{
			MaxFeatures: p.vectorizer.maxFeatures,
			StopWords:   stop,
			Terms:       p.vectorizer.terms,
			IDF:         p.vectorizer.idf,
		},
		Classifier: p.model,
	})
}

// UnmarshalJSON implements json.Unmarshaler and validates the decoded shapes.
func (p *Pipeline) UnmarshalJSON(data []byte) error {
	var state pipelineState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}

	vs := state.Vectorizer
	if len(vs.Terms) != len(vs.IDF) {
		return fmt.Errorf("vectorizer has %d terms and %d idf weights", len(vs.Terms), len(vs.IDF))
	}
	if state.Classifier == nil {
		return fmt.Errorf("pipeline has no classifier")
	}
	if err := state.Classifier.Validate(len(vs.Terms)); err != nil {
		return err
	}

	vectorizer := &Vectorizer{
		maxFeatures: vs.MaxFeatures,
		stopWords:   textproc.NewStopWords(vs.StopWords...),
		terms:       vs.Terms,
		idf:         vs.IDF,
		vocabulary:  make(map[string]int, len(vs.Terms)),
	}
	if vectorizer.terms == nil {
		vectorizer.terms = []string{}
		vectorizer.idf = []float64{}
	}
	for i, term := range vs.Terms {
		if _, dup := vectorizer.vocabulary[term]; dup {
			return fmt.Errorf("vectorizer term %q is duplicated", term)
		}
		vectorizer.vocabulary[term] = i
	}

	p.vectorizer = vectorizer
	p.model = state.Classifier
	return nil
}
