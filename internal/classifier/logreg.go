package classifier

import (
	"fmt"
	"math"
	"sort"
)

const (
	DefaultC            = 1.0
	DefaultMaxIter      = 1000
	DefaultTolerance    = 1e-4
	DefaultLearningRate = 0.5
)

// LogisticRegressionConfig configures the multinomial logistic regression solver.
type LogisticRegressionConfig struct {
	// C is the inverse L2 regularization strength, as in the usual liblinear/lbfgs convention.
	C            float64
	MaxIter      int
	Tolerance    float64
	LearningRate float64
}

func (c *LogisticRegressionConfig) applyDefaults() {
	if c.C <= 0 {
		c.C = DefaultC
	}
	if c.MaxIter <= 0 {
		c.MaxIter = DefaultMaxIter
	}
	if c.Tolerance <= 0 {
		c.Tolerance = DefaultTolerance
	}
	if c.LearningRate <= 0 {
		c.LearningRate = DefaultLearningRate
	}
}

// FitStats describes how the solver finished.
type FitStats struct {
	Iterations int
	Converged  bool
	Loss       float64
}

// LogisticRegression is a softmax classifier with one weight row and one bias per class.
type LogisticRegression struct {
	Classes []string    `json:"classes"`
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
}

// FitLogisticRegression minimizes the L2-regularized mean cross-entropy with Nesterov-accelerated
// gradient descent. Class order is alphabetical, so ties in prediction resolve to the first label.
func FitLogisticRegression(x []Vector, y []string, cfg LogisticRegressionConfig) (*LogisticRegression, FitStats, error) {
	cfg.applyDefaults()

	if len(x) == 0 || len(x) != len(y) {
		return nil, FitStats{}, fmt.Errorf("fit logistic regression: %d vectors for %d labels", len(x), len(y))
	}

	classes := uniqueSorted(y)
	if len(classes) < 2 {
		return nil, FitStats{}, fmt.Errorf("fit logistic regression: %w: need at least 2 labels, got %d", ErrInsufficientData, len(classes))
	}

	classIndex := make(map[string]int, len(classes))
	for i, class := range classes {
		classIndex[class] = i
	}
	targets := make([]int, len(y))
	for i, label := range y {
		targets[i] = classIndex[label]
	}

	dim := x[0].Dim
	k := len(classes)
	n := float64(len(x))
	lambda := 1 / (cfg.C * n)

	w := newParams(k, dim)
	prev := newParams(k, dim)
	look := newParams(k, dim)
	grad := newParams(k, dim)

	stats := FitStats{}
	for iter := 1; iter <= cfg.MaxIter; iter++ {
		stats.Iterations = iter
		stats.Loss = gradient(look, x, targets, lambda, grad)

		if grad.maxAbs() < cfg.Tolerance {
			w.copyFrom(look)
			stats.Converged = true
			break
		}

		prev.copyFrom(w)
		for c := 0; c < k; c++ {
			for j := range look.weights[c] {
				w.weights[c][j] = look.weights[c][j] - cfg.LearningRate*grad.weights[c][j]
			}
			w.bias[c] = look.bias[c] - cfg.LearningRate*grad.bias[c]
		}

		momentum := float64(iter-1) / float64(iter+2)
		for c := 0; c < k; c++ {
			for j := range w.weights[c] {
				look.weights[c][j] = w.weights[c][j] + momentum*(w.weights[c][j]-prev.weights[c][j])
			}
			look.bias[c] = w.bias[c] + momentum*(w.bias[c]-prev.bias[c])
		}
	}

	return &LogisticRegression{
		Classes: classes,
		Weights: w.weights,
		Bias:    w.bias,
	}, stats, nil
}

// Probabilities returns the softmax class probabilities for x, in Classes order.
func (m *LogisticRegression) Probabilities(x Vector) []float64 {
	return softmax(m.logits(x))
}

// Predict returns the most probable class.
func (m *LogisticRegression) Predict(x Vector) string {
	return m.Classes[argmax(m.logits(x))]
}

// PriorClass returns the class favored by the bias terms alone, i.e. the prediction for a zero vector.
func (m *LogisticRegression) PriorClass() string {
	return m.Classes[argmax(m.Bias)]
}

// Validate checks that the parameter shapes agree with each other and with dim.
func (m *LogisticRegression) Validate(dim int) error {
	if len(m.Classes) < 2 {
		return fmt.Errorf("classifier has %d classes", len(m.Classes))
	}
	if len(m.Weights) != len(m.Classes) || len(m.Bias) != len(m.Classes) {
		return fmt.Errorf("classifier has %d weight rows and %d biases for %d classes", len(m.Weights), len(m.Bias), len(m.Classes))
	}
	for i, row := range m.Weights {
		if len(row) != dim {
			return fmt.Errorf("classifier weight row %d has %d features, vocabulary has %d", i, len(row), dim)
		}
	}
	return nil
}

func (m *LogisticRegression) logits(x Vector) []float64 {
	logits := make([]float64, len(m.Classes))
	for c := range m.Classes {
		logits[c] = x.Dot(m.Weights[c]) + m.Bias[c]
	}
	return logits
}

type params struct {
	weights [][]float64
	bias    []float64
}

func newParams(k, dim int) *params {
	p := &params{
		weights: make([][]float64, k),
		bias:    make([]float64, k),
	}
	for c := range p.weights {
		p.weights[c] = make([]float64, dim)
	}
	return p
}

func (p *params) copyFrom(src *params) {
	for c := range p.weights {
		copy(p.weights[c], src.weights[c])
	}
	copy(p.bias, src.bias)
}

func (p *params) maxAbs() float64 {
	var peak float64
	for c := range p.weights {
		for _, v := range p.weights[c] {
			peak = math.Max(peak, math.Abs(v))
		}
		peak = math.Max(peak, math.Abs(p.bias[c]))
	}
	return peak
}

// gradient writes the objective gradient at p into grad and returns the objective value.
func gradient(p *params, x []Vector, targets []int, lambda float64, grad *params) float64 {
	k := len(p.bias)
	n := float64(len(x))

	for c := 0; c < k; c++ {
		for j := range grad.weights[c] {
			grad.weights[c][j] = lambda * p.weights[c][j]
		}
		grad.bias[c] = 0
	}

	var loss float64
	logits := make([]float64, k)
	for i, vec := range x {
		for c := 0; c < k; c++ {
			logits[c] = vec.Dot(p.weights[c]) + p.bias[c]
		}
		probs := softmax(logits)
		loss -= math.Log(math.Max(probs[targets[i]], 1e-300))

		for c := 0; c < k; c++ {
			diff := probs[c]
			if c == targets[i] {
				diff--
			}
			diff /= n
			for j, idx := range vec.Indices {
				grad.weights[c][idx] += diff * vec.Values[j]
			}
			grad.bias[c] += diff
		}
	}

	var penalty float64
	for c := 0; c < k; c++ {
		for _, v := range p.weights[c] {
			penalty += v * v
		}
	}

	return loss/n + lambda/2*penalty
}

func softmax(logits []float64) []float64 {
	peak := math.Inf(-1)
	for _, v := range logits {
		peak = math.Max(peak, v)
	}

	probs := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		probs[i] = math.Exp(v - peak)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	unique := make([]string, 0)
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		unique = append(unique, v)
	}
	sort.Strings(unique)
	return unique
}
