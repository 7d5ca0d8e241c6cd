package classifier

import (
	"math"
	"math/rand"
	"sort"
	"strings"
)

var characteristicTerms = map[string][]string{
	"Data Scientist":  {"python", "pandas", "regression", "statistics", "machine", "learning", "numpy", "sklearn", "modeling", "hypothesis"},
	"Web Developer":   {"javascript", "react", "css", "html", "frontend", "typescript", "browser", "webpack", "redux", "responsive"},
	"DevOps Engineer": {"kubernetes", "docker", "terraform", "jenkins", "ansible", "monitoring", "prometheus", "pipelines", "helm", "linux"},
	"HR Manager":      {"recruitment", "onboarding", "payroll", "employee", "benefits", "hiring", "interviews", "retention", "compliance", "culture"},
}

var sharedTerms = []string{"team", "project", "experience", "worked", "company", "years", "responsible", "skills", "communication", "developed"}

func syntheticLabels() []string {
	labels := make([]string, 0, len(characteristicTerms))
	for label := range characteristicTerms {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// syntheticDataset returns rows spread evenly over the four labels.
func syntheticDataset(rows int, seed int64) Dataset {
	rnd := rand.New(rand.NewSource(seed))
	labels := syntheticLabels()

	dataset := make(Dataset, 0, rows)
	for i := 0; i < rows; i++ {
		label := labels[i%len(labels)]
		words := make([]string, 0, 18)
		for j := 0; j < 12; j++ {
			terms := characteristicTerms[label]
			words = append(words, terms[rnd.Intn(len(terms))])
		}
		for j := 0; j < 6; j++ {
			words = append(words, sharedTerms[rnd.Intn(len(sharedTerms))])
		}
		rnd.Shuffle(len(words), func(a, b int) { words[a], words[b] = words[b], words[a] })
		dataset = append(dataset, Example{Text: "Resume: " + strings.Join(words, ", ") + ".", Label: label})
	}
	return dataset
}

// characteristicDoc builds a document from a handful of terms characteristic of label.
func characteristicDoc(rnd *rand.Rand, label string, size int) string {
	terms := characteristicTerms[label]
	words := make([]string, size)
	for i := range words {
		words[i] = terms[rnd.Intn(len(terms))]
	}
	return strings.Join(words, " ")
}

func denseOf(v Vector) []float64 {
	dense := make([]float64, v.Dim)
	for i, idx := range v.Indices {
		dense[idx] = v.Values[i]
	}
	return dense
}

func normOf(v Vector) float64 {
	var sum float64
	for _, value := range v.Values {
		sum += value * value
	}
	return math.Sqrt(sum)
}

func classMetrics(r Report, label string) (ClassMetrics, bool) {
	for _, m := range r.Classes {
		if m.Label == label {
			return m, true
		}
	}
	return ClassMetrics{}, false
}
