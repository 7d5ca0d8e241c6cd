package artifact

import (
	"testing"

	"github.com/spigell/resume-matcher/internal/classifier"
)

func trainedPipeline(t *testing.T) *classifier.Pipeline {
	t.Helper()

	dataset := classifier.Dataset{
		{Text: "python pandas regression statistics machine learning", Label: "Data Scientist"},
		{Text: "numpy sklearn modeling python hypothesis statistics", Label: "Data Scientist"},
		{Text: "javascript react css html frontend typescript", Label: "Web Developer"},
		{Text: "browser webpack redux responsive react javascript", Label: "Web Developer"},
		{Text: "kubernetes docker terraform jenkins ansible helm", Label: "DevOps Engineer"},
		{Text: "prometheus monitoring pipelines linux docker kubernetes", Label: "DevOps Engineer"},
	}

	pipeline, _, err := classifier.FitPipeline(dataset, classifier.PipelineConfig{})
	if err != nil {
		t.Fatalf("fit pipeline: %v", err)
	}
	return pipeline
}
