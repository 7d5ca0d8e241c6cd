package classifier

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()

	input := "ID,Category,Resume\n" +
		"1,Data Scientist,\"Python, pandas\nand statistics\"\n" +
		"2, Web Developer ,React and CSS\n"

	dataset, err := ReadCSV(strings.NewReader(input), DatasetConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dataset) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(dataset))
	}
	if dataset[0].Label != "Data Scientist" || !strings.Contains(dataset[0].Text, "statistics") {
		t.Fatalf("unexpected first row: %+v", dataset[0])
	}
	if dataset[1].Label != "Web Developer" {
		t.Fatalf("expected label to be trimmed, got %q", dataset[1].Label)
	}
}

func TestReadCSVMissingColumns(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(strings.NewReader("Text,Label\nfoo,bar\n"), DatasetConfig{})
	if !errors.Is(err, ErrDataFormat) {
		t.Fatalf("expected ErrDataFormat, got %v", err)
	}
	for _, column := range []string{"Resume", "Category"} {
		if !strings.Contains(err.Error(), column) {
			t.Fatalf("expected error to name column %q: %v", column, err)
		}
	}
}

func TestReadCSVCustomColumns(t *testing.T) {
	t.Parallel()

	dataset, err := ReadCSV(strings.NewReader("Text,Label\nfoo bar,baz\n"), DatasetConfig{TextColumn: "Text", LabelColumn: "Label"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dataset) != 1 || dataset[0].Label != "baz" {
		t.Fatalf("unexpected dataset: %+v", dataset)
	}
}

func TestReadCSVEmptyLabel(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(strings.NewReader("Resume,Category\nsome text,\n"), DatasetConfig{})
	if !errors.Is(err, ErrDataFormat) {
		t.Fatalf("expected ErrDataFormat, got %v", err)
	}
}

func TestReadJSONLines(t *testing.T) {
	t.Parallel()

	input := `{"Resume": "golang docker", "Category": "DevOps"}

{"Resume": 42, "Category": "Numbers"}
`
	dataset, err := ReadJSONLines(strings.NewReader(input), DatasetConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dataset) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(dataset))
	}
	if dataset[1].Text != "42" {
		t.Fatalf("expected weakly typed text, got %q", dataset[1].Text)
	}

	_, err = ReadJSONLines(strings.NewReader(`{"Resume": "x"}`), DatasetConfig{})
	if !errors.Is(err, ErrDataFormat) {
		t.Fatalf("expected ErrDataFormat, got %v", err)
	}
}

func TestLoadDatasetByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "resumes.csv")
	if err := os.WriteFile(csvPath, []byte("Resume,Category\ngo,Dev\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	jsonlPath := filepath.Join(dir, "resumes.jsonl")
	if err := os.WriteFile(jsonlPath, []byte(`{"Resume":"go","Category":"Dev"}`+"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, path := range []string{csvPath, jsonlPath} {
		dataset, err := LoadDataset(path, DatasetConfig{})
		if err != nil {
			t.Fatalf("load %s: %v", path, err)
		}
		if len(dataset) != 1 {
			t.Fatalf("load %s: expected 1 row, got %d", path, len(dataset))
		}
	}

	if _, err := LoadDataset(filepath.Join(dir, "missing.csv"), DatasetConfig{}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
