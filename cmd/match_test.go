package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/spigell/resume-matcher/internal/analysis"
	"github.com/spigell/resume-matcher/internal/artifact"
	"github.com/spigell/resume-matcher/internal/classifier"
)

var matchRows = classifier.Dataset{
	{Text: "kubernetes docker terraform jenkins ansible helm", Label: "DevOps Engineer"},
	{Text: "prometheus monitoring pipelines linux docker kubernetes", Label: "DevOps Engineer"},
	{Text: "recruitment onboarding payroll employee benefits hiring", Label: "HR Manager"},
	{Text: "interviews retention compliance culture hiring employee", Label: "HR Manager"},
}

// captureStdout swaps os.Stdout for a pipe while fn runs.
func captureStdout(t *testing.T, fn func()) []byte {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	original := os.Stdout
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		data, _ := io.ReadAll(r)
		done <- data
	}()

	fn()

	os.Stdout = original
	w.Close()
	return <-done
}

func TestMatchPrintsOnlyJSONReportToStdout(t *testing.T) {
	dir := t.TempDir()

	model := filepath.Join(dir, "model.json")
	pipeline, _, err := classifier.FitPipeline(matchRows, classifier.PipelineConfig{})
	if err != nil {
		t.Fatalf("fit pipeline: %v", err)
	}
	if err := artifact.Save(context.Background(), artifact.NewFileStore(), model, pipeline, artifact.Metadata{RunID: "run-1"}); err != nil {
		t.Fatalf("save artifact: %v", err)
	}

	jd := filepath.Join(dir, "jd.txt")
	if err := os.WriteFile(jd, []byte("We hire a DevOps engineer: Kubernetes, Docker, Terraform and Linux."), 0o644); err != nil {
		t.Fatalf("write jd: %v", err)
	}

	rootCmd.SetIn(strings.NewReader("DevOps engineer with kubernetes docker terraform helm.\nEducation: BSc.\nSkills: linux"))
	rootCmd.SetArgs([]string{
		"match", "-n",
		"--resume", "-",
		"--jd", jd,
		"--format", "json",
		"--no-ai",
		"--artifact", model,
	})
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	out := captureStdout(t, func() {
		if err := rootCmd.Execute(); err != nil {
			t.Errorf("execute: %v", err)
		}
	})

	var result analysis.Result
	if err := json.Unmarshal(out, &result); err != nil {
		t.Fatalf("stdout is not a json report: %v\n%s", err, out)
	}
	if result.Title == nil || result.Title.Label != "DevOps Engineer" {
		t.Fatalf("unexpected title %+v", result.Title)
	}
	if result.Skills == nil || len(result.Skills.Matched) == 0 {
		t.Fatalf("expected matched skills, got %+v", result.Skills)
	}
	if len(result.Feedback) == 0 || len(result.Statuses) == 0 {
		t.Fatalf("expected feedback and step statuses, got %+v", result)
	}
}

func newInputCommand(stdin string) *cobra.Command {
	cmd := &cobra.Command{Use: "match"}
	cmd.Flags().String("resume", "", "")
	cmd.Flags().String("resume-text", "", "")
	cmd.Flags().String("jd", "", "")
	cmd.Flags().String("jd-text", "", "")
	cmd.SetIn(strings.NewReader(stdin))
	return cmd
}

func TestDocumentText(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "resume.txt")
	if err := os.WriteFile(file, []byte("resume from file"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name   string
		flags  map[string]string
		stdin  string
		expect string
		err    bool
	}{
		{
			name:   "pasted text wins over file",
			flags:  map[string]string{"resume-text": "pasted resume", "resume": file},
			expect: "pasted resume",
		},
		{
			name:   "dash reads stdin",
			flags:  map[string]string{"resume": "-"},
			stdin:  "resume from stdin",
			expect: "resume from stdin",
		},
		{
			name:   "reads file",
			flags:  map[string]string{"resume": file},
			expect: "resume from file",
		},
		{
			name:   "blank text falls back to file",
			flags:  map[string]string{"resume-text": "  ", "resume": file},
			expect: "resume from file",
		},
		{
			name: "nothing set without prompting",
			err:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := newInputCommand(tt.stdin)
			for name, value := range tt.flags {
				if err := cmd.Flags().Set(name, value); err != nil {
					t.Fatalf("set %s: %v", name, err)
				}
			}

			got, err := documentText(cmd, "resume", "resume-text", "Resume", false)
			if tt.err {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.TrimSpace(got) != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestCheckStdinInputs(t *testing.T) {
	t.Parallel()

	both := newInputCommand("")
	_ = both.Flags().Set("resume", "-")
	_ = both.Flags().Set("jd", "-")
	if err := checkStdinInputs(both); err == nil {
		t.Fatalf("expected error when both documents read stdin")
	}

	one := newInputCommand("")
	_ = one.Flags().Set("resume", "-")
	_ = one.Flags().Set("jd-text", "job description")
	_ = one.Flags().Set("jd", "-")
	if err := checkStdinInputs(one); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
