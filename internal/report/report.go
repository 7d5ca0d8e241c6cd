// Package report renders analysis results to markdown, JSON or YAML files.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spigell/resume-matcher/internal/analysis"
)

const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"

	barWidth = 20
)

// ParseFormat normalizes a format name. Empty means markdown.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", FormatMarkdown:
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	case "yml", FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", s)
	}
}

// FormatFromPath guesses the format from the file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatMarkdown
	}
}

// Write renders res into path, creating parent directories.
func Write(path, format string, res *analysis.Result) error {
	var buf bytes.Buffer
	if err := Render(&buf, format, res); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Render writes res to w in the given format.
func Render(w io.Writer, format string, res *analysis.Result) error {
	if res == nil {
		return fmt.Errorf("nothing to render")
	}

	format, err := ParseFormat(format)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}
		return enc.Close()
	default:
		return renderMarkdown(w, res)
	}
}

// Bar draws a fixed-width text gauge for a 0-100 percentage.
func Bar(percent float64) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent/100*barWidth + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled) + "]"
}

func renderMarkdown(w io.Writer, res *analysis.Result) error {
	var b strings.Builder

	b.WriteString("# Resume Match Report\n\n")

	if res.Skills != nil {
		fmt.Fprintf(&b, "## Skill Match\n\n`%s` %.2f%%\n\n", Bar(res.Skills.Score), res.Skills.Score)
		fmt.Fprintf(&b, "- Matched skills (%d): %s\n", len(res.Skills.Matched), listOrNone(res.Skills.Matched))
		fmt.Fprintf(&b, "- Missing skills (%d): %s\n\n", len(res.Skills.Missing), listOrNone(res.Skills.Missing))
	}

	if res.Title != nil || res.TitleNote != "" {
		b.WriteString("## Predicted Job Title\n\n")
		if res.Title != nil {
			fmt.Fprintf(&b, "**%s** (confidence %.1f%%", res.Title.Label, res.Title.Confidence*100)
			if res.Title.Uncertain {
				b.WriteString(", uncertain")
			}
			b.WriteString(")\n\n")
			writeProbabilities(&b, res.Title.Probabilities)
		} else {
			fmt.Fprintf(&b, "_%s_\n\n", res.TitleNote)
		}
	}

	if res.Sections != nil {
		fmt.Fprintf(&b, "## Resume Structure\n\nScore: %d%%\n\n", res.Sections.Score)
		fmt.Fprintf(&b, "- Present: %s\n", listOrNone(res.Sections.Present))
		fmt.Fprintf(&b, "- Missing: %s\n\n", listOrNone(res.Sections.Missing))
	}

	if len(res.Feedback) > 0 {
		b.WriteString("## Feedback\n\n")
		for _, line := range res.Feedback {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	if res.Advice != nil {
		b.WriteString("## AI Advice\n\n")
		if res.Advice.Summary != "" {
			fmt.Fprintf(&b, "%s\n\n", res.Advice.Summary)
		}
		for i, s := range res.Advice.Suggestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
		if len(res.Advice.Suggestions) > 0 {
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeProbabilities(b *strings.Builder, probs map[string]float64) {
	if len(probs) == 0 {
		return
	}

	labels := make([]string, 0, len(probs))
	for label := range probs {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if probs[labels[i]] != probs[labels[j]] {
			return probs[labels[i]] > probs[labels[j]]
		}
		return labels[i] < labels[j]
	})

	b.WriteString("| Title | Probability |\n|---|---|\n")
	for _, label := range labels {
		fmt.Fprintf(b, "| %s | %.1f%% |\n", label, probs[label]*100)
	}
	b.WriteString("\n")
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
