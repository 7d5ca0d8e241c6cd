package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	maxDocumentRunes    = 12000
	maxListItems        = 40
)

// Advisor asks Gemini for resume improvement advice.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Advisor = (*Advisor)(nil)

func NewAdvisor(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Advisor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Model reports the underlying model name when the generator exposes it.
func (a *Advisor) Model() string {
	if m, ok := a.generator.(interface{ Model() string }); ok {
		return m.Model()
	}
	return ""
}

func (a *Advisor) Advise(ctx context.Context, req ai.Request) (*ai.Advice, error) {
	if strings.TrimSpace(req.ResumeText) == "" {
		return nil, errors.New("resume text is required")
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, errors.New("job description is required")
	}

	prompt := buildPrompt(req)

	a.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	advice, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}
	advice.Raw = raw

	return advice, nil
}

func buildPrompt(req ai.Request) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Resume:\n{{RESUME}}\n\nJob description:\n{{JOB_DESCRIPTION}}\n\nJSON Response:"
	}

	title := strings.TrimSpace(req.PredictedTitle)
	if title == "" {
		title = "unknown"
	}

	replacer := strings.NewReplacer(
		"{{PREDICTED_TITLE}}", title,
		"{{MATCH_SCORE}}", strconv.FormatFloat(req.MatchScore, 'f', 2, 64),
		"{{MATCHED_SKILLS}}", joinList(req.MatchedSkills),
		"{{MISSING_SKILLS}}", joinList(req.MissingSkills),
		"{{MISSING_SECTIONS}}", joinList(req.MissingSections),
		"{{RESUME}}", clip(req.ResumeText),
		"{{JOB_DESCRIPTION}}", clip(req.JobDescription),
	)
	return replacer.Replace(template)
}

func joinList(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	if len(items) > maxListItems {
		items = items[:maxListItems]
	}
	return strings.Join(items, ", ")
}

func clip(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= maxDocumentRunes {
		return s
	}
	return string(runes[:maxDocumentRunes])
}

func parseResponse(raw string) (*ai.Advice, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	advice := &ai.Advice{
		Summary:     coerceString(data["summary"]),
		Suggestions: coerceStrings(data["suggestions"]),
	}
	if advice.Summary == "" && len(advice.Suggestions) == 0 {
		return nil, errors.New("gemini response contains no advice")
	}

	return advice, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceStrings(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, line := range strings.Split(val, "\n") {
			line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*"))
			if line != "" {
				out = append(out, line)
			}
		}
		return out
	default:
		return nil
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
