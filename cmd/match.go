package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/analysis"
	"github.com/spigell/resume-matcher/internal/extract"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/report"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a resume against a job description and suggest improvements",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("resume", "r", "", "resume file (.pdf, .docx, .txt, .md), - reads stdin")
	matchCmd.Flags().String("jd", "", "job description file (.pdf, .docx, .txt, .md), - reads stdin")
	matchCmd.Flags().String("resume-text", "", "resume as plain text, used instead of --resume")
	matchCmd.Flags().String("jd-text", "", "job description as plain text, used instead of --jd")
	matchCmd.Flags().StringP("report", "o", "", "write the report to this file instead of stdout")
	matchCmd.Flags().StringP("format", "f", "", "report format: markdown, json or yaml (default guessed from --report)")
	matchCmd.Flags().Bool("no-ai", false, "skip AI advice even when enabled in configuration")
	matchCmd.Flags().BoolP("non-interactive", "n", false, "fail instead of prompting for missing input")
}

func match(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	reportPath, _ := cmd.Flags().GetString("report")

	// stdout carries the report itself, so logs move to stderr.
	var logOpts []logger.Option
	if reportPath == "" {
		logOpts = append(logOpts, logger.WithOutput("stderr"))
	}
	config, log := setup(logOpts...)
	defer log.Sync()

	interactive := true
	if nonInteractive, _ := cmd.Flags().GetBool("non-interactive"); nonInteractive {
		interactive = false
	}

	if err := checkStdinInputs(cmd); err != nil {
		log.Fatal("reading the input documents", zap.Error(err))
	}

	resumeText, err := documentText(cmd, "resume", "resume-text", "Resume", interactive)
	if err != nil {
		log.Fatal("reading the resume", zap.Error(err))
	}
	jdText, err := documentText(cmd, "jd", "jd-text", "Job description", interactive)
	if err != nil {
		log.Fatal("reading the job description", zap.Error(err))
	}
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jdText) == "" {
		log.Fatal("please provide both a resume and a job description with text content")
	}

	formatFlag, _ := cmd.Flags().GetString("format")
	if formatFlag == "" && reportPath != "" {
		formatFlag = report.FormatFromPath(reportPath)
	}
	format, err := report.ParseFormat(formatFlag)
	if err != nil {
		log.Fatal("parsing the report format", zap.Error(err))
	}

	store, err := newArtifactStore(ctx, config)
	if err != nil {
		log.Fatal("creating the artifact store", zap.Error(err))
	}
	p, err := newPredictor(store, config, log)
	if err != nil {
		log.Fatal("creating the predictor", zap.Error(err))
	}

	deps := analysis.Deps{Logger: log, Predictor: p}

	aiEnabled := config.AI != nil && config.AI.Enabled
	steps := analysis.DefaultSteps(aiEnabled)
	if noAI, _ := cmd.Flags().GetBool("no-ai"); noAI {
		analysis.DisableByName(steps, analysis.StepAIAdvice, "--no-ai flag is set")
	} else if aiEnabled {
		advisor, err := newAIAdvisor(ctx, config.AI, log)
		if err != nil {
			log.Warn("skipping AI advice", zap.Error(err))
			analysis.DisableByName(steps, analysis.StepAIAdvice, err.Error())
		} else {
			deps.Advisor = advisor
		}
	}

	for _, status := range analysis.Describe(steps) {
		log.Debug("analysis step status", zap.Stringer("status", status))
	}

	runCtx := ctx
	if config.AI != nil && config.AI.Gemini != nil && config.AI.Gemini.Timeout > 0 && deps.Advisor != nil {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, config.AI.Gemini.Timeout)
		defer cancel()
	}

	result, err := analysis.Run(runCtx, deps, steps, analysis.Input{ResumeText: resumeText, JobDescription: jdText})
	if err != nil {
		log.Fatal("analysis failed", zap.Error(err))
	}
	if result.TitleNote == analysis.NoteModelNotTrained {
		log.Warn("job title was not predicted", zap.String("hint", notTrainedHint))
	}

	if reportPath == "" {
		if err := report.Render(cmd.OutOrStdout(), format, result); err != nil {
			log.Fatal("rendering the report", zap.Error(err))
		}
		return
	}

	if err := report.Write(reportPath, format, result); err != nil {
		log.Fatal("writing the report", zap.Error(err))
	}
	log.Info("report written", zap.String("path", reportPath), zap.String("format", format))
}

const (
	inputFile  = "Read a file"
	inputPaste = "Paste text"
)

// checkStdinInputs rejects reading both documents from stdin.
func checkStdinInputs(cmd *cobra.Command) error {
	resume, _ := cmd.Flags().GetString("resume")
	jd, _ := cmd.Flags().GetString("jd")
	resumeText, _ := cmd.Flags().GetString("resume-text")
	jdText, _ := cmd.Flags().GetString("jd-text")

	if strings.TrimSpace(resume) == "-" && resumeText == "" && strings.TrimSpace(jd) == "-" && jdText == "" {
		return errors.New("only one of --resume and --jd can read stdin")
	}
	return nil
}

// documentText returns the inline text flag, stdin for "-", the file named by the file flag,
// or asks for either a file or pasted text when nothing is set.
func documentText(cmd *cobra.Command, fileFlag, textFlag, label string, interactive bool) (string, error) {
	if text, _ := cmd.Flags().GetString(textFlag); strings.TrimSpace(text) != "" {
		return text, nil
	}

	path, _ := cmd.Flags().GetString(fileFlag)
	switch path = strings.TrimSpace(path); {
	case path == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	case path != "":
		return extract.File(path)
	case !interactive:
		return "", fmt.Errorf("--%s or --%s is not set", fileFlag, textFlag)
	}

	// Prompts draw on stderr so a report printed to stdout stays clean.
	mode := promptui.Select{
		Label:  label,
		Items:  []string{inputFile, inputPaste},
		Stdout: os.Stderr,
	}
	_, choice, err := mode.Run()
	if err != nil {
		return "", err
	}

	if choice == inputPaste {
		prompt := promptui.Prompt{
			Label:  label + " text",
			Stdout: os.Stderr,
			Validate: func(input string) error {
				if strings.TrimSpace(input) == "" {
					return errors.New("text must not be empty")
				}
				return nil
			},
		}
		return prompt.Run()
	}

	prompt := promptui.Prompt{
		Label:    label + " file",
		Validate: validateFile,
		Stdout:   os.Stderr,
	}
	path, err = prompt.Run()
	if err != nil {
		return "", err
	}
	return extract.File(strings.TrimSpace(path))
}

func validateFile(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return errors.New("path must not be empty")
	}
	info, err := os.Stat(input)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", input)
	}
	return nil
}
