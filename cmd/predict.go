package cmd

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/extract"
	"github.com/spigell/resume-matcher/internal/predictor"
)

const topTerms = 10

var predictCmd = &cobra.Command{
	Use:   "predict [TEXT...]",
	Short: "Predict the best-fit job title for a resume",
	Run: func(cmd *cobra.Command, args []string) {
		predict(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)

	predictCmd.Flags().StringP("resume", "r", "", "resume file (.pdf, .docx, .txt, .md); positional text is used when unset")
	predictCmd.Flags().BoolP("verbose", "v", false, "print the confidence and the probability of every title")
}

func predict(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	config, logger := setup()
	defer logger.Sync()

	text := strings.Join(args, " ")
	if path, _ := cmd.Flags().GetString("resume"); path != "" {
		var err error
		text, err = extract.File(path)
		if err != nil {
			logger.Fatal("reading the resume", zap.String("path", path), zap.Error(err))
		}
	}

	store, err := newArtifactStore(ctx, config)
	if err != nil {
		logger.Fatal("creating the artifact store", zap.Error(err))
	}

	p, err := newPredictor(store, config, logger)
	if err != nil {
		logger.Fatal("creating the predictor", zap.Error(err))
	}

	prediction, err := p.Classify(ctx, text)
	if errors.Is(err, predictor.ErrModelNotTrained) {
		logger.Fatal("model not trained yet", zap.String("hint", notTrainedHint), zap.Error(err))
	}
	if err != nil {
		logger.Fatal("predicting the job title", zap.Error(err))
	}

	fmt.Println(prediction.Label)

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		note := ""
		if prediction.Uncertain {
			note = " (uncertain)"
		}
		fmt.Printf("confidence: %.1f%%%s\n", prediction.Confidence*100, note)

		labels := make([]string, 0, len(prediction.Probabilities))
		for label := range prediction.Probabilities {
			labels = append(labels, label)
		}
		sort.Slice(labels, func(i, j int) bool {
			return prediction.Probabilities[labels[i]] > prediction.Probabilities[labels[j]]
		})
		for _, label := range labels {
			fmt.Printf("  %-30s %.1f%%\n", label, prediction.Probabilities[label]*100)
		}

		a, err := p.Artifact(ctx)
		if err != nil {
			logger.Fatal("loading the model", zap.Error(err))
		}
		terms, err := a.Pipeline.Explain(text, prediction.Label, topTerms)
		if err != nil {
			logger.Fatal("explaining the prediction", zap.Error(err))
		}
		fmt.Printf("top terms (vocabulary of %d, run %s):\n", a.Pipeline.Vectorizer().Dim(), a.Metadata.RunID)
		if len(terms) == 0 {
			fmt.Println("  none of the words are in the vocabulary")
		}
		for _, term := range terms {
			fmt.Printf("  %-30s tf-idf %.3f  contribution %+.3f\n", term.Term, term.Weight, term.Contribution)
		}
	}
}
