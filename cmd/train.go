package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/classifier"
	"github.com/spigell/resume-matcher/internal/history"
	"github.com/spigell/resume-matcher/internal/training"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the job title classifier on a labeled resume dataset",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		train(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().String("dataset", "", "path to the labeled dataset (.csv or .jsonl)")

	viper.BindPFlag("dataset.path", trainCmd.Flags().Lookup("dataset"))
}

func train(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	config, logger := setup()
	defer logger.Sync()

	if config.Dataset == nil || config.Dataset.Path == "" {
		logger.Fatal("dataset is required", zap.String("hint", "pass --dataset or set dataset.path in the configuration file"))
	}

	logger.Info("starting the training", zap.String("version", version), zap.String("dataset", config.Dataset.Path))

	store, err := newArtifactStore(ctx, config)
	if err != nil {
		logger.Fatal("creating the artifact store", zap.Error(err))
	}

	deps := training.Deps{Store: store, Logger: logger}
	if config.History != nil && config.History.Path != "" {
		db, err := history.Open(ctx, config.History.Path)
		if err != nil {
			logger.Fatal("opening the training history", zap.Error(err))
		}
		defer db.Close()
		deps.History = db
	}

	outcome, err := training.Run(ctx, training.Options{
		Dataset:  config.Dataset.Path,
		Artifact: artifactPath(config),
		Trainer:  trainerConfig(config),
	}, deps)
	switch {
	case errors.Is(err, classifier.ErrDataFormat):
		logger.Fatal("dataset has an unexpected format", zap.Error(err))
	case errors.Is(err, classifier.ErrInsufficientData):
		logger.Fatal("dataset is too small to train on", zap.Error(err))
	case err != nil:
		logger.Fatal("training failed", zap.Error(err))
	}

	report := outcome.Result.Report
	fmt.Printf("Model Accuracy: %.2f%%\n\n", report.AccuracyPercent())
	if err := report.WriteTable(os.Stdout); err != nil {
		logger.Fatal("printing the classification report", zap.Error(err))
	}
	fmt.Printf("\nModel saved to %s (run %s)\n", outcome.Artifact, outcome.RunID)
}
