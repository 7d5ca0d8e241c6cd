// Package training runs a full training job: fit, evaluate, persist the artifact and record the run.
package training

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/artifact"
	"github.com/spigell/resume-matcher/internal/classifier"
	"github.com/spigell/resume-matcher/internal/history"
	"github.com/spigell/resume-matcher/internal/logger"
)

// Recorder stores a summary of finished runs.
type Recorder interface {
	Record(ctx context.Context, run history.Run) (int64, error)
}

// Options selects the dataset, the artifact destination and the trainer settings.
type Options struct {
	Dataset  string
	Artifact string
	Trainer  classifier.TrainerConfig
}

// Deps holds the collaborators of a run. History is optional.
type Deps struct {
	Store    artifact.Store
	History  Recorder
	Logger   *zap.Logger
	NewRunID func() string
	Now      func() time.Time
}

// Outcome describes a finished run.
type Outcome struct {
	RunID     string
	Artifact  string
	TrainedAt time.Time
	Result    *classifier.Result
}

// Run trains on opts.Dataset and saves the pipeline under opts.Artifact. The artifact is only
// written after training and evaluation succeeded, so a failed run leaves the previous model in place.
func Run(ctx context.Context, opts Options, deps Deps) (*Outcome, error) {
	if strings.TrimSpace(opts.Dataset) == "" {
		return nil, errors.New("dataset path is required")
	}
	if strings.TrimSpace(opts.Artifact) == "" {
		return nil, errors.New("artifact path is required")
	}
	if deps.Store == nil {
		return nil, errors.New("artifact store is required")
	}
	if deps.NewRunID == nil {
		deps.NewRunID = uuid.NewString
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	runID := deps.NewRunID()
	log := logger.WithFields(deps.Logger, logger.ModelFields(opts.Artifact, runID)...)

	result, err := classifier.NewTrainer(opts.Trainer, log).Train(ctx, opts.Dataset)
	if err != nil {
		return nil, err
	}

	trainedAt := deps.Now().UTC()
	meta := artifact.Metadata{
		RunID:     runID,
		Dataset:   opts.Dataset,
		TrainedAt: trainedAt,
		Accuracy:  result.Report.AccuracyPercent(),
		MacroF1:   result.Report.MacroAvg.F1,
		TrainRows: result.TrainRows,
		TestRows:  result.TestRows,
		Labels:    result.Classes,
	}
	if err := artifact.Save(ctx, deps.Store, opts.Artifact, result.Pipeline, meta); err != nil {
		return nil, err
	}
	log.Info("model saved", zap.Strings("labels", result.Classes))

	if deps.History != nil {
		_, err := deps.History.Record(ctx, history.Run{
			RunID:     runID,
			Dataset:   opts.Dataset,
			Artifact:  opts.Artifact,
			Accuracy:  meta.Accuracy,
			MacroF1:   meta.MacroF1,
			TrainRows: meta.TrainRows,
			TestRows:  meta.TestRows,
			Labels:    meta.Labels,
			TrainedAt: trainedAt,
		})
		if err != nil {
			log.Warn("recording training run failed", zap.Error(err))
		}
	}

	return &Outcome{
		RunID:     runID,
		Artifact:  opts.Artifact,
		TrainedAt: trainedAt,
		Result:    result,
	}, nil
}

// Train fits a pipeline on the CSV or JSON Lines dataset at datasetPath with default settings,
// saves it to artifactPath on the local filesystem and returns it with the test accuracy in percent.
func Train(ctx context.Context, datasetPath, artifactPath string) (*classifier.Pipeline, float64, error) {
	outcome, err := Run(ctx, Options{
		Dataset:  datasetPath,
		Artifact: artifactPath,
		Trainer:  classifier.TrainerConfig{Seed: classifier.DefaultSeed},
	}, Deps{Store: artifact.NewFileStore()})
	if err != nil {
		return nil, 0, err
	}
	return outcome.Result.Pipeline, outcome.Result.Report.AccuracyPercent(), nil
}
