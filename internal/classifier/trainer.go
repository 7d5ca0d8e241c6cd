package classifier

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// TrainerConfig gathers the dataset, feature and solver settings of a training run.
type TrainerConfig struct {
	Dataset  DatasetConfig
	Pipeline PipelineConfig
	TestSize float64
	Seed     int64
}

// Result is the outcome of a training run.
type Result struct {
	Pipeline  *Pipeline
	Report    Report
	Stats     FitStats
	Classes   []string
	TrainRows int
	TestRows  int
}

// Trainer fits a pipeline on a train split and evaluates it on the held-out rows.
type Trainer struct {
	cfg    TrainerConfig
	logger *zap.Logger
}

// NewTrainer creates a trainer. A nil logger disables logging.
func NewTrainer(cfg TrainerConfig, logger *zap.Logger) *Trainer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TestSize <= 0 || cfg.TestSize >= 1 {
		cfg.TestSize = DefaultTestSize
	}
	cfg.Dataset.applyDefaults()

	return &Trainer{cfg: cfg, logger: logger}
}

// Train loads the dataset at path and fits it.
func (t *Trainer) Train(ctx context.Context, path string) (*Result, error) {
	dataset, err := LoadDataset(path, t.cfg.Dataset)
	if err != nil {
		return nil, err
	}

	t.logger.Info("dataset loaded",
		zap.String("path", path),
		zap.Int("rows", len(dataset)),
		zap.String("text_column", t.cfg.Dataset.TextColumn),
		zap.String("label_column", t.cfg.Dataset.LabelColumn),
	)

	return t.Fit(ctx, dataset)
}

// Fit splits the dataset, trains the pipeline and evaluates it.
func (t *Trainer) Fit(ctx context.Context, dataset Dataset) (*Result, error) {
	classes := dataset.Classes()
	if len(classes) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 distinct labels, got %d", ErrInsufficientData, len(classes))
	}

	train, test := Split(dataset, t.cfg.TestSize, t.cfg.Seed)
	if n := len(train.Classes()); n < 2 {
		return nil, fmt.Errorf("%w: training split has %d distinct labels", ErrInsufficientData, n)
	}

	t.logger.Debug("dataset split",
		zap.Int("train_rows", len(train)),
		zap.Int("test_rows", len(test)),
		zap.Int64("seed", t.cfg.Seed),
		zap.Strings("labels", classes),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pipeline, stats, err := FitPipeline(train, t.cfg.Pipeline)
	if err != nil {
		return nil, fmt.Errorf("fit pipeline: %w", err)
	}

	if !stats.Converged {
		t.logger.Warn("solver stopped before convergence",
			zap.Int("iterations", stats.Iterations),
			zap.Float64("loss", stats.Loss),
		)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	predicted, err := pipeline.PredictAll(test.Texts())
	if err != nil {
		return nil, fmt.Errorf("predict test split: %w", err)
	}

	report, err := Evaluate(test.Labels(), predicted)
	if err != nil {
		return nil, err
	}

	t.logger.Info("model trained",
		zap.Float64("accuracy_percent", report.AccuracyPercent()),
		zap.Float64("macro_f1", report.MacroAvg.F1),
		zap.Int("vocabulary", pipeline.Vectorizer().Dim()),
		zap.Int("iterations", stats.Iterations),
		zap.Bool("converged", stats.Converged),
	)

	return &Result{
		Pipeline:  pipeline,
		Report:    report,
		Stats:     stats,
		Classes:   pipeline.Classes(),
		TrainRows: len(train),
		TestRows:  len(test),
	}, nil
}
