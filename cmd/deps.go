package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/ai/gemini"
	"github.com/spigell/resume-matcher/internal/artifact"
	"github.com/spigell/resume-matcher/internal/classifier"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/predictor"
	"github.com/spigell/resume-matcher/internal/secrets"
)

const notTrainedHint = "train a model first: resume-matcher train --dataset PATH"

// setup loads the configuration and builds the logger shared by all commands.
// Extra options are applied after the configured ones.
func setup(extra ...logger.Option) (*Config, *zap.Logger) {
	config, err := getConfig()
	if err != nil {
		log.Fatalf("getting a config: %s", err)
	}
	if config == nil {
		config = &Config{}
	}

	opts := []logger.Option{}
	if config.Log != nil {
		opts = append(opts, logger.WithFile(logger.FileConfig{
			Path:       config.Log.File,
			MaxSizeMB:  config.Log.MaxSizeMB,
			MaxBackups: config.Log.MaxBackups,
			MaxAgeDays: config.Log.MaxAgeDays,
		}))
	}

	opts = append(opts, extra...)

	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), opts...)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	return config, l
}

func artifactPath(config *Config) string {
	if config.Artifact == nil {
		return ""
	}
	return config.Artifact.Path
}

func newArtifactStore(ctx context.Context, config *Config) (artifact.Store, error) {
	if config.Artifact == nil {
		return artifact.NewFileStore(), nil
	}

	cfg := artifact.Config{Backend: config.Artifact.Backend}
	if s3 := config.Artifact.S3; s3 != nil && config.Artifact.Backend == artifact.BackendS3 {
		accessKey, err := secrets.Optional(secrets.Source{
			Name:  "s3 access key id",
			Value: s3.AccessKeyID,
			File:  s3.AccessKeyIDFile,
		})
		if err != nil {
			return nil, err
		}
		secretKey, err := secrets.Optional(secrets.Source{
			Name:  "s3 secret access key",
			Value: s3.SecretAccessKey,
			File:  s3.SecretAccessKeyFile,
		})
		if err != nil {
			return nil, err
		}

		cfg.S3 = &artifact.S3Config{
			Bucket:    s3.Bucket,
			Prefix:    s3.Prefix,
			Region:    s3.Region,
			Endpoint:  s3.Endpoint,
			AccessKey: accessKey,
			SecretKey: secretKey,
			PathStyle: s3.PathStyle,
		}
	}

	return artifact.NewStore(ctx, cfg)
}

func trainerConfig(config *Config) classifier.TrainerConfig {
	var cfg classifier.TrainerConfig
	if d := config.Dataset; d != nil {
		cfg.Dataset = classifier.DatasetConfig{TextColumn: d.TextColumn, LabelColumn: d.LabelColumn}
	}
	if t := config.Training; t != nil {
		cfg.TestSize = t.TestSize
		cfg.Seed = t.Seed
		cfg.Pipeline = classifier.PipelineConfig{
			Vectorizer: classifier.VectorizerConfig{MaxFeatures: t.MaxFeatures},
			Model: classifier.LogisticRegressionConfig{
				C:         t.C,
				MaxIter:   t.MaxIter,
				Tolerance: t.Tolerance,
			},
		}
	}
	return cfg
}

func newPredictor(store artifact.Store, config *Config, l *zap.Logger) (*predictor.Predictor, error) {
	opts := []predictor.Option{predictor.WithLogger(l)}
	if p := config.Predict; p != nil {
		opts = append(opts, predictor.WithMinConfidence(p.MinConfidence), predictor.WithCacheSize(p.CacheSize))
	}
	return predictor.New(store, artifactPath(config), opts...)
}

func newAIAdvisor(ctx context.Context, config *AIConfig, l *zap.Logger) (ai.Advisor, error) {
	if config == nil || !config.Enabled {
		return nil, errors.New("ai is disabled")
	}
	if config.Provider != "" && config.Provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", config.Provider)
	}
	if config.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.Gemini.APIKey,
		File:  config.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, err
	}

	aiLogger := logger.WithAIFields(l, "gemini", config.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, config.Gemini.Model, aiLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewAdvisor(generator, aiLogger, config.Gemini.MaxLogLength), nil
}
