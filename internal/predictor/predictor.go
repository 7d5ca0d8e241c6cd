// Package predictor serves job-title predictions from a stored pipeline artifact.
package predictor

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/artifact"
	"github.com/spigell/resume-matcher/internal/logger"
)

// ErrModelNotTrained is returned when no artifact exists yet. It matches artifact.ErrNotFound.
var ErrModelNotTrained = artifact.ErrNotFound

const defaultCacheSize = 4

// Prediction is a classified document. Label is always one of the training labels.
type Prediction struct {
	Label         string             `json:"label" yaml:"label"`
	Confidence    float64            `json:"confidence" yaml:"confidence"`
	Probabilities map[string]float64 `json:"probabilities" yaml:"probabilities"`
	Uncertain     bool               `json:"uncertain" yaml:"uncertain"`
}

// Option customizes a Predictor.
type Option func(*Predictor)

// WithLogger sets the logger used for artifact loading events.
func WithLogger(l *zap.Logger) Option {
	return func(p *Predictor) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMinConfidence flags predictions below the floor as uncertain. The label is still returned.
func WithMinConfidence(floor float64) Option {
	return func(p *Predictor) {
		p.minConfidence = floor
	}
}

// WithCacheSize sets how many decoded artifact versions are kept in memory.
func WithCacheSize(size int) Option {
	return func(p *Predictor) {
		if size > 0 {
			p.cacheSize = size
		}
	}
}

// Predictor loads the artifact lazily and reuses the decoded pipeline until the stored object changes.
// It never writes to the store and is safe for concurrent use.
type Predictor struct {
	store         artifact.Store
	key           string
	minConfidence float64
	cacheSize     int
	logger        *zap.Logger

	cache *lru.Cache[string, *artifact.Artifact]
}

// New creates a predictor for the artifact stored under key.
func New(store artifact.Store, key string, opts ...Option) (*Predictor, error) {
	if store == nil {
		return nil, errors.New("artifact store is required")
	}
	if key == "" {
		return nil, errors.New("artifact key is required")
	}

	p := &Predictor{
		store:     store,
		key:       key,
		cacheSize: defaultCacheSize,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	cache, err := lru.New[string, *artifact.Artifact](p.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create artifact cache: %w", err)
	}
	p.cache = cache

	return p, nil
}

// Predict returns the most probable job title for text.
func (p *Predictor) Predict(ctx context.Context, text string) (string, error) {
	prediction, err := p.Classify(ctx, text)
	if err != nil {
		return "", err
	}
	return prediction.Label, nil
}

// Classify returns the label with its confidence and the full probability distribution.
func (p *Predictor) Classify(ctx context.Context, text string) (*Prediction, error) {
	a, err := p.Artifact(ctx)
	if err != nil {
		return nil, err
	}

	result, err := a.Pipeline.Classify(text)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	return &Prediction{
		Label:         result.Label,
		Confidence:    result.Confidence,
		Probabilities: result.Probabilities,
		Uncertain:     p.minConfidence > 0 && result.Confidence < p.minConfidence,
	}, nil
}

// Artifact returns the current decoded artifact, reloading it when the stored object changed.
func (p *Predictor) Artifact(ctx context.Context) (*artifact.Artifact, error) {
	info, err := p.store.Stat(ctx, p.key)
	if err != nil {
		if errors.Is(err, ErrModelNotTrained) {
			return nil, fmt.Errorf("model not trained yet: %w", err)
		}
		return nil, fmt.Errorf("stat artifact: %w", err)
	}

	cacheKey := p.key + "@" + info.Fingerprint
	if a, ok := p.cache.Get(cacheKey); ok {
		return a, nil
	}

	a, err := artifact.Load(ctx, p.store, p.key)
	if err != nil {
		if errors.Is(err, ErrModelNotTrained) {
			return nil, fmt.Errorf("model not trained yet: %w", err)
		}
		return nil, err
	}
	p.cache.Add(cacheKey, a)

	logger.WithFields(p.logger, logger.ModelFields(p.key, a.Metadata.RunID)...).Debug("artifact loaded",
		zap.String("fingerprint", info.Fingerprint),
		zap.Strings("labels", a.Pipeline.Classes()),
	)

	return a, nil
}
