package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spigell/resume-matcher/internal/classifier"
)

const (
	// Schema identifies job-title pipeline artifacts.
	Schema = "resume-matcher/job-title-pipeline"
	// Version is bumped whenever the pipeline encoding changes incompatibly.
	Version = 1
)

// Metadata is stored next to the pipeline for inspection; it does not affect predictions.
type Metadata struct {
	RunID     string    `json:"run_id,omitempty"`
	Dataset   string    `json:"dataset,omitempty"`
	TrainedAt time.Time `json:"trained_at"`
	Accuracy  float64   `json:"accuracy"`
	MacroF1   float64   `json:"macro_f1"`
	TrainRows int       `json:"train_rows"`
	TestRows  int       `json:"test_rows"`
	Labels    []string  `json:"labels"`
}

type envelope struct {
	Schema   string               `json:"schema"`
	Version  int                  `json:"version"`
	Metadata Metadata             `json:"metadata"`
	Pipeline *classifier.Pipeline `json:"pipeline"`
}

type header struct {
	Schema   string          `json:"schema"`
	Version  int             `json:"version"`
	Metadata Metadata        `json:"metadata"`
	Pipeline json.RawMessage `json:"pipeline"`
}

// Artifact is a decoded envelope.
type Artifact struct {
	Metadata Metadata
	Pipeline *classifier.Pipeline
}

// Encode serializes the pipeline inside a versioned envelope.
func Encode(pipeline *classifier.Pipeline, meta Metadata) ([]byte, error) {
	if pipeline == nil {
		return nil, classifier.ErrNotFitted
	}
	if meta.TrainedAt.IsZero() {
		meta.TrainedAt = time.Now().UTC()
	}
	if len(meta.Labels) == 0 {
		meta.Labels = pipeline.Classes()
	}

	data, err := json.Marshal(envelope{
		Schema:   Schema,
		Version:  Version,
		Metadata: meta,
		Pipeline: pipeline,
	})
	if err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	return data, nil
}

// Decode parses an envelope. The schema and version are checked before the pipeline is decoded.
func Decode(data []byte) (*Artifact, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if h.Schema != Schema {
		return nil, fmt.Errorf("%w: schema %q, want %q", ErrIncompatible, h.Schema, Schema)
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrIncompatible, h.Version, Version)
	}
	if len(bytes.TrimSpace(h.Pipeline)) == 0 || bytes.Equal(bytes.TrimSpace(h.Pipeline), []byte("null")) {
		return nil, fmt.Errorf("%w: pipeline is missing", ErrCorrupt)
	}

	pipeline := new(classifier.Pipeline)
	if err := json.Unmarshal(h.Pipeline, pipeline); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	return &Artifact{Metadata: h.Metadata, Pipeline: pipeline}, nil
}

// Save encodes the pipeline and writes it under key, replacing any previous artifact.
func Save(ctx context.Context, store Store, key string, pipeline *classifier.Pipeline, meta Metadata) error {
	data, err := Encode(pipeline, meta)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("save artifact %q: %w", key, err)
	}
	return nil
}

// Load reads and decodes the artifact under key.
func Load(ctx context.Context, store Store, key string) (*Artifact, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load artifact %q: %w", key, err)
	}

	a, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load artifact %q: %w", key, err)
	}
	return a, nil
}
