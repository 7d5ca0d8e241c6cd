// Package artifact persists trained pipelines as versioned, immutable artifacts.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when no artifact exists under the requested key.
	ErrNotFound = errors.New("artifact not found")
	// ErrCorrupt is returned when stored bytes cannot be decoded.
	ErrCorrupt = errors.New("artifact is corrupt")
	// ErrIncompatible is returned when the artifact schema or version is not supported.
	ErrIncompatible = errors.New("artifact is incompatible")
)

// Info describes a stored object. Fingerprint changes whenever the object is rewritten.
type Info struct {
	Key         string
	Size        int64
	ModTime     time.Time
	Fingerprint string
}

// Store reads and writes opaque artifact bytes.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Stat(ctx context.Context, key string) (Info, error)
}

const (
	BackendFile = "file"
	BackendS3   = "s3"
)

// Config selects and configures a store backend.
type Config struct {
	Backend string
	S3      *S3Config
}

// NewStore builds the store selected by cfg. An empty backend means the local filesystem.
func NewStore(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendFile:
		return NewFileStore(), nil
	case BackendS3:
		if cfg.S3 == nil {
			return nil, fmt.Errorf("s3 configuration is required for the s3 artifact backend")
		}
		return NewS3Store(ctx, *cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported artifact backend: %s", cfg.Backend)
	}
}
