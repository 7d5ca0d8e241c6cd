package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// FileStore keeps artifacts on the local filesystem; keys are file paths.
type FileStore struct{}

// NewFileStore creates a filesystem-backed store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Put writes data next to the destination and renames it into place, so readers see either
// the previous artifact or the new one, never a partial file. Missing directories are created.
func (s *FileStore) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(key)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(key)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary artifact: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temporary artifact: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temporary artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temporary artifact: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temporary artifact: %w", err)
	}

	if err := os.Rename(tmpName, key); err != nil {
		return fmt.Errorf("move artifact into place: %w", err)
	}
	return nil
}

// Get reads the artifact at key.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("read artifact %q: %w", key, err)
	}
	return data, nil
}

// Stat returns size and modification time of the artifact at key. The fingerprint also carries
// the file identity where the platform exposes one, so equal-sized rewrites within the timestamp
// resolution still differ.
func (s *FileStore) Stat(ctx context.Context, key string) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}

	st, err := os.Stat(key)
	if errors.Is(err, fs.ErrNotExist) {
		return Info{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return Info{}, fmt.Errorf("stat artifact %q: %w", key, err)
	}
	if st.IsDir() {
		return Info{}, fmt.Errorf("artifact %q is a directory", key)
	}

	fingerprint := strconv.FormatInt(st.ModTime().UnixNano(), 10) + "-" + strconv.FormatInt(st.Size(), 10)
	if id := fileID(st); id != "" {
		fingerprint += "-" + id
	}

	return Info{
		Key:         key,
		Size:        st.Size(),
		ModTime:     st.ModTime(),
		Fingerprint: fingerprint,
	}, nil
}
