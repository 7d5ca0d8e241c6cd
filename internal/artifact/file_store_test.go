package artifact

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestFileStorePutCreatesDirectories(t *testing.T) {
	t.Parallel()

	store := NewFileStore()
	key := filepath.Join(t.TempDir(), "nested", "dir", "model.json")

	if err := store.Put(context.Background(), key, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	data, err := store.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Fatalf("unexpected data %q", data)
	}
}

func TestFileStorePutReplacesWithoutLeftovers(t *testing.T) {
	t.Parallel()

	store := NewFileStore()
	dir := t.TempDir()
	key := filepath.Join(dir, "model.json")

	for _, payload := range []string{"first", "second"} {
		if err := store.Put(context.Background(), key, []byte(payload)); err != nil {
			t.Fatalf("put %s: %v", payload, err)
		}
	}

	data, err := store.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("expected replaced content, got %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected only the artifact in %s, got %v", dir, names)
	}
}

func TestFileStoreMissingKey(t *testing.T) {
	t.Parallel()

	store := NewFileStore()
	key := filepath.Join(t.TempDir(), "absent.json")

	if _, err := store.Get(context.Background(), key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
	if _, err := store.Stat(context.Background(), key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("stat: expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreStatFingerprintChanges(t *testing.T) {
	t.Parallel()

	store := NewFileStore()
	key := filepath.Join(t.TempDir(), "model.json")

	if err := store.Put(context.Background(), key, []byte("v1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	first, err := store.Stat(context.Background(), key)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if first.Size != 2 || first.Fingerprint == "" {
		t.Fatalf("unexpected info %+v", first)
	}

	if err := store.Put(context.Background(), key, []byte("version two")); err != nil {
		t.Fatalf("put: %v", err)
	}
	second, err := store.Stat(context.Background(), key)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if second.Fingerprint == first.Fingerprint {
		t.Fatalf("fingerprint did not change after rewrite: %s", second.Fingerprint)
	}
}

func TestFileStoreCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	key := filepath.Join(t.TempDir(), "model.json")
	if err := NewFileStore().Put(ctx, key, []byte("x")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(key); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("artifact must not be written on canceled context, stat err: %v", err)
	}
}

func TestFileStoreStatFingerprintSameSizeAndTime(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("file identity is not part of the fingerprint on windows")
	}

	store := NewFileStore()
	key := filepath.Join(t.TempDir(), "model.json")
	stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	fingerprints := make([]string, 0, 2)
	for _, data := range []string{"run-a", "run-b"} {
		if err := store.Put(context.Background(), key, []byte(data)); err != nil {
			t.Fatalf("put: %v", err)
		}
		if err := os.Chtimes(key, stamp, stamp); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
		info, err := store.Stat(context.Background(), key)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if !info.ModTime.Equal(stamp) || info.Size != 5 {
			t.Fatalf("unexpected info %+v", info)
		}
		fingerprints = append(fingerprints, info.Fingerprint)
	}

	if fingerprints[0] == fingerprints[1] {
		t.Fatalf("rewrite with equal size and mtime kept fingerprint %s", fingerprints[0])
	}
}
