package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key")
	if err := os.WriteFile(keyFile, []byte("  from-file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	emptyFile := filepath.Join(dir, "empty")
	if err := os.WriteFile(emptyFile, []byte("\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("RESUME_MATCHER_TEST_SECRET", " from-env ")

	tests := []struct {
		name    string
		src     Source
		want    string
		wantErr string
	}{
		{name: "file wins", src: Source{Name: "api key", File: keyFile, Value: "inline", Env: "RESUME_MATCHER_TEST_SECRET"}, want: "from-file"},
		{name: "inline value", src: Source{Value: " inline ", Env: "RESUME_MATCHER_TEST_SECRET"}, want: "inline"},
		{name: "environment", src: Source{Env: "RESUME_MATCHER_TEST_SECRET"}, want: "from-env"},
		{name: "empty file", src: Source{Name: "api key", File: emptyFile}, wantErr: "api key file"},
		{name: "missing file", src: Source{Name: "api key", File: filepath.Join(dir, "absent")}, wantErr: "reading api key"},
		{name: "unset env", src: Source{Name: "token", Env: "RESUME_MATCHER_TEST_UNSET"}, wantErr: "set RESUME_MATCHER_TEST_UNSET"},
		{name: "nothing configured", src: Source{}, wantErr: "secret is not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestOptional(t *testing.T) {
	got, err := Optional(Source{Name: "s3 secret", Env: "RESUME_MATCHER_TEST_UNSET"})
	if err != nil || got != "" {
		t.Fatalf("expected empty secret without error, got %q, %v", got, err)
	}

	if _, err := Optional(Source{File: filepath.Join(t.TempDir(), "absent")}); err == nil {
		t.Fatal("expected error for unreadable file")
	}
}
