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
	if err := os.WriteFile(keyFile, []byte("  from-file \n"), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}

	emptyFile := filepath.Join(dir, "empty")
	if err := os.WriteFile(emptyFile, nil, 0o600); err != nil {
		t.Fatalf("write empty file: %v", err)
	}

	t.Setenv("HR_SCREENER_TEST_KEY", " from-env ")

	tests := []struct {
		name    string
		src     Source
		expect  string
		wantErr string
	}{
		{name: "file wins", src: Source{File: keyFile, Env: "HR_SCREENER_TEST_KEY", Value: "inline"}, expect: "from-file"},
		{name: "env wins over value", src: Source{Env: "HR_SCREENER_TEST_KEY", Value: "inline"}, expect: "from-env"},
		{name: "inline value", src: Source{Value: " inline "}, expect: "inline"},
		{name: "unset env falls back to value", src: Source{Env: "HR_SCREENER_UNSET", Value: "inline"}, expect: "inline"},
		{name: "empty file", src: Source{Name: "api key", File: emptyFile}, wantErr: "is empty"},
		{name: "missing file", src: Source{File: filepath.Join(dir, "nope")}, wantErr: "reading secret"},
		{name: "nothing configured", src: Source{Name: "api key", Env: "HR_SCREENER_UNSET"}, wantErr: "set HR_SCREENER_UNSET"},
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
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
