// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"testing"

	"github.com/gengen/gengen/internal/issue"
	"github.com/gengen/gengen/pkg/types"
)

func asActionable(err error, target **issue.ActionableError) bool {
	return errors.As(err, target)
}

func TestLoadOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    LoadOptions
		wantErr bool
	}{
		{"all empty", LoadOptions{}, false},
		{"all valid", LoadOptions{ConfigFilePath: "/tmp/config.cue", ConfigDirPath: "/tmp/config"}, false},
		{"blank file path", LoadOptions{ConfigFilePath: types.FilesystemPath("   ")}, true},
		{"blank dir path", LoadOptions{ConfigDirPath: types.FilesystemPath("\t")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidLoadOptions) {
				t.Errorf("errors.Is(err, ErrInvalidLoadOptions) = false for %v", err)
			}
			if !errors.Is(err, types.ErrInvalidFilesystemPath) {
				t.Errorf("field error should wrap ErrInvalidFilesystemPath, got %v", err)
			}
		})
	}
}

func TestProvider_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `build: max_parallel: 3`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Build.MaxParallel != 3 {
		t.Errorf("max_parallel = %d, want 3", cfg.Build.MaxParallel)
	}

	if _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: " "}); err == nil {
		t.Error("Load() with a blank path should fail")
	}
}

func TestStaticProvider(t *testing.T) {
	t.Parallel()

	want := DefaultConfig()
	got, err := NewStaticProvider(want).Load(context.Background(), LoadOptions{ConfigFilePath: "/does/not/exist"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Error("static provider must return its config unchanged")
	}
}
