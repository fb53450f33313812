package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	sferrors "github.com/matzehuels/shannonfano/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"interrupted", fmt.Errorf("compute: %w", context.Canceled), exitInterrupted},
		{"validation", sferrors.New(sferrors.ErrCodeTooFewSymbols, "need 2"), exitInvalidData},
		{"precision", sferrors.New(sferrors.ErrCodePrecision, "too many digits"), exitFailure},
		{"plain", errors.New("boom"), exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVerboseFlag(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	root := newRoot()
	root.SetArgs([]string{"-v", "cache", "path"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}
}
