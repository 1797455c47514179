package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	bibinject "github.com/alnah/go-bibinject"
	"github.com/alnah/go-bibinject/internal/assets"
	"github.com/alnah/go-bibinject/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "generic error", err: errors.New("boom"), want: ExitGeneral},
		{name: "missing input flag", err: ErrNoInput, want: ExitUsage},
		{name: "output conflict", err: ErrNoOutput, want: ExitUsage},
		{name: "config not found", err: fmt.Errorf("wrap: %w", config.ErrConfigNotFound), want: ExitUsage},
		{name: "config parse", err: config.ErrConfigParse, want: ExitUsage},
		{name: "invalid order", err: bibinject.ErrInvalidOrder, want: ExitUsage},
		{name: "style not found", err: fmt.Errorf("loading style: %w", assets.ErrStyleNotFound), want: ExitUsage},
		{name: "file not found", err: fmt.Errorf("open: %w", os.ErrNotExist), want: ExitIO},
		{name: "read failure", err: fmt.Errorf("%w: no such file", ErrReadBibliography), want: ExitIO},
		{name: "write failure", err: ErrWriteOutput, want: ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestRunDispatch(t *testing.T) {
	if got := run([]string{"version"}); got != ExitSuccess {
		t.Errorf("run(version) = %d, want %d", got, ExitSuccess)
	}
	if got := run([]string{"help"}); got != ExitSuccess {
		t.Errorf("run(help) = %d, want %d", got, ExitSuccess)
	}
	if got := run(nil); got != ExitUsage {
		t.Errorf("run() = %d, want %d", got, ExitUsage)
	}
	if got := run([]string{"frobnicate"}); got != ExitUsage {
		t.Errorf("run(frobnicate) = %d, want %d", got, ExitUsage)
	}
}
