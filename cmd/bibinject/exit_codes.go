package main

import (
	"errors"
	"os"

	bibinject "github.com/alnah/go-bibinject"
	"github.com/alnah/go-bibinject/internal/assets"
	"github.com/alnah/go-bibinject/internal/config"
)

// Exit codes for the bibinject CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadBibliography) ||
		errors.Is(err, ErrReadTemplate) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidOrder) ||
		errors.Is(err, config.ErrInvalidGroup) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidStyleName) ||
		errors.Is(err, bibinject.ErrInvalidOrder) ||
		errors.Is(err, bibinject.ErrEmptyTargetID) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoOutput) {
		return ExitUsage
	}

	return ExitGeneral
}
