// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// MaxTextFileSize caps text file reads to prevent memory exhaustion
// from accidental binary or runaway inputs (default 16MB).
var MaxTextFileSize = int64(16 << 20)

// ErrFileTooLarge indicates a text file exceeds MaxTextFileSize.
var ErrFileTooLarge = errors.New("file exceeds maximum size")

// ReadTextFile reads a UTF-8 text file with a size cap.
func ReadTextFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > MaxTextFileSize {
		return "", fmt.Errorf("%w: %s is %d bytes (max %d)", ErrFileTooLarge, path, info.Size(), MaxTextFileSize)
	}

	content, err := os.ReadFile(path) // #nosec G304 -- caller-provided path
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather
// than a name. A string containing path separators is treated as a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like a URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
