package assets

import (
	"fmt"
	"strings"
)

// ValidateStyleName rejects names that could escape the styles directory:
// empty names, path separators, traversal sequences and null bytes.
func ValidateStyleName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidStyleName)
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: %q contains path separator or null byte", ErrInvalidStyleName, name)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q contains traversal sequence", ErrInvalidStyleName, name)
	}
	return nil
}
