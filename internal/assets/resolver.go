package assets

import (
	"errors"
	"sort"
)

// Resolver combines custom and embedded loaders with fallback logic:
// the custom loader is tried first, falling back to embedded styles when
// the style is not found in the custom location.
type Resolver struct {
	custom   Loader // nil if no custom path configured
	embedded Loader
}

// NewResolver creates a Resolver. With an empty customBasePath only
// embedded styles are served; otherwise custom styles take precedence.
func NewResolver(customBasePath string) (*Resolver, error) {
	resolver := &Resolver{embedded: NewEmbeddedLoader()}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a style, trying the custom loader first if configured.
func (r *Resolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found", not for validation or I/O errors.
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}
	return r.embedded.LoadStyle(name)
}

// ListStyles merges the custom and embedded style names, deduplicated
// and sorted.
func (r *Resolver) ListStyles() ([]string, error) {
	names, err := r.embedded.ListStyles()
	if err != nil {
		return nil, err
	}

	if r.custom != nil {
		custom, err := r.custom.ListStyles()
		if err != nil {
			return nil, err
		}
		seen := make(map[string]bool, len(names))
		for _, n := range names {
			seen[n] = true
		}
		for _, n := range custom {
			if !seen[n] {
				names = append(names, n)
			}
		}
	}

	sort.Strings(names)
	return names, nil
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
