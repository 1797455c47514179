// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"regexp"
	"strings"
)

// idAttribute matches id attributes in an HTML document, single or
// double quoted.
var idAttribute = regexp.MustCompile(`\bid=["']([^"']+)["']`)

// ForStyleNotFound lists the available refspec styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available styles: " + strings.Join(available, ", "))
}

// ForTargetNotFound lists the id attributes present in the host
// document, so the user can pick an existing container.
func ForTargetNotFound(hostHTML string) string {
	ids := DocumentIDs(hostHTML)
	if len(ids) == 0 {
		return format("host document has no id attributes; add id=\"...\" to the target element")
	}
	return format("ids present in host document: " + strings.Join(ids, ", "))
}

// ForConfigNotFound suggests the --config flag and the user config dir.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-bibinject") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForNoEntries suggests checking the bibliography syntax.
func ForNoEntries() string {
	return format("check that the file contains @type{key, ...} blocks")
}

// DocumentIDs returns the id attribute values found in an HTML document,
// in document order, deduplicated.
func DocumentIDs(html string) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, m := range idAttribute.FindAllStringSubmatch(html, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			ids = append(ids, m[1])
		}
	}
	return ids
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
