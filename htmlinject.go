package bibinject

import (
	"fmt"
	"regexp"
	"strings"
)

// defaultIndentUnit is used when the host document carries no detectable
// indentation.
const defaultIndentUnit = "  "

// tagNamePattern matches an element name after < or </.
const tagNamePattern = `[A-Za-z][A-Za-z0-9-]*`

// ElementInjector splices rendered content into a target element of a
// host HTML document, identified by its id attribute. The host string is
// never mutated; Inject returns a new document.
type ElementInjector struct{}

// NewElementInjector creates an ElementInjector.
func NewElementInjector() *ElementInjector {
	return &ElementInjector{}
}

// Inject replaces the interior of the first element whose id attribute
// equals targetID with content, re-indented one unit past the element's
// own indentation. Empty, whitespace-only and populated interiors are
// all fully replaced; the opening and closing tags are preserved
// verbatim. Documents with several matching elements are not an error:
// only the first in document order is modified.
func (inj *ElementInjector) Inject(hostHTML, content, targetID string) (string, error) {
	openPattern, err := regexp.Compile(
		`<(` + tagNamePattern + `)\b[^>]*\bid=["']` + regexp.QuoteMeta(targetID) + `["'][^>]*>`)
	if err != nil {
		return "", fmt.Errorf("%w: id=%q", ErrTargetNotFound, targetID)
	}

	loc := openPattern.FindStringSubmatchIndex(hostHTML)
	if loc == nil {
		return "", fmt.Errorf("%w: id=%q", ErrTargetNotFound, targetID)
	}
	tag := hostHTML[loc[2]:loc[3]]
	openStart, openEnd := loc[0], loc[1]

	if strings.HasSuffix(hostHTML[openStart:openEnd], "/>") {
		return "", fmt.Errorf("%w: <%s id=%q> is self-closing", ErrInjection, tag, targetID)
	}

	closeStart, ok := matchingCloseTag(hostHTML, openEnd, tag)
	if !ok {
		return "", fmt.Errorf("%w: no closing </%s> for id=%q", ErrInjection, tag, targetID)
	}

	baseIndent := lineIndent(hostHTML, openStart)
	indented := reindent(content, baseIndent+detectIndentUnit(hostHTML))

	var b strings.Builder
	b.Grow(len(hostHTML) + len(indented))
	b.WriteString(hostHTML[:openEnd])
	b.WriteString("\n")
	b.WriteString(indented)
	b.WriteString("\n")
	b.WriteString(baseIndent)
	b.WriteString(hostHTML[closeStart:])
	return b.String(), nil
}

// matchingCloseTag scans forward from pos for the closing tag matching
// an already-open <tag>, counting nested elements of the same name.
// Returns the index of the closing tag's <.
func matchingCloseTag(html string, pos int, tag string) (int, bool) {
	openToken := "<" + tag
	closeToken := "</" + tag + ">"
	depth := 1

	for pos < len(html) {
		next := strings.Index(html[pos:], "<")
		if next < 0 {
			return 0, false
		}
		pos += next

		if strings.HasPrefix(html[pos:], closeToken) {
			depth--
			if depth == 0 {
				return pos, true
			}
			pos += len(closeToken)
			continue
		}

		if strings.HasPrefix(html[pos:], openToken) && !isNameChar(html, pos+len(openToken)) {
			// Self-closing openers do not add nesting depth.
			if gt := strings.IndexByte(html[pos:], '>'); gt >= 0 && !strings.HasSuffix(html[pos:pos+gt+1], "/>") {
				depth++
			}
		}
		pos++
	}
	return 0, false
}

// isNameChar reports whether html[pos] continues an element name,
// distinguishing <div from <divider.
func isNameChar(html string, pos int) bool {
	if pos >= len(html) {
		return false
	}
	c := html[pos]
	return c == '-' || (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// lineIndent returns the leading whitespace preceding pos on its line.
// A tag that does not start its line has no base indent.
func lineIndent(s string, pos int) string {
	start := strings.LastIndexByte(s[:pos], '\n') + 1
	for i := start; i < pos; i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return ""
		}
	}
	return s[start:pos]
}

// detectIndentUnit scans lines top to bottom and returns the leading
// whitespace of the first indented non-blank line, verbatim. Documents
// with no indentation default to two spaces.
func detectIndentUnit(html string) string {
	for _, line := range strings.Split(html, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed != "" && len(trimmed) < len(line) {
			return line[:len(line)-len(trimmed)]
		}
	}
	return defaultIndentUnit
}

// reindent strips leading and trailing blank lines from content and
// prefixes every non-blank line with the given indentation.
func reindent(content, indent string) string {
	lines := strings.Split(strings.Trim(content, "\n"), "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
