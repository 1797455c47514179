package bibinject

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// placeholderPattern matches {{ name }} markers; whitespace around the
// name is ignored.
var placeholderPattern = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// firstOpenTag matches the first opening tag of a rendered fragment,
// the single insertion point for DOI links.
var firstOpenTag = regexp.MustCompile(`<[A-Za-z][^>]*>`)

// Cleanup patterns, applied in order: each rule operates on the output
// of the previous one.
var (
	emptyParens       = regexp.MustCompile(`\(\s*\)`)
	spaceBeforeComma  = regexp.MustCompile(`\s+,`)
	spaceBeforePeriod = regexp.MustCompile(`\s+\.`)
	commaAfterComma   = regexp.MustCompile(`,\s*,`)
	periodAfterComma  = regexp.MustCompile(`,\s*\.`)
	doublePeriod      = regexp.MustCompile(`\.\s*\.`)
	interiorSpaces    = regexp.MustCompile(`[ ]{2,}`)
	lineEdgeSpaces    = regexp.MustCompile(`(?m)^[ ]+|[ ]+$`)
)

// Renderer turns one entry into an HTML fragment using a style's markup.
// A Renderer holds no per-call state and is safe for concurrent use.
type Renderer struct {
	// DOIIcon is an optional icon resource locator. When set, DOI links
	// render as icon plus label instead of a text-only link.
	DOIIcon string

	log *zap.SugaredLogger
}

// NewRenderer creates a Renderer with a no-op diagnostics logger.
func NewRenderer() *Renderer {
	return &Renderer{log: zap.NewNop().Sugar()}
}

// SetLogger installs a diagnostics sink for non-fatal conditions
// (missing placeholder values). A nil logger restores the no-op sink.
func (r *Renderer) SetLogger(logger *zap.SugaredLogger) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	r.log = logger
}

// Render locates the bi-{type} block for the entry inside styleMarkup,
// substitutes placeholders, runs the punctuation cleanup pass, and
// appends a DOI link when the entry carries a doi field.
func (r *Renderer) Render(e Entry, styleMarkup string) (string, error) {
	opening, body, closing, err := splitStyleBlock(styleMarkup, e.Type)
	if err != nil {
		return "", err
	}

	body = placeholderPattern.ReplaceAllStringFunc(body, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := e.Fields[name]
		if !ok {
			r.log.Warnf("missing value for placeholder {{%s}} in entry %q", name, e.Key)
			return ""
		}
		return value
	})

	rendered := opening + cleanup(body) + closing

	if doi := e.Fields["doi"]; doi != "" {
		rendered = insertDOILink(rendered, doi, r.DOIIcon)
	}

	return rendered, nil
}

// splitStyleBlock captures the opening tag, inner template body and
// closing tag of the block whose opening tag carries id="bi-{type}".
// The closing tag is located by scanning for the nearest subsequent
// closing tag of the same element, so the block may span several lines
// or sit on a single one.
func splitStyleBlock(markup, entryType string) (opening, body, closing string, err error) {
	openPattern, err := regexp.Compile(
		`<([A-Za-z][A-Za-z0-9]*)\b[^>]*\bid=["']bi-` + regexp.QuoteMeta(entryType) + `["'][^>]*>`)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: bi-%s", ErrStyleBlockNotFound, entryType)
	}

	loc := openPattern.FindStringSubmatchIndex(markup)
	if loc == nil {
		return "", "", "", fmt.Errorf("%w: bi-%s", ErrStyleBlockNotFound, entryType)
	}
	tag := markup[loc[2]:loc[3]]

	// Extend the opening capture to cover the tag's line indentation and
	// any trailing newline, so reassembly preserves the style's layout.
	start := loc[0]
	for start > 0 && (markup[start-1] == ' ' || markup[start-1] == '\t') {
		start--
	}
	end := loc[1]
	for end < len(markup) && (markup[end] == ' ' || markup[end] == '\t') {
		end++
	}
	if end < len(markup) && markup[end] == '\n' {
		end++
	} else {
		end = loc[1]
	}
	opening = markup[start:end]

	rest := markup[end:]
	closeIdx := strings.Index(rest, "</"+tag+">")
	if closeIdx < 0 {
		return "", "", "", fmt.Errorf("%w: bi-%s", ErrStyleBlockNotFound, entryType)
	}

	// The closing tag's line indentation belongs to the closing capture.
	lineStart := closeIdx
	for lineStart > 0 && (rest[lineStart-1] == ' ' || rest[lineStart-1] == '\t') {
		lineStart--
	}

	body = rest[:lineStart]
	closing = rest[lineStart : closeIdx+len(tag)+3]
	return opening, body, closing, nil
}

// cleanup removes punctuation artifacts left behind by empty placeholder
// substitutions. Rule order matters; newlines are preserved throughout.
func cleanup(text string) string {
	text = emptyParens.ReplaceAllString(text, "")
	text = spaceBeforeComma.ReplaceAllString(text, ",")
	text = spaceBeforePeriod.ReplaceAllString(text, ".")
	text = commaAfterComma.ReplaceAllString(text, ",")
	text = periodAfterComma.ReplaceAllString(text, ".")
	text = doublePeriod.ReplaceAllString(text, ".")
	text = interiorSpaces.ReplaceAllString(text, " ")
	text = lineEdgeSpaces.ReplaceAllString(text, "")
	return text
}

// insertDOILink inserts a hyperlink to https://doi.org/{doi} immediately
// after the first opening tag of the rendered fragment.
func insertDOILink(rendered, doi, icon string) string {
	var link string
	if icon != "" {
		link = fmt.Sprintf(
			"\n"+`<a href="https://doi.org/%s" target="_blank" class="doi-link" aria-label="View DOI" style="display:inline-flex; align-items:center; gap:4px;"><img src="%s" alt="DOI icon" class="doi-icon"> DOI</a>`,
			doi, icon)
	} else {
		link = fmt.Sprintf(
			"\n"+`<a href="https://doi.org/%s" target="_blank" class="doi-link" aria-label="View DOI">DOI</a>`,
			doi)
	}

	loc := firstOpenTag.FindStringIndex(rendered)
	if loc == nil {
		return rendered + link
	}
	return rendered[:loc[1]] + link + rendered[loc[1]:]
}
