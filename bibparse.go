package bibinject

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// lineContinuation matches any whitespace run containing a newline.
// Collapsing these before scanning lets multi-line field values parse as
// if written on one line.
var lineContinuation = regexp.MustCompile(`[ \t\r]*\n[ \t\r\n]*`)

// bareToken matches a field value with no surrounding delimiters that is
// eligible for macro expansion.
var bareToken = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Parser scans bibliography text in the @type{key, field = value, ...}
// dialect, plus @comment, @preamble and @string blocks. Parser holds no
// per-call state: every Parse call works on a fresh arena, so a single
// Parser is safe for concurrent use.
type Parser struct {
	// ExpandMacros substitutes bare-token field values with the value of
	// a @string macro declared earlier in the document. Lookup is linear
	// in declaration order, first match wins, no recursion.
	ExpandMacros bool

	log *zap.SugaredLogger
}

// NewParser creates a Parser with a no-op diagnostics logger.
func NewParser() *Parser {
	return &Parser{log: zap.NewNop().Sugar()}
}

// SetLogger installs a diagnostics sink for non-fatal conditions
// (duplicate citation keys). A nil logger restores the no-op sink.
func (p *Parser) SetLogger(logger *zap.SugaredLogger) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	p.log = logger
}

// Parse scans text and returns a freshly constructed Document.
// Errors carry the byte offset of the failing @ or { within the
// line-normalized text. A duplicate citation key is not an error: the
// later entry is dropped with a diagnostic.
func (p *Parser) Parse(text string) (*Document, error) {
	src := lineContinuation.ReplaceAllString(text, " ")

	doc := &Document{}
	seen := make(map[string]bool)

	pos := 0
	for {
		at := strings.IndexByte(src[pos:], '@')
		if at < 0 {
			break
		}
		at += pos

		open := strings.IndexByte(src[at:], '{')
		if open < 0 {
			return nil, fmt.Errorf("%w at offset %d", ErrMalformedBlock, at)
		}
		open += at

		tag := strings.ToLower(strings.TrimSpace(src[at+1 : open]))
		if tag == "" {
			return nil, fmt.Errorf("%w at offset %d", ErrMalformedBlock, at)
		}

		body, end, ok := balancedBlock(src, open)
		if !ok {
			return nil, fmt.Errorf("%w at offset %d", ErrUnbalancedBraces, open)
		}

		switch tag {
		case "comment":
			doc.Comments = append(doc.Comments, strings.TrimSpace(body))
		case "preamble":
			doc.Preambles = append(doc.Preambles, stripOuterQuotes(strings.TrimSpace(body)))
		case "string":
			m, err := parseMacro(body, at)
			if err != nil {
				return nil, err
			}
			doc.Macros = append(doc.Macros, m)
		default:
			entry, err := p.parseEntry(tag, body, at, doc.Macros)
			if err != nil {
				return nil, err
			}
			if seen[entry.Key] {
				p.log.Warnf("duplicate citation key %q dropped", entry.Key)
				break
			}
			seen[entry.Key] = true
			doc.Entries = append(doc.Entries, entry)
		}

		pos = end
	}

	return doc, nil
}

// balancedBlock extracts the brace-balanced block opening at src[open].
// It returns the content between the outer braces, the index just past
// the closing brace, and whether the block terminated.
func balancedBlock(src string, open int) (body string, end int, ok bool) {
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return src[open+1 : i], i + 1, true
			}
		}
	}
	return "", 0, false
}

// parseMacro splits a @string body on its first = into name and value.
// The value is stripped of trailing commas and one layer of surrounding
// quotes or braces.
func parseMacro(body string, at int) (Macro, error) {
	eq := strings.IndexByte(body, '=')
	if eq < 0 {
		return Macro{}, fmt.Errorf("%w at offset %d", ErrMalformedMacro, at)
	}

	name := strings.TrimSpace(body[:eq])
	if name == "" {
		return Macro{}, fmt.Errorf("%w at offset %d", ErrMalformedMacro, at)
	}

	value := strings.TrimSpace(body[eq+1:])
	value = strings.TrimSpace(strings.Trim(value, ","))
	value = stripOuterDelims(value)

	return Macro{Name: name, Value: value}, nil
}

// parseEntry parses an entry body: the citation key up to the first
// comma, then comma-separated name = value assignments. macros holds the
// @string declarations seen so far in document order.
func (p *Parser) parseEntry(entryType, body string, at int, macros []Macro) (Entry, error) {
	key := body
	rest := ""
	if comma := strings.IndexByte(body, ','); comma >= 0 {
		key = body[:comma]
		rest = body[comma+1:]
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return Entry{}, fmt.Errorf("%w at offset %d", ErrMissingKey, at)
	}

	entry := Entry{
		Type:   entryType,
		Key:    key,
		Fields: make(map[string]string),
	}

	i := 0
	for i < len(rest) {
		// Skip whitespace and assignment separators.
		for i < len(rest) && (isSpace(rest[i]) || rest[i] == ',') {
			i++
		}
		if i >= len(rest) {
			break
		}

		eq := strings.IndexByte(rest[i:], '=')
		if eq < 0 {
			break
		}
		name := strings.TrimSpace(rest[i : i+eq])
		i += eq + 1

		for i < len(rest) && isSpace(rest[i]) {
			i++
		}

		value, next, bare := scanFieldValue(rest, i)
		i = next

		if bare && p.ExpandMacros && bareToken.MatchString(value) {
			value = expandMacro(value, macros)
		}

		if name != "" {
			entry.Fields[name] = value
		}
	}

	return entry, nil
}

// scanFieldValue reads one field value starting at rest[i]: a
// brace-balanced group, a double-quoted string, or a bare token running
// to the next comma. One layer of delimiters and surrounding whitespace
// are stripped. bare reports that the value had no delimiters.
func scanFieldValue(rest string, i int) (value string, next int, bare bool) {
	if i >= len(rest) {
		return "", i, false
	}

	switch rest[i] {
	case '{':
		body, end, ok := balancedBlock(rest, i)
		if !ok {
			// Unterminated group: the outer block scan already balanced
			// the entry, so take everything that remains.
			return strings.TrimSpace(rest[i+1:]), len(rest), false
		}
		return strings.TrimSpace(body), end, false
	case '"':
		close := strings.IndexByte(rest[i+1:], '"')
		if close < 0 {
			return strings.TrimSpace(rest[i+1:]), len(rest), false
		}
		return strings.TrimSpace(rest[i+1 : i+1+close]), i + close + 2, false
	default:
		end := strings.IndexByte(rest[i:], ',')
		if end < 0 {
			end = len(rest)
		} else {
			end += i
		}
		return strings.TrimSpace(rest[i:end]), end, true
	}
}

// expandMacro returns the value of the first macro named token, or the
// token itself when no macro matches.
func expandMacro(token string, macros []Macro) string {
	for _, m := range macros {
		if m.Name == token {
			return m.Value
		}
	}
	return token
}

// stripOuterQuotes removes one matching pair of double quotes.
func stripOuterQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// stripOuterDelims removes one matching pair of double quotes or braces.
func stripOuterDelims(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '{' && s[len(s)-1] == '}') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
