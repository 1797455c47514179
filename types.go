package bibinject

import (
	"fmt"
	"strings"
)

// Order direction constants.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Grouping mode constants. GroupYearMonth, GroupYM and GroupMonth are
// aliases for the same nested year→month grouping.
const (
	GroupYear      = "year"
	GroupYearMonth = "year/month"
	GroupYM        = "ym"
	GroupMonth     = "month"
	GroupAuthor    = "author"
)

// Entry is one bibliographic record: a type (article, book, ...), a
// citation key, and a field map. Field names are case-sensitive.
type Entry struct {
	Type   string
	Key    string
	Fields map[string]string
}

// Macro is a single @string{name = "value"} declaration. Macros are kept
// as an ordered sequence, not a symbol table: a macro is visible only to
// entries parsed after its declaration.
type Macro struct {
	Name  string
	Value string
}

// Document is the result of parsing one bibliography text.
// Entries preserve insertion order and have unique citation keys; the
// first occurrence of a key wins and later duplicates are dropped.
type Document struct {
	Entries   []Entry
	Comments  []string
	Preambles []string
	Macros    []Macro
}

// Input contains pipeline parameters for a single run.
type Input struct {
	HostHTML string // Host HTML document (required)
	BibText  string // Bibliography text in the BibTeX dialect (required)
	Style    string // Refspec style name (required)
	Order    string // "asc" or "desc" (empty = "asc")
	Group    string // Optional grouping: year, year/month, ym, month, author
	TargetID string // id attribute of the container to fill (required)
	DOIIcon  string // Optional icon locator for DOI links
}

// Validate checks that required fields are present and valid.
func (in Input) Validate() error {
	if in.HostHTML == "" {
		return ErrEmptyHost
	}
	if in.BibText == "" {
		return ErrEmptyBib
	}
	if in.Style == "" {
		return ErrEmptyStyle
	}
	if in.TargetID == "" {
		return ErrEmptyTargetID
	}
	switch strings.ToLower(in.Order) {
	case "", OrderAsc, OrderDesc:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be asc or desc)", ErrInvalidOrder, in.Order)
	}
}

// reverse reports whether the run sorts descending.
func (in Input) reverse() bool {
	return strings.EqualFold(in.Order, OrderDesc)
}
