package bibinject

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// monthNames is the fixed calendar sequence used for grouping and for
// ordering month headings.
var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// monthIndex maps lowercased month names and three-letter abbreviations
// to 1..12. Unrecognized months rank 0 for sorting purposes.
var monthIndex = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// authorSeparator matches the "and" separator between author names,
// case-insensitively, so "AND" and "And" variants split the same way.
var authorSeparator = regexp.MustCompile(`(?i)\s+and\s+`)

// unknownGroup is the bucket for entries missing a year or month.
const unknownGroup = "Unknown"

// Order returns a stable-sorted copy of entries. With group "author" the
// sort key is the lowercased last name of the primary author; otherwise
// entries sort by (year, month), with 0 for absent or unparsable values.
// reverse flips the ascending comparison.
func Order(entries []Entry, reverse bool, group string) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)

	if group == GroupAuthor {
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := primaryLastName(sorted[i].Fields["author"]), primaryLastName(sorted[j].Fields["author"])
			if reverse {
				return a > b
			}
			return a < b
		})
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		yi, mi := yearMonthKey(sorted[i])
		yj, mj := yearMonthKey(sorted[j])
		if reverse {
			yi, mi, yj, mj = yj, mj, yi, mi
		}
		if yi != yj {
			return yi < yj
		}
		return mi < mj
	})
	return sorted
}

// yearMonthKey derives the (year, month) sort key for an entry. Month
// fields resolve like grouping does: digit strings 1..12 directly,
// names and abbreviations through the month index, anything else 0.
func yearMonthKey(e Entry) (year, month int) {
	if y, err := strconv.Atoi(strings.TrimSpace(e.Fields["year"])); err == nil {
		year = y
	}

	val := strings.ToLower(strings.TrimSpace(e.Fields["month"]))
	if n, err := strconv.Atoi(val); err == nil {
		if n >= 1 && n <= 12 {
			month = n
		}
		return year, month
	}
	month = monthIndex[val]
	return year, month
}

// splitAuthors splits an author field on the "and" separator word,
// trimming each segment. A field with no separator is one author.
func splitAuthors(field string) []string {
	var authors []string
	for _, a := range authorSeparator.Split(strings.TrimSpace(field), -1) {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	return authors
}

// primaryLastName derives the lowercased last name of the first-listed
// author. "Last, First" takes the text before the comma; otherwise the
// final whitespace-delimited token. Missing author yields the empty
// string, which sorts first ascending and last descending.
func primaryLastName(field string) string {
	authors := splitAuthors(field)
	if len(authors) == 0 {
		return ""
	}

	primary := authors[0]
	if comma := strings.IndexByte(primary, ','); comma >= 0 {
		return strings.ToLower(strings.TrimSpace(primary[:comma]))
	}
	parts := strings.Fields(primary)
	if len(parts) == 0 {
		return ""
	}
	return strings.ToLower(parts[len(parts)-1])
}

// Grouped buckets entries for rendering. Exactly one of Flat or Nested
// is populated: Flat for year or author grouping, Nested for the
// year→month grouping.
type Grouped struct {
	Flat   map[string][]Entry
	Nested map[string]*MonthBuckets
}

// MonthBuckets holds one year's entries keyed by month name, preserving
// the order in which month keys first appeared.
type MonthBuckets struct {
	keys    []string
	entries map[string][]Entry
}

func newMonthBuckets() *MonthBuckets {
	return &MonthBuckets{entries: make(map[string][]Entry)}
}

func (b *MonthBuckets) add(month string, e Entry) {
	if _, ok := b.entries[month]; !ok {
		b.keys = append(b.keys, month)
	}
	b.entries[month] = append(b.entries[month], e)
}

// Keys returns the month keys in first-appearance order.
func (b *MonthBuckets) Keys() []string {
	keys := make([]string, len(b.keys))
	copy(keys, b.keys)
	return keys
}

// Entries returns the bucket for one month key.
func (b *MonthBuckets) Entries(month string) []Entry {
	return b.entries[month]
}

// Group buckets entries by the given mode. "author" files an entry under
// each of its listed authors; "year/month", "ym" and "month" produce the
// nested year→month shape; anything else groups flat by year. Absent
// years and unparsable months bucket under "Unknown".
func Group(entries []Entry, by string) Grouped {
	if by == GroupAuthor {
		flat := make(map[string][]Entry)
		for _, e := range entries {
			authors := splitAuthors(e.Fields["author"])
			if len(authors) == 0 {
				authors = []string{unknownGroup}
			}
			for _, a := range authors {
				flat[a] = append(flat[a], e)
			}
		}
		return Grouped{Flat: flat}
	}

	if by == GroupYearMonth || by == GroupYM || by == GroupMonth {
		nested := make(map[string]*MonthBuckets)
		for _, e := range entries {
			year := groupYear(e)
			if nested[year] == nil {
				nested[year] = newMonthBuckets()
			}
			nested[year].add(monthName(e.Fields["month"]), e)
		}
		return Grouped{Nested: nested}
	}

	flat := make(map[string][]Entry)
	for _, e := range entries {
		year := groupYear(e)
		flat[year] = append(flat[year], e)
	}
	return Grouped{Flat: flat}
}

// groupYear returns the year field verbatim, or "Unknown" when absent.
func groupYear(e Entry) string {
	if y := strings.TrimSpace(e.Fields["year"]); y != "" {
		return y
	}
	return unknownGroup
}

// monthName resolves a month field to a calendar month name. A digit
// string 1..12 maps directly; otherwise the first three characters are
// prefix-matched case-insensitively against the month names. No match
// resolves to "Unknown".
func monthName(field string) string {
	val := strings.ToLower(strings.TrimSpace(field))
	if val == "" {
		return unknownGroup
	}

	if n, err := strconv.Atoi(val); err == nil {
		if n >= 1 && n <= 12 {
			return monthNames[n-1]
		}
		return unknownGroup
	}

	prefix := val
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	for _, name := range monthNames {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			return name
		}
	}
	return unknownGroup
}
