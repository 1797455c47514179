package bibinject

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// GroupRenderer combines grouped entries with the snippet renderer to
// produce labeled, ordered HTML blocks.
type GroupRenderer struct {
	renderer    *Renderer
	styleMarkup string
}

// NewGroupRenderer creates a GroupRenderer rendering entries against the
// given style markup.
func NewGroupRenderer(renderer *Renderer, styleMarkup string) *GroupRenderer {
	return &GroupRenderer{renderer: renderer, styleMarkup: styleMarkup}
}

// RenderGroups renders grouped entries as a sequence of heading-labeled
// blocks: an <h2> per group key, and for the nested year→month shape an
// <h3> per month in calendar order. Blocks for different top-level keys
// are separated by a blank line. reverse flips the group key ordering.
func (g *GroupRenderer) RenderGroups(grouped Grouped, reverse bool) (string, error) {
	var keys []string
	switch {
	case grouped.Nested != nil:
		for k := range grouped.Nested {
			keys = append(keys, k)
		}
	default:
		for k := range grouped.Flat {
			keys = append(keys, k)
		}
	}
	sortGroupKeys(keys, reverse)

	blocks := make([]string, 0, len(keys))
	for _, key := range keys {
		var parts []string
		var err error

		if grouped.Nested != nil {
			parts, err = g.renderMonths(grouped.Nested[key])
		} else {
			parts, err = g.renderEntries(grouped.Flat[key])
		}
		if err != nil {
			return "", err
		}

		block := fmt.Sprintf("<h2>%s</h2>\n", key) + strings.Join(parts, "\n\n")
		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n\n"), nil
}

// RenderFlat renders ordered entries without headings, separated by
// blank lines. Used when no grouping is requested.
func (g *GroupRenderer) RenderFlat(entries []Entry) (string, error) {
	parts, err := g.renderEntries(entries)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, "\n\n"), nil
}

// renderMonths renders one year's buckets: an <h3> heading per month,
// months in calendar order with "Unknown" and any unrecognized name
// after the named months, keeping their original relative order.
func (g *GroupRenderer) renderMonths(buckets *MonthBuckets) ([]string, error) {
	months := buckets.Keys()
	sort.SliceStable(months, func(i, j int) bool {
		return monthRank(months[i]) < monthRank(months[j])
	})

	var parts []string
	for _, month := range months {
		parts = append(parts, fmt.Sprintf("<h3>%s</h3>", month))
		rendered, err := g.renderEntries(buckets.Entries(month))
		if err != nil {
			return nil, err
		}
		parts = append(parts, rendered...)
	}
	return parts, nil
}

// renderEntries renders each entry's HTML fragment.
func (g *GroupRenderer) renderEntries(entries []Entry) ([]string, error) {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		html, err := g.renderer.Render(e, g.styleMarkup)
		if err != nil {
			return nil, err
		}
		parts = append(parts, html)
	}
	return parts, nil
}

// monthRank positions a month heading in the fixed calendar sequence.
// Names outside the sequence sort after all named months.
func monthRank(month string) int {
	for i, name := range monthNames {
		if name == month {
			return i
		}
	}
	return len(monthNames)
}

// sortGroupKeys orders group keys: keys that parse fully as integers
// compare numerically and sort before textual keys, which compare
// case-insensitively. reverse flips the comparison.
func sortGroupKeys(keys []string, reverse bool) {
	sort.SliceStable(keys, func(i, j int) bool {
		less := groupKeyLess(keys[i], keys[j])
		if reverse {
			return groupKeyLess(keys[j], keys[i])
		}
		return less
	})
}

// groupKeyLess is the ascending comparison for group keys.
func groupKeyLess(a, b string) bool {
	na, aErr := strconv.Atoi(a)
	nb, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return na < nb
	case aErr == nil:
		return true // numeric keys sort before textual keys
	case bErr == nil:
		return false
	default:
		return strings.ToLower(a) < strings.ToLower(b)
	}
}
