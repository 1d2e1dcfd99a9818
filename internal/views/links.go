// Package views holds the pure computations that turn the live configuration
// into what the page shows: filtered and grouped links, tag counts, lookups
// and scoped reordering.
package views

import (
	"sort"
	"strings"

	"github.com/MrSnakeDoc/dawnpage/internal/schema"
)

// TagCount is the number of links carrying a tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// SectionGroup is one section with the filtered links that belong to it.
type SectionGroup struct {
	Section schema.LinkSection `json:"section"`
	Items   []schema.LinkItem  `json:"items"`
}

// SortLinks returns a copy of items ordered by (sort, title).
func SortLinks(items []schema.LinkItem) []schema.LinkItem {
	out := append(make([]schema.LinkItem, 0, len(items)), items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Sort != out[j].Sort {
			return out[i].Sort < out[j].Sort
		}
		return compareText(out[i].Title, out[j].Title) < 0
	})
	return out
}

// FilterLinks orders items by (sort, title) then keeps those carrying tag
// (case-insensitive) and containing query in their searchable text. Empty
// tag or query disables that filter.
func FilterLinks(items []schema.LinkItem, query, tag string) []schema.LinkItem {
	q := strings.ToLower(strings.TrimSpace(query))
	tag = strings.ToLower(normalizeTag(tag))

	out := make([]schema.LinkItem, 0, len(items))
	for _, it := range SortLinks(items) {
		if tag != "" && !hasTag(it, tag) {
			continue
		}
		if q != "" && !strings.Contains(haystack(it), q) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Matches reports whether query occurs in the searchable text of item.
func Matches(item schema.LinkItem, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	return q == "" || strings.Contains(haystack(item), q)
}

func hasTag(item schema.LinkItem, lowered string) bool {
	for _, t := range item.Tags {
		if strings.ToLower(normalizeTag(t)) == lowered {
			return true
		}
	}
	return false
}

func haystack(item schema.LinkItem) string {
	return strings.ToLower(item.Title + " " + item.URL + " " + item.Description + " " + strings.Join(item.Tags, " "))
}

// TagCounts aggregates trimmed, non-empty tags across items, most used first
// and ties in name order.
func TagCounts(items []schema.LinkItem) []TagCount {
	counts := make(map[string]int)
	for _, it := range items {
		for _, t := range it.Tags {
			if key := normalizeTag(t); key != "" {
				counts[key]++
			}
		}
	}

	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return compareText(out[i].Tag, out[j].Tag) < 0
	})
	return out
}

// OrderedSections sorts sections by sort, keeping input order for ties.
func OrderedSections(sections []schema.LinkSection) []schema.LinkSection {
	out := append(make([]schema.LinkSection, 0, len(sections)), sections...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sort < out[j].Sort })
	return out
}

// GroupBySection returns one group per ordered section holding the links of
// filtered whose sectionId matches. Links naming a missing section appear in
// no group.
func GroupBySection(sections []schema.LinkSection, filtered []schema.LinkItem) []SectionGroup {
	ordered := OrderedSections(sections)
	groups := make([]SectionGroup, 0, len(ordered))
	for _, s := range ordered {
		members := make([]schema.LinkItem, 0)
		for _, it := range filtered {
			if it.SectionID == s.ID {
				members = append(members, it)
			}
		}
		groups = append(groups, SectionGroup{Section: s, Items: SortLinks(members)})
	}
	return groups
}

// NonEmpty drops groups without links.
func NonEmpty(groups []SectionGroup) []SectionGroup {
	out := make([]SectionGroup, 0, len(groups))
	for _, g := range groups {
		if len(g.Items) > 0 {
			out = append(out, g)
		}
	}
	return out
}

// NextSort is one more than the highest sort among items, or 0 when empty.
func NextSort(items []schema.LinkItem) int {
	highest := -1
	for _, it := range items {
		if it.Sort > highest {
			highest = it.Sort
		}
	}
	return highest + 1
}
