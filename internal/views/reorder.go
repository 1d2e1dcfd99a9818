package views

import "github.com/MrSnakeDoc/dawnpage/internal/schema"

// Scope bounds a reorder. The zero value is the global scope; a SectionID
// restricts renumbering to links of that section.
type Scope struct {
	SectionID string
}

// Reorder assigns each in-scope link listed in orderedIDs a sort equal to its
// position in the list. Every other link keeps its sort. The input is not
// modified.
func Reorder(items []schema.LinkItem, orderedIDs []string, scope Scope) []schema.LinkItem {
	pos := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		pos[id] = i
	}

	out := make([]schema.LinkItem, 0, len(items))
	for _, it := range items {
		p, listed := pos[it.ID]
		if listed && (scope.SectionID == "" || it.SectionID == scope.SectionID) {
			it.Sort = p
		}
		out = append(out, it)
	}
	return out
}
