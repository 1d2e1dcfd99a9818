package edit

import (
	"errors"

	"github.com/MrSnakeDoc/dawnpage/internal/schema"
	"github.com/MrSnakeDoc/dawnpage/internal/session"
)

// ErrNoChange is returned by MergeSeed when everything in the seed is
// already present, so the session does not commit an identical document.
var ErrNoChange = errors.New("nothing to merge")

// Seed is a batch of sections and links imported from an external source.
type Seed struct {
	Sections []schema.LinkSection
	Items    []schema.LinkItem
}

// MergeResult counts what a merge added.
type MergeResult struct {
	Sections int
	Items    int
}

// Merge adds the sections and links of seed whose ids are not present yet.
// Existing entries are never overwritten, so user edits survive re-imports.
func Merge(c schema.AppConfig, seed Seed) (schema.AppConfig, MergeResult) {
	var res MergeResult

	sectionIDs := make(map[string]struct{}, len(c.Links.Sections))
	for _, s := range c.Links.Sections {
		sectionIDs[s.ID] = struct{}{}
	}
	for _, s := range seed.Sections {
		if _, ok := sectionIDs[s.ID]; ok {
			continue
		}
		sectionIDs[s.ID] = struct{}{}
		c.Links.Sections = append(c.Links.Sections, s)
		res.Sections++
	}

	itemIDs := make(map[string]struct{}, len(c.Links.Items))
	for _, it := range c.Links.Items {
		itemIDs[it.ID] = struct{}{}
	}
	for _, it := range seed.Items {
		if _, ok := itemIDs[it.ID]; ok {
			continue
		}
		itemIDs[it.ID] = struct{}{}
		c.Links.Items = append(c.Links.Items, tidyLink(it))
		res.Items++
	}
	return c, res
}

// MergeSeed wraps Merge as an updater and reports the counts through res.
func MergeSeed(seed Seed, res *MergeResult) session.Updater {
	return func(c schema.AppConfig) (schema.AppConfig, error) {
		next, r := Merge(c, seed)
		if res != nil {
			*res = r
		}
		if r == (MergeResult{}) {
			return c, ErrNoChange
		}
		return next, nil
	}
}
