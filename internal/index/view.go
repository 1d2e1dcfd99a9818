// Package index keeps lookup maps and memoized derived views of the live
// configuration so HTTP handlers never recompute them per request.
package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/dawnpage/internal/schema"
	"github.com/MrSnakeDoc/dawnpage/internal/session"
	"github.com/MrSnakeDoc/dawnpage/internal/views"
)

type memoKey struct {
	revision uint64
	query    string
	tag      string
}

// ViewIndex mirrors the latest session commit.
//
// Slices returned by its methods are shared between callers and must not be
// modified.
type ViewIndex struct {
	mu       sync.RWMutex
	ready    bool
	cfg      schema.AppConfig
	revision uint64
	savedAt  time.Time

	links    map[string]schema.LinkItem
	sections map[string]schema.LinkSection
	widgets  map[string]schema.Widget
	ordered  []schema.LinkSection
	tags     []views.TagCount

	memo     memoKey
	filtered []schema.LinkItem
	grouped  []views.SectionGroup
	computed int
}

func NewViewIndex() *ViewIndex {
	return &ViewIndex{
		links:    make(map[string]schema.LinkItem),
		sections: make(map[string]schema.LinkSection),
		widgets:  make(map[string]schema.Widget),
	}
}

// Attach subscribes idx to s. A session that is already initialized is
// mirrored immediately.
func (idx *ViewIndex) Attach(s *session.Session) {
	s.Subscribe(idx.Apply)
}

// Apply rebuilds the index from c. Commits older than the current one are
// ignored.
func (idx *ViewIndex) Apply(c session.Commit) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.ready && c.Revision <= idx.revision {
		return
	}

	links := make(map[string]schema.LinkItem, len(c.Config.Links.Items))
	for _, it := range c.Config.Links.Items {
		links[it.ID] = it
	}
	sections := make(map[string]schema.LinkSection, len(c.Config.Links.Sections))
	for _, s := range c.Config.Links.Sections {
		sections[s.ID] = s
	}
	widgets := make(map[string]schema.Widget, len(c.Config.Widgets.Items))
	for _, w := range c.Config.Widgets.Items {
		widgets[w.WidgetID()] = w
	}

	idx.ready = true
	idx.cfg = c.Config
	idx.revision = c.Revision
	idx.savedAt = c.SavedAt
	idx.links = links
	idx.sections = sections
	idx.widgets = widgets
	idx.ordered = views.OrderedSections(c.Config.Links.Sections)
	idx.tags = views.TagCounts(c.Config.Links.Items)
	idx.filtered = nil
	idx.grouped = nil
}

func (idx *ViewIndex) Ready() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.ready
}

func (idx *ViewIndex) Revision() uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.revision
}

// LastSavedAt is zero until the first commit after startup.
func (idx *ViewIndex) LastSavedAt() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.savedAt
}

// Config returns a private copy of the mirrored configuration.
func (idx *ViewIndex) Config() (schema.AppConfig, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if !idx.ready {
		return schema.AppConfig{}, false
	}
	return idx.cfg.Clone(), true
}

func (idx *ViewIndex) Link(id string) (schema.LinkItem, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	it, ok := idx.links[id]
	return it, ok
}

func (idx *ViewIndex) Section(id string) (schema.LinkSection, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	s, ok := idx.sections[id]
	return s, ok
}

func (idx *ViewIndex) Widget(id string) (schema.Widget, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	w, ok := idx.widgets[id]
	return w, ok
}

// Sections returns the sections in display order.
func (idx *ViewIndex) Sections() []schema.LinkSection {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.ordered
}

// Tags returns tag counts over all links.
func (idx *ViewIndex) Tags() []views.TagCount {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.tags
}

// Filtered returns the links matching query and tag in display order.
func (idx *ViewIndex) Filtered(query, tag string) []schema.LinkItem {
	filtered, _ := idx.views(query, tag)
	return filtered
}

// Grouped returns the filtered links grouped by section. Sections without
// matching links are included only when withEmpty is set.
func (idx *ViewIndex) Grouped(query, tag string, withEmpty bool) []views.SectionGroup {
	_, grouped := idx.views(query, tag)
	if withEmpty {
		return grouped
	}
	return views.NonEmpty(grouped)
}

func (idx *ViewIndex) views(query, tag string) ([]schema.LinkItem, []views.SectionGroup) {
	idx.mu.RLock()
	key := memoKey{revision: idx.revision, query: query, tag: tag}
	if idx.filtered != nil && idx.memo == key {
		defer idx.mu.RUnlock()
		return idx.filtered, idx.grouped
	}
	idx.mu.RUnlock()

	idx.mu.Lock()
	defer idx.mu.Unlock()

	key.revision = idx.revision
	if idx.filtered != nil && idx.memo == key {
		return idx.filtered, idx.grouped
	}
	filtered := views.FilterLinks(idx.cfg.Links.Items, query, tag)
	if filtered == nil {
		filtered = []schema.LinkItem{}
	}
	idx.memo = key
	idx.filtered = filtered
	idx.grouped = views.GroupBySection(idx.cfg.Links.Sections, filtered)
	idx.computed++
	return idx.filtered, idx.grouped
}
