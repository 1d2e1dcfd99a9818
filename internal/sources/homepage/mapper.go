package homepage

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path"
	"strings"

	"github.com/MrSnakeDoc/dawnpage/internal/edit"
	"github.com/MrSnakeDoc/dawnpage/internal/schema"
)

const (
	defaultSection = "homepage"
	bookmarkTag    = "bookmark"
)

// Mapper turns homepage files into a seed for edit.Merge. Every group becomes
// a section; entries without a usable http(s) href are skipped.
type Mapper struct {
	sections []schema.LinkSection
	seen     map[string]bool
	items    []schema.LinkItem
}

func NewMapper() *Mapper {
	return &Mapper{seen: make(map[string]bool)}
}

// AddServices maps every service of file.
func (m *Mapper) AddServices(file ServicesFile) {
	for _, groupMap := range file {
		for group, services := range groupMap {
			sectionID := m.section(group)
			for _, serviceMap := range services {
				for name, svc := range serviceMap {
					m.add(schema.LinkItem{
						Title:       strings.TrimSpace(name),
						URL:         svc.Href,
						Description: svc.Description,
						Tags:        []string{},
						SectionID:   sectionID,
						Open:        openBehavior(svc.Target),
						Icon:        mapIcon(svc.Icon),
					})
				}
			}
		}
	}
}

// AddBookmarks maps every bookmark of file. The abbreviation, when present,
// becomes a tag next to "bookmark".
func (m *Mapper) AddBookmarks(file BookmarksFile) {
	for _, groupMap := range file {
		for group, bookmarks := range groupMap {
			sectionID := m.section(group)
			for _, bookmarkMap := range bookmarks {
				for name, entries := range bookmarkMap {
					if len(entries) == 0 {
						continue
					}
					entry := entries[0]
					tags := []string{bookmarkTag}
					if abbr := strings.TrimSpace(entry.Abbr); abbr != "" {
						tags = append(tags, strings.ToLower(abbr))
					}
					m.add(schema.LinkItem{
						Title:       strings.TrimSpace(name),
						URL:         entry.Href,
						Description: entry.Description,
						Tags:        tags,
						SectionID:   sectionID,
						Open:        schema.OpenNewTab,
						Icon:        mapIcon(entry.Icon),
					})
				}
			}
		}
	}
}

// Seed returns what has been mapped so far.
func (m *Mapper) Seed() edit.Seed {
	return edit.Seed{
		Sections: append([]schema.LinkSection(nil), m.sections...),
		Items:    append([]schema.LinkItem(nil), m.items...),
	}
}

func (m *Mapper) section(group string) string {
	title := strings.TrimSpace(group)
	id := edit.Slug(title)
	if id == "" {
		id, title = defaultSection, "Homepage"
	}
	for _, s := range m.sections {
		if s.ID == id {
			return id
		}
	}
	m.sections = append(m.sections, schema.LinkSection{ID: id, Title: title, Sort: len(m.sections)})
	return id
}

func (m *Mapper) add(item schema.LinkItem) {
	href := strings.TrimSpace(item.URL)
	u, err := url.Parse(href)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return
	}
	id := LinkID(href)
	if m.seen[id] {
		return
	}
	m.seen[id] = true

	item.ID = id
	item.URL = href
	if item.Title == "" {
		item.Title = u.Hostname()
	}
	item.Sort = m.countIn(item.SectionID)
	m.items = append(m.items, item)
}

func (m *Mapper) countIn(sectionID string) int {
	n := 0
	for _, it := range m.items {
		if it.SectionID == sectionID {
			n++
		}
	}
	return n
}

// LinkID derives a stable id from an href, so re-imports find the link they
// created before even if its name changed.
func LinkID(href string) string {
	hash := sha256.Sum256([]byte(href))
	return "hp_" + hex.EncodeToString(hash[:])[:16]
}

// mapIcon maps homepage icon references. Material and simple-icons prefixes
// (mdi-, si-) have no PNG equivalent and fall back to the favicon.
func mapIcon(ref string) schema.Icon {
	ref = strings.TrimSpace(ref)
	lower := strings.ToLower(ref)
	switch {
	case ref == "":
		return schema.FaviconIcon{}
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return schema.URLIcon{URL: ref}
	case strings.HasPrefix(lower, "mdi-"), strings.HasPrefix(lower, "si-"):
		return schema.FaviconIcon{}
	}
	name := strings.TrimSuffix(ref, path.Ext(ref))
	if name == "" {
		return schema.FaviconIcon{}
	}
	return schema.DashboardIcon{Name: name}
}

func openBehavior(target string) schema.OpenBehavior {
	if strings.TrimSpace(target) == "_self" {
		return schema.OpenSameTab
	}
	return schema.OpenNewTab
}
