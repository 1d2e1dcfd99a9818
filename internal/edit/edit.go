// Package edit holds the configuration changes the page can request. Each
// constructor returns a session.Updater; none of them touch storage.
package edit

import (
	"errors"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/dawnpage/internal/schema"
	"github.com/MrSnakeDoc/dawnpage/internal/session"
	"github.com/MrSnakeDoc/dawnpage/internal/views"
)

var (
	ErrLinkNotFound    = errors.New("link not found")
	ErrSectionNotFound = errors.New("section not found")
	ErrSectionExists   = errors.New("section already exists")
	ErrWidgetNotFound  = errors.New("widget not found")
	ErrWidgetKind      = errors.New("widget has a different type")
	ErrInvalidTimezone = errors.New("unknown timezone")
)

// NewLinkID returns a fresh opaque link id.
func NewLinkID() string {
	return "link_" + uuid.NewString()
}

// NormalizeURL trims raw and assumes https when no http(s) scheme is given.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return s
	}
	return "https://" + s
}

// Slug turns a title into an id: lowercase letters and digits separated by
// single dashes.
func Slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

// tidyLink trims user-entered text and drops blank tags.
func tidyLink(item schema.LinkItem) schema.LinkItem {
	item.Title = strings.TrimSpace(item.Title)
	item.URL = NormalizeURL(item.URL)
	item.Description = strings.TrimSpace(item.Description)

	tags := make([]string, 0, len(item.Tags))
	for _, t := range item.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	item.Tags = tags

	switch icon := item.Icon.(type) {
	case nil:
		item.Icon = schema.FaviconIcon{}
	case schema.URLIcon:
		item.Icon = schema.URLIcon{URL: NormalizeURL(icon.URL)}
	case schema.DashboardIcon:
		item.Icon = schema.DashboardIcon{Name: strings.TrimSpace(icon.Name)}
	}
	if item.Open == "" {
		item.Open = schema.OpenNewTab
	}
	return item
}

func requireSection(c schema.AppConfig, id string) error {
	if _, ok := views.FindSection(c.Links.Sections, id); !ok {
		return ErrSectionNotFound
	}
	return nil
}

// AddLink puts item first in the list with a sort above every existing one.
// An empty id is replaced with a generated one.
func AddLink(item schema.LinkItem) session.Updater {
	return func(c schema.AppConfig) (schema.AppConfig, error) {
		if err := requireSection(c, item.SectionID); err != nil {
			return c, err
		}
		it := tidyLink(item)
		if it.ID == "" {
			it.ID = NewLinkID()
		}
		it.Sort = views.NextSort(c.Links.Items)
		c.Links.Items = append([]schema.LinkItem{it}, c.Links.Items...)
		return c, nil
	}
}

// SaveLink replaces the link with the same id.
func SaveLink(item schema.LinkItem) session.Updater {
	return func(c schema.AppConfig) (schema.AppConfig, error) {
		if err := requireSection(c, item.SectionID); err != nil {
			return c, err
		}
		for i, existing := range c.Links.Items {
			if existing.ID == item.ID {
				c.Links.Items[i] = tidyLink(item)
				return c, nil
			}
		}
		return c, ErrLinkNotFound
	}
}

func DeleteLink(id string) session.Updater {
	return func(c schema.AppConfig) (schema.AppConfig, error) {
		out := make([]schema.LinkItem, 0, len(c.Links.Items))
		for _, it := range c.Links.Items {
			if it.ID != id {
				out = append(out, it)
			}
		}
		if len(out) == len(c.Links.Items) {
			return c, ErrLinkNotFound
		}
		c.Links.Items = out
		return c, nil
	}
}

// ReorderLinks renumbers the listed links of scope by their list position.
func ReorderLinks(orderedIDs []string, scope views.Scope) session.Updater {
	return func(c schema.AppConfig) (schema.AppConfig, error) {
		if scope.SectionID != "" {
			if err := requireSection(c, scope.SectionID); err != nil {
				return c, err
			}
		}
		c.Links.Items = views.Reorder(c.Links.Items, orderedIDs, scope)
		return c, nil
	}
}

// AddSection appends a section. Without an id one is derived from the title;
// without a sort it goes after the last section.
func AddSection(id, title string, sort *int) session.Updater {
	return func(c schema.AppConfig) (schema.AppConfig, error) {
		title = strings.TrimSpace(title)
		if id == "" {
			id = Slug(title)
		}
		if _, ok := views.FindSection(c.Links.Sections, id); ok {
			return c, ErrSectionExists
		}

		next := 0
		for _, s := range c.Links.Sections {
			if s.Sort >= next {
				next = s.Sort + 1
			}
		}
		if sort != nil {
			next = *sort
		}
		c.Links.Sections = append(c.Links.Sections, schema.LinkSection{ID: id, Title: title, Sort: next})
		return c, nil
	}
}

// DeleteSection removes a section. Its links are kept; grouped views simply
// stop showing them until they are moved.
func DeleteSection(id string) session.Updater {
	return func(c schema.AppConfig) (schema.AppConfig, error) {
		out := make([]schema.LinkSection, 0, len(c.Links.Sections))
		for _, s := range c.Links.Sections {
			if s.ID != id {
				out = append(out, s)
			}
		}
		if len(out) == len(c.Links.Sections) {
			return c, ErrSectionNotFound
		}
		c.Links.Sections = out
		return c, nil
	}
}
