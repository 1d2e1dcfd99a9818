package views

import "github.com/MrSnakeDoc/dawnpage/internal/schema"

func FindLink(items []schema.LinkItem, id string) (schema.LinkItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return schema.LinkItem{}, false
}

func FindSection(sections []schema.LinkSection, id string) (schema.LinkSection, bool) {
	for _, s := range sections {
		if s.ID == id {
			return s, true
		}
	}
	return schema.LinkSection{}, false
}

func FindWidget(widgets []schema.Widget, id string) (schema.Widget, bool) {
	for _, w := range widgets {
		if w != nil && w.WidgetID() == id {
			return w, true
		}
	}
	return nil, false
}
