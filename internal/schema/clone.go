package schema

// Clone returns a deep copy of c. Nil collections in c come back empty so the
// copy always encodes as a well-formed document.
func (c AppConfig) Clone() AppConfig {
	out := c

	out.Links.Sections = append(make([]LinkSection, 0, len(c.Links.Sections)), c.Links.Sections...)
	out.Links.Items = make([]LinkItem, 0, len(c.Links.Items))
	for _, it := range c.Links.Items {
		out.Links.Items = append(out.Links.Items, it.Clone())
	}

	out.Widgets.Items = make([]Widget, 0, len(c.Widgets.Items))
	for _, w := range c.Widgets.Items {
		out.Widgets.Items = append(out.Widgets.Items, cloneWidget(w))
	}

	out.Widgets.Layout = make([]WidgetLayout, 0, len(c.Widgets.Layout))
	for _, l := range c.Widgets.Layout {
		out.Widgets.Layout = append(out.Widgets.Layout, l.Clone())
	}
	return out
}

func (it LinkItem) Clone() LinkItem {
	out := it
	out.Tags = append(make([]string, 0, len(it.Tags)), it.Tags...)
	if out.Icon == nil {
		out.Icon = FaviconIcon{}
	}
	return out
}

func (l WidgetLayout) Clone() WidgetLayout {
	out := l
	if l.MinW != nil {
		out.MinW = IntPtr(*l.MinW)
	}
	if l.MinH != nil {
		out.MinH = IntPtr(*l.MinH)
	}
	return out
}

func cloneWidget(w Widget) Widget {
	if s, ok := w.(StatusWidget); ok {
		s.Targets = append(make([]StatusTarget, 0, len(s.Targets)), s.Targets...)
		return s
	}
	return w
}
