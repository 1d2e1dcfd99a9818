package schema

// Sanitize removes status widgets and every layout entry that does not name
// a remaining widget. The input is not modified and Sanitize is idempotent.
func Sanitize(c AppConfig) AppConfig {
	out := c.Clone()

	items := make([]Widget, 0, len(out.Widgets.Items))
	ids := make(map[string]struct{}, len(out.Widgets.Items))
	for _, w := range out.Widgets.Items {
		if w == nil || w.Kind() == WidgetStatus {
			continue
		}
		items = append(items, w)
		ids[w.WidgetID()] = struct{}{}
	}

	layout := make([]WidgetLayout, 0, len(out.Widgets.Layout))
	for _, l := range out.Widgets.Layout {
		if _, ok := ids[l.I]; ok {
			layout = append(layout, l)
		}
	}

	out.Widgets.Items = items
	out.Widgets.Layout = layout
	return out
}
