package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

const (
	EngineGoogle   = "google"
	SourceBing     = "bing"
	UnitCelsius    = "c"
	UnitFahrenheit = "f"
)

// maxSafeInteger bounds integers the same way a JSON number can represent
// them exactly.
const maxSafeInteger = 1<<53 - 1

// Parse normalizes an untyped document, as produced by encoding/json or
// yaml.v3, into a fully-defaulted AppConfig. Unknown keys are ignored.
func Parse(input any) (AppConfig, error) {
	root, ok := input.(map[string]any)
	if !ok {
		return AppConfig{}, &ValidationError{Issues: []Issue{{Message: "expected object, received " + describe(input)}}}
	}

	n := &normalizer{}
	cfg := n.appConfig(root)
	if err := n.result(); err != nil {
		return AppConfig{}, err
	}
	if issues := checkConstraints(cfg, ""); len(issues) > 0 {
		return AppConfig{}, &ValidationError{Issues: issues}
	}
	return cfg, nil
}

// ParseJSON decodes data and normalizes it with Parse.
func ParseJSON(data []byte) (AppConfig, error) {
	raw, err := DecodeJSON(data)
	if err != nil {
		return AppConfig{}, err
	}
	return Parse(raw)
}

// ParseLinkItem normalizes a single link object, for example a request body.
func ParseLinkItem(input any) (LinkItem, error) {
	obj, ok := input.(map[string]any)
	if !ok {
		return LinkItem{}, &ValidationError{Issues: []Issue{{Message: "expected object, received " + describe(input)}}}
	}
	n := &normalizer{}
	item := n.linkItem(obj, "")
	if err := n.result(); err != nil {
		return LinkItem{}, err
	}
	if issues := checkConstraints(item, ""); len(issues) > 0 {
		return LinkItem{}, &ValidationError{Issues: issues}
	}
	return item, nil
}

// ParseLinkSection normalizes a single section object.
func ParseLinkSection(input any) (LinkSection, error) {
	obj, ok := input.(map[string]any)
	if !ok {
		return LinkSection{}, &ValidationError{Issues: []Issue{{Message: "expected object, received " + describe(input)}}}
	}
	n := &normalizer{}
	sec := n.linkSection(obj, "")
	if err := n.result(); err != nil {
		return LinkSection{}, err
	}
	if issues := checkConstraints(sec, ""); len(issues) > 0 {
		return LinkSection{}, &ValidationError{Issues: issues}
	}
	return sec, nil
}

// ParseLayout normalizes a list of layout records.
func ParseLayout(input any) ([]WidgetLayout, error) {
	list, ok := input.([]any)
	if !ok {
		return nil, &ValidationError{Issues: []Issue{{Message: "expected array, received " + describe(input)}}}
	}
	n := &normalizer{}
	out := make([]WidgetLayout, 0, len(list))
	var issues []Issue
	for i, raw := range list {
		p := index("", i)
		obj, ok := n.object(raw, p)
		if !ok {
			continue
		}
		l := n.layout(obj, p)
		issues = append(issues, checkConstraints(l, p)...)
		out = append(out, l)
	}
	if err := n.result(); err != nil {
		return nil, err
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return out, nil
}

// DecodeJSON decodes exactly one JSON value, keeping numbers exact.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &SyntaxError{Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &SyntaxError{Err: errors.New("unexpected data after top-level value")}
	}
	return raw, nil
}

type normalizer struct {
	issues []Issue
}

func (n *normalizer) fail(path, format string, args ...any) {
	n.issues = append(n.issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (n *normalizer) result() error {
	if len(n.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: n.issues}
}

func (n *normalizer) appConfig(obj map[string]any) AppConfig {
	return AppConfig{
		Version:   n.intOr(obj, "version", "", CurrentVersion),
		Theme:     Theme(n.stringOr(obj, "theme", "", string(ThemeDark))),
		Search:    n.search(n.child(obj, "search", ""), "search"),
		Wallpaper: n.wallpaper(n.child(obj, "wallpaper", ""), "wallpaper"),
		Effects:   n.effects(n.child(obj, "effects", ""), "effects"),
		Links:     n.links(n.child(obj, "links", ""), "links"),
		Widgets:   n.widgets(n.child(obj, "widgets", ""), "widgets"),
	}
}

func (n *normalizer) search(obj map[string]any, path string) SearchConfig {
	return SearchConfig{
		Engine:           n.stringOr(obj, "engine", path, EngineGoogle),
		ShowBangTooltips: n.boolOr(obj, "showBangTooltips", path, true),
	}
}

func (n *normalizer) wallpaper(obj map[string]any, path string) WallpaperConfig {
	return WallpaperConfig{
		Enabled: n.boolOr(obj, "enabled", path, true),
		Source:  n.stringOr(obj, "source", path, SourceBing),
		Dim:     n.numberOr(obj, "dim", path, 0.55),
		BlurPx:  n.numberOr(obj, "blurPx", path, 8),
	}
}

func (n *normalizer) effects(obj map[string]any, path string) Effects {
	return Effects{
		AmbientCanvas: n.boolOr(obj, "ambientCanvas", path, true),
		Noise:         n.boolOr(obj, "noise", path, true),
		CursorGlow:    n.boolOr(obj, "cursorGlow", path, true),
	}
}

func (n *normalizer) links(obj map[string]any, path string) Links {
	out := Links{Sections: []LinkSection{}, Items: []LinkItem{}}

	sp := join(path, "sections")
	for i, raw := range n.list(obj, "sections", path) {
		if m, ok := n.object(raw, index(sp, i)); ok {
			out.Sections = append(out.Sections, n.linkSection(m, index(sp, i)))
		}
	}

	ip := join(path, "items")
	for i, raw := range n.list(obj, "items", path) {
		if m, ok := n.object(raw, index(ip, i)); ok {
			out.Items = append(out.Items, n.linkItem(m, index(ip, i)))
		}
	}
	return out
}

func (n *normalizer) linkSection(obj map[string]any, path string) LinkSection {
	return LinkSection{
		ID:    n.requiredString(obj, "id", path),
		Title: n.requiredString(obj, "title", path),
		Sort:  n.intOr(obj, "sort", path, 0),
	}
}

func (n *normalizer) linkItem(obj map[string]any, path string) LinkItem {
	item := LinkItem{
		ID:          n.requiredString(obj, "id", path),
		Title:       n.requiredString(obj, "title", path),
		URL:         n.requiredString(obj, "url", path),
		Description: n.stringOr(obj, "description", path, ""),
		Tags:        []string{},
	}

	tp := join(path, "tags")
	for i, raw := range n.list(obj, "tags", path) {
		if s, ok := n.stringValue(raw, index(tp, i)); ok {
			item.Tags = append(item.Tags, s)
		}
	}

	item.SectionID = n.requiredString(obj, "sectionId", path)
	item.Sort = n.intOr(obj, "sort", path, 0)
	item.Open = OpenBehavior(n.stringOr(obj, "open", path, string(OpenNewTab)))
	item.Icon = n.icon(obj, "icon", path)
	return item
}

func (n *normalizer) icon(parent map[string]any, key, path string) Icon {
	raw, present := parent[key]
	if !present {
		return FaviconIcon{}
	}
	p := join(path, key)
	obj, ok := n.object(raw, p)
	if !ok {
		return FaviconIcon{}
	}
	kind, ok := n.discriminant(obj, p)
	if !ok {
		return FaviconIcon{}
	}

	switch IconKind(kind) {
	case IconFavicon:
		return FaviconIcon{}
	case IconURL:
		return URLIcon{URL: n.requiredString(obj, "url", p)}
	case IconDashboardIcons:
		return DashboardIcon{Name: n.requiredString(obj, "name", p)}
	default:
		n.fail(join(p, "type"), "unknown icon type %q, expected one of: favicon, url, dashboardicons", kind)
		return FaviconIcon{}
	}
}

func (n *normalizer) widgets(obj map[string]any, path string) Widgets {
	out := Widgets{
		Enabled: n.boolOr(obj, "enabled", path, true),
		Items:   []Widget{},
		Layout:  []WidgetLayout{},
	}

	ip := join(path, "items")
	for i, raw := range n.list(obj, "items", path) {
		m, ok := n.object(raw, index(ip, i))
		if !ok {
			continue
		}
		if w := n.widget(m, index(ip, i)); w != nil {
			out.Items = append(out.Items, w)
		}
	}

	lp := join(path, "layout")
	for i, raw := range n.list(obj, "layout", path) {
		if m, ok := n.object(raw, index(lp, i)); ok {
			out.Layout = append(out.Layout, n.layout(m, index(lp, i)))
		}
	}
	return out
}

func (n *normalizer) widget(obj map[string]any, path string) Widget {
	kind, ok := n.discriminant(obj, path)
	if !ok {
		return nil
	}

	switch WidgetKind(kind) {
	case WidgetClock:
		return ClockWidget{
			ID:       n.requiredString(obj, "id", path),
			Title:    n.stringOr(obj, "title", path, "Time"),
			Timezone: n.stringOr(obj, "timezone", path, TimezoneLocal),
		}
	case WidgetWeather:
		return WeatherWidget{
			ID:        n.requiredString(obj, "id", path),
			Title:     n.stringOr(obj, "title", path, "Weather"),
			Latitude:  n.numberOr(obj, "latitude", path, 0),
			Longitude: n.numberOr(obj, "longitude", path, 0),
			Timezone:  n.stringOr(obj, "timezone", path, TimezoneAuto),
			Unit:      n.stringOr(obj, "unit", path, UnitCelsius),
		}
	case WidgetStatus:
		w := StatusWidget{
			ID:      n.requiredString(obj, "id", path),
			Title:   n.stringOr(obj, "title", path, "Status"),
			Targets: []StatusTarget{},
		}
		tp := join(path, "targets")
		for i, raw := range n.list(obj, "targets", path) {
			m, ok := n.object(raw, index(tp, i))
			if !ok {
				continue
			}
			p := index(tp, i)
			w.Targets = append(w.Targets, StatusTarget{
				ID:    n.requiredString(m, "id", p),
				Title: n.requiredString(m, "title", p),
				URL:   n.requiredString(m, "url", p),
			})
		}
		w.IntervalSeconds = n.intOr(obj, "intervalSeconds", path, 60)
		return w
	default:
		n.fail(join(path, "type"), "unknown widget type %q, expected one of: clock, weather, status", kind)
		return nil
	}
}

func (n *normalizer) layout(obj map[string]any, path string) WidgetLayout {
	return WidgetLayout{
		I:    n.requiredString(obj, "i", path),
		X:    n.requiredInt(obj, "x", path),
		Y:    n.requiredInt(obj, "y", path),
		W:    n.requiredInt(obj, "w", path),
		H:    n.requiredInt(obj, "h", path),
		MinW: n.optionalInt(obj, "minW", path),
		MinH: n.optionalInt(obj, "minH", path),
	}
}

// discriminant reads the "type" field of a union member.
func (n *normalizer) discriminant(obj map[string]any, path string) (string, bool) {
	raw, present := obj["type"]
	p := join(path, "type")
	if !present {
		n.fail(p, "required")
		return "", false
	}
	return n.stringValue(raw, p)
}

// child returns the nested object under key, or an empty object when absent
// so that its fields take their defaults.
func (n *normalizer) child(obj map[string]any, key, path string) map[string]any {
	raw, present := obj[key]
	if !present {
		return map[string]any{}
	}
	m, ok := n.object(raw, join(path, key))
	if !ok {
		return map[string]any{}
	}
	return m
}

func (n *normalizer) object(raw any, path string) (map[string]any, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		n.fail(path, "expected object, received %s", describe(raw))
	}
	return m, ok
}

func (n *normalizer) list(obj map[string]any, key, path string) []any {
	raw, present := obj[key]
	if !present {
		return nil
	}
	l, ok := raw.([]any)
	if !ok {
		n.fail(join(path, key), "expected array, received %s", describe(raw))
	}
	return l
}

func (n *normalizer) stringValue(raw any, path string) (string, bool) {
	s, ok := raw.(string)
	if !ok {
		n.fail(path, "expected string, received %s", describe(raw))
	}
	return s, ok
}

func (n *normalizer) requiredString(obj map[string]any, key, path string) string {
	raw, present := obj[key]
	if !present {
		n.fail(join(path, key), "required")
		return ""
	}
	s, _ := n.stringValue(raw, join(path, key))
	return s
}

func (n *normalizer) stringOr(obj map[string]any, key, path, def string) string {
	raw, present := obj[key]
	if !present {
		return def
	}
	s, ok := n.stringValue(raw, join(path, key))
	if !ok {
		return def
	}
	return s
}

func (n *normalizer) boolOr(obj map[string]any, key, path string, def bool) bool {
	raw, present := obj[key]
	if !present {
		return def
	}
	b, ok := raw.(bool)
	if !ok {
		n.fail(join(path, key), "expected boolean, received %s", describe(raw))
		return def
	}
	return b
}

func (n *normalizer) numberValue(raw any, path string) (float64, bool) {
	f, ok := toFloat(raw)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		n.fail(path, "expected number, received %s", describe(raw))
		return 0, false
	}
	return f, true
}

func (n *normalizer) numberOr(obj map[string]any, key, path string, def float64) float64 {
	raw, present := obj[key]
	if !present {
		return def
	}
	f, ok := n.numberValue(raw, join(path, key))
	if !ok {
		return def
	}
	return f
}

func (n *normalizer) intValue(raw any, path string) (int, bool) {
	if num, ok := raw.(json.Number); ok {
		if i, err := num.Int64(); err == nil && i >= -maxSafeInteger && i <= maxSafeInteger {
			return int(i), true
		}
	}
	f, ok := n.numberValue(raw, path)
	if !ok {
		return 0, false
	}
	if f != math.Trunc(f) || math.Abs(f) > maxSafeInteger {
		n.fail(path, "expected integer, received %s", strconv.FormatFloat(f, 'g', -1, 64))
		return 0, false
	}
	return int(f), true
}

func (n *normalizer) intOr(obj map[string]any, key, path string, def int) int {
	raw, present := obj[key]
	if !present {
		return def
	}
	i, ok := n.intValue(raw, join(path, key))
	if !ok {
		return def
	}
	return i
}

func (n *normalizer) requiredInt(obj map[string]any, key, path string) int {
	raw, present := obj[key]
	if !present {
		n.fail(join(path, key), "required")
		return 0
	}
	i, _ := n.intValue(raw, join(path, key))
	return i
}

func (n *normalizer) optionalInt(obj map[string]any, key, path string) *int {
	raw, present := obj[key]
	if !present {
		return nil
	}
	i, ok := n.intValue(raw, join(path, key))
	if !ok {
		return nil
	}
	return &i
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint:
		return float64(v), true
	default:
		return 0, false
	}
}

func describe(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int64, int32, uint64, uint:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", raw)
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	if key == "" {
		return path
	}
	return path + "." + key
}

func index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
