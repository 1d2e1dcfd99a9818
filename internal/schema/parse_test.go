package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, text string) any {
	t.Helper()
	raw, err := DecodeJSON([]byte(text))
	require.NoError(t, err)
	return raw
}

func issuePaths(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	paths := make([]string, 0, len(verr.Issues))
	for _, is := range verr.Issues {
		paths = append(paths, is.Path)
	}
	return paths
}

func TestParseEmptyObjectIsFullyDefaulted(t *testing.T) {
	cfg, err := ParseJSON([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, ThemeDark, cfg.Theme)
	assert.Equal(t, SearchConfig{Engine: "google", ShowBangTooltips: true}, cfg.Search)
	assert.Equal(t, WallpaperConfig{Enabled: true, Source: "bing", Dim: 0.55, BlurPx: 8}, cfg.Wallpaper)
	assert.Equal(t, Effects{AmbientCanvas: true, Noise: true, CursorGlow: true}, cfg.Effects)
	assert.NotNil(t, cfg.Links.Sections)
	assert.NotNil(t, cfg.Links.Items)
	assert.Empty(t, cfg.Links.Items)
	assert.True(t, cfg.Widgets.Enabled)
	assert.NotNil(t, cfg.Widgets.Items)
	assert.NotNil(t, cfg.Widgets.Layout)
}

func TestParseDefaultsNestedFields(t *testing.T) {
	cfg, err := ParseJSON([]byte(`{
		"theme": "light",
		"wallpaper": {"dim": 0.2},
		"links": {
			"sections": [{"id": "s", "title": "S"}],
			"items": [{"id": "a", "title": "A", "url": "https://a.example", "sectionId": "s"}]
		},
		"widgets": {"items": [{"type": "clock", "id": "c"}, {"type": "weather", "id": "w"}]}
	}`))
	require.NoError(t, err)

	assert.Equal(t, ThemeLight, cfg.Theme)
	assert.Equal(t, 0.2, cfg.Wallpaper.Dim)
	assert.Equal(t, 8.0, cfg.Wallpaper.BlurPx)
	assert.True(t, cfg.Wallpaper.Enabled)

	require.Len(t, cfg.Links.Sections, 1)
	assert.Equal(t, 0, cfg.Links.Sections[0].Sort)

	require.Len(t, cfg.Links.Items, 1)
	item := cfg.Links.Items[0]
	assert.Equal(t, []string{}, item.Tags)
	assert.Equal(t, OpenNewTab, item.Open)
	assert.Equal(t, FaviconIcon{}, item.Icon)
	assert.Equal(t, 0, item.Sort)
	assert.Empty(t, item.Description)

	require.Len(t, cfg.Widgets.Items, 2)
	assert.Equal(t, ClockWidget{ID: "c", Title: "Time", Timezone: "local"}, cfg.Widgets.Items[0])
	assert.Equal(t, WeatherWidget{ID: "w", Title: "Weather", Timezone: "auto", Unit: "c"}, cfg.Widgets.Items[1])
}

func TestParseKeepsProvidedValues(t *testing.T) {
	cfg, err := ParseJSON([]byte(`{
		"version": 3,
		"links": {"items": [{
			"id": "a", "title": "A", "url": "https://a.example", "sectionId": "s",
			"description": "first", "tags": ["x", "y"], "sort": 7, "open": "same_tab",
			"icon": {"type": "dashboardicons", "name": "plex"}
		}]},
		"widgets": {"layout": [{"i": "c", "x": 1, "y": 2, "w": 3, "h": 4, "minW": 2}]}
	}`))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Version)
	item := cfg.Links.Items[0]
	assert.Equal(t, "first", item.Description)
	assert.Equal(t, []string{"x", "y"}, item.Tags)
	assert.Equal(t, 7, item.Sort)
	assert.Equal(t, OpenSameTab, item.Open)
	assert.Equal(t, DashboardIcon{Name: "plex"}, item.Icon)

	l := cfg.Widgets.Layout[0]
	require.NotNil(t, l.MinW)
	assert.Equal(t, 2, *l.MinW)
	assert.Nil(t, l.MinH)
}

func TestParseIgnoresUnknownKeys(t *testing.T) {
	cfg, err := ParseJSON([]byte(`{"extra": true, "search": {"engine": "google", "nope": 1}}`))
	require.NoError(t, err)
	assert.Equal(t, "google", cfg.Search.Engine)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{"not an object", `[]`, []string{""}},
		{"null root", `null`, []string{""}},
		{"dim out of range", `{"wallpaper": {"dim": 1.5}}`, []string{"wallpaper.dim"}},
		{"blur not numeric", `{"wallpaper": {"blurPx": "8"}}`, []string{"wallpaper.blurPx"}},
		{"blur negative", `{"wallpaper": {"blurPx": -1}}`, []string{"wallpaper.blurPx"}},
		{"unknown theme", `{"theme": "blue"}`, []string{"theme"}},
		{"unknown engine", `{"search": {"engine": "bing"}}`, []string{"search.engine"}},
		{"null search", `{"search": null}`, []string{"search"}},
		{"fractional version", `{"version": 1.5}`, []string{"version"}},
		{
			"link missing required fields",
			`{"links": {"items": [{"id": "x"}]}}`,
			[]string{"links.items[0].title", "links.items[0].url", "links.items[0].sectionId"},
		},
		{
			"bad link url",
			`{"links": {"items": [{"id": "x", "title": "X", "url": "not a url", "sectionId": "s"}]}}`,
			[]string{"links.items[0].url"},
		},
		{
			"empty link id",
			`{"links": {"items": [{"id": "", "title": "X", "url": "https://x.example", "sectionId": "s"}]}}`,
			[]string{"links.items[0].id"},
		},
		{
			"bad icon url",
			`{"links": {"items": [{"id": "x", "title": "X", "url": "https://x.example", "sectionId": "s", "icon": {"type": "url", "url": "nope"}}]}}`,
			[]string{"links.items[0].icon.url"},
		},
		{
			"unknown icon type",
			`{"links": {"items": [{"id": "x", "title": "X", "url": "https://x.example", "sectionId": "s", "icon": {"type": "emoji"}}]}}`,
			[]string{"links.items[0].icon.type"},
		},
		{
			"tag not a string",
			`{"links": {"items": [{"id": "x", "title": "X", "url": "https://x.example", "sectionId": "s", "tags": [1]}]}}`,
			[]string{"links.items[0].tags[0]"},
		},
		{"unknown widget type", `{"widgets": {"items": [{"type": "news", "id": "n"}]}}`, []string{"widgets.items[0].type"}},
		{"widget without type", `{"widgets": {"items": [{"id": "n"}]}}`, []string{"widgets.items[0].type"}},
		{"latitude out of range", `{"widgets": {"items": [{"type": "weather", "id": "w", "latitude": 91}]}}`, []string{"widgets.items[0].latitude"}},
		{"longitude out of range", `{"widgets": {"items": [{"type": "weather", "id": "w", "longitude": -181}]}}`, []string{"widgets.items[0].longitude"}},
		{"bad unit", `{"widgets": {"items": [{"type": "weather", "id": "w", "unit": "k"}]}}`, []string{"widgets.items[0].unit"}},
		{"zero interval", `{"widgets": {"items": [{"type": "status", "id": "s", "intervalSeconds": 0}]}}`, []string{"widgets.items[0].intervalSeconds"}},
		{"negative interval", `{"widgets": {"items": [{"type": "status", "id": "s", "intervalSeconds": -5}]}}`, []string{"widgets.items[0].intervalSeconds"}},
		{"layout fractional", `{"widgets": {"layout": [{"i": "c", "x": 0.5, "y": 0, "w": 1, "h": 1}]}}`, []string{"widgets.layout[0].x"}},
		{"layout missing h", `{"widgets": {"layout": [{"i": "c", "x": 0, "y": 0, "w": 1}]}}`, []string{"widgets.layout[0].h"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.doc))
			require.Error(t, err)
			assert.Equal(t, tt.want, issuePaths(t, err))
		})
	}
}

func TestParseJSONSyntaxError(t *testing.T) {
	for _, doc := range []string{`{`, ``, `{} {}`} {
		_, err := ParseJSON([]byte(doc))
		var serr *SyntaxError
		assert.True(t, errors.As(err, &serr), "doc %q: %v", doc, err)
	}
}

func TestParseAcceptsNativeNumbers(t *testing.T) {
	// yaml.v3 and hand-built maps carry ints and float64 instead of json.Number
	cfg, err := Parse(map[string]any{
		"version":   2,
		"wallpaper": map[string]any{"dim": 0.3, "blurPx": 4},
		"widgets": map[string]any{
			"layout": []any{map[string]any{"i": "c", "x": 1.0, "y": 0, "w": 2, "h": 2}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Version)
	assert.Equal(t, 4.0, cfg.Wallpaper.BlurPx)
	assert.Equal(t, 1, cfg.Widgets.Layout[0].X)
}

func TestValidationErrorMessage(t *testing.T) {
	_, err := ParseJSON([]byte(`{"links": {"items": [{"id": "x"}]}}`))
	require.Error(t, err)
	assert.Equal(t,
		"links.items[0].title: required; links.items[0].url: required; links.items[0].sectionId: required",
		err.Error())
}

func TestRoundTrip(t *testing.T) {
	rich := Default()
	rich.Theme = ThemeLight
	rich.Links.Items = append(rich.Links.Items,
		LinkItem{
			ID: "plex", Title: "Plex", URL: "https://plex.example", Description: "media",
			Tags: []string{"media", "home"}, SectionID: "main", Sort: 4, Open: OpenSameTab,
			Icon: DashboardIcon{Name: "plex"},
		},
		LinkItem{
			ID: "docs", Title: "Docs", URL: "https://docs.example", Tags: []string{},
			SectionID: "dev", Sort: -2, Open: OpenNewTab, Icon: URLIcon{URL: "https://docs.example/logo.svg"},
		},
	)
	rich.Widgets.Items = append(rich.Widgets.Items, StatusWidget{
		ID: "w_status", Title: "Status", IntervalSeconds: 30,
		Targets: []StatusTarget{{ID: "t", Title: "T", URL: "https://t.example"}},
	})

	for name, c := range map[string]AppConfig{"default": Default(), "rich": rich} {
		t.Run(name, func(t *testing.T) {
			data, err := Marshal(c)
			require.NoError(t, err)
			back, err := ParseJSON(data)
			require.NoError(t, err)
			assert.Equal(t, c, back)
		})
	}
}

func TestIconAndWidgetEncoding(t *testing.T) {
	data, err := json.Marshal(URLIcon{URL: "https://x.example/i.png"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"url","url":"https://x.example/i.png"}`, string(data))

	data, err = json.Marshal(ClockWidget{ID: "c", Title: "Time", Timezone: "Europe/Paris"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"clock","id":"c","title":"Time","timezone":"Europe/Paris"}`, string(data))
}

func TestParseLinkItem(t *testing.T) {
	item, err := ParseLinkItem(mustDecode(t, `{"id": "a", "title": "A", "url": "https://a.example", "sectionId": "s"}`))
	require.NoError(t, err)
	assert.Equal(t, FaviconIcon{}, item.Icon)

	_, err = ParseLinkItem(mustDecode(t, `{"id": "a", "title": "A", "url": "a", "sectionId": "s"}`))
	assert.Equal(t, []string{"url"}, issuePaths(t, err))
}

func TestParseLayout(t *testing.T) {
	layout, err := ParseLayout(mustDecode(t, `[{"i": "c", "x": 0, "y": 0, "w": 2, "h": 2}]`))
	require.NoError(t, err)
	assert.Len(t, layout, 1)

	_, err = ParseLayout(mustDecode(t, `[{"i": "", "x": 0, "y": 0, "w": 2, "h": 2}]`))
	assert.Equal(t, []string{"[0].i"}, issuePaths(t, err))
}
