package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/dawnpage/internal/schema"
	"github.com/MrSnakeDoc/dawnpage/internal/views"
)

func widget(t *testing.T, c schema.AppConfig, id string) schema.Widget {
	t.Helper()
	w, ok := views.FindWidget(c.Widgets.Items, id)
	require.True(t, ok)
	return w
}

func TestSetLayout(t *testing.T) {
	layout := []schema.WidgetLayout{{I: "w_clock", X: 2, Y: 1, W: 3, H: 2}}
	out := apply(t, SetLayout(layout))
	assert.Equal(t, layout, out.Widgets.Layout)

	layout[0].X = 9
	assert.Equal(t, 2, out.Widgets.Layout[0].X)
}

func TestEditClock(t *testing.T) {
	out := apply(t, EditClock("w_clock", "UTC"))
	assert.Equal(t, "UTC", widget(t, out, "w_clock").(schema.ClockWidget).Timezone)

	out = apply(t, EditClock("w_clock", "  "))
	assert.Equal(t, schema.TimezoneLocal, widget(t, out, "w_clock").(schema.ClockWidget).Timezone)

	_, err := EditClock("w_clock", "Mars/Olympus")(schema.Default())
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	_, err = EditClock("w_weather", "UTC")(schema.Default())
	assert.ErrorIs(t, err, ErrWidgetKind)

	_, err = EditClock("missing", "UTC")(schema.Default())
	assert.ErrorIs(t, err, ErrWidgetNotFound)
}

func TestEditWeather(t *testing.T) {
	lat, lon, unit, tz := 48.85, 2.35, schema.UnitFahrenheit, ""
	out := apply(t, EditWeather("w_weather", WidgetPatch{
		Latitude: &lat, Longitude: &lon, Unit: &unit, Timezone: &tz,
	}))

	w := widget(t, out, "w_weather").(schema.WeatherWidget)
	assert.Equal(t, 48.85, w.Latitude)
	assert.Equal(t, 2.35, w.Longitude)
	assert.Equal(t, schema.UnitFahrenheit, w.Unit)
	assert.Equal(t, schema.TimezoneAuto, w.Timezone)
	assert.Equal(t, "Weather", w.Title)
}

func TestEditWidgetAnyKind(t *testing.T) {
	title := "Clock"
	out := apply(t, EditWidget("w_clock", WidgetPatch{Title: &title}, ""))
	assert.Equal(t, "Clock", widget(t, out, "w_clock").WidgetTitle())
}
