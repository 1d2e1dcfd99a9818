package edit

import (
	"strings"
	"time"

	"github.com/MrSnakeDoc/dawnpage/internal/schema"
	"github.com/MrSnakeDoc/dawnpage/internal/session"
)

// SetLayout replaces the widget grid layout. Entries naming no widget are
// dropped by sanitization on commit.
func SetLayout(layout []schema.WidgetLayout) session.Updater {
	return func(c schema.AppConfig) (schema.AppConfig, error) {
		c.Widgets.Layout = append(make([]schema.WidgetLayout, 0, len(layout)), layout...)
		return c, nil
	}
}

// WidgetPatch is a partial widget edit. Fields that do not apply to the
// target widget's type are ignored.
type WidgetPatch struct {
	Title     *string  `json:"title,omitempty"`
	Timezone  *string  `json:"timezone,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Unit      *string  `json:"unit,omitempty"`
}

// EditClock sets the zone of a clock widget. Empty means the viewer's zone.
func EditClock(id, timezone string) session.Updater {
	return EditWidget(id, WidgetPatch{Timezone: &timezone}, schema.WidgetClock)
}

// EditWeather patches the location, zone or unit of a weather widget.
func EditWeather(id string, p WidgetPatch) session.Updater {
	return EditWidget(id, p, schema.WidgetWeather)
}

// EditWidget applies p to the widget with id, which must be of kind.
func EditWidget(id string, p WidgetPatch, kind schema.WidgetKind) session.Updater {
	return func(c schema.AppConfig) (schema.AppConfig, error) {
		for i, w := range c.Widgets.Items {
			if w.WidgetID() != id {
				continue
			}
			if kind != "" && w.Kind() != kind {
				return c, ErrWidgetKind
			}
			next, err := patchWidget(w, p)
			if err != nil {
				return c, err
			}
			c.Widgets.Items[i] = next
			return c, nil
		}
		return c, ErrWidgetNotFound
	}
}

func patchWidget(w schema.Widget, p WidgetPatch) (schema.Widget, error) {
	switch v := w.(type) {
	case schema.ClockWidget:
		if p.Title != nil {
			v.Title = *p.Title
		}
		if p.Timezone != nil {
			tz, err := clockZone(*p.Timezone)
			if err != nil {
				return w, err
			}
			v.Timezone = tz
		}
		return v, nil
	case schema.WeatherWidget:
		if p.Title != nil {
			v.Title = *p.Title
		}
		if p.Latitude != nil {
			v.Latitude = *p.Latitude
		}
		if p.Longitude != nil {
			v.Longitude = *p.Longitude
		}
		if p.Timezone != nil {
			v.Timezone = strings.TrimSpace(*p.Timezone)
			if v.Timezone == "" {
				v.Timezone = schema.TimezoneAuto
			}
		}
		if p.Unit != nil {
			v.Unit = *p.Unit
		}
		return v, nil
	default:
		return w, ErrWidgetKind
	}
}

// clockZone accepts "local", empty, or an IANA zone name.
func clockZone(raw string) (string, error) {
	tz := strings.TrimSpace(raw)
	if tz == "" || tz == schema.TimezoneLocal {
		return schema.TimezoneLocal, nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return "", ErrInvalidTimezone
	}
	return tz, nil
}
