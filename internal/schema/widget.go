package schema

import "encoding/json"

// WidgetKind is the discriminant of the Widget union.
type WidgetKind string

const (
	WidgetClock   WidgetKind = "clock"
	WidgetWeather WidgetKind = "weather"
	// WidgetStatus is still accepted on input but Sanitize always removes it.
	WidgetStatus WidgetKind = "status"
)

const (
	// TimezoneLocal makes the clock follow the viewer's zone.
	TimezoneLocal = "local"
	// TimezoneAuto lets the weather provider pick the zone from coordinates.
	TimezoneAuto = "auto"
)

// Widget is one of ClockWidget, WeatherWidget or StatusWidget.
type Widget interface {
	Kind() WidgetKind
	WidgetID() string
	WidgetTitle() string
}

type ClockWidget struct {
	ID       string `json:"id" validate:"min=1"`
	Title    string `json:"title"`
	Timezone string `json:"timezone"`
}

type WeatherWidget struct {
	ID        string  `json:"id" validate:"min=1"`
	Title     string  `json:"title"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Timezone  string  `json:"timezone"`
	Unit      string  `json:"unit" validate:"oneof=c f"`
}

type StatusWidget struct {
	ID              string         `json:"id" validate:"min=1"`
	Title           string         `json:"title"`
	Targets         []StatusTarget `json:"targets" validate:"dive"`
	IntervalSeconds int            `json:"intervalSeconds" validate:"gte=10,lte=3600"`
}

// StatusTarget is one probed endpoint of a status widget.
type StatusTarget struct {
	ID    string `json:"id" validate:"min=1"`
	Title string `json:"title" validate:"min=1"`
	URL   string `json:"url" validate:"url"`
}

func (w ClockWidget) Kind() WidgetKind   { return WidgetClock }
func (w WeatherWidget) Kind() WidgetKind { return WidgetWeather }
func (w StatusWidget) Kind() WidgetKind  { return WidgetStatus }

func (w ClockWidget) WidgetID() string   { return w.ID }
func (w WeatherWidget) WidgetID() string { return w.ID }
func (w StatusWidget) WidgetID() string  { return w.ID }

func (w ClockWidget) WidgetTitle() string   { return w.Title }
func (w WeatherWidget) WidgetTitle() string { return w.Title }
func (w StatusWidget) WidgetTitle() string  { return w.Title }

func (w ClockWidget) MarshalJSON() ([]byte, error) {
	type plain ClockWidget
	return json.Marshal(struct {
		Type WidgetKind `json:"type"`
		plain
	}{WidgetClock, plain(w)})
}

func (w WeatherWidget) MarshalJSON() ([]byte, error) {
	type plain WeatherWidget
	return json.Marshal(struct {
		Type WidgetKind `json:"type"`
		plain
	}{WidgetWeather, plain(w)})
}

func (w StatusWidget) MarshalJSON() ([]byte, error) {
	type plain StatusWidget
	return json.Marshal(struct {
		Type WidgetKind `json:"type"`
		plain
	}{WidgetStatus, plain(w)})
}
