package schema

import "encoding/json"

// IconKind is the discriminant of the Icon union.
type IconKind string

const (
	IconFavicon        IconKind = "favicon"
	IconURL            IconKind = "url"
	IconDashboardIcons IconKind = "dashboardicons"
)

// Icon is one of FaviconIcon, URLIcon or DashboardIcon.
type Icon interface {
	Kind() IconKind
	isIcon()
}

// FaviconIcon carries no data: the image is derived from the link host.
type FaviconIcon struct{}

// URLIcon points at an explicit image or SVG.
type URLIcon struct {
	URL string `json:"url" validate:"url"`
}

// DashboardIcon names an entry of the dashboard-icons PNG set.
type DashboardIcon struct {
	Name string `json:"name" validate:"min=1"`
}

func (FaviconIcon) Kind() IconKind   { return IconFavicon }
func (URLIcon) Kind() IconKind       { return IconURL }
func (DashboardIcon) Kind() IconKind { return IconDashboardIcons }

func (FaviconIcon) isIcon()   {}
func (URLIcon) isIcon()       {}
func (DashboardIcon) isIcon() {}

func (i FaviconIcon) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type IconKind `json:"type"`
	}{IconFavicon})
}

func (i URLIcon) MarshalJSON() ([]byte, error) {
	type plain URLIcon
	return json.Marshal(struct {
		Type IconKind `json:"type"`
		plain
	}{IconURL, plain(i)})
}

func (i DashboardIcon) MarshalJSON() ([]byte, error) {
	type plain DashboardIcon
	return json.Marshal(struct {
		Type IconKind `json:"type"`
		plain
	}{IconDashboardIcons, plain(i)})
}
