// Package icons turns a link's icon descriptor into an image URL.
package icons

import (
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/dawnpage/internal/schema"
	"github.com/MrSnakeDoc/dawnpage/internal/utils"
)

const (
	dashboardIconsBase = "https://raw.githubusercontent.com/walkxcode/dashboard-icons/master/png/"
	faviconService     = "https://www.google.com/s2/favicons"
	faviconSize        = "128"
)

// ResolveURL returns the image URL for icon on a link pointing at linkURL.
// The boolean is false when no image can be derived, in which case the page
// shows a placeholder.
func ResolveURL(icon schema.Icon, linkURL string) (string, bool) {
	switch ic := icon.(type) {
	case schema.URLIcon:
		return ic.URL, ic.URL != ""
	case schema.DashboardIcon:
		name := strings.TrimSpace(ic.Name)
		if name == "" {
			return "", false
		}
		return dashboardIconsBase + utils.EncodeURIComponent(name) + ".png", true
	default:
		return Favicon(linkURL)
	}
}

// Favicon returns the favicon service URL for the host of linkURL.
func Favicon(linkURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(linkURL))
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return "", false
	}
	q := url.Values{}
	q.Set("domain", u.Hostname())
	q.Set("sz", faviconSize)
	return faviconService + "?" + q.Encode(), true
}
