package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/dawnpage/internal/logger"
	"github.com/MrSnakeDoc/dawnpage/internal/scheduler"
)

type reloadResponse struct {
	Homepage  bool `json:"homepage"`
	Wallpaper bool `json:"wallpaper"`
}

// Reload asks the homepage importer and the wallpaper refresher to run now.
// Triggers already pending are not queued twice.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := reloadResponse{
			Homepage:  scheduler.Trigger(d.HomepageReloadTrigger),
			Wallpaper: scheduler.Trigger(d.WallpaperRefreshTrigger),
		}

		d.Logger.Info("manual reload requested",
			logger.Bool("homepage", res.Homepage),
			logger.Bool("wallpaper", res.Wallpaper),
			logger.String("remote_ip", r.RemoteAddr))

		if !res.Homepage && !res.Wallpaper {
			writeJSON(w, http.StatusTooManyRequests, res)
			return
		}
		writeJSON(w, http.StatusAccepted, res)
	}
}
