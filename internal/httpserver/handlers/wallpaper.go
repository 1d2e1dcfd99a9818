package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/dawnpage/internal/logger"
	"github.com/MrSnakeDoc/dawnpage/internal/wallpaper"
)

// BingWallpaper proxies the Bing image of the day: 200 {url, copyright?}
// or 502 {"error": "failed" | "bad_response"}.
func BingWallpaper(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		img, err := d.Bing.FetchBing(r.Context())
		if err != nil {
			code := "failed"
			if errors.Is(err, wallpaper.ErrBadResponse) {
				code = "bad_response"
			}
			d.Logger.Warn("bing wallpaper lookup failed",
				logger.String("error_code", code),
				logger.Error(err))
			w.Header().Set("Cache-Control", "no-store")
			writeCode(w, http.StatusBadGateway, code)
			return
		}

		w.Header().Set("Cache-Control", "public, max-age=900")
		writeJSON(w, http.StatusOK, img)
	}
}

// Wallpaper returns today's wallpaper, falling back to a date-seeded image
// when Bing is down. ?refresh=1 bypasses the cache.
func Wallpaper(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refresh := r.URL.Query().Get("refresh") == "1"
		wp := d.Wallpapers.Resolve(r.Context(), d.Now(), refresh)

		if wp.Source == wallpaper.SourceBing {
			w.Header().Set("Cache-Control", "public, max-age=900")
		} else {
			w.Header().Set("Cache-Control", "no-store")
		}
		writeJSON(w, http.StatusOK, wp)
	}
}
