package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/mw"
)

func init() { Register("proxy", registerProxy) }

func registerProxy(r chi.Router, d deps.Deps) {
	h := r.With(mw.EnforceHost(d.AllowedHosts, d.Logger))
	h.Get("/api/wallpaper/bing", handlers.BingWallpaper(d))
	h.Get("/api/wallpaper", handlers.Wallpaper(d))

	h.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.StatusRateBurst,
		RefillPerIPPerMin: d.StatusRatePerMin,
		MaxEntries:        4096,
		TrustProxy:        d.TrustProxy,
		Now:               d.TimeNow,
	})).Get("/api/status", handlers.Status(d))
}
