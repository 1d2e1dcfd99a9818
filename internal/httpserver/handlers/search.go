package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/dawnpage/internal/logger"
	"github.com/MrSnakeDoc/dawnpage/internal/search"
)

// Search handles a search-bar submission by redirecting the browser.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, _ := d.Views.Config()
		target := search.Resolve(r.URL.Query().Get("q"), d.HomeURL, cfg.Links.Items)

		fields := []logger.Field{
			logger.String("kind", string(target.Kind)),
			logger.String("target", target.URL),
		}
		if target.Link != nil {
			fields = append(fields,
				logger.String("link_id", target.Link.ID),
				logger.Float64("score", target.Score))
		}
		d.Logger.Debug("search resolved", fields...)

		w.Header().Set("Cache-Control", "no-store")
		http.Redirect(w, r, target.URL, http.StatusFound)
	}
}

type bangsResponse struct {
	Enabled bool          `json:"enabled"`
	Bangs   []search.Bang `json:"bangs"`
}

// Bangs lists the search prefixes for the search-bar tooltip.
func Bangs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, ok := d.Views.Config()
		writeJSON(w, http.StatusOK, bangsResponse{
			Enabled: ok && cfg.Search.ShowBangTooltips,
			Bangs:   search.Bangs(),
		})
	}
}
